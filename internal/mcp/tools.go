package mcp

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/corpsite/corpsite/internal/model"
)

// Content types accepted by the content tools and resources.
const (
	contentServices     = "services"
	contentTechnologies = "technologies"
	contentProjects     = "projects"
	contentTeam         = "team"
	contentTestimonials = "testimonials"
)

var contentTypes = []string{
	contentServices,
	contentTechnologies,
	contentProjects,
	contentTeam,
	contentTestimonials,
}

var errUnknownContentType = errors.New("unknown content type")

const (
	defaultContactLimit = 25
	maxContactLimit     = 500
)

// registerTools registers all MCP tools on the given server.
func (s *MCPServer) registerTools(srv *server.MCPServer) {

	// ----- Published content -----

	srv.AddTool(
		mcp.NewTool("corpsite_list_content",
			mcp.WithDescription(
				"List website content of one type, newest first. By default only "+
					"entries that are published (active) on the public site are returned.",
			),
			mcp.WithToolAnnotation(readOnlyAnnotation()),
			mcp.WithString("type",
				mcp.Required(),
				mcp.Description("Content type to list"),
				mcp.Enum(contentTypes...),
			),
			mcp.WithBoolean("include_inactive",
				mcp.Description("Also return entries hidden from the public site"),
			),
		),
		s.handleListContent,
	)

	srv.AddTool(
		mcp.NewTool("corpsite_featured_projects",
			mcp.WithDescription("List the projects featured on the landing page."),
			mcp.WithToolAnnotation(readOnlyAnnotation()),
		),
		s.handleFeaturedProjects,
	)

	srv.AddTool(
		mcp.NewTool("corpsite_get_company",
			mcp.WithDescription(
				"Get the company profile: name, about text, contact details and social links.",
			),
			mcp.WithToolAnnotation(readOnlyAnnotation()),
		),
		s.handleGetCompany,
	)

	// ----- Contact inbox -----

	srv.AddTool(
		mcp.NewTool("corpsite_list_contacts",
			mcp.WithDescription(
				"List contact form submissions, newest first, optionally filtered by status.",
			),
			mcp.WithToolAnnotation(readOnlyAnnotation()),
			mcp.WithString("status",
				mcp.Description("Only return submissions in this status"),
				mcp.Enum(model.ContactStatuses...),
			),
			mcp.WithNumber("limit",
				mcp.Description(fmt.Sprintf("Maximum number of submissions to return (default %d, max %d)",
					defaultContactLimit, maxContactLimit)),
			),
		),
		s.handleListContacts,
	)

	srv.AddTool(
		mcp.NewTool("corpsite_contact_summary",
			mcp.WithDescription("Count contact submissions in each status."),
			mcp.WithToolAnnotation(readOnlyAnnotation()),
		),
		s.handleContactSummary,
	)

	srv.AddTool(
		mcp.NewTool("corpsite_update_contact_status",
			mcp.WithDescription(
				"Move a contact submission to a new status, e.g. mark it IN_PROGRESS "+
					"when someone picks it up or RESOLVED when it has been answered.",
			),
			mcp.WithToolAnnotation(mutatingAnnotation()),
			mcp.WithString("id",
				mcp.Required(),
				mcp.Description("Identifier of the contact submission"),
			),
			mcp.WithString("status",
				mcp.Required(),
				mcp.Description("New status"),
				mcp.Enum(model.ContactStatuses...),
			),
		),
		s.handleUpdateContactStatus,
	)
}

// listContent returns the entries of contentType, active ones only unless
// all is set.
func (s *MCPServer) listContent(ctx context.Context, contentType string, all bool) (interface{}, error) {
	switch contentType {
	case contentServices:
		return pick(ctx, all, s.offerings.ListAll, s.offerings.ListActive)
	case contentTechnologies:
		return pick(ctx, all, s.technologies.ListAll, s.technologies.ListActive)
	case contentProjects:
		return pick(ctx, all, s.projects.ListAll, s.projects.ListActive)
	case contentTeam:
		return pick(ctx, all, s.team.ListAll, s.team.ListActive)
	case contentTestimonials:
		return pick(ctx, all, s.testimonials.ListAll, s.testimonials.ListActive)
	default:
		return nil, fmt.Errorf("%w %q (available: %s)", errUnknownContentType, contentType, strings.Join(contentTypes, ", "))
	}
}

func pick[T any](ctx context.Context, all bool, listAll, listActive func(context.Context) ([]T, error)) (interface{}, error) {
	if all {
		return listAll(ctx)
	}
	return listActive(ctx)
}

func (s *MCPServer) handleListContent(
	ctx context.Context,
	request mcp.CallToolRequest,
) (*mcp.CallToolResult, error) {

	contentType, err := requireString(request, "type")
	if err != nil {
		return toolError("%v", err)
	}
	contentType = strings.ToLower(strings.TrimSpace(contentType))

	items, err := s.listContent(ctx, contentType, optionalBool(request, "include_inactive"))
	if err != nil {
		if errors.Is(err, errUnknownContentType) {
			return toolError("%v", err)
		}
		return nil, err
	}
	return successJSON(items)
}

func (s *MCPServer) handleFeaturedProjects(
	ctx context.Context,
	request mcp.CallToolRequest,
) (*mcp.CallToolResult, error) {

	projects, err := s.projects.ListFeatured(ctx)
	if err != nil {
		return nil, err
	}
	return successJSON(projects)
}

func (s *MCPServer) handleGetCompany(
	ctx context.Context,
	request mcp.CallToolRequest,
) (*mcp.CallToolResult, error) {

	profile, err := s.company.Get(ctx)
	if err != nil {
		return nil, err
	}
	return successJSON(profile)
}

func (s *MCPServer) handleListContacts(
	ctx context.Context,
	request mcp.CallToolRequest,
) (*mcp.CallToolResult, error) {

	contacts, err := s.contacts.List(ctx, optionalString(request, "status"))
	if err != nil {
		return serviceError(err)
	}
	limit := clamp(optionalInt(request, "limit", defaultContactLimit), 1, maxContactLimit)
	total := len(contacts)
	if len(contacts) > limit {
		contacts = contacts[:limit]
	}
	return successJSON(map[string]interface{}{
		"contacts": contacts,
		"count":    len(contacts),
		"total":    total,
	})
}

func (s *MCPServer) handleContactSummary(
	ctx context.Context,
	request mcp.CallToolRequest,
) (*mcp.CallToolResult, error) {

	counts, err := s.contacts.Counts(ctx)
	if err != nil {
		return nil, err
	}

	type statusCount struct {
		Status string `json:"status"`
		Count  int    `json:"count"`
	}
	out := make([]statusCount, 0, len(counts))
	for status, n := range counts {
		out = append(out, statusCount{Status: status, Count: n})
	}
	order := make(map[string]int, len(model.ContactStatuses))
	for i, st := range model.ContactStatuses {
		order[st] = i
	}
	sort.Slice(out, func(i, j int) bool { return order[out[i].Status] < order[out[j].Status] })
	return successJSON(out)
}

func (s *MCPServer) handleUpdateContactStatus(
	ctx context.Context,
	request mcp.CallToolRequest,
) (*mcp.CallToolResult, error) {

	id, err := requireString(request, "id")
	if err != nil {
		return toolError("%v", err)
	}
	status, err := requireString(request, "status")
	if err != nil {
		return toolError("%v", err)
	}

	contact, err := s.contacts.UpdateStatus(ctx, id, status)
	if err != nil {
		return serviceError(err)
	}
	s.logger.Info("contact status updated via MCP", "id", contact.ID, "status", contact.Status)
	return successJSON(contact)
}
