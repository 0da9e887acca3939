package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	companyURI    = "corpsite://company"
	contentURIFmt = "corpsite://content/%s"
)

// registerResources adds MCP resource definitions to the server. Resources
// provide read-only data that LLM clients can load into their context.
func (s *MCPServer) registerResources(srv *server.MCPServer) {

	// corpsite://company: the company profile
	srv.AddResource(
		mcp.NewResource(
			companyURI,
			"Company Profile",
			mcp.WithResourceDescription("The company name, about text, contact details and social links."),
			mcp.WithMIMEType("application/json"),
		),
		s.handleCompanyResource,
	)

	// corpsite://content/{type}: published entries of one content type
	srv.AddResourceTemplate(
		mcp.NewResourceTemplate(
			"corpsite://content/{type}",
			"Published Content",
			mcp.WithTemplateDescription(
				"The entries of one content type ("+strings.Join(contentTypes, ", ")+
					") currently shown on the public site.",
			),
			mcp.WithTemplateMIMEType("application/json"),
		),
		s.handleContentResource,
	)
}

func (s *MCPServer) handleCompanyResource(
	ctx context.Context,
	request mcp.ReadResourceRequest,
) ([]mcp.ResourceContents, error) {

	profile, err := s.company.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load company profile: %w", err)
	}
	return jsonContents(companyURI, profile)
}

func (s *MCPServer) handleContentResource(
	ctx context.Context,
	request mcp.ReadResourceRequest,
) ([]mcp.ResourceContents, error) {

	uri := request.Params.URI
	contentType := strings.TrimPrefix(uri, fmt.Sprintf(contentURIFmt, ""))
	if contentType == "" || contentType == uri {
		return nil, fmt.Errorf("invalid content URI %q: expected corpsite://content/{type}", uri)
	}

	items, err := s.listContent(ctx, contentType, false)
	if err != nil {
		return nil, err
	}
	return jsonContents(uri, items)
}

func jsonContents(uri string, v interface{}) ([]mcp.ResourceContents, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resource: %w", err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(b),
		},
	}, nil
}
