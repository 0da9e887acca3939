package mcp

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/corpsite/corpsite/internal/server/middleware"
	"github.com/corpsite/corpsite/internal/service"
	"github.com/corpsite/corpsite/internal/store"
)

// MCPServer wraps the mcp-go server with the site's tool and resource
// registrations. It lets AI agents read the published content and work the
// contact inbox.
type MCPServer struct {
	offerings    *service.OfferingService
	technologies *service.TechnologyService
	projects     *service.ProjectService
	team         *service.TeamService
	testimonials *service.TestimonialService
	company      *service.CompanyService
	contacts     *service.ContactService
	logger       *slog.Logger
	server       *server.MCPServer
}

// NewMCPServer creates an MCPServer over st pre-loaded with all tools and
// resources. The returned server is ready to serve over stdio or HTTP.
func NewMCPServer(st *store.Store, version string, logger *slog.Logger) *MCPServer {
	if logger == nil {
		logger = slog.Default()
	}
	s := &MCPServer{
		offerings:    service.NewOfferingService(st),
		technologies: service.NewTechnologyService(st),
		projects:     service.NewProjectService(st),
		team:         service.NewTeamService(st),
		testimonials: service.NewTestimonialService(st),
		company:      service.NewCompanyService(st, logger),
		contacts:     service.NewContactService(st),
		logger:       logger,
	}

	mcpServer := server.NewMCPServer(
		"Corpsite Content API",
		version,
		server.WithResourceCapabilities(true, false),
		server.WithToolCapabilities(true),
	)

	s.registerTools(mcpServer)
	s.registerResources(mcpServer)

	s.server = mcpServer
	return s
}

// Server returns the underlying mcp-go MCPServer instance.
func (s *MCPServer) Server() *server.MCPServer {
	return s.server
}

// ServeStdio starts the MCP server in stdio mode, for clients that launch
// the server as a subprocess.
func (s *MCPServer) ServeStdio() error {
	s.logger.Info("starting MCP server in stdio mode")
	return server.ServeStdio(s.server)
}

// HTTPHandler returns the Streamable HTTP endpoint (/mcp). Every request
// must carry an admin bearer token accepted by verifier, the same credential
// that guards /api/admin.
func (s *MCPServer) HTTPHandler(verifier middleware.TokenVerifier) http.Handler {
	streamable := server.NewStreamableHTTPServer(s.server)
	return middleware.RequestID(middleware.RequireBearer(verifier, s.logger)(streamable))
}

// ServeHTTP starts the MCP server in Streamable HTTP mode, listening on
// the given address (e.g. "127.0.0.1:8081").
func (s *MCPServer) ServeHTTP(addr string, verifier middleware.TokenVerifier) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.HTTPHandler(verifier),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("MCP HTTP server starting", "addr", addr)
	return httpServer.ListenAndServe()
}

func readOnlyAnnotation() mcp.ToolAnnotation {
	return mcp.ToolAnnotation{
		ReadOnlyHint: boolPtr(true),
	}
}

func mutatingAnnotation() mcp.ToolAnnotation {
	return mcp.ToolAnnotation{
		ReadOnlyHint: boolPtr(false),
	}
}

func boolPtr(b bool) *bool {
	return &b
}
