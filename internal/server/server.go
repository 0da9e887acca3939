package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/corpsite/corpsite/internal/handler"
	"github.com/corpsite/corpsite/internal/model"
	"github.com/corpsite/corpsite/internal/server/middleware"
	"github.com/corpsite/corpsite/internal/service"
	"github.com/corpsite/corpsite/internal/storage"
	"github.com/corpsite/corpsite/internal/store"
)

// Config holds the HTTP server configuration.
type Config struct {
	Host             string
	Port             int
	ShutdownTimeout  time.Duration
	CORSOrigins      []string
	MaxUploadSize    int64 // bytes
	LoginPerMinute   int   // per client IP, 0 disables
	ContactPerMinute int   // per client IP, 0 disables
	Version          string
}

// DefaultConfig returns a Config with sensible production defaults.
func DefaultConfig() Config {
	return Config{
		Host:             "0.0.0.0",
		Port:             8080,
		ShutdownTimeout:  30 * time.Second,
		CORSOrigins:      []string{"http://localhost:5173", "http://127.0.0.1:5173"},
		MaxUploadSize:    handler.DefaultMaxUploadSize,
		LoginPerMinute:   10,
		ContactPerMinute: 5,
		Version:          "dev",
	}
}

// Server is the top-level HTTP server of the site backend. It owns the Chi
// router and the services behind it.
type Server struct {
	cfg        Config
	router     chi.Router
	store      *store.Store
	codec      *service.TokenCodec
	authSvc    *service.AuthService
	images     *storage.ImageStore
	httpServer *http.Server
	logger     *slog.Logger
}

// New creates a new Server, wires up all routes and middleware, and returns
// it ready to listen. Call ListenAndServe to start accepting connections.
func New(cfg Config, st *store.Store, codec *service.TokenCodec, images *storage.ImageStore, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		cfg:     cfg,
		store:   st,
		codec:   codec,
		authSvc: service.NewAuthService(st, logger),
		images:  images,
		logger:  logger,
	}
	s.setupRouter()
	return s
}

func (s *Server) setupRouter() {
	r := chi.NewRouter()

	// --- Global middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(s.logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Authorization", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(chimw.Compress(5))
	r.Use(middleware.Gate(s.codec, middleware.NewRoutePolicy(middleware.DefaultRouteRules), s.logger))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusNotFound, "Resource not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	health := handler.NewHealthHandler(s.store, s.logger)
	r.Get("/healthz", health.Healthz)
	r.Get("/readyz", health.Readyz)
	r.Get("/openapi.json", handler.NewOpenAPIHandler(s.cfg.Version).ServeSpec)

	// Uploaded images, served straight from disk without directory listings.
	r.Handle(storage.PublicPrefix+"/*", http.StripPrefix(storage.PublicPrefix,
		noDirListing(http.FileServer(http.Dir(s.images.Root())))))

	authH := handler.NewAuthHandler(s.authSvc, s.codec, s.logger)
	offerings := handler.NewContentHandler[model.ServiceOffering](service.NewOfferingService(s.store), "Service", "Services", s.logger)
	technologies := handler.NewContentHandler[model.Technology](service.NewTechnologyService(s.store), "Technology", "Technologies", s.logger)
	projects := handler.NewProjectHandler(service.NewProjectService(s.store), s.logger)
	team := handler.NewContentHandler[model.TeamMember](service.NewTeamService(s.store), "Team member", "Team members", s.logger)
	testimonials := handler.NewContentHandler[model.Testimonial](service.NewTestimonialService(s.store), "Testimonial", "Testimonials", s.logger)
	company := handler.NewCompanyHandler(service.NewCompanyService(s.store, s.logger), s.logger)
	contacts := handler.NewContactHandler(service.NewContactService(s.store), s.logger)
	uploads := handler.NewUploadHandler(s.images, s.cfg.MaxUploadSize, s.logger)

	r.Route("/api", func(r chi.Router) {
		// --- Public ---
		r.With(middleware.RateLimit(s.cfg.LoginPerMinute)).Post("/auth/login", authH.Login)
		r.Get("/services", offerings.ListPublic)
		r.Get("/technologies", technologies.ListPublic)
		r.Get("/projects", projects.ListPublic)
		r.Get("/projects/featured", projects.ListFeatured)
		r.Get("/team", team.ListPublic)
		r.Get("/testimonials", testimonials.ListPublic)
		r.Get("/company", company.Get)
		r.With(middleware.RateLimit(s.cfg.ContactPerMinute)).Post("/contact", contacts.Submit)

		// --- Admin (the gate has already verified the bearer token) ---
		r.Route("/admin", func(r chi.Router) {
			r.Get("/me", authH.Me)

			mountContent(r, "/services", offerings)
			mountContent(r, "/technologies", technologies)
			mountContent(r, "/projects", projects.ContentHandler)
			mountContent(r, "/team", team)
			mountContent(r, "/testimonials", testimonials)

			r.Get("/company", company.Get)
			r.Post("/company", company.Save)
			r.Put("/company", company.Save)

			r.Get("/contacts", contacts.List)
			r.Get("/contacts/summary", contacts.Summary)
			r.Patch("/contacts/{id}/status", contacts.UpdateStatus)
			r.Delete("/contacts/{id}", contacts.Delete)

			r.Post("/uploads/team-image", uploads.TeamImage)
		})
	})

	s.router = r
}

// mountContent registers the admin CRUD routes of one content type.
func mountContent[T any](r chi.Router, prefix string, h *handler.ContentHandler[T]) {
	r.Route(prefix, func(r chi.Router) {
		r.Get("/", h.ListAdmin)
		r.Post("/", h.Create)
		r.Put("/{id}", h.Update)
		r.Patch("/{id}/toggle", h.Toggle)
		r.Delete("/{id}", h.Delete)
	})
}

// noDirListing answers 404 for directory requests instead of rendering an
// index of the upload directory. Files are served sandboxed with sniffing off
// so an upload can never run script in the site origin.
func noDirListing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Content-Security-Policy", "default-src 'none'; sandbox")
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			writeEnvelope(w, http.StatusNotFound, "Resource not found")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeEnvelope(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.NewErrorResponse(status, message))
}

// ListenAndServe starts the HTTP server and blocks until a SIGINT or SIGTERM
// is received. It then performs a graceful shutdown, draining in-flight
// requests within the configured timeout.
func (s *Server) ListenAndServe() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return s.Run(ctx)
}

// Run serves until ctx is cancelled or the listener fails.
func (s *Server) Run(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Start server in background goroutine
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Wait for shutdown signal or server error
	select {
	case err := <-errCh:
		return fmt.Errorf("server listen: %w", err)
	case <-ctx.Done():
		s.logger.Info("shutdown signal received, draining connections...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

// Router returns the underlying Chi router, useful for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// ServeHTTP implements http.Handler, delegating to the router.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
