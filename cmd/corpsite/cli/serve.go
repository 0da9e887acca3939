package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/corpsite/corpsite/internal/server"
	"github.com/corpsite/corpsite/internal/service"
	"github.com/corpsite/corpsite/internal/storage"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the corpsite API server",
		Long:  "Open the database, apply migrations, seed the bootstrap admin and start the HTTP server.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	cmd.Flags().IntP("port", "p", 8080, "HTTP listen port")
	cmd.Flags().String("host", "0.0.0.0", "HTTP listen host")
	cmd.Flags().String("uploads-dir", "./uploads", "Directory for uploaded images")

	viper.BindPFlag("server.port", cmd.Flags().Lookup("port"))
	viper.BindPFlag("server.host", cmd.Flags().Lookup("host"))
	viper.BindPFlag("uploads.dir", cmd.Flags().Lookup("uploads-dir"))

	return cmd
}

func runServe(ctx context.Context) error {
	ctx = contextOrBackground(ctx)
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	// 1. Open the store; migrations run on open.
	st, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()
	logger.Info("store initialized", "driver", st.Driver())

	// 2. Seed the bootstrap admin.
	authSvc := service.NewAuthService(st, logger)
	if _, err := authSvc.SeedAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password); err != nil {
		return err
	}
	if cfg.Admin.Password == service.DefaultAdminPassword {
		logger.Warn("bootstrap admin uses the default password, change admin.password")
	}

	// 3. Token codec.
	secret, err := jwtSecret(cfg, logger)
	if err != nil {
		return err
	}
	expiry, _ := cfg.JWTExpiry()
	codec, err := service.NewTokenCodec(secret, expiry)
	if err != nil {
		return fmt.Errorf("init token codec: %w", err)
	}

	// 4. Upload storage.
	images, err := storage.NewImageStore(cfg.Uploads.Dir)
	if err != nil {
		return fmt.Errorf("init upload storage: %w", err)
	}

	// 5. Build and start HTTP server.
	shutdown, _ := cfg.ShutdownTimeout()
	maxUpload, _ := cfg.MaxUploadBytes()
	srvCfg := server.Config{
		Host:             cfg.Server.Host,
		Port:             cfg.Server.Port,
		ShutdownTimeout:  shutdown,
		CORSOrigins:      cfg.Server.CORS.Origins,
		MaxUploadSize:    maxUpload,
		LoginPerMinute:   cfg.Server.RateLimit.LoginPerMinute,
		ContactPerMinute: cfg.Server.RateLimit.ContactPerMinute,
		Version:          versionString(),
	}
	srv := server.New(srvCfg, st, codec, images, logger)

	fmt.Printf("→ corpsite %s\n", versionString())
	fmt.Printf("→ Listening on http://%s:%d\n", cfg.Server.Host, cfg.Server.Port)
	fmt.Printf("→ OpenAPI:    http://%s:%d/openapi.json\n", cfg.Server.Host, cfg.Server.Port)
	fmt.Printf("→ Health:     http://%s:%d/healthz\n", cfg.Server.Host, cfg.Server.Port)
	fmt.Printf("→ Uploads:    %s\n", images.Root())
	fmt.Println()

	return srv.ListenAndServe()
}
