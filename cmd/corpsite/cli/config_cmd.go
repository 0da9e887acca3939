package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/corpsite/corpsite/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage corpsite configuration",
		Long:  "Initialize a default configuration file or display the current effective configuration.",
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())

	return cmd
}

// ---------- config init ----------

func newConfigInitCmd() *cobra.Command {
	var (
		force bool
		path  string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a default corpsite.yaml configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigInit(path, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing config file")
	cmd.Flags().StringVar(&path, "path", "corpsite.yaml", "Where to write the file")

	return cmd
}

func runConfigInit(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}

	if err := config.WriteDefault(path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Printf("Created %s\n", path)
	fmt.Println("Set auth.jwt_secret (or CORPSITE_AUTH_JWT_SECRET) and admin.password, then run 'corpsite serve'.")
	return nil
}

// ---------- config show ----------

func newConfigShowCmd() *cobra.Command {
	var reveal bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the current effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(reveal)
		},
	}

	cmd.Flags().BoolVar(&reveal, "reveal", false, "Print secrets instead of masking them")

	return cmd
}

func runConfigShow(reveal bool) error {
	configFile := viper.ConfigFileUsed()
	if configFile != "" {
		fmt.Printf("# Config file: %s\n", configFile)
	} else {
		fmt.Println("# Config file: (none found, using defaults and environment)")
	}

	cfg, err := config.FromViper(viper.GetViper())
	if err != nil {
		return err
	}
	if !reveal {
		cfg.Auth.JWTSecret = mask(cfg.Auth.JWTSecret)
		cfg.Admin.Password = mask(cfg.Admin.Password)
	}

	out, err := cfg.Marshal()
	if err != nil {
		return err
	}
	fmt.Print(string(out))

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "\nwarning: %v\n", err)
	}
	return nil
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	return "********"
}
