package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/corpsite/corpsite/internal/config"
)

var (
	cfgFile    string
	devMode    bool
	appVersion string // set in Execute, reported by serve, openapi and mcp
)

// Execute creates the root command tree and runs it.
func Execute(version, commit, date string) error {
	appVersion = version
	rootCmd := newRootCmd(version, commit, date)
	return rootCmd.Execute()
}

func newRootCmd(version, commit, date string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "corpsite",
		Short: "Content API for the company website",
		Long: `corpsite serves the JSON API behind the company website: public listings of
services, technologies, projects, team members and testimonials, the company
profile and the contact form, plus an admin API guarded by bearer tokens.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./corpsite.yaml)")
	cmd.PersistentFlags().BoolVar(&devMode, "dev", false, "Development mode (debug logging, generated JWT secret)")

	cobra.OnInitialize(initConfig)

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newVersionCmd(version, commit, date))
	cmd.AddCommand(newAdminCmd())
	cmd.AddCommand(newOpenAPICmd())
	cmd.AddCommand(newMCPCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newStatusCmd())

	return cmd
}

func initConfig() {
	_ = godotenv.Load() // .env is optional

	viper.SetEnvPrefix("CORPSITE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	config.SetDefaults(viper.GetViper())

	path := findConfigFile()
	if path == "" {
		return // config file is optional
	}
	if err := config.ReadInto(viper.GetViper(), path); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
}

// findConfigFile returns --config when given, else the first corpsite.yaml
// found in the working directory or $HOME/.corpsite.
func findConfigFile() string {
	if cfgFile != "" {
		return cfgFile
	}
	candidates := []string{"corpsite.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".corpsite", "corpsite.yaml"))
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
