package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/corpsite/corpsite/internal/service"
)

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage admin users",
		Long:  "Create, list and reset the administrators who can sign in to the admin API.",
	}

	cmd.AddCommand(newAdminCreateCmd())
	cmd.AddCommand(newAdminListCmd())
	cmd.AddCommand(newAdminResetPasswordCmd())

	return cmd
}

// ---------- admin create ----------

func newAdminCreateCmd() *cobra.Command {
	var (
		email    string
		password string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new admin user",
		Example: `  corpsite admin create --email admin@example.com --password secret
  corpsite admin create --email admin@example.com  # prompts for password`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdminCreate(cmd.Context(), email, password)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Admin email address (required)")
	cmd.Flags().StringVar(&password, "password", "", "Admin password (prompted if omitted)")
	cmd.MarkFlagRequired("email")

	return cmd
}

func runAdminCreate(ctx context.Context, email, password string) error {
	if !strings.Contains(email, "@") {
		return fmt.Errorf("invalid email address: %q", email)
	}
	password, err := passwordOrPrompt(password)
	if err != nil {
		return err
	}

	auth, closeStore, err := openAuth()
	if err != nil {
		return err
	}
	defer closeStore()

	admin, err := auth.CreateAdmin(contextOrBackground(ctx), email, password)
	if err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	fmt.Printf("Created admin user %q\n", admin.Email)
	return nil
}

// ---------- admin list ----------

func newAdminListCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all admin users",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdminList(cmd.Context(), jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func runAdminList(ctx context.Context, jsonOutput bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	admins, err := st.ListAdmins(contextOrBackground(ctx))
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(admins)
	}

	if len(admins) == 0 {
		fmt.Println("No admin users configured. Use 'corpsite admin create' to create one.")
		return nil
	}

	fmt.Printf("%-36s %-32s %-20s\n", "ID", "EMAIL", "CREATED")
	fmt.Printf("%-36s %-32s %-20s\n", "--", "-----", "-------")
	for _, a := range admins {
		fmt.Printf("%-36s %-32s %-20s\n", a.ID, a.Email, a.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}

// ---------- admin reset-password ----------

func newAdminResetPasswordCmd() *cobra.Command {
	var (
		email    string
		password string
	)

	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Set a new password for an admin user",
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := passwordOrPrompt(password)
			if err != nil {
				return err
			}
			auth, closeStore, err := openAuth()
			if err != nil {
				return err
			}
			defer closeStore()

			if err := auth.ResetPassword(contextOrBackground(cmd.Context()), email, password); err != nil {
				return fmt.Errorf("reset password: %w", err)
			}
			fmt.Printf("Password updated for %q\n", service.NormalizeEmail(email))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Admin email address (required)")
	cmd.Flags().StringVar(&password, "password", "", "New password (prompted if omitted)")
	cmd.MarkFlagRequired("email")

	return cmd
}

// openAuth opens the configured store and returns an AuthService over it
// with a function closing the store.
func openAuth() (*service.AuthService, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	st, err := openStore(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}
	return service.NewAuthService(st, newLogger(cfg)), func() { st.Close() }, nil
}

// passwordOrPrompt returns password, prompting twice on the terminal when it
// is empty, and enforces the minimum length.
func passwordOrPrompt(password string) (string, error) {
	if password == "" {
		fmt.Print("Password: ")
		pwBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Println()
		password = string(pwBytes)

		fmt.Print("Confirm password: ")
		confirmBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return "", fmt.Errorf("failed to read confirmation: %w", err)
		}
		fmt.Println()

		if password != string(confirmBytes) {
			return "", fmt.Errorf("passwords do not match")
		}
	}

	if len(password) < service.MinPasswordLength {
		return "", fmt.Errorf("password must be at least %d characters", service.MinPasswordLength)
	}
	return password, nil
}

func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
