package cli

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newStatusCmd() *cobra.Command {
	var url string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Check whether a corpsite server is up and ready",
		Long:  "Probe the liveness and readiness endpoints of a running corpsite server.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(url)
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "Base URL of the server (default from server.host and server.port)")

	return cmd
}

func runStatus(base string) error {
	if base == "" {
		host := viper.GetString("server.host")
		if host == "" || host == "0.0.0.0" {
			host = "127.0.0.1"
		}
		base = fmt.Sprintf("http://%s:%d", host, viper.GetInt("server.port"))
	}

	client := &http.Client{Timeout: 2 * time.Second}
	var notReady bool
	for _, probe := range []string{"/healthz", "/readyz"} {
		status, code, err := probeEndpoint(client, base+probe)
		if err != nil {
			fmt.Printf("  %-9s unreachable (%v)\n", probe, err)
			notReady = true
			continue
		}
		fmt.Printf("  %-9s %s (%d)\n", probe, status, code)
		if code != http.StatusOK {
			notReady = true
		}
	}
	if notReady {
		return fmt.Errorf("server at %s is not ready", base)
	}
	return nil
}

func probeEndpoint(client *http.Client, url string) (string, int, error) {
	resp, err := client.Get(url)
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close()

	var body struct {
		Status string `json:"status"`
	}
	json.NewDecoder(resp.Body).Decode(&body)
	return body.Status, resp.StatusCode, nil
}
