package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/corpsite/corpsite/internal/openapi"
)

func newOpenAPICmd() *cobra.Command {
	var (
		outputFile string
		serverURL  string
		format     string
	)

	cmd := &cobra.Command{
		Use:   "openapi",
		Short: "Generate the OpenAPI specification",
		Long: `Generate the OpenAPI 3 description of the HTTP API, the same document
served at /openapi.json.`,
		Example: `  corpsite openapi                           # JSON to stdout
  corpsite openapi --format yaml -o api.yaml  # write YAML to a file
  corpsite openapi --server https://api.example.com`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOpenAPI(outputFile, serverURL, format)
		},
	}

	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write spec to file instead of stdout")
	cmd.Flags().StringVar(&serverURL, "server", "", "Server URL to list in the document")
	cmd.Flags().StringVar(&format, "format", "json", "Output format: json or yaml")

	return cmd
}

func runOpenAPI(outputFile, serverURL, format string) error {
	doc := openapi.Generate(versionString(), serverURL)

	var (
		out []byte
		err error
	)
	switch format {
	case "json":
		out, err = json.MarshalIndent(doc, "", "  ")
	case "yaml", "yml":
		out, err = yaml.Marshal(doc)
	default:
		return fmt.Errorf("unsupported format %q; use 'json' or 'yaml'", format)
	}
	if err != nil {
		return fmt.Errorf("render spec: %w", err)
	}

	if outputFile == "" {
		fmt.Println(string(out))
		return nil
	}
	if err := os.WriteFile(outputFile, out, 0644); err != nil {
		return fmt.Errorf("write spec: %w", err)
	}
	fmt.Printf("Wrote %s\n", outputFile)
	return nil
}
