package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/corpsite/corpsite/internal/store"
)

// buildInfo is what "corpsite version" reports. Schema is the number of
// migrations the binary applies, so operators can tell whether two builds
// agree on the database layout.
type buildInfo struct {
	Version   string   `json:"version"`
	Commit    string   `json:"commit"`
	Built     string   `json:"built"`
	Schema    int      `json:"schema"`
	Databases []string `json:"databases"`
	GoVersion string   `json:"goVersion"`
	Platform  string   `json:"platform"`
}

func newBuildInfo(version, commit, date string) buildInfo {
	return buildInfo{
		Version:   version,
		Commit:    commit,
		Built:     date,
		Schema:    store.SchemaVersion(),
		Databases: store.Drivers(),
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

func (b buildInfo) write(w io.Writer) {
	fmt.Fprintf(w, "corpsite %s (%s, built %s)\n", b.Version, b.Commit, b.Built)
	fmt.Fprintf(w, "  schema:    %d migrations\n", b.Schema)
	fmt.Fprintf(w, "  databases: %s\n", strings.Join(b.Databases, ", "))
	fmt.Fprintf(w, "  runtime:   %s %s\n", b.GoVersion, b.Platform)
}

func newVersionCmd(version, commit, date string) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build, schema and runtime information",
		RunE: func(cmd *cobra.Command, args []string) error {
			info := newBuildInfo(version, commit, date)
			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}
			info.write(cmd.OutOrStdout())
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output version info as JSON")

	return cmd
}
