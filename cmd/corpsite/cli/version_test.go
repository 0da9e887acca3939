package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/corpsite/corpsite/internal/store"
)

func TestVersionCmdJSON(t *testing.T) {
	cmd := newVersionCmd("1.2.3", "abc123", "2026-01-02")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--json"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	var info buildInfo
	if err := json.Unmarshal(out.Bytes(), &info); err != nil {
		t.Fatalf("decode: %v\n%s", err, out.String())
	}
	if info.Version != "1.2.3" || info.Commit != "abc123" {
		t.Errorf("unexpected build info %+v", info)
	}
	if info.Schema != store.SchemaVersion() || info.Schema == 0 {
		t.Errorf("schema = %d, want %d", info.Schema, store.SchemaVersion())
	}
	if len(info.Databases) != 3 {
		t.Errorf("databases = %v", info.Databases)
	}
}

func TestVersionCmdText(t *testing.T) {
	cmd := newVersionCmd("1.2.3", "abc123", "2026-01-02")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	for _, want := range []string{"corpsite 1.2.3", "migrations", "sqlite, postgres, mysql"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}
