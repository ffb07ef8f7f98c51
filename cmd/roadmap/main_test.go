package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/rijksuitgaven/roadmap/internal/roadmap"
)

const (
	cliVersioning = "## Admin Track\n\n### A1.0 - Foundation\n**Status:** ✅ Live\n\n- Member list\n- Invite flow\n"
	cliBacklog    = "### Audit log\n**Priority:** Low (A2.0)\n"
)

func writeDocs(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	v := filepath.Join(dir, "VERSIONING.md")
	b := filepath.Join(dir, "BACKLOG.md")
	if err := os.WriteFile(v, []byte(cliVersioning), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(b, []byte(cliBacklog), 0o644); err != nil {
		t.Fatal(err)
	}
	return v, b
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	viper.Reset()
	for _, name := range []string{"config", "versioning", "backlog", "tracks"} {
		_ = rootCmd.PersistentFlags().Set(name, "")
	}
	_ = parseCmd.Flags().Set("format", "json")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestParseCommand_JSON(t *testing.T) {
	v, b := writeDocs(t)
	out, err := run(t, "parse", "--versioning", v, "--backlog", b)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	var doc struct {
		Tracks map[string]struct {
			Releases []struct {
				ID            string `json:"id"`
				FeaturesTotal int    `json:"features_total"`
			} `json:"releases"`
			Backlog []struct {
				Title   string `json:"title"`
				Version string `json:"version"`
			} `json:"backlog"`
		} `json:"tracks"`
	}
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	admin := doc.Tracks["a"]
	if len(admin.Releases) != 1 || admin.Releases[0].FeaturesTotal != 2 {
		t.Errorf("admin releases = %+v", admin.Releases)
	}
	if len(admin.Backlog) != 1 || admin.Backlog[0].Version != "A2.0" {
		t.Errorf("admin backlog = %+v", admin.Backlog)
	}
}

func TestParseCommand_YAML(t *testing.T) {
	v, b := writeDocs(t)
	out, err := run(t, "parse", "--versioning", v, "--backlog", b, "--format", "yaml")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	var doc map[string]map[string]map[string]any
	if err := yaml.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if got := doc["tracks"]["a"]["name"]; got != roadmap.DefaultLabels[roadmap.TrackAdmin].Name {
		t.Errorf("admin name = %v", got)
	}
}

func TestParseCommand_Errors(t *testing.T) {
	v, b := writeDocs(t)
	if _, err := run(t, "parse", "--versioning", v, "--backlog", b, "--format", "xml"); err == nil {
		t.Error("expected error for unknown format")
	}
	if _, err := run(t, "parse", "--versioning", v); err == nil {
		t.Error("expected error without backlog")
	}
	if _, err := run(t, "parse", "--versioning", v, "--backlog", filepath.Join(filepath.Dir(b), "missing.md")); roadmap.CodeOf(err) != roadmap.CodeMissingSource {
		t.Errorf("expected missing source, got %v", err)
	}
}

func TestWriteSummary(t *testing.T) {
	var out bytes.Buffer
	err := writeSummary(&out, []roadmap.TrackSummary{
		{Key: roadmap.TrackAdmin, Name: "Admin", Releases: 2, LiveReleases: 1, FeaturesTotal: 4, FeaturesDone: 3, Backlog: 1},
	})
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and one row, got %q", out.String())
	}
	if fields := strings.Fields(lines[1]); strings.Join(fields, " ") != "a Admin 2 1 3 4 75 1" {
		t.Errorf("row = %q", lines[1])
	}
}
