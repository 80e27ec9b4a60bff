package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ratingsync/internal/config"
	"ratingsync/internal/detailcache"
)

// runCLI executes the command tree in-process and captures its output.
func runCLI(t *testing.T, args []string, configPath string) (string, error) {
	t.Helper()

	if configPath != "" {
		args = append([]string{"--config", configPath}, args...)
	}
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeTestConfig(t *testing.T) string {
	t.Helper()

	base := t.TempDir()
	configPath := filepath.Join(base, "config.toml")
	body := fmt.Sprintf(`[paths]
data_dir = %q
output_dir = %q
log_dir = %q

[source]
ratings_path = "/uzivatel/42/hodnoceni/"
`, filepath.Join(base, "data"), filepath.Join(base, "out"), filepath.Join(base, "logs"))
	if err := os.WriteFile(configPath, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return configPath
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("output %q does not contain %q", haystack, needle)
	}
}

func TestRootHelpListsCommands(t *testing.T) {
	out, err := runCLI(t, []string{"--help"}, "")
	if err != nil {
		t.Fatalf("help: %v", err)
	}
	for _, name := range []string{"harvest", "cache", "config"} {
		requireContains(t, out, name)
	}
}

func TestCacheStatsEmpty(t *testing.T) {
	configPath := writeTestConfig(t)
	out, err := runCLI(t, []string{"cache", "stats"}, configPath)
	if err != nil {
		t.Fatalf("cache stats: %v", err)
	}
	requireContains(t, out, "Entries")
	requireContains(t, out, "0")
}

func TestCacheShow(t *testing.T) {
	configPath := writeTestConfig(t)

	out, err := runCLI(t, []string{"cache", "show"}, configPath)
	if err != nil {
		t.Fatalf("cache show: %v", err)
	}
	requireContains(t, out, "Cache is empty")

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	store := detailcache.NewStore(cfg.CachePath(), true, nil)
	store.Put("https://example.test/film/1-vlny/", detailcache.Entry{
		ExternalID:    "tt3402138",
		OriginalTitle: "Waves",
	})
	store.Put("https://example.test/film/2-nikde/", detailcache.Entry{Status: detailcache.StatusNotFound})
	if err := store.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}

	out, err = runCLI(t, []string{"cache", "show"}, configPath)
	if err != nil {
		t.Fatalf("cache show: %v", err)
	}
	requireContains(t, out, "https://example.test/film/1-vlny/")
	requireContains(t, out, "tt3402138")
	requireContains(t, out, "not_found")

	out, err = runCLI(t, []string{"cache", "show", "--json"}, configPath)
	if err != nil {
		t.Fatalf("cache show --json: %v", err)
	}
	requireContains(t, out, `"source": "https://example.test/film/2-nikde/"`)
	requireContains(t, out, `"external_id": "tt3402138"`)
}

func TestCacheClearEmpty(t *testing.T) {
	configPath := writeTestConfig(t)
	out, err := runCLI(t, []string{"cache", "clear"}, configPath)
	if err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	requireContains(t, out, "Removed 0 cached entries")
}
