package main

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"ratingsync/internal/harvest"
)

func TestConfigInit(t *testing.T) {
	tmp := t.TempDir()
	target := filepath.Join(tmp, "config.toml")

	out, err := runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")

	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	// A second init without --overwrite refuses to clobber the file.
	if _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil {
		t.Fatal("expected error for existing config file")
	}

	if _, err := runCLI(t, []string{"config", "init", "--path", target, "--overwrite"}, ""); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
}

func TestConfigShow(t *testing.T) {
	configPath := writeTestConfig(t)
	out, err := runCLI(t, []string{"config", "show"}, configPath)
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, configPath)
	requireContains(t, out, "ratings_path")
	requireContains(t, out, "/uzivatel/42/hodnoceni/")
	requireContains(t, out, "[harvest]")
}

func TestConfigValidate(t *testing.T) {
	configPath := writeTestConfig(t)
	out, err := runCLI(t, []string{"config", "validate"}, configPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")

	// A config without the rating-list path loads but must fail validation.
	base := t.TempDir()
	incomplete := filepath.Join(base, "config.toml")
	body := fmt.Sprintf("[paths]\ndata_dir = %q\noutput_dir = %q\nlog_dir = %q\n",
		filepath.Join(base, "data"), filepath.Join(base, "out"), filepath.Join(base, "logs"))
	if err := os.WriteFile(incomplete, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := runCLI(t, []string{"config", "validate"}, incomplete); err == nil {
		t.Fatal("expected validation error without ratings_path")
	}
}

func TestRenderSummary(t *testing.T) {
	out := renderSummary(&harvest.Summary{
		Total:          42,
		PagesWalked:    3,
		WithExternalID: 40,
		CacheHits:      12,
		Failures:       1,
		Elapsed:        1500 * time.Millisecond,
		CSVPath:        "/tmp/ratings.csv",
		JSONPath:       "/tmp/ratings.json",
	})
	requireContains(t, out, "42")
	requireContains(t, out, "/tmp/ratings.csv")
	requireContains(t, out, "Cache hits")
}
