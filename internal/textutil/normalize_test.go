package textutil

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestNormalizeTitleStripsDecorativeSuffix(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"The Naked Gun (více)", "The Naked Gun"},
		{"The Naked Gun (VÍCE)", "The Naked Gun"},
		{"Long   Title\n\twith   runs", "Long Title with runs"},
		{"  padded  ", "padded"},
		{"", ""},
		{"No suffix here", "No suffix here"},
		{"Contains (více) inside (more)", "Contains (více) inside"},
	}
	for _, tc := range cases {
		if got := NormalizeTitle(tc.raw); got != tc.want {
			t.Errorf("NormalizeTitle(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestNormalizeTitleIdempotent(t *testing.T) {
	inputs := []string{
		"The Naked Gun (více)",
		"  Dune:\tPart   Two ",
		"",
		"Plain",
	}
	for _, raw := range inputs {
		once := NormalizeTitle(raw)
		twice := NormalizeTitle(once)
		if once != twice {
			t.Errorf("NormalizeTitle not idempotent for %q: %q != %q", raw, once, twice)
		}
	}
}

func TestFoldForComparison(t *testing.T) {
	if got := FoldForComparison("Želary"); got != "zelary" {
		t.Fatalf("FoldForComparison(Želary) = %q", got)
	}
	if got := FoldForComparison("  DUNE  "); got != "dune" {
		t.Fatalf("FoldForComparison trims and lowercases, got %q", got)
	}
}

func TestWordOverlap(t *testing.T) {
	if got := WordOverlap("Dune Part Two", "Dune Part One"); got != 2 {
		t.Fatalf("expected overlap 2, got %d", got)
	}
	if got := WordOverlap("", "anything"); got != 0 {
		t.Fatalf("expected overlap 0 for empty input, got %d", got)
	}
	if got := WordOverlap("Obchod na korze", "Obchod NA Korze"); got != 3 {
		t.Fatalf("overlap should fold case, got %d", got)
	}
}

func TestCleanDescriptionTruncatesAtSentence(t *testing.T) {
	first := strings.Repeat("a", 150) + "."
	second := " " + strings.Repeat("b", 200) + "."
	got := CleanDescription(first + second)
	if got != first {
		t.Fatalf("expected truncation at first sentence end, got %d chars: %q…", len(got), got[:40])
	}
}

func TestCleanDescriptionFallsBackToWordCut(t *testing.T) {
	raw := strings.Repeat("word ", 100)
	got := CleanDescription(raw)
	if len(got) > DescriptionLimit+len("…") {
		t.Fatalf("description exceeds budget: %d chars", len(got))
	}
	if !strings.HasSuffix(got, "…") {
		t.Fatalf("word-cut truncation should append ellipsis, got %q", got[len(got)-10:])
	}
}

func TestCleanDescriptionCutsOnRuneBoundary(t *testing.T) {
	// Unbroken three-byte runes with no spaces or sentence ends force the
	// raw-limit cut, and the limit falls mid-rune.
	raw := strings.Repeat("海", 100)
	got := CleanDescription(raw)
	if !utf8.ValidString(got) {
		t.Fatalf("truncation split a rune: %q", got)
	}
	if !strings.HasSuffix(got, "…") {
		t.Fatalf("expected ellipsis suffix, got %q", got)
	}
	if len(got) > DescriptionLimit+len("…") {
		t.Fatalf("description exceeds budget: %d bytes", len(got))
	}
}

func TestCleanDescriptionStripsDistributorNoise(t *testing.T) {
	got := CleanDescription("A quiet drama (Netflix) about bees. (HBO Max)")
	if strings.Contains(got, "Netflix") || strings.Contains(got, "HBO") {
		t.Fatalf("distributor notes should be stripped, got %q", got)
	}
	if !strings.Contains(got, "about bees.") {
		t.Fatalf("content should survive, got %q", got)
	}
}

func TestCleanDescriptionShortInputUnchanged(t *testing.T) {
	if got := CleanDescription("Short blurb."); got != "Short blurb." {
		t.Fatalf("short input should pass through, got %q", got)
	}
}
