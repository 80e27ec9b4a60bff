package ratings

import (
	"testing"
)

func TestParseKind(t *testing.T) {
	cases := []struct {
		raw  string
		want Kind
	}{
		{"", KindWork},
		{"film", KindWork},
		{"series", KindSeries},
		{"seriál", KindSeries},
		{"episode", KindEpisode},
		{"epizoda", KindEpisode},
		{"série", KindSeason},
		{" SERIES ", KindSeries},
	}
	for _, tc := range cases {
		if got := ParseKind(tc.raw); got != tc.want {
			t.Errorf("ParseKind(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestKeyDistinguishesURLAndTitle(t *testing.T) {
	a := Item{SourceURL: "https://example.test/film/1", Title: "Dune"}
	b := Item{SourceURL: "https://example.test/film/1", Title: "Dune Part Two"}
	c := Item{SourceURL: "https://example.test/film/2", Title: "Dune"}
	if a.Key() == b.Key() || a.Key() == c.Key() {
		t.Fatal("keys must differ when either URL or title differs")
	}
}

func TestDedupKeepsFirstOccurrence(t *testing.T) {
	items := []Item{
		{SourceURL: "u1", Title: "A", Rating: "5"},
		{SourceURL: "u2", Title: "B"},
		{SourceURL: "u1", Title: "A", Rating: "1"},
	}
	got := Dedup(items)
	if len(got) != 2 {
		t.Fatalf("expected 2 items after dedup, got %d", len(got))
	}
	if got[0].Rating != "5" {
		t.Fatalf("dedup must keep the first occurrence, got rating %q", got[0].Rating)
	}
}

func TestSortByListOrder(t *testing.T) {
	items := []Item{
		{Title: "C", ListIndex: 2},
		{Title: "A", ListIndex: 0},
		{Title: "B", ListIndex: 1},
	}
	SortByListOrder(items)
	for i, want := range []string{"A", "B", "C"} {
		if items[i].Title != want {
			t.Fatalf("position %d: got %q, want %q", i, items[i].Title, want)
		}
	}
}

func TestFieldsMatchFieldNames(t *testing.T) {
	item := Item{Title: "X", Kind: KindWork}
	if len(item.Fields()) != len(FieldNames()) {
		t.Fatalf("Fields() length %d != FieldNames() length %d", len(item.Fields()), len(FieldNames()))
	}
}
