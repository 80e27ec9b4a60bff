package xref

import "testing"

func TestScoreExactTitleAndYear(t *testing.T) {
	c := Candidate{ID: "tt1", Title: "Dune", Year: "2021"}
	if got := score("Dune", "2021", c); got != 300 {
		t.Fatalf("exact title + year = %d, want 300", got)
	}
}

func TestScoreYearUnknownStillCounts(t *testing.T) {
	c := Candidate{ID: "tt1", Title: "Dune", Year: ""}
	if got := score("Dune", "2021", c); got != 300 {
		t.Fatalf("unknown candidate year should earn the year bonus, got %d", got)
	}
	if got := score("Dune", "", c); got != 300 {
		t.Fatalf("unknown query year should earn the year bonus, got %d", got)
	}
}

func TestScoreContainment(t *testing.T) {
	contains := Candidate{Title: "Dune Part Two", Year: "2024"}
	if got := score("Dune", "2021", contains); got != scoreCandidateHasQry {
		t.Fatalf("candidate-contains-query = %d, want %d", got, scoreCandidateHasQry)
	}
	within := Candidate{Title: "Dune", Year: "2024"}
	if got := score("Dune Part Two", "2021", within); got != scoreQryHasCandidate {
		t.Fatalf("query-contains-candidate = %d, want %d", got, scoreQryHasCandidate)
	}
}

func TestScoreWordOverlap(t *testing.T) {
	c := Candidate{Title: "The Last Dance Again", Year: "1999"}
	// Overlapping words with "First Dance Last": "dance", "last" -> 2 * 20.
	if got := score("First Dance Last", "1999", c); got != scoreYearMatch+2*scorePerWordOverlap {
		t.Fatalf("word overlap score = %d", got)
	}
}

func TestScoreFoldsDiacritics(t *testing.T) {
	c := Candidate{Title: "Zelary", Year: "2003"}
	if got := score("Želary", "2003", c); got != 300 {
		t.Fatalf("diacritics should fold for comparison, got %d", got)
	}
}

func TestPickBestSpecScenario(t *testing.T) {
	candidates := []Candidate{
		{ID: "tt1", Title: "Dune", Year: "2021"},
		{ID: "tt2", Title: "Dune Part Two", Year: "2024"},
	}
	best := pickBest("Dune", "2021", candidates, 10)
	if best == nil || best.ID != "tt1" {
		t.Fatalf("expected tt1 to win, got %+v", best)
	}
}

func TestPickBestTieKeepsFirst(t *testing.T) {
	candidates := []Candidate{
		{ID: "tt1", Title: "Dune", Year: "2021"},
		{ID: "tt2", Title: "Dune", Year: "2021"},
	}
	best := pickBest("Dune", "2021", candidates, 10)
	if best == nil || best.ID != "tt1" {
		t.Fatalf("ties must break by result order, got %+v", best)
	}
}

func TestPickBestDeterministic(t *testing.T) {
	candidates := []Candidate{
		{ID: "tt1", Title: "Alpha Beta", Year: "2000"},
		{ID: "tt2", Title: "Alpha", Year: "2000"},
		{ID: "tt3", Title: "Beta", Year: "2001"},
	}
	first := pickBest("Alpha", "2000", candidates, 10)
	for i := 0; i < 5; i++ {
		again := pickBest("Alpha", "2000", candidates, 10)
		if again == nil || first == nil || again.ID != first.ID {
			t.Fatalf("scoring must be deterministic: run %d got %+v, first %+v", i, again, first)
		}
	}
}

func TestPickBestAllZeroReturnsNil(t *testing.T) {
	candidates := []Candidate{
		{ID: "tt1", Title: "Completely Unrelated", Year: "1950"},
	}
	if best := pickBest("Dune", "2021", candidates, 10); best != nil {
		t.Fatalf("zero-scoring candidates must be excluded, got %+v", best)
	}
}

func TestPickBestHonorsMaxN(t *testing.T) {
	candidates := []Candidate{
		{ID: "tt1", Title: "Nothing Shared Here", Year: "1950"},
		{ID: "tt2", Title: "Dune", Year: "2021"},
	}
	if best := pickBest("Dune", "2021", candidates, 1); best != nil {
		t.Fatalf("candidates past maxN must be ignored, got %+v", best)
	}
}
