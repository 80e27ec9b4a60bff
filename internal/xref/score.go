package xref

import (
	"strings"

	"ratingsync/internal/textutil"
)

// Candidate is one search result under consideration. Ephemeral; only the
// winning id/URL pair leaves this package.
type Candidate struct {
	ID    string
	URL   string
	Title string
	Year  string
}

// Scoring weights. Empirically chosen upstream; relative ordering matters
// more than the absolute values.
const (
	scoreYearMatch       = 100
	scoreExactTitle      = 200
	scoreCandidateHasQry = 150
	scoreQryHasCandidate = 100
	scorePerWordOverlap  = 20
)

// score rates one candidate against the cleaned query title and year.
func score(query, year string, candidate Candidate) int {
	total := 0

	if year == "" || candidate.Year == "" || year == candidate.Year {
		total += scoreYearMatch
	}

	queryFolded := textutil.FoldForComparison(query)
	candidateFolded := textutil.FoldForComparison(candidate.Title)
	switch {
	case queryFolded == "" || candidateFolded == "":
	case queryFolded == candidateFolded:
		total += scoreExactTitle
	case strings.Contains(candidateFolded, queryFolded):
		total += scoreCandidateHasQry
	case strings.Contains(queryFolded, candidateFolded):
		total += scoreQryHasCandidate
	default:
		total += scorePerWordOverlap * textutil.WordOverlap(query, candidate.Title)
	}

	return total
}

// pickBest returns the highest-scoring candidate from the first maxN entries,
// ties broken by result order. Candidates scoring zero are excluded; when
// nothing scores, nil is returned rather than a weak guess.
func pickBest(query, year string, candidates []Candidate, maxN int) *Candidate {
	if maxN > 0 && len(candidates) > maxN {
		candidates = candidates[:maxN]
	}
	var best *Candidate
	bestScore := 0
	for idx := range candidates {
		s := score(query, year, candidates[idx])
		if s > bestScore {
			best = &candidates[idx]
			bestScore = s
		}
	}
	return best
}
