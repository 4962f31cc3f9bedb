package usecase

import (
	"cmp"
	"slices"
	"strings"

	"movie-review/internal/catalog"
)

// MaxMergedCredits caps the merged filmography.
const MaxMergedCredits = 20

// MergeCredits combines a person's cast and crew credits into one list with
// at most one entry per movie. Acting credits win over crew credits for the
// same movie. The result is ordered newest first (ISO dates compared as
// strings, undated last), ties broken by movie id, and capped at
// MaxMergedCredits. Output does not depend on input order.
func MergeCredits(cast, crew []catalog.Credit) []catalog.Credit {
	byMovie := bestPerMovie(crew)
	for id, c := range bestPerMovie(cast) {
		byMovie[id] = c
	}

	merged := make([]catalog.Credit, 0, len(byMovie))
	for _, c := range byMovie {
		merged = append(merged, c)
	}

	slices.SortFunc(merged, func(a, b catalog.Credit) int {
		if a.ReleaseDate != b.ReleaseDate {
			switch {
			case a.ReleaseDate == "":
				return 1
			case b.ReleaseDate == "":
				return -1
			}
			return strings.Compare(b.ReleaseDate, a.ReleaseDate)
		}
		return strings.Compare(a.MovieID, b.MovieID)
	})

	if len(merged) > MaxMergedCredits {
		merged = merged[:MaxMergedCredits]
	}
	return merged
}

// bestPerMovie keeps one credit per movie id from a single list.
func bestPerMovie(credits []catalog.Credit) map[string]catalog.Credit {
	best := make(map[string]catalog.Credit, len(credits))
	for _, c := range credits {
		if prev, ok := best[c.MovieID]; !ok || compareCredits(c, prev) < 0 {
			best[c.MovieID] = c
		}
	}
	return best
}

func compareCredits(a, b catalog.Credit) int {
	return cmp.Or(
		strings.Compare(a.Role.Descriptor(), b.Role.Descriptor()),
		strings.Compare(a.Title, b.Title),
		strings.Compare(a.ReleaseDate, b.ReleaseDate),
		strings.Compare(a.PosterURL, b.PosterURL),
		cmp.Compare(a.VoteAverage, b.VoteAverage),
		strings.Compare(a.Overview, b.Overview),
	)
}
