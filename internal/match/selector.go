// package match picks the best lyric candidate for a resolved track identity.
package match

import (
	"strings"

	"github.com/desertthunder/lrcdl/internal/lrclib"
	"github.com/desertthunder/lrcdl/internal/metadata"
)

// Confidence grades how well the selected candidate matches the identity.
type Confidence string

const (
	// Exact means artist and title both matched case-insensitively.
	Exact Confidence = "exact"
	// Fuzzy means the service's top eligible result was trusted without a textual match.
	Fuzzy Confidence = "fuzzy"
	// None means no usable candidate existed.
	None Confidence = "none"
)

// Result is the outcome of selecting among candidates.
// Candidate is nil if and only if Confidence is None.
type Result struct {
	Candidate  *lrclib.Candidate
	Confidence Confidence
}

// Select picks the best candidate for id from candidates, preserving the
// service's returned order as the tie-break.
//
// A candidate without lyric content is ineligible. The first eligible
// candidate whose artist and title equal the identity case-insensitively
// (after trimming) wins as Exact; otherwise the first eligible candidate
// wins as Fuzzy. Exact textual identity is the only local signal; all other
// ranking is delegated to the service.
func Select(id metadata.Identity, candidates []lrclib.Candidate) Result {
	var fallback *lrclib.Candidate

	for i := range candidates {
		c := &candidates[i]
		if !c.HasLyrics() {
			continue
		}

		if equalsFold(c.Artist, id.Artist) && equalsFold(c.Title, id.Title) {
			return Result{Candidate: c, Confidence: Exact}
		}

		if fallback == nil {
			fallback = c
		}
	}

	if fallback != nil {
		return Result{Candidate: fallback, Confidence: Fuzzy}
	}

	return Result{Confidence: None}
}

func equalsFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
