package discovery

import (
	"github.com/lachuoi/mstd-random-restaurant/internal/providers/googleplaces"
)

// Venues carrying any of these types are dropped regardless of rating. The
// nearby search matches hotels and gas stations that happen to serve food;
// none of them make an interesting restaurant post.
var excludedTypes = map[string]struct{}{
	"hotel":                  {},
	"lodge":                  {},
	"lodging":                {},
	"gas_station":            {},
	"convenience_store":      {},
	"grocery_or_supermarket": {},
	"night_club":             {},
}

const (
	minRating       = 3.0
	minRatingsTotal = 100
)

// qualifies applies the fixed inclusion/exclusion policy. Missing rating
// fields decode to zero and therefore exclude the candidate.
func qualifies(c googleplaces.Candidate) bool {
	for _, t := range c.Types {
		if _, excluded := excludedTypes[t]; excluded {
			return false
		}
	}
	return c.Rating >= minRating && c.UserRatingsTotal >= minRatingsTotal
}

// filterCandidates returns the survivors of the exclusion and inclusion
// filters, preserving response order.
func filterCandidates(candidates []googleplaces.Candidate) []googleplaces.Candidate {
	var survivors []googleplaces.Candidate
	for _, c := range candidates {
		if qualifies(c) {
			survivors = append(survivors, c)
		}
	}
	return survivors
}
