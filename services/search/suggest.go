package search

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
	"go.uber.org/zap"

	"leasely/database/repository"
	"leasely/models"
)

// DefaultMaxDistancePct is the typo tolerance for "did you mean"
// suggestions: the edit distance allowed, as a percentage of the query
// length. Tunable via config.
const DefaultMaxDistancePct = 30

// AutocompleteMinChars guards the typeahead against noisy one-letter
// queries; shorter input returns empty without touching the catalog.
const AutocompleteMinChars = 2

// SuggestionService offers typo-tolerant centre-name matching, both for
// autocomplete-while-typing and for "did you mean" fallback when a search
// finds no centres.
type SuggestionService struct {
	Catalog        repository.CatalogRepository
	MaxDistancePct int
	Logger         *zap.Logger
}

// maxDistance is the edit-distance ceiling for a query of this length.
func (s *SuggestionService) maxDistance(query string) int {
	pct := s.MaxDistancePct
	if pct <= 0 {
		pct = DefaultMaxDistancePct
	}
	d := len(query) * pct / 100
	if d < 1 {
		d = 1
	}
	return d
}

// Suggest returns "did you mean" alternatives for a centre-name phrase.
// Exact substring matches on name, suburb or city rank first; fuzzy matches
// within the edit-distance threshold follow, ordered by distance then name.
func (s *SuggestionService) Suggest(ctx context.Context, phrase string, limit int) ([]models.Suggestion, error) {
	phrase = strings.TrimSpace(phrase)
	if phrase == "" {
		return nil, nil
	}

	centres, err := s.allCentres(ctx)
	if err != nil {
		return nil, err
	}

	query := strings.ToLower(phrase)
	var exact, fuzzyHits []models.Suggestion

	for _, c := range centres {
		if field, ok := substringField(c, query); ok {
			exact = append(exact, models.Suggestion{
				CentreID:   c.ID,
				CentreName: c.Name,
				Reason:     fmt.Sprintf("Matches %s", field),
			})
			continue
		}
		// Single characters are too noisy to fuzzy-match.
		if len(query) <= 1 {
			continue
		}
		if d, ok := s.fuzzyDistance(query, c.Name); ok {
			fuzzyHits = append(fuzzyHits, models.Suggestion{
				CentreID:   c.ID,
				CentreName: c.Name,
				Reason:     fmt.Sprintf("Did you mean %s?", c.Name),
				Distance:   d,
			})
		}
	}

	sort.Slice(exact, func(i, j int) bool { return exact[i].CentreName < exact[j].CentreName })
	sort.Slice(fuzzyHits, func(i, j int) bool {
		if fuzzyHits[i].Distance != fuzzyHits[j].Distance {
			return fuzzyHits[i].Distance < fuzzyHits[j].Distance
		}
		return fuzzyHits[i].CentreName < fuzzyHits[j].CentreName
	})

	out := append(exact, fuzzyHits...)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// fuzzyDistance finds the best edit distance between the query and the
// centre name or any of its words, accepting it under the threshold.
func (s *SuggestionService) fuzzyDistance(query, name string) (int, bool) {
	max := s.maxDistance(query)
	best := levenshtein(query, strings.ToLower(name))
	for _, w := range strings.Fields(strings.ToLower(name)) {
		if d := levenshtein(query, w); d < best {
			best = d
		}
	}
	if best > max {
		return 0, false
	}
	return best, true
}

// Autocomplete is the lighter typeahead: substring hits first, then
// subsequence matches ranked by sahilm/fuzzy. Input under two characters
// returns empty without querying the catalog.
func (s *SuggestionService) Autocomplete(ctx context.Context, partial string, limit int) ([]models.Centre, error) {
	partial = strings.TrimSpace(partial)
	if len(partial) < AutocompleteMinChars {
		return nil, nil
	}

	centres, err := s.allCentres(ctx)
	if err != nil {
		return nil, err
	}

	query := strings.ToLower(partial)
	var out []models.Centre
	seen := make(map[string]bool)

	for _, c := range centres {
		if _, ok := substringField(c, query); ok {
			out = append(out, c)
			seen[c.ID] = true
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	names := make([]string, len(centres))
	for i, c := range centres {
		names[i] = c.Name
	}
	for _, m := range fuzzy.Find(partial, names) {
		c := centres[m.Index]
		if seen[c.ID] {
			continue
		}
		out = append(out, c)
		seen[c.ID] = true
	}

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// allCentres loads the centre index both matchers run over.
func (s *SuggestionService) allCentres(ctx context.Context) ([]models.Centre, error) {
	centres, err := s.Catalog.AllCentres(ctx)
	if err != nil {
		if s.Logger != nil {
			s.Logger.Warn("failed to load centre index", zap.Error(err))
		}
		return nil, fmt.Errorf("failed to load centre index: %w", err)
	}
	return centres, nil
}

// substringField reports which of name, suburb or city contains the
// lowercase query.
func substringField(c models.Centre, query string) (string, bool) {
	switch {
	case strings.Contains(strings.ToLower(c.Name), query):
		return c.Name, true
	case c.Suburb != "" && strings.Contains(strings.ToLower(c.Suburb), query):
		return c.Suburb, true
	case c.City != "" && strings.Contains(strings.ToLower(c.City), query):
		return c.City, true
	}
	return "", false
}

// levenshtein is the classic single-row edit distance.
func levenshtein(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}
	prev := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr := make([]int, len(b)+1)
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev = curr
	}
	return prev[len(b)]
}
