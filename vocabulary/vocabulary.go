// Package vocabulary holds the static reference tables the query parser
// matches against: state names and codes, product categories with their
// synonyms, asset-type keywords and calendar words. The tables are built
// once at startup and are read-only afterwards, so concurrent reads need
// no synchronisation.
package vocabulary

import (
	"sort"
	"strings"
	"time"
)

// Category is a product category with the words customers use for it.
type Category struct {
	ID       string
	Name     string
	Synonyms []string
}

// Term maps a lookup phrase back to its canonical category.
type Term struct {
	Text       string // lowercase
	CategoryID string
}

// AssetKeyword maps a phrase to the asset type (and third-line category)
// it implies.
type AssetKeyword struct {
	Text              string // lowercase
	AssetType         string
	ThirdLineCategory string
}

// Vocabulary is the loaded gazetteer.
type Vocabulary struct {
	states        map[string]string // lowercase name or code -> state code
	stateCodes    []string
	categories    []Category
	categoryTerms []Term // sorted longest first so multi-word synonyms win
	assetKeywords []AssetKeyword
	weekdays      map[string]time.Weekday
	months        map[string]time.Month
}

// Default builds the gazetteer from the built-in tables.
func Default() *Vocabulary {
	return build(defaultCategories, nil)
}

// WithExtraSynonyms builds the gazetteer with additional synonyms merged in,
// keyed by category id. Unknown category ids are ignored.
func WithExtraSynonyms(extras map[string][]string) *Vocabulary {
	return build(defaultCategories, extras)
}

func build(cats []Category, extras map[string][]string) *Vocabulary {
	v := &Vocabulary{
		states:   make(map[string]string),
		weekdays: make(map[string]time.Weekday),
		months:   make(map[string]time.Month),
	}

	for code, names := range stateNames {
		v.stateCodes = append(v.stateCodes, code)
		v.states[strings.ToLower(code)] = code
		for _, n := range names {
			v.states[strings.ToLower(n)] = code
		}
	}
	sort.Strings(v.stateCodes)

	for _, c := range cats {
		merged := c
		if extra, ok := extras[c.ID]; ok {
			merged.Synonyms = append(append([]string{}, c.Synonyms...), extra...)
		}
		v.categories = append(v.categories, merged)
		v.categoryTerms = append(v.categoryTerms, Term{Text: strings.ToLower(merged.Name), CategoryID: merged.ID})
		if merged.ID != strings.ToLower(merged.Name) {
			v.categoryTerms = append(v.categoryTerms, Term{Text: merged.ID, CategoryID: merged.ID})
		}
		for _, s := range merged.Synonyms {
			v.categoryTerms = append(v.categoryTerms, Term{Text: strings.ToLower(s), CategoryID: merged.ID})
		}
	}
	// Longer phrases first so "ugg boots" is tried before "uggs".
	sort.SliceStable(v.categoryTerms, func(i, j int) bool {
		return len(v.categoryTerms[i].Text) > len(v.categoryTerms[j].Text)
	})

	v.assetKeywords = append(v.assetKeywords, defaultAssetKeywords...)
	sort.SliceStable(v.assetKeywords, func(i, j int) bool {
		return len(v.assetKeywords[i].Text) > len(v.assetKeywords[j].Text)
	})

	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		name := strings.ToLower(wd.String())
		v.weekdays[name] = wd
		v.weekdays[name[:3]] = wd
	}
	for m := time.January; m <= time.December; m++ {
		name := strings.ToLower(m.String())
		v.months[name] = m
		v.months[name[:3]] = m
	}

	return v
}

// StateCode resolves a token to a state code, case-insensitively.
func (v *Vocabulary) StateCode(token string) (string, bool) {
	code, ok := v.states[strings.ToLower(token)]
	return code, ok
}

// StateTokens returns every recognised state name and code, longest first.
func (v *Vocabulary) StateTokens() []string {
	tokens := make([]string, 0, len(v.states))
	for t := range v.states {
		tokens = append(tokens, t)
	}
	sort.SliceStable(tokens, func(i, j int) bool {
		if len(tokens[i]) != len(tokens[j]) {
			return len(tokens[i]) > len(tokens[j])
		}
		return tokens[i] < tokens[j]
	})
	return tokens
}

// Categories returns the category table.
func (v *Vocabulary) Categories() []Category {
	return v.categories
}

// CategoryName returns the display name for a category id.
func (v *Vocabulary) CategoryName(id string) string {
	for _, c := range v.categories {
		if c.ID == id {
			return c.Name
		}
	}
	return id
}

// CategoryTerms returns every category name and synonym, longest first.
func (v *Vocabulary) CategoryTerms() []Term {
	return v.categoryTerms
}

// AssetKeywords returns the asset-type keyword table, longest first.
func (v *Vocabulary) AssetKeywords() []AssetKeyword {
	return v.assetKeywords
}

// Weekday resolves a weekday name or three-letter abbreviation.
func (v *Vocabulary) Weekday(name string) (time.Weekday, bool) {
	wd, ok := v.weekdays[strings.ToLower(name)]
	return wd, ok
}

// Month resolves a month name or three-letter abbreviation.
func (v *Vocabulary) Month(name string) (time.Month, bool) {
	m, ok := v.months[strings.ToLower(name)]
	return m, ok
}
