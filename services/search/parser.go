package search

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"leasely/models"
	"leasely/vocabulary"
)

// Parser turns a free-text query into a structured filter. It never fails:
// anything it cannot claim stays in CentreNamePhrase.
type Parser struct {
	Vocab *vocabulary.Vocabulary
	Now   func() time.Time

	assetRe    *regexp.Regexp
	categoryRe *regexp.Regexp
	stateRe    *regexp.Regexp
	assetByKw  map[string]vocabulary.AssetKeyword
	categoryBy map[string]string
}

// NewParser builds a parser over the given gazetteer, precompiling the
// vocabulary-driven patterns.
func NewParser(v *vocabulary.Vocabulary) *Parser {
	p := &Parser{
		Vocab:      v,
		Now:        time.Now,
		assetByKw:  make(map[string]vocabulary.AssetKeyword),
		categoryBy: make(map[string]string),
	}

	var assetAlts []string
	for _, kw := range v.AssetKeywords() {
		assetAlts = append(assetAlts, regexp.QuoteMeta(kw.Text))
		p.assetByKw[kw.Text] = kw
	}
	p.assetRe = regexp.MustCompile(`(?i)\b(?:` + strings.Join(assetAlts, "|") + `)\b`)

	var catAlts []string
	for _, t := range v.CategoryTerms() {
		catAlts = append(catAlts, regexp.QuoteMeta(t.Text))
		p.categoryBy[t.Text] = t.CategoryID
	}
	p.categoryRe = regexp.MustCompile(`(?i)\b(?:` + strings.Join(catAlts, "|") + `)\b`)

	var stateAlts []string
	for _, t := range v.StateTokens() {
		stateAlts = append(stateAlts, regexp.QuoteMeta(t))
	}
	p.stateRe = regexp.MustCompile(`(?i)\b(?:` + strings.Join(stateAlts, "|") + `)\b`)

	return p
}

// An extractor claims spans of the working text and binds typed fields.
// It returns the text with every claimed span blanked out, so later
// extractors can never re-match it.
type extractor struct {
	name string
	fn   func(p *Parser, text string, f *models.ParsedFilter) string
}

// extractorOrder is the extraction contract. The order matters: a size
// token like "20sqm" must be claimed before the date extractor could
// misread its digits, and the category extractor must only see text no
// earlier extractor wanted.
var extractorOrder = []extractor{
	{"assetType", (*Parser).extractAssetType},
	{"budget", (*Parser).extractBudget},
	{"size", (*Parser).extractSize},
	{"tables", (*Parser).extractTables},
	{"date", (*Parser).extractDates},
	{"category", (*Parser).extractCategory},
	{"state", (*Parser).extractState},
}

// Parse interprets raw free text. The residual centre-name phrase is
// idempotent: parsing it again extracts no further typed fields.
func (p *Parser) Parse(raw string) models.ParsedFilter {
	var f models.ParsedFilter
	text := raw
	for _, ex := range extractorOrder {
		text = ex.fn(p, text, &f)
	}
	f.CentreNamePhrase = collapseResidual(text)
	return f
}

func (p *Parser) extractAssetType(text string, f *models.ParsedFilter) string {
	matches := p.assetRe.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return text
	}
	first := strings.ToLower(text[matches[0][0]:matches[0][1]])
	if kw, ok := p.assetByKw[first]; ok {
		f.AssetType = models.AssetType(kw.AssetType)
		f.ThirdLineCategory = kw.ThirdLineCategory
	}
	return blankMatches(text, matches)
}

var budgetRe = regexp.MustCompile(`(?i)(?:\b(?:under|budget|max)\s+)?\$\s*(\d+(?:\.\d+)?)(?:\s*(?:/|\bper\s+)?\s*(day|week|pd|pw)\b)?`)

func (p *Parser) extractBudget(text string, f *models.ParsedFilter) string {
	matches := budgetRe.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return text
	}
	m := matches[0]
	amount, err := strconv.ParseFloat(text[m[2]:m[3]], 64)
	if err == nil {
		period := models.BudgetTotal
		if m[4] >= 0 {
			switch strings.ToLower(text[m[4]:m[5]]) {
			case "day", "pd":
				period = models.BudgetPerDay
			case "week", "pw":
				period = models.BudgetPerWeek
			}
		}
		f.Budget = &models.Budget{Amount: amount, Period: period}
	}
	return blankSubmatches(text, matches)
}

var (
	// 4x5m style dimensions.
	dimensionRe = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*[x×]\s*(\d+(?:\.\d+)?)\s*(?:m|metres?|meters?)?\b`)
	// 20sqm style areas, optionally a range like 15-20sqm (lower bound wins).
	areaRe = regexp.MustCompile(`(?i)\b(?:(\d+(?:\.\d+)?)\s*[-–—]\s*)?(\d+(?:\.\d+)?)\s*(?:sqm|sq\.?\s*m(?:etres?)?|m2|m²|square\s+met(?:re|er)s?)\b`)
)

func (p *Parser) extractSize(text string, f *models.ParsedFilter) string {
	dims := dimensionRe.FindAllStringSubmatchIndex(text, -1)
	areas := areaRe.FindAllStringSubmatchIndex(text, -1)

	// Bind whichever form appears first.
	switch {
	case len(dims) > 0 && (len(areas) == 0 || dims[0][0] < areas[0][0]):
		m := dims[0]
		w, errW := strconv.ParseFloat(text[m[2]:m[3]], 64)
		h, errH := strconv.ParseFloat(text[m[4]:m[5]], 64)
		if errW == nil && errH == nil {
			f.MinSizeM2 = w * h
		}
	case len(areas) > 0:
		m := areas[0]
		idx := 4 // plain area
		if m[2] >= 0 {
			idx = 2 // range: take the lower bound
		}
		if n, err := strconv.ParseFloat(text[m[idx]:m[idx+1]], 64); err == nil {
			f.MinSizeM2 = n
		}
	}

	text = blankSubmatches(text, dims)
	// Recompute area spans on the blanked text: a dimension match may have
	// consumed overlapping digits.
	areas = areaRe.FindAllStringSubmatchIndex(text, -1)
	return blankSubmatches(text, areas)
}

var tablesRe = regexp.MustCompile(`(?i)\b(\d+)\s*tables?\b`)

func (p *Parser) extractTables(text string, f *models.ParsedFilter) string {
	matches := tablesRe.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return text
	}
	m := matches[0]
	if n, err := strconv.Atoi(text[m[2]:m[3]]); err == nil {
		f.MinTables = n
	}
	return blankSubmatches(text, matches)
}

func (p *Parser) extractCategory(text string, f *models.ParsedFilter) string {
	matches := p.categoryRe.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return text
	}
	// First by position wins.
	first := strings.ToLower(text[matches[0][0]:matches[0][1]])
	if id, ok := p.categoryBy[first]; ok {
		f.ProductCategory = id
	}
	return blankMatches(text, matches)
}

func (p *Parser) extractState(text string, f *models.ParsedFilter) string {
	matches := p.stateRe.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return text
	}
	token := text[matches[0][0]:matches[0][1]]
	if code, ok := p.Vocab.StateCode(token); ok {
		f.StateFilter = code
	}
	return blankMatches(text, matches)
}

// blankMatches replaces every matched span with spaces.
func blankMatches(text string, matches [][]int) string {
	if len(matches) == 0 {
		return text
	}
	out := []byte(text)
	for _, m := range matches {
		for i := m[0]; i < m[1]; i++ {
			out[i] = ' '
		}
	}
	return string(out)
}

// blankSubmatches is blankMatches over submatch index slices, blanking the
// whole match (indices 0 and 1).
func blankSubmatches(text string, matches [][]int) string {
	whole := make([][]int, 0, len(matches))
	for _, m := range matches {
		whole = append(whole, []int{m[0], m[1]})
	}
	return blankMatches(text, whole)
}

// residualEdgeWords are connectives that dangle at the phrase edges once
// their neighbouring token has been claimed ("at Eastgate from <date>").
var residualEdgeWords = map[string]bool{
	"at": true, "in": true, "near": true, "from": true, "for": true,
	"on": true, "to": true, "until": true, "till": true, "starting": true,
	"and": true,
}

func collapseResidual(text string) string {
	fields := strings.Fields(text)
	cleaned := fields[:0]
	for _, w := range fields {
		if t := strings.Trim(w, ",;:-–—"); t != "" {
			cleaned = append(cleaned, t)
		}
	}
	for len(cleaned) > 0 && residualEdgeWords[strings.ToLower(cleaned[0])] {
		cleaned = cleaned[1:]
	}
	for len(cleaned) > 0 && residualEdgeWords[strings.ToLower(cleaned[len(cleaned)-1])] {
		cleaned = cleaned[:len(cleaned)-1]
	}
	return strings.Join(cleaned, " ")
}
