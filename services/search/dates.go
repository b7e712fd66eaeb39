package search

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"leasely/models"
)

// Date pattern alternations. Each pattern optionally swallows a leading
// connective ("from 3/6", "to Friday") so removing the span leaves no
// dangling preposition in the centre-name residual.
const datePrefix = `(?:\b(?:from|on|starting|until|till|to)\s+)?`

var (
	explicitDateRe = regexp.MustCompile(`(?i)` + datePrefix + `\b(\d{1,2})/(\d{1,2})(?:/(\d{2,4}))?\b`)
	relativeDayRe  = regexp.MustCompile(`(?i)` + datePrefix + `\b(today|tomorrow)\b`)
	weekdayRe      = regexp.MustCompile(`(?i)` + datePrefix + `\b(?:(next|this)\s+)?(monday|tuesday|wednesday|thursday|friday|saturday|sunday|mon|tue|wed|thu|fri|sat|sun)\b`)
	weekRe         = regexp.MustCompile(`(?i)` + datePrefix + `\b(next|this)\s+week\b`)
	dayMonthRe     = regexp.MustCompile(`(?i)` + datePrefix + `\b(\d{1,2})(?:st|nd|rd|th)?\s+(january|february|march|april|may|june|july|august|september|october|november|december|jan|feb|mar|apr|jun|jul|aug|sep|oct|nov|dec)\b(?:,?\s+(\d{4}))?`)
	monthDayRe     = regexp.MustCompile(`(?i)` + datePrefix + `\b(january|february|march|april|may|june|july|august|september|october|november|december|jan|feb|mar|apr|jun|jul|aug|sep|oct|nov|dec)\s+(\d{1,2})(?:st|nd|rd|th)?\b(?:,?\s+(\d{4}))?`)
)

type dateResolver func(p *Parser, text string, m []int, today time.Time) (time.Time, bool)

// datePatterns are tried in order; an earlier pattern's claim is blanked
// before the next pattern runs, so a span is interpreted at most once.
var datePatterns = []struct {
	name    string
	re      *regexp.Regexp
	resolve dateResolver
}{
	{"explicit", explicitDateRe, resolveExplicit},
	{"relative", relativeDayRe, resolveRelative},
	{"weekday", weekdayRe, resolveWeekday},
	{"week", weekRe, resolveWeek},
	{"dayMonth", dayMonthRe, resolveDayMonth},
	{"monthDay", monthDayRe, resolveMonthDay},
}

type dateMatch struct {
	start, end int
	when       time.Time
}

// extractDates claims every date-like span and binds the first as the start
// of the window; a later date on or after it becomes the inclusive end.
// Ambiguous constructs (e.g. 45/88) resolve to nothing and stay in the text.
func (p *Parser) extractDates(text string, f *models.ParsedFilter) string {
	today := dateOnly(p.Now())
	working := text
	var found []dateMatch

	for _, pat := range datePatterns {
		matches := pat.re.FindAllStringSubmatchIndex(working, -1)
		var claimed [][]int
		for _, m := range matches {
			when, ok := pat.resolve(p, working, m, today)
			if !ok {
				continue
			}
			found = append(found, dateMatch{start: m[0], end: m[1], when: when})
			claimed = append(claimed, []int{m[0], m[1]})
		}
		// Blanking preserves length, so positions collected across passes
		// stay comparable.
		working = blankMatches(working, claimed)
	}

	if len(found) == 0 {
		return working
	}
	sort.Slice(found, func(i, j int) bool { return found[i].start < found[j].start })

	start := found[0].when
	f.DateStart = &start
	for _, fm := range found[1:] {
		if !fm.when.Before(start) {
			end := fm.when
			f.DateEnd = &end
			break
		}
	}
	return working
}

func resolveExplicit(p *Parser, text string, m []int, today time.Time) (time.Time, bool) {
	day, _ := strconv.Atoi(group(text, m, 1))
	month, _ := strconv.Atoi(group(text, m, 2))
	year := today.Year()
	if y := group(text, m, 3); y != "" {
		n, _ := strconv.Atoi(y)
		if n < 100 {
			n += 2000
		}
		year = n
	}
	if month < 1 || month > 12 {
		return time.Time{}, false
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Day() != day || d.Month() != time.Month(month) {
		return time.Time{}, false
	}
	return d, true
}

func resolveRelative(p *Parser, text string, m []int, today time.Time) (time.Time, bool) {
	if strings.EqualFold(group(text, m, 1), "tomorrow") {
		return today.AddDate(0, 0, 1), true
	}
	return today, true
}

func resolveWeekday(p *Parser, text string, m []int, today time.Time) (time.Time, bool) {
	prefix := strings.ToLower(group(text, m, 1))
	wd, ok := p.Vocab.Weekday(group(text, m, 2))
	if !ok {
		return time.Time{}, false
	}
	offset := (int(wd) - int(today.Weekday()) + 7) % 7
	switch prefix {
	case "this":
		// The current week's occurrence, Monday-based; may be in the past.
		return mondayOf(today).AddDate(0, 0, mondayOffset(wd)), true
	case "next":
		if offset == 0 {
			offset = 7
		}
	}
	return today.AddDate(0, 0, offset), true
}

func resolveWeek(p *Parser, text string, m []int, today time.Time) (time.Time, bool) {
	monday := mondayOf(today)
	if strings.EqualFold(group(text, m, 1), "next") {
		monday = monday.AddDate(0, 0, 7)
	}
	return monday, true
}

func resolveDayMonth(p *Parser, text string, m []int, today time.Time) (time.Time, bool) {
	day, _ := strconv.Atoi(group(text, m, 1))
	month, ok := p.Vocab.Month(group(text, m, 2))
	if !ok {
		return time.Time{}, false
	}
	year := today.Year()
	if y := group(text, m, 3); y != "" {
		year, _ = strconv.Atoi(y)
	}
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if d.Day() != day || d.Month() != month {
		return time.Time{}, false
	}
	return d, true
}

func resolveMonthDay(p *Parser, text string, m []int, today time.Time) (time.Time, bool) {
	month, ok := p.Vocab.Month(group(text, m, 1))
	if !ok {
		return time.Time{}, false
	}
	day, _ := strconv.Atoi(group(text, m, 2))
	year := today.Year()
	if y := group(text, m, 3); y != "" {
		year, _ = strconv.Atoi(y)
	}
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if d.Day() != day || d.Month() != month {
		return time.Time{}, false
	}
	return d, true
}

// group returns the text of capture group n, or "" when it did not match.
func group(text string, m []int, n int) string {
	if 2*n+1 >= len(m) || m[2*n] < 0 {
		return ""
	}
	return text[m[2*n]:m[2*n+1]]
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func mondayOf(t time.Time) time.Time {
	return t.AddDate(0, 0, -mondayOffset(t.Weekday()))
}

// mondayOffset is days since Monday for a Monday-based week.
func mondayOffset(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}
