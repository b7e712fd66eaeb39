package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"leasely/models"
)

func suggestFixture() *fakeCatalog {
	return &fakeCatalog{centres: []models.Centre{
		{ID: "c1", Name: "Highlands Marketplace", Suburb: "Mittagong", State: "NSW"},
		{ID: "c2", Name: "Highpoint", Suburb: "Maribyrnong", City: "Melbourne", State: "VIC"},
		{ID: "c3", Name: "Eastgate Shopping Centre", Suburb: "Bondi", City: "Sydney", State: "NSW"},
		{ID: "c4", Name: "Westfield Parramatta", Suburb: "Parramatta", City: "Sydney", State: "NSW"},
	}}
}

func TestSuggestTypoTolerant(t *testing.T) {
	svc := &SuggestionService{Catalog: suggestFixture()}

	out, err := svc.Suggest(context.Background(), "highlnd", 5)
	require.NoError(t, err)

	require.NotEmpty(t, out)
	assert.Equal(t, "Highlands Marketplace", out[0].CentreName)
	assert.Contains(t, out[0].Reason, "Did you mean")
	assert.Greater(t, out[0].Distance, 0)
}

func TestSuggestExactSubstringFirst(t *testing.T) {
	svc := &SuggestionService{Catalog: suggestFixture()}

	out, err := svc.Suggest(context.Background(), "high", 5)
	require.NoError(t, err)

	require.Len(t, out, 2)
	// Alphabetical within the exact tier, distance zero.
	assert.Equal(t, "Highlands Marketplace", out[0].CentreName)
	assert.Equal(t, "Highpoint", out[1].CentreName)
	assert.Equal(t, 0, out[0].Distance)
	assert.Contains(t, out[0].Reason, "Matches")
}

func TestSuggestMatchesSuburbAndCity(t *testing.T) {
	svc := &SuggestionService{Catalog: suggestFixture()}

	out, err := svc.Suggest(context.Background(), "mittagong", 5)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "c1", out[0].CentreID)
	assert.Equal(t, "Matches Mittagong", out[0].Reason)
}

func TestSuggestDistanceThreshold(t *testing.T) {
	svc := &SuggestionService{Catalog: suggestFixture()}

	// Nothing is within 30% edit distance of this.
	out, err := svc.Suggest(context.Background(), "zzqqxxyyzz", 5)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestSuggestSingleCharacterSkipsFuzzy(t *testing.T) {
	cat := suggestFixture()
	svc := &SuggestionService{Catalog: cat}

	out, err := svc.Suggest(context.Background(), "x", 5)
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = svc.Suggest(context.Background(), "e", 5)
	require.NoError(t, err)
	// Substring hits still apply at one character.
	require.NotEmpty(t, out)
	for _, s := range out {
		assert.Equal(t, 0, s.Distance)
	}
}

func TestSuggestEmptyPhrase(t *testing.T) {
	cat := suggestFixture()
	svc := &SuggestionService{Catalog: cat}

	out, err := svc.Suggest(context.Background(), "   ", 5)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Zero(t, cat.allCentresCalls)
}

func TestSuggestLimit(t *testing.T) {
	svc := &SuggestionService{Catalog: suggestFixture()}

	out, err := svc.Suggest(context.Background(), "high", 1)
	require.NoError(t, err)
	assert.Len(t, out, 1)
}

func TestSuggestIsFast(t *testing.T) {
	centres := make([]models.Centre, 0, 2000)
	for i := 0; i < 2000; i++ {
		centres = append(centres, models.Centre{
			ID:   string(rune('a'+i%26)) + "centre",
			Name: "Centre " + string(rune('A'+i%26)),
		})
	}
	svc := &SuggestionService{Catalog: &fakeCatalog{centres: centres}}

	startAt := time.Now()
	_, err := svc.Suggest(context.Background(), "centrr", 5)
	require.NoError(t, err)
	assert.Less(t, time.Since(startAt), time.Second)
}

func TestSuggestCentreIndexFailureLogged(t *testing.T) {
	cat := suggestFixture()
	cat.allCentresErr = errors.New("no reachable servers")
	core, logs := observer.New(zap.WarnLevel)
	svc := &SuggestionService{Catalog: cat, Logger: zap.New(core)}

	_, err := svc.Suggest(context.Background(), "high", 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load centre index")
	assert.Len(t, logs.All(), 1)

	_, err = svc.Autocomplete(context.Background(), "high", 10)
	require.Error(t, err)
	assert.Len(t, logs.All(), 2)
}

func TestAutocomplete(t *testing.T) {
	cat := suggestFixture()
	svc := &SuggestionService{Catalog: cat}

	t.Run("substring hits alphabetically first", func(t *testing.T) {
		out, err := svc.Autocomplete(context.Background(), "high", 10)
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(out), 2)
		assert.Equal(t, "Highlands Marketplace", out[0].Name)
		assert.Equal(t, "Highpoint", out[1].Name)
	})

	t.Run("matches suburb", func(t *testing.T) {
		out, err := svc.Autocomplete(context.Background(), "parra", 10)
		require.NoError(t, err)
		require.NotEmpty(t, out)
		assert.Equal(t, "c4", out[0].ID)
	})

	t.Run("subsequence fills in after substrings", func(t *testing.T) {
		out, err := svc.Autocomplete(context.Background(), "hglnds", 10)
		require.NoError(t, err)
		require.NotEmpty(t, out)
		assert.Equal(t, "Highlands Marketplace", out[0].Name)
	})

	t.Run("limit applies", func(t *testing.T) {
		out, err := svc.Autocomplete(context.Background(), "high", 1)
		require.NoError(t, err)
		assert.Len(t, out, 1)
	})

	t.Run("short input skips the catalog", func(t *testing.T) {
		before := cat.allCentresCalls
		out, err := svc.Autocomplete(context.Background(), "a", 10)
		require.NoError(t, err)
		assert.Empty(t, out)
		assert.Equal(t, before, cat.allCentresCalls)

		out, err = svc.Autocomplete(context.Background(), " ", 10)
		require.NoError(t, err)
		assert.Empty(t, out)
		assert.Equal(t, before, cat.allCentresCalls)
	})
}

func TestLevenshtein(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"highlnd", "highland", 1},
		{"same", "same", 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, levenshtein(tc.a, tc.b), "%q vs %q", tc.a, tc.b)
	}
}
