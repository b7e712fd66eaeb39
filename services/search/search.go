package search

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"leasely/models"
)

// DefaultSearchService orchestrates the pipeline: parse, resolve candidates,
// fetch availability, score, rank. It is stateless per request; the only
// shared state is the read-only vocabulary inside the parser.
type DefaultSearchService struct {
	Parser       *Parser
	Resolver     *CandidateResolver
	Availability *AvailabilityEngine
	Scorer       *Scorer
	Suggestions  *SuggestionService
	Analytics    AnalyticsRecorder
	Pool         *ants.Pool
	Logger       *zap.Logger

	AutocompleteLimit int
	SuggestionLimit   int
}

func (s *DefaultSearchService) Search(ctx context.Context, query string, date time.Time) (*models.SearchResult, error) {
	filter := s.Parser.Parse(query)

	start := NormalizeDay(date)
	if filter.DateStart != nil {
		start = NormalizeDay(*filter.DateStart)
	}
	end := start
	if filter.DateEnd != nil {
		end = NormalizeDay(*filter.DateEnd)
	}

	result := &models.SearchResult{Query: query, Filter: filter}

	cand, err := s.Resolver.Resolve(ctx, filter, query)
	if err != nil {
		if ctx.Err() != nil {
			return s.cancelled(result)
		}
		return nil, err
	}
	result.Centres = cand.Centres
	result.Spaces = cand.Spaces
	result.MatchedSpaceIDs = cand.MatchedSpaceIDs
	result.SizeNotAvailable = cand.SizeNotAvailable
	result.ClosestMatch = cand.ClosestMatch
	result.CategoryNotAvailable = cand.CategoryNotAvailable

	// Zero centres is not an error: fall through to "did you mean".
	if len(cand.Centres) == 0 && len(cand.Spaces) == 0 {
		phrase := filter.CentreNamePhrase
		if phrase == "" {
			phrase = query
		}
		suggestions, err := s.Suggestions.Suggest(ctx, phrase, s.SuggestionLimit)
		if err != nil {
			s.logger().Warn("suggestion lookup failed", zap.Error(err))
		}
		if suggestions == nil {
			suggestions = []models.Suggestion{}
		}
		result.Suggestions = suggestions
		s.record(query, filter, result, start)
		return result, nil
	}

	spaceIDs := make([]string, len(cand.Spaces))
	for i, sp := range cand.Spaces {
		spaceIDs[i] = sp.SpaceID()
	}

	calendar, calErr := s.Availability.Calendar(ctx, spaceIDs, start, end)
	if calErr != nil {
		if ctx.Err() != nil {
			return s.cancelled(result)
		}
		// Availability degrades to neutral scoring rather than failing the
		// whole search.
		s.logger().Warn("availability degraded",
			zap.Error(calErr), zap.String("cause", ErrAvailabilityUnavailable.Code))
		result.AvailabilityDegraded = true
		calendar = make(map[string][]models.BookingInterval)
	}
	result.Availability = calendar
	result.Spaces = cand.Spaces

	centreByID := make(map[string]models.Centre, len(cand.Centres))
	for _, c := range cand.Centres {
		centreByID[c.ID] = c
	}

	scores := make([]models.MatchScore, len(cand.Spaces))
	var scoreWG sync.WaitGroup
	for i, sp := range cand.Spaces {
		i, sp := i, sp
		scoreWG.Add(1)
		task := func() {
			defer scoreWG.Done()
			scores[i] = s.Scorer.Score(filter, sp, centreByID[sp.Centre()],
				calendar[sp.SpaceID()], start, end, result.AvailabilityDegraded)
		}
		if s.Pool == nil || s.Pool.Submit(task) != nil {
			task()
		}
	}
	scoreWG.Wait()

	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].Total != scores[j].Total {
			return scores[i].Total > scores[j].Total
		}
		return scores[i].SpaceID < scores[j].SpaceID
	})
	result.Scores = scores

	if ctx.Err() != nil {
		return s.cancelled(result)
	}

	s.record(query, filter, result, start)
	return result, nil
}

// cancelled finishes a search whose context died mid-pipeline: the partial
// result is returned flagged rather than as an error.
func (s *DefaultSearchService) cancelled(result *models.SearchResult) (*models.SearchResult, error) {
	s.logger().Warn("search cancelled, returning partial result",
		zap.String("cause", ErrSearchCancelled.Code))
	result.Cancelled = true
	return result, nil
}

func (s *DefaultSearchService) Autocomplete(ctx context.Context, partial string) ([]models.Centre, error) {
	return s.Suggestions.Autocomplete(ctx, partial, s.AutocompleteLimit)
}

func (s *DefaultSearchService) Calendar(ctx context.Context, spaceID string, start, end time.Time) ([]models.BookingInterval, error) {
	cal, err := s.Availability.Calendar(ctx, []string{spaceID}, start, end)
	if err != nil {
		return nil, err
	}
	return cal[spaceID], nil
}

func (s *DefaultSearchService) CheckAvailability(ctx context.Context, spaceID string, start, end time.Time, excludeBookingID string) (bool, error) {
	return s.Availability.IsAvailable(ctx, spaceID, start, end, excludeBookingID)
}

func (s *DefaultSearchService) record(query string, filter models.ParsedFilter, result *models.SearchResult, searchDate time.Time) {
	if s.Analytics == nil {
		return
	}
	s.Analytics.Record(models.SearchEvent{
		Query:            query,
		ParsedCentreName: filter.CentreNamePhrase,
		MinSizeM2:        filter.MinSizeM2,
		ProductCategory:  filter.ProductCategory,
		ResultsCount:     len(result.Spaces),
		SuggestionsShown: len(result.Suggestions) > 0,
		SearchDate:       searchDate,
	})
}

func (s *DefaultSearchService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}
