package search

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"leasely/database/repository"
	"leasely/models"
)

// Candidates is the resolver's answer: which centres and spaces a filter
// selects, plus the fallback signals the caller surfaces to the UI.
type Candidates struct {
	Centres         []models.Centre
	Spaces          []models.Space
	MatchedSpaceIDs []string

	// SizeNotAvailable means no space of the requested size exists; all
	// spaces are returned unfiltered and ClosestMatch is the smallest space
	// at least as large as requested, when one exists.
	SizeNotAvailable bool
	ClosestMatch     models.Space

	// CategoryNotAvailable means no space anywhere accepts the requested
	// category; reported distinctly from a size shortfall.
	CategoryNotAvailable bool
}

// CandidateResolver selects centres and spaces for a parsed filter using
// structural predicates over the catalog port.
type CandidateResolver struct {
	Catalog repository.CatalogRepository
	Pool    *ants.Pool
	Logger  *zap.Logger
}

// hydratedSpace overrides a space's category policy with the one fetched
// from the catalog's approval lookup.
type hydratedSpace struct {
	models.Space
	policy models.CategoryPolicy
}

func (h hydratedSpace) Categories() models.CategoryPolicy { return h.policy }

// Resolve finds candidate spaces. A zero-centre result is not an error;
// the orchestrator falls back to suggestions.
func (r *CandidateResolver) Resolve(ctx context.Context, filter models.ParsedFilter, originalQuery string) (*Candidates, error) {
	if filter.AssetType == models.AssetVacantShop || filter.AssetType == models.AssetThirdLine {
		return r.resolveByAssetType(ctx, filter)
	}

	cand := &Candidates{}

	// Description/identifier path first: catches "outside Prouds"-style
	// hits the centre-name path would miss. Category filtering is applied
	// in the catalog query itself.
	query := strings.TrimSpace(originalQuery)
	textHits, err := r.Catalog.SearchSpacesByText(ctx, query, filter.ProductCategory, filter.StateFilter)
	if err != nil {
		if r.Logger != nil {
			r.Logger.Warn("space text search failed, falling back to centre names", zap.Error(err))
		}
		textHits = nil
	}

	if len(textHits) > 0 {
		centres, err := r.centresOf(ctx, textHits)
		if err != nil {
			return nil, err
		}
		cand.Centres = centres
		cand.Spaces = textHits
		// A bare centre-name query must not earn "matched" badges; the
		// badge needs an explicit constraint or a description term that
		// no centre name accounts for.
		if filter.HasConstraints() || !phraseMatchesAnyCentre(filter.CentreNamePhrase, centres) {
			for _, s := range textHits {
				cand.MatchedSpaceIDs = append(cand.MatchedSpaceIDs, s.SpaceID())
			}
		}
	} else {
		centres, err := r.Catalog.ListCentresByName(ctx, filter.CentreNamePhrase, filter.StateFilter)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve centres: %w", err)
		}
		cand.Centres = centres
		cand.Spaces = r.spacesForCentres(ctx, centres, models.AssetCasualLeasing)
	}

	if filter.ProductCategory != "" {
		r.hydratePolicies(ctx, cand)
	}
	r.applyConstraints(filter, cand)
	return cand, nil
}

// resolveByAssetType serves vacant-shop and third-line queries: centres by
// name and state only, then just that asset type. Casual-leasing spaces are
// fetched lazily only if the caller later switches view.
func (r *CandidateResolver) resolveByAssetType(ctx context.Context, filter models.ParsedFilter) (*Candidates, error) {
	centres, err := r.Catalog.ListCentresByName(ctx, filter.CentreNamePhrase, filter.StateFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve centres: %w", err)
	}

	cand := &Candidates{Centres: centres}
	spaces := r.spacesForCentres(ctx, centres, filter.AssetType)
	if filter.ThirdLineCategory != "" {
		kept := spaces[:0]
		for _, s := range spaces {
			if a, ok := s.(models.ThirdLineAsset); ok && !strings.EqualFold(a.Category, filter.ThirdLineCategory) {
				continue
			}
			kept = append(kept, s)
		}
		spaces = kept
	}
	cand.Spaces = spaces

	if filter.ProductCategory != "" {
		r.hydratePolicies(ctx, cand)
	}
	r.applyConstraints(filter, cand)
	return cand, nil
}

// hydratePolicies fills in category policies for spaces whose documents did
// not carry one, fanning the lookups out over the worker pool. It must run
// before constraint filtering so the filter, the fallback flags and the
// scorer all see the same policy.
func (r *CandidateResolver) hydratePolicies(ctx context.Context, cand *Candidates) {
	var wg sync.WaitGroup
	for i, sp := range cand.Spaces {
		policy := sp.Categories()
		if policy.AllApproved || len(policy.IDs) > 0 {
			continue
		}
		i, sp := i, sp
		wg.Add(1)
		task := func() {
			defer wg.Done()
			fetched, err := r.Catalog.ApprovedCategoryIDs(ctx, sp.SpaceID())
			if err != nil {
				if r.Logger != nil {
					r.Logger.Warn("category policy lookup failed",
						zap.String("spaceId", sp.SpaceID()), zap.Error(err))
				}
				return
			}
			cand.Spaces[i] = hydratedSpace{Space: sp, policy: fetched}
		}
		if r.Pool == nil || r.Pool.Submit(task) != nil {
			task()
		}
	}
	wg.Wait()
}

// spacesForCentres fans the per-centre space fetches out over the worker
// pool and joins before returning. Order follows the centre list.
func (r *CandidateResolver) spacesForCentres(ctx context.Context, centres []models.Centre, asset models.AssetType) []models.Space {
	results := make([][]models.Space, len(centres))
	var wg sync.WaitGroup

	for i, c := range centres {
		i, c := i, c
		wg.Add(1)
		task := func() {
			defer wg.Done()
			spaces, err := r.Catalog.ListSpacesByCentre(ctx, c.ID, asset)
			if err != nil {
				if r.Logger != nil {
					r.Logger.Warn("failed to fetch spaces for centre",
						zap.String("centreId", c.ID), zap.Error(err))
				}
				return
			}
			results[i] = spaces
		}
		if r.Pool == nil || r.Pool.Submit(task) != nil {
			task()
		}
	}
	wg.Wait()

	var all []models.Space
	for _, batch := range results {
		all = append(all, batch...)
	}
	return all
}

// applyConstraints enforces the size/table/category predicates. Within a
// centre, once one space meets the constraints the failing ones are dropped;
// when nothing meets them anywhere, everything is returned unfiltered with
// the appropriate signal set.
func (r *CandidateResolver) applyConstraints(filter models.ParsedFilter, cand *Candidates) {
	if !filter.HasConstraints() || len(cand.Spaces) == 0 {
		return
	}

	if filter.ProductCategory != "" {
		anyCategory := false
		for _, s := range cand.Spaces {
			if s.Categories().Allows(filter.ProductCategory) {
				anyCategory = true
				break
			}
		}
		if !anyCategory {
			cand.CategoryNotAvailable = true
			return
		}
	}

	if filter.MinSizeM2 > 0 {
		anySize := false
		for _, s := range cand.Spaces {
			if sizeMeets(filter, s) {
				anySize = true
				break
			}
		}
		if !anySize {
			cand.SizeNotAvailable = true
			cand.ClosestMatch = closestLarger(filter.MinSizeM2, cand.Spaces)
			return
		}
	}

	meetsByCentre := make(map[string]bool)
	for _, s := range cand.Spaces {
		if meetsConstraints(filter, s) {
			meetsByCentre[s.Centre()] = true
		}
	}

	kept := cand.Spaces[:0]
	matched := make(map[string]bool, len(cand.MatchedSpaceIDs))
	for _, id := range cand.MatchedSpaceIDs {
		matched[id] = true
	}
	var matchedIDs []string
	for _, s := range cand.Spaces {
		ok := meetsConstraints(filter, s)
		if meetsByCentre[s.Centre()] && !ok {
			continue
		}
		kept = append(kept, s)
		if ok || matched[s.SpaceID()] {
			matchedIDs = append(matchedIDs, s.SpaceID())
		}
	}
	cand.Spaces = kept
	cand.MatchedSpaceIDs = matchedIDs
}

func meetsConstraints(filter models.ParsedFilter, s models.Space) bool {
	if filter.ProductCategory != "" && !s.Categories().Allows(filter.ProductCategory) {
		return false
	}
	if filter.MinSizeM2 > 0 && !sizeMeets(filter, s) {
		return false
	}
	if filter.MinTables > 0 && s.Tables() < filter.MinTables {
		return false
	}
	return true
}

func sizeMeets(filter models.ParsedFilter, s models.Space) bool {
	return s.Size() == filter.MinSizeM2
}

// closestLarger picks the space with sizeM2 >= want minimising the excess.
func closestLarger(want float64, spaces []models.Space) models.Space {
	var best models.Space
	for _, s := range spaces {
		if s.Size() < want {
			continue
		}
		if best == nil || s.Size() < best.Size() {
			best = s
		}
	}
	return best
}

func (r *CandidateResolver) centresOf(ctx context.Context, spaces []models.Space) ([]models.Centre, error) {
	seen := make(map[string]bool)
	var ids []string
	for _, s := range spaces {
		if !seen[s.Centre()] {
			seen[s.Centre()] = true
			ids = append(ids, s.Centre())
		}
	}
	centres, err := r.Catalog.ListCentresByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve centres for matched spaces: %w", err)
	}
	return centres, nil
}

func phraseMatchesAnyCentre(phrase string, centres []models.Centre) bool {
	p := strings.ToLower(strings.TrimSpace(phrase))
	if p == "" {
		return false
	}
	for _, c := range centres {
		if strings.Contains(strings.ToLower(c.Name), p) {
			return true
		}
	}
	return false
}
