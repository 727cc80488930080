package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"trip_planner/internal/domain"
)

func planKey(id string) string { return "plan:" + id }

type QueryService struct {
	repo     domain.PlanRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewQueryService(r domain.PlanRepository, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{repo: r, cache: c, cacheTTL: ttl}
}

// GetPlan reads through the cache. An entry that no longer decodes is dropped
// and the plan is loaded from the repository instead.
func (s *QueryService) GetPlan(ctx context.Context, id string) (domain.StoredPlan, error) {
	key := planKey(id)
	if s.cache != nil {
		var cached domain.StoredPlan
		ok, err := s.cache.Get(ctx, key, &cached)
		switch {
		case ok && err == nil:
			return cached, nil
		case ok:
			log.Warn().Err(err).Str("id", id).Msg("dropping undecodable cached plan")
			if derr := s.cache.Del(ctx, key); derr != nil {
				log.Warn().Err(derr).Str("id", id).Msg("cache delete failed")
			}
		case err != nil:
			log.Warn().Err(err).Str("id", id).Msg("cache read failed")
		}
	}
	sp, err := s.repo.GetPlan(ctx, id)
	if err != nil {
		return domain.StoredPlan{}, err
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, sp, int(s.cacheTTL.Seconds()))
	}
	return sp, nil
}

// ListPlans is not cached: new plans land on the first page immediately.
func (s *QueryService) ListPlans(ctx context.Context, pg domain.PageQuery) (domain.PlansPage, error) {
	page, err := s.repo.ListPlans(ctx, pg)
	if err != nil {
		return domain.PlansPage{}, err
	}
	if page.Items == nil {
		page.Items = []domain.PlanSummary{}
	}
	return page, nil
}

func (s *QueryService) TripMap(ctx context.Context, id string) (domain.TripMap, error) {
	sp, err := s.GetPlan(ctx, id)
	if err != nil {
		return domain.TripMap{}, err
	}
	return BuildTripMap(sp), nil
}
