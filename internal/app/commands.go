package app

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"trip_planner/internal/adapters/observability"
	"trip_planner/internal/domain"
)

type PlanningService struct {
	planner domain.Planner
	repo    domain.PlanRepository
	cache   domain.Cache
	ttl     time.Duration

	now   func() time.Time
	newID func() string
}

func NewPlanningService(p domain.Planner, r domain.PlanRepository, c domain.Cache, ttl time.Duration) *PlanningService {
	return &PlanningService{
		planner: p,
		repo:    r,
		cache:   c,
		ttl:     ttl,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// CreatePlan asks the remote planner for an itinerary and keeps the result.
// Remote failures are returned unchanged. Once a plan exists it is always
// returned: a failed write is logged and the plan stays reachable through the
// cache for its TTL.
func (s *PlanningService) CreatePlan(ctx context.Context, req domain.TripRequest) (domain.StoredPlan, error) {
	plan, err := s.planner.CreateTripPlan(ctx, req)
	if err != nil {
		observability.ObservePlan("remote_error")
		return domain.StoredPlan{}, err
	}
	observability.ObservePlanDays(len(plan.Days))

	// The server owns validation; we only record what it got wrong.
	if v := domain.CheckPlan(req, plan); len(v) > 0 {
		observability.ObservePlan("inconsistent")
		log.Warn().Str("city", req.City).Strs("violations", v).Msg("planner returned an inconsistent plan")
	}

	sp := domain.StoredPlan{
		ID:        s.newID(),
		CreatedAt: s.now().UTC(),
		Request:   req,
		Plan:      plan,
	}

	if err := s.repo.SavePlan(ctx, sp); err != nil {
		observability.ObservePlan("store_error")
		log.Error().Err(err).Str("id", sp.ID).Msg("save plan failed; serving it from cache only")
	} else {
		observability.ObservePlan("ok")
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, planKey(sp.ID), sp, int(s.ttl.Seconds())); err != nil {
			log.Warn().Err(err).Str("id", sp.ID).Msg("cache plan failed")
		}
	}

	log.Info().Str("id", sp.ID).Str("city", plan.City).Int("days", len(plan.Days)).Msg("plan created")
	return sp, nil
}
