package domain

import "context"

// Planner produces itineraries. The HTTP client in adapters/planner is the
// production implementation.
type Planner interface {
	CreateTripPlan(ctx context.Context, req TripRequest) (TripPlan, error)
}

type PlanRepository interface {
	// Write paths
	SavePlan(ctx context.Context, p StoredPlan) error

	// Read paths
	GetPlan(ctx context.Context, id string) (StoredPlan, error)
	ListPlans(ctx context.Context, q PageQuery) (PlansPage, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
