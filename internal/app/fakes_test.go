package app_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"trip_planner/internal/domain"
)

// ---- fakes ----

type fakePlanner struct {
	plan  domain.TripPlan
	err   error
	calls int
}

func (f *fakePlanner) CreateTripPlan(ctx context.Context, req domain.TripRequest) (domain.TripPlan, error) {
	f.calls++
	return f.plan, f.err
}

type fakeRepo struct {
	mu      sync.Mutex
	plans   map[string]domain.StoredPlan
	page    domain.PlansPage
	saveErr error
	gets    int
}

func (f *fakeRepo) SavePlan(ctx context.Context, p domain.StoredPlan) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.plans == nil {
		f.plans = map[string]domain.StoredPlan{}
	}
	f.plans[p.ID] = p
	return nil
}

func (f *fakeRepo) GetPlan(ctx context.Context, id string) (domain.StoredPlan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	p, ok := f.plans[id]
	if !ok {
		return domain.StoredPlan{}, domain.ErrNotFound
	}
	return p, nil
}

func (f *fakeRepo) ListPlans(ctx context.Context, q domain.PageQuery) (domain.PlansPage, error) {
	return f.page, nil
}

// fakeCache stores JSON like the Redis adapter does, so cached values are
// copies rather than aliases of the caller's data.
type fakeCache struct {
	store  map[string][]byte
	setErr error
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	b, ok := c.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.setErr != nil {
		return c.setErr
	}
	if c.store == nil {
		c.store = map[string][]byte{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.store[key] = b
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	delete(c.store, key)
	return nil
}

var errDown = errors.New("database down")

func ptr[T any](v T) *T { return &v }

func request() domain.TripRequest {
	return domain.TripRequest{
		City: "Hangzhou", StartDate: "2025-12-15", EndDate: "2025-12-16", TravelDays: 2,
		Transportation: "public transit", Accommodation: "comfort", Preferences: []string{"nature"},
	}
}

func plan() domain.TripPlan {
	return domain.TripPlan{
		City: "Hangzhou", StartDate: "2025-12-15", EndDate: "2025-12-16",
		Days: []domain.DayPlan{
			{
				Date: "2025-12-15", DayIndex: 0,
				Hotel: &domain.Hotel{Name: "Lakeside Inn", Address: "1 Beishan Rd", Location: &domain.Location{Longitude: 120.150, Latitude: 30.260}},
				Attractions: []domain.Attraction{
					{Name: "West Lake", Location: domain.Location{Longitude: 120.145, Latitude: 30.245}},
					{Name: "Leifeng Pagoda", Location: domain.Location{Longitude: 120.149, Latitude: 30.231}},
				},
				Meals: []domain.Meal{
					{Type: domain.MealLunch, Name: "Louwailou", Location: &domain.Location{Longitude: 120.143, Latitude: 30.254}},
					{Type: domain.MealDinner, Name: "street food"},
				},
			},
			{
				Date: "2025-12-16", DayIndex: 1,
				Attractions: []domain.Attraction{{Name: "Lingyin Temple"}},
			},
		},
		WeatherInfo: []domain.WeatherInfo{{Date: "2025-12-15"}, {Date: "2025-12-16"}},
		Budget:      &domain.Budget{TotalHotels: 300, TotalMeals: 200, Total: 500},
	}
}
