package domain

import "time"

// StoredPlan is a generated plan together with the request that produced it.
type StoredPlan struct {
	ID        string      `json:"id"`
	CreatedAt time.Time   `json:"created_at"`
	Request   TripRequest `json:"request"`
	Plan      TripPlan    `json:"plan"`
}

type PlanSummary struct {
	ID         string    `json:"id"`
	City       string    `json:"city"`
	StartDate  string    `json:"start_date"`
	EndDate    string    `json:"end_date"`
	TravelDays int       `json:"travel_days"`
	CreatedAt  time.Time `json:"created_at"`
}

func (p StoredPlan) Summary() PlanSummary {
	return PlanSummary{
		ID:         p.ID,
		City:       p.Plan.City,
		StartDate:  p.Plan.StartDate,
		EndDate:    p.Plan.EndDate,
		TravelDays: p.Request.TravelDays,
		CreatedAt:  p.CreatedAt,
	}
}

type PageQuery struct {
	Limit  int
	Cursor *string
	City   *string
}

type PlansPage struct {
	Items      []PlanSummary `json:"items"`
	NextCursor *string       `json:"next_cursor,omitempty"`
}

// Map view of a stored plan.
type MarkerKind string

const (
	MarkerHotel      MarkerKind = "hotel"
	MarkerAttraction MarkerKind = "attraction"
	MarkerMeal       MarkerKind = "meal"
)

type Marker struct {
	Kind     MarkerKind `json:"kind"`
	Name     string     `json:"name"`
	Address  *string    `json:"address,omitempty"`
	Location Location   `json:"location"`
}

type MapDay struct {
	Date           string   `json:"date"`
	DayIndex       int      `json:"day_index"`
	Markers        []Marker `json:"markers"`
	DistanceMeters float64  `json:"distance_meters"`
}

type TripMap struct {
	PlanID string   `json:"plan_id"`
	City   string   `json:"city"`
	Days   []MapDay `json:"days"`
}
