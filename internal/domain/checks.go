package domain

import (
	"fmt"
	"math"
	"time"
)

const DateLayout = "2006-01-02"

const budgetTolerance = 0.01

// DatesBetween lists every date from start to end inclusive, as YYYY-MM-DD.
func DatesBetween(start, end string) ([]string, error) {
	s, err := time.Parse(DateLayout, start)
	if err != nil {
		return nil, fmt.Errorf("start date %q: %w", start, err)
	}
	e, err := time.Parse(DateLayout, end)
	if err != nil {
		return nil, fmt.Errorf("end date %q: %w", end, err)
	}
	if e.Before(s) {
		return nil, fmt.Errorf("end date %s is before start date %s", end, start)
	}
	var out []string
	for d := s; !d.After(e); d = d.AddDate(0, 0, 1) {
		out = append(out, d.Format(DateLayout))
	}
	return out, nil
}

// CheckRequest reports how req deviates from the request invariants. The
// planning client never calls it; the remote service owns validation.
func CheckRequest(req TripRequest) []string {
	var v []string
	if req.TravelDays <= 0 {
		v = append(v, fmt.Sprintf("travel_days must be positive, got %d", req.TravelDays))
	}
	dates, err := DatesBetween(req.StartDate, req.EndDate)
	if err != nil {
		return append(v, err.Error())
	}
	if len(dates) != req.TravelDays {
		v = append(v, fmt.Sprintf("travel_days %d does not match date span of %d days", req.TravelDays, len(dates)))
	}
	return v
}

// CheckPlan reports how plan deviates from the shape promised for req.
// The server is trusted; callers log the result, they do not reject plans.
func CheckPlan(req TripRequest, plan TripPlan) []string {
	var v []string
	if len(plan.Days) != req.TravelDays {
		v = append(v, fmt.Sprintf("days: got %d, want %d", len(plan.Days), req.TravelDays))
	}
	if len(plan.WeatherInfo) != len(plan.Days) {
		v = append(v, fmt.Sprintf("weather_info: got %d entries for %d days", len(plan.WeatherInfo), len(plan.Days)))
	}

	weather := make(map[string]bool, len(plan.WeatherInfo))
	for _, w := range plan.WeatherInfo {
		weather[w.Date] = true
	}

	for i, d := range plan.Days {
		switch {
		case i == 0 && d.DayIndex != 0 && d.DayIndex != 1:
			v = append(v, fmt.Sprintf("days[0]: day_index %d, want 0 or 1", d.DayIndex))
		case i > 0 && d.DayIndex <= plan.Days[i-1].DayIndex:
			v = append(v, fmt.Sprintf("days[%d]: day_index %d not greater than %d", i, d.DayIndex, plan.Days[i-1].DayIndex))
		}
		if len(plan.WeatherInfo) > 0 && !weather[d.Date] {
			v = append(v, fmt.Sprintf("days[%d]: no weather for %s", i, d.Date))
		}
		if d.Hotel != nil && d.Hotel.EstimatedCost < 0 {
			v = append(v, fmt.Sprintf("days[%d].hotel: negative estimated_cost", i))
		}
		for j, a := range d.Attractions {
			if a.Rating < 0 || a.TicketPrice < 0 {
				v = append(v, fmt.Sprintf("days[%d].attractions[%d]: negative rating or ticket_price", i, j))
			}
		}
		for j, m := range d.Meals {
			if !m.Type.Valid() {
				v = append(v, fmt.Sprintf("days[%d].meals[%d]: unknown type %q", i, j, m.Type))
			}
			if m.EstimatedCost < 0 {
				v = append(v, fmt.Sprintf("days[%d].meals[%d]: negative estimated_cost", i, j))
			}
		}
	}

	if b := plan.Budget; b != nil && math.Abs(b.Total-b.Sum()) > budgetTolerance {
		v = append(v, fmt.Sprintf("budget: total %.2f != sum of categories %.2f", b.Total, b.Sum()))
	}
	return v
}
