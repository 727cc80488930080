package app

import (
	"trip_planner/internal/domain"
	"trip_planner/internal/shared/geo"
)

// BuildTripMap lays a stored plan out for the map view. Each day lists the
// hotel first, then attractions in visiting order, then meals; anything
// without coordinates is left off. DistanceMeters follows hotel → attractions.
func BuildTripMap(sp domain.StoredPlan) domain.TripMap {
	out := domain.TripMap{
		PlanID: sp.ID,
		City:   sp.Plan.City,
		Days:   make([]domain.MapDay, 0, len(sp.Plan.Days)),
	}
	for _, d := range sp.Plan.Days {
		day := domain.MapDay{Date: d.Date, DayIndex: d.DayIndex, Markers: []domain.Marker{}}
		var path []geo.Point

		if h := d.Hotel; h != nil && hasCoords(h.Location) {
			day.Markers = append(day.Markers, domain.Marker{
				Kind:     domain.MarkerHotel,
				Name:     h.Name,
				Address:  optional(h.Address),
				Location: *h.Location,
			})
			path = append(path, point(*h.Location))
		}
		for _, a := range d.Attractions {
			if !hasCoords(&a.Location) {
				continue
			}
			day.Markers = append(day.Markers, domain.Marker{
				Kind:     domain.MarkerAttraction,
				Name:     a.Name,
				Address:  optional(a.Address),
				Location: a.Location,
			})
			path = append(path, point(a.Location))
		}
		for _, m := range d.Meals {
			if !hasCoords(m.Location) {
				continue
			}
			day.Markers = append(day.Markers, domain.Marker{
				Kind:     domain.MarkerMeal,
				Name:     m.Name,
				Address:  m.Address,
				Location: *m.Location,
			})
		}

		day.DistanceMeters = geo.PathMeters(path)
		out.Days = append(out.Days, day)
	}
	return out
}

// (0,0) is what an unset location decodes to.
func hasCoords(l *domain.Location) bool {
	return l != nil && (l.Longitude != 0 || l.Latitude != 0)
}

func point(l domain.Location) geo.Point { return geo.Point{Lon: l.Longitude, Lat: l.Latitude} }

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
