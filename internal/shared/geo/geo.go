package geo

import "math"

const earthRadiusMeters = 6371000.0

// HaversineMeters is the great-circle distance between two points in degrees.
func HaversineMeters(lat1, lon1, lat2, lon2 float64) float64 {
	rad := math.Pi / 180
	dLat := (lat2 - lat1) * rad
	dLon := (lon2 - lon1) * rad
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*rad)*math.Cos(lat2*rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusMeters * math.Asin(math.Min(1, math.Sqrt(a)))
}

// Point is a longitude/latitude pair, in that order, as the map provider uses.
type Point struct{ Lon, Lat float64 }

// PathMeters sums the leg distances along pts in order.
func PathMeters(pts []Point) float64 {
	var total float64
	for i := 1; i < len(pts); i++ {
		total += HaversineMeters(pts[i-1].Lat, pts[i-1].Lon, pts[i].Lat, pts[i].Lon)
	}
	return total
}
