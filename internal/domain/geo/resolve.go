package geo

import (
	"math"
)

const earthRadiusKm = 6371

// Point is a WGS 84 coordinate.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Rounded returns p at map resolution, six decimal places.
func (p Point) Rounded() Point {
	return Point{Lat: round6(p.Lat), Lon: round6(p.Lon)}
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}

// Neighbourhood is one reference entry of the lookup table.
type Neighbourhood struct {
	Name string
	Point
}

// Nearest returns the table entry closest to p by great-circle distance.
// Entries at equal distance resolve to the one that appears first in the table.
// The boolean is false only when the table is empty.
func Nearest(table []Neighbourhood, p Point) (Neighbourhood, bool) {
	if len(table) == 0 {
		return Neighbourhood{}, false
	}
	best := table[0]
	bestDist := Haversine(p, best.Point)
	for _, candidate := range table[1:] {
		if d := Haversine(p, candidate.Point); d < bestDist {
			best = candidate
			bestDist = d
		}
	}
	return best, true
}

// Haversine returns the distance between a and b in kilometres.
func Haversine(a, b Point) float64 {
	dLat := toRadians(b.Lat - a.Lat)
	dLon := toRadians(b.Lon - a.Lon)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(a.Lat))*math.Cos(toRadians(b.Lat))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// Names lists the table entries in table order.
func Names(table []Neighbourhood) []string {
	out := make([]string, 0, len(table))
	for _, n := range table {
		out = append(out, n.Name)
	}
	return out
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
