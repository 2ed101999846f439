package layout

import (
	"math"

	"github.com/drlldiego/diagrammer-web-sub004/pkg/er"
)

func distance(a, b er.Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

func midpoint(a, b er.Point) er.Point {
	return er.Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

// unit returns the unit vector from a toward b. Coincident points get a
// fixed horizontal direction so callers always receive a usable vector.
func unit(a, b er.Point) er.Point {
	d := distance(a, b)
	if d < 1e-9 {
		return er.Point{X: 1, Y: 0}
	}
	return er.Point{X: (b.X - a.X) / d, Y: (b.Y - a.Y) / d}
}

func translate(p er.Point, dir er.Point, dist float64) er.Point {
	return er.Point{X: p.X + dir.X*dist, Y: p.Y + dir.Y*dist}
}

func polar(origin er.Point, angle, radius float64) er.Point {
	return er.Point{
		X: origin.X + math.Cos(angle)*radius,
		Y: origin.Y + math.Sin(angle)*radius,
	}
}

// pointSegment returns the distance from p to segment ab and the closest
// point on the segment.
func pointSegment(p, a, b er.Point) (float64, er.Point) {
	abx, aby := b.X-a.X, b.Y-a.Y
	lenSq := abx*abx + aby*aby
	if lenSq < 1e-12 {
		return distance(p, a), a
	}
	t := ((p.X-a.X)*abx + (p.Y-a.Y)*aby) / lenSq
	t = math.Max(0, math.Min(1, t))
	closest := er.Point{X: a.X + t*abx, Y: a.Y + t*aby}
	return distance(p, closest), closest
}

// perpendicular returns a unit vector normal to segment ab.
func perpendicular(a, b er.Point) er.Point {
	u := unit(a, b)
	return er.Point{X: -u.Y, Y: u.X}
}
