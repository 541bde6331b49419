package renderer

import "math"

const (
	lineWidth = 2.0

	connectorDash = 8.0
	connectorGap  = 6.0
	zoneDash      = 10.0
	zoneGap       = 6.0

	arrowSize       = 10.0
	legendArrowSize = 7.0

	// arrowSpread is the angle in radians between the shaft and each wing.
	arrowSpread = 0.35

	stepRadius = 12.0
)

// Vec is a point in canvas space.
type Vec struct {
	X, Y float64
}

// Segment is a straight stroke between two points.
type Segment struct {
	A, B Vec
}

// DashSegments splits the line a-b into dashes of length dash separated by
// gap. The last dash is truncated at b. A zero-length line has no dashes.
func DashSegments(a, b Vec, dash, gap float64) []Segment {
	length := math.Hypot(b.X-a.X, b.Y-a.Y)
	if length == 0 || dash <= 0 {
		return nil
	}
	dx, dy := (b.X-a.X)/length, (b.Y-a.Y)/length
	step := dash + gap

	segs := make([]Segment, 0, int(math.Ceil(length/step)))
	for pos := 0.0; pos < length; pos += step {
		end := math.Min(pos+dash, length)
		segs = append(segs, Segment{
			A: Vec{a.X + dx*pos, a.Y + dy*pos},
			B: Vec{a.X + dx*end, a.Y + dy*end},
		})
	}
	return segs
}

// ArrowheadPoints returns the triangle of an arrowhead pointing at tip along
// the direction from tail. The first point is the tip.
func ArrowheadPoints(tail, tip Vec, size float64) [3]Vec {
	angle := math.Atan2(tip.Y-tail.Y, tip.X-tail.X)
	return [3]Vec{
		tip,
		{tip.X - size*math.Cos(angle-arrowSpread), tip.Y - size*math.Sin(angle-arrowSpread)},
		{tip.X - size*math.Cos(angle+arrowSpread), tip.Y - size*math.Sin(angle+arrowSpread)},
	}
}

// Midpoint returns the centre of a-b.
func Midpoint(a, b Vec) Vec {
	return Vec{(a.X + b.X) / 2, (a.Y + b.Y) / 2}
}

// rectEdges returns the four sides of a rectangle in drawing order.
func rectEdges(x1, y1, x2, y2 float64) [4]Segment {
	return [4]Segment{
		{Vec{x1, y1}, Vec{x2, y1}},
		{Vec{x2, y1}, Vec{x2, y2}},
		{Vec{x2, y2}, Vec{x1, y2}},
		{Vec{x1, y2}, Vec{x1, y1}},
	}
}
