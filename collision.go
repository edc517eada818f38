package patternlock

// HitCircle is a circular hit area in normalized coordinates.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies strictly inside the circle. Points on
// the circumference are outside.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy < c.Radius*c.Radius
}

// Detect returns the first point of grid, in definition order, whose distance
// to (x, y) is strictly less than radius. When hit areas overlap the earlier
// point wins even if a later one is closer.
func Detect(x, y float64, grid Grid, radius float64) (GridPoint, bool) {
	for _, p := range grid {
		if (HitCircle{CenterX: p.X, CenterY: p.Y, Radius: radius}).Contains(x, y) {
			return p, true
		}
	}
	return GridPoint{}, false
}
