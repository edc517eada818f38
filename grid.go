package patternlock

import (
	"fmt"
	"math"
)

// GridPoint is a selectable point in normalized coordinate space (0-100 on
// each axis). IDs are unique within a Grid.
type GridPoint struct {
	ID   int
	X, Y float64
}

// Grid is an ordered, read-only set of points. Definition order is the
// hit-test order.
type Grid []GridPoint

// NewGrid validates points and returns them as a Grid. The slice is copied.
func NewGrid(points ...GridPoint) (Grid, error) {
	if len(points) == 0 {
		return nil, &ConfigError{Field: "grid", Err: ErrEmptyGrid}
	}
	seen := make(map[int]struct{}, len(points))
	for _, p := range points {
		if _, dup := seen[p.ID]; dup {
			return nil, &ConfigError{Field: "grid", Err: fmt.Errorf("%w: %d", ErrDuplicateID, p.ID)}
		}
		seen[p.ID] = struct{}{}
		if !(Vec2{p.X, p.Y}).finite() {
			return nil, &ConfigError{Field: "grid", Err: fmt.Errorf("%w: point %d", ErrInvalidPoint, p.ID)}
		}
	}
	g := make(Grid, len(points))
	copy(g, points)
	return g, nil
}

// DefaultGrid returns the classic 3x3 grid with points at 20, 50 and 80
// percent on each axis, numbered 1-9 row by row.
func DefaultGrid() Grid {
	return Grid{
		{ID: 1, X: 20, Y: 20}, {ID: 2, X: 50, Y: 20}, {ID: 3, X: 80, Y: 20},
		{ID: 4, X: 20, Y: 50}, {ID: 5, X: 50, Y: 50}, {ID: 6, X: 80, Y: 50},
		{ID: 7, X: 20, Y: 80}, {ID: 8, X: 50, Y: 80}, {ID: 9, X: 80, Y: 80},
	}
}

// SquareGrid returns an n x n grid spread evenly over the normalized space,
// keeping a margin of half a cell on every side. IDs run 1..n*n row by row.
// SquareGrid(3) places points at 16.7, 50 and 83.3.
func SquareGrid(n int) (Grid, error) {
	if n <= 0 {
		return nil, &ConfigError{Field: "grid", Err: ErrEmptyGrid}
	}
	step := 100.0 / float64(n)
	g := make(Grid, 0, n*n)
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			g = append(g, GridPoint{
				ID: row*n + col + 1,
				X:  step/2 + float64(col)*step,
				Y:  step/2 + float64(row)*step,
			})
		}
	}
	return g, nil
}

// Point looks up a point by id.
func (g Grid) Point(id int) (GridPoint, bool) {
	for _, p := range g {
		if p.ID == id {
			return p, true
		}
	}
	return GridPoint{}, false
}

// MinSpacing returns the smallest distance between any two points, or 0 for
// grids with fewer than two points. Hit radii at or above half this value
// make neighbouring hit areas overlap.
func (g Grid) MinSpacing() float64 {
	if len(g) < 2 {
		return 0
	}
	best := math.Inf(1)
	for i := range g {
		for j := i + 1; j < len(g); j++ {
			if d := math.Hypot(g[i].X-g[j].X, g[i].Y-g[j].Y); d < best {
				best = d
			}
		}
	}
	return best
}
