package patternlock

// Segment is a line between two points in normalized coordinates.
type Segment struct {
	X1, Y1, X2, Y2 float64
}

// ConnectedLines returns one segment per consecutive pair in selection, with
// endpoints resolved from grid. Pairs with an id missing from grid are
// skipped. The result is recomputed on every call and never cached.
func ConnectedLines(selection []int, grid Grid) []Segment {
	if len(selection) < 2 {
		return nil
	}
	lines := make([]Segment, 0, len(selection)-1)
	for i := 0; i < len(selection)-1; i++ {
		p1, ok1 := grid.Point(selection[i])
		p2, ok2 := grid.Point(selection[i+1])
		if ok1 && ok2 {
			lines = append(lines, Segment{X1: p1.X, Y1: p1.Y, X2: p2.X, Y2: p2.Y})
		}
	}
	return lines
}
