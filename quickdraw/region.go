package quickdraw

import (
	"github.com/retrodasm/resourcedasm/byteio"
	"github.com/retrodasm/resourcedasm/rderr"
)

// Region is a decoded QuickDraw clip region: a bounding box plus, for
// each row inside it, the sorted column coordinates where inside/outside
// alternates.
type Region struct {
	Bounds Rect
	// rowRuns[row] holds the sorted boundary columns for bounds.Y1+row.
	// A nil slice means the row is entirely inside the bounding box.
	rowRuns [][]int16
}

// regionEndMarker terminates a row's run list and the region itself.
const regionEndMarker = 0x7FFF

// ReadRegion decodes a QuickDraw region blob: a 16-bit total size, the
// bounding rect, then, for rows that are not entirely filled, a sequence
// of rows each introduced by its y coordinate, followed by the row's
// column boundaries and terminated by regionEndMarker, until a row y
// equal to regionEndMarker closes the region.
func ReadRegion(r *byteio.Reader) (*Region, error) {
	size, err := r.GetU16BE()
	if err != nil {
		return nil, err
	}
	bounds, err := ReadRect(r)
	if err != nil {
		return nil, err
	}

	reg := &Region{Bounds: bounds, rowRuns: make([][]int16, bounds.Height())}

	// A region whose size is exactly 10 (2-byte size + 8-byte rect) has
	// no run data: the whole bounding box is inside.
	if size <= 10 {
		return reg, nil
	}

	for {
		y, err := r.GetI16BE()
		if err != nil {
			return nil, err
		}
		if int(y) == regionEndMarker {
			break
		}
		row := int(y) - int(bounds.Y1)
		if row < 0 || row >= len(reg.rowRuns) {
			return nil, rderr.Newf(rderr.KindOutOfBounds, "region row %d outside bounds %v", y, bounds)
		}
		var cols []int16
		for {
			x, err := r.GetI16BE()
			if err != nil {
				return nil, err
			}
			if int(x) == regionEndMarker {
				break
			}
			cols = append(cols, x)
		}
		reg.rowRuns[row] = cols
	}
	return reg, nil
}

// Inside reports whether (x, y) is inside the region, using a standard
// odd/even crossing count against the row's sorted run boundaries.
func (reg *Region) Inside(x, y int) bool {
	if x < int(reg.Bounds.X1) || x >= int(reg.Bounds.X2) ||
		y < int(reg.Bounds.Y1) || y >= int(reg.Bounds.Y2) {
		return false
	}
	row := reg.rowRuns[y-int(reg.Bounds.Y1)]
	if row == nil {
		return true
	}
	inside := false
	for _, boundary := range row {
		if int16(x) < boundary {
			break
		}
		inside = !inside
	}
	return inside
}

// Each calls fn(x, y, inside) for every pixel in the bounding rectangle,
// in reading order (row-major, top-to-bottom, left-to-right).
func (reg *Region) Each(fn func(x, y int, inside bool)) {
	for y := int(reg.Bounds.Y1); y < int(reg.Bounds.Y2); y++ {
		for x := int(reg.Bounds.X1); x < int(reg.Bounds.X2); x++ {
			fn(x, y, reg.Inside(x, y))
		}
	}
}
