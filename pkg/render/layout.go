package render

import "math/rand"

// grid tracks free space in cells of cellSize pixels. A cell is taken when
// any of its pixels is outside the drawable region or already holds a word.
type grid struct {
	w, h     int
	cellSize int
	taken    []bool
}

func newGrid(r region, cellSize int) *grid {
	g := &grid{
		w:        (r.w + cellSize - 1) / cellSize,
		h:        (r.h + cellSize - 1) / cellSize,
		cellSize: cellSize,
	}
	g.taken = make([]bool, g.w*g.h)
	for cy := 0; cy < g.h; cy++ {
		for cx := 0; cx < g.w; cx++ {
			g.taken[cy*g.w+cx] = !r.cellDrawable(cx*cellSize, cy*cellSize, cellSize)
		}
	}
	return g
}

func (r region) cellDrawable(px, py, size int) bool {
	for y := py; y < py+size; y++ {
		for x := px; x < px+size; x++ {
			if !r.at(x, y) {
				return false
			}
		}
	}
	return true
}

// place picks a free cw x ch block uniformly at random among all free
// positions and marks it taken. It reports false when nothing fits.
func (g *grid) place(rng *rand.Rand, cw, ch int) (int, int, bool) {
	if cw > g.w || ch > g.h {
		return 0, 0, false
	}

	sum := integral(g.w, g.h, func(x, y int) bool { return g.taken[y*g.w+x] })
	fits := func(x, y int) bool { return rectSum(sum, g.w, x, y, x+cw, y+ch) == 0 }

	free := 0
	for y := 0; y+ch <= g.h; y++ {
		for x := 0; x+cw <= g.w; x++ {
			if fits(x, y) {
				free++
			}
		}
	}
	if free == 0 {
		return 0, 0, false
	}

	pick := rng.Intn(free)
	for y := 0; y+ch <= g.h; y++ {
		for x := 0; x+cw <= g.w; x++ {
			if !fits(x, y) {
				continue
			}
			if pick == 0 {
				g.occupy(x, y, cw, ch)
				return x, y, true
			}
			pick--
		}
	}
	return 0, 0, false
}

func (g *grid) occupy(x, y, cw, ch int) {
	for cy := y; cy < y+ch; cy++ {
		for cx := x; cx < x+cw; cx++ {
			g.taken[cy*g.w+cx] = true
		}
	}
}
