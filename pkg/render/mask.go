package render

import (
	"image"
	"image/color"
)

// region is the drawable area of a mask. A mask pixel is drawable unless it
// is fully transparent or pure white.
type region struct {
	w, h     int
	drawable []bool
}

func newRegion(mask image.Image, width, height int) region {
	if mask == nil {
		r := region{w: width, h: height, drawable: make([]bool, width*height)}
		for i := range r.drawable {
			r.drawable[i] = true
		}
		return r
	}

	b := mask.Bounds()
	r := region{w: b.Dx(), h: b.Dy(), drawable: make([]bool, b.Dx()*b.Dy())}
	for y := 0; y < r.h; y++ {
		for x := 0; x < r.w; x++ {
			c := color.NRGBAModel.Convert(mask.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			white := c.R == 255 && c.G == 255 && c.B == 255
			r.drawable[y*r.w+x] = c.A != 0 && !white
		}
	}
	return r
}

func (r region) at(x, y int) bool {
	if x < 0 || y < 0 || x >= r.w || y >= r.h {
		return false
	}
	return r.drawable[y*r.w+x]
}

// contour returns the pixels lying within width/2 of the edge between
// drawable and excluded pixels, on both sides of it. The image border is
// not an edge.
func (r region) contour(width int) []image.Point {
	if width <= 0 {
		return nil
	}
	radius := (width + 1) / 2

	sum := integral(r.w, r.h, func(x, y int) bool { return r.drawable[y*r.w+x] })

	var points []image.Point
	for y := 0; y < r.h; y++ {
		for x := 0; x < r.w; x++ {
			x0, y0 := max(x-radius, 0), max(y-radius, 0)
			x1, y1 := min(x+radius+1, r.w), min(y+radius+1, r.h)
			n := rectSum(sum, r.w, x0, y0, x1, y1)
			area := (x1 - x0) * (y1 - y0)
			if n != 0 && n != area {
				points = append(points, image.Pt(x, y))
			}
		}
	}
	return points
}

// integral builds a summed-area table of size (w+1)*(h+1) over set(x, y).
func integral(w, h int, set func(x, y int) bool) []int {
	stride := w + 1
	sum := make([]int, stride*(h+1))
	for y := 0; y < h; y++ {
		row := 0
		for x := 0; x < w; x++ {
			if set(x, y) {
				row++
			}
			sum[(y+1)*stride+x+1] = sum[y*stride+x+1] + row
		}
	}
	return sum
}

// rectSum counts the set cells in [x0,x1) x [y0,y1).
func rectSum(sum []int, w, x0, y0, x1, y1 int) int {
	stride := w + 1
	return sum[y1*stride+x1] - sum[y0*stride+x1] - sum[y1*stride+x0] + sum[y0*stride+x0]
}
