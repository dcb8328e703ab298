// Package render draws a frequency weighted word cloud inside the silhouette
// of a mask image.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"math/rand"

	"github.com/dtnitsch/mastodon-wordcloud/pkg/analytics"
	"github.com/dtnitsch/mastodon-wordcloud/pkg/mapreduce"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

var ErrNoWords = errors.New("need at least one word to draw a word cloud")

type Options struct {
	// Mask defines the canvas size and the drawable silhouette. When nil
	// the whole Width x Height canvas is drawable.
	Mask          image.Image
	Width, Height int

	Background   color.Color
	ContourColor color.Color
	ContourWidth int

	MaxWords int
	// Margin is the padding in pixels kept around each word.
	Margin int
	// MaxFontSize defaults to a quarter of the canvas height.
	MaxFontSize float64
	MinFontSize float64
	FontStep    float64
	// RelativeScaling weighs how much font size follows frequency: 0 only
	// uses rank, 1 makes size proportional to frequency.
	RelativeScaling float64
	// CellSize is the placement granularity in pixels.
	CellSize int
	Seed     int64
	// FontData is a TrueType font. Defaults to Go Regular.
	FontData []byte
}

// DefaultOptions mirrors the classic word cloud settings.
func DefaultOptions() Options {
	return Options{
		Width:           400,
		Height:          200,
		Background:      color.Black,
		ContourColor:    color.RGBA{255, 215, 0, 255},
		ContourWidth:    2,
		MaxWords:        100,
		Margin:          5,
		MinFontSize:     4,
		FontStep:        1,
		RelativeScaling: 0.5,
		CellSize:        4,
		Seed:            1,
	}
}

func (o *Options) fill() {
	d := DefaultOptions()
	if o.Mask == nil && (o.Width <= 0 || o.Height <= 0) {
		o.Width, o.Height = d.Width, d.Height
	}
	if o.Background == nil {
		o.Background = d.Background
	}
	if o.ContourColor == nil {
		o.ContourColor = d.ContourColor
	}
	if o.MaxWords <= 0 {
		o.MaxWords = d.MaxWords
	}
	if o.Margin < 0 {
		o.Margin = 0
	}
	if o.MinFontSize <= 0 {
		o.MinFontSize = d.MinFontSize
	}
	if o.FontStep <= 0 {
		o.FontStep = d.FontStep
	}
	if o.CellSize <= 0 {
		o.CellSize = d.CellSize
	}
	if o.FontData == nil {
		o.FontData = goregular.TTF
	}
}

// Render lays out the most frequent words largest first. A word that no
// longer fits is retried at smaller sizes; once the size drops below
// MinFontSize layout stops. Output is identical for identical input.
func Render(freq analytics.FrequencyMap, opts Options) (image.Image, error) {
	opts.fill()

	words := mapreduce.TopN(freq, opts.MaxWords)
	if len(words) == 0 {
		return nil, ErrNoWords
	}

	ttf, err := truetype.Parse(opts.FontData)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}

	area := newRegion(opts.Mask, opts.Width, opts.Height)
	free := newGrid(area, opts.CellSize)
	rng := rand.New(rand.NewSource(opts.Seed))

	dc := gg.NewContext(area.w, area.h)
	dc.SetColor(opts.Background)
	dc.Clear()

	fontSize := opts.MaxFontSize
	if fontSize <= 0 {
		fontSize = math.Max(float64(area.h)/4, opts.MinFontSize)
	}
	maxCount := float64(words[0].Count)
	lastFreq := 1.0

	for i, wc := range words {
		rel := float64(wc.Count) / maxCount
		if opts.RelativeScaling != 0 && i != 0 {
			rs := opts.RelativeScaling
			fontSize = math.Round((rs*(rel/lastFreq) + (1 - rs)) * fontSize)
		}

		placed := false
		for fontSize >= opts.MinFontSize {
			face := truetype.NewFace(ttf, &truetype.Options{Size: fontSize, Hinting: font.HintingFull})
			dc.SetFontFace(face)
			metrics := face.Metrics()
			ascent := float64(metrics.Ascent.Ceil())
			boxW, _ := dc.MeasureString(wc.Word)
			boxH := ascent + float64(metrics.Descent.Ceil())

			cw := int(math.Ceil((boxW + float64(opts.Margin)) / float64(opts.CellSize)))
			ch := int(math.Ceil((boxH + float64(opts.Margin)) / float64(opts.CellSize)))
			if cx, cy, ok := free.place(rng, cw, ch); ok {
				x := float64(cx*opts.CellSize) + float64(opts.Margin)/2
				y := float64(cy*opts.CellSize) + float64(opts.Margin)/2
				dc.SetColor(randomColor(rng))
				dc.DrawString(wc.Word, x, y+ascent)
				placed = true
				break
			}
			fontSize -= opts.FontStep
		}
		if !placed {
			break
		}
		lastFreq = rel
	}

	img := dc.Image()
	if rgba, ok := img.(*image.RGBA); ok {
		for _, p := range area.contour(opts.ContourWidth) {
			rgba.Set(p.X, p.Y, opts.ContourColor)
		}
	}
	return img, nil
}

// randomColor picks a random hue at 80% saturation and 50% lightness.
func randomColor(rng *rand.Rand) color.Color {
	return hsl(randomHue(rng), 0.8, 0.5)
}

// randomHue draws one of 256 hues spread over the full 0-360 degree circle.
func randomHue(rng *rand.Rand) float64 {
	return float64(rng.Intn(256)) * 360 / 255
}

func hsl(h, s, l float64) color.RGBA {
	c := (1 - math.Abs(2*l-1)) * s
	hp := math.Mod(h, 360) / 60
	x := c * (1 - math.Abs(math.Mod(hp, 2)-1))

	var r, g, b float64
	switch {
	case hp < 1:
		r, g, b = c, x, 0
	case hp < 2:
		r, g, b = x, c, 0
	case hp < 3:
		r, g, b = 0, c, x
	case hp < 4:
		r, g, b = 0, x, c
	case hp < 5:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	m := l - c/2
	to8 := func(v float64) uint8 { return uint8(math.Round((v + m) * 255)) }
	return color.RGBA{R: to8(r), G: to8(g), B: to8(b), A: 255}
}
