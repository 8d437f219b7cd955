// Package classify turns a photo of a puzzle board into a grid.Grid by
// sampling the average color of each cell and matching it against known
// hue/saturation/value bands.
package classify

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"

	"github.com/herohde/former/pkg/grid"
)

// ErrImageUnreadable wraps any failure to open or decode a board photo.
var ErrImageUnreadable = errors.New("image unreadable")

// shapeRatio is the fraction of a cell's width/height sampled, centered,
// to avoid picking up background or gridline pixels near the edges.
const shapeRatio = 0.6

// band is a half-open hue range [loHue, hiHue) paired with saturation/value
// thresholds (a match must exceed both) and the Cell it identifies.
type band struct {
	loHue, hiHue float64
	minSat       float64
	minVal       float64
	cell         grid.Cell
}

// bands is checked in order; the first match wins. Thresholds are tuned
// against the reference board photos: circles are pink, parallelograms
// orange, arrows green, squares blue.
var bands = []band{
	{290, 350, 0.3, 0.5, grid.Pink},
	{15, 45, 0.3, 0.5, grid.Orange},
	{70, 170, 0.3, 0.3, grid.Green},
	{180, 260, 0.3, 0.3, grid.Blue},
}

// FromFile loads the image at path and classifies each of its
// grid.Height x grid.Width cells.
func FromFile(path string) (grid.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return grid.Grid{}, fmt.Errorf("%w: open %v: %v", ErrImageUnreadable, path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return grid.Grid{}, fmt.Errorf("%w: decode %v: %v", ErrImageUnreadable, path, err)
	}
	return FromImage(img), nil
}

// FromImage classifies each cell of img directly, without any file I/O.
func FromImage(img image.Image) grid.Grid {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	cellW := width / grid.Width
	cellH := height / grid.Height

	var g grid.Grid
	for r := 0; r < grid.Height; r++ {
		for c := 0; c < grid.Width; c++ {
			avg, ok := sampleCell(img, bounds, r, c, cellW, cellH)
			if !ok {
				g.Set(r, c, grid.Empty)
				continue
			}
			g.Set(r, c, classify(avg))
		}
	}
	return g
}

func sampleCell(img image.Image, bounds image.Rectangle, row, col, cellW, cellH int) (color.RGBA, bool) {
	y0 := row*cellH + int(float64(cellH)*(1-shapeRatio)/2)
	y1 := y0 + int(float64(cellH)*shapeRatio)
	x0 := col*cellW + int(float64(cellW)*(1-shapeRatio)/2)
	x1 := x0 + int(float64(cellW)*shapeRatio)

	var sumR, sumG, sumB, pixels int64
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if x >= bounds.Dx() || y >= bounds.Dy() {
				continue
			}
			r, gg, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			sumR += int64(r >> 8)
			sumG += int64(gg >> 8)
			sumB += int64(b >> 8)
			pixels++
		}
	}
	if pixels == 0 {
		return color.RGBA{}, false
	}
	return color.RGBA{
		R: uint8(sumR / pixels),
		G: uint8(sumG / pixels),
		B: uint8(sumB / pixels),
	}, true
}

func classify(c color.RGBA) grid.Cell {
	h, s, v := rgbToHSV(c)
	for _, b := range bands {
		if h >= b.loHue && h < b.hiHue && s > b.minSat && v > b.minVal {
			return b.cell
		}
	}
	return grid.Empty
}

// rgbToHSV converts an 8-bit RGB triple to hue in [0,360), saturation and
// value in [0,1].
func rgbToHSV(c color.RGBA) (h, s, v float64) {
	rf := float64(c.R) / 255.0
	gf := float64(c.G) / 255.0
	bf := float64(c.B) / 255.0

	max := maxOf(rf, gf, bf)
	min := minOf(rf, gf, bf)
	v = max

	d := max - min
	if max == 0 {
		s = 0
	} else {
		s = d / max
	}

	switch {
	case d == 0:
		h = 0
	case max == rf:
		h = 60 * math.Mod((gf-bf)/d, 6)
	case max == gf:
		h = 60 * (((bf - rf) / d) + 2)
	default:
		h = 60 * (((rf - gf) / d) + 4)
	}
	if h < 0 {
		h += 360
	}
	return h, s, v
}

func maxOf(vs ...float64) float64 {
	m := vs[0]
	for _, v := range vs[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

func minOf(vs ...float64) float64 {
	m := vs[0]
	for _, v := range vs[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
