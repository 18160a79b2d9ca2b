package chart

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/kerbaras/mangastats/pkg/stats"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

var (
	background = color.RGBA{0x26, 0x32, 0x38, 0xff}
	foreground = color.RGBA{0xee, 0xff, 0xff, 0xff}
	lineColor  = color.RGBA{0xff, 0x6b, 0x9d, 0xff}
	fillColor  = color.RGBA{0xff, 0x6b, 0x9d, 0x40}
	gridColor  = color.RGBA{0x54, 0x6e, 0x7a, 0xff}
)

const (
	marginLeft   = 80
	marginRight  = 20
	marginTop    = 20
	marginBottom = 40
)

// DrawLine renders points as an area graph on a width x height image.
func DrawLine(points []stats.GraphPoint, width, height int) (*image.RGBA, error) {
	if width <= marginLeft+marginRight || height <= marginTop+marginBottom {
		return nil, fmt.Errorf("image %dx%d is too small", width, height)
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	plot := image.Rect(marginLeft, marginTop, width-marginRight, height-marginBottom)
	hline(img, plot.Min.X, plot.Max.X, plot.Max.Y, gridColor)
	vline(img, plot.Min.X, plot.Min.Y, plot.Max.Y, gridColor)

	if len(points) == 0 {
		label(img, plot.Min.X+10, plot.Min.Y+20, "no operations recorded")
		return img, nil
	}

	lo, hi := minValue(points), maxValue(points)
	x := func(i int) float32 {
		if len(points) == 1 {
			return float32(plot.Min.X + plot.Dx()/2)
		}
		return float32(plot.Min.X) + float32(i)*float32(plot.Dx())/float32(len(points)-1)
	}
	y := func(v int64) float32 {
		if hi == lo {
			return float32(plot.Min.Y + plot.Dy()/2)
		}
		return float32(plot.Max.Y) - float32(v-lo)/float32(hi-lo)*float32(plot.Dy())
	}

	area := vector.NewRasterizer(width, height)
	area.MoveTo(x(0), float32(plot.Max.Y))
	for i, p := range points {
		area.LineTo(x(i), y(p.Value))
	}
	area.LineTo(x(len(points)-1), float32(plot.Max.Y))
	area.ClosePath()
	area.Draw(img, img.Bounds(), image.NewUniform(fillColor), image.Point{})

	stroke := vector.NewRasterizer(width, height)
	for i := 1; i < len(points); i++ {
		segment(stroke, x(i-1), y(points[i-1].Value), x(i), y(points[i].Value), 1.5)
	}
	for i, p := range points {
		dot(stroke, x(i), y(p.Value), 3)
	}
	stroke.Draw(img, img.Bounds(), image.NewUniform(lineColor), image.Point{})

	label(img, 4, plot.Min.Y+10, Bytes(hi))
	label(img, 4, plot.Max.Y, Bytes(lo))
	label(img, plot.Min.X, plot.Max.Y+20, points[0].Label)
	last := points[len(points)-1].Label
	label(img, plot.Max.X-font.MeasureString(basicfont.Face7x13, last).Round(), plot.Max.Y+20, last)
	return img, nil
}

// WritePNG encodes the area graph of points as PNG.
func WritePNG(w io.Writer, points []stats.GraphPoint, width, height int) error {
	img, err := DrawLine(points, width, height)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode chart: %w", err)
	}
	return nil
}

// segment adds a quad of half-width r around the line a-b.
func segment(z *vector.Rasterizer, ax, ay, bx, by, r float32) {
	dx, dy := bx-ax, by-ay
	l := float32(math.Hypot(float64(dx), float64(dy)))
	if l == 0 {
		return
	}
	nx, ny := -dy/l*r, dx/l*r
	z.MoveTo(ax+nx, ay+ny)
	z.LineTo(bx+nx, by+ny)
	z.LineTo(bx-nx, by-ny)
	z.LineTo(ax-nx, ay-ny)
	z.ClosePath()
}

// dot adds an octagon of radius r centered on (cx, cy).
func dot(z *vector.Rasterizer, cx, cy, r float32) {
	for i := 0; i < 8; i++ {
		a := float64(i) * math.Pi / 4
		px, py := cx+r*float32(math.Cos(a)), cy+r*float32(math.Sin(a))
		if i == 0 {
			z.MoveTo(px, py)
		} else {
			z.LineTo(px, py)
		}
	}
	z.ClosePath()
}

func label(img draw.Image, x, y int, s string) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(foreground),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

func hline(img *image.RGBA, x0, x1, y int, c color.Color) {
	for x := x0; x <= x1; x++ {
		img.Set(x, y, c)
	}
}

func vline(img *image.RGBA, x, y0, y1 int, c color.Color) {
	for y := y0; y <= y1; y++ {
		img.Set(x, y, c)
	}
}
