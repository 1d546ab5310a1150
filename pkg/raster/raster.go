// Package raster draws the admitted segment list of a field into an
// image, as a quick shareable snapshot of what the interactive view
// shows. Segments are projected isometrically and stroked with
// golang.org/x/image/vector.
package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"github.com/stephanschulz/grid-cube/pkg/field"
)

// Options controls the snapshot rendering.
type Options struct {
	Size      int     // output width and height in pixels
	LineWidth float64 // stroke width in pixels
	Margin    float64 // border as a fraction of Size
}

// DefaultOptions returns the snapshot defaults.
func DefaultOptions() Options {
	return Options{Size: 1024, LineWidth: 1.5, Margin: 0.05}
}

// segment draw order, back to front.
var drawOrder = []field.SegmentKind{
	field.SegReference,
	field.SegWall,
	field.SegSlice,
	field.SegDisplaced,
}

// Render projects the field's segments isometrically and strokes them
// onto a white canvas. Each segment is drawn with the mean of its two
// endpoint opacities; the interactive renderer interpolates along the
// segment instead, which a flat stroke approximates well enough for a
// snapshot.
func Render(f *field.Field, opts Options) *image.RGBA {
	if opts.Size <= 0 {
		opts = DefaultOptions()
	}
	if opts.LineWidth <= 0 {
		opts.LineWidth = 1.5
	}

	img := image.NewRGBA(image.Rect(0, 0, opts.Size, opts.Size))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	if len(f.Segments) == 0 {
		return img
	}

	proj := fitProjection(f, opts)
	r := vector.NewRasterizer(opts.Size, opts.Size)

	for _, kind := range drawOrder {
		for _, s := range f.Segments {
			if s.Kind != kind {
				continue
			}
			ax, ay := proj.apply(s.A)
			bx, by := proj.apply(s.B)
			alpha := (s.AlphaA + s.AlphaB) / 2
			strokeSegment(r, img, ax, ay, bx, by, opts.LineWidth, alpha)
		}
	}
	return img
}

// projection maps world space through the isometric axes into pixels.
type projection struct {
	scale   float64
	offsetX float64
	offsetY float64
}

// isoProject flattens a world position onto the drawing plane.
func isoProject(v field.Vec3) (float64, float64) {
	const cos30, sin30 = 0.8660254037844386, 0.5
	u := (v.X - v.Y) * cos30
	w := (v.X+v.Y)*sin30 - v.Z
	return u, w
}

func (p projection) apply(v field.Vec3) (float64, float64) {
	u, w := isoProject(v)
	return u*p.scale + p.offsetX, w*p.scale + p.offsetY
}

// fitProjection scales and centers the projected bounds inside the
// image with the configured margin.
func fitProjection(f *field.Field, opts Options) projection {
	minU, minW := math.Inf(1), math.Inf(1)
	maxU, maxW := math.Inf(-1), math.Inf(-1)
	for _, s := range f.Segments {
		for _, v := range [2]field.Vec3{s.A, s.B} {
			u, w := isoProject(v)
			minU = math.Min(minU, u)
			maxU = math.Max(maxU, u)
			minW = math.Min(minW, w)
			maxW = math.Max(maxW, w)
		}
	}

	inner := float64(opts.Size) * (1 - 2*opts.Margin)
	spanU := maxU - minU
	spanW := maxW - minW
	span := math.Max(spanU, spanW)
	if span <= 0 {
		span = 1
	}
	scale := inner / span

	// Center both axes.
	offX := (float64(opts.Size) - spanU*scale) / 2
	offY := (float64(opts.Size) - spanW*scale) / 2
	return projection{
		scale:   scale,
		offsetX: offX - minU*scale,
		offsetY: offY - minW*scale,
	}
}

// strokeSegment draws one line segment as a filled quad.
func strokeSegment(r *vector.Rasterizer, dst *image.RGBA, ax, ay, bx, by, width, alpha float64) {
	if alpha <= 0 {
		return
	}
	dx := bx - ax
	dy := by - ay
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	hw := width / 2
	nx := -dy / length * hw
	ny := dx / length * hw

	r.Reset(dst.Bounds().Dx(), dst.Bounds().Dy())
	r.MoveTo(float32(ax+nx), float32(ay+ny))
	r.LineTo(float32(bx+nx), float32(by+ny))
	r.LineTo(float32(bx-nx), float32(by-ny))
	r.LineTo(float32(ax-nx), float32(ay-ny))
	r.ClosePath()

	a := uint8(math.Round(alpha * 255))
	src := image.NewUniform(color.NRGBA{A: a})
	r.Draw(dst, dst.Bounds(), src, image.Point{})
}
