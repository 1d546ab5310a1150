package raster_test

import (
	"image/color"
	"testing"

	"github.com/stephanschulz/grid-cube/pkg/raster"
	"github.com/stephanschulz/grid-cube/pkg/scene"
)

func TestRenderDefaultScene(t *testing.T) {
	f := scene.Default().Build()
	opts := raster.Options{Size: 256, LineWidth: 1.5, Margin: 0.05}
	img := raster.Render(f, opts)

	if img.Bounds().Dx() != 256 || img.Bounds().Dy() != 256 {
		t.Fatalf("image bounds = %v, want 256x256", img.Bounds())
	}

	inked := 0
	for y := 0; y < 256; y++ {
		for x := 0; x < 256; x++ {
			c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
			if c.R != 255 || c.G != 255 || c.B != 255 {
				inked++
			}
		}
	}
	if inked == 0 {
		t.Fatal("rendered image is blank")
	}
	if inked == 256*256 {
		t.Fatal("rendered image is fully covered; projection fit is broken")
	}
}

func TestRenderZeroOptionsFallBack(t *testing.T) {
	f := scene.Default().Build()
	img := raster.Render(f, raster.Options{})
	want := raster.DefaultOptions().Size
	if img.Bounds().Dx() != want {
		t.Errorf("fallback size = %d, want %d", img.Bounds().Dx(), want)
	}
}

func TestRenderEmptyField(t *testing.T) {
	sc := scene.Default()
	sc.Shape.Size = 0
	sc.Shape.Pull = 0
	f := sc.Build()
	// Only the reference layer remains; rendering must still work.
	img := raster.Render(f, raster.Options{Size: 64, LineWidth: 1})
	if img.Bounds().Dx() != 64 {
		t.Fatalf("bounds = %v, want 64x64", img.Bounds())
	}
}
