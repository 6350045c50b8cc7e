package ocr

import (
	"image"
	"image/color"
	"testing"
)

// bimodalImage paints dark "ink" on a light background, wide enough to skip
// the upscale step.
func bimodalImage(ink, paper uint8) *image.Gray {
	g := image.NewGray(image.Rect(0, 0, 1200, 40))
	for y := 0; y < 40; y++ {
		for x := 0; x < 1200; x++ {
			v := paper
			if x%10 < 3 {
				v = ink
			}
			g.SetGray(x, y, color.Gray{Y: v})
		}
	}
	return g
}

func TestOtsuThresholdSeparatesBimodalHistogram(t *testing.T) {
	g := bimodalImage(20, 220)
	th := otsuThreshold(g)
	if th < 20 || th >= 220 {
		t.Errorf("threshold = %d, want between the two modes", th)
	}
}

func TestPreprocessOutputIsBinary(t *testing.T) {
	out := Preprocess(bimodalImage(30, 200))
	for _, v := range out.Pix {
		if v != 0 && v != 255 {
			t.Fatalf("pixel value %d, want strictly binary output", v)
		}
	}
}

func TestPreprocessUpscalesSmallInputs(t *testing.T) {
	small := image.NewGray(image.Rect(0, 0, 400, 50))
	out := Preprocess(small)
	if got := out.Bounds().Dx(); got != 400*upscaleFactor {
		t.Errorf("width = %d, want %d", got, 400*upscaleFactor)
	}

	wide := image.NewGray(image.Rect(0, 0, 1600, 50))
	out = Preprocess(wide)
	if got := out.Bounds().Dx(); got != 1600 {
		t.Errorf("width = %d, want unchanged 1600", got)
	}
}

func TestBinarize(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 3, 1))
	g.Pix = []uint8{10, 128, 250}
	out := binarize(g, 128)
	want := []uint8{0, 0, 255}
	for i, v := range out.Pix {
		if v != want[i] {
			t.Errorf("pix[%d] = %d, want %d", i, v, want[i])
		}
	}
}
