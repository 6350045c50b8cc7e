package ocr

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"sort"

	xdraw "golang.org/x/image/draw"
)

// Preprocessing policy. Contrast parameters mirror the upstream scanner
// pipeline; small inputs are upscaled first so glyphs have enough pixels
// for recognition.
const (
	minRasterWidth = 1000
	upscaleFactor  = 2

	contrastAlpha = 1.2
	contrastBeta  = 10
)

// Preprocess runs the deterministic cleanup pipeline used before OCR:
// grayscale, light denoising, contrast stretch, then Otsu binarization.
func Preprocess(src image.Image) *image.Gray {
	g := toGray(src)
	if g.Bounds().Dx() < minRasterWidth {
		g = upscale(g, upscaleFactor)
	}
	g = medianFilter3(g)
	g = stretchContrast(g, contrastAlpha, contrastBeta)
	return binarize(g, otsuThreshold(g))
}

func toGray(src image.Image) *image.Gray {
	if g, ok := src.(*image.Gray); ok {
		return g
	}
	b := src.Bounds()
	g := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			g.Set(x, y, color.GrayModel.Convert(src.At(x, y)))
		}
	}
	return g
}

func upscale(g *image.Gray, factor int) *image.Gray {
	b := g.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), g, b, xdraw.Src, nil)
	return dst
}

// medianFilter3 applies a 3x3 median filter. Border pixels are copied
// unchanged.
func medianFilter3(g *image.Gray) *image.Gray {
	b := g.Bounds()
	out := image.NewGray(b)
	copy(out.Pix, g.Pix)

	var window [9]byte
	for y := b.Min.Y + 1; y < b.Max.Y-1; y++ {
		for x := b.Min.X + 1; x < b.Max.X-1; x++ {
			k := 0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					window[k] = g.GrayAt(x+dx, y+dy).Y
					k++
				}
			}
			w := window
			sort.Slice(w[:], func(i, j int) bool { return w[i] < w[j] })
			out.SetGray(x, y, color.Gray{Y: w[4]})
		}
	}
	return out
}

func stretchContrast(g *image.Gray, alpha float64, beta int) *image.Gray {
	b := g.Bounds()
	out := image.NewGray(b)
	for i, v := range g.Pix {
		s := int(alpha*float64(v)) + beta
		if s > 255 {
			s = 255
		}
		out.Pix[i] = uint8(s)
	}
	return out
}

// otsuThreshold picks the global threshold that maximizes between-class
// variance of the intensity histogram (equivalently, minimizes intra-class
// variance of the bimodal split).
func otsuThreshold(g *image.Gray) uint8 {
	var hist [256]int
	for _, v := range g.Pix {
		hist[v]++
	}
	total := len(g.Pix)
	if total == 0 {
		return 128
	}

	var sum float64
	for i, c := range hist {
		sum += float64(i) * float64(c)
	}

	var (
		sumB, wB  float64
		best      float64
		threshold uint8
	)
	for t := 0; t < 256; t++ {
		wB += float64(hist[t])
		if wB == 0 {
			continue
		}
		wF := float64(total) - wB
		if wF == 0 {
			break
		}
		sumB += float64(t) * float64(hist[t])
		mB := sumB / wB
		mF := (sum - sumB) / wF
		between := wB * wF * (mB - mF) * (mB - mF)
		if between > best {
			best = between
			threshold = uint8(t)
		}
	}
	return threshold
}

func binarize(g *image.Gray, threshold uint8) *image.Gray {
	b := g.Bounds()
	out := image.NewGray(b)
	for i, v := range g.Pix {
		if v > threshold {
			out.Pix[i] = 255
		} else {
			out.Pix[i] = 0
		}
	}
	return out
}

func decodeImageFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	return img, err
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
