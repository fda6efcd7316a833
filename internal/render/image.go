package render

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"math"

	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/plan"
	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/utils"
)

// ImageRenderer paints a gradient with a few filled shapes, sized roughly
// in proportion to the target.
type ImageRenderer struct {
	base
}

func (r *ImageRenderer) Render(d plan.FileDescriptor) ([]byte, error) {
	w, h := r.dimensions(d.SizeBytes)
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	from, to := r.color(), r.color()
	for y := 0; y < h; y++ {
		t := float64(y) / float64(max(h-1, 1))
		c := blend(from, to, t)
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}

	for i := 0; i < utils.IntBetween(r.rng, 3, 12); i++ {
		c := r.color()
		cx, cy := r.rng.IntN(w), r.rng.IntN(h)
		radius := utils.IntBetween(r.rng, min(w, h)/20+1, min(w, h)/4+2)
		if utils.Chance(r.rng, 0.5) {
			fillCircle(img, cx, cy, radius, c)
		} else {
			fillRect(img, image.Rect(cx-radius, cy-radius/2, cx+radius, cy+radius/2), c)
		}
	}

	var buf bytes.Buffer
	var err error
	if d.Kind == plan.KindPNG {
		err = png.Encode(&buf, img)
	} else {
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: utils.IntBetween(r.rng, 70, 95)})
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// dimensions keeps pixel counts bounded so large targets do not exhaust memory.
func (r *ImageRenderer) dimensions(target uint64) (int, int) {
	side := int(math.Sqrt(float64(target) / 3))
	side = max(64, min(side, 2048))
	w := side + r.rng.IntN(side/4+1)
	h := side*3/4 + r.rng.IntN(side/4+1)
	return w, h
}

func (r *ImageRenderer) color() color.RGBA {
	return color.RGBA{R: uint8(r.rng.IntN(256)), G: uint8(r.rng.IntN(256)), B: uint8(r.rng.IntN(256)), A: 255}
}

func blend(a, b color.RGBA, t float64) color.RGBA {
	mix := func(x, y uint8) uint8 { return uint8(float64(x) + (float64(y)-float64(x))*t) }
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 255}
}

func fillCircle(img *image.RGBA, cx, cy, radius int, c color.RGBA) {
	rect := image.Rect(cx-radius, cy-radius, cx+radius+1, cy+radius+1).Intersect(img.Bounds())
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= radius*radius {
				img.SetRGBA(x, y, c)
			}
		}
	}
}

func fillRect(img *image.RGBA, rect image.Rectangle, c color.RGBA) {
	rect = rect.Intersect(img.Bounds())
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}
