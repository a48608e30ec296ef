package assets

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/automoto/memory-ninja/config"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// SpriteCache draws fruit bodies once per kind and size and hands out the
// cached image, or one of its halves, afterwards.
type SpriteCache struct {
	cache      map[string]*ebiten.Image
	frameCache map[string]*ebiten.Image
	pixel      *ebiten.Image
}

func NewSpriteCache() *SpriteCache {
	return &SpriteCache{
		cache:      make(map[string]*ebiten.Image),
		frameCache: make(map[string]*ebiten.Image),
	}
}

// Fruit returns the full body of the given kind at the given diameter.
func (s *SpriteCache) Fruit(kind int, size float64) *ebiten.Image {
	key := fmt.Sprintf("%d/%d", kind, int(size))
	if img, ok := s.cache[key]; ok {
		return img
	}

	img := drawFruit(config.Kind(kind), size)
	s.cache[key] = img
	return img
}

// Half returns the left (side < 0) or right half of a fruit sprite.
func (s *SpriteCache) Half(kind int, size float64, side int) *ebiten.Image {
	key := fmt.Sprintf("%d/%d/%d", kind, int(size), side)
	if img, ok := s.frameCache[key]; ok {
		return img
	}

	sheet := s.Fruit(kind, size)
	b := sheet.Bounds()
	mid := b.Min.X + b.Dx()/2
	rect := image.Rect(mid, b.Min.Y, b.Max.X, b.Max.Y)
	if side < 0 {
		rect = image.Rect(b.Min.X, b.Min.Y, mid, b.Max.Y)
	}
	frame := sheet.SubImage(rect).(*ebiten.Image)
	s.frameCache[key] = frame
	return frame
}

// Pixel is a 1x1 white image for tinted primitives.
func (s *SpriteCache) Pixel() *ebiten.Image {
	if s.pixel == nil {
		s.pixel = ebiten.NewImage(1, 1)
		s.pixel.Fill(color.White)
	}
	return s.pixel
}

func drawFruit(kind config.FruitKind, size float64) *ebiten.Image {
	d := int(math.Ceil(size))
	if d < 2 {
		d = 2
	}
	img := ebiten.NewImage(d, d)
	r := float32(d) / 2

	vector.FillCircle(img, r, r, r, kind.Body, true)

	// darker rind ring
	rind := kind.Body
	rind.R /= 2
	rind.G /= 2
	rind.B /= 2
	vector.StrokeCircle(img, r, r, r-2, 3, rind, true)

	if kind.Highlights {
		vector.FillCircle(img, r*0.65, r*0.6, r*0.18, color.RGBA{R: 255, G: 255, B: 255, A: 140}, true)
	}

	// stem
	vector.StrokeLine(img, r, r*0.15, r+r*0.12, -r*0.05, 3, color.RGBA{R: 90, G: 60, B: 30, A: 255}, true)

	return img
}
