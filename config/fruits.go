package config

import "image/color"

// FruitKind is a visual variant of a fruit. Size scales the drawn body only.
type FruitKind struct {
	Name       string
	Label      string
	Body       color.RGBA
	Juice      color.RGBA
	Size       float64
	Highlights bool
}

// FruitKinds are drawn uniformly at spawn
var FruitKinds []FruitKind

func init() {
	FruitKinds = []FruitKind{
		{Name: "apple", Label: "A", Body: color.RGBA{R: 220, G: 40, B: 40, A: 255}, Juice: color.RGBA{R: 255, G: 107, B: 107, A: 255}, Size: 1.0, Highlights: true},
		{Name: "orange", Label: "O", Body: color.RGBA{R: 255, G: 150, B: 30, A: 255}, Juice: color.RGBA{R: 255, G: 165, B: 0, A: 255}, Size: 0.9, Highlights: true},
		{Name: "watermelon", Label: "W", Body: color.RGBA{R: 40, G: 150, B: 60, A: 255}, Juice: color.RGBA{R: 255, G: 71, B: 87, A: 255}, Size: 1.2},
		{Name: "grape", Label: "G", Body: color.RGBA{R: 120, G: 50, B: 160, A: 255}, Juice: color.RGBA{R: 155, G: 89, B: 182, A: 255}, Size: 0.8},
		{Name: "strawberry", Label: "S", Body: color.RGBA{R: 230, G: 30, B: 70, A: 255}, Juice: color.RGBA{R: 255, G: 99, B: 132, A: 255}, Size: 0.85, Highlights: true},
		{Name: "banana", Label: "B", Body: color.RGBA{R: 250, G: 220, B: 60, A: 255}, Juice: color.RGBA{R: 255, G: 235, B: 59, A: 255}, Size: 0.95},
		{Name: "pineapple", Label: "P", Body: color.RGBA{R: 230, G: 180, B: 40, A: 255}, Juice: color.RGBA{R: 255, G: 193, B: 7, A: 255}, Size: 1.1},
		{Name: "cherry", Label: "C", Body: color.RGBA{R: 170, G: 10, B: 40, A: 255}, Juice: color.RGBA{R: 220, G: 20, B: 60, A: 255}, Size: 0.75, Highlights: true},
	}
}

// Kind returns the kind at index i, wrapping out-of-range values
func Kind(i int) FruitKind {
	n := len(FruitKinds)
	if n == 0 {
		return FruitKind{Name: "fruit", Label: "?", Body: White, Juice: White, Size: 1}
	}
	i %= n
	if i < 0 {
		i += n
	}
	return FruitKinds[i]
}
