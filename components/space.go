package components

import (
	"math"

	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// SpaceData is the broadphase grid over the viewport. Grid coordinates are
// world coordinates shifted by Pad so boxes just past the top or left edge
// still land in cells.
type SpaceData struct {
	*resolv.Space
	Pad           float64
	Width, Height float64 // extent actually covered by cells
}

// ToSpace converts a world coordinate into grid coordinates.
func (s *SpaceData) ToSpace(v float64) float64 {
	return v + s.Pad
}

// Covers reports whether obj lies entirely inside the grid.
func (s *SpaceData) Covers(obj *resolv.Object) bool {
	return obj.X >= 0 && obj.Y >= 0 && obj.X+obj.W <= s.Width && obj.Y+obj.H <= s.Height
}

var Space = donburi.NewComponentType[SpaceData]()

// Slack widens broadphase boxes so cell rounding never hides a touching pair.
const Slack = 2.0

// Place moves obj to cover the circle at (cx, cy) with radius r.
func (s *SpaceData) Place(obj *resolv.Object, cx, cy, r float64) {
	obj.X = s.ToSpace(cx - r - Slack)
	obj.Y = s.ToSpace(cy - r - Slack)
	obj.W = 2 * (r + Slack)
	obj.H = obj.W
	obj.Update()
}

// PlaceSegment moves obj to cover the box around a segment.
func (s *SpaceData) PlaceSegment(obj *resolv.Object, x1, y1, x2, y2 float64) {
	minX, maxX := math.Min(x1, x2), math.Max(x1, x2)
	minY, maxY := math.Min(y1, y2), math.Max(y1, y2)
	obj.X = s.ToSpace(minX - Slack)
	obj.Y = s.ToSpace(minY - Slack)
	obj.W = maxX - minX + 2*Slack
	obj.H = maxY - minY + 2*Slack
	obj.Update()
}
