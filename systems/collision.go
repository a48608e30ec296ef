package systems

import (
	"sort"

	"github.com/automoto/memory-ninja/components"
	"github.com/automoto/memory-ninja/shared/gamemath"
	"github.com/automoto/memory-ninja/systems/factory"
	"github.com/automoto/memory-ninja/tags"
	"github.com/automoto/memory-ninja/trail"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// Target is a fruit as the detector sees it: an ID and a hit-circle center.
type Target struct {
	ID     uint64
	Entity donburi.Entity
	State  components.FruitState
	X, Y   float64
}

// SliceEvent reports the first trail segment that crossed a fruit.
type SliceEvent struct {
	FruitID uint64
	Entity  donburi.Entity
	Angle   float64 // direction of the cutting segment, radians
	X, Y    float64 // where the segment entered the hit-circle
}

// Detect tests every trail segment against every flying target. Each target
// yields at most one event, taken from the first segment in trail order that
// touches it. Events come back ordered by fruit ID.
func Detect(points []trail.Point, targets []Target, radius float64) []SliceEvent {
	if len(points) < 2 || len(targets) == 0 {
		return nil
	}

	ordered := make([]Target, len(targets))
	copy(ordered, targets)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	var events []SliceEvent
	for _, tg := range ordered {
		if tg.State != components.FruitFlying {
			continue
		}
		for i := 1; i < len(points); i++ {
			p1, p2 := points[i-1], points[i]
			t, hit := gamemath.SegmentCircle(p1.X, p1.Y, p2.X, p2.Y, tg.X, tg.Y, radius)
			if !hit {
				continue
			}
			events = append(events, SliceEvent{
				FruitID: tg.ID,
				Entity:  tg.Entity,
				Angle:   gamemath.Angle(p1.X, p1.Y, p2.X, p2.Y),
				X:       gamemath.Lerp(p1.X, p2.X, t),
				Y:       gamemath.Lerp(p1.Y, p2.Y, t),
			})
			break
		}
	}
	return events
}

// Targets lists the flying fruits in the world. A nil filter keeps them all.
func Targets(w donburi.World, filter map[uint64]bool) []Target {
	var out []Target
	components.Fruit.Each(w, func(e *donburi.Entry) {
		fruit := components.Fruit.Get(e)
		if fruit.State != components.FruitFlying {
			return
		}
		if filter != nil && !filter[fruit.ID] {
			return
		}
		cx, cy := fruit.Center(components.Physics.Get(e))
		out = append(out, Target{
			ID:     fruit.ID,
			Entity: e.Entity(),
			State:  fruit.State,
			X:      cx,
			Y:      cy,
		})
	})
	return out
}

// Candidates narrows the fruits worth an exact test to those whose broadphase
// box overlaps the box of some trail segment. Fruits partly outside the grid
// are always included, so the result never misses a fruit Detect would hit.
// Without a grid it returns nil, which Targets reads as "all".
func Candidates(w donburi.World, points []trail.Point) map[uint64]bool {
	space, ok := factory.SpaceOf(w)
	if !ok {
		return nil
	}

	out := map[uint64]bool{}
	components.Fruit.Each(w, func(e *donburi.Entry) {
		fruit := components.Fruit.Get(e)
		obj := components.Object.Get(e)
		if fruit.State == components.FruitFlying && !space.Covers(obj.Object) {
			out[fruit.ID] = true
		}
	})

	if len(points) < 2 {
		return out
	}

	probe := resolv.NewObject(0, 0, 1, 1, tags.ResolvProbe)
	space.Add(probe)
	defer space.Remove(probe)

	for i := 1; i < len(points); i++ {
		p1, p2 := points[i-1], points[i]
		space.PlaceSegment(probe, p1.X, p1.Y, p2.X, p2.Y)

		check := probe.Check(0, 0, tags.ResolvFruit)
		if check == nil {
			continue
		}
		for _, o := range check.ObjectsByTags(tags.ResolvFruit) {
			if id, ok := o.Data.(uint64); ok {
				out[id] = true
			}
		}
	}
	return out
}
