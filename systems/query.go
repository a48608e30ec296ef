package systems

import (
	"github.com/automoto/memory-ninja/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

var (
	fruitQuery  = donburi.NewQuery(filter.Contains(tags.Fruit))
	halfQuery   = donburi.NewQuery(filter.Contains(tags.Half))
	juiceQuery  = donburi.NewQuery(filter.Contains(tags.Juice))
	effectQuery = donburi.NewQuery(filter.Contains(tags.Effect))
	liveQuery   = donburi.NewQuery(filter.Or(
		filter.Contains(tags.Fruit),
		filter.Contains(tags.Half),
		filter.Contains(tags.Juice),
		filter.Contains(tags.Effect),
	))
)

// CountJuice returns the number of live juice particles.
func CountJuice(w donburi.World) int {
	return juiceQuery.Count(w)
}

// CountLive returns the number of simulated entities. The broadphase grid is
// bookkeeping and does not count.
func CountLive(w donburi.World) int {
	return liveQuery.Count(w)
}

// Counts breaks the live set down by kind.
type Counts struct {
	Fruits, Halves, Juice, Effects int
}

func CountAll(w donburi.World) Counts {
	return Counts{
		Fruits:  fruitQuery.Count(w),
		Halves:  halfQuery.Count(w),
		Juice:   juiceQuery.Count(w),
		Effects: effectQuery.Count(w),
	}
}
