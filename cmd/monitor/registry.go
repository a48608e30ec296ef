package main

import (
	"errors"
	"math/rand"
	"sort"
	"sync"
	"time"
)

var (
	ErrUnknownTab = errors.New("unknown tab")
	ErrDiscarded  = errors.New("tab already discarded")
)

// Tab is a simulated browser tab tracked for idleness.
type Tab struct {
	ID         int       `json:"id"`
	Title      string    `json:"title"`
	URL        string    `json:"url"`
	LastActive time.Time `json:"lastActive"`
	Discarded  bool      `json:"discarded"`
}

// Stats are the monitor's totals since start.
type Stats struct {
	Tabs      int `json:"tabs"`
	Discarded int `json:"discarded"`
	FreedMB   int `json:"freedMB"`
}

// Registry is an in-memory store of tabs and their last activity.
type Registry struct {
	mu     sync.Mutex
	tabs   map[int]*Tab
	nextID int
	stats  Stats
	now    func() time.Time
	rng    *rand.Rand
}

func NewRegistry(now func() time.Time, rng *rand.Rand) *Registry {
	if now == nil {
		now = time.Now
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Registry{
		tabs: make(map[int]*Tab),
		now:  now,
		rng:  rng,
	}
}

// Register adds a tab that was last used idleFor ago and returns its id.
func (r *Registry) Register(title, url string, idleFor time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	id := r.nextID
	r.tabs[id] = &Tab{
		ID:         id,
		Title:      title,
		URL:        url,
		LastActive: r.now().Add(-idleFor),
	}
	return id
}

// Touch records activity on a tab. A discarded tab comes back.
func (r *Registry) Touch(id int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	tab, ok := r.tabs[id]
	if !ok {
		return false
	}
	tab.LastActive = r.now()
	tab.Discarded = false
	return true
}

func (r *Registry) List() []Tab {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]Tab, 0, len(r.tabs))
	for _, tab := range r.tabs {
		result = append(result, *tab)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// PickIdle returns up to max distinct tabs idle longer than threshold, in
// random order. Nothing is picked while fewer than minTabs are open.
func (r *Registry) PickIdle(threshold time.Duration, minTabs, max int) []Tab {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.tabs) < minTabs {
		return nil
	}

	now := r.now()
	var idle []Tab
	for _, tab := range r.tabs {
		if tab.Discarded {
			continue
		}
		if now.Sub(tab.LastActive) > threshold {
			idle = append(idle, *tab)
		}
	}
	sort.Slice(idle, func(i, j int) bool { return idle[i].ID < idle[j].ID })

	r.rng.Shuffle(len(idle), func(i, j int) { idle[i], idle[j] = idle[j], idle[i] })
	if len(idle) > max {
		idle = idle[:max]
	}
	return idle
}

// IdleFor is how long a tab has been unused.
func (r *Registry) IdleFor(tab Tab) time.Duration {
	return r.now().Sub(tab.LastActive)
}

// Estimate returns a display estimate of a tab's memory, 30 to 79 MB.
func (r *Registry) Estimate() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return 30 + r.rng.Intn(50)
}

// Jitter returns a random duration in [0, d).
func (r *Registry) Jitter(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return time.Duration(r.rng.Int63n(int64(d)))
}

// Discard unloads a tab and returns the estimated memory freed.
func (r *Registry) Discard(id int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tab, ok := r.tabs[id]
	if !ok {
		return 0, ErrUnknownTab
	}
	if tab.Discarded {
		return 0, ErrDiscarded
	}
	tab.Discarded = true

	freed := 30 + r.rng.Intn(50)
	r.stats.Discarded++
	r.stats.FreedMB += freed
	return freed, nil
}

func (r *Registry) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.stats
	s.Tabs = len(r.tabs)
	return s
}

func (r *Registry) ResetStats() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stats = Stats{}
}
