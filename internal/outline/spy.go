package outline

import (
	"fmt"
	"math"
	"sync"

	"github.com/starford/pymaster/internal/models"
)

// Band is the part of the viewport in which a section counts as "in view":
// everything below TopInset pixels and above the bottom BottomFraction of the
// viewport height.
type Band struct {
	TopInset       float64 `json:"top_inset_px"`
	BottomFraction float64 `json:"bottom_fraction"`
}

// DefaultBand excludes the top 100px and the bottom 80% of the viewport.
func DefaultBand() Band {
	return Band{TopInset: 100, BottomFraction: 0.8}
}

// Intersects reports whether an element spanning [top, bottom) overlaps the band
// for a viewport of the given height.
func (b Band) Intersects(top, bottom, viewportHeight float64) bool {
	lo := b.TopInset
	hi := viewportHeight * (1 - b.BottomFraction)
	if hi <= lo {
		return false
	}
	return bottom > lo && top < hi
}

// RootMargin renders the band as an IntersectionObserver rootMargin.
func (b Band) RootMargin() string {
	pct := math.Round(b.BottomFraction*1000) / 10
	return fmt.Sprintf("-%gpx 0px -%g%% 0px", b.TopInset, pct)
}

// Observation is the geometry of one outline target at a point in time.
type Observation struct {
	ID             string  `json:"id"`
	Top            float64 `json:"top"`
	Bottom         float64 `json:"bottom"`
	ViewportHeight float64 `json:"viewport_height"`
}

// Spy hands out scroll-spy subscriptions. At most one subscription is live:
// watching a new outline releases the previous one.
type Spy struct {
	band Band

	mu      sync.Mutex
	current *Subscription
}

// NewSpy creates a Spy using band.
func NewSpy(band Band) *Spy {
	return &Spy{band: band}
}

// Watch starts tracking headings and returns the subscription. Any earlier
// subscription is released first.
func (s *Spy) Watch(headings []models.Heading) *Subscription {
	sub := &Subscription{
		band:    s.band,
		targets: make(map[string]struct{}, len(headings)),
		active:  make(chan string, 1),
	}
	for _, h := range headings {
		sub.targets[h.ID] = struct{}{}
	}

	s.mu.Lock()
	prev := s.current
	s.current = sub
	s.mu.Unlock()

	if prev != nil {
		prev.Release()
	}
	return sub
}

// Close releases the live subscription, if any.
func (s *Spy) Close() {
	s.mu.Lock()
	prev := s.current
	s.current = nil
	s.mu.Unlock()
	if prev != nil {
		prev.Release()
	}
}

// Subscription tracks the active section of one outline.
type Subscription struct {
	band    Band
	targets map[string]struct{}

	mu       sync.Mutex
	current  string
	active   chan string
	released bool
}

// Active delivers the id of each newly active section. Only the latest value
// is buffered. The channel is closed on Release.
func (s *Subscription) Active() <-chan string { return s.active }

// Current returns the active section id, or "" before any intersection.
func (s *Subscription) Current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Observe feeds one observation. The most recently intersecting target
// becomes active. It reports whether the active section changed.
func (s *Subscription) Observe(o Observation) bool {
	if _, ok := s.targets[o.ID]; !ok {
		return false
	}
	if !s.band.Intersects(o.Top, o.Bottom, o.ViewportHeight) {
		return false
	}
	return s.setActive(o.ID)
}

// Select marks id active directly, as when a reader clicks an outline entry.
func (s *Subscription) Select(id string) bool {
	if _, ok := s.targets[id]; !ok {
		return false
	}
	return s.setActive(id)
}

func (s *Subscription) setActive(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released || s.current == id {
		return false
	}
	s.current = id
	select {
	case <-s.active:
	default:
	}
	s.active <- id
	return true
}

// Release stops the subscription. It is safe to call more than once.
func (s *Subscription) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released {
		return
	}
	s.released = true
	close(s.active)
}

// Released reports whether Release has been called.
func (s *Subscription) Released() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.released
}
