// Package carousel drives the category carousel: a wrap-around selection that
// auto-advances on a timer, pauses while the visitor interacts with it and
// keeps the scroll viewport centred on the active card.
package carousel

import "time"

const (
	// DefaultInterval is the auto-advance period.
	DefaultInterval = 100 * time.Second
	// DefaultResumeDelay is the idle time after a click before auto-play resumes.
	DefaultResumeDelay = 10 * time.Second

	defaultItemWidth     = 320
	defaultViewportWidth = 1200
)

// Category is one card of the carousel.
type Category struct {
	ID      string
	Title   string
	Image   string
	Content string
}

// Layout describes the card strip geometry in CSS pixels.
type Layout struct {
	ItemWidth     float64
	Gap           float64
	ViewportWidth float64
}

// Settings configure timing and geometry. Zero values take the defaults.
type Settings struct {
	Interval    time.Duration
	ResumeDelay time.Duration
	Layout      Layout
}

func (s Settings) withDefaults() Settings {
	if s.Interval <= 0 {
		s.Interval = DefaultInterval
	}
	if s.ResumeDelay <= 0 {
		s.ResumeDelay = DefaultResumeDelay
	}
	if s.Layout.ItemWidth <= 0 {
		s.Layout.ItemWidth = defaultItemWidth
	}
	if s.Layout.Gap < 0 {
		s.Layout.Gap = 0
	}
	if s.Layout.ViewportWidth <= 0 {
		s.Layout.ViewportWidth = defaultViewportWidth
	}
	return s
}

// State is the observable carousel state. Index is -1 when nothing is selected.
type State struct {
	SelectedID  string
	AutoPlaying bool
	Index       int
}

// ScrollRequest asks the view to scroll the strip to Offset so the card at
// Index sits in the middle of the viewport.
type ScrollRequest struct {
	Index  int     `json:"index"`
	Offset float64 `json:"offset"`
}

// CenterOffset returns the scroll offset that centres item index in the
// viewport. The scrollable surface clamps the value.
func CenterOffset(index int, l Layout) float64 {
	stride := l.ItemWidth + l.Gap
	return float64(index)*stride + l.ItemWidth/2 - l.ViewportWidth/2
}
