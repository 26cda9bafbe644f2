package carousel

import (
	"sort"
	"time"
)

// Scheduler arms timers on behalf of a Controller. Callbacks must run on the
// same logical thread that drives the controller; cancel funcs are called from
// that thread too.
type Scheduler interface {
	After(d time.Duration, fn func()) (cancel func())
	Every(d time.Duration, fn func()) (cancel func())
}

// ManualScheduler is a deterministic Scheduler whose clock only moves when
// Advance is called. Callbacks run synchronously inside Advance.
type ManualScheduler struct {
	now    time.Duration
	seq    int
	timers []*manualTimer
}

type manualTimer struct {
	due       time.Duration
	period    time.Duration
	seq       int
	fn        func()
	cancelled bool
}

// NewManualScheduler returns a scheduler positioned at time zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// After schedules fn once, d after the current manual time.
func (s *ManualScheduler) After(d time.Duration, fn func()) func() {
	return s.add(d, 0, fn)
}

// Every schedules fn every d, starting d after the current manual time.
func (s *ManualScheduler) Every(d time.Duration, fn func()) func() {
	if d <= 0 {
		return func() {}
	}
	return s.add(d, d, fn)
}

func (s *ManualScheduler) add(d, period time.Duration, fn func()) func() {
	if d < 0 {
		d = 0
	}
	s.seq++
	t := &manualTimer{due: s.now + d, period: period, seq: s.seq, fn: fn}
	s.timers = append(s.timers, t)
	return func() { t.cancelled = true }
}

// Now reports the elapsed manual time.
func (s *ManualScheduler) Now() time.Duration { return s.now }

// Pending reports how many timers are still armed.
func (s *ManualScheduler) Pending() int {
	n := 0
	for _, t := range s.timers {
		if !t.cancelled {
			n++
		}
	}
	return n
}

// Advance moves the clock forward by d, firing due timers in deadline order.
// Timers armed by callbacks fire within the same call when they fall due.
func (s *ManualScheduler) Advance(d time.Duration) {
	target := s.now + d
	for {
		s.compact()
		if len(s.timers) == 0 {
			break
		}
		sort.SliceStable(s.timers, func(i, j int) bool {
			if s.timers[i].due == s.timers[j].due {
				return s.timers[i].seq < s.timers[j].seq
			}
			return s.timers[i].due < s.timers[j].due
		})
		next := s.timers[0]
		if next.due > target {
			break
		}
		s.now = next.due
		if next.period > 0 {
			next.due += next.period
		} else {
			next.cancelled = true
		}
		next.fn()
	}
	s.now = target
}

func (s *ManualScheduler) compact() {
	live := s.timers[:0]
	for _, t := range s.timers {
		if !t.cancelled {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(s.timers); i++ {
		s.timers[i] = nil
	}
	s.timers = live
}
