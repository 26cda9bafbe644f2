package carousel

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestCarouselProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	// N manual steps forward return to the starting category.
	properties.Property("next N times is identity", prop.ForAll(
		func(n, start int) bool {
			start = start % n
			c := New(testCategories(n), Settings{}, NewManualScheduler(), StartAt(start))
			before := c.State().SelectedID
			for i := 0; i < n; i++ {
				c.SelectNext()
			}
			return c.State().SelectedID == before
		},
		gen.IntRange(1, 40),
		gen.IntRange(0, 1000),
	))

	properties.Property("previous undoes next", prop.ForAll(
		func(n, start int) bool {
			start = start % n
			c := New(testCategories(n), Settings{}, NewManualScheduler(), StartAt(start))
			c.SelectNext()
			c.SelectPrevious()
			return c.State().Index == start
		},
		gen.IntRange(1, 40),
		gen.IntRange(0, 1000),
	))

	// Every auto-advance moves exactly one position and asks for a scroll to it.
	properties.Property("auto-advance steps by one", prop.ForAll(
		func(n, start, ticks int) bool {
			start = start % n
			sched := NewManualScheduler()
			var scrolls []ScrollRequest
			c := New(testCategories(n), Settings{Interval: time.Minute}, sched, StartAt(start),
				OnScroll(func(r ScrollRequest) { scrolls = append(scrolls, r) }))
			for i := 1; i <= ticks; i++ {
				sched.Advance(time.Minute)
				want := (start + i) % n
				if c.State().Index != want || len(scrolls) != i || scrolls[i-1].Index != want {
					return false
				}
			}
			return c.State().AutoPlaying
		},
		gen.IntRange(1, 12),
		gen.IntRange(0, 100),
		gen.IntRange(1, 30),
	))

	properties.Property("selected id always belongs to the sequence", prop.ForAll(
		func(n int, moves []int) bool {
			c := New(testCategories(n), Settings{}, NewManualScheduler())
			for _, m := range moves {
				switch m % 3 {
				case 0:
					c.SelectNext()
				case 1:
					c.SelectPrevious()
				default:
					c.SelectByIndex(m % (n + 2))
				}
				if c.State().Index < 0 {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 10),
		gen.SliceOf(gen.IntRange(0, 50)),
	))

	properties.TestingRun(t)
}
