package carousel

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testCategories(n int) []Category {
	out := make([]Category, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Category{ID: fmt.Sprintf("kategorija-%d", i), Title: fmt.Sprintf("Kategorija %d", i+1)})
	}
	return out
}

type recorder struct {
	states  []State
	scrolls []ScrollRequest
}

func (r *recorder) opts() []Option {
	return []Option{
		OnState(func(s State) { r.states = append(r.states, s) }),
		OnScroll(func(s ScrollRequest) { r.scrolls = append(r.scrolls, s) }),
	}
}

func TestNewSelectsFirstCategory(t *testing.T) {
	t.Parallel()

	c := New(testCategories(3), Settings{}, NewManualScheduler())
	st := c.State()
	require.Equal(t, "kategorija-0", st.SelectedID)
	require.Equal(t, 0, st.Index)
	require.True(t, st.AutoPlaying)
}

func TestSelectPreviousWrapsToLast(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	c := New(testCategories(4), Settings{}, NewManualScheduler(), rec.opts()...)
	c.SelectPrevious()

	require.Equal(t, 3, c.State().Index)
	require.False(t, c.State().AutoPlaying)
	require.Len(t, rec.scrolls, 1)
	require.Equal(t, 3, rec.scrolls[0].Index)
}

func TestSelectNextWrapsToFirst(t *testing.T) {
	t.Parallel()

	c := New(testCategories(3), Settings{}, NewManualScheduler(), StartAt(2))
	c.SelectNext()
	require.Equal(t, 0, c.State().Index)
}

func TestSelectByIndexIgnoresOutOfRange(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	c := New(testCategories(3), Settings{}, NewManualScheduler(), rec.opts()...)
	c.SelectByIndex(7)
	c.SelectByIndex(-1)
	require.Empty(t, rec.states)
	require.True(t, c.State().AutoPlaying)

	c.SelectByIndex(1)
	require.Equal(t, 1, c.State().Index)
	require.False(t, c.State().AutoPlaying)
}

func TestAutoAdvanceAfterOneInterval(t *testing.T) {
	t.Parallel()

	sched := NewManualScheduler()
	rec := &recorder{}
	settings := Settings{Interval: 100 * time.Second, Layout: Layout{ItemWidth: 300, Gap: 20, ViewportWidth: 900}}
	c := New(testCategories(3), settings, sched, rec.opts()...)

	sched.Advance(99 * time.Second)
	require.Equal(t, 0, c.State().Index)

	sched.Advance(time.Second)
	require.Equal(t, 1, c.State().Index)
	require.True(t, c.State().AutoPlaying)
	require.Len(t, rec.scrolls, 1)
	require.Equal(t, ScrollRequest{Index: 1, Offset: 320 + 150 - 450}, rec.scrolls[0])
}

func TestAutoAdvanceWrapsAtEnd(t *testing.T) {
	t.Parallel()

	sched := NewManualScheduler()
	c := New(testCategories(3), Settings{Interval: time.Second}, sched, StartAt(2))
	sched.Advance(time.Second)
	require.Equal(t, 0, c.State().Index)
}

func TestManualSelectionPausesAndResumesAfterDelay(t *testing.T) {
	t.Parallel()

	sched := NewManualScheduler()
	c := New(testCategories(5), Settings{Interval: 100 * time.Second, ResumeDelay: 10 * time.Second}, sched)

	c.SelectNext()
	require.False(t, c.State().AutoPlaying)

	sched.Advance(9 * time.Second)
	require.False(t, c.State().AutoPlaying)

	sched.Advance(time.Second)
	require.True(t, c.State().AutoPlaying)
	require.Equal(t, 1, c.State().Index)

	// The interval restarts when auto-play resumes.
	sched.Advance(99 * time.Second)
	require.Equal(t, 1, c.State().Index)
	sched.Advance(time.Second)
	require.Equal(t, 2, c.State().Index)
}

func TestPausedCarouselDoesNotAdvance(t *testing.T) {
	t.Parallel()

	sched := NewManualScheduler()
	c := New(testCategories(3), Settings{Interval: time.Second}, sched)
	c.PointerEnter()
	sched.Advance(time.Hour)
	require.Equal(t, 0, c.State().Index)
	require.False(t, c.State().AutoPlaying)

	c.PointerLeave()
	require.True(t, c.State().AutoPlaying)
	sched.Advance(time.Second)
	require.Equal(t, 1, c.State().Index)
}

func TestHoverDoesNotScheduleResume(t *testing.T) {
	t.Parallel()

	sched := NewManualScheduler()
	c := New(testCategories(3), Settings{}, sched)
	c.PointerEnter()
	require.Equal(t, 0, sched.Pending())
	sched.Advance(time.Hour)
	require.False(t, c.State().AutoPlaying)
}

// A click-driven resume that is still pending fires even after a hover
// cycle already resumed and paused again.
func TestStaleClickResumeStillFires(t *testing.T) {
	t.Parallel()

	sched := NewManualScheduler()
	c := New(testCategories(3), Settings{ResumeDelay: 10 * time.Second}, sched)

	c.SelectNext()
	c.PointerLeave()
	require.True(t, c.State().AutoPlaying)
	c.PointerEnter()
	require.False(t, c.State().AutoPlaying)

	sched.Advance(10 * time.Second)
	require.True(t, c.State().AutoPlaying, "pending click resume re-enables auto-play under the pointer")
}

func TestEmptySequenceIsNoOp(t *testing.T) {
	t.Parallel()

	sched := NewManualScheduler()
	rec := &recorder{}
	c := New(nil, Settings{}, sched, rec.opts()...)
	require.Equal(t, State{SelectedID: "", AutoPlaying: true, Index: -1}, c.State())
	require.Equal(t, 0, sched.Pending())

	c.SelectNext()
	c.SelectPrevious()
	c.SelectByIndex(0)
	sched.Advance(time.Hour)

	require.Empty(t, rec.states)
	require.Empty(t, rec.scrolls)
	require.Equal(t, "", c.State().SelectedID)
}

func TestCloseCancelsTimers(t *testing.T) {
	t.Parallel()

	sched := NewManualScheduler()
	c := New(testCategories(3), Settings{}, sched)
	c.SelectNext()
	c.PointerLeave()
	require.Equal(t, 2, sched.Pending())

	c.Close()
	require.Equal(t, 0, sched.Pending())

	c.SelectNext()
	sched.Advance(time.Hour)
	require.Equal(t, 1, c.State().Index)
}

func TestCenterOffset(t *testing.T) {
	t.Parallel()

	l := Layout{ItemWidth: 320, Gap: 24, ViewportWidth: 1200}
	require.Equal(t, float64(160-600), CenterOffset(0, l))
	require.Equal(t, float64(2*344+160-600), CenterOffset(2, l))
}

func TestSetViewportWidthChangesOffsets(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	c := New(testCategories(3), Settings{Layout: Layout{ItemWidth: 100, Gap: 0, ViewportWidth: 100}}, NewManualScheduler(), rec.opts()...)
	c.SetViewportWidth(300)
	c.SelectByIndex(2)
	require.Equal(t, float64(200+50-150), rec.scrolls[0].Offset)
}
