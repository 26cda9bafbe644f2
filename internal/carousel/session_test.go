package carousel

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSessionEmitsInitialStateAndScrollOnNext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s := NewSession(testCategories(3), Settings{Layout: Layout{ItemWidth: 100, Gap: 10, ViewportWidth: 300}}, nil)
	events := make(chan Event)
	updates := make(chan Update, 8)
	errc := make(chan error, 1)
	go func() {
		errc <- s.Run(ctx, events, func(u Update) error {
			updates <- u
			return nil
		})
	}()

	first := <-updates
	require.Equal(t, "kategorija-0", first.SelectedID)
	require.True(t, first.AutoPlaying)
	require.Nil(t, first.Scroll)

	events <- Event{Type: EventNext}
	next := <-updates
	require.Equal(t, 1, next.Index)
	require.False(t, next.AutoPlaying)
	require.NotNil(t, next.Scroll)
	require.Equal(t, float64(110+50-150), next.Scroll.Offset)

	close(events)
	require.NoError(t, <-errc)
}

func TestSessionAutoAdvancesOnRealClock(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := NewSession(testCategories(2), Settings{Interval: 20 * time.Millisecond}, nil)
	updates := make(chan Update, 16)
	go func() {
		_ = s.Run(ctx, make(chan Event), func(u Update) error {
			updates <- u
			return nil
		})
	}()

	<-updates
	select {
	case u := <-updates:
		require.Equal(t, 1, u.Index)
		require.True(t, u.AutoPlaying)
		require.NotNil(t, u.Scroll)
	case <-time.After(2 * time.Second):
		t.Fatal("expected an auto-advance update")
	}
}

func TestSessionStopsOnEmitError(t *testing.T) {
	t.Parallel()

	boom := errors.New("write failed")
	s := NewSession(testCategories(2), Settings{}, nil)
	err := s.Run(context.Background(), make(chan Event), func(Update) error { return boom })
	require.ErrorIs(t, err, boom)
}

func TestSessionStartAtKeepsAutoPlay(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s := NewSession(testCategories(4), Settings{Interval: time.Hour}, nil, StartAt(2))
	updates := make(chan Update, 4)
	go func() {
		_ = s.Run(ctx, make(chan Event), func(u Update) error {
			updates <- u
			return nil
		})
	}()

	first := <-updates
	require.Equal(t, "kategorija-2", first.SelectedID)
	require.Equal(t, 2, first.Index)
	require.True(t, first.AutoPlaying, "restoring the rendered card is not a visitor selection")
	require.Nil(t, first.Scroll)
}
