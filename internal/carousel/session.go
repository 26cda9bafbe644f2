package carousel

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EventType names a visitor interaction delivered to a Session.
type EventType string

const (
	EventNext         EventType = "next"
	EventPrevious     EventType = "prev"
	EventSelect       EventType = "select"
	EventPointerEnter EventType = "enter"
	EventPointerLeave EventType = "leave"
	EventViewport     EventType = "viewport"
)

// Event is an inbound interaction message.
type Event struct {
	Type  EventType `json:"type"`
	Index int       `json:"index,omitempty"`
	Width float64   `json:"width,omitempty"`
}

// Update is the outbound message emitted after every state change.
type Update struct {
	SelectedID  string         `json:"selectedId"`
	Index       int            `json:"index"`
	AutoPlaying bool           `json:"autoPlaying"`
	Scroll      *ScrollRequest `json:"scroll,omitempty"`
}

// Session runs one Controller on a single goroutine. Visitor events and timer
// callbacks are serialised through the same loop, so the controller never
// sees concurrent calls.
type Session struct {
	ID         string
	categories []Category
	settings   Settings
	opts       []Option
	logger     *zap.Logger

	calls chan func()
	done  chan struct{}
}

// NewSession prepares a session; nothing runs until Run is called. opts
// configure the controller, e.g. StartAt to continue from a rendered card.
func NewSession(categories []Category, settings Settings, logger *zap.Logger, opts ...Option) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		ID:         uuid.NewString(),
		categories: categories,
		settings:   settings,
		opts:       opts,
		logger:     logger,
		calls:      make(chan func()),
		done:       make(chan struct{}),
	}
}

// Run drives the controller until ctx is cancelled, events is closed or emit
// fails. emit is always called from the loop goroutine.
func (s *Session) Run(ctx context.Context, events <-chan Event, emit func(Update) error) error {
	defer close(s.done)

	var (
		pending *ScrollRequest
		emitErr error
	)
	send := func(st State) {
		if emitErr != nil {
			return
		}
		u := Update{SelectedID: st.SelectedID, Index: st.Index, AutoPlaying: st.AutoPlaying, Scroll: pending}
		pending = nil
		emitErr = emit(u)
	}
	opts := append([]Option(nil), s.opts...)
	opts = append(opts,
		OnScroll(func(req ScrollRequest) {
			r := req
			pending = &r
		}),
		OnState(send),
	)
	ctrl := New(s.categories, s.settings, &loopScheduler{session: s}, opts...)
	defer ctrl.Close()

	s.logger.Debug("carousel session started", zap.String("session_id", s.ID), zap.Int("categories", len(s.categories)))
	defer s.logger.Debug("carousel session stopped", zap.String("session_id", s.ID))

	send(ctrl.State())
	for emitErr == nil {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			apply(ctrl, ev)
		case fn := <-s.calls:
			fn()
		}
	}
	return emitErr
}

func apply(ctrl *Controller, ev Event) {
	switch ev.Type {
	case EventNext:
		ctrl.SelectNext()
	case EventPrevious:
		ctrl.SelectPrevious()
	case EventSelect:
		ctrl.SelectByIndex(ev.Index)
	case EventPointerEnter:
		ctrl.PointerEnter()
	case EventPointerLeave:
		ctrl.PointerLeave()
	case EventViewport:
		ctrl.SetViewportWidth(ev.Width)
	}
}

// post hands fn to the loop. It gives up once the loop has exited.
func (s *Session) post(fn func()) {
	select {
	case s.calls <- fn:
	case <-s.done:
	}
}

// loopScheduler backs timers with the runtime clock and runs their callbacks
// on the session loop. Cancellation happens on the loop as well, so the
// cancelled flag needs no synchronisation.
type loopScheduler struct {
	session *Session
}

func (l *loopScheduler) After(d time.Duration, fn func()) func() {
	cancelled := false
	t := time.AfterFunc(d, func() {
		l.session.post(func() {
			if !cancelled {
				fn()
			}
		})
	})
	return func() {
		cancelled = true
		t.Stop()
	}
}

func (l *loopScheduler) Every(d time.Duration, fn func()) func() {
	if d <= 0 {
		return func() {}
	}
	cancelled := false
	ticker := time.NewTicker(d)
	stop := make(chan struct{})
	go func() {
		for {
			select {
			case <-ticker.C:
				l.session.post(func() {
					if !cancelled {
						fn()
					}
				})
			case <-stop:
				return
			case <-l.session.done:
				return
			}
		}
	}()
	return func() {
		if cancelled {
			return
		}
		cancelled = true
		ticker.Stop()
		close(stop)
	}
}
