package main

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"delavnice.si/web/internal/carousel"
	handlersPkg "delavnice.si/web/internal/handlers"
	mw "delavnice.si/web/internal/middleware"
	"delavnice.si/web/internal/observability"
	"delavnice.si/web/internal/views"
)

func (a *app) carouselView(ctrl *carousel.Controller, scroll *carousel.ScrollRequest, t handlersPkg.Translator) handlersPkg.CarouselView {
	return handlersPkg.CarouselView{
		Categories: ctrl.Categories(),
		State:      ctrl.State(),
		Scroll:     scroll,
		Settings:   ctrl.Settings(),
		T:          t,
	}
}

// CarouselFrag renders the carousel after one manual step. The request
// carries the whole state: ?i=N selects a card, ?dir=next|prev&from=N steps
// from card N. An optional w sets the viewport width for centring.
func (a *app) CarouselFrag(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	t := a.translator(mw.Lang(r))

	var scroll *carousel.ScrollRequest
	opts := []carousel.Option{
		carousel.OnScroll(func(req carousel.ScrollRequest) { scroll = &req }),
	}
	if from := q.Get("from"); from != "" {
		n, err := strconv.Atoi(from)
		if err != nil {
			a.renderError(w, r, http.StatusBadRequest, err)
			return
		}
		opts = append(opts, carousel.StartAt(n))
	}
	ctrl := carousel.New(a.categories, a.carouselSettings(), carousel.NewManualScheduler(), opts...)
	defer ctrl.Close()

	if width := q.Get("w"); width != "" {
		if px, err := strconv.ParseFloat(width, 64); err == nil {
			ctrl.SetViewportWidth(px)
		}
	}

	switch {
	case q.Has("i"):
		i, err := strconv.Atoi(q.Get("i"))
		if err != nil {
			a.renderError(w, r, http.StatusBadRequest, err)
			return
		}
		ctrl.SelectByIndex(i)
	case q.Get("dir") == "next":
		ctrl.SelectNext()
	case q.Get("dir") == "prev":
		ctrl.SelectPrevious()
	}

	view := a.carouselView(ctrl, scroll, t)
	mw.TriggerEvent(w, "carouselChanged", views.CarouselTrigger(view))
	views.Render(w, r, http.StatusOK, views.Carousel(view))
}

// CarouselSocket runs a live carousel session for one WebSocket connection.
// Inbound messages are carousel.Event values, outbound carousel.Update.
// ?i=N continues from the card the page was rendered with, without counting
// as a visitor selection.
func (a *app) CarouselSocket(w http.ResponseWriter, r *http.Request) {
	logger := observability.FromContext(r.Context())
	var opts []carousel.Option
	if i, err := strconv.Atoi(r.URL.Query().Get("i")); err == nil {
		opts = append(opts, carousel.StartAt(i))
	}
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		logger.Warn("carousel: websocket accept", zap.Error(err))
		return
	}
	defer conn.CloseNow()

	session := carousel.NewSession(a.categories, a.carouselSettings(), logger, opts...)
	events := make(chan carousel.Event)
	g, ctx := errgroup.WithContext(r.Context())

	g.Go(func() error {
		defer close(events)
		for {
			var ev carousel.Event
			if err := wsjson.Read(ctx, conn, &ev); err != nil {
				return err
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	})
	g.Go(func() error {
		return session.Run(ctx, events, func(u carousel.Update) error {
			return wsjson.Write(ctx, conn, u)
		})
	})

	err = g.Wait()
	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		logger.Debug("carousel: client closed", zap.String("session_id", session.ID))
	default:
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Debug("carousel: session ended", zap.String("session_id", session.ID), zap.Error(err))
		}
	}
	conn.Close(websocket.StatusNormalClosure, "")
}
