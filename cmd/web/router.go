package main

import (
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	mw "delavnice.si/web/internal/middleware"
)

// routes builds the HTTP handler. The WebSocket endpoint stays outside the
// compress and timeout group: both would break a hijacked long-lived
// connection.
func (a *app) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	// If deployed behind a trusted reverse proxy/load balancer, RealIP will use
	// X-Forwarded-For to determine the client IP. Ensure only trusted proxies
	// can set these headers in production environments.
	r.Use(chimw.RealIP)
	r.Use(mw.HTMX)
	r.Use(a.sessions.Middleware)
	r.Use(mw.Locale(a.bundle))
	r.Use(mw.CSRF(a.sessions.Secure()))
	r.Use(mw.VaryLocale)
	r.Use(mw.Logger(a.logger))
	r.Use(chimw.Recoverer)

	r.NotFound(a.notFound)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, "ok")
	})

	r.Get("/ws/carousel", a.CarouselSocket)

	r.Group(func(r chi.Router) {
		r.Use(chimw.Compress(5))
		timeout := a.cfg.Server.RequestTimeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		r.Use(chimw.Timeout(timeout))

		r.Handle("/assets/*", http.StripPrefix("/assets", mw.AssetsWithCache(staticFS())))

		r.Get("/", a.SchoolsHandler)
		r.Get("/ponudniki", a.ProvidersHandler)
		r.Post("/ponudniki/delavnica", a.WorkshopSubmit)

		r.Get("/fragments/carousel", a.CarouselFrag)
		r.Post("/fragments/keywords", a.KeywordsFrag)

		r.Get("/pozabljeno-geslo", a.ForgotPasswordHandler)
		r.Post("/pozabljeno-geslo", a.ForgotPasswordSubmit)
		r.Get("/ponastavi-geslo", a.ResetPasswordHandler)
		r.Post("/ponastavi-geslo", a.ResetPasswordSubmit)
	})
	return r
}
