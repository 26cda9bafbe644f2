package main

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"strings"

	"go.uber.org/zap"

	"delavnice.si/web/internal/carousel"
	"delavnice.si/web/internal/catalog"
	"delavnice.si/web/internal/cms"
	"delavnice.si/web/internal/config"
	handlersPkg "delavnice.si/web/internal/handlers"
	"delavnice.si/web/internal/i18n"
	"delavnice.si/web/internal/keywords"
	"delavnice.si/web/internal/markup"
	mw "delavnice.si/web/internal/middleware"
	"delavnice.si/web/internal/nav"
	"delavnice.si/web/internal/observability"
	"delavnice.si/web/internal/passwordreset"
	"delavnice.si/web/internal/seo"
	"delavnice.si/web/internal/views"
)

//go:embed static
var staticFiles embed.FS

func staticFS() fs.FS {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// app holds the dependencies shared by all handlers.
type app struct {
	cfg        config.Config
	logger     *zap.Logger
	bundle     *i18n.Bundle
	content    *cms.Client
	categories []carousel.Category
	reset      *passwordreset.Client
	sessions   *mw.Sessions
}

func newApp(cfg config.Config, logger *zap.Logger) (*app, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	renderer := markup.New()
	bundle, err := i18n.Load(i18n.Locales(), "sl", []string{"sl", "en"})
	if err != nil {
		return nil, fmt.Errorf("load i18n: %w", err)
	}
	categories, err := catalog.Load(renderer)
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	content := cms.NewClient(cms.Embedded(), renderer, cfg.Content.CacheTTL)
	if cfg.Dev && cfg.Content.Dir != "" {
		content.SetFS(os.DirFS(cfg.Content.Dir))
	}
	secure := !cfg.Dev && cfg.Env != "local"
	return &app{
		cfg:        cfg,
		logger:     logger,
		bundle:     bundle,
		content:    content,
		categories: categories,
		reset:      passwordreset.NewClient(cfg.API.BaseURL, cfg.API.Timeout),
		sessions:   mw.NewSessions(cfg.Session.SigningKey, secure, logger),
	}, nil
}

func (a *app) translator(lang string) handlersPkg.Translator {
	return func(key string, args ...any) string {
		if len(args) == 0 {
			return a.bundle.T(lang, key)
		}
		return a.bundle.Tf(lang, key, args...)
	}
}

func (a *app) carouselSettings() carousel.Settings {
	c := a.cfg.Carousel
	return carousel.Settings{
		Interval:    c.Interval,
		ResumeDelay: c.ResumeDelay,
		Layout: carousel.Layout{
			ItemWidth:     c.ItemWidth,
			Gap:           c.Gap,
			ViewportWidth: c.ViewportWidth,
		},
	}
}

func (a *app) keywordConfig() keywords.Config {
	return keywords.Config{
		MaxKeywords: a.cfg.Keywords.MaxCount,
		MaxLength:   a.cfg.Keywords.MaxLength,
		Placeholder: a.cfg.Keywords.Placeholder,
	}
}

var ogLocales = map[string]string{"sl": "sl_SI", "en": "en_GB"}

// pageData assembles layout data and SEO defaults for the current request.
func (a *app) pageData(r *http.Request, title, description string) handlersPkg.PageData {
	return a.pageDataAt(r, r.URL.Path, title, description)
}

// pageDataAt is pageData for a handler that answers on behalf of path.
func (a *app) pageDataAt(r *http.Request, path, title, description string) handlersPkg.PageData {
	lang := mw.Lang(r)
	t := a.translator(lang)
	sd := mw.GetSession(r)
	brand := t("brand.name")

	pd := handlersPkg.PageData{
		Title:       title,
		Lang:        lang,
		Languages:   a.bundle.Supported(),
		Analytics:   handlersPkg.AnalyticsFromConfig(a.cfg.Analytics),
		T:           t,
		Path:        path,
		Nav:         nav.Build(path),
		Breadcrumbs: nav.Breadcrumbs(path),
		CSRFToken:   sd.CSRFToken,
		Flash:       sd.TakeFlash(),
		Dev:         a.cfg.Dev,
	}

	pd.SEO.Title = title + " | " + brand
	pd.SEO.Description = description
	pd.SEO.Canonical = seo.Absolute(a.cfg.SiteURL, path)
	pd.SEO.OG = seo.OpenGraph{
		Title:       pd.SEO.Title,
		Description: description,
		Type:        "website",
		URL:         pd.SEO.Canonical,
		SiteName:    brand,
		Locale:      ogLocales[lang],
	}
	pd.SEO.Twitter.Card = "summary_large_image"
	pd.SEO.Alternates = seo.Alternates(a.cfg.SiteURL, path, pd.Languages)

	crumbs := make([]seo.BreadcrumbItem, 0, len(pd.Breadcrumbs))
	for _, c := range pd.Breadcrumbs {
		name := c.Label
		if c.LabelKey != "" {
			name = t(c.LabelKey)
		}
		crumbs = append(crumbs, seo.BreadcrumbItem{Name: name, Item: seo.Absolute(a.cfg.SiteURL, c.Href)})
	}
	pd.SEO.JSONLD = []string{
		seo.JSON(seo.Organization(brand, a.cfg.SiteURL, seo.Absolute(a.cfg.SiteURL, "/assets/img/logo.svg"))),
		seo.JSON(seo.WebSite(brand, a.cfg.SiteURL, lang)),
		seo.JSON(seo.BreadcrumbList(crumbs)),
	}
	return pd
}

// renderError answers with the error page, or a short text for htmx callers
// which would otherwise swap a full document into a fragment slot.
func (a *app) renderError(w http.ResponseWriter, r *http.Request, status int, err error) {
	logger := observability.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", zap.Int("status", status), zap.Error(err))
	} else if err != nil {
		logger.Warn("request rejected", zap.Int("status", status), zap.Error(err))
	}
	t := a.translator(mw.Lang(r))
	titleKey := "error.server.title"
	if status == http.StatusNotFound {
		titleKey = "error.not_found.title"
	}
	if mw.IsHTMX(r.Context()) {
		w.Header().Set("HX-Reswap", "none")
		http.Error(w, t(titleKey), status)
		return
	}
	pd := a.pageData(r, t(titleKey), "")
	pd.SEO.Robots = "noindex"
	views.Render(w, r, status, views.ErrorPage(handlersPkg.ErrorData{PageData: pd, Status: status}))
}

func (a *app) notFound(w http.ResponseWriter, r *http.Request) {
	a.renderError(w, r, http.StatusNotFound, nil)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
