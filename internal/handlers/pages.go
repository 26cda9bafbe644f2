// Package handlers holds the view models shared by the page handlers and
// the views.
package handlers

import (
	"fmt"
	"time"

	"delavnice.si/web/internal/carousel"
	"delavnice.si/web/internal/cms"
	"delavnice.si/web/internal/format"
	"delavnice.si/web/internal/keywords"
	"delavnice.si/web/internal/nav"
	"delavnice.si/web/internal/seo"
)

// Translator returns the UI string for key, formatted with args.
type Translator func(key string, args ...any) string

// PageData is the layout view model every full page carries.
type PageData struct {
	Title     string
	Lang      string
	Languages []string
	SEO       seo.Meta
	Analytics Analytics
	T         Translator

	Path        string
	Nav         []nav.RenderedItem
	Breadcrumbs []nav.Crumb
	CSRFToken   string
	Flash       string
	Dev         bool
}

// SchoolsData is the "Za šole" landing page.
type SchoolsData struct {
	PageData
	Page         cms.Page
	Updated      string
	Carousel     CarouselView
	Testimonials []cms.Testimonial
}

// ProvidersData is the "Za ponudnike" page.
type ProvidersData struct {
	PageData
	Page         cms.Page
	Updated      string
	Workshop     WorkshopForm
	Testimonials []cms.Testimonial
}

// CarouselView renders the category carousel in a given state.
type CarouselView struct {
	Categories []carousel.Category
	State      carousel.State
	Scroll     *carousel.ScrollRequest
	Settings   carousel.Settings
	T          Translator
}

// KeywordField renders the keyword input from controller state.
type KeywordField struct {
	Name        string
	Keywords    []string
	Pending     string
	Error       string
	Full        bool
	Remaining   string
	Placeholder string
	MaxKeywords int
	CSRFToken   string
	T           Translator
}

// NewKeywordField snapshots in for rendering.
func NewKeywordField(in *keywords.Input, csrf, lang string, t Translator) KeywordField {
	cfg := in.Config()
	f := KeywordField{
		Name:        "keyword",
		Keywords:    in.Keywords(),
		Pending:     in.Pending(),
		Error:       in.Error(),
		Full:        in.Full(),
		Placeholder: cfg.Placeholder,
		MaxKeywords: cfg.MaxKeywords,
		CSRFToken:   csrf,
		T:           t,
	}
	if left := cfg.MaxKeywords - len(f.Keywords); left > 0 && t != nil {
		form := format.Plural(left, lang,
			t("keywords.remaining.one"), t("keywords.remaining.two"),
			t("keywords.remaining.few"), t("keywords.remaining.other"))
		f.Remaining = fmt.Sprintf(form, left)
	}
	return f
}

// UpdatedLabel formats a content timestamp for display; zero times yield "".
func UpdatedLabel(t Translator, lang string, updated time.Time) string {
	if updated.IsZero() || t == nil {
		return ""
	}
	return t("page.updated", format.FmtDate(updated, lang))
}

// WorkshopForm is the provider's workshop submission form.
type WorkshopForm struct {
	Title      string
	CategoryID string
	Categories []carousel.Category
	Keywords   KeywordField
	Errors     map[string]string
	Saved      string
	CSRFToken  string
}

// ForgotPasswordData is the reset request page.
type ForgotPasswordData struct {
	PageData
	Email  string
	Errors map[string]string
	// Alerts are backend messages not tied to a rendered field.
	Alerts []string
	Sent   bool
	Failed bool
}

// ResetPasswordData is the reset confirm page.
type ResetPasswordData struct {
	PageData
	Token  string
	Errors map[string]string
	Alerts []string
	Done   bool
	Failed bool
}

// ErrorData is the error page.
type ErrorData struct {
	PageData
	Status  int
	Message string
}
