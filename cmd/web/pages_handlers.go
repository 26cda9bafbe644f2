package main

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"delavnice.si/web/internal/carousel"
	"delavnice.si/web/internal/cms"
	handlersPkg "delavnice.si/web/internal/handlers"
	"delavnice.si/web/internal/markup"
	mw "delavnice.si/web/internal/middleware"
	"delavnice.si/web/internal/observability"
	"delavnice.si/web/internal/seo"
	"delavnice.si/web/internal/views"
)

// SchoolsHandler renders the landing page for schools.
func (a *app) SchoolsHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	t := a.translator(lang)
	page, ok := a.loadPage(w, r, "za-sole", lang)
	if !ok {
		return
	}

	pd := a.pageData(r,
		firstNonEmpty(page.Title, t("schools.title")),
		firstNonEmpty(page.SEO.Description, page.Summary, t("schools.description")))
	applyPageSEO(&pd, page, a.cfg.SiteURL)

	entries := make([]seo.ListEntry, 0, len(a.categories))
	for _, c := range a.categories {
		entries = append(entries, seo.ListEntry{
			Name:        c.Title,
			Description: markup.Excerpt(c.Content, 160),
			Image:       seo.Absolute(a.cfg.SiteURL, c.Image),
		})
	}
	pd.SEO.JSONLD = append(pd.SEO.JSONLD, seo.JSON(seo.ItemList(t("carousel.heading"), entries)))

	ctrl := carousel.New(a.categories, a.carouselSettings(), carousel.NewManualScheduler())
	defer ctrl.Close()

	data := handlersPkg.SchoolsData{
		PageData:     pd,
		Page:         page,
		Updated:      handlersPkg.UpdatedLabel(t, lang, page.UpdatedAt),
		Carousel:     a.carouselView(ctrl, nil, t),
		Testimonials: a.testimonials(r, cms.AudienceSchools, lang),
	}
	views.Render(w, r, http.StatusOK, views.SchoolsPage(data))
}

// ProvidersHandler renders the page for workshop providers.
func (a *app) ProvidersHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	t := a.translator(lang)
	page, ok := a.loadPage(w, r, "ponudniki", lang)
	if !ok {
		return
	}
	a.renderProviders(w, r, http.StatusOK, page, a.emptyWorkshopForm(r, t))
}

func (a *app) renderProviders(w http.ResponseWriter, r *http.Request, status int, page cms.Page, form handlersPkg.WorkshopForm) {
	lang := mw.Lang(r)
	t := a.translator(lang)
	pd := a.pageDataAt(r, "/ponudniki",
		firstNonEmpty(page.Title, t("providers.title")),
		firstNonEmpty(page.SEO.Description, page.Summary, t("providers.description")))
	applyPageSEO(&pd, page, a.cfg.SiteURL)

	data := handlersPkg.ProvidersData{
		PageData:     pd,
		Page:         page,
		Updated:      handlersPkg.UpdatedLabel(t, lang, page.UpdatedAt),
		Workshop:     form,
		Testimonials: a.testimonials(r, cms.AudienceProviders, lang),
	}
	views.Render(w, r, status, views.ProvidersPage(data))
}

func (a *app) loadPage(w http.ResponseWriter, r *http.Request, slug, lang string) (cms.Page, bool) {
	page, err := a.content.GetPage(r.Context(), slug, lang)
	switch {
	case errors.Is(err, cms.ErrNotFound):
		a.notFound(w, r)
		return cms.Page{}, false
	case err != nil:
		a.renderError(w, r, http.StatusInternalServerError, err)
		return cms.Page{}, false
	}
	return page, true
}

// testimonials are decoration; a broken file is logged and the section hidden.
func (a *app) testimonials(r *http.Request, audience cms.Audience, lang string) []cms.Testimonial {
	list, err := a.content.Testimonials(r.Context(), audience, lang)
	if err != nil {
		observability.FromContext(r.Context()).Warn("testimonials unavailable", zap.String("audience", string(audience)), zap.Error(err))
		return nil
	}
	return list
}

// applyPageSEO lets front matter override the generated title and image.
func applyPageSEO(pd *handlersPkg.PageData, page cms.Page, siteURL string) {
	if page.SEO.Title != "" {
		pd.SEO.Title = page.SEO.Title
		pd.SEO.OG.Title = page.SEO.Title
	}
	image := firstNonEmpty(page.SEO.OGImage, page.Hero.Image)
	if image != "" {
		pd.SEO.OG.Image = seo.Absolute(siteURL, image)
		pd.SEO.Twitter.Image = pd.SEO.OG.Image
	}
}
