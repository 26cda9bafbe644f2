package main

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	handlersPkg "delavnice.si/web/internal/handlers"
	"delavnice.si/web/internal/keywords"
	mw "delavnice.si/web/internal/middleware"
	"delavnice.si/web/internal/observability"
	"delavnice.si/web/internal/views"
)

// keywordInput rebuilds the keyword controller from the submitted form:
// every "keyword" value is a committed keyword, "pending" the typed text.
func (a *app) keywordInput(form url.Values, t handlersPkg.Translator, onChange func([]string)) *keywords.Input {
	msgs := keywords.Messages{
		TooLong:      t("keywords.error.too_long"),
		LimitReached: t("keywords.error.limit"),
		Duplicate:    t("keywords.error.duplicate"),
	}
	opts := []keywords.Option{
		keywords.WithMessages(msgs),
		keywords.WithPending(form.Get("pending")),
	}
	if onChange != nil {
		opts = append(opts, keywords.OnChange(onChange))
	}
	return keywords.New(a.keywordConfig(), form["keyword"], opts...)
}

// applyKeywordEvent replays one browser event on in. Unknown events leave the
// state untouched so the field simply re-renders.
func applyKeywordEvent(in *keywords.Input, form url.Values) {
	switch form.Get("event") {
	case "key":
		in.KeyDown(keywords.ParseKey(form.Get("key")))
	case "change":
		in.Change(form.Get("pending"))
	case "blur":
		in.Blur()
	case "add":
		in.KeyDown(keywords.KeyEnter)
	case "remove":
		if i, err := strconv.Atoi(form.Get("index")); err == nil {
			in.Remove(i)
		}
	}
}

// KeywordsFrag handles one keyword input event and re-renders the field.
func (a *app) KeywordsFrag(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		a.renderError(w, r, http.StatusBadRequest, err)
		return
	}
	lang := mw.Lang(r)
	t := a.translator(lang)

	var changed []string
	notified := false
	in := a.keywordInput(r.PostForm, t, func(kws []string) {
		changed = kws
		notified = true
	})
	applyKeywordEvent(in, r.PostForm)

	if notified {
		if changed == nil {
			changed = []string{}
		}
		mw.TriggerEvent(w, "keywordsChanged", map[string]any{"keywords": changed})
	}
	field := handlersPkg.NewKeywordField(in, mw.CSRFToken(r), lang, t)
	views.Render(w, r, http.StatusOK, views.KeywordField(field))
}

func (a *app) emptyWorkshopForm(r *http.Request, t handlersPkg.Translator) handlersPkg.WorkshopForm {
	csrf := mw.CSRFToken(r)
	in := a.keywordInput(url.Values{}, t, nil)
	return handlersPkg.WorkshopForm{
		Categories: a.categories,
		Keywords:   handlersPkg.NewKeywordField(in, csrf, mw.Lang(r), t),
		CSRFToken:  csrf,
	}
}

// WorkshopSubmit validates the workshop draft. Requests carrying an "event"
// come from the keyword field without JavaScript and only update the form.
func (a *app) WorkshopSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		a.renderError(w, r, http.StatusBadRequest, err)
		return
	}
	lang := mw.Lang(r)
	t := a.translator(lang)
	csrf := mw.CSRFToken(r)
	form := r.PostForm

	in := a.keywordInput(form, t, nil)
	wf := handlersPkg.WorkshopForm{
		Title:      strings.TrimSpace(form.Get("title")),
		CategoryID: strings.TrimSpace(form.Get("category")),
		Categories: a.categories,
		Errors:     map[string]string{},
		CSRFToken:  csrf,
	}

	status := http.StatusOK
	if form.Get("event") != "" {
		applyKeywordEvent(in, form)
	} else {
		in.Blur()
		if wf.Title == "" {
			wf.Errors["title"] = t("workshop.error.title_required")
		}
		if !a.knownCategory(wf.CategoryID) {
			wf.Errors["category"] = t("workshop.error.category_invalid")
		}
		if len(wf.Errors) == 0 && in.Error() == "" {
			observability.FromContext(r.Context()).Info("workshop draft saved",
				zap.String("title", wf.Title),
				zap.String("category", wf.CategoryID),
				zap.Strings("keywords", in.Keywords()),
			)
			wf.Saved = t("workshop.success", wf.Title)
			if !mw.IsHTMX(r.Context()) {
				mw.GetSession(r).SetFlash(wf.Saved)
				http.Redirect(w, r, "/ponudniki#delavnica", http.StatusSeeOther)
				return
			}
		} else {
			status = http.StatusUnprocessableEntity
		}
	}
	wf.Keywords = handlersPkg.NewKeywordField(in, csrf, lang, t)

	// htmx does not swap 4xx bodies, so fragments always answer 200.
	if mw.IsHTMX(r.Context()) {
		views.Render(w, r, http.StatusOK, views.WorkshopForm(wf, t))
		return
	}
	page, ok := a.loadPage(w, r, "ponudniki", lang)
	if !ok {
		return
	}
	a.renderProviders(w, r, status, page, wf)
}

func (a *app) knownCategory(id string) bool {
	for _, c := range a.categories {
		if c.ID == id {
			return true
		}
	}
	return false
}
