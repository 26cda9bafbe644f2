package main

import (
	"errors"
	"net/http"
	"slices"
	"sort"
	"strings"

	"go.uber.org/zap"

	handlersPkg "delavnice.si/web/internal/handlers"
	mw "delavnice.si/web/internal/middleware"
	"delavnice.si/web/internal/observability"
	"delavnice.si/web/internal/passwordreset"
	"delavnice.si/web/internal/views"
)

// fieldMessages turns reset errors into per-field messages. Local validation
// yields codes that are translated; backend messages are shown verbatim.
// Messages under keys outside fields (non_field_errors, detail, ...) come back
// as alerts so the form still shows them. ok is false when err is not a field
// error.
func fieldMessages(err error, t handlersPkg.Translator, fields ...string) (msgs map[string]string, alerts []string, ok bool) {
	var fe *passwordreset.FieldErrors
	if !errors.As(err, &fe) {
		return nil, nil, false
	}
	msgs = make(map[string]string, len(fe.Fields))
	keys := make([]string, 0, len(fe.Fields))
	for k := range fe.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, field := range keys {
		if slices.Contains(fields, field) {
			msgs[field] = translateCode(field, fe.First(field), t)
			continue
		}
		for _, m := range fe.Fields[field] {
			if m = strings.TrimSpace(m); m != "" {
				alerts = append(alerts, m)
			}
		}
	}
	return msgs, alerts, true
}

func translateCode(field, msg string, t handlersPkg.Translator) string {
	switch msg {
	case passwordreset.CodeRequired:
		if field == "token" {
			return t("reset.error.token")
		}
		return t("reset.error.required")
	case passwordreset.CodeInvalid:
		return t("reset.error.invalid")
	case passwordreset.CodeMismatch:
		return t("reset.error.mismatch")
	case passwordreset.CodeTooShort:
		return t("reset.error.too_short", passwordreset.MinPasswordLength)
	}
	return msg
}

// ForgotPasswordHandler renders the reset request form. After a plain form
// post it shows the confirmation once.
func (a *app) ForgotPasswordHandler(w http.ResponseWriter, r *http.Request) {
	t := a.translator(mw.Lang(r))
	sd := mw.GetSession(r)
	d := handlersPkg.ForgotPasswordData{PageData: a.pageData(r, t("reset.request.title"), t("reset.request.lead"))}
	d.SEO.Robots = "noindex"
	if sd.ResetSent != "" {
		d.Sent = true
		d.Email = sd.ResetSent
		sd.ResetSent = ""
		sd.MarkDirty()
	}
	views.Render(w, r, http.StatusOK, views.ForgotPasswordPage(d))
}

// ForgotPasswordSubmit asks the backend to send a reset e-mail.
func (a *app) ForgotPasswordSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		a.renderError(w, r, http.StatusBadRequest, err)
		return
	}
	t := a.translator(mw.Lang(r))
	htmx := mw.IsHTMX(r.Context())
	email := strings.TrimSpace(r.PostForm.Get("email"))

	_, err := a.reset.RequestReset(r.Context(), email)

	d := handlersPkg.ForgotPasswordData{Email: email}
	status := http.StatusOK
	switch {
	case err == nil:
		if !htmx {
			sd := mw.GetSession(r)
			sd.ResetSent = email
			sd.MarkDirty()
			http.Redirect(w, r, "/pozabljeno-geslo", http.StatusSeeOther)
			return
		}
		d.Sent = true
	default:
		if msgs, alerts, ok := fieldMessages(err, t, "email"); ok {
			d.Errors, d.Alerts = msgs, alerts
			status = http.StatusUnprocessableEntity
		} else {
			observability.FromContext(r.Context()).Error("password reset request failed", zap.Error(err))
			d.Failed = true
			status = http.StatusBadGateway
		}
	}

	if htmx {
		d.T = t
		d.CSRFToken = mw.CSRFToken(r)
		views.Render(w, r, http.StatusOK, views.ForgotPasswordForm(d))
		return
	}
	d.PageData = a.pageData(r, t("reset.request.title"), t("reset.request.lead"))
	d.SEO.Robots = "noindex"
	views.Render(w, r, status, views.ForgotPasswordPage(d))
}

// ResetPasswordHandler renders the new password form for ?token=.
func (a *app) ResetPasswordHandler(w http.ResponseWriter, r *http.Request) {
	t := a.translator(mw.Lang(r))
	d := handlersPkg.ResetPasswordData{
		PageData: a.pageData(r, t("reset.confirm.title"), t("reset.confirm.lead")),
		Token:    strings.TrimSpace(r.URL.Query().Get("token")),
	}
	d.SEO.Robots = "noindex"
	if d.Token == "" {
		d.Errors = map[string]string{"token": t("reset.error.token")}
	}
	views.Render(w, r, http.StatusOK, views.ResetPasswordPage(d))
}

// ResetPasswordSubmit sets the new password.
func (a *app) ResetPasswordSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		a.renderError(w, r, http.StatusBadRequest, err)
		return
	}
	t := a.translator(mw.Lang(r))
	req := passwordreset.ConfirmRequest{
		Token:           r.PostForm.Get("token"),
		NewPassword:     r.PostForm.Get("new_password"),
		ConfirmPassword: r.PostForm.Get("confirm_password"),
	}

	_, err := a.reset.ConfirmReset(r.Context(), req)

	d := handlersPkg.ResetPasswordData{Token: strings.TrimSpace(req.Token)}
	status := http.StatusOK
	switch {
	case err == nil:
		d.Done = true
	default:
		if msgs, alerts, ok := fieldMessages(err, t, "token", "new_password", "confirm_password"); ok {
			d.Errors, d.Alerts = msgs, alerts
			status = http.StatusUnprocessableEntity
		} else {
			observability.FromContext(r.Context()).Error("password reset confirm failed", zap.Error(err))
			d.Failed = true
			status = http.StatusBadGateway
		}
	}

	if mw.IsHTMX(r.Context()) {
		d.T = t
		d.CSRFToken = mw.CSRFToken(r)
		views.Render(w, r, http.StatusOK, views.ResetPasswordForm(d))
		return
	}
	d.PageData = a.pageData(r, t("reset.confirm.title"), t("reset.confirm.lead"))
	d.SEO.Robots = "noindex"
	views.Render(w, r, status, views.ResetPasswordPage(d))
}
