package views

import (
	"strconv"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"delavnice.si/web/internal/handlers"
)

// SchoolsPage renders the landing page for schools.
func SchoolsPage(d handlers.SchoolsData) g.Node {
	t := translate(d.T)
	p := d.Page
	return Layout(d.PageData,
		Banner(p.Banner),
		Hero(p.Hero),
		Carousel(d.Carousel),
		Items("kako-deluje", t("schools.steps_heading"), p.Items, true),
		Prose(p.Body),
		updated(d.Updated),
		Testimonials(d.Testimonials, t),
		CTA(p.CTA),
	)
}

// ProvidersPage renders the page for workshop providers.
func ProvidersPage(d handlers.ProvidersData) g.Node {
	t := translate(d.T)
	p := d.Page
	return Layout(d.PageData,
		Banner(p.Banner),
		Hero(p.Hero),
		Items("prednosti", t("providers.benefits_heading"), p.Items, false),
		Prose(p.Body),
		updated(d.Updated),
		WorkshopForm(d.Workshop, t),
		Testimonials(d.Testimonials, t),
		CTA(p.CTA),
	)
}

// WorkshopForm renders the workshop draft form, or its confirmation.
func WorkshopForm(f handlers.WorkshopForm, t handlers.Translator) g.Node {
	t = translate(t)
	if f.Saved != "" {
		return Section(ID("delavnica"), Class("workshop workshop--saved"),
			H2(g.Text(t("workshop.heading"))),
			P(Class("notice notice--success"), g.Attr("role", "status"), g.Text(f.Saved)),
		)
	}

	options := []g.Node{Option(Value(""), g.Text(t("workshop.category_placeholder")))}
	for _, c := range f.Categories {
		options = append(options, Option(Value(c.ID), g.If(c.ID == f.CategoryID, Selected()), g.Text(c.Title)))
	}

	return Section(ID("delavnica"), Class("workshop"),
		H2(g.Text(t("workshop.heading"))),
		P(Class("workshop__lead"), g.Text(t("workshop.lead"))),
		Form(Method("post"), Action("/ponudniki/delavnica"),
			g.Attr("hx-post", "/ponudniki/delavnica"),
			g.Attr("hx-target", "#delavnica"),
			g.Attr("hx-swap", "outerHTML"),
			g.Attr("novalidate", ""),
			csrfField(f.CSRFToken),
			field("naslov", t("workshop.title_label"), f.Errors["title"],
				Input(ID("naslov"), Type("text"), Name("title"), Value(f.Title), Required(), invalid(f.Errors["title"]))),
			field("kategorija", t("workshop.category_label"), f.Errors["category"],
				Select(ID("kategorija"), Name("category"), Required(), invalid(f.Errors["category"]), g.Group(options))),
			KeywordField(f.Keywords),
			Button(Type("submit"), Class("btn btn--primary"), g.Text(t("workshop.submit"))),
		),
	)
}

// ForgotPasswordPage renders the reset request page.
func ForgotPasswordPage(d handlers.ForgotPasswordData) g.Node {
	return Layout(d.PageData, Section(Class("auth"), ForgotPasswordForm(d)))
}

// ForgotPasswordForm is the swappable part of the reset request page.
func ForgotPasswordForm(d handlers.ForgotPasswordData) g.Node {
	t := translate(d.T)
	if d.Sent {
		return Div(ID("ponastavitev"), Class("auth__panel"),
			H1(g.Text(t("reset.request.title"))),
			P(Class("notice notice--success"), g.Attr("role", "status"), g.Text(t("reset.request.sent"))),
		)
	}
	return Div(ID("ponastavitev"), Class("auth__panel"),
		H1(g.Text(t("reset.request.title"))),
		P(g.Text(t("reset.request.lead"))),
		g.If(d.Failed, P(Class("notice notice--error"), g.Attr("role", "alert"), g.Text(t("reset.error.failed")))),
		alerts(d.Alerts),
		Form(Method("post"), Action("/pozabljeno-geslo"),
			g.Attr("hx-post", "/pozabljeno-geslo"),
			g.Attr("hx-target", "#ponastavitev"),
			g.Attr("hx-swap", "outerHTML"),
			g.Attr("novalidate", ""),
			csrfField(d.CSRFToken),
			field("email", t("reset.request.email_label"), d.Errors["email"],
				Input(ID("email"), Type("email"), Name("email"), Value(d.Email), g.Attr("autocomplete", "email"), Required(), invalid(d.Errors["email"]))),
			Button(Type("submit"), Class("btn btn--primary"), g.Text(t("reset.request.submit"))),
		),
	)
}

// ResetPasswordPage renders the reset confirm page.
func ResetPasswordPage(d handlers.ResetPasswordData) g.Node {
	return Layout(d.PageData, Section(Class("auth"), ResetPasswordForm(d)))
}

// ResetPasswordForm is the swappable part of the reset confirm page.
func ResetPasswordForm(d handlers.ResetPasswordData) g.Node {
	t := translate(d.T)
	if d.Done {
		return Div(ID("ponastavitev"), Class("auth__panel"),
			H1(g.Text(t("reset.confirm.title"))),
			P(Class("notice notice--success"), g.Attr("role", "status"), g.Text(t("reset.confirm.done"))),
			A(Class("btn btn--primary"), Href("/prijava"), g.Text(t("nav.login"))),
		)
	}
	return Div(ID("ponastavitev"), Class("auth__panel"),
		H1(g.Text(t("reset.confirm.title"))),
		P(g.Text(t("reset.confirm.lead"))),
		g.If(d.Failed, P(Class("notice notice--error"), g.Attr("role", "alert"), g.Text(t("reset.error.failed")))),
		g.If(d.Errors["token"] != "", P(Class("notice notice--error"), g.Attr("role", "alert"), g.Text(d.Errors["token"]))),
		alerts(d.Alerts),
		Form(Method("post"), Action("/ponastavi-geslo"),
			g.Attr("hx-post", "/ponastavi-geslo"),
			g.Attr("hx-target", "#ponastavitev"),
			g.Attr("hx-swap", "outerHTML"),
			g.Attr("novalidate", ""),
			csrfField(d.CSRFToken),
			Input(Type("hidden"), Name("token"), Value(d.Token)),
			field("new_password", t("reset.confirm.password_label"), d.Errors["new_password"],
				Input(ID("new_password"), Type("password"), Name("new_password"), g.Attr("autocomplete", "new-password"), Required(), invalid(d.Errors["new_password"]))),
			field("confirm_password", t("reset.confirm.confirm_label"), d.Errors["confirm_password"],
				Input(ID("confirm_password"), Type("password"), Name("confirm_password"), g.Attr("autocomplete", "new-password"), Required(), invalid(d.Errors["confirm_password"]))),
			Button(Type("submit"), Class("btn btn--primary"), g.Text(t("reset.confirm.submit"))),
		),
	)
}

// ErrorPage renders a status page.
func ErrorPage(d handlers.ErrorData) g.Node {
	t := translate(d.T)
	titleKey, msgKey := "error.server.title", "error.server.message"
	if d.Status == 404 {
		titleKey, msgKey = "error.not_found.title", "error.not_found.message"
	}
	msg := d.Message
	if msg == "" {
		msg = t(msgKey)
	}
	return Layout(d.PageData,
		Section(Class("error-page"), g.Attr("data-status", strconv.Itoa(d.Status)),
			H1(g.Text(t(titleKey))),
			P(g.Text(msg)),
			A(Class("btn"), Href("/"), g.Text(t("error.back_home"))),
		),
	)
}

func alerts(msgs []string) g.Node {
	if len(msgs) == 0 {
		return nil
	}
	return g.Map(msgs, func(m string) g.Node {
		return P(Class("notice notice--error form-alert"), g.Attr("role", "alert"), g.Text(m))
	})
}

func updated(label string) g.Node {
	if label == "" {
		return nil
	}
	return P(Class("page-updated"), g.Text(label))
}

func field(id, label, errMsg string, control g.Node) g.Node {
	return Div(Class("field"),
		Label(For(id), g.Text(label)),
		control,
		g.If(errMsg != "", P(ID(id+"-napaka"), Class("field-error"), g.Text(errMsg))),
	)
}

func invalid(errMsg string) g.Node {
	if errMsg == "" {
		return nil
	}
	return g.Attr("aria-invalid", "true")
}

func csrfField(token string) g.Node {
	return Input(Type("hidden"), Name("csrf_token"), Value(token))
}
