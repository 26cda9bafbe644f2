package views

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"delavnice.si/web/internal/cms"
	"delavnice.si/web/internal/handlers"
)

// Hero renders the page opening block.
func Hero(h cms.Hero) g.Node {
	return Section(Class("hero"),
		Div(Class("hero__text"),
			g.If(h.Eyebrow != "", P(Class("hero__eyebrow"), g.Text(h.Eyebrow))),
			H1(Class("hero__title"), g.Text(h.Title)),
			g.If(h.Lead != "", P(Class("hero__lead"), g.Text(h.Lead))),
			g.If(h.Primary.Href != "", A(Class("btn btn--primary"), Href(h.Primary.Href), g.Text(h.Primary.Label))),
		),
		g.If(h.Image != "", Img(Class("hero__image"), Src(h.Image), Alt(""), g.Attr("width", "640"), g.Attr("height", "420"))),
	)
}

// Items renders a numbered step list or a benefit grid.
func Items(id, heading string, items []cms.Item, numbered bool) g.Node {
	if len(items) == 0 {
		return nil
	}
	entries := make([]g.Node, 0, len(items))
	for _, it := range items {
		entries = append(entries, Li(Class("items__entry"),
			g.If(it.Icon != "", Span(Class("icon icon--"+it.Icon), g.Attr("aria-hidden", "true"))),
			H3(g.Text(it.Title)),
			P(g.Text(it.Text)),
		))
	}
	list := Ul(Class("items__list"), g.Group(entries))
	if numbered {
		list = Ol(Class("items__list items__list--steps"), g.Group(entries))
	}
	return Section(ID(id), Class("items"),
		g.If(heading != "", H2(g.Text(heading))),
		list,
	)
}

// Testimonials renders quotes with attribution.
func Testimonials(list []cms.Testimonial, t handlers.Translator) g.Node {
	if len(list) == 0 {
		return nil
	}
	t = translate(t)
	quotes := make([]g.Node, 0, len(list))
	for _, q := range list {
		attribution := q.Author
		if q.Role != "" {
			attribution += ", " + q.Role
		}
		if q.Org != "" {
			attribution += ", " + q.Org
		}
		quotes = append(quotes, Figure(Class("testimonial"),
			BlockQuote(P(g.Text(q.Quote))),
			g.El("figcaption",
				g.If(q.Avatar != "", Img(Class("testimonial__avatar"), Src(q.Avatar), Alt(""), g.Attr("loading", "lazy"))),
				g.Text(attribution),
			),
		))
	}
	return Section(Class("testimonials"),
		H2(g.Text(t("testimonials.heading"))),
		Div(Class("testimonials__list"), g.Group(quotes)),
	)
}

// CTA renders the closing call to action.
func CTA(l cms.Link) g.Node {
	if l.Href == "" {
		return nil
	}
	return Section(Class("cta"),
		A(Class("btn btn--primary btn--large"), Href(l.Href), g.Text(l.Label)),
	)
}

// Banner renders an optional notice above the page body.
func Banner(b *cms.Banner) g.Node {
	if b == nil || b.Message == "" {
		return nil
	}
	variant := b.Variant
	if variant == "" {
		variant = "info"
	}
	return Div(Class("banner banner--"+variant), g.Attr("role", "note"),
		Span(g.Text(b.Message)),
		g.If(b.Link.Href != "", A(Href(b.Link.Href), g.Text(b.Link.Label))),
	)
}

// Prose renders sanitized HTML.
func Prose(html string) g.Node {
	if html == "" {
		return nil
	}
	return Div(Class("prose"), g.Raw(html))
}
