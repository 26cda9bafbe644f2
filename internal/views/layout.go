package views

import (
	"fmt"
	"time"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"delavnice.si/web/internal/handlers"
	"delavnice.si/web/internal/seo"
)

// HTMXSrc is the pinned htmx build loaded by every page.
const HTMXSrc = "https://unpkg.com/htmx.org@2.0.4"

// translate returns a translator that never yields an empty string.
func translate(t handlers.Translator) handlers.Translator {
	if t != nil {
		return t
	}
	return func(key string, args ...any) string {
		if len(args) == 0 {
			return key
		}
		return fmt.Sprintf(key, args...)
	}
}

// Layout wraps body in the document shell shared by all pages.
func Layout(pd handlers.PageData, body ...g.Node) g.Node {
	t := translate(pd.T)
	lang := pd.Lang
	if lang == "" {
		lang = "sl"
	}
	title := pd.SEO.Title
	if title == "" {
		title = pd.Title
	}

	return Doctype(
		HTML(
			Lang(lang),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
				TitleEl(g.Text(title)),
				metaTags(pd.SEO),
				Meta(Name("csrf-token"), Content(pd.CSRFToken)),
				Link(Rel("stylesheet"), Href("/assets/css/site.css")),
				Script(Src(HTMXSrc), Defer()),
				Script(Src("/assets/js/carousel.js"), Defer()),
				Script(Src("/assets/js/keywords.js"), Defer()),
				analytics(pd.Analytics),
			),
			Body(
				g.Attr("hx-headers", seo.JSON(map[string]string{"X-CSRF-Token": pd.CSRFToken})),
				A(Class("skip-link"), Href("#vsebina"), g.Text(t("nav.skip"))),
				siteHeader(pd, t),
				breadcrumbs(pd, t),
				g.If(pd.Flash != "", Div(Class("flash"), g.Attr("role", "status"), g.Text(pd.Flash))),
				Main(ID("vsebina"), g.Group(body)),
				siteFooter(t),
			),
		),
	)
}

func metaTags(m seo.Meta) g.Node {
	nodes := []g.Node{}
	add := func(n g.Node) { nodes = append(nodes, n) }
	if m.Description != "" {
		add(Meta(Name("description"), Content(m.Description)))
	}
	if m.Robots != "" {
		add(Meta(Name("robots"), Content(m.Robots)))
	}
	if m.Canonical != "" {
		add(Link(Rel("canonical"), Href(m.Canonical)))
	}
	for _, alt := range m.Alternates {
		add(Link(Rel("alternate"), g.Attr("hreflang", alt.Hreflang), Href(alt.Href)))
	}
	og := map[string]string{
		"og:title":       m.OG.Title,
		"og:description": m.OG.Description,
		"og:image":       m.OG.Image,
		"og:type":        m.OG.Type,
		"og:url":         m.OG.URL,
		"og:site_name":   m.OG.SiteName,
		"og:locale":      m.OG.Locale,
	}
	for _, prop := range []string{"og:title", "og:description", "og:image", "og:type", "og:url", "og:site_name", "og:locale"} {
		if v := og[prop]; v != "" {
			add(Meta(g.Attr("property", prop), Content(v)))
		}
	}
	if m.Twitter.Card != "" {
		add(Meta(Name("twitter:card"), Content(m.Twitter.Card)))
	}
	if m.Twitter.Image != "" {
		add(Meta(Name("twitter:image"), Content(m.Twitter.Image)))
	}
	for _, ld := range m.JSONLD {
		if ld == "" {
			continue
		}
		add(Script(Type("application/ld+json"), g.Raw(ld)))
	}
	return g.Group(nodes)
}

func analytics(a handlers.Analytics) g.Node {
	if !a.Enabled() {
		return nil
	}
	nodes := []g.Node{}
	if a.GA4MeasurementID != "" {
		nodes = append(nodes,
			Script(Async(), Src("https://www.googletagmanager.com/gtag/js?id="+a.GA4MeasurementID)),
			Script(g.Raw("window.dataLayer=window.dataLayer||[];function gtag(){dataLayer.push(arguments);}gtag('js',new Date());gtag('config',"+seo.JSON(a.GA4MeasurementID)+");")),
		)
	}
	if a.PlausibleDomain != "" {
		nodes = append(nodes, Script(Defer(), g.Attr("data-domain", a.PlausibleDomain), Src("https://plausible.io/js/script.js")))
	}
	return g.Group(nodes)
}

func siteHeader(pd handlers.PageData, t handlers.Translator) g.Node {
	links := make([]g.Node, 0, len(pd.Nav))
	for _, it := range pd.Nav {
		links = append(links, Li(
			A(
				Href(it.Href),
				g.If(it.Active, g.Attr("aria-current", "page")),
				g.Text(t(it.LabelKey)),
			),
		))
	}
	return Header(Class("site-header"),
		A(Class("brand"), Href("/"), g.Text(t("brand.name"))),
		Nav(g.Attr("aria-label", t("nav.main_label")),
			Ul(Class("site-nav"), g.Group(links)),
		),
		languageSwitch(pd, t),
	)
}

func languageSwitch(pd handlers.PageData, t handlers.Translator) g.Node {
	if len(pd.Languages) < 2 {
		return nil
	}
	path := pd.Path
	if path == "" {
		path = "/"
	}
	items := make([]g.Node, 0, len(pd.Languages))
	for _, l := range pd.Languages {
		items = append(items, Li(
			A(
				Href(path+"?hl="+l),
				Lang(l),
				g.Attr("hreflang", l),
				g.If(l == pd.Lang, g.Attr("aria-current", "true")),
				g.Text(t("lang."+l)),
			),
		))
	}
	return Nav(Class("lang-switch"), g.Attr("aria-label", t("lang.switch")), Ul(g.Group(items)))
}

func breadcrumbs(pd handlers.PageData, t handlers.Translator) g.Node {
	if len(pd.Breadcrumbs) < 2 {
		return nil
	}
	items := make([]g.Node, 0, len(pd.Breadcrumbs))
	for _, c := range pd.Breadcrumbs {
		label := c.Label
		if c.LabelKey != "" {
			label = t(c.LabelKey)
		}
		if c.Active {
			items = append(items, Li(Span(g.Attr("aria-current", "page"), g.Text(label))))
			continue
		}
		items = append(items, Li(A(Href(c.Href), g.Text(label))))
	}
	return Nav(Class("breadcrumbs"), g.Attr("aria-label", t("nav.breadcrumbs_label")), Ol(g.Group(items)))
}

func siteFooter(t handlers.Translator) g.Node {
	return Footer(Class("site-footer"),
		P(g.Text(t("brand.tagline"))),
		P(g.Text(t("footer.copyright", time.Now().Year()))),
		A(Href("mailto:info@delavnice.si"), g.Text(t("footer.contact"))),
	)
}
