package views

import (
	"net/url"
	"strconv"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"delavnice.si/web/internal/handlers"
)

const (
	// CarouselID is the element id htmx swaps the carousel into.
	CarouselID       = "kategorije"
	carouselFragment = "/fragments/carousel"
	carouselSocket   = "/ws/carousel"
)

// Carousel renders the category strip with its controls. Scroll, when set,
// is exposed to the client script which scrolls the viewport to the offset.
func Carousel(v handlers.CarouselView) g.Node {
	t := translate(v.T)
	n := len(v.Categories)
	if n == 0 {
		return nil
	}
	cur := v.State.Index
	settings := v.Settings

	attrs := []g.Node{
		ID(CarouselID),
		Class("carousel"),
		g.Attr("aria-roledescription", "carousel"),
		g.Attr("aria-label", t("carousel.label")),
		g.Attr("data-carousel", ""),
		g.Attr("data-ws-url", carouselSocket),
		g.Attr("data-selected-id", v.State.SelectedID),
		g.Attr("data-index", strconv.Itoa(cur)),
		g.Attr("data-autoplay", strconv.FormatBool(v.State.AutoPlaying)),
		g.Attr("data-interval-ms", strconv.FormatInt(settings.Interval.Milliseconds(), 10)),
		g.Attr("data-resume-ms", strconv.FormatInt(settings.ResumeDelay.Milliseconds(), 10)),
		g.Attr("data-item-width", formatPx(settings.Layout.ItemWidth)),
		g.Attr("data-gap", formatPx(settings.Layout.Gap)),
	}
	if v.Scroll != nil {
		attrs = append(attrs,
			g.Attr("data-scroll-index", strconv.Itoa(v.Scroll.Index)),
			g.Attr("data-scroll-offset", formatPx(v.Scroll.Offset)),
		)
	}

	cards := make([]g.Node, 0, n)
	dots := make([]g.Node, 0, n)
	for i, c := range v.Categories {
		active := i == cur
		cls := "carousel__card"
		if active {
			cls += " carousel__card--active"
		}
		cards = append(cards, Li(ID("kategorija-"+c.ID), Class(cls),
			g.Attr("data-index", strconv.Itoa(i)),
			g.Attr("aria-roledescription", "slide"),
			g.Attr("aria-label", t("carousel.position", i+1, n)),
			g.If(active, g.Attr("aria-current", "true")),
			Button(Type("button"), Class("carousel__select"),
				fragmentGet(selectURL(i)),
				g.Attr("data-carousel-select", strconv.Itoa(i)),
				g.Attr("aria-label", t("carousel.goto", c.Title)),
				g.If(c.Image != "", Img(Src(c.Image), Alt(""), g.Attr("loading", "lazy"),
					g.Attr("width", formatPx(settings.Layout.ItemWidth)))),
				H3(Class("carousel__title"), g.Text(c.Title)),
			),
			Div(Class("carousel__content"), g.If(!active, g.Attr("hidden", "")), g.Raw(c.Content)),
		))
		dots = append(dots, Li(
			Button(Type("button"), Class("carousel__dot"),
				fragmentGet(selectURL(i)),
				g.Attr("data-carousel-select", strconv.Itoa(i)),
				g.Attr("aria-label", t("carousel.goto", c.Title)),
				g.If(active, g.Attr("aria-current", "true")),
			),
		))
	}

	return Section(g.Group(attrs),
		H2(Class("carousel__heading"), g.Text(t("carousel.heading"))),
		Div(Class("carousel__viewport"), g.Attr("data-carousel-viewport", ""),
			Ul(Class("carousel__track"), g.Group(cards)),
		),
		Div(Class("carousel__controls"),
			Button(Type("button"), Class("carousel__prev"),
				fragmentGet(stepURL("prev", cur)),
				g.Attr("data-carousel-step", "prev"),
				g.Attr("aria-label", t("carousel.prev")),
				g.Text("‹"),
			),
			Ol(Class("carousel__dots"), g.Group(dots)),
			Button(Type("button"), Class("carousel__next"),
				fragmentGet(stepURL("next", cur)),
				g.Attr("data-carousel-step", "next"),
				g.Attr("aria-label", t("carousel.next")),
				g.Text("›"),
			),
		),
		g.If(!v.State.AutoPlaying, P(Class("visually-hidden"), g.Attr("aria-live", "polite"), g.Text(t("carousel.paused")))),
	)
}

func fragmentGet(href string) g.Node {
	return g.Group([]g.Node{
		g.Attr("hx-get", href),
		g.Attr("hx-target", "#"+CarouselID),
		g.Attr("hx-swap", "outerHTML"),
	})
}

func selectURL(i int) string {
	return carouselFragment + "?" + url.Values{"i": {strconv.Itoa(i)}}.Encode()
}

func stepURL(dir string, from int) string {
	return carouselFragment + "?" + url.Values{"dir": {dir}, "from": {strconv.Itoa(from)}}.Encode()
}

func formatPx(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// CarouselTrigger is the HX-Trigger detail sent with a carousel fragment.
func CarouselTrigger(v handlers.CarouselView) map[string]any {
	detail := map[string]any{
		"selectedId":  v.State.SelectedID,
		"index":       v.State.Index,
		"autoPlaying": v.State.AutoPlaying,
	}
	if v.Scroll != nil {
		detail["scroll"] = map[string]any{"index": v.Scroll.Index, "offset": v.Scroll.Offset}
	}
	return detail
}
