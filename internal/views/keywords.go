package views

import (
	"strconv"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"delavnice.si/web/internal/handlers"
	"delavnice.si/web/internal/seo"
)

const (
	// KeywordFieldID is the swap target of keyword fragments.
	KeywordFieldID   = "kljucne-besede"
	keywordsFragment = "/fragments/keywords"
	keywordInputID   = "kljucne-besede-vnos"
)

// KeywordField renders the chips, the pending text input and the current
// validation message. State round-trips through the hidden keyword inputs
// and the pending field.
func KeywordField(f handlers.KeywordField) g.Node {
	t := translate(f.T)
	name := f.Name
	if name == "" {
		name = "keyword"
	}

	chips := make([]g.Node, 0, len(f.Keywords))
	for i, kw := range f.Keywords {
		chips = append(chips, Li(Class("chip"),
			Span(Class("chip__label"), g.Text(kw)),
			Button(Type("button"), Class("chip__remove"),
				g.Attr("hx-post", keywordsFragment),
				g.Attr("hx-vals", seo.JSON(map[string]string{"event": "remove", "index": strconv.Itoa(i)})),
				g.Attr("aria-label", t("keywords.remove", kw)),
				g.Text("×"),
			),
			Input(Type("hidden"), Name(name), Value(kw)),
		))
	}

	describedBy := KeywordFieldID + "-pomoc"
	if f.Error != "" {
		describedBy += " " + KeywordFieldID + "-napaka"
	}

	return Div(ID(KeywordFieldID), Class("keywords"),
		g.Attr("data-keywords", ""),
		g.Attr("hx-target", "this"),
		g.Attr("hx-swap", "outerHTML"),
		g.Attr("hx-include", "this"),
		Label(For(keywordInputID), Class("keywords__label"), g.Text(t("keywords.label"))),
		Ul(Class("keywords__chips"), g.Attr("aria-live", "polite"), g.Group(chips)),
		g.If(!f.Full, Div(Class("keywords__entry"),
			Input(ID(keywordInputID), Type("text"), Name("pending"), Value(f.Pending),
				Placeholder(f.Placeholder),
				g.Attr("autocomplete", "off"),
				g.Attr("data-keywords-input", ""),
				g.Attr("aria-describedby", describedBy),
				g.If(f.Error != "", g.Attr("aria-invalid", "true")),
			),
			Button(Type("submit"), Class("keywords__add"), Name("event"), Value("add"),
				g.Attr("formnovalidate", ""),
				g.Attr("hx-post", keywordsFragment),
				g.Attr("hx-vals", seo.JSON(map[string]string{"event": "add"})),
				g.Text(t("keywords.add")),
			),
		)),
		P(ID(KeywordFieldID+"-pomoc"), Class("keywords__help"), g.Text(t("keywords.help", f.MaxKeywords))),
		g.If(f.Remaining != "", P(Class("keywords__remaining"), g.Attr("aria-live", "polite"), g.Text(f.Remaining))),
		g.If(f.Error != "", P(ID(KeywordFieldID+"-napaka"), Class("field-error"), g.Attr("role", "alert"), g.Text(f.Error))),
	)
}
