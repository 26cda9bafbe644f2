// Package markup turns authored markdown into sanitized HTML and plain text.
package markup

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
	nethtml "golang.org/x/net/html"
)

// Renderer converts markdown to HTML that is safe to embed in a page.
// It is safe for concurrent use.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// New returns a Renderer with GitHub-flavoured extensions and the content
// sanitisation policy.
func New() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM, extension.Typographer),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		),
		policy: newContentPolicy(),
	}
}

func newContentPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowElements("figure", "figcaption")
	policy.AllowAttrs("class").OnElements("figure", "figcaption", "p", "span", "ul", "li")
	policy.AllowAttrs("loading").OnElements("img")
	policy.RequireNoFollowOnLinks(true)
	policy.AddTargetBlankToFullyQualifiedLinks(true)
	return policy
}

// HTML renders src and sanitizes the result.
func (r *Renderer) HTML(src string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("markup: render: %w", err)
	}
	return r.policy.Sanitize(buf.String()), nil
}

// Sanitize applies the content policy to HTML authored elsewhere.
func (r *Renderer) Sanitize(raw string) string {
	return r.policy.Sanitize(raw)
}

// PlainText extracts the visible text of an HTML fragment with whitespace
// collapsed to single spaces.
func PlainText(fragment string) string {
	z := nethtml.NewTokenizer(strings.NewReader(fragment))
	var b strings.Builder
	for {
		switch z.Next() {
		case nethtml.ErrorToken:
			return collapseSpace(b.String())
		case nethtml.TextToken:
			b.Write(z.Text())
		case nethtml.StartTagToken, nethtml.EndTagToken, nethtml.SelfClosingTagToken:
			// Block boundaries separate words.
			b.WriteByte(' ')
		}
	}
}

// Excerpt returns at most limit runes of PlainText(fragment), cut at a word
// boundary and suffixed with an ellipsis when shortened.
func Excerpt(fragment string, limit int) string {
	text := PlainText(fragment)
	runes := []rune(text)
	if limit <= 0 || len(runes) <= limit {
		return text
	}
	cut := limit
	for cut > 0 && !unicode.IsSpace(runes[cut]) {
		cut--
	}
	if cut == 0 {
		cut = limit
	}
	return strings.TrimRightFunc(string(runes[:cut]), func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r)
	}) + "…"
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
