package seo

import (
	"net/url"
	"strings"
)

type OpenGraph struct {
	Title       string
	Description string
	Image       string
	Type        string
	URL         string
	SiteName    string
	Locale      string
}

type Twitter struct {
	Card  string
	Image string
}

// Alternate is an hreflang link to the same page in another language.
type Alternate struct {
	Href     string
	Hreflang string
}

type Meta struct {
	Title       string
	Description string
	Canonical   string
	Robots      string
	OG          OpenGraph
	Twitter     Twitter
	Alternates  []Alternate
	JSONLD      []string
}

// Absolute joins p onto base; p is returned unchanged when base is invalid.
func Absolute(base, p string) string {
	u, err := url.Parse(strings.TrimRight(base, "/"))
	if err != nil || u.Host == "" {
		return p
	}
	ref, err := url.Parse(p)
	if err != nil {
		return p
	}
	return u.ResolveReference(ref).String()
}

// Alternates builds hreflang links for every language of pagePath.
func Alternates(base, pagePath string, langs []string) []Alternate {
	out := make([]Alternate, 0, len(langs)+1)
	for _, l := range langs {
		out = append(out, Alternate{Href: Absolute(base, pagePath+"?hl="+l), Hreflang: l})
	}
	out = append(out, Alternate{Href: Absolute(base, pagePath), Hreflang: "x-default"})
	return out
}
