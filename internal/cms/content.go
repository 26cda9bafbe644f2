package cms

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Page is a localized informational page. Body holds sanitized HTML.
type Page struct {
	Slug      string
	Lang      string
	Title     string
	Summary   string
	Hero      Hero
	Items     []Item
	CTA       Link
	Body      string
	UpdatedAt time.Time
	Banner    *Banner
	SEO       SEO
}

// Hero is the page's opening block.
type Hero struct {
	Eyebrow string
	Title   string
	Lead    string
	Image   string
	Primary Link
}

// Item is one entry of a step or benefit list.
type Item struct {
	Title string
	Text  string
	Icon  string
}

// Link is a labelled target.
type Link struct {
	Label string
	Href  string
}

// SEO holds optional metadata overrides.
type SEO struct {
	Title       string
	Description string
	OGImage     string
}

// Banner models an optional notice displayed above the body.
type Banner struct {
	Variant string
	Message string
	Link    Link
}

type linkFrontMatter struct {
	Label string `yaml:"label"`
	Href  string `yaml:"href"`
}

type pageFrontMatter struct {
	Title     string `yaml:"title"`
	Summary   string `yaml:"summary"`
	Lang      string `yaml:"lang"`
	UpdatedAt string `yaml:"updated_at"`
	Hero      struct {
		Eyebrow string          `yaml:"eyebrow"`
		Title   string          `yaml:"title"`
		Lead    string          `yaml:"lead"`
		Image   string          `yaml:"image"`
		Primary linkFrontMatter `yaml:"primary"`
	} `yaml:"hero"`
	Items []struct {
		Title string `yaml:"title"`
		Text  string `yaml:"text"`
		Icon  string `yaml:"icon"`
	} `yaml:"items"`
	CTA linkFrontMatter `yaml:"cta"`
	SEO struct {
		Title       string `yaml:"title"`
		Description string `yaml:"description"`
		OGImage     string `yaml:"og_image"`
	} `yaml:"seo"`
	Banner *struct {
		Variant string          `yaml:"variant"`
		Message string          `yaml:"message"`
		Link    linkFrontMatter `yaml:"link"`
	} `yaml:"banner"`
}

// GetPage returns the page in lang, falling back to Slovenian.
func (c *Client) GetPage(ctx context.Context, slug, lang string) (Page, error) {
	slug = sanitizeSlug(slug)
	if slug == "" {
		return Page{}, ErrNotFound
	}
	lang = normalizeLang(lang)
	key := lang + "|" + slug
	if page, ok := cached(c, c.pages, key); ok {
		return clonePage(page), nil
	}
	if err := ctx.Err(); err != nil {
		return Page{}, err
	}
	for _, candidate := range langPriority(lang) {
		page, err := c.readPage(slug, candidate)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return Page{}, err
		}
		store(c, c.pages, key, page)
		return clonePage(page), nil
	}
	return Page{}, ErrNotFound
}

func (c *Client) readPage(slug, lang string) (Page, error) {
	c.mu.RLock()
	fsys := c.fsys
	c.mu.RUnlock()

	file := path.Join("pages", lang, slug+".md")
	data, err := fs.ReadFile(fsys, file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Page{}, ErrNotFound
		}
		return Page{}, fmt.Errorf("cms: read %s: %w", file, err)
	}
	fm, body := splitFrontMatter(string(data))
	front := pageFrontMatter{}
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &front); err != nil {
			return Page{}, fmt.Errorf("cms: parse front matter %s: %w", file, err)
		}
	}
	html, err := c.renderer.HTML(body)
	if err != nil {
		return Page{}, fmt.Errorf("cms: %s: %w", file, err)
	}

	page := Page{
		Slug:    slug,
		Lang:    firstNonEmpty(strings.TrimSpace(front.Lang), lang),
		Title:   strings.TrimSpace(front.Title),
		Summary: strings.TrimSpace(front.Summary),
		Hero: Hero{
			Eyebrow: strings.TrimSpace(front.Hero.Eyebrow),
			Title:   strings.TrimSpace(front.Hero.Title),
			Lead:    strings.TrimSpace(front.Hero.Lead),
			Image:   strings.TrimSpace(front.Hero.Image),
			Primary: toLink(front.Hero.Primary),
		},
		CTA:  toLink(front.CTA),
		Body: html,
		SEO: SEO{
			Title:       strings.TrimSpace(front.SEO.Title),
			Description: strings.TrimSpace(front.SEO.Description),
			OGImage:     strings.TrimSpace(front.SEO.OGImage),
		},
		UpdatedAt: parseContentDate(front.UpdatedAt),
	}
	for _, it := range front.Items {
		page.Items = append(page.Items, Item{
			Title: strings.TrimSpace(it.Title),
			Text:  strings.TrimSpace(it.Text),
			Icon:  strings.TrimSpace(it.Icon),
		})
	}
	if front.Banner != nil && strings.TrimSpace(front.Banner.Message) != "" {
		page.Banner = &Banner{
			Variant: firstNonEmpty(strings.TrimSpace(front.Banner.Variant), "info"),
			Message: strings.TrimSpace(front.Banner.Message),
			Link:    toLink(front.Banner.Link),
		}
	}
	if page.Title == "" {
		page.Title = prettifySlug(slug)
	}
	if page.Hero.Title == "" {
		page.Hero.Title = page.Title
	}
	return page, nil
}

func toLink(l linkFrontMatter) Link {
	return Link{Label: strings.TrimSpace(l.Label), Href: strings.TrimSpace(l.Href)}
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\ufeff")
	lines := strings.Split(input, "\n")
	if strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n\r")
		}
	}
	return "", input
}

func parseContentDate(v string) time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02", "2. 1. 2006"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

func prettifySlug(slug string) string {
	parts := strings.Split(strings.TrimSpace(slug), "-")
	for i, part := range parts {
		if part == "" {
			continue
		}
		runes := []rune(part)
		runes[0] = []rune(strings.ToUpper(string(runes[0])))[0]
		parts[i] = string(runes)
	}
	return strings.Join(parts, " ")
}

func sanitizeSlug(slug string) string {
	slug = strings.Trim(strings.TrimSpace(strings.ToLower(slug)), "/")
	if slug == "" || strings.Contains(slug, "..") || strings.ContainsAny(slug, `/\`) {
		return ""
	}
	return slug
}

func clonePage(src Page) Page {
	cp := src
	if src.Banner != nil {
		b := *src.Banner
		cp.Banner = &b
	}
	cp.Items = append([]Item(nil), src.Items...)
	return cp
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
