package cms

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Audience selects which page a testimonial belongs to.
type Audience string

const (
	AudienceSchools   Audience = "schools"
	AudienceProviders Audience = "providers"
)

// Testimonial is a short quote with attribution.
type Testimonial struct {
	Quote    string   `yaml:"quote"`
	Author   string   `yaml:"author"`
	Role     string   `yaml:"role"`
	Org      string   `yaml:"org"`
	Avatar   string   `yaml:"avatar"`
	Audience Audience `yaml:"audience"`
	Order    int      `yaml:"order"`
}

// Testimonials returns quotes for audience in display order.
func (c *Client) Testimonials(ctx context.Context, audience Audience, lang string) ([]Testimonial, error) {
	lang = normalizeLang(lang)
	all, ok := cached(c, c.quotes, lang)
	if !ok {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var err error
		all, err = c.readTestimonials(lang)
		if err != nil {
			return nil, err
		}
		store(c, c.quotes, lang, all)
	}
	out := make([]Testimonial, 0, len(all))
	for _, t := range all {
		if audience == "" || t.Audience == audience {
			out = append(out, t)
		}
	}
	return out, nil
}

func (c *Client) readTestimonials(lang string) ([]Testimonial, error) {
	c.mu.RLock()
	fsys := c.fsys
	c.mu.RUnlock()

	for _, candidate := range langPriority(lang) {
		file := path.Join("testimonials", candidate+".yaml")
		data, err := fs.ReadFile(fsys, file)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("cms: read %s: %w", file, err)
		}
		var items []Testimonial
		if err := yaml.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("cms: parse %s: %w", file, err)
		}
		kept := items[:0]
		for _, t := range items {
			t.Quote = strings.TrimSpace(t.Quote)
			t.Author = strings.TrimSpace(t.Author)
			if t.Quote == "" || t.Author == "" {
				continue
			}
			kept = append(kept, t)
		}
		sort.SliceStable(kept, func(i, j int) bool { return kept[i].Order < kept[j].Order })
		return kept, nil
	}
	return nil, ErrNotFound
}
