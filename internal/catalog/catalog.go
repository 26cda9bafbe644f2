// Package catalog holds the workshop categories shown in the carousel. The
// data is compiled into the binary and read once at start-up.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"delavnice.si/web/internal/carousel"
	"delavnice.si/web/internal/markup"
)

//go:embed categories.yaml
var categoriesYAML []byte

var (
	ErrMissingID   = errors.New("catalog: category id is required")
	ErrDuplicateID = errors.New("catalog: duplicate category id")
)

type rawCategory struct {
	ID      string `yaml:"id"`
	Title   string `yaml:"title"`
	Image   string `yaml:"image"`
	Content string `yaml:"content"`
}

// Load parses the embedded categories and renders their content.
func Load(r *markup.Renderer) ([]carousel.Category, error) {
	return Parse(categoriesYAML, r)
}

// Parse decodes a YAML category list. Order is preserved; ids must be unique
// and non-empty.
func Parse(data []byte, r *markup.Renderer) ([]carousel.Category, error) {
	var raw []rawCategory
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}
	if r == nil {
		r = markup.New()
	}
	seen := make(map[string]struct{}, len(raw))
	out := make([]carousel.Category, 0, len(raw))
	for i, rc := range raw {
		id := strings.TrimSpace(rc.ID)
		if id == "" {
			return nil, fmt.Errorf("%w (entry %d)", ErrMissingID, i)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateID, id)
		}
		seen[id] = struct{}{}

		content, err := r.HTML(rc.Content)
		if err != nil {
			return nil, fmt.Errorf("catalog: category %q: %w", id, err)
		}
		out = append(out, carousel.Category{
			ID:      id,
			Title:   strings.TrimSpace(rc.Title),
			Image:   strings.TrimSpace(rc.Image),
			Content: content,
		})
	}
	return out, nil
}
