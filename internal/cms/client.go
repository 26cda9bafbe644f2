// Package cms serves the site's informational copy: markdown pages with YAML
// front matter and testimonial lists, read from an fs.FS and cached in memory.
package cms

import (
	"errors"
	"io/fs"
	"strings"
	"sync"
	"time"

	"delavnice.si/web/internal/markup"
)

// ErrNotFound is returned when a content resource cannot be located.
var ErrNotFound = errors.New("cms: not found")

const (
	defaultCacheTTL = 5 * time.Minute
	fallbackLang    = "sl"
)

// Client provides read-only, cached access to a content tree laid out as
// pages/<lang>/<slug>.md and testimonials/<lang>.yaml.
type Client struct {
	mu       sync.RWMutex
	fsys     fs.FS
	renderer *markup.Renderer
	ttl      time.Duration
	now      func() time.Time
	pages    map[string]cacheEntry[Page]
	quotes   map[string]cacheEntry[[]Testimonial]
}

type cacheEntry[T any] struct {
	value   T
	expires time.Time
}

// NewClient constructs a Client over fsys. A zero ttl uses five minutes.
func NewClient(fsys fs.FS, renderer *markup.Renderer, ttl time.Duration) *Client {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	if renderer == nil {
		renderer = markup.New()
	}
	return &Client{
		fsys:     fsys,
		renderer: renderer,
		ttl:      ttl,
		now:      time.Now,
		pages:    map[string]cacheEntry[Page]{},
		quotes:   map[string]cacheEntry[[]Testimonial]{},
	}
}

// Purge drops every cached entry so the next read goes to the content tree.
func (c *Client) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.pages)
	clear(c.quotes)
}

func cached[T any](c *Client, m map[string]cacheEntry[T], key string) (T, bool) {
	c.mu.RLock()
	entry, ok := m[key]
	c.mu.RUnlock()
	if !ok || c.now().After(entry.expires) {
		var zero T
		return zero, false
	}
	return entry.value, true
}

func store[T any](c *Client, m map[string]cacheEntry[T], key string, v T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	m[key] = cacheEntry[T]{value: v, expires: c.now().Add(c.ttl)}
}

// langPriority lists the requested language first, then the fallback.
func langPriority(lang string) []string {
	lang = normalizeLang(lang)
	if lang == fallbackLang {
		return []string{lang}
	}
	return []string{lang, fallbackLang}
}

func normalizeLang(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if i := strings.IndexAny(lang, "-_"); i > 0 {
		lang = lang[:i]
	}
	if lang == "" {
		return fallbackLang
	}
	return lang
}
