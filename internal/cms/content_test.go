package cms

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestEmbeddedPagesParse(t *testing.T) {
	t.Parallel()

	c := NewClient(Embedded(), nil, 0)
	for _, lang := range []string{"sl", "en"} {
		for _, slug := range []string{"za-sole", "ponudniki"} {
			page, err := c.GetPage(context.Background(), slug, lang)
			require.NoError(t, err, "%s/%s", lang, slug)
			require.Equal(t, lang, page.Lang)
			require.NotEmpty(t, page.Hero.Title)
			require.Len(t, page.Items, 3)
			require.NotEmpty(t, page.CTA.Href)
			require.Contains(t, page.Body, "<strong>")
		}
	}
}

func TestGetPageFallsBackToSlovenian(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"pages/sl/o-nas.md": {Data: []byte("---\ntitle: O nas\n---\nBesedilo.")},
	}
	page, err := NewClient(fsys, nil, 0).GetPage(context.Background(), "o-nas", "en-GB")
	require.NoError(t, err)
	require.Equal(t, "sl", page.Lang)
	require.Equal(t, "O nas", page.Title)
	require.Equal(t, "O nas", page.Hero.Title)
}

func TestGetPageRejectsTraversal(t *testing.T) {
	t.Parallel()

	c := NewClient(fstest.MapFS{}, nil, 0)
	for _, slug := range []string{"", "../secret", "a/b"} {
		_, err := c.GetPage(context.Background(), slug, "sl")
		require.ErrorIs(t, err, ErrNotFound, slug)
	}
}

func TestGetPageWithoutFrontMatter(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{"pages/sl/pogoji-uporabe.md": {Data: []byte("Samo **besedilo**.")}}
	page, err := NewClient(fsys, nil, 0).GetPage(context.Background(), "pogoji-uporabe", "sl")
	require.NoError(t, err)
	require.Equal(t, "Pogoji Uporabe", page.Title)
	require.Contains(t, page.Body, "<strong>besedilo</strong>")
}

func TestGetPageCachesUntilPurge(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{"pages/sl/x.md": {Data: []byte("---\ntitle: Prva\n---\n")}}
	c := NewClient(fsys, nil, time.Hour)
	page, err := c.GetPage(context.Background(), "x", "sl")
	require.NoError(t, err)
	require.Equal(t, "Prva", page.Title)

	fsys["pages/sl/x.md"] = &fstest.MapFile{Data: []byte("---\ntitle: Druga\n---\n")}
	page, _ = c.GetPage(context.Background(), "x", "sl")
	require.Equal(t, "Prva", page.Title)

	c.Purge()
	page, _ = c.GetPage(context.Background(), "x", "sl")
	require.Equal(t, "Druga", page.Title)
}

func TestGetPageCacheExpires(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{"pages/sl/x.md": {Data: []byte("---\ntitle: Prva\n---\n")}}
	c := NewClient(fsys, nil, time.Minute)
	now := time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	_, err := c.GetPage(context.Background(), "x", "sl")
	require.NoError(t, err)
	fsys["pages/sl/x.md"] = &fstest.MapFile{Data: []byte("---\ntitle: Druga\n---\n")}
	now = now.Add(2 * time.Minute)
	page, _ := c.GetPage(context.Background(), "x", "sl")
	require.Equal(t, "Druga", page.Title)
}

func TestBadFrontMatterIsAnError(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{"pages/sl/x.md": {Data: []byte("---\ntitle: [\n---\n")}}
	_, err := NewClient(fsys, nil, 0).GetPage(context.Background(), "x", "sl")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNotFound)
}

func TestTestimonialsFilterAndOrder(t *testing.T) {
	t.Parallel()

	c := NewClient(Embedded(), nil, 0)
	quotes, err := c.Testimonials(context.Background(), AudienceProviders, "sl")
	require.NoError(t, err)
	require.Len(t, quotes, 2)
	require.Equal(t, "Petra Zupan", quotes[0].Author)
	for _, q := range quotes {
		require.Equal(t, AudienceProviders, q.Audience)
	}

	all, err := c.Testimonials(context.Background(), "", "en")
	require.NoError(t, err)
	require.Len(t, all, 4)
}

func TestTestimonialsMissing(t *testing.T) {
	t.Parallel()

	_, err := NewClient(fstest.MapFS{}, nil, 0).Testimonials(context.Background(), AudienceSchools, "sl")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestWatchPurgesOnChange(t *testing.T) {
	dir := t.TempDir()
	pages := filepath.Join(dir, "pages", "sl")
	require.NoError(t, os.MkdirAll(pages, 0o755))
	file := filepath.Join(pages, "x.md")
	require.NoError(t, os.WriteFile(file, []byte("---\ntitle: Prva\n---\n"), 0o600))

	c := NewClient(os.DirFS(dir), nil, time.Hour)
	page, err := c.GetPage(context.Background(), "x", "sl")
	require.NoError(t, err)
	require.Equal(t, "Prva", page.Title)

	core, logs := observer.New(zap.InfoLevel)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- c.Watch(ctx, dir, zap.New(core)) }()

	require.Eventually(t, func() bool {
		return logs.FilterMessage("watching content directory").Len() > 0
	}, 5*time.Second, 10*time.Millisecond)

	// One write only: every event restarts the debounce timer.
	require.NoError(t, os.WriteFile(file, []byte("---\ntitle: Druga\n---\n"), 0o600))
	require.Eventually(t, func() bool {
		page, err := c.GetPage(context.Background(), "x", "sl")
		return err == nil && page.Title == "Druga"
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}
