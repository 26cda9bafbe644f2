package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"

	"delavnice.si/web/internal/markup"
)

func TestLoadEmbeddedCategories(t *testing.T) {
	t.Parallel()

	cats, err := Load(markup.New())
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(cats), 3)
	require.Equal(t, "naravoslovje", cats[0].ID)
	for _, c := range cats {
		require.NotEmpty(t, c.Title, c.ID)
		require.NotEmpty(t, c.Image, c.ID)
		require.Contains(t, c.Content, "<p>", c.ID)
	}
}

func TestParseRejectsDuplicateIDs(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte("- id: a\n  title: A\n- id: a\n  title: B\n"), nil)
	require.ErrorIs(t, err, ErrDuplicateID)
}

func TestParseRejectsMissingID(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte("- title: Brez id\n"), nil)
	require.ErrorIs(t, err, ErrMissingID)
}

func TestParseSanitisesContent(t *testing.T) {
	t.Parallel()

	cats, err := Parse([]byte("- id: x\n  title: X\n  content: \"<img src=x onerror=alert(1)> **ok**\"\n"), nil)
	require.NoError(t, err)
	require.NotContains(t, cats[0].Content, "onerror")
	require.Contains(t, cats[0].Content, "<strong>ok</strong>")
}

func TestParseEmptyList(t *testing.T) {
	t.Parallel()

	cats, err := Parse([]byte("[]"), nil)
	require.NoError(t, err)
	require.Empty(t, cats)
}
