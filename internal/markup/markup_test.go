package markup

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func TestHTMLRendersMarkdown(t *testing.T) {
	t.Parallel()

	out, err := New().HTML("Učenci spoznajo **osnove** programiranja.\n\n- Scratch\n- micro:bit")
	require.NoError(t, err)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(out))
	require.NoError(t, err)
	require.Equal(t, "osnove", doc.Find("strong").Text())
	require.Equal(t, 2, doc.Find("li").Length())
}

func TestHTMLStripsScripts(t *testing.T) {
	t.Parallel()

	out, err := New().HTML("Pozdravljeni <script>alert(1)</script> <a href=\"javascript:alert(1)\">klik</a>")
	require.NoError(t, err)
	require.NotContains(t, out, "<script")
	require.NotContains(t, out, "javascript:")
}

func TestHTMLAddsNoFollowToLinks(t *testing.T) {
	t.Parallel()

	out, err := New().HTML("[Splet](https://example.si)")
	require.NoError(t, err)
	require.Contains(t, out, `rel="nofollow`)
	require.Contains(t, out, `target="_blank"`)
}

func TestPlainText(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Naslov Prvi odstavek. Drugi", PlainText("<h2>Naslov</h2><p>Prvi   odstavek.</p><p>Drugi</p>"))
	require.Equal(t, "", PlainText(""))
}

func TestExcerpt(t *testing.T) {
	t.Parallel()

	require.Equal(t, "kratko besedilo", Excerpt("<p>kratko besedilo</p>", 50))
	require.Equal(t, "ena dva…", Excerpt("<p>ena dva, tri štiri</p>", 10))
	require.Equal(t, "abcde…", Excerpt("abcdefghij", 5))
}
