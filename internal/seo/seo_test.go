package seo

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBreadcrumbListPositions(t *testing.T) {
	raw := JSON(BreadcrumbList([]BreadcrumbItem{
		{Name: "Za šole", Item: "https://delavnice.si/"},
		{Name: "Za ponudnike", Item: "https://delavnice.si/ponudniki"},
	}))
	var got struct {
		Type  string `json:"@type"`
		Items []struct {
			Position int    `json:"position"`
			Name     string `json:"name"`
		} `json:"itemListElement"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &got))
	require.Equal(t, "BreadcrumbList", got.Type)
	require.Equal(t, 2, got.Items[1].Position)
	require.Equal(t, "Za ponudnike", got.Items[1].Name)
}

func TestAbsolute(t *testing.T) {
	require.Equal(t, "https://delavnice.si/ponudniki", Absolute("https://delavnice.si/", "/ponudniki"))
	require.Equal(t, "/ponudniki", Absolute("", "/ponudniki"))
}

func TestAlternates(t *testing.T) {
	alts := Alternates("https://delavnice.si", "/", []string{"sl", "en"})
	require.Len(t, alts, 3)
	require.Equal(t, "https://delavnice.si/?hl=en", alts[1].Href)
	require.Equal(t, "x-default", alts[2].Hreflang)
}
