package handlers

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"delavnice.si/web/internal/config"
	"delavnice.si/web/internal/keywords"
)

var slForms = map[string]string{
	"keywords.remaining.one":   "še %d ključno besedo",
	"keywords.remaining.two":   "še %d ključni besedi",
	"keywords.remaining.few":   "še %d ključne besede",
	"keywords.remaining.other": "še %d ključnih besed",
	"page.updated":             "Posodobljeno %s",
}

func fakeT(key string, args ...any) string {
	if f, ok := slForms[key]; ok {
		if len(args) > 0 {
			return fmt.Sprintf(f, args...)
		}
		return f
	}
	return key
}

func TestNewKeywordFieldRemainingUsesPluralForms(t *testing.T) {
	cases := map[int]string{
		1: "še 1 ključno besedo",
		2: "še 2 ključni besedi",
		3: "še 3 ključne besede",
		5: "še 5 ključnih besed",
	}
	for left, want := range cases {
		seed := make([]string, 0, 10-left)
		for i := 0; i < 10-left; i++ {
			seed = append(seed, fmt.Sprintf("kw%d", i))
		}
		f := NewKeywordField(keywords.New(keywords.Config{MaxKeywords: 10}, seed), "tok", "sl", fakeT)
		require.Equal(t, want, f.Remaining, "left=%d", left)
		require.Equal(t, "tok", f.CSRFToken)
		require.Equal(t, "keyword", f.Name)
	}
}

func TestNewKeywordFieldFull(t *testing.T) {
	f := NewKeywordField(keywords.New(keywords.Config{MaxKeywords: 1}, []string{"a"}), "", "sl", fakeT)
	require.True(t, f.Full)
	require.Empty(t, f.Remaining)
}

func TestUpdatedLabel(t *testing.T) {
	require.Empty(t, UpdatedLabel(fakeT, "sl", time.Time{}))
	d := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)
	require.Equal(t, "Posodobljeno 1. september 2026", UpdatedLabel(fakeT, "sl", d))
}

func TestAnalyticsFromConfig(t *testing.T) {
	require.False(t, AnalyticsFromConfig(config.AnalyticsConfig{}).Enabled())
	a := AnalyticsFromConfig(config.AnalyticsConfig{GA4MeasurementID: "G-TEST"})
	require.True(t, a.Enabled())
	require.Equal(t, "G-TEST", a.GA4MeasurementID)
}
