package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")

	cfg, err := Load(New())
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.Server.Addr)
	require.Equal(t, 100*time.Second, cfg.Carousel.Interval)
	require.Equal(t, 10*time.Second, cfg.Carousel.ResumeDelay)
	require.Equal(t, 24.0, cfg.Carousel.Gap)
	require.Equal(t, 10, cfg.Keywords.MaxCount)
	require.Equal(t, 40, cfg.Keywords.MaxLength)
	require.Equal(t, "info", cfg.LogLevel)
	require.Empty(t, cfg.API.BaseURL)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("DELAVNICE_WEB_SERVER_ADDR", "127.0.0.1:9000")
	t.Setenv("DELAVNICE_WEB_CAROUSEL_INTERVAL", "5s")
	t.Setenv("DELAVNICE_WEB_KEYWORDS_MAX_COUNT", "3")
	t.Setenv("DELAVNICE_WEB_API_BASE_URL", "https://api.delavnice.si/v1/")

	cfg, err := Load(New())
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	require.Equal(t, 5*time.Second, cfg.Carousel.Interval)
	require.Equal(t, 3, cfg.Keywords.MaxCount)
	require.Equal(t, "https://api.delavnice.si/v1", cfg.API.BaseURL)
}

func TestLoadPortFallback(t *testing.T) {
	t.Setenv("PORT", "3000")

	cfg, err := Load(New())
	require.NoError(t, err)
	require.Equal(t, ":3000", cfg.Server.Addr)
}

func TestLoadValidation(t *testing.T) {
	t.Setenv("DELAVNICE_WEB_CAROUSEL_INTERVAL", "0s")
	t.Setenv("DELAVNICE_WEB_API_BASE_URL", "not a url")
	t.Setenv("DELAVNICE_WEB_LOG_LEVEL", "loud")
	t.Setenv("DELAVNICE_WEB_ENV", "prod")

	_, err := Load(New())
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.ElementsMatch(t, []string{"carousel.interval", "api.base_url", "log_level", "session.signing_key"}, ve.Fields())
}

func TestReadFileMergesYAML(t *testing.T) {
	t.Setenv("PORT", "")
	dir := t.TempDir()
	path := filepath.Join(dir, "web.yaml")
	require.NoError(t, os.WriteFile(path, []byte("carousel:\n  resume_delay: 3s\nkeywords:\n  placeholder: Dodaj\n"), 0o600))

	v := New()
	require.NoError(t, ReadFile(v, path))
	cfg, err := Load(v)
	require.NoError(t, err)
	require.Equal(t, 3*time.Second, cfg.Carousel.ResumeDelay)
	require.Equal(t, "Dodaj", cfg.Keywords.Placeholder)
	require.Equal(t, 100*time.Second, cfg.Carousel.Interval)
}

func TestLoadDotEnvMissingFileIsIgnored(t *testing.T) {
	require.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")))
}

func TestLoadDotEnvDoesNotOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("DELAVNICE_WEB_ENV=staging\nDELAVNICE_WEB_DEV=true\n"), 0o600))
	t.Setenv("DELAVNICE_WEB_ENV", "local")
	t.Setenv("DELAVNICE_WEB_DEV", "")

	require.NoError(t, LoadDotEnv(path))
	require.Equal(t, "local", os.Getenv("DELAVNICE_WEB_ENV"))
}
