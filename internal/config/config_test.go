package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PARAM_PREFIX", "/academy/test/")
	t.Setenv("AGENT_CRM_LOCATION_ID", "loc-1")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "/academy/test", cfg.ParamPrefix, "trailing slash is trimmed")
	require.Equal(t, "https://fibroacademyusa.com", cfg.StoreBaseURL)
	require.Equal(t, "https://services.leadconnectorhq.com", cfg.CRMBaseURL)
	require.Equal(t, "2021-07-28", cfg.CRMAPIVersion)
	require.Equal(t, "gemini-2.0-flash-exp", cfg.GeminiModel)
	require.Equal(t, 15, cfg.HTTPTimeoutSeconds)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PARAM_PREFIX", "/academy/prod")
	t.Setenv("AGENT_CRM_LOCATION_ID", "loc-9")
	t.Setenv("WC_BASE_URL", "https://staging.example.com")
	t.Setenv("GEMINI_MODEL", "gemini-2.5-flash")
	t.Setenv("HTTP_TIMEOUT_SECONDS", "30")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "https://staging.example.com", cfg.StoreBaseURL)
	require.Equal(t, "gemini-2.5-flash", cfg.GeminiModel)
	require.Equal(t, 30, cfg.HTTPTimeoutSeconds)
}

func TestLoad_RequiresParamPrefix(t *testing.T) {
	t.Setenv("PARAM_PREFIX", "")
	t.Setenv("AGENT_CRM_LOCATION_ID", "loc-1")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_RequiresLocationID(t *testing.T) {
	t.Setenv("PARAM_PREFIX", "/academy/test")
	t.Setenv("AGENT_CRM_LOCATION_ID", "   ")

	_, err := Load()
	require.Error(t, err)
}
