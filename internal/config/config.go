package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all non-secret configuration for the concierge backend.
// Secrets (store key/secret, CRM token, model API key) live in SSM
// Parameter Store under ParamPrefix and are fetched by the integration
// clients themselves.
type Config struct {
	// SSM Parameter Store prefix for secrets, e.g. /academy/prod
	ParamPrefix string `envconfig:"PARAM_PREFIX" required:"true"`

	// WooCommerce store
	StoreBaseURL string `envconfig:"WC_BASE_URL" default:"https://fibroacademyusa.com"`

	// Agent CRM (GoHighLevel)
	CRMBaseURL    string `envconfig:"AGENT_CRM_BASE_URL" default:"https://services.leadconnectorhq.com"`
	CRMLocationID string `envconfig:"AGENT_CRM_LOCATION_ID" required:"true"`
	CRMAPIVersion string `envconfig:"AGENT_CRM_API_VERSION" default:"2021-07-28"`

	// Gemini
	GeminiModel string `envconfig:"GEMINI_MODEL" default:"gemini-2.0-flash-exp"`

	// Outbound REST call timeout in seconds (commerce and CRM APIs).
	HTTPTimeoutSeconds int `envconfig:"HTTP_TIMEOUT_SECONDS" default:"15"`
}

// Load reads configuration from a .env file if present, then from the
// environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	cfg.ParamPrefix = strings.TrimRight(strings.TrimSpace(cfg.ParamPrefix), "/")
	if cfg.ParamPrefix == "" {
		return nil, fmt.Errorf("config: PARAM_PREFIX must not be empty")
	}
	if strings.TrimSpace(cfg.CRMLocationID) == "" {
		return nil, fmt.Errorf("config: AGENT_CRM_LOCATION_ID must not be empty")
	}
	if cfg.HTTPTimeoutSeconds <= 0 {
		cfg.HTTPTimeoutSeconds = 15
	}

	return &cfg, nil
}
