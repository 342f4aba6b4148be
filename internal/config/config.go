package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config carries everything a validation run needs besides the event
// parameters themselves.
type Config struct {
	// Export archive
	ExportListingURL string `json:"export_listing_url"`

	// Catalog services
	GridURL           string `json:"grid_url"`
	OfferURL          string `json:"offer_url"`
	TagURL            string `json:"tag_url"`
	AccountID         string `json:"account_id"`
	ClientProfile     string `json:"client_profile"`
	SupportedCatalogs string `json:"supported_catalogs"`

	// Local files
	OutputDir      string `json:"output_dir"`
	MasterCorpPath string `json:"master_corp_path"`
	HistoryDBPath  string `json:"history_db_path"`

	// HTTP behaviour
	HTTPTimeout     time.Duration `json:"-"`
	HTTPTimeoutSecs int           `json:"http_timeout_seconds"`
	RateLimitPerSec float64       `json:"rate_limit_per_second"`
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	outputDir := filepath.Join(home, "PPV_Validation_Outputs")

	return &Config{
		ExportListingURL:  "https://vcwarchive.g.comcast.net/vcwh_exports/ppv/",
		GridURL:           "http://inspector.merlin.comcast.net:8080/loadGrid",
		OfferURL:          "http://bo.prod.merlin.ccp.xcal.tv:9023/offerDataService/data/Offer",
		TagURL:            "http://inspector.merlin.comcast.net:8080/offerObjects",
		AccountID:         "7876220869746444319",
		ClientProfile:     "XRE:X2",
		SupportedCatalogs: "TitleVI,CTV",
		OutputDir:         outputDir,
		MasterCorpPath:    filepath.Join(outputDir, "MasterCorp.xlsx"),
		HistoryDBPath:     filepath.Join(outputDir, "ppvcheck_runs.db"),
		HTTPTimeoutSecs:   30,
		RateLimitPerSec:   1,
	}
}

// Load builds the configuration: defaults, then an optional JSON file,
// then environment overrides, then validation. An empty path skips the
// file step.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.applyEnv()
	cfg.HTTPTimeout = time.Duration(cfg.HTTPTimeoutSecs) * time.Second

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setString("PPVCHECK_EXPORT_URL", &c.ExportListingURL)
	setString("PPVCHECK_GRID_URL", &c.GridURL)
	setString("PPVCHECK_OFFER_URL", &c.OfferURL)
	setString("PPVCHECK_TAG_URL", &c.TagURL)
	setString("PPVCHECK_ACCOUNT_ID", &c.AccountID)
	setString("PPVCHECK_CLIENT_PROFILE", &c.ClientProfile)
	setString("PPVCHECK_SUPPORTED_CATALOGS", &c.SupportedCatalogs)
	setString("PPVCHECK_OUTPUT_DIR", &c.OutputDir)
	setString("PPVCHECK_MASTER_CORP", &c.MasterCorpPath)
	setString("PPVCHECK_HISTORY_DB", &c.HistoryDBPath)

	if v := os.Getenv("PPVCHECK_HTTP_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.HTTPTimeoutSecs = n
		}
	}
	if v := os.Getenv("PPVCHECK_RATE_LIMIT_PER_SECOND"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.RateLimitPerSec = f
		}
	}
}

// Validate rejects configurations the run cannot work with.
func (c *Config) Validate() error {
	if c.ExportListingURL == "" {
		return fmt.Errorf("export listing URL must not be empty")
	}
	if c.GridURL == "" || c.OfferURL == "" || c.TagURL == "" {
		return fmt.Errorf("catalog service URLs must not be empty")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output directory must not be empty")
	}
	if c.MasterCorpPath == "" {
		return fmt.Errorf("master corp workbook path must not be empty")
	}
	if c.HTTPTimeoutSecs <= 0 {
		return fmt.Errorf("HTTP timeout must be positive, got %d", c.HTTPTimeoutSecs)
	}
	if c.RateLimitPerSec <= 0 {
		return fmt.Errorf("rate limit must be positive, got %v", c.RateLimitPerSec)
	}
	return nil
}
