package config

import (
	"fmt"
	"os"
	"strconv"

	"MarketTracker/internal/model"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Capture struct {
		Display             int     `yaml:"display"`
		FPS                 int     `yaml:"fps"`
		ReferenceWidth      int     `yaml:"reference_width"`
		ReferenceHeight     int     `yaml:"reference_height"`
		ResolutionTolerance float64 `yaml:"resolution_tolerance"`
	} `yaml:"capture"`
	OCR struct {
		Language string `yaml:"language"`
	} `yaml:"ocr"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Schedule struct {
		DigestCron string `yaml:"digest_cron"`
	} `yaml:"schedule"`
	Session struct {
		Region string `yaml:"region"`
	} `yaml:"session"`
	ROIs map[string]model.Rect `yaml:"rois"`
}

// DefaultROIs are the calibrated OCR regions for the 2560x1440
// reference resolution; they are rescaled proportionally for other
// frame sizes.
func DefaultROIs() map[string]model.Rect {
	return map[string]model.Rect{
		"product_name":   {X: 950, Y: 285, W: 650, H: 75},
		"local_price":    {X: 1950, Y: 365, W: 180, H: 55},
		"average_cost":   {X: 210, Y: 635, W: 210, H: 50},
		"quantity_owned": {X: 210, Y: 585, W: 210, H: 50},
		"friend_price":   {X: 1550, Y: 440, W: 250, H: 65},
	}
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("CAPTURE_DISPLAY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Capture.Display = n
		}
	}
	if v := os.Getenv("CAPTURE_FPS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Capture.FPS = n
		}
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("OCR_LANGUAGE"); v != "" {
		cfg.OCR.Language = v
	}
	if v := os.Getenv("DIGEST_CRON"); v != "" {
		cfg.Schedule.DigestCron = v
	}

	// Defaults
	if cfg.Capture.FPS == 0 {
		cfg.Capture.FPS = 10
	}
	if cfg.Capture.ReferenceWidth == 0 {
		cfg.Capture.ReferenceWidth = 2560
	}
	if cfg.Capture.ReferenceHeight == 0 {
		cfg.Capture.ReferenceHeight = 1440
	}
	if cfg.Capture.ResolutionTolerance == 0 {
		cfg.Capture.ResolutionTolerance = 0.1
	}
	if cfg.OCR.Language == "" {
		cfg.OCR.Language = "eng"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/prices.db"
	}
	if cfg.Schedule.DigestCron == "" {
		cfg.Schedule.DigestCron = "0 0 21 * * *"
	}
	if cfg.Session.Region == "" {
		cfg.Session.Region = string(model.RegionWuling)
	}
	if len(cfg.ROIs) == 0 {
		cfg.ROIs = DefaultROIs()
	}

	return cfg, nil
}

// Validate checks that all required fields are coherent.
func (c *Config) Validate() error {
	if c.Capture.FPS <= 0 || c.Capture.FPS > 60 {
		return fmt.Errorf("capture.fps must be in 1..60, got %d", c.Capture.FPS)
	}
	if c.Capture.ResolutionTolerance < 0 || c.Capture.ResolutionTolerance > 0.5 {
		return fmt.Errorf("capture.resolution_tolerance must be in [0, 0.5]")
	}
	r := model.Region(c.Session.Region)
	if r != model.RegionWuling && r != model.RegionValley {
		return fmt.Errorf("session.region must be %q or %q", model.RegionWuling, model.RegionValley)
	}
	for name, roi := range c.ROIs {
		if roi.W <= 0 || roi.H <= 0 {
			return fmt.Errorf("roi %q has non-positive size", name)
		}
	}
	for _, required := range []string{"product_name", "local_price", "friend_price"} {
		if _, ok := c.ROIs[required]; !ok {
			return fmt.Errorf("roi %q is required", required)
		}
	}
	return nil
}
