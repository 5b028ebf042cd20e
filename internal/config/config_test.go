package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Capture.FPS != 10 {
		t.Errorf("fps = %d", cfg.Capture.FPS)
	}
	if cfg.Capture.ReferenceWidth != 2560 || cfg.Capture.ReferenceHeight != 1440 {
		t.Errorf("reference = %dx%d", cfg.Capture.ReferenceWidth, cfg.Capture.ReferenceHeight)
	}
	if cfg.OCR.Language != "eng" {
		t.Errorf("language = %q", cfg.OCR.Language)
	}
	if cfg.Database.SQLitePath != "data/prices.db" {
		t.Errorf("sqlite path = %q", cfg.Database.SQLitePath)
	}
	if cfg.Session.Region != "wuling" {
		t.Errorf("region = %q", cfg.Session.Region)
	}
	if len(cfg.ROIs) == 0 {
		t.Error("expected default regions")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
capture:
  display: 1
  fps: 5
session:
  region: valley
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CAPTURE_FPS", "20")
	t.Setenv("SQLITE_PATH", "/tmp/override.db")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Capture.Display != 1 {
		t.Errorf("display = %d", cfg.Capture.Display)
	}
	if cfg.Capture.FPS != 20 {
		t.Errorf("fps = %d, want the env override to win", cfg.Capture.FPS)
	}
	if cfg.Database.SQLitePath != "/tmp/override.db" {
		t.Errorf("sqlite path = %q", cfg.Database.SQLitePath)
	}
	if cfg.Session.Region != "valley" {
		t.Errorf("region = %q", cfg.Session.Region)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		if err != nil {
			t.Fatal(err)
		}
		return cfg
	}

	cfg := base()
	cfg.Capture.FPS = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected fps error")
	}

	cfg = base()
	cfg.Session.Region = "atlantis"
	if err := cfg.Validate(); err == nil {
		t.Error("expected region error")
	}

	cfg = base()
	delete(cfg.ROIs, "friend_price")
	if err := cfg.Validate(); err == nil {
		t.Error("expected missing-region error")
	}

	cfg = base()
	cfg.ROIs["product_name"] = cfg.ROIs["local_price"]
	bad := cfg.ROIs["product_name"]
	bad.W = 0
	cfg.ROIs["product_name"] = bad
	if err := cfg.Validate(); err == nil {
		t.Error("expected non-positive size error")
	}
}
