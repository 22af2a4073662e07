package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "GO_ENV", "MAX_FILE_SIZE", "HUFF_DEBUG"} {
		t.Setenv(key, "")
	}
	cfg := Load()
	if cfg.Port != "8080" || cfg.Environment != "development" || cfg.MaxFileSize != 50*1024*1024 || cfg.DebugLevel != 0 {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.IsProduction() {
		t.Error("development config reports production")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("GO_ENV", "production")
	t.Setenv("MAX_FILE_SIZE", "1024")
	t.Setenv("HUFF_DEBUG", "4")
	cfg := Load()
	if cfg.Port != "9090" || !cfg.IsProduction() || cfg.MaxFileSize != 1024 || cfg.DebugLevel != 4 {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestLoadIgnoresBadNumbers(t *testing.T) {
	t.Setenv("MAX_FILE_SIZE", "lots")
	if cfg := Load(); cfg.MaxFileSize != 50*1024*1024 {
		t.Fatalf("MaxFileSize = %d", cfg.MaxFileSize)
	}
}
