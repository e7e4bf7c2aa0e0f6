package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.ReplyThrottle != 10*time.Second {
		t.Errorf("ReplyThrottle = %v, want 10s", cfg.ReplyThrottle)
	}
	if cfg.BufferQuiet != 3*time.Second {
		t.Errorf("BufferQuiet = %v, want 3s", cfg.BufferQuiet)
	}
	if cfg.HistoryLimit != 10 {
		t.Errorf("HistoryLimit = %d, want 10", cfg.HistoryLimit)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("REPLY_THROTTLE", "30s")
	t.Setenv("HISTORY_LIMIT", "5")
	t.Setenv("CATALOG_SHEET_ID", "sheet-123")

	cfg := Load()

	if cfg.Port != "9000" {
		t.Errorf("Port = %q, want 9000", cfg.Port)
	}
	if cfg.ReplyThrottle != 30*time.Second {
		t.Errorf("ReplyThrottle = %v, want 30s", cfg.ReplyThrottle)
	}
	if cfg.HistoryLimit != 5 {
		t.Errorf("HistoryLimit = %d, want 5", cfg.HistoryLimit)
	}
	if cfg.CatalogSheetID != "sheet-123" {
		t.Errorf("CatalogSheetID = %q, want sheet-123", cfg.CatalogSheetID)
	}
}

func TestLoadBadValuesFallBack(t *testing.T) {
	t.Setenv("HISTORY_LIMIT", "not-a-number")
	t.Setenv("REPLY_THROTTLE", "soon")

	cfg := Load()

	if cfg.HistoryLimit != 10 {
		t.Errorf("HistoryLimit = %d, want default 10", cfg.HistoryLimit)
	}
	if cfg.ReplyThrottle != 10*time.Second {
		t.Errorf("ReplyThrottle = %v, want default 10s", cfg.ReplyThrottle)
	}
}
