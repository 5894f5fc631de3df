// Copyright (c) 2025-2026 BrightPath Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package config_test

import (
	"strings"
	"testing"

	"github.com/brightpath/brightpath-go/internal/config"
)

const testSecret = "unit-test-secret-0123456789abcdef"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("BRIGHTPATH_JWT_SECRET", testSecret)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.IsDevelopment() {
		t.Error("default env should be development")
	}
	if cfg.UseRedisCache() {
		t.Error("redis cache should be off without BRIGHTPATH_REDIS_URL")
	}
	if got := cfg.ServerAddr(); got != "localhost:8080" {
		t.Errorf("ServerAddr = %q, want localhost:8080", got)
	}
}

func TestLoadProductionWithRedis(t *testing.T) {
	t.Setenv("BRIGHTPATH_JWT_SECRET", testSecret)
	t.Setenv("BRIGHTPATH_ENV", "production")
	t.Setenv("BRIGHTPATH_REDIS_URL", "redis://localhost:6379/0")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.IsDevelopment() {
		t.Error("production env reported as development")
	}
	if !cfg.UseRedisCache() {
		t.Error("redis cache should be on when BRIGHTPATH_REDIS_URL is set")
	}
}

func TestLoadRejectsWeakSecret(t *testing.T) {
	t.Setenv("BRIGHTPATH_JWT_SECRET", "short")

	if _, err := config.Load(); err == nil || !strings.Contains(err.Error(), "BRIGHTPATH_JWT_SECRET") {
		t.Fatalf("err = %v, want secret length error", err)
	}
}
