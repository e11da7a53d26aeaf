// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/Laure-Riglet/eco-friendly-api/internal/config"
)

// NewFromConfig builds the configured cache backend: Redis when a URL is
// set, the in-process memory cache otherwise.
func NewFromConfig(cfg *config.Config) (Cacher, error) {
	ttl := time.Duration(cfg.CacheTTL) * time.Second

	if cfg.UseRedisCache() {
		c, err := NewRedis(cfg.RedisURL, cfg.CachePrefix, ttl)
		if err != nil {
			return nil, fmt.Errorf("connecting to redis: %w", err)
		}
		slog.Info("using redis cache", "prefix", cfg.CachePrefix, "ttl", ttl)
		return c, nil
	}

	slog.Info("using in-memory cache", "ttl", ttl)
	return NewMemory(ttl), nil
}
