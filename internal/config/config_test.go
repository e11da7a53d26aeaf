// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "Sufficiently-Long-Secret-Key-42!"

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ECO_SESSION_SECRET", testSecret)
}

func TestLoadDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "localhost:8080", cfg.ServerAddr())
	assert.False(t, cfg.UseRedisCache())
}

func TestLoadMissingSecret(t *testing.T) {
	t.Setenv("ECO_SESSION_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadShortSecret(t *testing.T) {
	t.Setenv("ECO_SESSION_SECRET", "too-short")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least")
}

func TestLoadWeakSecretRejected(t *testing.T) {
	t.Setenv("ECO_SESSION_SECRET", "change-me-to-32-byte-secret-key!")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadMySQLRequiresDSN(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("ECO_DB_DRIVER", "mysql")

	_, err := Load()
	assert.Error(t, err, "mysql driver without DSN must be rejected")

	t.Setenv("ECO_DB_DSN", "eco:eco@tcp(localhost:3306)/eco?parseTime=true")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverMySQL, cfg.DBDriver)
}

func TestLoadUnknownDriverRejected(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("ECO_DB_DRIVER", "postgres")

	_, err := Load()
	assert.Error(t, err)
}
