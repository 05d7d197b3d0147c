// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Tally Authors

package config

import (
	"encoding/json"
	"flag"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

func resetFlags(t *testing.T, args ...string) {
	t.Helper()
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ContinueOnError)

	oldArgs := os.Args
	os.Args = append([]string{"cmd"}, args...)
	t.Cleanup(func() { os.Args = oldArgs })
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

// TestNewConfigBuilder_InitialState verifies that a freshly created builder
// has no error and an empty configs slice.
func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── buildRaw ──────────────────────────────────────────────────────────────────

// TestBuildRaw_EmptyBuilder verifies that building with no configs yields the
// documented fallbacks.
func TestBuildRaw_EmptyBuilder(t *testing.T) {
	cfg, err := newConfigBuilder().buildRaw()
	require.NoError(t, err)

	assert.Equal(t, defaultHTTPAddress, cfg.Server.HTTPAddress)
	assert.Equal(t, defaultRequestTimeout, cfg.Server.RequestTimeout)
	assert.Equal(t, defaultSessionDuration, cfg.Session.Duration)
	assert.Equal(t, defaultSessionIssuer, cfg.Session.Issuer)
	assert.Equal(t, defaultUploadsDir, cfg.Storage.Files.UploadsDir)
	assert.Equal(t, int64(defaultMaxUploadBytes), cfg.Storage.Files.MaxUploadBytes)
	assert.Equal(t, defaultLookupBaseURL, cfg.Lookup.BaseURL)
	assert.Equal(t, defaultLookupTimeout, cfg.Lookup.Timeout)
	assert.Equal(t, defaultSweepMinAge, cfg.Workers.SweepMinAge)

	// Nothing security-sensitive has a fallback.
	assert.Empty(t, cfg.Session.SignKey)
	assert.Empty(t, cfg.Storage.DB.DSN)
	assert.Equal(t, Auth{}, cfg.Auth)
}

// TestBuildRaw_PropagatesBuilderError verifies that a pre-set b.err is wrapped
// and returned, with nil config.
func TestBuildRaw_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.buildRaw()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuildRaw_MergesMultipleConfigs verifies that fields from multiple
// configs are merged into a single result.
func TestBuildRaw_MergesMultipleConfigs(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{Session: Session{SignKey: "merged_key"}},
		&StructuredConfig{Session: Session{Issuer: "merged_issuer"}},
	)

	cfg, err := b.buildRaw()
	require.NoError(t, err)
	assert.Equal(t, "merged_key", cfg.Session.SignKey)
	assert.Equal(t, "merged_issuer", cfg.Session.Issuer)
}

// TestBuildRaw_KeepsEarlierNonZeroValues verifies the merge semantics when
// two sources set the same field: only zero fields are filled by later
// sources, so the earlier source is retained.
func TestBuildRaw_KeepsEarlierNonZeroValues(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{Server: Server{HTTPAddress: "first:8080"}},
		&StructuredConfig{Server: Server{HTTPAddress: "second:9090", RequestTimeout: 10 * time.Second}},
	)

	cfg, err := b.buildRaw()
	require.NoError(t, err)
	assert.Equal(t, "first:8080", cfg.Server.HTTPAddress)
	assert.Equal(t, 10*time.Second, cfg.Server.RequestTimeout)
}

// TestBuildRaw_DefaultsDoNotOverride verifies that applyDefaults only fills
// zero fields.
func TestBuildRaw_DefaultsDoNotOverride(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{
		Server: Server{RequestTimeout: 5 * time.Second},
		Lookup: Lookup{BaseURL: "https://lookup.example.com"},
	})

	cfg, err := b.buildRaw()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "https://lookup.example.com", cfg.Lookup.BaseURL)
}

// ── build ─────────────────────────────────────────────────────────────────────

// TestBuild_ValidatesRequiredFields verifies that build rejects configs the
// server cannot start with.
func TestBuild_ValidatesRequiredFields(t *testing.T) {
	t.Run("missing dsn", func(t *testing.T) {
		_, err := newConfigBuilder().build()
		assert.ErrorIs(t, err, ErrInvalidStorageConfigs)
	})

	t.Run("missing sign key", func(t *testing.T) {
		b := newConfigBuilder()
		b.configs = append(b.configs, &StructuredConfig{
			Storage: Storage{DB: DB{DSN: "postgres://localhost/tally"}},
		})

		_, err := b.build()
		assert.ErrorIs(t, err, ErrInvalidSessionConfigs)
	})

	t.Run("complete", func(t *testing.T) {
		b := newConfigBuilder()
		b.configs = append(b.configs, &StructuredConfig{
			Storage: Storage{DB: DB{DSN: "postgres://localhost/tally"}},
			Session: Session{SignKey: "jwt_secret"},
		})

		cfg, err := b.build()
		require.NoError(t, err)
		assert.Equal(t, "jwt_secret", cfg.Session.SignKey)
	})
}

// ── withEnv ───────────────────────────────────────────────────────────────────

// TestWithEnv_ReturnsBuilder verifies the fluent interface.
func TestWithEnv_ReturnsBuilder(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withEnv())
}

// TestWithEnv_AppendsOneConfig verifies that withEnv appends exactly one entry.
func TestWithEnv_AppendsOneConfig(t *testing.T) {
	b := newConfigBuilder()
	b.withEnv()
	assert.Len(t, b.configs, 1)
}

// TestWithEnv_ReadsEnvVars verifies that environment variables are picked up.
func TestWithEnv_ReadsEnvVars(t *testing.T) {
	t.Setenv("SESSION_SIGN_KEY", "env-key")
	t.Setenv("SESSION_ISSUER", "env-issuer")

	b := newConfigBuilder()
	b.withEnv()

	require.Len(t, b.configs, 1)
	assert.Equal(t, "env-key", b.configs[0].Session.SignKey)
	assert.Equal(t, "env-issuer", b.configs[0].Session.Issuer)
}

// TestWithEnv_NoErrorOnEmptyEnv verifies that withEnv does not set b.err
// when no relevant env vars are present.
func TestWithEnv_NoErrorOnEmptyEnv(t *testing.T) {
	clearEnvVars(t)

	b := newConfigBuilder()
	b.withEnv()
	assert.NoError(t, b.err)
}

// ── withFlags ─────────────────────────────────────────────────────────────────

// TestWithFlags_ReturnsBuilder verifies the fluent interface.
func TestWithFlags_ReturnsBuilder(t *testing.T) {
	resetFlags(t)

	b := newConfigBuilder()
	assert.Same(t, b, b.withFlags())
}

// TestWithFlags_AppendsParsedFlags verifies that flag values land in the
// appended config.
func TestWithFlags_AppendsParsedFlags(t *testing.T) {
	resetFlags(t, "-server-url", "http://localhost:8080", "-token-path", "/tmp/token")

	b := newConfigBuilder()
	b.withFlags()

	require.Len(t, b.configs, 1)
	assert.Equal(t, "http://localhost:8080", b.configs[0].Client.ServerURL)
	assert.Equal(t, "/tmp/token", b.configs[0].Client.TokenPath)
}

// ── withJSON ──────────────────────────────────────────────────────────────────

// TestWithJSON_ReturnsBuilder verifies the fluent interface.
func TestWithJSON_ReturnsBuilder(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withJSON())
}

// TestWithJSON_NoOp_WhenNoPathSet verifies that withJSON does nothing when
// no config has a JSONFilePath.
func TestWithJSON_NoOp_WhenNoPathSet(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{})
	b.withJSON()

	assert.Len(t, b.configs, 1)
	assert.NoError(t, b.err)
}

// TestWithJSON_AppendsConfig_WhenValidFile verifies that a valid JSON file is
// parsed and appended.
func TestWithJSON_AppendsConfig_WhenValidFile(t *testing.T) {
	payload := StructuredJSONConfig{}
	payload.Session.SignKey = "json-key"
	payload.Session.Issuer = "json-issuer"
	path := writeTempJSONConfig(t, payload)

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: path})
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 2)
	assert.Equal(t, "json-key", b.configs[1].Session.SignKey)
	assert.Equal(t, "json-issuer", b.configs[1].Session.Issuer)
}

// TestWithJSON_SetsError_WhenFileNotFound verifies that a missing file path
// sets b.err.
func TestWithJSON_SetsError_WhenFileNotFound(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{
		JSONFilePath: "/nonexistent/config.json",
	})
	b.withJSON()

	assert.Error(t, b.err)
}

// TestWithJSON_SetsError_WhenMalformedJSON verifies that invalid JSON content
// sets b.err.
func TestWithJSON_SetsError_WhenMalformedJSON(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "bad-*.json")
	require.NoError(t, err)
	_, err = f.WriteString("{not valid json")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: f.Name()})
	b.withJSON()

	assert.Error(t, b.err)
}

// TestWithJSON_UsesLastPath verifies that when multiple configs have a
// JSONFilePath, the last non-empty one wins.
func TestWithJSON_UsesLastPath(t *testing.T) {
	payload := StructuredJSONConfig{}
	payload.Session.Issuer = "last-wins"
	path := writeTempJSONConfig(t, payload)

	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{JSONFilePath: ""},
		&StructuredConfig{JSONFilePath: path},
	)
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 3)
	assert.Equal(t, "last-wins", b.configs[2].Session.Issuer)
}
