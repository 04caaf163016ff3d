// SPDX-License-Identifier: MIT

package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestConfig points INVCACHE_CFG at a testdata file.
func setupTestConfig(t *testing.T, testdataFile string) {
	t.Helper()

	absPath, err := filepath.Abs(filepath.Join("testdata", testdataFile))
	require.NoError(t, err, "failed to get absolute path for test config")
	t.Setenv(EnvFile, absPath)
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		testFile  string
		wantErr   bool
		checkFunc func(*testing.T, Type)
	}{
		{
			name:     "nested values",
			testFile: "simple.yaml",
			checkFunc: func(t *testing.T, cfg Type) {
				assert.NotEmpty(t, cfg.Source)
				assert.Contains(t, cfg.Data, "inverse")
				assert.Equal(t, 4, cfg.Data["digits"])
			},
		},
		{
			name:     "empty file",
			testFile: "empty.yaml",
			checkFunc: func(t *testing.T, cfg Type) {
				assert.NotEmpty(t, cfg.Source, "should have a source path")
				assert.Empty(t, cfg.Data)
			},
		},
		{
			name:     "malformed yaml",
			testFile: "broken.yaml",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestConfig(t, tt.testFile)

			cfg, err := Load()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			if tt.checkFunc != nil {
				tt.checkFunc(t, cfg)
			}
		})
	}
}

func TestLoad_NoConfigFile(t *testing.T) {
	t.Setenv(EnvFile, "/nonexistent/path/invcache.yaml")

	_, err := Load()
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestLoad_SearchPath(t *testing.T) {
	dir, err := filepath.Abs("testdata")
	require.NoError(t, err)

	// testdata has no invcache.yaml, so the search falls through.
	t.Setenv(EnvFile, "")
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("APPDATA", "")
	t.Setenv("HOME", t.TempDir())
	_, err = Load()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetters(t *testing.T) {
	setupTestConfig(t, "simple.yaml")
	cfg, err := Load()
	require.NoError(t, err)

	s, err := cfg.GetString("inverse.engine")
	require.NoError(t, err)
	assert.Equal(t, "gonum", s)

	s, err = cfg.GetString("inverse.missing", "lu")
	require.NoError(t, err)
	assert.Equal(t, "lu", s)

	_, err = cfg.GetString("inverse.missing")
	assert.ErrorIs(t, err, ErrNoKey)

	_, err = cfg.GetString("inverse.engine.deeper")
	assert.ErrorIs(t, err, ErrNoKey)

	_, err = cfg.GetString("digits")
	assert.ErrorIs(t, err, ErrType)

	f, err := cfg.GetFloat("inverse.tol")
	require.NoError(t, err)
	assert.InDelta(t, 1e-6, f, 1e-18)

	f, err = cfg.GetFloat("digits")
	require.NoError(t, err)
	assert.Equal(t, 4.0, f)

	f, err = cfg.GetFloat("inverse.pivot-tol", 0.5)
	require.NoError(t, err)
	assert.Equal(t, 0.5, f)

	b, err := cfg.GetBool("inverse.no-pivot")
	require.NoError(t, err)
	assert.True(t, b)

	_, err = cfg.GetBool("inverse.engine")
	assert.ErrorIs(t, err, ErrType)
}

func TestZeroValue(t *testing.T) {
	var cfg Type
	_, err := cfg.GetString("anything")
	assert.ErrorIs(t, err, ErrNoKey)
}
