//
//  ChronoClust — density-based projected clustering over data streams.
//
//  Copyright © 2017 - 2026 the Cytoclust project. All rights reserved.
//

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	c := Config{}
	c.SetDefaults()
	return c
}

func TestConfig_Validate(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		assert.Nil(t, validConfig().Validate())
	})

	t.Run("delta outside 0-1 is fatal", func(t *testing.T) {
		for _, delta := range []float64{-0.1, 1.1, 7} {
			c := validConfig()
			c.Delta = delta
			err := c.Validate()
			require.NotNil(t, err, "delta %v must be rejected", delta)
			assert.Contains(t, err.Error(), "delta")
		}
	})

	t.Run("delta boundaries are allowed", func(t *testing.T) {
		c := validConfig()
		c.Delta = 1
		assert.Nil(t, c.Validate())
	})

	t.Run("preference weight k must exceed 1", func(t *testing.T) {
		c := validConfig()
		c.K = 1
		err := c.Validate()
		require.NotNil(t, err)
		assert.Contains(t, err.Error(), "k must be greater than 1")
	})

	t.Run("all violations are reported together", func(t *testing.T) {
		c := validConfig()
		c.Delta = 2
		c.Epsilon = -1
		err := c.Validate()
		require.NotNil(t, err)
		assert.Contains(t, err.Error(), "delta")
		assert.Contains(t, err.Error(), "epsilon")
	})
}

func TestConfig_FromFile(t *testing.T) {
	write := func(t *testing.T, name, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), name)
		require.Nil(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	t.Run("yaml", func(t *testing.T) {
		path := write(t, "clustering.yaml", "epsilon: 0.25\ndelta: 0.4\npi: 3\n")
		c, err := FromFile(path)
		require.Nil(t, err)
		assert.Equal(t, 0.25, c.Epsilon)
		assert.Equal(t, 0.4, c.Delta)
		assert.Equal(t, 3, c.Pi)
		assert.Equal(t, DefaultBeta, c.Beta, "omitted values fall back to defaults")
	})

	t.Run("json", func(t *testing.T) {
		path := write(t, "clustering.json", `{"epsilon": 0.5, "lambda": 0.25}`)
		c, err := FromFile(path)
		require.Nil(t, err)
		assert.Equal(t, 0.5, c.Epsilon)
		assert.Equal(t, 0.25, c.Lambda)
	})

	t.Run("invalid values fail the load", func(t *testing.T) {
		path := write(t, "clustering.yaml", "delta: 3\n")
		_, err := FromFile(path)
		require.NotNil(t, err)
		assert.Contains(t, err.Error(), "delta")
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := write(t, "clustering.toml", "epsilon = 1\n")
		_, err := FromFile(path)
		require.NotNil(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := FromFile(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NotNil(t, err)
	})
}
