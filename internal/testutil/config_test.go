package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultTestDBConfig(t *testing.T) {
	t.Run("defaults to local test database port 55432", func(t *testing.T) {
		t.Setenv("TEST_DB_PORT", "")
		t.Setenv("TEST_DB_USER", "")

		cfg := DefaultTestDBConfig()
		assert.Equal(t, "55432", cfg.Port)
		assert.Equal(t, "aircraft", cfg.User)
	})

	t.Run("respects TEST_DB_PORT environment variable", func(t *testing.T) {
		t.Setenv("TEST_DB_PORT", "5432")
		t.Setenv("TEST_DB_HOST", "postgres")

		cfg := DefaultTestDBConfig()
		assert.Equal(t, "5432", cfg.Port)
		assert.Equal(t, "postgres", cfg.Host)
		assert.Contains(t, cfg.dsn(), "postgres:5432")
	})
}

func TestBuilders(t *testing.T) {
	t.Parallel()

	in := A320()
	assert.Equal(t, "Airbus A320", in.Name)
	assert.NoError(t, in.Validate())
	assert.InDelta(t, 122.6, *in.WingArea, 1e-9)
}
