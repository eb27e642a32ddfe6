package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("CART_ALLOW_EMPTY_CHECKOUT", "")
	t.Setenv("ADMIN_EMAIL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Contains(t, cfg.Database.DSN(), "deviceshop.db?")
	assert.Contains(t, cfg.Database.DSN(), "_txlock=immediate")
	assert.False(t, cfg.Cart.AllowEmptyCheckout)
	assert.Equal(t, 24*time.Hour, cfg.JWT.AccessTokenExpiry)
	assert.Empty(t, cfg.Admin.Email)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("CART_ALLOW_EMPTY_CHECKOUT", "true")
	t.Setenv("ADMIN_EMAIL", "Boss@Example.com")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Contains(t, cfg.Database.DSN(), "host=db.internal")
	assert.True(t, cfg.Cart.AllowEmptyCheckout)
	assert.Equal(t, "boss@example.com", cfg.Admin.Email)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_UnsupportedDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")

	_, err := Load()
	assert.Error(t, err)
}

func TestParseDuration_Fallback(t *testing.T) {
	assert.Equal(t, 3*time.Second, parseDuration("nope", 3*time.Second))
	assert.Equal(t, time.Minute, parseDuration("1m", 3*time.Second))
}
