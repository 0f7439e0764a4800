package configs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	d, err := parseDuration("90d")
	require.NoError(t, err)
	assert.Equal(t, 90*24*time.Hour, d)

	d, err = parseDuration("15m")
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, d)

	_, err = parseDuration("xd")
	assert.Error(t, err)
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("JWT_EXPIRE_TIME", "2d")
	t.Setenv("EMAIL_USERNAME", "shop@example.com")
	t.Setenv("ORDER_SHIPPING_PRICE", "12.5")
	t.Setenv("DB_NAME", "shop_test")

	cfg, err := LoadEnv()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 48*time.Hour, cfg.JWT.ExpireTime)
	assert.Equal(t, "shop@example.com", cfg.Email.From)
	assert.Equal(t, "12.5", cfg.Order.ShippingPrice.String())
	assert.True(t, cfg.Order.TaxPrice.IsZero())
	assert.Equal(t, int64(1048576), cfg.Upload.MaxBytes)
	assert.Contains(t, cfg.DB.DSN(), "/shop_test?")
}

func TestValidateRequiresSecret(t *testing.T) {
	assert.Error(t, ENV{}.Validate())
}

func TestValidateServerKey(t *testing.T) {
	cfg := ENV{AppEnv: "development"}
	cfg.JWT.Secret = "secret"
	assert.NoError(t, cfg.Validate())

	cfg.AppEnv = "production"
	assert.Error(t, cfg.Validate())

	cfg.Midtrans.ServerKey = "server-key"
	assert.NoError(t, cfg.Validate())
}

func TestGenerateJWTSecret(t *testing.T) {
	a, err := GenerateJWTSecret()
	require.NoError(t, err)
	b, err := GenerateJWTSecret()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 88)
}
