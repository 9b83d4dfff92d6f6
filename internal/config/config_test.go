package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, int64(750), cfg.TaxRateBP)
	assert.Equal(t, int64(5000000), cfg.FreeShippingThresholdKobo)
	assert.Equal(t, int64(150000), cfg.FlatShippingFeeKobo)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9999")
	t.Setenv("TAX_RATE_BP", "500")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.HTTPPort)
	assert.Equal(t, int64(500), cfg.TaxRateBP)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
}

func TestLoad_RejectsBadPort(t *testing.T) {
	t.Setenv("HTTP_PORT", "0")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_RejectsBadTaxRate(t *testing.T) {
	t.Setenv("TAX_RATE_BP", "20000")

	_, err := Load()
	assert.Error(t, err)
}

func TestDurationHelpers(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "24h0m0s", cfg.SessionExpiry().String())
	assert.Equal(t, "168h0m0s", cfg.RememberExpiry().String())
	assert.Equal(t, "168h0m0s", cfg.CartTTL().String())
}
