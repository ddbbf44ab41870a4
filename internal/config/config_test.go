package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"HTTP_PORT", "STORE_BACKEND", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSL",
	"AWS_REGION", "DYNAMODB_ENDPOINT", "MERCADOPAGO_ACCESS_TOKEN", "PAYMENT_GATEWAY_MOCK", "MERCADOPAGO_MOCK",
	"AUTOMATION_BUFFER", "PAYMENT_TERMS", "LOG_LEVEL",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configKeys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, BackendDynamoDB, cfg.StoreBackend)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "us-east-1", cfg.AWS.Region)
	assert.Equal(t, DefaultAutomationBuffer, cfg.AutomationBuffer)
	assert.Equal(t, DefaultPaymentTerms, cfg.PaymentTerms)
	assert.False(t, cfg.PaymentGatewayMock)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_BACKEND", "Postgres")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_SSL", "true")
	t.Setenv("PAYMENT_GATEWAY_MOCK", "yes")
	t.Setenv("AUTOMATION_BUFFER", "5")
	t.Setenv("PAYMENT_TERMS", "168h")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, BackendPostgres, cfg.StoreBackend)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.True(t, cfg.Database.SSLEnabled)
	assert.True(t, cfg.PaymentGatewayMock)
	assert.Equal(t, 5, cfg.AutomationBuffer)
	assert.Equal(t, 7*24*time.Hour, cfg.PaymentTerms)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown backend", env: map[string]string{"STORE_BACKEND": "mongo"}},
		{name: "bad port", env: map[string]string{"DB_PORT": "x"}},
		{name: "bad ssl flag", env: map[string]string{"DB_SSL": "maybe"}},
		{name: "zero buffer", env: map[string]string{"AUTOMATION_BUFFER": "0"}},
		{name: "bad terms", env: map[string]string{"PAYMENT_TERMS": "thirty days"}},
		{name: "negative terms", env: map[string]string{"PAYMENT_TERMS": "-1h"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg, err := Load()
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}
