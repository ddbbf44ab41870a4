// Package config loads the service settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Store backends.
const (
	BackendDynamoDB = "dynamodb"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

const (
	DefaultHTTPPort         = "8080"
	DefaultAutomationBuffer = 100
	DefaultPaymentTerms     = 30 * 24 * time.Hour
)

// Database holds the postgres connection settings.
type Database struct {
	Host       string
	Port       int
	User       string
	Password   string
	Name       string
	SSLEnabled bool
}

// AWS holds the DynamoDB client settings. Endpoint is only set for local
// DynamoDB; AccessKeyID and SecretAccessKey default to "local" because the SDK
// requires credentials even when the emulator ignores them.
type AWS struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	DynamoEndpoint  string
}

type Config struct {
	HTTPPort               string
	StoreBackend           string
	Database               Database
	AWS                    AWS
	MercadoPagoAccessToken string
	PaymentGatewayMock     bool
	AutomationBuffer       int
	PaymentTerms           time.Duration
	LogLevel               string
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	var errs []error

	port, err := intEnv("DB_PORT", 5432)
	errs = append(errs, err)
	ssl, err := boolEnv("DB_SSL", false)
	errs = append(errs, err)
	buffer, err := intEnv("AUTOMATION_BUFFER", DefaultAutomationBuffer)
	errs = append(errs, err)
	terms, err := durationEnv("PAYMENT_TERMS", DefaultPaymentTerms)
	errs = append(errs, err)
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPPort:     stringEnv("HTTP_PORT", DefaultHTTPPort),
		StoreBackend: strings.ToLower(stringEnv("STORE_BACKEND", BackendDynamoDB)),
		Database: Database{
			Host:       stringEnv("DB_HOST", "localhost"),
			Port:       port,
			User:       stringEnv("DB_USER", "postgres"),
			Password:   stringEnv("DB_PASSWORD", "postgres"),
			Name:       stringEnv("DB_NAME", "fieldservice"),
			SSLEnabled: ssl,
		},
		AWS: AWS{
			Region:          stringEnv("AWS_REGION", "us-east-1"),
			AccessKeyID:     stringEnv("AWS_ACCESS_KEY_ID", "local"),
			SecretAccessKey: stringEnv("AWS_SECRET_ACCESS_KEY", "local"),
			DynamoEndpoint:  os.Getenv("DYNAMODB_ENDPOINT"),
		},
		MercadoPagoAccessToken: strings.TrimSpace(os.Getenv("MERCADOPAGO_ACCESS_TOKEN")),
		PaymentGatewayMock:     mockEnabled(),
		AutomationBuffer:       buffer,
		PaymentTerms:           terms,
		LogLevel:               stringEnv("LOG_LEVEL", "info"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.StoreBackend {
	case BackendDynamoDB, BackendPostgres, BackendMemory:
	default:
		return fmt.Errorf("invalid STORE_BACKEND %q: want dynamodb, postgres or memory", c.StoreBackend)
	}
	if c.HTTPPort == "" {
		return errors.New("HTTP_PORT is required")
	}
	if c.AutomationBuffer <= 0 {
		return fmt.Errorf("AUTOMATION_BUFFER must be positive, got %d", c.AutomationBuffer)
	}
	if c.PaymentTerms <= 0 {
		return fmt.Errorf("PAYMENT_TERMS must be positive, got %s", c.PaymentTerms)
	}
	if c.StoreBackend == BackendPostgres && (c.Database.Host == "" || c.Database.Name == "") {
		return errors.New("DB_HOST and DB_NAME are required for the postgres backend")
	}
	if c.StoreBackend == BackendDynamoDB && c.AWS.Region == "" {
		return errors.New("AWS_REGION is required for the dynamodb backend")
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.HTTPPort
}

func stringEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func intEnv(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return i, nil
}

func boolEnv(key string, def bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", key, err)
	}
	return b, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return d, nil
}

func mockEnabled() bool {
	for _, key := range []string{"PAYMENT_GATEWAY_MOCK", "MERCADOPAGO_MOCK"} {
		switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
		case "1", "true", "yes", "on", "mock":
			return true
		}
	}
	return false
}
