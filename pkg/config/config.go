// Package config loads the engine's configuration from the environment.
package config

import (
	"fmt"
	"math/big"
	"os"
	"strconv"
)

// Defaults for everything that has a sensible one. Credentials and the table
// name do not.
const (
	DefaultConnectorURL = "http://localhost:7771"
	DefaultHost         = "localhost"
	DefaultPort         = "3000"
	DefaultMode         = "sandbox"
	DefaultPrefix       = "paypal"
	DefaultCurrency     = "USD"
	// DefaultAssetScale is the connector-side precision (nano-units).
	DefaultAssetScale = 9
	// ProcessorScale is PayPal's precision for supported currencies (cents).
	ProcessorScale = 2
	// DefaultMinUnits is the smallest payout worth submitting, in cents.
	DefaultMinUnits = 10000
)

// Config holds everything the engine needs at startup.
type Config struct {
	// ConnectorURL is the base URL of the connector this engine sidecars for.
	ConnectorURL string
	Host         string
	Port         string

	// TableName is the DynamoDB table backing the shared key-value store.
	TableName string
	// Prefix namespaces this engine's keys within the table.
	Prefix string

	// PpEmail is this engine's PayPal identity, handed out to peers.
	PpEmail  string
	ClientID string
	Secret   string
	// Mode selects the PayPal environment: "sandbox" or "live".
	Mode string

	// AssetScale is the precision the connector accounts in.
	AssetScale uint
	Currency   string
	// MinUnits is the minimum payout in processor-scale minor units.
	MinUnits *big.Int
}

// Load reads the configuration from the environment, applying defaults.
func Load() (*Config, error) {
	cfg := &Config{
		ConnectorURL: getEnv("CONNECTOR_URL", DefaultConnectorURL),
		Host:         getEnv("ENGINE_HOST", DefaultHost),
		Port:         getEnv("ENGINE_PORT", DefaultPort),
		TableName:    os.Getenv("DYNAMODB_TABLE_NAME"),
		Prefix:       getEnv("KEY_PREFIX", DefaultPrefix),
		PpEmail:      os.Getenv("PAYPAL_EMAIL"),
		ClientID:     os.Getenv("PAYPAL_CLIENT_ID"),
		Secret:       os.Getenv("PAYPAL_SECRET"),
		Mode:         getEnv("PAYPAL_MODE", DefaultMode),
		Currency:     getEnv("CURRENCY", DefaultCurrency),
		MinUnits:     big.NewInt(DefaultMinUnits),
	}

	if cfg.TableName == "" {
		return nil, fmt.Errorf("DYNAMODB_TABLE_NAME environment variable is required")
	}
	if cfg.PpEmail == "" || cfg.ClientID == "" || cfg.Secret == "" {
		return nil, fmt.Errorf("PAYPAL_EMAIL, PAYPAL_CLIENT_ID and PAYPAL_SECRET environment variables are required")
	}

	scale := uint(DefaultAssetScale)
	if raw := os.Getenv("ASSET_SCALE"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 8)
		if err != nil {
			return nil, fmt.Errorf("invalid ASSET_SCALE %q: %w", raw, err)
		}
		scale = uint(parsed)
	}
	cfg.AssetScale = scale

	if raw := os.Getenv("MIN_UNITS"); raw != "" {
		min, ok := new(big.Int).SetString(raw, 10)
		if !ok || min.Sign() < 0 {
			return nil, fmt.Errorf("invalid MIN_UNITS %q", raw)
		}
		cfg.MinUnits = min
	}

	return cfg, nil
}

// ListenAddr is the host:port the HTTP server binds.
func (c *Config) ListenAddr() string {
	return c.Host + ":" + c.Port
}

// WebhookURL is the listener URL registered with PayPal. The id segment is
// opaque to reconciliation (the destination tag identifies the account); the
// client id keeps a shared host from receiving another engine's events.
func (c *Config) WebhookURL() string {
	return fmt.Sprintf("http://%s:%s/accounts/%s/webhooks", c.Host, c.Port, c.ClientID)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
