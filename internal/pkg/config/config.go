package config

import (
	"github.com/kelseyhightower/envconfig"
)

// Config holds the service configuration, loaded from the environment.
// Checkout tunables that used to be scattered constants live here so they
// reach the pricing calculator as explicit inputs.
type Config struct {
	Port      string `envconfig:"PORT" default:"8080"`
	SpannerDB string `envconfig:"SPANNER_DB" default:"projects/kzstore/instances/store/databases/checkout"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`

	KafkaBrokers string `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	KafkaTopic   string `envconfig:"KAFKA_TOPIC" default:"checkout-events"`

	// Pricing tunables
	DynamicShippingCost   int64 `envconfig:"DYNAMIC_SHIPPING_COST" default:"3500"`
	PreOrderDepositPct    int64 `envconfig:"PREORDER_DEPOSIT_PCT" default:"50"`
	DefaultCommissionRate int64 `envconfig:"DEFAULT_COMMISSION_RATE" default:"5"`

	// Relay tunables
	RelayBatchSize    int64 `envconfig:"RELAY_BATCH_SIZE" default:"100"`
	RelayPollInterval int64 `envconfig:"RELAY_POLL_INTERVAL_MS" default:"1000"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
