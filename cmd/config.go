package cmd

import (
	"fmt"
	"time"

	"freight/internal/core/domain/model/settlement"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

type Config struct {
	HTTPPort string `envconfig:"HTTP_PORT" default:"8080" validate:"required,numeric"`

	DBHost     string `envconfig:"DB_HOST" default:"localhost" validate:"required"`
	DBPort     string `envconfig:"DB_PORT" default:"5432" validate:"required,numeric"`
	DBUser     string `envconfig:"DB_USER" validate:"required"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBName     string `envconfig:"DB_NAME" validate:"required"`
	DBSslMode  string `envconfig:"DB_SSLMODE" default:"disable" validate:"oneof=disable allow prefer require verify-ca verify-full"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"json" validate:"oneof=text json"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`

	// TaxRate applies to every new bundle; existing bundles keep the rate they were created with.
	TaxRate decimal.Decimal `envconfig:"TAX_RATE" default:"0.1"`

	// An empty RedisAddr turns the eligibility cache off.
	RedisAddr           string        `envconfig:"REDIS_ADDR"`
	RedisPassword       string        `envconfig:"REDIS_PASSWORD"`
	RedisDB             int           `envconfig:"REDIS_DB" default:"0" validate:"min=0"`
	EligibilityCacheTTL time.Duration `envconfig:"ELIGIBILITY_CACHE_TTL" default:"5m" validate:"gt=0"`

	// Without brokers the relay logs events instead of publishing them.
	KafkaBrokers []string `envconfig:"KAFKA_BROKERS"`
	KafkaTopic   string   `envconfig:"KAFKA_TOPIC" default:"freight.events" validate:"required"`

	OutboxRelaySchedule   string `envconfig:"OUTBOX_RELAY_SCHEDULE" default:"* * * * * *" validate:"required"`
	OutboxRelayBatchSize  int    `envconfig:"OUTBOX_RELAY_BATCH" default:"100" validate:"min=1,max=1000"`
	OutboxCleanupSchedule string `envconfig:"OUTBOX_CLEANUP_SCHEDULE" default:"0 0 3 * * *" validate:"required"`
	OutboxRetentionDays   int    `envconfig:"OUTBOX_RETENTION_DAYS" default:"7" validate:"min=1"`
}

// LoadConfig reads .env when present, then the environment.
func LoadConfig() (Config, error) {
	_ = godotenv.Load(".env")

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, err
	}
	if err := settlement.ValidateTaxRate(cfg.TaxRate); err != nil {
		return Config{}, fmt.Errorf("TAX_RATE: %w", err)
	}
	return cfg, nil
}

func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode,
	)
}

func (c Config) CacheEnabled() bool {
	return c.RedisAddr != ""
}

func (c Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}
