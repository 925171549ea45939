package config

import (
	"fmt"
	"strings"

	"github.com/bright-horizons-travel/service-booking/internal/pkg/database"
	"github.com/spf13/viper"
)

// KafkaConfig holds the broker list and consumer group settings.
type KafkaConfig struct {
	Brokers       []string
	ConsumerGroup string
}

// ServiceConfig holds all configuration for the booking service.
type ServiceConfig struct {
	Port          string
	AppEnv        string
	MigrationsDir string
	JWTSecret     string
	DBConfig      database.PostgresConfig
	KafkaConfig   KafkaConfig
}

// IsDevelopment reports whether the service runs in a development environment.
func (c *ServiceConfig) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// Load reads configuration from environment variables with the BOOKING prefix.
func Load() (*ServiceConfig, error) {
	v := viper.New()
	v.SetEnvPrefix("BOOKING")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("SERVICE_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("MIGRATIONS_DIR", "migrations")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("KAFKA_BROKERS", "localhost:9092")
	v.SetDefault("KAFKA_CONSUMER_GROUP", "service-booking")

	cfg := &ServiceConfig{
		Port:          v.GetString("SERVICE_PORT"),
		AppEnv:        v.GetString("APP_ENV"),
		MigrationsDir: v.GetString("MIGRATIONS_DIR"),
		JWTSecret:     v.GetString("JWT_SECRET"),
		DBConfig: database.PostgresConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSL_MODE"),
		},
		KafkaConfig: KafkaConfig{
			Brokers:       strings.Split(v.GetString("KAFKA_BROKERS"), ","),
			ConsumerGroup: v.GetString("KAFKA_CONSUMER_GROUP"),
		},
	}

	if cfg.DBConfig.DBName == "" {
		return nil, fmt.Errorf("BOOKING_DB_NAME is required")
	}
	if cfg.JWTSecret == "" && !cfg.IsDevelopment() {
		return nil, fmt.Errorf("BOOKING_JWT_SECRET is required outside development")
	}

	return cfg, nil
}
