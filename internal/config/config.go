package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/cypherlabdev/bet-analytics-service/internal/models"
)

// Config holds all configuration for bet-analytics-service
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Postgres  PostgresConfig  `mapstructure:"postgres"`
	Kafka     KafkaConfig     `mapstructure:"kafka"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Analytics AnalyticsConfig `mapstructure:"analytics"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// PostgresConfig holds ledger database configuration
type PostgresConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// KafkaConfig holds Kafka configuration
type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"` // Topic to consume from (ledger_changes)
	GroupID string   `mapstructure:"group_id"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// AnalyticsConfig holds engine thresholds and refresh cadence
type AnalyticsConfig struct {
	RollingWindowHours     int           `mapstructure:"rolling_window_hours"`
	TrendThreshold         float64       `mapstructure:"trend_threshold"`          // pp change for rising/falling
	VolatilityHighCutoff   float64       `mapstructure:"volatility_high_cutoff"`   // mean |delta| in pp
	VolatilityMediumCutoff float64       `mapstructure:"volatility_medium_cutoff"` // mean |delta| in pp
	ShiftThresholdMinute   float64       `mapstructure:"shift_threshold_minute"`   // pp, minute buckets
	ShiftThresholdHour     float64       `mapstructure:"shift_threshold_hour"`     // pp, hourly buckets
	RefreshInterval        time.Duration `mapstructure:"refresh_interval"`
	RefreshTimeout         time.Duration `mapstructure:"refresh_timeout"` // per-event budget inside a refresh pass
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, console
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("server.port", 8084)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)

	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.user", "bet_analytics")
	v.SetDefault("postgres.password", "")
	v.SetDefault("postgres.dbname", "wagering")
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.max_open_conns", 25)
	v.SetDefault("postgres.max_idle_conns", 5)
	v.SetDefault("postgres.conn_max_lifetime", 5*time.Minute)

	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.topic", "ledger_changes")
	v.SetDefault("kafka.group_id", "bet-analytics")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", 5*time.Minute)

	v.SetDefault("analytics.rolling_window_hours", 24)
	v.SetDefault("analytics.trend_threshold", 2.0)
	v.SetDefault("analytics.volatility_high_cutoff", 10.0)
	v.SetDefault("analytics.volatility_medium_cutoff", 5.0)
	v.SetDefault("analytics.shift_threshold_minute", 5.0)
	v.SetDefault("analytics.shift_threshold_hour", 10.0)
	v.SetDefault("analytics.refresh_interval", 2*time.Minute)
	v.SetDefault("analytics.refresh_timeout", 15*time.Second)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	// Read config file if provided
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Override with environment variables
	v.SetEnvPrefix("BET_ANALYTICS")
	v.AutomaticEnv()
	// Replace . with _ for environment variables
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Unmarshal to struct
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// ToEngineParams converts config to engine parameters
func (c *AnalyticsConfig) ToEngineParams() models.EngineParams {
	return models.EngineParams{
		RollingWindowHours:     c.RollingWindowHours,
		TrendThreshold:         c.TrendThreshold,
		VolatilityHighCutoff:   c.VolatilityHighCutoff,
		VolatilityMediumCutoff: c.VolatilityMediumCutoff,
		ShiftThresholdMinute:   c.ShiftThresholdMinute,
		ShiftThresholdHour:     c.ShiftThresholdHour,
	}
}
