package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type AppConfig struct {
	API      *APIConfig
	Gin      *GinConfig
	Postgres *PostgresConfig
	Admin    *AdminConfig
	Redis    *RedisConfig
	RabbitMQ *RabbitMQConfig
	Tracing  *TracingConfig
	Raffle   *RaffleConfig
}

type APIConfig struct {
	Environment        string
	Port               string
	BaseURL            string   `mapstructure:"base_url"`
	AllowedCORSDomains []string `mapstructure:"allowed_cors_domains"`
}

type GinConfig struct {
	Mode string
}

type PostgresConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DB              string
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// AdminConfig holds the shared admin secret. KeyHash is a bcrypt hash and
// takes precedence over the plain Key when both are set.
type AdminConfig struct {
	Key     string
	KeyHash string `mapstructure:"key_hash"`
}

type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

type RabbitMQConfig struct {
	Enabled  bool
	URL      string
	Exchange string
}

type TracingConfig struct {
	Enabled     bool
	Endpoint    string
	ServiceName string `mapstructure:"service_name"`
}

type RaffleConfig struct {
	MaxQty          int    `mapstructure:"max_qty"`
	PaymentProvider string `mapstructure:"payment_provider"`
}

func newViper(path string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("raffle.max_qty", 200)
	v.SetDefault("raffle.payment_provider", "mock")
	v.SetDefault("redis.ttl", 24*time.Hour)
	v.SetDefault("rabbitmq.exchange", "loddgo.events")
	v.SetDefault("tracing.service_name", "loddgo-api")

	return v
}

func decode(v *viper.Viper) (*AppConfig, error) {
	conf := &AppConfig{}
	if err := v.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("v.Unmarshal -> %w", err)
	}

	return conf, nil
}

// Load reads the YAML file at path. Any key can be overridden from the
// environment by upper-casing it and replacing dots with underscores, for
// example POSTGRES_HOST or ADMIN_KEY.
func Load(path string) (*AppConfig, error) {
	v := newViper(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("v.ReadInConfig -> %w", err)
	}

	return decode(v)
}

// Watch calls onChange with the reloaded configuration every time the file
// at path is written. Reload errors are logged and the change is skipped.
func Watch(path string, onChange func(conf *AppConfig)) error {
	v := newViper(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("v.ReadInConfig -> %w", err)
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		conf, err := decode(v)
		if err != nil {
			zap.L().Error("failed to reload config", zap.String("file", e.Name), zap.Error(err))
			return
		}

		zap.L().Info("config reloaded", zap.String("file", e.Name), zap.String("op", e.Op.String()))
		onChange(conf)
	})
	v.WatchConfig()

	return nil
}
