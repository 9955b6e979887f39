package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Env            string
	HTTP           HTTPConfig
	Postgres       PostgresConfig
	Redis          RedisConfig
	Kafka          KafkaConfig
	RBAC           RBACConfig
	JWTSecret      string
	PendingTTL     time.Duration // PendingTTL is how long a pending approvals list stays cached.
	MigrationsPath string
}

type HTTPConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration // ShutdownTimeout bounds how long in-flight requests may drain.
}

// PostgresConfig holds the connection details of the PostgreSQL database.
type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		p.Host, p.User, p.Password, p.DBName, p.Port, p.SSLMode,
	)
}

// URL is the form golang-migrate expects.
func (p PostgresConfig) URL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		p.User, p.Password, p.Host, p.Port, p.DBName, p.SSLMode,
	)
}

type RedisConfig struct {
	Addr string
}

type KafkaConfig struct {
	Broker       string
	GroupID      string
	PollInterval time.Duration
}

type RBACConfig struct {
	ModelPath  string
	PolicyPath string
}

// Load reads .env (when present), an optional config file named by
// CONFIG_PATH and the environment, in increasing order of precedence.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := &Config{
		Env: v.GetString("APP_ENV"),
		HTTP: HTTPConfig{
			Port:            v.GetString("PORT"),
			ReadTimeout:     v.GetDuration("HTTP_READ_TIMEOUT"),
			WriteTimeout:    v.GetDuration("HTTP_WRITE_TIMEOUT"),
			IdleTimeout:     v.GetDuration("HTTP_IDLE_TIMEOUT"),
			ShutdownTimeout: v.GetDuration("HTTP_SHUTDOWN_TIMEOUT"),
		},
		Postgres: PostgresConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		Redis: RedisConfig{
			Addr: v.GetString("REDIS_ADDR"),
		},
		Kafka: KafkaConfig{
			Broker:       v.GetString("KAFKA_BROKER"),
			GroupID:      v.GetString("KAFKA_GROUP_ID"),
			PollInterval: v.GetDuration("OUTBOX_POLL_INTERVAL"),
		},
		RBAC: RBACConfig{
			ModelPath:  v.GetString("RBAC_MODEL_PATH"),
			PolicyPath: v.GetString("RBAC_POLICY_PATH"),
		},
		JWTSecret:      v.GetString("JWT_SECRET"),
		PendingTTL:     v.GetDuration("PENDING_CACHE_TTL"),
		MigrationsPath: v.GetString("MIGRATIONS_PATH"),
	}

	if cfg.Postgres.Host == "" {
		return nil, errors.New("DB_HOST is required")
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "local")
	v.SetDefault("PORT", "3000")
	v.SetDefault("HTTP_READ_TIMEOUT", 5*time.Second)
	v.SetDefault("HTTP_WRITE_TIMEOUT", 10*time.Second)
	v.SetDefault("HTTP_IDLE_TIMEOUT", 60*time.Second)
	v.SetDefault("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second)
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("KAFKA_GROUP_ID", "out-of-office-events")
	v.SetDefault("OUTBOX_POLL_INTERVAL", 3*time.Second)
	v.SetDefault("RBAC_MODEL_PATH", "internal/rbac/infra/model.conf")
	v.SetDefault("RBAC_POLICY_PATH", "internal/rbac/infra/policy.csv")
	v.SetDefault("PENDING_CACHE_TTL", 5*time.Minute)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
}
