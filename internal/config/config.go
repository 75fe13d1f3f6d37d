package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application settings.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Checkin  CheckinConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string
	ReadTimeout  int
	WriteTimeout int
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig holds the unified Redis connection settings.
// Supported modes: single, sentinel, cluster.
type RedisConfig struct {
	// Mode: "single" (default), "sentinel" or "cluster".
	Mode string `mapstructure:"mode"`

	// Addrs: list of host:port addresses, used by all modes. For "single"
	// the first address wins.
	Addrs []string `mapstructure:"addrs"`

	// Addr: alternative single address for mode "single"; used when Addrs
	// is empty.
	Addr string `mapstructure:"addr"`

	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`

	// MasterName: Redis master name (sentinel mode only).
	MasterName string `mapstructure:"master_name"`

	// MaxRetries: reconnect attempts (-1 = infinite). Default 0.
	MaxRetries int `mapstructure:"max_retries"`

	// MinRetryBackoff / MaxRetryBackoff in milliseconds.
	MinRetryBackoff int `mapstructure:"min_retry_backoff"`
	MaxRetryBackoff int `mapstructure:"max_retry_backoff"`
}

// JWTConfig holds token verification settings. Tokens are issued by the
// external identity service; this API only verifies them.
type JWTConfig struct {
	Secret string `mapstructure:"secret"`
}

// CheckinConfig holds the check-in domain settings.
type CheckinConfig struct {
	// Timezone the calendar day is truncated in (the clinic's zone, not the
	// server's). IANA name, e.g. "America/Sao_Paulo".
	Timezone string `mapstructure:"timezone"`

	// ActiveQuizCacheTTL / TodayCacheTTL control the Redis fast paths.
	ActiveQuizCacheTTL time.Duration `mapstructure:"active_quiz_cache_ttl"`
	TodayCacheTTL      time.Duration `mapstructure:"today_cache_ttl"`

	// SeedBaseline makes the API seed the baseline quizzes at startup when
	// a purpose slot has no active quiz.
	SeedBaseline bool `mapstructure:"seed_baseline"`

	// SubmitRateLimit / SubmitRateWindowSec bound submissions per client IP.
	SubmitRateLimit     int `mapstructure:"submit_rate_limit"`
	SubmitRateWindowSec int `mapstructure:"submit_rate_window_sec"`
}

// PostgresConnectionString builds the PostgreSQL DSN.
func (d *DatabaseConfig) PostgresConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// Location resolves the configured timezone, falling back to UTC.
func (c *CheckinConfig) Location() *time.Location {
	if c.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Printf("Unknown timezone %q, falling back to UTC: %v", c.Timezone, err)
		return time.UTC
	}
	return loc
}

// Load reads configuration from an optional yaml file plus explicitly bound
// environment variables; env vars win.
func Load(configPath string) (*Config, error) {
	vip := viper.New() // fresh instance, no global viper state

	vip.SetDefault("server.port", "8080")
	vip.SetDefault("server.readtimeout", 15)
	vip.SetDefault("server.writetimeout", 15)
	vip.SetDefault("checkin.timezone", "America/Sao_Paulo")
	vip.SetDefault("checkin.active_quiz_cache_ttl", 5*time.Minute)
	vip.SetDefault("checkin.today_cache_ttl", 10*time.Minute)
	vip.SetDefault("checkin.seed_baseline", true)
	vip.SetDefault("checkin.submit_rate_limit", 10)
	vip.SetDefault("checkin.submit_rate_window_sec", 60)

	vip.BindEnv("database.host", "DATABASE_HOST")
	vip.BindEnv("database.port", "DATABASE_PORT")
	vip.BindEnv("database.user", "DATABASE_USER")
	vip.BindEnv("database.password", "DATABASE_PASSWORD")
	vip.BindEnv("database.dbname", "DATABASE_DBNAME")
	vip.BindEnv("database.sslmode", "DATABASE_SSLMODE")

	vip.BindEnv("redis.mode", "REDIS_MODE")
	vip.BindEnv("redis.addrs", "REDIS_ADDRS")
	vip.BindEnv("redis.addr", "REDIS_ADDR")
	vip.BindEnv("redis.password", "REDIS_PASSWORD")
	vip.BindEnv("redis.db", "REDIS_DB")
	vip.BindEnv("redis.master_name", "REDIS_MASTER_NAME")

	vip.BindEnv("jwt.secret", "JWT_SECRET")

	vip.BindEnv("server.port", "SERVER_PORT")

	vip.BindEnv("checkin.timezone", "CHECKIN_TIMEZONE")
	vip.BindEnv("checkin.seed_baseline", "CHECKIN_SEED_BASELINE")
	vip.BindEnv("checkin.submit_rate_limit", "CHECKIN_SUBMIT_RATE_LIMIT")
	vip.BindEnv("checkin.submit_rate_window_sec", "CHECKIN_SUBMIT_RATE_WINDOW_SEC")

	if configPath != "" {
		vip.SetConfigFile(configPath)
		if err := vip.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); ok {
				log.Printf("Config file %q not found, using environment variables/defaults.", configPath)
			} else {
				log.Printf("Warning: failed to read config file %q: %v", configPath, err)
			}
		}
	}

	var cfg Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if os.Getenv("GIN_MODE") != "release" {
		log.Printf("--- Loaded configuration ---")
		log.Printf("Database Host: %s", cfg.Database.Host)
		log.Printf("Database Name: %s", cfg.Database.DBName)
		log.Printf("Redis Addr: %s", cfg.Redis.Addr)
		log.Printf("Redis Mode: %s", cfg.Redis.Mode)
		log.Printf("Server Port: %s", cfg.Server.Port)
		log.Printf("Check-in Timezone: %s", cfg.Checkin.Timezone)
		log.Printf("JWT Secret Set: %t", cfg.JWT.Secret != "")
		log.Printf("----------------------------")
	}

	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT secret is required in config (check JWT_SECRET env var)")
	}
	if cfg.Database.Host == "" || cfg.Database.DBName == "" || cfg.Database.User == "" {
		return nil, fmt.Errorf("database configuration (host, dbname, user) is incomplete in config (check DATABASE_HOST, DATABASE_DBNAME, DATABASE_USER env vars)")
	}
	if os.Getenv("GIN_MODE") == "release" && cfg.Database.Password == "" {
		return nil, fmt.Errorf("database password is required in release mode (check DATABASE_PASSWORD env var)")
	}

	return &cfg, nil
}
