package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Payment  PaymentConfig  `mapstructure:"payment"`
	Shipping ShippingConfig `mapstructure:"shipping"`
	Worker   WorkerConfig   `mapstructure:"worker"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// AppConfig holds application-level settings
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
	Debug       bool   `mapstructure:"debug"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
	// MaxBodyBytes limits accepted request bodies; oversized requests get 413.
	MaxBodyBytes int64 `mapstructure:"max_body_bytes"`
	// RateLimit is requests per minute per client IP; 0 disables limiting.
	RateLimit int `mapstructure:"rate_limit"`
	// AllowOrigins lists CORS origins; "*" allows any.
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// DatabaseConfig holds MongoDB connection settings
type DatabaseConfig struct {
	Host       string        `mapstructure:"host"`
	Port       int           `mapstructure:"port"`
	Name       string        `mapstructure:"name"`
	User       string        `mapstructure:"user"`
	Password   string        `mapstructure:"password"`
	AuthSource string        `mapstructure:"auth_source"`
	ReplicaSet string        `mapstructure:"replica_set"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// JWTConfig holds JWT token settings
type JWTConfig struct {
	Secret               string        `mapstructure:"secret"`
	AccessTokenDuration  time.Duration `mapstructure:"access_token_duration"`
	RefreshTokenDuration time.Duration `mapstructure:"refresh_token_duration"`
	Issuer               string        `mapstructure:"issuer"`
	BcryptCost           int           `mapstructure:"bcrypt_cost"`
}

// CacheConfig holds cache behaviour settings
type CacheConfig struct {
	Enabled    bool          `mapstructure:"enabled"`
	DefaultTTL time.Duration `mapstructure:"default_ttl"`
	KeyPrefix  string        `mapstructure:"key_prefix"`
}

// PaymentConfig holds payment gateway credentials
type PaymentConfig struct {
	SSLCommerz SSLCommerzConfig `mapstructure:"sslcommerz"`
	Bkash      BkashConfig      `mapstructure:"bkash"`
}

// SSLCommerzConfig holds SSLCommerz gateway settings
type SSLCommerzConfig struct {
	StoreID       string `mapstructure:"store_id"`
	StorePassword string `mapstructure:"store_password"`
	Sandbox       bool   `mapstructure:"sandbox"`
	SuccessURL    string `mapstructure:"success_url"`
	FailURL       string `mapstructure:"fail_url"`
	CancelURL     string `mapstructure:"cancel_url"`
}

// BkashConfig holds bKash gateway settings
type BkashConfig struct {
	AppKey      string `mapstructure:"app_key"`
	AppSecret   string `mapstructure:"app_secret"`
	Username    string `mapstructure:"username"`
	Password    string `mapstructure:"password"`
	Sandbox     bool   `mapstructure:"sandbox"`
	CallbackURL string `mapstructure:"callback_url"`
}

// ShippingConfig holds shipping cost defaults
type ShippingConfig struct {
	FreeShippingMinimum float64 `mapstructure:"free_shipping_minimum"`
	StandardRate        float64 `mapstructure:"standard_rate"`
	ExpressRate         float64 `mapstructure:"express_rate"`
	FallbackZone        string  `mapstructure:"fallback_zone"`
}

// WorkerConfig holds event dispatcher settings
type WorkerConfig struct {
	Concurrency  int           `mapstructure:"concurrency"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
	MaxRetries   int           `mapstructure:"max_retries"`
}

// MetricsConfig holds metrics settings
type MetricsConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	ServiceName string `mapstructure:"service_name"`
	Path        string `mapstructure:"path"`
}

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/velora/")

	v.SetEnvPrefix("VELORA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional; env vars and defaults are enough to boot.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "velora-commerce")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.debug", true)

	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.max_body_bytes", int64(10<<20))
	v.SetDefault("server.rate_limit", 300)
	v.SetDefault("server.allow_origins", []string{"*"})

	// Database defaults
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 27017)
	v.SetDefault("database.name", "velora_commerce")
	v.SetDefault("database.user", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.timeout", 10*time.Second)

	// Redis defaults
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	// JWT defaults
	v.SetDefault("jwt.secret", os.Getenv("JWT_SECRET"))
	v.SetDefault("jwt.access_token_duration", time.Hour)
	v.SetDefault("jwt.refresh_token_duration", 30*24*time.Hour)
	v.SetDefault("jwt.issuer", "velora-commerce")
	v.SetDefault("jwt.bcrypt_cost", 12)

	// Cache defaults
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.default_ttl", 5*time.Minute)
	v.SetDefault("cache.key_prefix", "velora:cache:")

	// Payment defaults
	v.SetDefault("payment.sslcommerz.sandbox", true)
	v.SetDefault("payment.bkash.sandbox", true)

	// Shipping defaults
	v.SetDefault("shipping.free_shipping_minimum", 5000.0)
	v.SetDefault("shipping.standard_rate", 60.0)
	v.SetDefault("shipping.express_rate", 150.0)
	v.SetDefault("shipping.fallback_zone", "Outside")

	// Worker defaults
	v.SetDefault("worker.concurrency", 4)
	v.SetDefault("worker.poll_interval", time.Second)
	v.SetDefault("worker.max_retries", 3)

	// Metrics defaults
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.service_name", "velora-commerce")
	v.SetDefault("metrics.path", "/metrics")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("database name is required")
	}
	if c.Server.RateLimit < 0 {
		return fmt.Errorf("server rate limit cannot be negative")
	}
	return nil
}

// MongoURI returns the MongoDB connection URI.
func (c *DatabaseConfig) MongoURI() string {
	var uri string
	if c.User != "" && c.Password != "" {
		uri = fmt.Sprintf("mongodb://%s:%s@%s:%d/%s", c.User, c.Password, c.Host, c.Port, c.Name)
	} else {
		uri = fmt.Sprintf("mongodb://%s:%d/%s", c.Host, c.Port, c.Name)
	}

	params := []string{}
	if c.AuthSource != "" {
		params = append(params, "authSource="+c.AuthSource)
	}
	if c.ReplicaSet != "" {
		params = append(params, "replicaSet="+c.ReplicaSet)
	}
	if len(params) > 0 {
		uri += "?" + strings.Join(params, "&")
	}
	return uri
}

// Addr returns the Redis host:port address.
func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
