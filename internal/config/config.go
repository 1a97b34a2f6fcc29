package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config is the full service configuration
type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	Tracing       TracingConfig       `toml:"tracing"`
	Business      BusinessConfig      `toml:"business"`
	Booking       BookingConfig       `toml:"booking"`
	Solapi        SolapiConfig        `toml:"solapi"`
	Notifications NotificationsConfig `toml:"notifications"`
	Twilio        TwilioConfig        `toml:"twilio"`
	Storage       StorageConfig       `toml:"storage"`
	Analytics     AnalyticsConfig     `toml:"analytics"`
	Events        EventsConfig        `toml:"events"`
	Scheduler     SchedulerConfig     `toml:"scheduler"`
	Auth          AuthConfig          `toml:"auth"`

	// Secrets never come from the TOML file
	Secrets Secrets `toml:"-"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
	BulkPoolSize    int32  `toml:"bulk_pool_size"`

	password string
}

// DSN builds the lib/pq connection string
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.password, d.DBName, d.SSLMode)
}

// URL builds the pgx connection string
func (d DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s&pool_max_conns=%d",
		d.User, d.password, d.Host, d.Port, d.DBName, d.SSLMode, max(d.BulkPoolSize, 1))
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

type TracingConfig struct {
	Enabled     bool    `toml:"enabled"`
	Endpoint    string  `toml:"endpoint"`
	Environment string  `toml:"environment"`
	SampleRatio float64 `toml:"sample_ratio"`
}

type BusinessConfig struct {
	Timezone string `toml:"timezone"`
	Name     string `toml:"name"`
}

// Location loads the business timezone
func (b BusinessConfig) Location() (*time.Location, error) {
	return time.LoadLocation(b.Timezone)
}

type BookingConfig struct {
	ReconcileLookbackDays int `toml:"reconcile_lookback_days"`
	LinkLookbackHours     int `toml:"link_lookback_hours"`
	LinkWindowMinutes     int `toml:"link_window_minutes"`
}

type SolapiConfig struct {
	BaseURL string `toml:"base_url"`
	Sender  string `toml:"sender"`
	Timeout int    `toml:"timeout"`
}

type NotificationsConfig struct {
	Enabled  bool   `toml:"enabled"`
	Provider string `toml:"provider"` // "solapi" | "twilio"
}

type TwilioConfig struct {
	From string `toml:"from"`
}

type StorageConfig struct {
	URL     string `toml:"url"`
	Bucket  string `toml:"bucket"`
	Timeout int    `toml:"timeout"`
}

type AnalyticsConfig struct {
	Enabled         bool   `toml:"enabled"`
	PropertyID      string `toml:"property_id"`
	CredentialsFile string `toml:"credentials_file"`
	BaseURL         string `toml:"base_url"`
	Timeout         int    `toml:"timeout"`
}

type EventsConfig struct {
	Enabled  bool   `toml:"enabled"`
	Exchange string `toml:"exchange"`
}

type SchedulerConfig struct {
	Enabled bool   `toml:"enabled"`
	Spec    string `toml:"spec"`
	// Accept x-vercel-cron without the secret; only behind a proxy that strips it
	TrustPlatformHeader bool `toml:"trust_platform_header"`
}

type AuthConfig struct {
	TokenTTLMinutes int    `toml:"token_ttl_minutes"`
	Issuer          string `toml:"issuer"`
}

// Secrets are read from the environment (optionally seeded from .env)
type Secrets struct {
	DatabasePassword  string `envconfig:"DATABASE_PASSWORD"`
	SolapiAPIKey      string `envconfig:"SOLAPI_API_KEY"`
	SolapiAPISecret   string `envconfig:"SOLAPI_API_SECRET"`
	SolapiSender      string `envconfig:"SOLAPI_SENDER"`
	CronSecret        string `envconfig:"CRON_SECRET"`
	JWTSecret         string `envconfig:"JWT_SECRET"`
	TwilioAccountSID  string `envconfig:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken   string `envconfig:"TWILIO_AUTH_TOKEN"`
	StorageServiceKey string `envconfig:"STORAGE_SERVICE_KEY"`
	AMQPURL           string `envconfig:"AMQP_URL"`
}

var (
	// ErrInvalidConfig is returned when validation fails
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Load reads the TOML file, overlays secrets from .env/environment and validates the result
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	if err := loadSecrets(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func loadSecrets(cfg *Config) error {
	// .env is optional; real deployments inject variables directly
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	if err := envconfig.Process("MAS", &cfg.Secrets); err != nil {
		return fmt.Errorf("process env: %w", err)
	}

	cfg.Database.password = cfg.Secrets.DatabasePassword
	if cfg.Secrets.SolapiSender != "" {
		cfg.Solapi.Sender = cfg.Secrets.SolapiSender
	}
	return nil
}

// Validate checks required values and ranges
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port out of range", ErrInvalidConfig)
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: database host and dbname are required", ErrInvalidConfig)
	}
	if _, err := c.Business.Location(); err != nil {
		return fmt.Errorf("%w: business.timezone: %v", ErrInvalidConfig, err)
	}
	if c.Metrics.Enabled && c.Metrics.Path == "" {
		return fmt.Errorf("%w: metrics.path is required when metrics are enabled", ErrInvalidConfig)
	}
	if c.Secrets.JWTSecret == "" {
		return fmt.Errorf("%w: MAS_JWT_SECRET is required", ErrInvalidConfig)
	}
	if c.Secrets.CronSecret == "" {
		return fmt.Errorf("%w: MAS_CRON_SECRET is required", ErrInvalidConfig)
	}
	if c.Notifications.Enabled {
		switch c.Notifications.Provider {
		case "solapi", "twilio":
		default:
			return fmt.Errorf("%w: notifications.provider must be solapi or twilio", ErrInvalidConfig)
		}
	}
	if c.Events.Enabled && c.Secrets.AMQPURL == "" {
		return fmt.Errorf("%w: MAS_AMQP_URL is required when events are enabled", ErrInvalidConfig)
	}
	if c.Scheduler.Enabled && c.Scheduler.Spec == "" {
		return fmt.Errorf("%w: scheduler.spec is required when the scheduler is enabled", ErrInvalidConfig)
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    60,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    20,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
			BulkPoolSize:    4,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			ServiceName: "mas-booking",
			Path:        "/metrics",
		},
		Tracing:  TracingConfig{Endpoint: "localhost:4317", Environment: "dev", SampleRatio: 1},
		Business: BusinessConfig{Timezone: "Asia/Seoul", Name: "MASGOLF"},
		Booking: BookingConfig{
			ReconcileLookbackDays: 7,
			LinkLookbackHours:     24,
			LinkWindowMinutes:     30,
		},
		Solapi:        SolapiConfig{BaseURL: "https://api.solapi.com", Timeout: 30},
		Notifications: NotificationsConfig{Provider: "solapi"},
		Storage:       StorageConfig{Bucket: "blog-images", Timeout: 30},
		Analytics:     AnalyticsConfig{BaseURL: "https://analyticsdata.googleapis.com", Timeout: 30},
		Events:        EventsConfig{Exchange: "mas.events"},
		Scheduler:     SchedulerConfig{Spec: "*/10 * * * *"},
		Auth:          AuthConfig{TokenTTLMinutes: 720, Issuer: "mas-booking"},
	}
}
