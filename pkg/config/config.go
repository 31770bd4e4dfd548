package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database      DatabaseConfig
	Redis         RedisConfig
	JWT           JWTConfig
	CORS          CORSConfig
	Log           LogConfig
	Dashboard     DashboardConfig
	Notifications NotificationsConfig
	Reports       ReportsConfig
	Webhooks      WebhooksConfig
	Scheduler     SchedulerConfig
	Integrations  IntegrationsConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host      string
	Port      int
	Password  string
	DB        int
	PoolSize  int
	KeyPrefix string
}

type JWTConfig struct {
	Secret            string
	Expiration        time.Duration
	RefreshExpiration time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// DashboardConfig governs dashboard cache tuning.
type DashboardConfig struct {
	CacheTTL time.Duration
}

// NotificationsConfig configures template caching and delivery workers.
type NotificationsConfig struct {
	TemplateCacheTTL  time.Duration
	SendGridAPIKey    string
	FromAddress       string
	FromName          string
	WorkerConcurrency int
	WorkerRetries     int
}

// ReportsConfig configures report generation and download links.
type ReportsConfig struct {
	StorageDir        string
	SignedURLSecret   string
	SignedURLTTL      time.Duration
	Retention         time.Duration
	CleanupInterval   time.Duration
	WorkerConcurrency int
	WorkerRetries     int
}

// WebhooksConfig configures outbound webhook delivery.
type WebhooksConfig struct {
	Timeout           time.Duration
	WorkerConcurrency int
	WorkerRetries     int
}

// SchedulerConfig sets how often due notifications and reports are promoted.
type SchedulerConfig struct {
	Enabled  bool
	Interval time.Duration
}

// IntegrationsConfig points the calendar, meeting and payment providers at their hosts.
type IntegrationsConfig struct {
	CalendarBaseURL string
	MeetingsBaseURL string
	PaymentsBaseURL string
	CheckoutTTL     time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isMissingFile(err) {
			return nil, err
		}
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:      v.GetString("REDIS_HOST"),
		Port:      v.GetInt("REDIS_PORT"),
		Password:  v.GetString("REDIS_PASSWORD"),
		DB:        v.GetInt("REDIS_DB"),
		PoolSize:  v.GetInt("REDIS_POOL_SIZE"),
		KeyPrefix: v.GetString("REDIS_KEY_PREFIX"),
	}

	cfg.JWT = JWTConfig{
		Secret:            v.GetString("JWT_SECRET"),
		Expiration:        parseDuration(v.GetString("JWT_EXPIRATION"), 24*time.Hour),
		RefreshExpiration: parseDuration(v.GetString("REFRESH_TOKEN_EXPIRATION"), 7*24*time.Hour),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Dashboard = DashboardConfig{
		CacheTTL: parseDuration(v.GetString("DASHBOARD_CACHE_TTL"), 5*time.Minute),
	}

	cfg.Notifications = NotificationsConfig{
		TemplateCacheTTL:  parseDuration(v.GetString("NOTIFICATION_TEMPLATE_CACHE_TTL"), 30*time.Minute),
		SendGridAPIKey:    v.GetString("SENDGRID_API_KEY"),
		FromAddress:       v.GetString("NOTIFICATION_FROM_ADDRESS"),
		FromName:          v.GetString("NOTIFICATION_FROM_NAME"),
		WorkerConcurrency: v.GetInt("NOTIFICATION_WORKER_CONCURRENCY"),
		WorkerRetries:     v.GetInt("NOTIFICATION_WORKER_RETRIES"),
	}

	cfg.Reports = ReportsConfig{
		StorageDir:        v.GetString("REPORTS_STORAGE_DIR"),
		SignedURLSecret:   v.GetString("REPORTS_SIGNED_URL_SECRET"),
		SignedURLTTL:      parseDuration(v.GetString("REPORTS_SIGNED_URL_TTL"), 24*time.Hour),
		Retention:         parseDuration(v.GetString("REPORTS_RETENTION"), 72*time.Hour),
		CleanupInterval:   parseDuration(v.GetString("REPORTS_CLEANUP_INTERVAL"), time.Hour),
		WorkerConcurrency: v.GetInt("REPORTS_WORKER_CONCURRENCY"),
		WorkerRetries:     v.GetInt("REPORTS_WORKER_RETRIES"),
	}

	cfg.Webhooks = WebhooksConfig{
		Timeout:           parseDuration(v.GetString("WEBHOOK_TIMEOUT"), 10*time.Second),
		WorkerConcurrency: v.GetInt("WEBHOOK_WORKER_CONCURRENCY"),
		WorkerRetries:     v.GetInt("WEBHOOK_WORKER_RETRIES"),
	}

	cfg.Scheduler = SchedulerConfig{
		Enabled:  v.GetBool("ENABLE_SCHEDULER"),
		Interval: parseDuration(v.GetString("SCHEDULER_INTERVAL"), 30*time.Second),
	}

	cfg.Integrations = IntegrationsConfig{
		CalendarBaseURL: v.GetString("CALENDAR_BASE_URL"),
		MeetingsBaseURL: v.GetString("MEETINGS_BASE_URL"),
		PaymentsBaseURL: v.GetString("PAYMENTS_BASE_URL"),
		CheckoutTTL:     parseDuration(v.GetString("CHECKOUT_SESSION_TTL"), 30*time.Minute),
	}

	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "lingua_center")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_POOL_SIZE", 10)
	v.SetDefault("REDIS_KEY_PREFIX", "lingua")

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "24h")
	v.SetDefault("REFRESH_TOKEN_EXPIRATION", "168h")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("DASHBOARD_CACHE_TTL", "5m")

	v.SetDefault("NOTIFICATION_TEMPLATE_CACHE_TTL", "30m")
	v.SetDefault("SENDGRID_API_KEY", "")
	v.SetDefault("NOTIFICATION_FROM_ADDRESS", "no-reply@lingua-center.local")
	v.SetDefault("NOTIFICATION_FROM_NAME", "Lingua Center")
	v.SetDefault("NOTIFICATION_WORKER_CONCURRENCY", 2)
	v.SetDefault("NOTIFICATION_WORKER_RETRIES", 3)

	v.SetDefault("REPORTS_STORAGE_DIR", "./exports")
	v.SetDefault("REPORTS_SIGNED_URL_SECRET", "dev_reports_secret")
	v.SetDefault("REPORTS_SIGNED_URL_TTL", "24h")
	v.SetDefault("REPORTS_RETENTION", "72h")
	v.SetDefault("REPORTS_CLEANUP_INTERVAL", "1h")
	v.SetDefault("REPORTS_WORKER_CONCURRENCY", 1)
	v.SetDefault("REPORTS_WORKER_RETRIES", 3)

	v.SetDefault("WEBHOOK_TIMEOUT", "10s")
	v.SetDefault("WEBHOOK_WORKER_CONCURRENCY", 2)
	v.SetDefault("WEBHOOK_WORKER_RETRIES", 5)

	v.SetDefault("ENABLE_SCHEDULER", true)
	v.SetDefault("SCHEDULER_INTERVAL", "30s")

	v.SetDefault("CALENDAR_BASE_URL", "https://calendar.sandbox.local")
	v.SetDefault("MEETINGS_BASE_URL", "https://meet.sandbox.local")
	v.SetDefault("PAYMENTS_BASE_URL", "https://pay.sandbox.local")
	v.SetDefault("CHECKOUT_SESSION_TTL", "30m")
}

func isMissingFile(err error) bool {
	return strings.Contains(err.Error(), "no such file or directory")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
