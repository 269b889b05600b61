package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"garageportal/pkg/logger"
)

// Upstreams holds one base URL per backend the portal fetches from. Each
// upstream returns the shared {status, results} envelope.
type Upstreams struct {
	Auth         string
	User         string
	Slot         string
	Booking      string
	Notification string
	Owner        string
	Vehicle      string
}

type Config struct {
	Port     string
	LogLevel string

	Upstreams       Upstreams
	UpstreamTimeout time.Duration

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
	MinioPublicURL string

	KafkaBrokers []string
	KafkaTopic   string

	LoginRateLimit  int
	LoginRateWindow time.Duration

	CookieSecure bool

	RequestTimeout  time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	Log *logger.Logger
}

func Load(serviceName string) *Config {
	cfg := &Config{
		Port:     getEnvStr(EnvPort, DefaultPort),
		LogLevel: getEnvStr(EnvLogLevel, DefaultLogLevel),

		Upstreams: Upstreams{
			Auth:         getEnvStr(EnvAuthBaseURL, DefaultAuthBaseURL),
			User:         getEnvStr(EnvUserBaseURL, DefaultUserBaseURL),
			Slot:         getEnvStr(EnvSlotBaseURL, DefaultSlotBaseURL),
			Booking:      getEnvStr(EnvBookingBaseURL, DefaultBookingBaseURL),
			Notification: getEnvStr(EnvNotificationBaseURL, DefaultNotificationBaseURL),
			Owner:        getEnvStr(EnvOwnerBaseURL, DefaultOwnerBaseURL),
			Vehicle:      getEnvStr(EnvVehicleBaseURL, DefaultVehicleBaseURL),
		},
		UpstreamTimeout: getEnvDuration(EnvUpstreamTimeout, DefaultUpstreamTimeout),

		MinioEndpoint:  getEnvStr(EnvMinioEndpoint, DefaultMinioEndpoint),
		MinioAccessKey: getEnvStr(EnvMinioAccessKey, ""),
		MinioSecretKey: getEnvStr(EnvMinioSecretKey, ""),
		MinioBucket:    getEnvStr(EnvMinioBucket, DefaultMinioBucket),
		MinioUseSSL:    getEnvBool(EnvMinioUseSSL, false),
		MinioPublicURL: getEnvStr(EnvMinioPublicURL, ""),

		KafkaBrokers: getEnvList(EnvKafkaBrokers),
		KafkaTopic:   getEnvStr(EnvKafkaTopic, DefaultKafkaTopic),

		LoginRateLimit:  getEnvNum(EnvLoginRateLimit, DefaultLoginRateLimit),
		LoginRateWindow: getEnvDuration(EnvLoginRateWindow, DefaultLoginRateWindow),

		CookieSecure: getEnvBool(EnvCookieSecure, false),

		RequestTimeout:  getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),
	}

	cfg.Log = logger.New(logger.Config{
		Level:     cfg.LogLevel,
		Format:    logger.JSON,
		AddSource: true,
		Service:   serviceName,
	})

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

func (cfg *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	for name, url := range map[string]string{
		"Auth":         cfg.Upstreams.Auth,
		"User":         cfg.Upstreams.User,
		"Slot":         cfg.Upstreams.Slot,
		"Booking":      cfg.Upstreams.Booking,
		"Notification": cfg.Upstreams.Notification,
		"Owner":        cfg.Upstreams.Owner,
		"Vehicle":      cfg.Upstreams.Vehicle,
	} {
		if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
			errs = append(errs, fmt.Sprintf("%s base URL must start with http:// or https://, got: %s", name, url))
		}
	}

	if cfg.UpstreamTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("UpstreamTimeout must be positive, got: %s", cfg.UpstreamTimeout))
	}
	if cfg.RequestTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("RequestTimeout must be positive, got: %s", cfg.RequestTimeout))
	}
	if cfg.ReadTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("ReadTimeout must be positive, got: %s", cfg.ReadTimeout))
	}
	if cfg.WriteTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("WriteTimeout must be positive, got: %s", cfg.WriteTimeout))
	}
	if cfg.IdleTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("IdleTimeout must be positive, got: %s", cfg.IdleTimeout))
	}
	if cfg.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("ShutdownTimeout must be positive, got: %s", cfg.ShutdownTimeout))
	}

	if cfg.LoginRateLimit <= 0 {
		errs = append(errs, fmt.Sprintf("LoginRateLimit must be positive, got: %d", cfg.LoginRateLimit))
	}
	if cfg.LoginRateWindow <= 0 {
		errs = append(errs, fmt.Sprintf("LoginRateWindow must be positive, got: %s", cfg.LoginRateWindow))
	}

	if cfg.MinioEndpoint == "" {
		errs = append(errs, "MinioEndpoint cannot be empty")
	}
	if cfg.MinioBucket == "" {
		errs = append(errs, "MinioBucket cannot be empty")
	}

	if len(errs) > 0 {
		msg := "Configuration validation failed:\n"
		for i, e := range errs {
			msg += fmt.Sprintf("  %d. %s\n", i+1, e)
		}
		return fmt.Errorf("%s", msg)
	}

	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"port", cfg.Port,
		"auth_base_url", cfg.Upstreams.Auth,
		"user_base_url", cfg.Upstreams.User,
		"slot_base_url", cfg.Upstreams.Slot,
		"booking_base_url", cfg.Upstreams.Booking,
		"notification_base_url", cfg.Upstreams.Notification,
		"owner_base_url", cfg.Upstreams.Owner,
		"vehicle_base_url", cfg.Upstreams.Vehicle,
		"upstream_timeout", cfg.UpstreamTimeout,
		"minio_endpoint", cfg.MinioEndpoint,
		"minio_bucket", cfg.MinioBucket,
		"minio_credentials_set", cfg.MinioAccessKey != "" && cfg.MinioSecretKey != "",
		"kafka_brokers", cfg.KafkaBrokers,
		"kafka_topic", cfg.KafkaTopic,
		"login_rate_limit", cfg.LoginRateLimit,
		"login_rate_window", cfg.LoginRateWindow,
		"request_timeout", cfg.RequestTimeout,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
	)
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
