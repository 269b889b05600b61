package config

const (
	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvAuthBaseURL         = "AUTH_BASE_URL"
	EnvUserBaseURL         = "USER_BASE_URL"
	EnvSlotBaseURL         = "SLOT_BASE_URL"
	EnvBookingBaseURL      = "BOOKING_BASE_URL"
	EnvNotificationBaseURL = "NOTIFICATION_BASE_URL"
	EnvOwnerBaseURL        = "OWNER_BASE_URL"
	EnvVehicleBaseURL      = "VEHICLE_BASE_URL"

	EnvUpstreamTimeout = "UPSTREAM_TIMEOUT"

	EnvMinioEndpoint  = "MINIO_ENDPOINT"
	EnvMinioAccessKey = "MINIO_ACCESS_KEY"
	EnvMinioSecretKey = "MINIO_SECRET_KEY"
	EnvMinioBucket    = "MINIO_BUCKET"
	EnvMinioUseSSL    = "MINIO_USE_SSL"
	EnvMinioPublicURL = "MINIO_PUBLIC_URL"

	EnvKafkaBrokers = "KAFKA_BROKERS"
	EnvKafkaTopic   = "KAFKA_TOPIC"

	EnvLoginRateLimit  = "LOGIN_RATE_LIMIT"
	EnvLoginRateWindow = "LOGIN_RATE_WINDOW"

	EnvCookieSecure = "COOKIE_SECURE"

	EnvRequestTimeout  = "REQUEST_TIMEOUT"
	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"
)
