package config

import "time"

const (
	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultAuthBaseURL         = "http://localhost:8080/user/api/v1/auth"
	DefaultUserBaseURL         = "http://localhost:8080/user/api/v1/user"
	DefaultSlotBaseURL         = "http://localhost:8080/garage/api/v1/garage/service/slot"
	DefaultBookingBaseURL      = "http://localhost:9090/api/v1/garage/booking/request"
	DefaultNotificationBaseURL = "http://localhost:8080/notification/api/v1/notification"
	DefaultOwnerBaseURL        = "http://localhost:9093/api/v1/vehicle/account"
	DefaultVehicleBaseURL      = "http://localhost:8080/vehicle-owner/api/v1/vehicle"

	DefaultUpstreamTimeout = 10 * time.Second

	DefaultMinioEndpoint = "localhost:9000"
	DefaultMinioBucket   = "garage-vehicles"

	DefaultKafkaTopic = "garage.portal.actions"

	DefaultLoginRateLimit  = 10
	DefaultLoginRateWindow = 1 * time.Minute

	DefaultRequestTimeout  = 30 * time.Second
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
)
