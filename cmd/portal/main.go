package main

import (
	"github.com/joho/godotenv"

	authhandler "garageportal/internal/auth/handler"
	authservice "garageportal/internal/auth/service"
	authvalidator "garageportal/internal/auth/validator"
	healthhandler "garageportal/internal/health/handler"
	notificationhandler "garageportal/internal/notifications/handler"
	notificationservice "garageportal/internal/notifications/service"
	profilehandler "garageportal/internal/profile/handler"
	profileservice "garageportal/internal/profile/service"
	profilevalidator "garageportal/internal/profile/validator"
	requesthandler "garageportal/internal/requests/handler"
	requestservice "garageportal/internal/requests/service"
	slothandler "garageportal/internal/slots/handler"
	slotservice "garageportal/internal/slots/service"
	slotvalidator "garageportal/internal/slots/validator"
	userhandler "garageportal/internal/users/handler"
	userservice "garageportal/internal/users/service"
	vehiclehandler "garageportal/internal/vehicles/handler"
	vehicleservice "garageportal/internal/vehicles/service"
	"garageportal/internal/vehicles/upload"
	vehiclevalidator "garageportal/internal/vehicles/validator"
	"garageportal/pkg/app"
	"garageportal/pkg/client"
	"garageportal/pkg/config"
	"garageportal/pkg/events"
	"garageportal/pkg/session"
)

const ServiceName = "garage-portal"

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load(ServiceName)
	cfg.Log.Info("Starting garage portal")

	clients := initClients(cfg)
	publisher := events.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, ServiceName, cfg.Log)

	store := &session.TokenStore{Secure: cfg.CookieSecure}
	cache := session.NewCache()

	serverApp := app.NewApplication()
	serverApp.SetApp(cfg, store, cache, publisher,
		healthhandler.NewHealthHandler(clients.auth, cfg.Log),
		initAuthHandler(cfg, clients, publisher, store, cache),
		initSlotHandler(cfg, clients, publisher),
		initRequestHandler(cfg, clients, publisher),
		initVehicleHandler(cfg, clients, publisher),
		initUserHandler(cfg, clients, publisher),
		initNotificationHandler(cfg, clients),
		initProfileHandler(cfg, clients, publisher),
	)
	serverApp.Run()
}

type upstreamClients struct {
	auth          *client.AuthClient
	users         *client.UserClient
	slots         *client.SlotClient
	bookings      *client.BookingClient
	notifications *client.NotificationClient
	owners        *client.OwnerClient
	vehicles      *client.VehicleClient
}

func initClients(cfg *config.Config) *upstreamClients {
	return &upstreamClients{
		auth:          client.NewAuthClient(cfg.Upstreams.Auth, cfg.UpstreamTimeout),
		users:         client.NewUserClient(cfg.Upstreams.User, cfg.UpstreamTimeout),
		slots:         client.NewSlotClient(cfg.Upstreams.Slot, cfg.UpstreamTimeout),
		bookings:      client.NewBookingClient(cfg.Upstreams.Booking, cfg.UpstreamTimeout),
		notifications: client.NewNotificationClient(cfg.Upstreams.Notification, cfg.UpstreamTimeout),
		owners:        client.NewOwnerClient(cfg.Upstreams.Owner, cfg.UpstreamTimeout),
		vehicles:      client.NewVehicleClient(cfg.Upstreams.Vehicle, cfg.UpstreamTimeout),
	}
}

func initAuthHandler(cfg *config.Config, c *upstreamClients, publisher *events.Publisher, store *session.TokenStore, cache *session.Cache) *authhandler.AuthHandler {
	authSvc := authservice.NewAuthService(c.auth, authvalidator.NewAuthValidator(cfg.Log), publisher, cfg.Log)
	return authhandler.NewAuthHandler(authSvc, store, cache, cfg.Log)
}

func initSlotHandler(cfg *config.Config, c *upstreamClients, publisher *events.Publisher) *slothandler.SlotHandler {
	v := slotvalidator.NewSlotValidator(cfg.Log)
	manager := slotservice.NewManagerSlotService(c.slots, v, publisher, cfg.Log)
	owner := slotservice.NewOwnerSlotService(c.slots, c.bookings, c.vehicles, publisher, cfg.Log)
	admin := slotservice.NewAdminSlotService(c.slots, cfg.Log)
	return slothandler.NewSlotHandler(manager, owner, admin, cfg.Log)
}

func initRequestHandler(cfg *config.Config, c *upstreamClients, publisher *events.Publisher) *requesthandler.RequestHandler {
	return requesthandler.NewRequestHandler(
		requestservice.NewRequestService(c.bookings, publisher, cfg.Log),
		cfg.Log,
	)
}

func initVehicleHandler(cfg *config.Config, c *upstreamClients, publisher *events.Publisher) *vehiclehandler.VehicleHandler {
	store, err := upload.NewObjectStore(cfg)
	if err != nil {
		cfg.Log.Fatal("Failed to initialize object store", "error", err)
	}

	tracker := upload.NewTracker()
	uploader := upload.NewUploader(store, tracker, cfg, cfg.Log)
	vehicleSvc := vehicleservice.NewVehicleService(
		c.vehicles,
		vehiclevalidator.NewVehicleValidator(cfg.Log),
		uploader,
		tracker,
		publisher,
		cfg.Log,
	)
	return vehiclehandler.NewVehicleHandler(vehicleSvc, cfg.Log)
}

func initUserHandler(cfg *config.Config, c *upstreamClients, publisher *events.Publisher) *userhandler.UserHandler {
	return userhandler.NewUserHandler(
		userservice.NewUserService(c.users, c.auth, publisher, cfg.Log),
		cfg.Log,
	)
}

func initNotificationHandler(cfg *config.Config, c *upstreamClients) *notificationhandler.NotificationHandler {
	return notificationhandler.NewNotificationHandler(
		notificationservice.NewNotificationService(c.notifications, cfg.Log),
		cfg.Log,
	)
}

func initProfileHandler(cfg *config.Config, c *upstreamClients, publisher *events.Publisher) *profilehandler.ProfileHandler {
	profileSvc := profileservice.NewProfileService(
		c.users,
		c.owners,
		c.auth,
		profilevalidator.NewProfileValidator(cfg.Log),
		publisher,
		cfg.Log,
	)
	return profilehandler.NewProfileHandler(profileSvc, cfg.Log)
}
