package integration

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"

	authhandler "garageportal/internal/auth/handler"
	authservice "garageportal/internal/auth/service"
	authvalidator "garageportal/internal/auth/validator"
	slothandler "garageportal/internal/slots/handler"
	slotservice "garageportal/internal/slots/service"
	slotvalidator "garageportal/internal/slots/validator"
	"garageportal/pkg/client"
	"garageportal/pkg/events"
	"garageportal/pkg/logger"
	"garageportal/pkg/middleware"
	"garageportal/pkg/model"
	"garageportal/pkg/session"
)

// envelope wraps results the way every upstream does.
func envelope(results ...any) map[string]any {
	if results == nil {
		results = []any{}
	}
	return map[string]any{"status": "success", "results": results}
}

func writeEnvelope(w http.ResponseWriter, statusCode int, results ...any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(envelope(results...))
}

func ownerToken(t *testing.T) string {
	t.Helper()

	claims := &session.Claims{
		UserID:   "17",
		Username: "owner@garage.test",
		Role:     model.RoleVehicleOwner,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return raw
}

type upstreams struct {
	auth     *httptest.Server
	slots    *httptest.Server
	bookings *httptest.Server
	vehicles *httptest.Server
}

func (u *upstreams) Close() {
	u.auth.Close()
	u.slots.Close()
	u.bookings.Close()
	u.vehicles.Close()
}

func startUpstreams(t *testing.T, token string) *upstreams {
	t.Helper()

	authMux := http.NewServeMux()
	authMux.HandleFunc("POST /sign-in", func(w http.ResponseWriter, r *http.Request) {
		var creds struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		_ = json.NewDecoder(r.Body).Decode(&creds)
		if creds.Email != "owner@garage.test" || creds.Password != "Garage#2026" {
			writeEnvelope(w, http.StatusUnauthorized, map[string]any{"message": "Invalid email or password"})
			return
		}
		writeEnvelope(w, http.StatusOK, model.AuthResult{
			UserID:      "17",
			Email:       creds.Email,
			Role:        model.RoleVehicleOwner,
			AccessToken: token,
		})
	})

	slotMux := http.NewServeMux()
	slotMux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK,
			model.ServiceSlot{ServiceSlotID: 1, ServiceDate: "2026-09-01", StartTime: "09:00:00", EndTime: "10:00:00", TotalSlots: 3, AvailableSlots: 2},
			model.ServiceSlot{ServiceSlotID: 2, ServiceDate: "2026-09-02", StartTime: "10:00:00", EndTime: "11:00:00", TotalSlots: 2, AvailableSlots: 0},
		)
	})

	bookingMux := http.NewServeMux()
	bookingMux.HandleFunc("POST /", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+token {
			writeEnvelope(w, http.StatusUnauthorized, map[string]any{"message": "Missing token"})
			return
		}
		writeEnvelope(w, http.StatusCreated, model.BookingRequest{
			BookingRequestID: 55, UserID: 17, VehicleID: 9, Status: model.StatusPending,
		})
	})

	vehicleMux := http.NewServeMux()
	vehicleMux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, model.Vehicle{
			VehicleID: 9, Brand: "Mazda", Model: "3", Year: 2021, LicensePlate: "ABC-1234",
		})
	})

	return &upstreams{
		auth:     httptest.NewServer(authMux),
		slots:    httptest.NewServer(slotMux),
		bookings: httptest.NewServer(bookingMux),
		vehicles: httptest.NewServer(vehicleMux),
	}
}

// newPortal assembles the handlers behind the same middleware chain the
// application serves, minus the listener.
func newPortal(t *testing.T, u *upstreams) http.Handler {
	t.Helper()
	log := logger.Discard()

	timeout := 5 * time.Second
	authClient := client.NewAuthClient(u.auth.URL, timeout)
	slotClient := client.NewSlotClient(u.slots.URL, timeout)
	bookingClient := client.NewBookingClient(u.bookings.URL, timeout)
	vehicleClient := client.NewVehicleClient(u.vehicles.URL, timeout)

	publisher := events.NewPublisher(nil, "", "test", log)
	store := &session.TokenStore{}
	cache := session.NewCache()

	authSvc := authservice.NewAuthService(authClient, authvalidator.NewAuthValidator(log), publisher, log)
	slotV := slotvalidator.NewSlotValidator(log)
	manager := slotservice.NewManagerSlotService(slotClient, slotV, publisher, log)
	owner := slotservice.NewOwnerSlotService(slotClient, bookingClient, vehicleClient, publisher, log)
	admin := slotservice.NewAdminSlotService(slotClient, log)

	router := httprouter.New()
	authhandler.NewAuthHandler(authSvc, store, cache, log).RegisterRoutes(router)
	slothandler.NewSlotHandler(manager, owner, admin, log).RegisterRoutes(router)

	limiter := middleware.NewLoginRateLimiter(100, time.Minute, middleware.ClientAddrExtractor, log)
	t.Cleanup(limiter.Stop)

	var h http.Handler = router
	h = middleware.SessionGuard(store, cache, log)(h)
	h = middleware.RequestTimeout(timeout)(h)
	h = middleware.LoginRateLimit(limiter)(h)
	h = middleware.ContentTypeValidation(log)(h)
	h = middleware.RequestLogging(log)(h)
	h = middleware.Recovery(log)(h)
	return h
}

func TestPortal_LoginThenBrowseSlots(t *testing.T) {
	token := ownerToken(t)
	u := startUpstreams(t, token)
	defer u.Close()
	portal := newPortal(t, u)

	// Unauthenticated slot fetch is turned away.
	rec := httptest.NewRecorder()
	portal.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/slots", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a token, got %d", rec.Code)
	}

	// Sign in.
	rec = httptest.NewRecorder()
	login := httptest.NewRequest(http.MethodPost, "/login",
		strings.NewReader(`{"email":"owner@garage.test","password":"Garage#2026"}`))
	login.Header.Set("Content-Type", "application/json")
	portal.ServeHTTP(rec, login)
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Value != token {
		t.Fatalf("login should set the token cookie, got %v", cookies)
	}

	var loginBody struct {
		Data struct {
			Role string `json:"role"`
			Next string `json:"next"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &loginBody); err != nil {
		t.Fatalf("decoding login response: %v", err)
	}
	if loginBody.Data.Role != model.RoleVehicleOwner || loginBody.Data.Next != "/slots" {
		t.Errorf("unexpected login response %+v", loginBody.Data)
	}

	// Browse slots with the cookie.
	rec = httptest.NewRecorder()
	browse := httptest.NewRequest(http.MethodGet, "/slots", nil)
	browse.AddCookie(cookies[0])
	portal.ServeHTTP(rec, browse)
	if rec.Code != http.StatusOK {
		t.Fatalf("slots: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var slotsBody struct {
		Data struct {
			Slots    []model.ServiceSlot `json:"slots"`
			Vehicles []model.Vehicle     `json:"vehicles"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &slotsBody); err != nil {
		t.Fatalf("decoding slots response: %v", err)
	}
	if len(slotsBody.Data.Slots) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(slotsBody.Data.Slots))
	}
	if slotsBody.Data.Slots[0].StartTime != "09:00" {
		t.Errorf("start time should be normalized to HH:MM, got %q", slotsBody.Data.Slots[0].StartTime)
	}
	if len(slotsBody.Data.Vehicles) != 1 {
		t.Errorf("expected the owner's vehicle in the view, got %d", len(slotsBody.Data.Vehicles))
	}
}

func TestPortal_BookSlot(t *testing.T) {
	token := ownerToken(t)
	u := startUpstreams(t, token)
	defer u.Close()
	portal := newPortal(t, u)

	cookie := &http.Cookie{Name: session.CookieName, Value: token}

	// Load the view first so the booking can patch local availability.
	rec := httptest.NewRecorder()
	browse := httptest.NewRequest(http.MethodGet, "/slots", nil)
	browse.AddCookie(cookie)
	portal.ServeHTTP(rec, browse)
	if rec.Code != http.StatusOK {
		t.Fatalf("slots: expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	book := httptest.NewRequest(http.MethodPost, "/slots/1/book",
		strings.NewReader(`{"vehicleId":9,"bookingDate":"2026-09-01"}`))
	book.Header.Set("Content-Type", "application/json")
	book.AddCookie(cookie)
	portal.ServeHTTP(rec, book)
	if rec.Code != http.StatusCreated && rec.Code != http.StatusOK {
		t.Fatalf("book: expected success, got %d: %s", rec.Code, rec.Body.String())
	}

	var bookBody struct {
		Data struct {
			Slots []model.ServiceSlot `json:"slots"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &bookBody); err != nil {
		t.Fatalf("decoding book response: %v", err)
	}
	for _, s := range bookBody.Data.Slots {
		if s.ServiceSlotID == 1 && s.AvailableSlots != 1 {
			t.Errorf("availability should drop to 1 after booking, got %d", s.AvailableSlots)
		}
	}
}

func TestPortal_FullyBookedSlotRefused(t *testing.T) {
	token := ownerToken(t)
	u := startUpstreams(t, token)
	defer u.Close()
	portal := newPortal(t, u)

	cookie := &http.Cookie{Name: session.CookieName, Value: token}

	rec := httptest.NewRecorder()
	browse := httptest.NewRequest(http.MethodGet, "/slots", nil)
	browse.AddCookie(cookie)
	portal.ServeHTTP(rec, browse)
	if rec.Code != http.StatusOK {
		t.Fatalf("slots: expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	book := httptest.NewRequest(http.MethodPost, "/slots/2/book",
		strings.NewReader(`{"vehicleId":9,"bookingDate":"2026-09-02"}`))
	book.Header.Set("Content-Type", "application/json")
	book.AddCookie(cookie)
	portal.ServeHTTP(rec, book)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for a fully booked slot, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "fully booked") {
		t.Errorf("expected the fully-booked message, got %s", rec.Body.String())
	}
}

func TestPortal_BadCredentialsSurfaceUpstreamMessage(t *testing.T) {
	token := ownerToken(t)
	u := startUpstreams(t, token)
	defer u.Close()
	portal := newPortal(t, u)

	rec := httptest.NewRecorder()
	login := httptest.NewRequest(http.MethodPost, "/login",
		strings.NewReader(`{"email":"owner@garage.test","password":"wrong-pass"}`))
	login.Header.Set("Content-Type", "application/json")
	portal.ServeHTTP(rec, login)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Invalid email or password") {
		t.Errorf("upstream message should surface verbatim, got %s", rec.Body.String())
	}
}
