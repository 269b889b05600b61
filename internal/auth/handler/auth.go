package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"garageportal/internal/auth/service"
	"garageportal/pkg/httpx"
	"garageportal/pkg/logger"
	"garageportal/pkg/model"
	"garageportal/pkg/session"
)

type AuthHandler struct {
	service service.AuthService
	store   *session.TokenStore
	cache   *session.Cache
	log     *logger.Logger
}

func NewAuthHandler(service service.AuthService, store *session.TokenStore, cache *session.Cache, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		store:   store,
		cache:   cache,
		log:     log,
	}
}

// Landing is the unauthenticated entry point the guard redirects to.
func (h *AuthHandler) Landing(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := httpx.WriteSuccess(w, map[string]string{
		"service":        "garage-portal",
		"signIn":         "/login",
		"signUp":         "/signup",
		"forgotPassword": "/forgot-password",
	}); err != nil {
		h.log.Error("failed to write success response", "handler", "Landing", "error", err)
	}
}

type loginResponse struct {
	Role string `json:"role"`
	Next string `json:"next"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var in model.Credentials
	if !h.decode(w, r, "Login", &in) {
		return
	}

	result, err := h.service.SignIn(r.Context(), &in)
	if err != nil {
		if writeErr := httpx.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Login", "error", writeErr)
		}
		return
	}

	h.store.Write(w, result.Token, true)
	h.cache.Put(result.Session)

	if err := httpx.WriteSuccess(w, loginResponse{Role: result.Role, Next: result.Next}); err != nil {
		h.log.Error("failed to write success response", "handler", "Login", "error", err)
	}
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var in model.SignupInput
	if !h.decode(w, r, "Signup", &in) {
		return
	}

	if err := h.service.SignUp(r.Context(), &in); err != nil {
		if writeErr := httpx.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Signup", "error", writeErr)
		}
		return
	}

	if err := httpx.WriteCreated(w, map[string]string{"next": "/"}); err != nil {
		h.log.Error("failed to write created response", "handler", "Signup", "error", err)
	}
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var in forgotPasswordRequest
	if !h.decode(w, r, "ForgotPassword", &in) {
		return
	}

	if err := h.service.ForgotPassword(r.Context(), in.Email); err != nil {
		if writeErr := httpx.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ForgotPassword", "error", writeErr)
		}
		return
	}

	if err := httpx.WriteSuccess(w, map[string]string{
		"message": "A verification code has been sent to your email.",
	}); err != nil {
		h.log.Error("failed to write success response", "handler", "ForgotPassword", "error", err)
	}
}

// VerifyOTP completes the forgot-password flow. The token is written as a
// session-scoped cookie so it does not outlive the browser session.
func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var in model.OTPInput
	if !h.decode(w, r, "VerifyOTP", &in) {
		return
	}

	result, err := h.service.VerifyOTP(r.Context(), &in)
	if err != nil {
		if writeErr := httpx.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "VerifyOTP", "error", writeErr)
		}
		return
	}

	h.store.Write(w, result.Token, false)
	h.cache.Put(result.Session)

	if err := httpx.WriteSuccess(w, loginResponse{Role: result.Role, Next: result.Next}); err != nil {
		h.log.Error("failed to write success response", "handler", "VerifyOTP", "error", err)
	}
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if token := h.store.Read(r); token != "" {
		h.cache.Drop(token)
	}
	h.store.Clear(w)

	sess := session.FromContext(r.Context())
	if sess != nil {
		h.log.Info("User signed out", "user_id", sess.UserID)
	}

	if err := httpx.WriteSuccess(w, map[string]string{"next": "/"}); err != nil {
		h.log.Error("failed to write success response", "handler", "Logout", "error", err)
	}
}

func (h *AuthHandler) decode(w http.ResponseWriter, r *http.Request, handlerName string, target any) bool {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		if writeErr := httpx.WriteJSON(w, http.StatusBadRequest, httpx.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", handlerName, "error", writeErr)
		}
		return false
	}
	return true
}

func (h *AuthHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/", h.Landing)
	router.POST("/login", h.Login)
	router.POST("/signup", h.Signup)
	router.POST("/forgot-password", h.ForgotPassword)
	router.POST("/forgot-password/verify", h.VerifyOTP)
	router.POST("/logout", h.Logout)
}
