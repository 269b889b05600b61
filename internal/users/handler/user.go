package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"

	"garageportal/internal/users/service"
	apperrors "garageportal/pkg/errors"
	"garageportal/pkg/httpx"
	"garageportal/pkg/logger"
	"garageportal/pkg/session"
)

type UserHandler struct {
	service service.UserService
	log     *logger.Logger
}

func NewUserHandler(service service.UserService, log *logger.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log,
	}
}

func (h *UserHandler) ListManagers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sess := session.FromContext(r.Context())

	managers, err := h.service.Managers(r.Context(), sess, r.URL.Query().Get("status"))
	if err != nil {
		if writeErr := httpx.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ListManagers", "error", writeErr)
		}
		return
	}

	if err := httpx.WriteSuccess(w, managers); err != nil {
		h.log.Error("failed to write success response", "handler", "ListManagers", "error", err)
	}
}

func (h *UserHandler) ListOwners(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sess := session.FromContext(r.Context())

	owners, err := h.service.Owners(r.Context(), sess, r.URL.Query().Get("status"))
	if err != nil {
		if writeErr := httpx.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ListOwners", "error", writeErr)
		}
		return
	}

	if err := httpx.WriteSuccess(w, owners); err != nil {
		h.log.Error("failed to write success response", "handler", "ListOwners", "error", err)
	}
}

type createManagerRequest struct {
	Email string `json:"email"`
}

func (h *UserHandler) CreateManager(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sess := session.FromContext(r.Context())

	var req createManagerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httpx.WriteJSON(w, http.StatusBadRequest, httpx.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "CreateManager", "error", writeErr)
		}
		return
	}

	managers, err := h.service.CreateManager(r.Context(), sess, req.Email)
	if err != nil {
		if writeErr := httpx.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "CreateManager", "error", writeErr)
		}
		return
	}

	if err := httpx.WriteCreated(w, managers); err != nil {
		h.log.Error("failed to write created response", "handler", "CreateManager", "error", err)
	}
}

func (h *UserHandler) Activate(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	h.toggle(w, r, ps, true, "Activate")
}

func (h *UserHandler) Deactivate(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	h.toggle(w, r, ps, false, "Deactivate")
}

func (h *UserHandler) toggle(w http.ResponseWriter, r *http.Request, ps httprouter.Params, active bool, handlerName string) {
	sess := session.FromContext(r.Context())

	userID, err := strconv.Atoi(ps.ByName("id"))
	if err != nil || userID <= 0 {
		if writeErr := httpx.WriteError(w, apperrors.InvalidInput("Invalid user ID")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", handlerName, "error", writeErr)
		}
		return
	}

	if err := h.service.SetActive(r.Context(), sess, userID, active); err != nil {
		if writeErr := httpx.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", handlerName, "error", writeErr)
		}
		return
	}

	if err := httpx.WriteSuccess(w, map[string]any{"userId": userID, "active": active}); err != nil {
		h.log.Error("failed to write success response", "handler", handlerName, "error", err)
	}
}

func (h *UserHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/service-managers", h.ListManagers)
	router.POST("/service-managers", h.CreateManager)
	router.GET("/vehicle-owners", h.ListOwners)
	router.PATCH("/users/:id/activate", h.Activate)
	router.PATCH("/users/:id/deactivate", h.Deactivate)
}
