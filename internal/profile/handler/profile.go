package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"garageportal/internal/profile/service"
	"garageportal/pkg/httpx"
	"garageportal/pkg/logger"
	"garageportal/pkg/model"
	"garageportal/pkg/session"
)

type ProfileHandler struct {
	service service.ProfileService
	log     *logger.Logger
}

func NewProfileHandler(service service.ProfileService, log *logger.Logger) *ProfileHandler {
	return &ProfileHandler{
		service: service,
		log:     log,
	}
}

func (h *ProfileHandler) View(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sess := session.FromContext(r.Context())

	view, err := h.service.View(r.Context(), sess)
	if err != nil {
		if writeErr := httpx.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "View", "error", writeErr)
		}
		return
	}

	if err := httpx.WriteSuccess(w, view); err != nil {
		h.log.Error("failed to write success response", "handler", "View", "error", err)
	}
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sess := session.FromContext(r.Context())

	var in model.OwnerProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		if writeErr := httpx.WriteJSON(w, http.StatusBadRequest, httpx.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Update", "error", writeErr)
		}
		return
	}

	view, err := h.service.Update(r.Context(), sess, &in)
	if err != nil {
		if writeErr := httpx.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Update", "error", writeErr)
		}
		return
	}

	if err := httpx.WriteSuccess(w, view); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "error", err)
	}
}

func (h *ProfileHandler) ChangePassword(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sess := session.FromContext(r.Context())

	var in model.PasswordReset
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		if writeErr := httpx.WriteJSON(w, http.StatusBadRequest, httpx.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "ChangePassword", "error", writeErr)
		}
		return
	}

	if err := h.service.ChangePassword(r.Context(), sess, &in); err != nil {
		if writeErr := httpx.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ChangePassword", "error", writeErr)
		}
		return
	}

	if err := httpx.WriteSuccess(w, map[string]string{
		"message": "Password updated successfully.",
	}); err != nil {
		h.log.Error("failed to write success response", "handler", "ChangePassword", "error", err)
	}
}

func (h *ProfileHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/profile", h.View)
	router.PATCH("/profile", h.Update)
	router.PATCH("/profile/password", h.ChangePassword)
}
