package handler

import (
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"

	"garageportal/internal/notifications/service"
	apperrors "garageportal/pkg/errors"
	"garageportal/pkg/httpx"
	"garageportal/pkg/logger"
	"garageportal/pkg/session"
)

type NotificationHandler struct {
	service service.NotificationService
	log     *logger.Logger
}

func NewNotificationHandler(service service.NotificationService, log *logger.Logger) *NotificationHandler {
	return &NotificationHandler{
		service: service,
		log:     log,
	}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sess := session.FromContext(r.Context())

	inbox, err := h.service.List(r.Context(), sess)
	if err != nil {
		if writeErr := httpx.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "List", "error", writeErr)
		}
		return
	}

	if err := httpx.WriteSuccess(w, inbox); err != nil {
		h.log.Error("failed to write success response", "handler", "List", "error", err)
	}
}

func (h *NotificationHandler) MarkViewed(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	sess := session.FromContext(r.Context())

	notificationID, err := strconv.Atoi(ps.ByName("id"))
	if err != nil || notificationID <= 0 {
		if writeErr := httpx.WriteError(w, apperrors.InvalidInput("Invalid notification ID")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "MarkViewed", "error", writeErr)
		}
		return
	}

	inbox, err := h.service.MarkViewed(r.Context(), sess, notificationID)
	if err != nil {
		if writeErr := httpx.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "MarkViewed", "error", writeErr)
		}
		return
	}

	if err := httpx.WriteSuccess(w, inbox); err != nil {
		h.log.Error("failed to write success response", "handler", "MarkViewed", "error", err)
	}
}

func (h *NotificationHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/notifications", h.List)
	router.PATCH("/notifications/:id/viewed", h.MarkViewed)
}
