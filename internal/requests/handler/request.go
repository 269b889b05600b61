package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"

	"garageportal/internal/requests/service"
	"garageportal/pkg/client"
	apperrors "garageportal/pkg/errors"
	"garageportal/pkg/httpx"
	"garageportal/pkg/logger"
	"garageportal/pkg/model"
	"garageportal/pkg/session"
)

type RequestHandler struct {
	service service.RequestService
	log     *logger.Logger
}

func NewRequestHandler(service service.RequestService, log *logger.Logger) *RequestHandler {
	return &RequestHandler{
		service: service,
		log:     log,
	}
}

// List serves the paginated review screen. Unknown roles get an empty view.
func (h *RequestHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sess := session.FromContext(r.Context())

	if !model.KnownRole(sess.Role) {
		h.log.Warn("Unknown role on request screen", "user_id", sess.UserID, "role", sess.Role)
		if err := httpx.WriteSuccess(w, struct{}{}); err != nil {
			h.log.Error("failed to write success response", "handler", "List", "error", err)
		}
		return
	}

	offset, limit, err := httpx.ExtractPageQuery(r)
	if err != nil {
		if writeErr := httpx.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "List", "error", writeErr)
		}
		return
	}

	query := client.BookingQuery{
		Status: r.URL.Query().Get("status"),
		Date:   r.URL.Query().Get("date"),
		Offset: offset,
		Limit:  limit,
	}

	page, err := h.service.Page(r.Context(), sess, query)
	if err != nil {
		if writeErr := httpx.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "List", "error", writeErr)
		}
		return
	}

	if err := httpx.WritePaginated(w, page.Items, page.CurrentPage, page.TotalItems, page.TotalPages); err != nil {
		h.log.Error("failed to write paginated response", "handler", "List", "error", err)
	}
}

type decision struct {
	Approve bool `json:"approve"`
}

func (h *RequestHandler) Decide(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	sess := session.FromContext(r.Context())

	requestID, err := strconv.Atoi(ps.ByName("id"))
	if err != nil || requestID <= 0 {
		if writeErr := httpx.WriteError(w, apperrors.InvalidInput("Invalid request ID")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Decide", "error", writeErr)
		}
		return
	}

	var d decision
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		if writeErr := httpx.WriteJSON(w, http.StatusBadRequest, httpx.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Decide", "error", writeErr)
		}
		return
	}

	page, err := h.service.Decide(r.Context(), sess, requestID, d.Approve)
	if err != nil {
		if writeErr := httpx.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Decide", "error", writeErr)
		}
		return
	}

	if err := httpx.WritePaginated(w, page.Items, page.CurrentPage, page.TotalItems, page.TotalPages); err != nil {
		h.log.Error("failed to write paginated response", "handler", "Decide", "error", err)
	}
}

func (h *RequestHandler) ExportCalendar(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sess := session.FromContext(r.Context())

	calendar, err := h.service.ExportCalendar(r.Context(), sess)
	if err != nil {
		if writeErr := httpx.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ExportCalendar", "error", writeErr)
		}
		return
	}

	if err := httpx.WriteSuccess(w, calendar); err != nil {
		h.log.Error("failed to write success response", "handler", "ExportCalendar", "error", err)
	}
}

func (h *RequestHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/requests", h.List)
	router.GET("/requests/export", h.ExportCalendar)
	router.PATCH("/requests/:id", h.Decide)
}
