package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"

	"garageportal/internal/slots/service"
	apperrors "garageportal/pkg/errors"
	"garageportal/pkg/httpx"
	"garageportal/pkg/logger"
	"garageportal/pkg/model"
	"garageportal/pkg/session"
)

type SlotHandler struct {
	manager service.ManagerSlotService
	owner   service.OwnerSlotService
	admin   service.AdminSlotService
	log     *logger.Logger
}

func NewSlotHandler(
	manager service.ManagerSlotService,
	owner service.OwnerSlotService,
	admin service.AdminSlotService,
	log *logger.Logger,
) *SlotHandler {
	return &SlotHandler{
		manager: manager,
		owner:   owner,
		admin:   admin,
		log:     log,
	}
}

// List dispatches on the session role: each role sees exactly one variant of
// the slot screen. An unrecognized role gets an empty view.
func (h *SlotHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sess := session.FromContext(r.Context())
	date := r.URL.Query().Get("date")

	var (
		view any
		err  error
	)
	switch sess.Role {
	case model.RoleServiceManager:
		view, err = h.manager.List(r.Context(), sess)
	case model.RoleVehicleOwner:
		view, err = h.owner.View(r.Context(), sess, date)
	case model.RoleGarageAdmin:
		view, err = h.admin.View(r.Context(), sess, date)
	default:
		h.log.Warn("Unknown role on slot screen", "user_id", sess.UserID, "role", sess.Role)
		view = struct{}{}
	}
	if err != nil {
		if writeErr := httpx.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "List", "error", writeErr)
		}
		return
	}

	if err := httpx.WriteSuccess(w, view); err != nil {
		h.log.Error("failed to write success response", "handler", "List", "error", err)
	}
}

func (h *SlotHandler) Calendar(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sess := session.FromContext(r.Context())
	if sess.Role != model.RoleServiceManager {
		h.forbidden(w, "Calendar")
		return
	}

	calendar, err := h.manager.CalendarEvents(r.Context(), sess)
	if err != nil {
		if writeErr := httpx.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Calendar", "error", writeErr)
		}
		return
	}

	if err := httpx.WriteSuccess(w, calendar); err != nil {
		h.log.Error("failed to write success response", "handler", "Calendar", "error", err)
	}
}

func (h *SlotHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.save(w, r, 0)
}

func (h *SlotHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	slotID, err := strconv.Atoi(ps.ByName("id"))
	if err != nil || slotID <= 0 {
		if writeErr := httpx.WriteError(w, apperrors.InvalidInput("Invalid slot ID")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Update", "error", writeErr)
		}
		return
	}
	h.save(w, r, slotID)
}

func (h *SlotHandler) save(w http.ResponseWriter, r *http.Request, slotID int) {
	sess := session.FromContext(r.Context())
	if sess.Role != model.RoleServiceManager {
		h.forbidden(w, "save")
		return
	}

	var in model.SlotInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		if writeErr := httpx.WriteJSON(w, http.StatusBadRequest, httpx.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "save", "error", writeErr)
		}
		return
	}

	slots, err := h.manager.Save(r.Context(), sess, slotID, &in)
	if err != nil {
		if writeErr := httpx.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "save", "error", writeErr)
		}
		return
	}

	if slotID == 0 {
		if err := httpx.WriteCreated(w, slots); err != nil {
			h.log.Error("failed to write created response", "handler", "save", "error", err)
		}
		return
	}
	if err := httpx.WriteSuccess(w, slots); err != nil {
		h.log.Error("failed to write success response", "handler", "save", "error", err)
	}
}

func (h *SlotHandler) Book(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	sess := session.FromContext(r.Context())
	if sess.Role != model.RoleVehicleOwner {
		h.forbidden(w, "Book")
		return
	}

	slotID, err := strconv.Atoi(ps.ByName("id"))
	if err != nil || slotID <= 0 {
		if writeErr := httpx.WriteError(w, apperrors.InvalidInput("Invalid slot ID")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Book", "error", writeErr)
		}
		return
	}

	var in model.BookingInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		if writeErr := httpx.WriteJSON(w, http.StatusBadRequest, httpx.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Book", "error", writeErr)
		}
		return
	}
	in.ServiceSlotID = slotID

	view, err := h.owner.Book(r.Context(), sess, &in)
	if err != nil {
		if writeErr := httpx.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Book", "error", writeErr)
		}
		return
	}

	if err := httpx.WriteCreated(w, view); err != nil {
		h.log.Error("failed to write created response", "handler", "Book", "error", err)
	}
}

func (h *SlotHandler) forbidden(w http.ResponseWriter, handlerName string) {
	if err := httpx.WriteError(w, apperrors.Forbidden("You do not have access to this action")); err != nil {
		h.log.Error("failed to write forbidden response", "handler", handlerName, "error", err)
	}
}

func (h *SlotHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/slots", h.List)
	router.GET("/slots/calendar", h.Calendar)
	router.POST("/slots", h.Create)
	router.PATCH("/slots/:id", h.Update)
	router.POST("/slots/:id/book", h.Book)
}
