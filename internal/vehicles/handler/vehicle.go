package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"

	"garageportal/internal/vehicles/service"
	apperrors "garageportal/pkg/errors"
	"garageportal/pkg/httpx"
	"garageportal/pkg/logger"
	"garageportal/pkg/model"
	"garageportal/pkg/session"
)

// maxImageSize caps a vehicle image multipart body at 10 MiB.
const maxImageSize = 10 << 20

type VehicleHandler struct {
	service service.VehicleService
	log     *logger.Logger
}

func NewVehicleHandler(service service.VehicleService, log *logger.Logger) *VehicleHandler {
	return &VehicleHandler{
		service: service,
		log:     log,
	}
}

func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sess, ok := h.requireOwner(w, r, "List")
	if !ok {
		return
	}

	vehicles, err := h.service.List(r.Context(), sess)
	if err != nil {
		if writeErr := httpx.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "List", "error", writeErr)
		}
		return
	}

	if err := httpx.WriteSuccess(w, vehicles); err != nil {
		h.log.Error("failed to write success response", "handler", "List", "error", err)
	}
}

func (h *VehicleHandler) Add(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sess, ok := h.requireOwner(w, r, "Add")
	if !ok {
		return
	}

	var in model.VehicleInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		if writeErr := httpx.WriteJSON(w, http.StatusBadRequest, httpx.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Add", "error", writeErr)
		}
		return
	}

	vehicles, err := h.service.Add(r.Context(), sess, &in)
	if err != nil {
		if writeErr := httpx.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Add", "error", writeErr)
		}
		return
	}

	if err := httpx.WriteCreated(w, vehicles); err != nil {
		h.log.Error("failed to write created response", "handler", "Add", "error", err)
	}
}

func (h *VehicleHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	sess, ok := h.requireOwner(w, r, "Update")
	if !ok {
		return
	}

	vehicleID, err := strconv.Atoi(ps.ByName("id"))
	if err != nil || vehicleID <= 0 {
		if writeErr := httpx.WriteError(w, apperrors.InvalidInput("Invalid vehicle ID")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Update", "error", writeErr)
		}
		return
	}

	var in model.VehicleInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		if writeErr := httpx.WriteJSON(w, http.StatusBadRequest, httpx.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Update", "error", writeErr)
		}
		return
	}

	vehicles, err := h.service.Update(r.Context(), sess, vehicleID, &in)
	if err != nil {
		if writeErr := httpx.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Update", "error", writeErr)
		}
		return
	}

	if err := httpx.WriteSuccess(w, vehicles); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "error", err)
	}
}

func (h *VehicleHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	sess, ok := h.requireOwner(w, r, "Delete")
	if !ok {
		return
	}

	vehicleID, err := strconv.Atoi(ps.ByName("id"))
	if err != nil || vehicleID <= 0 {
		if writeErr := httpx.WriteError(w, apperrors.InvalidInput("Invalid vehicle ID")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Delete", "error", writeErr)
		}
		return
	}

	vehicles, err := h.service.Delete(r.Context(), sess, vehicleID)
	if err != nil {
		if writeErr := httpx.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Delete", "error", writeErr)
		}
		return
	}

	if err := httpx.WriteSuccess(w, vehicles); err != nil {
		h.log.Error("failed to write success response", "handler", "Delete", "error", err)
	}
}

// UploadImage streams the multipart "image" part into object storage and
// returns the public URL the vehicle form should submit.
func (h *VehicleHandler) UploadImage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sess, ok := h.requireOwner(w, r, "UploadImage")
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImageSize)

	file, header, err := r.FormFile("image")
	if err != nil {
		if writeErr := httpx.WriteError(w, apperrors.InvalidInput("An 'image' file part is required")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "UploadImage", "error", writeErr)
		}
		return
	}
	defer file.Close()

	url, err := h.service.UploadImage(
		r.Context(),
		sess,
		header.Filename,
		header.Header.Get("Content-Type"),
		file,
		header.Size,
	)
	if err != nil {
		if writeErr := httpx.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "UploadImage", "error", writeErr)
		}
		return
	}

	if err := httpx.WriteCreated(w, map[string]string{"url": url}); err != nil {
		h.log.Error("failed to write created response", "handler", "UploadImage", "error", err)
	}
}

func (h *VehicleHandler) UploadProgress(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sess, ok := h.requireOwner(w, r, "UploadProgress")
	if !ok {
		return
	}

	status, found := h.service.UploadStatus(sess)
	if !found {
		if err := httpx.WriteError(w, apperrors.NotFound("Upload")); err != nil {
			h.log.Error("failed to write error response", "handler", "UploadProgress", "error", err)
		}
		return
	}

	if err := httpx.WriteSuccess(w, status); err != nil {
		h.log.Error("failed to write success response", "handler", "UploadProgress", "error", err)
	}
}

func (h *VehicleHandler) requireOwner(w http.ResponseWriter, r *http.Request, handlerName string) (*session.Session, bool) {
	sess := session.FromContext(r.Context())
	if sess.Role != model.RoleVehicleOwner {
		if err := httpx.WriteError(w, apperrors.Forbidden("Only vehicle owners manage vehicles")); err != nil {
			h.log.Error("failed to write forbidden response", "handler", handlerName, "error", err)
		}
		return nil, false
	}
	return sess, true
}

func (h *VehicleHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/vehicles", h.List)
	router.POST("/vehicles", h.Add)
	router.PATCH("/vehicles/:id", h.Update)
	router.DELETE("/vehicles/:id", h.Delete)
	router.POST("/vehicles/image", h.UploadImage)
	router.GET("/vehicles/image/progress", h.UploadProgress)
}
