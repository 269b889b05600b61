package service

import (
	"context"
	"io"
	"sync"

	"garageportal/internal/vehicles/upload"
	"garageportal/internal/vehicles/validator"
	apperrors "garageportal/pkg/errors"
	"garageportal/pkg/events"
	"garageportal/pkg/logger"
	"garageportal/pkg/model"
	"garageportal/pkg/session"
)

// VehiclesAPI is the slice of the vehicle backend the garage screen uses.
type VehiclesAPI interface {
	List(ctx context.Context, token string) ([]model.Vehicle, error)
	Add(ctx context.Context, token string, in model.VehicleInput) (model.Vehicle, error)
	Update(ctx context.Context, token string, vehicleID int, in model.VehicleInput) (model.Vehicle, error)
	Delete(ctx context.Context, token string, vehicleID int) error
}

type VehicleService interface {
	List(ctx context.Context, sess *session.Session) ([]model.Vehicle, error)
	Add(ctx context.Context, sess *session.Session, in *model.VehicleInput) ([]model.Vehicle, error)
	Update(ctx context.Context, sess *session.Session, vehicleID int, in *model.VehicleInput) ([]model.Vehicle, error)
	Delete(ctx context.Context, sess *session.Session, vehicleID int) ([]model.Vehicle, error)
	UploadImage(ctx context.Context, sess *session.Session, filename, contentType string, r io.Reader, size int64) (string, error)
	UploadStatus(sess *session.Session) (upload.Status, bool)
}

// vehicleState is one owner's garage list, patched locally after each
// mutation and replaced wholesale by the next List.
type vehicleState struct {
	mu       sync.RWMutex
	vehicles []model.Vehicle
}

type vehicleService struct {
	api       VehiclesAPI
	validator *validator.VehicleValidator
	uploader  *upload.Uploader
	tracker   *upload.Tracker
	events    *events.Publisher
	log       *logger.Logger

	mu     sync.RWMutex
	states map[string]*vehicleState
}

func NewVehicleService(
	api VehiclesAPI,
	v *validator.VehicleValidator,
	uploader *upload.Uploader,
	tracker *upload.Tracker,
	publisher *events.Publisher,
	log *logger.Logger,
) VehicleService {
	return &vehicleService{
		api:       api,
		validator: v,
		uploader:  uploader,
		tracker:   tracker,
		events:    publisher,
		log:       log,
		states:    make(map[string]*vehicleState),
	}
}

func (s *vehicleService) state(userID string) *vehicleState {
	s.mu.RLock()
	st, ok := s.states[userID]
	s.mu.RUnlock()
	if ok {
		return st
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok = s.states[userID]; !ok {
		st = &vehicleState{}
		s.states[userID] = st
	}
	return st
}

func (s *vehicleService) List(ctx context.Context, sess *session.Session) ([]model.Vehicle, error) {
	vehicles, err := s.api.List(ctx, sess.Token)
	if err != nil {
		s.log.Error("Failed to fetch vehicles", "user_id", sess.UserID, "error", err)
		return nil, err
	}

	st := s.state(sess.UserID)
	st.mu.Lock()
	st.vehicles = vehicles
	snapshot := snapshotVehicles(st.vehicles)
	st.mu.Unlock()

	return snapshot, nil
}

// Add validates, refuses while an image upload is pending, then appends the
// created vehicle to the local list.
func (s *vehicleService) Add(ctx context.Context, sess *session.Session, in *model.VehicleInput) ([]model.Vehicle, error) {
	if err := s.gateAndValidate(sess, in); err != nil {
		return nil, err
	}

	created, err := s.api.Add(ctx, sess.Token, *in)
	if err != nil {
		s.log.Error("Failed to add vehicle", "user_id", sess.UserID, "error", err)
		return nil, err
	}

	st := s.state(sess.UserID)
	st.mu.Lock()
	st.vehicles = append(st.vehicles, created)
	snapshot := snapshotVehicles(st.vehicles)
	st.mu.Unlock()

	s.log.Info("Vehicle added", "user_id", sess.UserID, "vehicle_id", created.VehicleID, "license_plate", created.LicensePlate)
	s.events.Publish(ctx, events.TypeVehicleAdded, sess.UserID, map[string]any{
		"vehicleId":    created.VehicleID,
		"licensePlate": created.LicensePlate,
	})

	return snapshot, nil
}

// Update patches the row in the local list with the server's response.
func (s *vehicleService) Update(ctx context.Context, sess *session.Session, vehicleID int, in *model.VehicleInput) ([]model.Vehicle, error) {
	if vehicleID <= 0 {
		return nil, apperrors.InvalidInput("Invalid vehicle ID")
	}
	if err := s.gateAndValidate(sess, in); err != nil {
		return nil, err
	}

	updated, err := s.api.Update(ctx, sess.Token, vehicleID, *in)
	if err != nil {
		s.log.Error("Failed to update vehicle", "user_id", sess.UserID, "vehicle_id", vehicleID, "error", err)
		return nil, err
	}

	st := s.state(sess.UserID)
	st.mu.Lock()
	for i := range st.vehicles {
		if st.vehicles[i].VehicleID == vehicleID {
			st.vehicles[i] = updated
		}
	}
	snapshot := snapshotVehicles(st.vehicles)
	st.mu.Unlock()

	s.log.Info("Vehicle updated", "user_id", sess.UserID, "vehicle_id", vehicleID)
	s.events.Publish(ctx, events.TypeVehicleUpdated, sess.UserID, map[string]any{
		"vehicleId": vehicleID,
	})

	return snapshot, nil
}

// Delete removes the row locally only after the upstream delete succeeds.
func (s *vehicleService) Delete(ctx context.Context, sess *session.Session, vehicleID int) ([]model.Vehicle, error) {
	if vehicleID <= 0 {
		return nil, apperrors.InvalidInput("Invalid vehicle ID")
	}

	if err := s.api.Delete(ctx, sess.Token, vehicleID); err != nil {
		s.log.Error("Failed to delete vehicle", "user_id", sess.UserID, "vehicle_id", vehicleID, "error", err)
		return nil, err
	}

	st := s.state(sess.UserID)
	st.mu.Lock()
	kept := st.vehicles[:0]
	for _, v := range st.vehicles {
		if v.VehicleID != vehicleID {
			kept = append(kept, v)
		}
	}
	st.vehicles = kept
	snapshot := snapshotVehicles(st.vehicles)
	st.mu.Unlock()

	s.log.Info("Vehicle deleted", "user_id", sess.UserID, "vehicle_id", vehicleID)
	s.events.Publish(ctx, events.TypeVehicleDeleted, sess.UserID, map[string]any{
		"vehicleId": vehicleID,
	})

	return snapshot, nil
}

func (s *vehicleService) UploadImage(ctx context.Context, sess *session.Session, filename, contentType string, r io.Reader, size int64) (string, error) {
	return s.uploader.Upload(ctx, sess.UserID, filename, contentType, r, size)
}

func (s *vehicleService) UploadStatus(sess *session.Session) (upload.Status, bool) {
	return s.tracker.Get(sess.UserID)
}

func (s *vehicleService) gateAndValidate(sess *session.Session, in *model.VehicleInput) error {
	if s.tracker.Blocked(sess.UserID) {
		return apperrors.Conflict(upload.GateMessage)
	}

	if err := s.validator.Validate(in); err != nil {
		s.log.Warn("Vehicle validation failed", "user_id", sess.UserID, "error", err)
		return apperrors.Validation("Vehicle validation failed", map[string]any{
			"error": err.Error(),
		})
	}
	return nil
}

func snapshotVehicles(vehicles []model.Vehicle) []model.Vehicle {
	out := make([]model.Vehicle, len(vehicles))
	copy(out, vehicles)
	return out
}
