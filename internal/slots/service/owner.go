package service

import (
	"context"
	"sync"

	apperrors "garageportal/pkg/errors"
	"garageportal/pkg/events"
	"garageportal/pkg/logger"
	"garageportal/pkg/model"
	"garageportal/pkg/session"
)

// OwnerSlotsView is what the owner booking screen renders: the slot list
// (filtered when a date is selected), the active filter and the owner's
// vehicles for the booking form.
type OwnerSlotsView struct {
	Slots    []model.ServiceSlot `json:"slots"`
	Date     string              `json:"date,omitempty"`
	Vehicles []model.Vehicle     `json:"vehicles"`
}

type OwnerSlotService interface {
	View(ctx context.Context, sess *session.Session, date string) (*OwnerSlotsView, error)
	Book(ctx context.Context, sess *session.Session, in *model.BookingInput) (*OwnerSlotsView, error)
}

// ownerState is one user's slot screen: the full list and the wholesale
// date-filtered copy, patched optimistically after a booking. A fresh View
// replaces both with server truth.
type ownerState struct {
	mu       sync.RWMutex
	all      []model.ServiceSlot
	filtered []model.ServiceSlot
	date     string
}

type ownerSlotService struct {
	slots    SlotAPI
	bookings BookingAPI
	vehicles VehicleAPI
	events   *events.Publisher
	log      *logger.Logger

	mu     sync.RWMutex
	states map[string]*ownerState
}

func NewOwnerSlotService(
	slots SlotAPI,
	bookings BookingAPI,
	vehicles VehicleAPI,
	publisher *events.Publisher,
	log *logger.Logger,
) OwnerSlotService {
	return &ownerSlotService{
		slots:    slots,
		bookings: bookings,
		vehicles: vehicles,
		events:   publisher,
		log:      log,
		states:   make(map[string]*ownerState),
	}
}

func (s *ownerSlotService) state(userID string) *ownerState {
	s.mu.RLock()
	st, ok := s.states[userID]
	s.mu.RUnlock()
	if ok {
		return st
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok = s.states[userID]; !ok {
		st = &ownerState{}
		s.states[userID] = st
	}
	return st
}

// View refetches the slot list, so any earlier optimistic patch is replaced
// by whatever the server says now. An empty date clears the filter.
func (s *ownerSlotService) View(ctx context.Context, sess *session.Session, date string) (*OwnerSlotsView, error) {
	slots, err := s.slots.GetAll(ctx, sess.Token)
	if err != nil {
		s.log.Error("Failed to fetch service slots", "user_id", sess.UserID, "error", err)
		return nil, err
	}
	normalizeClocks(slots)

	vehicles, err := s.vehicles.List(ctx, sess.Token)
	if err != nil {
		s.log.Error("Failed to fetch vehicles for booking form", "user_id", sess.UserID, "error", err)
		return nil, err
	}

	st := s.state(sess.UserID)
	st.mu.Lock()
	st.all = slots
	st.date = date
	st.filtered = filterByDate(slots, date)
	view := &OwnerSlotsView{
		Slots:    visibleSlots(st),
		Date:     date,
		Vehicles: vehicles,
	}
	st.mu.Unlock()

	return view, nil
}

// Book submits a booking request. A missing vehicle selection or a fully
// booked slot is refused locally without a network call. On success the
// slot's availability is decremented in both the full and filtered lists.
func (s *ownerSlotService) Book(ctx context.Context, sess *session.Session, in *model.BookingInput) (*OwnerSlotsView, error) {
	if in.VehicleID <= 0 {
		return nil, apperrors.InvalidInput("Please select a vehicle for the booking")
	}
	if in.ServiceSlotID <= 0 {
		return nil, apperrors.InvalidInput("Please select a service slot")
	}

	st := s.state(sess.UserID)

	st.mu.RLock()
	for _, slot := range st.all {
		if slot.ServiceSlotID == in.ServiceSlotID && slot.FullyBooked() {
			st.mu.RUnlock()
			return nil, apperrors.Conflict("This slot is fully booked. Please select a different slot.")
		}
	}
	st.mu.RUnlock()

	if _, err := s.bookings.Create(ctx, sess.Token, *in); err != nil {
		s.log.Error("Failed to create booking request",
			"user_id", sess.UserID,
			"service_slot_id", in.ServiceSlotID,
			"error", err,
		)
		return nil, err
	}

	st.mu.Lock()
	decrementAvailability(st.all, in.ServiceSlotID)
	decrementAvailability(st.filtered, in.ServiceSlotID)
	view := &OwnerSlotsView{
		Slots: visibleSlots(st),
		Date:  st.date,
	}
	st.mu.Unlock()

	s.log.Info("Booking request submitted",
		"user_id", sess.UserID,
		"service_slot_id", in.ServiceSlotID,
		"vehicle_id", in.VehicleID,
		"booking_date", in.BookingDate,
	)
	s.events.Publish(ctx, events.TypeSlotBooked, sess.UserID, map[string]any{
		"serviceSlotId": in.ServiceSlotID,
		"vehicleId":     in.VehicleID,
		"bookingDate":   in.BookingDate,
	})

	return view, nil
}

func visibleSlots(st *ownerState) []model.ServiceSlot {
	source := st.all
	if st.date != "" {
		source = st.filtered
	}

	out := make([]model.ServiceSlot, len(source))
	copy(out, source)
	return out
}

func filterByDate(slots []model.ServiceSlot, date string) []model.ServiceSlot {
	if date == "" {
		return nil
	}

	filtered := make([]model.ServiceSlot, 0)
	for _, slot := range slots {
		if slot.ServiceDate == date {
			filtered = append(filtered, slot)
		}
	}
	return filtered
}

func decrementAvailability(slots []model.ServiceSlot, slotID int) {
	for i := range slots {
		if slots[i].ServiceSlotID == slotID && slots[i].AvailableSlots > 0 {
			slots[i].AvailableSlots--
		}
	}
}
