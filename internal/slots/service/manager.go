package service

import (
	"context"
	"fmt"
	"time"

	"garageportal/internal/slots/validator"
	apperrors "garageportal/pkg/errors"
	"garageportal/pkg/events"
	"garageportal/pkg/logger"
	"garageportal/pkg/model"
	"garageportal/pkg/session"
)

type ManagerSlotService interface {
	List(ctx context.Context, sess *session.Session) ([]model.ServiceSlot, error)
	Save(ctx context.Context, sess *session.Session, slotID int, in *model.SlotInput) ([]model.ServiceSlot, error)
	CalendarEvents(ctx context.Context, sess *session.Session) ([]model.CalendarEvent, error)
}

type managerSlotService struct {
	slots     SlotAPI
	validator *validator.SlotValidator
	events    *events.Publisher
	log       *logger.Logger
}

func NewManagerSlotService(
	slots SlotAPI,
	v *validator.SlotValidator,
	publisher *events.Publisher,
	log *logger.Logger,
) ManagerSlotService {
	return &managerSlotService{
		slots:     slots,
		validator: v,
		events:    publisher,
		log:       log,
	}
}

func (s *managerSlotService) List(ctx context.Context, sess *session.Session) ([]model.ServiceSlot, error) {
	slots, err := s.slots.GetAll(ctx, sess.Token)
	if err != nil {
		s.log.Error("Failed to fetch service slots", "user_id", sess.UserID, "error", err)
		return nil, err
	}

	normalizeClocks(slots)
	return slots, nil
}

// Save validates locally before any network call: an invalid or colliding
// slot never leaves the portal. slotID == 0 creates, anything else updates.
// After a successful save the list is fully refetched.
func (s *managerSlotService) Save(ctx context.Context, sess *session.Session, slotID int, in *model.SlotInput) ([]model.ServiceSlot, error) {
	if err := s.validator.Validate(in); err != nil {
		s.log.Warn("Slot validation failed",
			"user_id", sess.UserID,
			"service_date", in.ServiceDate,
			"error", err,
		)
		return nil, apperrors.Validation("Slot validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	existing, err := s.slots.GetAll(ctx, sess.Token)
	if err != nil {
		s.log.Error("Failed to fetch slots for overlap check", "user_id", sess.UserID, "error", err)
		return nil, err
	}

	if err := s.validator.CheckOverlap(existing, in, slotID); err != nil {
		return nil, apperrors.Validation(validator.OverlapMessage, nil)
	}

	if slotID == 0 {
		if _, err := s.slots.Create(ctx, sess.Token, *in); err != nil {
			s.log.Error("Failed to create slot", "user_id", sess.UserID, "error", err)
			return nil, err
		}
		s.events.Publish(ctx, events.TypeSlotCreated, sess.UserID, map[string]any{
			"serviceDate": in.ServiceDate,
			"startTime":   in.StartTime,
			"endTime":     in.EndTime,
			"slots":       in.Slots,
		})
	} else {
		if _, err := s.slots.Update(ctx, sess.Token, slotID, *in); err != nil {
			s.log.Error("Failed to update slot", "user_id", sess.UserID, "service_slot_id", slotID, "error", err)
			return nil, err
		}
		s.events.Publish(ctx, events.TypeSlotUpdated, sess.UserID, map[string]any{
			"serviceSlotId": slotID,
			"serviceDate":   in.ServiceDate,
		})
	}

	s.log.Info("Slot saved", "user_id", sess.UserID, "service_slot_id", slotID, "service_date", in.ServiceDate)

	return s.List(ctx, sess)
}

// CalendarEvents projects the slot list onto the manager calendar, one event
// per slot spanning its window on its service date.
func (s *managerSlotService) CalendarEvents(ctx context.Context, sess *session.Session) ([]model.CalendarEvent, error) {
	slots, err := s.List(ctx, sess)
	if err != nil {
		return nil, err
	}

	calendar := make([]model.CalendarEvent, 0, len(slots))
	for _, slot := range slots {
		start, err := combineDateTime(slot.ServiceDate, slot.StartTime)
		if err != nil {
			s.log.Warn("Skipping slot with unparseable schedule",
				"service_slot_id", slot.ServiceSlotID,
				"error", err,
			)
			continue
		}
		end, err := combineDateTime(slot.ServiceDate, slot.EndTime)
		if err != nil {
			s.log.Warn("Skipping slot with unparseable schedule",
				"service_slot_id", slot.ServiceSlotID,
				"error", err,
			)
			continue
		}

		calendar = append(calendar, model.CalendarEvent{
			ID:    slot.ServiceSlotID,
			Title: fmt.Sprintf("(%d/%d slots)", slot.AvailableSlots, slot.TotalSlots),
			Start: start,
			End:   end,
		})
	}

	return calendar, nil
}

func combineDateTime(date, clock string) (time.Time, error) {
	return time.Parse("2006-01-02 15:04", date+" "+validator.NormalizeClock(clock))
}

func normalizeClocks(slots []model.ServiceSlot) {
	for i := range slots {
		slots[i].StartTime = validator.NormalizeClock(slots[i].StartTime)
		slots[i].EndTime = validator.NormalizeClock(slots[i].EndTime)
	}
}
