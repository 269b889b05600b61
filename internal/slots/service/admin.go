package service

import (
	"context"

	"garageportal/pkg/logger"
	"garageportal/pkg/model"
	"garageportal/pkg/session"
)

// AdminSlotsView is the read-only admin slot list with its date filter.
type AdminSlotsView struct {
	Slots []model.ServiceSlot `json:"slots"`
	Date  string              `json:"date,omitempty"`
}

type AdminSlotService interface {
	View(ctx context.Context, sess *session.Session, date string) (*AdminSlotsView, error)
}

type adminSlotService struct {
	slots SlotAPI
	log   *logger.Logger
}

func NewAdminSlotService(slots SlotAPI, log *logger.Logger) AdminSlotService {
	return &adminSlotService{slots: slots, log: log}
}

func (s *adminSlotService) View(ctx context.Context, sess *session.Session, date string) (*AdminSlotsView, error) {
	slots, err := s.slots.GetAll(ctx, sess.Token)
	if err != nil {
		s.log.Error("Failed to fetch service slots", "user_id", sess.UserID, "error", err)
		return nil, err
	}
	normalizeClocks(slots)

	if date != "" {
		slots = filterByDate(slots, date)
	}

	return &AdminSlotsView{Slots: slots, Date: date}, nil
}
