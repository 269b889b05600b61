package service

import (
	"context"

	"garageportal/pkg/model"
)

// SlotAPI is the slice of the slot backend the slot views consume.
type SlotAPI interface {
	GetAll(ctx context.Context, token string) ([]model.ServiceSlot, error)
	Create(ctx context.Context, token string, in model.SlotInput) ([]model.ServiceSlot, error)
	Update(ctx context.Context, token string, slotID int, in model.SlotInput) ([]model.ServiceSlot, error)
}

// BookingAPI is the slice of the booking backend the owner view consumes.
type BookingAPI interface {
	Create(ctx context.Context, token string, in model.BookingInput) ([]model.BookingRequest, error)
}

// VehicleAPI supplies the owner's vehicles for the booking form.
type VehicleAPI interface {
	List(ctx context.Context, token string) ([]model.Vehicle, error)
}
