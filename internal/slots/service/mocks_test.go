package service

import (
	"context"

	"garageportal/pkg/events"
	"garageportal/pkg/logger"
	"garageportal/pkg/model"
	"garageportal/pkg/session"
)

type mockSlotAPI struct {
	getAllFunc func(ctx context.Context, token string) ([]model.ServiceSlot, error)
	createFunc func(ctx context.Context, token string, in model.SlotInput) ([]model.ServiceSlot, error)
	updateFunc func(ctx context.Context, token string, slotID int, in model.SlotInput) ([]model.ServiceSlot, error)
}

func (m *mockSlotAPI) GetAll(ctx context.Context, token string) ([]model.ServiceSlot, error) {
	return m.getAllFunc(ctx, token)
}

func (m *mockSlotAPI) Create(ctx context.Context, token string, in model.SlotInput) ([]model.ServiceSlot, error) {
	return m.createFunc(ctx, token, in)
}

func (m *mockSlotAPI) Update(ctx context.Context, token string, slotID int, in model.SlotInput) ([]model.ServiceSlot, error) {
	return m.updateFunc(ctx, token, slotID, in)
}

type mockBookingAPI struct {
	createFunc func(ctx context.Context, token string, in model.BookingInput) ([]model.BookingRequest, error)
}

func (m *mockBookingAPI) Create(ctx context.Context, token string, in model.BookingInput) ([]model.BookingRequest, error) {
	return m.createFunc(ctx, token, in)
}

type mockVehicleAPI struct {
	listFunc func(ctx context.Context, token string) ([]model.Vehicle, error)
}

func (m *mockVehicleAPI) List(ctx context.Context, token string) ([]model.Vehicle, error) {
	return m.listFunc(ctx, token)
}

func testSession(userID, role string) *session.Session {
	return &session.Session{UserID: userID, Role: role, Token: "test-token"}
}

func disabledPublisher() *events.Publisher {
	return events.NewPublisher(nil, "", "test", logger.Discard())
}
