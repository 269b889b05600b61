package client

import (
	"context"
	"fmt"
	"time"

	"garageportal/pkg/model"
)

type SlotClient struct {
	backend *Backend
}

func NewSlotClient(baseURL string, timeout time.Duration) *SlotClient {
	return &SlotClient{backend: NewBackend(baseURL, timeout)}
}

func (c *SlotClient) GetAll(ctx context.Context, token string) ([]model.ServiceSlot, error) {
	resp, err := c.backend.Get(ctx, "", token)
	if err != nil {
		return nil, err
	}
	return Unwrap[model.ServiceSlot](resp)
}

func (c *SlotClient) Create(ctx context.Context, token string, in model.SlotInput) ([]model.ServiceSlot, error) {
	resp, err := c.backend.Post(ctx, "", token, in)
	if err != nil {
		return nil, err
	}
	return Unwrap[model.ServiceSlot](resp)
}

func (c *SlotClient) Update(ctx context.Context, token string, slotID int, in model.SlotInput) ([]model.ServiceSlot, error) {
	resp, err := c.backend.Patch(ctx, fmt.Sprintf("/%d", slotID), token, in)
	if err != nil {
		return nil, err
	}
	return Unwrap[model.ServiceSlot](resp)
}
