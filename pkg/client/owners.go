package client

import (
	"context"
	"time"

	"garageportal/pkg/model"
)

// OwnerClient talks to the vehicle-owner service, which owns the name and
// phone-number half of an owner's profile.
type OwnerClient struct {
	backend *Backend
}

func NewOwnerClient(baseURL string, timeout time.Duration) *OwnerClient {
	return &OwnerClient{backend: NewBackend(baseURL, timeout)}
}

func (c *OwnerClient) Get(ctx context.Context, token string) (model.OwnerProfile, error) {
	resp, err := c.backend.Get(ctx, "", token)
	if err != nil {
		return model.OwnerProfile{}, err
	}
	return UnwrapOne[model.OwnerProfile](resp)
}

func (c *OwnerClient) Update(ctx context.Context, token string, input model.OwnerProfileUpdate) (model.OwnerProfile, error) {
	resp, err := c.backend.Patch(ctx, "", token, input)
	if err != nil {
		return model.OwnerProfile{}, err
	}
	return UnwrapOne[model.OwnerProfile](resp)
}
