package client

import (
	"context"
	"fmt"
	"time"

	"garageportal/pkg/model"
)

type VehicleClient struct {
	backend *Backend
}

func NewVehicleClient(baseURL string, timeout time.Duration) *VehicleClient {
	return &VehicleClient{backend: NewBackend(baseURL, timeout)}
}

// List returns the caller's vehicles; the vehicle service scopes the result
// to the bearer token's account.
func (c *VehicleClient) List(ctx context.Context, token string) ([]model.Vehicle, error) {
	resp, err := c.backend.Get(ctx, "", token)
	if err != nil {
		return nil, err
	}
	return Unwrap[model.Vehicle](resp)
}

func (c *VehicleClient) Add(ctx context.Context, token string, input model.VehicleInput) (model.Vehicle, error) {
	resp, err := c.backend.Post(ctx, "", token, input)
	if err != nil {
		return model.Vehicle{}, err
	}
	return UnwrapOne[model.Vehicle](resp)
}

func (c *VehicleClient) Update(ctx context.Context, token string, vehicleID int, input model.VehicleInput) (model.Vehicle, error) {
	resp, err := c.backend.Patch(ctx, fmt.Sprintf("/%d", vehicleID), token, input)
	if err != nil {
		return model.Vehicle{}, err
	}
	return UnwrapOne[model.Vehicle](resp)
}

func (c *VehicleClient) Delete(ctx context.Context, token string, vehicleID int) error {
	resp, err := c.backend.Delete(ctx, fmt.Sprintf("/%d", vehicleID), token)
	if err != nil {
		return err
	}
	return Check(resp)
}
