package client

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"garageportal/pkg/model"
)

type UserClient struct {
	backend *Backend
}

func NewUserClient(baseURL string, timeout time.Duration) *UserClient {
	return &UserClient{backend: NewBackend(baseURL, timeout)}
}

func (c *UserClient) Profile(ctx context.Context, token string) (model.User, error) {
	resp, err := c.backend.Get(ctx, "/profile", token)
	if err != nil {
		return model.User{}, err
	}
	return UnwrapOne[model.User](resp)
}

func (c *UserClient) ByRole(ctx context.Context, token string, roles []string) ([]model.User, error) {
	path := ""
	if len(roles) > 0 {
		path = "?" + url.Values{"roles": {strings.Join(roles, ",")}}.Encode()
	}

	resp, err := c.backend.Get(ctx, path, token)
	if err != nil {
		return nil, err
	}
	return Unwrap[model.User](resp)
}

func (c *UserClient) Activate(ctx context.Context, token string, userID int) error {
	resp, err := c.backend.Patch(ctx, fmt.Sprintf("/activate/%d", userID), token, struct{}{})
	if err != nil {
		return err
	}
	return Check(resp)
}

func (c *UserClient) Deactivate(ctx context.Context, token string, userID int) error {
	resp, err := c.backend.Patch(ctx, fmt.Sprintf("/deactivate/%d", userID), token, struct{}{})
	if err != nil {
		return err
	}
	return Check(resp)
}
