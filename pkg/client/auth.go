package client

import (
	"context"
	"time"

	"garageportal/pkg/model"
)

// AuthClient talks to the user service's auth surface. Sign-in, sign-up,
// forgot-password and OTP verification are public; the rest require a token.
type AuthClient struct {
	backend *Backend
}

func NewAuthClient(baseURL string, timeout time.Duration) *AuthClient {
	return &AuthClient{backend: NewBackend(baseURL, timeout)}
}

// Ping exposes the upstream reachability probe for the readiness check.
func (c *AuthClient) Ping(ctx context.Context) error {
	return c.backend.Ping(ctx)
}

func (c *AuthClient) SignIn(ctx context.Context, email, password string) (model.AuthResult, error) {
	resp, err := c.backend.Post(ctx, "/sign-in", "", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return model.AuthResult{}, err
	}
	return UnwrapOne[model.AuthResult](resp)
}

func (c *AuthClient) SignUp(ctx context.Context, email, password string) error {
	resp, err := c.backend.Post(ctx, "/sign-up", "", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return err
	}
	return Check(resp)
}

func (c *AuthClient) ForgotPassword(ctx context.Context, email string) error {
	resp, err := c.backend.Post(ctx, "/forgot-password", "", map[string]string{
		"email": email,
	})
	if err != nil {
		return err
	}
	return Check(resp)
}

func (c *AuthClient) VerifyOTP(ctx context.Context, otpCode, email string) (model.AuthResult, error) {
	resp, err := c.backend.Post(ctx, "/verify/otp", "", map[string]string{
		"otpCode": otpCode,
		"email":   email,
	})
	if err != nil {
		return model.AuthResult{}, err
	}
	return UnwrapOne[model.AuthResult](resp)
}

func (c *AuthClient) ResetPassword(ctx context.Context, token, currentPassword, newPassword string) error {
	resp, err := c.backend.Patch(ctx, "/reset/password", token, map[string]string{
		"currentPassword": currentPassword,
		"newPassword":     newPassword,
	})
	if err != nil {
		return err
	}
	return Check(resp)
}

// CreateServiceManager registers a new service-manager account; admin only.
func (c *AuthClient) CreateServiceManager(ctx context.Context, token, email string) (model.User, error) {
	resp, err := c.backend.Post(ctx, "/admin/service-manager", token, map[string]string{
		"email": email,
	})
	if err != nil {
		return model.User{}, err
	}
	return UnwrapOne[model.User](resp)
}
