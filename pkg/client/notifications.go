package client

import (
	"context"
	"fmt"
	"time"

	"garageportal/pkg/model"
)

type NotificationClient struct {
	backend *Backend
}

func NewNotificationClient(baseURL string, timeout time.Duration) *NotificationClient {
	return &NotificationClient{backend: NewBackend(baseURL, timeout)}
}

func (c *NotificationClient) GetAll(ctx context.Context, token string) ([]model.Notification, error) {
	resp, err := c.backend.Get(ctx, "", token)
	if err != nil {
		return nil, err
	}
	return Unwrap[model.Notification](resp)
}

func (c *NotificationClient) MarkViewed(ctx context.Context, token string, notificationID int) error {
	resp, err := c.backend.Patch(ctx, fmt.Sprintf("/%d", notificationID), token, struct{}{})
	if err != nil {
		return err
	}
	return Check(resp)
}
