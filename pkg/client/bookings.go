package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"garageportal/pkg/model"
)

type BookingClient struct {
	backend *Backend
}

func NewBookingClient(baseURL string, timeout time.Duration) *BookingClient {
	return &BookingClient{backend: NewBackend(baseURL, timeout)}
}

// BookingQuery mirrors the booking backend's list parameters: offset is a
// 1-based page number, limit the page size.
type BookingQuery struct {
	Status string
	Date   string
	Offset int
	Limit  int
}

func (q BookingQuery) encode(export bool) string {
	v := url.Values{}
	if q.Status != "" {
		v.Set("status", q.Status)
	}
	if q.Date != "" {
		v.Set("date", q.Date)
	}
	if q.Offset > 0 {
		v.Set("offset", strconv.Itoa(q.Offset))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if export {
		v.Set("export", "true")
	}
	if encoded := v.Encode(); encoded != "" {
		return "?" + encoded
	}
	return ""
}

func (c *BookingClient) Create(ctx context.Context, token string, in model.BookingInput) ([]model.BookingRequest, error) {
	resp, err := c.backend.Post(ctx, "", token, in)
	if err != nil {
		return nil, err
	}
	return Unwrap[model.BookingRequest](resp)
}

// List returns one page of booking requests; managers and admins see all of
// them.
func (c *BookingClient) List(ctx context.Context, token string, q BookingQuery) (*model.Page[model.BookingRequest], error) {
	resp, err := c.backend.Get(ctx, q.encode(false), token)
	if err != nil {
		return nil, err
	}
	return UnwrapPage[model.BookingRequest](resp)
}

// ListMine returns one page of the calling owner's own requests.
func (c *BookingClient) ListMine(ctx context.Context, token string, q BookingQuery) (*model.Page[model.BookingRequest], error) {
	resp, err := c.backend.Get(ctx, "/my"+q.encode(false), token)
	if err != nil {
		return nil, err
	}
	return UnwrapPage[model.BookingRequest](resp)
}

// ExportAll returns the flat, non-paginated list the admin calendar renders.
func (c *BookingClient) ExportAll(ctx context.Context, token string) ([]model.BookingRequest, error) {
	resp, err := c.backend.Get(ctx, BookingQuery{}.encode(true), token)
	if err != nil {
		return nil, err
	}
	return Unwrap[model.BookingRequest](resp)
}

func (c *BookingClient) UpdateStatus(ctx context.Context, token string, requestID int, status string) error {
	resp, err := c.backend.Patch(ctx, fmt.Sprintf("/%d", requestID), token, map[string]string{
		"status": status,
	})
	if err != nil {
		return err
	}
	return Check(resp)
}
