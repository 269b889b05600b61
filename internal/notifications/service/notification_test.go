package service

import (
	"context"
	"errors"
	"testing"

	apperrors "garageportal/pkg/errors"
	"garageportal/pkg/logger"
	"garageportal/pkg/model"
	"garageportal/pkg/session"
)

type mockNotificationsAPI struct {
	getAllFunc     func(ctx context.Context, token string) ([]model.Notification, error)
	markViewedFunc func(ctx context.Context, token string, notificationID int) error
}

func (m *mockNotificationsAPI) GetAll(ctx context.Context, token string) ([]model.Notification, error) {
	return m.getAllFunc(ctx, token)
}

func (m *mockNotificationsAPI) MarkViewed(ctx context.Context, token string, notificationID int) error {
	return m.markViewedFunc(ctx, token, notificationID)
}

func ownerSession() *session.Session {
	return &session.Session{UserID: "7", Role: model.RoleVehicleOwner, Token: "test-token"}
}

func fixtureNotifications() []model.Notification {
	return []model.Notification{
		{NotificationID: 1, Title: "Booking approved", NotificationType: model.NotificationBookingApproved, CreatedAt: "2026-03-01T09:00:00Z", Viewed: true},
		{NotificationID: 2, Title: "New booking request", NotificationType: model.NotificationBookingRequest, CreatedAt: "2026-03-03T12:00:00Z", Viewed: false},
		{NotificationID: 3, Title: "Booking rejected", NotificationType: model.NotificationBookingRejected, CreatedAt: "2026-03-02T15:30:00Z", Viewed: false},
	}
}

func TestNotificationService_List(t *testing.T) {
	api := &mockNotificationsAPI{
		getAllFunc: func(ctx context.Context, token string) ([]model.Notification, error) {
			return fixtureNotifications(), nil
		},
	}
	svc := NewNotificationService(api, logger.Discard())

	inbox, err := svc.List(context.Background(), ownerSession())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantOrder := []int{2, 3, 1}
	if len(inbox.Notifications) != len(wantOrder) {
		t.Fatalf("expected %d notifications, got %d", len(wantOrder), len(inbox.Notifications))
	}
	for i, want := range wantOrder {
		if inbox.Notifications[i].NotificationID != want {
			t.Errorf("position %d: expected notification %d, got %d", i, want, inbox.Notifications[i].NotificationID)
		}
	}
	if inbox.Unread != 2 {
		t.Errorf("expected 2 unread, got %d", inbox.Unread)
	}
}

func TestNotificationService_ListError(t *testing.T) {
	api := &mockNotificationsAPI{
		getAllFunc: func(ctx context.Context, token string) ([]model.Notification, error) {
			return nil, errors.New("upstream down")
		},
	}
	svc := NewNotificationService(api, logger.Discard())

	if _, err := svc.List(context.Background(), ownerSession()); err == nil {
		t.Fatal("expected error")
	}
}

func TestNotificationService_MarkViewed(t *testing.T) {
	patched := 0
	api := &mockNotificationsAPI{
		getAllFunc: func(ctx context.Context, token string) ([]model.Notification, error) {
			return fixtureNotifications(), nil
		},
		markViewedFunc: func(ctx context.Context, token string, notificationID int) error {
			patched = notificationID
			return nil
		},
	}
	svc := NewNotificationService(api, logger.Discard())
	sess := ownerSession()

	if _, err := svc.List(context.Background(), sess); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	inbox, err := svc.MarkViewed(context.Background(), sess, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if patched != 3 {
		t.Errorf("expected PATCH for notification 3, got %d", patched)
	}
	if inbox.Unread != 1 {
		t.Errorf("expected unread to drop to 1, got %d", inbox.Unread)
	}
	for _, n := range inbox.Notifications {
		if n.NotificationID == 3 && !n.Viewed {
			t.Error("notification 3 should be flagged viewed")
		}
	}
}

func TestNotificationService_MarkViewedInvalidID(t *testing.T) {
	svc := NewNotificationService(&mockNotificationsAPI{}, logger.Discard())

	_, err := svc.MarkViewed(context.Background(), ownerSession(), 0)
	if apperrors.AsAppError(err).Code != apperrors.CodeInvalidInput {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestNotificationService_MarkViewedUpstreamFailure(t *testing.T) {
	api := &mockNotificationsAPI{
		getAllFunc: func(ctx context.Context, token string) ([]model.Notification, error) {
			return fixtureNotifications(), nil
		},
		markViewedFunc: func(ctx context.Context, token string, notificationID int) error {
			return errors.New("upstream down")
		},
	}
	svc := NewNotificationService(api, logger.Discard())
	sess := ownerSession()

	if _, err := svc.List(context.Background(), sess); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.MarkViewed(context.Background(), sess, 2); err == nil {
		t.Fatal("expected error")
	}

	inbox, err := svc.List(context.Background(), sess)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inbox.Unread != 2 {
		t.Errorf("expected unread untouched at 2, got %d", inbox.Unread)
	}
}
