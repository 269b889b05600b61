package service

import (
	"context"
	"errors"
	"testing"

	"garageportal/internal/profile/validator"
	apperrors "garageportal/pkg/errors"
	"garageportal/pkg/events"
	"garageportal/pkg/logger"
	"garageportal/pkg/model"
	"garageportal/pkg/session"
)

type mockAccountAPI struct {
	profileFunc func(ctx context.Context, token string) (model.User, error)
}

func (m *mockAccountAPI) Profile(ctx context.Context, token string) (model.User, error) {
	return m.profileFunc(ctx, token)
}

type mockOwnerAccountAPI struct {
	getFunc    func(ctx context.Context, token string) (model.OwnerProfile, error)
	updateFunc func(ctx context.Context, token string, input model.OwnerProfileUpdate) (model.OwnerProfile, error)
}

func (m *mockOwnerAccountAPI) Get(ctx context.Context, token string) (model.OwnerProfile, error) {
	return m.getFunc(ctx, token)
}

func (m *mockOwnerAccountAPI) Update(ctx context.Context, token string, input model.OwnerProfileUpdate) (model.OwnerProfile, error) {
	return m.updateFunc(ctx, token, input)
}

type mockPasswordAPI struct {
	resetFunc func(ctx context.Context, token, currentPassword, newPassword string) error
}

func (m *mockPasswordAPI) ResetPassword(ctx context.Context, token, currentPassword, newPassword string) error {
	return m.resetFunc(ctx, token, currentPassword, newPassword)
}

func ownerSession() *session.Session {
	return &session.Session{UserID: "17", Role: model.RoleVehicleOwner, Token: "test-token"}
}

func newProfileService(accounts AccountAPI, owners OwnerAccountAPI, passwords PasswordAPI) ProfileService {
	log := logger.Discard()
	return NewProfileService(accounts, owners, passwords,
		validator.NewProfileValidator(log),
		events.NewPublisher(nil, "", "test", log),
		log,
	)
}

func fixtureUser() model.User {
	return model.User{UserID: 17, Email: "owner@garage.test", Role: model.RoleVehicleOwner, Active: true}
}

func TestProfileService_ViewOwnerIncludesAccount(t *testing.T) {
	accounts := &mockAccountAPI{
		profileFunc: func(ctx context.Context, token string) (model.User, error) {
			return fixtureUser(), nil
		},
	}
	owners := &mockOwnerAccountAPI{
		getFunc: func(ctx context.Context, token string) (model.OwnerProfile, error) {
			return model.OwnerProfile{VehicleOwnerID: 5, FirstName: "Dana"}, nil
		},
	}
	svc := newProfileService(accounts, owners, &mockPasswordAPI{})

	view, err := svc.View(context.Background(), ownerSession())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Owner == nil || view.Owner.FirstName != "Dana" {
		t.Errorf("owner view should include the owner account, got %+v", view.Owner)
	}
}

func TestProfileService_ViewManagerSkipsOwnerAccount(t *testing.T) {
	accounts := &mockAccountAPI{
		profileFunc: func(ctx context.Context, token string) (model.User, error) {
			return model.User{UserID: 3, Role: model.RoleServiceManager}, nil
		},
	}
	ownerCalled := false
	owners := &mockOwnerAccountAPI{
		getFunc: func(ctx context.Context, token string) (model.OwnerProfile, error) {
			ownerCalled = true
			return model.OwnerProfile{}, nil
		},
	}
	svc := newProfileService(accounts, owners, &mockPasswordAPI{})

	view, err := svc.View(context.Background(), &session.Session{UserID: "3", Role: model.RoleServiceManager, Token: "t"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Owner != nil {
		t.Error("manager view should not include an owner account")
	}
	if ownerCalled {
		t.Error("manager view must not call the vehicle-owner service")
	}
}

func TestProfileService_UpdateSanitizesBeforeUpstream(t *testing.T) {
	var sent model.OwnerProfileUpdate
	accounts := &mockAccountAPI{
		profileFunc: func(ctx context.Context, token string) (model.User, error) {
			return fixtureUser(), nil
		},
	}
	owners := &mockOwnerAccountAPI{
		updateFunc: func(ctx context.Context, token string, input model.OwnerProfileUpdate) (model.OwnerProfile, error) {
			sent = input
			return model.OwnerProfile{FirstName: input.FirstName}, nil
		},
	}
	svc := newProfileService(accounts, owners, &mockPasswordAPI{})

	view, err := svc.Update(context.Background(), ownerSession(), &model.OwnerProfileUpdate{
		FirstName:   "  dana ",
		LastName:    "  levi ",
		PhoneNumber: "+972 50-123 4567",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sent.PhoneNumber != "+972501234567" {
		t.Errorf("phone should be normalized before the call, got %q", sent.PhoneNumber)
	}
	if view.Owner == nil {
		t.Fatal("update should return the refreshed owner account")
	}
}

func TestProfileService_UpdateInvalidPhoneSkipsNetwork(t *testing.T) {
	called := false
	owners := &mockOwnerAccountAPI{
		updateFunc: func(ctx context.Context, token string, input model.OwnerProfileUpdate) (model.OwnerProfile, error) {
			called = true
			return model.OwnerProfile{}, nil
		},
	}
	svc := newProfileService(&mockAccountAPI{}, owners, &mockPasswordAPI{})

	_, err := svc.Update(context.Background(), ownerSession(), &model.OwnerProfileUpdate{
		FirstName:   "Dana",
		LastName:    "Levi",
		PhoneNumber: "not-a-phone",
	})
	if apperrors.AsAppError(err).Code != apperrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if called {
		t.Error("invalid update must not reach the backend")
	}
}

func TestProfileService_UpdateForbiddenForNonOwners(t *testing.T) {
	svc := newProfileService(&mockAccountAPI{}, &mockOwnerAccountAPI{}, &mockPasswordAPI{})

	_, err := svc.Update(context.Background(),
		&session.Session{UserID: "1", Role: model.RoleGarageAdmin, Token: "t"},
		&model.OwnerProfileUpdate{FirstName: "Dana", LastName: "Levi", PhoneNumber: "+972501234567"},
	)
	if apperrors.AsAppError(err).Code != apperrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestProfileService_ChangePassword(t *testing.T) {
	passwords := &mockPasswordAPI{
		resetFunc: func(ctx context.Context, token, currentPassword, newPassword string) error {
			if currentPassword != "old-pass" || newPassword != "Garage#2026" {
				t.Errorf("unexpected passwords %q / %q", currentPassword, newPassword)
			}
			return nil
		},
	}
	svc := newProfileService(&mockAccountAPI{}, &mockOwnerAccountAPI{}, passwords)
	sess := ownerSession()

	if err := svc.ChangePassword(context.Background(), sess, &model.PasswordReset{
		CurrentPassword: "old-pass",
		NewPassword:     "Garage#2026",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := svc.ChangePassword(context.Background(), sess, &model.PasswordReset{
		CurrentPassword: "old-pass",
		NewPassword:     "weak",
	})
	if apperrors.AsAppError(err).Code != apperrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestProfileService_ChangePasswordUpstreamRejection(t *testing.T) {
	upstream := errors.New("Current password is incorrect")
	passwords := &mockPasswordAPI{
		resetFunc: func(ctx context.Context, token, currentPassword, newPassword string) error {
			return upstream
		},
	}
	svc := newProfileService(&mockAccountAPI{}, &mockOwnerAccountAPI{}, passwords)

	err := svc.ChangePassword(context.Background(), ownerSession(), &model.PasswordReset{
		CurrentPassword: "wrong",
		NewPassword:     "Garage#2026",
	})
	if !errors.Is(err, upstream) {
		t.Fatalf("upstream error should surface verbatim, got %v", err)
	}
}
