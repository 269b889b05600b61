package service

import (
	"context"
	"errors"
	"testing"

	apperrors "garageportal/pkg/errors"
	"garageportal/pkg/events"
	"garageportal/pkg/logger"
	"garageportal/pkg/model"
	"garageportal/pkg/session"
)

type mockUsersAPI struct {
	byRoleFunc     func(ctx context.Context, token string, roles []string) ([]model.User, error)
	activateFunc   func(ctx context.Context, token string, userID int) error
	deactivateFunc func(ctx context.Context, token string, userID int) error
}

func (m *mockUsersAPI) ByRole(ctx context.Context, token string, roles []string) ([]model.User, error) {
	return m.byRoleFunc(ctx, token, roles)
}

func (m *mockUsersAPI) Activate(ctx context.Context, token string, userID int) error {
	return m.activateFunc(ctx, token, userID)
}

func (m *mockUsersAPI) Deactivate(ctx context.Context, token string, userID int) error {
	return m.deactivateFunc(ctx, token, userID)
}

type mockRegistrar struct {
	createFunc func(ctx context.Context, token, email string) (model.User, error)
}

func (m *mockRegistrar) CreateServiceManager(ctx context.Context, token, email string) (model.User, error) {
	return m.createFunc(ctx, token, email)
}

func adminSession() *session.Session {
	return &session.Session{UserID: "1", Role: model.RoleGarageAdmin, Token: "test-token"}
}

func newUserService(users UsersAPI, registrar ManagerRegistrar) UserService {
	return NewUserService(users, registrar, events.NewPublisher(nil, "", "test", logger.Discard()), logger.Discard())
}

func fixtureUsers() []model.User {
	return []model.User{
		{UserID: 10, Email: "a@garage.com", Role: model.RoleServiceManager, Active: true},
		{UserID: 11, Email: "b@garage.com", Role: model.RoleServiceManager, Active: false},
	}
}

func TestUserService_Managers(t *testing.T) {
	users := &mockUsersAPI{
		byRoleFunc: func(ctx context.Context, token string, roles []string) ([]model.User, error) {
			if len(roles) != 1 || roles[0] != model.RoleServiceManager {
				t.Errorf("unexpected roles %v", roles)
			}
			return fixtureUsers(), nil
		},
	}
	svc := newUserService(users, &mockRegistrar{})

	t.Run("admin only", func(t *testing.T) {
		sess := &session.Session{UserID: "2", Role: model.RoleServiceManager, Token: "t"}
		_, err := svc.Managers(context.Background(), sess, FilterAll)
		if apperrors.AsAppError(err).Code != apperrors.CodeForbidden {
			t.Fatalf("expected forbidden, got %v", err)
		}
	})

	t.Run("status filters", func(t *testing.T) {
		tests := []struct {
			filter  string
			wantIDs []int
			wantErr bool
		}{
			{filter: "", wantIDs: []int{10, 11}},
			{filter: FilterAll, wantIDs: []int{10, 11}},
			{filter: FilterActive, wantIDs: []int{10}},
			{filter: FilterInactive, wantIDs: []int{11}},
			{filter: "active", wantIDs: []int{10}},
			{filter: "BOGUS", wantErr: true},
		}

		for _, tt := range tests {
			got, err := svc.Managers(context.Background(), adminSession(), tt.filter)
			if tt.wantErr {
				if err == nil {
					t.Errorf("filter %q: expected error", tt.filter)
				}
				continue
			}
			if err != nil {
				t.Errorf("filter %q: unexpected error: %v", tt.filter, err)
				continue
			}
			if len(got) != len(tt.wantIDs) {
				t.Errorf("filter %q: expected %d users, got %d", tt.filter, len(tt.wantIDs), len(got))
				continue
			}
			for i, id := range tt.wantIDs {
				if got[i].UserID != id {
					t.Errorf("filter %q: expected user %d at %d, got %d", tt.filter, id, i, got[i].UserID)
				}
			}
		}
	})
}

func TestUserService_SetActive(t *testing.T) {
	t.Run("success flips the local flag", func(t *testing.T) {
		users := &mockUsersAPI{
			byRoleFunc: func(ctx context.Context, token string, roles []string) ([]model.User, error) {
				return fixtureUsers(), nil
			},
			deactivateFunc: func(ctx context.Context, token string, userID int) error {
				return nil
			},
		}
		svc := newUserService(users, &mockRegistrar{})
		sess := adminSession()

		if _, err := svc.Managers(context.Background(), sess, FilterAll); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := svc.SetActive(context.Background(), sess, 10, false); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		internal := svc.(*userService).state(sess.UserID)
		internal.mu.RLock()
		defer internal.mu.RUnlock()
		if internal.managers[0].Active {
			t.Error("expected user 10 flipped to inactive")
		}
	})

	t.Run("failure leaves state untouched", func(t *testing.T) {
		users := &mockUsersAPI{
			byRoleFunc: func(ctx context.Context, token string, roles []string) ([]model.User, error) {
				return fixtureUsers(), nil
			},
			activateFunc: func(ctx context.Context, token string, userID int) error {
				return errors.New("boom")
			},
		}
		svc := newUserService(users, &mockRegistrar{})
		sess := adminSession()

		if _, err := svc.Managers(context.Background(), sess, FilterAll); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := svc.SetActive(context.Background(), sess, 11, true); err == nil {
			t.Fatal("expected error")
		}

		internal := svc.(*userService).state(sess.UserID)
		internal.mu.RLock()
		defer internal.mu.RUnlock()
		if internal.managers[1].Active {
			t.Error("failed toggle must not flip the local flag")
		}
	})
}

func TestUserService_CreateManager(t *testing.T) {
	t.Run("appends the created account", func(t *testing.T) {
		users := &mockUsersAPI{
			byRoleFunc: func(ctx context.Context, token string, roles []string) ([]model.User, error) {
				return fixtureUsers(), nil
			},
		}
		registrar := &mockRegistrar{
			createFunc: func(ctx context.Context, token, email string) (model.User, error) {
				return model.User{UserID: 12, Email: email, Role: model.RoleServiceManager, Active: true}, nil
			},
		}
		svc := newUserService(users, registrar)
		sess := adminSession()

		if _, err := svc.Managers(context.Background(), sess, FilterAll); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		managers, err := svc.CreateManager(context.Background(), sess, "  New@Garage.com ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(managers) != 3 {
			t.Fatalf("expected 3 managers, got %d", len(managers))
		}
		if managers[2].Email != "new@garage.com" {
			t.Errorf("expected normalized email, got %s", managers[2].Email)
		}
	})

	t.Run("invalid email makes no network call", func(t *testing.T) {
		called := false
		registrar := &mockRegistrar{
			createFunc: func(ctx context.Context, token, email string) (model.User, error) {
				called = true
				return model.User{}, nil
			},
		}
		svc := newUserService(&mockUsersAPI{}, registrar)

		if _, err := svc.CreateManager(context.Background(), adminSession(), "not-an-email"); err == nil {
			t.Fatal("expected error")
		}
		if called {
			t.Error("registrar must not be called for an invalid email")
		}
	})
}
