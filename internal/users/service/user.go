package service

import (
	"context"
	"strings"
	"sync"

	apperrors "garageportal/pkg/errors"
	"garageportal/pkg/events"
	"garageportal/pkg/logger"
	"garageportal/pkg/model"
	"garageportal/pkg/sanitizer"
	"garageportal/pkg/session"
)

// Status filter values for the admin user tables.
const (
	FilterAll      = "ALL"
	FilterActive   = "ACTIVE"
	FilterInactive = "INACTIVE"
)

// UsersAPI is the slice of the user backend the admin screens consume.
type UsersAPI interface {
	ByRole(ctx context.Context, token string, roles []string) ([]model.User, error)
	Activate(ctx context.Context, token string, userID int) error
	Deactivate(ctx context.Context, token string, userID int) error
}

// ManagerRegistrar creates service-manager accounts on the auth backend.
type ManagerRegistrar interface {
	CreateServiceManager(ctx context.Context, token, email string) (model.User, error)
}

type UserService interface {
	Managers(ctx context.Context, sess *session.Session, filter string) ([]model.User, error)
	Owners(ctx context.Context, sess *session.Session, filter string) ([]model.User, error)
	SetActive(ctx context.Context, sess *session.Session, userID int, active bool) error
	CreateManager(ctx context.Context, sess *session.Session, email string) ([]model.User, error)
}

// adminState is one admin's user tables, flipped in place after a
// successful activate/deactivate and extended after a manager is created.
type adminState struct {
	mu       sync.RWMutex
	managers []model.User
	owners   []model.User
}

type userService struct {
	users     UsersAPI
	registrar ManagerRegistrar
	events    *events.Publisher
	log       *logger.Logger

	mu     sync.RWMutex
	states map[string]*adminState
}

func NewUserService(users UsersAPI, registrar ManagerRegistrar, publisher *events.Publisher, log *logger.Logger) UserService {
	return &userService{
		users:     users,
		registrar: registrar,
		events:    publisher,
		log:       log,
		states:    make(map[string]*adminState),
	}
}

func (s *userService) state(userID string) *adminState {
	s.mu.RLock()
	st, ok := s.states[userID]
	s.mu.RUnlock()
	if ok {
		return st
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok = s.states[userID]; !ok {
		st = &adminState{}
		s.states[userID] = st
	}
	return st
}

func (s *userService) Managers(ctx context.Context, sess *session.Session, filter string) ([]model.User, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}

	users, err := s.users.ByRole(ctx, sess.Token, []string{model.RoleServiceManager})
	if err != nil {
		s.log.Error("Failed to fetch service managers", "user_id", sess.UserID, "error", err)
		return nil, err
	}

	st := s.state(sess.UserID)
	st.mu.Lock()
	st.managers = users
	st.mu.Unlock()

	return filterByStatus(users, filter)
}

func (s *userService) Owners(ctx context.Context, sess *session.Session, filter string) ([]model.User, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}

	users, err := s.users.ByRole(ctx, sess.Token, []string{model.RoleVehicleOwner})
	if err != nil {
		s.log.Error("Failed to fetch vehicle owners", "user_id", sess.UserID, "error", err)
		return nil, err
	}

	st := s.state(sess.UserID)
	st.mu.Lock()
	st.owners = users
	st.mu.Unlock()

	return filterByStatus(users, filter)
}

// SetActive issues the upstream PATCH and flips the local flag only on
// success. A failure leaves state untouched; there is no rollback path.
func (s *userService) SetActive(ctx context.Context, sess *session.Session, userID int, active bool) error {
	if err := requireAdmin(sess); err != nil {
		return err
	}
	if userID <= 0 {
		return apperrors.InvalidInput("Invalid user ID")
	}

	var err error
	if active {
		err = s.users.Activate(ctx, sess.Token, userID)
	} else {
		err = s.users.Deactivate(ctx, sess.Token, userID)
	}
	if err != nil {
		s.log.Error("Failed to toggle account",
			"user_id", sess.UserID,
			"target_user_id", userID,
			"active", active,
			"error", err,
		)
		return err
	}

	st := s.state(sess.UserID)
	st.mu.Lock()
	flipActive(st.managers, userID, active)
	flipActive(st.owners, userID, active)
	st.mu.Unlock()

	s.log.Info("Account toggled", "user_id", sess.UserID, "target_user_id", userID, "active", active)
	s.events.Publish(ctx, events.TypeAccountToggled, sess.UserID, map[string]any{
		"targetUserId": userID,
		"active":       active,
	})

	return nil
}

// CreateManager registers a manager account and appends it to the local
// manager table.
func (s *userService) CreateManager(ctx context.Context, sess *session.Session, email string) ([]model.User, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}

	email = sanitizer.NormalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, apperrors.InvalidInput("A valid email address is required")
	}

	created, err := s.registrar.CreateServiceManager(ctx, sess.Token, email)
	if err != nil {
		s.log.Error("Failed to create service manager", "user_id", sess.UserID, "email", email, "error", err)
		return nil, err
	}

	st := s.state(sess.UserID)
	st.mu.Lock()
	st.managers = append(st.managers, created)
	snapshot := make([]model.User, len(st.managers))
	copy(snapshot, st.managers)
	st.mu.Unlock()

	s.log.Info("Service manager created", "user_id", sess.UserID, "created_user_id", created.UserID)
	s.events.Publish(ctx, events.TypeManagerCreated, sess.UserID, map[string]any{
		"createdUserId": created.UserID,
		"email":         email,
	})

	return snapshot, nil
}

func requireAdmin(sess *session.Session) error {
	if sess.Role != model.RoleGarageAdmin {
		return apperrors.Forbidden("Only garage admins manage user accounts")
	}
	return nil
}

func filterByStatus(users []model.User, filter string) ([]model.User, error) {
	switch strings.ToUpper(strings.TrimSpace(filter)) {
	case "", FilterAll:
		out := make([]model.User, len(users))
		copy(out, users)
		return out, nil
	case FilterActive:
		return keepByActive(users, true), nil
	case FilterInactive:
		return keepByActive(users, false), nil
	default:
		return nil, apperrors.InvalidInput("Status filter must be ALL, ACTIVE or INACTIVE")
	}
}

func keepByActive(users []model.User, active bool) []model.User {
	out := make([]model.User, 0, len(users))
	for _, u := range users {
		if u.Active == active {
			out = append(out, u)
		}
	}
	return out
}

func flipActive(users []model.User, userID int, active bool) {
	for i := range users {
		if users[i].UserID == userID {
			users[i].Active = active
		}
	}
}
