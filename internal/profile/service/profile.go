package service

import (
	"context"

	"garageportal/internal/profile/validator"
	apperrors "garageportal/pkg/errors"
	"garageportal/pkg/events"
	"garageportal/pkg/logger"
	"garageportal/pkg/model"
	"garageportal/pkg/sanitizer"
	"garageportal/pkg/session"
)

type AccountAPI interface {
	Profile(ctx context.Context, token string) (model.User, error)
}

// OwnerAccountAPI is the vehicle-owner service surface holding the name and
// phone half of an owner's profile.
type OwnerAccountAPI interface {
	Get(ctx context.Context, token string) (model.OwnerProfile, error)
	Update(ctx context.Context, token string, input model.OwnerProfileUpdate) (model.OwnerProfile, error)
}

type PasswordAPI interface {
	ResetPassword(ctx context.Context, token, currentPassword, newPassword string) error
}

// ProfileView joins the account record with the owner detail. Owner is nil
// for managers and admins.
type ProfileView struct {
	User  model.User          `json:"user"`
	Owner *model.OwnerProfile `json:"owner,omitempty"`
}

type ProfileService interface {
	View(ctx context.Context, sess *session.Session) (*ProfileView, error)
	Update(ctx context.Context, sess *session.Session, in *model.OwnerProfileUpdate) (*ProfileView, error)
	ChangePassword(ctx context.Context, sess *session.Session, in *model.PasswordReset) error
}

type profileService struct {
	accounts  AccountAPI
	owners    OwnerAccountAPI
	passwords PasswordAPI
	validator *validator.ProfileValidator
	events    *events.Publisher
	log       *logger.Logger
}

func NewProfileService(
	accounts AccountAPI,
	owners OwnerAccountAPI,
	passwords PasswordAPI,
	v *validator.ProfileValidator,
	publisher *events.Publisher,
	log *logger.Logger,
) ProfileService {
	return &profileService{
		accounts:  accounts,
		owners:    owners,
		passwords: passwords,
		validator: v,
		events:    publisher,
		log:       log,
	}
}

func (s *profileService) View(ctx context.Context, sess *session.Session) (*ProfileView, error) {
	user, err := s.accounts.Profile(ctx, sess.Token)
	if err != nil {
		s.log.Error("Failed to fetch profile", "user_id", sess.UserID, "error", err)
		return nil, err
	}

	view := &ProfileView{User: user}
	if sess.Role == model.RoleVehicleOwner {
		owner, err := s.owners.Get(ctx, sess.Token)
		if err != nil {
			s.log.Error("Failed to fetch owner account", "user_id", sess.UserID, "error", err)
			return nil, err
		}
		view.Owner = &owner
	}

	return view, nil
}

// Update sanitizes then validates before the network call, so a phone number
// the sanitizer rejects never reaches the backend.
func (s *profileService) Update(ctx context.Context, sess *session.Session, in *model.OwnerProfileUpdate) (*ProfileView, error) {
	if sess.Role != model.RoleVehicleOwner {
		return nil, apperrors.Forbidden("Only vehicle owners can edit the owner profile")
	}

	in.FirstName = sanitizer.NormalizeName(in.FirstName)
	in.LastName = sanitizer.NormalizeName(in.LastName)
	in.PhoneNumber = sanitizer.NormalizePhone(in.PhoneNumber)

	if err := s.validator.ValidateUpdate(in); err != nil {
		s.log.Warn("Profile validation failed", "user_id", sess.UserID, "error", err)
		return nil, apperrors.Validation("Profile validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	owner, err := s.owners.Update(ctx, sess.Token, *in)
	if err != nil {
		s.log.Error("Failed to update owner account", "user_id", sess.UserID, "error", err)
		return nil, err
	}

	s.events.Publish(ctx, events.TypeProfileUpdated, sess.UserID, nil)
	s.log.Info("Profile updated", "user_id", sess.UserID)

	user, err := s.accounts.Profile(ctx, sess.Token)
	if err != nil {
		s.log.Error("Failed to refetch profile after update", "user_id", sess.UserID, "error", err)
		return nil, err
	}

	return &ProfileView{User: user, Owner: &owner}, nil
}

func (s *profileService) ChangePassword(ctx context.Context, sess *session.Session, in *model.PasswordReset) error {
	if err := s.validator.ValidatePasswordReset(in); err != nil {
		return apperrors.Validation("Password validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	if err := s.passwords.ResetPassword(ctx, sess.Token, in.CurrentPassword, in.NewPassword); err != nil {
		s.log.Warn("Password reset rejected upstream", "user_id", sess.UserID, "error", err)
		return err
	}

	s.log.Info("Password changed", "user_id", sess.UserID)
	return nil
}
