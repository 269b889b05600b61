package service

import (
	"context"

	"garageportal/internal/auth/validator"
	apperrors "garageportal/pkg/errors"
	"garageportal/pkg/events"
	"garageportal/pkg/logger"
	"garageportal/pkg/model"
	"garageportal/pkg/session"
)

// AuthAPI is the slice of the auth backend the portal's public flows use.
type AuthAPI interface {
	SignIn(ctx context.Context, email, password string) (model.AuthResult, error)
	SignUp(ctx context.Context, email, password string) error
	ForgotPassword(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, otpCode, email string) (model.AuthResult, error)
}

// LoginResult is what a successful sign-in or OTP verification yields: the
// decoded session to seed, the raw token to persist, and where to send the
// user next.
type LoginResult struct {
	Session *session.Session
	Token   string
	Role    string
	Next    string
}

type AuthService interface {
	SignIn(ctx context.Context, in *model.Credentials) (*LoginResult, error)
	SignUp(ctx context.Context, in *model.SignupInput) error
	ForgotPassword(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, in *model.OTPInput) (*LoginResult, error)
}

type authService struct {
	api       AuthAPI
	validator *validator.AuthValidator
	events    *events.Publisher
	log       *logger.Logger
}

func NewAuthService(api AuthAPI, v *validator.AuthValidator, publisher *events.Publisher, log *logger.Logger) AuthService {
	return &authService{
		api:       api,
		validator: v,
		events:    publisher,
		log:       log,
	}
}

// SignIn exchanges credentials for a token and decodes it locally. The
// backend signs and verifies tokens; the portal only reads the claims.
func (s *authService) SignIn(ctx context.Context, in *model.Credentials) (*LoginResult, error) {
	if err := s.validator.ValidateCredentials(in); err != nil {
		return nil, apperrors.Validation("Sign-in validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	result, err := s.api.SignIn(ctx, in.Email, in.Password)
	if err != nil {
		s.log.Warn("Sign-in rejected upstream", "email", in.Email, "error", err)
		return nil, err
	}

	sess, err := session.Decode(result.AccessToken)
	if err != nil {
		s.log.Error("Sign-in returned an undecodable token", "email", in.Email, "error", err)
		return nil, apperrors.Internal("Sign-in failed. Please try again.", err)
	}

	s.events.Publish(ctx, events.TypeSignIn, sess.UserID, map[string]any{
		"role": sess.Role,
	})
	s.log.Info("User signed in", "user_id", sess.UserID, "role", sess.Role)

	return &LoginResult{
		Session: sess,
		Token:   result.AccessToken,
		Role:    sess.Role,
		Next:    "/slots",
	}, nil
}

func (s *authService) SignUp(ctx context.Context, in *model.SignupInput) error {
	if err := s.validator.ValidateSignup(in); err != nil {
		return apperrors.Validation("Sign-up validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	if err := s.api.SignUp(ctx, in.Email, in.Password); err != nil {
		s.log.Warn("Sign-up rejected upstream", "email", in.Email, "error", err)
		return err
	}

	s.events.Publish(ctx, events.TypeSignUp, in.Email, nil)
	s.log.Info("Account registered", "email", in.Email)
	return nil
}

func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	if email == "" {
		return apperrors.InvalidInput("Email is required")
	}

	if err := s.api.ForgotPassword(ctx, email); err != nil {
		s.log.Warn("Forgot-password request failed", "email", email, "error", err)
		return err
	}

	s.log.Info("OTP requested", "email", email)
	return nil
}

// VerifyOTP trades a one-time code for a token. The resulting session is
// scoped to the browsing session and lands on the profile screen so the user
// can set a new password.
func (s *authService) VerifyOTP(ctx context.Context, in *model.OTPInput) (*LoginResult, error) {
	if err := s.validator.ValidateOTP(in); err != nil {
		return nil, apperrors.Validation("OTP validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	result, err := s.api.VerifyOTP(ctx, in.OTPCode, in.Email)
	if err != nil {
		s.log.Warn("OTP verification rejected upstream", "email", in.Email, "error", err)
		return nil, err
	}

	sess, err := session.Decode(result.AccessToken)
	if err != nil {
		s.log.Error("OTP verification returned an undecodable token", "email", in.Email, "error", err)
		return nil, apperrors.Internal("Verification failed. Please try again.", err)
	}

	s.log.Info("OTP verified", "user_id", sess.UserID)

	return &LoginResult{
		Session: sess,
		Token:   result.AccessToken,
		Role:    sess.Role,
		Next:    "/profile",
	}, nil
}
