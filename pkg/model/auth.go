package model

// AuthResult is what the auth backend returns from sign-in and OTP
// verification: the identity plus the bearer token the portal persists.
type AuthResult struct {
	UserID      string `json:"userId"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	AccessToken string `json:"accessToken"`
}

type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SignupInput enforces the signup password policy client-side: at least 8
// characters with a lower, an upper, a digit and a special character.
type SignupInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,signup_password"`
}

type OTPInput struct {
	Email   string `json:"email" validate:"required,email"`
	OTPCode string `json:"otpCode" validate:"required,len=6,numeric"`
}

type PasswordReset struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,signup_password"`
}
