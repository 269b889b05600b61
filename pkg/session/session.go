package session

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrNoToken      = errors.New("no session token")
	ErrInvalidToken = errors.New("invalid session token")
	ErrExpiredToken = errors.New("expired session token")
)

// Claims is the identity the auth backend signs into the access token. The
// portal decodes it locally and never verifies the signature; the backends
// do that on every authenticated call.
type Claims struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Session is the decoded identity derived from a persisted token, held for
// the browsing session.
type Session struct {
	UserID    string
	Username  string
	Role      string
	ExpiresAt time.Time
	Token     string
}

// Decode parses a token without a server round-trip. Expired tokens are
// invalid sessions, not a distinct recoverable state.
func Decode(raw string) (*Session, error) {
	if raw == "" {
		return nil, ErrNoToken
	}

	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return nil, ErrInvalidToken
	}

	sess := &Session{
		UserID:   claims.UserID,
		Username: claims.Username,
		Role:     claims.Role,
		Token:    raw,
	}
	if claims.ExpiresAt != nil {
		sess.ExpiresAt = claims.ExpiresAt.Time
		if time.Now().After(sess.ExpiresAt) {
			return nil, ErrExpiredToken
		}
	}

	return sess, nil
}

type contextKey string

const sessionKey contextKey = "portal_session"

func NewContext(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, sessionKey, sess)
}

// FromContext returns the session the guard stored, or nil on whitelisted
// paths.
func FromContext(ctx context.Context) *Session {
	sess, _ := ctx.Value(sessionKey).(*Session)
	return sess
}
