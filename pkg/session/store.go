package session

import (
	"net/http"
	"strings"
	"sync"
)

// CookieName is the fixed key the token is persisted under, the portal's
// equivalent of the browser's local storage slot.
const CookieName = "garage_token"

// persistentCookieAge keeps the login cookie across browser restarts. The
// OTP flow writes a session-scoped cookie instead (no Max-Age).
const persistentCookieAge = 7 * 24 * 60 * 60

// TokenStore reads and writes the persisted token on the portal surface.
// Tokens arrive either as a bearer header (programmatic callers) or as the
// cookie written at login.
type TokenStore struct {
	Secure bool
}

func (s *TokenStore) Read(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if token := strings.TrimPrefix(h, "Bearer "); token != h {
			return token
		}
	}
	if c, err := r.Cookie(CookieName); err == nil {
		return c.Value
	}
	return ""
}

// Write persists the token. persistent=false yields a session-scoped cookie,
// used only by the OTP verification flow.
func (s *TokenStore) Write(w http.ResponseWriter, token string, persistent bool) {
	c := &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	if persistent {
		c.MaxAge = persistentCookieAge
	}
	http.SetCookie(w, c)
}

func (s *TokenStore) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Cache holds decoded sessions keyed by token string so the guard does not
// re-decode on every request within a browsing session. Entries live for the
// process lifetime; an expired token simply fails Decode on the next seed.
type Cache struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewCache() *Cache {
	return &Cache{sessions: make(map[string]*Session)}
}

func (c *Cache) Get(token string) (*Session, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	sess, ok := c.sessions[token]
	return sess, ok
}

func (c *Cache) Put(sess *Session) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sessions[sess.Token] = sess
}

func (c *Cache) Drop(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sessions, token)
}
