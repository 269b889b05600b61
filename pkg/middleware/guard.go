package middleware

import (
	"net/http"
	"strings"
	"time"

	"garageportal/pkg/logger"
	"garageportal/pkg/session"
)

// Whitelist paths reachable without a session. Everything else bounces back
// to the landing page.
var openPaths = map[string]bool{
	"/":                       true,
	"/login":                  true,
	"/signup":                 true,
	"/forgot-password":        true,
	"/forgot-password/verify": true,
	"/health":                 true,
}

// SessionGuard is the navigation guard: it resolves the persisted token into
// a session and stores it on the request context. Requests without a valid
// session are sent back to the landing page; stale cookies are cleared on
// the way out.
func SessionGuard(store *session.TokenStore, cache *session.Cache, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if openPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			token := store.Read(r)
			if token == "" {
				redirectToLanding(w, r)
				return
			}

			sess, ok := cache.Get(token)
			if ok && !sess.ExpiresAt.IsZero() && time.Now().After(sess.ExpiresAt) {
				cache.Drop(token)
				store.Clear(w)
				redirectToLanding(w, r)
				return
			}
			if !ok {
				var err error
				sess, err = session.Decode(token)
				if err != nil {
					log.Warn("Rejected session token",
						"path", r.URL.Path,
						"reason", err.Error(),
					)
					cache.Drop(token)
					store.Clear(w)
					redirectToLanding(w, r)
					return
				}
				cache.Put(sess)
			}

			next.ServeHTTP(w, r.WithContext(session.NewContext(r.Context(), sess)))
		})
	}
}

// redirectToLanding sends browsers back to "/" and answers API callers with
// a bare 401, matching how they issued the request.
func redirectToLanding(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet && acceptsHTML(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"Authentication required"}`))
}

func acceptsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}
