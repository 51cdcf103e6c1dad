package middleware

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"net/url"
	"sync"
	"time"

	domainUser "ellarises/internal/domain/user"
)

// contextKey is an unexported type for context keys in this package.
type contextKey string

const sessionContextKey contextKey = "session"

// Session represents an authenticated session. It carries a snapshot of the
// user row taken at login so templates can greet the user without a lookup.
type Session struct {
	UserID    string
	Email     string
	Role      string
	FirstName string
	LastName  string
	CreatedAt time.Time

	// Flash is a one-shot message consumed by the next page render.
	Flash string
}

// IsManager reports whether the session belongs to a manager.
// INVARIANT: Session fields are not mutated
func (s Session) IsManager() bool {
	return s.Role == domainUser.RoleManager
}

// SessionStore is an in-memory session store.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

// NewSessionStore creates a new in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]Session),
	}
}

// Create stores a new session and returns the token.
// PRE: userID, email, role are non-empty
// POST: Session is stored, token is returned
func (ss *SessionStore) Create(userID, email, role, firstName, lastName string) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.sessions[token] = Session{
		UserID:    userID,
		Email:     email,
		Role:      role,
		FirstName: firstName,
		LastName:  lastName,
		CreatedAt: time.Now(),
	}
	return token, nil
}

// Get retrieves a session by token.
// PRE: token is non-empty
// POST: Returns session if valid and not expired
func (ss *SessionStore) Get(token string) (Session, bool) {
	ss.mu.RLock()
	session, ok := ss.sessions[token]
	ss.mu.RUnlock()
	if !ok {
		return Session{}, false
	}
	// Sessions expire after 24 hours. Expiry mutates the map, so it needs
	// the write lock; concurrent Gets may race to the delete, which is fine.
	if time.Since(session.CreatedAt) > 24*time.Hour {
		ss.mu.Lock()
		delete(ss.sessions, token)
		ss.mu.Unlock()
		return Session{}, false
	}
	return session, true
}

// Delete removes a session by token.
// PRE: token is non-empty
// POST: Session with given token is removed
func (ss *SessionStore) Delete(token string) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	delete(ss.sessions, token)
}

// Update replaces the session for a given token in-place.
// PRE: token exists in the store
// POST: Session is replaced with the new value
func (ss *SessionStore) Update(token string, session Session) bool {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	if _, ok := ss.sessions[token]; !ok {
		return false
	}
	ss.sessions[token] = session
	return true
}

// SetFlash stores a one-shot message on the session for the given token.
func (ss *SessionStore) SetFlash(token, message string) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	session, ok := ss.sessions[token]
	if !ok {
		return
	}
	session.Flash = message
	ss.sessions[token] = session
}

// TakeFlash returns the pending flash message, clearing it.
// POST: The session's flash is empty
func (ss *SessionStore) TakeFlash(token string) string {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	session, ok := ss.sessions[token]
	if !ok || session.Flash == "" {
		return ""
	}
	message := session.Flash
	session.Flash = ""
	ss.sessions[token] = session
	return message
}

const sessionCookieName = "ella_session"

// SecureCookies marks session cookies Secure. Set true when serving HTTPS.
var SecureCookies bool

// UserLookup fetches the current user row so gated requests can confirm the
// account still exists.
type UserLookup interface {
	GetByID(ctx context.Context, id string) (domainUser.User, error)
}

// Auth returns middleware that extracts the session from the cookie and sets it in context.
// It does NOT block unauthenticated requests — use RequireLogin or RequireManager for that.
func Auth(sessions *SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(sessionCookieName)
			if err == nil && cookie.Value != "" {
				if session, ok := sessions.Get(cookie.Value); ok {
					ctx := context.WithValue(r.Context(), sessionContextKey, session)
					r = r.WithContext(ctx)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireLogin returns middleware that blocks unauthenticated requests,
// sending them to the login page with the original path preserved. It also
// re-checks that the user row behind the session still exists; a deleted
// account invalidates the session immediately.
func RequireLogin(sessions *SessionStore, users UserLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := GetSessionFromContext(r.Context())
			if !ok {
				redirectToLogin(w, r)
				return
			}
			if _, err := users.GetByID(r.Context(), session.UserID); err != nil {
				if cookie, cerr := r.Cookie(sessionCookieName); cerr == nil {
					sessions.Delete(cookie.Value)
				}
				ClearSessionCookie(w)
				redirectToLogin(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireManager returns middleware that blocks requests from non-managers.
// Unauthorized users land on the login page with an error flag rather than a
// bare 403, matching the rest of the redirect-based flow.
func RequireManager(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := GetSessionFromContext(r.Context())
		if !ok || !session.IsManager() {
			http.Redirect(w, r, "/login?error=unauthorized", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	target := "/login"
	if r.URL.Path != "" && r.URL.Path != "/login" {
		target = "/login?returnTo=" + url.QueryEscape(r.URL.RequestURI())
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// GetSessionFromContext extracts the session from the request context.
func GetSessionFromContext(ctx context.Context) (Session, bool) {
	session, ok := ctx.Value(sessionContextKey).(Session)
	return session, ok
}

// SessionToken returns the raw session token from the request cookie.
func SessionToken(r *http.Request) string {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// SetSessionCookie sets the session cookie on the response.
func SetSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		HttpOnly: true,
		Secure:   SecureCookies,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   86400, // 24 hours
	})
}

// ClearSessionCookie removes the session cookie.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		HttpOnly: true,
		Secure:   SecureCookies,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   -1,
	})
}

// IsManager checks if the current session belongs to a manager.
func IsManager(ctx context.Context) bool {
	session, ok := GetSessionFromContext(ctx)
	return ok && session.IsManager()
}

// ContextWithSession returns a context with the given session set.
// Intended for use in tests.
func ContextWithSession(ctx context.Context, sess Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, sess)
}

func generateToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
