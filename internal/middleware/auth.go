package middleware

import (
	"context"
	"net/http"

	"github.com/inkwell-dev/inkwell/internal/domain"
	"github.com/inkwell-dev/inkwell/internal/flash"
	"github.com/inkwell-dev/inkwell/internal/logger"
)

// TokenVerifier resolves a session token string to the user id it is
// bound to.
type TokenVerifier interface {
	UserId(tokenStr string) (int64, error)
}

// UserProvider restores the identity behind a session from the
// credential store. The lookup happens on every request so that account
// edits, admin promotion and revocation take effect on the very next
// request instead of at token expiry.
type UserProvider interface {
	UserById(id domain.UserId) (domain.User, error)
}

// SessionCookie is the cookie holding the session token.
const SessionCookie = "accessToken"

type key int

const userContextKey key = 0

// Auth restores the request identity from the session cookie and gates
// privileged routes.
type Auth struct {
	tokens        TokenVerifier
	users         UserProvider
	secureCookies bool
	forbidden     http.HandlerFunc // renders the 403 page; plain http.Error when nil
}

func NewAuth(tokens TokenVerifier, users UserProvider, secureCookies bool) *Auth {
	return &Auth{tokens: tokens, users: users, secureCookies: secureCookies}
}

// SetForbiddenHandler installs the handler used to render authorization
// failures. Wired late because the page handler depends on templates
// that are not available when the middleware is constructed.
func (a *Auth) SetForbiddenHandler(h http.HandlerFunc) {
	a.forbidden = h
}

// OptionalAuth populates the request context with the current user when
// a valid session exists. Absence of a session is the anonymous state,
// never an error.
func (a *Auth) OptionalAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if user := a.restoreUser(r); user != nil {
				next.ServeHTTP(w, r.WithContext(ContextWithUser(r.Context(), user)))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth redirects anonymous visitors to the login page with a
// flash message.
func (a *Auth) RequireAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := GetUserFromContext(r)
			if user == nil {
				redirectToLogin(w, r, a.secureCookies, "Please log in to continue")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin guards privileged routes. The admin flag comes from the
// store via per-request identity restore, never from token claims. Both
// "not logged in" and "logged in but not an administrator" produce the
// same Forbidden response.
func (a *Auth) RequireAdmin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := GetUserFromContext(r)
			if user == nil || !user.Admin {
				a.renderForbidden(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// restoreUser resolves the session cookie to a full user record.
// Returns nil for any failure: no cookie, bad token, or a user that no
// longer exists in the store.
func (a *Auth) restoreUser(r *http.Request) *domain.User {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil || cookie.Value == "" {
		return nil
	}

	userId, err := a.tokens.UserId(cookie.Value)
	if err != nil {
		return nil
	}

	user, err := a.users.UserById(userId)
	if err != nil {
		logger.Log.Debug("session refers to unknown user", "user_id", userId)
		return nil
	}
	return &user
}

func redirectToLogin(w http.ResponseWriter, r *http.Request, secureCookies bool, message string) {
	flash.Set(w, flash.ErrorCookie, message, secureCookies)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (a *Auth) renderForbidden(w http.ResponseWriter, r *http.Request) {
	if a.forbidden != nil {
		w.WriteHeader(http.StatusForbidden)
		a.forbidden(w, r)
		return
	}
	http.Error(w, "Forbidden", http.StatusForbidden)
}

// ContextWithUser attaches an authenticated user to the context.
func ContextWithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// GetUserFromContext retrieves the restored user, or nil for anonymous
// requests.
func GetUserFromContext(r *http.Request) *domain.User {
	user, ok := r.Context().Value(userContextKey).(*domain.User)
	if !ok {
		return nil
	}
	return user
}
