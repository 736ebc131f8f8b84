package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/shirshak001/JEWEL/pkg/auth"
	"github.com/shirshak001/JEWEL/pkg/response"
	"github.com/shirshak001/JEWEL/pkg/session"
)

type userIDKey struct{}
type roleKey struct{}
type sessionKey struct{}

// BearerToken extracts the token from the Authorization header, or "".
func BearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(h, "Bearer"))
}

// Auth validates the bearer JWT and stores user_id and role in the request
// context. Tokens that carry a session_id must additionally resolve to a
// live sliding session; expired sessions reject the request even when the
// JWT itself has not expired yet.
func Auth(sessions *session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				response.Unauthorized(w)
				return
			}

			claims, err := auth.ValidateToken(token)
			if err != nil {
				response.Unauthorized(w)
				return
			}

			ctx := r.Context()
			if claims.SessionID != "" {
				sess, err := sessions.Check(ctx, claims.SessionID)
				if err != nil {
					response.Unauthorized(w)
					return
				}
				ctx = context.WithValue(ctx, sessionKey{}, sess)
			}

			ctx = context.WithValue(ctx, userIDKey{}, claims.UserID)
			ctx = context.WithValue(ctx, roleKey{}, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromCtx returns the authenticated user's ID.
func UserIDFromCtx(r *http.Request) (string, bool) {
	id, ok := r.Context().Value(userIDKey{}).(string)
	return id, ok && id != ""
}

// RoleFromCtx returns the authenticated user's role.
func RoleFromCtx(r *http.Request) (string, bool) {
	role, ok := r.Context().Value(roleKey{}).(string)
	return role, ok && role != ""
}

// SessionFromCtx returns the live session attached by Auth, when the token
// carried one.
func SessionFromCtx(r *http.Request) (*session.Session, bool) {
	s, ok := r.Context().Value(sessionKey{}).(*session.Session)
	return s, ok && s != nil
}
