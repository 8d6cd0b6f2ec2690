package middleware

import (
	"context"
	"errors"
	"net/http"

	"reminders-server/common"
	"reminders-server/models"
	"reminders-server/respond"
)

// AuthHeader carries the session token on protected requests.
const AuthHeader = "X-Authorization"

const msgTokenRequired = "Authorization token required"

type contextKey string

const (
	userKey  contextKey = "user"
	tokenKey contextKey = "token"
)

// Authenticator resolves a session token to its user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

type Auth struct {
	authenticator Authenticator
	rs            *respond.Responder
}

func NewAuth(a Authenticator, rs *respond.Responder) *Auth {
	return &Auth{authenticator: a, rs: rs}
}

// Require rejects requests without a valid X-Authorization token and puts
// the resolved user and token on the request context.
func (a *Auth) Require(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get(AuthHeader)
		if token == "" {
			respond.Message(w, http.StatusUnauthorized, msgTokenRequired)
			return
		}

		user, err := a.authenticator.Authenticate(r.Context(), token)
		if err != nil {
			if errors.Is(err, common.ErrUnauthorized) {
				respond.Message(w, http.StatusUnauthorized, respond.MsgUnauthorized)
				return
			}
			a.rs.Internal(w, r, err)
			return
		}

		ctx := SetUser(r.Context(), user, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

func SetUser(ctx context.Context, user *models.User, token string) context.Context {
	ctx = context.WithValue(ctx, userKey, user)
	return context.WithValue(ctx, tokenKey, token)
}

func GetUser(r *http.Request) *models.User {
	if user, ok := r.Context().Value(userKey).(*models.User); ok {
		return user
	}
	return nil
}

func GetUserID(r *http.Request) string {
	if user := GetUser(r); user != nil {
		return user.ID
	}
	return ""
}

func GetToken(r *http.Request) string {
	if token, ok := r.Context().Value(tokenKey).(string); ok {
		return token
	}
	return ""
}
