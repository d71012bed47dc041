package middleware

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/mastermind-solver/internal/config"
)

type CtxKey int

const (
	CtxPlayerClaims CtxKey = iota
)

// Auth parses the cookie-split JWT and, when valid, attaches the player
// claims to the request context. Requests without valid credentials
// pass through anonymously with the stale cookies cleared.
func Auth(log *logrus.Logger, cookies *config.Cookies, jwt *config.JWT) Middleware {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := cookies.Token(r)
			if err != nil {
				h.ServeHTTP(w, r)
				return
			}
			claims, err := jwt.ParsePlayerClaims(token)
			if err != nil {
				log.Debug("rejected auth cookies: ", err)
				cookies.Clear(w)
				h.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), CtxPlayerClaims, claims)
			h.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PlayerClaims extracts the claims attached by Auth, if any.
func PlayerClaims(ctx context.Context) (*config.PlayerClaims, bool) {
	claims, ok := ctx.Value(CtxPlayerClaims).(*config.PlayerClaims)
	return claims, ok
}
