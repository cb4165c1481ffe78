package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shaj13/go-guardian/auth"
)

// The principal abstraction is deliberately pluggable: today identity arrives either as
// a signed bearer token or as the bare user-id header the frontend sends while real
// authentication is still being built. Both are registered as go-guardian strategies so
// swapping in a session-backed strategy later is a one-line change.

var authenticator auth.Authenticator

type jwtStrategy struct {
	secret []byte
}

func (s jwtStrategy) Authenticate(ctx context.Context, r *http.Request) (auth.Info, error) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return nil, fmt.Errorf("no bearer token present")
	}
	raw := strings.TrimPrefix(header, "Bearer ")

	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token, %v", err)
	}

	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return nil, fmt.Errorf("token has no subject")
	}
	return auth.NewDefaultUser(sub, sub, nil, nil), nil
}

type userIDHeaderStrategy struct{}

func (s userIDHeaderStrategy) Authenticate(ctx context.Context, r *http.Request) (auth.Info, error) {
	id := r.Header.Get("user-id")
	if id == "" {
		return nil, fmt.Errorf("no user-id header present")
	}
	return auth.NewDefaultUser(id, id, nil, nil), nil
}

// SetupAuth wires the go-guardian authenticator with the bearer-JWT strategy and the
// placeholder user-id header strategy
func SetupAuth(jwtSecret string) {
	authenticator = auth.New()
	authenticator.EnableStrategy("bearer-jwt", jwtStrategy{secret: []byte(jwtSecret)})
	authenticator.EnableStrategy("user-id-header", userIDHeaderStrategy{})
}

// Principal returns the authenticated user ID for the request, or an error when no
// identity is present. Handlers decide whether that is a 401 or a placeholder fallback.
func Principal(r *http.Request) (string, error) {
	user, err := authenticator.Authenticate(r)
	if err != nil {
		return "", err
	}
	return user.ID(), nil
}
