package api

import (
	"context"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Roman3340/ai-surveys-sub000/log"
)

// ExchangeTelegramAuth trades the host-provided init data for a bearer
// token. The backend does the HMAC verification; we only remember the
// token and, when the token is a readable JWT, its expiry so the UI can
// re-auth proactively instead of hitting a 401 mid-publish.
func (c *HTTPClient) ExchangeTelegramAuth(ctx context.Context, initData string) error {
	var out struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	body := map[string]string{"init_data": initData}
	err := c.do(ctx, "api.auth_exchange", http.MethodPost, "/api/auth/telegram", body, &out)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.token = out.AccessToken
	c.mu.Unlock()

	if exp := tokenExpiry(out.AccessToken); !exp.IsZero() {
		log.Debugf("api.auth_exchange: token valid until %s", exp.Format(time.RFC3339))
	}
	return nil
}

// tokenExpiry reads the exp claim without verifying the signature:
// verification is the backend's concern, the client only schedules
// around it. Zero time when the token is opaque.
func tokenExpiry(token string) time.Time {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}

// SetToken injects a token directly; used by tests and by sessions that
// restored a still-valid token.
func (c *HTTPClient) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}
