package handler

import (
	"bytes"
	"io"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/xenking/order-import/internal/domain/auth"
)

// Guard authorizes a request before it reaches a handler. A guard that
// consumes the body must leave an equivalent body in place.
type Guard interface {
	Authorize(r *http.Request) error
}

// RequireToken rejects requests that guard does not authorize with 401 and
// passes the rest to next.
func RequireToken(guard Guard, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := guard.Authorize(r); err != nil {
			zctx.From(r.Context()).Debug("Unauthorized request", zap.Error(err))
			writeError(w, http.StatusUnauthorized, "Invalid or missing access token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// TokenGuard checks the access_token field of a JSON body against a static
// shared token.
type TokenGuard struct {
	token        *auth.StaticToken
	maxBodyBytes int64
}

var _ Guard = (*TokenGuard)(nil)

// NewTokenGuard returns a TokenGuard reading at most maxBodyBytes of body.
func NewTokenGuard(token *auth.StaticToken, maxBodyBytes int64) *TokenGuard {
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}
	return &TokenGuard{token: token, maxBodyBytes: maxBodyBytes}
}

// Authorize buffers the body, restores it on r and verifies its token. Any
// body that cannot yield a token, including an oversized one, is
// unauthorized.
func (g *TokenGuard) Authorize(r *http.Request) error {
	if r.Body == nil {
		return auth.ErrUnauthorized
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, g.maxBodyBytes+1))
	_ = r.Body.Close()
	if err != nil {
		return errors.Wrap(auth.ErrUnauthorized, "read body")
	}
	if int64(len(body)) > g.maxBodyBytes {
		return errors.Wrap(auth.ErrUnauthorized, "body too large")
	}
	r.Body = io.NopCloser(bytes.NewReader(body))

	return g.token.Verify(accessToken(body))
}

// accessToken extracts the top-level access_token string field, or returns
// an empty string.
func accessToken(body []byte) string {
	d := jx.DecodeBytes(body)
	if d.Next() != jx.Object {
		return ""
	}
	var token string
	err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		if string(key) != "access_token" || d.Next() != jx.String {
			return d.Skip()
		}
		s, err := d.Str()
		if err != nil {
			return err
		}
		token = s
		return nil
	})
	if err != nil {
		return ""
	}
	return token
}
