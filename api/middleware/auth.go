package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"tratrouble_server/lib"
	"tratrouble_server/structs/tables"

	"github.com/MonkyMars/gecho"
)

// Context keys for storing request-scoped identity
type contextKey string

const (
	VerificationContextKey contextKey = "verification"
	AdminClaimsContextKey  contextKey = "admin_claims"
)

const maxTokenPeekBytes = 64 * 1024

// tokenEnvelope is the minimal body shape the gate needs; the full body is
// restored for the handler afterwards.
type tokenEnvelope struct {
	Token string `json:"token"`
}

// extractToken pulls the verification token out of the request: query
// parameter for GET, JSON body otherwise. The body is re-attached so the
// handler can decode it again.
func extractToken(r *http.Request) (string, error) {
	if r.Method == http.MethodGet {
		return r.URL.Query().Get("token"), nil
	}

	raw, err := io.ReadAll(io.LimitReader(r.Body, maxTokenPeekBytes))
	if err != nil {
		return "", err
	}
	r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(raw))

	var envelope tokenEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return "", err
	}
	return envelope.Token, nil
}

// VerifiedTokenMiddleware is the authorization gate in front of protected
// actions: the token must exist and be verified. The matched record is passed
// to the handler through the request context.
func (mw *Middleware) VerifiedTokenMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := extractToken(r)
		if err != nil {
			mw.logger.Warn("Failed to extract token from request", gecho.Field("error", err))
			gecho.Unauthorized(w, gecho.WithMessage("error.auth.tokenRequired"), gecho.Send())
			return
		}

		record, err := mw.verificationService.Authorize(r.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, lib.ErrMissingToken), errors.Is(err, lib.ErrTokenNotFound):
				gecho.Unauthorized(w, gecho.WithMessage("error.auth.invalidToken"), gecho.Send())
			case errors.Is(err, lib.ErrNotVerified):
				gecho.Forbidden(w, gecho.WithMessage("error.auth.emailNotVerified"), gecho.Send())
			default:
				mw.logger.Error("Authorization gate failure", gecho.Field("error", err))
				gecho.InternalServerError(w, gecho.Send())
			}
			return
		}

		ctx := context.WithValue(r.Context(), VerificationContextKey, record)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminAuthMiddleware protects the admin surface with a bearer JWT
func (mw *Middleware) AdminAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr, err := lib.ExtractBearerToken(r)
		if err != nil {
			gecho.Unauthorized(w, gecho.WithMessage("error.admin.missingToken"), gecho.Send())
			return
		}

		claims, err := lib.ParseAdminToken(tokenStr, mw.cfg.Admin.TokenSecret)
		if err != nil {
			mw.logger.Warn("Invalid admin token", gecho.Field("error", err))
			gecho.Forbidden(w, gecho.WithMessage("error.admin.invalidToken"), gecho.Send())
			return
		}

		ctx := context.WithValue(r.Context(), AdminClaimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetVerificationFromContext extracts the gate-checked record for the handler
func GetVerificationFromContext(ctx context.Context) (*tables.EmailVerification, bool) {
	record, ok := ctx.Value(VerificationContextKey).(*tables.EmailVerification)
	return record, ok
}
