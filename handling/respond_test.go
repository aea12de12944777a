package handling

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"tratrouble_server/lib"

	"github.com/MonkyMars/gecho"
	"github.com/stretchr/testify/assert"
)

func TestRespondVerificationErrorStatusMapping(t *testing.T) {
	logger := gecho.NewDefaultLogger()

	cases := []struct {
		name string
		err  error
		code int
	}{
		{"validation", lib.NewValidationError("email", "is required"), http.StatusBadRequest},
		{"missing token", lib.ErrMissingToken, http.StatusBadRequest},
		{"unknown token", lib.ErrTokenNotFound, http.StatusNotFound},
		{"already verified", lib.ErrAlreadyVerified, http.StatusConflict},
		{"expired", lib.ErrExpiredToken, http.StatusGone},
		{"device mismatch", lib.ErrDeviceMismatch, http.StatusBadRequest},
		{"not verified", lib.ErrNotVerified, http.StatusForbidden},
		{"unique violation", lib.ErrConflict, http.StatusConflict},
		{"not found", lib.ErrNotFound, http.StatusNotFound},
		{"unclassified", errors.New("connection lost"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			RespondVerificationError(w, tc.err, logger)
			assert.Equal(t, tc.code, w.Code)
		})
	}
}

func TestRespondVerificationErrorGoneIsJSON(t *testing.T) {
	w := httptest.NewRecorder()
	RespondVerificationError(w, lib.ErrExpiredToken, gecho.NewDefaultLogger())

	assert.Equal(t, http.StatusGone, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"message":"error.verification.tokenExpired"}`, w.Body.String())
}
