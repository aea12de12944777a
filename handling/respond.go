package handling

import (
	"errors"
	"net/http"
	"tratrouble_server/lib"

	"github.com/MonkyMars/gecho"
)

// RespondVerificationError maps the verification error taxonomy onto HTTP
// status codes at the request boundary. Unknown errors become a logged 500.
func RespondVerificationError(w http.ResponseWriter, err error, logger *gecho.Logger) {
	var ve *lib.ValidationError
	if errors.As(err, &ve) {
		gecho.BadRequest(w, gecho.WithMessage("error.validation"), gecho.WithData(ve), gecho.Send())
		return
	}

	switch {
	case errors.Is(err, lib.ErrMissingToken):
		gecho.BadRequest(w, gecho.WithMessage("error.verification.tokenRequired"), gecho.Send())
	case errors.Is(err, lib.ErrTokenNotFound):
		gecho.NotFound(w, gecho.WithMessage("error.verification.unknownToken"), gecho.Send())
	case errors.Is(err, lib.ErrAlreadyVerified):
		gecho.Conflict(w, gecho.WithMessage("error.verification.alreadyVerified"), gecho.Send())
	case errors.Is(err, lib.ErrExpiredToken):
		// gecho has no helper for 410 Gone
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusGone)
		w.Write([]byte(`{"message":"error.verification.tokenExpired"}`))
	case errors.Is(err, lib.ErrDeviceMismatch):
		gecho.BadRequest(w, gecho.WithMessage("error.verification.deviceMismatch"), gecho.Send())
	case errors.Is(err, lib.ErrNotVerified):
		gecho.Forbidden(w, gecho.WithMessage("error.verification.notVerified"), gecho.Send())
	case lib.IsUniqueViolation(err):
		gecho.Conflict(w, gecho.WithMessage("error.conflict"), gecho.Send())
	case lib.IsNotFound(err):
		gecho.NotFound(w, gecho.WithMessage("error.notFound"), gecho.Send())
	default:
		HandleError(err, "unhandled service error", logger, w)
	}
}
