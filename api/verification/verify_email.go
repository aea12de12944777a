package verification

import (
	"net/http"
	"tratrouble_server/api/health"
	"tratrouble_server/handling"
	"tratrouble_server/lib"
	"tratrouble_server/structs"

	"github.com/MonkyMars/gecho"
)

func (vrm *VerificationRoutesManager) HandleVerifyEmail(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.VerifyEmailRequest](r)
	if err != nil {
		vrm.logger.Warn("Failed to extract verify-email body", gecho.Field("error", err))
		handling.RespondVerificationError(w, err, vrm.logger)
		return
	}

	vrm.confirmToken(w, r, body.Token)
}

// HandleVerifyEmailLink serves the link embedded in the verification email.
func (vrm *VerificationRoutesManager) HandleVerifyEmailLink(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if !lib.ValidTokenFormat(token) {
		vrm.logger.Warn("Malformed verification token in link")
		gecho.BadRequest(w,
			gecho.WithMessage("error.verification.malformedToken"),
			gecho.Send(),
		)
		return
	}

	vrm.confirmToken(w, r, token)
}

func (vrm *VerificationRoutesManager) confirmToken(w http.ResponseWriter, r *http.Request, token string) {
	deviceID := lib.DeviceFingerprint(r)

	if err := vrm.verificationService.ConfirmToken(r.Context(), token, deviceID); err != nil {
		handling.RespondVerificationError(w, err, vrm.logger)
		return
	}

	health.VerificationTokensConfirmed.Inc()

	gecho.Success(w,
		gecho.WithMessage("verification.confirmed"),
		gecho.Send(),
	)
}
