package verification

import (
	"net/http"
	"tratrouble_server/api/health"
	"tratrouble_server/handling"
	"tratrouble_server/lib"
	"tratrouble_server/structs"

	"github.com/MonkyMars/gecho"
)

func (vrm *VerificationRoutesManager) HandleSubmitEmail(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.SubmitEmailRequest](r)
	if err != nil {
		vrm.logger.Warn("Failed to extract submit-email body", gecho.Field("error", err))
		handling.RespondVerificationError(w, err, vrm.logger)
		return
	}

	deviceID := body.DeviceId
	if deviceID == "" {
		deviceID = lib.DeviceFingerprint(r)
	}

	// Token travels by email only. The response must never leak it, or the
	// mailbox round trip proves nothing.
	_, err = vrm.verificationService.SubmitEmail(r.Context(), body.Email, body.Platform, deviceID)
	if err != nil {
		vrm.logger.Warn("Email submission failed",
			gecho.Field("error", err),
			gecho.Field("platform", body.Platform),
		)
		handling.RespondVerificationError(w, err, vrm.logger)
		return
	}

	health.VerificationTokensIssued.Inc()

	gecho.Success(w,
		gecho.WithMessage("verification.emailSent"),
		gecho.Send(),
	)
}
