package verification

import (
	"net/http"
	"tratrouble_server/handling"
	"tratrouble_server/lib"
	"tratrouble_server/structs"

	"github.com/MonkyMars/gecho"
)

// HandleCheckToken reports whether a token has been verified yet. Clients poll
// this while the user works through the email link on another device.
func (vrm *VerificationRoutesManager) HandleCheckToken(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" && r.Method == http.MethodPost {
		body, err := lib.ExtractAndValidateBody[structs.CheckTokenRequest](r)
		if err != nil {
			vrm.logger.Warn("Failed to extract check-token body", gecho.Field("error", err))
			handling.RespondVerificationError(w, err, vrm.logger)
			return
		}
		token = body.Token
	}

	if err := vrm.verificationService.CheckStatus(r.Context(), token); err != nil {
		handling.RespondVerificationError(w, err, vrm.logger)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{"ok": true}),
		gecho.Send(),
	)
}
