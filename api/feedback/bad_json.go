package feedback

import (
	"net/http"
	"tratrouble_server/handling"
	"tratrouble_server/lib"
	"tratrouble_server/structs"

	"github.com/MonkyMars/gecho"
)

// HandleReportBadJson collects payloads a client failed to parse so broken
// feed formats can be diagnosed server-side.
func (frm *FeedbackRoutesManager) HandleReportBadJson(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.BadJsonReport](r)
	if err != nil {
		frm.logger.Warn("Failed to extract bad-json report", gecho.Field("error", err))
		handling.RespondVerificationError(w, err, frm.logger)
		return
	}

	frm.logger.Warn("Client reported unparseable JSON",
		gecho.Field("target", body.Target),
		gecho.Field("payload_bytes", len(body.Json)),
	)

	gecho.Success(w,
		gecho.WithMessage("feedback.badJsonRecorded"),
		gecho.Send(),
	)
}
