package feedback

import (
	"net/http"
	"tratrouble_server/api/health"
	"tratrouble_server/api/middleware"
	"tratrouble_server/handling"
	"tratrouble_server/lib"
	"tratrouble_server/structs"

	"github.com/MonkyMars/gecho"
)

func (frm *FeedbackRoutesManager) HandleSubmitFeedback(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.FeedbackRequest](r)
	if err != nil {
		frm.logger.Warn("Failed to extract feedback body", gecho.Field("error", err))
		handling.RespondVerificationError(w, err, frm.logger)
		return
	}

	record, ok := middleware.GetVerificationFromContext(r.Context())
	if !ok {
		// Middleware guarantees the record; reaching here means a wiring bug
		frm.logger.Error("Verification record missing from context")
		gecho.InternalServerError(w, gecho.Send())
		return
	}

	report, err := frm.feedbackService.Submit(r.Context(), record.Token, body.Line, body.Destination, body.GeoLocation)
	if err != nil {
		frm.logger.Warn("Feedback submission failed", gecho.Field("error", err))
		handling.RespondVerificationError(w, err, frm.logger)
		return
	}

	health.FeedbackSubmitted.Inc()

	gecho.Success(w,
		gecho.WithMessage("feedback.received"),
		gecho.WithData(map[string]any{"id": report.Id}),
		gecho.Send(),
	)
}
