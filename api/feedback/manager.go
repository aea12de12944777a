package feedback

import (
	"tratrouble_server/api/middleware"
	"tratrouble_server/services"
	"tratrouble_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type FeedbackRoutesManager struct {
	logger          *gecho.Logger
	feedbackService *services.FeedbackService
	cfg             *structs.Config
	mw              *middleware.Middleware
}

func NewFeedbackRoutesManager(
	logger *gecho.Logger,
	feedbackService *services.FeedbackService,
	cfg *structs.Config,
	mw *middleware.Middleware,
) *FeedbackRoutesManager {
	return &FeedbackRoutesManager{
		logger:          logger,
		feedbackService: feedbackService,
		cfg:             cfg,
		mw:              mw,
	}
}

func (frm *FeedbackRoutesManager) RegisterRoutes(r chi.Router) {
	// Feedback only accepted from verified tokens
	r.Group(func(r chi.Router) {
		r.Use(frm.mw.VerifiedTokenMiddleware)
		r.Post("/submit-feedback", frm.HandleSubmitFeedback)
		r.Post("/report-bad-json", frm.HandleReportBadJson)
	})
}
