package admin

import (
	"context"
	"tratrouble_server/api/middleware"
	"tratrouble_server/database"
	"tratrouble_server/services"
	"tratrouble_server/structs"
	"tratrouble_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

// VerificationLister is the read side the admin listing needs.
type VerificationLister interface {
	ListVerifications(ctx context.Context, page, pageSize int) (*database.PaginationResult[tables.EmailVerification], error)
}

type AdminRoutesManager struct {
	logger          *gecho.Logger
	verifications   VerificationLister
	feedbackService *services.FeedbackService
	cfg             *structs.Config
	mw              *middleware.Middleware
}

func NewAdminRoutesManager(
	logger *gecho.Logger,
	verifications VerificationLister,
	feedbackService *services.FeedbackService,
	cfg *structs.Config,
	mw *middleware.Middleware,
) *AdminRoutesManager {
	return &AdminRoutesManager{
		logger:          logger,
		verifications:   verifications,
		feedbackService: feedbackService,
		cfg:             cfg,
		mw:              mw,
	}
}

func (arm *AdminRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/admin", func(r chi.Router) {
		r.Post("/login", arm.HandleLogin)

		r.Group(func(r chi.Router) {
			r.Use(arm.mw.AdminAuthMiddleware)
			r.Get("/feedback", arm.HandleListFeedback)
			r.Get("/feedback/{id}", arm.HandleGetFeedback)
			r.Get("/verifications", arm.HandleListVerifications)
		})
	})
}
