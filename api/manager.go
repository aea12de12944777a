package api

import (
	"tratrouble_server/api/admin"
	"tratrouble_server/api/debug"
	"tratrouble_server/api/feedback"
	"tratrouble_server/api/health"
	"tratrouble_server/api/verification"

	"github.com/go-chi/chi/v5"
)

type routerManager struct {
	verificationRoutes *verification.VerificationRoutesManager
	feedbackRoutes     *feedback.FeedbackRoutesManager
	healthRoutes       *health.HealthRoutesManager
	adminRoutes        *admin.AdminRoutesManager
	debugRoutes        *debug.DebugRoutesManager
}

func NewRouterManager(
	verificationRoutes *verification.VerificationRoutesManager,
	feedbackRoutes *feedback.FeedbackRoutesManager,
	healthRoutes *health.HealthRoutesManager,
	adminRoutes *admin.AdminRoutesManager,
	debugRoutes *debug.DebugRoutesManager,
) *routerManager {
	return &routerManager{
		verificationRoutes: verificationRoutes,
		feedbackRoutes:     feedbackRoutes,
		healthRoutes:       healthRoutes,
		adminRoutes:        adminRoutes,
		debugRoutes:        debugRoutes,
	}
}

func (rm *routerManager) RegisterRoutes(r chi.Router) {
	rm.verificationRoutes.RegisterRoutes(r)
	rm.feedbackRoutes.RegisterRoutes(r)
	rm.healthRoutes.RegisterRoutes(r)
	rm.adminRoutes.RegisterRoutes(r)
	rm.debugRoutes.RegisterRoutes(r)
}
