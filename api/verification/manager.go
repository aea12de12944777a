package verification

import (
	"tratrouble_server/services"
	"tratrouble_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type VerificationRoutesManager struct {
	logger              *gecho.Logger
	verificationService *services.VerificationService
	cfg                 *structs.Config
}

func NewVerificationRoutesManager(
	logger *gecho.Logger,
	verificationService *services.VerificationService,
	cfg *structs.Config,
) *VerificationRoutesManager {
	return &VerificationRoutesManager{
		logger:              logger,
		verificationService: verificationService,
		cfg:                 cfg,
	}
}

func (vrm *VerificationRoutesManager) RegisterRoutes(r chi.Router) {
	r.Post("/submit-email", vrm.HandleSubmitEmail)

	// Verification links in mail clients arrive as GET; API clients use POST
	r.Post("/verify-email", vrm.HandleVerifyEmail)
	r.Get("/verify-email", vrm.HandleVerifyEmailLink)

	// Status probe polled by clients waiting on the mailbox round trip
	r.Get("/check-token", vrm.HandleCheckToken)
	r.Post("/check-token", vrm.HandleCheckToken)
}
