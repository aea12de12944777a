package middleware

import (
	"tratrouble_server/services"
	"tratrouble_server/structs"

	"github.com/MonkyMars/gecho"
)

type Middleware struct {
	logger              *gecho.Logger
	cfg                 *structs.Config
	verificationService *services.VerificationService
	cacheService        *services.CacheService
}

func NewMiddleware(
	cfg *structs.Config,
	logger *gecho.Logger,
	verificationService *services.VerificationService,
	cacheService *services.CacheService,
) *Middleware {
	return &Middleware{
		logger:              logger,
		cfg:                 cfg,
		verificationService: verificationService,
		cacheService:        cacheService,
	}
}
