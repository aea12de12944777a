package structs

import (
	"time"

	"github.com/google/uuid"
)

type AdminLoginRequest struct {
	Password string `json:"password" validate:"required"`
}

type AdminClaims struct {
	Sub string
	Iat time.Time
	Exp time.Time
	Jti uuid.UUID
}
