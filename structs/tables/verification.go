package tables

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// EmailVerification is one issued verification token. Verified flips to true
// exactly once; expiry is judged against ExpiresAt on read, never stored.
type EmailVerification struct {
	bun.BaseModel `bun:"table:email_verifications,alias:ev"`

	Id        uuid.UUID `json:"id" bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	Email     string    `json:"email" bun:"email,notnull"`
	Token     string    `json:"token" bun:"token,notnull,unique"`
	DeviceId  string    `json:"device_id" bun:"device_id,nullzero"`
	Platform  string    `json:"platform" bun:"platform,notnull,default:'web'"`
	Verified  bool      `json:"verified" bun:"verified,notnull,default:false"`
	CreatedAt time.Time `json:"created_at" bun:"created_at,notnull,default:now()"`
	ExpiresAt time.Time `json:"expires_at" bun:"expires_at,notnull"`
}
