package tables

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Feedback is a single rider report, stamped with the verification token that
// authorized it. The token reference is deliberately soft (no FK); the
// authorization gate is the integrity boundary.
type Feedback struct {
	bun.BaseModel `bun:"table:feedback,alias:f"`

	Id          uuid.UUID `json:"id" bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	Token       string    `json:"token" bun:"token,notnull"`
	Line        string    `json:"line" bun:"line,notnull"`
	Destination string    `json:"destination" bun:"destination,notnull"`
	GeoLocation string    `json:"geo_location" bun:"geo_location,notnull"`
	Timestamp   time.Time `json:"timestamp" bun:"timestamp,notnull,default:now()"`
}
