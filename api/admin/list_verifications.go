package admin

import (
	"net/http"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

type verificationView struct {
	Id          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	TokenPrefix string    `json:"token_prefix"`
	Platform    string    `json:"platform"`
	Verified    bool      `json:"verified"`
	CreatedAt   time.Time `json:"created_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}

func (arm *AdminRoutesManager) HandleListVerifications(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePagination(r)

	result, err := arm.verifications.ListVerifications(r.Context(), page, pageSize)
	if err != nil {
		arm.logger.Error("Failed to list verifications", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("error.admin.listFailed"), gecho.Send())
		return
	}

	// Tokens are credentials; expose only a prefix for correlation
	views := make([]verificationView, 0, len(result.Data))
	for _, rec := range result.Data {
		prefix := rec.Token
		if len(prefix) > 8 {
			prefix = prefix[:8]
		}
		views = append(views, verificationView{
			Id:          rec.Id,
			Email:       rec.Email,
			TokenPrefix: prefix,
			Platform:    rec.Platform,
			Verified:    rec.Verified,
			CreatedAt:   rec.CreatedAt,
			ExpiresAt:   rec.ExpiresAt,
		})
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"data":       views,
			"pagination": result.Pagination,
		}),
		gecho.Send(),
	)
}
