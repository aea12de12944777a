package admin

import (
	"net/http"
	"tratrouble_server/lib"
	"tratrouble_server/structs"

	"github.com/MonkyMars/gecho"
)

func (arm *AdminRoutesManager) HandleLogin(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.AdminLoginRequest](r)
	if err != nil {
		arm.logger.Warn("Failed to extract admin login body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("error.admin.invalidRequest"), gecho.Send())
		return
	}

	match, err := lib.VerifyPassword(body.Password, arm.cfg.Admin.PasswordHash)
	if err == nil && !match {
		err = lib.ErrInvalidCredentials
	}
	if err != nil {
		arm.logger.Warn("Admin login rejected", gecho.Field("error", err))
		gecho.Unauthorized(w, gecho.WithMessage("error.admin.invalidCredentials"), gecho.Send())
		return
	}

	token, err := lib.GenerateAdminToken(arm.cfg.Admin.TokenSecret, arm.cfg.Admin.TokenExpiry)
	if err != nil {
		arm.logger.Error("Failed to generate admin token", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"token":      token,
			"expires_in": int(arm.cfg.Admin.TokenExpiry.Seconds()),
		}),
		gecho.Send(),
	)
}
