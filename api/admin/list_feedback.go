package admin

import (
	"net/http"
	"strconv"

	"github.com/MonkyMars/gecho"
)

func parsePagination(r *http.Request) (int, int) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
	if pageSize < 1 {
		pageSize = 50
	}
	// Same ceiling the query-side pagination enforces
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}

func (arm *AdminRoutesManager) HandleListFeedback(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePagination(r)

	result, err := arm.feedbackService.List(r.Context(), page, pageSize)
	if err != nil {
		arm.logger.Error("Failed to list feedback", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("error.admin.listFailed"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(result),
		gecho.Send(),
	)
}
