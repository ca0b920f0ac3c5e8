package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/court-reservation/internal/court"
	"github.com/nekogravitycat/court-reservation/internal/pkg/request"
	"github.com/nekogravitycat/court-reservation/internal/pkg/response"
)

type CourtHandler struct {
	service court.Service
}

func NewHandler(service court.Service) *CourtHandler {
	return &CourtHandler{service: service}
}

// List retrieves a paginated list of courts with optional keyword search.
func (h *CourtHandler) List(c *gin.Context) {
	params := request.ParseListParams(c)

	filter := court.Filter{
		Keyword:  c.Query("q"),
		Page:     params.Page,
		PageSize: params.PageSize,
	}

	courts, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]CourtResponse, len(courts))
	for i, ct := range courts {
		items[i] = NewCourtResponse(ct)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, params.Page, params.PageSize, total))
}

// Get retrieves a single court.
func (h *CourtHandler) Get(c *gin.Context) {
	ct, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewCourtResponse(ct))
}
