package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/court-reservation/internal/auth"
	"github.com/nekogravitycat/court-reservation/internal/booking"
	"github.com/nekogravitycat/court-reservation/internal/pkg/request"
	"github.com/nekogravitycat/court-reservation/internal/pkg/response"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

// ListMine lists the authenticated user's bookings. ?status=all|confirmed|pending|cancelled
func (h *Handler) ListMine(c *gin.Context) {
	userID := auth.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	params := request.ParseListParams(c)

	items, total, err := h.service.ListMine(c.Request.Context(), userID, c.Query("status"), params.Page, params.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, response.NewPageResponse(NewBookingResponses(items), params.Page, params.PageSize, total))
}

func (h *Handler) Cancel(c *gin.Context) {
	userID := auth.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	b, err := h.service.Cancel(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewBookingResponse(b))
}

// ListAll is the gym owner view over every booking.
func (h *Handler) ListAll(c *gin.Context) {
	params := request.ParseListParams(c)
	filter := booking.Filter{
		CourtID:  c.Query("court_id"),
		Date:     c.Query("date"),
		Status:   c.Query("status"),
		Page:     params.Page,
		PageSize: params.PageSize,
	}

	items, total, err := h.service.ListAll(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, response.NewPageResponse(NewBookingResponses(items), params.Page, params.PageSize, total))
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	var body UpdateStatusBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	b, err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), body.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Revenue(c *gin.Context) {
	months, err := h.service.Revenue(c.Request.Context(), c.Query("court_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewRevenueResponse(months))
}
