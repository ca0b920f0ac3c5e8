package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/court-reservation/internal/auth"
	"github.com/nekogravitycat/court-reservation/internal/pkg/response"
	"github.com/nekogravitycat/court-reservation/internal/reservation"
)

type Handler struct {
	service reservation.Service
}

func NewHandler(service reservation.Service) *Handler {
	return &Handler{service: service}
}

func customer(c *gin.Context) (reservation.Customer, bool) {
	id, ok := auth.GetIdentity(c)
	if !ok || id.UserID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return reservation.Customer{}, false
	}
	return reservation.Customer{ID: id.UserID, Name: id.Name}, true
}

func bindCell(c *gin.Context) (reservation.Cell, bool) {
	var req CellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return reservation.Cell{}, false
	}
	cell, err := reservation.ParseCell(req.Date, *req.Hour)
	if err != nil {
		response.Error(c, err)
		return reservation.Cell{}, false
	}
	return cell, true
}

// Grid renders the week around ?date= (default today) with the caller's selection.
func (h *Handler) Grid(c *gin.Context) {
	who, ok := customer(c)
	if !ok {
		return
	}

	view, err := h.service.Grid(c.Request.Context(), who, c.Param("id"), c.Query("date"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewGridResponse(view))
}

func (h *Handler) Selection(c *gin.Context) {
	who, ok := customer(c)
	if !ok {
		return
	}

	q, err := h.service.Quote(c.Request.Context(), who, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewQuoteResponse(*q))
}

func (h *Handler) DragStart(c *gin.Context) {
	who, ok := customer(c)
	if !ok {
		return
	}
	cell, ok := bindCell(c)
	if !ok {
		return
	}

	state, err := h.service.DragStart(c.Request.Context(), who, c.Param("id"), cell)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewSelectionResponse(state))
}

func (h *Handler) DragOver(c *gin.Context) {
	who, ok := customer(c)
	if !ok {
		return
	}
	cell, ok := bindCell(c)
	if !ok {
		return
	}

	state, err := h.service.DragOver(c.Request.Context(), who, c.Param("id"), cell)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewSelectionResponse(state))
}

// DragEnd answers 200 even when the range is rejected; the outcome carries the reason.
func (h *Handler) DragEnd(c *gin.Context) {
	who, ok := customer(c)
	if !ok {
		return
	}

	state, err := h.service.DragEnd(c.Request.Context(), who, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewSelectionResponse(state))
}

func (h *Handler) RemoveRange(c *gin.Context) {
	who, ok := customer(c)
	if !ok {
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		response.Error(c, reservation.ErrRangeIndex)
		return
	}

	state, err := h.service.RemoveRange(c.Request.Context(), who, c.Param("id"), index)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewSelectionResponse(state))
}

func (h *Handler) ClearAll(c *gin.Context) {
	who, ok := customer(c)
	if !ok {
		return
	}

	state, err := h.service.ClearAll(c.Request.Context(), who, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewSelectionResponse(state))
}

func (h *Handler) Checkout(c *gin.Context) {
	who, ok := customer(c)
	if !ok {
		return
	}
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	res, err := h.service.Checkout(c.Request.Context(), who, c.Param("id"), req.PaymentMethod)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewCheckoutResponse(res))
}
