package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/court-reservation/internal/payment"
)

type MethodResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// ListMethods returns the payment options offered at checkout.
func (h *Handler) ListMethods(c *gin.Context) {
	methods := payment.Methods()
	out := make([]MethodResponse, len(methods))
	for i, m := range methods {
		out[i] = MethodResponse(m)
	}
	c.JSON(http.StatusOK, gin.H{"items": out})
}
