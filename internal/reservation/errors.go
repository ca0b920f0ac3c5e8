package reservation

import (
	"net/http"

	"github.com/nekogravitycat/court-reservation/internal/payment"
	"github.com/nekogravitycat/court-reservation/internal/pkg/apperror"
)

var (
	ErrInvalidCell        = apperror.New(http.StatusBadRequest, "cell must have a YYYY-MM-DD date and an hour between 6 and 22")
	ErrRangeIndex         = apperror.New(http.StatusBadRequest, "no selected range at that index")
	ErrNotDragging        = apperror.New(http.StatusConflict, "no drag in progress")
	ErrNoRanges           = apperror.New(http.StatusBadRequest, "no time ranges selected")
	ErrCourtNotFound      = apperror.New(http.StatusNotFound, "court not found")
	ErrInvalidRange       = apperror.New(http.StatusConflict, "selected time is no longer available")
	ErrCheckoutInProgress = apperror.New(http.StatusConflict, "checkout already in progress")
	ErrPaymentFailed      = payment.ErrPaymentFailed
)
