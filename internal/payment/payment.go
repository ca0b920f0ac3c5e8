package payment

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/nekogravitycat/court-reservation/internal/pkg/apperror"
	"github.com/nekogravitycat/court-reservation/internal/pkg/clock"
)

var ErrPaymentFailed = apperror.New(http.StatusPaymentRequired, "payment failed")

// Method is a payment option offered at checkout.
type Method struct {
	ID   string
	Name string
}

var methods = []Method{
	{ID: "card", Name: "Credit/Debit Card"},
	{ID: "bank_transfer", Name: "Bank Transfer"},
	{ID: "kakao_pay", Name: "KakaoPay"},
	{ID: "naver_pay", Name: "NaverPay"},
	{ID: "toss_pay", Name: "Toss"},
}

// Methods returns the supported payment methods in display order.
func Methods() []Method {
	out := make([]Method, len(methods))
	copy(out, methods)
	return out
}

// LookupMethod finds a method by id.
func LookupMethod(id string) (Method, bool) {
	for _, m := range methods {
		if m.ID == id {
			return m, true
		}
	}
	return Method{}, false
}

// Receipt is the gateway's confirmation of a settled charge.
type Receipt struct {
	PaymentID string
	Amount    int64
	Method    string
	PaidAt    time.Time
}

// Gateway charges the caller for a checkout.
type Gateway interface {
	ProcessPayment(ctx context.Context, amount int64, method string) (*Receipt, error)
}

// MockGateway approves every well-formed charge after a fixed delay.
type MockGateway struct {
	delay time.Duration
	clock clock.Clock
}

func NewMockGateway(delay time.Duration, clk clock.Clock) *MockGateway {
	return &MockGateway{delay: delay, clock: clk}
}

func (g *MockGateway) ProcessPayment(ctx context.Context, amount int64, method string) (*Receipt, error) {
	if amount <= 0 {
		return nil, apperror.Wrap(ErrPaymentFailed, ErrPaymentFailed.Code, "payment amount must be positive")
	}
	if _, ok := LookupMethod(method); !ok {
		return nil, apperror.Wrap(ErrPaymentFailed, ErrPaymentFailed.Code, "unsupported payment method")
	}

	if g.delay > 0 {
		timer := time.NewTimer(g.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	return &Receipt{
		PaymentID: "pay_" + uuid.NewString(),
		Amount:    amount,
		Method:    method,
		PaidAt:    g.clock.Now(),
	}, nil
}
