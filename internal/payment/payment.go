package payment

import (
	"context"
	"errors"
	"strings"
	"time"

	"artisan-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrPaymentDeclined = errors.New("payment declined")
	ErrMissingToken    = errors.New("payment token is required")
)

type ChargeParams struct {
	Token       string
	Amount      float64
	UserEmail   string
	OrderNumber string
}

type Receipt struct {
	ID        string    `json:"id"`
	Amount    float64   `json:"amount"`
	Status    string    `json:"status"`
	ChargedAt time.Time `json:"charged_at"`
}

// Gateway charges a payment token. The platform has no real processor
// integration; the simulated gateway below is the only implementation.
type Gateway interface {
	Charge(ctx context.Context, params ChargeParams) (*Receipt, error)
}

type simulatedGateway struct{}

func NewSimulatedGateway() Gateway {
	return &simulatedGateway{}
}

// Charge approves everything except tokens prefixed "declined-", which lets
// tests and staging exercise the failure path deterministically.
func (g *simulatedGateway) Charge(ctx context.Context, params ChargeParams) (*Receipt, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "payment"),
		zap.String("order_number", params.OrderNumber),
		zap.Float64("amount", params.Amount),
	)

	if params.Token == "" {
		return nil, ErrMissingToken
	}
	if params.Amount <= 0 {
		return nil, errors.New("charge amount must be positive")
	}

	if strings.HasPrefix(params.Token, "declined-") {
		log.Warn("simulated charge declined")
		return nil, ErrPaymentDeclined
	}

	receipt := &Receipt{
		ID:        "sim_" + uuid.New().String(),
		Amount:    params.Amount,
		Status:    "CAPTURED",
		ChargedAt: time.Now().UTC(),
	}

	log.Info("simulated charge captured", zap.String("receipt_id", receipt.ID))

	return receipt, nil
}
