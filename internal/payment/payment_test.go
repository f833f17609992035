package payment

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCharge_Captured(t *testing.T) {
	gw := NewSimulatedGateway()

	receipt, err := gw.Charge(context.Background(), ChargeParams{
		Token:       "tok_abc",
		Amount:      75.00,
		UserEmail:   "buyer@example.com",
		OrderNumber: "ORD-20260101-000000-000-0001",
	})

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(receipt.ID, "sim_"))
	assert.Equal(t, 75.00, receipt.Amount)
	assert.Equal(t, "CAPTURED", receipt.Status)
}

func TestCharge_Declined(t *testing.T) {
	gw := NewSimulatedGateway()

	_, err := gw.Charge(context.Background(), ChargeParams{
		Token:  "declined-tok",
		Amount: 10.00,
	})

	assert.ErrorIs(t, err, ErrPaymentDeclined)
}

func TestCharge_MissingToken(t *testing.T) {
	gw := NewSimulatedGateway()

	_, err := gw.Charge(context.Background(), ChargeParams{Amount: 10.00})
	assert.ErrorIs(t, err, ErrMissingToken)
}

func TestCharge_NonPositiveAmount(t *testing.T) {
	gw := NewSimulatedGateway()

	_, err := gw.Charge(context.Background(), ChargeParams{Token: "tok_abc", Amount: 0})
	assert.Error(t, err)
}
