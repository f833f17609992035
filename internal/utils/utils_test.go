package utils

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserIDContextRoundTrip(t *testing.T) {
	ctx := WithUserID(context.Background(), 42)

	id, ok := GetUserIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, uint(42), id)
}

func TestGetUserIDFromContext_Missing(t *testing.T) {
	_, ok := GetUserIDFromContext(context.Background())
	assert.False(t, ok)
}

func TestGetSellerIDFromContext(t *testing.T) {
	assert.Equal(t, "", GetSellerIDFromContext(context.Background()))

	ctx := WithSellerID(context.Background(), "seller-1")
	assert.Equal(t, "seller-1", GetSellerIDFromContext(ctx))
}

func TestToUint(t *testing.T) {
	n, err := ToUint("17")
	assert.NoError(t, err)
	assert.Equal(t, uint(17), n)

	_, err = ToUint("not-a-number")
	assert.Error(t, err)
}

func TestGenerateOrderNumber_Format(t *testing.T) {
	num := GenerateOrderNumber()

	matched, err := regexp.MatchString(`^ORD-\d{8}-\d{6}-\d{3}-\d{4}$`, num)
	assert.NoError(t, err)
	assert.True(t, matched, "unexpected order number format: %s", num)
}

func TestGenerateOrderNumber_Distinct(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		seen[GenerateOrderNumber()] = true
	}
	assert.Greater(t, len(seen), 1)
}
