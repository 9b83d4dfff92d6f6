package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderItemLineTotal(t *testing.T) {
	item := OrderItem{ProductID: 1, PriceAtPurchase: 2990000, Quantity: 3}
	assert.Equal(t, int64(8970000), item.LineTotal())
}

func TestToNaira(t *testing.T) {
	assert.Equal(t, int64(50000), ToNaira(5000000))
	assert.Equal(t, int64(749), ToNaira(74999))
	assert.Equal(t, int64(0), ToNaira(99))
}

func TestUserCanLogin(t *testing.T) {
	assert.False(t, User{Email: "guest@dulin.shop"}.CanLogin())
	assert.True(t, User{Email: "a@b.c", PasswordHash: "$2a$10$x"}.CanLogin())
}
