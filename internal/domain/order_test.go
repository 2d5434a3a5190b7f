package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/nikolayk812/posadmin/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceOrder_Validate(t *testing.T) {
	validLine := domain.OrderLine{ProductID: uuid.New(), Quantity: 1}

	tests := []struct {
		name    string
		in      domain.PlaceOrder
		wantErr string
	}{
		{
			name: "valid",
			in: domain.PlaceOrder{
				CustomerName: "Alice",
				Total:        decimal.NewFromInt(100),
				Lines:        []domain.OrderLine{validLine},
			},
		},
		{
			name: "zero total is fine",
			in: domain.PlaceOrder{
				CustomerName: "Alice",
				Lines:        []domain.OrderLine{validLine},
			},
		},
		{
			name:    "blank customer",
			in:      domain.PlaceOrder{CustomerName: "  ", Lines: []domain.OrderLine{validLine}},
			wantErr: "customer is empty: validation failed",
		},
		{
			name: "negative total",
			in: domain.PlaceOrder{
				CustomerName: "Alice",
				Total:        decimal.NewFromInt(-5),
				Lines:        []domain.OrderLine{validLine},
			},
			wantErr: "total is negative: validation failed",
		},
		{
			name: "trailing zeros are fine",
			in: domain.PlaceOrder{
				CustomerName: "Alice",
				Total:        decimal.RequireFromString("12.500"),
				Lines:        []domain.OrderLine{validLine},
			},
		},
		{
			name: "total with three decimals",
			in: domain.PlaceOrder{
				CustomerName: "Alice",
				Total:        decimal.RequireFromString("2.505"),
				Lines:        []domain.OrderLine{validLine},
			},
			wantErr: "total has more than 2 decimal places: validation failed",
		},
		{
			name: "total too large",
			in: domain.PlaceOrder{
				CustomerName: "Alice",
				Total:        decimal.New(1, 12),
				Lines:        []domain.OrderLine{validLine},
			},
			wantErr: "total must be less than 1000000000000: validation failed",
		},
		{
			name:    "no lines",
			in:      domain.PlaceOrder{CustomerName: "Alice"},
			wantErr: "no products in order: validation failed",
		},
		{
			name: "nil product",
			in: domain.PlaceOrder{
				CustomerName: "Alice",
				Lines:        []domain.OrderLine{validLine, {Quantity: 1}},
			},
			wantErr: "products[1]: id is empty: validation failed",
		},
		{
			name: "negative quantity",
			in: domain.PlaceOrder{
				CustomerName: "Alice",
				Lines:        []domain.OrderLine{{ProductID: uuid.New(), Quantity: -1}},
			},
			wantErr: "products[0]: quantity must be positive: validation failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}

			require.ErrorIs(t, err, domain.ErrValidation)
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestNewPaidOrder(t *testing.T) {
	o := domain.NewPaidOrder("Alice", decimal.RequireFromString("12.30"))

	assert.True(t, o.Paid.Equal(o.Total))
	assert.True(t, o.Remaining.IsZero())
	assert.True(t, o.Remaining.Equal(o.Total.Sub(o.Paid)))
}

func TestCartLine_Amount(t *testing.T) {
	l := domain.CartLine{Quantity: 3, UnitPrice: decimal.RequireFromString("2.25")}
	assert.Equal(t, "6.75", l.Amount().String())
}
