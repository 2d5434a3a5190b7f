package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Order struct {
	ID           uuid.UUID
	CustomerName string
	Total        decimal.Decimal
	Paid         decimal.Decimal
	Remaining    decimal.Decimal
	Lines        []CartLine

	CreatedAt time.Time
}

// CartLine links an order to a product. It is only ever created or deleted.
type CartLine struct {
	ID          int64
	OrderID     uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	Quantity    int64
	// UnitPrice is the product's price_out at the time of sale
	UnitPrice decimal.Decimal

	CreatedAt time.Time
}

func (l CartLine) Amount() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(l.Quantity))
}

type OrderLine struct {
	ProductID uuid.UUID
	Quantity  int64
}

// PlaceOrder is the input of the create and return workflows.
type PlaceOrder struct {
	CustomerName string
	Total        decimal.Decimal
	Lines        []OrderLine

	// IdempotencyKey is optional, a repeated key yields the order created the first time
	IdempotencyKey string
}

func (p PlaceOrder) Validate() error {
	if strings.TrimSpace(p.CustomerName) == "" {
		return fmt.Errorf("customer is empty: %w", ErrValidation)
	}

	if err := validateAmount("total", p.Total, MaxTotal); err != nil {
		return err
	}

	if len(p.Lines) == 0 {
		return fmt.Errorf("no products in order: %w", ErrValidation)
	}

	for i, line := range p.Lines {
		if line.ProductID == uuid.Nil {
			return fmt.Errorf("products[%d]: id is empty: %w", i, ErrValidation)
		}
		if line.Quantity <= 0 {
			return fmt.Errorf("products[%d]: quantity must be positive: %w", i, ErrValidation)
		}
	}

	return nil
}

// NewPaidOrder builds an order that is fully paid at creation, there are no partial payments.
func NewPaidOrder(customerName string, total decimal.Decimal) Order {
	return Order{
		CustomerName: customerName,
		Total:        total,
		Paid:         total,
		Remaining:    decimal.Zero,
	}
}
