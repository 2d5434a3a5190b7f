package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID          uuid.UUID
	Name        string
	Image       string
	Description string
	PriceIn     decimal.Decimal
	PriceOut    decimal.Decimal
	IsActive    bool

	// running totals, maintained by the ledger on every sale and reversal
	TotalQuantitySold int64
	TotalSalesAmount  decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("name is empty: %w", ErrValidation)
	}

	if err := validateAmount("price_in", p.PriceIn, MaxPrice); err != nil {
		return err
	}

	if err := validateAmount("price_out", p.PriceOut, MaxPrice); err != nil {
		return err
	}

	return nil
}

// ProductUpdate carries a partial update of the catalog fields, nil fields are left unchanged.
// Running totals are never updated through it.
type ProductUpdate struct {
	Name        *string
	Image       *string
	Description *string
	PriceIn     *decimal.Decimal
	PriceOut    *decimal.Decimal
	IsActive    *bool
}

func (u ProductUpdate) IsEmpty() bool {
	return u.Name == nil && u.Image == nil && u.Description == nil &&
		u.PriceIn == nil && u.PriceOut == nil && u.IsActive == nil
}

// Apply returns p with the non-nil fields of u applied.
func (u ProductUpdate) Apply(p Product) Product {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Image != nil {
		p.Image = *u.Image
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.PriceIn != nil {
		p.PriceIn = *u.PriceIn
	}
	if u.PriceOut != nil {
		p.PriceOut = *u.PriceOut
	}
	if u.IsActive != nil {
		p.IsActive = *u.IsActive
	}
	return p
}

// ProductFilter has AND semantics across fields
type ProductFilter struct {
	Name     string // case-insensitive substring
	IsActive *bool
	Page     Page
}
