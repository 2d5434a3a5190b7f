package domain

import (
	"fmt"
	"math"
)

const (
	DefaultPageSize = 50
	MaxPageSize     = 500
	MaxPageNumber   = 1_000_000
)

// Page is a 1-based page request.
type Page struct {
	Number int
	Size   int
}

func (p Page) Normalize() Page {
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Size < 1 {
		p.Size = DefaultPageSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	return p
}

func (p Page) Limit() int32 {
	return int32(p.Normalize().Size)
}

// Offset is clamped to math.MaxInt32, pages past MaxPageNumber fail Validate.
func (p Page) Offset() int32 {
	n := p.Normalize()
	offset := int64(n.Number-1) * int64(n.Size)
	return int32(min(offset, math.MaxInt32))
}

func (p Page) Validate() error {
	if p.Number < 0 || p.Size < 0 {
		return fmt.Errorf("page and page size must not be negative: %w", ErrValidation)
	}
	if p.Number > MaxPageNumber {
		return fmt.Errorf("page[%d] exceeds %d: %w", p.Number, MaxPageNumber, ErrValidation)
	}
	return nil
}

// PageResult is one page of items plus the total number of matching rows.
type PageResult[T any] struct {
	Items    []T
	Total    int64
	Page     int
	PageSize int
}

func (r PageResult[T]) Pages() int {
	if r.PageSize <= 0 {
		return 0
	}
	return int((r.Total + int64(r.PageSize) - 1) / int64(r.PageSize))
}
