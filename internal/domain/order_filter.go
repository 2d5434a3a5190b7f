package domain

import (
	"errors"
	"fmt"
	"time"
)

// OrderFilter has AND semantics across fields, an empty filter matches every order
type OrderFilter struct {
	CustomerName string // case-insensitive substring
	CreatedAt    *TimeRange
	Page         Page
}

func (f OrderFilter) Validate() error {
	if f.CreatedAt != nil {
		if err := f.CreatedAt.Validate(); err != nil {
			return fmt.Errorf("createdAt: %w", err)
		}
	}

	if err := f.Page.Validate(); err != nil {
		return fmt.Errorf("page: %w", err)
	}

	return nil
}

// TimeRange is half-open: After is inclusive, Before is exclusive.
type TimeRange struct {
	Before *time.Time
	After  *time.Time
}

func (t TimeRange) Validate() error {
	if t.Before == nil && t.After == nil {
		return errors.Join(ErrValidation, errors.New("both Before and After are nil"))
	}

	if t.Before != nil && t.After != nil {
		if t.Before.Before(*t.After) {
			return errors.Join(ErrValidation, errors.New("before is before After"))
		}
	}

	return nil
}
