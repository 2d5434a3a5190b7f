package domain

import "errors"

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")

	// ErrInconsistentTotals is returned when reversing a sale would push a
	// product's running totals below zero.
	ErrInconsistentTotals = errors.New("inconsistent product totals")
)
