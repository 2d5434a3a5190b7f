package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/posadmin/internal/domain"
)

// Pipeline runs its steps in order and stops at the first failure. It does not undo
// completed steps, callers run it inside a transaction.
type Pipeline struct {
	steps []Step
}

func NewPipeline(steps ...Step) (Pipeline, error) {
	var p Pipeline

	if len(steps) == 0 {
		return p, errors.New("steps are empty")
	}

	for idx, step := range steps {
		if step == nil {
			return p, fmt.Errorf("step[%d] is nil", idx)
		}
	}

	return Pipeline{steps: steps}, nil
}

func (p Pipeline) Run(ctx context.Context, dataCtx *DataContext) error {
	if dataCtx == nil {
		return errors.New("dataCtx is nil")
	}

	for idx, step := range p.steps {
		start := time.Now()

		if err := step.Run(ctx, dataCtx); err != nil {
			return fmt.Errorf("step.Run[%d][%s]: %w", idx, step.Name(), err)
		}

		slog.DebugContext(ctx, "workflow step done", "step", step.Name(), "index", idx, "duration", time.Since(start))
	}

	return nil
}

func (p Pipeline) StepNames() []string {
	names := make([]string, 0, len(p.steps))
	for _, step := range p.steps {
		names = append(names, step.Name())
	}
	return names
}

// CreateOrder locks the ordered products, inserts a fully paid order, applies every line
// to the product totals and records its cart lines.
func CreateOrder(in domain.PlaceOrder) (Pipeline, error) {
	var p Pipeline

	if err := in.Validate(); err != nil {
		return p, fmt.Errorf("in.Validate: %w", err)
	}

	lockProducts, err := NewLockProducts(in.Lines)
	if err != nil {
		return p, fmt.Errorf("NewLockProducts: %w", err)
	}

	create, err := createSteps(in)
	if err != nil {
		return p, err
	}

	return NewPipeline(append([]Step{lockProducts}, create...)...)
}

// DeleteOrder reverses every cart line of the order from the product totals and deletes
// the order with its cart lines.
func DeleteOrder(orderID uuid.UUID, pricing domain.ReversalPricing) (Pipeline, error) {
	var p Pipeline

	loadOrder, err := NewLoadOrder(orderID, RemovedOrderKey)
	if err != nil {
		return p, fmt.Errorf("NewLoadOrder: %w", err)
	}

	lockProducts, err := NewLockProducts(nil, RemovedOrderKey)
	if err != nil {
		return p, fmt.Errorf("NewLockProducts: %w", err)
	}

	del, err := deleteSteps(pricing)
	if err != nil {
		return p, err
	}

	return NewPipeline(append([]Step{loadOrder, lockProducts}, del...)...)
}

// ReturnOrder loads the returned order and locks the products of both orders at once.
// It then creates the replacement order and deletes the returned one.
func ReturnOrder(oldOrderID uuid.UUID, in domain.PlaceOrder, pricing domain.ReversalPricing) (Pipeline, error) {
	var p Pipeline

	if err := in.Validate(); err != nil {
		return p, fmt.Errorf("in.Validate: %w", err)
	}

	loadOrder, err := NewLoadOrder(oldOrderID, RemovedOrderKey)
	if err != nil {
		return p, fmt.Errorf("NewLoadOrder: %w", err)
	}

	lockProducts, err := NewLockProducts(in.Lines, RemovedOrderKey)
	if err != nil {
		return p, fmt.Errorf("NewLockProducts: %w", err)
	}

	create, err := createSteps(in)
	if err != nil {
		return p, err
	}

	del, err := deleteSteps(pricing)
	if err != nil {
		return p, err
	}

	steps := []Step{loadOrder, lockProducts}
	steps = append(steps, create...)
	steps = append(steps, del...)

	return NewPipeline(steps...)
}

func createSteps(in domain.PlaceOrder) ([]Step, error) {
	insertOrder, err := NewInsertOrder(in.CustomerName, in.Total, CreatedOrderKey)
	if err != nil {
		return nil, fmt.Errorf("NewInsertOrder: %w", err)
	}

	applyLines, err := NewApplyLines(in.Lines, CreatedOrderKey)
	if err != nil {
		return nil, fmt.Errorf("NewApplyLines: %w", err)
	}

	steps := []Step{insertOrder, applyLines}

	if in.IdempotencyKey != "" {
		recordKey, err := NewRecordIdempotencyKey(in.IdempotencyKey, CreatedOrderKey)
		if err != nil {
			return nil, fmt.Errorf("NewRecordIdempotencyKey: %w", err)
		}
		steps = append(steps, recordKey)
	}

	return steps, nil
}

func deleteSteps(pricing domain.ReversalPricing) ([]Step, error) {
	reverseLines, err := NewReverseLines(RemovedOrderKey, pricing)
	if err != nil {
		return nil, fmt.Errorf("NewReverseLines: %w", err)
	}

	removeOrder, err := NewRemoveOrder(RemovedOrderKey)
	if err != nil {
		return nil, fmt.Errorf("NewRemoveOrder: %w", err)
	}

	return []Step{reverseLines, removeOrder}, nil
}
