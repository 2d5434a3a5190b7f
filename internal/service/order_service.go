package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/nikolayk812/posadmin/internal/domain"
	"github.com/nikolayk812/posadmin/internal/port"
	"github.com/nikolayk812/posadmin/internal/workflow"
)

const DefaultIdempotencyCacheSize = 10_000

// OrderService runs the order workflows, each one inside a single transaction.
type OrderService struct {
	uow     port.UnitOfWork
	orders  port.OrderRepository
	pricing domain.ReversalPricing
	keys    *lru.Cache[string, uuid.UUID]
	logger  *slog.Logger
}

type Option func(*OrderService)

func WithReversalPricing(pricing domain.ReversalPricing) Option {
	return func(s *OrderService) {
		s.pricing = pricing
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *OrderService) {
		s.logger = logger
	}
}

// WithIdempotencyCacheSize sets how many idempotency keys are remembered in memory, the
// database stays the source of truth.
func WithIdempotencyCacheSize(size int) Option {
	return func(s *OrderService) {
		if size > 0 {
			s.keys, _ = lru.New[string, uuid.UUID](size)
		}
	}
}

// NewOrderService builds the service. orders is used for reads outside of a transaction.
func NewOrderService(uow port.UnitOfWork, orders port.OrderRepository, opts ...Option) (*OrderService, error) {
	if uow == nil {
		return nil, errors.New("uow is nil")
	}
	if orders == nil {
		return nil, errors.New("orders repository is nil")
	}

	keys, err := lru.New[string, uuid.UUID](DefaultIdempotencyCacheSize)
	if err != nil {
		return nil, fmt.Errorf("lru.New: %w", err)
	}

	s := &OrderService{
		uow:     uow,
		orders:  orders,
		pricing: domain.ReversalPricingLive,
		keys:    keys,
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if _, err := domain.ToReversalPricing(string(s.pricing)); err != nil {
		return nil, fmt.Errorf("pricing[%s]: %w", s.pricing, err)
	}

	return s, nil
}

// CreateOrder records a fully paid order and adds its lines to the product totals.
func (s *OrderService) CreateOrder(ctx context.Context, in domain.PlaceOrder) (uuid.UUID, error) {
	in.IdempotencyKey = scopedKey(in.IdempotencyKey, "create")

	pipeline, err := workflow.CreateOrder(in)
	if err != nil {
		return uuid.Nil, fmt.Errorf("workflow.CreateOrder: %w", err)
	}

	orderID, err := s.place(ctx, in.IdempotencyKey, pipeline)
	if err != nil {
		return uuid.Nil, fmt.Errorf("s.place: %w", err)
	}

	return orderID, nil
}

// ReturnOrder replaces oldOrderID with a new order built from in.
func (s *OrderService) ReturnOrder(ctx context.Context, oldOrderID uuid.UUID, in domain.PlaceOrder) (uuid.UUID, error) {
	in.IdempotencyKey = scopedKey(in.IdempotencyKey, "return", oldOrderID.String())

	pipeline, err := workflow.ReturnOrder(oldOrderID, in, s.pricing)
	if err != nil {
		return uuid.Nil, fmt.Errorf("workflow.ReturnOrder: %w: %w", domain.ErrValidation, err)
	}

	orderID, err := s.place(ctx, in.IdempotencyKey, pipeline)
	if err != nil {
		return uuid.Nil, fmt.Errorf("s.place: %w", err)
	}

	s.logger.InfoContext(ctx, "order returned", "old_order_id", oldOrderID, "order_id", orderID)

	return orderID, nil
}

// DeleteOrder removes the order's lines from the product totals and deletes it.
func (s *OrderService) DeleteOrder(ctx context.Context, orderID uuid.UUID) error {
	pipeline, err := workflow.DeleteOrder(orderID, s.pricing)
	if err != nil {
		return fmt.Errorf("workflow.DeleteOrder: %w: %w", domain.ErrValidation, err)
	}

	if err := s.uow.Do(ctx, func(orders port.OrderRepository, products port.ProductRepository) error {
		dataCtx, err := workflow.NewDataContext(orders, products)
		if err != nil {
			return fmt.Errorf("workflow.NewDataContext: %w", err)
		}

		return pipeline.Run(ctx, dataCtx)
	}); err != nil {
		return fmt.Errorf("uow.Do: %w", err)
	}

	s.logger.InfoContext(ctx, "order deleted", "order_id", orderID, "pricing", s.pricing)

	return nil
}

func (s *OrderService) GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error) {
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return order, fmt.Errorf("orders.GetOrder: %w", err)
	}

	return order, nil
}

func (s *OrderService) SearchOrders(ctx context.Context, filter domain.OrderFilter) (domain.PageResult[domain.Order], error) {
	result, err := s.orders.SearchOrders(ctx, filter)
	if err != nil {
		return result, fmt.Errorf("orders.SearchOrders: %w", err)
	}

	return result, nil
}

// place runs a pipeline that creates an order and returns the created order id. With a
// non-empty key, a key seen before returns the order recorded for it and runs nothing.
// Requests sharing a key wait on the key lock, the later ones replay.
func (s *OrderService) place(ctx context.Context, key string, pipeline workflow.Pipeline) (uuid.UUID, error) {
	if key != "" {
		if orderID, ok := s.keys.Get(key); ok {
			s.logger.InfoContext(ctx, "idempotent replay", "key", key, "order_id", orderID, "source", "cache")
			return orderID, nil
		}
	}

	var (
		orderID  uuid.UUID
		replayed bool
	)

	if err := s.uow.Do(ctx, func(orders port.OrderRepository, products port.ProductRepository) error {
		if key != "" {
			if err := orders.LockIdempotencyKey(ctx, key); err != nil {
				return fmt.Errorf("orders.LockIdempotencyKey: %w", err)
			}

			existingID, err := orders.GetIdempotencyKey(ctx, key)
			switch {
			case err == nil:
				orderID, replayed = existingID, true
				return nil
			case !errors.Is(err, domain.ErrNotFound):
				return fmt.Errorf("orders.GetIdempotencyKey: %w", err)
			}
		}

		dataCtx, err := workflow.NewDataContext(orders, products)
		if err != nil {
			return fmt.Errorf("workflow.NewDataContext: %w", err)
		}

		if err := pipeline.Run(ctx, dataCtx); err != nil {
			return fmt.Errorf("pipeline.Run: %w", err)
		}

		created, ok := dataCtx.Order(workflow.CreatedOrderKey)
		if !ok {
			return errors.New("pipeline did not create an order")
		}
		orderID = created.ID

		return nil
	}); err != nil {
		return uuid.Nil, fmt.Errorf("uow.Do: %w", err)
	}

	if key != "" {
		s.keys.Add(key, orderID)
	}

	if replayed {
		s.logger.InfoContext(ctx, "idempotent replay", "key", key, "order_id", orderID, "source", "db")
	} else {
		s.logger.InfoContext(ctx, "order created", "order_id", orderID)
	}

	return orderID, nil
}

// scopedKey binds a client key to the operation it was sent with, so reusing a key on a
// different operation or order runs that operation.
func scopedKey(key string, scope ...string) string {
	if key == "" {
		return ""
	}
	return strings.Join(append(scope, key), ":")
}
