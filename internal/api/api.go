// Package api exposes the back-office over HTTP with huma.
package api

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/nikolayk812/posadmin/internal/domain"
)

type OrderService interface {
	CreateOrder(ctx context.Context, in domain.PlaceOrder) (uuid.UUID, error)
	ReturnOrder(ctx context.Context, oldOrderID uuid.UUID, in domain.PlaceOrder) (uuid.UUID, error)
	DeleteOrder(ctx context.Context, orderID uuid.UUID) error
	GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error)
	SearchOrders(ctx context.Context, filter domain.OrderFilter) (domain.PageResult[domain.Order], error)
}

type ProductCatalog interface {
	GetProduct(ctx context.Context, productID uuid.UUID) (domain.Product, error)
	SearchProducts(ctx context.Context, filter domain.ProductFilter) (domain.PageResult[domain.Product], error)
	InsertProduct(ctx context.Context, product domain.Product) (uuid.UUID, error)
	UpdateProduct(ctx context.Context, productID uuid.UUID, update domain.ProductUpdate) (domain.Product, error)
}

type DashboardProvider interface {
	Dashboard(ctx context.Context) (domain.Dashboard, error)
}

// AuthBearerToken rejects requests whose Authorization header does not carry token.
// An empty token disables the check.
func AuthBearerToken(api huma.API, token string) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		if token == "" {
			next(ctx)
			return
		}

		got, ok := strings.CutPrefix(ctx.Header("Authorization"), "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, "missing or invalid bearer token")
			return
		}

		next(ctx)
	}
}

// SchemaError maps domain errors to HTTP status codes
func SchemaError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		return huma.Error404NotFound(err.Error())
	case errors.Is(err, domain.ErrValidation):
		return huma.Error400BadRequest(err.Error())
	case errors.Is(err, domain.ErrInconsistentTotals):
		return huma.Error409Conflict(err.Error())
	case errors.Is(err, context.Canceled):
		return huma.NewError(499, "request canceled")
	default:
		slog.ErrorContext(ctx, "request failed", "error", err)
		return huma.Error500InternalServerError("internal error")
	}
}

func parseID(name, s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, huma.Error400BadRequest(name+" is not a valid UUID", err)
	}
	return id, nil
}

// RegisterEndpoints registers all API endpoints and middleware
func RegisterEndpoints(api huma.API, authToken string, orders OrderService, products ProductCatalog, dashboard DashboardProvider) {
	api.UseMiddleware(AuthBearerToken(api, authToken))

	NewOrderResource(orders, api).Register()
	NewProductResource(products, api).Register()
	NewDashboardResource(dashboard, api).Register()
}
