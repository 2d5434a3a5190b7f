package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/nikolayk812/posadmin/internal/domain"
	"github.com/samber/lo"
)

// --- Request/Response Types ---

type OrderLineBody struct {
	ID       string `json:"id" format:"uuid" doc:"Product id"`
	Quantity int64  `json:"quantity" minimum:"1" doc:"Units sold"`
}

type PlaceOrderBody struct {
	Customer string          `json:"customer" minLength:"1" doc:"Customer name"`
	Total    Amount          `json:"total" doc:"Order total, recorded as fully paid"`
	Products []OrderLineBody `json:"products" minItems:"1" doc:"Sold products"`
}

type RequestOrderCreate struct {
	IdempotencyKey string `header:"Idempotency-Key" maxLength:"255" doc:"Repeating a key returns the order created by its first use"`
	Body           PlaceOrderBody
}

type RequestOrderReturn struct {
	ID             string `path:"id" format:"uuid" doc:"Order to replace"`
	IdempotencyKey string `header:"Idempotency-Key" maxLength:"255"`
	Body           PlaceOrderBody
}

type RequestOrderID struct {
	ID string `path:"id" format:"uuid" doc:"Order id"`
}

type RequestOrderList struct {
	Customer      string    `query:"customer" doc:"Customer name substring"`
	CreatedAfter  time.Time `query:"created_after" doc:"Inclusive lower bound of created_at"`
	CreatedBefore time.Time `query:"created_before" doc:"Exclusive upper bound of created_at"`
	Page          int       `query:"page" default:"1" minimum:"1" maximum:"1000000"`
	PageSize      int       `query:"page_size" default:"50" minimum:"1" maximum:"500"`
}

type OrderCreatedBody struct {
	ID string `json:"id"`
}

type ResponseOrderCreated struct {
	Body OrderCreatedBody
}

type CartLineBody struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int64  `json:"quantity"`
	UnitPrice   Amount `json:"unit_price"`
	Amount      Amount `json:"amount"`
}

type OrderBody struct {
	ID        string         `json:"id"`
	Customer  string         `json:"customer"`
	Total     Amount         `json:"total"`
	Paid      Amount         `json:"paid"`
	Remaining Amount         `json:"remaining"`
	CreatedAt time.Time      `json:"created_at"`
	Lines     []CartLineBody `json:"lines,omitempty"`
}

type ResponseOrder struct {
	Body OrderBody
}

type OrderListBody struct {
	Items    []OrderBody `json:"items"`
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
	Pages    int         `json:"pages"`
}

type ResponseOrderList struct {
	Body OrderListBody
}

// --- Resource ---

// OrderResource handles all order-related endpoints
type OrderResource struct {
	orders OrderService
	api    huma.API
}

func NewOrderResource(orders OrderService, api huma.API) *OrderResource {
	return &OrderResource{orders: orders, api: api}
}

func (rs *OrderResource) Register() {
	huma.Register(rs.api, huma.Operation{
		OperationID:   "order-create",
		Summary:       "Create a paid order",
		Method:        http.MethodPost,
		Path:          "/orders",
		DefaultStatus: http.StatusCreated,
		Tags:          []string{"Orders"},
	}, rs.Create)

	huma.Register(rs.api, huma.Operation{
		OperationID: "order-list",
		Summary:     "List orders",
		Method:      http.MethodGet,
		Path:        "/orders",
		Tags:        []string{"Orders"},
	}, rs.List)

	huma.Register(rs.api, huma.Operation{
		OperationID: "order-get",
		Summary:     "Get an order with its cart lines",
		Method:      http.MethodGet,
		Path:        "/orders/{id}",
		Tags:        []string{"Orders"},
	}, rs.Get)

	huma.Register(rs.api, huma.Operation{
		OperationID:   "order-delete",
		Summary:       "Reverse and delete an order",
		Description:   "Idempotent: deleting an order that no longer exists succeeds.",
		Method:        http.MethodDelete,
		Path:          "/orders/{id}",
		DefaultStatus: http.StatusNoContent,
		Tags:          []string{"Orders"},
	}, rs.Delete)

	huma.Register(rs.api, huma.Operation{
		OperationID:   "order-delete-legacy",
		Summary:       "Reverse and delete an order",
		Description:   "Kept for existing clients, prefer DELETE /orders/{id}.",
		Method:        http.MethodGet,
		Path:          "/orders/{id}/delete",
		DefaultStatus: http.StatusOK,
		Deprecated:    true,
		Tags:          []string{"Orders"},
	}, rs.DeleteLegacy)

	huma.Register(rs.api, huma.Operation{
		OperationID:   "order-return",
		Summary:       "Replace an order with a new one",
		Method:        http.MethodPost,
		Path:          "/orders/{id}/return",
		DefaultStatus: http.StatusCreated,
		Tags:          []string{"Orders"},
	}, rs.Return)
}

// Create handles POST /orders
func (rs *OrderResource) Create(ctx context.Context, req *RequestOrderCreate) (*ResponseOrderCreated, error) {
	in, err := mapPlaceOrderBodyToDomain(req.Body, req.IdempotencyKey)
	if err != nil {
		return nil, err
	}

	orderID, err := rs.orders.CreateOrder(ctx, in)
	if err != nil {
		return nil, SchemaError(ctx, err)
	}

	return &ResponseOrderCreated{Body: OrderCreatedBody{ID: orderID.String()}}, nil
}

// Return handles POST /orders/{id}/return
func (rs *OrderResource) Return(ctx context.Context, req *RequestOrderReturn) (*ResponseOrderCreated, error) {
	oldOrderID, err := parseID("id", req.ID)
	if err != nil {
		return nil, err
	}

	in, err := mapPlaceOrderBodyToDomain(req.Body, req.IdempotencyKey)
	if err != nil {
		return nil, err
	}

	orderID, err := rs.orders.ReturnOrder(ctx, oldOrderID, in)
	if err != nil {
		return nil, SchemaError(ctx, err)
	}

	return &ResponseOrderCreated{Body: OrderCreatedBody{ID: orderID.String()}}, nil
}

// Delete handles DELETE /orders/{id}
func (rs *OrderResource) Delete(ctx context.Context, req *RequestOrderID) (*struct{}, error) {
	orderID, err := parseID("id", req.ID)
	if err != nil {
		return nil, err
	}

	if err := rs.orders.DeleteOrder(ctx, orderID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, SchemaError(ctx, err)
	}

	return nil, nil
}

// DeleteLegacy handles GET /orders/{id}/delete
func (rs *OrderResource) DeleteLegacy(ctx context.Context, req *RequestOrderID) (*struct{}, error) {
	orderID, err := parseID("id", req.ID)
	if err != nil {
		return nil, err
	}

	if err := rs.orders.DeleteOrder(ctx, orderID); err != nil {
		return nil, SchemaError(ctx, err)
	}

	return nil, nil
}

// Get handles GET /orders/{id}
func (rs *OrderResource) Get(ctx context.Context, req *RequestOrderID) (*ResponseOrder, error) {
	orderID, err := parseID("id", req.ID)
	if err != nil {
		return nil, err
	}

	order, err := rs.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, SchemaError(ctx, err)
	}

	return &ResponseOrder{Body: mapDomainOrderToBody(order)}, nil
}

// List handles GET /orders
func (rs *OrderResource) List(ctx context.Context, req *RequestOrderList) (*ResponseOrderList, error) {
	filter := domain.OrderFilter{
		CustomerName: req.Customer,
		Page:         domain.Page{Number: req.Page, Size: req.PageSize},
	}

	if !req.CreatedAfter.IsZero() || !req.CreatedBefore.IsZero() {
		filter.CreatedAt = &domain.TimeRange{
			After:  lo.EmptyableToPtr(req.CreatedAfter),
			Before: lo.EmptyableToPtr(req.CreatedBefore),
		}
	}

	result, err := rs.orders.SearchOrders(ctx, filter)
	if err != nil {
		return nil, SchemaError(ctx, err)
	}

	return &ResponseOrderList{Body: OrderListBody{
		Items:    lo.Map(result.Items, func(o domain.Order, _ int) OrderBody { return mapDomainOrderToBody(o) }),
		Total:    result.Total,
		Page:     result.Page,
		PageSize: result.PageSize,
		Pages:    result.Pages(),
	}}, nil
}

func mapPlaceOrderBodyToDomain(body PlaceOrderBody, idempotencyKey string) (domain.PlaceOrder, error) {
	lines := make([]domain.OrderLine, 0, len(body.Products))

	for _, p := range body.Products {
		productID, err := parseID("products.id", p.ID)
		if err != nil {
			return domain.PlaceOrder{}, err
		}
		lines = append(lines, domain.OrderLine{ProductID: productID, Quantity: p.Quantity})
	}

	return domain.PlaceOrder{
		CustomerName:   body.Customer,
		Total:          body.Total.Decimal,
		Lines:          lines,
		IdempotencyKey: idempotencyKey,
	}, nil
}

func mapDomainOrderToBody(o domain.Order) OrderBody {
	return OrderBody{
		ID:        o.ID.String(),
		Customer:  o.CustomerName,
		Total:     NewAmount(o.Total),
		Paid:      NewAmount(o.Paid),
		Remaining: NewAmount(o.Remaining),
		CreatedAt: o.CreatedAt,
		Lines: lo.Map(o.Lines, func(l domain.CartLine, _ int) CartLineBody {
			return CartLineBody{
				ProductID:   l.ProductID.String(),
				ProductName: l.ProductName,
				Quantity:    l.Quantity,
				UnitPrice:   NewAmount(l.UnitPrice),
				Amount:      NewAmount(l.Amount()),
			}
		}),
	}
}
