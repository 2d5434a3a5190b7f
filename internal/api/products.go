package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/nikolayk812/posadmin/internal/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

type ProductBody struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Image             string    `json:"image"`
	Description       string    `json:"desc"`
	PriceIn           Amount    `json:"price_in"`
	PriceOut          Amount    `json:"price_out"`
	IsActive          bool      `json:"is_active"`
	TotalQuantitySold int64     `json:"total_quantity_sold"`
	TotalSalesAmount  Amount    `json:"total_sales_amount"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type ProductCreateBody struct {
	Name        string `json:"name" minLength:"1"`
	Image       string `json:"image,omitempty"`
	Description string `json:"desc,omitempty"`
	PriceIn     Amount `json:"price_in"`
	PriceOut    Amount `json:"price_out"`
	IsActive    *bool  `json:"is_active,omitempty" doc:"Defaults to true"`
}

type ProductUpdateBody struct {
	Name        *string `json:"name,omitempty" minLength:"1"`
	Image       *string `json:"image,omitempty"`
	Description *string `json:"desc,omitempty"`
	PriceIn     *Amount `json:"price_in,omitempty"`
	PriceOut    *Amount `json:"price_out,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

type RequestProductCreate struct {
	Body ProductCreateBody
}

type RequestProductUpdate struct {
	ID   string `path:"id" format:"uuid"`
	Body ProductUpdateBody
}

type RequestProductID struct {
	ID string `path:"id" format:"uuid"`
}

type RequestProductList struct {
	Name     string `query:"name" doc:"Name substring"`
	Active   string `query:"active" enum:"true,false" doc:"Only active or inactive products"`
	Page     int    `query:"page" default:"1" minimum:"1" maximum:"1000000"`
	PageSize int    `query:"page_size" default:"50" minimum:"1" maximum:"500"`
}

type ResponseProduct struct {
	Body ProductBody
}

type ResponseProductCreated struct {
	Body struct {
		ID string `json:"id"`
	}
}

type ProductListBody struct {
	Items    []ProductBody `json:"items"`
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
	Pages    int           `json:"pages"`
}

type ResponseProductList struct {
	Body ProductListBody
}

// ProductResource handles the product catalog endpoints
type ProductResource struct {
	products ProductCatalog
	api      huma.API
}

func NewProductResource(products ProductCatalog, api huma.API) *ProductResource {
	return &ProductResource{products: products, api: api}
}

func (rs *ProductResource) Register() {
	huma.Register(rs.api, huma.Operation{
		OperationID: "product-list",
		Summary:     "List products",
		Method:      http.MethodGet,
		Path:        "/products",
		Tags:        []string{"Products"},
	}, rs.List)

	huma.Register(rs.api, huma.Operation{
		OperationID:   "product-create",
		Summary:       "Create a product",
		Method:        http.MethodPost,
		Path:          "/products",
		DefaultStatus: http.StatusCreated,
		Tags:          []string{"Products"},
	}, rs.Create)

	huma.Register(rs.api, huma.Operation{
		OperationID: "product-get",
		Summary:     "Get a product",
		Method:      http.MethodGet,
		Path:        "/products/{id}",
		Tags:        []string{"Products"},
	}, rs.Get)

	huma.Register(rs.api, huma.Operation{
		OperationID: "product-update",
		Summary:     "Update catalog fields of a product",
		Description: "Running totals are maintained by the order workflows and cannot be set.",
		Method:      http.MethodPatch,
		Path:        "/products/{id}",
		Tags:        []string{"Products"},
	}, rs.Update)
}

// List handles GET /products
func (rs *ProductResource) List(ctx context.Context, req *RequestProductList) (*ResponseProductList, error) {
	filter := domain.ProductFilter{
		Name: req.Name,
		Page: domain.Page{Number: req.Page, Size: req.PageSize},
	}

	if req.Active != "" {
		active, err := strconv.ParseBool(req.Active)
		if err != nil {
			return nil, huma.Error400BadRequest("active must be true or false", err)
		}
		filter.IsActive = &active
	}

	result, err := rs.products.SearchProducts(ctx, filter)
	if err != nil {
		return nil, SchemaError(ctx, err)
	}

	return &ResponseProductList{Body: ProductListBody{
		Items:    lo.Map(result.Items, func(p domain.Product, _ int) ProductBody { return mapDomainProductToBody(p) }),
		Total:    result.Total,
		Page:     result.Page,
		PageSize: result.PageSize,
		Pages:    result.Pages(),
	}}, nil
}

// Create handles POST /products
func (rs *ProductResource) Create(ctx context.Context, req *RequestProductCreate) (*ResponseProductCreated, error) {
	productID, err := rs.products.InsertProduct(ctx, domain.Product{
		Name:        req.Body.Name,
		Image:       req.Body.Image,
		Description: req.Body.Description,
		PriceIn:     req.Body.PriceIn.Decimal,
		PriceOut:    req.Body.PriceOut.Decimal,
		IsActive:    lo.FromPtrOr(req.Body.IsActive, true),
	})
	if err != nil {
		return nil, SchemaError(ctx, err)
	}

	resp := &ResponseProductCreated{}
	resp.Body.ID = productID.String()

	return resp, nil
}

// Get handles GET /products/{id}
func (rs *ProductResource) Get(ctx context.Context, req *RequestProductID) (*ResponseProduct, error) {
	productID, err := parseID("id", req.ID)
	if err != nil {
		return nil, err
	}

	product, err := rs.products.GetProduct(ctx, productID)
	if err != nil {
		return nil, SchemaError(ctx, err)
	}

	return &ResponseProduct{Body: mapDomainProductToBody(product)}, nil
}

// Update handles PATCH /products/{id}
func (rs *ProductResource) Update(ctx context.Context, req *RequestProductUpdate) (*ResponseProduct, error) {
	productID, err := parseID("id", req.ID)
	if err != nil {
		return nil, err
	}

	update := domain.ProductUpdate{
		Name:        req.Body.Name,
		Image:       req.Body.Image,
		Description: req.Body.Description,
		PriceIn:     amountToDecimalPtr(req.Body.PriceIn),
		PriceOut:    amountToDecimalPtr(req.Body.PriceOut),
		IsActive:    req.Body.IsActive,
	}

	product, err := rs.products.UpdateProduct(ctx, productID, update)
	if err != nil {
		return nil, SchemaError(ctx, err)
	}

	return &ResponseProduct{Body: mapDomainProductToBody(product)}, nil
}

func amountToDecimalPtr(a *Amount) *decimal.Decimal {
	if a == nil {
		return nil
	}
	return lo.ToPtr(a.Decimal)
}

func mapDomainProductToBody(p domain.Product) ProductBody {
	return ProductBody{
		ID:                p.ID.String(),
		Name:              p.Name,
		Image:             p.Image,
		Description:       p.Description,
		PriceIn:           NewAmount(p.PriceIn),
		PriceOut:          NewAmount(p.PriceOut),
		IsActive:          p.IsActive,
		TotalQuantitySold: p.TotalQuantitySold,
		TotalSalesAmount:  NewAmount(p.TotalSalesAmount),
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}
