package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"webshop/internal/model"
	"webshop/internal/service"
)

// ProductHandler handles product endpoints.
type ProductHandler struct {
	productService service.ProductService
}

// NewProductHandler creates a new product handler.
func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// ProductRequest is the body of product create and update requests.
type ProductRequest struct {
	Name        string           `json:"name" validate:"required"`
	Description string           `json:"description" validate:"required"`
	Price       *decimal.Decimal `json:"price" validate:"required" swaggertype:"string" example:"9.99"`
	Discount    *decimal.Decimal `json:"discount,omitempty" swaggertype:"string" example:"1.50"`
	Category    string           `json:"category" validate:"required"`
	Stock       *int             `json:"stock" validate:"required,gte=0"`
}

func (r ProductRequest) toModel() *model.Product {
	return &model.Product{
		Name:        r.Name,
		Description: r.Description,
		Price:       *r.Price,
		Discount:    r.Discount,
		Category:    r.Category,
		Stock:       *r.Stock,
	}
}

// CreateProduct godoc
// @Summary Create product
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param product body ProductRequest true "Product payload"
// @Success 201 {object} model.Product
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401
// @Failure 403
// @Router /products [post]
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req ProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	created, err := h.productService.CreateProduct(c.Request().Context(), req.toModel())
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusCreated, created)
}

// GetProduct godoc
// @Summary Get product by id
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} model.Product
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /products/{id} [get]
func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return errorResponse(err)
	}

	product, err := h.productService.GetProduct(c.Request().Context(), id)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, product)
}

// ListProducts godoc
// @Summary List products
// @Tags products
// @Produce json
// @Success 200 {array} model.Product
// @Router /products [get]
func (h *ProductHandler) ListProducts(c echo.Context) error {
	products, err := h.productService.ListProducts(c.Request().Context())
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, products)
}

// UpdateProduct godoc
// @Summary Update product
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param product body ProductRequest true "Product payload"
// @Success 200 {object} model.Product
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401
// @Failure 403
// @Failure 404 {object} errors.ErrorResponse
// @Router /products/{id} [put]
func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return errorResponse(err)
	}

	var req ProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	product := req.toModel()
	product.ID = id
	updated, err := h.productService.UpdateProduct(c.Request().Context(), product)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteProduct godoc
// @Summary Delete product
// @Description Admin only.
// @Tags products
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 204
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401
// @Failure 403
// @Failure 404 {object} errors.ErrorResponse
// @Router /products/{id} [delete]
func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return errorResponse(err)
	}

	if err := h.productService.DeleteProduct(c.Request().Context(), id); err != nil {
		return errorResponse(err)
	}
	return c.NoContent(http.StatusNoContent)
}
