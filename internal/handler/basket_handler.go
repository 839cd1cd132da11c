package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"webshop/internal/model"
	"webshop/internal/service"
)

// BasketHandler handles basket endpoints.
type BasketHandler struct {
	basketService service.BasketService
}

// NewBasketHandler creates a new basket handler.
func NewBasketHandler(basketService service.BasketService) *BasketHandler {
	return &BasketHandler{basketService: basketService}
}

// BasketRequest is the body of basket create and update requests.
type BasketRequest struct {
	Items        []model.BasketItem `json:"items" validate:"required"`
	DiscountCode string             `json:"discountCode,omitempty"`
	ExpireTime   *time.Time         `json:"expireTime,omitempty"`
}

func (r BasketRequest) toModel() *model.Basket {
	return &model.Basket{
		Items:        r.Items,
		DiscountCode: r.DiscountCode,
		ExpireTime:   r.ExpireTime,
	}
}

// CreateBasket godoc
// @Summary Create basket
// @Tags baskets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param basket body BasketRequest true "Basket payload"
// @Success 201 {object} model.Basket
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401
// @Failure 403
// @Router /baskets [post]
func (h *BasketHandler) CreateBasket(c echo.Context) error {
	var req BasketRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	created, err := h.basketService.CreateBasket(c.Request().Context(), req.toModel())
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusCreated, created)
}

// GetBasket godoc
// @Summary Get basket by id
// @Tags baskets
// @Produce json
// @Param id path string true "Basket ID"
// @Success 200 {object} model.Basket
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /baskets/{id} [get]
func (h *BasketHandler) GetBasket(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return errorResponse(err)
	}

	basket, err := h.basketService.GetBasket(c.Request().Context(), id)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, basket)
}

// ListBaskets godoc
// @Summary List baskets
// @Description Admin only.
// @Tags baskets
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Basket
// @Failure 401
// @Failure 403
// @Router /baskets [get]
func (h *BasketHandler) ListBaskets(c echo.Context) error {
	baskets, err := h.basketService.ListBaskets(c.Request().Context())
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, baskets)
}

// UpdateBasket godoc
// @Summary Update basket
// @Tags baskets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Basket ID"
// @Param basket body BasketRequest true "Basket payload"
// @Success 200 {object} model.Basket
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401
// @Failure 403
// @Failure 404 {object} errors.ErrorResponse
// @Router /baskets/{id} [put]
func (h *BasketHandler) UpdateBasket(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return errorResponse(err)
	}

	var req BasketRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	basket := req.toModel()
	basket.ID = id
	updated, err := h.basketService.UpdateBasket(c.Request().Context(), basket)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteBasket godoc
// @Summary Delete basket
// @Tags baskets
// @Security BearerAuth
// @Param id path string true "Basket ID"
// @Success 204
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401
// @Failure 403
// @Failure 404 {object} errors.ErrorResponse
// @Router /baskets/{id} [delete]
func (h *BasketHandler) DeleteBasket(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return errorResponse(err)
	}

	if err := h.basketService.DeleteBasket(c.Request().Context(), id); err != nil {
		return errorResponse(err)
	}
	return c.NoContent(http.StatusNoContent)
}
