package handler

import (
	"net/http"

	"himart/internal/delivery/http/response"
	"himart/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const defaultCartQuantity = 1

// AddCartItemRequest adds quantity (default 1) of a product.
type AddCartItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  *int   `json:"quantity"`
}

// UpdateCartItemRequest sets the quantity of an existing entry.
type UpdateCartItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  *int   `json:"quantity" validate:"required"`
}

// RemoveCartItemRequest names the entry to drop.
type RemoveCartItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
}

// CartHandler serves /cart. Every route requires a session.
type CartHandler struct {
	cart usecase.CartUsecase
}

// NewCartHandler is the constructor for CartHandler, injected by Fx.
func NewCartHandler(cart usecase.CartUsecase) *CartHandler {
	return &CartHandler{cart: cart}
}

// List returns the cart joined with live products.
func (h *CartHandler) List(c echo.Context) error {
	identity, err := requester(c)
	if err != nil {
		return err
	}

	lines, err := h.cart.List(c.Request().Context(), identity.UserID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, lines, "")
}

// Add puts a product in the cart or increases its quantity.
func (h *CartHandler) Add(c echo.Context) error {
	identity, err := requester(c)
	if err != nil {
		return err
	}

	var req AddCartItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	quantity := defaultCartQuantity
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	if err := h.cart.Add(c.Request().Context(), identity.UserID, req.ProductID, quantity); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Product added to cart")
}

// Update sets the quantity of an entry already in the cart.
func (h *CartHandler) Update(c echo.Context) error {
	identity, err := requester(c)
	if err != nil {
		return err
	}

	var req UpdateCartItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	item, err := h.cart.Update(c.Request().Context(), identity.UserID, req.ProductID, *req.Quantity)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, item, "Cart updated")
}

// Remove drops an entry from the cart.
func (h *CartHandler) Remove(c echo.Context) error {
	identity, err := requester(c)
	if err != nil {
		return err
	}

	var req RemoveCartItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.cart.Remove(c.Request().Context(), identity.UserID, req.ProductID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"id": req.ProductID}, "Product removed from cart")
}

// Count returns the number of distinct products in the cart.
func (h *CartHandler) Count(c echo.Context) error {
	identity, err := requester(c)
	if err != nil {
		return err
	}

	count, err := h.cart.Count(c.Request().Context(), identity.UserID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]int64{"count": count}, "")
}
