package handler

import (
	"net/http"

	deliverycontext "himart/internal/delivery/context"
	"himart/internal/delivery/http/response"
	domainerrors "himart/internal/domain/errors"
	"himart/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CreateProductRequest lists the required fields in the order they are reported.
type CreateProductRequest struct {
	Title         string   `json:"title" validate:"required"`
	Description   string   `json:"description" validate:"required"`
	Price         float64  `json:"price" validate:"required"`
	Image         string   `json:"image" validate:"required"`
	Category      string   `json:"category" validate:"required"`
	DiscountPrice float64  `json:"discountPrice"`
	Stock         int      `json:"stock"`
	Keywords      []string `json:"keywords"`
	BrandName     string   `json:"brandName"`
}

// UpdateProductRequest identifies the product in the body. Category may be omitted.
type UpdateProductRequest struct {
	ID            string   `json:"id" validate:"required"`
	Title         string   `json:"title" validate:"required"`
	Description   string   `json:"description" validate:"required"`
	Price         float64  `json:"price" validate:"required"`
	Image         string   `json:"image" validate:"required"`
	Category      string   `json:"category"`
	DiscountPrice float64  `json:"discountPrice"`
	Stock         int      `json:"stock"`
	Keywords      []string `json:"keywords"`
	BrandName     string   `json:"brandName"`
}

// ProductIDRequest is a body carrying only a product id.
type ProductIDRequest struct {
	ID string `json:"id" validate:"required"`
}

// RateProductRequest scores a product from 1 to 5.
type RateProductRequest struct {
	ID     string `json:"id" validate:"required"`
	Rating int    `json:"rating" validate:"required"`
}

// ProductHandler serves /product.
type ProductHandler struct {
	products usecase.ProductUsecase
}

// NewProductHandler is the constructor for ProductHandler, injected by Fx.
func NewProductHandler(products usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{products: products}
}

// Get returns one product with its engagement figures.
func (h *ProductHandler) Get(c echo.Context) error {
	id := c.QueryParam("id")
	if id == "" {
		return domainerrors.MissingField("id")
	}

	detail, err := h.products.Get(c.Request().Context(), id, deliverycontext.GetIdentity(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, detail, "")
}

// Create adds a product owned by the caller.
func (h *ProductHandler) Create(c echo.Context) error {
	identity, err := requester(c)
	if err != nil {
		return err
	}

	var req CreateProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	product, err := h.products.Create(c.Request().Context(), *identity, usecase.ProductInput{
		Title:         req.Title,
		Description:   req.Description,
		Price:         req.Price,
		DiscountPrice: req.DiscountPrice,
		Image:         req.Image,
		Stock:         req.Stock,
		Category:      req.Category,
		Keywords:      req.Keywords,
		BrandName:     req.BrandName,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Created(c, product, "Product created")
}

// Update replaces the mutable fields of a product the caller owns.
func (h *ProductHandler) Update(c echo.Context) error {
	identity, err := requester(c)
	if err != nil {
		return err
	}

	var req UpdateProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	product, err := h.products.Update(c.Request().Context(), *identity, req.ID, usecase.ProductInput{
		Title:         req.Title,
		Description:   req.Description,
		Price:         req.Price,
		DiscountPrice: req.DiscountPrice,
		Image:         req.Image,
		Stock:         req.Stock,
		Category:      req.Category,
		Keywords:      req.Keywords,
		BrandName:     req.BrandName,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, product, "Product updated")
}

// Delete removes a product the caller owns.
func (h *ProductHandler) Delete(c echo.Context) error {
	identity, err := requester(c)
	if err != nil {
		return err
	}

	var req ProductIDRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.products.Delete(c.Request().Context(), *identity, req.ID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"id": req.ID}, "Product deleted")
}

// Rate records the caller's rating.
func (h *ProductHandler) Rate(c echo.Context) error {
	identity, err := requester(c)
	if err != nil {
		return err
	}

	var req RateProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.products.Rate(c.Request().Context(), *identity, req.ID, req.Rating); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{"id": req.ID, "rating": req.Rating}, "Rating recorded")
}

// QRCode renders a PNG linking to the product page.
func (h *ProductHandler) QRCode(c echo.Context) error {
	png, err := h.products.QRCode(c.Request().Context(), c.QueryParam("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
