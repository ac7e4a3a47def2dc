package handler

import (
	"net/http"

	"himart/internal/delivery/http/response"
	"himart/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// RegisterSellerRequest is the seller onboarding form.
type RegisterSellerRequest struct {
	BusinessName string `json:"businessName" validate:"required"`
	BusinessType string `json:"businessType" validate:"required"`
	Email        string `json:"email" validate:"required"`
	Phone        string `json:"phone" validate:"required"`
	Address      string `json:"address" validate:"required"`
	TaxID        string `json:"taxId" validate:"required"`
}

// SellerHandler serves /seller.
type SellerHandler struct {
	sellers usecase.SellerUsecase
}

// NewSellerHandler is the constructor for SellerHandler, injected by Fx.
func NewSellerHandler(sellers usecase.SellerUsecase) *SellerHandler {
	return &SellerHandler{sellers: sellers}
}

// Register turns the caller into a seller.
func (h *SellerHandler) Register(c echo.Context) error {
	identity, err := requester(c)
	if err != nil {
		return err
	}

	var req RegisterSellerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	seller, err := h.sellers.Register(c.Request().Context(), identity.UserID, usecase.RegisterSellerInput{
		BusinessName: req.BusinessName,
		BusinessType: req.BusinessType,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		TaxID:        req.TaxID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Created(c, map[string]any{"seller": seller}, "Seller registered successfully")
}

// Session returns the caller's seller profile.
func (h *SellerHandler) Session(c echo.Context) error {
	identity, err := requester(c)
	if err != nil {
		return err
	}

	seller, err := h.sellers.Session(c.Request().Context(), identity.UserID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{"seller": seller}, "")
}

// Data lists the caller's own products.
func (h *SellerHandler) Data(c echo.Context) error {
	identity, err := requester(c)
	if err != nil {
		return err
	}

	products, err := h.sellers.Products(c.Request().Context(), identity.UserID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{"products": products}, "")
}
