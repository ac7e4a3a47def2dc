package handler

import (
	"net/http"
	"strconv"

	deliverycontext "himart/internal/delivery/context"
	"himart/internal/delivery/http/cookie"
	"himart/internal/delivery/http/response"
	"himart/internal/domain/entity"
	"himart/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// DiscoveryHandler serves the /products listings and quick search.
type DiscoveryHandler struct {
	discovery usecase.DiscoveryUsecase
}

// NewDiscoveryHandler is the constructor for DiscoveryHandler, injected by Fx.
func NewDiscoveryHandler(discovery usecase.DiscoveryUsecase) *DiscoveryHandler {
	return &DiscoveryHandler{discovery: discovery}
}

// listInput reads page, limit and category. Unparseable numbers fall back to the defaults.
func listInput(c echo.Context) usecase.ListInput {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	return usecase.ListInput{
		Category:  c.QueryParam("category"),
		Page:      page,
		Limit:     limit,
		Requester: deliverycontext.GetIdentity(c),
	}
}

func listed(c echo.Context, products []*entity.ProductDetail, err error) error {
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, products, "")
}

// List is the plain paginated catalog.
func (h *DiscoveryHandler) List(c echo.Context) error {
	products, err := h.discovery.List(c.Request().Context(), listInput(c))

	return listed(c, products, err)
}

// Trending orders the page by impressions plus clicks.
func (h *DiscoveryHandler) Trending(c echo.Context) error {
	products, err := h.discovery.Trending(c.Request().Context(), listInput(c))

	return listed(c, products, err)
}

// Latest orders the page by creation time.
func (h *DiscoveryHandler) Latest(c echo.Context) error {
	products, err := h.discovery.Latest(c.Request().Context(), listInput(c))

	return listed(c, products, err)
}

// Discounted keeps the discounted products of the page.
func (h *DiscoveryHandler) Discounted(c echo.Context) error {
	products, err := h.discovery.Discounted(c.Request().Context(), listInput(c))

	return listed(c, products, err)
}

// UserChoices filters the page by the preference cookie.
func (h *DiscoveryHandler) UserChoices(c echo.Context) error {
	input := listInput(c)
	input.Preferences = cookie.Preferences(c)
	products, err := h.discovery.UserChoices(c.Request().Context(), input)

	return listed(c, products, err)
}

// Search is the bounded quick search behind the search box.
func (h *DiscoveryHandler) Search(c echo.Context) error {
	results, err := h.discovery.Search(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, results, "")
}
