package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/popcrumbs-alex/silver2ctfunnel/internal/dto"
	"github.com/popcrumbs-alex/silver2ctfunnel/internal/service"
)

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// Every operation answers 200 with the OrderResponse envelope; failures
// travel inside the envelope, not as transport errors.
func envelope(c echo.Context, resp *dto.OrderResponse, err error) error {
	if err != nil {
		return c.JSON(http.StatusOK, &dto.OrderResponse{Success: false, Error: err.Error()})
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *OrderHandler) FindOrder(c echo.Context) error {
	ctx := c.Request().Context()

	var input dto.FindOrderInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	resp, err := h.orderService.FindOrder(ctx, &input)
	return envelope(c, resp, err)
}

func (h *OrderHandler) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()

	var input dto.CreateOrderInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	resp, err := h.orderService.CreateOrder(ctx, &input)
	return envelope(c, resp, err)
}

func (h *OrderHandler) UpdateOrder(c echo.Context) error {
	ctx := c.Request().Context()

	var input dto.UpdateOrderInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	resp, err := h.orderService.UpdateOrder(ctx, &input)
	return envelope(c, resp, err)
}

func (h *OrderHandler) CloseOrder(c echo.Context) error {
	ctx := c.Request().Context()

	var input dto.CloseOrderInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	resp, err := h.orderService.CloseOrder(ctx, &input)
	return envelope(c, resp, err)
}
