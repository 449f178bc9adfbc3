package http

import (
	"encoding/json"
	"net/http"
	"time"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

type placeOrderItemRequest struct {
	ItemName string      `json:"item_name"`
	Price    json.Number `json:"price"`
	Quantity int         `json:"quantity"`
}

// placeOrderRequest accepts prices either as JSON numbers or as decimal
// strings.
type placeOrderRequest struct {
	User       string                  `json:"user"`
	Restaurant string                  `json:"restaurant"`
	TotalPrice json.Number             `json:"total_price"`
	Items      []placeOrderItemRequest `json:"items"`
}

type orderIDRequest struct {
	OrderID string `json:"order_id"`
}

type acceptOrderRequest struct {
	OrderID string `json:"order_id"`
	AgentID string `json:"agent_id"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type orderItemResponse struct {
	Name     string       `json:"item_name"`
	Price    kernel.Money `json:"price"`
	Quantity int          `json:"quantity"`
}

type orderResponse struct {
	ID         kernel.UUID         `json:"id"`
	User       kernel.UUID         `json:"user"`
	Restaurant kernel.UUID         `json:"restaurant"`
	Agent      *kernel.UUID        `json:"agent"`
	Status     string              `json:"status"`
	TotalPrice kernel.Money        `json:"total_price"`
	CreatedAt  time.Time           `json:"created_at"`
	Items      []orderItemResponse `json:"items"`
}

func newOrderResponse(o *order.Order) orderResponse {
	items := make([]orderItemResponse, 0, len(o.Items()))
	for _, it := range o.Items() {
		items = append(items, orderItemResponse{Name: it.Name(), Price: it.UnitPrice(), Quantity: it.Quantity()})
	}
	return orderResponse{
		ID:         o.ID(),
		User:       o.CustomerID(),
		Restaurant: o.RestaurantID(),
		Agent:      o.AgentID(),
		Status:     o.Status().String(),
		TotalPrice: o.TotalPrice(),
		CreatedAt:  o.CreatedAt(),
		Items:      items,
	}
}

// PlaceOrder handles POST /place-order. The order is created and, if an
// agent has spare capacity, pre-assigned in the same transaction.
func (s *Server) PlaceOrder(c echo.Context) error {
	var req placeOrderRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := req.command()
	if err != nil {
		return s.respondError(c, err)
	}

	o, err := s.h.CreateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(http.StatusCreated, newOrderResponse(o))
}

func (r placeOrderRequest) command() (commands.CreateOrderCommand, error) {
	customerID, err := kernel.UUIDFromString(r.User)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}
	restaurantID, err := kernel.UUIDFromString(r.Restaurant)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}
	total, err := kernel.MoneyFromString(r.TotalPrice.String())
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}

	items := make([]commands.ItemInput, 0, len(r.Items))
	for _, it := range r.Items {
		price, priceErr := kernel.MoneyFromString(it.Price.String())
		if priceErr != nil {
			return commands.CreateOrderCommand{}, priceErr
		}
		items = append(items, commands.ItemInput{Name: it.ItemName, UnitPrice: price, Quantity: it.Quantity})
	}

	return commands.NewCreateOrderCommand(kernel.NewUUID(), customerID, restaurantID, total, items)
}

// ListOrders handles GET /orders with optional status, limit and offset
// query parameters.
func (s *Server) ListOrders(c echo.Context) error {
	var limit, offset int
	if err := echo.QueryParamsBinder(c).
		Int("limit", &limit).
		Int("offset", &offset).
		BindError(); err != nil {
		return badRequest(c, "limit and offset must be integers")
	}

	query, err := queries.NewListOrdersQuery(c.QueryParam("status"), limit, offset)
	if err != nil {
		return s.respondError(c, err)
	}

	summaries, err := s.h.ListOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string][]queries.OrderSummary{"orders": summaries})
}

// GetOrder handles GET /orders/:id.
func (s *Server) GetOrder(c echo.Context) error {
	orderID, err := pathUUID(c, "id")
	if err != nil {
		return s.respondError(c, err)
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return s.respondError(c, err)
	}

	view, err := s.h.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// GetOrderHistory handles GET /order-history/:user_id.
func (s *Server) GetOrderHistory(c echo.Context) error {
	customerID, err := pathUUID(c, "user_id")
	if err != nil {
		return s.respondError(c, err)
	}

	query, err := queries.NewGetOrderHistoryQuery(customerID)
	if err != nil {
		return s.respondError(c, err)
	}

	history, err := s.h.GetOrderHistory.Handle(c.Request().Context(), query)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(http.StatusOK, history)
}

// AcceptOrder handles POST /accept-order.
func (s *Server) AcceptOrder(c echo.Context) error {
	var req acceptOrderRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		return s.respondError(c, err)
	}
	agentID, err := kernel.UUIDFromString(req.AgentID)
	if err != nil {
		return s.respondError(c, err)
	}

	cmd, err := commands.NewAcceptOrderCommand(orderID, agentID)
	if err != nil {
		return s.respondError(c, err)
	}
	if err = s.h.AcceptOrder.Handle(c.Request().Context(), cmd); err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Order accepted"})
}

// PickUpOrder handles POST /pick-up-order.
func (s *Server) PickUpOrder(c echo.Context) error {
	orderID, err := bindOrderID(c)
	if err != nil {
		return s.respondError(c, err)
	}

	cmd, err := commands.NewPickUpOrderCommand(orderID)
	if err != nil {
		return s.respondError(c, err)
	}
	if err = s.h.PickUpOrder.Handle(c.Request().Context(), cmd); err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Order picked up"})
}

// MarkDelivered handles POST /mark-delivered.
func (s *Server) MarkDelivered(c echo.Context) error {
	orderID, err := bindOrderID(c)
	if err != nil {
		return s.respondError(c, err)
	}

	cmd, err := commands.NewMarkDeliveredCommand(orderID)
	if err != nil {
		return s.respondError(c, err)
	}
	if err = s.h.MarkDelivered.Handle(c.Request().Context(), cmd); err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Order delivered"})
}

func bindOrderID(c echo.Context) (kernel.UUID, error) {
	var req orderIDRequest
	if err := c.Bind(&req); err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("body", err)
	}
	return kernel.UUIDFromString(req.OrderID)
}
