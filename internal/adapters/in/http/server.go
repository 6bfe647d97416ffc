package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/srCochayuyo/censudex-orders-service/internal/core/application/usecases/commands"
	"github.com/srCochayuyo/censudex-orders-service/internal/core/application/usecases/queries"
	"github.com/srCochayuyo/censudex-orders-service/internal/core/domain/model/kernel"
	"github.com/srCochayuyo/censudex-orders-service/internal/core/domain/model/order"
	"github.com/srCochayuyo/censudex-orders-service/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server exposes the order lifecycle over HTTP.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler      commands.CreateOrderCommandHandler
	changeOrderStateHandler commands.ChangeOrderStateCommandHandler
	cancelOrderHandler      commands.CancelOrderCommandHandler

	// Query handlers
	getOrderStateHandler queries.GetOrderStateQueryHandler
	getUserOrdersHandler queries.GetUserOrdersQueryHandler
	getAllOrdersHandler  queries.GetAllOrdersQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	changeOrderStateHandler commands.ChangeOrderStateCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	getOrderStateHandler queries.GetOrderStateQueryHandler,
	getUserOrdersHandler queries.GetUserOrdersQueryHandler,
	getAllOrdersHandler queries.GetAllOrdersQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:      createOrderHandler,
		changeOrderStateHandler: changeOrderStateHandler,
		cancelOrderHandler:      cancelOrderHandler,
		getOrderStateHandler:    getOrderStateHandler,
		getUserOrdersHandler:    getUserOrdersHandler,
		getAllOrdersHandler:     getAllOrdersHandler,
	}
}

// RegisterRoutes mounts all order endpoints on the given echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/v1/orders", s.CreateOrder)
	e.GET("/api/v1/orders", s.GetOrders)
	e.GET("/api/v1/orders/user/:userId", s.GetUserOrders)
	e.GET("/api/v1/orders/:identifier/state", s.GetOrderState)
	e.PUT("/api/v1/orders/:identifier/state", s.ChangeOrderState)
	e.PUT("/api/v1/orders/:identifier/cancel", s.CancelOrder)
}

// Error is the JSON error body of every failed request.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewOrderLine is one ordered product in an order creation request.
type NewOrderLine struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
}

// NewOrder is the order creation request body.
type NewOrder struct {
	UserID    string         `json:"userId"`
	UserName  string         `json:"userName"`
	UserEmail string         `json:"userEmail"`
	Address   string         `json:"address"`
	Lines     []NewOrderLine `json:"lines"`
}

// StateChange is the state change request body. TrackingNumber is required
// when the new status is Shipped and rejected otherwise.
type StateChange struct {
	Status         string `json:"status"`
	TrackingNumber string `json:"trackingNumber"`
}

// Cancellation is the cancel request body. The reason is optional.
type Cancellation struct {
	Reason string `json:"reason"`
}

// OrderLine is one ordered product in an order response.
type OrderLine struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Subtotal    float64 `json:"subtotal"`
}

// Order is the full order representation returned by write endpoints.
type Order struct {
	ID             string      `json:"id"`
	OrderNumber    string      `json:"orderNumber"`
	UserID         string      `json:"userId"`
	UserName       string      `json:"userName"`
	Address        string      `json:"address"`
	Status         string      `json:"status"`
	TrackingNumber string      `json:"trackingNumber,omitempty"`
	TotalPrice     float64     `json:"totalPrice"`
	Lines          []OrderLine `json:"lines"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      *time.Time  `json:"updatedAt,omitempty"`
}

// OrderState is the lifecycle state returned by the state endpoint.
type OrderState struct {
	ID             string     `json:"id"`
	OrderNumber    string     `json:"orderNumber"`
	Status         string     `json:"status"`
	TrackingNumber string     `json:"trackingNumber,omitempty"`
	UpdatedAt      *time.Time `json:"updatedAt,omitempty"`
}

// OrderSummary is one row of an order history listing.
type OrderSummary struct {
	ID             string     `json:"id"`
	OrderNumber    string     `json:"orderNumber"`
	UserName       string     `json:"userName"`
	Address        string     `json:"address"`
	Status         string     `json:"status"`
	TrackingNumber string     `json:"trackingNumber,omitempty"`
	TotalPrice     float64    `json:"totalPrice"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      *time.Time `json:"updatedAt,omitempty"`
}

// CreateOrder handles POST /api/v1/orders - registers a new purchase order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var newOrder NewOrder
	if err := ctx.Bind(&newOrder); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	userID, err := kernel.UUIDFromString(newOrder.UserID)
	if err != nil {
		return badRequest(ctx, "Invalid user id: "+newOrder.UserID)
	}

	lines := make([]order.Line, 0, len(newOrder.Lines))
	for _, newLine := range newOrder.Lines {
		productID, idErr := kernel.UUIDFromString(newLine.ProductID)
		if idErr != nil {
			return badRequest(ctx, "Invalid product id: "+newLine.ProductID)
		}

		line, lineErr := order.NewLine(productID, newLine.ProductName, newLine.Quantity, newLine.UnitPrice)
		if lineErr != nil {
			return badRequest(ctx, "Invalid order line: "+lineErr.Error())
		}
		lines = append(lines, line)
	}

	cmd, err := commands.NewCreateOrderCommand(
		userID,
		newOrder.UserName,
		newOrder.UserEmail,
		newOrder.Address,
		lines,
	)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err, "Failed to create order")
	}

	return ctx.JSON(http.StatusCreated, toOrderResponse(created))
}

// GetOrderState handles GET /api/v1/orders/:identifier/state - returns the
// lifecycle state of one order addressed by id or order number.
func (s *Server) GetOrderState(ctx echo.Context) error {
	identifier, err := order.ParseIdentifier(ctx.Param("identifier"))
	if err != nil {
		return badRequest(ctx, "Invalid order identifier")
	}

	query, err := queries.NewGetOrderStateQuery(identifier)
	if err != nil {
		return badRequest(ctx, "Invalid order identifier")
	}

	state, err := s.getOrderStateHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err, "Failed to retrieve order state")
	}

	return ctx.JSON(http.StatusOK, OrderState{
		ID:             state.ID.String(),
		OrderNumber:    state.OrderNumber,
		Status:         state.Status,
		TrackingNumber: state.TrackingNumber,
		UpdatedAt:      state.UpdatedAt,
	})
}

// ChangeOrderState handles PUT /api/v1/orders/:identifier/state - moves an
// order to a new lifecycle status.
func (s *Server) ChangeOrderState(ctx echo.Context) error {
	identifier, err := order.ParseIdentifier(ctx.Param("identifier"))
	if err != nil {
		return badRequest(ctx, "Invalid order identifier")
	}

	var stateChange StateChange
	if err = ctx.Bind(&stateChange); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	target, err := order.ParseStatus(stateChange.Status)
	if err != nil {
		return badRequest(ctx, "Invalid status: "+stateChange.Status)
	}

	cmd, err := commands.NewChangeOrderStateCommand(identifier, target, stateChange.TrackingNumber)
	if err != nil {
		return badRequest(ctx, "Invalid state change: "+err.Error())
	}

	updated, err := s.changeOrderStateHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err, "Failed to change order state")
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(updated))
}

// CancelOrder handles PUT /api/v1/orders/:identifier/cancel - cancels an
// order that did not ship yet.
func (s *Server) CancelOrder(ctx echo.Context) error {
	identifier, err := order.ParseIdentifier(ctx.Param("identifier"))
	if err != nil {
		return badRequest(ctx, "Invalid order identifier")
	}

	var cancellation Cancellation
	if err = ctx.Bind(&cancellation); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCancelOrderCommand(identifier, cancellation.Reason)
	if err != nil {
		return badRequest(ctx, "Invalid cancellation: "+err.Error())
	}

	cancelled, err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err, "Failed to cancel order")
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(cancelled))
}

// GetUserOrders handles GET /api/v1/orders/user/:userId - lists the order
// history of one user, newest first.
func (s *Server) GetUserOrders(ctx echo.Context) error {
	userID, err := kernel.UUIDFromString(ctx.Param("userId"))
	if err != nil {
		return badRequest(ctx, "Invalid user id: "+ctx.Param("userId"))
	}

	filter, err := parseOrderFilter(ctx)
	if err != nil {
		return writeError(ctx, err, "Invalid filter")
	}

	query, err := queries.NewGetUserOrdersQuery(userID, filter)
	if err != nil {
		return badRequest(ctx, "Invalid query: "+err.Error())
	}

	summaries, err := s.getUserOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err, "Failed to retrieve orders")
	}

	return ctx.JSON(http.StatusOK, toSummaryResponses(summaries))
}

// GetOrders handles GET /api/v1/orders - lists all orders, optionally
// narrowed by user id, user name and the common filter predicates.
func (s *Server) GetOrders(ctx echo.Context) error {
	var userID *kernel.UUID
	if raw := ctx.QueryParam("userId"); raw != "" {
		parsed, err := kernel.UUIDFromString(raw)
		if err != nil {
			return badRequest(ctx, "Invalid user id: "+raw)
		}
		userID = &parsed
	}

	filter, err := parseOrderFilter(ctx)
	if err != nil {
		return writeError(ctx, err, "Invalid filter")
	}

	query, err := queries.NewGetAllOrdersQuery(userID, ctx.QueryParam("userName"), filter)
	if err != nil {
		return badRequest(ctx, "Invalid query: "+err.Error())
	}

	summaries, err := s.getAllOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err, "Failed to retrieve orders")
	}

	return ctx.JSON(http.StatusOK, toSummaryResponses(summaries))
}

// parseOrderFilter reads the shared history filter from the query string:
// orderId, orderNumber, initialDate and finishDate (RFC 3339).
func parseOrderFilter(ctx echo.Context) (queries.OrderFilter, error) {
	var orderID *kernel.UUID
	if raw := ctx.QueryParam("orderId"); raw != "" {
		parsed, err := kernel.UUIDFromString(raw)
		if err != nil {
			return queries.OrderFilter{}, errs.NewValueIsInvalidErrorWithCause("orderId", err)
		}
		orderID = &parsed
	}

	initialDate, err := parseDateParam(ctx.QueryParam("initialDate"))
	if err != nil {
		return queries.OrderFilter{}, err
	}

	finishDate, err := parseDateParam(ctx.QueryParam("finishDate"))
	if err != nil {
		return queries.OrderFilter{}, err
	}

	return queries.NewOrderFilter(orderID, ctx.QueryParam("orderNumber"), initialDate, finishDate)
}

func parseDateParam(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("date", err)
	}
	return &parsed, nil
}

func toOrderResponse(aggregate *order.Order) Order {
	aggregateLines := aggregate.Lines()
	lines := make([]OrderLine, 0, len(aggregateLines))
	for _, line := range aggregateLines {
		lines = append(lines, OrderLine{
			ProductID:   line.ProductID().String(),
			ProductName: line.ProductName(),
			Quantity:    line.Quantity(),
			UnitPrice:   line.UnitPrice(),
			Subtotal:    line.Subtotal(),
		})
	}

	return Order{
		ID:             aggregate.ID().String(),
		OrderNumber:    aggregate.OrderNumber(),
		UserID:         aggregate.UserID().String(),
		UserName:       aggregate.UserName(),
		Address:        aggregate.Address(),
		Status:         aggregate.Status().String(),
		TrackingNumber: aggregate.TrackingNumber(),
		TotalPrice:     aggregate.TotalPrice(),
		Lines:          lines,
		CreatedAt:      aggregate.CreatedAt(),
		UpdatedAt:      aggregate.UpdatedAt(),
	}
}

func toSummaryResponses(summaries []queries.OrderSummaryResponse) []OrderSummary {
	response := make([]OrderSummary, 0, len(summaries))
	for _, summary := range summaries {
		response = append(response, OrderSummary{
			ID:             summary.ID.String(),
			OrderNumber:    summary.OrderNumber,
			UserName:       summary.UserName,
			Address:        summary.Address,
			Status:         summary.Status,
			TrackingNumber: summary.TrackingNumber,
			TotalPrice:     summary.TotalPrice,
			CreatedAt:      summary.CreatedAt,
			UpdatedAt:      summary.UpdatedAt,
		})
	}
	return response
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// writeError maps application and domain errors to HTTP statuses:
// validation failures become 400, missing orders 404 and rejected lifecycle
// transitions 409. Everything else is a 500 with a generic message.
func writeError(ctx echo.Context, err error, fallback string) error {
	switch {
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, queries.ErrInvalidDateRange),
		errors.Is(err, order.ErrMissingTrackingNumber),
		errors.Is(err, order.ErrUnexpectedTrackingNumber):
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrAlreadyCancelled),
		errors.Is(err, order.ErrAlreadyShipped),
		errors.Is(err, order.ErrAlreadyDelivered):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: fallback,
		})
	}
}
