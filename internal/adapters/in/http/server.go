package http

import (
	"errors"
	"net/http"
	"time"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// Server implements the HTTP API for the order lifecycle.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler         commands.CreateOrderCommandHandler
	setStatusHandler           commands.SetStatusCommandHandler
	requestCancellationHandler commands.RequestCancellationCommandHandler
	decideCancellationHandler  commands.DecideCancellationCommandHandler
	assignCourierHandler       commands.AssignCourierCommandHandler
	recordHubArrivalHandler    commands.RecordHubArrivalCommandHandler
	recordAttemptHandler       commands.RecordAttemptCommandHandler
	recordDeliveryHandler      commands.RecordDeliveryCommandHandler
	addMessageHandler          commands.AddMessageCommandHandler
	pushLocationHandler        commands.PushLocationCommandHandler
	createCouponHandler        commands.CreateCouponCommandHandler

	// Query handlers
	getOrderHandler         queries.GetOrderQueryHandler
	listActiveOrdersHandler queries.ListActiveOrdersQueryHandler
	listMessagesHandler     queries.ListMessagesQueryHandler
	latestLocationHandler   queries.LatestLocationQueryHandler
	applyCouponHandler      queries.ApplyCouponQueryHandler
}

// ServerParams bundles the handlers the server needs.
type ServerParams struct {
	CreateOrderHandler         commands.CreateOrderCommandHandler
	SetStatusHandler           commands.SetStatusCommandHandler
	RequestCancellationHandler commands.RequestCancellationCommandHandler
	DecideCancellationHandler  commands.DecideCancellationCommandHandler
	AssignCourierHandler       commands.AssignCourierCommandHandler
	RecordHubArrivalHandler    commands.RecordHubArrivalCommandHandler
	RecordAttemptHandler       commands.RecordAttemptCommandHandler
	RecordDeliveryHandler      commands.RecordDeliveryCommandHandler
	AddMessageHandler          commands.AddMessageCommandHandler
	PushLocationHandler        commands.PushLocationCommandHandler
	CreateCouponHandler        commands.CreateCouponCommandHandler

	GetOrderHandler         queries.GetOrderQueryHandler
	ListActiveOrdersHandler queries.ListActiveOrdersQueryHandler
	ListMessagesHandler     queries.ListMessagesQueryHandler
	LatestLocationHandler   queries.LatestLocationQueryHandler
	ApplyCouponHandler      queries.ApplyCouponQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(params ServerParams) *Server {
	return &Server{
		createOrderHandler:         params.CreateOrderHandler,
		setStatusHandler:           params.SetStatusHandler,
		requestCancellationHandler: params.RequestCancellationHandler,
		decideCancellationHandler:  params.DecideCancellationHandler,
		assignCourierHandler:       params.AssignCourierHandler,
		recordHubArrivalHandler:    params.RecordHubArrivalHandler,
		recordAttemptHandler:       params.RecordAttemptHandler,
		recordDeliveryHandler:      params.RecordDeliveryHandler,
		addMessageHandler:          params.AddMessageHandler,
		pushLocationHandler:        params.PushLocationHandler,
		createCouponHandler:        params.CreateCouponHandler,
		getOrderHandler:            params.GetOrderHandler,
		listActiveOrdersHandler:    params.ListActiveOrdersHandler,
		listMessagesHandler:        params.ListMessagesHandler,
		latestLocationHandler:      params.LatestLocationHandler,
		applyCouponHandler:         params.ApplyCouponHandler,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/active", s.GetActiveOrders)
	api.GET("/orders/:orderId", s.GetOrder)
	api.POST("/orders/:orderId/status", s.SetStatus)
	api.POST("/orders/:orderId/cancellation-requests", s.RequestCancellation)
	api.POST("/orders/:orderId/cancellation-decisions", s.DecideCancellation)
	api.POST("/orders/:orderId/courier", s.AssignCourier)
	api.POST("/orders/:orderId/hub-arrivals", s.RecordHubArrival)
	api.POST("/orders/:orderId/attempts", s.RecordAttempt)
	api.POST("/orders/:orderId/delivery", s.RecordDelivery)
	api.GET("/orders/:orderId/messages", s.GetMessages)
	api.POST("/orders/:orderId/messages", s.AddMessage)
	api.POST("/orders/:orderId/locations", s.PushLocation)
	api.GET("/orders/:orderId/locations/latest", s.GetLatestLocation)
	api.POST("/coupons", s.CreateCoupon)
	api.GET("/coupons/:code/preview", s.PreviewCoupon)
}

// Error is the JSON error body returned by all endpoints.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func errorJSON(ctx echo.Context, status int, message string) error {
	return ctx.JSON(status, Error{Code: status, Message: message})
}

// domainError maps domain and application errors onto HTTP statuses.
func domainError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return errorJSON(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrStateConflict),
		errors.Is(err, errs.ErrConcurrencyConflict):
		return errorJSON(ctx, http.StatusConflict, err.Error())
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return errorJSON(ctx, http.StatusBadRequest, err.Error())
	default:
		return errorJSON(ctx, http.StatusInternalServerError, err.Error())
	}
}

func orderIDFromPath(ctx echo.Context) (kernel.UUID, error) {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("orderId", err)
	}
	return orderID, nil
}

// NewOrderLine is a single cart line in an order creation request.
type NewOrderLine struct {
	Kind      string `json:"kind"`
	ItemID    string `json:"itemId"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unitPrice"`
}

// NewOrder is the request body for order creation.
type NewOrder struct {
	Lines      []NewOrderLine `json:"lines"`
	CouponCode string         `json:"couponCode,omitempty"`
}

// CreatedOrder is the response body for a successfully placed order.
type CreatedOrder struct {
	ID string `json:"id"`
}

// CreateOrder handles POST /api/v1/orders - places a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var newOrder NewOrder
	if err := ctx.Bind(&newOrder); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid request body")
	}

	lines := make([]commands.OrderLineSpec, 0, len(newOrder.Lines))
	for _, line := range newOrder.Lines {
		kind, err := order.LineKindFromString(line.Kind)
		if err != nil {
			return domainError(ctx, err)
		}
		unitPrice, err := decimal.NewFromString(line.UnitPrice)
		if err != nil {
			return errorJSON(ctx, http.StatusBadRequest, "Invalid unit price: "+line.UnitPrice)
		}
		lines = append(lines, commands.OrderLineSpec{
			Kind:      kind,
			ItemID:    line.ItemID,
			Quantity:  line.Quantity,
			UnitPrice: unitPrice,
		})
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, lines, newOrder.CouponCode)
	if err != nil {
		return domainError(ctx, err)
	}

	if handleErr := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, CreatedOrder{ID: orderID.String()})
}

// StatusChange is the request body for a status transition.
type StatusChange struct {
	Status string `json:"status"`
}

// SetStatus handles POST /api/v1/orders/:orderId/status - advances the order.
func (s *Server) SetStatus(ctx echo.Context) error {
	orderID, err := orderIDFromPath(ctx)
	if err != nil {
		return domainError(ctx, err)
	}

	var change StatusChange
	if err = ctx.Bind(&change); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid request body")
	}

	status, err := order.StatusFromString(change.Status)
	if err != nil {
		return domainError(ctx, err)
	}

	cmd, err := commands.NewSetStatusCommand(orderID, status)
	if err != nil {
		return domainError(ctx, err)
	}

	if handleErr := s.setStatusHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RequestCancellation handles POST /api/v1/orders/:orderId/cancellation-requests.
func (s *Server) RequestCancellation(ctx echo.Context) error {
	orderID, err := orderIDFromPath(ctx)
	if err != nil {
		return domainError(ctx, err)
	}

	cmd, err := commands.NewRequestCancellationCommand(orderID)
	if err != nil {
		return domainError(ctx, err)
	}

	if handleErr := s.requestCancellationHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusAccepted)
}

// CancellationDecision is the request body for resolving a cancellation request.
type CancellationDecision struct {
	Approve bool `json:"approve"`
}

// DecideCancellation handles POST /api/v1/orders/:orderId/cancellation-decisions.
func (s *Server) DecideCancellation(ctx echo.Context) error {
	orderID, err := orderIDFromPath(ctx)
	if err != nil {
		return domainError(ctx, err)
	}

	var decision CancellationDecision
	if err = ctx.Bind(&decision); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewDecideCancellationCommand(orderID, decision.Approve)
	if err != nil {
		return domainError(ctx, err)
	}

	if handleErr := s.decideCancellationHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CourierAssignment is the request body for assigning delivery partner details.
type CourierAssignment struct {
	CourierName        string `json:"courierName"`
	TrackingID         string `json:"trackingId"`
	TrackingURLPattern string `json:"trackingUrlPattern,omitempty"`
}

// AssignCourier handles POST /api/v1/orders/:orderId/courier.
func (s *Server) AssignCourier(ctx echo.Context) error {
	orderID, err := orderIDFromPath(ctx)
	if err != nil {
		return domainError(ctx, err)
	}

	var assignment CourierAssignment
	if err = ctx.Bind(&assignment); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewAssignCourierCommand(
		orderID, assignment.CourierName, assignment.TrackingID, assignment.TrackingURLPattern)
	if err != nil {
		return domainError(ctx, err)
	}

	if handleErr := s.assignCourierHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// HubArrival is the request body for recording a hub check-in.
type HubArrival struct {
	HubName   string `json:"hubName"`
	StaffName string `json:"staffName"`
	Note      string `json:"note,omitempty"`
}

// RecordHubArrival handles POST /api/v1/orders/:orderId/hub-arrivals.
func (s *Server) RecordHubArrival(ctx echo.Context) error {
	orderID, err := orderIDFromPath(ctx)
	if err != nil {
		return domainError(ctx, err)
	}

	var arrival HubArrival
	if err = ctx.Bind(&arrival); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewRecordHubArrivalCommand(orderID, arrival.HubName, arrival.StaffName, arrival.Note)
	if err != nil {
		return domainError(ctx, err)
	}

	if handleErr := s.recordHubArrivalHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// FailedAttempt is the request body for recording a failed delivery attempt.
type FailedAttempt struct {
	Reason   string `json:"reason"`
	Note     string `json:"note,omitempty"`
	PhotoRef string `json:"photoRef,omitempty"`
}

// RecordAttempt handles POST /api/v1/orders/:orderId/attempts.
func (s *Server) RecordAttempt(ctx echo.Context) error {
	orderID, err := orderIDFromPath(ctx)
	if err != nil {
		return domainError(ctx, err)
	}

	var attempt FailedAttempt
	if err = ctx.Bind(&attempt); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid request body")
	}

	reason, err := order.AttemptReasonFromString(attempt.Reason)
	if err != nil {
		return domainError(ctx, err)
	}

	cmd, err := commands.NewRecordAttemptCommand(orderID, reason, attempt.Note, attempt.PhotoRef)
	if err != nil {
		return domainError(ctx, err)
	}

	if handleErr := s.recordAttemptHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DeliveryConfirmation is the request body for a proof of delivery.
type DeliveryConfirmation struct {
	RecipientName string `json:"recipientName"`
	SignatureRef  string `json:"signatureRef"`
	PhotoRef      string `json:"photoRef,omitempty"`
}

// RecordDelivery handles POST /api/v1/orders/:orderId/delivery.
func (s *Server) RecordDelivery(ctx echo.Context) error {
	orderID, err := orderIDFromPath(ctx)
	if err != nil {
		return domainError(ctx, err)
	}

	var confirmation DeliveryConfirmation
	if err = ctx.Bind(&confirmation); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewRecordDeliveryCommand(
		orderID, confirmation.RecipientName, confirmation.SignatureRef, confirmation.PhotoRef)
	if err != nil {
		return domainError(ctx, err)
	}

	if handleErr := s.recordDeliveryHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// NewMessage is the request body for appending to the delivery message log.
type NewMessage struct {
	Text  string `json:"text"`
	Actor string `json:"actor"`
}

// AddMessage handles POST /api/v1/orders/:orderId/messages.
func (s *Server) AddMessage(ctx echo.Context) error {
	orderID, err := orderIDFromPath(ctx)
	if err != nil {
		return domainError(ctx, err)
	}

	var message NewMessage
	if err = ctx.Bind(&message); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid request body")
	}

	actor, err := order.ActorFromString(message.Actor)
	if err != nil {
		return domainError(ctx, err)
	}

	cmd, err := commands.NewAddMessageCommand(orderID, message.Text, actor)
	if err != nil {
		return domainError(ctx, err)
	}

	if handleErr := s.addMessageHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusCreated)
}

// LocationReport is the request body for a courier location ping.
type LocationReport struct {
	Latitude  float64   `json:"lat"`
	Longitude float64   `json:"lng"`
	Timestamp time.Time `json:"timestamp,omitempty"`
}

// LocationReportResult tells the courier app whether the ping was retained.
type LocationReportResult struct {
	Accepted bool `json:"accepted"`
}

// PushLocation handles POST /api/v1/orders/:orderId/locations.
// Reports for orders not out for delivery are acknowledged but not retained.
func (s *Server) PushLocation(ctx echo.Context) error {
	orderID, err := orderIDFromPath(ctx)
	if err != nil {
		return domainError(ctx, err)
	}

	var report LocationReport
	if err = ctx.Bind(&report); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewPushLocationCommand(orderID, report.Latitude, report.Longitude, report.Timestamp)
	if err != nil {
		return domainError(ctx, err)
	}

	accepted, err := s.pushLocationHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, LocationReportResult{Accepted: accepted})
}

// GetOrder handles GET /api/v1/orders/:orderId - retrieves the full order view.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := orderIDFromPath(ctx)
	if err != nil {
		return domainError(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return domainError(ctx, err)
	}

	response, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetActiveOrders handles GET /api/v1/orders/active - lists all in-flight orders.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	query := queries.NewListActiveOrdersQuery()

	orders, err := s.listActiveOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orders)
}

// GetMessages handles GET /api/v1/orders/:orderId/messages.
func (s *Server) GetMessages(ctx echo.Context) error {
	orderID, err := orderIDFromPath(ctx)
	if err != nil {
		return domainError(ctx, err)
	}

	query, err := queries.NewListMessagesQuery(orderID)
	if err != nil {
		return domainError(ctx, err)
	}

	messages, err := s.listMessagesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, messages)
}

// GetLatestLocation handles GET /api/v1/orders/:orderId/locations/latest.
// Returns 404 when the order exists but has no retained location reports.
func (s *Server) GetLatestLocation(ctx echo.Context) error {
	orderID, err := orderIDFromPath(ctx)
	if err != nil {
		return domainError(ctx, err)
	}

	query, err := queries.NewLatestLocationQuery(orderID)
	if err != nil {
		return domainError(ctx, err)
	}

	location, err := s.latestLocationHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}
	if location == nil {
		return errorJSON(ctx, http.StatusNotFound, "No location reports for order")
	}

	return ctx.JSON(http.StatusOK, location)
}

// NewCoupon is the request body for registering a coupon.
type NewCoupon struct {
	Code            string    `json:"code"`
	DiscountPercent int       `json:"discountPercent"`
	MinOrderAmount  string    `json:"minOrderAmount"`
	ExpiresAt       time.Time `json:"expiresAt"`
}

// CreateCoupon handles POST /api/v1/coupons.
func (s *Server) CreateCoupon(ctx echo.Context) error {
	var newCoupon NewCoupon
	if err := ctx.Bind(&newCoupon); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid request body")
	}

	minOrderAmount, err := decimal.NewFromString(newCoupon.MinOrderAmount)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid minimum order amount: "+newCoupon.MinOrderAmount)
	}

	cmd, err := commands.NewCreateCouponCommand(
		newCoupon.Code, newCoupon.DiscountPercent, minOrderAmount, newCoupon.ExpiresAt)
	if err != nil {
		return domainError(ctx, err)
	}

	if handleErr := s.createCouponHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusCreated)
}

// PreviewCoupon handles GET /api/v1/coupons/:code/preview?subtotal=...
// It evaluates the coupon without attaching it to any order.
func (s *Server) PreviewCoupon(ctx echo.Context) error {
	subtotal, err := decimal.NewFromString(ctx.QueryParam("subtotal"))
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid subtotal: "+ctx.QueryParam("subtotal"))
	}

	query, err := queries.NewApplyCouponQuery(ctx.Param("code"), subtotal)
	if err != nil {
		return domainError(ctx, err)
	}

	preview, err := s.applyCouponHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, preview)
}
