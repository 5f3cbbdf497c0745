// Package http exposes the inbound HTTP surface: the messaging webhook
// that feeds the dispatch router, and a small read/write API for
// monitoring and integrations.
package http

import (
	"net/http"

	"dispatch/internal/core/application/dispatch"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Server coordinates between HTTP handlers, the dispatch router and the
// application use cases.
type Server struct {
	router *dispatch.Router

	createDraftOrderHandler commands.CreateDraftOrderCommandHandler
	getOrdersHandler        queries.GetOrdersQueryHandler
	getAllCouriersHandler   queries.GetAllCouriersQueryHandler
}

// NewServer creates a new HTTP server with the required router and
// command/query handlers.
func NewServer(
	router *dispatch.Router,
	createDraftOrderHandler commands.CreateDraftOrderCommandHandler,
	getOrdersHandler queries.GetOrdersQueryHandler,
	getAllCouriersHandler queries.GetAllCouriersQueryHandler,
) *Server {
	return &Server{
		router:                  router,
		createDraftOrderHandler: createDraftOrderHandler,
		getOrdersHandler:        getOrdersHandler,
		getAllCouriersHandler:   getAllCouriersHandler,
	}
}

// RegisterRoutes mounts all handlers on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)
	e.POST("/webhook", s.Webhook)
	e.GET("/api/v1/orders", s.GetOrders)
	e.POST("/api/v1/orders", s.CreateOrder)
	e.GET("/api/v1/couriers", s.GetCouriers)
	e.GET("/swagger/*", echoSwagger.WrapHandler)
}

// ErrorResponse is the JSON body of a failed request.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// WebhookUpdate is the envelope the messaging channel delivers. Exactly
// one payload shape applies per type.
type WebhookUpdate struct {
	Type  string       `json:"type"`
	Actor WebhookActor `json:"actor"`

	// type "text"
	Text          string `json:"text,omitempty"`
	ForwardedFrom string `json:"forwarded_from,omitempty"`

	// type "location"
	Lat float64 `json:"lat,omitempty"`
	Lng float64 `json:"lng,omitempty"`

	// type "media"
	MediaRef string `json:"media_ref,omitempty"`
	Caption  string `json:"caption,omitempty"`

	// type "interaction"
	Token         string `json:"token,omitempty"`
	InteractionID string `json:"interaction_id,omitempty"`
	MessageRef    string `json:"message_ref,omitempty"`
}

// WebhookActor identifies the sender of an update.
type WebhookActor struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name,omitempty"`
}

// Health handles GET /health.
//
//	@Summary	Liveness probe
//	@Produce	plain
//	@Success	200	{string}	string	"Healthy"
//	@Router		/health [get]
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// Webhook handles POST /webhook - accepts one messaging update and routes
// it through the dispatch core. The core absorbs workflow errors itself,
// so the channel never sees a failure it would retry; only malformed
// envelopes are rejected.
//
//	@Summary	Messaging channel webhook
//	@Accept		json
//	@Param		update	body	WebhookUpdate	true	"Channel update"
//	@Success	200
//	@Failure	400	{object}	ErrorResponse
//	@Router		/webhook [post]
func (s *Server) Webhook(ctx echo.Context) error {
	var update WebhookUpdate
	if err := ctx.Bind(&update); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	ev, ok := toEvent(update)
	if !ok {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Unknown update type or missing actor id",
		})
	}

	s.router.HandleEvent(ctx.Request().Context(), ev)
	return ctx.NoContent(http.StatusOK)
}

func toEvent(update WebhookUpdate) (dispatch.Event, bool) {
	if update.Actor.ID == "" {
		return nil, false
	}
	actor := dispatch.Actor{
		ID:          update.Actor.ID,
		DisplayName: update.Actor.DisplayName,
	}

	switch update.Type {
	case "text":
		return dispatch.TextMessage{
			Actor:         actor,
			Text:          update.Text,
			ForwardedFrom: update.ForwardedFrom,
		}, true
	case "location":
		return dispatch.LocationMessage{
			Actor: actor,
			Lat:   update.Lat,
			Lng:   update.Lng,
		}, true
	case "media":
		return dispatch.MediaMessage{
			Actor:    actor,
			MediaRef: update.MediaRef,
			Caption:  update.Caption,
		}, true
	case "interaction":
		return dispatch.InteractionEvent{
			Actor:         actor,
			Token:         update.Token,
			InteractionID: update.InteractionID,
			MessageRef:    update.MessageRef,
		}, true
	default:
		return nil, false
	}
}

// NewOrderRequest is the body of POST /api/v1/orders.
type NewOrderRequest struct {
	Items        string `json:"items"`
	LocationLink string `json:"location_link,omitempty"`
}

// NewOrderResponse returns the id of the created draft.
type NewOrderResponse struct {
	ID string `json:"id"`
}

// CreateOrder handles POST /api/v1/orders - parks a new draft order.
//
//	@Summary	Create a draft order
//	@Accept		json
//	@Produce	json
//	@Param		order	body		NewOrderRequest	true	"Draft order"
//	@Success	201		{object}	NewOrderResponse
//	@Failure	400		{object}	ErrorResponse
//	@Router		/api/v1/orders [post]
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req NewOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateDraftOrderCommand(orderID, req.Items, req.LocationLink)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid order data: " + err.Error(),
		})
	}

	if handleErr := s.createDraftOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to create order",
		})
	}

	return ctx.JSON(http.StatusCreated, NewOrderResponse{ID: orderID.String()})
}

// GetOrders handles GET /api/v1/orders - retrieves one order board view.
//
//	@Summary	List orders of one board view
//	@Produce	json
//	@Param		view	query		string	false	"saved | pool | active | completed | archived"	default(pool)
//	@Success	200		{array}		queries.GetOrdersQueryResponse
//	@Failure	400		{object}	ErrorResponse
//	@Router		/api/v1/orders [get]
func (s *Server) GetOrders(ctx echo.Context) error {
	raw := ctx.QueryParam("view")
	if raw == "" {
		raw = string(queries.ViewPool)
	}

	view, err := queries.ParseOrdersView(raw)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Unknown view: " + raw,
		})
	}

	query, err := queries.NewGetOrdersQuery(view)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid query",
		})
	}

	orders, err := s.getOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve orders",
		})
	}

	return ctx.JSON(http.StatusOK, orders)
}

// GetCouriers handles GET /api/v1/couriers - retrieves all couriers.
//
//	@Summary	List couriers
//	@Produce	json
//	@Success	200	{array}		queries.GetAllCouriersQueryResponse
//	@Failure	500	{object}	ErrorResponse
//	@Router		/api/v1/couriers [get]
func (s *Server) GetCouriers(ctx echo.Context) error {
	query := queries.NewGetAllCouriersQuery()

	couriers, err := s.getAllCouriersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve couriers",
		})
	}

	return ctx.JSON(http.StatusOK, couriers)
}
