package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	_ "dispatch/internal/generated/docs"
	"dispatch/internal/generated/servers"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Use case ports of the HTTP layer. The application handlers satisfy them.
type (
	CreateCouriersHandler interface {
		Handle(ctx context.Context, cmd commands.CreateCouriersCommand) ([]int64, error)
	}
	CreateOrdersHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrdersCommand) ([]int64, error)
	}
	AssignOrdersHandler interface {
		Handle(ctx context.Context, cmd commands.AssignOrdersCommand) (commands.AssignedBatch, error)
	}
	UpdateCourierProfileHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateCourierProfileCommand) (commands.UpdatedProfile, error)
	}
	CompleteOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CompleteOrderCommand) (int64, error)
	}
	ReleaseOrderHandler interface {
		Handle(ctx context.Context, cmd commands.ReleaseOrderCommand) error
	}
	GetCourierSummaryHandler interface {
		Handle(ctx context.Context, query queries.GetCourierSummaryQuery) (queries.GetCourierSummaryQueryResponse, error)
	}
	GetAvailableOrdersHandler interface {
		Handle(ctx context.Context, query queries.GetAvailableOrdersQuery) ([]queries.GetAvailableOrdersQueryResponse, error)
	}
	GetPoolStatsHandler interface {
		Handle(ctx context.Context, query queries.GetPoolStatsQuery) (queries.GetPoolStatsQueryResponse, error)
	}
)

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	CreateCouriers       CreateCouriersHandler
	CreateOrders         CreateOrdersHandler
	AssignOrders         AssignOrdersHandler
	UpdateCourierProfile UpdateCourierProfileHandler
	CompleteOrder        CompleteOrderHandler
	ReleaseOrder         ReleaseOrderHandler
	GetCourierSummary    GetCourierSummaryHandler
	GetAvailableOrders   GetAvailableOrdersHandler
	GetPoolStats         GetPoolStatsHandler
}

var _ servers.ServerInterface = (*Server)(nil)

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
	logger   *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		logger:   logger.With("component", "http"),
	}
}

// Register installs the middleware, the error handler, the swagger UI and
// every API route on e. Requests to API routes are validated against the
// OpenAPI document before they reach a handler.
func (s *Server) Register(e *echo.Echo) error {
	doc, err := servers.GetSwagger()
	if err != nil {
		return err
	}
	validator, err := requestValidator(doc)
	if err != nil {
		return fmt.Errorf("failed to build request validator: %w", err)
	}

	e.HTTPErrorHandler = s.errorHandler
	e.Use(requestLogger(s.logger), recoverer(s.logger), validator)

	e.GET("/swagger/*", echoSwagger.WrapHandler)
	servers.RegisterHandlers(e, s)
	return nil
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	return c.String(http.StatusOK, "Healthy")
}

// CreateCouriers handles POST /api/v1/couriers - registers couriers in bulk.
func (s *Server) CreateCouriers(c echo.Context) error {
	var req servers.CreateCouriersRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	items := make([]commands.NewCourier, len(req.Data))
	for i, d := range req.Data {
		items[i] = commands.NewCourier{
			ID:           d.CourierId,
			VehicleType:  d.CourierType,
			Regions:      d.Regions,
			WorkingHours: d.WorkingHours,
		}
	}

	cmd, err := commands.NewCreateCouriersCommand(items)
	if err != nil {
		return err
	}

	ids, err := s.handlers.CreateCouriers.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, servers.CreateCouriersResponse{Couriers: toIDs(ids)})
}

// UpdateCourier handles PATCH /api/v1/couriers/{id} - partial profile change.
func (s *Server) UpdateCourier(c echo.Context, id int64) error {
	var req servers.CourierPatch
	if err := (&echo.DefaultBinder{}).BindBody(c, &req); err != nil {
		return err
	}

	change := commands.ProfileChange{VehicleType: req.CourierType}
	if req.Regions != nil {
		change.Regions = nonNil(*req.Regions)
	}
	if req.WorkingHours != nil {
		change.WorkingHours = nonNil(*req.WorkingHours)
	}

	cmd, err := commands.NewUpdateCourierProfileCommand(id, change)
	if err != nil {
		return err
	}

	updated, err := s.handlers.UpdateCourierProfile.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	if len(updated.Evictions) > 0 {
		s.logger.InfoContext(c.Request().Context(), "Orders returned to the pool",
			"courier_id", id, "evicted", len(updated.Evictions))
	}

	return c.JSON(http.StatusOK, servers.Courier{
		CourierId:    updated.ID,
		CourierType:  updated.VehicleType.String(),
		Regions:      updated.Regions,
		WorkingHours: updated.WorkingHours.Strings(),
	})
}

// GetCourier handles GET /api/v1/couriers/{id} - profile with rating and earnings.
func (s *Server) GetCourier(c echo.Context, id int64) error {
	query, err := queries.NewGetCourierSummaryQuery(id)
	if err != nil {
		return err
	}

	summary, err := s.handlers.GetCourierSummary.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, servers.Courier{
		CourierId:    summary.ID,
		CourierType:  summary.VehicleType.String(),
		Regions:      summary.Regions,
		WorkingHours: summary.WorkingHours,
		Rating:       summary.Rating,
		Earnings:     summary.Earnings,
	})
}

// CreateOrders handles POST /api/v1/orders - adds orders to the pool in bulk.
func (s *Server) CreateOrders(c echo.Context) error {
	var req servers.CreateOrdersRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	items := make([]commands.NewOrder, len(req.Data))
	for i, d := range req.Data {
		items[i] = commands.NewOrder{
			ID:            d.OrderId,
			Weight:        d.Weight,
			Region:        d.Region,
			DeliveryHours: d.DeliveryHours,
		}
	}

	cmd, err := commands.NewCreateOrdersCommand(items)
	if err != nil {
		return err
	}

	ids, err := s.handlers.CreateOrders.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, servers.CreateOrdersResponse{Orders: toIDs(ids)})
}

// GetAvailableOrders handles GET /api/v1/orders/available - the pool in pool order.
func (s *Server) GetAvailableOrders(c echo.Context) error {
	orders, err := s.handlers.GetAvailableOrders.Handle(c.Request().Context(), queries.NewGetAvailableOrdersQuery())
	if err != nil {
		return err
	}

	response := make([]servers.AvailableOrder, len(orders))
	for i, o := range orders {
		response[i] = servers.AvailableOrder{
			OrderId:       o.ID,
			Weight:        o.Weight,
			Region:        o.Region,
			DeliveryHours: o.DeliveryHours,
		}
	}

	return c.JSON(http.StatusOK, response)
}

// GetPoolStats handles GET /api/v1/orders/stats.
func (s *Server) GetPoolStats(c echo.Context) error {
	stats, err := s.handlers.GetPoolStats.Handle(c.Request().Context(), queries.NewGetPoolStatsQuery())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, servers.PoolStats{
		Available:   stats.Available,
		Held:        stats.Held,
		Delivered:   stats.Delivered,
		OpenBatches: stats.OpenBatches,
	})
}

// AssignOrders handles POST /api/v1/orders/assign - requests a batch.
func (s *Server) AssignOrders(c echo.Context) error {
	var req servers.AssignRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	cmd, err := commands.NewAssignOrdersCommand(req.CourierId)
	if err != nil {
		return err
	}

	batch, err := s.handlers.AssignOrders.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, servers.AssignResponse{
		Orders:     toIDs(batch.OrderIDs),
		AssignTime: batch.AssignedAt,
	})
}

// CompleteOrder handles POST /api/v1/orders/complete.
func (s *Server) CompleteOrder(c echo.Context) error {
	var req servers.CompleteRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	cmd, err := commands.NewCompleteOrderCommand(req.CourierId, req.OrderId, req.CompleteTime)
	if err != nil {
		return err
	}

	orderID, err := s.handlers.CompleteOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, servers.CompleteResponse{OrderId: orderID})
}

// ReleaseOrder handles POST /api/v1/orders/release - hands a held order back to the pool.
func (s *Server) ReleaseOrder(c echo.Context) error {
	var req servers.ReleaseRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	cmd, err := commands.NewReleaseOrderCommand(req.CourierId, req.OrderId)
	if err != nil {
		return err
	}

	if err = s.handlers.ReleaseOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func toIDs(ids []int64) []servers.IdResponse {
	out := make([]servers.IdResponse, len(ids))
	for i, id := range ids {
		out[i] = servers.IdResponse{Id: id}
	}
	return out
}

// nonNil keeps an explicit empty list distinguishable from an omitted one.
func nonNil[T any](values []T) []T {
	if values == nil {
		return []T{}
	}
	return values
}
