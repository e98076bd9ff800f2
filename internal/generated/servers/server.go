// Package servers holds the HTTP contract of the dispatch API: the wire
// models, the ServerInterface the HTTP adapter implements, the echo route
// registration and the embedded OpenAPI document the contract follows.
package servers

import (
	_ "embed"
	"fmt"
	"net/http"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// NewCourier defines model for NewCourier.
type NewCourier struct {
	CourierId    int64    `json:"courier_id"`
	CourierType  string   `json:"courier_type"`
	Regions      []int64  `json:"regions"`
	WorkingHours []string `json:"working_hours"`
}

// CreateCouriersRequest defines model for CreateCouriersRequest.
type CreateCouriersRequest struct {
	Data []NewCourier `json:"data"`
}

// CreateCouriersResponse defines model for CreateCouriersResponse.
type CreateCouriersResponse struct {
	Couriers []IdResponse `json:"couriers"`
}

// CourierPatch defines model for CourierPatch. A nil field was omitted; a
// pointer to an empty slice is an explicit empty list.
type CourierPatch struct {
	CourierType  *string   `json:"courier_type,omitempty"`
	Regions      *[]int64  `json:"regions,omitempty"`
	WorkingHours *[]string `json:"working_hours,omitempty"`
}

// Courier defines model for Courier.
type Courier struct {
	CourierId    int64    `json:"courier_id"`
	CourierType  string   `json:"courier_type"`
	Regions      []int64  `json:"regions"`
	WorkingHours []string `json:"working_hours"`
	Rating       *float64 `json:"rating,omitempty"`
	Earnings     *int64   `json:"earnings,omitempty"`
}

// NewOrder defines model for NewOrder.
type NewOrder struct {
	OrderId       int64    `json:"order_id"`
	Weight        float64  `json:"weight"`
	Region        int64    `json:"region"`
	DeliveryHours []string `json:"delivery_hours"`
}

// CreateOrdersRequest defines model for CreateOrdersRequest.
type CreateOrdersRequest struct {
	Data []NewOrder `json:"data"`
}

// CreateOrdersResponse defines model for CreateOrdersResponse.
type CreateOrdersResponse struct {
	Orders []IdResponse `json:"orders"`
}

// AvailableOrder defines model for AvailableOrder.
type AvailableOrder struct {
	OrderId       int64    `json:"order_id"`
	Weight        float64  `json:"weight"`
	Region        int64    `json:"region"`
	DeliveryHours []string `json:"delivery_hours"`
}

// PoolStats defines model for PoolStats.
type PoolStats struct {
	Available   int64 `json:"available"`
	Held        int64 `json:"held"`
	Delivered   int64 `json:"delivered"`
	OpenBatches int64 `json:"open_batches"`
}

// AssignRequest defines model for AssignRequest.
type AssignRequest struct {
	CourierId int64 `json:"courier_id"`
}

// AssignResponse defines model for AssignResponse.
type AssignResponse struct {
	Orders     []IdResponse `json:"orders"`
	AssignTime *time.Time   `json:"assign_time,omitempty"`
}

// CompleteRequest defines model for CompleteRequest.
type CompleteRequest struct {
	CourierId    int64     `json:"courier_id"`
	OrderId      int64     `json:"order_id"`
	CompleteTime time.Time `json:"complete_time"`
}

// CompleteResponse defines model for CompleteResponse.
type CompleteResponse struct {
	OrderId int64 `json:"order_id"`
}

// ReleaseRequest defines model for ReleaseRequest.
type ReleaseRequest struct {
	CourierId int64 `json:"courier_id"`
	OrderId   int64 `json:"order_id"`
}

// IdResponse defines model for IdResponse.
type IdResponse struct {
	Id int64 `json:"id"`
}

// Error defines model for Error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ItemError defines model for ItemError.
type ItemError struct {
	Id    int64  `json:"id"`
	Error string `json:"error"`
}

// ValidationError defines model for ValidationError.
type ValidationError struct {
	ValidationError map[string][]ItemError `json:"validation_error"`
}

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// (GET /health)
	Health(ctx echo.Context) error
	// (POST /api/v1/couriers)
	CreateCouriers(ctx echo.Context) error
	// (GET /api/v1/couriers/{id})
	GetCourier(ctx echo.Context, id int64) error
	// (PATCH /api/v1/couriers/{id})
	UpdateCourier(ctx echo.Context, id int64) error
	// (POST /api/v1/orders)
	CreateOrders(ctx echo.Context) error
	// (GET /api/v1/orders/available)
	GetAvailableOrders(ctx echo.Context) error
	// (GET /api/v1/orders/stats)
	GetPoolStats(ctx echo.Context) error
	// (POST /api/v1/orders/assign)
	AssignOrders(ctx echo.Context) error
	// (POST /api/v1/orders/complete)
	CompleteOrder(ctx echo.Context) error
	// (POST /api/v1/orders/release)
	ReleaseOrder(ctx echo.Context) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) Health(ctx echo.Context) error {
	return w.Handler.Health(ctx)
}

func (w *ServerInterfaceWrapper) CreateCouriers(ctx echo.Context) error {
	return w.Handler.CreateCouriers(ctx)
}

func (w *ServerInterfaceWrapper) GetCourier(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.GetCourier(ctx, id)
}

func (w *ServerInterfaceWrapper) UpdateCourier(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.UpdateCourier(ctx, id)
}

func (w *ServerInterfaceWrapper) CreateOrders(ctx echo.Context) error {
	return w.Handler.CreateOrders(ctx)
}

func (w *ServerInterfaceWrapper) GetAvailableOrders(ctx echo.Context) error {
	return w.Handler.GetAvailableOrders(ctx)
}

func (w *ServerInterfaceWrapper) GetPoolStats(ctx echo.Context) error {
	return w.Handler.GetPoolStats(ctx)
}

func (w *ServerInterfaceWrapper) AssignOrders(ctx echo.Context) error {
	return w.Handler.AssignOrders(ctx)
}

func (w *ServerInterfaceWrapper) CompleteOrder(ctx echo.Context) error {
	return w.Handler.CompleteOrder(ctx)
}

func (w *ServerInterfaceWrapper) ReleaseOrder(ctx echo.Context) error {
	return w.Handler.ReleaseOrder(ctx)
}

// bindID reads the "id" path parameter.
func bindID(ctx echo.Context) (int64, error) {
	var id int64
	err := runtime.BindStyledParameterWithLocation("simple", false, "id", runtime.ParamLocationPath, ctx.Param("id"), &id)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter id: %s", err))
	}
	return id, nil
}

// EchoRouter is the subset of *echo.Echo and *echo.Group the routes need.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers the routes under baseURL.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{Handler: si}

	router.GET(baseURL+"/health", wrapper.Health)
	router.POST(baseURL+"/api/v1/couriers", wrapper.CreateCouriers)
	router.GET(baseURL+"/api/v1/couriers/:id", wrapper.GetCourier)
	router.PATCH(baseURL+"/api/v1/couriers/:id", wrapper.UpdateCourier)
	router.POST(baseURL+"/api/v1/orders", wrapper.CreateOrders)
	router.GET(baseURL+"/api/v1/orders/available", wrapper.GetAvailableOrders)
	router.GET(baseURL+"/api/v1/orders/stats", wrapper.GetPoolStats)
	router.POST(baseURL+"/api/v1/orders/assign", wrapper.AssignOrders)
	router.POST(baseURL+"/api/v1/orders/complete", wrapper.CompleteOrder)
	router.POST(baseURL+"/api/v1/orders/release", wrapper.ReleaseOrder)
}

//go:embed openapi.yaml
var openAPISpec []byte

// GetSwagger returns the OpenAPI document the server implements.
func GetSwagger() (*openapi3.T, error) {
	doc, err := openapi3.NewLoader().LoadFromData(openAPISpec)
	if err != nil {
		return nil, fmt.Errorf("error loading OpenAPI document: %w", err)
	}
	return doc, nil
}
