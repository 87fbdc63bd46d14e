// Package http provides the inbound HTTP adapter: thin echo handlers that
// translate requests into commands and queries and wrap every response in
// the uniform envelope.
package http

import (
	"net/http"

	"chipdrop/internal/core/application/usecases/commands"
	"chipdrop/internal/core/application/usecases/queries"
	"chipdrop/internal/core/domain/model/delivery"
	"chipdrop/internal/core/domain/model/kernel"
	"chipdrop/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createDeliveryHandler       commands.CreateDeliveryCommandHandler
	updateDeliveryHandler       commands.UpdateDeliveryCommandHandler
	updateDeliveryStatusHandler commands.UpdateDeliveryStatusCommandHandler
	acceptDeliveryHandler       commands.AcceptDeliveryRequestCommandHandler
	addRecipientHandler         commands.AddRecipientCommandHandler
	removeRecipientHandler      commands.RemoveRecipientCommandHandler
	deleteDeliveryHandler       commands.DeleteDeliveryCommandHandler
	expireDeliveriesHandler     commands.ExpireDeliveriesCommandHandler

	getDeliveryHandler          queries.GetDeliveryQueryHandler
	getPendingDeliveriesHandler queries.GetPendingDeliveriesQueryHandler
	getCompanyDeliveriesHandler queries.GetCompanyDeliveriesQueryHandler
}

// NewServer creates a new HTTP server with the required command and query
// handlers.
func NewServer(
	createDeliveryHandler commands.CreateDeliveryCommandHandler,
	updateDeliveryHandler commands.UpdateDeliveryCommandHandler,
	updateDeliveryStatusHandler commands.UpdateDeliveryStatusCommandHandler,
	acceptDeliveryHandler commands.AcceptDeliveryRequestCommandHandler,
	addRecipientHandler commands.AddRecipientCommandHandler,
	removeRecipientHandler commands.RemoveRecipientCommandHandler,
	deleteDeliveryHandler commands.DeleteDeliveryCommandHandler,
	expireDeliveriesHandler commands.ExpireDeliveriesCommandHandler,
	getDeliveryHandler queries.GetDeliveryQueryHandler,
	getPendingDeliveriesHandler queries.GetPendingDeliveriesQueryHandler,
	getCompanyDeliveriesHandler queries.GetCompanyDeliveriesQueryHandler,
) *Server {
	return &Server{
		createDeliveryHandler:       createDeliveryHandler,
		updateDeliveryHandler:       updateDeliveryHandler,
		updateDeliveryStatusHandler: updateDeliveryStatusHandler,
		acceptDeliveryHandler:       acceptDeliveryHandler,
		addRecipientHandler:         addRecipientHandler,
		removeRecipientHandler:      removeRecipientHandler,
		deleteDeliveryHandler:       deleteDeliveryHandler,
		expireDeliveriesHandler:     expireDeliveriesHandler,
		getDeliveryHandler:          getDeliveryHandler,
		getPendingDeliveriesHandler: getPendingDeliveriesHandler,
		getCompanyDeliveriesHandler: getCompanyDeliveriesHandler,
	}
}

// RegisterRoutes attaches all endpoints to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/deliveries", s.CreateDelivery)
	api.GET("/deliveries/:id", s.GetDelivery)
	api.PUT("/deliveries/:id", s.UpdateDelivery)
	api.PATCH("/deliveries/:id/status", s.UpdateDeliveryStatus)
	api.POST("/deliveries/:id/accept", s.AcceptDelivery)
	api.POST("/deliveries/:id/recipients/:userId", s.AddRecipient)
	api.DELETE("/deliveries/:id/recipients/:userId", s.RemoveRecipient)
	api.DELETE("/deliveries/:id", s.DeleteDelivery)
	api.GET("/users/:id/deliveries/pending", s.GetPendingDeliveries)
	api.GET("/companies/:id/deliveries", s.GetCompanyDeliveries)
	api.POST("/jobs/expire", s.ExpireDeliveries)

	e.GET("/health", s.Health)
}

type createDeliveryRequest struct {
	AssignedBy    string   `json:"assignedBy"`
	AssignedTo    string   `json:"assignedTo"`
	Status        string   `json:"status"`
	Details       string   `json:"details"`
	RecipientNote string   `json:"recipientNote"`
	CompanyNote   string   `json:"companyNote"`
	RecipientIDs  []string `json:"recipientIds"`
	ProductIDs    []string `json:"productIds"`
}

type updateDeliveryRequest struct {
	AssignedTo    string `json:"assignedTo"`
	Status        string `json:"status"`
	Details       string `json:"details"`
	RecipientNote string `json:"recipientNote"`
	CompanyNote   string `json:"companyNote"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type acceptDeliveryRequest struct {
	UserID string `json:"userId"`
}

type deliveryCreatedResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// CreateDelivery handles POST /api/v1/deliveries.
func (s *Server) CreateDelivery(ctx echo.Context) error {
	var req createDeliveryRequest
	if err := ctx.Bind(&req); err != nil {
		return fail(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	assignedBy, err := kernel.UUIDFromString(req.AssignedBy)
	if err != nil {
		return fail(ctx, errs.NewValueIsInvalidErrorWithCause("assignedBy", err))
	}
	assignedTo, err := kernel.UUIDFromString(req.AssignedTo)
	if err != nil {
		return fail(ctx, errs.NewValueIsInvalidErrorWithCause("assignedTo", err))
	}
	status, err := delivery.StatusFromString(req.Status)
	if err != nil {
		return fail(ctx, err)
	}
	recipientIDs, err := parseUUIDs(req.RecipientIDs, "recipientIds")
	if err != nil {
		return fail(ctx, err)
	}
	productIDs, err := parseUUIDs(req.ProductIDs, "productIds")
	if err != nil {
		return fail(ctx, err)
	}

	cmd, err := commands.NewCreateDeliveryCommand(
		kernel.NewUUID(), assignedBy, assignedTo,
		status,
		req.Details, req.RecipientNote, req.CompanyNote,
		recipientIDs, productIDs,
	)
	if err != nil {
		return fail(ctx, err)
	}

	d, err := s.createDeliveryHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return fail(ctx, err)
	}

	return ok(ctx, http.StatusCreated, deliveryCreatedResponse{
		ID:     d.ID().String(),
		Status: d.Status().String(),
	})
}

// UpdateDelivery handles PUT /api/v1/deliveries/:id.
func (s *Server) UpdateDelivery(ctx echo.Context) error {
	deliveryID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return fail(ctx, errs.NewValueIsInvalidErrorWithCause("id", err))
	}

	var req updateDeliveryRequest
	if err = ctx.Bind(&req); err != nil {
		return fail(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	assignedTo, err := kernel.UUIDFromString(req.AssignedTo)
	if err != nil {
		return fail(ctx, errs.NewValueIsInvalidErrorWithCause("assignedTo", err))
	}
	status, err := delivery.StatusFromString(req.Status)
	if err != nil {
		return fail(ctx, err)
	}

	cmd, err := commands.NewUpdateDeliveryCommand(
		deliveryID, assignedTo,
		status,
		req.Details, req.RecipientNote, req.CompanyNote,
	)
	if err != nil {
		return fail(ctx, err)
	}

	if err = s.updateDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}
	return ok(ctx, http.StatusOK, nil)
}

// UpdateDeliveryStatus handles PATCH /api/v1/deliveries/:id/status.
func (s *Server) UpdateDeliveryStatus(ctx echo.Context) error {
	deliveryID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return fail(ctx, errs.NewValueIsInvalidErrorWithCause("id", err))
	}

	var req updateStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return fail(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	status, err := delivery.StatusFromString(req.Status)
	if err != nil {
		return fail(ctx, err)
	}

	cmd, err := commands.NewUpdateDeliveryStatusCommand(deliveryID, status)
	if err != nil {
		return fail(ctx, err)
	}

	if err = s.updateDeliveryStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}
	return ok(ctx, http.StatusOK, nil)
}

// AcceptDelivery handles POST /api/v1/deliveries/:id/accept.
func (s *Server) AcceptDelivery(ctx echo.Context) error {
	deliveryID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return fail(ctx, errs.NewValueIsInvalidErrorWithCause("id", err))
	}

	var req acceptDeliveryRequest
	if err = ctx.Bind(&req); err != nil {
		return fail(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	userID, err := kernel.UUIDFromString(req.UserID)
	if err != nil {
		return fail(ctx, errs.NewValueIsInvalidErrorWithCause("userId", err))
	}

	cmd, err := commands.NewAcceptDeliveryRequestCommand(userID, deliveryID)
	if err != nil {
		return fail(ctx, err)
	}

	if err = s.acceptDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}
	return ok(ctx, http.StatusOK, nil)
}

// AddRecipient handles POST /api/v1/deliveries/:id/recipients/:userId.
func (s *Server) AddRecipient(ctx echo.Context) error {
	deliveryID, userID, err := deliveryAndUserParams(ctx)
	if err != nil {
		return fail(ctx, err)
	}

	cmd, err := commands.NewAddRecipientCommand(deliveryID, userID)
	if err != nil {
		return fail(ctx, err)
	}

	if err = s.addRecipientHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}
	return ok(ctx, http.StatusCreated, nil)
}

// RemoveRecipient handles DELETE /api/v1/deliveries/:id/recipients/:userId.
func (s *Server) RemoveRecipient(ctx echo.Context) error {
	deliveryID, userID, err := deliveryAndUserParams(ctx)
	if err != nil {
		return fail(ctx, err)
	}

	cmd, err := commands.NewRemoveRecipientCommand(deliveryID, userID)
	if err != nil {
		return fail(ctx, err)
	}

	if err = s.removeRecipientHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}
	return ok(ctx, http.StatusOK, nil)
}

// DeleteDelivery handles DELETE /api/v1/deliveries/:id.
func (s *Server) DeleteDelivery(ctx echo.Context) error {
	deliveryID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return fail(ctx, errs.NewValueIsInvalidErrorWithCause("id", err))
	}

	cmd, err := commands.NewDeleteDeliveryCommand(deliveryID)
	if err != nil {
		return fail(ctx, err)
	}

	if err = s.deleteDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}
	return ok(ctx, http.StatusOK, nil)
}

// GetDelivery handles GET /api/v1/deliveries/:id.
func (s *Server) GetDelivery(ctx echo.Context) error {
	deliveryID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return fail(ctx, errs.NewValueIsInvalidErrorWithCause("id", err))
	}

	query, err := queries.NewGetDeliveryQuery(deliveryID)
	if err != nil {
		return fail(ctx, err)
	}

	resp, err := s.getDeliveryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}
	return ok(ctx, http.StatusOK, toDeliveryView(resp))
}

// GetPendingDeliveries handles GET /api/v1/users/:id/deliveries/pending.
func (s *Server) GetPendingDeliveries(ctx echo.Context) error {
	userID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return fail(ctx, errs.NewValueIsInvalidErrorWithCause("id", err))
	}

	query, err := queries.NewGetPendingDeliveriesQuery(userID)
	if err != nil {
		return fail(ctx, err)
	}

	pending, err := s.getPendingDeliveriesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}

	views := make([]pendingDeliveryView, 0, len(pending))
	for _, p := range pending {
		views = append(views, pendingDeliveryView{
			ID:            p.ID.String(),
			AssignedBy:    p.AssignedBy.String(),
			Details:       p.Details,
			RecipientNote: p.RecipientNote,
			CreatedAt:     p.CreatedAt,
		})
	}
	return ok(ctx, http.StatusOK, views)
}

// GetCompanyDeliveries handles GET /api/v1/companies/:id/deliveries.
func (s *Server) GetCompanyDeliveries(ctx echo.Context) error {
	companyID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return fail(ctx, errs.NewValueIsInvalidErrorWithCause("id", err))
	}

	query, err := queries.NewGetCompanyDeliveriesQuery(companyID)
	if err != nil {
		return fail(ctx, err)
	}

	deliveries, err := s.getCompanyDeliveriesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}

	views := make([]companyDeliveryView, 0, len(deliveries))
	for _, d := range deliveries {
		views = append(views, companyDeliveryView{
			ID:         d.ID.String(),
			AssignedTo: d.AssignedTo.String(),
			Status:     d.Status.String(),
			Details:    d.Details,
			CreatedAt:  d.CreatedAt,
		})
	}
	return ok(ctx, http.StatusOK, views)
}

// ExpireDeliveries handles POST /api/v1/jobs/expire. Exposes the cron sweep
// for operational triggering.
func (s *Server) ExpireDeliveries(ctx echo.Context) error {
	expired, err := s.expireDeliveriesHandler.Handle(
		ctx.Request().Context(),
		commands.NewExpireDeliveriesCommand(),
	)
	if err != nil {
		return fail(ctx, err)
	}
	return ok(ctx, http.StatusOK, map[string]int{"expired": expired})
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ok(ctx, http.StatusOK, map[string]string{"service": "chipdrop"})
}

func deliveryAndUserParams(ctx echo.Context) (kernel.UUID, kernel.UUID, error) {
	deliveryID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	userID, err := kernel.UUIDFromString(ctx.Param("userId"))
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("userId", err)
	}
	return deliveryID, userID, nil
}

func parseUUIDs(raw []string, paramName string) ([]kernel.UUID, error) {
	ids := make([]kernel.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := kernel.UUIDFromString(s)
		if err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause(paramName, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
