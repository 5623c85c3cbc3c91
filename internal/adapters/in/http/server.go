// Package http exposes the packing engine over a JSON REST API using Echo.
// Handlers translate requests into commands and queries, and map domain
// errors to HTTP status codes; no business logic lives here.
package http

import (
	"errors"
	"net/http"
	"time"

	"packing/internal/core/application/usecases/commands"
	"packing/internal/core/application/usecases/queries"
	"packing/internal/core/domain/model/kernel"
	"packing/internal/core/domain/model/session"
	"packing/internal/core/ports"
	"packing/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the JSON error body returned for every failed request.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	startSessionHandler         commands.StartSessionCommandHandler
	abandonSessionHandler       commands.AbandonSessionCommandHandler
	completeSessionHandler      commands.CompleteSessionCommandHandler
	createContainerHandler      commands.CreateContainerCommandHandler
	completeContainerHandler    commands.CompleteContainerCommandHandler
	removeContainerHandler      commands.RemoveContainerCommandHandler
	markContainerLabeledHandler commands.MarkContainerLabeledCommandHandler
	assignItemHandler           commands.AssignItemCommandHandler
	fillRemainderHandler        commands.FillRemainderCommandHandler
	unassignItemHandler         commands.UnassignItemCommandHandler
	reportIssueHandler          commands.ReportIssueCommandHandler
	sendToReviewHandler         commands.SendToReviewCommandHandler
	holdOrderHandler            commands.HoldOrderCommandHandler
	proceedWithGroupHandler     commands.ProceedWithGroupCommandHandler

	// Query handlers
	getSessionStateHandler       queries.GetSessionStateQueryHandler
	getContainerManifestsHandler queries.GetContainerManifestsQueryHandler
	getHeldOrdersHandler         queries.GetHeldOrdersQueryHandler
}

// NewServer creates an HTTP server with the required command and query handlers.
func NewServer(
	startSessionHandler commands.StartSessionCommandHandler,
	abandonSessionHandler commands.AbandonSessionCommandHandler,
	completeSessionHandler commands.CompleteSessionCommandHandler,
	createContainerHandler commands.CreateContainerCommandHandler,
	completeContainerHandler commands.CompleteContainerCommandHandler,
	removeContainerHandler commands.RemoveContainerCommandHandler,
	markContainerLabeledHandler commands.MarkContainerLabeledCommandHandler,
	assignItemHandler commands.AssignItemCommandHandler,
	fillRemainderHandler commands.FillRemainderCommandHandler,
	unassignItemHandler commands.UnassignItemCommandHandler,
	reportIssueHandler commands.ReportIssueCommandHandler,
	sendToReviewHandler commands.SendToReviewCommandHandler,
	holdOrderHandler commands.HoldOrderCommandHandler,
	proceedWithGroupHandler commands.ProceedWithGroupCommandHandler,
	getSessionStateHandler queries.GetSessionStateQueryHandler,
	getContainerManifestsHandler queries.GetContainerManifestsQueryHandler,
	getHeldOrdersHandler queries.GetHeldOrdersQueryHandler,
) *Server {
	return &Server{
		startSessionHandler:          startSessionHandler,
		abandonSessionHandler:        abandonSessionHandler,
		completeSessionHandler:       completeSessionHandler,
		createContainerHandler:       createContainerHandler,
		completeContainerHandler:     completeContainerHandler,
		removeContainerHandler:       removeContainerHandler,
		markContainerLabeledHandler:  markContainerLabeledHandler,
		assignItemHandler:            assignItemHandler,
		fillRemainderHandler:         fillRemainderHandler,
		unassignItemHandler:          unassignItemHandler,
		reportIssueHandler:           reportIssueHandler,
		sendToReviewHandler:          sendToReviewHandler,
		holdOrderHandler:             holdOrderHandler,
		proceedWithGroupHandler:      proceedWithGroupHandler,
		getSessionStateHandler:       getSessionStateHandler,
		getContainerManifestsHandler: getContainerManifestsHandler,
		getHeldOrdersHandler:         getHeldOrdersHandler,
	}
}

// RegisterRoutes attaches every endpoint to the Echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/sessions", s.StartSession)
	api.GET("/sessions/:sessionId", s.GetSessionState)
	api.DELETE("/sessions/:sessionId", s.AbandonSession)
	api.POST("/sessions/:sessionId/complete", s.CompleteSession)
	api.POST("/sessions/:sessionId/review", s.SendToReview)
	api.GET("/sessions/:sessionId/manifests", s.GetContainerManifests)

	api.POST("/sessions/:sessionId/containers", s.CreateContainer)
	api.DELETE("/sessions/:sessionId/containers/:containerId", s.RemoveContainer)
	api.POST("/sessions/:sessionId/containers/:containerId/complete", s.CompleteContainer)
	api.POST("/sessions/:sessionId/containers/:containerId/label", s.MarkContainerLabeled)
	api.POST("/sessions/:sessionId/containers/:containerId/items", s.AssignItem)
	api.DELETE("/sessions/:sessionId/containers/:containerId/items/:itemKey", s.UnassignItem)
	api.POST("/sessions/:sessionId/containers/:containerId/fill", s.FillRemainder)

	api.POST("/sessions/:sessionId/issues", s.ReportIssue)

	api.POST("/holds", s.HoldOrder)
	api.GET("/holds", s.GetHeldOrders)
	api.POST("/holds/proceed", s.ProceedWithGroup)

	e.GET("/health", s.Health)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// StartSession handles POST /api/v1/sessions.
func (s *Server) StartSession(ctx echo.Context) error {
	var body struct {
		OrderIDs []string `json:"orderIds"`
	}
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewStartSessionCommand(body.OrderIDs)
	if err != nil {
		return fail(ctx, err)
	}

	if err = s.startSessionHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{
		"sessionId": cmd.SessionID().String(),
	})
}

// AbandonSession handles DELETE /api/v1/sessions/{sessionId}.
func (s *Server) AbandonSession(ctx echo.Context) error {
	sessionID, err := sessionIDParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid session id")
	}

	cmd, err := commands.NewAbandonSessionCommand(sessionID)
	if err != nil {
		return fail(ctx, err)
	}

	if err = s.abandonSessionHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CompleteSession handles POST /api/v1/sessions/{sessionId}/complete.
func (s *Server) CompleteSession(ctx echo.Context) error {
	sessionID, err := sessionIDParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid session id")
	}

	cmd, err := commands.NewCompleteSessionCommand(sessionID)
	if err != nil {
		return fail(ctx, err)
	}

	consolidatedID, err := s.completeSessionHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, map[string]string{
		"consolidatedSessionId": consolidatedID,
	})
}

// SendToReview handles POST /api/v1/sessions/{sessionId}/review.
func (s *Server) SendToReview(ctx echo.Context) error {
	sessionID, err := sessionIDParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid session id")
	}

	var body struct {
		ReporterEmail string `json:"reporterEmail"`
	}
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewSendToReviewCommand(sessionID, body.ReporterEmail)
	if err != nil {
		return fail(ctx, err)
	}

	if err = s.sendToReviewHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

// CreateContainer handles POST /api/v1/sessions/{sessionId}/containers.
func (s *Server) CreateContainer(ctx echo.Context) error {
	sessionID, err := sessionIDParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid session id")
	}

	cmd, err := commands.NewCreateContainerCommand(sessionID)
	if err != nil {
		return fail(ctx, err)
	}

	if err = s.createContainerHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// RemoveContainer handles DELETE /api/v1/sessions/{sessionId}/containers/{containerId}.
// Removing a container that still holds lines requires ?confirmed=true.
func (s *Server) RemoveContainer(ctx echo.Context) error {
	sessionID, err := sessionIDParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid session id")
	}

	confirmed := ctx.QueryParam("confirmed") == "true"

	cmd, err := commands.NewRemoveContainerCommand(sessionID, ctx.Param("containerId"), confirmed)
	if err != nil {
		return fail(ctx, err)
	}

	if err = s.removeContainerHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CompleteContainer handles POST /api/v1/sessions/{sessionId}/containers/{containerId}/complete.
func (s *Server) CompleteContainer(ctx echo.Context) error {
	sessionID, err := sessionIDParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid session id")
	}

	cmd, err := commands.NewCompleteContainerCommand(sessionID, ctx.Param("containerId"))
	if err != nil {
		return fail(ctx, err)
	}

	if err = s.completeContainerHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

// MarkContainerLabeled handles POST /api/v1/sessions/{sessionId}/containers/{containerId}/label.
func (s *Server) MarkContainerLabeled(ctx echo.Context) error {
	sessionID, err := sessionIDParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid session id")
	}

	cmd, err := commands.NewMarkContainerLabeledCommand(sessionID, ctx.Param("containerId"))
	if err != nil {
		return fail(ctx, err)
	}

	if err = s.markContainerLabeledHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

// AssignItem handles POST /api/v1/sessions/{sessionId}/containers/{containerId}/items.
func (s *Server) AssignItem(ctx echo.Context) error {
	sessionID, err := sessionIDParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid session id")
	}

	var body struct {
		ItemKey string `json:"itemKey"`
		Qty     int    `json:"qty"`
	}
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewAssignItemCommand(sessionID, ctx.Param("containerId"), body.ItemKey, body.Qty)
	if err != nil {
		return fail(ctx, err)
	}

	if err = s.assignItemHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

// UnassignItem handles DELETE /api/v1/sessions/{sessionId}/containers/{containerId}/items/{itemKey}.
func (s *Server) UnassignItem(ctx echo.Context) error {
	sessionID, err := sessionIDParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid session id")
	}

	cmd, err := commands.NewUnassignItemCommand(sessionID, ctx.Param("containerId"), ctx.Param("itemKey"))
	if err != nil {
		return fail(ctx, err)
	}

	if err = s.unassignItemHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

// FillRemainder handles POST /api/v1/sessions/{sessionId}/containers/{containerId}/fill.
func (s *Server) FillRemainder(ctx echo.Context) error {
	sessionID, err := sessionIDParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid session id")
	}

	var body struct {
		ItemKeys []string `json:"itemKeys"`
	}
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewFillRemainderCommand(sessionID, ctx.Param("containerId"), body.ItemKeys)
	if err != nil {
		return fail(ctx, err)
	}

	if err = s.fillRemainderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

// ReportIssue handles POST /api/v1/sessions/{sessionId}/issues.
func (s *Server) ReportIssue(ctx echo.Context) error {
	sessionID, err := sessionIDParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid session id")
	}

	var body struct {
		ItemKey string   `json:"itemKey"`
		Tags    []string `json:"tags"`
		Note    string   `json:"note"`
	}
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewReportIssueCommand(sessionID, body.ItemKey, body.Tags, body.Note)
	if err != nil {
		return fail(ctx, err)
	}

	if err = s.reportIssueHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// HoldOrder handles POST /api/v1/holds.
func (s *Server) HoldOrder(ctx echo.Context) error {
	var body struct {
		OrderID       string `json:"orderId"`
		CustomerName  string `json:"customerName"`
		HolderEmail   string `json:"holderEmail"`
		AssigneeEmail string `json:"assigneeEmail"`
	}
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewHoldOrderCommand(
		body.OrderID, body.CustomerName, body.HolderEmail, body.AssigneeEmail)
	if err != nil {
		return fail(ctx, err)
	}

	if err = s.holdOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// GetHeldOrders handles GET /api/v1/holds.
func (s *Server) GetHeldOrders(ctx echo.Context) error {
	query := queries.NewGetHeldOrdersQuery(ctx.QueryParam("customerName"))

	held, err := s.getHeldOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}

	type heldOrder struct {
		OrderID       string `json:"orderId"`
		CustomerName  string `json:"customerName"`
		HolderEmail   string `json:"holderEmail"`
		AssigneeEmail string `json:"assigneeEmail,omitempty"`
		HeldAt        string `json:"heldAt"`
	}

	response := make([]heldOrder, len(held))
	for i, record := range held {
		response[i] = heldOrder{
			OrderID:       record.OrderID,
			CustomerName:  record.CustomerName,
			HolderEmail:   record.HolderEmail,
			AssigneeEmail: record.AssigneeEmail,
			HeldAt:        record.HeldAt.UTC().Format(time.RFC3339),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// ProceedWithGroup handles POST /api/v1/holds/proceed.
func (s *Server) ProceedWithGroup(ctx echo.Context) error {
	var body struct {
		CustomerName string `json:"customerName"`
	}
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewProceedWithGroupCommand(body.CustomerName)
	if err != nil {
		return fail(ctx, err)
	}

	if err = s.proceedWithGroupHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{
		"sessionId": cmd.SessionID().String(),
	})
}

// GetSessionState handles GET /api/v1/sessions/{sessionId}.
func (s *Server) GetSessionState(ctx echo.Context) error {
	sessionID, err := sessionIDParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid session id")
	}

	query, err := queries.NewGetSessionStateQuery(sessionID)
	if err != nil {
		return fail(ctx, err)
	}

	state, err := s.getSessionStateHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, sessionStateResponse(state))
}

// GetContainerManifests handles GET /api/v1/sessions/{sessionId}/manifests.
func (s *Server) GetContainerManifests(ctx echo.Context) error {
	sessionID, err := sessionIDParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid session id")
	}

	query, err := queries.NewGetContainerManifestsQuery(sessionID)
	if err != nil {
		return fail(ctx, err)
	}

	manifests, err := s.getContainerManifestsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, manifestsResponse(manifests))
}

func sessionIDParam(ctx echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param("sessionId"))
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// fail maps a command or query error to the HTTP response. Completion
// blockers, submission races and hold conflicts map to 409 so clients can
// distinguish them from bad input.
func fail(ctx echo.Context, err error) error {
	code := statusCode(err)
	return ctx.JSON(code, Error{
		Code:    code,
		Message: err.Error(),
	})
}

func statusCode(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, commands.ErrSessionIsNotReady),
		errors.Is(err, commands.ErrOrderIsAlreadyHeld),
		errors.Is(err, session.ErrSubmissionInFlight),
		errors.Is(err, session.ErrRemovalNeedsConfirmation),
		errors.Is(err, session.ErrOrderAlreadyInReview),
		errors.Is(err, ports.ErrSessionIDCollision):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, commands.ErrOrderIDsAreRequired),
		errors.Is(err, commands.ErrOrderIDIsDuplicated),
		errors.Is(err, commands.ErrItemKeysAreRequired),
		errors.Is(err, commands.ErrMixedCustomerOrders),
		errors.Is(err, commands.ErrNoHeldOrdersForGroup),
		errors.Is(err, session.ErrItemNotInPool),
		errors.Is(err, session.ErrContainerNotFound),
		errors.Is(err, session.ErrPreviousContainerNotCompleted),
		errors.Is(err, session.ErrQuantityExceedsRemaining),
		errors.Is(err, session.ErrNoIssuesToEscalate):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
