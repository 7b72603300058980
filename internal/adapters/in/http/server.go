package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"helpdispatch/internal/core/application/usecases/commands"
	"helpdispatch/internal/core/application/usecases/queries"
	"helpdispatch/internal/core/domain/model/kernel"
	"helpdispatch/internal/generated/servers"
	"helpdispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ServiceRequestCreator is the intake use case.
type ServiceRequestCreator interface {
	Handle(ctx context.Context, cmd commands.CreateServiceRequestCommand) (commands.CreateServiceRequestResult, error)
}

// BroadcastStatusReader is the broadcast status query.
type BroadcastStatusReader interface {
	Handle(ctx context.Context, query queries.GetBroadcastStatusQuery) (queries.GetBroadcastStatusQueryResponse, error)
}

var _ servers.ServerInterface = (*Server)(nil)

// Server implements servers.ServerInterface on top of the intake command and
// the broadcast status query.
type Server struct {
	createRequestHandler   ServiceRequestCreator
	broadcastStatusHandler BroadcastStatusReader
	logger                 *slog.Logger
}

func NewServer(
	createRequestHandler ServiceRequestCreator,
	broadcastStatusHandler BroadcastStatusReader,
	logger *slog.Logger,
) *Server {
	return &Server{
		createRequestHandler:   createRequestHandler,
		broadcastStatusHandler: broadcastStatusHandler,
		logger:                 logger.With("component", "http"),
	}
}

// CreateBroadcastRequest handles POST /api/v1/requests/broadcast. It returns as
// soon as the request is stored; helpers are contacted in the background.
func (s *Server) CreateBroadcastRequest(c echo.Context, params servers.CreateBroadcastRequestParams) error {
	requesterID, err := kernel.UUIDFromBytes(params.XUserID[:])
	if err != nil {
		return c.JSON(http.StatusUnauthorized, servers.Error{Error: "Unauthorized"})
	}

	var body servers.CreateBroadcastRequestJSONRequestBody
	if err = c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, servers.Error{Error: "Invalid request body"})
	}

	cmd, err := commands.NewCreateServiceRequestCommand(requesterID, newServiceRequestInput(body))
	if err != nil {
		if errors.Is(err, commands.ErrUnauthenticated) {
			return c.JSON(http.StatusUnauthorized, servers.Error{Error: "Unauthorized"})
		}
		return c.JSON(http.StatusBadRequest, servers.Error{Error: "Invalid request: " + err.Error()})
	}

	ctx := c.Request().Context()
	res, err := s.createRequestHandler.Handle(ctx, cmd)
	switch {
	case err == nil:
	case errors.Is(err, commands.ErrCategorySetupFailed):
		s.logger.ErrorContext(ctx, "Category setup failed", "requester_id", requesterID.String(), "error", err)
		return c.JSON(http.StatusInternalServerError, servers.Error{Error: "Failed to setup service category"})
	default:
		s.logger.ErrorContext(ctx, "Service request creation failed", "requester_id", requesterID.String(), "error", err)
		return c.JSON(http.StatusInternalServerError, servers.Error{Error: "Failed to create service request"})
	}

	return c.JSON(http.StatusOK, servers.BroadcastAccepted{
		Success:         true,
		Message:         "Request created, notifying nearby helpers",
		RequestId:       res.RequestID.Bytes(),
		HelpersNotified: res.HelpersNotified,
	})
}

// GetBroadcastStatus handles GET /api/v1/requests/:id/broadcast.
func (s *Server) GetBroadcastStatus(c echo.Context, id string, params servers.GetBroadcastStatusParams) error {
	requesterID, err := kernel.UUIDFromBytes(params.XUserID[:])
	if err != nil {
		return c.JSON(http.StatusUnauthorized, servers.Error{Error: "Unauthorized"})
	}

	requestID, err := kernel.UUIDFromString(id)
	if err != nil {
		return c.JSON(http.StatusBadRequest, servers.Error{Error: "Invalid request ID"})
	}

	query, err := queries.NewGetBroadcastStatusQuery(requestID, requesterID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, servers.Error{Error: "Invalid request ID"})
	}

	ctx := c.Request().Context()
	status, err := s.broadcastStatusHandler.Handle(ctx, query)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return c.JSON(http.StatusNotFound, servers.Error{Error: "Service request not found"})
		}
		s.logger.ErrorContext(ctx, "Broadcast status lookup failed", "request_id", requestID.String(), "error", err)
		return c.JSON(http.StatusInternalServerError, servers.Error{Error: "Failed to read broadcast status"})
	}

	return c.JSON(http.StatusOK, newBroadcastStatus(status))
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	return c.String(http.StatusOK, "Healthy")
}
