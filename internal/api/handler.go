package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/yakoovad/startup-roster/internal/auth"
	"github.com/yakoovad/startup-roster/internal/model"
	"github.com/yakoovad/startup-roster/internal/service"
	"github.com/yakoovad/startup-roster/pkg/logger"
	"go.uber.org/zap"
)

type Handler struct {
	cofounders *service.CofounderService

	healthChecker HealthChecker

	logger *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{
		logger: logger,
	}
}

func (h *Handler) WithHealthChecker(c HealthChecker) *Handler {
	h.healthChecker = c
	return h
}

func (h *Handler) WithCofounderService(cofounders *service.CofounderService) *Handler {
	h.cofounders = cofounders
	return h
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.Validator = NewValidator()
	e.Use(middleware.RequestID())
	e.Use(ZapLoggerMiddleware(h.logger))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	if h.healthChecker != nil {
		e.GET("/health", h.healthChecker.HealthCheck())
	}

	founder := e.Group("/startup", AuthMiddleware(auth.TokenTypeFounder))

	founder.GET("/cofounders", h.GetRoster)
	founder.PUT("/cofounders", h.UpdateRoster)

	admin := e.Group("/startups", AuthMiddleware(auth.TokenTypeAdmin))

	admin.GET("/:startup_id/cofounders", h.GetRoster)
	admin.PUT("/:startup_id/cofounders", h.UpdateRoster)
}

// startupID prefers the path parameter (admin routes) over the founder's token.
func startupID(e echo.Context) string {
	if id := e.Param("startup_id"); id != "" {
		return id
	}
	return claimsFromContext(e).StartupID
}

func (h *Handler) GetRoster(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	id := startupID(e)

	l.Info("getting roster", zap.String("startup_id", id))

	roster, err := h.cofounders.GetRoster(e.Request().Context(), id)
	if err != nil {
		l.Warn("failed to get roster", zap.String("startup_id", id), zap.Any("error", err))
		return h.transportError(e, err)
	}

	return e.JSON(http.StatusOK, roster)
}

func (h *Handler) UpdateRoster(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	var req struct {
		Cofounders []*model.CofounderEntry `json:"cofounders" validate:"dive,required"`
	}

	if err := decodeRequest(e, &req); err != nil {
		l.Error("invalid request", zap.Any("error", err))
		return h.transportError(e, err)
	}

	id := startupID(e)

	l.Info("updating roster", zap.String("startup_id", id), zap.Int("cofounders", len(req.Cofounders)))

	roster, err := h.cofounders.UpdateRoster(e.Request().Context(), id, req.Cofounders)
	if err != nil {
		l.Warn("failed to update roster", zap.String("startup_id", id), zap.Any("error", err))
		return h.transportError(e, err)
	}

	return e.JSON(http.StatusOK, roster)
}

func decodeRequest[T any](e echo.Context, req *T) *service.Error {
	if err := ProcessRequest(e, req, bindStep[T]); err != nil {
		return service.NewError(service.ErrorCodeInvalidBody, "invalid request body")
	}

	if err := ProcessRequest(e, req, validateStep[T]); err != nil {
		return service.NewError(service.ErrorCodeInvalidBody, errors.Wrap(err, "request validation failed").Error())
	}
	return nil
}

func (h *Handler) transportError(e echo.Context, err *service.Error) error {
	response := struct {
		Error *service.Error `json:"error"`
	}{Error: err}

	switch err.Code {
	case service.ErrorCodeNotFound:
		return e.JSON(http.StatusNotFound, response)
	case service.ErrorCodeInvalidBody:
		return e.JSON(http.StatusBadRequest, response)
	case service.ErrorCodeInvalidRoster:
		return e.JSON(http.StatusUnprocessableEntity, response)
	case service.ErrorCodeStaleRoster, service.ErrorCodeEmailTaken:
		return e.JSON(http.StatusConflict, response)
	case service.ErrorCodeUnauthorized:
		return e.JSON(http.StatusUnauthorized, response)
	default:
		return e.JSON(http.StatusInternalServerError, response)
	}
}
