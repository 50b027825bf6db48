package api

import (
	"github.com/hellofresh/health-go/v5"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type HealthChecker interface {
	HealthCheck() echo.HandlerFunc
}

type healthChecker struct {
	health *health.Health
}

func NewHealthChecker(version string, checks ...health.Config) (HealthChecker, error) {
	h, err := health.New(health.WithComponent(health.Component{Name: "startup-roster", Version: version}))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create health checker")
	}

	for _, check := range checks {
		if err = h.Register(check); err != nil {
			return nil, errors.Wrapf(err, "failed to register health check %s", check.Name)
		}
	}

	return &healthChecker{
		health: h,
	}, nil
}

func (h *healthChecker) HealthCheck() echo.HandlerFunc {
	return echo.WrapHandler(h.health.Handler())
}
