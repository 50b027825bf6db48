package api

import "github.com/labstack/echo/v4"

// ProcessRequest runs the steps in order and stops at the first error.
func ProcessRequest[T any](e echo.Context, req *T, steps ...func(echo.Context, *T) error) error {
	for _, step := range steps {
		if err := step(e, req); err != nil {
			return err
		}
	}
	return nil
}

func bindStep[T any](e echo.Context, req *T) error {
	return e.Bind(req)
}

func validateStep[T any](e echo.Context, req *T) error {
	return e.Validate(req)
}
