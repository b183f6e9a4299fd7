package middleware

import (
	"github.com/Gobusters/ectoinject"
	"github.com/labstack/echo/v4"
)

// DI puts the active dependency container on each request context so
// handlers can resolve services with ectoinject.GetContext.
func DI(containerID string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			req := c.Request()

			ctx, err := ectoinject.SetActiveContainer(req.Context(), containerID)
			if err != nil {
				return err
			}

			c.SetRequest(req.WithContext(ctx))

			return next(c)
		}
	}
}
