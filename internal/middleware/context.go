package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/formweave/aster/internal/appcontext"
)

// HeaderReviewerID is the header the platform gateway sets after
// authenticating the reviewer.
const HeaderReviewerID = "X-Reviewer-ID"

// Context copies request metadata into the request context so downstream
// code can log and attribute without touching echo.
func Context() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			req := c.Request()

			requestID := req.Header.Get(echo.HeaderXRequestID)
			if requestID == "" {
				requestID = uuid.New().String()
			}

			ctx := req.Context()
			ctx = appcontext.SetRequestID(ctx, requestID)
			ctx = appcontext.SetMethod(ctx, req.Method)
			ctx = appcontext.SetRoute(ctx, req.URL.Path)
			ctx = appcontext.SetRemoteIP(ctx, c.RealIP())
			ctx = appcontext.SetReferer(ctx, req.Referer())
			ctx = appcontext.SetReviewerID(ctx, req.Header.Get(HeaderReviewerID))

			c.SetRequest(req.WithContext(ctx))

			return next(c)
		}
	}
}
