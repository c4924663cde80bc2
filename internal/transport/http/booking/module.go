package booking

import (
	"go.uber.org/fx"

	"github.com/labstack/echo/v4"

	"github.com/sculptstudio/atelier/internal/transport/http/middleware"
)

// Module wires HTTP booking handlers.
var Module = fx.Options(
	fx.Provide(NewHandler),
	fx.Invoke(func(e *echo.Echo, h *Handler, guard *middleware.AdminGuard) {
		Register(e, h, guard)
	}),
)
