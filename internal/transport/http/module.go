package http

import (
	"go.uber.org/fx"

	analyticstransport "github.com/sculptstudio/atelier/internal/transport/http/analytics"
	authtransport "github.com/sculptstudio/atelier/internal/transport/http/auth"
	bookingtransport "github.com/sculptstudio/atelier/internal/transport/http/booking"
	catalogtransport "github.com/sculptstudio/atelier/internal/transport/http/catalog"
	"github.com/sculptstudio/atelier/internal/transport/http/middleware"
	whatsapptransport "github.com/sculptstudio/atelier/internal/transport/http/whatsapp"
)

// Module aggregates all HTTP transport handlers.
var Module = fx.Options(
	middleware.Module,
	authtransport.Module,
	bookingtransport.Module,
	catalogtransport.Module,
	whatsapptransport.Module,
	analyticstransport.Module,
)
