package app

import (
	"go.uber.org/fx"

	"github.com/sculptstudio/atelier/internal/cache"
	"github.com/sculptstudio/atelier/internal/config"
	"github.com/sculptstudio/atelier/internal/database"
	"github.com/sculptstudio/atelier/internal/logger"
	"github.com/sculptstudio/atelier/internal/messaging"
	"github.com/sculptstudio/atelier/internal/observability"
	repositoryadmin "github.com/sculptstudio/atelier/internal/repository/admin"
	repositorybooking "github.com/sculptstudio/atelier/internal/repository/booking"
	repositorycatalog "github.com/sculptstudio/atelier/internal/repository/catalog"
	repositorywhatsapp "github.com/sculptstudio/atelier/internal/repository/whatsapp"
	httpserver "github.com/sculptstudio/atelier/internal/server/http"
	serviceanalytics "github.com/sculptstudio/atelier/internal/service/analytics"
	serviceauth "github.com/sculptstudio/atelier/internal/service/auth"
	servicebooking "github.com/sculptstudio/atelier/internal/service/booking"
	servicecatalog "github.com/sculptstudio/atelier/internal/service/catalog"
	servicewhatsapp "github.com/sculptstudio/atelier/internal/service/whatsapp"
	transporthttp "github.com/sculptstudio/atelier/internal/transport/http"
	"github.com/sculptstudio/atelier/internal/worker"
	workerstudio "github.com/sculptstudio/atelier/internal/worker/studio"
)

// Core provides the foundational modules shared across executables.
var Core = fx.Options(
	config.Module,
	cache.Module,
	database.Module,
	logger.Module,
	messaging.Module,
	observability.Module,
	repositoryadmin.Module,
	repositorybooking.Module,
	repositorycatalog.Module,
	repositorywhatsapp.Module,
	serviceanalytics.Module,
	serviceauth.Module,
	servicebooking.Module,
	servicecatalog.Module,
	servicewhatsapp.Module,
)

// HTTP wires the HTTP transport on top of the core modules.
var HTTP = fx.Options(
	Core,
	httpserver.Module,
	transporthttp.Module,
)

// Worker exposes background worker processing.
var Worker = fx.Options(
	Core,
	worker.Module,
	workerstudio.Module,
)

// Module is the default application wiring (HTTP only).
var Module = HTTP
