package analytics

import "go.uber.org/fx"

// Module provides the dashboard analytics service.
var Module = fx.Provide(NewService)
