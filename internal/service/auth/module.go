package auth

import "go.uber.org/fx"

// Module provides the admin auth service.
var Module = fx.Provide(NewService)
