package admin

import "go.uber.org/fx"

// Module provides the admin user repository to Fx.
var Module = fx.Provide(NewRepository)
