package whatsapp

import "go.uber.org/fx"

// Module provides the WhatsApp order repository to Fx.
var Module = fx.Provide(NewRepository)
