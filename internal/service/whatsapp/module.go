package whatsapp

import "go.uber.org/fx"

// Module provides the WhatsApp order service.
var Module = fx.Provide(NewService)
