package einvoice

import "go.uber.org/fx"

var Module = fx.Module("einvoice.service",
	fx.Provide(NewService),
)
