package accounting

import (
	"github.com/AtharvaMeherkar/billpro-billing-software/internal/accounting/composer"
	"github.com/AtharvaMeherkar/billpro-billing-software/internal/accounting/service"
	"go.uber.org/fx"
)

var Module = fx.Module("accounting.service",
	fx.Provide(
		composer.NewComposer,
		service.NewService,
	),
)
