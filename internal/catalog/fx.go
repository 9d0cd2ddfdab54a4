package catalog

import (
	"github.com/AtharvaMeherkar/billpro-billing-software/internal/catalog/service"
	"go.uber.org/fx"
)

var Module = fx.Module("catalog.service",
	fx.Provide(service.NewService),
)
