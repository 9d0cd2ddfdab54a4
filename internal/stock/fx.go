package stock

import (
	"github.com/AtharvaMeherkar/billpro-billing-software/internal/stock/service"
	"go.uber.org/fx"
)

var Module = fx.Module("stock.service",
	fx.Provide(service.NewService),
)
