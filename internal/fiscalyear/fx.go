package fiscalyear

import (
	"github.com/AtharvaMeherkar/billpro-billing-software/internal/fiscalyear/service"
	"go.uber.org/fx"
)

var Module = fx.Module("fiscalyear.service",
	fx.Provide(service.NewService),
)
