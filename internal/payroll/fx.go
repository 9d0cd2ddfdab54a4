package payroll

import (
	"github.com/AtharvaMeherkar/billpro-billing-software/internal/payroll/service"
	"go.uber.org/fx"
)

var Module = fx.Module("payroll.service",
	fx.Provide(service.NewService),
)
