package billing

import (
	"github.com/AtharvaMeherkar/billpro-billing-software/internal/billing/service"
	"go.uber.org/fx"
)

var Module = fx.Module("billing.service",
	fx.Provide(service.NewService),
)
