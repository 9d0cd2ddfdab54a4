package party

import (
	"github.com/AtharvaMeherkar/billpro-billing-software/internal/party/service"
	"go.uber.org/fx"
)

var Module = fx.Module("party.service",
	fx.Provide(service.NewService),
)
