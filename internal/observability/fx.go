// Package observability wires the prometheus instruments shared by the
// services and the HTTP layer.
package observability

import (
	"github.com/AtharvaMeherkar/billpro-billing-software/internal/observability/metrics"
	"go.uber.org/fx"
)

var Module = fx.Module("observability",
	fx.Provide(
		metrics.New,
		metrics.NewHTTPMetrics,
	),
)
