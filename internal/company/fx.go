package company

import (
	"context"

	"github.com/AtharvaMeherkar/billpro-billing-software/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("company",
	fx.Provide(func(cfg config.Config, log *zap.Logger) (*Store, error) {
		return NewStore(cfg.CompanyProfilePath, log)
	}),
	fx.Invoke(func(lc fx.Lifecycle, s *Store) {
		var stop func() error
		lc.Append(fx.Hook{
			OnStart: func(context.Context) error {
				var err error
				stop, err = s.Watch()
				return err
			},
			OnStop: func(context.Context) error {
				if stop != nil {
					return stop()
				}
				return nil
			},
		})
	}),
)
