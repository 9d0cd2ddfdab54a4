package migration

import (
	"context"

	fydomain "github.com/AtharvaMeherkar/billpro-billing-software/internal/fiscalyear/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, years fydomain.Service, log *zap.Logger) error {
		if err := RunMigrations(conn); err != nil {
			return err
		}

		// make sure the running financial year exists so document
		// numbering has a counter row from the first request
		year, err := years.GetOrCreateCurrent(context.Background())
		if err != nil {
			return err
		}
		log.Info("schema ready", zap.String("financial_year", year.Name))
		return nil
	}),
)
