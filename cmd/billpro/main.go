package main

import (
	"github.com/AtharvaMeherkar/billpro-billing-software/internal/accounting"
	"github.com/AtharvaMeherkar/billpro-billing-software/internal/billing"
	"github.com/AtharvaMeherkar/billpro-billing-software/internal/catalog"
	"github.com/AtharvaMeherkar/billpro-billing-software/internal/clock"
	"github.com/AtharvaMeherkar/billpro-billing-software/internal/company"
	"github.com/AtharvaMeherkar/billpro-billing-software/internal/config"
	"github.com/AtharvaMeherkar/billpro-billing-software/internal/einvoice"
	"github.com/AtharvaMeherkar/billpro-billing-software/internal/fiscalyear"
	"github.com/AtharvaMeherkar/billpro-billing-software/internal/migration"
	"github.com/AtharvaMeherkar/billpro-billing-software/internal/observability"
	"github.com/AtharvaMeherkar/billpro-billing-software/internal/party"
	"github.com/AtharvaMeherkar/billpro-billing-software/internal/payroll"
	"github.com/AtharvaMeherkar/billpro-billing-software/internal/server"
	"github.com/AtharvaMeherkar/billpro-billing-software/internal/stock"
	"github.com/AtharvaMeherkar/billpro-billing-software/pkg/db"
	"github.com/AtharvaMeherkar/billpro-billing-software/pkg/log"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// core infrastructure
		config.Module,
		log.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		company.Module,

		// functional domains
		fiscalyear.Module,
		catalog.Module,
		stock.Module,
		party.Module,
		accounting.Module,
		billing.Module,
		payroll.Module,
		einvoice.Module,

		migration.Module,
		server.Module,
	)

	app.Run()
}

func RegisterSnowflake(cfg config.Config) (*snowflake.Node, error) {
	return snowflake.NewNode(cfg.SnowflakeNode)
}
