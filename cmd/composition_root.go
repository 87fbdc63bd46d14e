package cmd

import (
	"log/slog"
	"net/http"

	"chipdrop/internal/adapters/out/notify"
	"chipdrop/internal/adapters/out/postgres"
	"chipdrop/internal/adapters/out/postgres/contactrepo"
	"chipdrop/internal/core/application/usecases/commands"
	"chipdrop/internal/core/application/usecases/queries"
	"chipdrop/internal/jobs"
	"chipdrop/internal/notifications"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	notifier   *notifications.Dispatcher
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	directory := contactrepo.NewGormContactDirectory(gormDB)
	emailSender := notify.NewSMTPEmailSender(
		config.SMTPAddr,
		config.SMTPHost,
		config.SMTPUsername,
		config.SMTPPassword,
		config.SMTPFrom,
	)
	smsSender := notify.NewGatewaySMSSender(
		config.SMSGatewayURL,
		config.SMSGatewayAPIKey,
		http.DefaultClient,
	)

	notifier := notifications.NewDispatcher(
		directory,
		emailSender,
		smsSender,
		notify.NewDisabledHydrator(),
		logger,
		config.NotifyAcceptBaseURL,
	)

	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		notifier:   notifier,
		logger:     logger,
	}
}

func (c *CompositionRoot) deliveryUoWFactory() commands.DeliveryUoWFactory {
	return FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateDeliveryCommandHandler() commands.CreateDeliveryCommandHandler {
	return commands.NewCreateDeliveryCommandHandler(c.deliveryUoWFactory(), c.notifier, c.logger)
}

func (c *CompositionRoot) CreateUpdateDeliveryCommandHandler() commands.UpdateDeliveryCommandHandler {
	return commands.NewUpdateDeliveryCommandHandler(c.deliveryUoWFactory(), c.notifier, c.logger)
}

func (c *CompositionRoot) CreateUpdateDeliveryStatusCommandHandler() commands.UpdateDeliveryStatusCommandHandler {
	return commands.NewUpdateDeliveryStatusCommandHandler(c.deliveryUoWFactory())
}

func (c *CompositionRoot) CreateAcceptDeliveryRequestCommandHandler() commands.AcceptDeliveryRequestCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAcceptDeliveryRequestCommandHandler(f, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateAddRecipientCommandHandler() commands.AddRecipientCommandHandler {
	return commands.NewAddRecipientCommandHandler(c.deliveryUoWFactory())
}

func (c *CompositionRoot) CreateRemoveRecipientCommandHandler() commands.RemoveRecipientCommandHandler {
	return commands.NewRemoveRecipientCommandHandler(c.deliveryUoWFactory())
}

func (c *CompositionRoot) CreateDeleteDeliveryCommandHandler() commands.DeleteDeliveryCommandHandler {
	return commands.NewDeleteDeliveryCommandHandler(c.deliveryUoWFactory())
}

func (c *CompositionRoot) CreateExpireDeliveriesCommandHandler() commands.ExpireDeliveriesCommandHandler {
	return commands.NewExpireDeliveriesCommandHandler(
		c.deliveryUoWFactory(),
		c.notifier,
		c.logger,
		c.config.ExpiryWarnAfter,
		c.config.ExpiryExpireAfter,
	)
}

func (c *CompositionRoot) CreateGetDeliveryQueryHandler() queries.GetDeliveryQueryHandler {
	return queries.NewGetDeliveryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPendingDeliveriesQueryHandler() queries.GetPendingDeliveriesQueryHandler {
	return queries.NewGetPendingDeliveriesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCompanyDeliveriesQueryHandler() queries.GetCompanyDeliveriesQueryHandler {
	return queries.NewGetCompanyDeliveriesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateExpireDeliveriesCommandHandler(),
		c.config.ExpiryCron,
		c.logger,
	)
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
