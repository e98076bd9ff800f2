package cmd

import (
	"log/slog"

	httpin "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
	}
}

func (c *CompositionRoot) courierUoWFactory() commands.CourierUoWFactory {
	return FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) uoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateCouriersCommandHandler() commands.CreateCouriersCommandHandler {
	return commands.NewCreateCouriersCommandHandler(c.courierUoWFactory())
}

func (c *CompositionRoot) CreateCreateOrdersCommandHandler() commands.CreateOrdersCommandHandler {
	return commands.NewCreateOrdersCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateAssignOrdersCommandHandler() commands.AssignOrdersCommandHandler {
	return commands.NewAssignOrdersCommandHandler(c.uoWFactory(), services.NewBatchDispatcher(), commands.RealClock{})
}

func (c *CompositionRoot) CreateUpdateCourierProfileCommandHandler() commands.UpdateCourierProfileCommandHandler {
	return commands.NewUpdateCourierProfileCommandHandler(c.uoWFactory(), services.NewReconciler(), commands.RealClock{})
}

func (c *CompositionRoot) CreateCompleteOrderCommandHandler() commands.CompleteOrderCommandHandler {
	return commands.NewCompleteOrderCommandHandler(c.uoWFactory())
}

func (c *CompositionRoot) CreateReleaseOrderCommandHandler() commands.ReleaseOrderCommandHandler {
	return commands.NewReleaseOrderCommandHandler(c.uoWFactory(), commands.RealClock{})
}

func (c *CompositionRoot) CreateGetCourierSummaryQueryHandler() queries.GetCourierSummaryQueryHandler {
	return queries.NewGetCourierSummaryQueryHandler(c.uowFactory, services.NewSettlement())
}

func (c *CompositionRoot) CreateGetAvailableOrdersQueryHandler() queries.GetAvailableOrdersQueryHandler {
	return queries.NewGetAvailableOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPoolStatsQueryHandler() queries.GetPoolStatsQueryHandler {
	return queries.NewGetPoolStatsQueryHandler(c.gormDB)
}

// CreateServer wires every use case into the HTTP adapter.
func (c *CompositionRoot) CreateServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		CreateCouriers:       c.CreateCreateCouriersCommandHandler(),
		CreateOrders:         c.CreateCreateOrdersCommandHandler(),
		AssignOrders:         c.CreateAssignOrdersCommandHandler(),
		UpdateCourierProfile: c.CreateUpdateCourierProfileCommandHandler(),
		CompleteOrder:        c.CreateCompleteOrderCommandHandler(),
		ReleaseOrder:         c.CreateReleaseOrderCommandHandler(),
		GetCourierSummary:    c.CreateGetCourierSummaryQueryHandler(),
		GetAvailableOrders:   c.CreateGetAvailableOrdersQueryHandler(),
		GetPoolStats:         c.CreateGetPoolStatsQueryHandler(),
	}, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateGetPoolStatsQueryHandler(), c.config.PoolReportSpec, c.logger)
}

type FuncCourierUoWFactory func() commands.CourierUoW

func (f FuncCourierUoWFactory) Create() commands.CourierUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
