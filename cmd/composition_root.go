package cmd

import (
	"log/slog"
	"time"

	httpadapter "marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/in/ws"
	"marketplace/internal/adapters/out/postgres"
	"marketplace/internal/adapters/out/redisrelay"
	"marketplace/internal/core/application/availability"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/jobs"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	logger     *slog.Logger
	location   *time.Location
	pricer     *services.OrderPricer
	registry   *availability.Registry
	relay      *redisrelay.Relay
	notifier   *availability.Notifier
	uowFactory postgres.GormUnitOfWorkFactory
}

// NewCompositionRoot wires the notifier before the unit of work factory,
// which reports committed order changes to it. redisClient may be nil.
func NewCompositionRoot(config Config, gormDB *gorm.DB, redisClient *redis.Client, logger *slog.Logger) (*CompositionRoot, error) {
	location, err := config.Location()
	if err != nil {
		return nil, err
	}
	pricer, err := services.NewOrderPricer(order.Fees{Rider: config.RiderFee, SmallOrder: config.SmallOrderFee})
	if err != nil {
		return nil, err
	}

	c := &CompositionRoot{
		config:   config,
		gormDB:   gormDB,
		logger:   logger,
		location: location,
		pricer:   pricer,
		registry: availability.NewRegistry(config.NotifierBuffer, logger),
	}

	var broadcaster availability.Broadcaster = c.registry
	if redisClient != nil {
		c.relay = redisrelay.NewRelay(redisClient, config.RedisChannel, c.registry, logger)
		broadcaster = c.relay
	}

	counter := queries.NewGetClaimableOrdersCountQueryHandler(gormDB)
	c.notifier = availability.NewNotifier(counter, broadcaster, config.NotifierTimeout, logger)
	c.uowFactory = *postgres.NewGormUnitOfWorkFactory(gormDB, c.notifier)

	return c, nil
}

func (c *CompositionRoot) Notifier() *availability.Notifier {
	return c.notifier
}

func (c *CompositionRoot) Registry() *availability.Registry {
	return c.registry
}

// Relay is nil when Redis is not configured.
func (c *CompositionRoot) Relay() *redisrelay.Relay {
	return c.relay
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.CheckoutUoWFactory = FuncCheckoutUoWFactory(func() commands.CheckoutUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.pricer, order.NewRandomTokenGenerator(), c.config.TokenMaxAttempts)
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	return commands.NewTransitionOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateClaimOrderCommandHandler() commands.ClaimOrderCommandHandler {
	return commands.NewClaimOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() commands.DeleteOrderCommandHandler {
	return commands.NewDeleteOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateConfirmPaymentCommandHandler() commands.ConfirmPaymentCommandHandler {
	return commands.NewConfirmPaymentCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateRegisterRiderCommandHandler() commands.RegisterRiderCommandHandler {
	return commands.NewRegisterRiderCommandHandler(c.riderUoWFactory())
}

func (c *CompositionRoot) CreateSetRiderAvailabilityCommandHandler() commands.SetRiderAvailabilityCommandHandler {
	return commands.NewSetRiderAvailabilityCommandHandler(c.riderUoWFactory())
}

func (c *CompositionRoot) CreateRecordEarningCommandHandler() commands.RecordEarningCommandHandler {
	var f commands.EarningsUoWFactory = FuncEarningsUoWFactory(func() commands.EarningsUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRecordEarningCommandHandler(f)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetClaimableOrdersQueryHandler() queries.GetClaimableOrdersQueryHandler {
	return queries.NewGetClaimableOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetClaimableOrdersCountQueryHandler() queries.GetClaimableOrdersCountQueryHandler {
	return queries.NewGetClaimableOrdersCountQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetRiderQueryHandler() queries.GetRiderQueryHandler {
	return queries.NewGetRiderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetRiderEarningsQueryHandler() queries.GetRiderEarningsQueryHandler {
	return queries.NewGetRiderEarningsQueryHandler(c.gormDB, c.location)
}

func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(httpadapter.Handlers{
		CreateOrder:          c.CreateCreateOrderCommandHandler(),
		TransitionOrder:      c.CreateTransitionOrderCommandHandler(),
		ClaimOrder:           c.CreateClaimOrderCommandHandler(),
		DeleteOrder:          c.CreateDeleteOrderCommandHandler(),
		ConfirmPayment:       c.CreateConfirmPaymentCommandHandler(),
		RegisterRider:        c.CreateRegisterRiderCommandHandler(),
		SetRiderAvailability: c.CreateSetRiderAvailabilityCommandHandler(),
		RecordEarning:        c.CreateRecordEarningCommandHandler(),

		GetOrder:                c.CreateGetOrderQueryHandler(),
		GetClaimableOrders:      c.CreateGetClaimableOrdersQueryHandler(),
		GetClaimableOrdersCount: c.CreateGetClaimableOrdersCountQueryHandler(),
		GetRider:                c.CreateGetRiderQueryHandler(),
		GetRiderEarnings:        c.CreateGetRiderEarningsQueryHandler(),
	})
}

func (c *CompositionRoot) CreateOrdersSocket() *ws.OrdersSocket {
	return ws.NewOrdersSocket(c.registry, c.notifier, c.config.WSWriteTimeout, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	resync := jobs.NewAvailabilityResyncJob(c.notifier, c.config.NotifierResyncSchedule, c.config.NotifierTimeout, c.logger)
	return jobs.NewJobManager(resync)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) riderUoWFactory() commands.RiderUoWFactory {
	return FuncRiderUoWFactory(func() commands.RiderUoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncCheckoutUoWFactory func() commands.CheckoutUoW

func (f FuncCheckoutUoWFactory) Create() commands.CheckoutUoW {
	return f()
}

type FuncRiderUoWFactory func() commands.RiderUoW

func (f FuncRiderUoWFactory) Create() commands.RiderUoW {
	return f()
}

type FuncEarningsUoWFactory func() commands.EarningsUoW

func (f FuncEarningsUoWFactory) Create() commands.EarningsUoW {
	return f()
}
