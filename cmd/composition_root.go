package cmd

import (
	"context"
	"log/slog"

	httpin "fooddelivery/internal/adapters/in/http"
	"fooddelivery/internal/adapters/out/memcache"
	"fooddelivery/internal/adapters/out/postgres"
	"fooddelivery/internal/adapters/out/rediscache"
	"fooddelivery/internal/core/application/invalidation"
	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/jobs"
	"fooddelivery/internal/ratelimit"

	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type CompositionRoot struct {
	cfg         Config
	gormDB      *gorm.DB
	uowFactory  *postgres.GormUnitOfWorkFactory
	cache       ports.Cache
	invalidator *invalidation.Coordinator
	logger      *slog.Logger
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, cache ports.Cache, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		cfg:         cfg,
		gormDB:      gormDB,
		uowFactory:  postgres.NewGormUnitOfWorkFactory(gormDB),
		cache:       cache,
		invalidator: invalidation.NewCoordinator(cache, logger),
		logger:      logger,
	}
}

// OpenDatabase connects to PostgreSQL and migrates the schema.
func OpenDatabase(ctx context.Context, cfg DBConfig) (*gorm.DB, error) {
	db, err := gorm.Open(gormpostgres.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err = sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	if err = postgres.Migrate(db.WithContext(ctx)); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// OpenCache returns the shared Redis cache when REDIS_ADDR is set, and an
// in-process LRU otherwise. The returned func releases the cache.
func OpenCache(ctx context.Context, cfg Config, logger *slog.Logger) (ports.Cache, func() error, error) {
	if cfg.Redis.Addr == "" {
		logger.InfoContext(ctx, "using in-process cache", "size", cfg.Cache.Size)
		return memcache.New(cfg.Cache.Size), func() error { return nil }, nil
	}

	cache, err := rediscache.Dial(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, nil, err
	}
	logger.InfoContext(ctx, "using redis cache", "addr", cfg.Redis.Addr, "db", cfg.Redis.DB)
	return cache, cache.Close, nil
}

func (c *CompositionRoot) userUoWFactory() commands.UserUoWFactory {
	return FuncUserUoWFactory(func() commands.UserUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) restaurantUoWFactory() commands.RestaurantUoWFactory {
	return FuncRestaurantUoWFactory(func() commands.RestaurantUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) fullUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateRegisterUserCommandHandler() commands.RegisterUserCommandHandler {
	return commands.NewRegisterUserCommandHandler(c.userUoWFactory(), c.invalidator)
}

func (c *CompositionRoot) CreateUpdateAgentProfileCommandHandler() commands.UpdateAgentProfileCommandHandler {
	return commands.NewUpdateAgentProfileCommandHandler(c.userUoWFactory(), c.invalidator)
}

func (c *CompositionRoot) CreateCreateRestaurantCommandHandler() commands.CreateRestaurantCommandHandler {
	return commands.NewCreateRestaurantCommandHandler(c.restaurantUoWFactory(), c.invalidator)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.fullUoWFactory(), services.NewAgentAllocator(), c.invalidator)
}

func (c *CompositionRoot) CreateAcceptOrderCommandHandler() commands.AcceptOrderCommandHandler {
	return commands.NewAcceptOrderCommandHandler(c.fullUoWFactory(), c.invalidator)
}

func (c *CompositionRoot) CreatePickUpOrderCommandHandler() commands.PickUpOrderCommandHandler {
	return commands.NewPickUpOrderCommandHandler(c.orderUoWFactory(), c.invalidator)
}

func (c *CompositionRoot) CreateMarkDeliveredCommandHandler() commands.MarkDeliveredCommandHandler {
	return commands.NewMarkDeliveredCommandHandler(c.fullUoWFactory(), c.invalidator)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderHistoryQueryHandler() queries.GetOrderHistoryQueryHandler {
	return queries.NewGetOrderHistoryQueryHandler(c.gormDB, c.cache, c.cfg.Cache.OrderHistoryTTL)
}

func (c *CompositionRoot) CreateGetAgentDetailQueryHandler() queries.GetAgentDetailQueryHandler {
	return queries.NewGetAgentDetailQueryHandler(c.gormDB, c.cache, c.cfg.Cache.DetailTTL)
}

func (c *CompositionRoot) CreateGetRestaurantDetailQueryHandler() queries.GetRestaurantDetailQueryHandler {
	return queries.NewGetRestaurantDetailQueryHandler(c.gormDB, c.cache, c.cfg.Cache.DetailTTL)
}

func (c *CompositionRoot) CreateListAgentsQueryHandler() queries.ListAgentsQueryHandler {
	return queries.NewListAgentsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateAuditAgentLoadQueryHandler() queries.AuditAgentLoadQueryHandler {
	return queries.NewAuditAgentLoadQueryHandler(c.gormDB)
}

// CreateHTTPHandlers wires every use case served over HTTP. Command
// handlers have pointer receivers, so their addresses are passed.
func (c *CompositionRoot) CreateHTTPHandlers() httpin.Handlers {
	registerUser := c.CreateRegisterUserCommandHandler()
	createRestaurant := c.CreateCreateRestaurantCommandHandler()
	createOrder := c.CreateCreateOrderCommandHandler()
	acceptOrder := c.CreateAcceptOrderCommandHandler()
	pickUpOrder := c.CreatePickUpOrderCommandHandler()
	markDelivered := c.CreateMarkDeliveredCommandHandler()
	updateAgentProfile := c.CreateUpdateAgentProfileCommandHandler()

	return httpin.Handlers{
		RegisterUser:       &registerUser,
		CreateRestaurant:   &createRestaurant,
		CreateOrder:        &createOrder,
		AcceptOrder:        &acceptOrder,
		PickUpOrder:        &pickUpOrder,
		MarkDelivered:      &markDelivered,
		UpdateAgentProfile: &updateAgentProfile,

		GetOrder:            c.CreateGetOrderQueryHandler(),
		ListOrders:          c.CreateListOrdersQueryHandler(),
		GetOrderHistory:     c.CreateGetOrderHistoryQueryHandler(),
		GetRestaurantDetail: c.CreateGetRestaurantDetailQueryHandler(),
		GetAgentDetail:      c.CreateGetAgentDetailQueryHandler(),
		ListAgents:          c.CreateListAgentsQueryHandler(),
	}
}

// CreateRateLimiter shares the cache with the read views, so with Redis
// every instance draws on the same budget.
func (c *CompositionRoot) CreateRateLimiter() (*ratelimit.Limiter, error) {
	return ratelimit.New(c.cache, c.cfg.RateLimit.Requests, c.cfg.RateLimit.Window.Duration(), c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.logger,
		jobs.NewLoadAuditJob(c.CreateAuditAgentLoadQueryHandler(), c.cfg.Jobs.LoadAuditSchedule, c.logger),
	)
}

type FuncUserUoWFactory func() commands.UserUoW

func (f FuncUserUoWFactory) Create() commands.UserUoW {
	return f()
}

type FuncRestaurantUoWFactory func() commands.RestaurantUoW

func (f FuncRestaurantUoWFactory) Create() commands.RestaurantUoW {
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
