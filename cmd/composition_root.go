package cmd

import (
	"context"
	"log/slog"

	httpin "freight/internal/adapters/in/http"
	"freight/internal/adapters/out/kafka"
	"freight/internal/adapters/out/postgres"
	"freight/internal/adapters/out/postgres/directoryrepo"
	"freight/internal/adapters/out/postgres/eligiblerepo"
	"freight/internal/adapters/out/rediscache"
	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/settlement"
	"freight/internal/core/ports"
	"freight/internal/jobs"
	"freight/internal/pkg/clock"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	logger     *slog.Logger
	clock      clock.Clock
	cache      *rediscache.EligibilityCache
	publisher  *kafka.Publisher
	uowFactory *postgres.GormUnitOfWorkFactory
}

// NewCompositionRoot wires the application. redisClient may be nil, which turns
// the eligibility cache off.
func NewCompositionRoot(cfg Config, gormDB *gorm.DB, redisClient redis.UniversalClient, logger *slog.Logger) *CompositionRoot {
	c := &CompositionRoot{
		cfg:    cfg,
		gormDB: gormDB,
		logger: logger,
		clock:  clock.Real{},
	}

	var hooks []postgres.CommitHook
	if redisClient != nil {
		c.cache = rediscache.NewEligibilityCache(redisClient, cfg.EligibilityCacheTTL)
		hooks = append(hooks, c.cache.InvalidationHook(logger))
	}
	if cfg.KafkaEnabled() {
		c.publisher = kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
	}
	c.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB, hooks...)
	return c
}

// CachePinger is nil when the eligibility cache is off.
func (c *CompositionRoot) CachePinger() httpin.Pinger {
	if c.cache == nil {
		return nil
	}
	return c.cache
}

func (c *CompositionRoot) Close() error {
	if c.publisher != nil {
		return c.publisher.Close()
	}
	return nil
}

func (c *CompositionRoot) partyDirectory() ports.PartyDirectory {
	return directoryrepo.NewGormPartyDirectory(c.gormDB)
}

func (c *CompositionRoot) shipmentUoWFactory() commands.ShipmentUoWFactory {
	return FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) dispatchUoWFactory() commands.DispatchUoWFactory {
	return FuncDispatchUoWFactory(func() commands.DispatchUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) bundleUoWFactory() commands.BundleUoWFactory {
	return FuncBundleUoWFactory(func() commands.BundleUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) outboxUoWFactory() commands.OutboxUoWFactory {
	return FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateRegisterShipmentCommandHandler() commands.RegisterShipmentCommandHandler {
	return commands.NewRegisterShipmentCommandHandler(c.shipmentUoWFactory(), c.partyDirectory(), c.clock)
}

func (c *CompositionRoot) CreateAcceptShipmentCommandHandler() commands.AcceptShipmentCommandHandler {
	return commands.NewAcceptShipmentCommandHandler(c.shipmentUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateCancelShipmentCommandHandler() commands.CancelShipmentCommandHandler {
	return commands.NewCancelShipmentCommandHandler(c.shipmentUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateCreateDispatchCommandHandler() commands.CreateDispatchCommandHandler {
	return commands.NewCreateDispatchCommandHandler(c.dispatchUoWFactory(), c.partyDirectory(), c.clock)
}

func (c *CompositionRoot) CreateUpdateDispatchCommandHandler() commands.UpdateDispatchCommandHandler {
	return commands.NewUpdateDispatchCommandHandler(c.dispatchUoWFactory(), c.partyDirectory(), c.clock)
}

func (c *CompositionRoot) CreateDeleteDispatchCommandHandler() commands.DeleteDispatchCommandHandler {
	return commands.NewDeleteDispatchCommandHandler(c.dispatchUoWFactory(), c.clock)
}

// SettlementHandlers groups the bundle operations of one direction.
type SettlementHandlers struct {
	Create          commands.CreateBundleCommandHandler
	Update          commands.UpdateBundleCommandHandler
	RequestMatching commands.RequestBundleMatchingCommandHandler
	Complete        commands.CompleteBundleCommandHandler
	Delete          commands.DeleteBundleCommandHandler
	Adjustments     commands.AdjustmentCommandHandler
	ItemAdjustments commands.AdjustmentCommandHandler
	Get             queries.GetBundleQueryHandler
	ListEligible    queries.ListSettlementEligibleQueryHandler
}

func (c *CompositionRoot) CreateSettlementHandlers(direction settlement.Direction) SettlementHandlers {
	f := c.bundleUoWFactory()
	return SettlementHandlers{
		Create:          commands.NewCreateBundleCommandHandler(f, direction, c.cfg.TaxRate, c.clock),
		Update:          commands.NewUpdateBundleCommandHandler(f, direction, c.clock),
		RequestMatching: commands.NewRequestBundleMatchingCommandHandler(f, direction, c.clock),
		Complete:        commands.NewCompleteBundleCommandHandler(f, direction, c.clock),
		Delete:          commands.NewDeleteBundleCommandHandler(f, direction, c.clock),
		Adjustments:     commands.NewAdjustmentCommandHandler(f, direction, commands.BundleScope, c.clock),
		ItemAdjustments: commands.NewAdjustmentCommandHandler(f, direction, commands.ItemScope, c.clock),
		Get:             queries.NewGetBundleQueryHandler(c.uowFactory.Create().BundleRepository()),
		ListEligible:    c.CreateListSettlementEligibleQueryHandler(),
	}
}

func (c *CompositionRoot) CreateGetDispatchDetailQueryHandler() queries.GetDispatchDetailQueryHandler {
	return queries.NewGetDispatchDetailQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListSettlementEligibleQueryHandler() queries.ListSettlementEligibleQueryHandler {
	var cache ports.EligibilityCache
	if c.cache != nil {
		cache = c.cache
	}
	return queries.NewListSettlementEligibleQueryHandler(eligiblerepo.NewGormEligibleItemRepository(c.gormDB), cache, c.logger)
}

func (c *CompositionRoot) CreateRelayOutboxCommandHandler() commands.RelayOutboxCommandHandler {
	var publisher ports.EventPublisher = logPublisher{logger: c.logger}
	if c.publisher != nil {
		publisher = c.publisher
	}
	return commands.NewRelayOutboxCommandHandler(c.outboxUoWFactory(), publisher, c.clock)
}

func (c *CompositionRoot) CreatePurgeOutboxCommandHandler() commands.PurgeOutboxCommandHandler {
	return commands.NewPurgeOutboxCommandHandler(c.outboxUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	relay, err := jobs.NewOutboxRelayJob(
		c.CreateRelayOutboxCommandHandler(),
		c.cfg.OutboxRelaySchedule,
		c.cfg.OutboxRelayBatchSize,
		c.logger,
	)
	if err != nil {
		return nil, err
	}
	cleanup, err := jobs.NewOutboxCleanupJob(
		c.CreatePurgeOutboxCommandHandler(),
		c.cfg.OutboxCleanupSchedule,
		c.cfg.OutboxRetentionDays,
		c.logger,
	)
	if err != nil {
		return nil, err
	}
	return jobs.NewJobManager(relay, cleanup), nil
}

// logPublisher stands in for Kafka when no brokers are configured.
type logPublisher struct {
	logger *slog.Logger
}

func (p logPublisher) Publish(ctx context.Context, messages ...ports.OutboxMessage) error {
	for _, m := range messages {
		p.logger.InfoContext(ctx, "event", "type", m.EventType, "aggregate", m.AggregateType, "id", m.AggregateID.String())
	}
	return nil
}

type FuncShipmentUoWFactory func() commands.ShipmentUoW

func (f FuncShipmentUoWFactory) Create() commands.ShipmentUoW {
	return f()
}

type FuncDispatchUoWFactory func() commands.DispatchUoW

func (f FuncDispatchUoWFactory) Create() commands.DispatchUoW {
	return f()
}

type FuncBundleUoWFactory func() commands.BundleUoW

func (f FuncBundleUoWFactory) Create() commands.BundleUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}
