package cmd

import (
	"log/slog"

	inhttp "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/channel"
	"dispatch/internal/adapters/out/memstore"
	"dispatch/internal/adapters/out/postgres/courierrepo"
	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/adapters/out/postgres/requesterrepo"
	"dispatch/internal/core/application/dispatch"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/admin"
	"dispatch/internal/core/ports"
	"dispatch/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires every adapter and the dispatch core together.
// Orders, couriers and requesters persist in PostgreSQL when configured;
// sessions and payment QRs are in-memory either way, since both are
// cheap to rebuild.
type CompositionRoot struct {
	config Config
	logger *slog.Logger

	roster     *admin.Roster
	orders     ports.OrderRepository
	couriers   ports.CourierRepository
	requesters ports.RequesterRepository
	artifacts  ports.ArtifactRepository
	sessions   ports.SessionRepository

	notifier ports.Notifier
	router   *dispatch.Router
}

// NewCompositionRoot builds the object graph. gormDB may be nil, in which
// case all repositories fall back to the in-memory store.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	roster, err := admin.NewRoster(config.AdminIDs)
	if err != nil {
		return nil, err
	}

	root := &CompositionRoot{
		config:    config,
		logger:    logger,
		roster:    roster,
		artifacts: memstore.NewArtifactRepository(),
		sessions:  memstore.NewSessionRepository(),
	}

	if gormDB != nil {
		if root.orders, err = orderrepo.NewGormOrderRepository(gormDB); err != nil {
			return nil, err
		}
		if root.couriers, err = courierrepo.NewGormCourierRepository(gormDB); err != nil {
			return nil, err
		}
		if root.requesters, err = requesterrepo.NewGormRequesterRepository(gormDB); err != nil {
			return nil, err
		}
	} else {
		root.orders = memstore.NewOrderRepository()
		root.couriers = memstore.NewCourierRepository()
		root.requesters = memstore.NewRequesterRepository()
	}

	if root.notifier, err = root.createNotifier(); err != nil {
		return nil, err
	}

	root.router, err = dispatch.NewRouter(dispatch.RouterParams{
		Orders:           root.orders,
		Couriers:         root.couriers,
		Requesters:       root.requesters,
		Artifacts:        root.artifacts,
		Sessions:         root.sessions,
		Roster:           roster,
		Notifier:         root.notifier,
		Logger:           logger,
		ReminderInterval: config.DisconnectReminderInterval,
	})
	if err != nil {
		return nil, err
	}

	return root, nil
}

// Close releases the router's background timers.
func (c *CompositionRoot) Close() {
	c.router.Close()
}

// CreateHTTPServer wires the inbound HTTP surface.
func (c *CompositionRoot) CreateHTTPServer() *inhttp.Server {
	return inhttp.NewServer(
		c.router,
		commands.NewCreateDraftOrderCommandHandler(c.orders),
		queries.NewGetOrdersQueryHandler(c.orders),
		queries.NewGetAllCouriersQueryHandler(c.couriers),
	)
}

// CreateJobManager wires the scheduled background jobs.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	gateway := dispatch.NewGateway(c.notifier, c.logger)

	return jobs.NewJobManager(
		jobs.NewSessionSweepJob(c.sessions, c.config.SessionTTL, c.logger),
		jobs.NewPendingOrderReminderJob(
			c.orders,
			c.roster,
			gateway,
			c.config.PendingOrderThreshold,
			c.logger,
		),
	)
}

func (c *CompositionRoot) createNotifier() (ports.Notifier, error) {
	if c.config.ChannelBridgeURL == "" {
		c.logger.Warn("no channel bridge configured; outbound messages are logged only")
		return channel.NewLogNotifier(c.logger), nil
	}
	return channel.NewBridgeNotifier(c.config.ChannelBridgeURL)
}
