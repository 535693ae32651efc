// Package storefront assembles the process-wide storefront state: the catalog, the
// cart, the customer profile and the order list, each loaded from the durable store.
package storefront

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/facebookgo/clock"

	cartobs "github.com/xtremepizzaria/storefront/internal/domains/cart/adapters/observability"
	cartstate "github.com/xtremepizzaria/storefront/internal/domains/cart/adapters/state"
	cartapp "github.com/xtremepizzaria/storefront/internal/domains/cart/application"
	cartports "github.com/xtremepizzaria/storefront/internal/domains/cart/ports"
	catalogmemory "github.com/xtremepizzaria/storefront/internal/domains/catalog/adapters/memory"
	catalogapp "github.com/xtremepizzaria/storefront/internal/domains/catalog/application"
	catalogports "github.com/xtremepizzaria/storefront/internal/domains/catalog/ports"
	"github.com/xtremepizzaria/storefront/internal/domains/orders/adapters/notify"
	ordersobs "github.com/xtremepizzaria/storefront/internal/domains/orders/adapters/observability"
	"github.com/xtremepizzaria/storefront/internal/domains/orders/adapters/scheduler"
	orderstate "github.com/xtremepizzaria/storefront/internal/domains/orders/adapters/state"
	ordersapp "github.com/xtremepizzaria/storefront/internal/domains/orders/application"
	"github.com/xtremepizzaria/storefront/internal/domains/orders/handoff"
	"github.com/xtremepizzaria/storefront/internal/domains/orders/pix"
	orderports "github.com/xtremepizzaria/storefront/internal/domains/orders/ports"
	profilestate "github.com/xtremepizzaria/storefront/internal/domains/profile/adapters/state"
	profileapp "github.com/xtremepizzaria/storefront/internal/domains/profile/application"
	profileports "github.com/xtremepizzaria/storefront/internal/domains/profile/ports"
	platformobservability "github.com/xtremepizzaria/storefront/internal/platform/observability"
	"github.com/xtremepizzaria/storefront/internal/platform/statestore"
)

// DefaultNamespace prefixes every durable record key.
const DefaultNamespace = "delivery"

// Config carries the storefront settings that shape domain behaviour.
type Config struct {
	Namespace      string
	StatusTimeUnit time.Duration
	AddedSignalTTL time.Duration
	WhatsAppNumber string
	PixMerchantKey string
	PixCity        string
	Location       *time.Location
}

// SchedulerFactory builds the status scheduler once the order service exists to receive transitions.
type SchedulerFactory func(advancer orderports.StatusAdvancer) (orderports.Scheduler, error)

// State owns every store of the running storefront.
type State struct {
	Catalog catalogports.Service
	Cart    cartports.Service
	Profile profileports.Service
	Orders  orderports.Service
	Health  *statestore.Health

	cart      *cartapp.Service
	profile   *profileapp.Service
	orders    *ordersapp.Service
	scheduler orderports.Scheduler
	logger    *slog.Logger

	closeOnce sync.Once
	closeErr  error
}

type options struct {
	store        statestore.Store
	catalog      catalogports.Repository
	clock        clock.Clock
	logger       *slog.Logger
	instruments  *platformobservability.Instruments
	notifier     orderports.Notifier
	newScheduler SchedulerFactory
	newID        func() string
}

// Option customizes Open.
type Option func(*options)

// WithStore sets the durable key-value backend. Defaults to memory.
func WithStore(store statestore.Store) Option {
	return func(o *options) { o.store = store }
}

// WithCatalog sets the menu repository. Defaults to the static menu.
func WithCatalog(repo catalogports.Repository) Option {
	return func(o *options) { o.catalog = repo }
}

func WithClock(c clock.Clock) Option {
	return func(o *options) { o.clock = c }
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithInstruments enables tracing and metrics on the cart and order services.
func WithInstruments(instruments *platformobservability.Instruments) Option {
	return func(o *options) { o.instruments = instruments }
}

func WithNotifier(notifier orderports.Notifier) Option {
	return func(o *options) { o.notifier = notifier }
}

// WithScheduler replaces the in-process timer scheduler.
func WithScheduler(factory SchedulerFactory) Option {
	return func(o *options) { o.newScheduler = factory }
}

func WithIDGenerator(fn func() string) Option {
	return func(o *options) { o.newID = fn }
}

// Open loads each record (or its empty default), wires the services and resumes the
// progression of orders that were still open when the process stopped.
func Open(ctx context.Context, cfg Config, opts ...Option) *State {
	o := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.store == nil {
		o.store = statestore.NewMemoryStore()
	}
	if o.catalog == nil {
		o.catalog = catalogmemory.NewRepository()
	}
	if o.clock == nil {
		o.clock = clock.New()
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.notifier == nil {
		o.notifier = notify.Noop{}
	}
	if cfg.Namespace == "" {
		cfg.Namespace = DefaultNamespace
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}

	health := &statestore.Health{}
	recordOpts := []statestore.RecordOption{
		statestore.WithLogger(o.logger),
		statestore.WithHealth(health),
		statestore.WithClock(o.clock.Now),
	}

	cartCore := cartapp.NewService(ctx,
		cartstate.NewStore(o.store, cfg.Namespace, recordOpts...),
		o.catalog,
		cartapp.WithClock(o.clock),
		cartapp.WithAddedSignalTTL(cfg.AddedSignalTTL),
	)
	cart := cartobs.New(cartCore,
		cartobs.WithLogger(o.logger),
		cartobs.WithTracer(o.instruments.Tracer("internal.cart.application")),
		cartobs.WithMeter(o.instruments.Meter("internal.cart.application")),
	)

	profileCore := profileapp.NewService(ctx, profilestate.NewStore(o.store, cfg.Namespace, recordOpts...))

	ordersCore := ordersapp.NewService(ctx,
		orderstate.NewStore(o.store, cfg.Namespace, recordOpts...),
		cart,
		o.catalog,
		profileCore,
		ordersapp.WithClock(o.clock),
		ordersapp.WithNotifier(o.notifier),
		ordersapp.WithPix(pix.NewBuilder(cfg.PixMerchantKey), cfg.PixCity),
		ordersapp.WithHandoff(handoff.NewBuilder(cfg.WhatsAppNumber, cfg.Location)),
		ordersapp.WithIDGenerator(o.newID),
		ordersapp.WithLogger(o.logger),
	)
	orders := ordersobs.New(ordersCore,
		ordersobs.WithLogger(o.logger),
		ordersobs.WithTracer(o.instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(o.instruments.Meter("internal.orders.application")),
	)

	var sched orderports.Scheduler
	if o.newScheduler != nil {
		custom, err := o.newScheduler(orders)
		if err != nil {
			o.logger.Warn("status scheduler unavailable, using in-process timers", slog.String("error", err.Error()))
		} else {
			sched = custom
		}
	}
	if sched == nil {
		sched = newInline(orders, cfg, o)
	}
	ordersCore.SetScheduler(sched)

	s := &State{
		Catalog:   catalogapp.NewService(o.catalog),
		Cart:      cart,
		Profile:   profileCore,
		Orders:    orders,
		Health:    health,
		cart:      cartCore,
		profile:   profileCore,
		orders:    ordersCore,
		scheduler: sched,
		logger:    o.logger,
	}
	if resumed := ordersCore.ResumeProgression(ctx); resumed > 0 {
		o.logger.Info("resumed order status progression", slog.Int("orders", resumed))
	}
	return s
}

func newInline(advancer orderports.StatusAdvancer, cfg Config, o options) orderports.Scheduler {
	return scheduler.NewInline(advancer,
		scheduler.WithClock(o.clock),
		scheduler.WithTimeUnit(cfg.StatusTimeUnit),
		scheduler.WithLogger(o.logger),
	)
}

// Close cancels pending status timers, waits for transitions in flight and writes
// every record a final time. Later calls return the first result.
func (s *State) Close(ctx context.Context) error {
	s.closeOnce.Do(func() {
		var err error
		if s.scheduler != nil {
			err = errors.Join(err, s.scheduler.Close())
		}
		err = errors.Join(err,
			s.cart.Flush(ctx),
			s.orders.Flush(ctx),
			s.profile.Flush(ctx),
		)
		if err != nil {
			s.logger.Warn("storefront state closed with errors", slog.String("error", err.Error()))
		}
		s.closeErr = err
	})
	return s.closeErr
}
