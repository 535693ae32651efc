package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/facebookgo/clock"
	"github.com/google/uuid"

	cartdomain "github.com/xtremepizzaria/storefront/internal/domains/cart/domain"
	catalogports "github.com/xtremepizzaria/storefront/internal/domains/catalog/ports"
	"github.com/xtremepizzaria/storefront/internal/domains/orders/domain"
	"github.com/xtremepizzaria/storefront/internal/domains/orders/handoff"
	"github.com/xtremepizzaria/storefront/internal/domains/orders/pix"
	"github.com/xtremepizzaria/storefront/internal/domains/orders/ports"
	"github.com/xtremepizzaria/storefront/internal/domains/pricing"
	profiledomain "github.com/xtremepizzaria/storefront/internal/domains/profile/domain"
	"github.com/xtremepizzaria/storefront/internal/shared/money"
)

// Service owns the in-memory order list and writes every mutation through to the store.
type Service struct {
	mu     sync.Mutex
	orders []*domain.Order
	store  ports.Store

	cart    ports.Cart
	catalog ports.Catalog
	profile ports.Profile

	scheduler ports.Scheduler
	notifier  ports.Notifier
	pix       *pix.Builder
	handoff   *handoff.Builder
	pixCity   string
	clock     clock.Clock
	newID     func() string
	logger    *slog.Logger
}

// Option customizes the order service.
type Option func(*Service)

// WithClock swaps the time source stamping new orders.
func WithClock(c clock.Clock) Option {
	return func(s *Service) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithScheduler sets the status scheduler. Without one, orders stay received.
func WithScheduler(scheduler ports.Scheduler) Option {
	return func(s *Service) { s.scheduler = scheduler }
}

// WithNotifier sets where order events are published.
func WithNotifier(notifier ports.Notifier) Option {
	return func(s *Service) { s.notifier = notifier }
}

// WithPix configures the PIX payload builder and payee city.
func WithPix(builder *pix.Builder, city string) Option {
	return func(s *Service) {
		if builder != nil {
			s.pix = builder
		}
		s.pixCity = city
	}
}

// WithHandoff configures the WhatsApp handoff builder.
func WithHandoff(builder *handoff.Builder) Option {
	return func(s *Service) {
		if builder != nil {
			s.handoff = builder
		}
	}
}

// WithIDGenerator overrides the order id source.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// WithLogger sets the logger used for failures that never reach the caller.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService loads the stored order list, or starts empty when there is none.
func NewService(ctx context.Context, store ports.Store, cart ports.Cart, catalog ports.Catalog, profile ports.Profile, opts ...Option) *Service {
	s := &Service{
		store:   store,
		cart:    cart,
		catalog: catalog,
		profile: profile,
		pix:     pix.NewBuilder(""),
		handoff: handoff.NewBuilder("", time.Local),
		pixCity: pix.DefaultCity,
		clock:   clock.New(),
		newID:   uuid.NewString,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	for _, order := range store.Load(ctx) {
		if order != nil {
			s.orders = append(s.orders, order.Clone())
		}
	}
	return s
}

// SetScheduler attaches the scheduler after construction, since schedulers call back into the service.
func (s *Service) SetScheduler(scheduler ports.Scheduler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scheduler = scheduler
}

func (s *Service) PlaceOrder(ctx context.Context, selection ports.PaymentSelection) (*domain.Order, error) {
	customer, err := s.profile.Get(ctx)
	if err != nil {
		return nil, err
	}
	if missing := customer.MissingRequired(); len(missing) > 0 {
		return nil, &MissingProfileFieldsError{Fields: missing}
	}

	var placed *domain.Order
	err = s.cart.Drain(ctx, func(ctx context.Context, cart cartdomain.Cart) error {
		if cart.Len() == 0 {
			return ErrEmptyCart
		}
		items, err := s.freeze(ctx, cart)
		if err != nil {
			return err
		}
		order, err := s.newOrder(items, customer, selection)
		if err != nil {
			return err
		}

		s.mu.Lock()
		s.orders = append([]*domain.Order{order}, s.orders...)
		s.persistLocked(ctx)
		s.mu.Unlock()

		placed = order.Clone()
		return nil
	})
	if err != nil {
		return nil, mapError(err)
	}

	s.schedule(ctx, placed)
	s.publish(ctx, domain.OrderPlaced{
		BaseEvent: domain.BaseEvent{Timestamp: placed.CreatedAt},
		OrderID:   placed.ID,
		Total:     placed.Total,
		Method:    placed.Payment.Method,
		Items:     len(placed.Items),
	})
	return placed, nil
}

func (s *Service) newOrder(items []domain.Item, customer profiledomain.CustomerProfile, selection ports.PaymentSelection) (*domain.Order, error) {
	total := money.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal)
	}

	var payment domain.Payment
	switch domain.PaymentMethod(strings.ToUpper(string(selection.Method))) {
	case domain.PaymentPix:
		txid := strings.ToUpper(strings.TrimSpace(selection.TxID))
		if txid == "" {
			txid = pix.NewTxID()
		}
		payment = domain.NewPixPayment(s.pixPayload(total, customer, txid), txid)
	case domain.PaymentCard:
		card, err := domain.NewCardPayment(selection.CardNumber)
		if err != nil {
			return nil, err
		}
		payment = card
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedPayment, selection.Method)
	}

	return domain.NewOrder(s.newID(), items, s.clock.Now(), customer, payment)
}

// freeze prices every cart line against the catalog as of now.
func (s *Service) freeze(ctx context.Context, cart cartdomain.Cart) ([]domain.Item, error) {
	items := make([]domain.Item, 0, cart.Len())
	for _, line := range cart.Items {
		item, err := s.catalog.GetByID(ctx, line.CatalogItemID)
		if err != nil {
			if errors.Is(err, catalogports.ErrNotFound) {
				return nil, fmt.Errorf("%w: %s", ErrUnknownItem, line.CatalogItemID)
			}
			return nil, err
		}
		unit := pricing.Price(item, pricing.SelectionFrom(line.Options))
		items = append(items, domain.Item{
			CatalogItemID: line.CatalogItemID,
			Name:          item.Name,
			Quantity:      line.Quantity,
			Options:       line.Options.Clone(),
			Notes:         line.Notes,
			UnitPrice:     unit,
			Subtotal:      unit.Mul(line.Quantity),
		})
	}
	return items, nil
}

func (s *Service) pixPayload(total money.Money, customer profiledomain.CustomerProfile, txid string) string {
	return s.pix.Payload(pix.Input{Amount: total, Name: customer.Name, City: s.pixCity, TxID: txid})
}

func (s *Service) List(ctx context.Context) ([]*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.Order, 0, len(s.orders))
	for _, order := range s.orders {
		out = append(out, order.Clone())
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order := s.findLocked(id)
	if order == nil {
		return nil, ports.ErrNotFound
	}
	return order.Clone(), nil
}

// PixPreview renders the payload for the current cart total without placing an order.
func (s *Service) PixPreview(ctx context.Context, txid string) (*ports.PixPreview, error) {
	customer, err := s.profile.Get(ctx)
	if err != nil {
		return nil, err
	}
	txid = strings.ToUpper(strings.TrimSpace(txid))
	if txid == "" {
		txid = pix.NewTxID()
	}

	view, err := s.cart.View(ctx)
	if err != nil {
		return nil, err
	}
	return &ports.PixPreview{Amount: view.Total, TxID: txid, Payload: s.pixPayload(view.Total, customer, txid)}, nil
}

func (s *Service) Handoff(ctx context.Context, id string) (*handoff.Message, error) {
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	msg := s.handoff.Build(order)
	return &msg, nil
}

// AdvanceStatus applies one transition. Repeating an applied transition, or targeting an
// order that has already moved past or ended, returns the order unchanged.
func (s *Service) AdvanceStatus(ctx context.Context, orderID string, to domain.Status) (*domain.Order, error) {
	if !to.Valid() {
		return nil, mapError(domain.ErrInvalidStatus)
	}

	s.mu.Lock()
	order := s.findLocked(orderID)
	if order == nil {
		s.mu.Unlock()
		return nil, ports.ErrNotFound
	}
	from := order.Status
	if !domain.CanTransition(from, to) {
		clone := order.Clone()
		s.mu.Unlock()
		return clone, nil
	}
	if err := order.Advance(to); err != nil {
		s.mu.Unlock()
		return nil, mapError(err)
	}
	s.persistLocked(ctx)
	clone := order.Clone()
	s.mu.Unlock()

	s.publish(ctx, domain.OrderStatusChanged{
		BaseEvent:  domain.BaseEvent{Timestamp: s.clock.Now()},
		OrderID:    orderID,
		FromStatus: from,
		ToStatus:   to,
	})
	return clone, nil
}

// ResumeProgression schedules every loaded order that has not reached a terminal status.
// Steps already due fire at once; steps the order has passed are skipped.
func (s *Service) ResumeProgression(ctx context.Context) int {
	s.mu.Lock()
	pending := make([]*domain.Order, 0, len(s.orders))
	for _, order := range s.orders {
		if !order.Status.Terminal() {
			pending = append(pending, order.Clone())
		}
	}
	s.mu.Unlock()

	for _, order := range pending {
		s.schedule(ctx, order)
	}
	return len(pending)
}

// Flush rewrites the durable order list from memory.
func (s *Service) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Save(ctx, s.snapshotLocked())
}

func (s *Service) schedule(ctx context.Context, order *domain.Order) {
	s.mu.Lock()
	scheduler := s.scheduler
	s.mu.Unlock()
	if scheduler == nil {
		return
	}
	if err := scheduler.Schedule(ctx, order.ID, order.CreatedAt); err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "order status scheduling failed",
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	}
}

func (s *Service) publish(ctx context.Context, event domain.Event) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Publish(ctx, event); err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "order event publish failed",
			slog.String("event", event.EventName()),
			slog.String("error", err.Error()),
		)
	}
}

func (s *Service) findLocked(id string) *domain.Order {
	for _, order := range s.orders {
		if order.ID == id {
			return order
		}
	}
	return nil
}

// persistLocked writes through; a failed write leaves memory authoritative.
func (s *Service) persistLocked(ctx context.Context) {
	_ = s.store.Save(ctx, s.snapshotLocked())
}

func (s *Service) snapshotLocked() []*domain.Order {
	out := make([]*domain.Order, 0, len(s.orders))
	for _, order := range s.orders {
		out = append(out, order.Clone())
	}
	return out
}

var _ ports.Service = (*Service)(nil)
