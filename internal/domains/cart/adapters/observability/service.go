package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	cartports "github.com/xtremepizzaria/storefront/internal/domains/cart/ports"
)

const tracerName = "github.com/xtremepizzaria/storefront/internal/domains/cart/adapters/observability/service"

// Service decorates the cart service with tracing, logging, and metrics.
type Service struct {
	inner   cartports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core cart service.
func New(inner cartports.Service, opts ...Option) cartports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) View(ctx context.Context) (*cartports.View, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.View")
	defer span.End()

	view, err := s.inner.View(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to price cart")
	}
	span.SetAttributes(attribute.Int("cart.lines", len(view.Lines)), attribute.String("cart.total", view.Total.String()))
	return view, nil
}

func (s *Service) Add(ctx context.Context, input cartports.AddInput) (*cartports.View, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.Add",
		trace.WithAttributes(attribute.String("catalog.item_id", input.CatalogItemID), attribute.Int("cart.quantity", input.Quantity)))
	defer span.End()

	s.logInfo(ctx, "adding to cart", slog.String("catalog.item_id", input.CatalogItemID), slog.Int("quantity", input.Quantity))
	view, err := s.inner.Add(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to add to cart", slog.String("catalog.item_id", input.CatalogItemID))
	}
	s.metrics.recordAdded(ctx, input.CatalogItemID, input.Quantity)
	s.logInfo(ctx, "added to cart", slog.Int("cart.lines", len(view.Lines)), slog.String("cart.total", view.Total.String()))
	return view, nil
}

func (s *Service) ChangeQuantity(ctx context.Context, index, delta int) (*cartports.View, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.ChangeQuantity",
		trace.WithAttributes(attribute.Int("cart.index", index), attribute.Int("cart.delta", delta)))
	defer span.End()

	view, err := s.inner.ChangeQuantity(ctx, index, delta)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to change quantity", slog.Int("cart.index", index))
	}
	s.logInfo(ctx, "cart quantity changed", slog.Int("cart.index", index), slog.Int("delta", delta))
	return view, nil
}

func (s *Service) Remove(ctx context.Context, index int) (*cartports.View, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.Remove", trace.WithAttributes(attribute.Int("cart.index", index)))
	defer span.End()

	view, err := s.inner.Remove(ctx, index)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to remove cart line", slog.Int("cart.index", index))
	}
	s.metrics.recordRemoved(ctx)
	s.logInfo(ctx, "cart line removed", slog.Int("cart.index", index))
	return view, nil
}

func (s *Service) Clear(ctx context.Context) (*cartports.View, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.Clear")
	defer span.End()

	view, err := s.inner.Clear(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to clear cart")
	}
	s.logInfo(ctx, "cart cleared")
	return view, nil
}

func (s *Service) Drain(ctx context.Context, fn cartports.DrainFunc) error {
	ctx, span := s.tracer.Start(ctx, "CartService.Drain")
	defer span.End()

	if err := s.inner.Drain(ctx, fn); err != nil {
		return s.handleError(ctx, span, err, "cart not drained")
	}
	s.logInfo(ctx, "cart drained into order")
	return nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	itemsAdded   metric.Int64Counter
	linesRemoved metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	itemsAdded, _ := m.Int64Counter("cart.service.items_added", metric.WithDescription("Number of units added to the cart"))
	linesRemoved, _ := m.Int64Counter("cart.service.lines_removed", metric.WithDescription("Number of cart lines removed"))
	return serviceMetrics{itemsAdded: itemsAdded, linesRemoved: linesRemoved}
}

func (m serviceMetrics) recordAdded(ctx context.Context, itemID string, quantity int) {
	if m.itemsAdded != nil {
		m.itemsAdded.Add(ctx, int64(quantity), metric.WithAttributes(attribute.String("catalog.item_id", itemID)))
	}
}

func (m serviceMetrics) recordRemoved(ctx context.Context) {
	if m.linesRemoved != nil {
		m.linesRemoved.Add(ctx, 1)
	}
}

var _ cartports.Service = (*Service)(nil)
