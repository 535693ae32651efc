package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/xtremepizzaria/storefront/internal/domains/orders/domain"
	"github.com/xtremepizzaria/storefront/internal/domains/orders/handoff"
	orderports "github.com/xtremepizzaria/storefront/internal/domains/orders/ports"
)

const tracerName = "github.com/xtremepizzaria/storefront/internal/domains/orders/adapters/observability/service"

// Service decorates the orders service with tracing, logging, and metrics.
type Service struct {
	inner   orderports.Service
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

// New wraps the core orders service.
func New(inner orderports.Service, opts ...Option) orderports.Service {
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

func (s *Service) PlaceOrder(ctx context.Context, selection orderports.PaymentSelection) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.PlaceOrder",
		trace.WithAttributes(attribute.String("payment.method", string(selection.Method))))
	defer span.End()

	s.logInfo(ctx, "placing order", slog.String("payment.method", string(selection.Method)))
	order, err := s.inner.PlaceOrder(ctx, selection)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to place order")
	}
	span.SetAttributes(attribute.String("order.id", order.ID), attribute.String("order.total", order.Total.String()))
	s.metrics.recordPlaced(ctx, order.Payment.Method)
	s.logInfo(ctx, "order placed",
		slog.String("order.id", order.ID),
		slog.String("order.total", order.Total.String()),
		slog.Int("order.items", len(order.Items)),
	)
	return order, nil
}

func (s *Service) List(ctx context.Context) ([]*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.List")
	defer span.End()

	orders, err := s.inner.List(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders")
	}
	span.SetAttributes(attribute.Int("orders.count", len(orders)))
	return orders, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.Get", trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()

	order, err := s.inner.Get(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to get order", slog.String("order.id", id))
	}
	return order, nil
}

func (s *Service) PixPreview(ctx context.Context, txid string) (*orderports.PixPreview, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.PixPreview")
	defer span.End()

	preview, err := s.inner.PixPreview(ctx, txid)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to build pix preview")
	}
	span.SetAttributes(attribute.String("pix.txid", preview.TxID), attribute.String("pix.amount", preview.Amount.String()))
	return preview, nil
}

func (s *Service) Handoff(ctx context.Context, id string) (*handoff.Message, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.Handoff", trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()

	msg, err := s.inner.Handoff(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to build handoff", slog.String("order.id", id))
	}
	return msg, nil
}

func (s *Service) AdvanceStatus(ctx context.Context, orderID string, to domain.Status) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.AdvanceStatus",
		trace.WithAttributes(attribute.String("order.id", orderID), attribute.String("order.status.to", string(to))))
	defer span.End()

	order, err := s.inner.AdvanceStatus(ctx, orderID, to)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to advance order status", slog.String("order.id", orderID))
	}
	if order.Status == to {
		s.metrics.recordTransition(ctx, to)
		s.logInfo(ctx, "order status advanced", slog.String("order.id", orderID), slog.String("order.status", order.Status.Label()))
	}
	return order, nil
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
	ordersPlaced      metric.Int64Counter
	statusTransitions metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	ordersPlaced, _ := m.Int64Counter("orders.service.orders_placed", metric.WithDescription("Number of orders placed"))
	statusTransitions, _ := m.Int64Counter("orders.service.status_transitions", metric.WithDescription("Number of applied order status transitions"))
	return serviceMetrics{ordersPlaced: ordersPlaced, statusTransitions: statusTransitions}
}

func (m serviceMetrics) recordPlaced(ctx context.Context, method domain.PaymentMethod) {
	if m.ordersPlaced != nil {
		m.ordersPlaced.Add(ctx, 1, metric.WithAttributes(attribute.String("payment.method", string(method))))
	}
}

func (m serviceMetrics) recordTransition(ctx context.Context, to domain.Status) {
	if m.statusTransitions != nil {
		m.statusTransitions.Add(ctx, 1, metric.WithAttributes(attribute.String("order.status", string(to))))
	}
}

var _ orderports.Service = (*Service)(nil)
