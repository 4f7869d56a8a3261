package observability

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	ordersdomain "github.com/pustakahq/bookstore-api/internal/domains/orders/domain"
	ordersports "github.com/pustakahq/bookstore-api/internal/domains/orders/ports"
)

const tracerName = "github.com/pustakahq/bookstore-api/internal/domains/orders/adapters/observability/service"

// Service decorates the order engine with tracing, logging, and metrics.
type Service struct {
	inner   ordersports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) { s.tracer = tr }
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) { s.metrics = newServiceMetrics(m) }
}

// New wraps the core order service.
func New(inner ordersports.Service, opts ...Option) ordersports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
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

func (s *Service) PlaceOrder(ctx context.Context, input ordersports.PlaceOrderInput) (*ordersdomain.Receipt, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.PlaceOrder",
		trace.WithAttributes(
			attribute.String("order.user_id", input.UserID),
			attribute.Int("order.items", len(input.Items)),
		))
	defer span.End()

	s.logInfo(ctx, "placing order",
		slog.String("user.id", input.UserID), slog.Int("items", len(input.Items)))
	receipt, err := s.inner.PlaceOrder(ctx, input)
	if err != nil {
		s.metrics.recordRejected(ctx, err)
		return nil, s.handleError(ctx, span, err, "failed to place order",
			slog.String("user.id", input.UserID))
	}
	s.metrics.recordPlaced(ctx, receipt.TotalQuantity)
	s.logInfo(ctx, "order placed",
		slog.String("order.id", receipt.OrderID),
		slog.Int("total_quantity", receipt.TotalQuantity),
		slog.Float64("total_price", receipt.TotalPrice))
	return receipt, nil
}

func (s *Service) GetOrder(ctx context.Context, userID, orderID string) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.GetOrder",
		trace.WithAttributes(attribute.String("order.id", orderID)))
	defer span.End()

	order, err := s.inner.GetOrder(ctx, userID, orderID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order",
			slog.String("order.id", orderID))
	}
	return order, nil
}

func (s *Service) ListOrders(ctx context.Context, userID string) ([]*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.ListOrders",
		trace.WithAttributes(attribute.String("user.id", userID)))
	defer span.End()

	orders, err := s.inner.ListOrders(ctx, userID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders",
			slog.String("user.id", userID))
	}
	return orders, nil
}

func (s *Service) ComputeStatistics(ctx context.Context) (*ordersdomain.Statistics, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.ComputeStatistics")
	defer span.End()

	s.logInfo(ctx, "computing statistics")
	stats, err := s.inner.ComputeStatistics(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to compute statistics")
	}
	s.logInfo(ctx, "statistics computed",
		slog.Int("total_transactions", stats.TotalTransactions))
	return stats, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	attrs = append(attrs, slog.String("error", err.Error()))
	s.logger.LogAttrs(ctx, slog.LevelWarn, msg, attrs...)
	return err
}

type serviceMetrics struct {
	placed   metric.Int64Counter
	units    metric.Int64Counter
	rejected metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		m = metricnoop.NewMeterProvider().Meter(tracerName)
	}
	placed, _ := m.Int64Counter("orders.placed")
	units, _ := m.Int64Counter("orders.units_sold")
	rejected, _ := m.Int64Counter("orders.rejected")
	return serviceMetrics{placed: placed, units: units, rejected: rejected}
}

func (m serviceMetrics) recordPlaced(ctx context.Context, totalQuantity int) {
	m.placed.Add(ctx, 1)
	m.units.Add(ctx, int64(totalQuantity))
}

func (m serviceMetrics) recordRejected(ctx context.Context, err error) {
	m.rejected.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", rejectionReason(err))))
}

func rejectionReason(err error) string {
	var insufficient *ordersports.InsufficientStockError
	var unknown *ordersports.UnknownBookError
	var conflict *ordersports.StockConflictError
	switch {
	case errors.As(err, &insufficient):
		return "insufficient_stock"
	case errors.As(err, &unknown):
		return "unknown_book"
	case errors.As(err, &conflict):
		return "stock_conflict"
	default:
		return "invalid_input"
	}
}
