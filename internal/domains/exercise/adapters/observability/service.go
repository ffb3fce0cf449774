package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Apurer/purchase-order-exercise/internal/domains/exercise/domain"
	"github.com/Apurer/purchase-order-exercise/internal/domains/exercise/ports"
)

const tracerName = "github.com/Apurer/purchase-order-exercise/internal/domains/exercise/adapters/observability/service"

// Service decorates the exercise service with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
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

// New wraps the core exercise service.
func New(inner ports.Service, opts ...Option) ports.Service {
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

func (s *Service) Create(ctx context.Context) (*domain.Exercise, error) {
	ctx, span := s.tracer.Start(ctx, "ExerciseService.Create")
	defer span.End()

	result, err := s.inner.Create(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create exercise")
	}
	span.SetAttributes(attribute.String("exercise.id", result.ID))
	s.metrics.recordCreated(ctx)
	s.logInfo(ctx, "exercise created", slog.String("exercise.id", result.ID))
	return result, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Exercise, error) {
	ctx, span := s.startSpan(ctx, "ExerciseService.Get", id)
	defer span.End()

	result, err := s.inner.Get(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load exercise", slog.String("exercise.id", id))
	}
	span.SetAttributes(attribute.String("exercise.step", string(result.Step)))
	return result, nil
}

func (s *Service) Discard(ctx context.Context, id string) error {
	ctx, span := s.startSpan(ctx, "ExerciseService.Discard", id)
	defer span.End()

	if err := s.inner.Discard(ctx, id); err != nil {
		return s.handleError(ctx, span, err, "failed to discard exercise", slog.String("exercise.id", id))
	}
	s.logInfo(ctx, "exercise discarded", slog.String("exercise.id", id))
	return nil
}

func (s *Service) Start(ctx context.Context, id string) (*domain.Exercise, error) {
	ctx, span := s.startSpan(ctx, "ExerciseService.Start", id)
	defer span.End()

	result, err := s.inner.Start(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to start exercise", slog.String("exercise.id", id))
	}
	s.metrics.recordStarted(ctx)
	s.logInfo(ctx, "exercise started", slog.String("exercise.id", id))
	return result, nil
}

func (s *Service) SelectOffer(ctx context.Context, id, offerID string) (*domain.Exercise, error) {
	ctx, span := s.startSpan(ctx, "ExerciseService.SelectOffer", id, attribute.String("offer.id", offerID))
	defer span.End()

	result, err := s.inner.SelectOffer(ctx, id, offerID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to select offer",
			slog.String("exercise.id", id), slog.String("offer.id", offerID))
	}
	s.metrics.recordOfferSelected(ctx, offerID)
	s.logInfo(ctx, "offer selected",
		slog.String("exercise.id", id), slog.String("offer.id", offerID), slog.String("order.number", result.Order.Number))
	return result, nil
}

func (s *Service) AddItem(ctx context.Context, id, itemID string) (*domain.Exercise, error) {
	ctx, span := s.startSpan(ctx, "ExerciseService.AddItem", id, attribute.String("item.id", itemID))
	defer span.End()

	result, err := s.inner.AddItem(ctx, id, itemID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to add item",
			slog.String("exercise.id", id), slog.String("item.id", itemID))
	}
	span.SetAttributes(attribute.Int("order.lines", len(result.Order.Items)))
	return result, nil
}

func (s *Service) RemoveItem(ctx context.Context, id, itemID string) (*domain.Exercise, error) {
	ctx, span := s.startSpan(ctx, "ExerciseService.RemoveItem", id, attribute.String("item.id", itemID))
	defer span.End()

	result, err := s.inner.RemoveItem(ctx, id, itemID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to remove item",
			slog.String("exercise.id", id), slog.String("item.id", itemID))
	}
	span.SetAttributes(attribute.Int("order.lines", len(result.Order.Items)))
	return result, nil
}

func (s *Service) UpdateQuantity(ctx context.Context, id, itemID string, quantity int) (*domain.Exercise, error) {
	ctx, span := s.startSpan(ctx, "ExerciseService.UpdateQuantity", id,
		attribute.String("item.id", itemID), attribute.Int("item.quantity", quantity))
	defer span.End()

	result, err := s.inner.UpdateQuantity(ctx, id, itemID, quantity)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update quantity",
			slog.String("exercise.id", id), slog.String("item.id", itemID))
	}
	return result, nil
}

func (s *Service) SetCondition(ctx context.Context, id, field, value string) (*domain.Exercise, error) {
	ctx, span := s.startSpan(ctx, "ExerciseService.SetCondition", id, attribute.String("condition.field", field))
	defer span.End()

	result, err := s.inner.SetCondition(ctx, id, field, value)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to set condition",
			slog.String("exercise.id", id), slog.String("condition.field", field))
	}
	return result, nil
}

func (s *Service) SetSignature(ctx context.Context, id, signature string) (*domain.Exercise, error) {
	ctx, span := s.startSpan(ctx, "ExerciseService.SetSignature", id)
	defer span.End()

	result, err := s.inner.SetSignature(ctx, id, signature)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to sign order", slog.String("exercise.id", id))
	}
	return result, nil
}

func (s *Service) Finish(ctx context.Context, id string) (*domain.Exercise, error) {
	ctx, span := s.startSpan(ctx, "ExerciseService.Finish", id)
	defer span.End()

	s.logInfo(ctx, "finishing order", slog.String("exercise.id", id))
	result, err := s.inner.Finish(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to finish order", slog.String("exercise.id", id))
	}
	if result.Review != nil {
		failed := result.Review.FailedCount()
		span.SetAttributes(attribute.Int("review.failed", failed))
		s.metrics.recordFinished(ctx, *result.Review)
		s.logInfo(ctx, "order reviewed",
			slog.String("exercise.id", id),
			slog.String("order.number", result.Order.Number),
			slog.Int("review.failed", failed),
			slog.String("order.subtotal", result.Review.Subtotal.StringFixed(2)))
	}
	return result, nil
}

func (s *Service) Review(ctx context.Context, id string) (*domain.Review, error) {
	ctx, span := s.startSpan(ctx, "ExerciseService.Review", id)
	defer span.End()

	result, err := s.inner.Review(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load review", slog.String("exercise.id", id))
	}
	return result, nil
}

func (s *Service) TogglePreview(ctx context.Context, id string) (*domain.Exercise, error) {
	ctx, span := s.startSpan(ctx, "ExerciseService.TogglePreview", id)
	defer span.End()

	result, err := s.inner.TogglePreview(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to toggle preview", slog.String("exercise.id", id))
	}
	span.SetAttributes(attribute.Bool("exercise.preview", result.Preview))
	return result, nil
}

func (s *Service) Restart(ctx context.Context, id string) (*domain.Exercise, error) {
	ctx, span := s.startSpan(ctx, "ExerciseService.Restart", id)
	defer span.End()

	result, err := s.inner.Restart(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to restart exercise", slog.String("exercise.id", id))
	}
	s.metrics.recordRestarted(ctx)
	s.logInfo(ctx, "exercise restarted", slog.String("exercise.id", id))
	return result, nil
}

func (s *Service) startSpan(ctx context.Context, name, id string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append([]attribute.KeyValue{attribute.String("exercise.id", id)}, attrs...)
	return s.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
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
	sessionsCreated   metric.Int64Counter
	sessionsStarted   metric.Int64Counter
	offersSelected    metric.Int64Counter
	ordersFinished    metric.Int64Counter
	criteriaFailed    metric.Int64Counter
	sessionsRestarted metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	sessionsCreated, _ := m.Int64Counter("exercise.service.sessions_created", metric.WithDescription("Number of exercise sessions opened"))
	sessionsStarted, _ := m.Int64Counter("exercise.service.sessions_started", metric.WithDescription("Number of exercises that left the intro"))
	offersSelected, _ := m.Int64Counter("exercise.service.offers_selected", metric.WithDescription("Number of offers picked, by offer"))
	ordersFinished, _ := m.Int64Counter("exercise.service.orders_finished", metric.WithDescription("Number of purchase orders submitted for review"))
	criteriaFailed, _ := m.Int64Counter("exercise.service.review_criteria_failed", metric.WithDescription("Number of failed review criteria, by criterion"))
	sessionsRestarted, _ := m.Int64Counter("exercise.service.sessions_restarted", metric.WithDescription("Number of exercise restarts"))
	return serviceMetrics{
		sessionsCreated:   sessionsCreated,
		sessionsStarted:   sessionsStarted,
		offersSelected:    offersSelected,
		ordersFinished:    ordersFinished,
		criteriaFailed:    criteriaFailed,
		sessionsRestarted: sessionsRestarted,
	}
}

func (m serviceMetrics) recordCreated(ctx context.Context) {
	if m.sessionsCreated != nil {
		m.sessionsCreated.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordStarted(ctx context.Context) {
	if m.sessionsStarted != nil {
		m.sessionsStarted.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordOfferSelected(ctx context.Context, offerID string) {
	if m.offersSelected != nil {
		m.offersSelected.Add(ctx, 1, metric.WithAttributes(attribute.String("offer.id", offerID)))
	}
}

func (m serviceMetrics) recordFinished(ctx context.Context, review domain.Review) {
	if m.ordersFinished != nil {
		m.ordersFinished.Add(ctx, 1, metric.WithAttributes(attribute.Bool("review.passed", review.Passed())))
	}
	if m.criteriaFailed == nil {
		return
	}
	for _, criterion := range review.Criteria {
		if !criterion.Passed {
			m.criteriaFailed.Add(ctx, 1, metric.WithAttributes(attribute.String("review.criterion", string(criterion.Key))))
		}
	}
}

func (m serviceMetrics) recordRestarted(ctx context.Context) {
	if m.sessionsRestarted != nil {
		m.sessionsRestarted.Add(ctx, 1)
	}
}

var _ ports.Service = (*Service)(nil)
