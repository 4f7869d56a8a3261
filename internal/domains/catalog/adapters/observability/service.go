package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/pustakahq/bookstore-api/internal/domains/catalog/domain"
	"github.com/pustakahq/bookstore-api/internal/domains/catalog/ports"
)

const tracerName = "github.com/pustakahq/bookstore-api/internal/domains/catalog/adapters/observability/service"

// Service decorates the catalog service with tracing, logging, and metrics.
type Service struct {
	inner  ports.Service
	tracer trace.Tracer
	logger *slog.Logger
	writes metric.Int64Counter
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) { s.tracer = tr }
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		if m == nil {
			return
		}
		s.writes, _ = m.Int64Counter("catalog.writes")
	}
}

func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:  inner,
		tracer: nooptrace.NewTracerProvider().Tracer(tracerName),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	writes, _ := metricnoop.NewMeterProvider().Meter(tracerName).Int64Counter("catalog.writes")
	s.writes = writes
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

func (s *Service) CreateGenre(ctx context.Context, input ports.GenreInput) (*domain.Genre, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.CreateGenre",
		trace.WithAttributes(attribute.String("genre.name", input.Name)))
	defer span.End()

	genre, err := s.inner.CreateGenre(ctx, input)
	if err != nil {
		return nil, s.fail(ctx, span, err, "failed to create genre")
	}
	s.countWrite(ctx, "genre.create")
	s.logger.LogAttrs(ctx, slog.LevelInfo, "genre created", slog.String("genre.id", genre.ID))
	return genre, nil
}

func (s *Service) ListGenres(ctx context.Context, params ports.ListParams) ([]*domain.Genre, int64, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.ListGenres")
	defer span.End()

	genres, total, err := s.inner.ListGenres(ctx, params)
	if err != nil {
		return nil, 0, s.fail(ctx, span, err, "failed to list genres")
	}
	span.SetAttributes(attribute.Int64("genres.total", total))
	return genres, total, nil
}

func (s *Service) GetGenre(ctx context.Context, id string) (*domain.Genre, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.GetGenre",
		trace.WithAttributes(attribute.String("genre.id", id)))
	defer span.End()

	genre, err := s.inner.GetGenre(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, span, err, "failed to load genre")
	}
	return genre, nil
}

func (s *Service) UpdateGenre(ctx context.Context, id string, input ports.GenreInput) (*domain.Genre, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.UpdateGenre",
		trace.WithAttributes(attribute.String("genre.id", id)))
	defer span.End()

	genre, err := s.inner.UpdateGenre(ctx, id, input)
	if err != nil {
		return nil, s.fail(ctx, span, err, "failed to update genre")
	}
	s.countWrite(ctx, "genre.update")
	return genre, nil
}

func (s *Service) DeleteGenre(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "CatalogService.DeleteGenre",
		trace.WithAttributes(attribute.String("genre.id", id)))
	defer span.End()

	if err := s.inner.DeleteGenre(ctx, id); err != nil {
		return s.fail(ctx, span, err, "failed to delete genre")
	}
	s.countWrite(ctx, "genre.delete")
	s.logger.LogAttrs(ctx, slog.LevelInfo, "genre deleted", slog.String("genre.id", id))
	return nil
}

func (s *Service) CreateBook(ctx context.Context, input ports.BookInput) (*domain.Book, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.CreateBook")
	defer span.End()

	book, err := s.inner.CreateBook(ctx, input)
	if err != nil {
		return nil, s.fail(ctx, span, err, "failed to create book")
	}
	s.countWrite(ctx, "book.create")
	s.logger.LogAttrs(ctx, slog.LevelInfo, "book created",
		slog.String("book.id", book.ID), slog.String("book.title", book.Title))
	return book, nil
}

func (s *Service) ListBooks(ctx context.Context, params ports.ListParams) ([]*domain.Book, int64, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.ListBooks")
	defer span.End()

	books, total, err := s.inner.ListBooks(ctx, params)
	if err != nil {
		return nil, 0, s.fail(ctx, span, err, "failed to list books")
	}
	span.SetAttributes(attribute.Int64("books.total", total))
	return books, total, nil
}

func (s *Service) GetBook(ctx context.Context, id string) (*domain.Book, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.GetBook",
		trace.WithAttributes(attribute.String("book.id", id)))
	defer span.End()

	book, err := s.inner.GetBook(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, span, err, "failed to load book")
	}
	return book, nil
}

func (s *Service) UpdateBook(ctx context.Context, id string, input ports.BookInput) (*domain.Book, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.UpdateBook",
		trace.WithAttributes(attribute.String("book.id", id)))
	defer span.End()

	book, err := s.inner.UpdateBook(ctx, id, input)
	if err != nil {
		return nil, s.fail(ctx, span, err, "failed to update book")
	}
	s.countWrite(ctx, "book.update")
	return book, nil
}

func (s *Service) DeleteBook(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "CatalogService.DeleteBook",
		trace.WithAttributes(attribute.String("book.id", id)))
	defer span.End()

	if err := s.inner.DeleteBook(ctx, id); err != nil {
		return s.fail(ctx, span, err, "failed to delete book")
	}
	s.countWrite(ctx, "book.delete")
	s.logger.LogAttrs(ctx, slog.LevelInfo, "book deleted", slog.String("book.id", id))
	return nil
}

func (s *Service) countWrite(ctx context.Context, op string) {
	s.writes.Add(ctx, 1, metric.WithAttributes(attribute.String("op", op)))
}

func (s *Service) fail(ctx context.Context, span trace.Span, err error, msg string) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	s.logger.LogAttrs(ctx, slog.LevelWarn, msg, slog.String("error", err.Error()))
	return err
}
