// Package service is the flat facade the presentation layer calls: the
// assignment lifecycle plus CRUD with validation for every other entity.
// Reads come from the embedded query.Service.
package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/errdefs"
	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/lifecycle"
	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/metrics"
	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/models"
	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/observability"
	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/query"
	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/store"
)

type Service struct {
	*query.Service

	store   store.Store
	engine  *lifecycle.Engine
	log     *zap.Logger
	now     func() time.Time
	docsDir string
}

type Option func(*Service)

func WithLogger(l *zap.Logger) Option { return func(s *Service) { s.log = l } }

func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

// WithDocumentDir sets where attached documents are referenced from when the
// caller gives no path.
func WithDocumentDir(dir string) Option { return func(s *Service) { s.docsDir = dir } }

func New(st store.Store, opts ...Option) *Service {
	s := &Service{
		Service: query.New(st),
		store:   st,
		log:     zap.NewNop(),
		now:     time.Now,
		docsDir: "documents",
	}
	for _, o := range opts {
		o(s)
	}
	s.engine = lifecycle.New(st, lifecycle.WithLogger(s.log), lifecycle.WithClock(s.now))
	return s
}

func (s *Service) Store() store.Store { return s.store }

// blocked counts and logs a delete refused because dependents exist.
func (s *Service) blocked(entity string, id int64, dependency string) error {
	metrics.BlockedDeletes.WithLabelValues(entity).Inc()
	s.log.Warn("delete blocked", zap.String("entity", entity), zap.Int64("id", id), zap.String("dependency", dependency))
	return errdefs.Referential(entity, dependency)
}

// logged reports unexpected failures and passes err through.
func (s *Service) logged(op string, err error, fields ...zap.Field) error {
	switch errdefs.Kind(err) {
	case "none":
		s.log.Info(op, fields...)
	case "storage", "internal":
		observability.CaptureOp(op, err)
		s.log.Error(op+" failed", append(fields, zap.Error(err))...)
	default:
		s.log.Debug(op+" rejected", append(fields, zap.Error(err))...)
	}
	return err
}

func (s *Service) hasAssignments(ctx context.Context, tx store.Store, pred func(*models.Assignment) bool) (bool, error) {
	return tx.Assignments().ExistsWhere(ctx, pred)
}
