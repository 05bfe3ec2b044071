// Package agency holds the spy cat agency business rules: target cardinality,
// assignment exclusivity, completion propagation and the delete guards.
package agency

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

type Service struct {
	store  Store
	breeds BreedClassifier
	pub    Publisher
	log    zerolog.Logger
	now    func() time.Time
}

type Option func(*Service)

// WithPublisher makes the service emit lifecycle events to p.
func WithPublisher(p Publisher) Option {
	return func(s *Service) { s.pub = p }
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *Service) { s.log = l }
}

func NewService(store Store, breeds BreedClassifier, opts ...Option) *Service {
	s := &Service{
		store:  store,
		breeds: breeds,
		log:    zerolog.Nop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// emit publishes events after commit. Delivery problems are logged only; the
// state change already happened and must not be reported as failed.
func (s *Service) emit(ctx context.Context, evs ...Event) {
	if s.pub == nil {
		return
	}
	for _, ev := range evs {
		if ev.At.IsZero() {
			ev.At = s.now()
		}
		if err := s.pub.Publish(ctx, ev); err != nil {
			s.log.Warn().Err(err).Str("event", ev.Type).Msg("publish event failed")
		}
	}
}
