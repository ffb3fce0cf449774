package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	catalogdomain "github.com/Apurer/purchase-order-exercise/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/purchase-order-exercise/internal/domains/catalog/ports"
	"github.com/Apurer/purchase-order-exercise/internal/domains/exercise/domain"
	"github.com/Apurer/purchase-order-exercise/internal/domains/exercise/ports"
)

// Service orchestrates the exercise wizard over a session store.
type Service struct {
	sessions ports.SessionStore
	catalog  catalogports.Catalog
	reviewer ports.ReviewOrchestrator
	now      func() time.Time
	newID    func() string
}

// ServiceOption configures optional collaborators.
type ServiceOption func(*Service)

// WithReviewOrchestrator routes finished orders through the given orchestrator
// instead of evaluating them in-process.
func WithReviewOrchestrator(reviewer ports.ReviewOrchestrator) ServiceOption {
	return func(s *Service) {
		s.reviewer = reviewer
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides session id generation.
func WithIDGenerator(newID func() string) ServiceOption {
	return func(s *Service) {
		if newID != nil {
			s.newID = newID
		}
	}
}

func NewService(sessions ports.SessionStore, catalog catalogports.Catalog, opts ...ServiceOption) *Service {
	s := &Service{
		sessions: sessions,
		catalog:  catalog,
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Service) Create(ctx context.Context) (*domain.Exercise, error) {
	exercise := domain.NewExercise(s.newID(), s.now())
	if err := s.sessions.Save(ctx, exercise); err != nil {
		return nil, err
	}
	return exercise, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Exercise, error) {
	exercise, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return exercise, nil
}

func (s *Service) Discard(ctx context.Context, id string) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	return s.sessions.Delete(ctx, id)
}

func (s *Service) Start(ctx context.Context, id string) (*domain.Exercise, error) {
	return s.mutate(ctx, id, func(e *domain.Exercise, now time.Time) error {
		return e.Start(now)
	})
}

// SelectOffer picks an offer and seeds the draft with the buyer, the supplier
// and a fresh order number.
func (s *Service) SelectOffer(ctx context.Context, id, offerID string) (*domain.Exercise, error) {
	offerID = strings.TrimSpace(offerID)
	if offerID == "" {
		return nil, fmt.Errorf("%w: offer id is required", ErrInvalidInput)
	}
	offer, err := s.catalog.GetOffer(ctx, offerID)
	if err != nil {
		return nil, mapError(err)
	}
	buyer, err := s.catalog.Buyer(ctx)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, id, func(e *domain.Exercise, now time.Time) error {
		return e.SelectOffer(*offer, buyer, newOrderNumber(now), now)
	})
}

func (s *Service) AddItem(ctx context.Context, id, itemID string) (*domain.Exercise, error) {
	return s.mutate(ctx, id, func(e *domain.Exercise, now time.Time) error {
		return e.AddItem(strings.TrimSpace(itemID), now)
	})
}

func (s *Service) RemoveItem(ctx context.Context, id, itemID string) (*domain.Exercise, error) {
	return s.mutate(ctx, id, func(e *domain.Exercise, now time.Time) error {
		return e.RemoveItem(strings.TrimSpace(itemID), now)
	})
}

func (s *Service) UpdateQuantity(ctx context.Context, id, itemID string, quantity int) (*domain.Exercise, error) {
	return s.mutate(ctx, id, func(e *domain.Exercise, now time.Time) error {
		return e.UpdateQuantity(strings.TrimSpace(itemID), quantity, now)
	})
}

func (s *Service) SetCondition(ctx context.Context, id, field, value string) (*domain.Exercise, error) {
	conditionField, err := catalogdomain.ParseConditionField(field)
	if err != nil {
		return nil, mapError(err)
	}
	vocab, err := s.catalog.Vocabularies(ctx)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, id, func(e *domain.Exercise, now time.Time) error {
		return e.SetCondition(vocab, conditionField, value, now)
	})
}

func (s *Service) SetSignature(ctx context.Context, id, signature string) (*domain.Exercise, error) {
	return s.mutate(ctx, id, func(e *domain.Exercise, now time.Time) error {
		return e.SetSignature(signature, now)
	})
}

// Finish submits a valid draft and stores the evaluated checklist.
func (s *Service) Finish(ctx context.Context, id string) (*domain.Exercise, error) {
	exercise, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := exercise.ReadyForReview(); err != nil {
		return nil, mapError(err)
	}
	review, err := s.evaluate(ctx, exercise)
	if err != nil {
		return nil, err
	}
	if err := exercise.CompleteReview(*review, s.now()); err != nil {
		return nil, mapError(err)
	}
	if err := s.sessions.Save(ctx, exercise); err != nil {
		return nil, err
	}
	return exercise, nil
}

// Review returns the checklist of a finished exercise.
func (s *Service) Review(ctx context.Context, id string) (*domain.Review, error) {
	exercise, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if exercise.Step != domain.StepReview || exercise.Review == nil {
		return nil, mapError(fmt.Errorf("%w: review is only available once the order is finished", domain.ErrInvalidStep))
	}
	review := *exercise.Review
	return &review, nil
}

func (s *Service) TogglePreview(ctx context.Context, id string) (*domain.Exercise, error) {
	return s.mutate(ctx, id, func(e *domain.Exercise, now time.Time) error {
		return e.TogglePreview(now)
	})
}

func (s *Service) Restart(ctx context.Context, id string) (*domain.Exercise, error) {
	return s.mutate(ctx, id, func(e *domain.Exercise, now time.Time) error {
		return e.Restart(now)
	})
}

func (s *Service) evaluate(ctx context.Context, exercise *domain.Exercise) (*domain.Review, error) {
	if s.reviewer == nil {
		review := domain.Evaluate(*exercise.Order, *exercise.Offer)
		return &review, nil
	}
	return s.reviewer.ReviewOrder(ctx, ports.ReviewInput{
		ExerciseID: exercise.ID,
		Order:      *exercise.Order.Clone(),
		Offer:      exercise.Offer.Clone(),
	})
}

func (s *Service) load(ctx context.Context, id string) (*domain.Exercise, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: exercise id is required", ErrInvalidInput)
	}
	exercise, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	if exercise == nil {
		return nil, errors.New("session store returned no exercise")
	}
	return exercise, nil
}

func (s *Service) mutate(ctx context.Context, id string, apply func(*domain.Exercise, time.Time) error) (*domain.Exercise, error) {
	exercise, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := apply(exercise, s.now()); err != nil {
		return nil, mapError(err)
	}
	if err := s.sessions.Save(ctx, exercise); err != nil {
		return nil, err
	}
	return exercise, nil
}

// newOrderNumber formats BC-<year>-<6 hex chars>.
func newOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:6]
	return fmt.Sprintf("BC-%d-%s", now.Year(), suffix)
}

var _ ports.Service = (*Service)(nil)
