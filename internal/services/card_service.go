package services

import (
	"context"

	"github.com/flashflow/flashflow/internal/errors"
	"github.com/flashflow/flashflow/internal/logger"
	"github.com/flashflow/flashflow/internal/models"
	"github.com/flashflow/flashflow/internal/store"
)

// CardService handles card-related business logic
type CardService interface {
	AddCard(ctx context.Context, data models.AddCardData) (models.Card, error)
	UpdateCard(ctx context.Context, id string, patch models.CardPatch) (models.Card, error)
	DeleteCard(ctx context.Context, id string) error
	ReviewCard(ctx context.Context, id string, quality int) (models.Card, error)
	GetCard(ctx context.Context, id string) (models.Card, error)
	ListCards(ctx context.Context) []models.Card
	DueCards(ctx context.Context) []models.Card
	Topics(ctx context.Context) []string
}

type cardService struct {
	store *store.Store
}

// NewCardService creates a new CardService
func NewCardService(st *store.Store) CardService {
	return &cardService{store: st}
}

// wrapErr passes application errors through and hides everything else
// (persistence failures, marshalling) behind an internal error.
func wrapErr(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*errors.AppError); ok {
		return err
	}
	return errors.NewInternalError(err)
}

func (s *cardService) AddCard(ctx context.Context, data models.AddCardData) (models.Card, error) {
	log := logger.FromContext(ctx)
	log.Debug("adding card: topic=%s", data.Topic)

	card, err := s.store.Add(ctx, data)
	if err != nil {
		log.Error("failed to add card: %v", err)
		return models.Card{}, wrapErr(err)
	}

	log.Debug("card added: id=%s", card.ID)
	return card, nil
}

func (s *cardService) UpdateCard(ctx context.Context, id string, patch models.CardPatch) (models.Card, error) {
	log := logger.FromContext(ctx)
	log.Debug("updating card: id=%s", id)

	card, err := s.store.Update(ctx, id, patch)
	if err != nil {
		log.Error("failed to update card: %v", err)
		return models.Card{}, wrapErr(err)
	}
	return card, nil
}

func (s *cardService) DeleteCard(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting card: id=%s", id)

	if err := s.store.Delete(ctx, id); err != nil {
		log.Error("failed to delete card: %v", err)
		return wrapErr(err)
	}
	return nil
}

func (s *cardService) ReviewCard(ctx context.Context, id string, quality int) (models.Card, error) {
	log := logger.FromContext(ctx)
	log.Debug("reviewing card: id=%s quality=%d", id, quality)

	card, err := s.store.Review(ctx, id, quality)
	if err != nil {
		log.Error("failed to review card: %v", err)
		return models.Card{}, wrapErr(err)
	}

	log.Debug("review applied: interval=%d days, ease_factor=%.2f", card.Interval, card.EFactor)
	return card, nil
}

func (s *cardService) GetCard(ctx context.Context, id string) (models.Card, error) {
	card, err := s.store.GetByID(id)
	if err != nil {
		return models.Card{}, wrapErr(err)
	}
	return card, nil
}

func (s *cardService) ListCards(ctx context.Context) []models.Card {
	return s.store.List()
}

func (s *cardService) DueCards(ctx context.Context) []models.Card {
	logger.FromContext(ctx).Debug("fetching due cards")
	return s.store.DueCards(s.store.Now())
}

func (s *cardService) Topics(ctx context.Context) []string {
	return s.store.Topics()
}
