// Package store owns the in-memory card collection and the daily
// progress ledger. A single mutex guards both so that a review (card
// update + ledger increment) is atomic to every reader. Each mutation
// is written through the storage.KV collaborator as one JSON value per
// collection; if that write fails the error is surfaced but the
// in-memory state stays valid, so the session keeps working and only
// durability is at risk.
package store

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/flashflow/flashflow/internal/clock"
	"github.com/flashflow/flashflow/internal/errors"
	"github.com/flashflow/flashflow/internal/logger"
	"github.com/flashflow/flashflow/internal/models"
	"github.com/flashflow/flashflow/internal/scheduler"
	"github.com/flashflow/flashflow/internal/storage"
)

type Store struct {
	mu     sync.Mutex
	cards  []models.Card
	ledger []models.DailyProgress

	kv  storage.KV
	clk clock.Clock
	log *logger.Logger
}

// Open loads both collections from kv and returns a ready store.
// Missing keys start the collections empty, which is the first-run case.
func Open(ctx context.Context, kv storage.KV, clk clock.Clock) (*Store, error) {
	s := &Store{
		kv:  kv,
		clk: clk,
		log: logger.Default().WithPrefix("store"),
	}

	if err := loadJSON(ctx, kv, storage.KeyFlashcards, &s.cards); err != nil {
		return nil, err
	}
	if err := loadJSON(ctx, kv, storage.KeyProgress, &s.ledger); err != nil {
		return nil, err
	}

	s.log.Info("loaded %d cards, %d progress entries", len(s.cards), len(s.ledger))
	return s, nil
}

func loadJSON(ctx context.Context, kv storage.KV, key string, dst interface{}) error {
	raw, err := kv.Load(ctx, key)
	if err != nil {
		return err
	}
	if raw == nil {
		return nil
	}
	return json.Unmarshal(raw, dst)
}

// Add validates the supplied fields, stamps the initial SM-2 state and
// appends the new card. The caller's due date, when present, overrides
// the default of "due today".
func (s *Store) Add(ctx context.Context, data models.AddCardData) (models.Card, error) {
	if strings.TrimSpace(data.Topic) == "" {
		return models.Card{}, errors.NewValidationError("topic", "must not be empty")
	}
	if strings.TrimSpace(data.Question) == "" {
		return models.Card{}, errors.NewValidationError("question", "must not be empty")
	}
	if strings.TrimSpace(data.Answer) == "" {
		return models.Card{}, errors.NewValidationError("answer", "must not be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	card := scheduler.InitState(models.Card{
		ID:       uuid.NewString(),
		Topic:    data.Topic,
		Question: data.Question,
		Answer:   data.Answer,
	}, s.clk.Now())
	if data.DueDate != nil {
		card.DueDate = clock.StartOfDay(*data.DueDate)
	}

	s.cards = append(s.cards, card)
	s.log.Debug("card added: id=%s topic=%s", card.ID, card.Topic)
	return card, s.persistCards(ctx)
}

// Update merges the patch into an existing card. Nil patch fields are
// left alone, so clearing the due-date field preserves the stored one.
// Manual edits never re-run the scheduler.
func (s *Store) Update(ctx context.Context, id string, patch models.CardPatch) (models.Card, error) {
	if patch.Topic != nil && strings.TrimSpace(*patch.Topic) == "" {
		return models.Card{}, errors.NewValidationError("topic", "must not be empty")
	}
	if patch.Question != nil && strings.TrimSpace(*patch.Question) == "" {
		return models.Card{}, errors.NewValidationError("question", "must not be empty")
	}
	if patch.Answer != nil && strings.TrimSpace(*patch.Answer) == "" {
		return models.Card{}, errors.NewValidationError("answer", "must not be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.Card{}, errors.NewNotFoundError("card", id)
	}

	card := s.cards[i]
	if patch.Topic != nil {
		card.Topic = *patch.Topic
	}
	if patch.Question != nil {
		card.Question = *patch.Question
	}
	if patch.Answer != nil {
		card.Answer = *patch.Answer
	}
	if patch.DueDate != nil {
		card.DueDate = clock.StartOfDay(*patch.DueDate)
	}
	s.cards[i] = card

	s.log.Debug("card updated: id=%s", id)
	return card, s.persistCards(ctx)
}

// Delete removes the card irrecoverably. An unknown id is an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return errors.NewNotFoundError("card", id)
	}

	s.cards = append(s.cards[:i], s.cards[i+1:]...)
	s.log.Debug("card deleted: id=%s", id)
	return s.persistCards(ctx)
}

// Review applies one SM-2 step to the card and records the review in
// the ledger under today's date. Whether the review counts as new
// learning is decided from the pre-review state: repetition still zero
// and a passing quality.
func (s *Store) Review(ctx context.Context, id string, quality int) (models.Card, error) {
	if quality < 0 || quality > 5 {
		return models.Card{}, errors.NewRangeError("quality", quality, "must be between 0 and 5")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.Card{}, errors.NewNotFoundError("card", id)
	}

	now := s.clk.Now()
	isNewLearning := s.cards[i].Repetition == 0 && quality >= 3

	card := scheduler.Apply(s.cards[i], quality, now)
	s.cards[i] = card
	s.recordReview(isNewLearning, now)

	s.log.Debug("card reviewed: id=%s quality=%d interval=%d ef=%.2f new=%t",
		id, quality, card.Interval, card.EFactor, isNewLearning)

	if err := s.persistCards(ctx); err != nil {
		return card, err
	}
	return card, s.persistLedger(ctx)
}

// recordReview appends or increments today's ledger entry. Caller
// holds the lock.
func (s *Store) recordReview(isNewLearning bool, now time.Time) {
	key := clock.DateKey(now)
	for i := range s.ledger {
		if s.ledger[i].Date == key {
			s.ledger[i].ReviewedCount++
			if isNewLearning {
				s.ledger[i].NewCount++
			}
			return
		}
	}
	entry := models.DailyProgress{Date: key, ReviewedCount: 1}
	if isNewLearning {
		entry.NewCount = 1
	}
	s.ledger = append(s.ledger, entry)
}

// GetByID returns a copy of the card.
func (s *Store) GetByID(id string) (models.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.Card{}, errors.NewNotFoundError("card", id)
	}
	return s.cards[i], nil
}

// List returns a copy of the whole collection in insertion order.
func (s *Store) List() []models.Card {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Card, len(s.cards))
	copy(out, s.cards)
	return out
}

// DueCards returns every card due on or before today, earliest first.
// The sort is stable, so cards sharing a due date keep insertion order.
func (s *Store) DueCards(today time.Time) []models.Card {
	cutoff := clock.StartOfDay(today)

	s.mu.Lock()
	defer s.mu.Unlock()

	var due []models.Card
	for _, c := range s.cards {
		if !clock.StartOfDay(c.DueDate).After(cutoff) {
			due = append(due, c)
		}
	}
	sort.SliceStable(due, func(i, j int) bool {
		return due[i].DueDate.Before(due[j].DueDate)
	})
	return due
}

// Now returns the store's notion of the current time, taken from the
// injected clock.
func (s *Store) Now() time.Time {
	return s.clk.Now()
}

// CountDueToday is the size of DueCards for the current date.
func (s *Store) CountDueToday() int {
	return len(s.DueCards(s.clk.Now()))
}

// Topics returns the distinct topic names, sorted.
func (s *Store) Topics() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]bool)
	var topics []string
	for _, c := range s.cards {
		if !seen[c.Topic] {
			seen[c.Topic] = true
			topics = append(topics, c.Topic)
		}
	}
	sort.Strings(topics)
	return topics
}

// Progress returns a copy of the ledger. Order is unspecified;
// consumers sort as needed.
func (s *Store) Progress() []models.DailyProgress {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.DailyProgress, len(s.ledger))
	copy(out, s.ledger)
	return out
}

// Reset drops every card and progress entry, in memory and in the
// durable store.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cards = nil
	s.ledger = nil
	s.log.Info("all data cleared")

	if err := s.kv.Delete(ctx, storage.KeyFlashcards); err != nil {
		return err
	}
	return s.kv.Delete(ctx, storage.KeyProgress)
}

func (s *Store) indexOf(id string) int {
	for i := range s.cards {
		if s.cards[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) persistCards(ctx context.Context) error {
	raw, err := json.Marshal(s.cards)
	if err != nil {
		return err
	}
	if err := s.kv.Save(ctx, storage.KeyFlashcards, raw); err != nil {
		s.log.Warn("failed to persist cards, in-memory state still valid: %v", err)
		return err
	}
	return nil
}

func (s *Store) persistLedger(ctx context.Context) error {
	raw, err := json.Marshal(s.ledger)
	if err != nil {
		return err
	}
	if err := s.kv.Save(ctx, storage.KeyProgress, raw); err != nil {
		s.log.Warn("failed to persist progress, in-memory state still valid: %v", err)
		return err
	}
	return nil
}
