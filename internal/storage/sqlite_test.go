package storage_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/flashflow/flashflow/internal/models"
	"github.com/flashflow/flashflow/internal/storage"
)

type SQLiteKVSuite struct {
	suite.Suite
	kv *storage.SQLiteKV
}

func (s *SQLiteKVSuite) SetupTest() {
	kv, err := storage.OpenSQLite(":memory:")
	s.Require().NoError(err)
	s.kv = kv
}

func (s *SQLiteKVSuite) TearDownTest() {
	s.Require().NoError(s.kv.Close())
}

func (s *SQLiteKVSuite) TestLoadMissingKey() {
	value, err := s.kv.Load(context.Background(), "nope")
	s.Require().NoError(err)
	s.Assert().Nil(value)
}

func (s *SQLiteKVSuite) TestSaveAndLoad() {
	ctx := context.Background()

	s.Require().NoError(s.kv.Save(ctx, "k", []byte(`{"a":1}`)))

	value, err := s.kv.Load(ctx, "k")
	s.Require().NoError(err)
	s.Assert().JSONEq(`{"a":1}`, string(value))
}

func (s *SQLiteKVSuite) TestSaveOverwrites() {
	ctx := context.Background()

	s.Require().NoError(s.kv.Save(ctx, "k", []byte(`"old"`)))
	s.Require().NoError(s.kv.Save(ctx, "k", []byte(`"new"`)))

	value, err := s.kv.Load(ctx, "k")
	s.Require().NoError(err)
	s.Assert().Equal(`"new"`, string(value))
}

func (s *SQLiteKVSuite) TestDelete() {
	ctx := context.Background()

	s.Require().NoError(s.kv.Save(ctx, "k", []byte("x")))
	s.Require().NoError(s.kv.Delete(ctx, "k"))

	value, err := s.kv.Load(ctx, "k")
	s.Require().NoError(err)
	s.Assert().Nil(value)

	// Deleting an absent key is not an error.
	s.Require().NoError(s.kv.Delete(ctx, "k"))
}

func (s *SQLiteKVSuite) TestCardCollectionRoundTrip() {
	ctx := context.Background()
	reviewed := time.Date(2024, 3, 14, 9, 0, 0, 0, time.UTC)
	cards := []models.Card{
		{
			ID:           "c1",
			Topic:        "CSS",
			Question:     "What does CSS stand for?",
			Answer:       "Cascading Style Sheets.",
			Interval:     6,
			Repetition:   2,
			EFactor:      2.36,
			DueDate:      time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC),
			LastReviewed: &reviewed,
			CreatedAt:    time.Date(2024, 1, 2, 10, 30, 0, 0, time.UTC),
		},
		{
			ID:        "c2",
			Topic:     "History",
			Question:  "In what year did World War II end?",
			Answer:    "1945.",
			EFactor:   2.5,
			DueDate:   time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			CreatedAt: time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC),
		},
	}

	raw, err := json.Marshal(cards)
	s.Require().NoError(err)
	s.Require().NoError(s.kv.Save(ctx, storage.KeyFlashcards, raw))

	loaded, err := s.kv.Load(ctx, storage.KeyFlashcards)
	s.Require().NoError(err)

	var decoded []models.Card
	s.Require().NoError(json.Unmarshal(loaded, &decoded))
	s.Assert().Equal(cards, decoded)
}

func (s *SQLiteKVSuite) TestProgressLedgerRoundTrip() {
	ctx := context.Background()
	entries := []models.DailyProgress{
		{Date: "2024-03-14", ReviewedCount: 12, NewCount: 3},
		{Date: "2024-03-15", ReviewedCount: 5, NewCount: 0},
	}

	raw, err := json.Marshal(entries)
	s.Require().NoError(err)
	s.Require().NoError(s.kv.Save(ctx, storage.KeyProgress, raw))

	loaded, err := s.kv.Load(ctx, storage.KeyProgress)
	s.Require().NoError(err)

	var decoded []models.DailyProgress
	s.Require().NoError(json.Unmarshal(loaded, &decoded))
	s.Assert().Equal(entries, decoded)
}

func TestSQLiteKVSuite(t *testing.T) {
	suite.Run(t, new(SQLiteKVSuite))
}
