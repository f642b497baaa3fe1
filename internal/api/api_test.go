package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/flashflow/flashflow/internal/api"
	"github.com/flashflow/flashflow/internal/clock"
	"github.com/flashflow/flashflow/internal/models"
	"github.com/flashflow/flashflow/internal/services"
	"github.com/flashflow/flashflow/internal/storage"
	"github.com/flashflow/flashflow/internal/store"
)

var testNow = time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)

type APISuite struct {
	suite.Suite
	server  *httptest.Server
	storeKV *storage.MemoryKV
}

func (s *APISuite) SetupTest() {
	s.storeKV = storage.NewMemoryKV()

	st, err := store.Open(context.Background(), s.storeKV, clock.Fixed{T: testNow})
	s.Require().NoError(err)

	srv := &api.Server{
		Cards:    services.NewCardService(st),
		Progress: services.NewProgressService(st, 7),
	}
	s.server = httptest.NewServer(srv.Routes())
}

func (s *APISuite) TearDownTest() {
	s.server.Close()
}

func (s *APISuite) request(method, path string, body any) *http.Response {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, s.server.URL+path, &buf)
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.server.Client().Do(req)
	s.Require().NoError(err)
	return resp
}

func (s *APISuite) decode(resp *http.Response, dst any) {
	defer resp.Body.Close()
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(dst))
}

func (s *APISuite) createCard(topic, question, answer string) models.Card {
	resp := s.request(http.MethodPost, "/api/cards", models.AddCardData{
		Topic: topic, Question: question, Answer: answer,
	})
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	var card models.Card
	s.decode(resp, &card)
	return card
}

func (s *APISuite) TestHealth() {
	resp := s.request(http.MethodGet, "/healthz", nil)
	s.Assert().Equal(http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func (s *APISuite) TestCardLifecycle() {
	card := s.createCard("Go", "What is a channel?", "A typed conduit for communication between goroutines.")
	s.Assert().NotEmpty(card.ID)
	s.Assert().Equal(2.5, card.EFactor)

	// Fetch it back
	resp := s.request(http.MethodGet, "/api/cards/"+card.ID, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var fetched models.Card
	s.decode(resp, &fetched)
	s.Assert().Equal(card.ID, fetched.ID)

	// Patch the topic
	resp = s.request(http.MethodPatch, "/api/cards/"+card.ID, map[string]string{"topic": "Golang"})
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var patched models.Card
	s.decode(resp, &patched)
	s.Assert().Equal("Golang", patched.Topic)
	s.Assert().Equal(card.Question, patched.Question)

	// Delete
	resp = s.request(http.MethodDelete, "/api/cards/"+card.ID, nil)
	s.Assert().Equal(http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = s.request(http.MethodGet, "/api/cards/"+card.ID, nil)
	s.Assert().Equal(http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func (s *APISuite) TestAddCardValidation() {
	resp := s.request(http.MethodPost, "/api/cards", models.AddCardData{Topic: "Go"})
	s.Require().Equal(http.StatusBadRequest, resp.StatusCode)

	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	s.decode(resp, &body)
	s.Assert().Equal("VALIDATION_ERROR", body.Error.Code)
}

func (s *APISuite) TestReviewFlow() {
	card := s.createCard("Go", "q", "a")

	resp := s.request(http.MethodPost, fmt.Sprintf("/api/cards/%s/review", card.ID), map[string]int{"quality": 4})
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var reviewed models.Card
	s.decode(resp, &reviewed)
	s.Assert().Equal(1, reviewed.Interval)
	s.Assert().Equal(1, reviewed.Repetition)

	// Ledger picked it up
	resp = s.request(http.MethodGet, "/api/progress", nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var progress struct {
		Entries []models.DailyProgress `json:"entries"`
	}
	s.decode(resp, &progress)
	s.Require().Len(progress.Entries, 1)
	s.Assert().Equal("2024-03-15", progress.Entries[0].Date)
	s.Assert().Equal(1, progress.Entries[0].ReviewedCount)
	s.Assert().Equal(1, progress.Entries[0].NewCount)
}

func (s *APISuite) TestReviewQualityOutOfRange() {
	card := s.createCard("Go", "q", "a")

	resp := s.request(http.MethodPost, fmt.Sprintf("/api/cards/%s/review", card.ID), map[string]int{"quality": 9})
	s.Require().Equal(http.StatusBadRequest, resp.StatusCode)

	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	s.decode(resp, &body)
	s.Assert().Equal("RANGE_ERROR", body.Error.Code)
}

func (s *APISuite) TestReviewMissingQuality() {
	card := s.createCard("Go", "q", "a")

	resp := s.request(http.MethodPost, fmt.Sprintf("/api/cards/%s/review", card.ID), map[string]string{})
	s.Assert().Equal(http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func (s *APISuite) TestDueCardsAndTopics() {
	s.createCard("CSS", "q1", "a1")
	s.createCard("JavaScript", "q2", "a2")

	resp := s.request(http.MethodGet, "/api/cards/due", nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var due struct {
		Cards []models.Card `json:"cards"`
		Total int           `json:"total"`
	}
	s.decode(resp, &due)
	s.Assert().Equal(2, due.Total, "new cards are due immediately")

	resp = s.request(http.MethodGet, "/api/topics", nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var topics struct {
		Topics []string `json:"topics"`
	}
	s.decode(resp, &topics)
	s.Assert().Equal([]string{"CSS", "JavaScript"}, topics.Topics)
}

func (s *APISuite) TestStatsEndpoints() {
	card := s.createCard("Go", "q", "a")
	resp := s.request(http.MethodPost, fmt.Sprintf("/api/cards/%s/review", card.ID), map[string]int{"quality": 5})
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = s.request(http.MethodGet, "/api/stats/summary", nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var summary models.SummaryStats
	s.decode(resp, &summary)
	s.Assert().Equal(1, summary.TotalCards)
	s.Assert().Equal(1, summary.TotalReviews)
	s.Assert().Equal(1, summary.Streak.Current)
	s.Assert().Equal(100, summary.OverallMastery, "q=5 raises ease to 2.6, clamped to 100%")

	resp = s.request(http.MethodGet, "/api/stats/distribution", nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var dist struct {
		Buckets []models.DistributionBucket `json:"buckets"`
	}
	s.decode(resp, &dist)
	s.Require().Len(dist.Buckets, 3)
	s.Assert().Equal(1, dist.Buckets[2].Value, "card sits in the Known Well bucket")

	resp = s.request(http.MethodGet, "/api/stats/activity?days=2", nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var activity struct {
		Activity []models.ActivityPoint `json:"activity"`
	}
	s.decode(resp, &activity)
	s.Require().Len(activity.Activity, 2)
	s.Assert().Equal(1, activity.Activity[1].Reviewed)
}

func (s *APISuite) TestReset() {
	s.createCard("Go", "q", "a")

	resp := s.request(http.MethodPost, "/api/reset", nil)
	s.Assert().Equal(http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = s.request(http.MethodGet, "/api/cards", nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var list struct {
		Total int `json:"total"`
	}
	s.decode(resp, &list)
	s.Assert().Zero(list.Total)
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APISuite))
}
