package scheduler

import (
	"math"
	"time"

	"github.com/flashflow/flashflow/internal/clock"
	"github.com/flashflow/flashflow/internal/models"
)

const (
	// MinEFactor is the SM-2 lower bound on the easiness factor.
	MinEFactor = 1.3
	// InitialEFactor is the easiness factor assigned to new cards.
	InitialEFactor = 2.5
)

// Apply runs one SM-2 review step and returns the updated card.
// quality is the 0-5 recall score (0 = blackout, 5 = perfect); callers
// validate the range before getting here. now supplies "today" so the
// result is deterministic under test.
//
// A failed recall (quality < 3) resets the repetition streak and
// schedules the card for tomorrow. A pass walks the 1/6/round(i*ef)
// interval ladder. The easiness factor moves on every review, pass or
// fail, and never drops below MinEFactor.
func Apply(card models.Card, quality int, now time.Time) models.Card {
	if quality < 3 {
		card.Repetition = 0
		card.Interval = 1
	} else {
		switch card.Repetition {
		case 0:
			card.Interval = 1
		case 1:
			card.Interval = 6
		default:
			card.Interval = int(math.Round(float64(card.Interval) * card.EFactor))
		}
		card.Repetition++
	}

	q := float64(quality)
	ef := card.EFactor + (0.1 - (5-q)*(0.08+(5-q)*0.02))
	if ef < MinEFactor {
		ef = MinEFactor
	}
	card.EFactor = ef

	reviewed := now
	card.DueDate = clock.StartOfDay(now).AddDate(0, 0, card.Interval)
	card.LastReviewed = &reviewed
	return card
}

// InitState stamps the scheduling fields of a freshly created card:
// zero interval and repetition, the default easiness factor, and a due
// date of today so the card shows up in the next review session.
func InitState(card models.Card, now time.Time) models.Card {
	card.Interval = 0
	card.Repetition = 0
	card.EFactor = InitialEFactor
	card.DueDate = clock.StartOfDay(now)
	card.LastReviewed = nil
	card.CreatedAt = now
	return card
}
