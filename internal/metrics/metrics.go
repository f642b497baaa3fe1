// Package metrics derives mastery, distribution and streak figures
// from read-only snapshots of the card collection and the progress
// ledger. Collections are small (a few thousand cards at most), so
// everything is a plain scan with no caching.
package metrics

import (
	"math"
	"sort"
	"time"

	"github.com/flashflow/flashflow/internal/clock"
	"github.com/flashflow/flashflow/internal/models"
)

// Distribution bucket boundaries on the easiness factor.
const (
	difficultBelow = 1.8
	knownWellFrom  = 2.5
)

// masteryPct maps the easiness factor's working range [1.3, 2.5] onto
// [0, 100], clamped at both ends.
func masteryPct(efactor float64) float64 {
	ef := math.Max(efactor, 1.3)
	pct := ((ef - 1.3) / (2.5 - 1.3)) * 100
	return math.Max(0, math.Min(100, pct))
}

// OverallMastery is the rounded mean mastery percentage across all
// cards, or 0 for an empty collection.
func OverallMastery(cards []models.Card) int {
	return meanMastery(cards, func(models.Card) bool { return true })
}

// TopicMastery restricts the mastery mean to cards of one topic.
func TopicMastery(cards []models.Card, topic string) int {
	return meanMastery(cards, func(c models.Card) bool { return c.Topic == topic })
}

func meanMastery(cards []models.Card, match func(models.Card) bool) int {
	var sum float64
	var n int
	for _, c := range cards {
		if match(c) {
			sum += masteryPct(c.EFactor)
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return int(math.Round(sum / float64(n)))
}

// Distribution partitions the collection into three easiness buckets.
// The labels are always present, even when every count is zero.
func Distribution(cards []models.Card) []models.DistributionBucket {
	var difficult, learning, knownWell int
	for _, c := range cards {
		switch {
		case c.EFactor < difficultBelow:
			difficult++
		case c.EFactor < knownWellFrom:
			learning++
		default:
			knownWell++
		}
	}
	return []models.DistributionBucket{
		{Name: "Difficult", Value: difficult},
		{Name: "Learning", Value: learning},
		{Name: "Known Well", Value: knownWell},
	}
}

// TopicProgress lists every topic with its mastery and card count,
// sorted by mastery descending, then card count descending.
func TopicProgress(cards []models.Card) []models.TopicProgress {
	counts := make(map[string]int)
	var order []string
	for _, c := range cards {
		if counts[c.Topic] == 0 {
			order = append(order, c.Topic)
		}
		counts[c.Topic]++
	}

	out := make([]models.TopicProgress, 0, len(order))
	for _, topic := range order {
		out = append(out, models.TopicProgress{
			Name:    topic,
			Mastery: TopicMastery(cards, topic),
			Cards:   counts[topic],
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Mastery != out[j].Mastery {
			return out[i].Mastery > out[j].Mastery
		}
		return out[i].Cards > out[j].Cards
	})
	return out
}

// Streaks scans the ledger for consecutive-day runs. A gap of exactly
// one calendar day continues a run; anything larger breaks it. The
// current streak only counts if the most recent entry is today or
// yesterday relative to now.
func Streaks(entries []models.DailyProgress, now time.Time) models.StreakStats {
	if len(entries) == 0 {
		return models.StreakStats{}
	}

	dates := ledgerDates(entries)
	if len(dates) == 0 {
		return models.StreakStats{}
	}

	longest, run := 0, 1
	for i := 1; i < len(dates); i++ {
		if daysBetween(dates[i-1], dates[i]) == 1 {
			run++
		} else {
			if run > longest {
				longest = run
			}
			run = 1
		}
	}
	if run > longest {
		longest = run
	}

	// Parse today through the same date-key format as the ledger so the
	// comparison is location-free.
	today, _ := time.Parse("2006-01-02", clock.DateKey(now))
	current := run
	if daysBetween(dates[len(dates)-1], today) > 1 {
		current = 0
	}
	return models.StreakStats{Current: current, Longest: longest}
}

// TotalReviews sums the ledger's review counts.
func TotalReviews(entries []models.DailyProgress) int {
	total := 0
	for _, e := range entries {
		total += e.ReviewedCount
	}
	return total
}

// AvgReviewsPerDay is the mean review count over days that had
// activity, rounded to one decimal place.
func AvgReviewsPerDay(entries []models.DailyProgress) float64 {
	if len(entries) == 0 {
		return 0
	}
	avg := float64(TotalReviews(entries)) / float64(len(entries))
	return math.Round(avg*10) / 10
}

// Activity builds the last-days series ending today, zero-filling days
// without a ledger entry. Oldest day first.
func Activity(entries []models.DailyProgress, now time.Time, days int) []models.ActivityPoint {
	byDate := make(map[string]models.DailyProgress, len(entries))
	for _, e := range entries {
		byDate[e.Date] = e
	}

	today := clock.StartOfDay(now)
	out := make([]models.ActivityPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		key := clock.DateKey(today.AddDate(0, 0, -i))
		point := models.ActivityPoint{Date: key}
		if e, ok := byDate[key]; ok {
			point.Reviewed = e.ReviewedCount
			point.New = e.NewCount
		}
		out = append(out, point)
	}
	return out
}

// ledgerDates parses and sorts the entry dates ascending. Entries with
// malformed dates are skipped.
func ledgerDates(entries []models.DailyProgress) []time.Time {
	dates := make([]time.Time, 0, len(entries))
	for _, e := range entries {
		t, err := time.Parse("2006-01-02", e.Date)
		if err != nil {
			continue
		}
		dates = append(dates, t)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
