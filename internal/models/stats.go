package models

// DistributionBucket is one slice of the knowledge-distribution pie.
type DistributionBucket struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// TopicProgress summarizes one topic for the progress page.
type TopicProgress struct {
	Name    string `json:"name"`
	Mastery int    `json:"mastery"`
	Cards   int    `json:"cards"`
}

// ActivityPoint is one day of the review-activity series.
type ActivityPoint struct {
	Date     string `json:"date"`
	Reviewed int    `json:"reviewed"`
	New      int    `json:"new"`
}

// StreakStats holds the consecutive-day review streaks derived from
// the progress ledger.
type StreakStats struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}

// SummaryStats is the dashboard snapshot.
type SummaryStats struct {
	TotalCards       int         `json:"totalCards"`
	DueToday         int         `json:"dueToday"`
	OverallMastery   int         `json:"overallMastery"`
	TotalReviews     int         `json:"totalReviews"`
	Streak           StreakStats `json:"streak"`
	AvgReviewsPerDay float64     `json:"avgReviewsPerDay"`
}
