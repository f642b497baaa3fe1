package models

// DailyProgress is one ledger entry per calendar day that had at least
// one review. Date is formatted as YYYY-MM-DD and is unique within the
// ledger. NewCount counts cards passed for the first time that day and
// never exceeds ReviewedCount.
type DailyProgress struct {
	Date          string `json:"date"`
	ReviewedCount int    `json:"reviewedCount"`
	NewCount      int    `json:"newCount"`
}
