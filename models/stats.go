package models

import "time"

// UserStats represents per-user aggregate statistics, recomputed from
// challenge snapshots on every read.
type UserStats struct {
	TotalChallenges     int   `json:"totalChallenges"`
	ActiveChallenges    int   `json:"activeChallenges"`
	CompletedChallenges int   `json:"completedChallenges"`
	TotalPenalties      int64 `json:"totalPenalties"` // sum of live totals, settled amounts excluded
}

// DailyPenalty is one bucket of the weekly breakdown
type DailyPenalty struct {
	Date   time.Time `json:"date"`
	Count  int       `json:"count"`
	Amount int64     `json:"amount"`
}

// WeeklyStats covers the trailing 7-day window, today inclusive.
// DailyBreakdown is chronologically ordered; dates without penalties are
// omitted rather than zero-filled.
type WeeklyStats struct {
	WeeklyCount        int            `json:"weeklyCount"`
	WeeklyTotalPenalty int64          `json:"weeklyTotalPenalty"`
	DailyBreakdown     []DailyPenalty `json:"dailyBreakdown"`
}
