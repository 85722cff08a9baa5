package models

import "time"

type Expense struct {
	ID          int       `json:"id"`
	UserID      int       `json:"user_id"`
	Category    string    `json:"category"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description,omitempty"`
	Date        time.Time `json:"date"`
}

// MonthlyTotal is one row of the monthly spending report: the month label
// ("YYYY-MM") and the summed amount for that month.
type MonthlyTotal struct {
	Month      string  `json:"month"`
	TotalSpent float64 `json:"total_spent"`
}
