package models

import "github.com/shopspring/decimal"

// Transaction is one normalized statement row.
//
// Date is canonical ISO form (YYYY-MM-DD) and is required; rows without a
// parseable date never survive validation. Debit and Credit hold magnitudes
// (direction is encoded by which field is set, never by sign). Balance is the
// running account balance and may be negative. A nil amount means the field
// was absent or could not be coerced to a number.
type Transaction struct {
	Date        string           `json:"date"`
	Description string           `json:"description"`
	Debit       *decimal.Decimal `json:"debit"`
	Credit      *decimal.Decimal `json:"credit"`
	Balance     *decimal.Decimal `json:"balance"`
}

// ParseReport records which extraction strategy produced the final result
// and how many raw candidates each strategy found. Callers use it to tell a
// thin result apart from a total failure.
type ParseReport struct {
	Strategy       string         `json:"strategy"`
	StrategyCounts map[string]int `json:"strategyCounts"`
	Total          int            `json:"total"`
}
