package entity

// Transaction is one normalized statement line as returned to the caller.
// Debits carry negative amounts, credits positive. There is no identity
// beyond position in the response list; nothing is persisted.
type Transaction struct {
	Date        string  `json:"date"` // YYYY-MM-DD
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
}
