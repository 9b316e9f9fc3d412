package domain

// Summary is the aggregate view over a filtered set of entries.
type Summary struct {
	Count       int     `json:"count"`
	TotalDiesel float64 `json:"totalDiesel"`
	TotalAmount float64 `json:"totalAmount"`
}

// Summarize reduces a set of entries to a count and two sums.
// It is a pure, order-independent reduction; an empty input yields the zero
// Summary. Entries are assumed to already be filtered and owner-scoped.
func Summarize(entries []Entry) Summary {
	s := Summary{Count: len(entries)}
	for _, e := range entries {
		s.TotalDiesel += e.DieselLiters
		s.TotalAmount += e.AmountPaid
	}
	return s
}
