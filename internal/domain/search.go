package domain

// SearchPageSize is how many tire listings fit on one reply page. It is
// bounded by the chat platform's carousel limit, leaving room for a
// trailing next-page card.
const SearchPageSize = 9

// TireListing is one search hit: a tire joined with its owning store's
// name and its stock lots in display order.
type TireListing struct {
	Tire      Tire      `json:"tire"`
	StoreName string    `json:"store_name"`
	Dots      []TireDot `json:"dots"`
}

// SearchResult is one page of listings. HasMore signals that at least
// one more page exists for the same keyword.
type SearchResult struct {
	Keyword  string        `json:"keyword"`
	Page     int           `json:"page"`
	Listings []TireListing `json:"listings"`
	HasMore  bool          `json:"has_more"`
}

// AdjustmentPreview is the live quantity snapshot shown on a
// confirmation card before a stock change is committed.
type AdjustmentPreview struct {
	DotID    string `json:"dot_id"`
	Before   int    `json:"before"`
	After    int    `json:"after"`
	Change   int    `json:"change"`
}

// StockAdjustment is the committed result of a stock mutation.
type StockAdjustment struct {
	DotID  string `json:"dot_id"`
	Before int    `json:"before"`
	After  int    `json:"after"`
	Change int    `json:"change"`
}

// ClampQuantity applies the non-negative floor: removing more stock
// than available bottoms out at zero instead of failing.
func ClampQuantity(current, delta int) int {
	next := current + delta
	if next < 0 {
		return 0
	}
	return next
}
