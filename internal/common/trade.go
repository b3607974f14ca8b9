package common

import "fmt"

// Trade records a single execution between the two sides. The price is
// always the resting (maker) order's price.
type Trade struct {
	BidID    string  // Buy-side order id
	AskID    string  // Sell-side order id
	Price    float64 // Execution price
	Quantity uint64  // Executed quantity
}

func (t Trade) String() string {
	return fmt.Sprintf("bid %s x ask %s: %d @ %.2f",
		t.BidID,
		t.AskID,
		t.Quantity,
		t.Price,
	)
}
