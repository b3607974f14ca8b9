package common

import "fmt"

type Side int

const (
	Buy Side = iota
	Sell
)

func (s Side) String() string {
	switch s {
	case Buy:
		return "buy"
	case Sell:
		return "sell"
	}
	return "unknown"
}

// NOTE: might want to compare LimitPrice with `Float` from `math/big`: more
// precise but slower.
type Order struct {
	ID         string  // Order tracked id, unique for the order's lifetime
	Side       Side    // Order side
	LimitPrice float64 // Limiting price
	Quantity   uint64  // Remaining quantity
}

func (order Order) String() string {
	return fmt.Sprintf("%s %s %d @ %.2f",
		order.ID,
		order.Side,
		order.Quantity,
		order.LimitPrice,
	)
}
