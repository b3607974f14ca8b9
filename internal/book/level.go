package book

import (
	"container/list"

	"skoll/internal/common"
)

// PriceLevel holds every resting order sharing one price on one side,
// oldest first. The list is the sole owner of the order values; the order
// index only holds element handles into it. A level never exists with an
// empty list: it is created lazily on the first resting order and deleted
// from its side once the last order leaves.
type PriceLevel struct {
	price float64

	// Orders sat on the price level, sorted by time added as they are
	// push-back'd. Element values are *common.Order.
	orders *list.List

	// Aggregates, kept exactly in sync with the list contents.
	totalQty   uint64
	orderCount int
}

func newPriceLevel(price float64) *PriceLevel {
	return &PriceLevel{
		price:  price,
		orders: list.New(),
	}
}

// front returns the oldest resting order and its list handle.
func (lvl *PriceLevel) front() (*list.Element, *common.Order) {
	elem := lvl.orders.Front()
	return elem, elem.Value.(*common.Order)
}

// FlatPriceLevel is a comparable snapshot of a PriceLevel, used by tests to
// assert on whole-book state.
type FlatPriceLevel struct {
	PriceLevel float64
	TotalQty   uint64
	OrderCount int
	Orders     []common.Order
}

// FlattenLevels converts level pointers (e.g. from Bids.Items()) into flat
// snapshots, preserving side ordering and FIFO order within each level.
func FlattenLevels(levels []*PriceLevel) []FlatPriceLevel {
	flat := make([]FlatPriceLevel, 0, len(levels))
	for _, lvl := range levels {
		fl := FlatPriceLevel{
			PriceLevel: lvl.price,
			TotalQty:   lvl.totalQty,
			OrderCount: lvl.orderCount,
		}
		for elem := lvl.orders.Front(); elem != nil; elem = elem.Next() {
			fl.Orders = append(fl.Orders, *elem.Value.(*common.Order))
		}
		flat = append(flat, fl)
	}
	return flat
}
