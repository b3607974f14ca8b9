package book

// Quote is the aggregate state of one side's best price level.
type Quote struct {
	Price      float64
	TotalQty   uint64
	OrderCount int
}

// BestBid reports the highest bid level, or ok=false when the bid side is
// empty. Pure query, safe to interleave with mutations on the same
// goroutine.
func (book *OrderBook) BestBid() (Quote, bool) {
	return bestOf(book.Bids)
}

// BestAsk reports the lowest ask level, or ok=false when the ask side is
// empty.
func (book *OrderBook) BestAsk() (Quote, bool) {
	return bestOf(book.Asks)
}

func bestOf(levels *PriceLevels) (Quote, bool) {
	lvl, ok := levels.Min()
	if !ok {
		return Quote{}, false
	}
	return Quote{
		Price:      lvl.price,
		TotalQty:   lvl.totalQty,
		OrderCount: lvl.orderCount,
	}, true
}
