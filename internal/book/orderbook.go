package book

import (
	"container/list"

	"skoll/internal/common"

	"github.com/tidwall/btree"
)

// indexEntry locates a live resting order without owning it. The element
// handle stays valid across unrelated insertions and removals in the same
// or other levels, and is invalidated only when this specific order is
// removed.
type indexEntry struct {
	side  common.Side
	price float64
	elem  *list.Element
}

type PriceLevels = btree.BTreeG[*PriceLevel]

// OrderBook is the single-instrument matching core: two price-sorted level
// collections, an id index for O(1) cancel/replace, and an append-only
// trade log.
//
// The book is not internally synchronized. All mutating calls must come
// from a single goroutine; feed it through queue.Queue when producers live
// elsewhere.
type OrderBook struct {
	// Price levels to orders sat on the price level. Min() of either side
	// is the best level, per the side's comparator.
	Bids *PriceLevels
	Asks *PriceLevels

	// id -> position of the live resting order with that id.
	index map[string]indexEntry

	// Executions so far, in match order.
	trades []common.Trade
}

func New() *OrderBook {
	// Sorted greatest first.
	bids := btree.NewBTreeG(func(a, b *PriceLevel) bool {
		return a.price > b.price
	})
	// Sorted least first.
	asks := btree.NewBTreeG(func(a, b *PriceLevel) bool {
		return a.price < b.price
	})
	return &OrderBook{
		Bids:  bids,
		Asks:  asks,
		index: make(map[string]indexEntry),
	}
}

// AddOrder matches the incoming order against the opposite side in
// price-time priority, then rests any remainder on its own side.
//
// Matching consumes the best opposite level front-to-back (strict FIFO
// within a price) while the incoming limit crosses it. Each match trades
// the minimum of the two remaining quantities at the resting order's
// price. Fully filled resting orders leave the index and their level;
// emptied levels leave the book. Whatever quantity survives the sweep is
// appended to the back of its price level, which is what establishes its
// time priority.
//
// No validation is performed: zero quantities and reused ids are accepted
// and their effects follow directly from the algorithm. Callers must
// guarantee id uniqueness among live orders.
func (book *OrderBook) AddOrder(order common.Order) {
	incoming := order

	opp := book.Asks
	if incoming.Side == common.Sell {
		opp = book.Bids
	}

	for incoming.Quantity > 0 {
		best, ok := opp.MinMut()
		if !ok {
			break
		}
		// Every later level is worse than the best, so a non-cross here
		// ends the sweep.
		if !crosses(incoming, best.price) {
			break
		}

		elem, resting := best.front()
		matchQty := min(incoming.Quantity, resting.Quantity)

		book.recordTrade(&incoming, resting, best.price, matchQty)

		incoming.Quantity -= matchQty
		resting.Quantity -= matchQty
		best.totalQty -= matchQty

		if resting.Quantity == 0 {
			delete(book.index, resting.ID)
			best.orders.Remove(elem)
			best.orderCount--
		}
		if best.orders.Len() == 0 {
			opp.Delete(best)
		}
	}

	if incoming.Quantity == 0 {
		return
	}
	book.rest(incoming)
}

// rest appends the remainder to the back of its level, creating the level
// if this is the first order at that price, and records its position in
// the index.
func (book *OrderBook) rest(order common.Order) {
	side := book.Bids
	if order.Side == common.Sell {
		side = book.Asks
	}

	// The comparators only look at price, so a key-only level works for
	// the search.
	lvl, ok := side.GetMut(&PriceLevel{price: order.LimitPrice})
	if !ok {
		lvl = newPriceLevel(order.LimitPrice)
		side.Set(lvl)
	}

	resting := order
	elem := lvl.orders.PushBack(&resting)
	lvl.totalQty += resting.Quantity
	lvl.orderCount++
	book.index[resting.ID] = indexEntry{
		side:  resting.Side,
		price: resting.LimitPrice,
		elem:  elem,
	}
}

// CancelOrder removes the order with the given id from the book. Unknown
// ids are a silent no-op: an already filled, already cancelled, and never
// submitted id all look the same to the caller.
func (book *OrderBook) CancelOrder(id string) {
	entry, ok := book.index[id]
	if !ok {
		return
	}

	side := book.Bids
	if entry.side == common.Sell {
		side = book.Asks
	}
	lvl, ok := side.GetMut(&PriceLevel{price: entry.price})
	if !ok {
		// Unreachable while the index matches the level stores.
		return
	}

	resting := entry.elem.Value.(*common.Order)
	lvl.totalQty -= resting.Quantity
	lvl.orderCount--
	lvl.orders.Remove(entry.elem)
	if lvl.orders.Len() == 0 {
		side.Delete(lvl)
	}
	delete(book.index, id)
}

// ReplaceOrder sets the remaining quantity of the order with the given id,
// adjusting the level aggregate by the difference. Unknown ids are a
// silent no-op.
//
// The order keeps its position in the level's FIFO even when the quantity
// increases. Real venues usually requeue on increase; this engine
// deliberately does not.
func (book *OrderBook) ReplaceOrder(id string, newQty uint64) {
	entry, ok := book.index[id]
	if !ok {
		return
	}

	side := book.Bids
	if entry.side == common.Sell {
		side = book.Asks
	}
	lvl, ok := side.GetMut(&PriceLevel{price: entry.price})
	if !ok {
		return
	}

	resting := entry.elem.Value.(*common.Order)
	lvl.totalQty = lvl.totalQty - resting.Quantity + newQty
	resting.Quantity = newQty
}

// recordTrade appends one execution, assigning bid and ask ids by which of
// the two parties is the buy order. The price passed in is the resting
// order's: takers never improve on their own limit.
func (book *OrderBook) recordTrade(taker, maker *common.Order, price float64, qty uint64) {
	trade := common.Trade{Price: price, Quantity: qty}
	if taker.Side == common.Buy {
		trade.BidID, trade.AskID = taker.ID, maker.ID
	} else {
		trade.BidID, trade.AskID = maker.ID, taker.ID
	}
	book.trades = append(book.trades, trade)
}

// crosses reports whether the incoming limit reaches the resting price.
func crosses(incoming common.Order, restingPrice float64) bool {
	if incoming.Side == common.Buy {
		return incoming.LimitPrice >= restingPrice
	}
	return incoming.LimitPrice <= restingPrice
}

// Trades returns the full trade history so far. The slice is shared with
// the book: treat it as read-only.
func (book *OrderBook) Trades() []common.Trade {
	return book.trades
}

// TakeTrades drains the trade log, returning everything recorded since the
// last drain. Long-running consumers should prefer this over Trades so the
// log does not grow without bound.
func (book *OrderBook) TakeTrades() []common.Trade {
	taken := book.trades
	book.trades = nil
	return taken
}
