// Package engine wraps the matching core in a single-writer command loop.
// Producers on any goroutine enqueue place/cancel/replace commands; exactly
// one consumer goroutine pops them and drives the book, so the unsynchronized
// core only ever sees sequential calls.
package engine

import (
	"context"

	"skoll/internal/book"
	"skoll/internal/common"
	"skoll/internal/queue"

	"github.com/rs/zerolog/log"
	tomb "gopkg.in/tomb.v2"
)

type commandKind int

const (
	placeOrder commandKind = iota
	cancelOrder
	replaceOrder
)

// command is the unit carried across the handoff queue. Every book
// mutation travels through here, cancels and replaces included, which is
// what keeps ordering between a producer's own submissions and its
// follow-up cancels.
type command struct {
	kind   commandKind
	order  common.Order
	id     string
	newQty uint64
}

// Reporter receives each trade as it executes, on the matching goroutine.
type Reporter interface {
	ReportTrade(trade common.Trade) error
}

// LogReporter logs every trade through zerolog.
type LogReporter struct{}

func (LogReporter) ReportTrade(trade common.Trade) error {
	log.Info().
		Str("bid", trade.BidID).
		Str("ask", trade.AskID).
		Uint64("qty", trade.Quantity).
		Float64("price", trade.Price).
		Msg("trade")
	return nil
}

type Engine struct {
	book     *book.OrderBook
	commands *queue.Queue[command]
	reporter Reporter
	t        *tomb.Tomb
}

func New() *Engine {
	return &Engine{
		book:     book.New(),
		commands: queue.New[command](),
	}
}

// SetReporter installs the trade sink. Must be called before Run. With a
// reporter installed the engine drains the book's trade log after every
// placement; without one, trades accumulate and remain readable through
// Book().Trades().
func (e *Engine) SetReporter(r Reporter) {
	e.reporter = r
}

// Run starts the matching goroutine. The engine stops when ctx is
// cancelled or Stop is called, in both cases finishing the commands
// already queued.
func (e *Engine) Run(ctx context.Context) {
	e.t, _ = tomb.WithContext(ctx)

	e.t.Go(e.consume)
	// Relay tomb death into the queue so a context cancellation unblocks
	// the consumer.
	e.t.Go(func() error {
		<-e.t.Dying()
		e.commands.Shutdown()
		return nil
	})
}

// Submit enqueues a new order for matching. Fails with queue.ErrShutdown
// once the engine is stopping.
func (e *Engine) Submit(order common.Order) error {
	return e.commands.Push(command{kind: placeOrder, order: order})
}

// Cancel enqueues a cancellation. Unknown ids are silently ignored by the
// book, so a Cancel racing a fill is harmless.
func (e *Engine) Cancel(id string) error {
	return e.commands.Push(command{kind: cancelOrder, id: id})
}

// Replace enqueues an in-place quantity change for a resting order.
func (e *Engine) Replace(id string, newQty uint64) error {
	return e.commands.Push(command{kind: replaceOrder, id: id, newQty: newQty})
}

// Stop closes the queue and waits for the matching goroutine to drain it.
func (e *Engine) Stop() error {
	e.commands.Shutdown()
	return e.t.Wait()
}

// Book exposes the matching core for top-of-book queries and the trade
// log. The book is not synchronized: inspect it only before Run or after
// Stop has returned.
func (e *Engine) Book() *book.OrderBook {
	return e.book
}

func (e *Engine) consume() error {
	// A clean drain must kill the tomb ourselves, otherwise the dying
	// relay above keeps it alive forever.
	defer e.t.Kill(nil)

	for {
		cmd, ok := e.commands.Pop()
		if !ok {
			log.Info().Msg("command queue drained, matching loop exiting")
			return nil
		}

		switch cmd.kind {
		case placeOrder:
			e.book.AddOrder(cmd.order)
			e.reportTrades()
		case cancelOrder:
			e.book.CancelOrder(cmd.id)
		case replaceOrder:
			e.book.ReplaceOrder(cmd.id, cmd.newQty)
		}
	}
}

func (e *Engine) reportTrades() {
	if e.reporter == nil {
		return
	}
	for _, trade := range e.book.TakeTrades() {
		if err := e.reporter.ReportTrade(trade); err != nil {
			log.Error().
				Err(err).
				Str("bid", trade.BidID).
				Str("ask", trade.AskID).
				Msg("failed reporting trade")
		}
	}
}
