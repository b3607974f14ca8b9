package main

import (
	"context"
	"flag"
	"math/rand"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"skoll/internal/common"
	"skoll/internal/engine"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// tally counts trades as the engine reports them, optionally logging each
// one. ReportTrade only ever runs on the matching goroutine, so the count
// needs no locking; read it after Stop.
type tally struct {
	trades  int
	verbose bool
}

func (t *tally) ReportTrade(trade common.Trade) error {
	t.trades++
	if t.verbose {
		log.Info().
			Str("bid", trade.BidID).
			Str("ask", trade.AskID).
			Uint64("qty", trade.Quantity).
			Float64("price", trade.Price).
			Msg("trade")
	}
	return nil
}

func main() {
	producers := flag.Int("producers", 4, "number of order producer goroutines")
	orders := flag.Int("orders", 10000, "orders submitted per producer")
	verbose := flag.Bool("verbose", false, "log every trade")
	flag.Parse()

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
	)
	defer stop()

	// Setup the matching engine and its single consumer goroutine.
	eng := engine.New()
	reporter := &tally{verbose: *verbose}
	eng.SetReporter(reporter)
	eng.Run(ctx)

	log.Info().
		Int("producers", *producers).
		Int("orders", *orders).
		Msg("feeding engine")

	// Fan random limit orders in from the producer side of the queue.
	var wg sync.WaitGroup
	for p := 0; p < *producers; p++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))

			for i := 0; i < *orders; i++ {
				side := common.Buy
				if rng.Intn(2) == 1 {
					side = common.Sell
				}
				order := common.Order{
					ID:         uuid.New().String(),
					Side:       side,
					LimitPrice: 100 + float64(rng.Intn(10)),
					Quantity:   uint64(rng.Intn(50) + 1),
				}
				if err := eng.Submit(order); err != nil {
					// The engine is shutting down underneath us.
					return
				}
			}
		}(time.Now().UnixNano() + int64(p))
	}

	wg.Wait()
	if err := eng.Stop(); err != nil && ctx.Err() == nil {
		log.Error().Err(err).Msg("engine stopped with error")
	}

	// Final top-of-book and session totals.
	book := eng.Book()
	if bid, ok := book.BestBid(); ok {
		log.Info().
			Float64("price", bid.Price).
			Uint64("qty", bid.TotalQty).
			Int("orders", bid.OrderCount).
			Msg("best bid")
	}
	if ask, ok := book.BestAsk(); ok {
		log.Info().
			Float64("price", ask.Price).
			Uint64("qty", ask.TotalQty).
			Int("orders", ask.OrderCount).
			Msg("best ask")
	}
	log.Info().Int("trades", reporter.trades).Msg("session complete")
}
