package book_test

import (
	"strconv"
	"testing"

	"skoll/internal/book"
	"skoll/internal/common"
)

// The engine's hot paths: resting inserts, crossing sweeps, cancels and
// replaces over a pre-seeded book.

func BenchmarkAddOrderRest(b *testing.B) {
	ob := book.New()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ob.AddOrder(common.Order{
			ID:         strconv.Itoa(i),
			Side:       common.Buy,
			LimitPrice: 100.0,
			Quantity:   1,
		})
	}
}

func BenchmarkAddOrderCross(b *testing.B) {
	ob := book.New()
	for i := 0; i < b.N; i++ {
		ob.AddOrder(common.Order{
			ID:         "s" + strconv.Itoa(i),
			Side:       common.Sell,
			LimitPrice: 100.0 + float64(i%10),
			Quantity:   1,
		})
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ob.AddOrder(common.Order{
			ID:         "b" + strconv.Itoa(i),
			Side:       common.Buy,
			LimitPrice: 100.0 + float64(i%10),
			Quantity:   1,
		})
	}
}

func BenchmarkCancelOrder(b *testing.B) {
	ob := book.New()
	for i := 0; i < b.N; i++ {
		ob.AddOrder(common.Order{
			ID:         strconv.Itoa(i),
			Side:       common.Buy,
			LimitPrice: 100.0,
			Quantity:   1,
		})
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ob.CancelOrder(strconv.Itoa(i))
	}
}

func BenchmarkReplaceOrder(b *testing.B) {
	ob := book.New()
	for i := 0; i < b.N; i++ {
		ob.AddOrder(common.Order{
			ID:         strconv.Itoa(i),
			Side:       common.Buy,
			LimitPrice: 100.0,
			Quantity:   1,
		})
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ob.ReplaceOrder(strconv.Itoa(i), 2)
	}
}
