package orderreaderv1

import (
	"context"

	orderbookv1 "github.com/muhammadchandra19/session-matcher/internal/domain/orderbook/v1"
	"github.com/shopspring/decimal"
)

// OrderReader defines the interface for reading a session's order stream.
type OrderReader interface {
	// Seed reads the leading session value that supplies the initial
	// last-traded price. Must be called once, before Next.
	Seed() (decimal.Decimal, error)
	// Next reads and parses the next order. Returns io.EOF when the
	// stream is exhausted.
	Next(ctx context.Context) (*orderbookv1.PlaceOrderRequest, error)
	// Close closes the underlying stream.
	Close() error
}
