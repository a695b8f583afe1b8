package tradesinkv1

import (
	"context"

	orderbookv1 "github.com/muhammadchandra19/session-matcher/internal/domain/orderbook/v1"
)

// Sink defines the interface for consuming trade and residual records
// produced by the matching engine. The engine never writes to a stream
// directly; everything goes through a Sink.
type Sink interface {
	// Trade receives one executed trade.
	Trade(ctx context.Context, trade *orderbookv1.Trade) error
	// Unexecuted receives one residual record at session end.
	Unexecuted(ctx context.Context, residual *orderbookv1.Residual) error
}
