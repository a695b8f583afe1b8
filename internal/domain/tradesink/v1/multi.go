package tradesinkv1

import (
	"context"

	orderbookv1 "github.com/muhammadchandra19/session-matcher/internal/domain/orderbook/v1"
)

// Multi fans records out to several sinks in order. The first failure stops
// the fan-out and is returned to the engine.
type Multi []Sink

// Trade sends the trade to every sink.
func (m Multi) Trade(ctx context.Context, trade *orderbookv1.Trade) error {
	for _, sink := range m {
		if err := sink.Trade(ctx, trade); err != nil {
			return err
		}
	}
	return nil
}

// Unexecuted sends the residual to every sink.
func (m Multi) Unexecuted(ctx context.Context, residual *orderbookv1.Residual) error {
	for _, sink := range m {
		if err := sink.Unexecuted(ctx, residual); err != nil {
			return err
		}
	}
	return nil
}
