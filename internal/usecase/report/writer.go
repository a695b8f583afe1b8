package report

import (
	"context"
	"fmt"
	"io"

	orderbookv1 "github.com/muhammadchandra19/session-matcher/internal/domain/orderbook/v1"
	"github.com/muhammadchandra19/session-matcher/pkg/errors"
	"github.com/muhammadchandra19/session-matcher/pkg/logger"
)

// Writer is the sink that produces the session report: one purchased and one
// sold line per trade, and one unexecuted line per residual, with prices
// fixed to two decimals.
type Writer struct {
	w      io.Writer
	logger logger.Interface
}

// NewWriter creates a report writer over the given output stream.
func NewWriter(w io.Writer, log logger.Interface) *Writer {
	return &Writer{
		w:      w,
		logger: log,
	}
}

// Trade writes the buy leg followed by the sell leg.
func (w *Writer) Trade(ctx context.Context, trade *orderbookv1.Trade) error {
	price := trade.Price.StringFixed(2)
	if _, err := fmt.Fprintf(w.w, "order %s %d shares purchased at price %s\n",
		trade.BuyOrderID, trade.Quantity, price); err != nil {
		return errors.NewTracer(errors.SinkWriteError.String()).Wrap(err)
	}
	if _, err := fmt.Fprintf(w.w, "order %s %d shares sold at price %s\n",
		trade.SellOrderID, trade.Quantity, price); err != nil {
		return errors.NewTracer(errors.SinkWriteError.String()).Wrap(err)
	}
	return nil
}

// Unexecuted writes one residual line.
func (w *Writer) Unexecuted(ctx context.Context, residual *orderbookv1.Residual) error {
	if _, err := fmt.Fprintf(w.w, "order %s %d shares unexecuted\n",
		residual.OrderID, residual.Quantity); err != nil {
		return errors.NewTracer(errors.SinkWriteError.String()).Wrap(err)
	}
	return nil
}
