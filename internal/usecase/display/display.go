package display

import (
	"fmt"
	"io"

	orderbookv1 "github.com/muhammadchandra19/session-matcher/internal/domain/orderbook/v1"
	"github.com/shopspring/decimal"
)

// View is the read-only book state the printer renders.
type View interface {
	LastTradedPrice() decimal.Decimal
	Bids() []*orderbookv1.Order
	Asks() []*orderbookv1.Order
}

// Printer renders the pending book state to a console stream: last trading
// price, then buy and sell columns side by side in priority order. Market
// orders show "M" in place of a price.
type Printer struct {
	w io.Writer
}

// NewPrinter creates a printer over the given stream.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Render writes the book state under the given title.
func (p *Printer) Render(title string, view View) {
	fmt.Fprintf(p.w, "\n%s:\n", title)
	fmt.Fprintf(p.w, "Last trading price: %s\n", view.LastTradedPrice().StringFixed(2))
	fmt.Fprintln(p.w, "Buy                                    Sell")
	fmt.Fprintln(p.w, "-------------------------------------------------")

	bids, asks := view.Bids(), view.Asks()
	rows := len(bids)
	if len(asks) > rows {
		rows = len(asks)
	}
	for i := 0; i < rows; i++ {
		left := ""
		if i < len(bids) {
			left = formatOrder(bids[i])
		}
		right := ""
		if i < len(asks) {
			right = formatOrder(asks[i])
		}
		fmt.Fprintf(p.w, "%-39s%s\n", left, right)
	}
	fmt.Fprintln(p.w, "=================================================")
}

// formatOrder renders one book row: id, price (or "M"), quantity.
func formatOrder(order *orderbookv1.Order) string {
	price := "M"
	if !order.Market {
		price = order.LimitPrice.StringFixed(2)
	}
	return fmt.Sprintf("%s %s %d", order.ID, price, order.Quantity)
}
