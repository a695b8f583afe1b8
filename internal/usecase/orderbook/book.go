package orderbook

import (
	"context"
	"sort"

	orderbookv1 "github.com/muhammadchandra19/session-matcher/internal/domain/orderbook/v1"
	tradesinkv1 "github.com/muhammadchandra19/session-matcher/internal/domain/tradesink/v1"
	"github.com/muhammadchandra19/session-matcher/pkg/errors"
	"github.com/muhammadchandra19/session-matcher/pkg/logger"
	"github.com/shopspring/decimal"
)

// Book is the matching engine: it owns both side queues and the session's
// last-traded price, and clears crossing orders into trades on every
// submission.
//
// A Book is single-threaded by design. Each Submit runs its clearing sweep
// to a fixed point before returning; sweeps terminate because every trade
// strictly decreases total resting quantity.
type Book struct {
	bids *orderbookv1.Queue
	asks *orderbookv1.Queue

	lastTradedPrice decimal.Decimal
	sequence        int64

	sink   tradesinkv1.Sink
	logger logger.Interface
}

// NewBook creates a book seeded with the session's initial last-traded price.
func NewBook(seedPrice decimal.Decimal, sink tradesinkv1.Sink, log logger.Interface) *Book {
	return &Book{
		bids:            orderbookv1.NewQueue(orderbookv1.SideBuy),
		asks:            orderbookv1.NewQueue(orderbookv1.SideSell),
		lastTradedPrice: seedPrice,
		sink:            sink,
		logger:          log,
	}
}

// Submit validates the request, assigns the next arrival sequence, inserts
// the order into its side queue and runs the clearing sweep until no cross
// remains at the top of the book.
func (b *Book) Submit(ctx context.Context, req *orderbookv1.PlaceOrderRequest) error {
	if err := req.Validate(); err != nil {
		return errors.NewTracer(errors.GeneralBadRequestError.String()).Wrap(err)
	}

	b.sequence++
	order := &orderbookv1.Order{
		ID:         req.OrderID,
		Side:       req.Side,
		Quantity:   req.Quantity,
		LimitPrice: req.LimitPrice,
		Market:     req.Market,
		Sequence:   b.sequence,
	}

	if order.IsBuy() {
		b.bids.Insert(order)
	} else {
		b.asks.Insert(order)
	}

	b.logger.DebugContext(ctx, "order submitted",
		logger.Field{Key: "orderID", Value: order.ID},
		logger.Field{Key: "side", Value: order.Side},
		logger.Field{Key: "quantity", Value: order.Quantity},
		logger.Field{Key: "sequence", Value: order.Sequence},
	)

	return b.sweep(ctx)
}

// sweep repeatedly matches the best bid against the best ask until either
// queue empties or the top of the book no longer crosses.
func (b *Book) sweep(ctx context.Context) error {
	for b.bids.Len() > 0 && b.asks.Len() > 0 {
		if !crosses(b.bids.PeekBest(), b.asks.PeekBest()) {
			return nil
		}

		buy, err := b.bids.PopBest()
		if err != nil {
			return errors.NewTracer(errors.QueueEmptyPopError.String()).Wrap(err)
		}
		sell, err := b.asks.PopBest()
		if err != nil {
			return errors.NewTracer(errors.QueueEmptyPopError.String()).Wrap(err)
		}

		quantity := min(buy.Quantity, sell.Quantity)
		price := executionPrice(buy, sell, b.lastTradedPrice)
		b.lastTradedPrice = price

		trade := &orderbookv1.Trade{
			BuyOrderID:  buy.ID,
			SellOrderID: sell.ID,
			Quantity:    quantity,
			Price:       price,
		}
		if err := b.sink.Trade(ctx, trade); err != nil {
			return errors.NewTracer(errors.SinkWriteError.String()).Wrap(err)
		}

		b.logger.DebugContext(ctx, "trade executed",
			logger.Field{Key: "buyOrderID", Value: buy.ID},
			logger.Field{Key: "sellOrderID", Value: sell.ID},
			logger.Field{Key: "quantity", Value: quantity},
			logger.Field{Key: "price", Value: price},
		)

		buy.Fill(quantity)
		sell.Fill(quantity)
		if !buy.IsFilled() {
			b.bids.Reinsert(buy)
		}
		if !sell.IsFilled() {
			b.asks.Reinsert(sell)
		}
	}
	return nil
}

// DrainUnexecuted empties both queues and reports every remaining order,
// oldest arrival first. Terminal: the book is not usable afterwards.
func (b *Book) DrainUnexecuted(ctx context.Context) error {
	resting := append(b.bids.DrainByArrival(), b.asks.DrainByArrival()...)
	sort.Sort(orderbookv1.Orders(resting))

	for _, order := range resting {
		residual := &orderbookv1.Residual{
			OrderID:  order.ID,
			Quantity: order.Quantity,
			Sequence: order.Sequence,
		}
		if err := b.sink.Unexecuted(ctx, residual); err != nil {
			return errors.NewTracer(errors.SinkWriteError.String()).Wrap(err)
		}
	}

	b.logger.InfoContext(ctx, "session drained",
		logger.Field{Key: "unexecutedOrders", Value: len(resting)},
		logger.Field{Key: "lastTradedPrice", Value: b.lastTradedPrice},
	)
	return nil
}

// LastTradedPrice returns the price of the most recent execution, or the
// session seed when nothing has traded yet.
func (b *Book) LastTradedPrice() decimal.Decimal {
	return b.lastTradedPrice
}

// Bids returns the resting buy orders in price-time priority order.
func (b *Book) Bids() []*orderbookv1.Order {
	return b.bids.Snapshot()
}

// Asks returns the resting sell orders in price-time priority order.
func (b *Book) Asks() []*orderbookv1.Order {
	return b.asks.Snapshot()
}

// crosses reports whether the top-of-book pair may trade: either side being
// a market order is unconditional, otherwise the bid must meet the ask.
func crosses(buy, sell *orderbookv1.Order) bool {
	return buy.Market || sell.Market || buy.LimitPrice.Cmp(sell.LimitPrice) >= 0
}

// executionPrice computes the trade price for a crossing pair. The
// earlier-arriving limit order sets the price; a lone market order accepts
// the resting limit price; two markets inherit the last traded price.
func executionPrice(buy, sell *orderbookv1.Order, lastTradedPrice decimal.Decimal) decimal.Decimal {
	switch {
	case !buy.Market && !sell.Market:
		if buy.Sequence < sell.Sequence {
			return buy.LimitPrice
		}
		return sell.LimitPrice
	case !buy.Market:
		return buy.LimitPrice
	case !sell.Market:
		return sell.LimitPrice
	default:
		return lastTradedPrice
	}
}
