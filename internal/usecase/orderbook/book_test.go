package orderbook

import (
	"context"
	"errors"
	"testing"

	orderbookv1 "github.com/muhammadchandra19/session-matcher/internal/domain/orderbook/v1"
	"github.com/muhammadchandra19/session-matcher/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingSink captures everything the book emits.
type recordingSink struct {
	trades    []*orderbookv1.Trade
	residuals []*orderbookv1.Residual
	tradeErr  error
}

func (s *recordingSink) Trade(_ context.Context, trade *orderbookv1.Trade) error {
	if s.tradeErr != nil {
		return s.tradeErr
	}
	s.trades = append(s.trades, trade)
	return nil
}

func (s *recordingSink) Unexecuted(_ context.Context, residual *orderbookv1.Residual) error {
	s.residuals = append(s.residuals, residual)
	return nil
}

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.NewLogger(logger.WithLoggingLevel(logger.ErrorLevel))
	require.NoError(t, err)
	return log
}

func newTestBook(t *testing.T, seed string) (*Book, *recordingSink) {
	t.Helper()
	sink := &recordingSink{}
	return NewBook(decimal.RequireFromString(seed), sink, newTestLogger(t)), sink
}

func limit(id string, side orderbookv1.Side, quantity int64, price string) *orderbookv1.PlaceOrderRequest {
	return &orderbookv1.PlaceOrderRequest{
		OrderID:    id,
		Side:       side,
		Quantity:   quantity,
		LimitPrice: decimal.RequireFromString(price),
	}
}

func market(id string, side orderbookv1.Side, quantity int64) *orderbookv1.PlaceOrderRequest {
	return &orderbookv1.PlaceOrderRequest{
		OrderID:  id,
		Side:     side,
		Quantity: quantity,
		Market:   true,
	}
}

// Test 1: a crossing limit pair trades at the earlier arrival's price and
// the larger order rests with its remainder.
func TestBook_LimitCross_EarlierArrivalSetsPrice(t *testing.T) {
	ctx := context.Background()
	book, sink := newTestBook(t, "100.00")

	require.NoError(t, book.Submit(ctx, limit("O1", orderbookv1.SideBuy, 10, "101.00")))
	require.NoError(t, book.Submit(ctx, limit("O2", orderbookv1.SideSell, 5, "99.00")))

	require.Len(t, sink.trades, 1)
	trade := sink.trades[0]
	assert.Equal(t, "O1", trade.BuyOrderID)
	assert.Equal(t, "O2", trade.SellOrderID)
	assert.Equal(t, int64(5), trade.Quantity)
	assert.Equal(t, "101.00", trade.Price.StringFixed(2))
	assert.Equal(t, "101.00", book.LastTradedPrice().StringFixed(2))

	require.NoError(t, book.DrainUnexecuted(ctx))
	require.Len(t, sink.residuals, 1)
	assert.Equal(t, "O1", sink.residuals[0].OrderID)
	assert.Equal(t, int64(5), sink.residuals[0].Quantity)
}

// Test 2: when the resting sell arrived first, its price wins.
func TestBook_LimitCross_RestingSellSetsPrice(t *testing.T) {
	ctx := context.Background()
	book, sink := newTestBook(t, "100.00")

	require.NoError(t, book.Submit(ctx, limit("S1", orderbookv1.SideSell, 5, "99.00")))
	require.NoError(t, book.Submit(ctx, limit("B1", orderbookv1.SideBuy, 5, "101.00")))

	require.Len(t, sink.trades, 1)
	assert.Equal(t, "99.00", sink.trades[0].Price.StringFixed(2))
}

// Test 3: a market buy against a limit sell executes at the sell's price.
func TestBook_MarketBuyTakesLimitPrice(t *testing.T) {
	ctx := context.Background()
	book, sink := newTestBook(t, "100.00")

	require.NoError(t, book.Submit(ctx, market("O1", orderbookv1.SideBuy, 10)))
	require.NoError(t, book.Submit(ctx, limit("O2", orderbookv1.SideSell, 10, "50.00")))

	require.Len(t, sink.trades, 1)
	assert.Equal(t, "50.00", sink.trades[0].Price.StringFixed(2))
	assert.Equal(t, int64(10), sink.trades[0].Quantity)
}

// Test 4: two market orders have no price signal and inherit the last
// traded price.
func TestBook_TwoMarketsInheritLastTradedPrice(t *testing.T) {
	ctx := context.Background()
	book, sink := newTestBook(t, "42.50")

	require.NoError(t, book.Submit(ctx, market("M1", orderbookv1.SideBuy, 3)))
	require.NoError(t, book.Submit(ctx, market("M2", orderbookv1.SideSell, 3)))

	require.Len(t, sink.trades, 1)
	assert.Equal(t, "42.50", sink.trades[0].Price.StringFixed(2))
	assert.Equal(t, "42.50", book.LastTradedPrice().StringFixed(2))
}

// Test 5: one submission can clear several resting orders.
func TestBook_SweepClearsChainOfMatches(t *testing.T) {
	ctx := context.Background()
	book, sink := newTestBook(t, "100.00")

	require.NoError(t, book.Submit(ctx, limit("B1", orderbookv1.SideBuy, 10, "101.00")))
	require.NoError(t, book.Submit(ctx, limit("B2", orderbookv1.SideBuy, 5, "100.00")))
	require.NoError(t, book.Submit(ctx, limit("S1", orderbookv1.SideSell, 20, "99.00")))

	require.Len(t, sink.trades, 2)
	assert.Equal(t, "B1", sink.trades[0].BuyOrderID)
	assert.Equal(t, int64(10), sink.trades[0].Quantity)
	assert.Equal(t, "101.00", sink.trades[0].Price.StringFixed(2))

	assert.Equal(t, "B2", sink.trades[1].BuyOrderID)
	assert.Equal(t, int64(5), sink.trades[1].Quantity)
	assert.Equal(t, "100.00", sink.trades[1].Price.StringFixed(2))

	// S1 keeps its identity and rests with the remainder.
	require.NoError(t, book.DrainUnexecuted(ctx))
	require.Len(t, sink.residuals, 1)
	assert.Equal(t, "S1", sink.residuals[0].OrderID)
	assert.Equal(t, int64(5), sink.residuals[0].Quantity)
}

// Test 6: same-side price-time priority: better price first, then earlier
// arrival among equals.
func TestBook_PriceTimePriority(t *testing.T) {
	ctx := context.Background()
	book, sink := newTestBook(t, "100.00")

	require.NoError(t, book.Submit(ctx, limit("B1", orderbookv1.SideBuy, 5, "100.00")))
	require.NoError(t, book.Submit(ctx, limit("B2", orderbookv1.SideBuy, 5, "101.00")))
	require.NoError(t, book.Submit(ctx, limit("B3", orderbookv1.SideBuy, 5, "100.00")))

	require.NoError(t, book.Submit(ctx, limit("S1", orderbookv1.SideSell, 5, "99.00")))
	require.NoError(t, book.Submit(ctx, limit("S2", orderbookv1.SideSell, 5, "99.00")))
	require.NoError(t, book.Submit(ctx, limit("S3", orderbookv1.SideSell, 5, "99.00")))

	require.Len(t, sink.trades, 3)
	assert.Equal(t, "B2", sink.trades[0].BuyOrderID) // best price
	assert.Equal(t, "B1", sink.trades[1].BuyOrderID) // earlier arrival at 100.00
	assert.Equal(t, "B3", sink.trades[2].BuyOrderID)
}

// Test 7: a market buy ranks at price zero, so limit buys shield it until
// they are gone.
func TestBook_MarketBuyWaitsBehindLimitBuys(t *testing.T) {
	ctx := context.Background()
	book, sink := newTestBook(t, "100.00")

	require.NoError(t, book.Submit(ctx, market("M1", orderbookv1.SideBuy, 5)))
	require.NoError(t, book.Submit(ctx, limit("L1", orderbookv1.SideBuy, 5, "101.00")))

	require.NoError(t, book.Submit(ctx, limit("S1", orderbookv1.SideSell, 5, "99.00")))
	require.Len(t, sink.trades, 1)
	assert.Equal(t, "L1", sink.trades[0].BuyOrderID)
	assert.Equal(t, "101.00", sink.trades[0].Price.StringFixed(2))

	// With L1 gone the market order surfaces and takes the limit price.
	require.NoError(t, book.Submit(ctx, limit("S2", orderbookv1.SideSell, 5, "99.00")))
	require.Len(t, sink.trades, 2)
	assert.Equal(t, "M1", sink.trades[1].BuyOrderID)
	assert.Equal(t, "99.00", sink.trades[1].Price.StringFixed(2))
}

// Test 8: after any submission the top of the book no longer crosses.
func TestBook_NoCrossingLeftBehind(t *testing.T) {
	ctx := context.Background()
	book, _ := newTestBook(t, "100.00")

	reqs := []*orderbookv1.PlaceOrderRequest{
		limit("B1", orderbookv1.SideBuy, 8, "100.00"),
		limit("S1", orderbookv1.SideSell, 3, "99.50"),
		limit("B2", orderbookv1.SideBuy, 4, "99.75"),
		limit("S2", orderbookv1.SideSell, 10, "99.60"),
		limit("S3", orderbookv1.SideSell, 2, "101.00"),
		limit("B3", orderbookv1.SideBuy, 6, "99.70"),
	}

	for _, req := range reqs {
		require.NoError(t, book.Submit(ctx, req))

		bids, asks := book.Bids(), book.Asks()
		if len(bids) == 0 || len(asks) == 0 {
			continue
		}
		bestBid, bestAsk := bids[0], asks[0]
		if bestBid.Market || bestAsk.Market {
			continue
		}
		assert.True(t, bestBid.LimitPrice.LessThan(bestAsk.LimitPrice),
			"book still crossed after %s: bid %s >= ask %s",
			req.OrderID, bestBid.LimitPrice, bestAsk.LimitPrice)
	}
}

// Test 9: traded quantity plus residual equals the submitted quantity for
// every order.
func TestBook_QuantityConservation(t *testing.T) {
	ctx := context.Background()
	book, sink := newTestBook(t, "100.00")

	submitted := map[string]int64{}
	reqs := []*orderbookv1.PlaceOrderRequest{
		limit("B1", orderbookv1.SideBuy, 12, "101.00"),
		limit("S1", orderbookv1.SideSell, 5, "100.00"),
		market("M1", orderbookv1.SideSell, 4),
		limit("B2", orderbookv1.SideBuy, 7, "99.00"),
		limit("S2", orderbookv1.SideSell, 9, "98.50"),
		market("M2", orderbookv1.SideBuy, 2),
	}
	for _, req := range reqs {
		submitted[req.OrderID] = req.Quantity
		require.NoError(t, book.Submit(ctx, req))
	}
	require.NoError(t, book.DrainUnexecuted(ctx))

	filled := map[string]int64{}
	for _, trade := range sink.trades {
		filled[trade.BuyOrderID] += trade.Quantity
		filled[trade.SellOrderID] += trade.Quantity
	}
	remaining := map[string]int64{}
	for _, residual := range sink.residuals {
		remaining[residual.OrderID] += residual.Quantity
	}

	for id, quantity := range submitted {
		assert.Equal(t, quantity, filled[id]+remaining[id], "order %s", id)
	}
}

// Test 10: residuals come out oldest arrival first, regardless of side or
// price.
func TestBook_ResidualsSortedByArrival(t *testing.T) {
	ctx := context.Background()
	book, sink := newTestBook(t, "100.00")

	require.NoError(t, book.Submit(ctx, limit("B1", orderbookv1.SideBuy, 1, "90.00")))
	require.NoError(t, book.Submit(ctx, limit("S1", orderbookv1.SideSell, 1, "110.00")))
	require.NoError(t, book.Submit(ctx, limit("B2", orderbookv1.SideBuy, 1, "95.00")))
	require.NoError(t, book.Submit(ctx, limit("S2", orderbookv1.SideSell, 1, "105.00")))

	require.NoError(t, book.DrainUnexecuted(ctx))
	require.Len(t, sink.residuals, 4)

	var ids []string
	for _, residual := range sink.residuals {
		ids = append(ids, residual.OrderID)
	}
	assert.Equal(t, []string{"B1", "S1", "B2", "S2"}, ids)
}

// Test 11: invalid requests are rejected before touching the book.
func TestBook_RejectsInvalidRequests(t *testing.T) {
	ctx := context.Background()
	book, sink := newTestBook(t, "100.00")

	assert.Error(t, book.Submit(ctx, limit("bad", orderbookv1.SideBuy, 0, "100.00")))
	assert.Error(t, book.Submit(ctx, limit("worse", orderbookv1.SideSell, -1, "100.00")))
	assert.Error(t, book.Submit(ctx, &orderbookv1.PlaceOrderRequest{
		OrderID:    "neg",
		Side:       orderbookv1.SideBuy,
		Quantity:   1,
		LimitPrice: decimal.RequireFromString("-1.00"),
	}))

	assert.Empty(t, book.Bids())
	assert.Empty(t, book.Asks())
	assert.Empty(t, sink.trades)
}

// Test 12: a failing sink aborts the sweep.
func TestBook_SinkFailureStopsSweep(t *testing.T) {
	ctx := context.Background()
	sink := &recordingSink{tradeErr: errors.New("sink down")}
	book := NewBook(decimal.RequireFromString("100.00"), sink, newTestLogger(t))

	require.NoError(t, book.Submit(ctx, limit("B1", orderbookv1.SideBuy, 5, "101.00")))
	err := book.Submit(ctx, limit("S1", orderbookv1.SideSell, 5, "99.00"))
	assert.Error(t, err)
}

// Test 13: the last traded price carries across trades within a session.
func TestBook_LastTradedPriceCarriesForward(t *testing.T) {
	ctx := context.Background()
	book, sink := newTestBook(t, "100.00")

	require.NoError(t, book.Submit(ctx, limit("B1", orderbookv1.SideBuy, 2, "103.00")))
	require.NoError(t, book.Submit(ctx, limit("S1", orderbookv1.SideSell, 2, "101.00")))
	assert.Equal(t, "103.00", book.LastTradedPrice().StringFixed(2))

	require.NoError(t, book.Submit(ctx, market("M1", orderbookv1.SideBuy, 1)))
	require.NoError(t, book.Submit(ctx, market("M2", orderbookv1.SideSell, 1)))

	require.Len(t, sink.trades, 2)
	assert.Equal(t, "103.00", sink.trades[1].Price.StringFixed(2))
}
