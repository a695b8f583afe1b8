package report

import (
	"bytes"
	"context"
	"testing"

	orderbookv1 "github.com/muhammadchandra19/session-matcher/internal/domain/orderbook/v1"
	"github.com/muhammadchandra19/session-matcher/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.NewLogger(logger.WithLoggingLevel(logger.ErrorLevel))
	require.NoError(t, err)
	return log
}

// Test 1: a trade produces the buy leg then the sell leg, two decimals.
func TestWriter_Trade(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, newTestLogger(t))

	err := w.Trade(context.Background(), &orderbookv1.Trade{
		BuyOrderID:  "O1",
		SellOrderID: "O2",
		Quantity:    5,
		Price:       decimal.RequireFromString("101"),
	})
	require.NoError(t, err)

	expected := "order O1 5 shares purchased at price 101.00\n" +
		"order O2 5 shares sold at price 101.00\n"
	assert.Equal(t, expected, buf.String())
}

// Test 2: residuals never carry a price.
func TestWriter_Unexecuted(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, newTestLogger(t))

	err := w.Unexecuted(context.Background(), &orderbookv1.Residual{
		OrderID:  "O1",
		Quantity: 5,
	})
	require.NoError(t, err)

	assert.Equal(t, "order O1 5 shares unexecuted\n", buf.String())
}

// Test 3: fractional prices keep exactly two digits.
func TestWriter_PriceFormatting(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, newTestLogger(t))

	err := w.Trade(context.Background(), &orderbookv1.Trade{
		BuyOrderID:  "A",
		SellOrderID: "B",
		Quantity:    1,
		Price:       decimal.RequireFromString("99.5"),
	})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "at price 99.50\n")
}
