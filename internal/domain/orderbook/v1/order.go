package orderbookv1

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyOrderID    = errors.New("order id cannot be empty")
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrNegativePrice   = errors.New("limit price cannot be negative")
	ErrInvalidSide     = errors.New("side must be buy or sell")
)

// Side represents the side of an order.
type Side string

const (
	// SideBuy represents a buy order.
	SideBuy Side = "buy"
	// SideSell represents a sell order.
	SideSell Side = "sell"
)

// Order represents a single order resting in the book.
//
// Identity (ID, Side, Market, LimitPrice, Sequence) is fixed at submission;
// only Quantity decreases as fills occur. An order whose quantity reaches
// zero leaves the book permanently.
type Order struct {
	ID         string          `json:"id"`
	Side       Side            `json:"side"`
	Quantity   int64           `json:"quantity"`
	LimitPrice decimal.Decimal `json:"limitPrice"`
	Market     bool            `json:"market"`
	Sequence   int64           `json:"sequence"` // arrival sequence, assigned by the book
}

// PlaceOrderRequest represents a request to submit an order to the book.
type PlaceOrderRequest struct {
	OrderID    string          `json:"orderID"`
	Side       Side            `json:"side"`
	Quantity   int64           `json:"quantity"`
	LimitPrice decimal.Decimal `json:"limitPrice"`
	Market     bool            `json:"market"`
}

// Validate rejects requests the matching engine must never receive.
func (r *PlaceOrderRequest) Validate() error {
	if r.OrderID == "" {
		return ErrEmptyOrderID
	}
	if r.Side != SideBuy && r.Side != SideSell {
		return fmt.Errorf("%w: got %q", ErrInvalidSide, r.Side)
	}
	if r.Quantity <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidQuantity, r.Quantity)
	}
	if r.LimitPrice.IsNegative() {
		return fmt.Errorf("%w: got %s", ErrNegativePrice, r.LimitPrice)
	}
	return nil
}

// IsBuy checks if the order is a buy order.
func (o *Order) IsBuy() bool {
	return o.Side == SideBuy
}

// IsSell checks if the order is a sell order.
func (o *Order) IsSell() bool {
	return o.Side == SideSell
}

// IsFilled checks if the order is filled (quantity is zero).
func (o *Order) IsFilled() bool {
	return o.Quantity == 0
}

// Fill reduces the order's quantity by the traded amount.
func (o *Order) Fill(quantity int64) {
	if quantity > o.Quantity {
		quantity = o.Quantity
	}
	o.Quantity -= quantity
}
