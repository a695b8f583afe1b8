package orderbookv1

import "github.com/shopspring/decimal"

// Trade represents one execution between a crossing buy/sell pair.
// The buy leg is always reported before the sell leg.
type Trade struct {
	BuyOrderID  string          `json:"buyOrderID"`
	SellOrderID string          `json:"sellOrderID"`
	Quantity    int64           `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

// Residual represents the unfilled remainder of an order at session end.
type Residual struct {
	OrderID  string `json:"orderID"`
	Quantity int64  `json:"quantity"`
	Sequence int64  `json:"sequence"`
}
