package errors

// ErrorCode represents a specific error code in the system.
type ErrorCode string

const (
	// GeneralInternalServerError represents a generic internal error.
	GeneralInternalServerError ErrorCode = "general_internal_server_error"
	// GeneralBadRequestError represents a generic bad request error.
	GeneralBadRequestError ErrorCode = "general_bad_request_error"

	// OrderParseError represents an error when an input order line cannot be parsed.
	OrderParseError ErrorCode = "order_parse_error"
	// OrderInvalidQuantityError represents an error when an order carries a non-positive quantity.
	OrderInvalidQuantityError ErrorCode = "order_invalid_quantity_error"
	// OrderInvalidPriceError represents an error when an order carries a negative limit price.
	OrderInvalidPriceError ErrorCode = "order_invalid_price_error"
	// QueueEmptyPopError represents a pop attempted on an empty side queue.
	QueueEmptyPopError ErrorCode = "queue_empty_pop_error"

	// SinkWriteError represents an error when writing a record to the trade sink.
	SinkWriteError ErrorCode = "sink_write_error"
	// TradePublishError represents an error when publishing a trade event to Kafka.
	TradePublishError ErrorCode = "trade_publish_error"
)

// String returns the string representation of the error code.
func (c ErrorCode) String() string {
	return string(c)
}
