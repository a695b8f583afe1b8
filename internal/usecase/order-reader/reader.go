package orderreader

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	orderbookv1 "github.com/muhammadchandra19/session-matcher/internal/domain/orderbook/v1"
	"github.com/muhammadchandra19/session-matcher/pkg/errors"
	"github.com/muhammadchandra19/session-matcher/pkg/logger"
	"github.com/shopspring/decimal"
)

// Reader reads a session order stream: a leading seed price line followed by
// one order per line, `<id> <B|S> <quantity> [<limitPrice>]`. A missing
// fourth token marks a market order.
type Reader struct {
	scanner *bufio.Scanner
	closer  io.Closer
	logger  logger.Interface
	lineNo  int
}

// NewReader creates a reader over the given stream. If the stream is also an
// io.Closer, Close will close it.
func NewReader(r io.Reader, log logger.Interface) *Reader {
	closer, _ := r.(io.Closer)
	return &Reader{
		scanner: bufio.NewScanner(r),
		closer:  closer,
		logger:  log,
	}
}

// Seed reads the session's initial last-traded price from the first line.
func (r *Reader) Seed() (decimal.Decimal, error) {
	line, err := r.nextLine()
	if err != nil {
		return decimal.Zero, errors.NewTracer(errors.OrderParseError.String()).
			Wrap(fmt.Errorf("missing seed price line: %w", err))
	}

	seed, err := decimal.NewFromString(line)
	if err != nil {
		return decimal.Zero, errors.NewTracer(errors.OrderParseError.String()).
			Wrap(fmt.Errorf("line %d: invalid seed price %q: %w", r.lineNo, line, err))
	}
	return seed, nil
}

// Next reads and parses the next order line. Returns io.EOF at stream end.
func (r *Reader) Next(ctx context.Context) (*orderbookv1.PlaceOrderRequest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	line, err := r.nextLine()
	if err != nil {
		return nil, err
	}

	req, err := parseOrder(line)
	if err != nil {
		r.logger.ErrorContext(ctx, err,
			logger.Field{Key: "line", Value: r.lineNo},
			logger.Field{Key: "action", Value: "parse_order"},
		)
		return nil, errors.NewTracer(errors.OrderParseError.String()).
			Wrap(fmt.Errorf("line %d: %w", r.lineNo, err))
	}

	r.logger.DebugContext(ctx, "order read",
		logger.Field{Key: "orderID", Value: req.OrderID},
		logger.Field{Key: "side", Value: req.Side},
		logger.Field{Key: "quantity", Value: req.Quantity},
		logger.Field{Key: "market", Value: req.Market},
	)
	return req, nil
}

// Close closes the underlying stream when it supports closing.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

// nextLine returns the next non-blank line, io.EOF at stream end.
func (r *Reader) nextLine() (string, error) {
	for r.scanner.Scan() {
		r.lineNo++
		line := strings.TrimSpace(r.scanner.Text())
		if line == "" {
			continue
		}
		return line, nil
	}
	if err := r.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

// parseOrder parses `<id> <B|S> <quantity> [<limitPrice>]`.
func parseOrder(line string) (*orderbookv1.PlaceOrderRequest, error) {
	fields := strings.Fields(line)
	if len(fields) < 3 || len(fields) > 4 {
		return nil, fmt.Errorf("expected 3 or 4 fields, got %d", len(fields))
	}

	var side orderbookv1.Side
	switch fields[1] {
	case "B":
		side = orderbookv1.SideBuy
	case "S":
		side = orderbookv1.SideSell
	default:
		return nil, fmt.Errorf("invalid side token %q", fields[1])
	}

	quantity, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid quantity %q: %w", fields[2], err)
	}

	req := &orderbookv1.PlaceOrderRequest{
		OrderID:  fields[0],
		Side:     side,
		Quantity: quantity,
		Market:   true,
	}
	if len(fields) == 4 {
		price, err := decimal.NewFromString(fields[3])
		if err != nil {
			return nil, fmt.Errorf("invalid limit price %q: %w", fields[3], err)
		}
		req.LimitPrice = price
		req.Market = false
	}
	return req, nil
}
