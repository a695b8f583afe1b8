package session

import (
	"context"
	"errors"
	"io"

	orderreaderv1 "github.com/muhammadchandra19/session-matcher/internal/domain/order-reader/v1"
	tradesinkv1 "github.com/muhammadchandra19/session-matcher/internal/domain/tradesink/v1"
	"github.com/muhammadchandra19/session-matcher/internal/usecase/display"
	"github.com/muhammadchandra19/session-matcher/internal/usecase/orderbook"
	"github.com/muhammadchandra19/session-matcher/pkg/logger"
)

// Session replays one order stream through a fresh book: read the seed
// price, submit every order in arrival order, then drain the residuals.
// It is a deterministic batch with no retries and no recovery.
type Session struct {
	reader  orderreaderv1.OrderReader
	sink    tradesinkv1.Sink
	printer *display.Printer // nil disables book rendering
	logger  logger.Interface
}

// New creates a session. printer may be nil to disable console rendering.
func New(reader orderreaderv1.OrderReader, sink tradesinkv1.Sink, printer *display.Printer, log logger.Interface) *Session {
	return &Session{
		reader:  reader,
		sink:    sink,
		printer: printer,
		logger:  log,
	}
}

// Run replays the stream to completion and reports unexecuted residuals.
func (s *Session) Run(ctx context.Context) error {
	seed, err := s.reader.Seed()
	if err != nil {
		return err
	}

	book := orderbook.NewBook(seed, s.sink, s.logger)
	s.logger.InfoContext(ctx, "session started",
		logger.Field{Key: "seedPrice", Value: seed},
	)

	submitted := 0
	for {
		req, err := s.reader.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}

		if err := book.Submit(ctx, req); err != nil {
			return err
		}
		submitted++

		if s.printer != nil {
			s.printer.Render("After matching order "+req.OrderID, book)
		}
	}

	if s.printer != nil {
		s.printer.Render("Final state of orders", book)
	}

	if err := book.DrainUnexecuted(ctx); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "session complete",
		logger.Field{Key: "ordersSubmitted", Value: submitted},
		logger.Field{Key: "lastTradedPrice", Value: book.LastTradedPrice()},
	)
	return nil
}
