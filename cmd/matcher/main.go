package main

import (
	"context"
	"fmt"
	"os"

	tradesinkv1 "github.com/muhammadchandra19/session-matcher/internal/domain/tradesink/v1"
	"github.com/muhammadchandra19/session-matcher/internal/usecase/display"
	orderreader "github.com/muhammadchandra19/session-matcher/internal/usecase/order-reader"
	"github.com/muhammadchandra19/session-matcher/internal/usecase/report"
	"github.com/muhammadchandra19/session-matcher/internal/usecase/session"
	tradepublisher "github.com/muhammadchandra19/session-matcher/internal/usecase/trade-publisher"
	"github.com/muhammadchandra19/session-matcher/pkg/config"
	"github.com/muhammadchandra19/session-matcher/pkg/logger"
	"github.com/muhammadchandra19/session-matcher/pkg/util"
)

var cfg *config.Config
var log *logger.Logger

func init() {
	cfg = &config.Config{}
	config.MustLoad(cfg)

	l, err := logger.NewLogger()
	if err != nil {
		panic(err)
	}
	log = l
}

func main() {
	defer log.Sync()

	ctx := util.WithRequestID(context.Background(), "")

	inputPath := cfg.InputPath
	if len(os.Args) > 1 {
		inputPath = os.Args[1]
	}
	if inputPath == "" {
		fmt.Fprintln(os.Stderr, "usage: matcher <input_file>")
		os.Exit(1)
	}

	in, err := os.Open(inputPath)
	if err != nil {
		log.ErrorContext(ctx, err, logger.Field{
			Key:   "action",
			Value: "open_input",
		}, logger.Field{
			Key:   "path",
			Value: inputPath,
		})
		os.Exit(1)
	}
	defer in.Close()

	outputPath := session.OutputPath(inputPath)
	out, err := os.Create(outputPath)
	if err != nil {
		log.ErrorContext(ctx, err, logger.Field{
			Key:   "action",
			Value: "create_output",
		}, logger.Field{
			Key:   "path",
			Value: outputPath,
		})
		os.Exit(1)
	}
	defer out.Close()

	sinks := tradesinkv1.Multi{report.NewWriter(out, log)}
	if cfg.Kafka.Enabled() {
		publisher := tradepublisher.NewPublisher(cfg.Kafka, log)
		defer publisher.Close()
		sinks = append(sinks, publisher)
	}

	var printer *display.Printer
	if cfg.DisplayBook {
		printer = display.NewPrinter(os.Stdout)
	}

	reader := orderreader.NewReader(in, log)
	sess := session.New(reader, sinks, printer, log)

	if err := sess.Run(ctx); err != nil {
		log.ErrorContext(ctx, err, logger.Field{
			Key:   "action",
			Value: "run_session",
		})
		os.Exit(1)
	}

	log.InfoContext(ctx, "report written", logger.Field{
		Key:   "path",
		Value: outputPath,
	})
}
