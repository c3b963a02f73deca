package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/Gunvolt24/flowers/config"
	"github.com/Gunvolt24/flowers/internal/domain"
	"github.com/Gunvolt24/flowers/internal/kafka"
	"github.com/Gunvolt24/flowers/pkg/validate"
)

// CLI для проверки выгрузок заказов: валидные заказы печатаются в stdout (JSONL)
// или, с -publish, отправляются в топик заказов.
func main() {
	inputPath := flag.String("in", "", "path to input (.json or .jsonl). If empty, reads JSONL from stdin.")
	formatStr := flag.String("format", "auto", "input format: auto|json|jsonl")
	publish := flag.Bool("publish", false, "publish valid orders to kafka (FLOWERS_KAFKA_* env) instead of stdout")
	report := flag.Bool("report", false, "print rejected records to stderr")
	flag.Parse()

	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sink, closeSink, err := buildSink(*publish)
	if err != nil {
		fmt.Fprintf(os.Stderr, "setup: %v\n", err)
		os.Exit(1)
	}

	batch := validate.NewBatch(validate.NewOrderValidator(), sink)
	format := validate.InputFormat(*formatStr)

	var rep validate.Report
	if *inputPath == "" {
		if format == validate.FormatAuto {
			format = validate.FormatJSONL
		}
		rep, err = batch.Stream(ctx, os.Stdin, format)
	} else {
		rep, err = batch.File(ctx, *inputPath, format)
	}

	if cerr := closeSink(); cerr != nil && err == nil {
		err = cerr
	}

	if *report {
		for _, p := range rep.Problems {
			fmt.Fprintf(os.Stderr, "record %d order_uid=%q: %s\n", p.Record, p.OrderUID, p.Reason)
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "validation: %v (%s)\n", err, rep)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "validation ok (%s)\n", rep)
	if rep.Invalid > 0 {
		os.Exit(2)
	}
}

func buildSink(publish bool) (validate.Sink, func() error, error) {
	if !publish {
		return validate.JSONLSink(os.Stdout), func() error { return nil }, nil
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	producer := kafka.NewProducer(&kafka.ProducerConfig{
		Brokers:      cfg.Kafka.Brokers,
		Topic:        cfg.Kafka.Topic,
		WriteTimeout: cfg.Kafka.WriteTimeout,
	})
	sink := func(ctx context.Context, order *domain.Order) error {
		return producer.Publish(ctx, order)
	}
	return sink, producer.Close, nil
}
