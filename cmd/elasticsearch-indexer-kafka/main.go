package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"
	"go.uber.org/zap"

	"github.com/sanLimbu/tasks-api/cmd/internal"
	internaldomain "github.com/sanLimbu/tasks-api/internal"
	"github.com/sanLimbu/tasks-api/internal/elasticsearch"
	kafkarepo "github.com/sanLimbu/tasks-api/internal/kafka"
)

func main() {
	var env string

	flag.StringVar(&env, "env", "", "Environment Variables filename")
	flag.Parse()

	errC, err := run(env)
	if err != nil {
		log.Fatalf("Couldn't run: %s", err)
	}

	if err := <-errC; err != nil {
		log.Fatalf("Error while running: %s", err)
	}
}

func run(env string) (<-chan error, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, internaldomain.WrapErrorf(err, internaldomain.ErrorCodeUnknown, "zap.NewProduction")
	}

	cfg, err := internal.NewConfig(env)
	if err != nil {
		return nil, internaldomain.WrapErrorf(err, internaldomain.ErrorCodeUnknown, "internal.NewConfig")
	}

	es, err := internal.NewElasticSearch(cfg.Elasticsearch)
	if err != nil {
		return nil, internaldomain.WrapErrorf(err, internaldomain.ErrorCodeUnknown, "internal.NewElasticSearch")
	}

	task := elasticsearch.NewTask(es)

	if err := task.EnsureIndex(context.Background()); err != nil {
		return nil, internaldomain.WrapErrorf(err, internaldomain.ErrorCodeUnknown, "task.EnsureIndex")
	}

	kafka, err := internal.NewKafkaConsumer(cfg.Broker, "elasticsearch-indexer")
	if err != nil {
		return nil, internaldomain.WrapErrorf(err, internaldomain.ErrorCodeUnknown, "internal.NewKafkaConsumer")
	}

	otExporter, err := internal.NewOTExporter(cfg.Telemetry)
	if err != nil {
		return nil, internaldomain.WrapErrorf(err, internaldomain.ErrorCodeUnknown, "internal.NewOTExporter")
	}

	srv := &Server{
		logger:     logger,
		kafka:      kafka,
		task:       task,
		retryDelay: time.Second,
		doneC:      make(chan struct{}),
		closeC:     make(chan struct{}),
	}

	errC := make(chan error, 1)

	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT)

	go func() {
		<-ctx.Done()

		logger.Info("Shutdown signal received")

		ctxTimeout, cancel := context.WithTimeout(context.Background(), 10*time.Second)

		defer func() {
			_ = otExporter.Shutdown(ctxTimeout)
			_ = logger.Sync()
			_ = kafka.Consumer.Close()
			stop()
			cancel()
			close(errC)
		}()

		if err := srv.Shutdown(ctxTimeout); err != nil {
			errC <- err
		}

		logger.Info("Shutdown completed")
	}()

	go func() {
		logger.Info("Listening and serving")

		if err := srv.ListenAndServe(); err != nil {
			errC <- err
		}
	}()

	return errC, nil
}

// Indexer applies Task events to the search index.
type Indexer interface {
	Apply(ctx context.Context, eventType string, task internaldomain.Task) error
}

// Server consumes the events published to Kafka.
type Server struct {
	logger     *zap.Logger
	kafka      *internal.KafkaConsumer
	task       Indexer
	retryDelay time.Duration
	doneC      chan struct{}
	closeC     chan struct{}
}

// ListenAndServe polls messages until Shutdown is called.
func (s *Server) ListenAndServe() error {
	commit := func(msg *kafka.Message) {
		if _, err := s.kafka.Consumer.CommitMessage(msg); err != nil {
			s.logger.Error("commit failed", zap.Error(err))
		}
	}

	go func() {
		run := true

		for run {
			select {
			case <-s.closeC:
				run = false
			default:
				msg, ok := s.kafka.Consumer.Poll(150).(*kafka.Message)
				if !ok {
					continue
				}

				if s.process(context.Background(), msg.Value) {
					commit(msg)
				}
			}
		}

		s.logger.Info("No more messages to consume. Exiting.")

		s.doneC <- struct{}{}
	}()

	return nil
}

// process handles value until it succeeds, the offset is not advanced past a failed message.
// It returns false only when Shutdown is called first, leaving the message uncommitted for the next
// consumer.
func (s *Server) process(ctx context.Context, value []byte) bool {
	for !s.handle(ctx, value) {
		select {
		case <-s.closeC:
			return false
		case <-time.After(s.retryDelay):
		}
	}

	return true
}

// handle indexes the event in value, it returns false when the message must be retried.
func (s *Server) handle(ctx context.Context, value []byte) bool {
	var evt kafkarepo.Event

	if err := json.NewDecoder(bytes.NewReader(value)).Decode(&evt); err != nil {
		s.logger.Info("Ignoring message, invalid", zap.Error(err))
		return true
	}

	if err := s.task.Apply(ctx, evt.Type, evt.Value); err != nil {
		var ierr *internaldomain.Error
		if errors.As(err, &ierr) && ierr.Code() == internaldomain.ErrorCodeInvalidArgument {
			s.logger.Info("Ignoring message, rejected", zap.String("type", evt.Type), zap.Error(err))
			return true
		}

		s.logger.Error("Couldn't index", zap.String("type", evt.Type), zap.Error(err))

		return false
	}

	s.logger.Info("Consumed", zap.String("type", evt.Type), zap.Int64("id", evt.Value.ID))

	return true
}

// Shutdown stops polling and waits for the loop to exit.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server")

	close(s.closeC)

	select {
	case <-ctx.Done():
		return fmt.Errorf("context.Done: %w", ctx.Err())
	case <-s.doneC:
		return nil
	}
}
