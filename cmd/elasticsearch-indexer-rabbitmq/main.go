package main

import (
	"bytes"
	"context"
	"encoding/gob"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/sanLimbu/tasks-api/cmd/internal"
	internaldomain "github.com/sanLimbu/tasks-api/internal"
	"github.com/sanLimbu/tasks-api/internal/elasticsearch"
	"github.com/sanLimbu/tasks-api/internal/rabbitmq"
)

const rabbitMQConsumerName = "elasticsearch-indexer"

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

	esClient, err := internal.NewElasticSearch(cfg.Elasticsearch)
	if err != nil {
		return nil, internaldomain.WrapErrorf(err, internaldomain.ErrorCodeUnknown, "internal.NewElasticSearch")
	}

	task := elasticsearch.NewTask(esClient)

	if err := task.EnsureIndex(context.Background()); err != nil {
		return nil, internaldomain.WrapErrorf(err, internaldomain.ErrorCodeUnknown, "task.EnsureIndex")
	}

	rmq, err := internal.NewRabbitMQ(cfg.Broker)
	if err != nil {
		return nil, internaldomain.WrapErrorf(err, internaldomain.ErrorCodeUnknown, "internal.NewRabbitMQ")
	}

	otExporter, err := internal.NewOTExporter(cfg.Telemetry)
	if err != nil {
		return nil, internaldomain.WrapErrorf(err, internaldomain.ErrorCodeUnknown, "internal.NewOTExporter")
	}

	srv := &Server{
		logger: logger,
		rmq:    rmq,
		task:   task,
		done:   make(chan struct{}),
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
			rmq.Close()
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

// Server consumes the events published to the tasks exchange.
type Server struct {
	logger *zap.Logger
	rmq    *internal.RabbitMQ
	task   Indexer
	done   chan struct{}
}

// ListenAndServe binds an exclusive queue to the exchange and consumes it until Shutdown is called.
func (s *Server) ListenAndServe() error {
	queue, err := s.rmq.Channel.QueueDeclare(
		"",    // name
		false, // durable
		false, // delete when unused
		true,  // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return internaldomain.WrapErrorf(err, internaldomain.ErrorCodeUnknown, "channel.QueueDeclare")
	}

	err = s.rmq.Channel.QueueBind(
		queue.Name,        // queue name
		"tasks.event.*",   // routing key
		rabbitmq.Exchange, // exchange
		false,
		nil,
	)
	if err != nil {
		return internaldomain.WrapErrorf(err, internaldomain.ErrorCodeUnknown, "channel.QueueBind")
	}

	msgs, err := s.rmq.Channel.Consume(
		queue.Name,           // queue
		rabbitMQConsumerName, // consumer
		false,                // auto-ack
		false,                // exclusive
		false,                // no-local
		false,                // no-wait
		nil,                  // args
	)
	if err != nil {
		return internaldomain.WrapErrorf(err, internaldomain.ErrorCodeUnknown, "channel.Consume")
	}

	go func() {
		for msg := range msgs {
			s.logger.Info("Received message", zap.String("routing_key", msg.RoutingKey))

			if ack, requeue := s.handle(context.Background(), msg.RoutingKey, msg.Body); ack {
				_ = msg.Ack(false)
			} else {
				_ = msg.Nack(false, requeue)
			}
		}

		s.logger.Info("No more messages to consume. Exiting.")

		s.done <- struct{}{}
	}()

	return nil
}

// handle indexes the task in body. Messages that can never be processed are dropped, failed index calls
// are requeued.
func (s *Server) handle(ctx context.Context, routingKey string, body []byte) (ack, requeue bool) {
	task, err := decodeTask(body)
	if err != nil {
		s.logger.Info("Dropping message, invalid", zap.Error(err))
		return false, false
	}

	if err := s.task.Apply(ctx, routingKey, task); err != nil {
		var ierr *internaldomain.Error
		if errors.As(err, &ierr) && ierr.Code() == internaldomain.ErrorCodeInvalidArgument {
			s.logger.Info("Dropping message, rejected", zap.String("routing_key", routingKey), zap.Error(err))
			return false, false
		}

		s.logger.Error("Couldn't index", zap.String("routing_key", routingKey), zap.Error(err))

		return false, true
	}

	return true, false
}

// Shutdown cancels the consumer and waits for the pending deliveries.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server")

	_ = s.rmq.Channel.Cancel(rabbitMQConsumerName, false)

	select {
	case <-ctx.Done():
		return internaldomain.WrapErrorf(ctx.Err(), internaldomain.ErrorCodeUnknown, "context.Done")
	case <-s.done:
		return nil
	}
}

func decodeTask(b []byte) (internaldomain.Task, error) {
	var res internaldomain.Task

	if err := gob.NewDecoder(bytes.NewReader(b)).Decode(&res); err != nil {
		return internaldomain.Task{}, internaldomain.WrapErrorf(err, internaldomain.ErrorCodeInvalidArgument, "gob.Decode")
	}

	return res, nil
}
