package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"

	"github.com/sanLimbu/tasks-api/cmd/internal"
	internaldomain "github.com/sanLimbu/tasks-api/internal"
	"github.com/sanLimbu/tasks-api/internal/redis"
	"github.com/sanLimbu/tasks-api/internal/service"
	"github.com/sanLimbu/tasks-api/internal/smtp"
)

const lockKey = "notifier:lock"

func main() {
	var (
		env  string
		once bool
	)

	flag.StringVar(&env, "env", "", "Environment Variables filename")
	flag.BoolVar(&once, "once", false, "Send the alerts once and exit")
	flag.Parse()

	errC, err := run(env, once)
	if err != nil {
		log.Fatalf("Couldn't run: %s", err)
	}

	if err := <-errC; err != nil {
		log.Fatalf("Error while running: %s", err)
	}
}

func run(env string, once bool) (<-chan error, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, internaldomain.WrapErrorf(err, internaldomain.ErrorCodeUnknown, "zap.NewProduction")
	}

	cfg, err := internal.NewConfig(env)
	if err != nil {
		return nil, internaldomain.WrapErrorf(err, internaldomain.ErrorCodeUnknown, "internal.NewConfig")
	}

	ctx := context.Background()

	store, err := internal.NewStore(ctx, cfg.Database)
	if err != nil {
		return nil, internaldomain.WrapErrorf(err, internaldomain.ErrorCodeUnknown, "internal.NewStore")
	}

	otExporter, err := internal.NewOTExporter(cfg.Telemetry)
	if err != nil {
		return nil, internaldomain.WrapErrorf(err, internaldomain.ErrorCodeUnknown, "internal.NewOTExporter")
	}

	client, err := internal.NewMailClient(cfg.SMTP)
	if err != nil {
		return nil, internaldomain.WrapErrorf(err, internaldomain.ErrorCodeUnknown, "internal.NewMailClient")
	}

	notifier, err := service.NewNotifier(store.Task, smtp.NewMailer(client, cfg.Notifier.From, logger), logger)
	if err != nil {
		return nil, internaldomain.WrapErrorf(err, internaldomain.ErrorCodeUnknown, "service.NewNotifier")
	}

	j := &job{
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}

	if cfg.Redis.Enabled() {
		rdb, err := internal.NewRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, internaldomain.WrapErrorf(err, internaldomain.ErrorCodeUnknown, "internal.NewRedis")
		}

		j.lock = redis.NewLock(rdb, cfg.Notifier.LockTTL)
	}

	errC := make(chan error, 1)

	cleanup := func() {
		ctxTimeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_ = otExporter.Shutdown(ctxTimeout)
		_ = logger.Sync()

		store.Close()
	}

	if once {
		go func() {
			defer func() {
				cleanup()
				close(errC)
			}()

			if err := j.run(ctx); err != nil {
				errC <- err
			}
		}()

		return errC, nil
	}

	scheduler := gocron.NewScheduler(time.UTC)
	scheduler.SingletonModeAll()

	if _, err := scheduler.Cron(cfg.Notifier.Schedule).Do(func() {
		if err := j.run(ctx); err != nil {
			logger.Error("notifier run failed", zap.Error(err))
		}
	}); err != nil {
		return nil, internaldomain.WrapErrorf(err, internaldomain.ErrorCodeInvalidArgument, "scheduler.Cron")
	}

	ctx, stop := signal.NotifyContext(ctx,
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT)

	go func() {
		<-ctx.Done()

		logger.Info("Shutdown signal received")

		defer func() {
			cleanup()
			stop()
			close(errC)
		}()

		scheduler.Stop()

		logger.Info("Shutdown completed")
	}()

	logger.Info("Scheduling deadline alerts", zap.String("schedule", cfg.Notifier.Schedule))

	scheduler.StartAsync()

	return errC, nil
}

// Locker takes the distributed lock guarding a run.
type Locker interface {
	Acquire(ctx context.Context, key string) (func(context.Context) error, bool, error)
}

type job struct {
	notifier *service.Notifier
	lock     Locker
	logger   *zap.Logger
	now      func() time.Time
}

// tickKey names the lock of the schedule tick at t, replicas firing within the same minute share it.
func tickKey(t time.Time) string {
	return lockKey + ":" + t.UTC().Truncate(time.Minute).Format("200601021504")
}

// run sends the alerts once, skipping the tick when another replica holds its lock. A successful run
// keeps the lock until it expires so late replicas skip the tick too, a failed run releases it.
func (j *job) run(ctx context.Context) error {
	var release func(context.Context) error

	if j.lock != nil {
		var (
			ok  bool
			err error
		)

		release, ok, err = j.lock.Acquire(ctx, tickKey(j.now()))
		if err != nil {
			return internaldomain.WrapErrorf(err, internaldomain.ErrorCodeUnknown, "lock.Acquire")
		}

		if !ok {
			j.logger.Info("notifier lock held elsewhere, skipping")
			return nil
		}
	}

	if _, err := j.notifier.Run(ctx); err != nil {
		if release != nil {
			if rerr := release(context.Background()); rerr != nil {
				j.logger.Warn("releasing notifier lock", zap.Error(rerr))
			}
		}

		return internaldomain.WrapErrorf(err, internaldomain.ErrorCodeUnknown, "notifier.Run")
	}

	return nil
}
