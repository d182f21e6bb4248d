package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/didip/tollbooth/v6"
	"github.com/didip/tollbooth/v6/limiter"
	esv7 "github.com/elastic/go-elasticsearch/v7"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/riandyrn/otelchi"
	"go.uber.org/zap"

	"github.com/sanLimbu/tasks-api/cmd/internal"
	internaldomain "github.com/sanLimbu/tasks-api/internal"
	"github.com/sanLimbu/tasks-api/internal/auth"
	"github.com/sanLimbu/tasks-api/internal/config"
	"github.com/sanLimbu/tasks-api/internal/elasticsearch"
	"github.com/sanLimbu/tasks-api/internal/kafka"
	"github.com/sanLimbu/tasks-api/internal/memcached"
	"github.com/sanLimbu/tasks-api/internal/rabbitmq"
	"github.com/sanLimbu/tasks-api/internal/rest"
	"github.com/sanLimbu/tasks-api/internal/service"
	"github.com/sanLimbu/tasks-api/internal/web"
)

func main() {
	var env, address string

	flag.StringVar(&env, "env", "", "Environment Variables filename")
	flag.StringVar(&address, "address", ":9234", "HTTP Server Address")
	flag.Parse()

	errC, err := run(env, address)
	if err != nil {
		log.Fatalf("Couldn't run: %s", err)
	}

	if err := <-errC; err != nil {
		log.Fatalf("Error while running: %s", err)
	}
}

func run(env, address string) (<-chan error, error) {
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

	deps := serverConfig{
		Address: address,
		Config:  cfg,
		Store:   store,
		Metrics: otExporter.Metrics,
		Logger:  logger,
		closers: []func(){store.Close},
	}

	if cfg.Memcached.Enabled() {
		if deps.Memcached, err = internal.NewMemcached(cfg.Memcached); err != nil {
			return nil, internaldomain.WrapErrorf(err, internaldomain.ErrorCodeUnknown, "internal.NewMemcached")
		}
	}

	switch cfg.Broker.Kind {
	case config.BrokerKafka:
		producer, err := internal.NewKafkaProducer(cfg.Broker, logger)
		if err != nil {
			return nil, internaldomain.WrapErrorf(err, internaldomain.ErrorCodeUnknown, "internal.NewKafkaProducer")
		}

		deps.Kafka = producer
		deps.closers = append(deps.closers, producer.Close)
	case config.BrokerRabbitMQ:
		rmq, err := internal.NewRabbitMQ(cfg.Broker)
		if err != nil {
			return nil, internaldomain.WrapErrorf(err, internaldomain.ErrorCodeUnknown, "internal.NewRabbitMQ")
		}

		deps.RabbitMQ = rmq
		deps.closers = append(deps.closers, rmq.Close)
	}

	if cfg.Search.Backend == config.SearchBackendElasticsearch {
		if deps.ElasticSearch, err = internal.NewElasticSearch(cfg.Elasticsearch); err != nil {
			return nil, internaldomain.WrapErrorf(err, internaldomain.ErrorCodeUnknown, "internal.NewElasticSearch")
		}
	}

	logging := func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger.Info(r.Method,
				zap.Time("time", time.Now()),
				zap.String("url", r.URL.String()),
			)

			h.ServeHTTP(w, r)
		})
	}

	deps.Middlewares = []func(next http.Handler) http.Handler{otelchi.Middleware("tasks-api-server"), logging}

	srv, err := newServer(deps)
	if err != nil {
		return nil, internaldomain.WrapErrorf(err, internaldomain.ErrorCodeUnknown, "newServer")
	}

	errC := make(chan error, 1)

	ctx, stop := signal.NotifyContext(ctx,
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT)

	go func() {
		<-ctx.Done()

		logger.Info("Shutdown signal received")

		ctxTimeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)

		defer func() {
			_ = otExporter.Shutdown(ctxTimeout)
			_ = logger.Sync()

			for _, c := range deps.closers {
				c()
			}

			stop()
			cancel()
			close(errC)
		}()

		srv.SetKeepAlivesEnabled(false)

		if err := srv.Shutdown(ctxTimeout); err != nil {
			errC <- err
		}

		logger.Info("Shutdown completed")
	}()

	go func() {
		logger.Info("Listening and serving", zap.String("address", address))

		// "ListenAndServe always returns a non-nil error. After Shutdown or Close, the returned error is
		// ErrServerClosed."
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errC <- err
		}
	}()

	return errC, nil
}

type serverConfig struct {
	Address       string
	Config        config.Config
	Store         *internal.Store
	ElasticSearch *esv7.Client
	Kafka         *internal.KafkaProducer
	RabbitMQ      *internal.RabbitMQ
	Memcached     memcached.Client
	Metrics       http.Handler
	Middlewares   []func(next http.Handler) http.Handler
	Logger        *zap.Logger
	closers       []func()
}

// corsOptions allows credentialed requests only from explicitly listed origins.
func corsOptions(conf config.CORS) cors.Options {
	return cors.Options{
		AllowedOrigins:   conf.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: !conf.AllowAll(),
		MaxAge:           300,
	}
}

func newServer(conf serverConfig) (*http.Server, error) {
	router := chi.NewRouter()

	for _, mw := range conf.Middlewares {
		router.Use(mw)
	}

	if len(conf.Config.CORS.AllowedOrigins) > 0 {
		router.Use(cors.Handler(corsOptions(conf.Config.CORS)))
	}

	router.Use(middleware.StripSlashes)

	var repo service.TaskRepository = conf.Store.Task
	if conf.Memcached != nil {
		repo = memcached.NewTask(conf.Memcached, conf.Store.Task, conf.Logger)
	}

	var search service.TaskSearchRepository = conf.Store.Task
	if conf.ElasticSearch != nil {
		search = elasticsearch.NewTask(conf.ElasticSearch)
	}

	// The service checks msgBroker against nil, a typed nil pointer must never reach it.
	var msgBroker service.TaskMessageBrokerRepository

	switch {
	case conf.Kafka != nil:
		msgBroker = kafka.NewTask(conf.Kafka.Producer, conf.Kafka.Topic)
	case conf.RabbitMQ != nil:
		msgBroker = rabbitmq.NewTask(conf.RabbitMQ.Channel)
	}

	jwtConfig := conf.Config.JWT

	tokens := auth.NewTokenManager(auth.Config{
		SecretKey:       jwtConfig.SecretKey,
		Issuer:          jwtConfig.Issuer,
		AccessTokenTTL:  jwtConfig.AccessTokenTTL,
		RefreshTokenTTL: jwtConfig.RefreshTokenTTL,
	})

	authSvc := service.NewAuth(conf.Store.User, auth.NewPasswordHasher(auth.DefaultBcryptCost), tokens)
	taskSvc := service.NewTask(repo, search, msgBroker)

	pages, err := web.NewHandler(conf.Logger)
	if err != nil {
		return nil, internaldomain.WrapErrorf(err, internaldomain.ErrorCodeUnknown, "web.NewHandler")
	}

	rest.RegisterOpenAPI(router)
	rest.NewAuthHandler(authSvc).Register(router)

	router.Group(func(r chi.Router) {
		r.Use(rest.Authenticator(tokens))
		rest.NewTaskHandler(taskSvc).Register(r)
	})

	pages.Register(router)

	router.Handle("/metrics", conf.Metrics)

	lmt := tollbooth.NewLimiter(10, &limiter.ExpirableOptions{DefaultExpirationTTL: time.Hour})

	return &http.Server{
		Handler:           tollbooth.LimitHandler(lmt, router),
		Addr:              conf.Address,
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 1 * time.Second,
		WriteTimeout:      5 * time.Second,
		IdleTimeout:       10 * time.Second,
	}, nil
}
