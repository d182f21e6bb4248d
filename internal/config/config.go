// Package config builds the immutable process configuration once at start up.
package config

import (
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/sanLimbu/tasks-api/internal"
)

// Getter returns raw configuration values, envvar.Configuration implements it.
type Getter interface {
	Get(key string) (string, error)
}

// Accepted values of DATABASE_DRIVER, MESSAGE_BROKER and SEARCH_BACKEND.
const (
	DatabaseDriverPostgres = "postgres"
	DatabaseDriverSQLite   = "sqlite"

	BrokerNone     = ""
	BrokerKafka    = "kafka"
	BrokerRabbitMQ = "rabbitmq"

	SearchBackendDatabase      = "database"
	SearchBackendElasticsearch = "elasticsearch"
)

// Config holds every setting used by the binaries, it is never modified after New returns.
type Config struct {
	Database      Database
	JWT           JWT
	CORS          CORS
	SMTP          SMTP
	Notifier      Notifier
	Memcached     Memcached
	Redis         Redis
	Broker        Broker
	Search        Search
	Elasticsearch Elasticsearch
	Telemetry     Telemetry
}

// Database selects the store and holds its connection settings.
type Database struct {
	Driver     string
	Host       string
	Port       string
	Username   string
	Password   string
	Name       string
	SSLMode    string
	SQLitePath string
}

// Validate requires the settings of the selected driver.
func (d Database) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.Driver, validation.Required, validation.In(DatabaseDriverPostgres, DatabaseDriverSQLite)),
		validation.Field(&d.Host, validation.When(d.Driver == DatabaseDriverPostgres, validation.Required)),
		validation.Field(&d.Name, validation.When(d.Driver == DatabaseDriverPostgres, validation.Required)),
		validation.Field(&d.SQLitePath, validation.When(d.Driver == DatabaseDriverSQLite, validation.Required)),
	)
}

// JWT configures token signing and lifetimes.
type JWT struct {
	SecretKey       string
	Issuer          string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

// Validate requires a secret and both lifetimes.
func (j JWT) Validate() error {
	return validation.ValidateStruct(&j,
		validation.Field(&j.SecretKey, validation.Required),
		validation.Field(&j.AccessTokenTTL, validation.Required),
		validation.Field(&j.RefreshTokenTTL, validation.Required),
	)
}

// CORS lists the origins allowed to call the API from a browser.
type CORS struct {
	AllowedOrigins []string
}

// AllowAll indicates every origin is allowed.
func (c CORS) AllowAll() bool {
	for _, o := range c.AllowedOrigins {
		if o == "*" {
			return true
		}
	}

	return false
}

// SMTP configures the relay used by the notifier.
type SMTP struct {
	Host     string
	Port     int
	Username string
	Password string
}

// Notifier configures the sender address, the cron schedule and the run lock TTL.
type Notifier struct {
	From     string
	Schedule string
	LockTTL  time.Duration
}

// Validate requires a valid sender address and a schedule.
func (n Notifier) Validate() error {
	return validation.ValidateStruct(&n,
		validation.Field(&n.From, validation.Required, is.Email),
		validation.Field(&n.Schedule, validation.Required),
	)
}

// Memcached configures the task cache, an empty host disables it.
type Memcached struct {
	Host string
}

// Enabled indicates a host is configured.
func (m Memcached) Enabled() bool { return m.Host != "" }

// Redis configures the notifier lock, an empty host disables it.
type Redis struct {
	Host string
	DB   int
}

// Enabled indicates a host is configured.
func (r Redis) Enabled() bool { return r.Host != "" }

// Broker selects where task events are published.
type Broker struct {
	Kind        string
	KafkaHost   string
	KafkaTopic  string
	RabbitMQURL string
}

// Validate requires the settings of the selected broker.
func (b Broker) Validate() error {
	return validation.ValidateStruct(&b,
		validation.Field(&b.Kind, validation.In(BrokerKafka, BrokerRabbitMQ)),
		validation.Field(&b.KafkaHost, validation.When(b.Kind == BrokerKafka, validation.Required)),
		validation.Field(&b.KafkaTopic, validation.When(b.Kind == BrokerKafka, validation.Required)),
		validation.Field(&b.RabbitMQURL, validation.When(b.Kind == BrokerRabbitMQ, validation.Required)),
	)
}

// Search selects the backend answering list requests.
type Search struct {
	Backend string
}

// Validate requires a known backend.
func (s Search) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Backend, validation.Required, validation.In(SearchBackendDatabase, SearchBackendElasticsearch)),
	)
}

// Elasticsearch configures the search cluster.
type Elasticsearch struct {
	URL string
}

// Telemetry configures the service name and the trace exporter.
type Telemetry struct {
	ServiceName    string
	JaegerEndpoint string
}

// New reads all the values from conf.
func New(conf Getter) (Config, error) {
	var (
		r   = reader{conf: conf}
		cfg Config
	)

	cfg.Database = Database{
		Driver:     r.string("DATABASE_DRIVER", DatabaseDriverPostgres),
		Host:       r.string("DATABASE_HOST", ""),
		Port:       r.string("DATABASE_PORT", "5432"),
		Username:   r.string("DATABASE_USERNAME", ""),
		Password:   r.string("DATABASE_PASSWORD", ""),
		Name:       r.string("DATABASE_NAME", ""),
		SSLMode:    r.string("DATABASE_SSLMODE", "disable"),
		SQLitePath: r.string("SQLITE_PATH", "tasks.db"),
	}

	cfg.JWT = JWT{
		SecretKey:       r.string("JWT_SECRET_KEY", ""),
		Issuer:          r.string("JWT_ISSUER", "tasks-api"),
		AccessTokenTTL:  r.duration("JWT_ACCESS_TTL", 60*time.Minute),
		RefreshTokenTTL: r.duration("JWT_REFRESH_TTL", 7*24*time.Hour),
	}

	cfg.CORS = CORS{
		AllowedOrigins: r.list("CORS_ALLOWED_ORIGINS"),
	}

	cfg.SMTP = SMTP{
		Host:     r.string("SMTP_HOST", "localhost"),
		Port:     r.int("SMTP_PORT", 25),
		Username: r.string("SMTP_USERNAME", ""),
		Password: r.string("SMTP_PASSWORD", ""),
	}

	cfg.Notifier = Notifier{
		From:     r.string("NOTIFIER_FROM", "noreply@example.com"),
		Schedule: r.string("NOTIFIER_SCHEDULE", "0 * * * *"),
		LockTTL:  r.duration("NOTIFIER_LOCK_TTL", 5*time.Minute),
	}

	cfg.Memcached = Memcached{Host: r.string("MEMCACHED_HOST", "")}

	cfg.Redis = Redis{
		Host: r.string("REDIS_HOST", ""),
		DB:   r.int("REDIS_DB", 0),
	}

	cfg.Broker = Broker{
		Kind:        r.string("MESSAGE_BROKER", BrokerNone),
		KafkaHost:   r.string("KAFKA_HOST", ""),
		KafkaTopic:  r.string("KAFKA_TOPIC", "tasks"),
		RabbitMQURL: r.string("RABBITMQ_URL", ""),
	}

	cfg.Search = Search{Backend: r.string("SEARCH_BACKEND", SearchBackendDatabase)}

	cfg.Elasticsearch = Elasticsearch{URL: r.string("ELASTICSEARCH_URL", "http://localhost:9200")}

	cfg.Telemetry = Telemetry{
		ServiceName:    r.string("OTEL_SERVICE_NAME", "tasks-api"),
		JaegerEndpoint: r.string("JAEGER_ENDPOINT", ""),
	}

	if r.err != nil {
		return Config{}, r.err
	}

	if err := validation.ValidateStruct(&cfg,
		validation.Field(&cfg.Database),
		validation.Field(&cfg.JWT),
		validation.Field(&cfg.Notifier),
		validation.Field(&cfg.Broker),
		validation.Field(&cfg.Search),
	); err != nil {
		return Config{}, internal.WrapErrorf(err, internal.ErrorCodeInvalidArgument, "validation")
	}

	return cfg, nil
}

// reader keeps the first error found so New can read every key in one pass.
type reader struct {
	conf Getter
	err  error
}

func (r *reader) string(key, def string) string {
	if r.err != nil {
		return def
	}

	val, err := r.conf.Get(key)
	if err != nil {
		r.err = internal.WrapErrorf(err, internal.ErrorCodeInvalidArgument, "conf.Get %s", key)
		return def
	}

	if val == "" {
		return def
	}

	return val
}

func (r *reader) int(key string, def int) int {
	val := r.string(key, "")
	if val == "" {
		return def
	}

	res, err := strconv.Atoi(val)
	if err != nil {
		r.setErr(err, key)
		return def
	}

	return res
}

func (r *reader) duration(key string, def time.Duration) time.Duration {
	val := r.string(key, "")
	if val == "" {
		return def
	}

	res, err := time.ParseDuration(val)
	if err != nil {
		r.setErr(err, key)
		return def
	}

	return res
}

func (r *reader) list(key string) []string {
	val := r.string(key, "")
	if val == "" {
		return nil
	}

	var res []string
	for _, v := range strings.Split(val, ",") {
		if v = strings.TrimSpace(v); v != "" {
			res = append(res, v)
		}
	}

	return res
}

func (r *reader) setErr(err error, key string) {
	if r.err == nil {
		r.err = internal.WrapErrorf(err, internal.ErrorCodeInvalidArgument, "parsing %s", key)
	}
}
