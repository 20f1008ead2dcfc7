package neo4jdb

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	gobreaker "github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/yungbote/navgraph/internal/data/graph"
	"github.com/yungbote/navgraph/internal/platform/logger"
)

// QueryObserver receives one call per executed query.
type QueryObserver interface {
	ObserveGraphQuery(query, outcome string, d time.Duration)
}

type Option func(*Client)

func WithObserver(o QueryObserver) Option {
	return func(c *Client) { c.observer = o }
}

// Client implements graph.Store on top of the Neo4j driver. Each query runs in
// its own explicit transaction and is never retried.
type Client struct {
	Driver   neo4j.DriverWithContext
	Database string

	queryTimeout time.Duration
	breaker      *gobreaker.CircuitBreaker[graph.Result]
	tracer       trace.Tracer
	observer     QueryObserver
	log          *logger.Logger
}

var _ graph.Store = (*Client)(nil)

// NewFromEnv returns (nil, nil) when no connection is configured.
func NewFromEnv(log *logger.Logger, opts ...Option) (*Client, error) {
	cfg := ConfigFromEnv()
	if !cfg.Enabled() {
		return nil, nil
	}
	return New(log, cfg, opts...)
}

func New(log *logger.Logger, cfg Config, opts ...Option) (*Client, error) {
	if log == nil {
		return nil, fmt.Errorf("neo4jdb: logger required")
	}
	uri, user, password, err := cfg.ConnectionURI()
	if err != nil {
		return nil, err
	}

	connectTimeout := cfg.ConnectTimeout
	if connectTimeout <= 0 {
		connectTimeout = 10 * time.Second
	}
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, password, ""), func(c *neo4j.Config) {
		if cfg.MaxPoolSize > 0 {
			c.MaxConnectionPoolSize = cfg.MaxPoolSize
		}
		c.SocketConnectTimeout = connectTimeout
	})
	if err != nil {
		return nil, fmt.Errorf("neo4jdb: init driver: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("neo4jdb: verify connectivity: %w", err)
	}

	c := newClient(log, driver, cfg)
	for _, opt := range opts {
		opt(c)
	}
	c.log.Info("neo4j connected", "uri", uri, "database", cfg.Database)
	return c, nil
}

func newClient(log *logger.Logger, driver neo4j.DriverWithContext, cfg Config) *Client {
	c := &Client{
		Driver:       driver,
		Database:     cfg.Database,
		queryTimeout: cfg.QueryTimeout,
		tracer:       otel.Tracer("github.com/yungbote/navgraph/internal/platform/neo4jdb"),
		log:          log.With("client", "Neo4jDB"),
	}
	failures := cfg.BreakerFailures
	if failures == 0 {
		failures = 5
	}
	cooldown := cfg.BreakerCooldown
	if cooldown <= 0 {
		cooldown = 30 * time.Second
	}
	c.breaker = gobreaker.NewCircuitBreaker[graph.Result](gobreaker.Settings{
		Name:        "neo4j",
		MaxRequests: 1,
		Timeout:     cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		IsSuccessful: func(err error) bool { return !countsAsFailure(err) },
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.log.Warn("neo4j circuit breaker state change", "breaker", name, "from", from.String(), "to", to.String())
		},
	})
	return c
}

func (c *Client) Read(ctx context.Context, q graph.Query) (graph.Result, error) {
	return c.run(ctx, neo4j.AccessModeRead, q)
}

func (c *Client) Write(ctx context.Context, q graph.Query) (graph.Result, error) {
	return c.run(ctx, neo4j.AccessModeWrite, q)
}

func (c *Client) run(ctx context.Context, mode neo4j.AccessMode, q graph.Query) (graph.Result, error) {
	if c == nil || c.Driver == nil {
		return graph.Result{}, graph.NewStoreError(graph.ErrStoreUnavailable, q.Name, errNotConfigured)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, span := c.tracer.Start(ctx, "neo4j "+q.Name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", "neo4j"),
			attribute.String("db.operation.name", q.Name),
			attribute.String("db.namespace", c.Database),
		),
	)
	defer span.End()

	if c.queryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.queryTimeout)
		defer cancel()
	}

	start := time.Now()
	res, err := c.breaker.Execute(func() (graph.Result, error) {
		out, err := c.execute(ctx, mode, q)
		return out, classify(q.Name, err)
	})
	err = classify(q.Name, err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, graph.KindOf(err))
	} else {
		span.SetAttributes(attribute.Int("db.response.returned_rows", len(res.Records)))
	}
	if c.observer != nil {
		c.observer.ObserveGraphQuery(q.Name, graph.KindOf(err), time.Since(start))
	}
	return res, err
}

func (c *Client) execute(ctx context.Context, mode neo4j.AccessMode, q graph.Query) (graph.Result, error) {
	session := c.Driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   mode,
		DatabaseName: c.Database,
	})
	defer session.Close(ctx)

	var txOpts []func(*neo4j.TransactionConfig)
	if c.queryTimeout > 0 {
		txOpts = append(txOpts, neo4j.WithTxTimeout(c.queryTimeout))
	}
	tx, err := session.BeginTransaction(ctx, txOpts...)
	if err != nil {
		return graph.Result{}, err
	}
	defer tx.Close(ctx)

	res, err := tx.Run(ctx, q.Cypher, q.Params)
	if err != nil {
		_ = tx.Rollback(ctx)
		return graph.Result{}, err
	}
	records, err := res.Collect(ctx)
	if err != nil {
		_ = tx.Rollback(ctx)
		return graph.Result{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return graph.Result{}, err
	}

	out := graph.Result{Records: make([]graph.Record, 0, len(records))}
	for _, rec := range records {
		out.Records = append(out.Records, graph.Record(rec.AsMap()))
	}
	return out, nil
}

// Ping verifies connectivity and that the server accepts a trivial read.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.Driver == nil {
		return graph.NewStoreError(graph.ErrStoreUnavailable, graph.QueryPing, errNotConfigured)
	}
	if err := c.Driver.VerifyConnectivity(ctx); err != nil {
		return classify(graph.QueryPing, err)
	}
	_, err := c.Read(ctx, graph.PingQuery())
	return err
}

func (c *Client) BreakerState() string {
	if c == nil || c.breaker == nil {
		return "disabled"
	}
	return c.breaker.State().String()
}

func (c *Client) Close(ctx context.Context) error {
	if c == nil || c.Driver == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := c.Driver.Close(ctx)
	c.Driver = nil
	return err
}
