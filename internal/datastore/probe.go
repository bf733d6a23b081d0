// Package datastore checks that the agency database is reachable before an
// operator signs in.
package datastore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/nakagami/firebirdsql"
	_ "modernc.org/sqlite"

	"github.com/tnguyen21/securedesk/internal/config"
)

// Queries run by the probe. Firebird needs a FROM clause, so it selects
// from its one-row system table.
const (
	firebirdQuery = "SELECT 'OK' AS RESULT FROM RDB$DATABASE"
	genericQuery  = "SELECT 'OK' AS result"
)

// ErrProbeTimeout is returned when the probe does not finish in time.
var ErrProbeTimeout = errors.New("probe timed out")

// Prober runs a single scalar query against the datastore and reports the
// textual result.
type Prober struct {
	Driver  string // database/sql driver name
	DSN     string
	Query   string
	Timeout time.Duration

	open func(driver, dsn string) (*sql.DB, error)
}

// NewProber builds a Prober for the configured datastore.
func NewProber(cfg config.Database) (*Prober, error) {
	driver, dsn, err := DSN(cfg)
	if err != nil {
		return nil, err
	}
	query := genericQuery
	if cfg.Driver == config.DriverFirebird {
		query = firebirdQuery
	}
	return &Prober{
		Driver:  driver,
		DSN:     dsn,
		Query:   query,
		Timeout: cfg.ProbeTimeout,
	}, nil
}

// DSN returns the database/sql driver name and data source name for cfg.
func DSN(cfg config.Database) (driver, dsn string, err error) {
	switch cfg.Driver {
	case config.DriverFirebird:
		u := url.URL{
			User: url.UserPassword(cfg.User, cfg.Password),
			Host: net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
			Path: "/" + cfg.Path,
		}
		if cfg.Charset != "" {
			u.RawQuery = url.Values{"charset": {cfg.Charset}}.Encode()
		}
		// firebirdsql expects user:pass@host:port/path without a scheme.
		return "firebirdsql", u.String()[2:], nil
	case config.DriverPostgres:
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(cfg.User, cfg.Password),
			Host:     net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
			Path:     "/" + cfg.Path,
			RawQuery: "sslmode=disable",
		}
		return "pgx", u.String(), nil
	case config.DriverSQLite:
		if cfg.Path == "" {
			return "", "", fmt.Errorf("sqlite probe: database path is empty")
		}
		return "sqlite", cfg.Path, nil
	default:
		return "", "", fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

type probeResult struct {
	value string
	err   error
}

// Probe opens a connection, runs the query and closes the connection. The
// whole round trip is bounded by Timeout; a driver that ignores the context
// is abandoned at expiry and its late result discarded.
func (p *Prober) Probe(ctx context.Context) (string, error) {
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	done := make(chan probeResult, 1)
	go func() {
		v, err := p.run(ctx)
		done <- probeResult{value: v, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("%w after %v", ErrProbeTimeout, p.Timeout)
		}
		return res.value, res.err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("%w after %v", ErrProbeTimeout, p.Timeout)
		}
		return "", fmt.Errorf("probe cancelled: %w", ctx.Err())
	}
}

func (p *Prober) run(ctx context.Context) (string, error) {
	open := p.open
	if open == nil {
		open = sql.Open
	}
	db, err := open(p.Driver, p.DSN)
	if err != nil {
		return "", fmt.Errorf("opening %s connection: %w", p.Driver, err)
	}
	defer db.Close()

	var result sql.NullString
	if err := db.QueryRowContext(ctx, p.Query).Scan(&result); err != nil {
		return "", fmt.Errorf("running probe query: %w", err)
	}
	if !result.Valid {
		return "<null>", nil
	}
	return result.String, nil
}
