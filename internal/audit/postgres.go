//go:build postgres

package audit

import (
	"context"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/google/uuid"
)

// PostgresLogger is a PostgreSQL-backed implementation of Logger. It owns
// its schema and creates it on connect.
type PostgresLogger struct {
	pool    *pgxpool.Pool
	ownPool bool // true if we created the pool (and should close it)
}

const postgresSchema = `
CREATE TABLE IF NOT EXISTS calculation_audit (
	id          UUID PRIMARY KEY,
	timestamp   TIMESTAMPTZ NOT NULL,
	request_id  TEXT,
	client_ip   TEXT,
	address     TEXT NOT NULL,
	mask_spec   TEXT,
	source      TEXT,
	outcome     TEXT NOT NULL,
	status_code INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_calculation_audit_timestamp ON calculation_audit(timestamp);
CREATE INDEX IF NOT EXISTS idx_calculation_audit_outcome ON calculation_audit(outcome);
`

// NewPostgresLogger creates a PostgreSQL-backed audit logger with its own
// connection pool.
func NewPostgresLogger(connStr string) (*PostgresLogger, error) {
	pool, err := pgxpool.New(context.Background(), connStr)
	if err != nil {
		return nil, err
	}
	if _, err := pool.Exec(context.Background(), postgresSchema); err != nil {
		pool.Close()
		return nil, err
	}
	return &PostgresLogger{pool: pool, ownPool: true}, nil
}

// NewPostgresLoggerFromPool creates a PostgreSQL-backed audit logger using
// an existing pool. The schema must already exist or be creatable.
func NewPostgresLoggerFromPool(pool *pgxpool.Pool) (*PostgresLogger, error) {
	if _, err := pool.Exec(context.Background(), postgresSchema); err != nil {
		return nil, err
	}
	return &PostgresLogger{pool: pool, ownPool: false}, nil
}

// Close closes the connection pool if this logger owns it.
func (s *PostgresLogger) Close() error {
	if s.ownPool {
		s.pool.Close()
	}
	return nil
}

// Ping verifies the database is reachable.
func (s *PostgresLogger) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Log records an event to the database.
func (s *PostgresLogger) Log(ctx context.Context, event *Event) error {
	if event == nil {
		return nil
	}

	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO calculation_audit (id, timestamp, request_id, client_ip, address, mask_spec, source, outcome, status_code)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		event.ID, event.Timestamp,
		nullStr(event.RequestID),
		nullStr(event.ClientIP),
		event.Address,
		nullStr(event.MaskSpec),
		nullStr(event.Source),
		event.Outcome,
		event.StatusCode,
	)
	return err
}

// List retrieves events with optional filtering.
func (s *PostgresLogger) List(ctx context.Context, opts ListOptions) ([]*Event, int, error) {
	where := "1=1"
	args := []any{}
	argIdx := 1

	if opts.Outcome != "" {
		where += " AND outcome = $" + strconv.Itoa(argIdx)
		args = append(args, opts.Outcome)
		argIdx++
	}
	if opts.Address != "" {
		where += " AND address = $" + strconv.Itoa(argIdx)
		args = append(args, opts.Address)
		argIdx++
	}
	if opts.Since != nil {
		where += " AND timestamp >= $" + strconv.Itoa(argIdx)
		args = append(args, *opts.Since)
		argIdx++
	}
	if opts.Until != nil {
		where += " AND timestamp <= $" + strconv.Itoa(argIdx)
		args = append(args, *opts.Until)
		argIdx++
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM calculation_audit WHERE " + where
	if err := s.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	if opts.Limit <= 0 {
		opts.Limit = 50
	}
	if opts.Limit > 1000 {
		opts.Limit = 1000
	}

	query := "SELECT id, timestamp, request_id, client_ip, address, mask_spec, source, outcome, status_code FROM calculation_audit WHERE " + where +
		" ORDER BY timestamp DESC LIMIT $" + strconv.Itoa(argIdx) + " OFFSET $" + strconv.Itoa(argIdx+1)
	args = append(args, opts.Limit, opts.Offset)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	events, err := scanEvents(rows)
	if err != nil {
		return nil, 0, err
	}

	return events, total, nil
}

// scanEvents reads events from a pgx result set.
func scanEvents(rows pgx.Rows) ([]*Event, error) {
	var events []*Event
	for rows.Next() {
		var e Event
		var requestID, clientIP, maskSpec, source *string

		if err := rows.Scan(&e.ID, &e.Timestamp, &requestID, &clientIP, &e.Address, &maskSpec, &source, &e.Outcome, &e.StatusCode); err != nil {
			return nil, err
		}

		e.RequestID = deref(requestID)
		e.ClientIP = deref(clientIP)
		e.MaskSpec = deref(maskSpec)
		e.Source = deref(source)

		events = append(events, &e)
	}
	return events, rows.Err()
}

func nullStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
