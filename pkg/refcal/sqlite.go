package refcal

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/daviddao/etime/pkg/model"

	_ "modernc.org/sqlite"
)

// One row per instant: year month day hour min sec weekday yday.
const strftimeQuery = `SELECT strftime('%Y %m %d %H %M %S %w %j', ?, 'unixepoch')`

// SQLite asks SQLite's date functions for broken-down time. strftime only
// covers years 0000 through 9999 and returns NULL outside them.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens the database at path, or an in-memory database when path
// is empty. No schema is created; only strftime is used.
func NewSQLite(path string) (*SQLite, error) {
	if path == "" {
		path = ":memory:"
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	dsn := path + sep + "_pragma=busy_timeout(60000)&_pragma=query_only(1)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "open sqlite %q", path)
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "ping sqlite %q", path)
	}
	return &SQLite{db: db}, nil
}

func (*SQLite) Name() string { return "sqlite" }

func (*SQLite) Range() (int64, int64) { return minYear1, maxYear9999 }

func (s *SQLite) Decompose(ctx context.Context, unixSec int64) (model.Tm, error) {
	if err := checkRange(s, unixSec); err != nil {
		return model.Tm{}, err
	}

	var out sql.NullString
	err := retryOnContention(ctx, func() error {
		return s.db.QueryRowContext(ctx, strftimeQuery, unixSec).Scan(&out)
	})
	if err != nil {
		return model.Tm{}, errors.Wrapf(err, "sqlite: strftime(%d)", unixSec)
	}
	if !out.Valid {
		return model.Tm{}, errors.Wrapf(ErrOutOfRange, "sqlite: strftime(%d) is NULL", unixSec)
	}
	return parseStrftime(out.String)
}

// Close closes the database connection.
func (s *SQLite) Close() error { return s.db.Close() }

func parseStrftime(s string) (model.Tm, error) {
	var year, month, day, hour, min, sec, wday, yday int
	n, err := fmt.Sscanf(s, "%d %d %d %d %d %d %d %d", &year, &month, &day, &hour, &min, &sec, &wday, &yday)
	if err != nil {
		return model.Tm{}, errors.Wrapf(err, "sqlite: parse %q", s)
	}
	if n != 8 {
		return model.Tm{}, errors.Newf("sqlite: parse %q: got %d fields, want 8", s, n)
	}
	return fields(year, month, day, hour, min, sec, wday, yday), nil
}
