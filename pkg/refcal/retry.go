package refcal

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/cockroachdb/errors"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// A file-backed reference database shared with another process can report
// SQLITE_BUSY or SQLITE_LOCKED even with busy_timeout set. Reads are retried
// with exponential backoff and jitter.
type retryConfig struct {
	maxRetries int
	baseDelay  time.Duration
	maxDelay   time.Duration
}

var defaultRetryConfig = retryConfig{
	maxRetries: 3,
	baseDelay:  20 * time.Millisecond,
	maxDelay:   200 * time.Millisecond,
}

// sqliteCoder is the part of *sqlite.Error used to classify failures.
type sqliteCoder interface {
	Code() int
}

var _ sqliteCoder = (*sqlite.Error)(nil)

// isTransientSQLiteErr reports whether err carries a SQLite result code that
// a retry can clear. Extended codes such as SQLITE_BUSY_SNAPSHOT count as
// their primary code, except short reads which only exist as an extended code.
func isTransientSQLiteErr(err error) bool {
	var coded sqliteCoder
	if !errors.As(err, &coded) {
		return false
	}
	code := coded.Code()
	switch {
	case code == sqlite3.SQLITE_IOERR_SHORT_READ:
		return true
	case code&0xff == sqlite3.SQLITE_BUSY, code&0xff == sqlite3.SQLITE_LOCKED:
		return true
	}
	return false
}

func retryOnContention(ctx context.Context, fn func() error) error {
	return retryOp(ctx, defaultRetryConfig, fn)
}

// retryOp runs fn until it succeeds, fails permanently, runs out of retries,
// or ctx is done. The last error from fn is returned.
func retryOp(ctx context.Context, cfg retryConfig, fn func() error) error {
	var err error
	for attempt := 0; attempt <= cfg.maxRetries; attempt++ {
		err = fn()
		if err == nil || !isTransientSQLiteErr(err) {
			return err
		}
		if attempt == cfg.maxRetries {
			break
		}
		timer := time.NewTimer(backoffDelay(cfg, attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return err
		case <-timer.C:
		}
	}
	return err
}

// backoffDelay is min(baseDelay * 2^attempt, maxDelay) plus [0, baseDelay) of jitter.
func backoffDelay(cfg retryConfig, attempt int) time.Duration {
	delay := cfg.baseDelay << uint(attempt)
	if delay > cfg.maxDelay || delay <= 0 {
		delay = cfg.maxDelay
	}
	return delay + time.Duration(rand.Int64N(int64(cfg.baseDelay)))
}
