// iface.go defines the Reference interface shared by every reference
// calendar.
//
// A reference is an independent implementation of UTC broken-down time.
// verify.Run feeds it the same instants as an etime.Calendar and compares
// the fields, so the references deliberately share no code with etime.
package refcal

import (
	"context"

	"github.com/daviddao/etime/pkg/model"
)

// Reference converts Unix seconds into broken-down UTC time.
type Reference interface {
	// Name identifies the reference in reports and on the command line.
	Name() string

	// Decompose returns the fields for unixSec. Instants outside Range
	// return an error marked ErrOutOfRange.
	Decompose(ctx context.Context, unixSec int64) (model.Tm, error)

	// Range returns the inclusive span of Unix seconds the reference
	// handles correctly.
	Range() (min, max int64)

	// Close releases any resources held by the reference.
	Close() error
}

// Compile-time checks.
var (
	_ Reference = (*Stdlib)(nil)
	_ Reference = (*Carbon)(nil)
	_ Reference = (*SQLite)(nil)
)
