// Package verify cross-checks a calendar against a reference calendar.
//
// Run samples timestamps two ways: uniformly at random inside the span both
// calendars cover, and in a deterministic sweep that advances by Step
// seconds so the time of day drifts across every second of the day. Each
// timestamp must decompose to the same fields as the reference and compose
// back to itself.
package verify

import (
	"context"
	"fmt"
	"math/rand/v2"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/daviddao/etime/pkg/model"
	"github.com/daviddao/etime/pkg/refcal"
)

// DefaultStep is three seconds short of a day.
const DefaultStep = 86400 - 3

var (
	// ErrMismatch marks errors caused by a disagreement.
	ErrMismatch = errors.New("calendar mismatch")

	// ErrNoOverlap is returned when the reference covers none of the
	// calendar's timestamps.
	ErrNoOverlap = errors.New("reference range does not overlap calendar")
)

// Calendar is the conversion under test. *etime.Calendar satisfies it.
type Calendar interface {
	Name() string
	Decompose(t model.Timestamp) model.Tm
	ComposeTm(tm model.Tm) model.Timestamp
	ToUnix(t model.Timestamp) int64
}

// Options controls a run. Zero values select defaults.
type Options struct {
	Iterations int    // timestamps per sampling method; default 1e6
	Workers    int    // default GOMAXPROCS
	Seed       uint64 // random sampling seed
	Step       int64  // sweep increment in seconds; default DefaultStep
}

func (o Options) withDefaults() Options {
	if o.Iterations <= 0 {
		o.Iterations = 1_000_000
	}
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	if o.Workers > o.Iterations {
		o.Workers = o.Iterations
	}
	if o.Step <= 0 {
		o.Step = DefaultStep
	}
	return o
}

// Mismatch describes the first disagreement found.
type Mismatch struct {
	Timestamp model.Timestamp
	Unix      int64
	Got       model.Tm // from the calendar
	Want      model.Tm // from the reference
	Composed  model.Timestamp
}

// RoundTrip reports whether the failure was Compose not inverting Decompose
// rather than a field disagreement.
func (m *Mismatch) RoundTrip() bool { return m.Got == m.Want }

func (m *Mismatch) Error() string {
	if m.RoundTrip() {
		return fmt.Sprintf("timestamp %d: compose(decompose) = %d", m.Timestamp, m.Composed)
	}
	return fmt.Sprintf("timestamp %d (unix %d): got %+v, want %+v", m.Timestamp, m.Unix, m.Got, m.Want)
}

// Report summarises a run.
type Report struct {
	Calendar  string
	Reference string
	Checked   int64
	Elapsed   time.Duration
	Mismatch  *Mismatch
}

func (r Report) String() string {
	status := "ok"
	if r.Mismatch != nil {
		status = "MISMATCH: " + r.Mismatch.Error()
	}
	rate := ""
	if secs := r.Elapsed.Seconds(); secs > 0 {
		rate = fmt.Sprintf(", %s/s", humanize.Comma(int64(float64(r.Checked)/secs)))
	}
	return fmt.Sprintf("%s vs %s: checked %s timestamps in %s%s: %s",
		r.Calendar, r.Reference, humanize.Comma(r.Checked), r.Elapsed.Round(time.Millisecond), rate, status)
}

// span returns the timestamps whose Unix seconds fall inside the reference's
// range.
func span(cal Calendar, ref refcal.Reference) (lo, hi int64, err error) {
	rlo, rhi := ref.Range()
	off := cal.ToUnix(0)
	lo, hi = max(rlo-off, 0), rhi-off
	if hi < lo {
		return 0, 0, errors.Wrapf(ErrNoOverlap, "%s vs %s", cal.Name(), ref.Name())
	}
	return lo, hi, nil
}

// Run checks cal against ref. A disagreement stops every worker and is
// returned both in the report and as an error marked ErrMismatch.
func Run(ctx context.Context, cal Calendar, ref refcal.Reference, opts Options) (Report, error) {
	opts = opts.withDefaults()
	rep := Report{Calendar: cal.Name(), Reference: ref.Name()}

	lo, hi, err := span(cal, ref)
	if err != nil {
		return rep, err
	}
	width := uint64(hi-lo) + 1

	var checked atomic.Int64
	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < opts.Workers; w++ {
		n := opts.Iterations / opts.Workers
		if w < opts.Iterations%opts.Workers {
			n++
		}
		g.Go(func() error {
			rng := rand.New(rand.NewPCG(opts.Seed, uint64(w)))
			for k := 0; k < n; k++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				random := model.Timestamp(uint64(lo) + rng.Uint64N(width))
				idx := uint64(k)*uint64(opts.Workers) + uint64(w)
				sweep := model.Timestamp(uint64(lo) + idx*uint64(opts.Step)%width)
				for _, t := range [2]model.Timestamp{random, sweep} {
					if err := check(gctx, cal, ref, t); err != nil {
						return err
					}
				}
				checked.Add(2)
			}
			return nil
		})
	}
	err = g.Wait()
	rep.Checked = checked.Load()
	rep.Elapsed = time.Since(start)

	var m *Mismatch
	if errors.As(err, &m) {
		rep.Mismatch = m
	}
	if err != nil && ctx.Err() != nil && rep.Mismatch == nil {
		return rep, errors.Wrap(ctx.Err(), "verify interrupted")
	}
	return rep, err
}

func check(ctx context.Context, cal Calendar, ref refcal.Reference, t model.Timestamp) error {
	unix := cal.ToUnix(t)
	got := cal.Decompose(t)
	want, err := ref.Decompose(ctx, unix)
	if err != nil {
		return errors.Wrapf(err, "reference %s at unix %d", ref.Name(), unix)
	}
	composed := cal.ComposeTm(got)
	if got != want || composed != t {
		return errors.Mark(&Mismatch{Timestamp: t, Unix: unix, Got: got, Want: want, Composed: composed}, ErrMismatch)
	}
	return nil
}
