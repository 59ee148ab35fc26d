// Package timeline holds the reactive view-state behind the score
// timeline: the full history, the selected month, and the derived
// per-month slice and summary. All state lives on one dispatch goroutine;
// public methods enqueue work onto it, so no field needs a lock.
package timeline

import (
	"context"
	"log/slog"

	"lifescore/internal/core"
	"lifescore/internal/services"
)

// Source is the slice of the score service the view-state consumes.
type Source interface {
	Watch(ctx context.Context) *services.Subscription
	MonthlySummary(ctx context.Context, ym core.YearMonth) (core.MonthlySummary, error)
}

// Snapshot is the presentation-facing read model. Summary is nil while a
// fetch is in flight or after one failed ("unavailable").
type Snapshot struct {
	Records    []core.ScoreRecord // full history, newest date first
	Month      core.YearMonth
	MonthLabel string
	MonthSlice []core.ScoreRecord // order-preserving prefix filter
	Summary    *core.MonthlySummary
}

type ViewState struct {
	source Source
	ctx    context.Context // lifecycle of the consuming surface
	cancel context.CancelFunc
	tasks  chan func()
	done   chan struct{}

	// Owned by the dispatch goroutine.
	records  []core.ScoreRecord
	month    core.YearMonth
	slice    []core.ScoreRecord
	summary  *core.MonthlySummary
	fetchSeq int
}

// New starts the view-state on the clock's current month and begins
// consuming the record stream. Close releases it.
func New(ctx context.Context, source Source, clock services.Clock) *ViewState {
	ctx, cancel := context.WithCancel(ctx)
	vs := &ViewState{
		source: source,
		ctx:    ctx,
		cancel: cancel,
		tasks:  make(chan func(), 16),
		done:   make(chan struct{}),
		month:  core.YearMonthOf(clock.Today()),
	}

	sub := source.Watch(ctx)
	go vs.run(ctx, sub)
	vs.enqueue(vs.fetchSummary)
	return vs
}

// run is the single-threaded dispatch loop. Record snapshots and enqueued
// tasks both land here; nothing else touches the state.
func (vs *ViewState) run(ctx context.Context, sub *services.Subscription) {
	defer close(vs.done)
	defer sub.Close()
	for {
		select {
		case <-ctx.Done():
			return
		case records, ok := <-sub.Updates():
			if !ok {
				return
			}
			vs.records = records
			vs.reslice()
		case task := <-vs.tasks:
			task()
		}
	}
}

func (vs *ViewState) enqueue(task func()) {
	select {
	case vs.tasks <- task:
	case <-vs.done:
	}
}

func (vs *ViewState) reslice() {
	vs.slice = core.FilterMonth(vs.records, vs.month)
}

// ChangeMonth shifts the target month by delta months and requests a fresh
// summary for it. Navigation is unbounded.
func (vs *ViewState) ChangeMonth(delta int) {
	vs.enqueue(func() {
		vs.month = vs.month.AddMonths(delta)
		vs.reslice()
		vs.summary = nil
		vs.fetchSummary()
	})
}

// RefreshSummary re-fetches the summary for the current month. Call after
// every successful save or note update so staleness is bounded to one
// fetch cycle.
func (vs *ViewState) RefreshSummary() {
	vs.enqueue(vs.fetchSummary)
}

// fetchSummary runs the aggregate query off the dispatch goroutine and
// posts the result back onto it. Only the latest request may land: a
// superseded fetch is discarded even if it finishes last. A failed fetch
// leaves the summary unavailable rather than stale or panicking.
func (vs *ViewState) fetchSummary() {
	vs.fetchSeq++
	seq := vs.fetchSeq
	month := vs.month
	go func() {
		// The fetch is bound to the view's lifecycle, not to whichever
		// caller requested it.
		summary, err := vs.source.MonthlySummary(vs.ctx, month)
		vs.enqueue(func() {
			if seq != vs.fetchSeq {
				return
			}
			if err != nil {
				slog.ErrorContext(vs.ctx, "Monthly summary unavailable",
					"month", month.String(), "error", err)
				vs.summary = nil
				return
			}
			vs.summary = &summary
		})
	}()
}

// Snapshot returns a consistent copy of the current state.
func (vs *ViewState) Snapshot() Snapshot {
	reply := make(chan Snapshot, 1)
	vs.enqueue(func() {
		snap := Snapshot{
			Records:    append([]core.ScoreRecord(nil), vs.records...),
			Month:      vs.month,
			MonthLabel: vs.month.Label(),
			MonthSlice: append([]core.ScoreRecord(nil), vs.slice...),
		}
		if vs.summary != nil {
			s := *vs.summary
			snap.Summary = &s
		}
		reply <- snap
	})
	select {
	case snap := <-reply:
		return snap
	case <-vs.done:
		return Snapshot{}
	}
}

// Close tears the view-state down, cancelling in-flight summary fetches
// and the record subscription.
func (vs *ViewState) Close() {
	vs.cancel()
	<-vs.done
}
