package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/srCochayuyo/censudex-orders-service/internal/core/domain/model/kernel"
)

// ErrValidationRace signals that the validated counter for an order exceeded
// its expected line count. This is an internal invariant violation: it should
// never surface in normal operation and is treated as a fatal assertion in tests.
var ErrValidationRace = errors.New("validated count exceeded expected line count")

// Decision is the outcome of folding one stock-validation event into an
// order's progress.
type Decision int

const (
	// DecisionPending means the event changed nothing observable: more
	// results are still expected, or the order already reached a terminal
	// decision and the event is a late/duplicate delivery.
	DecisionPending Decision = iota

	// DecisionAdvance means every expected line validated successfully and
	// the order must advance to Processing. Produced exactly once per order.
	DecisionAdvance

	// DecisionCancel means a line failed stock validation and the order
	// must be cancelled. Produced exactly once per order.
	DecisionCancel
)

// String returns the human-readable name of the decision.
func (d Decision) String() string {
	switch d {
	case DecisionAdvance:
		return "Advance"
	case DecisionCancel:
		return "Cancel"
	default:
		return "Pending"
	}
}

// LineCounter provides the expected number of validation results for an
// order. Backed by the order repository in production.
type LineCounter interface {
	CountLines(ctx context.Context, orderID kernel.UUID) (int, error)
}

// ValidationAggregator is a domain service that converts N independent,
// out-of-order, at-least-once stock-validation events per order into exactly
// one terminal decision (Advance or Cancel), exactly once.
//
// Correctness properties, enforced under arbitrary interleavings including
// truly concurrent events for the same order:
//   - The expected total is read before the first increment is counted
//   - Increment-then-compare is atomic per order, so the final success
//     produces exactly one Advance
//   - A failure always wins: once observed it drives Cancel, and no Advance
//     is ever produced for that order afterwards
//   - After a terminal decision, further events for the order id are no-ops
//
// Progress state is process-local. Running multiple replicas requires a
// shared keyed store with atomic increment instead; with per-process maps
// two replicas could each decide "complete" for disjoint event subsets.
//
// Example:
//
//	aggregator := services.NewValidationAggregator(orderRepo)
//	decision, err := aggregator.OnValidationResult(ctx, orderID, true)
//	switch decision {
//	case services.DecisionAdvance:
//	    // transition the order to Processing
//	case services.DecisionCancel:
//	    // cancel the order
//	}
type ValidationAggregator struct {
	lines LineCounter

	mu       sync.Mutex
	progress map[kernel.UUID]*validationProgress
	decided  map[kernel.UUID]decidedMark
}

// validationProgress tracks the in-flight validation state for one order.
// The entry mutex makes increment-then-compare atomic per order.
type validationProgress struct {
	mu        sync.Mutex
	expected  int
	validated int
	done      bool
	startedAt time.Time
}

// decidedMark remembers a terminal decision so late or duplicate events are
// ignored instead of re-creating progress for a settled order.
type decidedMark struct {
	decision  Decision
	settledAt time.Time
}

// NewValidationAggregator creates an aggregator reading expected line counts
// through the given LineCounter.
func NewValidationAggregator(lines LineCounter) *ValidationAggregator {
	return &ValidationAggregator{
		lines:    lines,
		progress: make(map[kernel.UUID]*validationProgress),
		decided:  make(map[kernel.UUID]decidedMark),
	}
}

// OnValidationResult folds one stock-validation event into the order's
// progress and returns the resulting decision.
//
// On the first event for an order id the expected total is read through the
// LineCounter before any increment is counted. A failed validation yields
// DecisionCancel immediately; the final successful validation yields
// DecisionAdvance; everything else yields DecisionPending. Once a terminal
// decision has been produced for an order id, all further events for that id
// yield DecisionPending without side effects.
func (a *ValidationAggregator) OnValidationResult(
	ctx context.Context,
	orderID kernel.UUID,
	success bool,
) (Decision, error) {
	entry, settled, err := a.entryFor(ctx, orderID)
	if err != nil || settled {
		return DecisionPending, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if entry.done {
		return DecisionPending, nil
	}

	if !success {
		entry.done = true
		a.settle(orderID, DecisionCancel)
		return DecisionCancel, nil
	}

	entry.validated++
	if entry.validated > entry.expected {
		return DecisionPending, ErrValidationRace
	}

	if entry.validated == entry.expected {
		entry.done = true
		a.settle(orderID, DecisionAdvance)
		return DecisionAdvance, nil
	}

	return DecisionPending, nil
}

// ExpireStale force-cancels every in-flight progress entry older than the
// given age and returns the affected order ids so the caller can drive the
// corresponding lifecycle cancellations. Terminal-decision marks older than
// the same age are pruned to bound memory.
//
// Orders whose validations never fully arrive would otherwise stay Pending
// and keep their progress entry resident forever.
func (a *ValidationAggregator) ExpireStale(olderThan time.Duration) []kernel.UUID {
	cutoff := time.Now().Add(-olderThan)

	type staleEntry struct {
		id    kernel.UUID
		entry *validationProgress
	}

	a.mu.Lock()
	stale := make([]staleEntry, 0)
	for id, entry := range a.progress {
		if entry.startedAt.Before(cutoff) {
			stale = append(stale, staleEntry{id: id, entry: entry})
		}
	}
	for id, mark := range a.decided {
		if mark.settledAt.Before(cutoff) {
			delete(a.decided, id)
		}
	}
	a.mu.Unlock()

	cancelled := make([]kernel.UUID, 0, len(stale))
	for _, s := range stale {
		s.entry.mu.Lock()
		if !s.entry.done {
			s.entry.done = true
			a.settle(s.id, DecisionCancel)
			cancelled = append(cancelled, s.id)
		}
		s.entry.mu.Unlock()
	}

	return cancelled
}

// InFlight returns the number of orders with unresolved validation progress.
func (a *ValidationAggregator) InFlight() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.progress)
}

// entryFor returns the progress entry for the order, creating it lazily on
// the first event. The second return value is true when the order already
// reached a terminal decision. The expected total is read outside the map
// lock; concurrent creators race on CountLines but only one entry wins.
func (a *ValidationAggregator) entryFor(
	ctx context.Context,
	orderID kernel.UUID,
) (*validationProgress, bool, error) {
	a.mu.Lock()
	if _, ok := a.decided[orderID]; ok {
		a.mu.Unlock()
		return nil, true, nil
	}
	if entry, ok := a.progress[orderID]; ok {
		a.mu.Unlock()
		return entry, false, nil
	}
	a.mu.Unlock()

	expected, err := a.lines.CountLines(ctx, orderID)
	if err != nil {
		return nil, false, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.decided[orderID]; ok {
		return nil, true, nil
	}
	if entry, ok := a.progress[orderID]; ok {
		return entry, false, nil
	}

	entry := &validationProgress{
		expected:  expected,
		startedAt: time.Now(),
	}
	a.progress[orderID] = entry
	return entry, false, nil
}

// settle records the terminal decision and evicts the progress entry.
// Callers hold the entry mutex; the map mutex is never held while an entry
// mutex is being acquired, so the lock order is always entry then map.
func (a *ValidationAggregator) settle(orderID kernel.UUID, decision Decision) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.progress, orderID)
	a.decided[orderID] = decidedMark{decision: decision, settledAt: time.Now()}
}
