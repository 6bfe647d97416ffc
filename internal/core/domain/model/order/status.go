package order

import (
	"fmt"

	"github.com/srCochayuyo/censudex-orders-service/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct business workflow.
//
// State transitions:
//
//	Pending ──> Processing ──> Shipped ──> Delivered
//	   │             │
//	   └──> Cancelled <──┘
//
// Pending may also jump straight to Shipped or Delivered (manual state
// changes by an operator). Delivered and Cancelled are final states.
// Cancellation is only possible before the order leaves the warehouse,
// so Shipped and Delivered orders reject it with distinct errors.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status when an order is first created.
	// Orders stay Pending until every line passed stock validation.
	Pending

	// Processing indicates all lines passed stock validation and the
	// order is being prepared.
	Processing

	// Shipped indicates the order left the warehouse. Entering this
	// status requires a tracking number.
	Shipped

	// Delivered indicates the order reached the customer.
	// This is a final state with no further transitions allowed.
	Delivered

	// Cancelled indicates the order was cancelled, either manually or
	// because stock validation failed for one of its lines.
	// This is a final state with no further transitions allowed.
	Cancelled
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Pending:    "Pending",
		Processing: "Processing",
		Shipped:    "Shipped",
		Delivered:  "Delivered",
		Cancelled:  "Cancelled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:    "Pending",
		Processing: "Processing",
		Shipped:    "Shipped",
		Delivered:  "Delivered",
		Cancelled:  "Cancelled",
	}
}

// allowedTransitions returns the target statuses reachable from each status.
// Delivered and Cancelled are final and map to empty sets.
func allowedTransitions() map[Status][]Status {
	return map[Status][]Status{
		Pending:    {Processing, Shipped, Delivered, Cancelled},
		Processing: {Shipped, Delivered, Cancelled},
		Shipped:    {Delivered},
		Delivered:  {},
		Cancelled:  {},
	}
}

// ParseStatus converts the external string representation of a status into
// a Status value. Unknown is never parseable.
//
// Returns an error if the string does not name a valid status.
func ParseStatus(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not a valid status", s),
	)
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: Pending, Processing, Shipped, Delivered, Cancelled.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// This method implements the fmt.Stringer interface and is safe
// to call on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsFinal reports whether the status admits no further transitions.
func (s Status) IsFinal() bool {
	return s == Delivered || s == Cancelled
}

// CanTransitionTo reports whether the state machine allows moving from the
// current status to target.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range allowedTransitions()[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// TransitionTo validates the transition from the current status to target
// and returns target on success.
//
// Returns ErrInvalidTransition if target is not in the allowed set for the
// current status.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}

	if !s.CanTransitionTo(target) {
		return Unknown, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s, target)
	}

	return target, nil
}

// CancelTransition validates cancellation from the current status and
// returns Cancelled on success.
//
// Orders already in a final or shipped state fail with a distinct error per
// case so callers can present a precise message:
//   - Cancelled  -> ErrAlreadyCancelled
//   - Shipped    -> ErrAlreadyShipped
//   - Delivered  -> ErrAlreadyDelivered
func (s Status) CancelTransition() (Status, error) {
	switch s {
	case Cancelled:
		return Unknown, ErrAlreadyCancelled
	case Shipped:
		return Unknown, ErrAlreadyShipped
	case Delivered:
		return Unknown, ErrAlreadyDelivered
	case Pending, Processing:
		return Cancelled, nil
	default:
		return Unknown, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s, Cancelled)
	}
}
