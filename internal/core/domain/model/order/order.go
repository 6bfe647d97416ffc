package order

import (
	"errors"
	"time"

	"github.com/srCochayuyo/censudex-orders-service/internal/core/domain/model/kernel"
	"github.com/srCochayuyo/censudex-orders-service/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder factory method. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrInvalidTransition is returned when the requested target status is not
	// in the allowed set for the order's current status.
	ErrInvalidTransition = errors.New("status transition is not allowed")

	// ErrMissingTrackingNumber is returned when transitioning to Shipped
	// without a tracking number.
	ErrMissingTrackingNumber = errors.New("tracking number is required to ship an order")

	// ErrUnexpectedTrackingNumber is returned when a tracking number is
	// supplied for any transition other than Shipped. Setting a tracking
	// number is only legal in the same call that sets the status to Shipped.
	ErrUnexpectedTrackingNumber = errors.New("tracking number is only allowed when shipping an order")

	// ErrAlreadyCancelled, ErrAlreadyShipped and ErrAlreadyDelivered distinguish
	// the terminal-state cancellation attempts so callers can present a
	// precise message per case.
	ErrAlreadyCancelled = errors.New("order is already cancelled")
	ErrAlreadyShipped   = errors.New("order was already shipped and can no longer be cancelled")
	ErrAlreadyDelivered = errors.New("order was already delivered and can no longer be cancelled")
)

// Order represents a customer purchase order. It is the aggregate root that
// manages the order lifecycle from creation through stock validation to
// delivery or cancellation.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and a non-empty order number
//   - Must reference the owning user (id, display name, email)
//   - Must contain at least one valid line
//   - Total price is always recomputed from lines, never stored
//   - Tracking number is present if and only if the order reached Shipped
//   - Status transitions follow the Status state machine
//   - Can only be created through NewOrder or RestoreOrder
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// orderNumber is the human-readable unique code (CEN-XXXX)
	orderNumber string

	// userID identifies the user owning the order
	userID kernel.UUID

	// userName and userEmail are denormalized at creation time for
	// history listings and notifications
	userName  string
	userEmail string

	// address is the shipping destination
	address string

	// trackingNumber is set when the order ships (empty otherwise)
	trackingNumber string

	// status represents the current state in the order lifecycle
	status Status

	// createdAt is stamped at creation; updatedAt on every transition
	createdAt time.Time
	updatedAt *time.Time

	// lines holds the ordered products; never empty
	lines []Line

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a new Order in Pending status with validation. This is
// the only way to create a valid new Order; persistence rehydration goes
// through RestoreOrder.
//
// The creation timestamp is stamped with the current UTC time.
func NewOrder(
	id kernel.UUID,
	orderNumber string,
	userID kernel.UUID,
	userName string,
	userEmail string,
	address string,
	lines []Line,
) (*Order, error) {
	order := &Order{
		status:        Pending,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setOrderNumber(orderNumber),
		order.setUserID(userID),
		order.setUserName(userName),
		order.setUserEmail(userEmail),
		order.setAddress(address),
		order.setLines(lines),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreOrder reconstructs an Order from persisted state without applying
// the creation defaults. The stored status and timestamps are trusted but
// still validated so corrupt rows surface as errors instead of invalid
// aggregates.
func RestoreOrder(
	id kernel.UUID,
	orderNumber string,
	userID kernel.UUID,
	userName string,
	userEmail string,
	address string,
	trackingNumber string,
	status Status,
	createdAt time.Time,
	updatedAt *time.Time,
	lines []Line,
) (*Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	order := &Order{
		trackingNumber: trackingNumber,
		status:         status,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
		isConstructed:  true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setOrderNumber(orderNumber),
		order.setUserID(userID),
		order.setUserName(userName),
		order.setUserEmail(userEmail),
		order.setAddress(address),
		order.setLines(lines),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// Validate ensures the Order instance was properly constructed.
// Returns ErrOrderIsNotConstructed for zero-value or hand-built instances.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// OrderNumber returns the human-readable unique order code.
func (o *Order) OrderNumber() string {
	return o.orderNumber
}

// UserID returns the identifier of the user owning the order.
func (o *Order) UserID() kernel.UUID {
	return o.userID
}

// UserName returns the owning user's display name.
func (o *Order) UserName() string {
	return o.userName
}

// UserEmail returns the owning user's email address.
func (o *Order) UserEmail() string {
	return o.userEmail
}

// Address returns the shipping address.
func (o *Order) Address() string {
	return o.address
}

// TrackingNumber returns the shipment tracking number.
// Empty until the order reaches Shipped.
func (o *Order) TrackingNumber() string {
	return o.trackingNumber
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the last transition timestamp, nil if the order never
// left its initial state.
func (o *Order) UpdatedAt() *time.Time {
	return o.updatedAt
}

// Lines returns a copy of the order's lines.
func (o *Order) Lines() []Line {
	lines := make([]Line, len(o.lines))
	copy(lines, o.lines)
	return lines
}

// TotalPrice returns the sum of all line subtotals. The total is derived on
// every call and never stored, so it cannot drift from the lines.
func (o *Order) TotalPrice() float64 {
	var total float64
	for _, line := range o.lines {
		total += line.Subtotal()
	}
	return total
}

// TransitionTo moves the order to the target status and stamps the update
// timestamp.
//
// Business rules enforced:
//   - The target must be reachable from the current status (ErrInvalidTransition)
//   - Shipping requires a non-empty tracking number (ErrMissingTrackingNumber)
//   - Any other target rejects a supplied tracking number (ErrUnexpectedTrackingNumber)
func (o *Order) TransitionTo(target Status, trackingNumber string) error {
	if target == Shipped && trackingNumber == "" {
		return ErrMissingTrackingNumber
	}
	if target != Shipped && trackingNumber != "" {
		return ErrUnexpectedTrackingNumber
	}

	newStatus, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	o.status = newStatus
	if target == Shipped {
		o.trackingNumber = trackingNumber
	}
	o.stampUpdate()
	return nil
}

// Cancel moves the order to Cancelled and stamps the update timestamp.
//
// Only Pending and Processing orders can be cancelled; Shipped, Delivered
// and already-Cancelled orders fail with their distinct errors.
func (o *Order) Cancel() error {
	newStatus, err := o.status.CancelTransition()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.stampUpdate()
	return nil
}

func (o *Order) stampUpdate() {
	now := time.Now().UTC()
	o.updatedAt = &now
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return errs.NewValueIsRequiredError("orderNumber")
	}
	o.orderNumber = orderNumber
	return nil
}

func (o *Order) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	o.userID = userID
	return nil
}

func (o *Order) setUserName(userName string) error {
	if userName == "" {
		return errs.NewValueIsRequiredError("userName")
	}
	o.userName = userName
	return nil
}

func (o *Order) setUserEmail(userEmail string) error {
	if userEmail == "" {
		return errs.NewValueIsRequiredError("userEmail")
	}
	o.userEmail = userEmail
	return nil
}

func (o *Order) setAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("address")
	}
	o.address = address
	return nil
}

func (o *Order) setLines(lines []Line) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("lines")
	}

	for _, line := range lines {
		if err := line.Validate(); err != nil {
			return err
		}
	}

	o.lines = make([]Line, len(lines))
	copy(o.lines, lines)
	return nil
}
