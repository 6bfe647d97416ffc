// Package order provides domain entities and business logic for purchase
// order management. It implements the Order aggregate root with lifecycle
// management and state transitions.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, lines, and lifecycle
//   - Line: A value object describing one product entry within an order
//   - Status: A state machine that enforces valid order status transitions
//
// Key business rules:
//   - Orders must have a valid identifier, unique order number, owner and at least one line
//   - Order status follows a defined workflow: Pending -> Processing -> Shipped -> Delivered
//   - Cancellation is possible from Pending and Processing only
//   - Shipping requires a tracking number; no other transition accepts one
//   - The total price is always derived from the lines
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
