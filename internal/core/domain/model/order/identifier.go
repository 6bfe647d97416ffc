package order

import (
	"github.com/srCochayuyo/censudex-orders-service/internal/core/domain/model/kernel"
	"github.com/srCochayuyo/censudex-orders-service/internal/pkg/errs"
)

// Identifier is the lookup key accepted by every command and query that
// addresses a single order. Clients may pass either the opaque order id or
// the human-readable order number; the resolution rule is: if the string
// parses as a well-formed UUID it is treated as an id lookup, otherwise as
// an order-number lookup.
type Identifier struct {
	id     kernel.UUID
	number string
}

// ParseIdentifier applies the id-vs-number resolution rule to a raw string.
//
// Returns an error only for an empty string; any non-empty value resolves
// to one of the two lookup modes.
func ParseIdentifier(identifier string) (Identifier, error) {
	if identifier == "" {
		return Identifier{}, errs.NewValueIsRequiredError("identifier")
	}

	if id, err := kernel.UUIDFromString(identifier); err == nil {
		return Identifier{id: id}, nil
	}

	return Identifier{number: identifier}, nil
}

// IsID reports whether the identifier resolved to an order id lookup.
func (i Identifier) IsID() bool {
	return i.id.Validate() == nil
}

// ID returns the parsed order id. Only meaningful when IsID is true.
func (i Identifier) ID() kernel.UUID {
	return i.id
}

// Number returns the order number. Only meaningful when IsID is false.
func (i Identifier) Number() string {
	return i.number
}

// String returns the raw form of the identifier.
func (i Identifier) String() string {
	if i.IsID() {
		return i.id.String()
	}
	return i.number
}
