package services

import (
	"context"
	"fmt"
	"math/rand/v2"
)

// Order numbers follow the fixed format CEN-XXXX with the numeric part
// drawn from [1000, 9999].
const (
	orderNumberPrefix = "CEN"
	orderNumberMin    = 1000
	orderNumberSpan   = 9000
)

// NumberChecker reports whether an order number is already taken.
// Backed by the order repository in production.
type NumberChecker interface {
	ExistsNumber(ctx context.Context, number string) (bool, error)
}

// NumberGenerator is a domain service producing human-readable unique order
// codes. It draws random candidates and retries on collision.
//
// The existence check narrows but cannot close the window between check and
// insert under concurrent creation; the persistence layer backs it up with a
// unique index on the order number, and order creation retries when the
// insert reports the number as taken.
type NumberGenerator struct {
	checker NumberChecker
}

// NewNumberGenerator creates a generator checking uniqueness through the
// given NumberChecker.
func NewNumberGenerator(checker NumberChecker) NumberGenerator {
	return NumberGenerator{checker: checker}
}

// Generate returns an order number of the form CEN-XXXX that was free at the
// instant of the uniqueness check. Keeps drawing until a free code is found
// or the context is cancelled.
func (g NumberGenerator) Generate(ctx context.Context) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		candidate := fmt.Sprintf("%s-%d", orderNumberPrefix, orderNumberMin+rand.IntN(orderNumberSpan))

		exists, err := g.checker.ExistsNumber(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
}
