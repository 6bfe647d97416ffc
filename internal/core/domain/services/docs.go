// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the orders system. It implements complex
// business workflows that don't naturally belong to a single aggregate root.
//
// The package includes:
//   - ValidationAggregator: folds per-line stock-validation events into one
//     terminal decision per order
//   - NumberGenerator: produces human-readable unique order codes
//
// Domain services coordinate between aggregates, implementing business logic that
// spans multiple bounded contexts following Domain-Driven Design principles.
package services
