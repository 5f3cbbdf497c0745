// Package services provides domain services that orchestrate business
// operations across multiple domain entities in the dispatch system. It
// implements business logic that doesn't naturally belong to a single
// aggregate root.
//
// The package includes:
//   - CourierPicker: ranks couriers by suitability for taking another order
//
// Domain services coordinate between aggregates following Domain-Driven
// Design principles.
package services
