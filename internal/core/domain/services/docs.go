// Package services provides domain services that do not belong to a single
// aggregate.
//
// The package includes:
//   - OrderPricer: turns priced cart items into order lines and a reconciled total
package services
