// Package kernel provides the value objects shared by the order and rider
// aggregates.
//
// The package includes:
//   - ID: a positive numeric identity for persisted users and orders
//   - Role: the closed set of marketplace roles (customer, restaurant, rider, admin)
//   - Actor: an authenticated caller, the pair of an ID and a Role
//
// Values are immutable and safe for concurrent use.
package kernel
