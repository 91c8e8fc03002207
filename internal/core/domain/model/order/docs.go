// Package order models the order aggregate: its status state machine, the
// single-rider claim rule, the priced lines and the payment fields.
//
// All mutations go through methods on *Order so the invariants listed on the
// type hold for every instance built by NewOrder or RestoreOrder. The package
// has no knowledge of storage; concurrent callers are serialized by the store
// (row lock for transitions, conditional write for claims).
package order
