package order

import (
	"fmt"
	"slices"

	"marketplace/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// Two actor tracks drive the same field. The restaurant moves the kitchen
// side and may cancel; the rider claims an unassigned order and drives the
// delivery side:
//
//	pending ──> accepted ──> preparing ──> ready ──> (arrived | delivered)   restaurant
//	   │            │             │          │
//	   └────────────┴─────────────┴──────────┴──> assigned ──> otw ──> arrived ──> delivered   rider
//
//	any non-terminal ──> cancelled (restaurant only)
//
// Delivered and Cancelled are terminal.
type Status int

const (
	// Unknown catches uninitialized Status values.
	Unknown Status = iota
	Pending
	Accepted
	Preparing
	Assigned
	Ready
	OnTheWay
	Arrived
	Delivered
	Cancelled
)

var statusNames = map[Status]string{
	Pending:   "pending",
	Accepted:  "accepted",
	Preparing: "preparing",
	Assigned:  "assigned",
	Ready:     "ready",
	OnTheWay:  "otw",
	Arrived:   "arrived",
	Delivered: "delivered",
	Cancelled: "cancelled",
}

// restaurantEdges lists the moves a restaurant may make on its own orders.
var restaurantEdges = map[Status][]Status{
	Pending:   {Accepted, Preparing, Cancelled},
	Accepted:  {Preparing, Cancelled},
	Preparing: {Ready, Cancelled},
	Ready:     {Arrived, Delivered, Cancelled},
	Assigned:  {Cancelled},
	OnTheWay:  {Cancelled},
	Arrived:   {Cancelled},
}

// riderEdges lists the moves of the assigned rider. Entries into Assigned are
// claims and are only reachable through Order.Claim.
var riderEdges = map[Status][]Status{
	Pending:   {Assigned},
	Accepted:  {Assigned},
	Preparing: {Assigned},
	// Ready -> OnTheWay mirrors the documented edge set. Only Claim attaches a
	// rider and it always lands on Assigned, so no rider holds a Ready order
	// and Transition rejects this edge before it is consulted.
	Ready:     {Assigned, OnTheWay},
	Assigned:  {OnTheWay, Arrived, Delivered},
	OnTheWay:  {Arrived, Delivered},
	Arrived:   {Delivered},
}

// ClaimableStatuses is the set counted as "available for pickup" by the
// availability notifier. Only orders without a rider qualify.
func ClaimableStatuses() []Status {
	return []Status{Pending, Accepted, Preparing, Ready}
}

// ParseStatus maps the persisted or wire name to a Status.
func ParseStatus(raw string) (Status, error) {
	for status, name := range statusNames {
		if name == raw {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", raw))
}

// Validate rejects Unknown and out-of-range values read from storage or requests.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the persisted name, "unknown" for invalid values.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// IsTerminal reports whether no transition can leave s.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// IsClaimable reports whether an unassigned order in s may be claimed.
func (s Status) IsClaimable() bool {
	return slices.Contains(ClaimableStatuses(), s)
}

// RequiresRider reports whether an order in s must have a rider attached.
func (s Status) RequiresRider() bool {
	return s == Assigned || s == OnTheWay
}

// RestaurantCanMoveTo reports whether the restaurant track has the edge s -> target.
func (s Status) RestaurantCanMoveTo(target Status) bool {
	return slices.Contains(restaurantEdges[s], target)
}

// RiderCanMoveTo reports whether the rider track has the edge s -> target.
func (s Status) RiderCanMoveTo(target Status) bool {
	return slices.Contains(riderEdges[s], target)
}

// CanMoveTo reports whether any actor track has the edge s -> target.
func (s Status) CanMoveTo(target Status) bool {
	return s.RestaurantCanMoveTo(target) || s.RiderCanMoveTo(target)
}

// MarshalText lets Status travel as its name in JSON payloads.
func (s Status) MarshalText() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
