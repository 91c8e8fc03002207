package order

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrTokenIsImmutable is returned when a persisted order is asked to take a new token.
	ErrTokenIsImmutable = errors.New("token of a persisted order cannot change")
)

// Fees are the fixed surcharges added on top of the line subtotals.
type Fees struct {
	Rider      decimal.Decimal
	SmallOrder decimal.Decimal
}

// Order is the aggregate root of the order lifecycle. It owns the status field,
// the rider attachment and the monetary breakdown.
//
// Order follows these invariants:
//   - sum(line subtotals) + rider fee + small order fee == total amount at creation
//   - status Assigned and OnTheWay always carry a rider
//   - once attached, the rider never changes
//   - the token never changes once the order is persisted
//   - Delivered and Cancelled accept no further transition
//
// Every successful Transition or Claim appends a StatusChange that the store
// drains and persists with the order.
type Order struct {
	id            kernel.ID
	token         string
	customerID    kernel.ID
	restaurantID  kernel.ID
	riderID       *kernel.ID
	lines         []Line
	fees          Fees
	totalAmount   decimal.Decimal
	payment       Payment
	status        Status
	createdAt     time.Time
	changes       []StatusChange
	isConstructed bool
}

// NewOrder creates a pending order from priced lines. total is the figure
// computed by the pricer; it must reconcile with lines and fees.
//
// The order has no id and no token yet: the store assigns the id on insert and
// the creation use case assigns tokens with AssignToken until one is unique.
func NewOrder(
	customerID, restaurantID kernel.ID,
	lines []Line,
	fees Fees,
	total decimal.Decimal,
	payment Payment,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setParties(customerID, restaurantID),
		o.setLines(lines),
		o.setMoney(fees, total),
		o.setPayment(payment),
		o.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	if len(o.lines) == 0 {
		return nil, NewEmptyCartError(customerID, restaurantID)
	}

	if err := o.reconcile(); err != nil {
		return nil, err
	}

	return o, nil
}

// Snapshot is the persisted state of an order, used to rebuild it from storage.
type Snapshot struct {
	ID           kernel.ID
	Token        string
	CustomerID   kernel.ID
	RestaurantID kernel.ID
	RiderID      *kernel.ID
	Lines        []Line
	Fees         Fees
	TotalAmount  decimal.Decimal
	Payment      Payment
	Status       Status
	CreatedAt    time.Time
}

// RestoreOrder rebuilds a persisted order. Totals are not reconciled again:
// historical rows are trusted as written.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		riderID:       s.RiderID,
		status:        s.Status,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setToken(s.Token),
		o.setParties(s.CustomerID, s.RestaurantID),
		o.setLines(s.Lines),
		o.setMoney(s.Fees, s.TotalAmount),
		o.setPayment(s.Payment),
		o.setCreatedAt(s.CreatedAt),
		s.Status.Validate(),
		o.validateRider(),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) ID() kernel.ID {
	return o.id
}

func (o *Order) Token() string {
	return o.token
}

func (o *Order) CustomerID() kernel.ID {
	return o.customerID
}

func (o *Order) RestaurantID() kernel.ID {
	return o.restaurantID
}

// RiderID returns the attached rider, nil while unassigned.
func (o *Order) RiderID() *kernel.ID {
	if o.riderID == nil {
		return nil
	}
	id := *o.riderID
	return &id
}

func (o *Order) Lines() []Line {
	return append([]Line(nil), o.lines...)
}

func (o *Order) Fees() Fees {
	return o.fees
}

func (o *Order) TotalAmount() decimal.Decimal {
	return o.totalAmount
}

func (o *Order) Payment() Payment {
	return o.payment
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// IsAvailableForPickup reports whether the order counts as available to riders.
func (o *Order) IsAvailableForPickup() bool {
	return o.riderID == nil && o.status.IsClaimable()
}

// IsParty reports whether actor is the customer, the restaurant or the rider of the order.
func (o *Order) IsParty(actor kernel.Actor) bool {
	switch actor.Role() {
	case kernel.RoleCustomer:
		return actor.ID() == o.customerID
	case kernel.RoleRestaurant:
		return actor.ID() == o.restaurantID
	case kernel.RoleRider:
		return o.riderID != nil && *o.riderID == actor.ID()
	case kernel.RoleAdmin:
		return true
	case kernel.RoleUnknown:
		return false
	}
	return false
}

// BindID records the id assigned by the store on insert.
func (o *Order) BindID(id kernel.ID) error {
	if !o.id.IsZero() {
		return errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("order already has id %s", o.id))
	}
	return o.setID(id)
}

// AssignToken sets the tracking code of an order that is not persisted yet.
func (o *Order) AssignToken(token string) error {
	if !o.id.IsZero() {
		return ErrTokenIsImmutable
	}
	return o.setToken(token)
}

// Transition applies a status change requested by actor.
//
// The actor identity is checked first, then the edge. Restaurant actors must
// own the order. Rider actors must be the attached rider, except that a
// rider asking for Assigned on an unassigned order is a claim. Customers and
// admins never drive the status.
//
// Returns:
//   - *UnauthorizedActorError when actor is not the permitted party
//   - *InvalidTransitionError when the edge is not legal from the current status
//   - *AlreadyClaimedError when a claim targets an order held by another rider
func (o *Order) Transition(actor kernel.Actor, target Status) error {
	if err := errors.Join(actor.Validate(), target.Validate()); err != nil {
		return err
	}

	switch actor.Role() {
	case kernel.RoleRestaurant:
		if actor.ID() != o.restaurantID {
			return NewUnauthorizedActorError(o.id, actor, "order belongs to another restaurant")
		}
		if !o.status.RestaurantCanMoveTo(target) {
			return NewInvalidTransitionError(o.id, o.status, target)
		}
	case kernel.RoleRider:
		if target == Assigned {
			return o.Claim(actor)
		}
		if o.riderID == nil || *o.riderID != actor.ID() {
			return NewUnauthorizedActorError(o.id, actor, "rider is not assigned to the order")
		}
		if !o.status.RiderCanMoveTo(target) {
			return NewInvalidTransitionError(o.id, o.status, target)
		}
	case kernel.RoleCustomer, kernel.RoleAdmin, kernel.RoleUnknown:
		return NewUnauthorizedActorError(o.id, actor, actor.Role().String()+" cannot change order status")
	default:
		return NewUnauthorizedActorError(o.id, actor, "unsupported role")
	}

	o.apply(actor, target)
	return nil
}

// Claim attaches rider to an unassigned order and moves it to Assigned.
//
// Returns *AlreadyClaimedError when another rider holds the order, and
// *InvalidTransitionError when the order is not in a claimable status or the
// same rider claims twice.
func (o *Order) Claim(rider kernel.Actor) error {
	if err := rider.Validate(); err != nil {
		return err
	}
	if !rider.Is(kernel.RoleRider) {
		return NewUnauthorizedActorError(o.id, rider, "only riders can claim orders")
	}

	if o.riderID != nil {
		if *o.riderID == rider.ID() {
			return NewInvalidTransitionError(o.id, o.status, Assigned)
		}
		return NewAlreadyClaimedError(o.id)
	}

	if !o.status.IsClaimable() {
		return NewInvalidTransitionError(o.id, o.status, Assigned)
	}

	id := rider.ID()
	o.riderID = &id
	o.apply(rider, Assigned)
	return nil
}

// RecordPayment stores the latest status reported by the payment collaborator.
func (o *Order) RecordPayment(status PaymentStatus, chargeID string) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if !o.payment.Status.CanBecome(status) {
		return errs.NewValueIsInvalidErrorWithCause(
			"payment_status",
			fmt.Errorf("payment of order %s cannot move from %s to %s", o.id, o.payment.Status, status),
		)
	}
	o.payment.Status = status
	if chargeID != "" {
		o.payment.ChargeID = chargeID
	}
	return nil
}

// DrainStatusChanges returns the audit records collected since the last call.
func (o *Order) DrainStatusChanges() []StatusChange {
	changes := o.changes
	o.changes = nil
	return changes
}

func (o *Order) apply(actor kernel.Actor, target Status) {
	o.changes = append(o.changes, StatusChange{From: o.status, To: target, Actor: actor})
	o.status = target
}

func (o *Order) reconcile() error {
	expected := SumSubtotals(o.lines).Add(o.fees.Rider).Add(o.fees.SmallOrder)
	if !expected.Equal(o.totalAmount) {
		return errs.NewValueIsInvalidErrorWithCause(
			"total_amount",
			fmt.Errorf("total %s does not match lines plus fees %s", o.totalAmount, expected),
		)
	}
	return nil
}

func (o *Order) validateRider() error {
	if o.riderID != nil {
		if err := o.riderID.Validate(); err != nil {
			return err
		}
		return nil
	}
	if o.status.RequiresRider() {
		return errs.NewValueIsInvalidErrorWithCause(
			"rider_id",
			fmt.Errorf("%s order must have a rider", o.status),
		)
	}
	return nil
}

func (o *Order) setID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setToken(token string) error {
	if err := ValidateToken(token); err != nil {
		return err
	}
	o.token = token
	return nil
}

func (o *Order) setParties(customerID, restaurantID kernel.ID) error {
	if err := errors.Join(customerID.Validate(), restaurantID.Validate()); err != nil {
		return err
	}
	o.customerID = customerID
	o.restaurantID = restaurantID
	return nil
}

func (o *Order) setLines(lines []Line) error {
	for _, l := range lines {
		if err := validateQuantity(l.quantity); err != nil {
			return err
		}
	}
	o.lines = append([]Line(nil), lines...)
	return nil
}

func (o *Order) setMoney(fees Fees, total decimal.Decimal) error {
	if err := errors.Join(
		validateAmount("rider_fee", fees.Rider),
		validateAmount("small_order_fee", fees.SmallOrder),
		validateAmount("total_amount", total),
	); err != nil {
		return err
	}
	o.fees = fees
	o.totalAmount = total
	return nil
}

func (o *Order) setPayment(p Payment) error {
	if p.Method == "" {
		return errs.NewValueIsRequiredError("payment_method")
	}
	if err := p.Status.Validate(); err != nil {
		return err
	}
	o.payment = p
	return nil
}

func (o *Order) setCreatedAt(at time.Time) error {
	if at.IsZero() {
		return errs.NewValueIsRequiredError("created_at")
	}
	o.createdAt = at
	return nil
}
