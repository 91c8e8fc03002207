package order

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

var (
	ErrUnauthorizedActor = errors.New("actor is not allowed to change the order")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrAlreadyClaimed    = errors.New("order already claimed")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrPartyNotFound     = errors.New("party not found")
	ErrTokenGeneration   = errors.New("token generation failed")
)

// NewOrderNotFoundError reports an order id that does not resolve.
func NewOrderNotFoundError(id kernel.ID) *errs.ObjectNotFoundError {
	return errs.NewObjectNotFoundError("order", id)
}

// NewPaymentNotFoundError reports an external payment reference no order carries.
func NewPaymentNotFoundError(intentID string) *errs.ObjectNotFoundError {
	return errs.NewObjectNotFoundError("payment_intent_id", intentID)
}

// UnauthorizedActorError is returned when the actor is not the party allowed
// to drive the requested change.
type UnauthorizedActorError struct {
	OrderID kernel.ID
	Actor   kernel.Actor
	Reason  string
}

func NewUnauthorizedActorError(orderID kernel.ID, actor kernel.Actor, reason string) *UnauthorizedActorError {
	return &UnauthorizedActorError{OrderID: orderID, Actor: actor, Reason: reason}
}

func (e *UnauthorizedActorError) Error() string {
	return fmt.Sprintf("%s: %s on order %s: %s", ErrUnauthorizedActor, e.Actor, e.OrderID, e.Reason)
}

func (e *UnauthorizedActorError) Unwrap() error {
	return ErrUnauthorizedActor
}

// InvalidTransitionError carries both ends of a rejected edge.
type InvalidTransitionError struct {
	OrderID kernel.ID
	Current Status
	Target  Status
}

func NewInvalidTransitionError(orderID kernel.ID, current, target Status) *InvalidTransitionError {
	return &InvalidTransitionError{OrderID: orderID, Current: current, Target: target}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: order %s cannot move from %s to %s", ErrInvalidTransition, e.OrderID, e.Current, e.Target)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// AlreadyClaimedError is what the loser of a claim race receives.
type AlreadyClaimedError struct {
	OrderID kernel.ID
}

func NewAlreadyClaimedError(orderID kernel.ID) *AlreadyClaimedError {
	return &AlreadyClaimedError{OrderID: orderID}
}

func (e *AlreadyClaimedError) Error() string {
	return fmt.Sprintf("%s: order %s is taken by another rider", ErrAlreadyClaimed, e.OrderID)
}

func (e *AlreadyClaimedError) Unwrap() error {
	return ErrAlreadyClaimed
}

type EmptyCartError struct {
	CustomerID   kernel.ID
	RestaurantID kernel.ID
}

func NewEmptyCartError(customerID, restaurantID kernel.ID) *EmptyCartError {
	return &EmptyCartError{CustomerID: customerID, RestaurantID: restaurantID}
}

func (e *EmptyCartError) Error() string {
	return fmt.Sprintf("%s: customer %s has no items from restaurant %s", ErrEmptyCart, e.CustomerID, e.RestaurantID)
}

func (e *EmptyCartError) Unwrap() error {
	return ErrEmptyCart
}

// PartyNotFoundError reports a customer or restaurant identity that does not
// resolve to a user with the expected role.
type PartyNotFoundError struct {
	Role kernel.Role
	ID   kernel.ID
}

func NewPartyNotFoundError(role kernel.Role, id kernel.ID) *PartyNotFoundError {
	return &PartyNotFoundError{Role: role, ID: id}
}

func (e *PartyNotFoundError) Error() string {
	return fmt.Sprintf("%s: no %s with id %s", ErrPartyNotFound, e.Role, e.ID)
}

func (e *PartyNotFoundError) Unwrap() error {
	return ErrPartyNotFound
}

// TokenGenerationError is returned once every token attempt collided.
type TokenGenerationError struct {
	Attempts int
	Cause    error
}

func NewTokenGenerationError(attempts int, cause error) *TokenGenerationError {
	return &TokenGenerationError{Attempts: attempts, Cause: cause}
}

func (e *TokenGenerationError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s after %d attempts", ErrTokenGeneration, e.Attempts)
	}
	return fmt.Sprintf("%s after %d attempts (cause: %v)", ErrTokenGeneration, e.Attempts, e.Cause)
}

func (e *TokenGenerationError) Unwrap() error {
	return ErrTokenGeneration
}
