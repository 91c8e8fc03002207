package order

import "marketplace/internal/core/domain/model/kernel"

// StatusChange is an audit record of one applied transition or claim.
type StatusChange struct {
	From  Status
	To    Status
	Actor kernel.Actor
}
