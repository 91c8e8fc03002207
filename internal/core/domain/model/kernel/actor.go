package kernel

import "errors"

var ErrActorIsNotConstructed = errors.New("actor must be created via NewActor")

// Actor is the authenticated caller of a use case.
type Actor struct {
	id   ID
	role Role
}

func NewActor(id ID, role Role) (Actor, error) {
	if err := errors.Join(id.Validate(), role.Validate()); err != nil {
		return Actor{}, err
	}
	return Actor{id: id, role: role}, nil
}

// MustNewActor is NewActor for fixtures and wiring code where the inputs are constants.
func MustNewActor(id ID, role Role) Actor {
	a, err := NewActor(id, role)
	if err != nil {
		panic(err)
	}
	return a
}

func (a Actor) ID() ID {
	return a.id
}

func (a Actor) Role() Role {
	return a.role
}

func (a Actor) Is(role Role) bool {
	return a.role == role
}

func (a Actor) Validate() error {
	if a.id.IsZero() || a.role == RoleUnknown {
		return ErrActorIsNotConstructed
	}
	return nil
}

func (a Actor) String() string {
	return a.role.String() + ":" + a.id.String()
}
