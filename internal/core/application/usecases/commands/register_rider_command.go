package commands

import (
	"errors"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var (
	ErrRegisterRiderCommandIsNotConstructed = errors.New(
		"RegisterRiderCommand must be created via NewRegisterRiderCommand constructor",
	)
	ErrVehicleTypeIsRequired   = errors.New("vehicle type is required")
	ErrLicenseNumberIsRequired = errors.New("license number is required")
	ErrPhoneIsRequired         = errors.New("phone is required")
)

// RegisterRiderCommand represents a rider user creating their delivery profile.
//
// Example:
//
//	cmd, err := NewRegisterRiderCommand(actor, "scooter", "LIC-7781", "+15550100")
//	if err != nil {
//	    return fmt.Errorf("invalid rider data: %w", err)
//	}
//
//	r, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, ports.ErrRiderAlreadyRegistered) {
//	    // profile exists
//	}
type RegisterRiderCommand struct { //nolint:recvcheck //using for validation
	rider         kernel.Actor
	vehicleType   string
	licenseNumber string
	phone         string

	guard guard.ConstructorGuard
}

func NewRegisterRiderCommand(rider kernel.Actor, vehicleType, licenseNumber, phone string) (RegisterRiderCommand, error) {
	command := RegisterRiderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setRider(rider),
		command.setVehicleType(vehicleType),
		command.setLicenseNumber(licenseNumber),
		command.setPhone(phone),
	); err != nil {
		return RegisterRiderCommand{}, err
	}

	return command, nil
}

func (c RegisterRiderCommand) Validate() error {
	return c.guard.Validate(ErrRegisterRiderCommandIsNotConstructed)
}

func (c RegisterRiderCommand) Rider() kernel.Actor {
	return c.rider
}

func (c RegisterRiderCommand) VehicleType() string {
	return c.vehicleType
}

func (c RegisterRiderCommand) LicenseNumber() string {
	return c.licenseNumber
}

func (c RegisterRiderCommand) Phone() string {
	return c.phone
}

func (c *RegisterRiderCommand) setRider(rider kernel.Actor) error {
	if err := rider.Validate(); err != nil {
		return err
	}
	if !rider.Is(kernel.RoleRider) {
		return ErrRiderIsRequired
	}

	c.rider = rider
	return nil
}

func (c *RegisterRiderCommand) setVehicleType(vehicleType string) error {
	vehicleType = strings.TrimSpace(vehicleType)
	if vehicleType == "" {
		return ErrVehicleTypeIsRequired
	}

	c.vehicleType = vehicleType
	return nil
}

func (c *RegisterRiderCommand) setLicenseNumber(licenseNumber string) error {
	licenseNumber = strings.TrimSpace(licenseNumber)
	if licenseNumber == "" {
		return ErrLicenseNumberIsRequired
	}

	c.licenseNumber = licenseNumber
	return nil
}

func (c *RegisterRiderCommand) setPhone(phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return ErrPhoneIsRequired
	}

	c.phone = phone
	return nil
}
