package rider

import (
	"errors"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

var ErrRiderIsNotConstructed = errors.New("Rider must be created via NewRider constructor")

const (
	maxVehicleTypeLength   = 50
	maxLicenseNumberLength = 50
	maxPhoneLength         = 15
)

// Rider is the profile of a user with the rider role. IsAvailable is the
// on/off duty switch; it says nothing about current assignments.
type Rider struct {
	userID        kernel.ID
	vehicleType   string
	licenseNumber string
	phone         string
	isAvailable   bool
	isConstructed bool
}

// NewRider creates an off-duty rider profile for userID.
func NewRider(userID kernel.ID, vehicleType, licenseNumber, phone string) (*Rider, error) {
	r := &Rider{isConstructed: true}
	if err := errors.Join(
		r.setUserID(userID),
		r.setProfile(vehicleType, licenseNumber, phone),
	); err != nil {
		return nil, err
	}
	return r, nil
}

func RestoreRider(userID kernel.ID, vehicleType, licenseNumber, phone string, isAvailable bool) (*Rider, error) {
	r, err := NewRider(userID, vehicleType, licenseNumber, phone)
	if err != nil {
		return nil, err
	}
	r.isAvailable = isAvailable
	return r, nil
}

func (r *Rider) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRiderIsNotConstructed
	}
	return nil
}

func (r *Rider) UserID() kernel.ID {
	return r.userID
}

func (r *Rider) VehicleType() string {
	return r.vehicleType
}

func (r *Rider) LicenseNumber() string {
	return r.licenseNumber
}

func (r *Rider) Phone() string {
	return r.phone
}

func (r *Rider) IsAvailable() bool {
	return r.isAvailable
}

// SetAvailable switches the rider on or off duty.
func (r *Rider) SetAvailable(available bool) {
	r.isAvailable = available
}

// ToggleAvailability flips the duty switch and returns the new value.
func (r *Rider) ToggleAvailability() bool {
	r.isAvailable = !r.isAvailable
	return r.isAvailable
}

func (r *Rider) setUserID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.userID = id
	return nil
}

func (r *Rider) setProfile(vehicleType, licenseNumber, phone string) error {
	vehicleType = strings.TrimSpace(vehicleType)
	licenseNumber = strings.TrimSpace(licenseNumber)
	phone = strings.TrimSpace(phone)

	if err := errors.Join(
		requiredText("vehicle_type", vehicleType, maxVehicleTypeLength),
		requiredText("license_number", licenseNumber, maxLicenseNumberLength),
		requiredText("phone", phone, maxPhoneLength),
	); err != nil {
		return err
	}

	r.vehicleType = vehicleType
	r.licenseNumber = licenseNumber
	r.phone = phone
	return nil
}

func requiredText(name, value string, maxLength int) error {
	if value == "" {
		return errs.NewValueIsRequiredError(name)
	}
	if len(value) > maxLength {
		return errs.NewValueIsOutOfRangeError(name, len(value), 1, maxLength)
	}
	return nil
}
