package kernel

import (
	"math"
	"strconv"

	"marketplace/internal/pkg/errs"
)

// ID identifies a persisted user or order. The zero value means "not assigned yet".
type ID int64

// NewID validates a raw identifier coming from storage or a request.
func NewID(raw int64) (ID, error) {
	id := ID(raw)
	if err := id.Validate(); err != nil {
		return 0, err
	}
	return id, nil
}

// ParseID parses a decimal path or claim value into an ID.
func ParseID(raw string) (ID, error) {
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	return NewID(v)
}

func (id ID) Validate() error {
	if id <= 0 {
		return errs.NewValueIsOutOfRangeError("id", int64(id), 1, int64(math.MaxInt64))
	}
	return nil
}

func (id ID) IsZero() bool {
	return id == 0
}

func (id ID) Int64() int64 {
	return int64(id)
}

func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}
