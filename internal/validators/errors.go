package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidEmail = errors.New("invalid email format")

	ErrInvalidUserID   = errors.New("invalid user ID")
	ErrInvalidPetID    = errors.New("invalid pet ID")
	ErrEmptyPetName    = errors.New("pet name is required")
	ErrEmptyPetType    = errors.New("pet type is required")
	ErrInvalidPetSex   = errors.New("pet sex must be Male or Female")
	ErrInvalidPetDOB   = errors.New("pet date of birth cannot be in the future")
	ErrFieldTooLong    = errors.New("field is too long")
	ErrTrackerTooLong  = errors.New("tracker text is too long")
	ErrEmptyPetTracker = errors.New("tracker text is required")
)
