package validators

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/MKhiriev/go-pet-life/models"
)

// Field name constants used to specify which fields should be validated.
// These constants are passed to Validate to restrict validation to a
// subset of fields (field-level scoping).
const (
	// FieldUserID targets the owner identifier of a pet or request.
	FieldUserID = "user_id"

	// FieldPetID targets the server-assigned pet identifier.
	FieldPetID = "pet_id"

	// FieldPetName targets the display name of a pet.
	FieldPetName = "pet_name"

	// FieldPetType targets the kind of animal.
	FieldPetType = "pet_type"

	// FieldPetSex targets the biological sex of a pet.
	FieldPetSex = "pet_sex"

	// FieldBreed targets the optional breed.
	FieldBreed = "breed"

	// FieldPetDOB targets the date of birth.
	FieldPetDOB = "pet_dob"

	// FieldTracker targets the free-form tracker text.
	FieldTracker = "tracker"
)

const (
	maxShortFieldLength = 100
	maxTrackerLength    = 10000
)

// PetValidator implements the Validator interface for pet records and
// tracker updates.
//
// It supports both value and pointer receivers for every model type
// and allows optional field-level scoping via variadic field name arguments.
type PetValidator struct {
	now func() time.Time
}

// NewPetValidator constructs a new PetValidator and returns it as the
// Validator interface.
func NewPetValidator() Validator {
	return &PetValidator{now: time.Now}
}

// Validate dispatches validation to the appropriate type-specific method
// based on the dynamic type of obj.
//
// Supported types:
//   - models.Pet / *models.Pet
//   - models.PetTrackerUpdate / *models.PetTrackerUpdate
//
// Returns ErrUnsupportedType if obj does not match any known model.
func (v *PetValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Pet:
		return v.validatePet(ctx, value, fields...)
	case *models.Pet:
		return v.validatePet(ctx, *value, fields...)

	case models.PetTrackerUpdate:
		return v.validateTrackerUpdate(ctx, value, fields...)
	case *models.PetTrackerUpdate:
		return v.validateTrackerUpdate(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

// validatePet validates a pet about to be created.
//
// Default validated fields (when none specified):
// UserID, PetName, PetType, PetSex, Breed, PetDOB, Tracker.
func (v *PetValidator) validatePet(ctx context.Context, pet models.Pet, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUserID, FieldPetName, FieldPetType, FieldPetSex, FieldBreed, FieldPetDOB, FieldTracker}
	}

	for _, f := range fields {
		switch f {
		case FieldUserID:
			if pet.UserID <= 0 {
				return ErrInvalidUserID
			}
		case FieldPetID:
			if pet.PetID <= 0 {
				return ErrInvalidPetID
			}
		case FieldPetName:
			if strings.TrimSpace(pet.Name) == "" {
				return ErrEmptyPetName
			}
			if utf8.RuneCountInString(pet.Name) > maxShortFieldLength {
				return ErrFieldTooLong
			}
		case FieldPetType:
			if strings.TrimSpace(pet.Type) == "" {
				return ErrEmptyPetType
			}
			if utf8.RuneCountInString(pet.Type) > maxShortFieldLength {
				return ErrFieldTooLong
			}
		case FieldPetSex:
			if pet.Sex != models.PetMale && pet.Sex != models.PetFemale {
				return ErrInvalidPetSex
			}
		case FieldBreed:
			if utf8.RuneCountInString(pet.Breed) > maxShortFieldLength {
				return ErrFieldTooLong
			}
		case FieldPetDOB:
			if !pet.DateOfBirth.IsZero() && pet.DateOfBirth.After(v.now()) {
				return ErrInvalidPetDOB
			}
		case FieldTracker:
			if utf8.RuneCountInString(pet.Tracker) > maxTrackerLength {
				return ErrTrackerTooLong
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateTrackerUpdate validates a tracker replacement.
//
// Default validated fields: UserID, PetID, Tracker.
func (v *PetValidator) validateTrackerUpdate(ctx context.Context, update models.PetTrackerUpdate, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUserID, FieldPetID, FieldTracker}
	}

	for _, f := range fields {
		switch f {
		case FieldUserID:
			if update.UserID <= 0 {
				return ErrInvalidUserID
			}
		case FieldPetID:
			if update.PetID <= 0 {
				return ErrInvalidPetID
			}
		case FieldTracker:
			if strings.TrimSpace(update.Tracker) == "" {
				return ErrEmptyPetTracker
			}
			if utf8.RuneCountInString(update.Tracker) > maxTrackerLength {
				return ErrTrackerTooLong
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
