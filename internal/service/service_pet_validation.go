package service

import (
	"context"

	"github.com/MKhiriev/go-pet-life/internal/validators"
	"github.com/MKhiriev/go-pet-life/models"
)

// PetValidationService checks client input before handing it to the
// wrapped PetService.
type PetValidationService struct {
	inner     PetService
	validator validators.Validator
}

func NewPetValidationService() PetServiceWrapper {
	return &PetValidationService{
		validator: validators.NewPetValidator(),
	}
}

func (v *PetValidationService) CreatePet(ctx context.Context, sess *models.Session, pet models.Pet) (models.Pet, error) {
	// user_id comes from the session, not from the client
	err := v.validate(ctx, pet,
		validators.FieldPetName, validators.FieldPetType, validators.FieldPetSex,
		validators.FieldBreed, validators.FieldPetDOB, validators.FieldTracker)
	if err != nil {
		return models.Pet{}, err
	}
	return v.inner.CreatePet(ctx, sess, pet)
}

func (v *PetValidationService) ListPets(ctx context.Context, sess *models.Session) ([]models.Pet, error) {
	return v.inner.ListPets(ctx, sess)
}

func (v *PetValidationService) GetPet(ctx context.Context, sess *models.Session, petID int64) (models.Pet, error) {
	if err := v.validate(ctx, models.Pet{PetID: petID}, validators.FieldPetID); err != nil {
		return models.Pet{}, err
	}
	return v.inner.GetPet(ctx, sess, petID)
}

func (v *PetValidationService) UpdateTracker(ctx context.Context, sess *models.Session, update models.PetTrackerUpdate) error {
	if err := v.validate(ctx, update, validators.FieldPetID, validators.FieldTracker); err != nil {
		return err
	}
	return v.inner.UpdateTracker(ctx, sess, update)
}

func (v *PetValidationService) Wrap(wrapped PetService) PetService {
	v.inner = wrapped
	return v
}

// validate checks fields one at a time so the failing field can be named.
func (v *PetValidationService) validate(ctx context.Context, obj any, fields ...string) error {
	for _, field := range fields {
		if err := v.validator.Validate(ctx, obj, field); err != nil {
			return &FieldError{Kind: ErrValidation, Field: field, Message: err.Error()}
		}
	}
	return nil
}
