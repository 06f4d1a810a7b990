package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-pet-life/internal/logger"
	"github.com/MKhiriev/go-pet-life/internal/store"
	"github.com/MKhiriev/go-pet-life/models"
)

// petService gives the signed-in account access to its own pets only.
type petService struct {
	pets   store.PetRepository
	logger *logger.Logger
}

func NewPetService(pets store.PetRepository, logger *logger.Logger) PetService {
	return &petService{pets: pets, logger: logger}
}

// CreatePet stores pet under the session's account. Any PetID or UserID
// sent by the client is ignored.
func (p *petService) CreatePet(ctx context.Context, sess *models.Session, pet models.Pet) (models.Pet, error) {
	userID, err := RequireSession(sess)
	if err != nil {
		return models.Pet{}, err
	}

	pet.PetID = 0
	pet.UserID = userID

	created, err := p.pets.CreatePet(ctx, pet)
	if err != nil {
		logger.FromContext(ctx).Err(err).Int64("user_id", userID).Msg("error creating pet")
		return models.Pet{}, fmt.Errorf("error creating pet: %w", err)
	}
	return created, nil
}

func (p *petService) ListPets(ctx context.Context, sess *models.Session) ([]models.Pet, error) {
	userID, err := RequireSession(sess)
	if err != nil {
		return nil, err
	}

	pets, err := p.pets.ListPets(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Int64("user_id", userID).Msg("error listing pets")
		return nil, fmt.Errorf("error listing pets: %w", err)
	}
	return pets, nil
}

// GetPet returns ErrForbidden for a pet owned by another account.
func (p *petService) GetPet(ctx context.Context, sess *models.Session, petID int64) (models.Pet, error) {
	userID, err := RequireSession(sess)
	if err != nil {
		return models.Pet{}, err
	}
	return p.ownedPet(ctx, userID, petID)
}

func (p *petService) UpdateTracker(ctx context.Context, sess *models.Session, update models.PetTrackerUpdate) error {
	userID, err := RequireSession(sess)
	if err != nil {
		return err
	}
	update.UserID = userID

	err = p.pets.UpdateTracker(ctx, update)
	if errors.Is(err, store.ErrPetNotFound) {
		// the update matches on owner too; tell a foreign pet from a missing one
		if _, err = p.ownedPet(ctx, userID, update.PetID); err != nil {
			return err
		}
		return fmt.Errorf("%w: pet %d", ErrPetNotFound, update.PetID)
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Int64("user_id", userID).Msg("error updating tracker")
		return fmt.Errorf("error updating tracker: %w", err)
	}
	return nil
}

func (p *petService) ownedPet(ctx context.Context, userID, petID int64) (models.Pet, error) {
	pet, err := p.pets.GetPet(ctx, petID)
	if errors.Is(err, store.ErrPetNotFound) {
		return models.Pet{}, fmt.Errorf("%w: pet %d", ErrPetNotFound, petID)
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Int64("pet_id", petID).Msg("error loading pet")
		return models.Pet{}, fmt.Errorf("error loading pet: %w", err)
	}

	if pet.UserID != userID {
		logger.FromContext(ctx).Warn().Int64("user_id", userID).Int64("pet_id", petID).Msg("access to foreign pet denied")
		return models.Pet{}, ErrForbidden
	}
	return pet, nil
}
