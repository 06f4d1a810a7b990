package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-pet-life/internal/logger"
	"github.com/MKhiriev/go-pet-life/models"
)

// petRepository is the SQL implementation of [PetRepository].
type petRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewPetRepository constructs a [PetRepository] backed by db.
func NewPetRepository(db *DB, logger *logger.Logger) PetRepository {
	logger.Debug().Msg("creating pet repository")
	return &petRepository{
		db:     db,
		logger: logger,
	}
}

func (r *petRepository) CreatePet(ctx context.Context, pet models.Pet) (models.Pet, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCreatePetQuery(r.db.builder(), pet)
	if err != nil {
		return models.Pet{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var createdAt dbTime
	err = r.db.withInsertRetry(ctx, func(ctx context.Context) error {
		return r.db.QueryRowContext(ctx, query, args...).Scan(&pet.PetID, &createdAt)
	})
	if err != nil {
		log.Err(err).Str("func", "*petRepository.CreatePet").Msg("error inserting pet")
		return models.Pet{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	pet.CreatedAt = createdAt.Time

	return pet, nil
}

func (r *petRepository) ListPets(ctx context.Context, userID int64) ([]models.Pet, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListPetsQuery(r.db.builder(), userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var pets []models.Pet
	err = r.db.withRetry(ctx, func(ctx context.Context) error {
		pets = make([]models.Pet, 0)

		rows, err := r.db.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			pet, err := scanPet(rows)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrScanningRows, err)
			}
			pets = append(pets, pet)
		}

		return rows.Err()
	})
	if err != nil {
		log.Err(err).Str("func", "*petRepository.ListPets").Msg("error listing pets")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return pets, nil
}

func (r *petRepository) GetPet(ctx context.Context, petID int64) (models.Pet, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetPetQuery(r.db.builder(), petID)
	if err != nil {
		return models.Pet{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var pet models.Pet
	err = r.db.withRetry(ctx, func(ctx context.Context) error {
		var scanErr error
		pet, scanErr = scanPet(r.db.QueryRowContext(ctx, query, args...))
		return scanErr
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Pet{}, ErrPetNotFound
		}
		log.Err(err).Str("func", "*petRepository.GetPet").Msg("error querying pet")
		return models.Pet{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return pet, nil
}

// UpdateTracker replaces the tracker of a pet owned by update.UserID.
// Returns [ErrPetNotFound] when no such pet belongs to the user.
func (r *petRepository) UpdateTracker(ctx context.Context, update models.PetTrackerUpdate) error {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateTrackerQuery(r.db.builder(), update)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var affected int64
	err = r.db.withRetry(ctx, func(ctx context.Context) error {
		res, err := r.db.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		log.Err(err).Str("func", "*petRepository.UpdateTracker").Msg("error updating tracker")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrPetNotFound
	}

	return nil
}
