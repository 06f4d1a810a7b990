package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-pet-life/internal/app"
	"github.com/MKhiriev/go-pet-life/internal/utils"
	"github.com/MKhiriev/go-pet-life/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) createPet(w http.ResponseWriter, r *http.Request) {
	sess := session(r)

	var pet models.Pet
	if err := decode(r, &pet); err != nil {
		h.respond(w, r, sess, models.Outcome{}, err)
		return
	}

	created, err := h.services.PetService.CreatePet(r.Context(), sess, pet)
	if err != nil {
		h.respond(w, r, sess, models.Outcome{}, err)
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) listPets(w http.ResponseWriter, r *http.Request) {
	sess := session(r)

	pets, err := h.services.PetService.ListPets(r.Context(), sess)
	if err != nil {
		h.respond(w, r, sess, models.Outcome{}, err)
		return
	}

	utils.WriteJSON(w, models.PetsResponse{Pets: pets, Length: len(pets)}, http.StatusOK)
}

func (h *Handler) getPet(w http.ResponseWriter, r *http.Request) {
	sess := session(r)

	petID, err := petIDParam(r)
	if err != nil {
		h.respond(w, r, sess, models.Outcome{}, err)
		return
	}

	pet, err := h.services.PetService.GetPet(r.Context(), sess, petID)
	if err != nil {
		h.respond(w, r, sess, models.Outcome{}, err)
		return
	}

	utils.WriteJSON(w, pet, http.StatusOK)
}

func (h *Handler) updateTracker(w http.ResponseWriter, r *http.Request) {
	sess := session(r)

	petID, err := petIDParam(r)
	if err != nil {
		h.respond(w, r, sess, models.Outcome{}, err)
		return
	}

	var update models.PetTrackerUpdate
	if err = decode(r, &update); err != nil {
		h.respond(w, r, sess, models.Outcome{}, err)
		return
	}
	update.PetID = petID

	err = h.services.PetService.UpdateTracker(r.Context(), sess, update)
	h.respond(w, r, sess, models.Success(app.MsgTrackerUpdated, ""), err)
}

func petIDParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "petID")
	petID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || petID <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPetID, raw)
	}
	return petID, nil
}
