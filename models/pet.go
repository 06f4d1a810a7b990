// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"time"
)

// DateLayout is the wire and storage layout of calendar dates.
const DateLayout = "2006-01-02"

// Date is a calendar date serialized as "YYYY-MM-DD".
type Date struct {
	time.Time
}

// NewDate truncates t to a calendar date in UTC.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// MarshalJSON implements [json.Marshaler].
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(DateLayout))
}

// UnmarshalJSON implements [json.Unmarshaler].
func (d *Date) UnmarshalJSON(b []byte) error {
	var raw *string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw == nil || *raw == "" {
		*d = Date{}
		return nil
	}

	t, err := time.Parse(DateLayout, *raw)
	if err != nil {
		return err
	}
	*d = NewDate(t)
	return nil
}

// PetSex is the biological sex of a pet.
type PetSex string

const (
	PetMale   PetSex = "Male"
	PetFemale PetSex = "Female"
)

// Pet is a record owned by an account.
type Pet struct {
	// PetID is the server-assigned identifier.
	PetID int64 `json:"pet_id"`

	// UserID is the owning account.
	UserID int64 `json:"user_id"`

	// Type is the kind of animal (e.g. "Dog", "Cat").
	Type string `json:"pet_type"`

	// Name is the pet's display name.
	Name string `json:"pet_name"`

	Sex PetSex `json:"pet_sex"`

	Breed string `json:"breed"`

	// DateOfBirth is stored as a date, the time part is ignored.
	DateOfBirth Date `json:"pet_dob"`

	// Tracker is free-form text kept by the owner (vaccinations, weight, ...).
	Tracker string `json:"tracker"`

	// PhotoPath is an opaque reference to a photo managed elsewhere.
	PhotoPath string `json:"photo_path,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Pet model.
func (p Pet) TableName() string {
	return "pets"
}

// PetTrackerUpdate replaces the tracker text of a single pet.
type PetTrackerUpdate struct {
	PetID   int64  `json:"-"`
	UserID  int64  `json:"-"`
	Tracker string `json:"tracker"`
}
