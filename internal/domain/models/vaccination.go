package models

import "fmt"

// SpeciesAll marks a vaccine that applies to every species.
const SpeciesAll Species = "all"

// VaccinationRecord schedules a recurring vaccine.
type VaccinationRecord struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	LastApplied Date    `json:"lastApplied"`
	NextDueDate Date    `json:"nextDueDate"`
	Species     Species `json:"species"`
	Cost        float64 `json:"cost,omitempty"`
	Notes       string  `json:"notes,omitempty"`
}

// Validate checks the species scope.
func (v VaccinationRecord) Validate() error {
	if v.Species != SpeciesAll && !v.Species.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownSpecies, v.Species)
	}
	return nil
}

// VaccinationPatch is a partial update; nil fields are left untouched.
type VaccinationPatch struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	LastApplied *Date    `json:"lastApplied,omitempty"`
	NextDueDate *Date    `json:"nextDueDate,omitempty"`
	Species     *Species `json:"species,omitempty"`
	Cost        *float64 `json:"cost,omitempty"`
	Notes       *string  `json:"notes,omitempty"`
}

// Apply merges the patch into v and returns the result.
func (p VaccinationPatch) Apply(v VaccinationRecord) VaccinationRecord {
	if p.Name != nil {
		v.Name = *p.Name
	}
	if p.Description != nil {
		v.Description = *p.Description
	}
	if p.LastApplied != nil {
		v.LastApplied = *p.LastApplied
	}
	if p.NextDueDate != nil {
		v.NextDueDate = *p.NextDueDate
	}
	if p.Species != nil {
		v.Species = *p.Species
	}
	if p.Cost != nil {
		v.Cost = *p.Cost
	}
	if p.Notes != nil {
		v.Notes = *p.Notes
	}
	return v
}
