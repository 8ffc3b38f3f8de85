package models

import (
	"errors"
	"fmt"
)

// Species enumerates the animal kinds tracked on the farms.
type Species string

const (
	SpeciesCattle Species = "cattle"
	SpeciesHorse  Species = "horse"
)

// AllSpecies lists the tracked species in display order.
var AllSpecies = []Species{SpeciesCattle, SpeciesHorse}

// Valid reports whether s is a known species.
func (s Species) Valid() bool {
	return s == SpeciesCattle || s == SpeciesHorse
}

// AnimalStatus is the lifecycle state of an animal.
type AnimalStatus string

const (
	StatusActive   AnimalStatus = "active"
	StatusSold     AnimalStatus = "sold"
	StatusDeceased AnimalStatus = "deceased"
)

// Gender of an animal.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

var (
	ErrUnknownSpecies = errors.New("unknown species")
	ErrUnknownStatus  = errors.New("unknown animal status")
	ErrUnknownGender  = errors.New("unknown gender")
)

// Parentage holds informational links to the parents. Ids are not checked.
type Parentage struct {
	MotherID string `json:"motherId"`
	FatherID string `json:"fatherId"`
}

// PurchaseInfo records how an animal entered the herd.
type PurchaseInfo struct {
	Date   Date    `json:"date"`
	Price  float64 `json:"price"`
	Seller string  `json:"seller"`
}

// SaleInfo records the sale of an animal.
type SaleInfo struct {
	Date  Date    `json:"date"`
	Price float64 `json:"price"`
	Buyer string  `json:"buyer"`
	Notes string  `json:"notes,omitempty"`
}

// DeathInfo records the death of an animal.
type DeathInfo struct {
	Date  Date   `json:"date"`
	Cause string `json:"cause"`
	Notes string `json:"notes,omitempty"`
}

// Animal is a single head of livestock.
type Animal struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	TagNumber string        `json:"tagNumber"`
	Species   Species       `json:"species"`
	Breed     string        `json:"breed"`
	Gender    Gender        `json:"gender"`
	BirthDate Date          `json:"birthDate"`
	Status    AnimalStatus  `json:"status"`
	Notes     string        `json:"notes"`
	Parent    Parentage     `json:"parent"`
	Farm      string        `json:"farm"`
	Purchase  *PurchaseInfo `json:"purchaseInfo,omitempty"`
	Sale      *SaleInfo     `json:"saleInfo,omitempty"`
	Death     *DeathInfo    `json:"deceasedInfo,omitempty"`
	ImageURL  string        `json:"imageUrl,omitempty"`
}

// Validate checks the enumerated fields. Sale and death records are not
// cross-checked against Status.
func (a Animal) Validate() error {
	if !a.Species.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownSpecies, a.Species)
	}
	switch a.Status {
	case StatusActive, StatusSold, StatusDeceased:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStatus, a.Status)
	}
	switch a.Gender {
	case GenderMale, GenderFemale:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownGender, a.Gender)
	}
	return nil
}

// Clone returns a deep copy so callers cannot mutate ledger state.
func (a Animal) Clone() Animal {
	if a.Purchase != nil {
		p := *a.Purchase
		a.Purchase = &p
	}
	if a.Sale != nil {
		s := *a.Sale
		a.Sale = &s
	}
	if a.Death != nil {
		d := *a.Death
		a.Death = &d
	}
	return a
}

// AnimalPatch is a partial update; nil fields are left untouched.
type AnimalPatch struct {
	Name      *string       `json:"name,omitempty"`
	TagNumber *string       `json:"tagNumber,omitempty"`
	Species   *Species      `json:"species,omitempty"`
	Breed     *string       `json:"breed,omitempty"`
	Gender    *Gender       `json:"gender,omitempty"`
	BirthDate *Date         `json:"birthDate,omitempty"`
	Status    *AnimalStatus `json:"status,omitempty"`
	Notes     *string       `json:"notes,omitempty"`
	Parent    *Parentage    `json:"parent,omitempty"`
	Farm      *string       `json:"farm,omitempty"`
	Purchase  *PurchaseInfo `json:"purchaseInfo,omitempty"`
	Sale      *SaleInfo     `json:"saleInfo,omitempty"`
	Death     *DeathInfo    `json:"deceasedInfo,omitempty"`
	ImageURL  *string       `json:"imageUrl,omitempty"`
}

// Apply merges the patch into a and returns the result.
func (p AnimalPatch) Apply(a Animal) Animal {
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.TagNumber != nil {
		a.TagNumber = *p.TagNumber
	}
	if p.Species != nil {
		a.Species = *p.Species
	}
	if p.Breed != nil {
		a.Breed = *p.Breed
	}
	if p.Gender != nil {
		a.Gender = *p.Gender
	}
	if p.BirthDate != nil {
		a.BirthDate = *p.BirthDate
	}
	if p.Status != nil {
		a.Status = *p.Status
	}
	if p.Notes != nil {
		a.Notes = *p.Notes
	}
	if p.Parent != nil {
		a.Parent = *p.Parent
	}
	if p.Farm != nil {
		a.Farm = *p.Farm
	}
	if p.Purchase != nil {
		v := *p.Purchase
		a.Purchase = &v
	}
	if p.Sale != nil {
		v := *p.Sale
		a.Sale = &v
	}
	if p.Death != nil {
		v := *p.Death
		a.Death = &v
	}
	if p.ImageURL != nil {
		a.ImageURL = *p.ImageURL
	}
	return a
}

// Age is the elapsed whole years and remaining months since birth.
type Age struct {
	Years  int `json:"years"`
	Months int `json:"months"`
}

// String renders "N years (M months)", "N years" or "M months".
func (a Age) String() string {
	if a.Years > 0 {
		years := plural(a.Years, "year", "years")
		if a.Months > 0 {
			return fmt.Sprintf("%s (%s)", years, plural(a.Months, "month", "months"))
		}
		return years
	}
	return plural(a.Months, "month", "months")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
