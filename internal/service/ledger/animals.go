package ledger

import (
	"go.uber.org/zap"

	"github.com/mamadbah2/farmledger/internal/domain/models"
)

// AddAnimal assigns a fresh id and appends the animal.
func (l *Ledger) AddAnimal(a models.Animal) (models.Animal, error) {
	if err := a.Validate(); err != nil {
		return models.Animal{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	a = a.Clone()
	a.ID = nextID(&l.animalSeq)
	l.animals = append(l.animals, a)
	l.logger.Debug("animal added", zap.String("id", a.ID), zap.String("tag", a.TagNumber))
	return a.Clone(), nil
}

// UpdateAnimal merges patch into the animal with the given id. A missing id is
// a no-op reported by the second return value. A merge that fails validation
// is rejected and leaves the animal unchanged.
func (l *Ledger) UpdateAnimal(id string, patch models.AnimalPatch) (models.Animal, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := l.animalIndex(id)
	if idx < 0 {
		return models.Animal{}, false, nil
	}
	merged := patch.Apply(l.animals[idx])
	if err := merged.Validate(); err != nil {
		return models.Animal{}, true, err
	}
	l.animals[idx] = merged
	l.logger.Debug("animal updated", zap.String("id", id))
	return merged.Clone(), true, nil
}

// DeleteAnimal removes the animal and reports whether it existed. Animals
// naming it as a parent keep the dangling id.
func (l *Ledger) DeleteAnimal(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := l.animalIndex(id)
	if idx < 0 {
		l.logger.Error("animal not found", zap.String("id", id))
		return false
	}

	remaining := make([]models.Animal, 0, len(l.animals)-1)
	remaining = append(remaining, l.animals[:idx]...)
	remaining = append(remaining, l.animals[idx+1:]...)
	l.animals = remaining

	l.logger.Info("animal deleted", zap.String("id", id))
	return true
}

// Animal looks an animal up by id.
func (l *Ledger) Animal(id string) (models.Animal, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := l.animalIndex(id)
	if idx < 0 {
		return models.Animal{}, false
	}
	return l.animals[idx].Clone(), true
}

// Animals returns every animal in insertion order.
func (l *Ledger) Animals() []models.Animal {
	l.mu.Lock()
	defer l.mu.Unlock()
	return cloneAnimals(l.animals, nil)
}

// ActiveAnimals returns the animals whose status is active.
func (l *Ledger) ActiveAnimals() []models.Animal {
	l.mu.Lock()
	defer l.mu.Unlock()
	return cloneAnimals(l.animals, func(a models.Animal) bool {
		return a.Status == models.StatusActive
	})
}

// CountActive counts active animals of one species.
func (l *Ledger) CountActive(species models.Species) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	var n int
	for _, a := range l.animals {
		if a.Species == species && a.Status == models.StatusActive {
			n++
		}
	}
	return n
}

// Age computes the elapsed years and remaining months from birth to now.
func (l *Ledger) Age(birth models.Date) models.Age {
	return ageAt(birth, models.DateOf(l.localNow()))
}

// AgeOf is Age for a stored animal.
func (l *Ledger) AgeOf(id string) (models.Age, bool) {
	a, ok := l.Animal(id)
	if !ok {
		return models.Age{}, false
	}
	return l.Age(a.BirthDate), true
}

// ageAt counts whole months between two civil dates; a month only counts
// once its day of month has been reached.
func ageAt(birth, today models.Date) models.Age {
	if today.Before(birth.Time) {
		return models.Age{}
	}
	months := (today.Year()-birth.Year())*12 + int(today.Month()-birth.Month())
	if today.Day() < birth.Day() && !isLastDayOfMonth(today) {
		months--
	}
	if months < 0 {
		months = 0
	}
	return models.Age{Years: months / 12, Months: months % 12}
}

func isLastDayOfMonth(d models.Date) bool {
	return d.AddDate(0, 0, 1).Month() != d.Month()
}

func (l *Ledger) animalIndex(id string) int {
	for i, a := range l.animals {
		if a.ID == id {
			return i
		}
	}
	return -1
}

func cloneAnimals(in []models.Animal, keep func(models.Animal) bool) []models.Animal {
	out := make([]models.Animal, 0, len(in))
	for _, a := range in {
		if keep != nil && !keep(a) {
			continue
		}
		out = append(out, a.Clone())
	}
	return out
}
