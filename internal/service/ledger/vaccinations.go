package ledger

import (
	"go.uber.org/zap"

	"github.com/mamadbah2/farmledger/internal/domain/models"
)

// AddVaccination assigns a fresh id and appends the record.
func (l *Ledger) AddVaccination(v models.VaccinationRecord) (models.VaccinationRecord, error) {
	if err := v.Validate(); err != nil {
		return models.VaccinationRecord{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	v.ID = nextID(&l.vaccinationSeq)
	l.vaccinations = append(l.vaccinations, v)
	l.logger.Debug("vaccination added", zap.String("id", v.ID), zap.String("name", v.Name))
	return v, nil
}

// UpdateVaccination merges patch into the record with the given id. Invalid
// merges are rejected.
func (l *Ledger) UpdateVaccination(id string, patch models.VaccinationPatch) (models.VaccinationRecord, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.vaccinations {
		if l.vaccinations[i].ID != id {
			continue
		}
		merged := patch.Apply(l.vaccinations[i])
		if err := merged.Validate(); err != nil {
			return models.VaccinationRecord{}, true, err
		}
		l.vaccinations[i] = merged
		l.logger.Debug("vaccination updated", zap.String("id", id))
		return merged, true, nil
	}
	return models.VaccinationRecord{}, false, nil
}

// DeleteVaccination removes the record with the given id, if any.
func (l *Ledger) DeleteVaccination(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.vaccinations {
		if l.vaccinations[i].ID != id {
			continue
		}
		l.vaccinations = append(l.vaccinations[:i:i], l.vaccinations[i+1:]...)
		l.logger.Debug("vaccination deleted", zap.String("id", id))
		return true
	}
	return false
}

// Vaccinations returns every record in insertion order.
func (l *Ledger) Vaccinations() []models.VaccinationRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]models.VaccinationRecord{}, l.vaccinations...)
}

// UpcomingVaccinations returns records whose due date starts between the
// current moment and thirty days later, both bounds included. A record due
// today is excluded once today has begun.
func (l *Ledger) UpcomingVaccinations() []models.VaccinationRecord {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.localNow()
	limit := now.AddDate(0, 0, upcomingWindowDays)

	out := []models.VaccinationRecord{}
	for _, v := range l.vaccinations {
		due := l.startOf(v.NextDueDate)
		if due.Before(now) || due.After(limit) {
			continue
		}
		out = append(out, v)
	}
	return out
}
