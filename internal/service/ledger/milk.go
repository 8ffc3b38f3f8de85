package ledger

import (
	"strconv"

	"go.uber.org/zap"

	"github.com/mamadbah2/farmledger/internal/domain/models"
)

// AddMilkProduction assigns a fresh id and appends the entry.
func (l *Ledger) AddMilkProduction(p models.MilkProduction) (models.MilkProduction, error) {
	if err := p.Validate(); err != nil {
		return models.MilkProduction{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	p = p.Clone()
	p.ID = nextID(&l.productionSeq)
	l.productions = append(l.productions, p)
	l.logger.Debug("milk production added",
		zap.String("id", p.ID),
		zap.String("farm", p.Farm),
		zap.Stringer("date", p.Date),
		zap.Float64("liters", p.Liters))
	return p.Clone(), nil
}

// AddMilkExpense appends an expense to a production entry. The expense id is
// the entry's expense count plus one, so it is only unique inside that entry.
func (l *Ledger) AddMilkExpense(productionID string, e models.MilkExpense) (models.MilkExpense, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := l.productionIndex(productionID)
	if idx < 0 {
		return models.MilkExpense{}, false, nil
	}
	if err := e.Validate(); err != nil {
		return models.MilkExpense{}, true, err
	}

	p := &l.productions[idx]
	e.ID = strconv.Itoa(len(p.Expenses) + 1)
	p.Expenses = append(p.Expenses, e)
	l.logger.Debug("milk expense added",
		zap.String("production_id", productionID),
		zap.String("expense_id", e.ID),
		zap.Float64("amount", e.Amount))
	return e, true, nil
}

// UpdateMilkProduction merges patch into the entry with the given id. Invalid
// merges are rejected.
func (l *Ledger) UpdateMilkProduction(id string, patch models.MilkProductionPatch) (models.MilkProduction, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := l.productionIndex(id)
	if idx < 0 {
		return models.MilkProduction{}, false, nil
	}
	merged := patch.Apply(l.productions[idx])
	if err := merged.Validate(); err != nil {
		return models.MilkProduction{}, true, err
	}
	l.productions[idx] = merged
	l.logger.Debug("milk production updated", zap.String("id", id))
	return merged.Clone(), true, nil
}

// DeleteMilkProduction removes the entry with the given id, if any.
func (l *Ledger) DeleteMilkProduction(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := l.productionIndex(id)
	if idx < 0 {
		return false
	}
	l.productions = append(l.productions[:idx:idx], l.productions[idx+1:]...)
	l.logger.Debug("milk production deleted", zap.String("id", id))
	return true
}

// MilkProductions returns the live entries in insertion order.
func (l *Ledger) MilkProductions() []models.MilkProduction {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]models.MilkProduction, 0, len(l.productions))
	for _, p := range l.productions {
		out = append(out, p.Clone())
	}
	return out
}

func (l *Ledger) productionIndex(id string) int {
	for i, p := range l.productions {
		if p.ID == id {
			return i
		}
	}
	return -1
}
