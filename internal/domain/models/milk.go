package models

import (
	"fmt"
	"time"
)

// ExpenseCategory classifies milk production costs.
type ExpenseCategory string

const (
	ExpenseSupplement ExpenseCategory = "supplement"
	ExpenseMedicine   ExpenseCategory = "medicine"
	ExpenseOther      ExpenseCategory = "other"
)

// Valid reports whether c is a known category.
func (c ExpenseCategory) Valid() bool {
	switch c {
	case ExpenseSupplement, ExpenseMedicine, ExpenseOther:
		return true
	}
	return false
}

// MilkExpense is a cost attached to one production entry. Its ID is only
// unique within that entry.
type MilkExpense struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      float64         `json:"amount"`
	Category    ExpenseCategory `json:"category"`
	Date        Date            `json:"date"`
}

// MilkProduction records liters delivered by a farm on a day.
type MilkProduction struct {
	ID            string        `json:"id"`
	Date          Date          `json:"date"`
	Farm          string        `json:"farm"`
	Liters        float64       `json:"liters"`
	PricePerLiter float64       `json:"pricePerLiter"`
	Expenses      []MilkExpense `json:"expenses"`
}

// Income is liters times price per liter.
func (p MilkProduction) Income() float64 {
	return p.Liters * p.PricePerLiter
}

// ExpenseTotal sums the attached expenses.
func (p MilkProduction) ExpenseTotal() float64 {
	var total float64
	for _, e := range p.Expenses {
		total += e.Amount
	}
	return total
}

// Clone copies the expense slice.
func (p MilkProduction) Clone() MilkProduction {
	p.Expenses = append([]MilkExpense(nil), p.Expenses...)
	if p.Expenses == nil {
		p.Expenses = []MilkExpense{}
	}
	return p
}

// Validate rejects unknown expense categories.
func (p MilkProduction) Validate() error {
	for _, e := range p.Expenses {
		if err := e.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks the expense category.
func (e MilkExpense) Validate() error {
	if !e.Category.Valid() {
		return fmt.Errorf("unknown expense category %q", e.Category)
	}
	return nil
}

// MilkProductionPatch is a partial update; nil fields are left untouched.
type MilkProductionPatch struct {
	Date          *Date          `json:"date,omitempty"`
	Farm          *string        `json:"farm,omitempty"`
	Liters        *float64       `json:"liters,omitempty"`
	PricePerLiter *float64       `json:"pricePerLiter,omitempty"`
	Expenses      *[]MilkExpense `json:"expenses,omitempty"`
}

// Apply merges the patch into p and returns the result.
func (patch MilkProductionPatch) Apply(p MilkProduction) MilkProduction {
	if patch.Date != nil {
		p.Date = *patch.Date
	}
	if patch.Farm != nil {
		p.Farm = *patch.Farm
	}
	if patch.Liters != nil {
		p.Liters = *patch.Liters
	}
	if patch.PricePerLiter != nil {
		p.PricePerLiter = *patch.PricePerLiter
	}
	if patch.Expenses != nil {
		p.Expenses = append([]MilkExpense(nil), (*patch.Expenses)...)
	}
	return p
}

// MilkTotals accumulates liters and money for a group of entries.
type MilkTotals struct {
	Liters   float64 `bson:"liters" json:"liters"`
	Income   float64 `bson:"income" json:"income"`
	Expenses float64 `bson:"expenses" json:"expenses"`
	Balance  float64 `bson:"balance" json:"balance"`
}

// Add folds one production entry into the totals.
func (t *MilkTotals) Add(p MilkProduction) {
	income := p.Income()
	expenses := p.ExpenseTotal()
	t.Liters += p.Liters
	t.Income += income
	t.Expenses += expenses
	t.Balance += income - expenses
}

// MonthlyMilkAggregate holds the totals of one YYYY-MM month.
type MonthlyMilkAggregate struct {
	Month      string `bson:"month" json:"month"`
	MilkTotals `bson:",inline"`
}

// MilkProductionSummary is the current-year rollup.
type MilkProductionSummary struct {
	Year    int                    `json:"year"`
	Totals  MilkTotals             `json:"totals"`
	ByFarm  map[string]MilkTotals  `json:"byFarm"`
	Monthly []MonthlyMilkAggregate `json:"monthlyData"`
}

// YearlyArchive is the compact record kept once a year leaves the live set.
type YearlyArchive struct {
	Year       int                    `bson:"year" json:"year"`
	Totals     MilkTotals             `bson:"totals" json:"totals"`
	Monthly    []MonthlyMilkAggregate `bson:"monthly_data" json:"monthlyData"`
	ArchivedAt time.Time              `bson:"archived_at" json:"archivedAt"`
}

// Month finds the aggregate for the given month of the archive.
func (a YearlyArchive) Month(month time.Month) (MonthlyMilkAggregate, bool) {
	key := MonthKey(a.Year, month)
	for _, m := range a.Monthly {
		if m.Month == key {
			return m, true
		}
	}
	return MonthlyMilkAggregate{}, false
}

// Clone copies the monthly slice.
func (a YearlyArchive) Clone() YearlyArchive {
	a.Monthly = append([]MonthlyMilkAggregate(nil), a.Monthly...)
	return a
}
