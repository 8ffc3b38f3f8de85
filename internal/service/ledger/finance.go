package ledger

import "github.com/mamadbah2/farmledger/internal/domain/models"

// FinancialSummary totals purchases and sales over the whole animal history,
// overall and per species.
func (l *Ledger) FinancialSummary() models.FinancialSummary {
	l.mu.Lock()
	defer l.mu.Unlock()

	summary := models.FinancialSummary{
		BySpecies: make(map[models.Species]models.SpeciesFinance, len(models.AllSpecies)),
	}
	for _, s := range models.AllSpecies {
		summary.BySpecies[s] = models.SpeciesFinance{}
	}

	for _, a := range l.animals {
		species, tracked := summary.BySpecies[a.Species]
		if a.Purchase != nil {
			summary.TotalInvestment += a.Purchase.Price
			species.Purchases.Count++
			species.Purchases.Total += a.Purchase.Price
		}
		if a.Sale != nil {
			summary.TotalSales += a.Sale.Price
			species.Sales.Count++
			species.Sales.Total += a.Sale.Price
		}
		if tracked {
			summary.BySpecies[a.Species] = species
		}
	}
	summary.Balance = summary.TotalSales - summary.TotalInvestment

	return summary
}
