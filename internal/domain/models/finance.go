package models

// TradeTotals counts animals and sums prices for purchases or sales.
type TradeTotals struct {
	Count int     `json:"count"`
	Total float64 `json:"total"`
}

// SpeciesFinance splits purchases and sales for one species.
type SpeciesFinance struct {
	Purchases TradeTotals `json:"purchases"`
	Sales     TradeTotals `json:"sales"`
}

// FinancialSummary is derived from the full animal history on every call.
type FinancialSummary struct {
	TotalInvestment float64                    `json:"totalInvestment"`
	TotalSales      float64                    `json:"totalSales"`
	Balance         float64                    `json:"balance"`
	BySpecies       map[Species]SpeciesFinance `json:"bySpecies"`
}
