package reporting

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/farmledger/internal/domain/models"
)

const dateLayout = "2006-01-02"

// LedgerReader is the part of the ledger the digest needs.
type LedgerReader interface {
	MilkSummary() models.MilkProductionSummary
	UpcomingVaccinations() []models.VaccinationRecord
	CountActive(species models.Species) int
	FinancialSummary() models.FinancialSummary
}

// Service renders plain-text summaries for WhatsApp and the dashboard.
type Service struct {
	ledger LedgerReader
	loc    *time.Location
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires a new reporting service instance. Dates are rendered in
// loc, which defaults to UTC.
func NewService(ledger LedgerReader, loc *time.Location, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{ledger: ledger, loc: loc, logger: logger, now: time.Now}
}

// MilkSummaryText describes the current year's milk production.
func (s *Service) MilkSummaryText() string {
	summary := s.ledger.MilkSummary()
	if summary.Totals.Liters == 0 && len(summary.Monthly) == 0 {
		return fmt.Sprintf("Milk %d: no production recorded yet.", summary.Year)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Milk %d: %.1f L, income %.2f, expenses %.2f, balance %.2f.",
		summary.Year, summary.Totals.Liters, summary.Totals.Income, summary.Totals.Expenses, summary.Totals.Balance)

	farms := make([]string, 0, len(summary.ByFarm))
	for farm := range summary.ByFarm {
		farms = append(farms, farm)
	}
	sort.Strings(farms)
	for _, farm := range farms {
		t := summary.ByFarm[farm]
		fmt.Fprintf(&b, "\n- %s: %.1f L, balance %.2f", farm, t.Liters, t.Balance)
	}

	if n := len(summary.Monthly); n > 0 {
		last := summary.Monthly[n-1]
		fmt.Fprintf(&b, "\nLatest month %s: %.1f L, balance %.2f.", last.Month, last.Liters, last.Balance)
	}
	return b.String()
}

// VaccinationsText lists vaccines due in the next thirty days.
func (s *Service) VaccinationsText() string {
	due := s.ledger.UpcomingVaccinations()
	if len(due) == 0 {
		return "Vaccinations: nothing due in the next 30 days."
	}

	sort.Slice(due, func(i, j int) bool { return due[i].NextDueDate.Before(due[j].NextDueDate.Time) })

	var b strings.Builder
	fmt.Fprintf(&b, "Vaccinations due in the next 30 days: %d.", len(due))
	for _, v := range due {
		fmt.Fprintf(&b, "\n- %s (%s) on %s", v.Name, v.Species, v.NextDueDate.Format(dateLayout))
	}
	return b.String()
}

// HerdText reports active head counts and the trading balance.
func (s *Service) HerdText() string {
	cattle := s.ledger.CountActive(models.SpeciesCattle)
	horses := s.ledger.CountActive(models.SpeciesHorse)
	finance := s.ledger.FinancialSummary()
	return fmt.Sprintf("Herd: %d cattle and %d horses active. Purchases %.2f, sales %.2f, balance %.2f.",
		cattle, horses, finance.TotalInvestment, finance.TotalSales, finance.Balance)
}

// BuildDigest assembles the weekly message.
func (s *Service) BuildDigest() string {
	today := s.now().In(s.loc).Format(dateLayout)
	s.logger.Debug("building digest", zap.String("date", today))

	return strings.Join([]string{
		fmt.Sprintf("Farm digest %s", today),
		s.HerdText(),
		s.MilkSummaryText(),
		s.VaccinationsText(),
	}, "\n\n")
}
