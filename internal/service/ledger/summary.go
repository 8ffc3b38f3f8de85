package ledger

import (
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/farmledger/internal/domain/models"
)

// MilkSummary rolls up the current year's production. When any live entry
// falls outside the current year the prior year is archived first, so this
// read may change the live set.
func (l *Ledger) MilkSummary() models.MilkProductionSummary {
	l.mu.Lock()
	defer l.mu.Unlock()

	year := l.localNow().Year()
	current := yearInterval(year)

	for _, p := range l.productions {
		if !current.contains(p.Date) {
			l.archiveLocked(year)
			break
		}
	}

	summary := models.MilkProductionSummary{
		Year:   year,
		ByFarm: map[string]models.MilkTotals{},
	}

	months := map[string]*models.MonthlyMilkAggregate{}
	for _, p := range l.productions {
		if !current.contains(p.Date) {
			continue
		}
		summary.Totals.Add(p)

		farm := summary.ByFarm[p.Farm]
		farm.Add(p)
		summary.ByFarm[p.Farm] = farm

		addToMonth(months, p)
	}
	summary.Monthly = sortedMonths(months)

	return summary
}

// ArchiveLastYear moves the prior calendar year into the historical
// collection. It does nothing when the prior year has no entries.
func (l *Ledger) ArchiveLastYear() (models.YearlyArchive, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.archiveLocked(l.localNow().Year())
}

func (l *Ledger) archiveLocked(currentYear int) (models.YearlyArchive, bool) {
	lastYear := currentYear - 1
	previous := yearInterval(lastYear)

	archive := models.YearlyArchive{Year: lastYear}
	months := map[string]*models.MonthlyMilkAggregate{}
	var matched int
	for _, p := range l.productions {
		if !previous.contains(p.Date) {
			continue
		}
		matched++
		archive.Totals.Add(p)
		addToMonth(months, p)
	}
	if matched == 0 {
		return models.YearlyArchive{}, false
	}

	archive.Monthly = sortedMonths(months)
	archive.ArchivedAt = l.now()
	l.archives = append(l.archives, archive)

	// Only the current year stays live; entries outside both years are
	// dropped without being archived.
	current := yearInterval(currentYear)
	kept := make([]models.MilkProduction, 0, len(l.productions))
	for _, p := range l.productions {
		if current.contains(p.Date) {
			kept = append(kept, p)
		}
	}
	dropped := len(l.productions) - len(kept) - matched
	l.productions = kept

	l.logger.Info("milk production archived",
		zap.Int("year", lastYear),
		zap.Int("entries", matched),
		zap.Int("dropped_out_of_range", dropped),
		zap.Float64("liters", archive.Totals.Liters),
		zap.Float64("balance", archive.Totals.Balance))
	return archive.Clone(), true
}

// Archives returns the historical collection in creation order.
func (l *Ledger) Archives() []models.YearlyArchive {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]models.YearlyArchive, 0, len(l.archives))
	for _, a := range l.archives {
		out = append(out, a.Clone())
	}
	return out
}

// RestoreArchives appends archives loaded from durable storage.
func (l *Ledger) RestoreArchives(archives []models.YearlyArchive) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, a := range archives {
		l.archives = append(l.archives, a.Clone())
	}
}

// HistoricalMonth finds the archived aggregate for a year and month (1-12).
// The first archive recorded for the year wins.
func (l *Ledger) HistoricalMonth(year int, month time.Month) (models.MonthlyMilkAggregate, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, a := range l.archives {
		if a.Year == year {
			return a.Month(month)
		}
	}
	return models.MonthlyMilkAggregate{}, false
}

func addToMonth(months map[string]*models.MonthlyMilkAggregate, p models.MilkProduction) {
	key := p.Date.MonthKey()
	m, ok := months[key]
	if !ok {
		m = &models.MonthlyMilkAggregate{Month: key}
		months[key] = m
	}
	m.Add(p)
}

func sortedMonths(months map[string]*models.MonthlyMilkAggregate) []models.MonthlyMilkAggregate {
	out := make([]models.MonthlyMilkAggregate, 0, len(months))
	for _, m := range months {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}
