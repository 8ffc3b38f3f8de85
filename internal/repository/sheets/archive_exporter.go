package sheets

import (
	"context"
	"fmt"

	"github.com/mamadbah2/farmledger/internal/domain/models"
)

// ArchiveRange is where yearly archives land, one row per month.
const ArchiveRange = "Archive!A:F"

// ArchiveExporter writes yearly milk archives as spreadsheet rows.
type ArchiveExporter struct {
	repo Repository
}

// NewArchiveExporter wraps a sheets repository.
func NewArchiveExporter(repo Repository) *ArchiveExporter {
	return &ArchiveExporter{repo: repo}
}

// ExportArchive appends year, month, liters, income, expenses and balance
// for every month of the archive.
func (e *ArchiveExporter) ExportArchive(ctx context.Context, archive models.YearlyArchive) error {
	rows := ArchiveRows(archive)
	if len(rows) == 0 {
		return nil
	}
	if err := e.repo.WriteRows(ctx, ArchiveRange, rows); err != nil {
		return fmt.Errorf("export archive %d: %w", archive.Year, err)
	}
	return nil
}

// ArchivedYears lists the years already present in the sheet.
func (e *ArchiveExporter) ArchivedYears(ctx context.Context) (map[string]bool, error) {
	values, err := e.repo.ReadRange(ctx, "Archive!A:A")
	if err != nil {
		return nil, err
	}
	years := make(map[string]bool, len(values))
	for _, row := range values {
		if len(row) == 0 {
			continue
		}
		years[fmt.Sprint(row[0])] = true
	}
	return years, nil
}

// ArchiveRows renders the month rows of an archive.
func ArchiveRows(archive models.YearlyArchive) [][]interface{} {
	rows := make([][]interface{}, 0, len(archive.Monthly))
	for _, m := range archive.Monthly {
		rows = append(rows, []interface{}{
			archive.Year,
			m.Month,
			m.Liters,
			m.Income,
			m.Expenses,
			m.Balance,
		})
	}
	return rows
}
