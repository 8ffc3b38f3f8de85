// Package archive forwards yearly milk archives from the ledger to durable sinks.
package archive

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/mamadbah2/farmledger/internal/domain/models"
)

// Source is the ledger surface the publisher reads.
type Source interface {
	MilkSummary() models.MilkProductionSummary
	Archives() []models.YearlyArchive
	RestoreArchives(archives []models.YearlyArchive)
}

// Store persists archives across restarts.
type Store interface {
	SaveYearlyArchive(ctx context.Context, archive models.YearlyArchive) error
	ListYearlyArchives(ctx context.Context) ([]models.YearlyArchive, error)
}

// Exporter mirrors archives into a spreadsheet.
type Exporter interface {
	ExportArchive(ctx context.Context, archive models.YearlyArchive) error
	ArchivedYears(ctx context.Context) (map[string]bool, error)
}

// Publisher tracks how many ledger archives each sink has received.
type Publisher struct {
	source   Source
	store    Store
	exporter Exporter
	logger   *zap.Logger

	mu       sync.Mutex
	stored   int
	exported int
}

// NewPublisher wires a publisher. store and exporter are optional.
func NewPublisher(source Source, store Store, exporter Exporter, logger *zap.Logger) *Publisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Publisher{source: source, store: store, exporter: exporter, logger: logger}
}

// Restore loads persisted archives into the ledger. They count as already
// delivered to every sink.
func (p *Publisher) Restore(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.store != nil {
		archives, err := p.store.ListYearlyArchives(ctx)
		if err != nil {
			return fmt.Errorf("restore archives: %w", err)
		}
		p.source.RestoreArchives(archives)
		p.logger.Info("archives restored", zap.Int("count", len(archives)))
	}

	n := len(p.source.Archives())
	p.stored, p.exported = n, n
	return nil
}

// Sync forwards archives created since the last call.
func (p *Publisher) Sync(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	archives := p.source.Archives()

	if p.store != nil {
		for ; p.stored < len(archives); p.stored++ {
			a := archives[p.stored]
			if err := p.store.SaveYearlyArchive(ctx, a); err != nil {
				return fmt.Errorf("store archive %d: %w", a.Year, err)
			}
			p.logger.Info("archive stored", zap.Int("year", a.Year))
		}
	}

	if p.exporter != nil && p.exported < len(archives) {
		existing, err := p.exporter.ArchivedYears(ctx)
		if err != nil {
			return fmt.Errorf("read exported years: %w", err)
		}
		if existing == nil {
			existing = make(map[string]bool)
		}
		for ; p.exported < len(archives); p.exported++ {
			a := archives[p.exported]
			year := strconv.Itoa(a.Year)
			if existing[year] {
				p.logger.Warn("archive year already exported, skipping", zap.Int("year", a.Year))
				continue
			}
			if err := p.exporter.ExportArchive(ctx, a); err != nil {
				return err
			}
			existing[year] = true
			p.logger.Info("archive exported", zap.Int("year", a.Year))
		}
	}
	return nil
}

// Rollover computes the milk summary, which archives the previous year when
// its entries are still live, then publishes any new archive.
func (p *Publisher) Rollover(ctx context.Context) error {
	summary := p.source.MilkSummary()
	p.logger.Debug("milk summary refreshed", zap.Int("year", summary.Year), zap.Float64("liters", summary.Totals.Liters))
	return p.Sync(ctx)
}
