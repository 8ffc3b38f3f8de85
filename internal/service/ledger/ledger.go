// Package ledger owns the farm's livestock, vaccination and milk collections
// and computes the derived summaries the dashboard reads.
package ledger

import (
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/farmledger/internal/domain/models"
)

// DefaultFarms are the production sites known to the dashboard.
var DefaultFarms = []string{"Altamira", "LlanoGrande"}

const upcomingWindowDays = 30

// Ledger is the single owner of all farm records for a process lifetime.
type Ledger struct {
	mu sync.Mutex

	animals      []models.Animal
	vaccinations []models.VaccinationRecord
	productions  []models.MilkProduction
	archives     []models.YearlyArchive
	farms        []string

	animalSeq      int
	vaccinationSeq int
	productionSeq  int

	now    func() time.Time
	loc    *time.Location
	logger *zap.Logger
}

// Option customises a Ledger.
type Option func(*Ledger)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		if now != nil {
			l.now = now
		}
	}
}

// WithLocation sets the zone used to decide the current calendar year and
// the instant at which a due date starts.
func WithLocation(loc *time.Location) Option {
	return func(l *Ledger) {
		if loc != nil {
			l.loc = loc
		}
	}
}

// WithFarms replaces the list of available farms.
func WithFarms(farms []string) Option {
	return func(l *Ledger) {
		if len(farms) > 0 {
			l.farms = append([]string(nil), farms...)
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(l *Ledger) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// New builds an empty ledger.
func New(opts ...Option) *Ledger {
	l := &Ledger{
		farms:  append([]string(nil), DefaultFarms...),
		now:    time.Now,
		loc:    time.UTC,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Farms lists the available farm labels.
func (l *Ledger) Farms() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.farms...)
}

func (l *Ledger) localNow() time.Time {
	return l.now().In(l.loc)
}

// startOf returns the instant a civil date begins in the ledger's zone.
func (l *Ledger) startOf(d models.Date) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, l.loc)
}

func nextID(seq *int) string {
	*seq++
	return strconv.Itoa(*seq)
}

// interval is a closed range of civil dates.
type interval struct {
	start, end time.Time
}

func yearInterval(year int) interval {
	return interval{
		start: time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		end:   time.Date(year, time.December, 31, 23, 59, 59, 999999999, time.UTC),
	}
}

func (i interval) contains(d models.Date) bool {
	return !d.Before(i.start) && !d.After(i.end)
}
