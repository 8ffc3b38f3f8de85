package reporting

import (
	"strings"
	"testing"
	"time"

	"github.com/mamadbah2/farmledger/internal/domain/models"
	"github.com/mamadbah2/farmledger/internal/service/ledger"
)

var testNow = time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)

func newLedger() *ledger.Ledger {
	return ledger.New(ledger.WithClock(func() time.Time { return testNow }))
}

func TestBuildDigestEmpty(t *testing.T) {
	svc := NewService(newLedger(), time.UTC, nil)
	svc.now = func() time.Time { return testNow }

	digest := svc.BuildDigest()
	for _, want := range []string{
		"Farm digest 2026-03-10",
		"Herd: 0 cattle and 0 horses active.",
		"Milk 2026: no production recorded yet.",
		"Vaccinations: nothing due in the next 30 days.",
	} {
		if !strings.Contains(digest, want) {
			t.Fatalf("digest missing %q:\n%s", want, digest)
		}
	}
}

func TestMilkSummaryText(t *testing.T) {
	l := newLedger()
	l.AddMilkProduction(models.MilkProduction{Date: models.MustDate("2026-02-01"), Farm: "B", Liters: 50, PricePerLiter: 10})
	l.AddMilkProduction(models.MilkProduction{
		Date: models.MustDate("2026-01-01"), Farm: "A", Liters: 100, PricePerLiter: 10,
		Expenses: []models.MilkExpense{{Amount: 20, Category: models.ExpenseOther}},
	})

	text := NewService(l, time.UTC, nil).MilkSummaryText()
	want := "Milk 2026: 150.0 L, income 1500.00, expenses 20.00, balance 1480.00.\n" +
		"- A: 100.0 L, balance 980.00\n" +
		"- B: 50.0 L, balance 500.00\n" +
		"Latest month 2026-02: 50.0 L, balance 500.00."
	if text != want {
		t.Fatalf("unexpected text:\n%s\nwant:\n%s", text, want)
	}
}

func TestVaccinationsTextSortedByDueDate(t *testing.T) {
	l := newLedger()
	l.AddVaccination(models.VaccinationRecord{Name: "Later", NextDueDate: models.MustDate("2026-03-30"), Species: models.SpeciesHorse})
	l.AddVaccination(models.VaccinationRecord{Name: "Sooner", NextDueDate: models.MustDate("2026-03-12"), Species: models.SpeciesCattle})

	text := NewService(l, time.UTC, nil).VaccinationsText()
	if !strings.HasPrefix(text, "Vaccinations due in the next 30 days: 2.") {
		t.Fatalf("unexpected header: %s", text)
	}
	if strings.Index(text, "Sooner") > strings.Index(text, "Later") {
		t.Fatalf("expected ascending due dates: %s", text)
	}
}

func TestHerdText(t *testing.T) {
	l := newLedger()
	if err := ledger.SeedDemo(l); err != nil {
		t.Fatalf("seed: %v", err)
	}
	text := NewService(l, time.UTC, nil).HerdText()
	want := "Herd: 2 cattle and 0 horses active. Purchases 13000000.00, sales 12000000.00, balance -1000000.00."
	if text != want {
		t.Fatalf("got %q, want %q", text, want)
	}
}

func TestBuildDigestUsesConfiguredZone(t *testing.T) {
	bogota, err := time.LoadLocation("America/Bogota")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}
	svc := NewService(newLedger(), bogota, nil)
	// 03:00 UTC on the 10th is still the 9th in Bogota.
	svc.now = func() time.Time { return time.Date(2026, time.March, 10, 3, 0, 0, 0, time.UTC) }

	if digest := svc.BuildDigest(); !strings.HasPrefix(digest, "Farm digest 2026-03-09") {
		t.Fatalf("unexpected header:\n%s", digest)
	}
}
