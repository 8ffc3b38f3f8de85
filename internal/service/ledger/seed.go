package ledger

import (
	"fmt"

	"github.com/mamadbah2/farmledger/internal/domain/models"
)

// SeedDemo loads the demonstration herd, vaccine schedule and milk entries
// the dashboard ships with.
func SeedDemo(l *Ledger) error {
	animals := []models.Animal{
		{
			Name: "Bella", Species: models.SpeciesCattle, Breed: "Holstein", Gender: models.GenderFemale,
			BirthDate: models.MustDate("2023-05-15"), TagNumber: "C001", Status: models.StatusActive,
			Notes: "Dairy cow in good condition", Farm: "Altamira",
			ImageURL: "https://images.pexels.com/photos/735968/pexels-photo-735968.jpeg",
		},
		{
			Name: "Toro Negro", Species: models.SpeciesCattle, Breed: "Angus", Gender: models.GenderMale,
			BirthDate: models.MustDate("2021-08-20"), TagNumber: "C002", Status: models.StatusActive,
			Notes: "Breeding bull", Farm: "LlanoGrande",
			Purchase: &models.PurchaseInfo{Date: models.MustDate("2023-01-15"), Price: 5000000, Seller: "Ganadería El Progreso"},
			ImageURL: "https://images.pexels.com/photos/162801/pexels-photo-162801.jpeg",
		},
		{
			Name: "Relámpago", Species: models.SpeciesHorse, Breed: "Thoroughbred", Gender: models.GenderMale,
			BirthDate: models.MustDate("2023-01-10"), TagNumber: "H001", Status: models.StatusSold,
			Notes: "Race horse", Farm: "Altamira",
			Purchase: &models.PurchaseInfo{Date: models.MustDate("2023-02-15"), Price: 8000000, Seller: "Criadero El Potro"},
			Sale: &models.SaleInfo{
				Date: models.MustDate("2024-06-20"), Price: 12000000, Buyer: "Club Hípico Nacional",
				Notes: "Sold for competition",
			},
			ImageURL: "https://images.pexels.com/photos/635499/pexels-photo-635499.jpeg",
		},
		{
			Name: "Luna", Species: models.SpeciesCattle, Breed: "Jersey", Gender: models.GenderFemale,
			BirthDate: models.MustDate("2021-03-15"), TagNumber: "C003", Status: models.StatusDeceased,
			Notes: "Excellent milk producer", Parent: models.Parentage{MotherID: "1"}, Farm: "LlanoGrande",
			Death: &models.DeathInfo{
				Date: models.MustDate("2024-12-10"), Cause: "Calving complications",
				Notes: "Veterinary treatment was attempted without success",
			},
			ImageURL: "https://images.pexels.com/photos/139235/pexels-photo-139235.jpeg",
		},
	}
	for _, a := range animals {
		if _, err := l.AddAnimal(a); err != nil {
			return fmt.Errorf("seed animal %s: %w", a.TagNumber, err)
		}
	}

	vaccines := []models.VaccinationRecord{
		{
			Name: "Foot-and-mouth", Description: "Foot-and-mouth disease vaccine",
			LastApplied: models.MustDate("2024-11-15"), NextDueDate: models.MustDate("2025-05-15"),
			Species: models.SpeciesCattle,
		},
		{
			Name: "Brucellosis", Description: "Brucellosis vaccine",
			LastApplied: models.MustDate("2025-03-10"), NextDueDate: models.MustDate("2025-09-10"),
			Species: models.SpeciesCattle,
		},
		{
			Name: "Equine influenza", Description: "Equine influenza vaccine",
			LastApplied: models.MustDate("2025-04-01"), NextDueDate: models.MustDate("2025-10-01"),
			Species: models.SpeciesHorse,
		},
	}
	for _, v := range vaccines {
		if _, err := l.AddVaccination(v); err != nil {
			return fmt.Errorf("seed vaccination %s: %w", v.Name, err)
		}
	}

	productions := []models.MilkProduction{
		{
			Date: models.MustDate("2025-05-01"), Farm: "Altamira", Liters: 1200, PricePerLiter: 2000,
			Expenses: []models.MilkExpense{
				{ID: "1", Description: "Feed supplements", Amount: 500000, Category: models.ExpenseSupplement, Date: models.MustDate("2025-05-01")},
				{ID: "2", Description: "Preventive medicine", Amount: 300000, Category: models.ExpenseMedicine, Date: models.MustDate("2025-05-15")},
			},
		},
		{
			Date: models.MustDate("2025-05-15"), Farm: "LlanoGrande", Liters: 800, PricePerLiter: 2000,
			Expenses: []models.MilkExpense{
				{ID: "1", Description: "Feed supplements", Amount: 350000, Category: models.ExpenseSupplement, Date: models.MustDate("2025-05-15")},
			},
		},
	}
	for _, p := range productions {
		if _, err := l.AddMilkProduction(p); err != nil {
			return fmt.Errorf("seed milk production %s: %w", p.Date, err)
		}
	}

	return nil
}
