package domain

import (
	"math"
	"testing"
)

func approx(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func TestProjectCasinoProfile(t *testing.T) {
	p, err := NewProfile(ProfileInput{
		CompanyName:   "Grand Mesa Casino",
		Industry:      "Casino",
		EmployeeCount: 5000,
	})
	if err != nil {
		t.Fatalf("NewProfile: %v", err)
	}
	if p.EstimatedSqft != 1_000_000 {
		t.Fatalf("EstimatedSqft = %v, want 1000000", p.EstimatedSqft)
	}
	if p.EstimatedEnergySpend != 15_000_000 {
		t.Fatalf("EstimatedEnergySpend = %v, want 15000000", p.EstimatedEnergySpend)
	}

	proj, err := Project(p, 8.59)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}

	approx(t, "AnnualSavings", proj.AnnualSavings, 1_288_500, 0.01)
	approx(t, "MonthlySavings", proj.MonthlySavings, 107_375, 0.01)
	approx(t, "FiveYearSavings", proj.FiveYearSavings, 6_442_500, 0.01)
	approx(t, "InstallationCost", proj.InstallationCost, 3_500_000, 0.01)
	approx(t, "PaybackMonths", proj.PaybackMonths, 32.6, 0.001)
	approx(t, "ROIPercentage", proj.ROIPercentage, 84.1, 0.001)
	approx(t, "CarbonReductionTons", proj.CarbonReductionTons, 901.95, 0.1)
	approx(t, "SavingsPercentage", proj.SavingsPercentage, 8.59, 0.001)
}

func TestProjectZeroSpend(t *testing.T) {
	p := ProspectProfile{CompanyName: "Empty Shell LLC", EstimatedSqft: 10_000}

	proj, err := Project(p, 12)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	if proj.AnnualSavings != 0 {
		t.Errorf("AnnualSavings = %v, want 0", proj.AnnualSavings)
	}
	if proj.PaybackMonths != PaybackSentinel {
		t.Errorf("PaybackMonths = %v, want sentinel %v", proj.PaybackMonths, PaybackSentinel)
	}
	approx(t, "InstallationCost", proj.InstallationCost, 35_000, 0.01)
	approx(t, "ROIPercentage", proj.ROIPercentage, -100, 0.001)
}

func TestProjectZeroEverything(t *testing.T) {
	proj, err := Project(ProspectProfile{CompanyName: "Ghost Co"}, 12)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	if proj.PaybackMonths != PaybackSentinel {
		t.Errorf("PaybackMonths = %v, want sentinel", proj.PaybackMonths)
	}
	if proj.ROIPercentage != 0 {
		t.Errorf("ROIPercentage = %v, want 0", proj.ROIPercentage)
	}
	if proj.InstallationCost != 0 {
		t.Errorf("InstallationCost = %v, want 0", proj.InstallationCost)
	}
}

func TestProjectClampsBenchmark(t *testing.T) {
	p := ProspectProfile{CompanyName: "Clamped Inc", EstimatedEnergySpend: 100_000}

	neg, err := Project(p, -5)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	if neg.AnnualSavings != 0 || neg.SavingsPercentage != 0 {
		t.Errorf("negative benchmark: got savings %v pct %v, want 0/0", neg.AnnualSavings, neg.SavingsPercentage)
	}

	over, err := Project(p, 150)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	approx(t, "AnnualSavings", over.AnnualSavings, 100_000, 0.01)
	approx(t, "SavingsPercentage", over.SavingsPercentage, 100, 0.001)
}

func TestProjectCarbon(t *testing.T) {
	p := ProspectProfile{CompanyName: "Carbon Co", EstimatedEnergySpend: 10_000_000}
	proj, err := Project(p, 10)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	approx(t, "CarbonReductionTons", proj.CarbonReductionTons, 700, 0.001)
}

func TestProjectRejectsNegativeProfile(t *testing.T) {
	_, err := Project(ProspectProfile{CompanyName: "Bad", EstimatedEnergySpend: -1}, 10)
	if err == nil {
		t.Fatal("expected validation error for negative spend")
	}
}
