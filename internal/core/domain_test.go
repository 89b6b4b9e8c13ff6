package core

import "testing"

func TestFundingRoundValidate(t *testing.T) {
	valid := FundingRound{
		Company:   "Acme",
		Announced: NewDate(2024, 6, 1),
		Type:      "Series A",
		Raised:    Money{Cents: 100},
		Category:  CategoryEquity,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid round rejected: %v", err)
	}

	noCompany := valid
	noCompany.Company = ""
	if err := noCompany.Validate(); err != ErrEmptyCompany {
		t.Fatalf("expected ErrEmptyCompany, got %v", err)
	}

	noDate := valid
	noDate.Announced = Date{}
	if err := noDate.Validate(); err == nil {
		t.Fatalf("expected error for missing date")
	}

	negative := valid
	negative.Raised = Money{Cents: -1}
	if err := negative.Validate(); err != ErrNegativeAmount {
		t.Fatalf("expected ErrNegativeAmount, got %v", err)
	}

	badCategory := valid
	badCategory.Category = "Mezzanine"
	if err := badCategory.Validate(); err == nil {
		t.Fatalf("expected error for unknown category")
	}
}

func TestDateFormatting(t *testing.T) {
	d := NewDate(2025, 3, 17)
	if d.ISO() != "2025-03-17" {
		t.Fatalf("ISO = %q", d.ISO())
	}
	if d.Display() != "March 17, 2025" {
		t.Fatalf("Display = %q", d.Display())
	}
	var empty Date
	if empty.ISO() != "" || empty.Display() != "" || !empty.IsEmpty() {
		t.Fatalf("empty date should format to empty strings")
	}
}
