package service

import (
	"testing"

	"kalkyle/internal/calculations/repository"
)

func TestSummarize_MarginTarget(t *testing.T) {
	lines := []repository.Line{
		{Quantity: 10, UnitCost: 50},
		{Quantity: 2, UnitCost: 250},
	}

	summary := Summarize(lines, 20)

	if summary.TotalCost != 1000 {
		t.Fatalf("expected total cost 1000, got %v", summary.TotalCost)
	}
	if summary.SalePrice != 1250 {
		t.Fatalf("expected sale price 1250, got %v", summary.SalePrice)
	}
	if summary.MarginAmount != 250 {
		t.Fatalf("expected margin amount 250, got %v", summary.MarginAmount)
	}
	if summary.LineCount != 2 {
		t.Fatalf("expected 2 lines, got %d", summary.LineCount)
	}
}

func TestMarginTargetSalePrice_ClampsAtHundredPercent(t *testing.T) {
	if got := MarginTargetSalePrice(1000, 100); got != 0 {
		t.Fatalf("expected exactly 0 at 100%%, got %v", got)
	}
	if got := MarginTargetSalePrice(1000, 150); got != 0 {
		t.Fatalf("expected exactly 0 above 100%%, got %v", got)
	}
}

func TestMarginTargetSalePrice_ZeroMargin(t *testing.T) {
	if got := MarginTargetSalePrice(1000, 0); got != 1000 {
		t.Fatalf("expected sale price equal to cost at 0%%, got %v", got)
	}
}

func TestSummarize_RoundsToTwoDecimals(t *testing.T) {
	lines := []repository.Line{
		{Quantity: 3, UnitCost: 33.333},
	}

	summary := Summarize(lines, 10)

	if summary.TotalCost != 100 {
		t.Fatalf("expected total cost rounded to 100, got %v", summary.TotalCost)
	}
	if summary.SalePrice != 111.11 {
		t.Fatalf("expected sale price 111.11, got %v", summary.SalePrice)
	}
	if summary.MarginAmount != 11.11 {
		t.Fatalf("expected margin amount 11.11, got %v", summary.MarginAmount)
	}
}

func TestSummarize_Empty(t *testing.T) {
	summary := Summarize(nil, 15)

	if summary.TotalCost != 0 || summary.SalePrice != 0 || summary.MarginAmount != 0 {
		t.Fatalf("expected zeros, got %+v", summary)
	}
	if summary.TargetMarginPercent != 15 {
		t.Fatalf("expected target margin passed through, got %v", summary.TargetMarginPercent)
	}
}
