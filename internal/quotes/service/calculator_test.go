package service

import (
	"math"
	"testing"

	"kalkyle/internal/quotes/repository"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestLineTotal_NoMarkup(t *testing.T) {
	got := LineTotal(4, 250, 0)
	if !almostEqual(got, 1000) {
		t.Fatalf("expected 1000, got %v", got)
	}
}

func TestLineTotal_WithMarkup(t *testing.T) {
	got := LineTotal(2, 500, 10)
	if !almostEqual(got, 1100) {
		t.Fatalf("expected 1100, got %v", got)
	}
}

func TestSummarize_MarkupCompoundsWithLineMarkup(t *testing.T) {
	// One line with 10% line markup, header markup 20%, VAT 25%.
	lines := []repository.Line{
		{CategoryType: "labor", Quantity: 1, UnitPrice: 1000, LineMarkup: 10, LineTotal: LineTotal(1, 1000, 10)},
	}

	summary := Summarize(lines, 20, 25)

	if !almostEqual(summary.TotalCost, 1100) {
		t.Fatalf("expected total cost 1100, got %v", summary.TotalCost)
	}
	if !almostEqual(summary.Markup, 220) {
		t.Fatalf("expected markup 220, got %v", summary.Markup)
	}
	if !almostEqual(summary.TotalExVat, 1320) {
		t.Fatalf("expected total ex VAT 1320, got %v", summary.TotalExVat)
	}
	if !almostEqual(summary.Vat, 330) {
		t.Fatalf("expected VAT 330, got %v", summary.Vat)
	}
	if !almostEqual(summary.TotalIncVat, 1650) {
		t.Fatalf("expected total inc VAT 1650, got %v", summary.TotalIncVat)
	}
}

func TestSummarize_EmptyQuote(t *testing.T) {
	summary := Summarize(nil, 15, 25)

	if summary.TotalCost != 0 || summary.Markup != 0 || summary.TotalExVat != 0 ||
		summary.Vat != 0 || summary.TotalIncVat != 0 {
		t.Fatalf("expected all totals zero, got %+v", summary)
	}
	if len(summary.CategoryTotals) != 0 {
		t.Fatalf("expected empty category totals, got %v", summary.CategoryTotals)
	}
	if summary.MarkupPercent != 15 || summary.VatPercent != 25 {
		t.Fatalf("expected percentages passed through, got %+v", summary)
	}
}

func TestAggregateByCategory_OmitsEmptyCategories(t *testing.T) {
	lines := []repository.Line{
		{CategoryType: "labor", LineTotal: 500},
		{CategoryType: "labor", LineTotal: 300},
		{CategoryType: "ndt", LineTotal: 1200},
	}

	totals := AggregateByCategory(lines)

	if len(totals) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(totals))
	}
	if !almostEqual(totals["labor"], 800) {
		t.Fatalf("expected labor total 800, got %v", totals["labor"])
	}
	if !almostEqual(totals["ndt"], 1200) {
		t.Fatalf("expected ndt total 1200, got %v", totals["ndt"])
	}
	if _, ok := totals["material"]; ok {
		t.Fatal("expected no entry for material")
	}
}

func TestSummarize_FullPrecisionPreserved(t *testing.T) {
	// 3 * 333.33 leaves a repeating fraction that must not be rounded.
	lines := []repository.Line{
		{CategoryType: "material", Quantity: 3, UnitPrice: 333.33, LineTotal: LineTotal(3, 333.33, 0)},
	}

	summary := Summarize(lines, 0, 25)

	if !almostEqual(summary.TotalCost, 999.99) {
		t.Fatalf("expected total cost 999.99, got %v", summary.TotalCost)
	}
	if !almostEqual(summary.Vat, 249.9975) {
		t.Fatalf("expected VAT 249.9975, got %v", summary.Vat)
	}
	if !almostEqual(summary.TotalIncVat, 1249.9875) {
		t.Fatalf("expected total inc VAT 1249.9875, got %v", summary.TotalIncVat)
	}
}

func TestFormatQuoteNumber(t *testing.T) {
	got := FormatQuoteNumber(2026, 7)
	if got != "T2026-0007" {
		t.Fatalf("expected T2026-0007, got %s", got)
	}

	got = FormatQuoteNumber(2027, 12345)
	if got != "T2027-12345" {
		t.Fatalf("expected T2027-12345, got %s", got)
	}
}
