package service

import "kalkyle/internal/quotes/repository"

// Summary holds the computed totals of a quote. All values are full
// precision; rounding is left to presentation (PDF, currency formatting).
type Summary struct {
	TotalCost      float64            `json:"totalCost"`
	MarkupPercent  float64            `json:"markupPercent"`
	Markup         float64            `json:"markup"`
	TotalExVat     float64            `json:"totalExVat"`
	VatPercent     float64            `json:"vatPercent"`
	Vat            float64            `json:"vat"`
	TotalIncVat    float64            `json:"totalIncVat"`
	CategoryTotals map[string]float64 `json:"categoryTotals"`
}

// LineTotal computes the stored total of a single line. The line markup
// is applied on top of quantity times unit price; it compounds with the
// header markup applied later in Summarize.
func LineTotal(quantity, unitPrice, lineMarkupPercent float64) float64 {
	return quantity * unitPrice * (1 + lineMarkupPercent/100)
}

// AggregateByCategory sums line totals per category type. Categories with
// no lines are absent from the result.
func AggregateByCategory(lines []repository.Line) map[string]float64 {
	totals := make(map[string]float64)
	for _, line := range lines {
		totals[line.CategoryType] += line.LineTotal
	}
	return totals
}

// Summarize computes the quote totals from its stored lines: cost,
// header markup, total excluding VAT, VAT, and grand total. An empty
// quote yields zeros and an empty category map.
func Summarize(lines []repository.Line, markupPercent, vatPercent float64) Summary {
	var totalCost float64
	for _, line := range lines {
		totalCost += line.LineTotal
	}

	markup := totalCost * markupPercent / 100
	totalExVat := totalCost + markup
	vat := totalExVat * vatPercent / 100

	return Summary{
		TotalCost:      totalCost,
		MarkupPercent:  markupPercent,
		Markup:         markup,
		TotalExVat:     totalExVat,
		VatPercent:     vatPercent,
		Vat:            vat,
		TotalIncVat:    totalExVat + vat,
		CategoryTotals: AggregateByCategory(lines),
	}
}
