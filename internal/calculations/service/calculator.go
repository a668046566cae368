package service

import (
	"math"

	"kalkyle/internal/calculations/repository"
)

// Summary is the computed result of a margin-target calculation. All values
// are rounded to two decimals for presentation.
type Summary struct {
	TotalCost           float64 `json:"totalCost"`
	TargetMarginPercent float64 `json:"targetMarginPercent"`
	SalePrice           float64 `json:"salePrice"`
	MarginAmount        float64 `json:"marginAmount"`
	LineCount           int     `json:"lineCount"`
}

// TotalCost sums quantity times unit cost over the lines.
func TotalCost(lines []repository.Line) float64 {
	var total float64
	for _, line := range lines {
		total += line.Quantity * line.UnitCost
	}
	return total
}

// MarginTargetSalePrice computes the sale price that yields the target
// margin percentage of the sale price. A margin at or above 100 percent has
// no finite solution and clamps to exactly 0.
func MarginTargetSalePrice(totalCost, marginPercent float64) float64 {
	if marginPercent >= 100 {
		return 0
	}
	return totalCost / (1 - marginPercent/100)
}

// Summarize computes the full summary for a calculation's lines.
func Summarize(lines []repository.Line, targetMarginPercent float64) Summary {
	totalCost := TotalCost(lines)
	salePrice := MarginTargetSalePrice(totalCost, targetMarginPercent)

	return Summary{
		TotalCost:           round2(totalCost),
		TargetMarginPercent: targetMarginPercent,
		SalePrice:           round2(salePrice),
		MarginAmount:        round2(salePrice - totalCost),
		LineCount:           len(lines),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
