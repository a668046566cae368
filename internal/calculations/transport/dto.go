// Package transport defines the request and response DTOs for the
// calculations module.
package transport

// CreateCalculationRequest is the payload for creating a calculation.
// The target margin defaults to 15 percent when absent.
type CreateCalculationRequest struct {
	Name                string   `json:"name" validate:"required,min=1,max=200"`
	Description         *string  `json:"description,omitempty"`
	TargetMarginPercent *float64 `json:"targetMarginPercent,omitempty" validate:"omitempty,min=0"`
}

// UpdateCalculationRequest is the payload for a partial calculation update.
type UpdateCalculationRequest struct {
	Name                *string  `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Description         *string  `json:"description,omitempty"`
	TargetMarginPercent *float64 `json:"targetMarginPercent,omitempty" validate:"omitempty,min=0"`
}

// CreateLineRequest is the payload for adding a calculation line.
type CreateLineRequest struct {
	CostItemID  *string `json:"costItemId,omitempty" validate:"omitempty,uuid"`
	Description string  `json:"description" validate:"required,min=1,max=500"`
	Quantity    float64 `json:"quantity" validate:"required,gt=0"`
	Unit        string  `json:"unit" validate:"required,min=1,max=20"`
	UnitCost    float64 `json:"unitCost" validate:"min=0"`
}

// UpdateLineRequest is the payload for a partial line update.
type UpdateLineRequest struct {
	CostItemID  *string  `json:"costItemId,omitempty" validate:"omitempty,uuid"`
	Description *string  `json:"description,omitempty" validate:"omitempty,min=1,max=500"`
	Quantity    *float64 `json:"quantity,omitempty" validate:"omitempty,gt=0"`
	Unit        *string  `json:"unit,omitempty" validate:"omitempty,min=1,max=20"`
	UnitCost    *float64 `json:"unitCost,omitempty" validate:"omitempty,min=0"`
	SortOrder   *int     `json:"sortOrder,omitempty" validate:"omitempty,min=0"`
}

// CalculationResponse is the public representation of a calculation header.
type CalculationResponse struct {
	ID                  string  `json:"id"`
	Name                string  `json:"name"`
	Description         *string `json:"description"`
	TargetMarginPercent float64 `json:"targetMarginPercent"`
	CreatedAt           string  `json:"createdAt"`
	UpdatedAt           string  `json:"updatedAt"`
}

// CalculationListItemResponse is a list row with read-time aggregates.
type CalculationListItemResponse struct {
	CalculationResponse
	TotalCost float64 `json:"totalCost"`
	LineCount int     `json:"lineCount"`
}

// LineResponse is the public representation of a calculation line.
type LineResponse struct {
	ID          string  `json:"id"`
	CostItemID  *string `json:"costItemId"`
	ItemName    *string `json:"itemName"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
	UnitCost    float64 `json:"unitCost"`
	SortOrder   int     `json:"sortOrder"`
}

// CalculationDetailResponse is a calculation header together with its lines.
type CalculationDetailResponse struct {
	CalculationResponse
	Lines []LineResponse `json:"lines"`
}
