// Package transport defines the request and response DTOs for the quotes module.
package transport

// CreateQuoteRequest is the payload for creating a quote. Terms and
// validity fall back to the user's company settings when absent.
type CreateQuoteRequest struct {
	CustomerName       string   `json:"customerName" validate:"required,min=1,max=200"`
	CustomerEmail      *string  `json:"customerEmail,omitempty" validate:"omitempty,email"`
	CustomerAddress    *string  `json:"customerAddress,omitempty" validate:"omitempty,max=500"`
	ProjectName        string   `json:"projectName" validate:"required,min=1,max=200"`
	ProjectDescription *string  `json:"projectDescription,omitempty"`
	Reference          *string  `json:"reference,omitempty" validate:"omitempty,max=100"`
	ValidUntil         *string  `json:"validUntil,omitempty" validate:"omitempty,datetime=2006-01-02"`
	MarkupPercent      *float64 `json:"markupPercent,omitempty" validate:"omitempty,min=0"`
	Notes              *string  `json:"notes,omitempty"`
	Terms              *string  `json:"terms,omitempty"`
}

// UpdateQuoteRequest is the payload for a partial quote update. Status
// changes are unconstrained.
type UpdateQuoteRequest struct {
	CustomerName       *string  `json:"customerName,omitempty" validate:"omitempty,min=1,max=200"`
	CustomerEmail      *string  `json:"customerEmail,omitempty" validate:"omitempty,email"`
	CustomerAddress    *string  `json:"customerAddress,omitempty" validate:"omitempty,max=500"`
	ProjectName        *string  `json:"projectName,omitempty" validate:"omitempty,min=1,max=200"`
	ProjectDescription *string  `json:"projectDescription,omitempty"`
	Reference          *string  `json:"reference,omitempty" validate:"omitempty,max=100"`
	ValidUntil         *string  `json:"validUntil,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Status             *string  `json:"status,omitempty" validate:"omitempty,oneof=draft sent accepted rejected"`
	MarkupPercent      *float64 `json:"markupPercent,omitempty" validate:"omitempty,min=0"`
	Notes              *string  `json:"notes,omitempty"`
	Terms              *string  `json:"terms,omitempty"`
}

// ListQuotesRequest carries the optional status filter.
type ListQuotesRequest struct {
	Status *string `form:"status" validate:"omitempty,oneof=draft sent accepted rejected"`
}

// CreateLineRequest is the payload for adding a quote line.
type CreateLineRequest struct {
	CostItemID   *string `json:"costItemId,omitempty" validate:"omitempty,uuid"`
	CategoryType string  `json:"categoryType" validate:"required,oneof=labor material consumable transport ndt"`
	Description  string  `json:"description" validate:"required,min=1,max=500"`
	Quantity     float64 `json:"quantity" validate:"required,gt=0"`
	Unit         string  `json:"unit" validate:"required,min=1,max=20"`
	UnitPrice    float64 `json:"unitPrice" validate:"min=0"`
	LineMarkup   float64 `json:"lineMarkup" validate:"min=0"`
}

// UpdateLineRequest is the payload for a partial line update. The stored
// line total is recomputed from the merged values.
type UpdateLineRequest struct {
	CostItemID   *string  `json:"costItemId,omitempty" validate:"omitempty,uuid"`
	CategoryType *string  `json:"categoryType,omitempty" validate:"omitempty,oneof=labor material consumable transport ndt"`
	Description  *string  `json:"description,omitempty" validate:"omitempty,min=1,max=500"`
	Quantity     *float64 `json:"quantity,omitempty" validate:"omitempty,gt=0"`
	Unit         *string  `json:"unit,omitempty" validate:"omitempty,min=1,max=20"`
	UnitPrice    *float64 `json:"unitPrice,omitempty" validate:"omitempty,min=0"`
	LineMarkup   *float64 `json:"lineMarkup,omitempty" validate:"omitempty,min=0"`
	SortOrder    *int     `json:"sortOrder,omitempty" validate:"omitempty,min=0"`
}

// QuoteResponse is the public representation of a quote header.
type QuoteResponse struct {
	ID                 string   `json:"id"`
	QuoteNumber        string   `json:"quoteNumber"`
	CustomerName       string   `json:"customerName"`
	CustomerEmail      *string  `json:"customerEmail"`
	CustomerAddress    *string  `json:"customerAddress"`
	ProjectName        string   `json:"projectName"`
	ProjectDescription *string  `json:"projectDescription"`
	Reference          *string  `json:"reference"`
	ValidUntil         *string  `json:"validUntil"`
	Status             string   `json:"status"`
	MarkupPercent      float64  `json:"markupPercent"`
	Notes              *string  `json:"notes"`
	Terms              *string  `json:"terms"`
	CreatedAt          string   `json:"createdAt"`
	UpdatedAt          string   `json:"updatedAt"`
}

// QuoteListItemResponse is a list row with read-time aggregates.
type QuoteListItemResponse struct {
	QuoteResponse
	TotalCost float64 `json:"totalCost"`
	LineCount int     `json:"lineCount"`
}

// LineResponse is the public representation of a quote line.
type LineResponse struct {
	ID           string  `json:"id"`
	CostItemID   *string `json:"costItemId"`
	ItemName     *string `json:"itemName"`
	CategoryType string  `json:"categoryType"`
	Description  string  `json:"description"`
	Quantity     float64 `json:"quantity"`
	Unit         string  `json:"unit"`
	UnitPrice    float64 `json:"unitPrice"`
	LineMarkup   float64 `json:"lineMarkup"`
	LineTotal    float64 `json:"lineTotal"`
	SortOrder    int     `json:"sortOrder"`
}

// QuoteDetailResponse is a quote header together with its lines.
type QuoteDetailResponse struct {
	QuoteResponse
	Lines []LineResponse `json:"lines"`
}
