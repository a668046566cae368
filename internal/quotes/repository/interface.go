package repository

import (
	"context"

	"github.com/google/uuid"
)

// Quote statuses. Transitions are unconstrained; any status may follow
// any other.
const (
	StatusDraft    = "draft"
	StatusSent     = "sent"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

// Quote is a customer quote with header-level markup and terms.
// Monetary values are full-precision NOK; rounding happens at presentation.
type Quote struct {
	ID                 uuid.UUID
	UserID             uuid.UUID
	QuoteNumber        string
	CustomerName       string
	CustomerEmail      *string
	CustomerAddress    *string
	ProjectName        string
	ProjectDescription *string
	Reference          *string
	ValidUntil         *string
	Status             string
	MarkupPercent      float64
	Notes              *string
	Terms              *string
	CreatedAt          string
	UpdatedAt          string
}

// ListItem is a quote list row with aggregates computed at read time.
type ListItem struct {
	Quote
	TotalCost float64
	LineCount int
}

// Line is a quote line. Unit price and description are copied from the
// catalog item at insert time so the quote stays reproducible when the
// catalog changes; CostItemID is nulled if the item is deleted.
type Line struct {
	ID           uuid.UUID
	QuoteID      uuid.UUID
	CostItemID   *uuid.UUID
	ItemName     *string
	CategoryType string
	Description  string
	Quantity     float64
	Unit         string
	UnitPrice    float64
	LineMarkup   float64
	LineTotal    float64
	SortOrder    int
	CreatedAt    string
}

// CreateQuoteParams contains parameters for creating a quote.
type CreateQuoteParams struct {
	UserID             uuid.UUID
	QuoteNumber        string
	CustomerName       string
	CustomerEmail      *string
	CustomerAddress    *string
	ProjectName        string
	ProjectDescription *string
	Reference          *string
	ValidUntil         *string
	Status             string
	MarkupPercent      float64
	Notes              *string
	Terms              *string
}

// UpdateQuoteParams contains the fields of a partial quote update.
type UpdateQuoteParams struct {
	CustomerName       *string
	CustomerEmail      *string
	CustomerAddress    *string
	ProjectName        *string
	ProjectDescription *string
	Reference          *string
	ValidUntil         *string
	Status             *string
	MarkupPercent      *float64
	Notes              *string
	Terms              *string
}

// CreateLineParams contains parameters for creating a quote line.
// LineTotal is computed by the service, never taken from the client.
type CreateLineParams struct {
	CostItemID   *uuid.UUID
	CategoryType string
	Description  string
	Quantity     float64
	Unit         string
	UnitPrice    float64
	LineMarkup   float64
	LineTotal    float64
}

// UpdateLineParams contains the fields of a partial line update.
type UpdateLineParams struct {
	CostItemID   *uuid.UUID
	CategoryType *string
	Description  *string
	Quantity     *float64
	Unit         *string
	UnitPrice    *float64
	LineMarkup   *float64
	LineTotal    *float64
	SortOrder    *int
}

// QuoteReader provides read operations for quotes.
type QuoteReader interface {
	GetByID(ctx context.Context, userID, id uuid.UUID) (Quote, error)
	List(ctx context.Context, userID uuid.UUID, status *string) ([]ListItem, error)
}

// QuoteWriter provides write operations for quotes.
type QuoteWriter interface {
	NextSequence(ctx context.Context, userID uuid.UUID, year int) (int, error)
	Create(ctx context.Context, params CreateQuoteParams) (Quote, error)
	Update(ctx context.Context, userID, id uuid.UUID, params UpdateQuoteParams) (Quote, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// LineReader provides read operations for quote lines.
type LineReader interface {
	ListLines(ctx context.Context, quoteID uuid.UUID) ([]Line, error)
	GetLine(ctx context.Context, quoteID, lineID uuid.UUID) (Line, error)
}

// LineWriter provides write operations for quote lines.
// Every write bumps the parent quote's updated_at.
type LineWriter interface {
	CreateLine(ctx context.Context, quoteID uuid.UUID, params CreateLineParams) (Line, error)
	UpdateLine(ctx context.Context, quoteID, lineID uuid.UUID, params UpdateLineParams) (Line, error)
	DeleteLine(ctx context.Context, quoteID, lineID uuid.UUID) error
}

// Repository combines all quote persistence operations.
type Repository interface {
	QuoteReader
	QuoteWriter
	LineReader
	LineWriter
}
