package repository

import (
	"context"

	"github.com/google/uuid"
)

// Calculation is a margin-target worksheet: cost lines plus the margin
// percentage the sale price should yield.
type Calculation struct {
	ID                  uuid.UUID
	UserID              uuid.UUID
	Name                string
	Description         *string
	TargetMarginPercent float64
	CreatedAt           string
	UpdatedAt           string
}

// ListItem is a calculation list row with aggregates computed at read time.
type ListItem struct {
	Calculation
	TotalCost float64
	LineCount int
}

// Line is a calculation cost line. Like quote lines, the description and
// unit cost are copied from the catalog at insert time; CostItemID is
// nulled if the item is deleted.
type Line struct {
	ID            uuid.UUID
	CalculationID uuid.UUID
	CostItemID    *uuid.UUID
	ItemName      *string
	Description   string
	Quantity      float64
	Unit          string
	UnitCost      float64
	SortOrder     int
	CreatedAt     string
}

// CreateParams contains parameters for creating a calculation.
type CreateParams struct {
	UserID              uuid.UUID
	Name                string
	Description         *string
	TargetMarginPercent float64
}

// UpdateParams contains the fields of a partial calculation update.
type UpdateParams struct {
	Name                *string
	Description         *string
	TargetMarginPercent *float64
}

// CreateLineParams contains parameters for creating a calculation line.
type CreateLineParams struct {
	CostItemID  *uuid.UUID
	Description string
	Quantity    float64
	Unit        string
	UnitCost    float64
}

// UpdateLineParams contains the fields of a partial line update.
type UpdateLineParams struct {
	CostItemID  *uuid.UUID
	Description *string
	Quantity    *float64
	Unit        *string
	UnitCost    *float64
	SortOrder   *int
}

// Reader provides read operations for calculations.
type Reader interface {
	GetByID(ctx context.Context, userID, id uuid.UUID) (Calculation, error)
	List(ctx context.Context, userID uuid.UUID) ([]ListItem, error)
}

// Writer provides write operations for calculations.
type Writer interface {
	Create(ctx context.Context, params CreateParams) (Calculation, error)
	Update(ctx context.Context, userID, id uuid.UUID, params UpdateParams) (Calculation, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// LineReader provides read operations for calculation lines.
type LineReader interface {
	ListLines(ctx context.Context, calculationID uuid.UUID) ([]Line, error)
	GetLine(ctx context.Context, calculationID, lineID uuid.UUID) (Line, error)
}

// LineWriter provides write operations for calculation lines.
// Every write bumps the parent calculation's updated_at.
type LineWriter interface {
	CreateLine(ctx context.Context, calculationID uuid.UUID, params CreateLineParams) (Line, error)
	UpdateLine(ctx context.Context, calculationID, lineID uuid.UUID, params UpdateLineParams) (Line, error)
	DeleteLine(ctx context.Context, calculationID, lineID uuid.UUID) error
}

// Repository combines all calculation persistence operations.
type Repository interface {
	Reader
	Writer
	LineReader
	LineWriter
}
