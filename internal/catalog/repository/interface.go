package repository

import (
	"context"

	"github.com/google/uuid"
)

// Category types used throughout the catalog and on quote lines.
const (
	CategoryLabor      = "labor"
	CategoryMaterial   = "material"
	CategoryConsumable = "consumable"
	CategoryTransport  = "transport"
	CategoryNDT        = "ndt"
)

// Category is a cost category grouping catalog items.
type Category struct {
	ID        uuid.UUID
	Name      string
	Type      string
	SortOrder int
}

// Item is a priced catalog entry. NDT items additionally carry the
// inspection method and personnel certification level.
type Item struct {
	ID           uuid.UUID
	CategoryID   uuid.UUID
	CategoryName string
	CategoryType string
	Name         string
	Description  *string
	Unit         string
	UnitPrice    float64
	NdtMethod    *string
	NdtLevel     *string
	CreatedAt    string
}

// CreateItemParams contains parameters for creating a catalog item.
type CreateItemParams struct {
	CategoryID  uuid.UUID
	Name        string
	Description *string
	Unit        string
	UnitPrice   float64
	NdtMethod   *string
	NdtLevel    *string
}

// UpdateItemParams contains parameters for a partial item update.
type UpdateItemParams struct {
	CategoryID  *uuid.UUID
	Name        *string
	Description *string
	Unit        *string
	UnitPrice   *float64
	NdtMethod   *string
	NdtLevel    *string
}

// CategoryReader provides read operations for cost categories.
type CategoryReader interface {
	ListCategories(ctx context.Context) ([]Category, error)
	GetCategory(ctx context.Context, id uuid.UUID) (Category, error)
	CategoryExists(ctx context.Context, id uuid.UUID) (bool, error)
}

// ItemReader provides read operations for catalog items.
type ItemReader interface {
	ListItems(ctx context.Context, categoryID *uuid.UUID) ([]Item, error)
	GetItem(ctx context.Context, id uuid.UUID) (Item, error)
}

// ItemWriter provides write operations for catalog items.
type ItemWriter interface {
	CreateItem(ctx context.Context, params CreateItemParams) (Item, error)
	UpdateItem(ctx context.Context, id uuid.UUID, params UpdateItemParams) (Item, error)
	DeleteItem(ctx context.Context, id uuid.UUID) error
}

// Repository combines all catalog persistence operations.
type Repository interface {
	CategoryReader
	ItemReader
	ItemWriter
}
