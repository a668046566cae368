// Package transport defines the request and response DTOs for the catalog module.
package transport

// CreateItemRequest is the payload for creating a catalog item.
type CreateItemRequest struct {
	CategoryID  string   `json:"categoryId" validate:"required,uuid"`
	Name        string   `json:"name" validate:"required,min=1,max=200"`
	Description *string  `json:"description,omitempty"`
	Unit        string   `json:"unit" validate:"required,min=1,max=20"`
	UnitPrice   float64  `json:"unitPrice" validate:"min=0"`
	NdtMethod   *string  `json:"ndtMethod,omitempty" validate:"omitempty,oneof=RT UT MT PT VT"`
	NdtLevel    *string  `json:"ndtLevel,omitempty" validate:"omitempty,oneof='Level I' 'Level II' 'Level III'"`
}

// UpdateItemRequest is the payload for a partial item update.
type UpdateItemRequest struct {
	CategoryID  *string  `json:"categoryId,omitempty" validate:"omitempty,uuid"`
	Name        *string  `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string  `json:"description,omitempty"`
	Unit        *string  `json:"unit,omitempty" validate:"omitempty,min=1,max=20"`
	UnitPrice   *float64 `json:"unitPrice,omitempty" validate:"omitempty,min=0"`
	NdtMethod   *string  `json:"ndtMethod,omitempty" validate:"omitempty,oneof=RT UT MT PT VT"`
	NdtLevel    *string  `json:"ndtLevel,omitempty" validate:"omitempty,oneof='Level I' 'Level II' 'Level III'"`
}

// ListItemsRequest carries the optional category filter.
type ListItemsRequest struct {
	CategoryID *string `form:"categoryId" validate:"omitempty,uuid"`
}

// CategoryResponse is the public representation of a cost category.
type CategoryResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	SortOrder int    `json:"sortOrder"`
}

// ItemResponse is the public representation of a catalog item.
type ItemResponse struct {
	ID           string  `json:"id"`
	CategoryID   string  `json:"categoryId"`
	CategoryName string  `json:"categoryName"`
	CategoryType string  `json:"categoryType"`
	Name         string  `json:"name"`
	Description  *string `json:"description"`
	Unit         string  `json:"unit"`
	UnitPrice    float64 `json:"unitPrice"`
	NdtMethod    *string `json:"ndtMethod,omitempty"`
	NdtLevel     *string `json:"ndtLevel,omitempty"`
	CreatedAt    string  `json:"createdAt"`
}

// GroupedItemsResponse is one category with its items, used by the
// grouped catalog endpoint.
type GroupedItemsResponse struct {
	Category CategoryResponse `json:"category"`
	Items    []ItemResponse   `json:"items"`
}
