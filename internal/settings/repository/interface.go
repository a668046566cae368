package repository

import (
	"context"

	"github.com/google/uuid"
)

// CompanySettings holds a user's company profile and quoting defaults.
type CompanySettings struct {
	ID                  uuid.UUID
	UserID              uuid.UUID
	CompanyName         *string
	OrgNumber           *string
	Address             *string
	PostalCode          *string
	City                *string
	Phone               *string
	Email               *string
	Website             *string
	LogoURL             *string
	DefaultTerms        *string
	DefaultValidityDays int
	VatPercent          float64
	UpdatedAt           string
}

// UpdateParams contains the fields of a partial settings update.
// Nil pointers leave the stored value untouched.
type UpdateParams struct {
	CompanyName         *string
	OrgNumber           *string
	Address             *string
	PostalCode          *string
	City                *string
	Phone               *string
	Email               *string
	Website             *string
	LogoURL             *string
	DefaultTerms        *string
	DefaultValidityDays *int
	VatPercent          *float64
}

// Repository provides persistence for company settings.
type Repository interface {
	GetByUser(ctx context.Context, userID uuid.UUID) (CompanySettings, error)
	Upsert(ctx context.Context, userID uuid.UUID, params UpdateParams) (CompanySettings, error)
	SeedDefaults(ctx context.Context, userID uuid.UUID) error
}
