// Package transport defines the request and response DTOs for company settings.
package transport

// UpdateSettingsRequest is the payload for a partial settings update.
// Absent fields keep their stored values.
type UpdateSettingsRequest struct {
	CompanyName         *string  `json:"companyName,omitempty" validate:"omitempty,max=200"`
	OrgNumber           *string  `json:"orgNumber,omitempty" validate:"omitempty,max=20"`
	Address             *string  `json:"address,omitempty" validate:"omitempty,max=500"`
	PostalCode          *string  `json:"postalCode,omitempty" validate:"omitempty,max=10"`
	City                *string  `json:"city,omitempty" validate:"omitempty,max=100"`
	Phone               *string  `json:"phone,omitempty" validate:"omitempty,max=30"`
	Email               *string  `json:"email,omitempty" validate:"omitempty,email"`
	Website             *string  `json:"website,omitempty" validate:"omitempty,max=200"`
	LogoURL             *string  `json:"logoUrl,omitempty" validate:"omitempty,max=500"`
	DefaultTerms        *string  `json:"defaultTerms,omitempty"`
	DefaultValidityDays *int     `json:"defaultValidityDays,omitempty" validate:"omitempty,min=1,max=365"`
	VatPercent          *float64 `json:"vatPercent,omitempty" validate:"omitempty,min=0,max=100"`
}

// SettingsResponse is the public representation of company settings.
type SettingsResponse struct {
	ID                  string   `json:"id"`
	CompanyName         *string  `json:"companyName"`
	OrgNumber           *string  `json:"orgNumber"`
	Address             *string  `json:"address"`
	PostalCode          *string  `json:"postalCode"`
	City                *string  `json:"city"`
	Phone               *string  `json:"phone"`
	Email               *string  `json:"email"`
	Website             *string  `json:"website"`
	LogoURL             *string  `json:"logoUrl"`
	DefaultTerms        *string  `json:"defaultTerms"`
	DefaultValidityDays int      `json:"defaultValidityDays"`
	VatPercent          float64  `json:"vatPercent"`
	UpdatedAt           string   `json:"updatedAt"`
}
