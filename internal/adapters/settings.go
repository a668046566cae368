// Package adapters bridges bounded contexts without letting their
// service layers import each other directly.
package adapters

import (
	"context"

	"github.com/google/uuid"

	quotesvc "kalkyle/internal/quotes/service"
	"kalkyle/internal/pdf"
	"kalkyle/internal/settings/repository"
	settingssvc "kalkyle/internal/settings/service"
	"kalkyle/platform/apperr"
)

// SettingsReader adapts the settings context to the read-only view the
// quotes service needs. Users who have never saved settings still get
// working quotes, so a missing row falls back to stock defaults.
type SettingsReader struct {
	repo repository.Repository
}

// NewSettingsReader creates the adapter over the settings repository.
func NewSettingsReader(repo repository.Repository) *SettingsReader {
	return &SettingsReader{repo: repo}
}

// QuoteDefaults returns the user's quote defaults, falling back to the
// stock validity and VAT values when no settings row exists.
func (r *SettingsReader) QuoteDefaults(ctx context.Context, userID uuid.UUID) (quotesvc.QuoteDefaults, error) {
	settings, err := r.repo.GetByUser(ctx, userID)
	if err != nil {
		if apperr.GetKind(err) == apperr.KindNotFound {
			return quotesvc.QuoteDefaults{
				DefaultValidityDays: settingssvc.DefaultValidityDays,
				VatPercent:          settingssvc.DefaultVatPercent,
			}, nil
		}
		return quotesvc.QuoteDefaults{}, err
	}

	return quotesvc.QuoteDefaults{
		DefaultTerms:        settings.DefaultTerms,
		DefaultValidityDays: settings.DefaultValidityDays,
		VatPercent:          settings.VatPercent,
	}, nil
}

// CompanyProfile returns the user's company details for PDF rendering.
// A missing settings row yields an empty profile rather than an error.
func (r *SettingsReader) CompanyProfile(ctx context.Context, userID uuid.UUID) (pdf.CompanyInfo, error) {
	settings, err := r.repo.GetByUser(ctx, userID)
	if err != nil {
		if apperr.GetKind(err) == apperr.KindNotFound {
			return pdf.CompanyInfo{}, nil
		}
		return pdf.CompanyInfo{}, err
	}

	return pdf.CompanyInfo{
		Name:       deref(settings.CompanyName),
		OrgNumber:  deref(settings.OrgNumber),
		Address:    deref(settings.Address),
		PostalCode: deref(settings.PostalCode),
		City:       deref(settings.City),
		Phone:      deref(settings.Phone),
		Email:      deref(settings.Email),
		Website:    deref(settings.Website),
	}, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Compile-time check that the adapter satisfies the quotes port.
var _ quotesvc.SettingsReader = (*SettingsReader)(nil)
