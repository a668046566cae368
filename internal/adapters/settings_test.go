package adapters

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"kalkyle/internal/settings/repository"
	"kalkyle/platform/apperr"
)

type stubSettingsRepo struct {
	settings repository.CompanySettings
	err      error
}

func (r *stubSettingsRepo) GetByUser(_ context.Context, _ uuid.UUID) (repository.CompanySettings, error) {
	return r.settings, r.err
}

func (r *stubSettingsRepo) Upsert(_ context.Context, _ uuid.UUID, _ repository.UpdateParams) (repository.CompanySettings, error) {
	return r.settings, nil
}

func (r *stubSettingsRepo) SeedDefaults(_ context.Context, _ uuid.UUID) error {
	return nil
}

func TestQuoteDefaults_FallsBackWhenSettingsMissing(t *testing.T) {
	reader := NewSettingsReader(&stubSettingsRepo{err: apperr.NotFound("Firmainnstillinger ikke funnet")})

	defaults, err := reader.QuoteDefaults(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if defaults.DefaultValidityDays != 30 {
		t.Fatalf("expected fallback validity of 30 days, got %d", defaults.DefaultValidityDays)
	}
	if defaults.VatPercent != 25 {
		t.Fatalf("expected fallback VAT of 25, got %v", defaults.VatPercent)
	}
	if defaults.DefaultTerms != nil {
		t.Fatalf("expected no fallback terms, got %v", *defaults.DefaultTerms)
	}
}

func TestQuoteDefaults_UsesStoredSettings(t *testing.T) {
	terms := "Netto 14 dager"
	reader := NewSettingsReader(&stubSettingsRepo{settings: repository.CompanySettings{
		DefaultTerms:        &terms,
		DefaultValidityDays: 45,
		VatPercent:          15,
	}})

	defaults, err := reader.QuoteDefaults(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if defaults.DefaultValidityDays != 45 || defaults.VatPercent != 15 {
		t.Fatalf("expected stored values, got %+v", defaults)
	}
	if defaults.DefaultTerms == nil || *defaults.DefaultTerms != terms {
		t.Fatalf("expected stored terms, got %v", defaults.DefaultTerms)
	}
}

func TestCompanyProfile_EmptyWhenSettingsMissing(t *testing.T) {
	reader := NewSettingsReader(&stubSettingsRepo{err: apperr.NotFound("Firmainnstillinger ikke funnet")})

	profile, err := reader.CompanyProfile(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.Name != "" || profile.OrgNumber != "" {
		t.Fatalf("expected empty profile, got %+v", profile)
	}
}

func TestCompanyProfile_MapsStoredFields(t *testing.T) {
	name := "Sveis & Kontroll AS"
	org := "987654321"
	reader := NewSettingsReader(&stubSettingsRepo{settings: repository.CompanySettings{
		CompanyName: &name,
		OrgNumber:   &org,
	}})

	profile, err := reader.CompanyProfile(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.Name != name || profile.OrgNumber != org {
		t.Fatalf("expected mapped profile, got %+v", profile)
	}
}
