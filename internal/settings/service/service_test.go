package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kalkyle/internal/settings/repository"
	"kalkyle/internal/settings/transport"
	"kalkyle/platform/apperr"
	"kalkyle/platform/logger"
)

type stubRepo struct {
	settings     repository.CompanySettings
	getErr       error
	upserted     repository.UpdateParams
	seededUserID uuid.UUID
}

func (r *stubRepo) GetByUser(_ context.Context, _ uuid.UUID) (repository.CompanySettings, error) {
	return r.settings, r.getErr
}

func (r *stubRepo) Upsert(_ context.Context, _ uuid.UUID, params repository.UpdateParams) (repository.CompanySettings, error) {
	r.upserted = params
	return r.settings, nil
}

func (r *stubRepo) SeedDefaults(_ context.Context, userID uuid.UUID) error {
	r.seededUserID = userID
	return nil
}

func TestGet_AnswersNotFoundWhenUnseeded(t *testing.T) {
	repo := &stubRepo{getErr: apperr.NotFound("Firmainnstillinger ikke funnet")}
	svc := New(repo, logger.New("test"))

	_, err := svc.Get(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestGet_MapsStoredSettings(t *testing.T) {
	name := "Sveis & Kontroll AS"
	repo := &stubRepo{settings: repository.CompanySettings{
		ID:                  uuid.New(),
		CompanyName:         &name,
		DefaultValidityDays: 30,
		VatPercent:          25,
	}}
	svc := New(repo, logger.New("test"))

	resp, err := svc.Get(context.Background(), uuid.New())
	require.NoError(t, err)
	require.NotNil(t, resp.CompanyName)
	assert.Equal(t, name, *resp.CompanyName)
	assert.Equal(t, 30, resp.DefaultValidityDays)
	assert.Equal(t, 25.0, resp.VatPercent)
}

func TestUpdate_PassesOnlyProvidedFields(t *testing.T) {
	repo := &stubRepo{settings: repository.CompanySettings{DefaultValidityDays: 30, VatPercent: 25}}
	svc := New(repo, logger.New("test"))

	vat := 15.0
	_, err := svc.Update(context.Background(), uuid.New(), transport.UpdateSettingsRequest{
		VatPercent: &vat,
	})
	require.NoError(t, err)

	require.NotNil(t, repo.upserted.VatPercent)
	assert.Equal(t, vat, *repo.upserted.VatPercent)
	assert.Nil(t, repo.upserted.CompanyName)
	assert.Nil(t, repo.upserted.DefaultValidityDays)
}

func TestSeedDefaults_DelegatesToRepository(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo, logger.New("test"))

	userID := uuid.New()
	require.NoError(t, svc.SeedDefaults(context.Background(), userID))
	assert.Equal(t, userID, repo.seededUserID)
}
