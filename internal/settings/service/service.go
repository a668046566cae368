// Package service implements the company settings use cases.
package service

import (
	"context"

	"github.com/google/uuid"

	"kalkyle/internal/settings/repository"
	"kalkyle/internal/settings/transport"
	"kalkyle/platform/logger"
)

// Defaults applied to freshly seeded settings rows.
const (
	DefaultValidityDays = 30
	DefaultVatPercent   = 25.0
)

// Service implements the settings use cases.
type Service struct {
	repo repository.Repository
	log  *logger.Logger
}

// New creates a new settings service.
func New(repo repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Get returns the settings owned by the user. Answers NotFound when no
// row has been seeded yet.
func (s *Service) Get(ctx context.Context, userID uuid.UUID) (transport.SettingsResponse, error) {
	settings, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return transport.SettingsResponse{}, err
	}
	return toResponse(settings), nil
}

// Update applies a partial update, creating the row when absent.
func (s *Service) Update(ctx context.Context, userID uuid.UUID, req transport.UpdateSettingsRequest) (transport.SettingsResponse, error) {
	settings, err := s.repo.Upsert(ctx, userID, repository.UpdateParams{
		CompanyName:         req.CompanyName,
		OrgNumber:           req.OrgNumber,
		Address:             req.Address,
		PostalCode:          req.PostalCode,
		City:                req.City,
		Phone:               req.Phone,
		Email:               req.Email,
		Website:             req.Website,
		LogoURL:             req.LogoURL,
		DefaultTerms:        req.DefaultTerms,
		DefaultValidityDays: req.DefaultValidityDays,
		VatPercent:          req.VatPercent,
	})
	if err != nil {
		return transport.SettingsResponse{}, err
	}
	return toResponse(settings), nil
}

// SeedDefaults creates the default settings row for a new user.
func (s *Service) SeedDefaults(ctx context.Context, userID uuid.UUID) error {
	if err := s.repo.SeedDefaults(ctx, userID); err != nil {
		return err
	}
	s.log.Info("company settings seeded", "user_id", userID.String())
	return nil
}

func toResponse(settings repository.CompanySettings) transport.SettingsResponse {
	return transport.SettingsResponse{
		ID:                  settings.ID.String(),
		CompanyName:         settings.CompanyName,
		OrgNumber:           settings.OrgNumber,
		Address:             settings.Address,
		PostalCode:          settings.PostalCode,
		City:                settings.City,
		Phone:               settings.Phone,
		Email:               settings.Email,
		Website:             settings.Website,
		LogoURL:             settings.LogoURL,
		DefaultTerms:        settings.DefaultTerms,
		DefaultValidityDays: settings.DefaultValidityDays,
		VatPercent:          settings.VatPercent,
		UpdatedAt:           settings.UpdatedAt,
	}
}
