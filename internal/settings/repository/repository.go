package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"kalkyle/platform/apperr"
)

const settingsNotFoundMessage = "Firmainnstillinger ikke funnet"

const settingsColumns = `id, user_id, company_name, org_number, address, postal_code, city,
		phone, email, website, logo_url, default_terms, default_validity_days, vat_percent, updated_at`

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new settings repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// GetByUser retrieves the settings row owned by the given user.
func (r *Repo) GetByUser(ctx context.Context, userID uuid.UUID) (CompanySettings, error) {
	query := `
		SELECT ` + settingsColumns + `
		FROM company_settings
		WHERE user_id = $1`

	row := r.pool.QueryRow(ctx, query, userID)
	settings, err := scanSettings(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return CompanySettings{}, apperr.NotFound(settingsNotFoundMessage)
		}
		return CompanySettings{}, fmt.Errorf("get settings: %w", err)
	}
	return settings, nil
}

// Upsert applies a partial update, inserting the row when it does not exist.
// Nil params leave stored values untouched.
func (r *Repo) Upsert(ctx context.Context, userID uuid.UUID, params UpdateParams) (CompanySettings, error) {
	query := `
		INSERT INTO company_settings (
			id, user_id, company_name, org_number, address, postal_code, city,
			phone, email, website, logo_url, default_terms, default_validity_days, vat_percent
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, COALESCE($13, 30), COALESCE($14, 25))
		ON CONFLICT (user_id) DO UPDATE SET
			company_name          = COALESCE($3, company_settings.company_name),
			org_number            = COALESCE($4, company_settings.org_number),
			address               = COALESCE($5, company_settings.address),
			postal_code           = COALESCE($6, company_settings.postal_code),
			city                  = COALESCE($7, company_settings.city),
			phone                 = COALESCE($8, company_settings.phone),
			email                 = COALESCE($9, company_settings.email),
			website               = COALESCE($10, company_settings.website),
			logo_url              = COALESCE($11, company_settings.logo_url),
			default_terms         = COALESCE($12, company_settings.default_terms),
			default_validity_days = COALESCE($13, company_settings.default_validity_days),
			vat_percent           = COALESCE($14, company_settings.vat_percent),
			updated_at            = now()
		RETURNING ` + settingsColumns

	row := r.pool.QueryRow(ctx, query,
		uuid.New(), userID,
		params.CompanyName, params.OrgNumber, params.Address, params.PostalCode, params.City,
		params.Phone, params.Email, params.Website, params.LogoURL, params.DefaultTerms,
		params.DefaultValidityDays, params.VatPercent,
	)
	settings, err := scanSettings(row)
	if err != nil {
		return CompanySettings{}, fmt.Errorf("upsert settings: %w", err)
	}
	return settings, nil
}

// SeedDefaults inserts an empty settings row with the stock defaults.
// Existing rows are left alone.
func (r *Repo) SeedDefaults(ctx context.Context, userID uuid.UUID) error {
	query := `
		INSERT INTO company_settings (id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO NOTHING`

	if _, err := r.pool.Exec(ctx, query, uuid.New(), userID); err != nil {
		return fmt.Errorf("seed settings: %w", err)
	}
	return nil
}

func scanSettings(row pgx.Row) (CompanySettings, error) {
	var s CompanySettings
	var updatedAt time.Time

	err := row.Scan(
		&s.ID, &s.UserID, &s.CompanyName, &s.OrgNumber, &s.Address, &s.PostalCode, &s.City,
		&s.Phone, &s.Email, &s.Website, &s.LogoURL, &s.DefaultTerms,
		&s.DefaultValidityDays, &s.VatPercent, &updatedAt,
	)
	if err != nil {
		return CompanySettings{}, err
	}

	s.UpdatedAt = updatedAt.Format(time.RFC3339)
	return s, nil
}
