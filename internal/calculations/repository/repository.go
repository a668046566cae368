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

const calcNotFoundMessage = "Kalkyle ikke funnet"

const calcColumns = `id, user_id, name, description, target_margin_percent, created_at, updated_at`

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new calculations repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// Create inserts a new calculation and returns the stored row.
func (r *Repo) Create(ctx context.Context, params CreateParams) (Calculation, error) {
	query := `
		INSERT INTO calculations (id, user_id, name, description, target_margin_percent)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + calcColumns

	row := r.pool.QueryRow(ctx, query,
		uuid.New(), params.UserID, params.Name, params.Description, params.TargetMarginPercent,
	)
	calc, err := scanCalculation(row)
	if err != nil {
		return Calculation{}, fmt.Errorf("create calculation: %w", err)
	}
	return calc, nil
}

// GetByID retrieves a calculation owned by the given user. Calculations
// owned by other users answer NotFound, indistinguishable from nonexistent
// ones.
func (r *Repo) GetByID(ctx context.Context, userID, id uuid.UUID) (Calculation, error) {
	query := `
		SELECT ` + calcColumns + `
		FROM calculations
		WHERE id = $1 AND user_id = $2`

	calc, err := scanCalculation(r.pool.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Calculation{}, apperr.NotFound(calcNotFoundMessage)
		}
		return Calculation{}, fmt.Errorf("get calculation: %w", err)
	}
	return calc, nil
}

// List retrieves the user's calculations newest first. Total cost and line
// count are computed at read time.
func (r *Repo) List(ctx context.Context, userID uuid.UUID) ([]ListItem, error) {
	query := `
		SELECT ` + calcColumns + `,
			COALESCE((SELECT SUM(quantity * unit_cost) FROM calculation_lines WHERE calculation_id = calculations.id), 0) AS total_cost,
			(SELECT COUNT(*) FROM calculation_lines WHERE calculation_id = calculations.id) AS line_count
		FROM calculations
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list calculations: %w", err)
	}
	defer rows.Close()

	items := make([]ListItem, 0)
	for rows.Next() {
		var item ListItem
		var createdAt, updatedAt time.Time

		err := rows.Scan(
			&item.ID, &item.UserID, &item.Name, &item.Description,
			&item.TargetMarginPercent, &createdAt, &updatedAt,
			&item.TotalCost, &item.LineCount,
		)
		if err != nil {
			return nil, fmt.Errorf("scan calculation list item: %w", err)
		}

		item.CreatedAt = createdAt.Format(time.RFC3339)
		item.UpdatedAt = updatedAt.Format(time.RFC3339)
		items = append(items, item)
	}
	return items, rows.Err()
}

// Update applies a partial update to a calculation owned by the given user
// and bumps updated_at.
func (r *Repo) Update(ctx context.Context, userID, id uuid.UUID, params UpdateParams) (Calculation, error) {
	query := `
		UPDATE calculations SET
			name                  = COALESCE($3, name),
			description           = COALESCE($4, description),
			target_margin_percent = COALESCE($5, target_margin_percent),
			updated_at            = now()
		WHERE id = $1 AND user_id = $2
		RETURNING ` + calcColumns

	row := r.pool.QueryRow(ctx, query, id, userID,
		params.Name, params.Description, params.TargetMarginPercent,
	)
	calc, err := scanCalculation(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Calculation{}, apperr.NotFound(calcNotFoundMessage)
		}
		return Calculation{}, fmt.Errorf("update calculation: %w", err)
	}
	return calc, nil
}

// Delete removes a calculation owned by the given user; lines cascade.
func (r *Repo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM calculations WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete calculation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(calcNotFoundMessage)
	}
	return nil
}

func scanCalculation(row pgx.Row) (Calculation, error) {
	var c Calculation
	var createdAt, updatedAt time.Time

	err := row.Scan(
		&c.ID, &c.UserID, &c.Name, &c.Description, &c.TargetMarginPercent,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return Calculation{}, err
	}

	c.CreatedAt = createdAt.Format(time.RFC3339)
	c.UpdatedAt = updatedAt.Format(time.RFC3339)
	return c, nil
}
