package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"kalkyle/platform/apperr"
)

const calcLineNotFoundMessage = "Kalkylelinje ikke funnet"

const calcLineColumns = `l.id, l.calculation_id, l.cost_item_id, i.name, l.description,
		l.quantity, l.unit, l.unit_cost, l.sort_order, l.created_at`

// ListLines retrieves the lines of a calculation ordered by sort order,
// then insertion time, with the catalog item name joined when still linked.
func (r *Repo) ListLines(ctx context.Context, calculationID uuid.UUID) ([]Line, error) {
	query := `
		SELECT ` + calcLineColumns + `
		FROM calculation_lines l
		LEFT JOIN cost_items i ON i.id = l.cost_item_id
		WHERE l.calculation_id = $1
		ORDER BY l.sort_order, l.created_at`

	rows, err := r.pool.Query(ctx, query, calculationID)
	if err != nil {
		return nil, fmt.Errorf("list calculation lines: %w", err)
	}
	defer rows.Close()

	lines := make([]Line, 0)
	for rows.Next() {
		line, err := scanCalcLine(rows)
		if err != nil {
			return nil, fmt.Errorf("scan calculation line: %w", err)
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

// GetLine retrieves a single line of a calculation.
func (r *Repo) GetLine(ctx context.Context, calculationID, lineID uuid.UUID) (Line, error) {
	query := `
		SELECT ` + calcLineColumns + `
		FROM calculation_lines l
		LEFT JOIN cost_items i ON i.id = l.cost_item_id
		WHERE l.id = $1 AND l.calculation_id = $2`

	line, err := scanCalcLine(r.pool.QueryRow(ctx, query, lineID, calculationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Line{}, apperr.NotFound(calcLineNotFoundMessage)
		}
		return Line{}, fmt.Errorf("get calculation line: %w", err)
	}
	return line, nil
}

// CreateLine appends a line to a calculation. Sort order is allocated after
// the current maximum, and the parent calculation's updated_at is bumped in
// the same transaction.
func (r *Repo) CreateLine(ctx context.Context, calculationID uuid.UUID, params CreateLineParams) (Line, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return Line{}, fmt.Errorf("create calculation line: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO calculation_lines (
			id, calculation_id, cost_item_id, description, quantity, unit, unit_cost, sort_order
		)
		VALUES (
			$1, $2, $3, $4, $5, $6, $7,
			(SELECT COALESCE(MAX(sort_order), 0) + 1 FROM calculation_lines WHERE calculation_id = $2)
		)
		RETURNING id`

	var id uuid.UUID
	err = tx.QueryRow(ctx, query,
		uuid.New(), calculationID, params.CostItemID, params.Description,
		params.Quantity, params.Unit, params.UnitCost,
	).Scan(&id)
	if err != nil {
		return Line{}, fmt.Errorf("create calculation line: %w", err)
	}

	if _, err := tx.Exec(ctx, `UPDATE calculations SET updated_at = now() WHERE id = $1`, calculationID); err != nil {
		return Line{}, fmt.Errorf("touch calculation: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return Line{}, fmt.Errorf("create calculation line: %w", err)
	}

	return r.GetLine(ctx, calculationID, id)
}

// UpdateLine applies a partial update to a line and bumps the parent
// calculation.
func (r *Repo) UpdateLine(ctx context.Context, calculationID, lineID uuid.UUID, params UpdateLineParams) (Line, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return Line{}, fmt.Errorf("update calculation line: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE calculation_lines SET
			cost_item_id = COALESCE($3, cost_item_id),
			description  = COALESCE($4, description),
			quantity     = COALESCE($5, quantity),
			unit         = COALESCE($6, unit),
			unit_cost    = COALESCE($7, unit_cost),
			sort_order   = COALESCE($8, sort_order)
		WHERE id = $1 AND calculation_id = $2
		RETURNING id`

	var id uuid.UUID
	err = tx.QueryRow(ctx, query, lineID, calculationID,
		params.CostItemID, params.Description, params.Quantity,
		params.Unit, params.UnitCost, params.SortOrder,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Line{}, apperr.NotFound(calcLineNotFoundMessage)
		}
		return Line{}, fmt.Errorf("update calculation line: %w", err)
	}

	if _, err := tx.Exec(ctx, `UPDATE calculations SET updated_at = now() WHERE id = $1`, calculationID); err != nil {
		return Line{}, fmt.Errorf("touch calculation: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return Line{}, fmt.Errorf("update calculation line: %w", err)
	}

	return r.GetLine(ctx, calculationID, id)
}

// DeleteLine removes a line and bumps the parent calculation.
func (r *Repo) DeleteLine(ctx context.Context, calculationID, lineID uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("delete calculation line: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `DELETE FROM calculation_lines WHERE id = $1 AND calculation_id = $2`, lineID, calculationID)
	if err != nil {
		return fmt.Errorf("delete calculation line: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(calcLineNotFoundMessage)
	}

	if _, err := tx.Exec(ctx, `UPDATE calculations SET updated_at = now() WHERE id = $1`, calculationID); err != nil {
		return fmt.Errorf("touch calculation: %w", err)
	}

	return tx.Commit(ctx)
}

func scanCalcLine(row pgx.Row) (Line, error) {
	var l Line
	var createdAt time.Time

	err := row.Scan(
		&l.ID, &l.CalculationID, &l.CostItemID, &l.ItemName, &l.Description,
		&l.Quantity, &l.Unit, &l.UnitCost, &l.SortOrder, &createdAt,
	)
	if err != nil {
		return Line{}, err
	}

	l.CreatedAt = createdAt.Format(time.RFC3339)
	return l, nil
}
