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

const lineNotFoundMessage = "Tilbudslinje ikke funnet"

const lineColumns = `l.id, l.quote_id, l.cost_item_id, i.name, l.category_type, l.description,
		l.quantity, l.unit, l.unit_price, l.line_markup, l.line_total, l.sort_order, l.created_at`

// ListLines retrieves the lines of a quote ordered by sort order, then
// insertion time, with the catalog item name joined when still linked.
func (r *Repo) ListLines(ctx context.Context, quoteID uuid.UUID) ([]Line, error) {
	query := `
		SELECT ` + lineColumns + `
		FROM quote_lines l
		LEFT JOIN cost_items i ON i.id = l.cost_item_id
		WHERE l.quote_id = $1
		ORDER BY l.sort_order, l.created_at`

	rows, err := r.pool.Query(ctx, query, quoteID)
	if err != nil {
		return nil, fmt.Errorf("list quote lines: %w", err)
	}
	defer rows.Close()

	lines := make([]Line, 0)
	for rows.Next() {
		line, err := scanLine(rows)
		if err != nil {
			return nil, fmt.Errorf("scan quote line: %w", err)
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

// GetLine retrieves a single line of a quote.
func (r *Repo) GetLine(ctx context.Context, quoteID, lineID uuid.UUID) (Line, error) {
	query := `
		SELECT ` + lineColumns + `
		FROM quote_lines l
		LEFT JOIN cost_items i ON i.id = l.cost_item_id
		WHERE l.id = $1 AND l.quote_id = $2`

	line, err := scanLine(r.pool.QueryRow(ctx, query, lineID, quoteID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Line{}, apperr.NotFound(lineNotFoundMessage)
		}
		return Line{}, fmt.Errorf("get quote line: %w", err)
	}
	return line, nil
}

// CreateLine appends a line to a quote. Sort order is allocated after the
// current maximum, and the parent quote's updated_at is bumped in the same
// transaction.
func (r *Repo) CreateLine(ctx context.Context, quoteID uuid.UUID, params CreateLineParams) (Line, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return Line{}, fmt.Errorf("create quote line: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO quote_lines (
			id, quote_id, cost_item_id, category_type, description,
			quantity, unit, unit_price, line_markup, line_total, sort_order
		)
		VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			(SELECT COALESCE(MAX(sort_order), 0) + 1 FROM quote_lines WHERE quote_id = $2)
		)
		RETURNING id`

	var id uuid.UUID
	err = tx.QueryRow(ctx, query,
		uuid.New(), quoteID, params.CostItemID, params.CategoryType, params.Description,
		params.Quantity, params.Unit, params.UnitPrice, params.LineMarkup, params.LineTotal,
	).Scan(&id)
	if err != nil {
		return Line{}, fmt.Errorf("create quote line: %w", err)
	}

	if _, err := tx.Exec(ctx, `UPDATE quotes SET updated_at = now() WHERE id = $1`, quoteID); err != nil {
		return Line{}, fmt.Errorf("touch quote: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return Line{}, fmt.Errorf("create quote line: %w", err)
	}

	return r.GetLine(ctx, quoteID, id)
}

// UpdateLine applies a partial update to a line and bumps the parent quote.
func (r *Repo) UpdateLine(ctx context.Context, quoteID, lineID uuid.UUID, params UpdateLineParams) (Line, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return Line{}, fmt.Errorf("update quote line: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE quote_lines SET
			cost_item_id  = COALESCE($3, cost_item_id),
			category_type = COALESCE($4, category_type),
			description   = COALESCE($5, description),
			quantity      = COALESCE($6, quantity),
			unit          = COALESCE($7, unit),
			unit_price    = COALESCE($8, unit_price),
			line_markup   = COALESCE($9, line_markup),
			line_total    = COALESCE($10, line_total),
			sort_order    = COALESCE($11, sort_order)
		WHERE id = $1 AND quote_id = $2
		RETURNING id`

	var id uuid.UUID
	err = tx.QueryRow(ctx, query, lineID, quoteID,
		params.CostItemID, params.CategoryType, params.Description,
		params.Quantity, params.Unit, params.UnitPrice, params.LineMarkup,
		params.LineTotal, params.SortOrder,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Line{}, apperr.NotFound(lineNotFoundMessage)
		}
		return Line{}, fmt.Errorf("update quote line: %w", err)
	}

	if _, err := tx.Exec(ctx, `UPDATE quotes SET updated_at = now() WHERE id = $1`, quoteID); err != nil {
		return Line{}, fmt.Errorf("touch quote: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return Line{}, fmt.Errorf("update quote line: %w", err)
	}

	return r.GetLine(ctx, quoteID, id)
}

// DeleteLine removes a line and bumps the parent quote.
func (r *Repo) DeleteLine(ctx context.Context, quoteID, lineID uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("delete quote line: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `DELETE FROM quote_lines WHERE id = $1 AND quote_id = $2`, lineID, quoteID)
	if err != nil {
		return fmt.Errorf("delete quote line: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(lineNotFoundMessage)
	}

	if _, err := tx.Exec(ctx, `UPDATE quotes SET updated_at = now() WHERE id = $1`, quoteID); err != nil {
		return fmt.Errorf("touch quote: %w", err)
	}

	return tx.Commit(ctx)
}

func scanLine(row pgx.Row) (Line, error) {
	var l Line
	var createdAt time.Time

	err := row.Scan(
		&l.ID, &l.QuoteID, &l.CostItemID, &l.ItemName, &l.CategoryType,
		&l.Description, &l.Quantity, &l.Unit, &l.UnitPrice, &l.LineMarkup,
		&l.LineTotal, &l.SortOrder, &createdAt,
	)
	if err != nil {
		return Line{}, err
	}

	l.CreatedAt = createdAt.Format(time.RFC3339)
	return l, nil
}
