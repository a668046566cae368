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

const quoteNotFoundMessage = "Tilbud ikke funnet"

const quoteColumns = `id, user_id, quote_number, customer_name, customer_email, customer_address,
		project_name, project_description, reference, valid_until, status, markup_percent,
		notes, terms, created_at, updated_at`

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new quotes repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// NextSequence atomically allocates the next quote number sequence for the
// given user and year. The counter upsert makes concurrent allocations
// yield distinct numbers.
func (r *Repo) NextSequence(ctx context.Context, userID uuid.UUID, year int) (int, error) {
	query := `
		INSERT INTO quote_counters (user_id, year, last_seq)
		VALUES ($1, $2, 1)
		ON CONFLICT (user_id, year)
		DO UPDATE SET last_seq = quote_counters.last_seq + 1
		RETURNING last_seq`

	var seq int
	if err := r.pool.QueryRow(ctx, query, userID, year).Scan(&seq); err != nil {
		return 0, fmt.Errorf("next quote sequence: %w", err)
	}
	return seq, nil
}

// Create inserts a new quote and returns the stored row.
func (r *Repo) Create(ctx context.Context, params CreateQuoteParams) (Quote, error) {
	query := `
		INSERT INTO quotes (
			id, user_id, quote_number, customer_name, customer_email, customer_address,
			project_name, project_description, reference, valid_until, status,
			markup_percent, notes, terms
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING ` + quoteColumns

	row := r.pool.QueryRow(ctx, query,
		uuid.New(), params.UserID, params.QuoteNumber, params.CustomerName,
		params.CustomerEmail, params.CustomerAddress, params.ProjectName,
		params.ProjectDescription, params.Reference, params.ValidUntil,
		params.Status, params.MarkupPercent, params.Notes, params.Terms,
	)
	quote, err := scanQuote(row)
	if err != nil {
		return Quote{}, fmt.Errorf("create quote: %w", err)
	}
	return quote, nil
}

// GetByID retrieves a quote owned by the given user. Quotes owned by other
// users answer NotFound, indistinguishable from nonexistent ones.
func (r *Repo) GetByID(ctx context.Context, userID, id uuid.UUID) (Quote, error) {
	query := `
		SELECT ` + quoteColumns + `
		FROM quotes
		WHERE id = $1 AND user_id = $2`

	quote, err := scanQuote(r.pool.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Quote{}, apperr.NotFound(quoteNotFoundMessage)
		}
		return Quote{}, fmt.Errorf("get quote: %w", err)
	}
	return quote, nil
}

// List retrieves the user's quotes newest first, optionally filtered by
// status. Total cost and line count are computed at read time.
func (r *Repo) List(ctx context.Context, userID uuid.UUID, status *string) ([]ListItem, error) {
	query := `
		SELECT ` + quoteColumns + `,
			COALESCE((SELECT SUM(line_total) FROM quote_lines WHERE quote_id = quotes.id), 0) AS total_cost,
			(SELECT COUNT(*) FROM quote_lines WHERE quote_id = quotes.id) AS line_count
		FROM quotes
		WHERE user_id = $1 AND ($2::text IS NULL OR status = $2)
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID, status)
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	defer rows.Close()

	items := make([]ListItem, 0)
	for rows.Next() {
		var item ListItem
		var createdAt, updatedAt time.Time
		var validUntil *time.Time

		err := rows.Scan(
			&item.ID, &item.UserID, &item.QuoteNumber, &item.CustomerName,
			&item.CustomerEmail, &item.CustomerAddress, &item.ProjectName,
			&item.ProjectDescription, &item.Reference, &validUntil, &item.Status,
			&item.MarkupPercent, &item.Notes, &item.Terms, &createdAt, &updatedAt,
			&item.TotalCost, &item.LineCount,
		)
		if err != nil {
			return nil, fmt.Errorf("scan quote list item: %w", err)
		}

		item.ValidUntil = formatDate(validUntil)
		item.CreatedAt = createdAt.Format(time.RFC3339)
		item.UpdatedAt = updatedAt.Format(time.RFC3339)
		items = append(items, item)
	}
	return items, rows.Err()
}

// Update applies a partial update to a quote owned by the given user and
// bumps updated_at.
func (r *Repo) Update(ctx context.Context, userID, id uuid.UUID, params UpdateQuoteParams) (Quote, error) {
	query := `
		UPDATE quotes SET
			customer_name       = COALESCE($3, customer_name),
			customer_email      = COALESCE($4, customer_email),
			customer_address    = COALESCE($5, customer_address),
			project_name        = COALESCE($6, project_name),
			project_description = COALESCE($7, project_description),
			reference           = COALESCE($8, reference),
			valid_until         = COALESCE($9::date, valid_until),
			status              = COALESCE($10, status),
			markup_percent      = COALESCE($11, markup_percent),
			notes               = COALESCE($12, notes),
			terms               = COALESCE($13, terms),
			updated_at          = now()
		WHERE id = $1 AND user_id = $2
		RETURNING ` + quoteColumns

	row := r.pool.QueryRow(ctx, query, id, userID,
		params.CustomerName, params.CustomerEmail, params.CustomerAddress,
		params.ProjectName, params.ProjectDescription, params.Reference,
		params.ValidUntil, params.Status, params.MarkupPercent,
		params.Notes, params.Terms,
	)
	quote, err := scanQuote(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Quote{}, apperr.NotFound(quoteNotFoundMessage)
		}
		return Quote{}, fmt.Errorf("update quote: %w", err)
	}
	return quote, nil
}

// Delete removes a quote owned by the given user; lines cascade.
func (r *Repo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM quotes WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete quote: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(quoteNotFoundMessage)
	}
	return nil
}

func scanQuote(row pgx.Row) (Quote, error) {
	var q Quote
	var createdAt, updatedAt time.Time
	var validUntil *time.Time

	err := row.Scan(
		&q.ID, &q.UserID, &q.QuoteNumber, &q.CustomerName, &q.CustomerEmail,
		&q.CustomerAddress, &q.ProjectName, &q.ProjectDescription, &q.Reference,
		&validUntil, &q.Status, &q.MarkupPercent, &q.Notes, &q.Terms,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return Quote{}, err
	}

	q.ValidUntil = formatDate(validUntil)
	q.CreatedAt = createdAt.Format(time.RFC3339)
	q.UpdatedAt = updatedAt.Format(time.RFC3339)
	return q, nil
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format("2006-01-02")
	return &formatted
}
