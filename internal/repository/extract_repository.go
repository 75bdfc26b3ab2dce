package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/cabin-reservation/internal/model"
)

// ExtractRepo persists audit-trail entries. Extracts are append-mostly;
// the listing queries sort by id descending, which follows insertion
// order because ids are counter-based.
type ExtractRepo struct {
	db *sql.DB
}

// NewExtractRepo returns an ExtractRepo bound to the given database.
func NewExtractRepo(db *sql.DB) *ExtractRepo { return &ExtractRepo{db: db} }

const extractColumns = "id, description, amount, client_id, date_created"

// Insert stores one extract entry. The caller has already assigned the
// id and timestamp.
func (r *ExtractRepo) Insert(ctx context.Context, e model.Extract) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO extracts ("+extractColumns+") VALUES (?,?,?,?,?)",
		e.ID, e.Description, e.Amount, e.ClientID, e.DateCreated)
	return err
}

// GetByID fetches one extract by its trimmed id.
func (r *ExtractRepo) GetByID(ctx context.Context, id string) (model.Extract, error) {
	var e model.Extract
	err := r.db.QueryRowContext(ctx,
		"SELECT "+extractColumns+" FROM extracts WHERE id = ? LIMIT 1", strings.TrimSpace(id)).
		Scan(&e.ID, &e.Description, &e.Amount, &e.ClientID, &e.DateCreated)
	if err == sql.ErrNoRows {
		return model.Extract{}, ErrNotFound
	}
	return e, err
}

// List returns every extract.
func (r *ExtractRepo) List(ctx context.Context) ([]model.Extract, error) {
	return r.list(ctx, "SELECT "+extractColumns+" FROM extracts")
}

// LastN returns the newest n extracts across all clients.
func (r *ExtractRepo) LastN(ctx context.Context, n int) ([]model.Extract, error) {
	return r.list(ctx,
		"SELECT "+extractColumns+" FROM extracts ORDER BY CAST(SUBSTRING(id, 2) AS UNSIGNED) DESC LIMIT ?", n)
}

// LastNByClient returns the newest n extracts for one client.
func (r *ExtractRepo) LastNByClient(ctx context.Context, clientID string, n int) ([]model.Extract, error) {
	return r.list(ctx,
		`SELECT `+extractColumns+` FROM extracts WHERE client_id = ?
		 ORDER BY CAST(SUBSTRING(id, 2) AS UNSIGNED) DESC LIMIT ?`, clientID, n)
}

// ByClient returns the full history for one client.
func (r *ExtractRepo) ByClient(ctx context.Context, clientID string) ([]model.Extract, error) {
	return r.list(ctx, "SELECT "+extractColumns+" FROM extracts WHERE client_id = ?", clientID)
}

// Search returns extracts whose description contains the given string,
// case-insensitively.
func (r *ExtractRepo) Search(ctx context.Context, needle string) ([]model.Extract, error) {
	return r.list(ctx,
		"SELECT "+extractColumns+" FROM extracts WHERE LOWER(description) LIKE ?",
		"%"+strings.ToLower(needle)+"%")
}

// Delete removes one extract entry.
func (r *ExtractRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM extracts WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *ExtractRepo) list(ctx context.Context, q string, args ...any) ([]model.Extract, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	extracts := make([]model.Extract, 0)
	for rows.Next() {
		var e model.Extract
		if err := rows.Scan(&e.ID, &e.Description, &e.Amount, &e.ClientID, &e.DateCreated); err != nil {
			return nil, err
		}
		extracts = append(extracts, e)
	}
	return extracts, rows.Err()
}
