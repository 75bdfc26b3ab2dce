package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/cabin-reservation/internal/model"
)

// CabinRepo provides CRUD access to the cabin catalog. Cabins are
// keyed by their unique name; reservations reference that name
// directly.
type CabinRepo struct {
	db *sql.DB
}

// NewCabinRepo returns a CabinRepo bound to the given database.
func NewCabinRepo(db *sql.DB) *CabinRepo { return &CabinRepo{db: db} }

const cabinColumns = "name, person_qty, couple_bed_number, single_bed_number, current_price, description"

// List returns every cabin in the catalog ordered by name.
func (r *CabinRepo) List(ctx context.Context) ([]model.Cabin, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+cabinColumns+" FROM cabins ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cabins := make([]model.Cabin, 0)
	for rows.Next() {
		var c model.Cabin
		var desc sql.NullString
		if err := rows.Scan(&c.Name, &c.PersonQty, &c.CoupleBedNumber, &c.SingleBedNumber, &c.CurrentPrice, &desc); err != nil {
			return nil, err
		}
		c.Description = desc.String
		cabins = append(cabins, c)
	}
	return cabins, rows.Err()
}

// GetByName fetches a cabin by its (trimmed) name. Returns ErrNotFound
// when no such cabin exists.
func (r *CabinRepo) GetByName(ctx context.Context, name string) (model.Cabin, error) {
	var c model.Cabin
	var desc sql.NullString
	err := r.db.QueryRowContext(ctx,
		"SELECT "+cabinColumns+" FROM cabins WHERE name = ? LIMIT 1", strings.TrimSpace(name)).
		Scan(&c.Name, &c.PersonQty, &c.CoupleBedNumber, &c.SingleBedNumber, &c.CurrentPrice, &desc)
	if err == sql.ErrNoRows {
		return model.Cabin{}, ErrNotFound
	}
	if err != nil {
		return model.Cabin{}, err
	}
	c.Description = desc.String
	return c, nil
}

// Create inserts a new cabin. Returns ErrDuplicate when the name is
// already taken.
func (r *CabinRepo) Create(ctx context.Context, c model.Cabin) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO cabins ("+cabinColumns+") VALUES (?,?,?,?,?,?)",
		c.Name, c.PersonQty, c.CoupleBedNumber, c.SingleBedNumber, c.CurrentPrice, c.Description)
	if isDuplicateKey(err) {
		return ErrDuplicate
	}
	return err
}

// UpdatePrice overwrites the cabin's current nightly price. Callers
// verify existence first; RowsAffected is not checked because MySQL
// reports zero rows when the price is unchanged.
func (r *CabinRepo) UpdatePrice(ctx context.Context, name string, price float64) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE cabins SET current_price = ? WHERE name = ?", price, name)
	return err
}

// Delete removes a cabin by name.
func (r *CabinRepo) Delete(ctx context.Context, name string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM cabins WHERE name = ?", name)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// requireRow converts a zero-row result into ErrNotFound.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
