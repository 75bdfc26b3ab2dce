package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/iliyamo/cabin-reservation/internal/model"
)

// ClientRepo provides access to the client directory. The reservation
// engine treats the client aggregate as externally owned: it resolves
// clients by id, snapshots names, and mutates the balance columns
// through SetBalance, nothing else.
type ClientRepo struct {
	db *sql.DB
}

// NewClientRepo returns a ClientRepo bound to the given database.
func NewClientRepo(db *sql.DB) *ClientRepo { return &ClientRepo{db: db} }

const clientColumns = `id, name, email, phone, street, number, zipcode, neighborhood,
	city, state, balance, blocked_balance, status, date_created`

func scanClient(row interface{ Scan(...any) error }) (model.Client, error) {
	var c model.Client
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone,
		&c.Address.Street, &c.Address.Number, &c.Address.Zipcode, &c.Address.Neighborhood,
		&c.Address.City, &c.Address.State,
		&c.Balance, &c.BlockedBalance, &c.Status, &c.DateCreated)
	return c, err
}

// Create inserts a new client with status active and a zero balance.
// Returns ErrDuplicate when a client with the same id already exists.
func (r *ClientRepo) Create(ctx context.Context, c model.Client) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO clients (`+clientColumns+`)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		c.ID, c.Name, c.Email, c.Phone,
		c.Address.Street, c.Address.Number, c.Address.Zipcode, c.Address.Neighborhood,
		c.Address.City, c.Address.State,
		c.Balance, c.BlockedBalance, c.Status, c.DateCreated)
	if isDuplicateKey(err) {
		return ErrDuplicate
	}
	return err
}

// GetByID fetches a client by its trimmed id. Returns ErrNotFound when
// absent.
func (r *ClientRepo) GetByID(ctx context.Context, id string) (model.Client, error) {
	c, err := scanClient(r.db.QueryRowContext(ctx,
		"SELECT "+clientColumns+" FROM clients WHERE id = ? LIMIT 1", strings.TrimSpace(id)))
	if err == sql.ErrNoRows {
		return model.Client{}, ErrNotFound
	}
	return c, err
}

// GetByEmail fetches a client by its trimmed email address.
func (r *ClientRepo) GetByEmail(ctx context.Context, email string) (model.Client, error) {
	c, err := scanClient(r.db.QueryRowContext(ctx,
		"SELECT "+clientColumns+" FROM clients WHERE email = ? LIMIT 1", strings.TrimSpace(email)))
	if err == sql.ErrNoRows {
		return model.Client{}, ErrNotFound
	}
	return c, err
}

// List returns every client.
func (r *ClientRepo) List(ctx context.Context) ([]model.Client, error) {
	return r.list(ctx, "SELECT "+clientColumns+" FROM clients ORDER BY date_created DESC")
}

// ListCreatedSince returns clients registered at or after the cutoff.
func (r *ClientRepo) ListCreatedSince(ctx context.Context, cutoff time.Time) ([]model.Client, error) {
	return r.list(ctx,
		"SELECT "+clientColumns+" FROM clients WHERE date_created >= ? ORDER BY date_created DESC", cutoff)
}

func (r *ClientRepo) list(ctx context.Context, q string, args ...any) ([]model.Client, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clients := make([]model.Client, 0)
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

// SetBalance overwrites the client's spendable balance. The guard
// logic (sign, sufficiency, blocked funds) lives in the service layer;
// this is the raw update-by-filter write.
func (r *ClientRepo) SetBalance(ctx context.Context, id string, balance float64) error {
	_, err := r.db.ExecContext(ctx, "UPDATE clients SET balance = ? WHERE id = ?", balance, id)
	return err
}

// SetName overwrites the client's display name.
func (r *ClientRepo) SetName(ctx context.Context, id, name string) error {
	_, err := r.db.ExecContext(ctx, "UPDATE clients SET name = ? WHERE id = ?", name, id)
	return err
}

// SetEmail overwrites the client's email. Returns ErrDuplicate when the
// address is already in use.
func (r *ClientRepo) SetEmail(ctx context.Context, id, email string) error {
	_, err := r.db.ExecContext(ctx, "UPDATE clients SET email = ? WHERE id = ?", email, id)
	if isDuplicateKey(err) {
		return ErrDuplicate
	}
	return err
}

// SetPhone overwrites the client's phone number.
func (r *ClientRepo) SetPhone(ctx context.Context, id, phone string) error {
	_, err := r.db.ExecContext(ctx, "UPDATE clients SET phone = ? WHERE id = ?", phone, id)
	return err
}

// SetStatus overwrites the client's status flag.
func (r *ClientRepo) SetStatus(ctx context.Context, id string, status int) error {
	_, err := r.db.ExecContext(ctx, "UPDATE clients SET status = ? WHERE id = ?", status, id)
	return err
}

// Delete removes a client row.
func (r *ClientRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM clients WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireRow(res)
}
