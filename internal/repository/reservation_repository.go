package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/iliyamo/cabin-reservation/internal/model"
)

// ReservationRepo owns reservation rows and the reservation_cabins
// link table. The repository exposes the raw interval and status
// filters the engine composes; all date comparisons rely on DATETIME
// columns stored in UTC.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

const reservationColumns = `id, client_id, client_name, person_qty, total_price, amount_paid,
	discount, status, checkin, checkout, description, date_created`

// Insert persists a reservation and its cabin set in one transaction.
// The caller has already assigned the id and creation timestamp.
func (r *ReservationRepo) Insert(ctx context.Context, res *model.Reservation) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO reservations (`+reservationColumns+`)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		res.ID, res.ClientID, res.ClientName, res.PersonQty, res.TotalPrice, res.AmountPaid,
		res.Discount, res.Status, res.Checkin, res.Checkout, res.Description, res.DateCreated)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicate
		}
		return err
	}
	if len(res.CabinNames) > 0 {
		q := "INSERT INTO reservation_cabins (reservation_id, cabin_name) VALUES "
		args := make([]any, 0, len(res.CabinNames)*2)
		for i, name := range res.CabinNames {
			if i > 0 {
				q += ","
			}
			q += "(?, ?)"
			args = append(args, res.ID, name)
		}
		if _, err := tx.ExecContext(ctx, q, args...); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// GetByID fetches a reservation with its cabin set. Returns ErrNotFound
// when absent. The id is trimmed so values pasted from vouchers work.
func (r *ReservationRepo) GetByID(ctx context.Context, id string) (model.Reservation, error) {
	res, err := r.selectOne(ctx,
		"SELECT "+reservationColumns+" FROM reservations WHERE id = ? LIMIT 1", strings.TrimSpace(id))
	if err != nil {
		return model.Reservation{}, err
	}
	list := []model.Reservation{res}
	if err := r.loadCabins(ctx, list); err != nil {
		return model.Reservation{}, err
	}
	return list[0], nil
}

// GetAll returns every reservation, newest first.
func (r *ReservationRepo) GetAll(ctx context.Context) ([]model.Reservation, error) {
	return r.selectMany(ctx,
		"SELECT "+reservationColumns+" FROM reservations ORDER BY date_created DESC")
}

// FindOverlapping returns reservations of any status whose interval
// intersects the half-open window [start, end).
func (r *ReservationRepo) FindOverlapping(ctx context.Context, start, end time.Time) ([]model.Reservation, error) {
	return r.selectMany(ctx,
		"SELECT "+reservationColumns+" FROM reservations WHERE checkin < ? AND checkout > ?",
		end, start)
}

// FindOverlappingConfirmed is FindOverlapping restricted to confirmed
// reservations, the only ones that block availability.
func (r *ReservationRepo) FindOverlappingConfirmed(ctx context.Context, start, end time.Time) ([]model.Reservation, error) {
	return r.selectMany(ctx,
		"SELECT "+reservationColumns+" FROM reservations WHERE checkin < ? AND checkout > ? AND status = ?",
		end, start, model.StatusConfirmed)
}

// FindConfirmedByYear returns confirmed reservations whose checkin or
// checkout falls in the given year. Feeds the monthly reserved-dates
// expansion.
func (r *ReservationRepo) FindConfirmedByYear(ctx context.Context, year int) ([]model.Reservation, error) {
	return r.selectMany(ctx,
		`SELECT `+reservationColumns+` FROM reservations
		 WHERE (YEAR(checkin) = ? OR YEAR(checkout) = ?) AND status = ?`,
		year, year, model.StatusConfirmed)
}

// FindSettledByMonth returns reservations counted by the monthly
// revenue total: checkin or checkout in the month, status confirmed or
// completed.
func (r *ReservationRepo) FindSettledByMonth(ctx context.Context, year int, month time.Month) ([]model.Reservation, error) {
	return r.selectMany(ctx,
		`SELECT `+reservationColumns+` FROM reservations
		 WHERE ((YEAR(checkin) = ? AND MONTH(checkin) = ?) OR (YEAR(checkout) = ? AND MONTH(checkout) = ?))
		   AND status IN (?, ?)`,
		year, int(month), year, int(month), model.StatusConfirmed, model.StatusCompleted)
}

// FindSettledByYear is the yearly counterpart of FindSettledByMonth.
func (r *ReservationRepo) FindSettledByYear(ctx context.Context, year int) ([]model.Reservation, error) {
	return r.selectMany(ctx,
		`SELECT `+reservationColumns+` FROM reservations
		 WHERE (YEAR(checkin) = ? OR YEAR(checkout) = ?) AND status IN (?, ?)`,
		year, year, model.StatusConfirmed, model.StatusCompleted)
}

// FindByClient returns all reservations belonging to a client.
func (r *ReservationRepo) FindByClient(ctx context.Context, clientID string) ([]model.Reservation, error) {
	return r.selectMany(ctx,
		"SELECT "+reservationColumns+" FROM reservations WHERE client_id = ? ORDER BY date_created DESC",
		clientID)
}

// CountOverlapping counts reservations of any status intersecting
// [start, end).
func (r *ReservationRepo) CountOverlapping(ctx context.Context, start, end time.Time) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM reservations WHERE checkin < ? AND checkout > ?", end, start).Scan(&n)
	return n, err
}

// CountByStatus counts reservations in the given status.
func (r *ReservationRepo) CountByStatus(ctx context.Context, status int) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM reservations WHERE status = ?", status).Scan(&n)
	return n, err
}

// UpdateStatus overwrites the status field. Existence is verified by
// the caller; RowsAffected is not checked because MySQL reports zero
// rows for a no-op write.
func (r *ReservationRepo) UpdateStatus(ctx context.Context, id string, status int) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE reservations SET status = ? WHERE id = ?", status, id)
	return err
}

// UpdatePayment overwrites the accumulated paid amount and the status
// in a single write, mirroring the combined update the payment flow
// requires.
func (r *ReservationRepo) UpdatePayment(ctx context.Context, id string, amountPaid float64, status int) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE reservations SET amount_paid = ?, status = ? WHERE id = ?", amountPaid, status, id)
	return err
}

// UpdateTotalPrice overwrites the agreed total.
func (r *ReservationRepo) UpdateTotalPrice(ctx context.Context, id string, total float64) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE reservations SET total_price = ? WHERE id = ?", total, id)
	return err
}

// UpdateClientName rewrites the denormalized client-name snapshot on
// every reservation of the client. Invoked by the client rename
// pathway, never automatically.
func (r *ReservationRepo) UpdateClientName(ctx context.Context, clientID, newName string) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE reservations SET client_name = ? WHERE client_id = ?", newName, clientID)
	return err
}

// Delete removes a reservation and its cabin links. Unconditional; it
// does not touch balances.
func (r *ReservationRepo) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM reservation_cabins WHERE reservation_id = ?", id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM reservations WHERE id = ?", id)
	if err != nil {
		return err
	}
	if err := requireRow(res); err != nil {
		return err
	}
	return tx.Commit()
}

// DeleteAll wipes every reservation and cabin link.
func (r *ReservationRepo) DeleteAll(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM reservation_cabins"); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM reservations"); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *ReservationRepo) selectOne(ctx context.Context, q string, args ...any) (model.Reservation, error) {
	res, err := scanReservation(r.db.QueryRowContext(ctx, q, args...))
	if err == sql.ErrNoRows {
		return model.Reservation{}, ErrNotFound
	}
	return res, err
}

func (r *ReservationRepo) selectMany(ctx context.Context, q string, args ...any) ([]model.Reservation, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]model.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadCabins(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

func scanReservation(row interface{ Scan(...any) error }) (model.Reservation, error) {
	var res model.Reservation
	var desc sql.NullString
	err := row.Scan(&res.ID, &res.ClientID, &res.ClientName, &res.PersonQty,
		&res.TotalPrice, &res.AmountPaid, &res.Discount, &res.Status,
		&res.Checkin, &res.Checkout, &desc, &res.DateCreated)
	res.Description = desc.String
	res.CabinNames = []string{}
	return res, err
}

// loadCabins populates CabinNames for all reservations in one IN query.
func (r *ReservationRepo) loadCabins(ctx context.Context, list []model.Reservation) error {
	if len(list) == 0 {
		return nil
	}
	index := make(map[string]int, len(list))
	ids := make([]any, 0, len(list))
	placeholders := make([]string, 0, len(list))
	for i, res := range list {
		index[res.ID] = i
		ids = append(ids, res.ID)
		placeholders = append(placeholders, "?")
	}
	q := `SELECT reservation_id, cabin_name FROM reservation_cabins
	      WHERE reservation_id IN (` + strings.Join(placeholders, ",") + `)
	      ORDER BY reservation_id, cabin_name`
	rows, err := r.db.QueryContext(ctx, q, ids...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var rid, name string
		if err := rows.Scan(&rid, &name); err != nil {
			return err
		}
		if i, ok := index[rid]; ok {
			list[i].CabinNames = append(list[i].CabinNames, name)
		}
	}
	return rows.Err()
}
