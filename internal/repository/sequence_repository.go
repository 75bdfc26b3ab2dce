package repository

import (
	"context"
	"database/sql"
)

// SequenceRepo issues monotonically increasing integers per named
// counter. The increment is a single atomic upsert so concurrent
// callers across any number of service instances never observe the
// same value. Counters start at 1 on first use; gaps may appear when
// a caller aborts after allocating, which is acceptable.
type SequenceRepo struct {
	db *sql.DB
}

// NewSequenceRepo returns a SequenceRepo bound to the given database.
func NewSequenceRepo(db *sql.DB) *SequenceRepo { return &SequenceRepo{db: db} }

// Next atomically increments the named counter and returns its new
// value. The LAST_INSERT_ID(expr) form makes MySQL report the
// incremented value through the statement's insert id, which keeps the
// read and the write in one round trip.
func (r *SequenceRepo) Next(ctx context.Context, name string) (int64, error) {
	const q = `INSERT INTO counters (name, seq) VALUES (?, 1)
	           ON DUPLICATE KEY UPDATE seq = LAST_INSERT_ID(seq + 1)`
	res, err := r.db.ExecContext(ctx, q, name)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	if id == 0 {
		// Fresh counter: the insert path does not pass through
		// LAST_INSERT_ID, so the first value is the seeded 1.
		return 1, nil
	}
	return id, nil
}
