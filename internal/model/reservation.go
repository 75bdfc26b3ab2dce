package model

import "time"

// Reservation status values. Only Confirmed reservations block cabin
// availability; Pending, Completed and Cancelled do not.
const (
	StatusPending   = 1
	StatusConfirmed = 2
	StatusCompleted = 3
	StatusCancelled = 4
)

// Reservation records a client's booking of one or more cabins for a
// date range. The identifier is human readable ("R" followed by a
// counter value) and is assigned exactly once at creation.
//
// Fields:
//  ID          – reservation identifier, "R<seq>".
//  ClientID    – owning client (CPF-style natural key).
//  ClientName  – snapshot of the client's name at creation time; kept in
//                sync through an explicit rename propagation, never
//                automatically.
//  PersonQty   – number of guests.
//  TotalPrice  – agreed total for the stay.
//  AmountPaid  – accumulated payments; only grows through AddPayment.
//  Discount    – discount applied to the total, if any.
//  Status      – one of the Status* constants above.
//  Checkin     – first occupied night (inclusive).
//  Checkout    – departure date (exclusive for overlap purposes).
//  Description – free-form note.
//  CabinNames  – set of cabins occupied by this reservation. May be
//                empty, in which case the reservation never conflicts.
//  DateCreated – set once at creation, never mutated.
type Reservation struct {
	ID          string    `json:"reservation_id"`
	ClientID    string    `json:"client_id"`
	ClientName  string    `json:"client_name"`
	PersonQty   int       `json:"person_qty"`
	TotalPrice  float64   `json:"total_price"`
	AmountPaid  float64   `json:"amount_paid"`
	Discount    float64   `json:"discount"`
	Status      int       `json:"status"`
	Checkin     time.Time `json:"checkin"`
	Checkout    time.Time `json:"checkout"`
	Description string    `json:"description,omitempty"`
	CabinNames  []string  `json:"cabin_names"`
	DateCreated time.Time `json:"date_created"`
}

// Overlaps reports whether the reservation's [Checkin, Checkout) window
// intersects the half-open window [start, end).
func (r Reservation) Overlaps(start, end time.Time) bool {
	return r.Checkin.Before(end) && r.Checkout.After(start)
}

// SharesCabin reports whether the reservation occupies any cabin from
// the given set. Comparison is done on the normalized (lower-cased,
// trimmed) cabin names.
func (r Reservation) SharesCabin(names []string) bool {
	for _, mine := range r.CabinNames {
		for _, other := range names {
			if NormalizeCabinName(mine) == NormalizeCabinName(other) {
				return true
			}
		}
	}
	return false
}

// ReservedDate pairs a calendar day (yyyy-MM-dd) with the cabins a
// confirmed reservation occupies on that day. Used by the monthly
// reserved-dates report.
type ReservedDate struct {
	Date   string   `json:"date"`
	Cabins []string `json:"cabins"`
}

// ReservationCounts summarizes occupancy for the dashboard: reservations
// covering today, reservations touching the current month, and the
// number still pending. All "today"/"this month" boundaries are taken
// in the business time zone.
type ReservationCounts struct {
	Today     int64 `json:"reservations_today"`
	ThisMonth int64 `json:"reservations_this_month"`
	Pending   int64 `json:"reservations_pending"`
}
