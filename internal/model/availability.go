package model

// Cabin availability states for a queried window. CHECKOUT_TODAY marks
// a cabin whose only blocking reservation checks out on the window's
// start date, so the front desk can offer a same-day turnover.
const (
	CabinFree          = "FREE"
	CabinOccupied      = "OCCUPIED"
	CabinCheckoutToday = "CHECKOUT_TODAY"
)

// CabinAvailability is one row of an availability query. For occupied
// cabins the occupant's name and reservation id are carried so callers
// can surface who is holding the cabin.
type CabinAvailability struct {
	Name          string `json:"name"`
	Status        string `json:"status"`
	ClientName    string `json:"client_name,omitempty"`
	ReservationID string `json:"reservation_id,omitempty"`
}
