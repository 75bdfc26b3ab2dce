package model

import "time"

// Extract is a single audit-trail entry recording a monetary event
// against a client (payment received, total price edited, balance
// refund). Extract ids are human readable ("E" followed by a counter
// value) and the creation timestamp is taken in the business time
// zone so daily statements line up with the front desk's calendar.
type Extract struct {
	ID          string    `json:"extract_id"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	ClientID    string    `json:"client_id"`
	DateCreated time.Time `json:"date_created"`
}
