// Package queue defines the domain events published to RabbitMQ and
// the background consumer that turns them into guest notifications.
package queue

// ReservationConfirmedEvent is emitted when a reservation is created
// already paid or when a payment confirms a pending one.
type ReservationConfirmedEvent struct {
	EventID       string   `json:"event_id"`
	ReservationID string   `json:"reservation_id"`
	ClientID      string   `json:"client_id"`
	ClientName    string   `json:"client_name"`
	ClientEmail   string   `json:"client_email,omitempty"`
	Cabins        []string `json:"cabins"`
	Checkin       string   `json:"checkin"`
	Checkout      string   `json:"checkout"`
	TotalPrice    float64  `json:"total_price"`
	AmountPaid    float64  `json:"amount_paid"`
	ConfirmedAt   string   `json:"confirmed_at"`
}

// ClientRegisteredEvent is emitted when a new client joins the
// registry.
type ClientRegisteredEvent struct {
	EventID      string `json:"event_id"`
	ClientID     string `json:"client_id"`
	ClientName   string `json:"client_name"`
	ClientEmail  string `json:"client_email,omitempty"`
	RegisteredAt string `json:"registered_at"`
}
