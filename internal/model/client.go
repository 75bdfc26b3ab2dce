package model

import "time"

// Client status values. An excluded client keeps its records but is
// flagged; excluded clients are also the ones for which the double-
// booking gate is armed at reservation creation.
const (
	ClientActive   = 1
	ClientExcluded = 2
)

// Address holds a client's postal address.
type Address struct {
	Street       string `json:"street"`
	Number       string `json:"number"`
	Zipcode      string `json:"zipcode"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}

// Client is the guest aggregate. The reservation engine does not own
// it; it only reads the name for snapshotting and mutates the balance
// fields through the ledger operations.
//
// Fields:
//  ID             – natural key (CPF).
//  Name           – display name; renames must be propagated to the
//                   ClientName snapshot on reservations.
//  Email          – unique contact address.
//  Phone          – contact phone.
//  Address        – postal address.
//  Balance        – spendable balance, never negative.
//  BlockedBalance – funds earmarked against the client, not withdrawable
//                   through an ordinary debit.
//  Status         – ClientActive or ClientExcluded.
//  DateCreated    – registration instant (UTC).
type Client struct {
	ID             string    `json:"client_id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Address        Address   `json:"address"`
	Balance        float64   `json:"balance"`
	BlockedBalance float64   `json:"blocked_balance"`
	Status         int       `json:"status"`
	DateCreated    time.Time `json:"date_created"`
}
