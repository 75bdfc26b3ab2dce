package model

import "strings"

// Cabin is a rentable unit. The name is the natural key used
// throughout the system (reservations store cabin names, not numeric
// ids). Everything except the current price is immutable after
// creation.
//
// Fields:
//  Name            – unique cabin name.
//  PersonQty       – sleeping capacity.
//  CoupleBedNumber – number of double beds.
//  SingleBedNumber – number of single beds.
//  CurrentPrice    – nightly price, updated explicitly.
//  Description     – free-form note.
type Cabin struct {
	Name            string  `json:"name"`
	PersonQty       int     `json:"person_qty"`
	CoupleBedNumber int     `json:"couple_bed_number"`
	SingleBedNumber int     `json:"single_bed_number"`
	CurrentPrice    float64 `json:"current_price"`
	Description     string  `json:"description,omitempty"`
}

// NormalizeCabinName lower-cases and trims a cabin name so lookups are
// insensitive to the casing stored on older reservations.
func NormalizeCabinName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
