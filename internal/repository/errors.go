// Package repository implements MySQL persistence for the reservation
// engine. This file defines error values shared across repositories so
// higher layers can distinguish failure scenarios without inspecting
// driver errors.
package repository

import "errors"

// ErrNotFound is returned when a referenced row does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert violates a unique key, such
// as registering a client with an existing CPF or a cabin with an
// existing name.
var ErrDuplicate = errors.New("already exists")

// ErrEmailExists is returned by the user repository when the email is
// already registered.
var ErrEmailExists = errors.New("email already exists")

// isDuplicateKey reports whether err is a MySQL duplicate-entry error
// (code 1062).
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	// The driver's error string carries the numeric code.
	return containsCode(err.Error(), "1062")
}

func containsCode(s, code string) bool {
	for i := 0; i+len(code) <= len(s); i++ {
		if s[i:i+len(code)] == code {
			return true
		}
	}
	return false
}
