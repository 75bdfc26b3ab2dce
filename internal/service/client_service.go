package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/iliyamo/cabin-reservation/internal/model"
	"github.com/iliyamo/cabin-reservation/internal/repository"
)

// ClientService owns the client registry. Renames propagate to the
// name snapshots on the client's reservations through the reservation
// service; no other path keeps those snapshots consistent.
type ClientService struct {
	clients      ClientStore
	reservations *ReservationService

	// Now is the clock used for registration timestamps. Tests override it.
	Now func() time.Time
}

// NewClientService wires the client registry.
func NewClientService(clients ClientStore, reservations *ReservationService) *ClientService {
	return &ClientService{clients: clients, reservations: reservations, Now: time.Now}
}

// Register persists a new client with an externally chosen id. New
// clients start active with both balances at zero unless an initial
// balance is supplied.
func (s *ClientService) Register(ctx context.Context, c model.Client) (model.Client, error) {
	if strings.TrimSpace(c.ID) == "" {
		return model.Client{}, invalidf("client id must be provided")
	}
	if strings.TrimSpace(c.Name) == "" {
		return model.Client{}, invalidf("client name must be provided")
	}
	if c.Email != "" {
		if _, err := mail.ParseAddress(c.Email); err != nil {
			return model.Client{}, invalidf("malformed email %q", c.Email)
		}
	}

	c.Status = model.ClientActive
	c.DateCreated = s.Now().UTC()
	if err := s.clients.Create(ctx, c); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return model.Client{}, fmt.Errorf("%w: email %s is already registered", ErrConflict, c.Email)
		}
		return model.Client{}, storeErr(err)
	}
	return c, nil
}

// Get returns one client.
func (s *ClientService) Get(ctx context.Context, id string) (model.Client, error) {
	c, err := s.clients.GetByID(ctx, id)
	if err != nil {
		return model.Client{}, storeErr(err)
	}
	return c, nil
}

// List returns every client.
func (s *ClientService) List(ctx context.Context) ([]model.Client, error) {
	list, err := s.clients.List(ctx)
	return list, storeErr(err)
}

// ListCreatedWithinDays returns clients registered within the last
// given number of days.
func (s *ClientService) ListCreatedWithinDays(ctx context.Context, days int) ([]model.Client, error) {
	if days < 0 {
		return nil, invalidf("days must not be negative")
	}
	cutoff := s.Now().UTC().AddDate(0, 0, -days)
	list, err := s.clients.ListCreatedSince(ctx, cutoff)
	return list, storeErr(err)
}

// UpdateName renames the client and rewrites the name snapshot on all
// of their reservations.
func (s *ClientService) UpdateName(ctx context.Context, id, name string) error {
	if strings.TrimSpace(name) == "" {
		return invalidf("client name must be provided")
	}
	if _, err := s.clients.GetByID(ctx, id); err != nil {
		return storeErr(err)
	}
	if err := s.clients.SetName(ctx, id, name); err != nil {
		return storeErr(err)
	}
	return s.reservations.PropagateRename(ctx, id, name)
}

// UpdateEmail changes the client's email after checking it is not held
// by another client.
func (s *ClientService) UpdateEmail(ctx context.Context, id, email string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return invalidf("malformed email %q", email)
	}
	if _, err := s.clients.GetByID(ctx, id); err != nil {
		return storeErr(err)
	}

	existing, err := s.clients.GetByEmail(ctx, email)
	switch {
	case err == nil && existing.ID != id:
		return fmt.Errorf("%w: email %s is already registered", ErrConflict, email)
	case err != nil && !errors.Is(err, repository.ErrNotFound):
		return storeErr(err)
	}
	return storeErr(s.clients.SetEmail(ctx, id, email))
}

// UpdatePhone changes the client's phone number.
func (s *ClientService) UpdatePhone(ctx context.Context, id, phone string) error {
	if strings.TrimSpace(phone) == "" {
		return invalidf("phone must be provided")
	}
	if _, err := s.clients.GetByID(ctx, id); err != nil {
		return storeErr(err)
	}
	return storeErr(s.clients.SetPhone(ctx, id, phone))
}

// Exclude flags the client as excluded. Excluded clients cannot take a
// cabin another overlapping reservation already holds.
func (s *ClientService) Exclude(ctx context.Context, id string) error {
	if _, err := s.clients.GetByID(ctx, id); err != nil {
		return storeErr(err)
	}
	return storeErr(s.clients.SetStatus(ctx, id, model.ClientExcluded))
}

// Delete removes the client. Their reservations and audit entries are
// left in place.
func (s *ClientService) Delete(ctx context.Context, id string) error {
	return storeErr(s.clients.Delete(ctx, id))
}
