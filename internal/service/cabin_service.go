package service

import (
	"context"
	"strings"

	"github.com/iliyamo/cabin-reservation/internal/model"
)

// CabinService owns the cabin catalog. Cabins are keyed by name and
// prices apply to new quotes only, existing reservations keep their
// agreed totals.
type CabinService struct {
	cabins CabinStore
}

// NewCabinService wires the cabin catalog.
func NewCabinService(cabins CabinStore) *CabinService {
	return &CabinService{cabins: cabins}
}

// Create adds a cabin to the catalog.
func (s *CabinService) Create(ctx context.Context, c model.Cabin) error {
	if strings.TrimSpace(c.Name) == "" {
		return invalidf("cabin name must be provided")
	}
	if c.PersonQty <= 0 {
		return invalidf("person capacity must be greater than zero")
	}
	if c.CurrentPrice < 0 {
		return invalidf("price must not be negative")
	}
	return storeErr(s.cabins.Create(ctx, c))
}

// List returns the whole catalog.
func (s *CabinService) List(ctx context.Context) ([]model.Cabin, error) {
	list, err := s.cabins.List(ctx)
	return list, storeErr(err)
}

// Get returns one cabin by name.
func (s *CabinService) Get(ctx context.Context, name string) (model.Cabin, error) {
	c, err := s.cabins.GetByName(ctx, name)
	if err != nil {
		return model.Cabin{}, storeErr(err)
	}
	return c, nil
}

// UpdatePrice changes the nightly price for future quotes.
func (s *CabinService) UpdatePrice(ctx context.Context, name string, price float64) error {
	if price < 0 {
		return invalidf("price must not be negative")
	}
	if _, err := s.cabins.GetByName(ctx, name); err != nil {
		return storeErr(err)
	}
	return storeErr(s.cabins.UpdatePrice(ctx, name, price))
}

// Delete removes a cabin from the catalog. Existing reservations keep
// referencing the name.
func (s *CabinService) Delete(ctx context.Context, name string) error {
	return storeErr(s.cabins.Delete(ctx, name))
}
