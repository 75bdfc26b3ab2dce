package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cabin-reservation/internal/model"
)

func availabilityFixture(reservations ...model.Reservation) *AvailabilityService {
	store := newFakeReservations()
	for i := range reservations {
		_ = store.Insert(context.Background(), &reservations[i])
	}
	cabins := newFakeCabins(
		model.Cabin{Name: "Horizonte"},
		model.Cabin{Name: "Mirante"},
		model.Cabin{Name: "Lagoa"},
	)
	return NewAvailabilityService(store, cabins)
}

func TestAvailabilityAllFree(t *testing.T) {
	svc := availabilityFixture()

	got, err := svc.Availability(context.Background(), day(2025, time.June, 1), day(2025, time.June, 5))
	require.NoError(t, err)
	require.Len(t, got, 3)
	for _, entry := range got {
		assert.Equal(t, model.CabinFree, entry.Status)
		assert.Empty(t, entry.ClientName)
	}
}

func TestAvailabilityOccupiedAndFree(t *testing.T) {
	svc := availabilityFixture(model.Reservation{
		ID:         "R1",
		ClientName: "Ana",
		Status:     model.StatusConfirmed,
		CabinNames: []string{"horizonte"},
		Checkin:    day(2025, time.June, 2),
		Checkout:   day(2025, time.June, 8),
	})

	got, err := svc.Availability(context.Background(), day(2025, time.June, 4), day(2025, time.June, 6))
	require.NoError(t, err)
	byName := indexAvailability(got)

	assert.Equal(t, model.CabinOccupied, byName["Horizonte"].Status)
	assert.Equal(t, "Ana", byName["Horizonte"].ClientName)
	assert.Equal(t, "R1", byName["Horizonte"].ReservationID)
	assert.Equal(t, model.CabinFree, byName["Mirante"].Status)
	assert.Equal(t, model.CabinFree, byName["Lagoa"].Status)
}

func TestAvailabilityIgnoresNonConfirmed(t *testing.T) {
	svc := availabilityFixture(
		model.Reservation{
			ID: "R1", Status: model.StatusPending, CabinNames: []string{"Horizonte"},
			Checkin: day(2025, time.June, 1), Checkout: day(2025, time.June, 10),
		},
		model.Reservation{
			ID: "R2", Status: model.StatusCancelled, CabinNames: []string{"Mirante"},
			Checkin: day(2025, time.June, 1), Checkout: day(2025, time.June, 10),
		},
	)

	got, err := svc.Availability(context.Background(), day(2025, time.June, 4), day(2025, time.June, 6))
	require.NoError(t, err)
	for _, entry := range got {
		assert.Equal(t, model.CabinFree, entry.Status)
	}
}

func TestAvailabilityCheckoutToday(t *testing.T) {
	svc := availabilityFixture(model.Reservation{
		ID:         "R1",
		ClientName: "Ana",
		Status:     model.StatusConfirmed,
		CabinNames: []string{"Horizonte"},
		Checkin:    day(2025, time.June, 1),
		Checkout:   time.Date(2025, time.June, 4, 10, 30, 0, 0, time.UTC),
	})

	// Window starting on the checkout date reports a same-day turnover.
	got, err := svc.Availability(context.Background(), day(2025, time.June, 4), day(2025, time.June, 6))
	require.NoError(t, err)
	byName := indexAvailability(got)
	assert.Equal(t, model.CabinCheckoutToday, byName["Horizonte"].Status)
	assert.Equal(t, "Ana", byName["Horizonte"].ClientName)
	assert.Equal(t, "R1", byName["Horizonte"].ReservationID)
}

func TestAvailabilityCheckoutTodayIsPerCabin(t *testing.T) {
	// One reservation checks out on the window start in Horizonte;
	// another fully covers the window in Mirante. The turnover state
	// must not leak onto Mirante.
	svc := availabilityFixture(
		model.Reservation{
			ID: "R1", ClientName: "Ana", Status: model.StatusConfirmed,
			CabinNames: []string{"Horizonte"},
			Checkin:    day(2025, time.June, 1),
			Checkout:   time.Date(2025, time.June, 4, 11, 0, 0, 0, time.UTC),
		},
		model.Reservation{
			ID: "R2", ClientName: "Bruno", Status: model.StatusConfirmed,
			CabinNames: []string{"Mirante"},
			Checkin:    day(2025, time.June, 2), Checkout: day(2025, time.June, 9),
		},
	)

	got, err := svc.Availability(context.Background(), day(2025, time.June, 4), day(2025, time.June, 6))
	require.NoError(t, err)
	byName := indexAvailability(got)

	assert.Equal(t, model.CabinCheckoutToday, byName["Horizonte"].Status)
	assert.Equal(t, "Ana", byName["Horizonte"].ClientName)
	assert.Equal(t, model.CabinOccupied, byName["Mirante"].Status)
	assert.Equal(t, "Bruno", byName["Mirante"].ClientName)
	assert.Equal(t, model.CabinFree, byName["Lagoa"].Status)
}

func TestAvailabilityEachCabinListedOnce(t *testing.T) {
	svc := availabilityFixture(
		model.Reservation{
			ID: "R1", ClientName: "Ana", Status: model.StatusConfirmed,
			CabinNames: []string{"Horizonte"},
			Checkin:    day(2025, time.June, 1), Checkout: day(2025, time.June, 5),
		},
		model.Reservation{
			ID: "R2", ClientName: "Bruno", Status: model.StatusConfirmed,
			CabinNames: []string{"Horizonte"},
			Checkin:    day(2025, time.June, 5), Checkout: day(2025, time.June, 9),
		},
	)

	got, err := svc.Availability(context.Background(), day(2025, time.June, 1), day(2025, time.June, 9))
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func indexAvailability(items []model.CabinAvailability) map[string]model.CabinAvailability {
	out := make(map[string]model.CabinAvailability, len(items))
	for _, item := range items {
		out[item.Name] = item
	}
	return out
}
