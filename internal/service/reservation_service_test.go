package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cabin-reservation/internal/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newEngine(t *testing.T, clients ...model.Client) (*ReservationService, *fakeReservations, *fakeClients, *recorderSpy) {
	t.Helper()
	if len(clients) == 0 {
		clients = []model.Client{{ID: "C1", Name: "Ana", Status: model.ClientActive}}
	}
	store := newFakeReservations()
	clientStore := newFakeClients(clients...)
	spy := &recorderSpy{}
	svc := NewReservationService(newFakeSequences(), store, clientStore, NewBalanceService(clientStore), spy)
	svc.Now = func() time.Time { return day(2025, time.March, 1) }
	return svc, store, clientStore, spy
}

func TestCreateAssignsSequentialIDs(t *testing.T) {
	svc, _, _, _ := newEngine(t)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		res, err := svc.Create(ctx, model.Reservation{
			ClientID: "C1",
			Checkin:  day(2025, time.June, 1),
			Checkout: day(2025, time.June, 5),
		})
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("R%d", i), res.ID)
		assert.Equal(t, "Ana", res.ClientName)
		assert.Equal(t, model.StatusPending, res.Status)
		assert.Equal(t, day(2025, time.March, 1), res.DateCreated)
	}
}

func TestCreateValidation(t *testing.T) {
	svc, _, _, _ := newEngine(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, model.Reservation{
		Checkin:  day(2025, time.June, 1),
		Checkout: day(2025, time.June, 5),
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(ctx, model.Reservation{
		ClientID: "C1",
		Checkin:  day(2025, time.June, 5),
		Checkout: day(2025, time.June, 5),
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(ctx, model.Reservation{
		ClientID: "missing",
		Checkin:  day(2025, time.June, 1),
		Checkout: day(2025, time.June, 5),
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateWithPaymentStartsConfirmed(t *testing.T) {
	svc, _, _, _ := newEngine(t)

	res, err := svc.Create(context.Background(), model.Reservation{
		ClientID:   "C1",
		AmountPaid: 50,
		Checkin:    day(2025, time.June, 1),
		Checkout:   day(2025, time.June, 5),
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusConfirmed, res.Status)
}

func TestCreateConflictGateOnlyForExcludedClients(t *testing.T) {
	active := model.Client{ID: "C1", Name: "Ana", Status: model.ClientActive}
	excluded := model.Client{ID: "C2", Name: "Bruno", Status: model.ClientExcluded}
	svc, _, _, _ := newEngine(t, active, excluded)
	ctx := context.Background()

	_, err := svc.Create(ctx, model.Reservation{
		ClientID:   "C1",
		CabinNames: []string{"Horizonte"},
		Checkin:    day(2025, time.June, 1),
		Checkout:   day(2025, time.June, 10),
	})
	require.NoError(t, err)

	// An active client may double book the same cabin and window.
	_, err = svc.Create(ctx, model.Reservation{
		ClientID:   "C1",
		CabinNames: []string{"horizonte "},
		Checkin:    day(2025, time.June, 3),
		Checkout:   day(2025, time.June, 7),
	})
	assert.NoError(t, err)

	// An excluded client is rejected on an overlapping shared cabin.
	_, err = svc.Create(ctx, model.Reservation{
		ClientID:   "C2",
		CabinNames: []string{"Horizonte"},
		Checkin:    day(2025, time.June, 3),
		Checkout:   day(2025, time.June, 7),
	})
	assert.ErrorIs(t, err, ErrConflict)

	// Disjoint cabin sets never conflict, even for excluded clients.
	_, err = svc.Create(ctx, model.Reservation{
		ClientID:   "C2",
		CabinNames: []string{"Mirante"},
		Checkin:    day(2025, time.June, 3),
		Checkout:   day(2025, time.June, 7),
	})
	assert.NoError(t, err)

	// Back-to-back windows share the boundary instant but not a night.
	_, err = svc.Create(ctx, model.Reservation{
		ClientID:   "C2",
		CabinNames: []string{"Horizonte"},
		Checkin:    day(2025, time.June, 10),
		Checkout:   day(2025, time.June, 12),
	})
	assert.NoError(t, err)
}

func TestCreateEmptyCabinSetNeverConflicts(t *testing.T) {
	excluded := model.Client{ID: "C2", Name: "Bruno", Status: model.ClientExcluded}
	svc, _, _, _ := newEngine(t, excluded)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := svc.Create(ctx, model.Reservation{
			ClientID: "C2",
			Checkin:  day(2025, time.June, 1),
			Checkout: day(2025, time.June, 5),
		})
		assert.NoError(t, err)
	}
}

func TestCreateAbortsWhenSequenceUnavailable(t *testing.T) {
	clientStore := newFakeClients(model.Client{ID: "C1", Name: "Ana", Status: model.ClientActive})
	seq := newFakeSequences()
	seq.fail = true
	store := newFakeReservations()
	svc := NewReservationService(seq, store, clientStore, NewBalanceService(clientStore), &recorderSpy{})

	_, err := svc.Create(context.Background(), model.Reservation{
		ClientID: "C1",
		Checkin:  day(2025, time.June, 1),
		Checkout: day(2025, time.June, 5),
	})
	assert.ErrorIs(t, err, ErrStorageUnavailable)
	all, _ := store.GetAll(context.Background())
	assert.Empty(t, all)
}

func TestConcurrentCreatesGetDistinctIDs(t *testing.T) {
	svc, _, _, _ := newEngine(t)
	ctx := context.Background()

	const n = 100
	ids := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := svc.Create(ctx, model.Reservation{
				ClientID: "C1",
				Checkin:  day(2025, time.June, 1),
				Checkout: day(2025, time.June, 5),
			})
			if assert.NoError(t, err) {
				ids <- res.ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool, n)
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
}

func TestCreateWithBalanceFoldsAndDebits(t *testing.T) {
	client := model.Client{ID: "C1", Name: "Ana", Status: model.ClientActive, Balance: 300}
	svc, _, clientStore, _ := newEngine(t, client)

	res, err := svc.CreateWithBalance(context.Background(), model.Reservation{
		ClientID:   "C1",
		TotalPrice: 500,
		AmountPaid: 100,
		Checkin:    day(2025, time.June, 1),
		Checkout:   day(2025, time.June, 5),
	})
	require.NoError(t, err)
	assert.Equal(t, 400.0, res.AmountPaid)
	assert.Equal(t, model.StatusConfirmed, res.Status)

	updated, err := clientStore.GetByID(context.Background(), "C1")
	require.NoError(t, err)
	assert.Equal(t, 0.0, updated.Balance)
}

func TestSetStatusPermissiveRange(t *testing.T) {
	svc, _, _, _ := newEngine(t)
	ctx := context.Background()
	res, err := svc.Create(ctx, model.Reservation{
		ClientID: "C1",
		Checkin:  day(2025, time.June, 1),
		Checkout: day(2025, time.June, 5),
	})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.SetStatus(ctx, res.ID, 0), ErrValidation)
	assert.ErrorIs(t, svc.SetStatus(ctx, res.ID, 5), ErrValidation)
	assert.ErrorIs(t, svc.SetStatus(ctx, "R999", model.StatusConfirmed), ErrNotFound)

	// Any in-range transition is accepted, including backwards moves.
	require.NoError(t, svc.SetStatus(ctx, res.ID, model.StatusCancelled))
	require.NoError(t, svc.SetStatus(ctx, res.ID, model.StatusPending))

	got, err := svc.GetByID(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, got.Status)
}

func TestAddPaymentAccumulatesAndConfirms(t *testing.T) {
	svc, _, _, spy := newEngine(t)
	ctx := context.Background()
	res, err := svc.Create(ctx, model.Reservation{
		ClientID:   "C1",
		TotalPrice: 500,
		Checkin:    day(2025, time.June, 1),
		Checkout:   day(2025, time.June, 5),
	})
	require.NoError(t, err)

	_, err = svc.AddPayment(ctx, res.ID, 0)
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.AddPayment(ctx, res.ID, -10)
	assert.ErrorIs(t, err, ErrValidation)

	first, err := svc.AddPayment(ctx, res.ID, 200)
	require.NoError(t, err)
	assert.Equal(t, 200.0, first.AmountPaid)
	assert.Equal(t, model.StatusConfirmed, first.Status)

	second, err := svc.AddPayment(ctx, res.ID, 150)
	require.NoError(t, err)
	assert.Equal(t, 350.0, second.AmountPaid)

	require.Len(t, spy.entries, 2)
	assert.Contains(t, spy.entries[0], res.ID)
}

func TestEditTotalPriceRecordsChange(t *testing.T) {
	svc, _, _, spy := newEngine(t)
	ctx := context.Background()
	res, err := svc.Create(ctx, model.Reservation{
		ClientID:   "C1",
		TotalPrice: 500,
		Checkin:    day(2025, time.June, 1),
		Checkout:   day(2025, time.June, 5),
	})
	require.NoError(t, err)

	_, err = svc.EditTotalPrice(ctx, res.ID, 0)
	assert.ErrorIs(t, err, ErrValidation)

	updated, err := svc.EditTotalPrice(ctx, res.ID, 450)
	require.NoError(t, err)
	assert.Equal(t, 450.0, updated.TotalPrice)
	require.Len(t, spy.entries, 1)
	assert.Contains(t, spy.entries[0], "500.00")
	assert.Contains(t, spy.entries[0], "450.00")
}

func TestCancelAndRefund(t *testing.T) {
	client := model.Client{ID: "C1", Name: "Ana", Status: model.ClientActive, Balance: 20}
	svc, _, clientStore, _ := newEngine(t, client)
	ctx := context.Background()

	res, err := svc.Create(ctx, model.Reservation{
		ClientID:   "C1",
		TotalPrice: 300,
		AmountPaid: 300,
		Checkin:    day(2025, time.June, 1),
		Checkout:   day(2025, time.June, 5),
	})
	require.NoError(t, err)

	require.NoError(t, svc.CancelAndRefund(ctx, res.ID))

	got, err := svc.GetByID(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCancelled, got.Status)

	updated, err := clientStore.GetByID(ctx, "C1")
	require.NoError(t, err)
	assert.Equal(t, 320.0, updated.Balance)

	assert.ErrorIs(t, svc.CancelAndRefund(ctx, "R999"), ErrNotFound)
}

func TestPropagateRename(t *testing.T) {
	svc, store, _, _ := newEngine(t)
	ctx := context.Background()
	res, err := svc.Create(ctx, model.Reservation{
		ClientID: "C1",
		Checkin:  day(2025, time.June, 1),
		Checkout: day(2025, time.June, 5),
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana", res.ClientName)

	require.NoError(t, svc.PropagateRename(ctx, "C1", "Ana Clara"))
	got, err := store.GetByID(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana Clara", got.ClientName)

	assert.ErrorIs(t, svc.PropagateRename(ctx, " ", "x"), ErrValidation)
}
