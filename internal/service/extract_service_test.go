package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTrail(t *testing.T) (*ExtractService, *fakeExtracts) {
	t.Helper()
	store := newFakeExtracts()
	svc := NewExtractService(newFakeSequences(), store, time.UTC)
	svc.Now = func() time.Time { return day(2025, time.March, 1) }
	return svc, store
}

func TestExtractCreateAssignsIDs(t *testing.T) {
	svc, _ := newTrail(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, "Payment of 100.00 for reservation R1", 100, "C1")
	require.NoError(t, err)
	assert.Equal(t, "E1", first.ID)
	assert.Equal(t, day(2025, time.March, 1), first.DateCreated)

	second, err := svc.Create(ctx, "Refund", 50, "C2")
	require.NoError(t, err)
	assert.Equal(t, "E2", second.ID)

	_, err = svc.Create(ctx, "  ", 10, "C1")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestExtractRecordNeverFails(t *testing.T) {
	store := newFakeExtracts()
	seq := newFakeSequences()
	seq.fail = true
	svc := NewExtractService(seq, store, time.UTC)

	// Must not panic or surface the storage failure.
	svc.Record(context.Background(), "Payment of 100.00 for reservation R1", 100, "C1")

	entries, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestExtractQueries(t *testing.T) {
	svc, _ := newTrail(t)
	ctx := context.Background()

	for i := 0; i < 60; i++ {
		clientID := "C1"
		if i%2 == 0 {
			clientID = "C2"
		}
		_, err := svc.Create(ctx, "Payment for reservation", float64(i), clientID)
		require.NoError(t, err)
	}

	recent, err := svc.Last50(ctx)
	require.NoError(t, err)
	require.Len(t, recent, 50)
	assert.Equal(t, "E60", recent[0].ID)

	byClient, err := svc.ByClient(ctx, "C1")
	require.NoError(t, err)
	assert.Len(t, byClient, 30)

	recentByClient, err := svc.Last50ByClient(ctx, "C1")
	require.NoError(t, err)
	assert.Len(t, recentByClient, 30)

	_, err = svc.ByClient(ctx, "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestExtractSearch(t *testing.T) {
	svc, _ := newTrail(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "Payment of 100.00 for reservation R1", 100, "C1")
	require.NoError(t, err)
	_, err = svc.Create(ctx, "Total price changed from 500.00 to 450.00 for reservation R1", 450, "C1")
	require.NoError(t, err)

	hits, err := svc.Search(ctx, "PAYMENT")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "E1", hits[0].ID)

	_, err = svc.Search(ctx, " ")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestExtractDelete(t *testing.T) {
	svc, _ := newTrail(t)
	ctx := context.Background()

	entry, err := svc.Create(ctx, "Payment", 10, "C1")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, entry.ID))
	_, err = svc.GetByID(ctx, entry.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
