package service

import (
	"context"
	"time"

	"github.com/iliyamo/cabin-reservation/internal/model"
)

// The store interfaces below are implemented by the MySQL repositories.
// They return repository sentinel errors for domain conditions and raw
// driver errors otherwise; the engine maps both through storeErr.

// SequenceStore issues strictly increasing integers per named counter,
// atomically across concurrent callers and service instances.
type SequenceStore interface {
	Next(ctx context.Context, name string) (int64, error)
}

// ReservationStore persists reservation records and their cabin sets.
type ReservationStore interface {
	Insert(ctx context.Context, res *model.Reservation) error
	GetByID(ctx context.Context, id string) (model.Reservation, error)
	GetAll(ctx context.Context) ([]model.Reservation, error)
	FindOverlapping(ctx context.Context, start, end time.Time) ([]model.Reservation, error)
	FindOverlappingConfirmed(ctx context.Context, start, end time.Time) ([]model.Reservation, error)
	FindConfirmedByYear(ctx context.Context, year int) ([]model.Reservation, error)
	FindSettledByMonth(ctx context.Context, year int, month time.Month) ([]model.Reservation, error)
	FindSettledByYear(ctx context.Context, year int) ([]model.Reservation, error)
	FindByClient(ctx context.Context, clientID string) ([]model.Reservation, error)
	CountOverlapping(ctx context.Context, start, end time.Time) (int64, error)
	CountByStatus(ctx context.Context, status int) (int64, error)
	UpdateStatus(ctx context.Context, id string, status int) error
	UpdatePayment(ctx context.Context, id string, amountPaid float64, status int) error
	UpdateTotalPrice(ctx context.Context, id string, total float64) error
	UpdateClientName(ctx context.Context, clientID, newName string) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}

// CabinStore persists the cabin catalog.
type CabinStore interface {
	List(ctx context.Context) ([]model.Cabin, error)
	GetByName(ctx context.Context, name string) (model.Cabin, error)
	Create(ctx context.Context, c model.Cabin) error
	UpdatePrice(ctx context.Context, name string, price float64) error
	Delete(ctx context.Context, name string) error
}

// ClientStore reads and mutates the externally owned client aggregate.
type ClientStore interface {
	Create(ctx context.Context, c model.Client) error
	GetByID(ctx context.Context, id string) (model.Client, error)
	GetByEmail(ctx context.Context, email string) (model.Client, error)
	List(ctx context.Context) ([]model.Client, error)
	ListCreatedSince(ctx context.Context, cutoff time.Time) ([]model.Client, error)
	SetBalance(ctx context.Context, id string, balance float64) error
	SetName(ctx context.Context, id, name string) error
	SetEmail(ctx context.Context, id, email string) error
	SetPhone(ctx context.Context, id, phone string) error
	SetStatus(ctx context.Context, id string, status int) error
	Delete(ctx context.Context, id string) error
}

// ExtractStore persists audit-trail entries.
type ExtractStore interface {
	Insert(ctx context.Context, e model.Extract) error
	GetByID(ctx context.Context, id string) (model.Extract, error)
	List(ctx context.Context) ([]model.Extract, error)
	LastN(ctx context.Context, n int) ([]model.Extract, error)
	LastNByClient(ctx context.Context, clientID string, n int) ([]model.Extract, error)
	ByClient(ctx context.Context, clientID string) ([]model.Extract, error)
	Search(ctx context.Context, needle string) ([]model.Extract, error)
	Delete(ctx context.Context, id string) error
}

// Recorder is the fire-and-forget audit hook used by the reservation
// lifecycle. Implementations must never fail the caller: errors are
// logged and swallowed.
type Recorder interface {
	Record(ctx context.Context, description string, amount float64, clientID string)
}
