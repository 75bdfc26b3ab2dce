package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/iliyamo/cabin-reservation/internal/model"
)

// ReservationService drives the reservation lifecycle: creation with
// collision-free ids, status transitions, payments and the
// cancel-and-refund flow. Cross-request coordination is delegated to
// the store's atomic single-row writes; two concurrent creations for
// the same cabin and window can both pass the conflict check, which is
// an accepted property of the design.
type ReservationService struct {
	seq          SequenceStore
	reservations ReservationStore
	clients      ClientStore
	balances     *BalanceService
	recorder     Recorder

	// Now is the clock used for creation timestamps. Tests override it.
	Now func() time.Time
}

// NewReservationService wires the reservation engine.
func NewReservationService(seq SequenceStore, reservations ReservationStore, clients ClientStore, balances *BalanceService, recorder Recorder) *ReservationService {
	return &ReservationService{
		seq:          seq,
		reservations: reservations,
		clients:      clients,
		balances:     balances,
		recorder:     recorder,
		Now:          time.Now,
	}
}

// reservationCounter names the counter backing reservation ids.
const reservationCounter = "Reserva"

// Create validates and persists a new reservation. The id is assigned
// from the shared counter; if the counter cannot be reached the
// creation is aborted before any row is written. A reservation created
// with an initial payment skips Pending and starts Confirmed.
//
// The conflict check intentionally gates on the resolved client's
// status flag: overlapping reservations sharing a cabin are rejected
// only when the client's status equals 2. Otherwise the insert
// proceeds, double booking included. Callers needing strict
// exclusivity must add a storage-level constraint.
func (s *ReservationService) Create(ctx context.Context, res model.Reservation) (model.Reservation, error) {
	if strings.TrimSpace(res.ClientID) == "" {
		return model.Reservation{}, invalidf("client id must be provided")
	}
	if !res.Checkin.Before(res.Checkout) {
		return model.Reservation{}, invalidf("checkin must precede checkout")
	}

	client, err := s.clients.GetByID(ctx, res.ClientID)
	if err != nil {
		return model.Reservation{}, storeErr(err)
	}
	res.ClientName = client.Name

	n, err := s.seq.Next(ctx, reservationCounter)
	if err != nil {
		return model.Reservation{}, fmt.Errorf("%w: allocating reservation id: %v", ErrStorageUnavailable, err)
	}
	res.ID = fmt.Sprintf("R%d", n)
	res.DateCreated = s.Now().UTC()

	if res.Status == 0 {
		res.Status = model.StatusPending
	}
	if res.AmountPaid > 0 {
		res.Status = model.StatusConfirmed
	}

	overlapping, err := s.reservations.FindOverlapping(ctx, res.Checkin, res.Checkout)
	if err != nil {
		return model.Reservation{}, storeErr(err)
	}
	for _, existing := range overlapping {
		if existing.SharesCabin(res.CabinNames) && client.Status == model.ClientExcluded {
			return model.Reservation{}, fmt.Errorf("%w: cabin already booked for the requested period", ErrConflict)
		}
	}

	if err := s.reservations.Insert(ctx, &res); err != nil {
		return model.Reservation{}, storeErr(err)
	}
	return res, nil
}

// CreateWithBalance folds the client's entire spendable balance into
// the reservation's paid amount, debits it to zero and creates the
// reservation already confirmed. The debit and the insert are separate
// writes; when the insert fails after the debit the error says so, and
// the caller must re-credit or retry the insert.
func (s *ReservationService) CreateWithBalance(ctx context.Context, res model.Reservation) (model.Reservation, error) {
	if strings.TrimSpace(res.ClientID) == "" {
		return model.Reservation{}, invalidf("client id must be provided")
	}
	client, err := s.clients.GetByID(ctx, res.ClientID)
	if err != nil {
		return model.Reservation{}, storeErr(err)
	}

	res.AmountPaid += client.Balance
	res.Status = model.StatusConfirmed

	if client.Balance > 0 {
		if err := s.balances.Debit(ctx, client.ID, client.Balance); err != nil {
			return model.Reservation{}, fmt.Errorf("debiting balance: %w", err)
		}
	}
	created, err := s.Create(ctx, res)
	if err != nil {
		return model.Reservation{}, fmt.Errorf("reservation insert failed after balance debit: %w", err)
	}
	return created, nil
}

// GetByID returns one reservation.
func (s *ReservationService) GetByID(ctx context.Context, id string) (model.Reservation, error) {
	res, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		return model.Reservation{}, storeErr(err)
	}
	return res, nil
}

// GetAll returns every reservation.
func (s *ReservationService) GetAll(ctx context.Context) ([]model.Reservation, error) {
	list, err := s.reservations.GetAll(ctx)
	return list, storeErr(err)
}

// GetByClient returns every reservation belonging to the client.
func (s *ReservationService) GetByClient(ctx context.Context, clientID string) ([]model.Reservation, error) {
	if strings.TrimSpace(clientID) == "" {
		return nil, invalidf("client id must be provided")
	}
	list, err := s.reservations.FindByClient(ctx, clientID)
	return list, storeErr(err)
}

// GetByPeriod returns reservations of any status overlapping
// [start, end).
func (s *ReservationService) GetByPeriod(ctx context.Context, start, end time.Time) ([]model.Reservation, error) {
	list, err := s.reservations.FindOverlapping(ctx, start, end)
	return list, storeErr(err)
}

// SetStatus overwrites the reservation status. Any status may follow
// any other; there is deliberately no transition table, only the range
// check. Tightening this is a product decision, not a code one.
func (s *ReservationService) SetStatus(ctx context.Context, id string, status int) error {
	if status < model.StatusPending || status > model.StatusCancelled {
		return invalidf("status must be between 1 and 4")
	}
	if _, err := s.reservations.GetByID(ctx, id); err != nil {
		return storeErr(err)
	}
	return storeErr(s.reservations.UpdateStatus(ctx, id, status))
}

// AddPayment accumulates a payment onto the reservation and forces the
// status to Confirmed. The audit entry is fire-and-forget: a failed
// extract write never aborts the payment.
func (s *ReservationService) AddPayment(ctx context.Context, id string, amount float64) (model.Reservation, error) {
	if amount <= 0 {
		return model.Reservation{}, invalidf("payment must be greater than zero")
	}
	res, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		return model.Reservation{}, storeErr(err)
	}

	res.AmountPaid += amount
	res.Status = model.StatusConfirmed
	if err := s.reservations.UpdatePayment(ctx, res.ID, res.AmountPaid, res.Status); err != nil {
		return model.Reservation{}, storeErr(err)
	}

	s.recorder.Record(ctx,
		fmt.Sprintf("Payment of %.2f for reservation %s", amount, res.ID),
		res.AmountPaid, res.ClientID)
	return res, nil
}

// EditTotalPrice overwrites the agreed total and records the change in
// the audit trail. Last write wins; concurrent edits race.
func (s *ReservationService) EditTotalPrice(ctx context.Context, id string, newTotal float64) (model.Reservation, error) {
	if newTotal <= 0 {
		return model.Reservation{}, invalidf("total price must be greater than zero")
	}
	res, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		return model.Reservation{}, storeErr(err)
	}

	oldTotal := res.TotalPrice
	res.TotalPrice = newTotal
	if err := s.reservations.UpdateTotalPrice(ctx, res.ID, newTotal); err != nil {
		return model.Reservation{}, storeErr(err)
	}

	s.recorder.Record(ctx,
		fmt.Sprintf("Total price changed from %.2f to %.2f for reservation %s", oldTotal, newTotal, res.ID),
		newTotal, res.ClientID)
	return res, nil
}

// CancelAndRefund credits the reservation's total back to the client
// and marks the reservation cancelled. The two writes are not
// transactional: the error identifies which step failed so the caller
// can retry just that half. Retrying after a failed status write
// re-enters with the credit already applied; callers should check the
// status before re-invoking.
func (s *ReservationService) CancelAndRefund(ctx context.Context, id string) error {
	res, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		return storeErr(err)
	}
	if err := s.balances.Credit(ctx, res.ClientID, res.TotalPrice); err != nil {
		return fmt.Errorf("refund step failed: %w", err)
	}
	if err := s.reservations.UpdateStatus(ctx, res.ID, model.StatusCancelled); err != nil {
		return fmt.Errorf("cancel step failed after refund was credited: %w", storeErr(err))
	}
	return nil
}

// Delete removes a reservation unconditionally. Balances are not
// rolled back.
func (s *ReservationService) Delete(ctx context.Context, id string) error {
	return storeErr(s.reservations.Delete(ctx, id))
}

// DeleteAll wipes every reservation.
func (s *ReservationService) DeleteAll(ctx context.Context) error {
	return storeErr(s.reservations.DeleteAll(ctx))
}

// PropagateRename rewrites the client-name snapshot on all of the
// client's reservations. The client-update pathway must call this;
// nothing else keeps the snapshots consistent.
func (s *ReservationService) PropagateRename(ctx context.Context, clientID, newName string) error {
	if strings.TrimSpace(clientID) == "" {
		return invalidf("client id must be provided")
	}
	return storeErr(s.reservations.UpdateClientName(ctx, clientID, newName))
}
