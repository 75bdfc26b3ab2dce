package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/iliyamo/cabin-reservation/internal/model"
)

// ExtractService maintains the financial audit trail. Entries are
// append-mostly; the write path is also exposed through Record, the
// fire-and-forget hook the reservation lifecycle calls.
type ExtractService struct {
	seq      SequenceStore
	extracts ExtractStore
	loc      *time.Location

	// Now is the clock used for entry timestamps. Tests override it.
	Now func() time.Time
}

// NewExtractService wires the audit trail.
func NewExtractService(seq SequenceStore, extracts ExtractStore, loc *time.Location) *ExtractService {
	return &ExtractService{seq: seq, extracts: extracts, loc: loc, Now: time.Now}
}

// extractCounter names the counter backing extract ids.
const extractCounter = "extracts"

// Create persists a new audit entry with an id from the shared counter
// and a creation timestamp in the business time zone.
func (s *ExtractService) Create(ctx context.Context, description string, amount float64, clientID string) (model.Extract, error) {
	if strings.TrimSpace(description) == "" {
		return model.Extract{}, invalidf("description must be provided")
	}

	n, err := s.seq.Next(ctx, extractCounter)
	if err != nil {
		return model.Extract{}, fmt.Errorf("%w: allocating extract id: %v", ErrStorageUnavailable, err)
	}

	entry := model.Extract{
		ID:          fmt.Sprintf("E%d", n),
		Description: description,
		Amount:      amount,
		ClientID:    clientID,
		DateCreated: s.Now().In(s.loc),
	}
	if err := s.extracts.Insert(ctx, entry); err != nil {
		return model.Extract{}, storeErr(err)
	}
	return entry, nil
}

// Record implements the Recorder hook. Failures are logged and
// swallowed so a broken audit trail never blocks a payment.
func (s *ExtractService) Record(ctx context.Context, description string, amount float64, clientID string) {
	if _, err := s.Create(ctx, description, amount, clientID); err != nil {
		log.Printf("extracts: audit entry dropped: %v", err)
	}
}

// GetByID returns one audit entry.
func (s *ExtractService) GetByID(ctx context.Context, id string) (model.Extract, error) {
	entry, err := s.extracts.GetByID(ctx, id)
	if err != nil {
		return model.Extract{}, storeErr(err)
	}
	return entry, nil
}

// List returns every audit entry.
func (s *ExtractService) List(ctx context.Context) ([]model.Extract, error) {
	list, err := s.extracts.List(ctx)
	return list, storeErr(err)
}

// Last50 returns the 50 most recent entries, newest first.
func (s *ExtractService) Last50(ctx context.Context) ([]model.Extract, error) {
	list, err := s.extracts.LastN(ctx, 50)
	return list, storeErr(err)
}

// Last50ByClient returns the client's 50 most recent entries, newest
// first.
func (s *ExtractService) Last50ByClient(ctx context.Context, clientID string) ([]model.Extract, error) {
	if strings.TrimSpace(clientID) == "" {
		return nil, invalidf("client id must be provided")
	}
	list, err := s.extracts.LastNByClient(ctx, clientID, 50)
	return list, storeErr(err)
}

// ByClient returns every entry belonging to the client.
func (s *ExtractService) ByClient(ctx context.Context, clientID string) ([]model.Extract, error) {
	if strings.TrimSpace(clientID) == "" {
		return nil, invalidf("client id must be provided")
	}
	list, err := s.extracts.ByClient(ctx, clientID)
	return list, storeErr(err)
}

// Search returns entries whose description contains the needle,
// case-insensitively.
func (s *ExtractService) Search(ctx context.Context, needle string) ([]model.Extract, error) {
	if strings.TrimSpace(needle) == "" {
		return nil, invalidf("search term must be provided")
	}
	list, err := s.extracts.Search(ctx, needle)
	return list, storeErr(err)
}

// Delete removes one audit entry.
func (s *ExtractService) Delete(ctx context.Context, id string) error {
	return storeErr(s.extracts.Delete(ctx, id))
}
