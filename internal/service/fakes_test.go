package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/iliyamo/cabin-reservation/internal/model"
	"github.com/iliyamo/cabin-reservation/internal/repository"
)

// In-memory store fakes. They honor the same sentinel-error contract
// as the MySQL repositories so the engine's error mapping is exercised
// end to end.

type fakeSequences struct {
	mu       sync.Mutex
	counters map[string]int64
	fail     bool
}

func newFakeSequences() *fakeSequences {
	return &fakeSequences{counters: make(map[string]int64)}
}

func (f *fakeSequences) Next(_ context.Context, name string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return 0, context.DeadlineExceeded
	}
	f.counters[name]++
	return f.counters[name], nil
}

type fakeReservations struct {
	mu    sync.Mutex
	items map[string]model.Reservation
	order []string
}

func newFakeReservations() *fakeReservations {
	return &fakeReservations{items: make(map[string]model.Reservation)}
}

func (f *fakeReservations) Insert(_ context.Context, res *model.Reservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[res.ID]; ok {
		return repository.ErrDuplicate
	}
	f.items[res.ID] = *res
	f.order = append(f.order, res.ID)
	return nil
}

func (f *fakeReservations) GetByID(_ context.Context, id string) (model.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	res, ok := f.items[id]
	if !ok {
		return model.Reservation{}, repository.ErrNotFound
	}
	return res, nil
}

func (f *fakeReservations) GetAll(_ context.Context) ([]model.Reservation, error) {
	return f.filter(func(model.Reservation) bool { return true }), nil
}

func (f *fakeReservations) FindOverlapping(_ context.Context, start, end time.Time) ([]model.Reservation, error) {
	return f.filter(func(r model.Reservation) bool { return r.Overlaps(start, end) }), nil
}

func (f *fakeReservations) FindOverlappingConfirmed(_ context.Context, start, end time.Time) ([]model.Reservation, error) {
	return f.filter(func(r model.Reservation) bool {
		return r.Status == model.StatusConfirmed && r.Overlaps(start, end)
	}), nil
}

func (f *fakeReservations) FindConfirmedByYear(_ context.Context, year int) ([]model.Reservation, error) {
	return f.filter(func(r model.Reservation) bool {
		return r.Status == model.StatusConfirmed &&
			(r.Checkin.Year() == year || r.Checkout.Year() == year)
	}), nil
}

func (f *fakeReservations) FindSettledByMonth(_ context.Context, year int, month time.Month) ([]model.Reservation, error) {
	inMonth := func(t time.Time) bool { return t.Year() == year && t.Month() == month }
	return f.filter(func(r model.Reservation) bool {
		settled := r.Status == model.StatusConfirmed || r.Status == model.StatusCompleted
		return settled && (inMonth(r.Checkin) || inMonth(r.Checkout))
	}), nil
}

func (f *fakeReservations) FindSettledByYear(_ context.Context, year int) ([]model.Reservation, error) {
	return f.filter(func(r model.Reservation) bool {
		settled := r.Status == model.StatusConfirmed || r.Status == model.StatusCompleted
		return settled && (r.Checkin.Year() == year || r.Checkout.Year() == year)
	}), nil
}

func (f *fakeReservations) FindByClient(_ context.Context, clientID string) ([]model.Reservation, error) {
	return f.filter(func(r model.Reservation) bool { return r.ClientID == clientID }), nil
}

func (f *fakeReservations) CountOverlapping(_ context.Context, start, end time.Time) (int64, error) {
	return int64(len(f.filter(func(r model.Reservation) bool { return r.Overlaps(start, end) }))), nil
}

func (f *fakeReservations) CountByStatus(_ context.Context, status int) (int64, error) {
	return int64(len(f.filter(func(r model.Reservation) bool { return r.Status == status }))), nil
}

func (f *fakeReservations) UpdateStatus(_ context.Context, id string, status int) error {
	return f.update(id, func(r *model.Reservation) { r.Status = status })
}

func (f *fakeReservations) UpdatePayment(_ context.Context, id string, amountPaid float64, status int) error {
	return f.update(id, func(r *model.Reservation) {
		r.AmountPaid = amountPaid
		r.Status = status
	})
}

func (f *fakeReservations) UpdateTotalPrice(_ context.Context, id string, total float64) error {
	return f.update(id, func(r *model.Reservation) { r.TotalPrice = total })
}

func (f *fakeReservations) UpdateClientName(_ context.Context, clientID, newName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, r := range f.items {
		if r.ClientID == clientID {
			r.ClientName = newName
			f.items[id] = r
		}
	}
	return nil
}

func (f *fakeReservations) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeReservations) DeleteAll(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = make(map[string]model.Reservation)
	f.order = nil
	return nil
}

func (f *fakeReservations) filter(keep func(model.Reservation) bool) []model.Reservation {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Reservation, 0)
	for _, id := range f.order {
		if r, ok := f.items[id]; ok && keep(r) {
			out = append(out, r)
		}
	}
	return out
}

func (f *fakeReservations) update(id string, apply func(*model.Reservation)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.items[id]
	if !ok {
		return repository.ErrNotFound
	}
	apply(&r)
	f.items[id] = r
	return nil
}

type fakeClients struct {
	mu    sync.Mutex
	items map[string]model.Client
}

func newFakeClients(clients ...model.Client) *fakeClients {
	f := &fakeClients{items: make(map[string]model.Client)}
	for _, c := range clients {
		f.items[c.ID] = c
	}
	return f
}

func (f *fakeClients) Create(_ context.Context, c model.Client) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[c.ID]; ok {
		return repository.ErrDuplicate
	}
	for _, existing := range f.items {
		if c.Email != "" && existing.Email == c.Email {
			return repository.ErrEmailExists
		}
	}
	f.items[c.ID] = c
	return nil
}

func (f *fakeClients) GetByID(_ context.Context, id string) (model.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.items[id]
	if !ok {
		return model.Client{}, repository.ErrNotFound
	}
	return c, nil
}

func (f *fakeClients) GetByEmail(_ context.Context, email string) (model.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.items {
		if c.Email == email {
			return c, nil
		}
	}
	return model.Client{}, repository.ErrNotFound
}

func (f *fakeClients) List(_ context.Context) ([]model.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Client, 0, len(f.items))
	for _, c := range f.items {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeClients) ListCreatedSince(_ context.Context, cutoff time.Time) ([]model.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Client, 0)
	for _, c := range f.items {
		if !c.DateCreated.Before(cutoff) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeClients) SetBalance(_ context.Context, id string, balance float64) error {
	return f.set(id, func(c *model.Client) { c.Balance = balance })
}

func (f *fakeClients) SetName(_ context.Context, id, name string) error {
	return f.set(id, func(c *model.Client) { c.Name = name })
}

func (f *fakeClients) SetEmail(_ context.Context, id, email string) error {
	return f.set(id, func(c *model.Client) { c.Email = email })
}

func (f *fakeClients) SetPhone(_ context.Context, id, phone string) error {
	return f.set(id, func(c *model.Client) { c.Phone = phone })
}

func (f *fakeClients) SetStatus(_ context.Context, id string, status int) error {
	return f.set(id, func(c *model.Client) { c.Status = status })
}

func (f *fakeClients) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeClients) set(id string, apply func(*model.Client)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.items[id]
	if !ok {
		return repository.ErrNotFound
	}
	apply(&c)
	f.items[id] = c
	return nil
}

type fakeCabins struct {
	mu    sync.Mutex
	items []model.Cabin
}

func newFakeCabins(cabins ...model.Cabin) *fakeCabins {
	return &fakeCabins{items: cabins}
}

func (f *fakeCabins) List(_ context.Context) ([]model.Cabin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Cabin, len(f.items))
	copy(out, f.items)
	return out, nil
}

func (f *fakeCabins) GetByName(_ context.Context, name string) (model.Cabin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.items {
		if model.NormalizeCabinName(c.Name) == model.NormalizeCabinName(name) {
			return c, nil
		}
	}
	return model.Cabin{}, repository.ErrNotFound
}

func (f *fakeCabins) Create(_ context.Context, c model.Cabin) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.items {
		if model.NormalizeCabinName(existing.Name) == model.NormalizeCabinName(c.Name) {
			return repository.ErrDuplicate
		}
	}
	f.items = append(f.items, c)
	return nil
}

func (f *fakeCabins) UpdatePrice(_ context.Context, name string, price float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, c := range f.items {
		if model.NormalizeCabinName(c.Name) == model.NormalizeCabinName(name) {
			f.items[i].CurrentPrice = price
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeCabins) Delete(_ context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, c := range f.items {
		if model.NormalizeCabinName(c.Name) == model.NormalizeCabinName(name) {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeExtracts struct {
	mu    sync.Mutex
	items []model.Extract
}

func newFakeExtracts() *fakeExtracts { return &fakeExtracts{} }

func (f *fakeExtracts) Insert(_ context.Context, e model.Extract) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = append(f.items, e)
	return nil
}

func (f *fakeExtracts) GetByID(_ context.Context, id string) (model.Extract, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.items {
		if e.ID == id {
			return e, nil
		}
	}
	return model.Extract{}, repository.ErrNotFound
}

func (f *fakeExtracts) List(_ context.Context) ([]model.Extract, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Extract, len(f.items))
	copy(out, f.items)
	return out, nil
}

func (f *fakeExtracts) LastN(_ context.Context, n int) ([]model.Extract, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return lastN(f.items, n, func(model.Extract) bool { return true }), nil
}

func (f *fakeExtracts) LastNByClient(_ context.Context, clientID string, n int) ([]model.Extract, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return lastN(f.items, n, func(e model.Extract) bool { return e.ClientID == clientID }), nil
}

func (f *fakeExtracts) ByClient(_ context.Context, clientID string) ([]model.Extract, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Extract, 0)
	for _, e := range f.items {
		if e.ClientID == clientID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeExtracts) Search(_ context.Context, needle string) ([]model.Extract, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Extract, 0)
	for _, e := range f.items {
		if strings.Contains(strings.ToLower(e.Description), strings.ToLower(needle)) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeExtracts) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, e := range f.items {
		if e.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func lastN(items []model.Extract, n int, keep func(model.Extract) bool) []model.Extract {
	out := make([]model.Extract, 0, n)
	for i := len(items) - 1; i >= 0 && len(out) < n; i-- {
		if keep(items[i]) {
			out = append(out, items[i])
		}
	}
	return out
}

// recorderSpy captures audit hook invocations.
type recorderSpy struct {
	mu      sync.Mutex
	entries []string
}

func (r *recorderSpy) Record(_ context.Context, description string, _ float64, _ string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, description)
}
