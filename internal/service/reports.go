package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/iliyamo/cabin-reservation/internal/model"
)

// ReportService answers the aggregate queries over overlapping-interval
// data. All "today"/"this month" boundaries use the fixed business
// time zone; evaluating them in UTC would shift results by a day
// around midnight.
type ReportService struct {
	reservations ReservationStore
	loc          *time.Location

	// Now is the clock used for current-period queries. Tests override it.
	Now func() time.Time
}

// NewReportService wires the reporting queries.
func NewReportService(reservations ReservationStore, loc *time.Location) *ReportService {
	return &ReportService{reservations: reservations, loc: loc, Now: time.Now}
}

// ReservedDatesByMonth expands every confirmed reservation touching the
// target year into its daily calendar span (checkout day included),
// keeps the days inside the target month, de-duplicates (date, cabin
// set) pairs and sorts ascending by date.
func (s *ReportService) ReservedDatesByMonth(ctx context.Context, year int, month time.Month) ([]model.ReservedDate, error) {
	reservations, err := s.reservations.FindConfirmedByYear(ctx, year)
	if err != nil {
		return nil, storeErr(err)
	}

	seen := make(map[string]bool)
	out := make([]model.ReservedDate, 0)
	for _, res := range reservations {
		day := truncateDay(res.Checkin)
		last := truncateDay(res.Checkout)
		for ; !day.After(last); day = day.AddDate(0, 0, 1) {
			if day.Year() != year || day.Month() != month {
				continue
			}
			date := day.Format("2006-01-02")
			key := date + "|" + strings.Join(res.CabinNames, ",")
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, model.ReservedDate{Date: date, Cabins: res.CabinNames})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

// ReservationsOnDay returns the confirmed reservations active on the
// given calendar day. A reservation qualifies when its interval covers
// the day, or when its checkout falls exactly on it, so checkout-day
// turnovers stay visible to the front desk.
func (s *ReportService) ReservationsOnDay(ctx context.Context, year int, month time.Month, day int) ([]model.Reservation, error) {
	target := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	reservations, err := s.reservations.FindConfirmedByYear(ctx, year)
	if err != nil {
		return nil, storeErr(err)
	}

	out := make([]model.Reservation, 0)
	for _, res := range reservations {
		checkin := truncateDay(res.Checkin)
		checkout := truncateDay(res.Checkout)
		covers := !checkin.After(target) && checkout.After(target)
		checksOutToday := checkout.Equal(target)
		if covers || checksOutToday {
			out = append(out, res)
		}
	}
	return out, nil
}

// TotalByMonth sums the paid amounts of reservations whose checkin or
// checkout falls inside the target month and whose status is Confirmed
// or Completed.
func (s *ReportService) TotalByMonth(ctx context.Context, year int, month time.Month) (float64, error) {
	reservations, err := s.reservations.FindSettledByMonth(ctx, year, month)
	if err != nil {
		return 0, storeErr(err)
	}
	var total float64
	for _, res := range reservations {
		total += res.AmountPaid
	}
	return total, nil
}

// TotalForCurrentYear sums paid amounts over the current business-zone
// year, same status filter as TotalByMonth.
func (s *ReportService) TotalForCurrentYear(ctx context.Context) (float64, error) {
	year := s.Now().In(s.loc).Year()
	reservations, err := s.reservations.FindSettledByYear(ctx, year)
	if err != nil {
		return 0, storeErr(err)
	}
	var total float64
	for _, res := range reservations {
		total += res.AmountPaid
	}
	return total, nil
}

// Counts returns today's occupancy count, this month's count and the
// number of still-pending reservations, with day and month boundaries
// taken in the business time zone.
func (s *ReportService) Counts(ctx context.Context) (model.ReservationCounts, error) {
	now := s.Now().In(s.loc)
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
	endOfToday := startOfToday.AddDate(0, 0, 1)
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, s.loc)
	endOfMonth := startOfMonth.AddDate(0, 1, 0)

	var counts model.ReservationCounts
	var err error
	if counts.Today, err = s.reservations.CountOverlapping(ctx, startOfToday, endOfToday); err != nil {
		return model.ReservationCounts{}, storeErr(err)
	}
	if counts.ThisMonth, err = s.reservations.CountOverlapping(ctx, startOfMonth, endOfMonth); err != nil {
		return model.ReservationCounts{}, storeErr(err)
	}
	if counts.Pending, err = s.reservations.CountByStatus(ctx, model.StatusPending); err != nil {
		return model.ReservationCounts{}, storeErr(err)
	}
	return counts, nil
}

// truncateDay drops the time-of-day component, keeping the location.
func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
