package service

import (
	"context"
	"time"

	"github.com/iliyamo/cabin-reservation/internal/model"
)

// AvailabilityService answers the per-cabin availability question for
// an arbitrary date window.
type AvailabilityService struct {
	reservations ReservationStore
	cabins       CabinStore
}

// NewAvailabilityService wires the availability engine.
func NewAvailabilityService(reservations ReservationStore, cabins CabinStore) *AvailabilityService {
	return &AvailabilityService{reservations: reservations, cabins: cabins}
}

// Availability reports the state of every catalog cabin for the
// half-open window [start, end). Only confirmed reservations block a
// cabin. A cabin whose blocking reservation checks out on the window's
// start date is reported CHECKOUT_TODAY instead of OCCUPIED so the
// front desk can offer a same-day turnover; the comparison is done on
// the yyyy-MM-dd strings to stay immune to time-of-day and zone noise
// in the stored timestamps. Each cabin appears exactly once.
func (s *AvailabilityService) Availability(ctx context.Context, start, end time.Time) ([]model.CabinAvailability, error) {
	blocking, err := s.reservations.FindOverlappingConfirmed(ctx, start, end)
	if err != nil {
		return nil, storeErr(err)
	}
	cabins, err := s.cabins.List(ctx)
	if err != nil {
		return nil, storeErr(err)
	}

	// Index blocking reservations by normalized cabin name.
	byCabin := make(map[string][]model.Reservation)
	for _, res := range blocking {
		for _, name := range res.CabinNames {
			key := model.NormalizeCabinName(name)
			byCabin[key] = append(byCabin[key], res)
		}
	}

	startDay := start.Format("2006-01-02")
	out := make([]model.CabinAvailability, 0, len(cabins))
	for _, cabin := range cabins {
		blockers := byCabin[model.NormalizeCabinName(cabin.Name)]
		if len(blockers) == 0 {
			out = append(out, model.CabinAvailability{Name: cabin.Name, Status: model.CabinFree})
			continue
		}

		entry := model.CabinAvailability{
			Name:          cabin.Name,
			Status:        model.CabinOccupied,
			ClientName:    blockers[0].ClientName,
			ReservationID: blockers[0].ID,
		}
		for _, res := range blockers {
			if res.Checkout.Format("2006-01-02") == startDay {
				entry.Status = model.CabinCheckoutToday
				entry.ClientName = res.ClientName
				entry.ReservationID = res.ID
				break
			}
		}
		out = append(out, entry)
	}
	return out, nil
}
