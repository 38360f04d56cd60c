package voyage

import (
	"time"

	"github.com/BennettSmith/CargoTrackingExample/location"
)

// Sample voyages used for demos and tests.
var (
	V100 = New("V100", mustSchedule([]CarrierMovement{
		{
			DepartureLocation: location.CNHKG,
			ArrivalLocation:   location.JNTKO,
			DepartureTime:     date(2025, 4, 1),
			ArrivalTime:       date(2025, 4, 5),
		},
		{
			DepartureLocation: location.JNTKO,
			ArrivalLocation:   location.USNYC,
			DepartureTime:     date(2025, 4, 6),
			ArrivalTime:       date(2025, 4, 14),
		},
	}))

	V200 = New("V200", mustSchedule([]CarrierMovement{
		{
			DepartureLocation: location.USNYC,
			ArrivalLocation:   location.USCHI,
			DepartureTime:     date(2025, 4, 16),
			ArrivalTime:       date(2025, 4, 18),
		},
	}))

	V300 = New("V300", mustSchedule([]CarrierMovement{
		{
			DepartureLocation: location.USNYC,
			ArrivalLocation:   location.DEHAM,
			DepartureTime:     date(2025, 5, 1),
			ArrivalTime:       date(2025, 5, 10),
		},
	}))

	V400 = New("V400", mustSchedule([]CarrierMovement{
		{
			DepartureLocation: location.DEHAM,
			ArrivalLocation:   location.NLRTM,
			DepartureTime:     date(2025, 5, 11),
			ArrivalTime:       date(2025, 5, 15),
		},
		{
			DepartureLocation: location.NLRTM,
			ArrivalLocation:   location.SESTO,
			DepartureTime:     date(2025, 5, 16),
			ArrivalTime:       date(2025, 5, 20),
		},
	}))
)

func mustSchedule(movements []CarrierMovement) Schedule {
	s, err := NewSchedule(movements)
	if err != nil {
		panic(err)
	}
	return s
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
