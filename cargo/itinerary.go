package cargo

import (
	"fmt"
	"time"

	"github.com/BennettSmith/CargoTrackingExample/errs"
	"github.com/BennettSmith/CargoTrackingExample/location"
	"github.com/BennettSmith/CargoTrackingExample/voyage"

	"github.com/pborman/uuid"
)

// Leg describes the transportation between two locations on a voyage
type Leg struct {
	VoyageNumber   voyage.Number    `json:"voyage_number"`
	LoadLocation   location.UNLcode `json:"from"`
	UnLoadLocation location.UNLcode `json:"to"`
	LoadTime       time.Time        `json:"load_time"`
	UnLoadTime     time.Time        `json:"unload_time"`
}

// NewLeg creates a validated itinerary leg.
func NewLeg(voyageNumber voyage.Number, loadLocation, unloadLocation location.UNLcode, loadTime, unloadTime time.Time) (Leg, error) {
	v := errs.NewValidation()
	if voyageNumber == "" {
		v.Add("voyage_number", "is required")
	}
	if loadLocation == unloadLocation {
		v.Add("unload_location", "must differ from load location")
	}
	if !loadTime.Before(unloadTime) {
		v.Add("unload_time", "must be after load time")
	}
	if v.HasErrors() {
		return Leg{}, v
	}
	return Leg{
		VoyageNumber:   voyageNumber,
		LoadLocation:   loadLocation,
		UnLoadLocation: unloadLocation,
		LoadTime:       loadTime,
		UnLoadTime:     unloadTime,
	}, nil
}

// Itinerary specifies steps required to transport a cargo from its origin to
// destination. It carries a surrogate id; assigning a new route always
// replaces the itinerary wholesale, never mutates it in place.
type Itinerary struct {
	ID   string `json:"id"`
	Legs []Leg  `json:"legs"`
}

// NewItinerary validates leg connectivity: each leg must load where the
// previous one unloaded, no earlier than the previous unload. The first
// disconnected pair fails the whole itinerary.
func NewItinerary(legs []Leg) (Itinerary, error) {
	if len(legs) == 0 {
		return Itinerary{}, errs.NewBusinessRuleViolation("itinerary must have at least one leg")
	}
	for _, l := range legs {
		// Legs decoded from a transport payload have not been through
		// NewLeg; revalidate so no invalid leg slips into an itinerary.
		if _, err := NewLeg(l.VoyageNumber, l.LoadLocation, l.UnLoadLocation, l.LoadTime, l.UnLoadTime); err != nil {
			return Itinerary{}, err
		}
	}
	for i := 1; i < len(legs); i++ {
		prev, next := legs[i-1], legs[i]
		if prev.UnLoadLocation != next.LoadLocation {
			return Itinerary{}, errs.NewBusinessRuleViolation(
				fmt.Sprintf("leg %d unloads at %s but leg %d loads at %s",
					i-1, prev.UnLoadLocation, i, next.LoadLocation))
		}
		if next.LoadTime.Before(prev.UnLoadTime) {
			return Itinerary{}, errs.NewBusinessRuleViolation(
				fmt.Sprintf("leg %d loads before leg %d unloads", i, i-1))
		}
	}
	return Itinerary{ID: uuid.New(), Legs: legs}, nil
}

// IsEmpty checks if the itinerary contains at least one leg
func (i Itinerary) IsEmpty() bool {
	return len(i.Legs) == 0
}

// InitialDepartureLocation returns the start of the itinerary
func (i Itinerary) InitialDepartureLocation() location.UNLcode {
	if i.IsEmpty() {
		return location.UNLcode("")
	}
	return i.Legs[0].LoadLocation
}

// FinalArrivalLocation returns the end of the itinerary
func (i Itinerary) FinalArrivalLocation() location.UNLcode {
	if i.IsEmpty() {
		return location.UNLcode("")
	}
	return i.Legs[len(i.Legs)-1].UnLoadLocation
}

// FinalArrivalTime returns the expected arrival time at final destination
func (i Itinerary) FinalArrivalTime() time.Time {
	if i.IsEmpty() {
		return time.Time{}
	}
	return i.Legs[len(i.Legs)-1].UnLoadTime
}
