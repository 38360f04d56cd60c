package cargo

import (
	"time"

	"github.com/BennettSmith/CargoTrackingExample/errs"
	"github.com/BennettSmith/CargoTrackingExample/location"
)

// RouteSpecification gives details about the required movement of a cargo:
// where it comes from, where it must go, and by when.
type RouteSpecification struct {
	Origin      location.UNLcode
	Destination location.UNLcode
	Deadline    time.Time
}

// NewRouteSpecification validates raw input into a route specification.
// Individual field failures are collected together; cross-field rules are
// only checked once every field is valid on its own.
func NewRouteSpecification(origin, destination string, deadline time.Time) (RouteSpecification, error) {
	v := errs.NewValidation()

	originCode, err := location.NewUNLcode(origin)
	if err != nil {
		v.Add("origin", "must be a valid UN locode")
	}
	destinationCode, err := location.NewUNLcode(destination)
	if err != nil {
		v.Add("destination", "must be a valid UN locode")
	}
	if deadline.IsZero() {
		v.Add("arrival_deadline", "is required")
	}
	if v.HasErrors() {
		return RouteSpecification{}, v
	}

	if originCode == destinationCode {
		v.Add("destination", "must differ from origin")
	}
	if !deadline.After(time.Now()) {
		v.Add("arrival_deadline", "must be in the future")
	}
	if v.HasErrors() {
		return RouteSpecification{}, v
	}

	return RouteSpecification{
		Origin:      originCode,
		Destination: destinationCode,
		Deadline:    deadline,
	}, nil
}

// IsSatisfiedBy checks whether the itinerary starts at the origin, ends at
// the destination and arrives no later than the deadline.
func (s RouteSpecification) IsSatisfiedBy(itinerary Itinerary) bool {
	return !itinerary.IsEmpty() &&
		s.Origin == itinerary.InitialDepartureLocation() &&
		s.Destination == itinerary.FinalArrivalLocation() &&
		!itinerary.FinalArrivalTime().After(s.Deadline)
}

// RoutingStatus describes the status of a cargo routing
type RoutingStatus int

// valid routing statuses
const (
	NotRouted RoutingStatus = iota
	MisRouted
	Routed
)

func (s RoutingStatus) String() string {
	switch s {
	case NotRouted:
		return "Not routed"
	case MisRouted:
		return "Misrouted"
	case Routed:
		return "Routed"
	}
	return ""
}

// TransportStatus describes the status of a cargo transportation
type TransportStatus int

// Valid transport statuses
const (
	NotReceived TransportStatus = iota
	InPort
	OnboardCarrier
	Claimed
	Unknown
)

func (s TransportStatus) String() string {
	switch s {
	case NotReceived:
		return "Not Received"
	case InPort:
		return "In Port"
	case OnboardCarrier:
		return "Onboard Carrier"
	case Claimed:
		return "Claimed"
	case Unknown:
		return "Unknown"
	}
	return ""
}
