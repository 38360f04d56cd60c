// Package booking provides the use cases for booking cargos and routing
// them: book, inspect, request candidate routes, assign a route and change
// the destination.
package booking

import (
	"time"

	"github.com/BennettSmith/CargoTrackingExample/cargo"
	"github.com/BennettSmith/CargoTrackingExample/event"
	"github.com/BennettSmith/CargoTrackingExample/location"
	"github.com/BennettSmith/CargoTrackingExample/routing"
)

// Service is the booking use-case surface. Inputs are primitive fields that
// are validated into value objects before any repository or aggregate call;
// outputs are primitive-safe payloads.
type Service interface {
	// BookNewCargo registers a new cargo in the tracking system, not yet
	// routed.
	BookNewCargo(origin, destination string, deadline time.Time) (cargo.TrackingID, error)

	// LoadCargo returns a read model of a cargo.
	LoadCargo(id string) (Cargo, error)

	// RequestPossibleRoutesForCargo requests a list of itineraries
	// describing possible routes for this cargo. No route by the deadline
	// yields an empty list.
	RequestPossibleRoutesForCargo(id string) []cargo.Itinerary

	// AssignCargoToRoute assigns a cargo to the route built from the given
	// legs.
	AssignCargoToRoute(id string, legs []cargo.Leg) error

	// ChangeDestination changes the destination of a cargo, keeping its
	// origin and deadline.
	ChangeDestination(id, destination string) error

	// Cargos returns a read model of all booked cargos.
	Cargos() []Cargo

	// Locations returns a read model of all known locations.
	Locations() []Location
}

type service struct {
	cargos         cargo.Repository
	locations      location.Repository
	routingService routing.Service
	dispatcher     event.Dispatcher
}

// NewService creates a booking service with necessary dependencies.
func NewService(cargos cargo.Repository, locations location.Repository, rs routing.Service, d event.Dispatcher) Service {
	return &service{
		cargos:         cargos,
		locations:      locations,
		routingService: rs,
		dispatcher:     d,
	}
}

func (s *service) BookNewCargo(origin, destination string, deadline time.Time) (cargo.TrackingID, error) {
	rs, err := cargo.NewRouteSpecification(origin, destination, deadline)
	if err != nil {
		return "", err
	}
	if _, err := s.locations.Find(rs.Origin); err != nil {
		return "", err
	}
	if _, err := s.locations.Find(rs.Destination); err != nil {
		return "", err
	}

	id := cargo.NextTrackingID()
	c := cargo.New(id, rs)

	if err := s.cargos.Store(c, c.Version); err != nil {
		return "", err
	}
	s.dispatch(c.PopEvents())
	return id, nil
}

func (s *service) LoadCargo(id string) (Cargo, error) {
	tid, err := cargo.NewTrackingID(id)
	if err != nil {
		return Cargo{}, err
	}
	c, err := s.cargos.Find(tid)
	if err != nil {
		return Cargo{}, err
	}
	return assemble(c), nil
}

func (s *service) RequestPossibleRoutesForCargo(id string) []cargo.Itinerary {
	tid, err := cargo.NewTrackingID(id)
	if err != nil {
		return []cargo.Itinerary{}
	}
	c, err := s.cargos.Find(tid)
	if err != nil {
		return []cargo.Itinerary{}
	}
	routes, err := s.routingService.FetchRoutesForSpecification(c.RouteSpecification)
	if err != nil {
		return []cargo.Itinerary{}
	}
	return routes
}

func (s *service) AssignCargoToRoute(id string, legs []cargo.Leg) error {
	tid, err := cargo.NewTrackingID(id)
	if err != nil {
		return err
	}
	itinerary, err := cargo.NewItinerary(legs)
	if err != nil {
		return err
	}
	c, err := s.cargos.Find(tid)
	if err != nil {
		return err
	}
	base := c.Version
	if err := c.AssignToRoute(itinerary); err != nil {
		return err
	}
	if err := s.cargos.Store(c, base); err != nil {
		return err
	}
	s.dispatch(c.PopEvents())
	return nil
}

func (s *service) ChangeDestination(id, destination string) error {
	tid, err := cargo.NewTrackingID(id)
	if err != nil {
		return err
	}
	c, err := s.cargos.Find(tid)
	if err != nil {
		return err
	}
	rs, err := cargo.NewRouteSpecification(
		string(c.RouteSpecification.Origin),
		destination,
		c.RouteSpecification.Deadline,
	)
	if err != nil {
		return err
	}
	if _, err := s.locations.Find(rs.Destination); err != nil {
		return err
	}
	base := c.Version
	if err := c.SpecifyNewRoute(rs); err != nil {
		return err
	}
	if err := s.cargos.Store(c, base); err != nil {
		return err
	}
	s.dispatch(c.PopEvents())
	return nil
}

func (s *service) Cargos() []Cargo {
	var result []Cargo
	for _, c := range s.cargos.FindAll() {
		result = append(result, assemble(c))
	}
	return result
}

func (s *service) Locations() []Location {
	var result []Location
	for _, l := range s.locations.FindAll() {
		result = append(result, Location{
			UNLcode: string(l.UNLcode),
			Name:    l.Name,
		})
	}
	return result
}

// A dispatcher failure never rolls back or blocks the state change that was
// already stored.
func (s *service) dispatch(events []event.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Dispatch(events...)
}

// Cargo is a read model for booking views.
type Cargo struct {
	ArrivalDeadline time.Time   `json:"arrival_deadline"`
	Destination     string      `json:"destination"`
	Legs            []cargo.Leg `json:"legs,omitempty"`
	Misrouted       bool        `json:"misrouted"`
	Misdirected     bool        `json:"misdirected"`
	Origin          string      `json:"origin"`
	Routed          bool        `json:"routed"`
	TrackingID      string      `json:"tracking_id"`
	TransportStatus string      `json:"transport_status"`
	ETA             time.Time   `json:"eta"`
}

// Location is a read model for booking views.
type Location struct {
	UNLcode string `json:"locode"`
	Name    string `json:"name"`
}

func assemble(c *cargo.Cargo) Cargo {
	return Cargo{
		TrackingID:      string(c.TrackingID),
		Origin:          string(c.Origin),
		Destination:     string(c.RouteSpecification.Destination),
		ArrivalDeadline: c.RouteSpecification.Deadline,
		Legs:            c.Itinerary.Legs,
		Misrouted:       c.Delivery.RoutingStatus == cargo.MisRouted,
		Misdirected:     c.Delivery.IsMisdirected,
		Routed:          !c.Itinerary.IsEmpty(),
		TransportStatus: c.Delivery.TransportStatus.String(),
		ETA:             c.Delivery.ETA,
	}
}
