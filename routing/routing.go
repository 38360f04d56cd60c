package routing

import (
	"github.com/BennettSmith/CargoTrackingExample/cargo"
)

// Service finds routes that satisfy a route specification. An empty result
// means no route reaches the destination by the deadline; that is business
// data, not an error.
type Service interface {
	// FetchRoutesForSpecification finds all possible routes that satisfy a
	// given specification, ordered by final arrival time, ties broken by
	// fewest legs.
	FetchRoutesForSpecification(rs cargo.RouteSpecification) ([]cargo.Itinerary, error)
}
