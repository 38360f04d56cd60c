package routing

import (
	"sort"
	"time"

	"github.com/BennettSmith/CargoTrackingExample/cargo"
	"github.com/BennettSmith/CargoTrackingExample/location"
	"github.com/BennettSmith/CargoTrackingExample/voyage"
)

type service struct {
	voyages voyage.Repository
}

// NewService returns a routing service that searches the published voyage
// schedules. Every search copies the movements it needs up front and never
// re-reads the repository, so a schedule change mid-search is invisible to
// it. Searches share no mutable state and may run concurrently.
func NewService(voyages voyage.Repository) Service {
	return &service{voyages: voyages}
}

// edge is one carrier movement, the unit the search graph is built from.
type edge struct {
	voyage   voyage.Number
	from, to location.UNLcode
	dep, arr time.Time
}

func (s *service) FetchRoutesForSpecification(rs cargo.RouteSpecification) ([]cargo.Itinerary, error) {
	voyages, err := s.voyages.FindSchedulesForSearch([]location.UNLcode{rs.Origin})
	if err != nil {
		return nil, err
	}

	edges := snapshotEdges(voyages)

	finder := &pathFinder{
		rs:      rs,
		edges:   edges,
		visited: map[location.UNLcode]bool{rs.Origin: true},
	}
	finder.extend(rs.Origin, time.Time{})

	itineraries := make([]cargo.Itinerary, 0, len(finder.found))
	for _, path := range finder.found {
		itinerary, err := toItinerary(path)
		if err != nil {
			return nil, err
		}
		itineraries = append(itineraries, itinerary)
	}

	sort.SliceStable(itineraries, func(i, j int) bool {
		a, b := itineraries[i].FinalArrivalTime(), itineraries[j].FinalArrivalTime()
		if a.Equal(b) {
			return len(itineraries[i].Legs) < len(itineraries[j].Legs)
		}
		return a.Before(b)
	})
	return itineraries, nil
}

func snapshotEdges(voyages []*voyage.Voyage) []edge {
	var edges []edge
	for _, v := range voyages {
		for _, m := range v.Schedule.CarrierMovements {
			edges = append(edges, edge{
				voyage: v.Number,
				from:   m.DepartureLocation,
				to:     m.ArrivalLocation,
				dep:    m.DepartureTime,
				arr:    m.ArrivalTime,
			})
		}
	}
	// Deterministic expansion order makes the result order stable across
	// runs regardless of repository iteration order.
	sort.SliceStable(edges, func(i, j int) bool {
		if !edges[i].dep.Equal(edges[j].dep) {
			return edges[i].dep.Before(edges[j].dep)
		}
		return edges[i].voyage < edges[j].voyage
	})
	return edges
}

type pathFinder struct {
	rs      cargo.RouteSpecification
	edges   []edge
	visited map[location.UNLcode]bool
	path    []edge
	found   [][]edge
}

// extend walks every time-respecting continuation from at: a movement is
// traversable when it departs from at, no earlier than the arrival of the
// previous movement, and still arrives within the deadline. Locations are
// never revisited on a path.
func (f *pathFinder) extend(at location.UNLcode, after time.Time) {
	for _, e := range f.edges {
		if e.from != at || f.visited[e.to] {
			continue
		}
		if e.dep.Before(after) || e.arr.After(f.rs.Deadline) {
			continue
		}
		f.path = append(f.path, e)
		if e.to == f.rs.Destination {
			found := make([]edge, len(f.path))
			copy(found, f.path)
			f.found = append(f.found, found)
		} else {
			f.visited[e.to] = true
			f.extend(e.to, e.arr)
			delete(f.visited, e.to)
		}
		f.path = f.path[:len(f.path)-1]
	}
}

func toItinerary(path []edge) (cargo.Itinerary, error) {
	legs := make([]cargo.Leg, 0, len(path))
	for _, e := range path {
		leg, err := cargo.NewLeg(e.voyage, e.from, e.to, e.dep, e.arr)
		if err != nil {
			return cargo.Itinerary{}, err
		}
		legs = append(legs, leg)
	}
	return cargo.NewItinerary(legs)
}
