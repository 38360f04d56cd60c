// Package inmem provides in-memory implementations of the repository
// contracts. They back the demo binary and the use-case tests; a real
// deployment substitutes persistent implementations behind the same
// interfaces.
package inmem

import (
	"sync"

	"github.com/BennettSmith/CargoTrackingExample/cargo"
	"github.com/BennettSmith/CargoTrackingExample/errs"
	"github.com/BennettSmith/CargoTrackingExample/location"
	"github.com/BennettSmith/CargoTrackingExample/voyage"
)

type cargoRepository struct {
	mtx    sync.RWMutex
	cargos map[cargo.TrackingID]*cargo.Cargo
}

// NewCargoRepository returns an in-memory cargo store with optimistic
// concurrency control.
func NewCargoRepository() cargo.Repository {
	return &cargoRepository{
		cargos: make(map[cargo.TrackingID]*cargo.Cargo),
	}
}

// Store saves the cargo if the stored version still matches the version the
// mutation was based on. Exactly one of two racing saves with the same
// expected version wins; the other gets a concurrency conflict.
func (r *cargoRepository) Store(c *cargo.Cargo, expectedVersion uint64) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	if existing, ok := r.cargos[c.TrackingID]; ok && existing.Version != expectedVersion {
		return errs.NewConcurrencyConflict("cargo", c.TrackingID)
	}
	r.cargos[c.TrackingID] = c.Clone()
	return nil
}

func (r *cargoRepository) Find(id cargo.TrackingID) (*cargo.Cargo, error) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	if c, ok := r.cargos[id]; ok {
		return c.Clone(), nil
	}
	return nil, cargo.ErrUnknown
}

func (r *cargoRepository) FindAll() []*cargo.Cargo {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	cargos := make([]*cargo.Cargo, 0, len(r.cargos))
	for _, c := range r.cargos {
		cargos = append(cargos, c.Clone())
	}
	return cargos
}

type locationRepository struct {
	locations map[location.UNLcode]*location.Location
}

// NewLocationRepository returns a location store preloaded with the sample
// locations.
func NewLocationRepository() location.Repository {
	r := &locationRepository{
		locations: make(map[location.UNLcode]*location.Location),
	}
	for _, l := range []*location.Location{
		location.Stockholm, location.Gothenburg, location.Melbourne,
		location.Hongkong, location.NewYork, location.Chicago,
		location.Tokyo, location.Hamburg, location.Rotterdam,
		location.Helsinki, location.Paris,
	} {
		r.locations[l.UNLcode] = l
	}
	return r
}

func (r *locationRepository) Find(code location.UNLcode) (*location.Location, error) {
	if l, ok := r.locations[code]; ok {
		return l, nil
	}
	return nil, location.ErrUnknown
}

func (r *locationRepository) FindAll() []*location.Location {
	locations := make([]*location.Location, 0, len(r.locations))
	for _, l := range r.locations {
		locations = append(locations, l)
	}
	return locations
}

type voyageRepository struct {
	mtx     sync.RWMutex
	voyages map[voyage.Number]*voyage.Voyage
}

// NewVoyageRepository returns a voyage store preloaded with the sample
// voyages.
func NewVoyageRepository() voyage.Repository {
	r := &voyageRepository{
		voyages: make(map[voyage.Number]*voyage.Voyage),
	}
	for _, v := range []*voyage.Voyage{voyage.V100, voyage.V200, voyage.V300, voyage.V400} {
		r.voyages[v.Number] = v
	}
	return r
}

func (r *voyageRepository) Find(n voyage.Number) (*voyage.Voyage, error) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	if v, ok := r.voyages[n]; ok {
		return v, nil
	}
	return nil, voyage.ErrUnknown
}

// FindSchedulesForSearch over-approximates and returns every voyage; the
// whole schedule set is small enough to hand the router.
func (r *voyageRepository) FindSchedulesForSearch(_ []location.UNLcode) ([]*voyage.Voyage, error) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	voyages := make([]*voyage.Voyage, 0, len(r.voyages))
	for _, v := range r.voyages {
		voyages = append(voyages, v)
	}
	return voyages, nil
}

type handlingEventRepository struct {
	mtx    sync.RWMutex
	events map[cargo.TrackingID][]cargo.HandlingEvent
}

// NewHandlingEventRepository returns an in-memory handling event store.
func NewHandlingEventRepository() cargo.HandlingEventRepository {
	return &handlingEventRepository{
		events: make(map[cargo.TrackingID][]cargo.HandlingEvent),
	}
}

func (r *handlingEventRepository) Store(e cargo.HandlingEvent) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	r.events[e.TrackingID] = append(r.events[e.TrackingID], e)
	return nil
}

func (r *handlingEventRepository) QueryHandlingHistory(id cargo.TrackingID) (cargo.HandlingHistory, error) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	events := make([]cargo.HandlingEvent, len(r.events[id]))
	copy(events, r.events[id])
	return cargo.HandlingHistory{HandlingEvents: events}, nil
}
