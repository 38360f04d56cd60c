// Package inspection brings a cargo up to date after it was handled: the
// registered event is applied to the aggregate, the new state is stored and
// the resulting domain events are dispatched.
package inspection

import (
	"github.com/BennettSmith/CargoTrackingExample/cargo"
	"github.com/BennettSmith/CargoTrackingExample/event"
)

// Service inspects cargos after handling.
type Service interface {
	// CargoWasHandled applies a registered handling event to its cargo and
	// persists the updated aggregate.
	CargoWasHandled(e cargo.HandlingEvent) error
}

type service struct {
	cargos     cargo.Repository
	dispatcher event.Dispatcher
}

// NewService creates an inspection service with necessary dependencies.
func NewService(cargos cargo.Repository, d event.Dispatcher) Service {
	return &service{cargos: cargos, dispatcher: d}
}

func (s *service) CargoWasHandled(e cargo.HandlingEvent) error {
	c, err := s.cargos.Find(e.TrackingID)
	if err != nil {
		return err
	}
	base := c.Version
	if err := c.RegisterHandlingEvent(e); err != nil {
		return err
	}
	if err := s.cargos.Store(c, base); err != nil {
		return err
	}
	if s.dispatcher != nil {
		// Event delivery is decoupled from the stored state change; a
		// dispatcher failure never rolls it back.
		_ = s.dispatcher.Dispatch(c.PopEvents()...)
	}
	return nil
}
