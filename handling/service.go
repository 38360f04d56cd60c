// Package handling provides the use case of registering handling events:
// the facts, reported from ports and terminals, that a cargo was received,
// loaded, unloaded, cleared by customs or claimed.
package handling

import (
	"time"

	"github.com/BennettSmith/CargoTrackingExample/cargo"
	"github.com/BennettSmith/CargoTrackingExample/errs"
	"github.com/BennettSmith/CargoTrackingExample/location"
	"github.com/BennettSmith/CargoTrackingExample/voyage"
)

// EventHandler is notified after a handling event was registered, so the
// owning cargo can be brought up to date.
type EventHandler interface {
	CargoWasHandled(e cargo.HandlingEvent) error
}

// Service registers handling events. Inputs are primitive fields validated
// into value objects before anything else happens.
type Service interface {
	// RegisterHandlingEvent registers a handling event in the system, and
	// notifies the event handler so the cargo is updated.
	RegisterHandlingEvent(completed time.Time, trackingID, voyageNumber, unLcode, eventType string) error
}

type service struct {
	handlingEvents cargo.HandlingEventRepository
	factory        *cargo.HandlingEventFactory
	eventHandler   EventHandler
}

// NewService creates a handling event service with necessary dependencies.
func NewService(r cargo.HandlingEventRepository, f *cargo.HandlingEventFactory, eh EventHandler) Service {
	return &service{
		handlingEvents: r,
		factory:        f,
		eventHandler:   eh,
	}
}

func (s *service) RegisterHandlingEvent(completed time.Time, trackingID, voyageNumber, unLcode, eventType string) error {
	v := errs.NewValidation()

	id, err := cargo.NewTrackingID(trackingID)
	if err != nil {
		v.Add("tracking_id", "must be a well-formed tracking id")
	}
	code, err := location.NewUNLcode(unLcode)
	if err != nil {
		v.Add("location", "must be a valid UN locode")
	}
	et, err := cargo.ParseHandlingEventType(eventType)
	if err != nil {
		v.Add("event_type", "must be one of Load, Unload, Receive, Claim, Customs")
	}
	if completed.IsZero() {
		v.Add("completion_time", "is required")
	}
	if err := v.ErrOrNil(); err != nil {
		return err
	}

	e, err := s.factory.CreateHandlingEvent(time.Now(), completed, id, voyage.Number(voyageNumber), code, et)
	if err != nil {
		return err
	}
	if err := s.handlingEvents.Store(e); err != nil {
		return err
	}
	return s.eventHandler.CargoWasHandled(e)
}
