// Package tracking provides the customer-facing view of a cargo: where it
// is, whether it is on track, and what has happened to it so far.
package tracking

import (
	"fmt"
	"time"

	"github.com/BennettSmith/CargoTrackingExample/cargo"
)

// Service is the interface that provides the Track method.
type Service interface {
	// Track returns a cargo matching a tracking id.
	Track(id string) (Cargo, error)
}

type service struct {
	cargos cargo.Repository
}

// NewService returns a new instance of the default Service.
func NewService(cargos cargo.Repository) Service {
	return &service{cargos: cargos}
}

func (s *service) Track(id string) (Cargo, error) {
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

// Cargo is a read model for tracking views.
type Cargo struct {
	TrackingID      string    `json:"tracking_id"`
	StatusText      string    `json:"status_text"`
	Origin          string    `json:"origin"`
	Destination     string    `json:"destination"`
	ETA             time.Time `json:"eta"`
	ArrivalDeadline time.Time `json:"arrival_deadline"`
	Misdirected     bool      `json:"misdirected"`
	Events          []Event   `json:"events"`
}

// Event is a past handling event in a tracking view.
type Event struct {
	Description string    `json:"description"`
	Completed   time.Time `json:"completion_time"`
}

func assemble(c *cargo.Cargo) Cargo {
	return Cargo{
		TrackingID:      string(c.TrackingID),
		StatusText:      assembleStatusText(c),
		Origin:          string(c.Origin),
		Destination:     string(c.RouteSpecification.Destination),
		ETA:             c.Delivery.ETA,
		ArrivalDeadline: c.RouteSpecification.Deadline,
		Misdirected:     c.Delivery.IsMisdirected,
		Events:          assembleEvents(c.History),
	}
}

func assembleStatusText(c *cargo.Cargo) string {
	d := c.Delivery
	switch d.TransportStatus {
	case cargo.NotReceived:
		return "Not received"
	case cargo.InPort:
		return fmt.Sprintf("In port %s", d.LastKnownLocation)
	case cargo.OnboardCarrier:
		return fmt.Sprintf("Onboard voyage %s", d.CurrentVoyage)
	case cargo.Claimed:
		return fmt.Sprintf("Claimed in %s", d.LastKnownLocation)
	}
	return "Unknown"
}

func assembleEvents(history cargo.HandlingHistory) []Event {
	ordered := history.InCompletionOrder()
	events := make([]Event, 0, len(ordered.HandlingEvents))
	for _, e := range ordered.HandlingEvents {
		var description string
		switch e.Activity.Type {
		case cargo.Receive:
			description = fmt.Sprintf("Received in %s", e.Activity.Location)
		case cargo.Load:
			description = fmt.Sprintf("Loaded onto voyage %s in %s", e.Activity.VoyageNumber, e.Activity.Location)
		case cargo.Unload:
			description = fmt.Sprintf("Unloaded off voyage %s in %s", e.Activity.VoyageNumber, e.Activity.Location)
		case cargo.Customs:
			description = fmt.Sprintf("Cleared customs in %s", e.Activity.Location)
		case cargo.Claim:
			description = fmt.Sprintf("Claimed in %s", e.Activity.Location)
		default:
			continue
		}
		events = append(events, Event{
			Description: description,
			Completed:   e.Completed,
		})
	}
	return events
}
