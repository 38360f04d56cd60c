package cargo

import (
	"regexp"
	"strings"

	"github.com/BennettSmith/CargoTrackingExample/errs"
	"github.com/BennettSmith/CargoTrackingExample/event"
	"github.com/BennettSmith/CargoTrackingExample/location"

	"github.com/pborman/uuid"
)

// TrackingID uniquely identifies a cargo
type TrackingID string

var trackingIDPattern = regexp.MustCompile(`^[A-Z0-9][A-Z0-9-]{3,35}$`)

// NewTrackingID validates a raw tracking id from external input.
func NewTrackingID(raw string) (TrackingID, error) {
	id := strings.ToUpper(strings.TrimSpace(raw))
	if !trackingIDPattern.MatchString(id) {
		v := errs.NewValidation()
		v.Add("tracking_id", "must be 4-36 letters, digits or dashes")
		return "", v
	}
	return TrackingID(id), nil
}

// Cargo is the aggregate root. It owns its route specification, itinerary
// and handling history; the delivery progress is always re-derived from
// those, never assigned directly. Every mutation bumps the version used for
// optimistic concurrency control on save.
type Cargo struct {
	TrackingID         TrackingID
	Origin             location.UNLcode
	RouteSpecification RouteSpecification
	Itinerary          Itinerary
	History            HandlingHistory
	Delivery           Delivery
	Version            uint64

	events []event.Event
}

// New creates a new, unrouted cargo
func New(id TrackingID, rs RouteSpecification) *Cargo {
	c := &Cargo{
		TrackingID:         id,
		Origin:             rs.Origin,
		RouteSpecification: rs,
		History:            HandlingHistory{HandlingEvents: make([]HandlingEvent, 0)},
	}
	c.rederive()
	c.record(event.CargoBooked, map[string]interface{}{
		"origin":           string(rs.Origin),
		"destination":      string(rs.Destination),
		"arrival_deadline": rs.Deadline,
	})
	return c
}

// AssignToRoute attaches a new itinerary to the cargo. The itinerary must
// satisfy the current route specification and the cargo must not be claimed.
func (c *Cargo) AssignToRoute(itinerary Itinerary) error {
	if err := c.rejectIfClaimed(); err != nil {
		return err
	}
	if !c.RouteSpecification.IsSatisfiedBy(itinerary) {
		return errs.NewBusinessRuleViolation("itinerary does not satisfy the route specification")
	}
	c.Itinerary = itinerary
	c.rederive()
	c.Version++
	c.record(event.CargoRouteAssigned, map[string]interface{}{
		"itinerary_id": itinerary.ID,
		"eta":          itinerary.FinalArrivalTime(),
	})
	return nil
}

// SpecifyNewRoute replaces the route specification. If the assigned
// itinerary no longer satisfies the new specification it is cleared rather
// than silently kept. Misdirection already accrued from past handling is not
// reassessed.
func (c *Cargo) SpecifyNewRoute(rs RouteSpecification) error {
	if err := c.rejectIfClaimed(); err != nil {
		return err
	}
	c.RouteSpecification = rs
	if !c.Itinerary.IsEmpty() && !rs.IsSatisfiedBy(c.Itinerary) {
		c.Itinerary = Itinerary{}
	}
	c.rederive()
	c.Version++
	c.record(event.CargoDestinationChanged, map[string]interface{}{
		"origin":           string(rs.Origin),
		"destination":      string(rs.Destination),
		"arrival_deadline": rs.Deadline,
	})
	return nil
}

// RegisterHandlingEvent appends a handling event to the history and
// re-derives the delivery progress. Events may arrive in any order; the
// derivation interprets them by completion time.
func (c *Cargo) RegisterHandlingEvent(e HandlingEvent) error {
	if err := c.rejectIfClaimed(); err != nil {
		return err
	}
	wasMisdirected := c.Delivery.IsMisdirected
	c.History.HandlingEvents = append(c.History.HandlingEvents, e)
	c.rederive()
	c.Version++
	c.record(event.CargoWasHandled, map[string]interface{}{
		"event_type": e.Activity.Type.String(),
		"location":   string(e.Activity.Location),
		"voyage":     string(e.Activity.VoyageNumber),
		"completed":  e.Completed,
	})
	if !wasMisdirected && c.Delivery.IsMisdirected {
		c.record(event.CargoWasMisdirected, map[string]interface{}{
			"last_known_location": string(c.Delivery.LastKnownLocation),
		})
	}
	if c.Delivery.TransportStatus == Claimed {
		c.record(event.CargoHasArrived, map[string]interface{}{
			"location": string(c.Delivery.LastKnownLocation),
		})
	}
	return nil
}

// PopEvents drains the events recorded by the mutations since the last
// drain. Callers dispatch them only after the cargo was stored.
func (c *Cargo) PopEvents() []event.Event {
	events := c.events
	c.events = nil
	return events
}

// Clone returns a deep copy detached from this instance. Stores keep and
// hand out clones so that no two transactions share aggregate state.
func (c *Cargo) Clone() *Cargo {
	clone := *c
	clone.Itinerary.Legs = append([]Leg(nil), c.Itinerary.Legs...)
	clone.History = HandlingHistory{
		HandlingEvents: append([]HandlingEvent(nil), c.History.HandlingEvents...),
	}
	clone.events = nil
	return &clone
}

func (c *Cargo) rejectIfClaimed() error {
	if c.Delivery.TransportStatus == Claimed {
		return errs.NewInvalidOperation("cargo has been claimed and can no longer change")
	}
	return nil
}

func (c *Cargo) rederive() {
	c.Delivery = DeriveDeliveryFrom(c.RouteSpecification, c.Itinerary, c.History)
}

func (c *Cargo) record(eventType string, data map[string]interface{}) {
	c.events = append(c.events, event.New(eventType, "cargo", string(c.TrackingID), c.Version, data))
}

// Repository provides access to the cargo store. Store enforces optimistic
// concurrency: expectedVersion is the version the mutation was based on, and
// the store fails with a concurrency conflict when it no longer matches.
type Repository interface {
	Store(c *Cargo, expectedVersion uint64) error
	Find(id TrackingID) (*Cargo, error)
	FindAll() []*Cargo
}

// ErrUnknown is used when a cargo can't be found
var ErrUnknown = errs.NewEntityNotFound("cargo", "requested tracking id")

// NextTrackingID generates a new tracking ID.
func NextTrackingID() TrackingID {
	return TrackingID(strings.Split(strings.ToUpper(uuid.New()), "-")[0])
}
