package cargo

import (
	"sort"
	"time"

	"github.com/BennettSmith/CargoTrackingExample/errs"
	"github.com/BennettSmith/CargoTrackingExample/location"
	"github.com/BennettSmith/CargoTrackingExample/voyage"
)

// HandlingEventType describes the type of a handling event
type HandlingEventType int

// valid handling event types
const (
	NotHandled HandlingEventType = iota
	Load
	Unload
	Receive
	Claim
	Customs
)

func (t HandlingEventType) String() string {
	switch t {
	case NotHandled:
		return "Not Handled"
	case Load:
		return "Load"
	case Unload:
		return "Unload"
	case Receive:
		return "Receive"
	case Claim:
		return "Claim"
	case Customs:
		return "Customs"
	}
	return ""
}

// ParseHandlingEventType maps the wire name of an event type to its value.
func ParseHandlingEventType(s string) (HandlingEventType, error) {
	for _, t := range []HandlingEventType{Load, Unload, Receive, Claim, Customs} {
		if t.String() == s {
			return t, nil
		}
	}
	v := errs.NewValidation()
	v.Add("event_type", "must be one of Load, Unload, Receive, Claim, Customs")
	return NotHandled, v
}

// HandlingActivity represents how and where a cargo can be handled. The
// voyage number is only set for load and unload activities.
type HandlingActivity struct {
	Type         HandlingEventType
	Location     location.UNLcode
	VoyageNumber voyage.Number
}

// HandlingEvent registers the fact that a cargo was handled at some location
// at a given time. Events are never mutated or deleted once registered.
type HandlingEvent struct {
	TrackingID TrackingID
	Activity   HandlingActivity
	Completed  time.Time
	Registered time.Time
}

// HandlingHistory is the handling history of a cargo, ordered by
// registration time with ties broken by completion time.
type HandlingHistory struct {
	HandlingEvents []HandlingEvent
}

// MostRecentlyCompletedEvent returns the event with the greatest completion
// time, ties broken by the greatest registration time.
func (h HandlingHistory) MostRecentlyCompletedEvent() (HandlingEvent, error) {
	if len(h.HandlingEvents) == 0 {
		return HandlingEvent{}, errs.NewBusinessRuleViolation("delivery history is empty")
	}
	ordered := h.InCompletionOrder()
	return ordered.HandlingEvents[len(ordered.HandlingEvents)-1], nil
}

// InCompletionOrder returns a copy of the history sorted by completion time,
// ties broken by registration time. Events arrive in any order but are
// always interpreted chronologically.
func (h HandlingHistory) InCompletionOrder() HandlingHistory {
	events := make([]HandlingEvent, len(h.HandlingEvents))
	copy(events, h.HandlingEvents)
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Completed.Equal(events[j].Completed) {
			return events[i].Registered.Before(events[j].Registered)
		}
		return events[i].Completed.Before(events[j].Completed)
	})
	return HandlingHistory{HandlingEvents: events}
}

// HandlingEventRepository provides access to the handling event store
type HandlingEventRepository interface {
	Store(e HandlingEvent) error
	QueryHandlingHistory(TrackingID) (HandlingHistory, error)
}

// HandlingEventFactory creates handling events
type HandlingEventFactory struct {
	CargoRepository    Repository
	VoyageRepository   voyage.Repository
	LocationRepository location.Repository
}

// CreateHandlingEvent creates a validated handling event. The referenced
// cargo and location must exist; a voyage number is required for load and
// unload events and must be absent for every other type.
func (f *HandlingEventFactory) CreateHandlingEvent(registered time.Time, completed time.Time, id TrackingID, voyageNumber voyage.Number, unLcode location.UNLcode, eventType HandlingEventType) (HandlingEvent, error) {
	if _, err := f.CargoRepository.Find(id); err != nil {
		return HandlingEvent{}, err
	}

	switch eventType {
	case Load, Unload:
		if voyageNumber == "" {
			v := errs.NewValidation()
			v.Add("voyage", "is required for load and unload events")
			return HandlingEvent{}, v
		}
		if _, err := f.VoyageRepository.Find(voyageNumber); err != nil {
			return HandlingEvent{}, err
		}
	default:
		if voyageNumber != "" {
			v := errs.NewValidation()
			v.Add("voyage", "must be absent for this event type")
			return HandlingEvent{}, v
		}
	}

	if _, err := f.LocationRepository.Find(unLcode); err != nil {
		return HandlingEvent{}, err
	}

	return HandlingEvent{
		TrackingID: id,
		Activity: HandlingActivity{
			Type:         eventType,
			Location:     unLcode,
			VoyageNumber: voyageNumber,
		},
		Completed:  completed,
		Registered: registered,
	}, nil
}
