package cargo

import (
	"time"

	"github.com/BennettSmith/CargoTrackingExample/location"
	"github.com/BennettSmith/CargoTrackingExample/voyage"
)

// Delivery is the derived progress of a cargo. It is a pure function of the
// route specification, the itinerary and the handling history; it is
// recomputed on every change to either and never set by hand. A zero ETA
// means the arrival is unknown.
type Delivery struct {
	TransportStatus   TransportStatus
	RoutingStatus     RoutingStatus
	LastKnownLocation location.UNLcode
	CurrentVoyage     voyage.Number
	IsMisdirected     bool
	ETA               time.Time
}

// DeriveDeliveryFrom computes the delivery progress of a cargo. Running it
// twice on the same inputs yields identical output.
func DeriveDeliveryFrom(rs RouteSpecification, itinerary Itinerary, history HandlingHistory) Delivery {
	routingStatus := calculateRoutingStatus(itinerary, rs)

	if len(history.HandlingEvents) == 0 {
		return Delivery{
			TransportStatus:   NotReceived,
			RoutingStatus:     routingStatus,
			LastKnownLocation: rs.Origin,
			IsMisdirected:     false,
			ETA:               itinerary.FinalArrivalTime(),
		}
	}

	ordered := history.InCompletionOrder()
	last := ordered.HandlingEvents[len(ordered.HandlingEvents)-1]

	transportStatus := calculateTransportStatus(last)
	misdirected := calculateMisdirection(itinerary, ordered)

	var eta time.Time
	if !itinerary.IsEmpty() && transportStatus != Claimed && !misdirected {
		eta = itinerary.FinalArrivalTime()
	}

	return Delivery{
		TransportStatus:   transportStatus,
		RoutingStatus:     routingStatus,
		LastKnownLocation: last.Activity.Location,
		CurrentVoyage:     calculateCurrentVoyage(last),
		IsMisdirected:     misdirected,
		ETA:               eta,
	}
}

func calculateRoutingStatus(itinerary Itinerary, rs RouteSpecification) RoutingStatus {
	if itinerary.IsEmpty() {
		return NotRouted
	}
	if rs.IsSatisfiedBy(itinerary) {
		return Routed
	}
	return MisRouted
}

func calculateTransportStatus(last HandlingEvent) TransportStatus {
	switch last.Activity.Type {
	case Receive, Unload, Customs:
		return InPort
	case Load:
		return OnboardCarrier
	case Claim:
		return Claimed
	}
	return Unknown
}

func calculateCurrentVoyage(last HandlingEvent) voyage.Number {
	if last.Activity.Type == Load {
		return last.Activity.VoyageNumber
	}
	return ""
}

// calculateMisdirection walks the history, in completion order, against the
// sequence of steps the itinerary prescribes: receive at the first load
// location, then load and unload per leg in order, then claim at the final
// unload location. The first event that does not match the next expected
// step marks the cargo misdirected; later events cannot undo that. A customs
// inspection at the location the cargo currently sits in is expected and
// does not advance the walk. Without an itinerary there is no plan to
// deviate from.
func calculateMisdirection(itinerary Itinerary, ordered HandlingHistory) bool {
	if itinerary.IsEmpty() {
		return false
	}

	steps := expectedSteps(itinerary)
	next := 0
	at := itinerary.InitialDepartureLocation()

	for _, e := range ordered.HandlingEvents {
		if e.Activity.Type == Customs {
			if e.Activity.Location != at {
				return true
			}
			continue
		}
		if next >= len(steps) || !steps[next].matches(e.Activity) {
			return true
		}
		at = e.Activity.Location
		next++
	}
	return false
}

type expectedStep struct {
	Type         HandlingEventType
	Location     location.UNLcode
	VoyageNumber voyage.Number
}

func (s expectedStep) matches(a HandlingActivity) bool {
	if s.Type != a.Type || s.Location != a.Location {
		return false
	}
	if s.Type == Load || s.Type == Unload {
		return s.VoyageNumber == a.VoyageNumber
	}
	return true
}

func expectedSteps(itinerary Itinerary) []expectedStep {
	steps := make([]expectedStep, 0, 2*len(itinerary.Legs)+2)
	steps = append(steps, expectedStep{Type: Receive, Location: itinerary.InitialDepartureLocation()})
	for _, l := range itinerary.Legs {
		steps = append(steps,
			expectedStep{Type: Load, Location: l.LoadLocation, VoyageNumber: l.VoyageNumber},
			expectedStep{Type: Unload, Location: l.UnLoadLocation, VoyageNumber: l.VoyageNumber},
		)
	}
	steps = append(steps, expectedStep{Type: Claim, Location: itinerary.FinalArrivalLocation()})
	return steps
}
