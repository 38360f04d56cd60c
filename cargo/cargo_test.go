package cargo_test

import (
	"testing"

	"github.com/BennettSmith/CargoTrackingExample/cargo"
	"github.com/BennettSmith/CargoTrackingExample/errs"
	"github.com/BennettSmith/CargoTrackingExample/event"
	"github.com/BennettSmith/CargoTrackingExample/location"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eventTypes(events []event.Event) []string {
	types := make([]string, 0, len(events))
	for _, e := range events {
		types = append(types, e.Type)
	}
	return types
}

func TestNewTrackingID(t *testing.T) {
	t.Run("normalizes case and whitespace", func(t *testing.T) {
		id, err := cargo.NewTrackingID(" abc-123 ")
		require.NoError(t, err)
		assert.Equal(t, cargo.TrackingID("ABC-123"), id)
	})

	t.Run("rejects malformed ids", func(t *testing.T) {
		for _, raw := range []string{"", "ab", "-ABC1", "WITH SPACE", "lower?"} {
			_, err := cargo.NewTrackingID(raw)
			var validation *errs.ValidationError
			require.ErrorAs(t, err, &validation, "raw %q", raw)
			assert.Contains(t, validation.FieldErrors, "tracking_id")
		}
	})
}

func TestNewCargo(t *testing.T) {
	c := cargo.New("ABC123", transatlanticSpec)

	assert.Equal(t, cargo.TrackingID("ABC123"), c.TrackingID)
	assert.Equal(t, location.USNYC, c.Origin)
	assert.Equal(t, cargo.NotRouted, c.Delivery.RoutingStatus)
	assert.Equal(t, cargo.NotReceived, c.Delivery.TransportStatus)
	assert.Equal(t, location.USNYC, c.Delivery.LastKnownLocation)
	assert.Equal(t, uint64(0), c.Version)

	assert.Equal(t, []string{event.CargoBooked}, eventTypes(c.PopEvents()))
	assert.Empty(t, c.PopEvents())
}

func TestAssignToRoute(t *testing.T) {
	itinerary, err := cargo.NewItinerary(transatlanticLegs())
	require.NoError(t, err)

	t.Run("satisfying itinerary", func(t *testing.T) {
		c := cargo.New("ABC123", transatlanticSpec)
		c.PopEvents()

		require.NoError(t, c.AssignToRoute(itinerary))
		assert.Equal(t, cargo.Routed, c.Delivery.RoutingStatus)
		assert.Equal(t, date(2025, 5, 15), c.Delivery.ETA)
		assert.Equal(t, uint64(1), c.Version)
		assert.Equal(t, []string{event.CargoRouteAssigned}, eventTypes(c.PopEvents()))
	})

	t.Run("unsatisfying itinerary is rejected", func(t *testing.T) {
		c := cargo.New("ABC123", cargo.RouteSpecification{
			Origin:      location.SESTO,
			Destination: location.AUMEL,
			Deadline:    date(2025, 6, 1),
		})
		c.PopEvents()

		err := c.AssignToRoute(itinerary)
		assert.ErrorIs(t, err, errs.ErrBusinessRuleViolation)
		assert.Equal(t, cargo.NotRouted, c.Delivery.RoutingStatus)
		assert.Equal(t, uint64(0), c.Version)
		assert.Empty(t, c.PopEvents())
	})
}

func TestSpecifyNewRoute(t *testing.T) {
	itinerary, err := cargo.NewItinerary(transatlanticLegs())
	require.NoError(t, err)

	t.Run("keeps a still-satisfying itinerary", func(t *testing.T) {
		c := cargo.New("ABC123", transatlanticSpec)
		require.NoError(t, c.AssignToRoute(itinerary))
		c.PopEvents()

		relaxed := transatlanticSpec
		relaxed.Deadline = date(2025, 7, 1)
		require.NoError(t, c.SpecifyNewRoute(relaxed))
		assert.Equal(t, cargo.Routed, c.Delivery.RoutingStatus)
		assert.False(t, c.Itinerary.IsEmpty())
		assert.Equal(t, []string{event.CargoDestinationChanged}, eventTypes(c.PopEvents()))
	})

	t.Run("clears an itinerary the new specification rejects", func(t *testing.T) {
		c := cargo.New("ABC123", transatlanticSpec)
		require.NoError(t, c.AssignToRoute(itinerary))

		rerouted := transatlanticSpec
		rerouted.Destination = location.SESTO
		require.NoError(t, c.SpecifyNewRoute(rerouted))
		assert.True(t, c.Itinerary.IsEmpty())
		assert.Equal(t, cargo.NotRouted, c.Delivery.RoutingStatus)
		assert.True(t, c.Delivery.ETA.IsZero())
		assert.Equal(t, uint64(2), c.Version)
	})
}

func TestRegisterHandlingEvent(t *testing.T) {
	itinerary, err := cargo.NewItinerary(transatlanticLegs())
	require.NoError(t, err)

	routed := func(t *testing.T) *cargo.Cargo {
		c := cargo.New("TEST1", transatlanticSpec)
		require.NoError(t, c.AssignToRoute(itinerary))
		c.PopEvents()
		return c
	}

	t.Run("on-plan event", func(t *testing.T) {
		c := routed(t)
		require.NoError(t, c.RegisterHandlingEvent(handled(cargo.Receive, location.USNYC, "", date(2025, 4, 30))))
		assert.Equal(t, cargo.InPort, c.Delivery.TransportStatus)
		assert.Equal(t, uint64(2), c.Version)
		assert.Equal(t, []string{event.CargoWasHandled}, eventTypes(c.PopEvents()))
	})

	t.Run("misdirection flip emits one extra event", func(t *testing.T) {
		c := routed(t)
		require.NoError(t, c.RegisterHandlingEvent(handled(cargo.Receive, location.USNYC, "", date(2025, 4, 30))))
		c.PopEvents()

		require.NoError(t, c.RegisterHandlingEvent(handled(cargo.Load, location.USNYC, "V999", date(2025, 5, 1))))
		assert.True(t, c.Delivery.IsMisdirected)
		assert.Equal(t, []string{event.CargoWasHandled, event.CargoWasMisdirected}, eventTypes(c.PopEvents()))

		// Already misdirected, no second misdirection event.
		require.NoError(t, c.RegisterHandlingEvent(handled(cargo.Unload, location.FIHEL, "V999", date(2025, 5, 3))))
		assert.Equal(t, []string{event.CargoWasHandled}, eventTypes(c.PopEvents()))
	})

	t.Run("claim emits an arrival event and freezes the cargo", func(t *testing.T) {
		c := routed(t)
		for _, e := range []cargo.HandlingEvent{
			handled(cargo.Receive, location.USNYC, "", date(2025, 4, 30)),
			handled(cargo.Load, location.USNYC, "V300", date(2025, 5, 1)),
			handled(cargo.Unload, location.DEHAM, "V300", date(2025, 5, 10)),
			handled(cargo.Load, location.DEHAM, "V400", date(2025, 5, 11)),
			handled(cargo.Unload, location.NLRTM, "V400", date(2025, 5, 15)),
		} {
			require.NoError(t, c.RegisterHandlingEvent(e))
		}
		c.PopEvents()

		require.NoError(t, c.RegisterHandlingEvent(handled(cargo.Claim, location.NLRTM, "", date(2025, 5, 16))))
		assert.Equal(t, cargo.Claimed, c.Delivery.TransportStatus)
		assert.Equal(t, []string{event.CargoWasHandled, event.CargoHasArrived}, eventTypes(c.PopEvents()))

		version := c.Version
		assert.ErrorIs(t, c.RegisterHandlingEvent(handled(cargo.Receive, location.NLRTM, "", date(2025, 5, 17))), errs.ErrInvalidOperation)
		assert.ErrorIs(t, c.AssignToRoute(itinerary), errs.ErrInvalidOperation)
		assert.ErrorIs(t, c.SpecifyNewRoute(transatlanticSpec), errs.ErrInvalidOperation)
		assert.Equal(t, version, c.Version)
		assert.Empty(t, c.PopEvents())
	})
}

func TestCargoClone(t *testing.T) {
	itinerary, err := cargo.NewItinerary(transatlanticLegs())
	require.NoError(t, err)

	c := cargo.New("ABC123", transatlanticSpec)
	require.NoError(t, c.AssignToRoute(itinerary))

	clone := c.Clone()
	assert.Empty(t, clone.PopEvents(), "clones never carry pending events")

	require.NoError(t, clone.RegisterHandlingEvent(handled(cargo.Receive, location.USNYC, "", date(2025, 4, 30))))
	clone.Itinerary.Legs[0].VoyageNumber = "V999"

	assert.Empty(t, c.History.HandlingEvents)
	assert.Equal(t, uint64(1), c.Version)
	assert.Equal(t, "V300", string(c.Itinerary.Legs[0].VoyageNumber))
}
