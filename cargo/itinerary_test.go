package cargo_test

import (
	"testing"
	"time"

	"github.com/BennettSmith/CargoTrackingExample/cargo"
	"github.com/BennettSmith/CargoTrackingExample/errs"
	"github.com/BennettSmith/CargoTrackingExample/location"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func transatlanticLegs() []cargo.Leg {
	l1, _ := cargo.NewLeg("V300", location.USNYC, location.DEHAM, date(2025, 5, 1), date(2025, 5, 10))
	l2, _ := cargo.NewLeg("V400", location.DEHAM, location.NLRTM, date(2025, 5, 11), date(2025, 5, 15))
	return []cargo.Leg{l1, l2}
}

func TestNewLeg(t *testing.T) {
	t.Run("valid leg", func(t *testing.T) {
		leg, err := cargo.NewLeg("V300", location.USNYC, location.DEHAM, date(2025, 5, 1), date(2025, 5, 10))
		require.NoError(t, err)
		assert.Equal(t, location.USNYC, leg.LoadLocation)
		assert.Equal(t, location.DEHAM, leg.UnLoadLocation)
	})

	t.Run("collects independent field failures", func(t *testing.T) {
		_, err := cargo.NewLeg("V300", location.USNYC, location.USNYC, date(2025, 5, 10), date(2025, 5, 1))
		require.Error(t, err)

		var validation *errs.ValidationError
		require.ErrorAs(t, err, &validation)
		assert.Len(t, validation.FieldErrors, 2)
		assert.Contains(t, validation.FieldErrors, "unload_location")
		assert.Contains(t, validation.FieldErrors, "unload_time")
	})
}

func TestNewItinerary(t *testing.T) {
	t.Run("connected legs", func(t *testing.T) {
		itinerary, err := cargo.NewItinerary(transatlanticLegs())
		require.NoError(t, err)
		assert.NotEmpty(t, itinerary.ID)
		assert.Equal(t, location.USNYC, itinerary.InitialDepartureLocation())
		assert.Equal(t, location.NLRTM, itinerary.FinalArrivalLocation())
		assert.Equal(t, date(2025, 5, 15), itinerary.FinalArrivalTime())
	})

	t.Run("empty", func(t *testing.T) {
		_, err := cargo.NewItinerary(nil)
		assert.ErrorIs(t, err, errs.ErrBusinessRuleViolation)
	})

	t.Run("location gap fails on the first disconnected pair", func(t *testing.T) {
		l1, _ := cargo.NewLeg("V300", location.USNYC, location.DEHAM, date(2025, 5, 1), date(2025, 5, 10))
		l2, _ := cargo.NewLeg("V400", location.FIHEL, location.NLRTM, date(2025, 5, 11), date(2025, 5, 15))
		_, err := cargo.NewItinerary([]cargo.Leg{l1, l2})
		require.ErrorIs(t, err, errs.ErrBusinessRuleViolation)
		assert.Contains(t, err.Error(), "leg 0 unloads at DEHAM but leg 1 loads at FIHEL")
	})

	t.Run("time gap", func(t *testing.T) {
		l1, _ := cargo.NewLeg("V300", location.USNYC, location.DEHAM, date(2025, 5, 1), date(2025, 5, 10))
		l2, _ := cargo.NewLeg("V400", location.DEHAM, location.NLRTM, date(2025, 5, 9), date(2025, 5, 15))
		_, err := cargo.NewItinerary([]cargo.Leg{l1, l2})
		assert.ErrorIs(t, err, errs.ErrBusinessRuleViolation)
	})

	t.Run("replacement gets a new identity", func(t *testing.T) {
		first, err := cargo.NewItinerary(transatlanticLegs())
		require.NoError(t, err)
		second, err := cargo.NewItinerary(transatlanticLegs())
		require.NoError(t, err)
		assert.NotEqual(t, first.ID, second.ID)
	})
}

func TestRouteSpecificationIsSatisfiedBy(t *testing.T) {
	itinerary, err := cargo.NewItinerary(transatlanticLegs())
	require.NoError(t, err)

	matching := cargo.RouteSpecification{
		Origin:      location.USNYC,
		Destination: location.NLRTM,
		Deadline:    date(2025, 6, 1),
	}
	assert.True(t, matching.IsSatisfiedBy(itinerary))

	t.Run("different origin", func(t *testing.T) {
		rs := matching
		rs.Origin = location.CNHKG
		assert.False(t, rs.IsSatisfiedBy(itinerary))
	})

	t.Run("different destination", func(t *testing.T) {
		rs := matching
		rs.Destination = location.SESTO
		assert.False(t, rs.IsSatisfiedBy(itinerary))
	})

	t.Run("deadline before arrival", func(t *testing.T) {
		rs := matching
		rs.Deadline = date(2025, 5, 5)
		assert.False(t, rs.IsSatisfiedBy(itinerary))
	})

	t.Run("deadline equal to arrival", func(t *testing.T) {
		rs := matching
		rs.Deadline = itinerary.FinalArrivalTime()
		assert.True(t, rs.IsSatisfiedBy(itinerary))
	})

	t.Run("empty itinerary", func(t *testing.T) {
		assert.False(t, matching.IsSatisfiedBy(cargo.Itinerary{}))
	})
}

func TestNewRouteSpecification(t *testing.T) {
	future := time.Now().AddDate(0, 3, 0)

	t.Run("valid", func(t *testing.T) {
		rs, err := cargo.NewRouteSpecification("USNYC", "NLRTM", future)
		require.NoError(t, err)
		assert.Equal(t, location.USNYC, rs.Origin)
		assert.Equal(t, location.NLRTM, rs.Destination)
	})

	t.Run("collects both bad codes", func(t *testing.T) {
		_, err := cargo.NewRouteSpecification("x", "", future)
		var validation *errs.ValidationError
		require.ErrorAs(t, err, &validation)
		assert.Contains(t, validation.FieldErrors, "origin")
		assert.Contains(t, validation.FieldErrors, "destination")
	})

	t.Run("origin equal to destination", func(t *testing.T) {
		_, err := cargo.NewRouteSpecification("USNYC", "USNYC", future)
		var validation *errs.ValidationError
		require.ErrorAs(t, err, &validation)
		assert.Contains(t, validation.FieldErrors, "destination")
	})

	t.Run("deadline in the past", func(t *testing.T) {
		_, err := cargo.NewRouteSpecification("USNYC", "NLRTM", date(2020, 1, 1))
		var validation *errs.ValidationError
		require.ErrorAs(t, err, &validation)
		assert.Contains(t, validation.FieldErrors, "arrival_deadline")
	})

	t.Run("cross-field checks wait for valid fields", func(t *testing.T) {
		_, err := cargo.NewRouteSpecification("bogus", "bogus", time.Time{})
		var validation *errs.ValidationError
		require.ErrorAs(t, err, &validation)
		// Only the individual field failures, no origin-equals-destination
		// noise derived from invalid values.
		assert.Len(t, validation.FieldErrors, 3)
	})
}
