package tracking_test

import (
	"testing"
	"time"

	"github.com/BennettSmith/CargoTrackingExample/cargo"
	"github.com/BennettSmith/CargoTrackingExample/errs"
	"github.com/BennettSmith/CargoTrackingExample/inmem"
	"github.com/BennettSmith/CargoTrackingExample/location"
	"github.com/BennettSmith/CargoTrackingExample/tracking"
	"github.com/BennettSmith/CargoTrackingExample/voyage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func handled(t cargo.HandlingEventType, l location.UNLcode, v string, completed time.Time) cargo.HandlingEvent {
	return cargo.HandlingEvent{
		TrackingID: "ABC123",
		Activity: cargo.HandlingActivity{
			Type:         t,
			Location:     l,
			VoyageNumber: voyage.Number(v),
		},
		Completed:  completed,
		Registered: completed,
	}
}

func TestTrack(t *testing.T) {
	cargos := inmem.NewCargoRepository()
	s := tracking.NewService(cargos)

	c := cargo.New("ABC123", cargo.RouteSpecification{
		Origin:      location.USNYC,
		Destination: location.NLRTM,
		Deadline:    date(2025, 6, 1),
	})
	require.NoError(t, c.RegisterHandlingEvent(handled(cargo.Receive, location.USNYC, "", date(2025, 4, 30))))
	require.NoError(t, c.RegisterHandlingEvent(handled(cargo.Load, location.USNYC, "V300", date(2025, 5, 1))))
	require.NoError(t, cargos.Store(c, 0))

	t.Run("assembles the tracking view", func(t *testing.T) {
		view, err := s.Track("abc123")
		require.NoError(t, err)

		assert.Equal(t, "ABC123", view.TrackingID)
		assert.Equal(t, "Onboard voyage V300", view.StatusText)
		assert.Equal(t, "USNYC", view.Origin)
		assert.Equal(t, "NLRTM", view.Destination)
		assert.False(t, view.Misdirected)

		require.Len(t, view.Events, 2)
		assert.Equal(t, "Received in USNYC", view.Events[0].Description)
		assert.Equal(t, "Loaded onto voyage V300 in USNYC", view.Events[1].Description)
	})

	t.Run("unknown cargo", func(t *testing.T) {
		_, err := s.Track("MISSING1")
		assert.ErrorIs(t, err, errs.ErrEntityNotFound)
	})

	t.Run("malformed tracking id", func(t *testing.T) {
		_, err := s.Track("!")
		var validation *errs.ValidationError
		assert.ErrorAs(t, err, &validation)
	})
}
