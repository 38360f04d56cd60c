package handling_test

import (
	"testing"
	"time"

	"github.com/BennettSmith/CargoTrackingExample/cargo"
	"github.com/BennettSmith/CargoTrackingExample/errs"
	"github.com/BennettSmith/CargoTrackingExample/handling"
	"github.com/BennettSmith/CargoTrackingExample/inmem"
	"github.com/BennettSmith/CargoTrackingExample/inspection"
	"github.com/BennettSmith/CargoTrackingExample/location"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	service        handling.Service
	cargos         cargo.Repository
	handlingEvents cargo.HandlingEventRepository
}

func setup(t *testing.T, ids ...cargo.TrackingID) fixture {
	t.Helper()

	cargos := inmem.NewCargoRepository()
	for _, id := range ids {
		c := cargo.New(id, cargo.RouteSpecification{
			Origin:      location.USNYC,
			Destination: location.NLRTM,
			Deadline:    time.Now().AddDate(0, 3, 0),
		})
		require.NoError(t, cargos.Store(c, c.Version))
	}

	handlingEvents := inmem.NewHandlingEventRepository()
	factory := &cargo.HandlingEventFactory{
		CargoRepository:    cargos,
		VoyageRepository:   inmem.NewVoyageRepository(),
		LocationRepository: inmem.NewLocationRepository(),
	}
	return fixture{
		service:        handling.NewService(handlingEvents, factory, inspection.NewService(cargos, nil)),
		cargos:         cargos,
		handlingEvents: handlingEvents,
	}
}

func TestRegisterHandlingEvent(t *testing.T) {
	completed := time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC)

	t.Run("stores the event and updates the cargo", func(t *testing.T) {
		f := setup(t, "ABC123")

		require.NoError(t, f.service.RegisterHandlingEvent(completed, "ABC123", "", "USNYC", "Receive"))

		history, err := f.handlingEvents.QueryHandlingHistory("ABC123")
		require.NoError(t, err)
		require.Len(t, history.HandlingEvents, 1)
		assert.Equal(t, cargo.Receive, history.HandlingEvents[0].Activity.Type)

		c, err := f.cargos.Find("ABC123")
		require.NoError(t, err)
		assert.Equal(t, cargo.InPort, c.Delivery.TransportStatus)
		assert.Equal(t, location.USNYC, c.Delivery.LastKnownLocation)
		assert.Equal(t, uint64(1), c.Version)
	})

	t.Run("collects malformed fields before touching any store", func(t *testing.T) {
		f := setup(t, "ABC123")

		err := f.service.RegisterHandlingEvent(time.Time{}, "!", "", "bogus", "Teleport")
		var validation *errs.ValidationError
		require.ErrorAs(t, err, &validation)
		assert.Len(t, validation.FieldErrors, 4)
		assert.Contains(t, validation.FieldErrors, "tracking_id")
		assert.Contains(t, validation.FieldErrors, "location")
		assert.Contains(t, validation.FieldErrors, "event_type")
		assert.Contains(t, validation.FieldErrors, "completion_time")

		history, err := f.handlingEvents.QueryHandlingHistory("ABC123")
		require.NoError(t, err)
		assert.Empty(t, history.HandlingEvents)
	})

	t.Run("voyage is required for loads", func(t *testing.T) {
		f := setup(t, "ABC123")

		err := f.service.RegisterHandlingEvent(completed, "ABC123", "", "USNYC", "Load")
		var validation *errs.ValidationError
		require.ErrorAs(t, err, &validation)
		assert.Contains(t, validation.FieldErrors, "voyage")
	})

	t.Run("voyage must be absent for receives", func(t *testing.T) {
		f := setup(t, "ABC123")

		err := f.service.RegisterHandlingEvent(completed, "ABC123", "V300", "USNYC", "Receive")
		var validation *errs.ValidationError
		require.ErrorAs(t, err, &validation)
		assert.Contains(t, validation.FieldErrors, "voyage")
	})

	t.Run("unknown cargo", func(t *testing.T) {
		f := setup(t)
		err := f.service.RegisterHandlingEvent(completed, "MISSING1", "", "USNYC", "Receive")
		assert.ErrorIs(t, err, errs.ErrEntityNotFound)
	})

	t.Run("unknown voyage", func(t *testing.T) {
		f := setup(t, "ABC123")
		err := f.service.RegisterHandlingEvent(completed, "ABC123", "V999", "USNYC", "Load")
		assert.ErrorIs(t, err, errs.ErrEntityNotFound)
	})

	t.Run("unknown location", func(t *testing.T) {
		f := setup(t, "ABC123")
		err := f.service.RegisterHandlingEvent(completed, "ABC123", "", "USXXX", "Receive")
		assert.ErrorIs(t, err, errs.ErrEntityNotFound)
	})

	t.Run("a claimed cargo accepts no further events", func(t *testing.T) {
		f := setup(t, "ABC123")

		require.NoError(t, f.service.RegisterHandlingEvent(completed, "ABC123", "", "USNYC", "Receive"))
		require.NoError(t, f.service.RegisterHandlingEvent(completed.AddDate(0, 0, 1), "ABC123", "", "NLRTM", "Claim"))

		err := f.service.RegisterHandlingEvent(completed.AddDate(0, 0, 2), "ABC123", "", "NLRTM", "Receive")
		assert.ErrorIs(t, err, errs.ErrInvalidOperation)
	})
}
