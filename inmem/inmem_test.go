package inmem_test

import (
	"sync"
	"testing"
	"time"

	"github.com/BennettSmith/CargoTrackingExample/cargo"
	"github.com/BennettSmith/CargoTrackingExample/errs"
	"github.com/BennettSmith/CargoTrackingExample/inmem"
	"github.com/BennettSmith/CargoTrackingExample/location"
	"github.com/BennettSmith/CargoTrackingExample/voyage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func testSpec() cargo.RouteSpecification {
	return cargo.RouteSpecification{
		Origin:      location.USNYC,
		Destination: location.NLRTM,
		Deadline:    date(2025, 6, 1),
	}
}

func TestCargoRepository(t *testing.T) {
	t.Run("store and find round trip", func(t *testing.T) {
		r := inmem.NewCargoRepository()
		c := cargo.New("ABC123", testSpec())

		require.NoError(t, r.Store(c, c.Version))
		found, err := r.Find("ABC123")
		require.NoError(t, err)
		assert.Equal(t, c.TrackingID, found.TrackingID)
		assert.Equal(t, c.Version, found.Version)
	})

	t.Run("unknown cargo", func(t *testing.T) {
		r := inmem.NewCargoRepository()
		_, err := r.Find("MISSING1")
		assert.ErrorIs(t, err, errs.ErrEntityNotFound)
	})

	t.Run("stale version is rejected", func(t *testing.T) {
		r := inmem.NewCargoRepository()
		c := cargo.New("ABC123", testSpec())
		require.NoError(t, r.Store(c, 0))

		first, err := r.Find("ABC123")
		require.NoError(t, err)
		second, err := r.Find("ABC123")
		require.NoError(t, err)

		require.NoError(t, first.SpecifyNewRoute(testSpec()))
		require.NoError(t, r.Store(first, 0))

		require.NoError(t, second.SpecifyNewRoute(testSpec()))
		err = r.Store(second, 0)
		assert.ErrorIs(t, err, errs.ErrConcurrencyConflict)
	})

	t.Run("exactly one of two racing saves wins", func(t *testing.T) {
		r := inmem.NewCargoRepository()
		c := cargo.New("ABC123", testSpec())
		require.NoError(t, r.Store(c, 0))

		// Both transactions load the same version before either saves.
		loaded := make([]*cargo.Cargo, 2)
		for i := range loaded {
			var err error
			loaded[i], err = r.Find("ABC123")
			require.NoError(t, err)
			require.NoError(t, loaded[i].SpecifyNewRoute(testSpec()))
		}

		var wg sync.WaitGroup
		results := make([]error, 2)
		for i := 0; i < 2; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i] = r.Store(loaded[i], 0)
			}(i)
		}
		wg.Wait()

		var conflicts, wins int
		for _, err := range results {
			switch {
			case err == nil:
				wins++
			default:
				require.ErrorIs(t, err, errs.ErrConcurrencyConflict)
				conflicts++
			}
		}
		assert.Equal(t, 1, wins)
		assert.Equal(t, 1, conflicts)
	})

	t.Run("stored cargo is isolated from the caller", func(t *testing.T) {
		r := inmem.NewCargoRepository()
		c := cargo.New("ABC123", testSpec())
		require.NoError(t, r.Store(c, 0))

		require.NoError(t, c.SpecifyNewRoute(testSpec()))
		found, err := r.Find("ABC123")
		require.NoError(t, err)
		assert.Equal(t, uint64(0), found.Version)
	})

	t.Run("find all", func(t *testing.T) {
		r := inmem.NewCargoRepository()
		require.NoError(t, r.Store(cargo.New("AAA111", testSpec()), 0))
		require.NoError(t, r.Store(cargo.New("BBB222", testSpec()), 0))
		assert.Len(t, r.FindAll(), 2)
	})
}

func TestLocationRepository(t *testing.T) {
	r := inmem.NewLocationRepository()

	l, err := r.Find(location.SESTO)
	require.NoError(t, err)
	assert.Equal(t, "Stockholm", l.Name)

	_, err = r.Find("XXXXX")
	assert.ErrorIs(t, err, errs.ErrEntityNotFound)

	assert.Len(t, r.FindAll(), 11)
}

func TestVoyageRepository(t *testing.T) {
	r := inmem.NewVoyageRepository()

	v, err := r.Find(voyage.V300.Number)
	require.NoError(t, err)
	assert.Equal(t, voyage.V300.Number, v.Number)

	_, err = r.Find("V999")
	assert.ErrorIs(t, err, errs.ErrEntityNotFound)

	voyages, err := r.FindSchedulesForSearch([]location.UNLcode{location.USNYC})
	require.NoError(t, err)
	assert.Len(t, voyages, 4)
}

func TestHandlingEventRepository(t *testing.T) {
	r := inmem.NewHandlingEventRepository()

	e1 := cargo.HandlingEvent{
		TrackingID: "ABC123",
		Activity:   cargo.HandlingActivity{Type: cargo.Receive, Location: location.USNYC},
		Completed:  date(2025, 4, 30),
		Registered: date(2025, 5, 1),
	}
	e2 := cargo.HandlingEvent{
		TrackingID: "ABC123",
		Activity:   cargo.HandlingActivity{Type: cargo.Load, Location: location.USNYC, VoyageNumber: "V300"},
		Completed:  date(2025, 5, 1),
		Registered: date(2025, 5, 1),
	}
	require.NoError(t, r.Store(e1))
	require.NoError(t, r.Store(e2))

	history, err := r.QueryHandlingHistory("ABC123")
	require.NoError(t, err)
	assert.Len(t, history.HandlingEvents, 2)

	other, err := r.QueryHandlingHistory("OTHER123")
	require.NoError(t, err)
	assert.Empty(t, other.HandlingEvents)
}
