package voyage

import (
	"fmt"
	"time"

	"github.com/BennettSmith/CargoTrackingExample/errs"
	"github.com/BennettSmith/CargoTrackingExample/location"
)

// Number uniquely identifies a voyage
type Number string

// Voyage is a uniquely identifiable series of carrier movements
type Voyage struct {
	Number   Number
	Schedule Schedule
}

// New creates a new instance of a voyage
func New(n Number, s Schedule) *Voyage {
	return &Voyage{Number: n, Schedule: s}
}

// Schedule describes a voyage schedule
type Schedule struct {
	CarrierMovements []CarrierMovement
}

// NewSchedule validates that the movements are chronologically ordered and
// that each movement departs from where the previous one arrived.
func NewSchedule(movements []CarrierMovement) (Schedule, error) {
	for i, m := range movements {
		if !m.DepartureTime.Before(m.ArrivalTime) {
			return Schedule{}, errs.NewBusinessRuleViolation(
				fmt.Sprintf("movement %d must depart before it arrives", i))
		}
		if i == 0 {
			continue
		}
		prev := movements[i-1]
		if prev.ArrivalLocation != m.DepartureLocation {
			return Schedule{}, errs.NewBusinessRuleViolation(
				fmt.Sprintf("movement %d departs from %s but movement %d arrived at %s",
					i, m.DepartureLocation, i-1, prev.ArrivalLocation))
		}
		if m.DepartureTime.Before(prev.ArrivalTime) {
			return Schedule{}, errs.NewBusinessRuleViolation(
				fmt.Sprintf("movement %d departs before movement %d arrives", i, i-1))
		}
	}
	return Schedule{CarrierMovements: movements}, nil
}

// CarrierMovement is a vessel voyage from one location to another
type CarrierMovement struct {
	DepartureLocation location.UNLcode
	ArrivalLocation   location.UNLcode
	DepartureTime     time.Time
	ArrivalTime       time.Time
}

// ErrUnknown is used when a voyage can't be found
var ErrUnknown = errs.NewEntityNotFound("voyage", "requested number")

// Repository provides access to a voyage store
type Repository interface {
	Find(Number) (*Voyage, error)
	// FindSchedulesForSearch returns the voyages whose schedules are
	// relevant to a route search starting from any of the given origins.
	// Implementations may over-approximate and return everything.
	FindSchedulesForSearch(origins []location.UNLcode) ([]*Voyage, error)
}
