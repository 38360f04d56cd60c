package location

import (
	"regexp"

	"github.com/BennettSmith/CargoTrackingExample/errs"
)

// UNLcode uniquely identifies a location
type UNLcode string

// Two letters for the country followed by three letters or digits for the
// place, per UN/LOCODE.
var codePattern = regexp.MustCompile(`^[A-Z]{2}[A-Z0-9]{3}$`)

// NewUNLcode validates a raw code. It is the only path from external input
// to a UNLcode.
func NewUNLcode(code string) (UNLcode, error) {
	if !codePattern.MatchString(code) {
		v := errs.NewValidation()
		v.Add("unLcode", "must be 2 letters followed by 3 letters or digits")
		return "", v
	}
	return UNLcode(code), nil
}

// Location represents a location of a cargo
type Location struct {
	UNLcode UNLcode
	Name    string
}

// ErrUnknown is used when a location can't be found
var ErrUnknown = errs.NewEntityNotFound("location", "requested code")

// Repository represents a location store
type Repository interface {
	Find(UNLcode) (*Location, error)
	FindAll() []*Location
}
