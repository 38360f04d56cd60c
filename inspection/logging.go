package inspection

import (
	"time"

	"github.com/go-kit/kit/log"

	"github.com/BennettSmith/CargoTrackingExample/cargo"
)

type loggingService struct {
	logger log.Logger
	Service
}

// NewLoggingService returns a new instance of a logging Service.
func NewLoggingService(logger log.Logger, s Service) Service {
	return &loggingService{logger, s}
}

func (s *loggingService) CargoWasHandled(e cargo.HandlingEvent) (err error) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "cargo_was_handled",
			"tracking_id", e.TrackingID,
			"event_type", e.Activity.Type,
			"location", e.Activity.Location,
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.Service.CargoWasHandled(e)
}
