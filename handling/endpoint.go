package handling

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/go-kit/kit/circuitbreaker"
	"github.com/go-kit/kit/endpoint"
	"github.com/go-kit/kit/ratelimit"
	"github.com/go-kit/kit/tracing/opentracing"
	"github.com/go-kit/kit/tracing/zipkin"

	stdopentracing "github.com/opentracing/opentracing-go"
	stdzipkin "github.com/openzipkin/zipkin-go"
	"github.com/sony/gobreaker"
)

type registerEventRequest struct {
	TrackingID     string
	Location       string
	Voyage         string
	EventType      string
	CompletionTime time.Time
}

type registerEventResponse struct {
	Err error `json:"error,omitempty"`
}

func (r registerEventResponse) error() error { return r.Err }

func makeRegisterEventEndpoint(s Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(registerEventRequest)
		err := s.RegisterHandlingEvent(req.CompletionTime, req.TrackingID, req.Voyage, req.Location, req.EventType)
		return registerEventResponse{Err: err}, nil
	}
}

// Set collects the endpoints that compose the handling service.
type Set struct {
	RegisterEventEndpoint endpoint.Endpoint
}

// NewSet returns a Set that wraps the provided server, and wires in the
// expected endpoint middlewares.
func NewSet(svc Service, otTracer stdopentracing.Tracer, zipkinTracer *stdzipkin.Tracer) Set {
	var registerEventEndpoint endpoint.Endpoint
	{
		registerEventEndpoint = makeRegisterEventEndpoint(svc)

		registerEventEndpoint = ratelimit.NewErroringLimiter(rate.NewLimiter(rate.Limit(1), 100))(registerEventEndpoint)
		registerEventEndpoint = circuitbreaker.Gobreaker(gobreaker.NewCircuitBreaker(gobreaker.Settings{Name: "RegisterEvent"}))(registerEventEndpoint)
		registerEventEndpoint = opentracing.TraceServer(otTracer, "RegisterEvent")(registerEventEndpoint)
		if zipkinTracer != nil {
			registerEventEndpoint = zipkin.TraceEndpoint(zipkinTracer, "RegisterEvent")(registerEventEndpoint)
		}
	}

	return Set{
		RegisterEventEndpoint: registerEventEndpoint,
	}
}

// RegisterHandlingEvent implements the service interface so Set can be used as a service
func (s Set) RegisterHandlingEvent(completed time.Time, trackingID, voyageNumber, unLcode, eventType string) error {
	resp, err := s.RegisterEventEndpoint(context.Background(), registerEventRequest{
		TrackingID:     trackingID,
		Location:       unLcode,
		Voyage:         voyageNumber,
		EventType:      eventType,
		CompletionTime: completed,
	})
	if err != nil {
		return err
	}
	response := resp.(registerEventResponse)
	return response.Err
}
