package booking

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/BennettSmith/CargoTrackingExample/cargo"

	"github.com/go-kit/kit/circuitbreaker"
	"github.com/go-kit/kit/endpoint"
	"github.com/go-kit/kit/ratelimit"
	"github.com/go-kit/kit/tracing/opentracing"
	"github.com/go-kit/kit/tracing/zipkin"

	stdopentracing "github.com/opentracing/opentracing-go"
	stdzipkin "github.com/openzipkin/zipkin-go"
	"github.com/sony/gobreaker"
)

type bookCargoRequest struct {
	Origin          string
	Destination     string
	ArrivalDeadline time.Time
}

type bookCargoResponse struct {
	ID  cargo.TrackingID `json:"tracking_id,omitempty"`
	Err error            `json:"error,omitempty"`
}

func (r bookCargoResponse) error() error { return r.Err }

func makeBookCargoEndpoint(s Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(bookCargoRequest)
		id, err := s.BookNewCargo(req.Origin, req.Destination, req.ArrivalDeadline)
		return bookCargoResponse{ID: id, Err: err}, nil
	}
}

type loadCargoRequest struct {
	ID string
}

type loadCargoResponse struct {
	Cargo *Cargo `json:"cargo,omitempty"`
	Err   error  `json:"error,omitempty"`
}

func (r loadCargoResponse) error() error { return r.Err }

func makeLoadCargoEndpoint(s Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(loadCargoRequest)
		c, err := s.LoadCargo(req.ID)
		return loadCargoResponse{Cargo: &c, Err: err}, nil
	}
}

type requestRoutesRequest struct {
	ID string
}

type requestRoutesResponse struct {
	Routes []cargo.Itinerary `json:"routes,omitempty"`
	Err    error             `json:"error,omitempty"`
}

func (r requestRoutesResponse) error() error { return r.Err }

func makeRequestRoutesEndpoint(s Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(requestRoutesRequest)
		itin := s.RequestPossibleRoutesForCargo(req.ID)
		return requestRoutesResponse{Routes: itin, Err: nil}, nil
	}
}

type assignRouteRequest struct {
	ID   string
	Legs []cargo.Leg
}

type assignRouteResponse struct {
	Err error `json:"error,omitempty"`
}

func (r assignRouteResponse) error() error { return r.Err }

func makeAssignRouteEndpoint(s Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(assignRouteRequest)
		err := s.AssignCargoToRoute(req.ID, req.Legs)
		return assignRouteResponse{Err: err}, nil
	}
}

type changeDestinationRequest struct {
	ID          string
	Destination string
}

type changeDestinationResponse struct {
	Err error `json:"error,omitempty"`
}

func (r changeDestinationResponse) error() error { return r.Err }

func makeChangeDestinationEndpoint(s Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(changeDestinationRequest)
		err := s.ChangeDestination(req.ID, req.Destination)
		return changeDestinationResponse{Err: err}, nil
	}
}

type listCargosRequest struct{}

type listCargosResponse struct {
	Cargos []Cargo `json:"cargos,omitempty"`
	Err    error   `json:"error,omitempty"`
}

func (r listCargosResponse) error() error { return r.Err }

func makeListCargosEndpoint(s Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		_ = request.(listCargosRequest)
		return listCargosResponse{Cargos: s.Cargos(), Err: nil}, nil
	}
}

type listLocationsRequest struct{}

type listLocationsResponse struct {
	Locations []Location `json:"locations,omitempty"`
	Err       error      `json:"error,omitempty"`
}

func (r listLocationsResponse) error() error { return r.Err }

func makeListLocationsEndpoint(s Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		_ = request.(listLocationsRequest)
		return listLocationsResponse{Locations: s.Locations(), Err: nil}, nil
	}
}

// Set collects all of the endpoints that compose a booking cargo service.
type Set struct {
	BookCargoEndpoint         endpoint.Endpoint
	LoadCargoEndpoint         endpoint.Endpoint
	RequestRoutesEndpoint     endpoint.Endpoint
	AssignRouteEndpoint       endpoint.Endpoint
	ChangeDestinationEndpoint endpoint.Endpoint
	ListCargosEndpoint        endpoint.Endpoint
	ListLocationsEndpoint     endpoint.Endpoint
}

// NewSet returns a Set that wraps the provided server, and wires in all of
// the expected endpoint middlewares via the various parameters.
func NewSet(svc Service, otTracer stdopentracing.Tracer, zipkinTracer *stdzipkin.Tracer) Set {
	wrap := func(e endpoint.Endpoint, name string) endpoint.Endpoint {
		e = ratelimit.NewErroringLimiter(rate.NewLimiter(rate.Limit(1), 100))(e)
		e = circuitbreaker.Gobreaker(gobreaker.NewCircuitBreaker(gobreaker.Settings{Name: name}))(e)
		e = opentracing.TraceServer(otTracer, name)(e)
		if zipkinTracer != nil {
			e = zipkin.TraceEndpoint(zipkinTracer, name)(e)
		}
		return e
	}

	return Set{
		BookCargoEndpoint:         wrap(makeBookCargoEndpoint(svc), "BookCargo"),
		LoadCargoEndpoint:         wrap(makeLoadCargoEndpoint(svc), "LoadCargo"),
		RequestRoutesEndpoint:     wrap(makeRequestRoutesEndpoint(svc), "RequestRoutes"),
		AssignRouteEndpoint:       wrap(makeAssignRouteEndpoint(svc), "AssignRoute"),
		ChangeDestinationEndpoint: wrap(makeChangeDestinationEndpoint(svc), "ChangeDestination"),
		ListCargosEndpoint:        wrap(makeListCargosEndpoint(svc), "ListCargos"),
		ListLocationsEndpoint:     wrap(makeListLocationsEndpoint(svc), "ListLocations"),
	}
}

// BookNewCargo implements the service interface so Set can be used as a service
func (s Set) BookNewCargo(origin, destination string, deadline time.Time) (cargo.TrackingID, error) {
	resp, err := s.BookCargoEndpoint(context.Background(), bookCargoRequest{Origin: origin, Destination: destination, ArrivalDeadline: deadline})
	if err != nil {
		return cargo.TrackingID(""), err
	}
	response := resp.(bookCargoResponse)
	return response.ID, response.Err
}

// LoadCargo implements the service interface so Set can be used as a service
func (s Set) LoadCargo(id string) (Cargo, error) {
	resp, err := s.LoadCargoEndpoint(context.Background(), loadCargoRequest{ID: id})
	if err != nil {
		return Cargo{}, err
	}
	response := resp.(loadCargoResponse)
	if response.Err != nil {
		return Cargo{}, response.Err
	}
	return *response.Cargo, nil
}

// RequestPossibleRoutesForCargo implements the service interface so Set can be used as a service
func (s Set) RequestPossibleRoutesForCargo(id string) []cargo.Itinerary {
	resp, err := s.RequestRoutesEndpoint(context.Background(), requestRoutesRequest{ID: id})
	if err != nil {
		return []cargo.Itinerary{}
	}
	response := resp.(requestRoutesResponse)
	return response.Routes
}

// AssignCargoToRoute implements the service interface so Set can be used as a service
func (s Set) AssignCargoToRoute(id string, legs []cargo.Leg) error {
	resp, err := s.AssignRouteEndpoint(context.Background(), assignRouteRequest{ID: id, Legs: legs})
	if err != nil {
		return err
	}
	response := resp.(assignRouteResponse)
	return response.Err
}

// ChangeDestination implements the service interface so Set can be used as a service
func (s Set) ChangeDestination(id, destination string) error {
	resp, err := s.ChangeDestinationEndpoint(context.Background(), changeDestinationRequest{ID: id, Destination: destination})
	if err != nil {
		return err
	}
	response := resp.(changeDestinationResponse)
	return response.Err
}

// Cargos implements the service interface so Set can be used as a service
func (s Set) Cargos() []Cargo {
	resp, err := s.ListCargosEndpoint(context.Background(), listCargosRequest{})
	if err != nil {
		return []Cargo{}
	}
	response := resp.(listCargosResponse)
	return response.Cargos
}

// Locations implements the service interface so Set can be used as a service
func (s Set) Locations() []Location {
	resp, err := s.ListLocationsEndpoint(context.Background(), listLocationsRequest{})
	if err != nil {
		return []Location{}
	}
	response := resp.(listLocationsResponse)
	return response.Locations
}
