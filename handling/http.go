package handling

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	kitlog "github.com/go-kit/kit/log"
	"github.com/go-kit/kit/transport"
	kithttp "github.com/go-kit/kit/transport/http"

	"github.com/BennettSmith/CargoTrackingExample/errs"
)

// MakeHandler returns a new handler for the handling service
func MakeHandler(endpoints Set, logger kitlog.Logger) http.Handler {
	r := mux.NewRouter()

	opts := []kithttp.ServerOption{
		kithttp.ServerErrorHandler(transport.NewLogErrorHandler(logger)),
		kithttp.ServerErrorEncoder(encodeError),
	}

	registerEventHandler := kithttp.NewServer(
		endpoints.RegisterEventEndpoint,
		decodeRegisterEventRequest,
		encodeResponse,
		opts...,
	)

	r.Handle("/handling/v1/events", registerEventHandler).Methods("POST")

	return r
}

func decodeRegisterEventRequest(_ context.Context, r *http.Request) (interface{}, error) {
	var body struct {
		CompletionTime time.Time `json:"completion_time"`
		TrackingID     string    `json:"tracking_id"`
		VoyageNumber   string    `json:"voyage"`
		Location       string    `json:"location"`
		EventType      string    `json:"event_type"`
	}

	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, err
	}

	return registerEventRequest{
		TrackingID:     body.TrackingID,
		Location:       body.Location,
		Voyage:         body.VoyageNumber,
		EventType:      body.EventType,
		CompletionTime: body.CompletionTime,
	}, nil
}

func encodeResponse(ctx context.Context, w http.ResponseWriter, response interface{}) error {
	if e, ok := response.(errorer); ok && e.error() != nil {
		encodeError(ctx, e.error(), w)
		return nil
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	return json.NewEncoder(w).Encode(response)
}

type errorer interface {
	error() error
}

// encode errors from business-logic
func encodeError(_ context.Context, err error, w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	var validation *errs.ValidationError
	if errors.As(err, &validation) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error":        "validation failed",
			"field_errors": validation.FieldErrors,
		})
		return
	}

	switch {
	case errors.Is(err, errs.ErrEntityNotFound):
		w.WriteHeader(http.StatusNotFound)
	case errors.Is(err, errs.ErrInvalidOperation), errors.Is(err, errs.ErrBusinessRuleViolation):
		w.WriteHeader(http.StatusUnprocessableEntity)
	case errors.Is(err, errs.ErrConcurrencyConflict):
		w.WriteHeader(http.StatusConflict)
	default:
		w.WriteHeader(http.StatusInternalServerError)
	}
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error": err.Error(),
	})
}
