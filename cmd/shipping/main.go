package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-kit/kit/log"
	kitprometheus "github.com/go-kit/kit/metrics/prometheus"
	stdopentracing "github.com/opentracing/opentracing-go"
	stdzipkin "github.com/openzipkin/zipkin-go"
	zipkinhttp "github.com/openzipkin/zipkin-go/reporter/http"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/BennettSmith/CargoTrackingExample/booking"
	"github.com/BennettSmith/CargoTrackingExample/cargo"
	"github.com/BennettSmith/CargoTrackingExample/config"
	"github.com/BennettSmith/CargoTrackingExample/event"
	"github.com/BennettSmith/CargoTrackingExample/handling"
	"github.com/BennettSmith/CargoTrackingExample/inmem"
	"github.com/BennettSmith/CargoTrackingExample/inspection"
	"github.com/BennettSmith/CargoTrackingExample/routing"
	"github.com/BennettSmith/CargoTrackingExample/tracking"
)

func main() {
	var logger log.Logger
	logger = log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)

	cfg, err := config.Load()
	if err != nil {
		logger.Log("err", err)
		os.Exit(1)
	}

	var zipkinTracer *stdzipkin.Tracer
	if cfg.ZipkinURL != "" {
		reporter := zipkinhttp.NewReporter(cfg.ZipkinURL)
		defer reporter.Close()
		endpoint, err := stdzipkin.NewEndpoint("shipping", cfg.HTTPAddr)
		if err != nil {
			logger.Log("err", err)
			os.Exit(1)
		}
		zipkinTracer, err = stdzipkin.NewTracer(reporter, stdzipkin.WithLocalEndpoint(endpoint))
		if err != nil {
			logger.Log("err", err)
			os.Exit(1)
		}
	}
	otTracer := stdopentracing.GlobalTracer()

	cargos := inmem.NewCargoRepository()
	locations := inmem.NewLocationRepository()
	voyages := inmem.NewVoyageRepository()
	handlingEvents := inmem.NewHandlingEventRepository()

	dispatcher := event.NewLoggingDispatcher(log.With(logger, "component", "events"))
	routingService := routing.NewService(voyages)

	fieldKeys := []string{"method"}

	var bookingService booking.Service
	{
		bookingService = booking.NewService(cargos, locations, routingService, dispatcher)
		bookingService = booking.NewLoggingService(log.With(logger, "component", "booking"), bookingService)
		bookingService = booking.NewInstrumentingService(
			kitprometheus.NewCounterFrom(stdprometheus.CounterOpts{
				Namespace: "api",
				Subsystem: "booking_service",
				Name:      "request_count",
				Help:      "Number of requests received.",
			}, fieldKeys),
			kitprometheus.NewSummaryFrom(stdprometheus.SummaryOpts{
				Namespace: "api",
				Subsystem: "booking_service",
				Name:      "request_latency_microseconds",
				Help:      "Total duration of requests in microseconds.",
			}, fieldKeys),
			bookingService,
		)
	}

	var inspectionService inspection.Service
	{
		inspectionService = inspection.NewService(cargos, dispatcher)
		inspectionService = inspection.NewLoggingService(log.With(logger, "component", "inspection"), inspectionService)
	}

	var handlingService handling.Service
	{
		factory := &cargo.HandlingEventFactory{
			CargoRepository:    cargos,
			VoyageRepository:   voyages,
			LocationRepository: locations,
		}
		handlingService = handling.NewService(handlingEvents, factory, inspectionService)
		handlingService = handling.NewLoggingService(log.With(logger, "component", "handling"), handlingService)
		handlingService = handling.NewInstrumentingService(
			kitprometheus.NewCounterFrom(stdprometheus.CounterOpts{
				Namespace: "api",
				Subsystem: "handling_service",
				Name:      "request_count",
				Help:      "Number of requests received.",
			}, fieldKeys),
			kitprometheus.NewSummaryFrom(stdprometheus.SummaryOpts{
				Namespace: "api",
				Subsystem: "handling_service",
				Name:      "request_latency_microseconds",
				Help:      "Total duration of requests in microseconds.",
			}, fieldKeys),
			handlingService,
		)
	}

	var trackingService tracking.Service
	{
		trackingService = tracking.NewService(cargos)
		trackingService = tracking.NewLoggingService(log.With(logger, "component", "tracking"), trackingService)
		trackingService = tracking.NewInstrumentingService(
			kitprometheus.NewCounterFrom(stdprometheus.CounterOpts{
				Namespace: "api",
				Subsystem: "tracking_service",
				Name:      "request_count",
				Help:      "Number of requests received.",
			}, fieldKeys),
			kitprometheus.NewSummaryFrom(stdprometheus.SummaryOpts{
				Namespace: "api",
				Subsystem: "tracking_service",
				Name:      "request_latency_microseconds",
				Help:      "Total duration of requests in microseconds.",
			}, fieldKeys),
			trackingService,
		)
	}

	bookingEndpoints := booking.NewSet(bookingService, otTracer, zipkinTracer)
	handlingEndpoints := handling.NewSet(handlingService, otTracer, zipkinTracer)
	trackingEndpoints := tracking.NewSet(trackingService, otTracer, zipkinTracer)

	httpLogger := log.With(logger, "component", "http")

	mux := http.NewServeMux()
	mux.Handle("/booking/v1/", booking.MakeHandler(bookingEndpoints, httpLogger))
	mux.Handle("/handling/v1/", handling.MakeHandler(handlingEndpoints, httpLogger))
	mux.Handle("/tracking/v1/", tracking.MakeHandler(trackingEndpoints, httpLogger))
	mux.Handle("/metrics", promhttp.Handler())

	errc := make(chan error, 2)
	go func() {
		logger.Log("transport", "http", "address", cfg.HTTPAddr, "msg", "listening")
		errc <- http.ListenAndServe(cfg.HTTPAddr, mux)
	}()
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
		errc <- fmt.Errorf("%s", <-c)
	}()

	logger.Log("terminated", <-errc)
}
