package telemetry

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/nathanmaher41/UFCWebScraper/lib/configutil"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/trace"
)

type Telemetry struct {
	TracerProvider *trace.TracerProvider
	MeterProvider  *metric.MeterProvider
}

var current Telemetry

// searches up the filesystem from the cwd to find a file
// called telemetry.json5, once found it will then use it
// as a config to setup telemetry. no file means no exporters,
// spans become no-ops and the CLI keeps working offline.
func SetupFromEnv(ctx context.Context, serviceName string) error {
	cfg, err := configutil.ReadRecursively[config]("telemetry.json5")
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	return Setup(ctx, serviceName, cfg)
}

func Setup(ctx context.Context, serviceName string, cfg config) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second*15)
	defer cancel()

	r, err := newResource(serviceName)
	if err != nil {
		return err
	}

	tracerProvider, err := newTraceProvider(ctx, r, cfg)
	if err != nil {
		return err
	}
	if tracerProvider != nil {
		otel.SetTracerProvider(tracerProvider)
		current.TracerProvider = tracerProvider
	}

	meterProvider, err := newMetricProvider(ctx, r, cfg)
	if err != nil {
		return err
	}
	if meterProvider != nil {
		otel.SetMeterProvider(meterProvider)
		current.MeterProvider = meterProvider
	}

	return nil
}

func Shutdown(ctx context.Context) error {
	errlist := []error{}
	if current.TracerProvider != nil {
		err := current.TracerProvider.Shutdown(ctx)
		if err != nil {
			errlist = append(errlist, err)
		}
	}
	if current.MeterProvider != nil {
		err := current.MeterProvider.Shutdown(ctx)
		if err != nil {
			errlist = append(errlist, err)
		}
	}
	return errors.Join(errlist...)
}

var setupTestEnvironments = map[string]bool{}

// sets up telemetry in a testing environment, ensuring that it isn't
// set up more than once
func SetupForTesting(serviceName string) func() {
	if setupTestEnvironments[serviceName] {
		return func() {}
	}
	setupTestEnvironments[serviceName] = true

	InitSlog(true)
	err := SetupFromEnv(context.Background(), serviceName)
	if err != nil {
		panic(err)
	}

	return func() {
		err := Shutdown(context.Background())
		if err != nil {
			panic(err)
		}
	}
}
