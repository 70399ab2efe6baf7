package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

func setupTelemetryDisabled(t *testing.T) *Telemetry {
	tel, err := Init(context.Background(), &Config{
		Enabled:     false,
		ServiceName: "test-service",
	})
	require.NoError(t, err)
	return tel
}

func TestNewCounter_Disabled(t *testing.T) {
	setupTelemetryDisabled(t)

	counter, err := NewCounter(MetricOpts{
		Name:        "test_counter",
		Description: "A test counter",
		Unit:        "1",
	})
	require.NoError(t, err)
	assert.NotNil(t, counter)
}

func TestCounter_AddAndInc_Disabled(t *testing.T) {
	setupTelemetryDisabled(t)

	counter, err := NewCounter(MetricOpts{
		Name:        "test_counter_add",
		Description: "A test counter for Add",
		Unit:        "1",
	})
	require.NoError(t, err)

	ctx := context.Background()

	// No-op providers: these must not panic.
	counter.Add(ctx, 5)
	counter.Add(ctx, 10, attribute.String("key", "value"))
	counter.Inc(ctx)
	counter.Inc(ctx, attribute.String("key", "value"))
}

func TestNewHistogram_Disabled(t *testing.T) {
	setupTelemetryDisabled(t)

	histogram, err := NewHistogram(MetricOpts{
		Name:        "test_histogram",
		Description: "A test histogram",
		Unit:        "ms",
	})
	require.NoError(t, err)
	assert.NotNil(t, histogram)

	histogram.Record(context.Background(), 12.5)
	histogram.Record(context.Background(), 99.9, attribute.String("key", "value"))
}

func TestTelemetry_Shutdown_Disabled(t *testing.T) {
	tel := setupTelemetryDisabled(t)

	// Disabled telemetry has no providers to stop.
	assert.NoError(t, tel.Shutdown(context.Background()))
}
