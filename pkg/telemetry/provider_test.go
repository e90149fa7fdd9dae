package telemetry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CTAG07/Sashizume/pkg/telemetry"
)

func TestSetup_Disabled(t *testing.T) {
	providers, err := telemetry.Setup(context.Background(), telemetry.DefaultConfig())
	require.NoError(t, err)
	assert.NoError(t, providers.Shutdown(context.Background()))
}

func TestSetup_StdoutExporter(t *testing.T) {
	cfg := telemetry.DefaultConfig()
	cfg.Enabled = true
	cfg.Environment = "test"

	providers, err := telemetry.Setup(context.Background(), cfg)
	require.NoError(t, err, "Setup failed")
	assert.NoError(t, providers.Shutdown(context.Background()), "Shutdown failed")
}

func TestSetup_InvalidExporter(t *testing.T) {
	cfg := telemetry.DefaultConfig()
	cfg.Enabled = true
	cfg.Exporter = "invalid"

	_, err := telemetry.Setup(context.Background(), cfg)
	assert.ErrorIs(t, err, telemetry.ErrUnsupportedExporter)
}

func TestSetup_DisabledSkipsValidation(t *testing.T) {
	cfg := telemetry.DefaultConfig()
	cfg.Exporter = "invalid"

	providers, err := telemetry.Setup(context.Background(), cfg)
	require.NoError(t, err)
	assert.Nil(t, providers.Tracer)
	assert.Nil(t, providers.Meter)
}

func TestSetup_StdoutProviders(t *testing.T) {
	cfg := telemetry.DefaultConfig()
	cfg.Enabled = true
	cfg.SampleRatio = 0.5
	cfg.MetricIntervalSec = 1

	providers, err := telemetry.Setup(context.Background(), cfg)
	require.NoError(t, err)
	require.NotNil(t, providers.Tracer)
	require.NotNil(t, providers.Meter)
	assert.NoError(t, providers.Shutdown(context.Background()))
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*telemetry.Config)
		wantErr error
	}{
		{"default", func(*telemetry.Config) {}, nil},
		{"otlp", func(c *telemetry.Config) { c.Exporter = telemetry.ExporterOTLP }, nil},
		{"no sampling", func(c *telemetry.Config) { c.SampleRatio = 0 }, nil},
		{"unknown exporter", func(c *telemetry.Config) { c.Exporter = "zipkin" }, telemetry.ErrUnsupportedExporter},
		{"empty exporter", func(c *telemetry.Config) { c.Exporter = "" }, telemetry.ErrUnsupportedExporter},
		{"negative ratio", func(c *telemetry.Config) { c.SampleRatio = -0.1 }, telemetry.ErrInvalidSampleRatio},
		{"ratio above one", func(c *telemetry.Config) { c.SampleRatio = 1.5 }, telemetry.ErrInvalidSampleRatio},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := telemetry.DefaultConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
