// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace/noop"
)

func TestNewProvider_Disabled(t *testing.T) {
	provider, err := NewProvider(context.Background(), Config{Enabled: false, ExporterType: ExporterGRPC})
	require.NoError(t, err)
	assert.False(t, provider.Enabled())
	assert.NoError(t, provider.ForceFlush(context.Background()))
	assert.NoError(t, provider.Shutdown(context.Background()))

	_, span := otel.Tracer("test").Start(context.Background(), "noop-check")
	assert.False(t, span.IsRecording())
	span.End()
}

func TestNewProvider_InvalidExporter(t *testing.T) {
	_, err := NewProvider(context.Background(), Config{Enabled: true, ExporterType: "invalid"})
	require.Error(t, err)
	assert.Equal(t, "unsupported exporter type: invalid (supported: grpc, http)", err.Error())
}

func TestNewProvider_OTLPExporters(t *testing.T) {
	for _, typ := range []string{ExporterGRPC, ExporterHTTP} {
		t.Run(typ, func(t *testing.T) {
			// Exporters connect lazily, so no collector is needed.
			p, err := NewProvider(context.Background(), Config{
				Enabled:      true,
				ServiceName:  "vuejs-test",
				ExporterType: typ,
				Endpoint:     "127.0.0.1:1",
				Insecure:     true,
				SamplingRate: 0,
			})
			require.NoError(t, err)
			assert.True(t, p.Enabled())
			_ = p.Shutdown(context.Background())
		})
	}
}

func TestSampler(t *testing.T) {
	assert.Equal(t, "AlwaysOnSampler", sampler(1).Description())
	assert.Equal(t, "AlwaysOffSampler", sampler(0).Description())
	assert.Contains(t, sampler(0.5).Description(), "TraceIDRatioBased")
}

func TestProviderExportsSpans(t *testing.T) {
	exp := tracetest.NewInMemoryExporter()
	p, err := NewProviderWithExporter(context.Background(), Config{ServiceName: "vuejs-test", SamplingRate: 1}, exp)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = p.Shutdown(context.Background())
		otel.SetTracerProvider(noop.NewTracerProvider())
	})

	_, span := Tracer("settingsform").Start(context.Background(), "settings.submit")
	span.SetAttributes(LibraryAttributes("vue", "cdn", "unpkg", "3.2.37")...)
	RecordError(span, errors.New("boom"), "validation")
	span.End()

	require.NoError(t, p.ForceFlush(context.Background()))
	spans := exp.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "settings.submit", spans[0].Name)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
	assert.Contains(t, spans[0].Attributes, attribute.String(LibraryNameKey, "vue"))
	assert.Contains(t, spans[0].Attributes, attribute.String(ErrorTypeKey, "validation"))
}

func TestLibraryAttributes_OmitsEmpty(t *testing.T) {
	attrs := LibraryAttributes("petitevue", "local", "", "")
	assert.Len(t, attrs, 2)
}

func TestRecordError_Nil(t *testing.T) {
	_, span := otel.Tracer("test").Start(context.Background(), "x")
	RecordError(span, nil, "none")
	span.End()
}
