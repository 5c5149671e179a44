package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestScopedAPI(t *testing.T) {
	rec := &Recorder{}
	tel := NewScopedAPI("codechef_scraper", rec)

	tel.ReportBroken("scraper.profile", "404")
	tel.ReportDebug("fetch")
	tel.ReportCount("scraper.badges", 3)

	reports := rec.Reports()
	require.Len(t, reports, 3)
	require.Equal(t, "codechef_scraper: scraper.profile", reports[0].Id)
	require.Equal(t, []any{"404"}, reports[0].Params)
	require.Equal(t, LEVEL_DEBUG, reports[1].Level)
	require.Equal(t, int64(3), reports[2].Count)
	require.Equal(t, []string{"codechef_scraper: scraper.profile"}, rec.Broken())
}

func TestNestedScopes(t *testing.T) {
	rec := &Recorder{}
	tel := NewScopedAPI("service", NewScopedAPI("server", rec))

	tel.ReportWarning("aggregate")

	require.Equal(t, "server: service: aggregate", rec.Reports()[0].Id)
}

func TestSetupWithoutEndpoints(t *testing.T) {
	tel, err := Setup(context.Background(), "test:telemetry", Config{})
	require.NoError(t, err)
	require.Nil(t, tel.TracerProvider)
	require.Nil(t, tel.MeterProvider)
	require.NoError(t, tel.Shutdown(context.Background()))
}

func TestExportersDisabledWithoutEndpoint(t *testing.T) {
	spans, err := newSpanExporter(context.Background(), OtlpConnConfig{})
	require.NoError(t, err)
	require.Nil(t, spans)

	metrics, err := newMetricExporter(context.Background(), OtlpConnConfig{Headers: map[string]string{"a": "b"}})
	require.NoError(t, err)
	require.Nil(t, metrics)
}

func TestConnTransport(t *testing.T) {
	require.Equal(t, "http", OtlpConnConfig{HttpEndpoint: "http://localhost:4318"}.transport())
	require.Equal(t, "grpc", OtlpConnConfig{GrpcEndpoint: "http://localhost:4317"}.transport())
	require.Equal(t, "grpc", OtlpConnConfig{
		GrpcEndpoint: "http://localhost:4317",
		HttpEndpoint: "http://localhost:4318",
	}.transport())
}

func TestSetupTracesOnly(t *testing.T) {
	tel, err := Setup(context.Background(), "test:telemetry", Config{
		Otlp: OtlpConfig{
			Traces: OtlpConnConfig{HttpEndpoint: "http://127.0.0.1:4318/v1/traces"},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, tel.TracerProvider)
	require.Nil(t, tel.MeterProvider)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, tel.Shutdown(ctx))
}
