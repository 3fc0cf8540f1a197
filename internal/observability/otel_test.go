package observability

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRatio(t *testing.T) {
	require.Equal(t, 0.1, parseRatio(""))
	require.Equal(t, 0.1, parseRatio("abc"))
	require.Equal(t, 0.0, parseRatio("-2"))
	require.Equal(t, 1.0, parseRatio("7"))
	require.Equal(t, 0.5, parseRatio("0.5"))
}

func TestParseHeaders(t *testing.T) {
	require.Nil(t, parseHeaders(""))
	require.Nil(t, parseHeaders("broken, =x"))
	require.Equal(t, map[string]string{"a": "1", "b": "2=3"}, parseHeaders(" a=1 ,b=2=3,c="))
}

func TestTraceSettingsFromEnv(t *testing.T) {
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("OTEL_SAMPLER_RATIO", "0.25")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "collector:4318")
	s := TraceSettingsFromEnv()
	require.True(t, s.Enabled)
	require.Equal(t, 0.25, s.SampleRatio)
	require.Equal(t, "collector:4318", s.Endpoint)
	require.False(t, s.Insecure)
}
