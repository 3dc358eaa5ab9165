package upload_test

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mvckit/pkg/upload"
)

func TestPrometheusMetrics(t *testing.T) {
	t.Parallel()
	reg := prometheus.NewRegistry()
	metrics, err := upload.NewPrometheusMetrics(reg)
	require.NoError(t, err)

	cfg := testConfig(t)
	m := upload.New(cfg, upload.WithMetrics(metrics))
	materialize(t, m, newMultipartRequest(t, "/",
		field("a", "12345"),
		field("b", "1"),
		filePart("f", "f.txt", "text/plain", "abc"),
		filePart("empty", "", "", ""),
	))

	expected := `
# HELP mvckit_upload_parts_total Multipart parts decoded, by kind.
# TYPE mvckit_upload_parts_total counter
mvckit_upload_parts_total{kind="empty"} 1
mvckit_upload_parts_total{kind="field"} 2
mvckit_upload_parts_total{kind="file"} 1
# HELP mvckit_upload_bytes_total Bytes of multipart part content decoded, by kind.
# TYPE mvckit_upload_bytes_total counter
mvckit_upload_bytes_total{kind="field"} 6
mvckit_upload_bytes_total{kind="file"} 3
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"mvckit_upload_parts_total", "mvckit_upload_bytes_total"))

	cfg.SizeLimit = 1
	materialize(t, upload.New(cfg, upload.WithMetrics(metrics)), newMultipartRequest(t, "/", field("a", "1")))

	expected = `
# HELP mvckit_upload_failures_total Multipart decode passes aborted, by reason.
# TYPE mvckit_upload_failures_total counter
mvckit_upload_failures_total{reason="size_limit"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "mvckit_upload_failures_total"))
}

func TestNewPrometheusMetrics_ReusesRegisteredCollectors(t *testing.T) {
	t.Parallel()
	reg := prometheus.NewRegistry()

	first, err := upload.NewPrometheusMetrics(reg)
	require.NoError(t, err)
	second, err := upload.NewPrometheusMetrics(reg)
	require.NoError(t, err)

	first.Failed(upload.ReasonMalformed)
	second.Failed(upload.ReasonMalformed)

	count, err := testutil.GatherAndCount(reg, "mvckit_upload_failures_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
