package metrics

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"gotest.tools/v3/assert"
)

func TestTokenAcquisitions(t *testing.T) {
	before := testutil.ToFloat64(TokenAcquisitions.WithLabelValues(SourceCache))
	TokenAcquisitions.WithLabelValues(SourceCache).Inc()
	assert.Equal(t, testutil.ToFloat64(TokenAcquisitions.WithLabelValues(SourceCache)), before+1)
}

func TestInstrumentTransport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	t.Cleanup(srv.Close)

	registry := NewRegistry()
	client := &http.Client{Transport: InstrumentTransport(nil)}

	resp, err := client.Get(srv.URL)
	assert.NilError(t, err)
	resp.Body.Close()

	families, err := registry.Gather()
	assert.NilError(t, err)

	var found bool
	for _, family := range families {
		if family.GetName() != "intellim_http_request_duration_seconds" {
			continue
		}

		for _, m := range family.GetMetric() {
			labels := map[string]string{}
			for _, l := range m.GetLabel() {
				labels[l.GetName()] = l.GetValue()
			}

			if labels["code"] == "403" && labels["method"] == "get" {
				found = true
				assert.Assert(t, m.GetHistogram().GetSampleCount() >= 1)
			}
		}
	}

	assert.Assert(t, found, "expected a request_duration observation for GET 403")
}

func TestWriteTextfile(t *testing.T) {
	TokenAcquisitions.WithLabelValues(SourceRequest).Inc()

	path := filepath.Join(t.TempDir(), "intellim.prom")
	assert.NilError(t, WriteTextfile(path, NewRegistry()))

	b, err := os.ReadFile(path)
	assert.NilError(t, err)
	assert.Assert(t, strings.Contains(string(b), `intellim_token_acquisitions_total{source="request"}`))
}
