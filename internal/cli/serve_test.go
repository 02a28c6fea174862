package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/graphnest/pkg/errors"
	"github.com/matzehuels/graphnest/pkg/pipeline"
)

func testServer(t *testing.T, opts pipeline.Options) *httptest.Server {
	t.Helper()
	logger := log.New(&bytes.Buffer{})
	srv := httptest.NewServer(newRouter(pipeline.NewRunner(opts, logger), logger))
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealthz(t *testing.T) {
	srv := testServer(t, pipeline.DefaultOptions())

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestLayoutEndpoint(t *testing.T) {
	srv := testServer(t, pipeline.DefaultOptions())

	resp := post(t, srv.URL+"/v1/layout", etlDoc)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var body layoutResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Empty(t, body.Warnings)
	assert.Equal(t, 4, body.Stats.Items)
	assert.Equal(t, 2, body.Stats.Passes)

	byID := itemIndex(body.Document)
	assert.Equal(t, 300.0, byID["parse"].X)
	require.NotNil(t, byID["etl"].Bounds)
}

func TestLayoutEndpointWarnings(t *testing.T) {
	srv := testServer(t, pipeline.DefaultOptions())
	doc := `{"items": [{"id": "a"}, {"id": "b"}], "edges": [{"from": "a", "to": "b"}, {"from": "b", "to": "a"}]}`

	resp := post(t, srv.URL+"/v1/layout", doc)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body layoutResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Warnings, 1)
	assert.Contains(t, body.Warnings[0], "cycle")
}

func TestLayoutEndpointErrors(t *testing.T) {
	srv := testServer(t, pipeline.DefaultOptions())

	tests := []struct {
		name string
		body string
		code errors.Code
	}{
		{name: "malformed json", body: `{"items": [`, code: errors.ErrCodeInvalidFormat},
		{name: "dangling edge", body: `{"items": [{"id": "a"}], "edges": [{"from": "a", "to": "b"}]}`, code: errors.ErrCodeInvalidDocument},
		{name: "negative size", body: `{"items": [{"id": "a", "width": -5}]}`, code: errors.ErrCodeInvalidDocument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, srv.URL+"/v1/layout", tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var body errorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.code, body.Code)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestLayoutEndpointInvalidOptions(t *testing.T) {
	opts := pipeline.DefaultOptions()
	opts.Config.MaxSlotsPerLevel = 0
	srv := testServer(t, opts)

	resp := post(t, srv.URL+"/v1/layout", etlDoc)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestValidateEndpoint(t *testing.T) {
	srv := testServer(t, pipeline.DefaultOptions())

	resp := post(t, srv.URL+"/v1/validate", etlDoc)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var ok validateResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&ok))
	assert.True(t, ok.Valid)
	assert.Equal(t, 4, ok.Items)
	assert.Empty(t, ok.Problems)

	resp = post(t, srv.URL+"/v1/validate", `{"items": [{"id": "a", "container": "ghost"}]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var bad validateResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&bad))
	assert.False(t, bad.Valid)
	require.Len(t, bad.Problems, 1)
	assert.Contains(t, bad.Problems[0], "container")
}

func TestMethodNotAllowed(t *testing.T) {
	srv := testServer(t, pipeline.DefaultOptions())

	resp, err := http.Get(srv.URL + "/v1/layout")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusFor(errors.ErrCodeInvalidDocument))
	assert.Equal(t, http.StatusNotFound, statusFor(errors.ErrCodeFileNotFound))
	assert.Equal(t, http.StatusUnsupportedMediaType, statusFor(errors.ErrCodeUnsupported))
	assert.Equal(t, http.StatusInternalServerError, statusFor(errors.ErrCodeInternal))
	assert.Equal(t, http.StatusInternalServerError, statusFor(""))
}
