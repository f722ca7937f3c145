package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/pkgmeta/internal/logging"
)

const validDoc = `{
	"title": "T",
	"url": "http://x/",
	"timestamp": "2015-04-29 13:22:00 UTC",
	"broadcast": "2015-04-29",
	"license": "CC-BY",
	"gen": 1
}`

const zeroDoc = `{
	"title": "T",
	"url": "http://x/",
	"timestamp": "2015-04-29 13:22:00 UTC",
	"broadcast": "2015-04-29",
	"license": "CC-BY",
	"images": 2,
	"index": "start.html"
}`

func do(t *testing.T, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	srv := New(logging.NewNullLogger())
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	return rec, out
}

func TestHealth(t *testing.T) {
	rec, body := do(t, http.MethodGet, "/api/v1/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, float64(1), body["latestGeneration"])
}

func TestValidate(t *testing.T) {
	rec, body := do(t, http.MethodPost, "/api/v1/validate", validDoc)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["valid"])
	assert.Empty(t, body["failures"])
}

func TestValidate_Invalid(t *testing.T) {
	rec, body := do(t, http.MethodPost, "/api/v1/validate", `{"gen": 1, "title": "", "publisher": "a", "partner": "b"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, false, body["valid"])

	failures := body["failures"].([]any)
	var fields []string
	for _, f := range failures {
		fields = append(fields, f.(map[string]any)["field"].(string))
	}
	assert.Equal(t, []string{"broadcast", "license", "partner", "publisher", "timestamp", "title", "url"}, fields)
}

func TestValidate_OwnGenerationOrMigrated(t *testing.T) {
	rec, body := do(t, http.MethodPost, "/api/v1/validate", zeroDoc)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(0), body["generation"])

	rec, body = do(t, http.MethodPost, "/api/v1/validate?migrate=true", zeroDoc)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), body["generation"])
}

func TestValidate_BadRequests(t *testing.T) {
	for name, input := range map[string]string{
		"malformed":  `{"title": `,
		"not object": `[]`,
		"future gen": `{"gen": 2}`,
		"string gen": `{"gen": "1"}`,
	} {
		t.Run(name, func(t *testing.T) {
			rec, body := do(t, http.MethodPost, "/api/v1/validate", input)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestMigrate(t *testing.T) {
	rec, body := do(t, http.MethodPost, "/api/v1/migrate", zeroDoc)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), body["gen"])
	assert.NotContains(t, body, "images")
	assert.Equal(t, map[string]any{"html": map[string]any{"main": "start.html", "keep_formatting": false}}, body["content"])

	rec, _ = do(t, http.MethodPost, "/api/v1/migrate", `{"gen": 5}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTemplate(t *testing.T) {
	rec, body := do(t, http.MethodPost, "/api/v1/template", `{"title": "T", "bogus": 1}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "T", body["title"])
	assert.Equal(t, "$BROADCAST", body["broadcast"])
	assert.NotContains(t, body, "bogus")

	rec, body = do(t, http.MethodPost, "/api/v1/template?generation=0", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(0), body["images"])

	rec, _ = do(t, http.MethodPost, "/api/v1/template?generation=7", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = do(t, http.MethodPost, "/api/v1/template?generation=x", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListenAndServe_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- New(logging.NewNullLogger()).ListenAndServe(ctx, "127.0.0.1:0")
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
