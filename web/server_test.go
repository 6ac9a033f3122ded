// ABOUTME: Tests for the web output server
// ABOUTME: Drives the routes through httptest against an in-memory backend

package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/propkit/models"
	"github.com/harperreed/propkit/output"
	"github.com/harperreed/propkit/persist"
	"github.com/harperreed/propkit/storage"
)

func setupServer(t *testing.T) (http.Handler, *storage.Memory) {
	t.Helper()
	kv := storage.NewMemory()
	require.NoError(t, kv.Set(models.KeyBudget, `[{"id":"b1","category":"인건비","name":"연구원","unit":"명","amount":1000},{"id":"b2","category":"기타","name":"다과","unit":"회","amount":50}]`))
	require.NoError(t, kv.Set(models.KeyEffects, `["지역 활성화"]`))

	srv, err := NewServer(output.New(persist.New(kv)), nil)
	require.NoError(t, err)
	return srv.Handler(), kv
}

func postDelete(h http.Handler, section, index string) *httptest.ResponseRecorder {
	form := url.Values{"section": {section}, "index": {index}}
	req := httptest.NewRequest(http.MethodPost, "/output/delete", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestOutputPage(t *testing.T) {
	h, _ := setupServer(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "연구원")
	assert.Contains(t, body, "1050")
	assert.Contains(t, body, "지역 활성화")
	assert.Contains(t, body, `action="/output/delete"`)
}

func TestUnknownPath(t *testing.T) {
	h, _ := setupServer(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDashboardPage(t *testing.T) {
	h, _ := setupServer(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<pre>")
}

func TestAPIOutput(t *testing.T) {
	h, _ := setupServer(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/output", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var snap output.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Len(t, snap.Budget, 2)
	assert.Equal(t, 1050.0, snap.BudgetTotal)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/output", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestDeleteRedirectsAndPersists(t *testing.T) {
	h, kv := setupServer(t)

	rec := postDelete(h, output.SectionBudget, "0")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	raw, err := kv.Get(models.KeyBudget)
	require.NoError(t, err)
	assert.NotContains(t, raw, "연구원")
	assert.Contains(t, raw, "다과")
}

func TestDeleteRejectsBadRequests(t *testing.T) {
	h, _ := setupServer(t)

	tests := []struct {
		name    string
		section string
		index   string
	}{
		{"non-numeric index", output.SectionBudget, "x"},
		{"index out of range", output.SectionBudget, "9"},
		{"unknown section", "contacts", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postDelete(h, tt.section, tt.index)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/output/delete", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
