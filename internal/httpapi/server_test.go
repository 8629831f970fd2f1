package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/mesh-intelligence/conchdesk/internal/store"
	"github.com/mesh-intelligence/conchdesk/internal/workspace"
	"github.com/mesh-intelligence/conchdesk/pkg/types"
)

type alertRecorder struct {
	mu    sync.Mutex
	texts []string
}

func (a *alertRecorder) Notify(text string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.texts = append(a.texts, text)
}

func (a *alertRecorder) count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.texts)
}

type testEnv struct {
	handler http.Handler
	backend *store.Backend
	alerts  *alertRecorder
}

func setupServer(t *testing.T, opts Options) *testEnv {
	t.Helper()
	b := store.NewBackend()
	require.NoError(t, b.Attach(types.StoreConfig{
		Backend: types.BackendSQLite,
		URL:     filepath.Join(t.TempDir(), "conchdesk.db"),
	}))
	t.Cleanup(func() { b.Detach() })

	alerts := &alertRecorder{}
	srv := NewServer(zaptest.NewLogger(t),
		workspace.NewRegistry(b),
		workspace.NewTracker(b),
		workspace.NewIntake(b, alerts, ""),
		opts)
	return &testEnv{handler: srv.Handler(), backend: b, alerts: alerts}
}

func (e *testEnv) do(t *testing.T, method, path, contentType, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) doJSON(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	return e.do(t, method, path, "application/json", body)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func errorOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[map[string]string](t, rec)["error"]
}

type engagementBody struct {
	Engagement types.Engagement `json:"engagement"`
}

type detailBody struct {
	Engagement      types.Engagement       `json:"engagement"`
	DeliverableRuns []types.DeliverableRun `json:"deliverableRuns"`
}

type runBody struct {
	DeliverableRun types.DeliverableRun `json:"deliverableRun"`
}

// createAcme posts the Acme engagement and returns it with its runs.
func (e *testEnv) createAcme(t *testing.T) detailBody {
	t.Helper()
	rec := e.doJSON(t, http.MethodPost, "/engagements",
		`{"companyName":"Acme Inc","contactEmail":"owner@acme.com"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[engagementBody](t, rec)

	rec = e.doJSON(t, http.MethodGet, "/engagements/"+created.Engagement.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	return decode[detailBody](t, rec)
}

func TestHealthz(t *testing.T) {
	env := setupServer(t, Options{})
	rec := env.do(t, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode[map[string]string](t, rec)["status"])
}

func TestCreateEngagementSeedsEightRuns(t *testing.T) {
	env := setupServer(t, Options{})
	detail := env.createAcme(t)

	assert.Equal(t, "active", detail.Engagement.Status)
	assert.Equal(t, "Acme Inc", detail.Engagement.CompanyName)
	require.Len(t, detail.DeliverableRuns, 8)
	keys := map[string]bool{}
	for _, r := range detail.DeliverableRuns {
		keys[r.Key] = true
		assert.Equal(t, types.StatusTodo, r.Status)
	}
	for _, d := range types.StandardDeliverables {
		assert.True(t, keys[d.Key], d.Key)
	}
}

func TestCreateEngagementForm(t *testing.T) {
	env := setupServer(t, Options{})
	form := url.Values{"companyName": {" Globex "}, "contactEmail": {"ops@globex.com"}}
	rec := env.do(t, http.MethodPost, "/engagements", "application/x-www-form-urlencoded", form.Encode())
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Globex", decode[engagementBody](t, rec).Engagement.CompanyName)
}

func TestCreateEngagementRequiresFields(t *testing.T) {
	tests := []struct {
		name, body string
	}{
		{"missing email", `{"companyName":"Acme"}`},
		{"blank name", `{"companyName":"  ","contactEmail":"a@b.c"}`},
		{"not json", `nope`},
		{"array", `[]`},
		{"number fields", `{"companyName":1,"contactEmail":2}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupServer(t, Options{})
			rec := env.doJSON(t, http.MethodPost, "/engagements", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "companyName and contactEmail are required", errorOf(t, rec))

			list := env.doJSON(t, http.MethodGet, "/engagements", "")
			assert.Empty(t, decode[map[string][]types.Engagement](t, list)["engagements"])
		})
	}
}

func TestListEngagements(t *testing.T) {
	env := setupServer(t, Options{})

	rec := env.do(t, http.MethodGet, "/engagements", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"engagements":[]}`, rec.Body.String())

	env.createAcme(t)
	rec = env.do(t, http.MethodGet, "/engagements", "", "")
	list := decode[map[string][]types.Engagement](t, rec)["engagements"]
	require.Len(t, list, 1)
	assert.Equal(t, "owner@acme.com", list[0].ContactEmail)
}

func TestUpdateEngagement(t *testing.T) {
	env := setupServer(t, Options{})
	id := env.createAcme(t).Engagement.ID

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantError  string
	}{
		{"status change", `{"status":" paused "}`, http.StatusOK, ""},
		{"empty object", `{}`, http.StatusBadRequest, "No valid fields to update"},
		{"only non-string values", `{"status":3,"companyName":null}`, http.StatusBadRequest, "No valid fields to update"},
		{"unknown keys", `{"foo":"bar"}`, http.StatusBadRequest, "No valid fields to update"},
		{"not an object", `"paused"`, http.StatusBadRequest, "Invalid payload"},
		{"null", `null`, http.StatusBadRequest, "Invalid payload"},
		{"blank field", `{"companyName":"   "}`, http.StatusBadRequest, "companyName, contactEmail and status cannot be blank"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.doJSON(t, http.MethodPatch, "/engagements/"+id, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, errorOf(t, rec))
				return
			}
			assert.Equal(t, "paused", decode[engagementBody](t, rec).Engagement.Status)
		})
	}

	rec := env.doJSON(t, http.MethodGet, "/engagements/"+id, "")
	detail := decode[detailBody](t, rec)
	assert.Equal(t, "Acme Inc", detail.Engagement.CompanyName, "rejected patches wrote nothing")
	assert.Equal(t, "paused", detail.Engagement.Status)

	rec = env.doJSON(t, http.MethodPatch, "/engagements/missing", `{"status":"paused"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Engagement not found", errorOf(t, rec))
}

func TestDeleteEngagementThenGet(t *testing.T) {
	env := setupServer(t, Options{})
	id := env.createAcme(t).Engagement.ID

	rec := env.do(t, http.MethodDelete, "/engagements/"+id, "", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = env.do(t, http.MethodGet, "/engagements/"+id, "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Engagement not found", errorOf(t, rec))

	rec = env.do(t, http.MethodDelete, "/engagements/"+id, "", "")
	assert.Equal(t, http.StatusNoContent, rec.Code, "deleting again is not an error")
}

func TestExportEngagement(t *testing.T) {
	env := setupServer(t, Options{})
	detail := env.createAcme(t)
	id := detail.Engagement.ID

	rec := env.do(t, http.MethodGet, "/engagements/"+id+"/export", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/markdown; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="engagement-`+id+`-summary.md"`, rec.Header().Get("Content-Disposition"))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	doc := string(body)
	assert.True(t, strings.HasPrefix(doc, "# Reliability Engagement Summary: Acme Inc\n"))
	assert.Equal(t, 8, strings.Count(doc, "\n### "))
	assert.Equal(t, 8, strings.Count(doc, "\n  (none)\n"))

	rec = env.do(t, http.MethodGet, "/engagements/missing/export", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBasePath(t *testing.T) {
	env := setupServer(t, Options{BasePath: "/api/workspace/"})

	rec := env.do(t, http.MethodGet, "/api/workspace/engagements", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/engagements", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Not found", errorOf(t, rec))
}

func TestMethodNotAllowed(t *testing.T) {
	env := setupServer(t, Options{})
	rec := env.do(t, http.MethodPut, "/engagements", "", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestStoreFailureIsGeneric(t *testing.T) {
	env := setupServer(t, Options{})
	require.NoError(t, env.backend.Detach())

	rec := env.do(t, http.MethodGet, "/engagements", "", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to list engagements", errorOf(t, rec))
}

func TestNilLoggerIsAllowed(t *testing.T) {
	srv := NewServer(nil, workspace.NewRegistry(nil), workspace.NewTracker(nil), workspace.NewIntake(nil, nil, ""), Options{})
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/engagements", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Server configuration error", errorOf(t, rec))
}
