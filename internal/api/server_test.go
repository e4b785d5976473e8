package api

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/structura/structura/internal/analysis"
	"github.com/structura/structura/internal/archive"
	"github.com/structura/structura/internal/config"
	"github.com/structura/structura/internal/report"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestServer(t *testing.T, mutate func(*config.Config)) (*Server, *archive.Store) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Server.RateLimit = 1000
	cfg.Server.RateBurst = 1000
	if mutate != nil {
		mutate(cfg)
	}

	store, err := archive.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	s := New(cfg, store, nil)
	s.now = func() time.Time { return time.Date(2025, 11, 5, 14, 30, 0, 0, time.UTC) }
	return s, store
}

func do(t *testing.T, h http.Handler, method, target, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	s, _ := newTestServer(t, nil)
	rec := do(t, s.Handler(), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestCatalog(t *testing.T) {
	s, _ := newTestServer(t, nil)
	rec := do(t, s.Handler(), http.MethodGet, "/api/v1/catalog", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Materials    []map[string]any `json:"materials"`
		SeismicZones []map[string]any `json:"seismic_zones"`
		Shapes       []map[string]any `json:"shapes"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Materials, 4)
	assert.Len(t, body.SeismicZones, 4)
	assert.Len(t, body.Shapes, 3)
}

func TestAnalysisDefaults(t *testing.T) {
	s, _ := newTestServer(t, nil)
	rec := do(t, s.Handler(), http.MethodPost, "/api/v1/analysis", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body analysisResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, analysis.DefaultParameters(), body.Parameters)
	assert.Equal(t, analysis.Evaluate(analysis.DefaultParameters()), body.Result)
	assert.Equal(t, 7065, body.Display.WeightKg)
	assert.Equal(t, "STRUCTURALLY SOUND", body.Status)
}

func TestAnalysisPartialBody(t *testing.T) {
	s, _ := newTestServer(t, nil)
	rec := do(t, s.Handler(), http.MethodPost, "/api/v1/analysis", `{"load_type":"udl","material":"timber"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body analysisResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, analysis.UDL, body.Parameters.LoadType)
	assert.Equal(t, 12.5, body.Parameters.Span)
}

func TestAnalysisValidation(t *testing.T) {
	s, _ := newTestServer(t, nil)
	rec := do(t, s.Handler(), http.MethodPost, "/api/v1/analysis", `{"span":-1,"material":"granite"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "invalid parameters", body.Error)
	assert.Len(t, body.Problems, 2)

	rec = do(t, s.Handler(), http.MethodPost, "/api/v1/analysis", `{"span":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalysisOverflow(t *testing.T) {
	s, _ := newTestServer(t, nil)
	rec := do(t, s.Handler(), http.MethodPost, "/api/v1/analysis", `{"load":1e308}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Error, "not finite")
}

func TestWriteJSONEncodeFailure(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSON(rec, http.StatusOK, map[string]float64{"stress_mpa": math.Inf(1)})
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Error, "encode response")
}

func TestBatchOverflowIsInvalid(t *testing.T) {
	s, _ := newTestServer(t, nil)
	rec := do(t, s.Handler(), http.MethodPost, "/api/v1/analysis/batch", `{"items":[{},{"load":1e308}]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"invalid":1`)
	assert.Contains(t, rec.Body.String(), "result is not finite")
}

func TestAnalysisMethodNotAllowed(t *testing.T) {
	s, _ := newTestServer(t, nil)
	rec := do(t, s.Handler(), http.MethodGet, "/api/v1/analysis", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestBatch(t *testing.T) {
	s, _ := newTestServer(t, nil)
	rec := do(t, s.Handler(), http.MethodPost, "/api/v1/analysis/batch",
		`{"items":[{"load":1000},{"span":0},{"material":"carbon"}]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Count   int `json:"count"`
		Summary struct {
			Compliant int `json:"compliant"`
			Invalid   int `json:"invalid"`
		} `json:"summary"`
		Outcomes []struct {
			Index  int              `json:"index"`
			Result *analysis.Result `json:"result"`
			Error  string           `json:"error"`
		} `json:"outcomes"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 3, body.Count)
	assert.Equal(t, 2, body.Summary.Compliant)
	assert.Equal(t, 1, body.Summary.Invalid)
	require.Len(t, body.Outcomes, 3)
	assert.Equal(t, 1, body.Outcomes[1].Index)
	assert.Nil(t, body.Outcomes[1].Result)
	assert.Contains(t, body.Outcomes[1].Error, "span must be positive")
}

func TestBatchLimits(t *testing.T) {
	s, _ := newTestServer(t, func(c *config.Config) { c.Server.MaxBatchItems = 2 })

	rec := do(t, s.Handler(), http.MethodPost, "/api/v1/analysis/batch", `{"items":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s.Handler(), http.MethodPost, "/api/v1/analysis/batch", `{"items":[{},{},{}]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "too many items")
}

func TestReportTextArchived(t *testing.T) {
	s, store := newTestServer(t, nil)
	rec := do(t, s.Handler(), http.MethodPost, "/api/v1/reports?format=txt",
		`{"title":"Workflow Dossier","parameters":{"load":3000}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
	assert.Equal(t, `attachment; filename="Structura_Audit_Workflow_Dossier.txt"`, rec.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "STRUCTURA PROFESSIONAL ENGINEERING REPORT"))
	assert.Contains(t, rec.Body.String(), "DATE: 2025-11-05 14:30:00")

	id := rec.Header().Get("X-Dossier-ID")
	require.Len(t, id, 9)
	d, err := store.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Workflow Dossier", d.Title)
	assert.Equal(t, 3000.0, d.Parameters.Load)
}

func TestReportPDF(t *testing.T) {
	s, _ := newTestServer(t, nil)
	rec := do(t, s.Handler(), http.MethodPost, "/api/v1/reports?format=pdf", `{}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF-"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), report.FileName(report.DefaultTitle, "pdf"))
}

func TestReportBadRequests(t *testing.T) {
	s, _ := newTestServer(t, nil)

	rec := do(t, s.Handler(), http.MethodPost, "/api/v1/reports?format=docx", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s.Handler(), http.MethodPost, "/api/v1/reports", `{"parameters":{"width":0}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDossiers(t *testing.T) {
	s, store := newTestServer(t, nil)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		d := report.New("", analysis.DefaultParameters(), time.Date(2025, 1, 1, i, 0, 0, 0, time.UTC))
		require.NoError(t, store.Save(ctx, d))
	}

	rec := do(t, s.Handler(), http.MethodGet, "/api/v1/dossiers?limit=2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list dossierList
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Equal(t, 2, list.Count)

	rec = do(t, s.Handler(), http.MethodGet, "/api/v1/dossiers/"+list.Dossiers[0].ID, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, s.Handler(), http.MethodGet, "/api/v1/dossiers/NOPE", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, s.Handler(), http.MethodGet, "/api/v1/dossiers?limit=zero", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestArchiveDisabled(t *testing.T) {
	cfg := config.DefaultConfig()
	s := New(cfg, nil, nil)

	rec := do(t, s.Handler(), http.MethodGet, "/api/v1/dossiers", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = do(t, s.Handler(), http.MethodPost, "/api/v1/reports", `{}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("X-Dossier-ID"))
}

func TestBearerAuth(t *testing.T) {
	s, _ := newTestServer(t, func(c *config.Config) { c.Server.APIToken = "secret" })

	rec := do(t, s.Handler(), http.MethodGet, "/api/v1/catalog", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, s.Handler(), http.MethodGet, "/api/v1/catalog", "", "Authorization", "Bearer wrong")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, s.Handler(), http.MethodGet, "/api/v1/catalog", "", "Authorization", "Bearer secret")
	assert.Equal(t, http.StatusOK, rec.Code)

	// Health checks stay open
	rec = do(t, s.Handler(), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimit(t *testing.T) {
	s, _ := newTestServer(t, func(c *config.Config) {
		c.Server.RateLimit = 0.001
		c.Server.RateBurst = 2
	})

	for i := 0; i < 2; i++ {
		rec := do(t, s.Handler(), http.MethodGet, "/api/v1/catalog", "")
		require.Equal(t, http.StatusOK, rec.Code)
	}
	rec := do(t, s.Handler(), http.MethodGet, "/api/v1/catalog", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	s, _ := newTestServer(t, nil)
	rec := do(t, s.Handler(), http.MethodOptions, "/api/v1/analysis", "", "Origin", "http://example.com")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSAllowList(t *testing.T) {
	s, _ := newTestServer(t, func(c *config.Config) { c.Server.AllowedOrigins = []string{"https://app.structura.dev"} })

	rec := do(t, s.Handler(), http.MethodGet, "/healthz", "", "Origin", "https://app.structura.dev")
	assert.Equal(t, "https://app.structura.dev", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = do(t, s.Handler(), http.MethodGet, "/healthz", "", "Origin", "https://evil.example")
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRecoverer(t *testing.T) {
	h := recoverer(zap.NewNop(), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRunShutsDown(t *testing.T) {
	s, _ := newTestServer(t, func(c *config.Config) {
		c.Server.Addr = "127.0.0.1:0"
		c.Server.ShutdownTimeout = "1s"
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
