package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/applico/orchard-advisor/internal/config"
	"github.com/applico/orchard-advisor/internal/handler"
	"github.com/applico/orchard-advisor/internal/models"
	"github.com/applico/orchard-advisor/internal/orchard"
	"github.com/applico/orchard-advisor/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope[T any] struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Error   string `json:"error"`
	Data    T      `json:"data"`
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{RateLimit: 2, RateWindow: time.Hour}

	display, err := config.LoadDisplay("")
	require.NoError(t, err)

	grid, err := service.NewGridService(service.GridOptions{
		Rows: 12, Cols: 15, CellSize: 40, MinFruit: 50, MaxFruit: 199,
		Thresholds: orchard.DefaultThresholds(),
		Source:     orchard.NewRandSource(2026),
	})
	require.NoError(t, err)
	dashboard := service.NewDashboardService(display, grid)

	r, err := SetupRouter(cfg, Handlers{
		Orchard:   handler.NewOrchardHandler(grid, dashboard),
		Sensor:    handler.NewSensorHandler(dashboard),
		Dashboard: handler.NewDashboardHandler(dashboard, grid),
	})
	require.NoError(t, err)
	return r
}

func do(r *gin.Engine, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) envelope[T] {
	t.Helper()
	var env envelope[T]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func TestHealth(t *testing.T) {
	w := do(newTestRouter(t), http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestGetSessionGrid(t *testing.T) {
	r := newTestRouter(t)

	w := do(r, http.MethodGet, "/api/v1/orchard/grid")
	require.Equal(t, http.StatusOK, w.Code)
	first := decode[models.GridSnapshot](t, w)

	require.Len(t, first.Data.Trees, 180)
	assert.Equal(t, 1, first.Data.Trees[0].ID)
	assert.Equal(t, 180, first.Data.Trees[179].ID)
	assert.Equal(t, 11, first.Data.Trees[179].Row)
	assert.Equal(t, 14, first.Data.Trees[179].Col)

	// Cached for the session
	second := decode[models.GridSnapshot](t, do(r, http.MethodGet, "/api/v1/orchard/grid"))
	assert.Equal(t, first.Data.Generation, second.Data.Generation)

	summary := decode[models.OrchardSummary](t, do(r, http.MethodGet, "/api/v1/orchard/grid/summary"))
	assert.Equal(t, first.Data.Summary, summary.Data)
}

func TestGetOneOffGrid(t *testing.T) {
	r := newTestRouter(t)

	w := do(r, http.MethodGet, "/api/v1/orchard/grid?rows=3&cols=4")
	require.Equal(t, http.StatusOK, w.Code)
	env := decode[models.GridSnapshot](t, w)
	assert.Len(t, env.Data.Trees, 12)

	// Missing dimension falls back to the session size
	env = decode[models.GridSnapshot](t, do(r, http.MethodGet, "/api/v1/orchard/grid?rows=2"))
	assert.Len(t, env.Data.Trees, 30)
}

func TestGetGridRejectsInvalidDimensions(t *testing.T) {
	r := newTestRouter(t)

	for _, target := range []string{
		"/api/v1/orchard/grid?rows=0&cols=5",
		"/api/v1/orchard/grid?rows=5&cols=0",
		"/api/v1/orchard/grid?rows=-1",
	} {
		w := do(r, http.MethodGet, target)
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
		env := decode[any](t, w)
		assert.Contains(t, env.Error, "invalid grid dimension")
	}

	w := do(r, http.MethodGet, "/api/v1/orchard/grid?rows=many")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetGridRejectsOversizedGrids(t *testing.T) {
	r := newTestRouter(t)

	for target, errText := range map[string]string{
		"/api/v1/orchard/grid?rows=50000&cols=50000":           "grid too large",
		"/api/v1/orchard/grid?rows=101&cols=100":               "grid too large",
		"/api/v1/orchard/grid?rows=3&cols=4611686018427387904": "invalid grid dimension",
	} {
		w := do(r, http.MethodGet, target)
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
		env := decode[any](t, w)
		assert.Contains(t, env.Error, errText, target)
	}
}

func TestRegenerateGrid(t *testing.T) {
	r := newTestRouter(t)

	before := decode[models.GridSnapshot](t, do(r, http.MethodGet, "/api/v1/orchard/grid"))

	w := do(r, http.MethodPost, "/api/v1/orchard/grid/regenerate")
	require.Equal(t, http.StatusOK, w.Code)
	regenerated := decode[models.GridSnapshot](t, w)
	assert.Greater(t, regenerated.Data.Generation, before.Data.Generation)

	after := decode[models.GridSnapshot](t, do(r, http.MethodGet, "/api/v1/orchard/grid"))
	assert.Equal(t, regenerated.Data.Generation, after.Data.Generation)

	// Limit is two per window
	assert.Equal(t, http.StatusOK, do(r, http.MethodPost, "/api/v1/orchard/grid/regenerate").Code)
	assert.Equal(t, http.StatusTooManyRequests, do(r, http.MethodPost, "/api/v1/orchard/grid/regenerate").Code)
}

func TestOrchardSummary(t *testing.T) {
	w := do(newTestRouter(t), http.MethodGet, "/api/v1/orchard/summary")
	require.Equal(t, http.StatusOK, w.Code)

	env := decode[struct {
		Summary models.OrchardSummary `json:"summary"`
		Density float64               `json:"trees_per_hectare"`
	}](t, w)
	assert.Equal(t, 12500, env.Data.Summary.TotalTrees)
	assert.Equal(t, 4, env.Data.Summary.AtRiskPercent)
	assert.Equal(t, 250.0, env.Data.Density)
}

func TestClassify(t *testing.T) {
	r := newTestRouter(t)

	for draw, want := range map[string]models.HealthCategory{
		"0.1":  models.HealthHealthy,
		"0.75": models.HealthWarning,
		"0.9":  models.HealthDiseased,
	} {
		w := do(r, http.MethodGet, "/api/v1/orchard/classify?draw="+draw)
		require.Equal(t, http.StatusOK, w.Code)
		env := decode[models.Classification](t, w)
		assert.Equal(t, want, env.Data.Health, draw)
		assert.Equal(t, 0.70, env.Data.Warning)
		assert.Equal(t, 0.85, env.Data.Diseased)
	}

	env := decode[models.Classification](t, do(r, http.MethodGet, "/api/v1/orchard/classify?draw=0.75&warning=0.8"))
	assert.Equal(t, models.HealthHealthy, env.Data.Health)

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/api/v1/orchard/classify").Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/api/v1/orchard/classify?draw=1.5").Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/api/v1/orchard/classify?draw=0.5&warning=0.9").Code)
}

func TestClassifyRejectsNaN(t *testing.T) {
	r := newTestRouter(t)

	for _, query := range []string{
		"draw=NaN",
		"draw=0.9&diseased=NaN",
		"draw=0.5&warning=NaN",
	} {
		w := do(r, http.MethodGet, "/api/v1/orchard/classify?"+query)
		assert.Equal(t, http.StatusBadRequest, w.Code, query)
		env := decode[any](t, w)
		assert.NotEmpty(t, env.Error, query)
	}
}

func TestSensors(t *testing.T) {
	r := newTestRouter(t)

	env := decode[struct {
		Data  []models.SensorReading `json:"data"`
		Count int                    `json:"count"`
	}](t, do(r, http.MethodGet, "/api/v1/sensors"))
	assert.Equal(t, 4, env.Data.Count)
	assert.Len(t, env.Data.Data[0].Chart, 6)

	w := do(r, http.MethodGet, "/api/v1/sensors/humidity")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Relative Humidity", decode[models.SensorReading](t, w).Data.Name)

	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/api/v1/sensors/soil").Code)
}

func TestDashboardJSON(t *testing.T) {
	r := newTestRouter(t)

	tabs := decode[models.TabState](t, do(r, http.MethodGet, "/api/v1/dashboard/tabs?tab=analytics"))
	assert.Equal(t, "Analytics", tabs.Data.Active)
	assert.Equal(t, 300, tabs.Data.LoadingDelayMs)
	assert.Len(t, tabs.Data.Tabs, 4)

	for query, want := range map[string]string{
		"":                          "Overview",
		"?tab=nope":                 "Overview",
		"?tab=Orchard%20Map":        "Orchard Map",
		"?tab=sensors&tab=overview": "Sensors",
	} {
		w := do(r, http.MethodGet, "/api/v1/dashboard/tabs"+query)
		require.Equal(t, http.StatusOK, w.Code, query)
		assert.Equal(t, want, decode[models.TabState](t, w).Data.Active, query)
	}

	overview := decode[models.Overview](t, do(r, http.MethodGet, "/api/v1/dashboard/overview"))
	assert.Len(t, overview.Data.Recommendations, 3)
	assert.Equal(t, 95, overview.Data.Orchard.HealthyPercent)

	analytics := decode[models.Analytics](t, do(r, http.MethodGet, "/api/v1/dashboard/analytics"))
	assert.Len(t, analytics.Data.Sections, 4)
	assert.Equal(t, 180, analytics.Data.Grid.TotalTrees)
}

func TestDashboardPage(t *testing.T) {
	r := newTestRouter(t)

	w := do(r, http.MethodGet, "/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Apple Scab Risk")
	assert.Contains(t, w.Body.String(), `class="active">Overview`)

	w = do(r, http.MethodGet, "/dashboard?tab=orchard-map")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Tree 180:")
	assert.NotContains(t, w.Body.String(), "Apple Scab Risk")

	w = do(r, http.MethodGet, "/dashboard?tab=sensors")
	assert.Contains(t, w.Body.String(), "Leaf Wetness Duration")

	w = do(r, http.MethodGet, "/dashboard?tab=analytics")
	assert.Contains(t, w.Body.String(), "Section A")
}

func TestCORSPreflight(t *testing.T) {
	w := do(newTestRouter(t), http.MethodOptions, "/api/v1/sensors")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
