package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"peta-api/internal/boundary"
	"peta-api/internal/region"
	"peta-api/internal/render"
	"peta-api/internal/store"
	"peta-api/internal/zoom"
)

func testMux(t *testing.T) (*http.ServeMux, sqlmock.Sqlmock, *render.Binding) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	b := render.NewBinding(region.DefaultResolver(), region.DefaultHierarchy())
	b.SetRecords(zoom.LevelDistrict, []store.Tally{
		{Name: "Tanjung Priok", Paslon1: 10, Paslon2: 30, Paslon3: 5, Visits: 7},
	})

	snaps := &boundary.DynSnapshot{}
	snaps.Set(&boundary.Snapshot{
		Features: map[zoom.Level][]boundary.Feature{
			zoom.LevelDistrict: {
				{Properties: map[string]any{"district": "Tanjung Priuk"}},
			},
		},
		BuiltAt: time.Now(),
	})

	tr := zoom.NewTracker(11, 12)
	mux := BuildRoutes(store.AttachDB(db), nil, b, snaps, tr, Config{
		TDistrict:       11,
		TVillage:        12,
		CacheTTLSeconds: 60,
	})
	return mux, mock, b
}

func TestMapByZoom(t *testing.T) {
	mux, mock, _ := testMux(t)
	mock.ExpectExec("UPDATE _region_stats_total").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO _region_stats_daily").WillReturnResult(sqlmock.NewResult(0, 1))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/map?z=11.5", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var res struct {
		Level    string `json:"level"`
		Count    int    `json:"count"`
		Features []struct {
			Key    string `json:"key"`
			Style  string `json:"style"`
			Winner string `json:"winner"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "district", res.Level)
	require.Equal(t, 1, res.Count)
	assert.Equal(t, "TANJUNGPRIOK", res.Features[0].Key)
	assert.Equal(t, "winner", res.Features[0].Style)
	assert.Equal(t, "paslon2", res.Features[0].Winner)
}

func TestMapCachedSecondHit(t *testing.T) {
	mux, mock, _ := testMux(t)
	mock.ExpectExec("UPDATE _region_stats_total").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO _region_stats_daily").WillReturnResult(sqlmock.NewResult(0, 1))

	first := httptest.NewRecorder()
	mux.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/map?level=district", nil))
	require.Equal(t, http.StatusOK, first.Code)

	// 第二次命中进程内缓存，不再触发统计写入
	second := httptest.NewRecorder()
	mux.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/map?level=district", nil))
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMapCacheInvalidatedByVersion(t *testing.T) {
	mux, mock, b := testMux(t)
	mock.ExpectExec("UPDATE _region_stats_total").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO _region_stats_daily").WillReturnResult(sqlmock.NewResult(0, 1))

	first := httptest.NewRecorder()
	mux.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/map?level=district", nil))
	require.Equal(t, http.StatusOK, first.Code)

	b.SetRecords(zoom.LevelDistrict, []store.Tally{
		{Name: "Tanjung Priok", Paslon1: 99, Paslon2: 1, Paslon3: 1, Visits: 1},
	})
	mock.ExpectExec("UPDATE _region_stats_total").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO _region_stats_daily").WillReturnResult(sqlmock.NewResult(0, 1))

	second := httptest.NewRecorder()
	mux.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/map?level=district", nil))
	require.Equal(t, http.StatusOK, second.Code)
	assert.NotEqual(t, first.Body.String(), second.Body.String())
}

func TestResolveEndpoint(t *testing.T) {
	mux, _, _ := testMux(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/resolve?level=city&name=Jakbar", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var res map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "JAKARTABARAT", res["key"])

	bad := httptest.NewRecorder()
	mux.ServeHTTP(bad, httptest.NewRequest(http.MethodGet, "/resolve?level=province&name=x", nil))
	assert.Equal(t, http.StatusBadRequest, bad.Code)
}

func TestZoomEndpointDedup(t *testing.T) {
	mux, _, _ := testMux(t)

	observe := func(z string) (string, bool) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/zoom?z="+z, nil))
		require.Equal(t, http.StatusOK, rec.Code)
		var res struct {
			Level   string `json:"level"`
			Changed bool   `json:"changed"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		return res.Level, res.Changed
	}

	lvl, changed := observe("11.2")
	assert.Equal(t, "district", lvl)
	assert.True(t, changed)

	lvl, changed = observe("11.8")
	assert.Equal(t, "district", lvl)
	assert.False(t, changed)

	lvl, changed = observe("12.5")
	assert.Equal(t, "village", lvl)
	assert.True(t, changed)

	bad := httptest.NewRecorder()
	mux.ServeHTTP(bad, httptest.NewRequest(http.MethodGet, "/zoom?z=abc", nil))
	assert.Equal(t, http.StatusBadRequest, bad.Code)
}

func TestClickEndpoint(t *testing.T) {
	mux, _, _ := testMux(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/click?level=district&name=Tanjung+Priuk", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var res map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "TANJUNGPRIOK", res["key"])
}

func TestTalliesEndpoint(t *testing.T) {
	mux, _, _ := testMux(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tallies?level=district", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var res map[string]tallyView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Contains(t, res, "TANJUNGPRIOK")
	assert.Equal(t, int64(30), res["TANJUNGPRIOK"].Paslon2)
}

func TestStatsEndpoint(t *testing.T) {
	mux, mock, _ := testMux(t)
	mock.ExpectQuery("SELECT total_queries").WillReturnRows(
		sqlmock.NewRows([]string{"total_queries"}).AddRow(int64(42)))
	mock.ExpectQuery("SELECT queries").WillReturnRows(
		sqlmock.NewRows([]string{"queries"}).AddRow(int64(3)))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var res map[string]int64
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, int64(42), res["total"])
	assert.Equal(t, int64(3), res["today"])
}

func TestReloadTalliesRequiresToken(t *testing.T) {
	mux, _, _ := testMux(t)
	t.Setenv("ADMIN_TOKEN", "secret")

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/reload-tallies", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	wrong := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/reload-tallies", nil)
	req.Header.Set("x-admin-token", "nope")
	mux.ServeHTTP(wrong, req)
	assert.Equal(t, http.StatusForbidden, wrong.Code)
}

func TestReloadTallies(t *testing.T) {
	mux, mock, b := testMux(t)
	t.Setenv("ADMIN_TOKEN", "secret")

	for range []int{0, 1, 2} {
		mock.ExpectQuery("SELECT name, district, paslon1").WillReturnRows(
			sqlmock.NewRows([]string{"name", "district", "paslon1", "paslon2", "paslon3", "visits"}).
				AddRow("Papanggo", "Tanjung Priok", int64(1), int64(2), int64(3), int64(4)))
	}

	before := b.Version()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/reload-tallies", nil)
	req.Header.Set("x-admin-token", "secret")
	mux.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Greater(t, b.Version(), before)
}
