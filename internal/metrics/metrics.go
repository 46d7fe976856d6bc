package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RenderRequestsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "petaapi_render_requests_total",
		Help: "Total number of /api/map render requests",
	})
	RenderDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "petaapi_render_duration_ms",
		Help:    "Map render duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000},
	})
	ResolveFallbackTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "petaapi_resolve_fallback_total",
		Help: "Resolutions that fell back to the normalized input (no alias hit)",
	}, []string{"level"})
	NoDataFeaturesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "petaapi_nodata_features_total",
		Help: "Rendered features with no matching tally record",
	})
	ContainmentRebuildTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "petaapi_containment_rebuild_total",
		Help: "Full rebuilds of the derived village-to-district index",
	})
	LevelChangesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "petaapi_level_changes_total",
		Help: "Discrete zoom level transitions emitted",
	}, []string{"level"})
	RegionClicksTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "petaapi_region_clicks_total",
		Help: "Region click notifications by level",
	}, []string{"level"})
	RedisHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "petaapi_redis_hits_total",
		Help: "Total redis cache hits",
	})
	RedisMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "petaapi_redis_misses_total",
		Help: "Total redis cache misses",
	})
	TallyRefreshTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "petaapi_tally_refresh_total",
		Help: "Tally dataset refreshes from PostgreSQL by outcome",
	}, []string{"status"})
	TallyRowsIngested = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "petaapi_tally_rows_ingested_total",
		Help: "Tally rows written by the ingest path",
	})
)

func init() {
	prometheus.MustRegister(RenderRequestsTotal)
	prometheus.MustRegister(RenderDurationMs)
	prometheus.MustRegister(ResolveFallbackTotal)
	prometheus.MustRegister(NoDataFeaturesTotal)
	prometheus.MustRegister(ContainmentRebuildTotal)
	prometheus.MustRegister(LevelChangesTotal)
	prometheus.MustRegister(RegionClicksTotal)
	prometheus.MustRegister(RedisHitsTotal)
	prometheus.MustRegister(RedisMissesTotal)
	prometheus.MustRegister(TallyRefreshTotal)
	prometheus.MustRegister(TallyRowsIngested)
}

// 文档注释：返回 Prometheus 指标监听器
// 背景：统一暴露注册指标到 /metrics 路径，供 Prometheus 抓取；在主入口挂载。
func Handler() http.Handler { return promhttp.Handler() }
