// 包 api：集中注册 HTTP API 路由以解耦主入口，便于后续扩展与替换
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"peta-api/internal/boundary"
	"peta-api/internal/logger"
	"peta-api/internal/metrics"
	"peta-api/internal/render"
	"peta-api/internal/store"
	"peta-api/internal/zoom"
)

// Config：路由层运行参数，由主入口从环境变量装配后注入
type Config struct {
	BoundaryDir     string
	TDistrict       float64
	TVillage        float64
	CacheTTLSeconds int
}

// mapResult：/map 的对外序列化模型
type mapResult struct {
	Level    string               `json:"level"`
	Count    int                  `json:"count"`
	Features []render.FeatureView `json:"features"`
}

// tallyView：/tallies 的单条记录视图，键为规范键
type tallyView struct {
	District string `json:"district,omitempty"`
	Paslon1  int64  `json:"paslon1"`
	Paslon2  int64  `json:"paslon2"`
	Paslon3  int64  `json:"paslon3"`
	Visits   int64  `json:"visits"`
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("content-type", "application/json; charset=utf-8")
	w.Header().Set("cache-control", "no-store")
	_ = json.NewEncoder(w).Encode(v)
}

// requestLevel：优先显式 level 参数；缺失时按 z 分类；两者皆缺回退市级
func requestLevel(r *http.Request, cfg Config) zoom.Level {
	if s := r.URL.Query().Get("level"); s != "" {
		if lvl, ok := zoom.ParseLevel(s); ok {
			return lvl
		}
	}
	s := r.URL.Query().Get("zoom")
	if s == "" {
		s = r.URL.Query().Get("z")
	}
	if s != "" {
		var z float64
		if _, err := fmt.Sscanf(s, "%g", &z); err == nil {
			return zoom.Classify(z, cfg.TDistrict, cfg.TVillage)
		}
	}
	return zoom.LevelCity
}

// BuildRoutes：构建并返回 API 路由，独立 ServeMux 便于挂载到前缀
// 背景：渲染载荷走读穿缓存：Redis 可用走 Redis，否则进程内 LRU；
// 缓存键含数据集版本号，记录集更新即自然失效。
func BuildRoutes(st *store.Store, rc *redis.Client, b *render.Binding, snaps *boundary.DynSnapshot, tr *zoom.Tracker, cfg Config) *http.ServeMux {
	apiMux := http.NewServeMux()
	lru := render.NewLRU(1024, cfg.CacheTTLSeconds)
	ttl := time.Duration(cfg.CacheTTLSeconds) * time.Second
	if cfg.CacheTTLSeconds <= 0 {
		ttl = 60 * time.Second
	}

	cacheGet := func(r *http.Request, key string) ([]byte, bool) {
		if rc != nil {
			if s, _ := rc.Get(r.Context(), key).Result(); s != "" {
				metrics.RedisHitsTotal.Inc()
				return []byte(s), true
			}
			metrics.RedisMissesTotal.Inc()
			return nil, false
		}
		return lru.Get(key)
	}
	cacheSet := func(r *http.Request, key string, body []byte) {
		if rc != nil {
			_ = rc.Set(r.Context(), key, string(body), ttl).Err()
			return
		}
		lru.Set(key, body)
	}

	apiMux.HandleFunc("/map", func(w http.ResponseWriter, r *http.Request) {
		t0 := time.Now()
		metrics.RenderRequestsTotal.Inc()
		lvl := requestLevel(r, cfg)
		sel := render.Selection{
			City:     r.URL.Query().Get("city"),
			District: r.URL.Query().Get("district"),
		}
		key := fmt.Sprintf("map:%d:%s:%s:%s", b.Version(), lvl.String(),
			b.Resolve(zoom.LevelCity, sel.City), b.Resolve(zoom.LevelDistrict, sel.District))
		if body, ok := cacheGet(r, key); ok {
			w.Header().Set("content-type", "application/json; charset=utf-8")
			w.Header().Set("cache-control", "no-store")
			_, _ = w.Write(body)
			metrics.RenderDurationMs.Observe(float64(time.Since(t0).Milliseconds()))
			return
		}
		views := b.RenderLevel(lvl, snaps.Get(), sel)
		res := mapResult{Level: lvl.String(), Count: len(views), Features: views}
		body, _ := json.Marshal(res)
		cacheSet(r, key, body)
		if st != nil {
			_ = st.IncrStats(r.Context())
		}
		w.Header().Set("content-type", "application/json; charset=utf-8")
		w.Header().Set("cache-control", "no-store")
		_, _ = w.Write(body)
		metrics.RenderDurationMs.Observe(float64(time.Since(t0).Milliseconds()))
	})

	apiMux.HandleFunc("/resolve", func(w http.ResponseWriter, r *http.Request) {
		lvl, ok := zoom.ParseLevel(r.URL.Query().Get("level"))
		if !ok {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		name := r.URL.Query().Get("name")
		writeJSON(w, map[string]string{"level": lvl.String(), "name": name, "key": b.Resolve(lvl, name)})
	})

	apiMux.HandleFunc("/zoom", func(w http.ResponseWriter, r *http.Request) {
		var z float64
		if _, err := fmt.Sscanf(r.URL.Query().Get("z"), "%g", &z); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		lvl, changed := tr.Observe(z)
		writeJSON(w, map[string]any{"level": lvl.String(), "changed": changed})
	})

	// 区域点击通知：携带解析后的展示名与当前层级；前端激活要素时上报
	apiMux.HandleFunc("/click", func(w http.ResponseWriter, r *http.Request) {
		lvl, ok := zoom.ParseLevel(r.URL.Query().Get("level"))
		if !ok {
			if cur, emitted := tr.Current(); emitted {
				lvl = cur
			}
		}
		name := r.URL.Query().Get("name")
		key := b.Resolve(lvl, name)
		metrics.RegionClicksTotal.WithLabelValues(lvl.String()).Inc()
		logger.L().Info("region_click", "level", lvl.String(), "name", name, "key", key)
		writeJSON(w, map[string]string{"level": lvl.String(), "name": name, "key": key})
	})

	apiMux.HandleFunc("/tallies", func(w http.ResponseWriter, r *http.Request) {
		lvl, ok := zoom.ParseLevel(r.URL.Query().Get("level"))
		if !ok {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		recs := b.Records(lvl)
		out := make(map[string]tallyView, len(recs))
		for k, t := range recs {
			out[k] = tallyView{District: t.District, Paslon1: t.Paslon1, Paslon2: t.Paslon2, Paslon3: t.Paslon3, Visits: t.Visits}
		}
		writeJSON(w, out)
	})

	apiMux.HandleFunc("/stats", func(w http.ResponseWriter, r *http.Request) {
		t, err := st.GetTotals(r.Context())
		if err != nil {
			logger.L().Error("stats_query_error", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		writeJSON(w, map[string]any{"total": t.Total, "today": t.Today})
	})

	// 管理端热重载：从数据库重拉三级记录集
	apiMux.HandleFunc("/reload-tallies", func(w http.ResponseWriter, r *http.Request) {
		if !adminOK(r) {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		for _, lvl := range []zoom.Level{zoom.LevelCity, zoom.LevelDistrict, zoom.LevelVillage} {
			ts, err := st.ListTallies(r.Context(), lvl.String())
			if err != nil {
				logger.L().Error("reload_tallies_error", "level", lvl.String(), "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			b.SetRecords(lvl, ts)
		}
		logger.L().Info("tallies_reloaded")
		w.WriteHeader(http.StatusNoContent)
	})

	// 管理端热重载：重读边界文件并原子切换快照
	apiMux.HandleFunc("/reload-boundaries", func(w http.ResponseWriter, r *http.Request) {
		if !adminOK(r) {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		snap, err := boundary.LoadSnapshot(cfg.BoundaryDir)
		if err != nil {
			logger.L().Error("reload_boundaries_error", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		snaps.Set(snap)
		logger.L().Info("boundaries_reloaded",
			"city", snap.Count(zoom.LevelCity),
			"district", snap.Count(zoom.LevelDistrict),
			"village", snap.Count(zoom.LevelVillage))
		w.WriteHeader(http.StatusNoContent)
	})

	return apiMux
}

func adminOK(r *http.Request) bool {
	t := r.Header.Get("x-admin-token")
	return t != "" && t == os.Getenv("ADMIN_TOKEN")
}
