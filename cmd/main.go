// 程序入口：仅负责读取配置、初始化依赖并启动服务；API 注册在 internal/api 以便扩展
package main

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"peta-api/internal/api"
	"peta-api/internal/boundary"
	"peta-api/internal/ingest"
	"peta-api/internal/logger"
	"peta-api/internal/metrics"
	"peta-api/internal/middleware"
	"peta-api/internal/migrate"
	"peta-api/internal/region"
	"peta-api/internal/render"
	"peta-api/internal/store"
	"peta-api/internal/utils"
	"peta-api/internal/version"
	"peta-api/internal/zoom"

	"github.com/joho/godotenv"
)

func envFloat(key string, def float64) float64 {
	if s := os.Getenv(key); s != "" {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			return v
		}
	}
	return def
}

func envInt(key string, def int) int {
	if s := os.Getenv(key); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			return v
		}
	}
	return def
}

func main() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join("data", "env", ".env"))
	// 日志初始化
	l := logger.Setup()
	l.Debug("log_init_ok")
	apiBase := os.Getenv("API_BASE")
	if apiBase == "" {
		apiBase = "/api"
	}
	l.Debug("config_api_base", "base", apiBase)
	_ = utils.BuildPostgresDSNFromEnv()
	ui := os.Getenv("UI_DIST")
	if ui == "" {
		ui = filepath.Join("ui", "dist")
	}
	l.Debug("config_ui_dir", "dir", ui)

	db, err := utils.OpenPostgresFromEnv()
	if err != nil {
		l.Error("db_open_error", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	l.Info("db_open_ok")
	if err := db.Ping(); err != nil {
		l.Error("db_ping_error", "err", err)
	} else {
		l.Info("db_ping_ok")
	}
	st := store.AttachDB(db)
	if err := migrate.EnsureSchema(db); err != nil {
		l.Error("schema_error", "err", err)
		os.Exit(1)
	}

	rc := utils.OpenRedisFromEnv()
	if rc == nil {
		l.Info("redis_disabled")
	} else {
		if err := rc.Ping(context.Background()).Err(); err != nil {
			l.Error("redis_ping_error", "err", err)
		} else {
			l.Info("redis_ping_ok")
		}
	}

	// 文档注释：区域解析引擎装配
	// 背景：别名表与层级索引是静态内置数据，启动即校验；
	// 校验出 error 级问题说明内置表自相矛盾，直接拒绝启动。
	if issues := region.ValidateDefaults(); len(issues) > 0 {
		fatal := false
		for _, is := range issues {
			if is.Severity == "error" {
				l.Error("region_table_invalid", "table", is.Table, "detail", is.Detail)
				fatal = true
			} else {
				l.Warn("region_table_warn", "table", is.Table, "detail", is.Detail)
			}
		}
		if fatal {
			os.Exit(1)
		}
	}
	binding := render.NewBinding(region.DefaultResolver(), region.DefaultHierarchy())

	// 边界快照：三层 GeoJSON 一次读入，热重载时整体替换
	boundaryDir := os.Getenv("BOUNDARY_DIR")
	if boundaryDir == "" {
		boundaryDir = filepath.Join("data", "boundaries")
	}
	l.Debug("config_boundary_dir", "dir", boundaryDir)
	var snaps boundary.DynSnapshot
	if snap, err := boundary.LoadSnapshot(boundaryDir); err == nil {
		snaps.Set(snap)
		l.Info("boundaries_loaded",
			"city", snap.Count(zoom.LevelCity),
			"district", snap.Count(zoom.LevelDistrict),
			"village", snap.Count(zoom.LevelVillage))
	} else {
		// 缺少边界文件不阻断启动，renders 返回空集，待管理端补齐后热重载
		l.Error("boundaries_load_error", "dir", boundaryDir, "err", err)
		snaps.Set(&boundary.Snapshot{Features: map[zoom.Level][]boundary.Feature{}})
	}

	// 首轮同步拉取记录集，随后按周期对账刷新
	ingest.StartRefresh(context.Background(), st, binding)

	// 缩放层级状态机：变化时记一条结构化日志并计数
	tDistrict := envFloat("ZOOM_T_DISTRICT", 11)
	tVillage := envFloat("ZOOM_T_VILLAGE", 12)
	tracker := zoom.NewTracker(tDistrict, tVillage)
	tracker.OnChange(func(lvl zoom.Level) {
		metrics.LevelChangesTotal.WithLabelValues(lvl.String()).Inc()
		l.Info("zoom_level_changed", "level", lvl.String())
	})

	mux := http.NewServeMux()
	apiMux := api.BuildRoutes(st, rc, binding, &snaps, tracker, api.Config{
		BoundaryDir:     boundaryDir,
		TDistrict:       tDistrict,
		TVillage:        tVillage,
		CacheTTLSeconds: envInt("CACHE_TTL_S", 60),
	})
	mux.Handle(apiBase+"/", http.StripPrefix(apiBase, apiMux))
	mux.Handle(apiBase+"/metrics", metrics.Handler())

	fs := http.FileServer(http.Dir(ui))
	mux.Handle("/", fs)

	// NOTE: 向前端暴露 API 基础路径，避免硬编码；生产环境由后端统一提供
	mux.HandleFunc("/config.js", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("content-type", "application/javascript; charset=utf-8")
		w.Header().Set("cache-control", "no-store")
		_, _ = w.Write([]byte("window.__API_BASE__='" + apiBase + "'"))
		_, _ = w.Write([]byte("\n"))
		_, _ = w.Write([]byte("window.__ZOOM_T_DISTRICT__=" + strconv.FormatFloat(tDistrict, 'g', -1, 64)))
		_, _ = w.Write([]byte("\n"))
		_, _ = w.Write([]byte("window.__ZOOM_T_VILLAGE__=" + strconv.FormatFloat(tVillage, 'g', -1, 64)))
		_, _ = w.Write([]byte("\n"))
		_, _ = w.Write([]byte("window.__COMMIT_SHA__='" + version.Commit + "'"))
	})

	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":8080"
	}
	handler := logger.AccessMiddleware(l)(mux)
	handler = middleware.Wrap(handler)
	s := &http.Server{Addr: addr, Handler: handler}
	tlsEnable := os.Getenv("TLS_ENABLE")
	if tlsEnable == "true" {
		certPath := os.Getenv("TLS_CERT_PATH")
		keyPath := os.Getenv("TLS_KEY_PATH")
		if certPath == "" {
			certPath = filepath.Join("data", "certs", "server.crt")
		}
		if keyPath == "" {
			keyPath = filepath.Join("data", "certs", "server.key")
		}
		_ = utils.EnsureSelfSignedCert(certPath, keyPath, "peta-api.local")
		// 可选：启动HTTP重定向到HTTPS（不改变HTTPS运行端口）
		if os.Getenv("TLS_REDIRECT_ENABLE") == "true" {
			redirAddr := os.Getenv("TLS_REDIRECT_ADDR")
			if redirAddr == "" {
				redirAddr = ":80"
			}
			go func() {
				httpRedir := http.NewServeMux()
				httpRedir.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
					host := r.Host
					// 替换目标端口为HTTPS服务端口
					httpsPort := strings.TrimPrefix(addr, ":")
					baseHost := host
					if i := strings.LastIndex(host, ":"); i != -1 {
						baseHost = host[:i]
					}
					targetHost := baseHost
					if httpsPort != "" {
						targetHost = baseHost + ":" + httpsPort
					}
					target := "https://" + targetHost + r.URL.RequestURI()
					http.Redirect(w, r, target, http.StatusMovedPermanently)
					l.Debug("http_redirect", "from", r.Host, "to", target)
				})
				l.Info("http_redirect_listening", "addr", redirAddr, "to", "https"+addr)
				_ = http.ListenAndServe(redirAddr, logger.AccessMiddleware(l)(httpRedir))
			}()
		}
		l.Info("listening_tls", "addr", addr, "cert", certPath)
		_ = s.ListenAndServeTLS(certPath, keyPath)
		return
	}
	l.Info("listening", "addr", addr)
	_ = s.ListenAndServe()
}
