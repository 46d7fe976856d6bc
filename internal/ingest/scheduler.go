package ingest

import (
	"context"
	"os"
	"strconv"
	"time"

	"peta-api/internal/logger"
	"peta-api/internal/metrics"
	"peta-api/internal/render"
	"peta-api/internal/store"
	"peta-api/internal/zoom"
)

// 文档注释：进程内定期刷新任务
// 背景：记录可能被导入工具或他人更新，服务端周期性重拉三级记录集；
// 仅当某层集合真的变化时才触发绑定层重算（含派生索引重建），避免空转。
// 约束：周期由 REFRESH_INTERVAL_S 控制（默认 300s）；错误记日志后继续调度。
func StartRefresh(ctx context.Context, st *store.Store, b *render.Binding) {
	l := logger.L()
	interval := 300
	if s := os.Getenv("REFRESH_INTERVAL_S"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			interval = n
		}
	}
	last := make(map[zoom.Level][]store.Tally, 3)
	refresh := func() {
		for _, lvl := range []zoom.Level{zoom.LevelCity, zoom.LevelDistrict, zoom.LevelVillage} {
			ts, err := st.ListTallies(ctx, lvl.String())
			if err != nil {
				l.Error("refresh_error", "level", lvl.String(), "err", err)
				metrics.TallyRefreshTotal.WithLabelValues("error").Inc()
				continue
			}
			if talliesEqual(last[lvl], ts) {
				metrics.TallyRefreshTotal.WithLabelValues("unchanged").Inc()
				continue
			}
			last[lvl] = ts
			b.SetRecords(lvl, ts)
			metrics.TallyRefreshTotal.WithLabelValues("updated").Inc()
			l.Info("refresh_updated", "level", lvl.String(), "rows", len(ts))
		}
	}
	refresh()
	t := time.NewTicker(time.Duration(interval) * time.Second)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				refresh()
			}
		}
	}()
}

// talliesEqual：按序逐条比较；ListTallies 按名称排序，序稳定即可做结构化比较
func talliesEqual(a, b []store.Tally) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
