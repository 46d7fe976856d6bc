// 包 render：把解析结果、匹配判定与记录集合装配成逐要素的绘制决策
package render

import (
	"fmt"
	"sync"

	"peta-api/internal/boundary"
	"peta-api/internal/metrics"
	"peta-api/internal/region"
	"peta-api/internal/store"
	"peta-api/internal/zoom"
)

// 文档注释：渲染绑定层
// 背景：持有按层级内存化的“规范键 → 记录”映射与派生包含索引；
// 记录集变化时整体重算并递增版本号，版本号同时是外层缓存键的一部分。
// 约束：别名表与层级索引只读共享；records/containment 仅在 SetRecords 内写，
// 读路径共享读锁，渲染本身无副作用。
type Binding struct {
	mu   sync.RWMutex
	res  *region.Resolver
	hier *region.Hierarchy
	// 每层：规范键 → 记录（解析一次，之后按键等值连接）
	records map[zoom.Level]map[string]store.Tally
	// 村 → 区兜底索引，仅由村级记录集重建
	containment map[string]string
	version     uint64
}

func NewBinding(res *region.Resolver, hier *region.Hierarchy) *Binding {
	return &Binding{
		res:     res,
		hier:    hier,
		records: make(map[zoom.Level]map[string]store.Tally, 3),
	}
}

// resolveByLevel：按层级选择解析器；无别名命中时回退规范化输入并计数
func (b *Binding) resolveByLevel(level zoom.Level, name string) string {
	var key string
	switch level {
	case zoom.LevelCity:
		key = b.res.City(name)
	case zoom.LevelDistrict:
		key = b.res.District(name)
	default:
		key = b.res.Village(name)
	}
	if key == region.Normalize(name) {
		metrics.ResolveFallbackTotal.WithLabelValues(level.String()).Inc()
	}
	return key
}

// SetRecords：替换某层记录集，重新解析为规范键映射并递增版本
// 背景：记录集来自外部拉取，每次变化全量重算（数百行量级）；
// 仅当村级集合变化时重建派生包含索引，避免缩放空转触发重建。
func (b *Binding) SetRecords(level zoom.Level, ts []store.Tally) {
	resolved := make(map[string]store.Tally, len(ts))
	for _, t := range ts {
		resolved[b.resolveByLevel(level, t.Name)] = t
	}
	b.mu.Lock()
	b.records[level] = resolved
	if level == zoom.LevelVillage {
		vrs := make([]region.VillageRecord, 0, len(ts))
		for _, t := range ts {
			vrs = append(vrs, region.VillageRecord{Name: t.Name, District: t.District})
		}
		b.containment = region.BuildVillageToDistrict(b.res, vrs)
		metrics.ContainmentRebuildTotal.Inc()
	}
	b.version++
	b.mu.Unlock()
}

// Version：记录集变更计数，用作外层缓存键的组成部分
func (b *Binding) Version() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.version
}

// Records：某层当前的规范键记录映射（只读共享，调用方不得修改）
func (b *Binding) Records(level zoom.Level) map[string]store.Tally {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.records[level]
}

// Matcher：携带当前派生索引快照的选区判定器
func (b *Binding) Matcher() *region.Matcher {
	b.mu.RLock()
	idx := b.containment
	b.mu.RUnlock()
	return region.NewMatcher(b.res, b.hier, idx)
}

// Resolve：对外暴露的单名解析（/resolve 端点使用）
func (b *Binding) Resolve(level zoom.Level, name string) string {
	return b.resolveByLevel(level, name)
}

// RenderLevel：对快照中某层全部要素产出绘制决策
// 背景：逐要素取展示名 → 解析 → 选区过滤 → 记录连接 → 样式与提示；
// 被选区排除的要素保留在输出里（前端置灰），缺数据是一等可展示状态而非错误。
func (b *Binding) RenderLevel(level zoom.Level, snap *boundary.Snapshot, sel Selection) []FeatureView {
	if snap == nil {
		return nil
	}
	m := b.Matcher()
	recs := b.Records(level)
	feats := snap.Features[level]
	out := make([]FeatureView, 0, len(feats))
	for _, f := range feats {
		name := boundary.DisplayName(level, f.Properties)
		key := b.resolveByLevel(level, name)
		fv := FeatureView{Key: key, Name: name, Geometry: f.Geometry}
		if excluded(level, m, name, f.Properties, sel) {
			fv.Style = StyleExcluded
			fv.Tooltip = name
			out = append(out, fv)
			continue
		}
		rec, ok := recs[key]
		if !ok {
			fv.Style = StyleNoData
			fv.Color = colorNoData
			fv.Tooltip = fmt.Sprintf("%s — belum ada data", name)
			metrics.NoDataFeaturesTotal.Inc()
			out = append(out, fv)
			continue
		}
		w := winner(rec)
		fv.Style = StyleWinner
		fv.Winner = w
		fv.Color = paslonColors[w]
		fv.Tooltip = fmt.Sprintf("%s — %s unggul (%d suara), %d kunjungan",
			name, paslonLabels[w], winnerVotes(rec, w), rec.Visits)
		out = append(out, fv)
	}
	return out
}

// excluded：按层级应用选区谓词；市级不过滤（选市即下钻到区级展示）
func excluded(level zoom.Level, m *region.Matcher, name string, props map[string]any, sel Selection) bool {
	switch level {
	case zoom.LevelDistrict:
		if !m.DistrictInSelectedCity(name, sel.City) {
			return true
		}
		// 选中了具体区时，只保留那一个区高亮
		if sel.District != "" && !m.IsExactSelectedDistrict(name, sel.District) {
			return true
		}
		return false
	case zoom.LevelVillage:
		return !m.VillageInSelectedDistrict(name, boundary.ParentDistrictHint(props), sel.District)
	default:
		return false
	}
}
