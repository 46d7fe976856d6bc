package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"peta-api/internal/boundary"
	"peta-api/internal/region"
	"peta-api/internal/store"
	"peta-api/internal/zoom"
)

func newTestBinding() *Binding {
	return NewBinding(region.DefaultResolver(), region.DefaultHierarchy())
}

func villageSnapshot(features ...boundary.Feature) *boundary.Snapshot {
	return &boundary.Snapshot{
		Features: map[zoom.Level][]boundary.Feature{zoom.LevelVillage: features},
		BuiltAt:  time.Now(),
	}
}

func TestWinnerStableTieBreak(t *testing.T) {
	// 并列取固定优先序中先达到最大值者
	assert.Equal(t, "paslon1", winner(store.Tally{Paslon1: 10, Paslon2: 10, Paslon3: 3}))
	assert.Equal(t, "paslon2", winner(store.Tally{Paslon1: 5, Paslon2: 10, Paslon3: 10}))
	assert.Equal(t, "paslon3", winner(store.Tally{Paslon1: 1, Paslon2: 2, Paslon3: 9}))
	assert.Equal(t, "paslon1", winner(store.Tally{}))
}

func TestSetRecordsResolvesAndBumpsVersion(t *testing.T) {
	b := newTestBinding()
	require.Equal(t, uint64(0), b.Version())
	b.SetRecords(zoom.LevelVillage, []store.Tally{
		{Name: "Papango", District: "Tanjung Priuk", Paslon1: 7},
	})
	assert.Equal(t, uint64(1), b.Version())
	recs := b.Records(zoom.LevelVillage)
	// 错拼记录归并到规范键
	_, ok := recs["PAPANGGO"]
	assert.True(t, ok)

	// 村级记录同时重建派生包含索引，供判定器兜底
	m := b.Matcher()
	assert.True(t, m.VillageInSelectedDistrict("Papanggo", "", "Tanjung Priok"))
}

func TestRenderLevelStyles(t *testing.T) {
	b := newTestBinding()
	b.SetRecords(zoom.LevelVillage, []store.Tally{
		{Name: "Papanggo", District: "Tanjung Priok", Paslon1: 100, Paslon2: 400, Paslon3: 50, Visits: 9},
	})
	snap := villageSnapshot(
		boundary.Feature{Properties: map[string]any{"WADMKD": "Papanggo", "WADMKC": "Tanjung Priok"}},
		boundary.Feature{Properties: map[string]any{"WADMKD": "Sunter Agung", "WADMKC": "Tanjung Priok"}},
		boundary.Feature{Properties: map[string]any{"WADMKD": "Lagoa", "WADMKC": "Koja"}},
	)

	views := b.RenderLevel(zoom.LevelVillage, snap, Selection{District: "Tanjung Priuk"})
	require.Len(t, views, 3)

	// 有记录：按领先候选着色，提示含票数与走访数
	assert.Equal(t, StyleWinner, views[0].Style)
	assert.Equal(t, "paslon2", views[0].Winner)
	assert.Equal(t, paslonColors["paslon2"], views[0].Color)
	assert.Contains(t, views[0].Tooltip, "Paslon 2")
	assert.Contains(t, views[0].Tooltip, "400")

	// 无记录：中性样式，提示明说无数据而非隐藏
	assert.Equal(t, StyleNoData, views[1].Style)
	assert.Contains(t, views[1].Tooltip, "belum ada data")

	// 不在选中区内：排除样式
	assert.Equal(t, StyleExcluded, views[2].Style)
}

func TestRenderLevelDistrictSelection(t *testing.T) {
	b := newTestBinding()
	b.SetRecords(zoom.LevelDistrict, []store.Tally{
		{Name: "Tanjung Priuk", Paslon1: 900, Paslon2: 100, Paslon3: 5},
	})
	snap := &boundary.Snapshot{Features: map[zoom.Level][]boundary.Feature{
		zoom.LevelDistrict: {
			{Properties: map[string]any{"district": "Tanjung Priok"}},
			{Properties: map[string]any{"district": "Koja"}},
			{Properties: map[string]any{"district": "Cengkareng"}},
		},
	}}

	// 仅选市：该市下属区保留，别市的区排除
	views := b.RenderLevel(zoom.LevelDistrict, snap, Selection{City: "Kota Adm Jakarta Utara"})
	require.Len(t, views, 3)
	assert.Equal(t, StyleWinner, views[0].Style) // 记录名走别名后与要素键相等
	assert.Equal(t, "paslon1", views[0].Winner)
	assert.Equal(t, StyleNoData, views[1].Style)
	assert.Equal(t, StyleExcluded, views[2].Style)

	// 选中具体区：只保留那一个区
	views = b.RenderLevel(zoom.LevelDistrict, snap, Selection{City: "Jakarta Utara", District: "Tanjung Priok"})
	assert.Equal(t, StyleWinner, views[0].Style)
	assert.Equal(t, StyleExcluded, views[1].Style)
}

func TestRenderLevelNilSnapshot(t *testing.T) {
	b := newTestBinding()
	assert.Nil(t, b.RenderLevel(zoom.LevelCity, nil, Selection{}))
}

func TestLRUCache(t *testing.T) {
	c := NewLRU(2, 60)
	c.Set("a", []byte("1"))
	c.Set("b", []byte("2"))
	c.Set("c", []byte("3")) // 容量 2，最旧的 a 被逐出
	_, ok := c.Get("a")
	assert.False(t, ok)
	v, ok := c.Get("c")
	require.True(t, ok)
	assert.Equal(t, []byte("3"), v)
}
