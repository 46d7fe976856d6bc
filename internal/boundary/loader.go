package boundary

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"peta-api/internal/zoom"
)

// 文档注释：从数据目录加载三级边界快照
// 背景：约定文件名 city.geojson / district.geojson / village.geojson；
// 单层文件缺失或解析失败只记为空层，不阻断其余层级（渲染侧对空层展示“无数据”）。
func LoadSnapshot(dir string) (*Snapshot, error) {
	snap := &Snapshot{
		Features: make(map[zoom.Level][]Feature, 3),
		BuiltAt:  time.Now(),
	}
	files := map[zoom.Level]string{
		zoom.LevelCity:     "city.geojson",
		zoom.LevelDistrict: "district.geojson",
		zoom.LevelVillage:  "village.geojson",
	}
	for lvl, name := range files {
		b, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			continue
		}
		snap.Features[lvl] = ParseFeatures(b)
	}
	return snap, nil
}

// ParseFeatures：解析 GeoJSON FeatureCollection/Feature 为要素列表
// 约束：容忍缺字段与类型错位，能取多少取多少；属性袋保持原始键名供候选键提取
func ParseFeatures(b []byte) []Feature {
	var gj map[string]json.RawMessage
	if err := json.Unmarshal(b, &gj); err != nil {
		return nil
	}
	var typ string
	_ = json.Unmarshal(gj["type"], &typ)
	switch strings.ToLower(typ) {
	case "featurecollection":
		var rawFeatures []json.RawMessage
		if err := json.Unmarshal(gj["features"], &rawFeatures); err != nil {
			return nil
		}
		out := make([]Feature, 0, len(rawFeatures))
		for _, rf := range rawFeatures {
			if f, ok := parseFeature(rf); ok {
				out = append(out, f)
			}
		}
		return out
	case "feature":
		if f, ok := parseFeature(b); ok {
			return []Feature{f}
		}
	}
	return nil
}

func parseFeature(b []byte) (Feature, bool) {
	var raw struct {
		Properties map[string]any  `json:"properties"`
		Geometry   json.RawMessage `json:"geometry"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return Feature{}, false
	}
	if raw.Properties == nil {
		raw.Properties = map[string]any{}
	}
	return Feature{Properties: raw.Properties, Geometry: raw.Geometry}, true
}
