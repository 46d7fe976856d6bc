package boundary

import "peta-api/internal/zoom"

// 文档注释：属性袋的候选键提取
// 背景：边界数据来自多套出处（自建、NAMOBJ/WADM* 政府规范、通用 NAME/name），
// 展示名按层级专属的有序候选键取第一个非空字符串。
// 约束：键名与顺序是接口契约的一部分，调整会改变既有数据的取名结果。
var displayNameKeys = map[zoom.Level][]string{
	zoom.LevelCity:     {"city", "NAMOBJ", "WADMKK", "NAME", "name"},
	zoom.LevelDistrict: {"district", "name", "NAMOBJ", "WADMKC", "NAME"},
	zoom.LevelVillage:  {"village", "NAMOBJ", "WADMKD", "NAME", "name"},
}

// 村级要素可能自带父区提示
var parentDistrictKeys = []string{"district", "WADMKC"}

// DisplayName：按层级候选键取第一个非空展示名；全缺返回空串
func DisplayName(level zoom.Level, props map[string]any) string {
	for _, k := range displayNameKeys[level] {
		if v, ok := props[k].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

// ParentDistrictHint：村级要素的父区名提示；缺失返回空串，由派生索引兜底
func ParentDistrictHint(props map[string]any) string {
	for _, k := range parentDistrictKeys {
		if v, ok := props[k].(string); ok && v != "" {
			return v
		}
	}
	return ""
}
