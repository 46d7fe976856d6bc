package region

// 文档注释：村 → 区派生包含索引
// 背景：部分村级边界属性缺失父区字段，只能从另一份数据（投票/走访记录
// 自带的区名）反推归属；属兜底通道，不具权威性。
// 约束：每次记录集变化整体重建、不做增量合并——记录量级为数百条，
// 重建成本可忽略，换取陈旧窗口可见、语义简单。

// VillageRecord：村级记录中与包含推断相关的最小视图
type VillageRecord struct {
	Name     string
	District string
}

// BuildVillageToDistrict：扫描带区名的村级记录，建 resolveVillage→resolveDistrict 映射
// 约束：无区名的记录直接跳过，不再做更深的回退链
func BuildVillageToDistrict(r *Resolver, records []VillageRecord) map[string]string {
	idx := make(map[string]string, len(records))
	for _, rec := range records {
		if rec.District == "" {
			continue
		}
		idx[r.Village(rec.Name)] = r.District(rec.District)
	}
	return idx
}
