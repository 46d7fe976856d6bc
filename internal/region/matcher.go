package region

// 文档注释：选区过滤判定
// 背景：地图随缩放下钻时，需要判定区/村级要素是否落在当前选中的市/区内；
// 判定优先用要素自带的父级字段，缺失时退回派生包含索引。
// 约束：三个谓词全部为纯函数，按要素逐个求值；数据量为数百要素，不做缓存。

// Matcher：组合解析器、层级索引与派生包含索引的判定器
type Matcher struct {
	res  *Resolver
	hier *Hierarchy
	// 村→区兜底索引，可为 nil（视为无兜底）
	villageDistrict map[string]string
}

// NewMatcher：构造判定器；villageDistrict 传入当前派生索引快照
func NewMatcher(res *Resolver, hier *Hierarchy, villageDistrict map[string]string) *Matcher {
	return &Matcher{res: res, hier: hier, villageDistrict: villageDistrict}
}

// DistrictInSelectedCity：区是否属于选中市
// 约束：未选市时恒真（无过滤）；区的归属取自层级索引反向表
func (m *Matcher) DistrictInSelectedCity(districtLabel, selectedCityLabel string) bool {
	if selectedCityLabel == "" {
		return true
	}
	city, ok := m.hier.CityOf(m.res.District(districtLabel))
	if !ok {
		return false
	}
	return city == m.res.City(selectedCityLabel)
}

// VillageInSelectedDistrict：村是否属于选中区
// 背景：优先读取要素自带的父区字段；缺失时查派生包含索引
func (m *Matcher) VillageInSelectedDistrict(villageLabel, featureParentDistrictLabel, selectedDistrictLabel string) bool {
	if selectedDistrictLabel == "" {
		return true
	}
	want := m.res.District(selectedDistrictLabel)
	if featureParentDistrictLabel != "" {
		return m.res.District(featureParentDistrictLabel) == want
	}
	got, ok := m.villageDistrict[m.res.Village(villageLabel)]
	return ok && got == want
}

// IsExactSelectedDistrict：是否恰为选中的那个区（区级选中时单独高亮）
func (m *Matcher) IsExactSelectedDistrict(districtLabel, selectedDistrictLabel string) bool {
	if selectedDistrictLabel == "" {
		return false
	}
	return m.res.District(districtLabel) == m.res.District(selectedDistrictLabel)
}
