package region

// 文档注释：市 → 区包含关系索引
// 背景：跨层查询（“这个村属于那个市吗”）需要正反两向查找；
// 正向保持声明顺序供下拉框渲染，反向在构建时展平为单映射。
// 约束：一个区恰属一个市；重复声明时后者静默覆盖反向表（构建期风险，
// 由 cmd/alias-lint 与测试检出，运行期不做校验）。

// Hierarchy：正向有序列表 + 反向展平映射，构建后只读
type Hierarchy struct {
	cities    []string
	districts map[string][]string
	parent    map[string]string
}

// NewHierarchy：从嵌套声明构建双向索引，所有键经 Normalize
func NewHierarchy(decl []cityDecl) *Hierarchy {
	h := &Hierarchy{
		districts: make(map[string][]string, len(decl)),
		parent:    make(map[string]string),
	}
	for _, c := range decl {
		ck := Normalize(c.City)
		h.cities = append(h.cities, ck)
		ds := make([]string, 0, len(c.Districts))
		for _, d := range c.Districts {
			dk := Normalize(d)
			ds = append(ds, dk)
			h.parent[dk] = ck
		}
		h.districts[ck] = ds
	}
	return h
}

// DefaultHierarchy：内置 DKI Jakarta 声明
func DefaultHierarchy() *Hierarchy { return NewHierarchy(hierarchyDecl) }

// Cities：全部市级规范键，按声明顺序
func (h *Hierarchy) Cities() []string { return h.cities }

// DistrictsOf：某市下属区的有序规范键列表；未知市返回 nil
func (h *Hierarchy) DistrictsOf(cityKey string) []string { return h.districts[cityKey] }

// CityOf：区的归属市；未知区返回空串与 false
func (h *Hierarchy) CityOf(districtKey string) (string, bool) {
	c, ok := h.parent[districtKey]
	return c, ok
}
