package region

// 文档注释：别名表与三级解析器
// 背景：投票/走访记录与边界属性中的名称不可枚举，错拼出现速度快于别名维护速度；
// 解析失败不是错误，未命中时回退到规范化输入本身，保证任何名称都有稳定可比较的键。
// 约束：表在构建后只读；解析器通过注入表构造，测试可替换数据而不依赖包级状态。

// AliasTable：规范化变体 → 规范化规范值
type AliasTable map[string]string

// NewAliasTable：从声明对构建别名表，键值均过 Normalize
// 约束：值必须是 Normalize 的不动点（构建时即规范形），幂等性由此保证
func NewAliasTable(pairs []aliasPair) AliasTable {
	t := make(AliasTable, len(pairs))
	for _, p := range pairs {
		t[Normalize(p.Variant)] = Normalize(p.Canonical)
	}
	return t
}

// resolveWithAlias：统一的解析管道（规范化 → 查表 → 未命中回退规范化输入）
// 背景：三级解析语义必须完全一致，集中为一个泛化实现避免回退行为分叉
func resolveWithAlias(t AliasTable, name string) string {
	key := Normalize(name)
	if canon, ok := t[key]; ok {
		return canon
	}
	return key
}

// Resolver：三级（市/区/村）解析入口，持有注入的只读别名表
type Resolver struct {
	city     AliasTable
	district AliasTable
	village  AliasTable
}

// NewResolver：按注入表构造解析器
func NewResolver(city, district, village AliasTable) *Resolver {
	return &Resolver{city: city, district: district, village: village}
}

// DefaultResolver：使用内置 DKI Jakarta 声明数据构造解析器
func DefaultResolver() *Resolver {
	return NewResolver(
		NewAliasTable(cityAliasPairs),
		NewAliasTable(districtAliasPairs),
		NewAliasTable(villageAliasPairs),
	)
}

func (r *Resolver) City(name string) string     { return resolveWithAlias(r.city, name) }
func (r *Resolver) District(name string) string { return resolveWithAlias(r.district, name) }
func (r *Resolver) Village(name string) string  { return resolveWithAlias(r.village, name) }
