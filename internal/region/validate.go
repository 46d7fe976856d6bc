package region

import "fmt"

// 文档注释：声明数据的离线校验
// 背景：运行期查找是全函数、不报错，数据质量问题必须在构建/测试期暴露；
// 本文件供 cmd/alias-lint 与测试调用，服务运行路径不引用。

// Issue：一条校验结论；Severity 为 error 时 alias-lint 以非零码退出
type Issue struct {
	Severity string // error | warn
	Table    string
	Detail   string
}

// ValidateDefaults：对内置声明数据跑全部校验
func ValidateDefaults() []Issue {
	var out []Issue
	out = append(out, validateAliasPairs("city", cityAliasPairs)...)
	out = append(out, validateAliasPairs("district", districtAliasPairs)...)
	out = append(out, validateAliasPairs("village", villageAliasPairs)...)
	out = append(out, validateHierarchy(hierarchyDecl)...)
	out = append(out, validateDistrictAliasTargets(districtAliasPairs, hierarchyDecl)...)
	out = append(out, crossTableCollisions()...)
	return out
}

// validateAliasPairs：同表内一个变体映射到两个规范值即为缺陷；
// 规范值若同时是本表变体键且指向他处，说明存在别名链，同样判错
func validateAliasPairs(table string, pairs []aliasPair) []Issue {
	var out []Issue
	seen := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k := Normalize(p.Variant)
		v := Normalize(p.Canonical)
		if prev, ok := seen[k]; ok && prev != v {
			out = append(out, Issue{"error", table,
				fmt.Sprintf("variant %q maps to both %q and %q", k, prev, v)})
			continue
		}
		seen[k] = v
	}
	for _, p := range pairs {
		v := Normalize(p.Canonical)
		if target, ok := seen[v]; ok && target != v {
			out = append(out, Issue{"error", table,
				fmt.Sprintf("canonical %q is itself aliased to %q (chain)", v, target)})
		}
	}
	return out
}

// validateHierarchy：一个区只允许归属一个市；构建代码是“后声明覆盖”，此处把覆盖揪出来
func validateHierarchy(decl []cityDecl) []Issue {
	var out []Issue
	owner := make(map[string]string)
	for _, c := range decl {
		ck := Normalize(c.City)
		for _, d := range c.Districts {
			dk := Normalize(d)
			if prev, ok := owner[dk]; ok && prev != ck {
				out = append(out, Issue{"error", "hierarchy",
					fmt.Sprintf("district %q declared under both %q and %q", dk, prev, ck)})
			}
			owner[dk] = ck
		}
	}
	return out
}

// validateDistrictAliasTargets：区级别名的规范值应出现在层级声明中，否则兜底索引会指向孤儿键
func validateDistrictAliasTargets(pairs []aliasPair, decl []cityDecl) []Issue {
	known := make(map[string]bool)
	for _, c := range decl {
		for _, d := range c.Districts {
			known[Normalize(d)] = true
		}
	}
	var out []Issue
	for _, p := range pairs {
		if v := Normalize(p.Canonical); !known[v] {
			out = append(out, Issue{"warn", "district",
				fmt.Sprintf("alias target %q not present in hierarchy", v)})
		}
	}
	return out
}

// crossTableCollisions：同一变体在区表与村表各有不同去向属数据源的已知含糊点，
// 报 warn 交人工裁决，不在代码里猜哪边正确
func crossTableCollisions() []Issue {
	d := NewAliasTable(districtAliasPairs)
	v := NewAliasTable(villageAliasPairs)
	var out []Issue
	for k, dv := range d {
		if vv, ok := v[k]; ok && vv != dv {
			out = append(out, Issue{"warn", "district/village",
				fmt.Sprintf("variant %q maps to %q as district but %q as village", k, dv, vv)})
		}
	}
	return out
}
