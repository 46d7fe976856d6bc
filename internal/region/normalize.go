// 包 region：行政区名称的规范化、别名归并与层级索引，是全服务的身份判定核心
package region

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// 变音符剥离链：NFD 分解后移除 Mn 组合符，再 NFC 合成
// 背景：政府系统导出的名称偶带变音字符（é、ā 等），需折叠到 ASCII 才能与边界数据对齐
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize：将任意自由文本名称折叠为规范比较键
// 背景：同一行政区在投票表、走访表、GeoJSON 属性与下拉框中拼写各异；
// 统一去空白、去标点、去变音、大写后才能做等值连接。
// 约束：纯函数且全定义（任何输入都不报错）；幂等（对输出再调用返回自身），
// 别名表的键值均以本函数的不动点形式存储。
func Normalize(s string) string {
	folded, _, err := transform.String(stripMarks, s)
	if err != nil {
		folded = s
	}
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		// 仅保留字母与数字；空白、标点（含 KOTA ADM. 之类缩写点号）一律丢弃
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToUpper(r))
		}
	}
	return b.String()
}
