// 表校验工具：检查内置别名表与层级索引的一致性，发现 error 级问题以非零码退出
package main

import (
	"fmt"
	"os"

	"peta-api/internal/region"
)

func main() {
	issues := region.ValidateDefaults()
	fatal := false
	for _, is := range issues {
		fmt.Printf("%s\t%s\t%s\n", is.Severity, is.Table, is.Detail)
		if is.Severity == "error" {
			fatal = true
		}
	}
	if fatal {
		os.Exit(1)
	}
	fmt.Println("checked:", len(issues), "issues")
}
