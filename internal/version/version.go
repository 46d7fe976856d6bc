// 包 version：构建期注入的版本信息
package version

// Commit 由构建脚本通过 -ldflags "-X peta-api/internal/version.Commit=..." 注入
var Commit = "dev"
