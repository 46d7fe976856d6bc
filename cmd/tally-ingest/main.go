// 数据导入工具：从 CSV 文件批量 UPSERT 三级票数/走访记录到 PostgreSQL
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"peta-api/internal/ingest"
	"peta-api/internal/migrate"
	"peta-api/internal/utils"

	"github.com/joho/godotenv"
)

// 用法：tally-ingest [file.csv]；不传参数时读 TALLY_CSV 环境变量
func main() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join("data", "env", ".env"))

	path := os.Getenv("TALLY_CSV")
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	if path == "" {
		log.Fatal("usage: tally-ingest <file.csv> (or set TALLY_CSV)")
	}

	f, err := os.Open(path)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	db, err := utils.OpenPostgresFromEnv()
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()
	if err := migrate.EnsureSchema(db); err != nil {
		log.Fatal(err)
	}

	n, err := ingest.ImportCSV(db, f)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("imported", n)
}
