package migrate

import (
	"database/sql"

	"peta-api/internal/logger"
)

// 背景：首次运行自动创建所需表与索引，保障后续导入与查询
// 约束：使用 IF NOT EXISTS 避免与既有结构冲突；仅创建最小必需结构
func EnsureSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS _region_tallies (
            level TEXT NOT NULL,
            name TEXT NOT NULL,
            district TEXT NOT NULL DEFAULT '',
            paslon1 BIGINT NOT NULL DEFAULT 0,
            paslon2 BIGINT NOT NULL DEFAULT 0,
            paslon3 BIGINT NOT NULL DEFAULT 0,
            visits BIGINT NOT NULL DEFAULT 0,
            PRIMARY KEY(level, name)
        )`,
		`CREATE INDEX IF NOT EXISTS idx_tallies_level ON _region_tallies(level)`,
		`CREATE TABLE IF NOT EXISTS _region_stats_total (
            id INT PRIMARY KEY,
            total_queries BIGINT NOT NULL DEFAULT 0,
            total_visitors BIGINT NOT NULL DEFAULT 0
        )`,
		`CREATE TABLE IF NOT EXISTS _region_stats_daily (
            day DATE PRIMARY KEY,
            queries BIGINT NOT NULL DEFAULT 0,
            visitors BIGINT NOT NULL DEFAULT 0
        )`,
		`INSERT INTO _region_stats_total(id, total_queries, total_visitors)
         VALUES(1, 0, 0)
         ON CONFLICT (id) DO NOTHING`,
	}
	for i, s := range stmts {
		logger.L().Debug("schema_exec", "idx", i)
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	logger.L().Debug("schema_done")
	return nil
}
