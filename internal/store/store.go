// 包 store: 提供与 PostgreSQL 的数据访问层，包含投票/走访记录与统计读写
package store

import (
	"context"
	"database/sql"

	"peta-api/internal/logger"

	_ "github.com/lib/pq"
)

// Store: 数据库访问入口，持有连接池并提供查询/统计接口
type Store struct {
	db *sql.DB
}

func AttachDB(db *sql.DB) *Store { return &Store{db: db} }

// Open: 使用 DSN 打开数据库连接并配置连接池参数
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(50)
	db.SetMaxIdleConns(25)
	return &Store{db: db}, nil
}

// Close: 关闭数据库连接
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) DB() *sql.DB { return s.db }

// Tally: 一条区域记录——自由文本名称 + 可选父区名 + 三路候选票数与走访数
// 背景：名称原样入库，规范化与别名归并发生在引擎侧，库内保留政府系统导出的原貌
type Tally struct {
	Name     string
	District string
	Paslon1  int64
	Paslon2  int64
	Paslon3  int64
	Visits   int64
}

// ListTallies: 按层级（city/district/village）取全部记录
// 约束：单省数据量为数百行，整表读出后由引擎内存化，不做分页
func (s *Store) ListTallies(ctx context.Context, level string) ([]Tally, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT name, district, paslon1, paslon2, paslon3, visits FROM _region_tallies WHERE level=$1 ORDER BY name", level)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Tally
	for rows.Next() {
		var t Tally
		if err := rows.Scan(&t.Name, &t.District, &t.Paslon1, &t.Paslon2, &t.Paslon3, &t.Visits); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	logger.L().Debug("db_tallies_listed", "level", level, "rows", len(out))
	return out, nil
}

// UpsertTally: 以 (level, name) 为键写入或更新一条记录
func (s *Store) UpsertTally(ctx context.Context, level string, t Tally) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO _region_tallies(level, name, district, paslon1, paslon2, paslon3, visits)
         VALUES($1,$2,$3,$4,$5,$6,$7)
         ON CONFLICT (level, name) DO UPDATE SET
           district=EXCLUDED.district,
           paslon1=EXCLUDED.paslon1, paslon2=EXCLUDED.paslon2, paslon3=EXCLUDED.paslon3,
           visits=EXCLUDED.visits`,
		level, t.Name, t.District, t.Paslon1, t.Paslon2, t.Paslon3, t.Visits)
	return err
}

// IncrStats: 成功渲染后递增总计与当日计数
// 约束：统计是弱一致副产品，写失败静默忽略，不影响主流程
func (s *Store) IncrStats(ctx context.Context) error {
	_, _ = s.db.ExecContext(ctx, "UPDATE _region_stats_total SET total_queries=total_queries+1 WHERE id=1")
	_, _ = s.db.ExecContext(ctx, "INSERT INTO _region_stats_daily(day, queries) VALUES(current_date, 1) ON CONFLICT (day) DO UPDATE SET queries=_region_stats_daily.queries+1")
	return nil
}

// Totals: 统计返回结构，包含累计与当日渲染次数
type Totals struct {
	Total int64
	Today int64
}

// GetTotals: 读取累计与当日计数，用于接口返回
func (s *Store) GetTotals(ctx context.Context) (*Totals, error) {
	var t Totals
	row := s.db.QueryRowContext(ctx, "SELECT total_queries FROM _region_stats_total WHERE id=1")
	_ = row.Scan(&t.Total)
	row2 := s.db.QueryRowContext(ctx, "SELECT queries FROM _region_stats_daily WHERE day=current_date")
	_ = row2.Scan(&t.Today)
	logger.L().Debug("stats_totals", "total", t.Total, "today", t.Today)
	return &t, nil
}
