// 包 ingest：投票/走访记录的批量导入与进程内定期刷新通道
package ingest

import (
	"database/sql"
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"

	"peta-api/internal/logger"
	"peta-api/internal/metrics"
)

// 文档注释：CSV 批量导入
// 背景：竞选团队从政府系统/表格软件导出的 CSV，列序固定：
// level,name,district,paslon1,paslon2,paslon3,visits；首行表头可有可无。
// 约束：名称原样入库（规范化在引擎侧）；非法层级或数值的行跳过并计数，
// 500 行为一批提交，降低锁持有时间。
func ImportCSV(db *sql.DB, r io.Reader) (int, error) {
	rd := csv.NewReader(r)
	rd.FieldsPerRecord = -1
	tx, err := db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()
	const upsert = `INSERT INTO _region_tallies(level, name, district, paslon1, paslon2, paslon3, visits)
        VALUES($1,$2,$3,$4,$5,$6,$7)
        ON CONFLICT (level, name) DO UPDATE SET
          district=EXCLUDED.district,
          paslon1=EXCLUDED.paslon1, paslon2=EXCLUDED.paslon2, paslon3=EXCLUDED.paslon3,
          visits=EXCLUDED.visits`
	stmt, err := tx.Prepare(upsert)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	count := 0
	skipped := 0
	for {
		rec, err := rd.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return count, err
		}
		if len(rec) < 7 {
			skipped++
			continue
		}
		level := strings.ToLower(strings.TrimSpace(rec[0]))
		if level == "level" {
			// 表头行
			continue
		}
		if level != "city" && level != "district" && level != "village" {
			skipped++
			continue
		}
		name := strings.TrimSpace(rec[1])
		if name == "" {
			skipped++
			continue
		}
		nums := make([]int64, 4)
		bad := false
		for i := 0; i < 4; i++ {
			s := strings.TrimSpace(rec[3+i])
			if s == "" {
				continue
			}
			n, e := strconv.ParseInt(s, 10, 64)
			if e != nil || n < 0 {
				bad = true
				break
			}
			nums[i] = n
		}
		if bad {
			skipped++
			continue
		}
		if _, err := stmt.Exec(level, name, strings.TrimSpace(rec[2]), nums[0], nums[1], nums[2], nums[3]); err != nil {
			return count, err
		}
		count++
		metrics.TallyRowsIngested.Inc()
		if count%500 == 0 {
			logger.L().Info("ingest_progress", "count", count)
			if err = tx.Commit(); err != nil {
				return count, err
			}
			tx, err = db.Begin()
			if err != nil {
				return count, err
			}
			stmt, err = tx.Prepare(upsert)
			if err != nil {
				return count, err
			}
		}
	}
	if err = tx.Commit(); err != nil {
		return count, err
	}
	logger.L().Info("ingest_done", "count", count, "skipped", skipped)
	return count, nil
}
