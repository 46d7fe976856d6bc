package boundary

import (
	"encoding/json"
	"time"

	"peta-api/internal/zoom"
)

// 文档注释：边界要素的最小承载结构
// 背景：渲染决策只消费属性袋与透传几何，不校验几何拓扑；
// 几何以 RawMessage 原样下发给前端，引擎不解析坐标。
type Feature struct {
	Properties map[string]any
	Geometry   json.RawMessage
}

// Snapshot：一次加载产出的三级要素集合，只读共享
type Snapshot struct {
	Features map[zoom.Level][]Feature
	BuiltAt  time.Time
}

// Level 上的要素数，缺层返回 0
func (s *Snapshot) Count(level zoom.Level) int {
	if s == nil {
		return 0
	}
	return len(s.Features[level])
}
