package render

import (
	"encoding/json"

	"peta-api/internal/store"
)

// Selection：当前选中的市/区（自由文本，本层不持有，逐次传入重解析）
type Selection struct {
	City     string
	District string
}

// Style：逐要素绘制决策的三态
type Style string

const (
	// 被当前选区排除，前端置灰
	StyleExcluded Style = "excluded"
	// 无匹配记录，中性样式并在提示中明说
	StyleNoData Style = "nodata"
	// 有记录，按领先候选着色
	StyleWinner Style = "winner"
)

// FeatureView：下发给渲染面的单要素决策
type FeatureView struct {
	Key      string          `json:"key"`
	Name     string          `json:"name"`
	Style    Style           `json:"style"`
	Color    string          `json:"color,omitempty"`
	Winner   string          `json:"winner,omitempty"`
	Tooltip  string          `json:"tooltip"`
	Geometry json.RawMessage `json:"geometry,omitempty"`
}

const colorNoData = "#cccccc"

var paslonColors = map[string]string{
	"paslon1": "#d7191c",
	"paslon2": "#2b83ba",
	"paslon3": "#fdae61",
}

var paslonLabels = map[string]string{
	"paslon1": "Paslon 1",
	"paslon2": "Paslon 2",
	"paslon3": "Paslon 3",
}

// winner：三路票数取最大；并列时按固定优先序取第一个达到最大值者
// 约束：稳定的 max-with-first-match，不做随机破平，保证同数据同色
func winner(t store.Tally) string {
	max := t.Paslon1
	w := "paslon1"
	if t.Paslon2 > max {
		max = t.Paslon2
		w = "paslon2"
	}
	if t.Paslon3 > max {
		w = "paslon3"
	}
	return w
}

func winnerVotes(t store.Tally, w string) int64 {
	switch w {
	case "paslon2":
		return t.Paslon2
	case "paslon3":
		return t.Paslon3
	default:
		return t.Paslon1
	}
}
