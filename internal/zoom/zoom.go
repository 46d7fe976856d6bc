// 包 zoom：连续缩放值到离散展示层级的分类与去重通知
package zoom

import "sync"

// Level：三档展示层级，village 最细
type Level int

const (
	LevelCity Level = iota
	LevelDistrict
	LevelVillage
)

func (l Level) String() string {
	switch l {
	case LevelDistrict:
		return "district"
	case LevelVillage:
		return "village"
	default:
		return "city"
	}
}

// ParseLevel：解析层级名；未知输入返回 city 与 false
func ParseLevel(s string) (Level, bool) {
	switch s {
	case "city":
		return LevelCity, true
	case "district":
		return LevelDistrict, true
	case "village":
		return LevelVillage, true
	}
	return LevelCity, false
}

// Classify：纯分类函数
// 约束：z < tDistrict → city；tDistrict ≤ z < tVillage → village 之前的 district；z ≥ tVillage → village。
// 阈值由调用方注入（默认 11/12），本身无状态。
func Classify(z, tDistrict, tVillage float64) Level {
	switch {
	case z < tDistrict:
		return LevelCity
	case z < tVillage:
		return LevelDistrict
	default:
		return LevelVillage
	}
}

// Tracker：记住最近一次发出的层级，仅在离散层级切换时通知监听者
// 背景：缩放手势每个 tick 都会携带新 z 值，若逐 tick 通知，下游会反复
// 重建派生索引；去重后一次手势最多触发一次重算。
// 约束：监听者在 Observe 调用栈内同步执行，完成后 Observe 才返回，
// 保证层级稳定后下游才开始依赖“当前层级”的重算。
type Tracker struct {
	mu        sync.Mutex
	tDistrict float64
	tVillage  float64
	last      Level
	emitted   bool
	listeners []func(Level)
}

// NewTracker：按注入阈值构造
func NewTracker(tDistrict, tVillage float64) *Tracker {
	return &Tracker{tDistrict: tDistrict, tVillage: tVillage}
}

// OnChange：注册层级切换监听者；首次分类也视为一次切换
func (t *Tracker) OnChange(fn func(Level)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.listeners = append(t.listeners, fn)
}

// Observe：分类 z 并在层级变化时通知；返回当前层级与是否发生切换
func (t *Tracker) Observe(z float64) (Level, bool) {
	t.mu.Lock()
	lvl := Classify(z, t.tDistrict, t.tVillage)
	changed := !t.emitted || lvl != t.last
	t.last = lvl
	t.emitted = true
	var fns []func(Level)
	if changed {
		fns = append(fns, t.listeners...)
	}
	t.mu.Unlock()
	for _, fn := range fns {
		fn(lvl)
	}
	return lvl, changed
}

// Current：最近一次发出的层级；尚未观测过任何 z 时返回 city 与 false
func (t *Tracker) Current() (Level, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.last, t.emitted
}
