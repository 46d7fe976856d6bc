package boundary

import "sync/atomic"

// 文档注释：可原子切换的快照持有器
// 背景：管理端可在不中断服务的情况下热重载边界文件；读路径无锁，
// 渲染期间拿到的是单次加载的一致快照。
// WARNING: Set 传入 nil 会使后续读取得到空快照，应由上层保证加载成功后再切换。
type DynSnapshot struct {
	v atomic.Value
}

// Get：当前快照；尚未加载时返回 nil
func (d *DynSnapshot) Get() *Snapshot {
	x := d.v.Load()
	if x == nil {
		return nil
	}
	return x.(*Snapshot)
}

// Set：切换快照，对后续 Get 立即生效
func (d *DynSnapshot) Set(s *Snapshot) { d.v.Store(s) }
