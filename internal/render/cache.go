package render

import (
	"container/list"
	"sync"
	"time"
)

// 文档注释：本地 LRU 缓存（渲染载荷，键为 版本:层级:选区）
// 背景：Redis 未配置时的进程内兜底；同一选区在短周期内被反复请求，
// 缓存序列化后的载荷避免逐要素重算与重编码。
// 约束：键由调用方构造并包含数据集版本号，版本递增即自然失效。
type LRU struct {
	mu   sync.Mutex
	cap  int
	ttl  time.Duration
	lst  *list.List
	dict map[string]*list.Element
}

type kv struct {
	k   string
	v   []byte
	exp time.Time
}

func NewLRU(capacity int, ttlSec int) *LRU {
	return &LRU{cap: capacity, ttl: time.Duration(ttlSec) * time.Second, lst: list.New(), dict: make(map[string]*list.Element)}
}

func (c *LRU) Get(k string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.dict[k]; ok {
		it := e.Value.(kv)
		if time.Now().Before(it.exp) {
			c.lst.MoveToFront(e)
			return it.v, true
		}
		c.lst.Remove(e)
		delete(c.dict, k)
	}
	return nil, false
}

func (c *LRU) Set(k string, v []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.dict[k]; ok {
		e.Value = kv{k: k, v: v, exp: time.Now().Add(c.ttl)}
		c.lst.MoveToFront(e)
		return
	}
	e := c.lst.PushFront(kv{k: k, v: v, exp: time.Now().Add(c.ttl)})
	c.dict[k] = e
	for c.lst.Len() > c.cap {
		back := c.lst.Back()
		if back != nil {
			it := back.Value.(kv)
			delete(c.dict, it.k)
			c.lst.Remove(back)
		}
	}
}
