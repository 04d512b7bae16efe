package xrest

import "sync"

// Navigator 抽象"当前位置"与跳转能力。
// 终端前端（如 conctl 的交互模式）维护一个虚拟位置并实现本接口；
// 测试中可注入记录器验证跳转行为。
type Navigator interface {
	// Current 返回当前位置（路径 + 查询串）。
	Current() string

	// Replace 以替换方式跳转到目标位置（不产生历史记录）。
	Replace(location string)
}

// SessionClearer 会话清理能力。
// xrest 只依赖这一个窄接口，而非整个会话存储，
// 保持传输层对会话存储的依赖显式且可替换。
type SessionClearer interface {
	ClearAuth()
}

// MemoryNavigator 进程内位置记录器，并发安全。
// 供 CLI 交互模式与测试使用。
type MemoryNavigator struct {
	mu       sync.RWMutex
	location string
}

// NewMemoryNavigator 以 start 为初始位置创建记录器。
func NewMemoryNavigator(start string) *MemoryNavigator {
	return &MemoryNavigator{location: start}
}

// Current 返回当前位置。
func (n *MemoryNavigator) Current() string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.location
}

// Replace 替换当前位置。
func (n *MemoryNavigator) Replace(location string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.location = location
}
