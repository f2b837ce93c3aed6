package utils

import (
	"fmt"
	"sync"
)

// IDGenerator 业务ID生成器
//
// 生成 PREFIX-XXXXXX 形式的短ID，XXXXXX 取毫秒时间戳的末6位。
// 取值严格单调：时钟没有前进时在上一次的取值上加一，
// 保证单实例内不重复；两个独立的生成器实例在同一毫秒内
// 仍可能产生相同ID。
type IDGenerator struct {
	mu         sync.Mutex
	clock      Clock
	lastMillis int64
}

// NewIDGenerator 创建ID生成器，clock 为 nil 时使用系统时钟
func NewIDGenerator(clock Clock) *IDGenerator {
	return &IDGenerator{clock: clock}
}

// NextID 生成下一个ID
func (g *IDGenerator) NextID(prefix string) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := NowMillis(g.clock)
	if ms <= g.lastMillis {
		g.lastMillis++
	} else {
		g.lastMillis = ms
	}

	return fmt.Sprintf("%s-%06d", prefix, g.lastMillis%1000000)
}
