package utils

import "time"

// Timer 毫秒级计时器, 基于单调时钟
type Timer struct {
	start time.Time
}

// Start 记录当前时刻作为计时起点, 覆盖之前的起点
func (t *Timer) Start() {
	t.start = time.Now()
}

// ElapsedMillis 返回距离上一次计时起点过去的毫秒数, 并把起点重置为当前时刻,
// 连续调用测量的是相邻的时间段. 调用前必须先调用 Start
func (t *Timer) ElapsedMillis() int64 {
	now := time.Now()
	elapsed := now.Sub(t.start)
	t.start = now
	if elapsed < 0 {
		return 0
	}
	return elapsed.Milliseconds()
}
