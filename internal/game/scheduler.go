package game

import (
	"sync"
	"time"
)

// TurnScheduler 延迟调度抽象：在延迟后为(对局,玩家)执行AI回合，
// 对局进入终态时可按对局取消。
type TurnScheduler interface {
	// Schedule 在delay后执行fn，同一对局的旧任务会被替换
	Schedule(gameID, playerID uint, delay time.Duration, fn func())
	// Cancel 取消对局的待执行任务
	Cancel(gameID uint)
	// Stop 取消全部待执行任务
	Stop()
}

// timerScheduler 基于time.AfterFunc的调度器实现
type timerScheduler struct {
	mu     sync.Mutex
	timers map[uint]*time.Timer
}

// NewScheduler 创建调度器
func NewScheduler() TurnScheduler {
	return &timerScheduler{
		timers: make(map[uint]*time.Timer),
	}
}

// Schedule 调度延迟任务。每个对局同一时刻最多一个待执行任务。
func (s *timerScheduler) Schedule(gameID, playerID uint, delay time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if timer, ok := s.timers[gameID]; ok {
		timer.Stop()
	}

	s.timers[gameID] = time.AfterFunc(delay, func() {
		s.mu.Lock()
		delete(s.timers, gameID)
		s.mu.Unlock()
		fn()
	})
}

// Cancel 取消对局的待执行任务
func (s *timerScheduler) Cancel(gameID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if timer, ok := s.timers[gameID]; ok {
		timer.Stop()
		delete(s.timers, gameID)
	}
}

// Stop 取消全部待执行任务
func (s *timerScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for gameID, timer := range s.timers {
		timer.Stop()
		delete(s.timers, gameID)
	}
}
