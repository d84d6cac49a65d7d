// Package safe_close coordinates graceful shutdown across long-running goroutines.
// Package safe_close 协调多个常驻 goroutine 的优雅关闭。
package safe_close

import "sync"

// SafeClose fans a single close signal out to every attached goroutine and
// waits for all of them to report completion.
// SafeClose 将一次关闭信号广播给所有挂载的 goroutine，并等待它们全部完成。
type SafeClose struct {
	mu          sync.Mutex
	closeSignal chan struct{}
	closed      bool
	err         error
	wg          sync.WaitGroup
}

func NewSafeClose() *SafeClose {
	return &SafeClose{
		closeSignal: make(chan struct{}),
	}
}

// Attach registers a goroutine. The callback receives a done function that
// must be called exactly once, and the shared close signal channel.
// Attach 注册一个 goroutine。回调获得必须恰好调用一次的 done 函数和共享的关闭信号通道。
func (s *SafeClose) Attach(f func(done func(), closeSignal <-chan struct{})) {
	s.wg.Add(1)
	var once sync.Once
	done := func() {
		once.Do(s.wg.Done)
	}
	go f(done, s.closeSignal)
}

// SendCloseSignal triggers shutdown. The first non-nil error wins; later
// calls are no-ops.
// SendCloseSignal 触发关闭。第一个非 nil 错误被保留，后续调用不生效。
func (s *SafeClose) SendCloseSignal(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.err = err
	close(s.closeSignal)
}

// CloseSignal exposes the signal channel for select loops.
func (s *SafeClose) CloseSignal() <-chan struct{} {
	return s.closeSignal
}

// WaitClosed blocks until every attached goroutine has called done, then
// returns the error passed to SendCloseSignal, if any.
// WaitClosed 阻塞直到所有挂载的 goroutine 调用 done，然后返回 SendCloseSignal 传入的错误。
func (s *SafeClose) WaitClosed() error {
	s.wg.Wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
