// Package leaktest fails tests that leave goroutines running.
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

const (
	settleTimeout = 2 * time.Second
	pollInterval  = 10 * time.Millisecond
	maxStackDump  = 64 << 10
)

// GoroutineChecker compares the goroutine count against a baseline
type GoroutineChecker struct {
	t        testing.TB
	baseline int
}

// NewGoroutineChecker records the current goroutine count as the baseline
func NewGoroutineChecker(t testing.TB) *GoroutineChecker {
	t.Helper()
	runtime.Gosched()
	time.Sleep(pollInterval)
	return &GoroutineChecker{t: t, baseline: runtime.NumGoroutine()}
}

// Track records a baseline and checks it when t finishes
func Track(t testing.TB, tolerance int) {
	t.Helper()
	g := NewGoroutineChecker(t)
	t.Cleanup(func() { g.Check(tolerance) })
}

// Check waits up to two seconds for the count to fall within tolerance of the
// baseline, then fails with a goroutine dump
func (g *GoroutineChecker) Check(tolerance int) {
	g.t.Helper()

	n := settle(g.baseline+tolerance, settleTimeout)
	if n-g.baseline <= tolerance {
		return
	}
	g.t.Errorf("goroutine leak: baseline=%d now=%d tolerance=%d\n%s", g.baseline, n, tolerance, dump())
}

// CheckNoGoroutineLeak runs fn and fails t if it leaves goroutines behind
func CheckNoGoroutineLeak(t testing.TB, fn func()) {
	t.Helper()
	g := NewGoroutineChecker(t)
	fn()
	g.Check(0)
}

// settle polls until at most target goroutines remain or timeout elapses
func settle(target int, timeout time.Duration) int {
	deadline := time.Now().Add(timeout)
	for {
		runtime.Gosched()
		if n := runtime.NumGoroutine(); n <= target || time.Now().After(deadline) {
			return n
		}
		time.Sleep(pollInterval)
	}
}

func dump() string {
	buf := make([]byte, maxStackDump)
	return string(buf[:runtime.Stack(buf, true)])
}
