package flatsync

import (
	"fmt"
	"time"

	"github.com/signadot/flatsync/debug"
)

// liveWatch is the handle of one polling loop.  The loop owns its retained
// snapshot; stop is closed by the owner, done by the loop on exit.
type liveWatch struct {
	stop chan struct{}
	done chan struct{}
}

// WatchLive starts a polling loop that re-flattens the working set every
// interval, diffs against the previous snapshot and, only when the diff is
// non-empty, updates the snapshot and calls fn with the changes.  At most
// one loop runs per SyncTool: starting a new watch first stops any active
// one.  Delivery is synchronous within a tick, so ticks never overlap.
//
// fn runs on the loop goroutine and must not call StopWatch or WatchLive;
// both wait for the tick in flight to complete.
func (s *SyncTool) WatchLive(fn func([]Change), interval time.Duration, opts *DiffOptions) error {
	if fn == nil {
		return fmt.Errorf("%w: nil watch callback", ErrInvalidArgument)
	}
	if interval <= 0 {
		return fmt.Errorf("%w: non-positive watch interval %v", ErrInvalidArgument, interval)
	}
	s.StopWatch()

	snapshot, err := s.currentFlat()
	if err != nil {
		return err
	}
	w := &liveWatch{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	s.mu.Lock()
	s.live = w
	s.mu.Unlock()

	go func() {
		defer close(w.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-w.stop:
				return
			case <-ticker.C:
				cur, err := s.currentFlat()
				if err != nil {
					if debug.Watch() {
						debug.Logf("watch tick: %v\n", err)
					}
					continue
				}
				diff := Watch(snapshot, cur, opts)
				if len(diff) == 0 {
					continue
				}
				if debug.Watch() {
					debug.Logf("watch tick: %d changes\n", len(diff))
				}
				snapshot = cur
				fn(diff)
			}
		}
	}()
	return nil
}

// StopWatch cancels the active polling loop, if any, and waits for a tick in
// progress to complete.  It must not be called from inside the watch
// callback: the callback runs on the loop goroutine, so the wait would never
// return.
func (s *SyncTool) StopWatch() {
	s.mu.Lock()
	w := s.live
	s.live = nil
	s.mu.Unlock()
	if w == nil {
		return
	}
	close(w.stop)
	<-w.done
}
