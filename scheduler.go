package pxhost

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

type SchedulerState int32

const (
	SchedulerStopped SchedulerState = iota
	SchedulerRunning
	SchedulerStopping
)

func (s SchedulerState) String() string {
	switch s {
	case SchedulerStopped:
		return "stopped"
	case SchedulerRunning:
		return "running"
	case SchedulerStopping:
		return "stopping"
	}
	return fmt.Sprintf("SchedulerState(%d)", int32(s))
}

// scheduler calls step at a fixed period on its own goroutine. It shares
// the engine lock: step always runs with mu held, and period,
// stopRequested and failure are guarded by it. The lock is never held
// while sleeping.
type scheduler struct {
	mu   *sync.Mutex
	step func(dt float32) error
	log  Logger

	period        time.Duration
	stopRequested bool
	failure       error

	stopCh chan struct{}
	wg     sync.WaitGroup

	state    atomic.Int32
	ticks    atomic.Uint64
	overruns atomic.Uint64
	lastStep atomic.Int64
}

func newScheduler(mu *sync.Mutex, hz uint32, log Logger, step func(dt float32) error) *scheduler {
	return &scheduler{
		mu:     mu,
		step:   step,
		log:    log,
		period: periodOf(hz),
		stopCh: make(chan struct{}),
	}
}

// periodOf expects a frequency accepted by validFrequency.
func periodOf(hz uint32) time.Duration {
	return time.Second / time.Duration(hz)
}

func validFrequency(hz uint32) bool {
	return hz > 0 && hz <= MaxFrequencyHz
}

func (s *scheduler) start() {
	s.state.Store(int32(SchedulerRunning))
	s.wg.Add(1)
	go s.loop()
}

// setPeriodLocked changes the period used from the next tick on. The
// caller holds mu.
func (s *scheduler) setPeriodLocked(hz uint32) {
	s.period = periodOf(hz)
}

func (s *scheduler) loop() {
	defer s.wg.Done()
	defer s.state.Store(int32(SchedulerStopped))

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		s.mu.Lock()
		if s.stopRequested {
			s.mu.Unlock()
			return
		}
		period := s.period
		s.mu.Unlock()

		start := time.Now()
		if done, err := s.tick(period); done {
			if err != nil {
				s.log.Errorf("scheduler: step failed, stopping: %v", err)
			}
			return
		}
		elapsed := time.Since(start)
		s.lastStep.Store(int64(elapsed))

		wait := period - elapsed
		if wait <= 0 {
			// Late ticks are dropped, not queued: start the next one now.
			n := s.overruns.Add(1)
			if s.log.DebugEnabled() {
				s.log.Debugf("scheduler: step took %v, period %v (overrun #%d)", elapsed, period, n)
			}
			continue
		}

		timer.Reset(wait)
		select {
		case <-s.stopCh:
			return
		case <-timer.C:
		}
	}
}

// tick runs one step under the lock. done is true when the loop must exit.
func (s *scheduler) tick(period time.Duration) (done bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopRequested {
		return true, nil
	}
	if err := s.step(float32(period.Seconds())); err != nil {
		s.failure = err
		return true, err
	}
	s.ticks.Add(1)
	return false, nil
}

// stop requests shutdown and blocks until the loop has exited. No step
// runs after stop returns. It is safe to call more than once.
func (s *scheduler) stop() {
	s.mu.Lock()
	already := s.stopRequested
	s.stopRequested = true
	s.mu.Unlock()

	if !already {
		s.state.CompareAndSwap(int32(SchedulerRunning), int32(SchedulerStopping))
		close(s.stopCh)
	}
	s.wg.Wait()
	s.state.Store(int32(SchedulerStopped))
}

func (s *scheduler) currentState() SchedulerState { return SchedulerState(s.state.Load()) }

// failedLocked returns the step error that ended the loop, if any. The
// caller holds mu.
func (s *scheduler) failedLocked() error { return s.failure }
