package scheduler

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// BatchProcessor sends one batch of pending messages.
// The scheduler calls ProcessBatch on a fixed interval.
type BatchProcessor interface {
	ProcessBatch(ctx context.Context) error
}

// SchedulerService exposes a small control surface for the scheduler.
// Start/Stop are synchronous controls, and IsRunning reports
// whether the scheduler is currently accepting ticks.
type SchedulerService interface {
	Start() error
	Stop() error
	IsRunning() bool
}

// DefaultInterval is used when no custom interval is provided.
const DefaultInterval = 5 * time.Second

// DefaultBatchTimeout is how long we allow a single batch to run
// before cancelling it via context timeout.
const DefaultBatchTimeout = 30 * time.Second

// controlTimeout is how long we wait for the control loop to
// accept a Start/Stop command and acknowledge it. This protects
// callers from hanging forever if the loop is not running.
const controlTimeout = 2 * time.Second

// controlOp represents the kind of command sent into the internal control loop.
type controlOp int

const (
	opStart controlOp = iota
	opStop
	opStatus
)

// controlMsg is sent over the ctrl channel to drive the scheduler's state.
type controlMsg struct {
	op   controlOp
	resp chan bool // used by callers to get a synchronous answer
}

// schedulerService owns the internal state and runs the control loop.
// All mutable state lives in the loop goroutine, so we don't need locks.
type schedulerService struct {
	processor    BatchProcessor
	interval     time.Duration
	batchTimeout time.Duration
	ctrl         chan controlMsg
	log          *zap.Logger
}

// NewSchedulerService creates a new scheduler with the given interval
// and batch timeout. If any of them is <= 0, sane defaults are used instead.
func NewSchedulerService(
	processor BatchProcessor,
	interval time.Duration,
	batchTimeout time.Duration,
) SchedulerService {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if batchTimeout <= 0 {
		batchTimeout = DefaultBatchTimeout
	}

	s := &schedulerService{
		processor:    processor,
		interval:     interval,
		batchTimeout: batchTimeout,
		ctrl:         make(chan controlMsg),
		log:          zap.L().With(zap.String("component", "scheduler")),
	}

	// The control loop is started in its own goroutine and lives
	// for the lifetime of the process.
	go s.loop()

	return s
}

// Start tells the scheduler to begin processing ticks.
// It blocks until the internal loop has acknowledged the state change,
// or returns an error if the control loop does not respond in time.
func (s *schedulerService) Start() error {
	return s.control(opStart, "Start", controlTimeout)
}

// Stop tells the scheduler to stop accepting new ticks.
// If a batch is currently running, Stop waits until that batch
// finishes (or times out) before returning.
func (s *schedulerService) Stop() error {
	return s.control(opStop, "Stop", s.batchTimeout+controlTimeout)
}

// control sends op to the loop and waits up to ackTimeout for its acknowledgement.
func (s *schedulerService) control(op controlOp, name string, ackTimeout time.Duration) error {
	resp := make(chan bool, 1)

	select {
	case s.ctrl <- controlMsg{op: op, resp: resp}:
	case <-time.After(controlTimeout):
		return fmt.Errorf("[Scheduler] %s: control loop not responding", name)
	}

	select {
	case <-resp:
		return nil
	case <-time.After(ackTimeout):
		return fmt.Errorf("[Scheduler] %s: acknowledgement timeout", name)
	}
}

// IsRunning reports whether the scheduler is currently in "running" mode.
// It does not mean that a batch is actively executing, only that new ticks
// will be processed when the timer fires.
func (s *schedulerService) IsRunning() bool {
	resp := make(chan bool)
	s.ctrl <- controlMsg{op: opStatus, resp: resp}
	return <-resp
}

// loop is the heart of the scheduler. It owns all mutable state
// and reacts to control messages, timer ticks and batch completion.
// Batches run in their own goroutine so control messages are served meanwhile.
func (s *schedulerService) loop() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	running := false
	inBatch := false
	batchDone := make(chan error, 1)

	// pendingStops holds every Stop received mid-batch. All of them are
	// acknowledged once the current batch finishes.
	var pendingStops []chan bool

	for {
		select {
		case msg := <-s.ctrl:
			switch msg.op {
			case opStart:
				if !running {
					s.log.Info("[Scheduler] Started",
						zap.Duration("interval", s.interval),
						zap.Duration("batchTimeout", s.batchTimeout),
					)
				}
				running = true
				msg.resp <- true

			case opStop:
				if !running && !inBatch {
					s.log.Debug("[Scheduler] Stop requested, but already idle.")
					msg.resp <- true
					continue
				}

				s.log.Info("[Scheduler] Stop requested. Waiting for current batch (if any)...")
				running = false

				if inBatch {
					pendingStops = append(pendingStops, msg.resp)
				} else {
					msg.resp <- true
				}

			case opStatus:
				msg.resp <- running
			}

		case <-ticker.C:
			if !running || inBatch {
				continue
			}

			inBatch = true
			s.log.Debug("[Scheduler] Triggering batch...")

			go func() {
				// Time-bound the batch so Stop cannot hang forever.
				ctx, cancel := context.WithTimeout(context.Background(), s.batchTimeout)
				defer cancel()
				batchDone <- s.processor.ProcessBatch(ctx)
			}()

		case err := <-batchDone:
			inBatch = false

			if err != nil {
				s.log.Error("[Scheduler] Batch failed", zap.Error(err))
			} else {
				s.log.Debug("[Scheduler] Batch completed.")
			}

			if len(pendingStops) > 0 {
				for _, resp := range pendingStops {
					resp <- true
				}
				pendingStops = nil
				s.log.Info("[Scheduler] Stopped (no active batch).")
			}
		}
	}
}
