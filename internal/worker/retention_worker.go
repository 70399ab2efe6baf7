package worker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Diaconix/event-manager/internal/service"
	"github.com/Diaconix/event-manager/pkg/logger"
)

// RetentionWorkerConfig holds retention sweep settings
type RetentionWorkerConfig struct {
	// ScanInterval is how often the worker looks for due guests
	ScanInterval time.Duration
	// BatchSize bounds how many guests one scan pass scrubs
	BatchSize int
}

// DefaultRetentionWorkerConfig returns default worker configuration
func DefaultRetentionWorkerConfig() *RetentionWorkerConfig {
	return &RetentionWorkerConfig{
		ScanInterval: 1 * time.Minute,
		BatchSize:    100,
	}
}

// RetentionWorkerStats is a snapshot of worker statistics
type RetentionWorkerStats struct {
	IsRunning         bool      `json:"is_running"`
	TotalScrubbed     int64     `json:"total_scrubbed"`
	LastScanTime      time.Time `json:"last_scan_time"`
	LastScrubbedCount int       `json:"last_scrubbed_count"`
}

// RetentionWorker periodically scrubs personal data of guests whose
// retention deadline has passed. Each guest's scrub is its own short
// transaction inside the service, so a stop between scans never leaves a
// row partially scrubbed and the sweep never blocks concurrent check-ins.
type RetentionWorker struct {
	retention service.RetentionService
	config    *RetentionWorkerConfig
	log       *logger.Logger

	mu                sync.Mutex
	running           bool
	stop              chan struct{}
	done              chan struct{}
	totalScrubbed     int64
	lastScanTime      time.Time
	lastScrubbedCount int
}

// NewRetentionWorker creates a new RetentionWorker
func NewRetentionWorker(retention service.RetentionService, log *logger.Logger, config *RetentionWorkerConfig) *RetentionWorker {
	if config == nil {
		config = DefaultRetentionWorkerConfig()
	}
	if log == nil {
		log = logger.Get()
	}
	return &RetentionWorker{
		retention: retention,
		config:    config,
		log:       log,
	}
}

// Start begins the periodic sweep. It is a no-op if already running.
func (w *RetentionWorker) Start(ctx context.Context) {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.stop = make(chan struct{})
	w.done = make(chan struct{})
	w.mu.Unlock()

	go w.run(ctx)
}

// Stop stops the worker and waits for the in-flight scan to finish
func (w *RetentionWorker) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	close(w.stop)
	done := w.done
	w.mu.Unlock()

	<-done
}

// GetStats returns a snapshot of worker statistics
func (w *RetentionWorker) GetStats() *RetentionWorkerStats {
	w.mu.Lock()
	defer w.mu.Unlock()

	return &RetentionWorkerStats{
		IsRunning:         w.running,
		TotalScrubbed:     w.totalScrubbed,
		LastScanTime:      w.lastScanTime,
		LastScrubbedCount: w.lastScrubbedCount,
	}
}

func (w *RetentionWorker) run(ctx context.Context) {
	defer close(w.done)

	ticker := time.NewTicker(w.config.ScanInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.scan(ctx)
		case <-w.stop:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (w *RetentionWorker) scan(ctx context.Context) {
	now := time.Now()
	count, err := w.retention.RunDueDeletions(ctx, now)

	w.mu.Lock()
	w.lastScanTime = now
	w.lastScrubbedCount = count
	w.totalScrubbed += int64(count)
	w.mu.Unlock()

	if err != nil {
		w.log.ErrorContext(ctx, "retention sweep failed", zap.Error(err), zap.Int("scrubbed", count))
		return
	}
	if count > 0 {
		w.log.InfoContext(ctx, "retention sweep completed", zap.Int("scrubbed", count))
	}
}
