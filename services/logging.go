package services

import (
	"fmt"
	"log"
	"sync"
	"time"

	"mouse-backend/models"

	"gorm.io/gorm"
)

// LogSink - persists a batch of step logs
type LogSink func([]models.StepLog) error

// LogBuffer - batches step logs in memory and flushes them to a sink
// when flushSize entries are waiting or every flushTime
type LogBuffer struct {
	logs      []models.StepLog
	mu        sync.Mutex
	flushMu   sync.Mutex    // one flush at a time
	flushSize int           // batch size that triggers an immediate flush
	flushTime time.Duration // automatic flush period
	sink      LogSink
	stopChan  chan struct{}
	done      chan struct{}
	stopOnce  sync.Once
}

var logBuffer *LogBuffer

// DBSink - writes batches with CreateInBatches
func DBSink(conn *gorm.DB) LogSink {
	return func(logs []models.StepLog) error {
		return conn.CreateInBatches(logs, 100).Error
	}
}

// NewLogBuffer - starts the automatic flush goroutine
func NewLogBuffer(flushSize int, flushInterval time.Duration, sink LogSink) *LogBuffer {
	if flushSize <= 0 {
		flushSize = 50
	}
	if flushInterval <= 0 {
		flushInterval = 10 * time.Second
	}
	lb := &LogBuffer{
		logs:      make([]models.StepLog, 0, flushSize*2),
		flushSize: flushSize,
		flushTime: flushInterval,
		sink:      sink,
		stopChan:  make(chan struct{}),
		done:      make(chan struct{}),
	}
	go lb.autoFlush()
	return lb
}

// InitLogging - package buffer writing to the database
func InitLogging(flushSize int, flushInterval time.Duration) {
	var sink LogSink
	if db != nil {
		sink = DBSink(db)
	}
	logBuffer = NewLogBuffer(flushSize, flushInterval, sink)
	log.Printf("✅ step logging ready (flushSize: %d, flushInterval: %v)", logBuffer.flushSize, logBuffer.flushTime)
}

// autoFlush - periodic flush until Stop
func (lb *LogBuffer) autoFlush() {
	defer close(lb.done)

	ticker := time.NewTicker(lb.flushTime)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			lb.Flush()
		case <-lb.stopChan:
			lb.Flush() // whatever is left
			return
		}
	}
}

// Add - queues one entry, flushing in the background when the batch is full
func (lb *LogBuffer) Add(entry models.StepLog) {
	lb.mu.Lock()
	lb.logs = append(lb.logs, entry)
	size := len(lb.logs)
	lb.mu.Unlock()

	if size >= lb.flushSize {
		go lb.Flush()
	}
}

// Pending - entries waiting for the next flush
func (lb *LogBuffer) Pending() int {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	return len(lb.logs)
}

// Flush - hands every buffered entry to the sink
func (lb *LogBuffer) Flush() {
	lb.flushMu.Lock()
	defer lb.flushMu.Unlock()

	lb.mu.Lock()
	if len(lb.logs) == 0 {
		lb.mu.Unlock()
		return
	}
	logsToSave := make([]models.StepLog, len(lb.logs))
	copy(logsToSave, lb.logs)
	lb.logs = lb.logs[:0]
	lb.mu.Unlock()

	if lb.sink == nil {
		return
	}
	if err := lb.sink(logsToSave); err != nil {
		log.Printf("❌ saving step logs failed: %v", err)
		return
	}
	log.Printf("💾 saved %d step logs", len(logsToSave))
}

// Stop - final flush, then the flush goroutine exits
func (lb *LogBuffer) Stop() {
	lb.stopOnce.Do(func() {
		close(lb.stopChan)
	})
	<-lb.done
}

// AddStepLog - queues an entry on the package buffer; dropped when
// logging was never initialized
func AddStepLog(entry models.StepLog) {
	if logBuffer == nil {
		return
	}
	logBuffer.Add(entry)
}

// StopLogging - flushes and stops the package buffer
func StopLogging() {
	if logBuffer != nil {
		logBuffer.Stop()
		log.Println("🛑 step logging stopped")
	}
}

// runScope - optional run filter
func runScope(runID string) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if runID == "" {
			return q
		}
		return q.Where("run_id = ?", runID)
	}
}

// GetRecentStepLogs - newest entries first; empty runID means every run
func GetRecentStepLogs(runID string, limit int) ([]models.StepLog, error) {
	if db == nil {
		return nil, ErrNoDatabase
	}
	var logs []models.StepLog
	err := db.Scopes(runScope(runID)).
		Order("created_at DESC").Order("id DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}

// GetStepLogsByTimeRange - entries created between start and end
func GetStepLogsByTimeRange(runID string, start, end time.Time, limit int) ([]models.StepLog, error) {
	if db == nil {
		return nil, ErrNoDatabase
	}
	var logs []models.StepLog
	query := db.Scopes(runScope(runID)).Where("created_at BETWEEN ? AND ?", start, end)
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Order("created_at DESC").Order("id DESC").Find(&logs).Error
	return logs, err
}

// GetStepLogsByAction - entries whose cycle ended with action
func GetStepLogsByAction(runID string, action string, limit int) ([]models.StepLog, error) {
	if db == nil {
		return nil, ErrNoDatabase
	}
	var logs []models.StepLog
	err := db.Scopes(runScope(runID)).
		Where("action = ?", action).
		Order("created_at DESC").Order("id DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}

// GetStepLogStats - counts over the last hours
func GetStepLogStats(runID string, hours int) (models.LogStats, error) {
	if db == nil {
		return models.LogStats{}, ErrNoDatabase
	}
	since := time.Now().Add(-time.Duration(hours) * time.Hour)
	scoped := func() *gorm.DB {
		return db.Model(&models.StepLog{}).Scopes(runScope(runID)).Where("created_at >= ?", since)
	}

	stats := models.LogStats{
		ActionCounts: make(map[string]int64),
		TimeRange:    fmt.Sprintf("Last %d hours", hours),
	}
	if err := scoped().Count(&stats.TotalSteps).Error; err != nil {
		return stats, err
	}

	var actionCounts []struct {
		Action string
		Count  int64
	}
	if err := scoped().Select("action, COUNT(*) as count").Group("action").Scan(&actionCounts).Error; err != nil {
		return stats, err
	}
	for _, ac := range actionCounts {
		stats.ActionCounts[ac.Action] = ac.Count
	}

	var moves struct{ Total int64 }
	if err := scoped().Select("COALESCE(SUM(moves), 0) as total").Scan(&moves).Error; err != nil {
		return stats, err
	}
	stats.TotalMoves = moves.Total
	return stats, nil
}
