package tracker

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"

	lderr "github.com/LumenDesk/lumendesk-core/pkg/errors"
)

// DefaultCapacity is the history bound used when Config.Capacity is zero.
const DefaultCapacity = 100

// Config configures a Tracker.
type Config struct {
	// Capacity bounds the history. Zero means DefaultCapacity.
	Capacity int

	// Logger receives one line per recorded entry.
	// Defaults to slog.Default().
	Logger *slog.Logger
}

// Tracker is the bounded error history. One exclusive lock guards the
// queue, the sequence counter, and the three severity counters, so no
// reader ever observes a partially applied record.
//
// Log emission happens after the lock is released: a slow log sink never
// serializes state updates behind it.
type Tracker struct {
	mu       sync.Mutex
	entries  []Entry
	capacity int
	sequence uint64

	// Lifetime counters since the last Clear. Info entries are observed
	// but not counted.
	warningCount  uint64
	errorCount    uint64
	criticalCount uint64

	logger *slog.Logger
}

// New returns a Tracker with the given configuration.
func New(cfg Config) *Tracker {
	capacity := cfg.Capacity
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Tracker{
		entries:  make([]Entry, 0, capacity),
		capacity: capacity,
		logger:   logger,
	}
}

// Record assigns the next sequence value to e, bumps the matching severity
// counter, appends e to the history with FIFO eviction above capacity, and
// logs it. It returns the entry with its assigned ID.
func (t *Tracker) Record(e Entry) Entry {
	t.mu.Lock()
	e = t.recordLocked(e)
	t.mu.Unlock()

	t.log(e)
	return e
}

// tryRecord is Record with a non-blocking lock attempt. It returns false
// and drops the entry when the lock is contended. Used by the crash path,
// where blocking on a lock the faulting goroutine may hold would deadlock.
func (t *Tracker) tryRecord(e Entry) (Entry, bool) {
	if !t.mu.TryLock() {
		return e, false
	}
	e = t.recordLocked(e)
	t.mu.Unlock()

	t.log(e)
	return e, true
}

func (t *Tracker) recordLocked(e Entry) Entry {
	t.sequence++
	e.ID = t.sequence

	switch e.Severity {
	case lderr.SeverityWarning:
		t.warningCount++
	case lderr.SeverityError:
		t.errorCount++
	case lderr.SeverityCritical:
		t.criticalCount++
	}

	t.entries = append(t.entries, e)
	if over := len(t.entries) - t.capacity; over > 0 {
		t.entries = append(t.entries[:0], t.entries[over:]...)
	}
	return e
}

func (t *Tracker) log(e Entry) {
	t.logger.Log(context.Background(), e.Severity.Level(), e.Message,
		slog.Uint64("id", e.ID),
		slog.String("source", e.Source),
		slog.String("code", string(e.Code)),
	)
}

// Recent returns up to limit entries, most recently recorded first. The
// returned slice is a copy; a negative or zero limit returns nothing.
func (t *Tracker) Recent(limit int) []Entry {
	if limit <= 0 {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	n := len(t.entries)
	if limit > n {
		limit = n
	}
	out := make([]Entry, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, t.entries[i])
	}
	return out
}

// Summary is the counters snapshot. Total is the current history length,
// bounded by capacity; the three counters are lifetime totals since the
// last Clear and are not bounded.
type Summary struct {
	Total    int    `json:"total"`
	Errors   uint64 `json:"errors"`
	Warnings uint64 `json:"warnings"`
	Critical uint64 `json:"critical"`
}

// Summary returns a consistent snapshot of the counters.
func (t *Tracker) Summary() Summary {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Summary{
		Total:    len(t.entries),
		Errors:   t.errorCount,
		Warnings: t.warningCount,
		Critical: t.criticalCount,
	}
}

// Clear empties the history and zeroes all counters as one atomic step.
// The sequence counter is not reset: IDs stay strictly increasing across
// the process lifetime.
func (t *Tracker) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = t.entries[:0]
	t.warningCount = 0
	t.errorCount = 0
	t.criticalCount = 0
}

// HistoryResult is the history query payload consumed by diagnostics UIs.
type HistoryResult struct {
	Errors []Entry `json:"errors"`
	Count  int     `json:"count"`
}

// History returns up to limit entries most-recent-first together with the
// returned count, in the shape the diagnostics UI consumes.
func (t *Tracker) History(limit int) HistoryResult {
	entries := t.Recent(limit)
	if entries == nil {
		entries = []Entry{}
	}
	return HistoryResult{Errors: entries, Count: len(entries)}
}

// RecordError maps err into an Entry and records it. Severity follows
// handler classification, except that internal failures grade as Error
// in the history; Critical is never assigned here, that grade is
// reserved for crash capture. A nil err is ignored.
//
// RecordError satisfies the handler's recorder interface, letting a
// handler forward everything it processes into the history.
func (t *Tracker) RecordError(source string, err error) {
	if err == nil {
		return
	}

	v := lderr.ToValue(lderr.Coerce(err))
	message := v.Message
	var annotations map[string]string
	if e, ok := lderr.AsError(err); ok {
		message = e.Message
		annotations = e.Context
	}

	entry := NewEntry(recordSeverity(err), source, v.Code, message)
	if v.Details != "" {
		entry = entry.WithDetails(v.Details)
	}
	if v.Cause != "" {
		entry = entry.WithContext("cause", v.Cause)
	}
	for _, k := range sortedKeys(v.Context) {
		entry = entry.WithContext(k, v.Context[k])
	}
	for _, k := range sortedKeys(annotations) {
		entry = entry.WithContext(k, annotations[k])
	}

	t.Record(entry)
}

// recordSeverity grades err for the history. Handler classification
// treats internal failures as an expected application grade for log
// levels; in the history they count against the error counter.
func recordSeverity(err error) lderr.Severity {
	var internal *lderr.InternalError
	if errors.As(err, &internal) {
		return lderr.SeverityError
	}
	return lderr.Classify(err)
}

func sortedKeys(m map[string]string) []string {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
