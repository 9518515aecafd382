// Package tracker provides the process-wide error history: a bounded,
// thread-safe record of noteworthy errors with lifetime severity counters
// and a crash-capture hook for uncaught panics.
//
// A Tracker is constructed once by the composition root and shared by
// reference; there is no ambient global instance. History is in-memory
// only and lives for the process lifetime.
package tracker

import (
	"bytes"
	"encoding/json"
	"time"

	lderr "github.com/LumenDesk/lumendesk-core/pkg/errors"
)

// ContextPair is one key-value annotation on an Entry. Entries keep
// context as an ordered list so diagnostics render annotations in the
// order they were attached.
type ContextPair struct {
	Key   string
	Value string
}

// EntryContext is the ordered annotation list of an Entry. It serializes
// as a JSON object in list order, an empty list as {}.
type EntryContext []ContextPair

// MarshalJSON implements json.Marshaler, preserving attachment order.
// For duplicate keys the last occurrence wins.
func (c EntryContext) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	written := make(map[string]bool, len(c))
	first := true
	for i := range c {
		if written[c[i].Key] {
			continue
		}
		// Last occurrence wins: scan ahead for a later write to this key.
		value := c[i].Value
		for j := i + 1; j < len(c); j++ {
			if c[j].Key == c[i].Key {
				value = c[j].Value
			}
		}
		written[c[i].Key] = true

		if !first {
			buf.WriteByte(',')
		}
		first = false
		k, err := json.Marshal(c[i].Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Value returns the value for key, honoring last-write-wins, and whether
// the key is present.
func (c EntryContext) Value(key string) (string, bool) {
	found := ""
	ok := false
	for _, p := range c {
		if p.Key == key {
			found, ok = p.Value, true
		}
	}
	return found, ok
}

// Entry is one recorded error in the history. The ID is zero until the
// entry is handed to [Tracker.Record], which assigns the next sequence
// value.
type Entry struct {
	// ID is the strictly increasing sequence number, assigned at record.
	ID uint64 `json:"id"`

	// Timestamp is the capture time in Unix milliseconds.
	Timestamp int64 `json:"timestamp"`

	// Severity grades the entry.
	Severity lderr.Severity `json:"severity"`

	// Source names the subsystem that recorded the entry.
	Source string `json:"source"`

	// Code is the taxonomy code.
	Code lderr.Code `json:"code"`

	// Message is the human-readable message.
	Message string `json:"message"`

	// Details carries optional technical detail.
	Details string `json:"details,omitempty"`

	// StackTrace is the captured stack, when one was taken. It is kept
	// out of the history query payload.
	StackTrace string `json:"-"`

	// Context is the ordered annotation list.
	Context EntryContext `json:"context"`
}

// NewEntry returns an Entry captured now, without an ID.
func NewEntry(severity lderr.Severity, source string, code lderr.Code, message string) Entry {
	return Entry{
		Timestamp: time.Now().UnixMilli(),
		Severity:  severity,
		Source:    source,
		Code:      code,
		Message:   message,
	}
}

// WithDetails returns a copy with Details set.
func (e Entry) WithDetails(details string) Entry {
	e.Details = details
	return e
}

// WithStackTrace returns a copy with StackTrace set.
func (e Entry) WithStackTrace(stack string) Entry {
	e.StackTrace = stack
	return e
}

// WithContext returns a copy with the pair appended to the annotation
// list. The receiver's list is not shared with the copy.
func (e Entry) WithContext(key, value string) Entry {
	ctx := make(EntryContext, len(e.Context), len(e.Context)+1)
	copy(ctx, e.Context)
	e.Context = append(ctx, ContextPair{Key: key, Value: value})
	return e
}
