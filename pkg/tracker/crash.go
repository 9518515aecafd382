package tracker

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	lderr "github.com/LumenDesk/lumendesk-core/pkg/errors"
)

// crashSource labels entries synthesized by crash capture.
const crashSource = "PANIC"

// crashTracker is the process-wide crash destination. Set exactly once by
// InstallCrashCapture.
var crashTracker atomic.Pointer[Tracker]

// InstallCrashCapture registers t as the destination for captured panics.
// Installation happens at most once per process: the first call wins and
// returns true, later calls are ignored and return false.
//
// There is no global panic hook in the runtime, so capture points are
// explicit: defer [Recover] at goroutine roots, or spawn goroutines with
// [Go].
func InstallCrashCapture(t *Tracker) bool {
	if t == nil {
		return false
	}
	return crashTracker.CompareAndSwap(nil, t)
}

// Recover captures a panic into the installed tracker and re-panics, so
// the original crash still unwinds. Defer it at a goroutine root:
//
//	defer tracker.Recover()
//
// Without an installed tracker, Recover re-panics without recording.
func Recover() {
	if r := recover(); r != nil {
		CapturePanic(r)
		panic(r)
	}
}

// Go runs fn on a new goroutine with crash capture at its root. A panic in
// fn is recorded before the process dies.
func Go(fn func()) {
	go func() {
		defer Recover()
		fn()
	}()
}

// CapturePanic records recovered as a Critical entry with source "PANIC",
// the panic site, and the captured stack, then logs the summary. It is
// best effort and never panics itself: without an installed tracker it
// does nothing, and if the tracker's lock is contended (the faulting
// goroutine may already hold it) the capture is dropped rather than
// deadlocking the crash path.
func CapturePanic(recovered any) {
	defer func() {
		// The crash path must not fault again; swallow anything.
		_ = recover()
	}()

	t := crashTracker.Load()
	if t == nil || recovered == nil {
		return
	}

	stack := lderr.CaptureStack(1)
	entry := NewEntry(lderr.SeverityCritical, crashSource, lderr.CodeInternal, panicMessage(recovered)).
		WithDetails("Location: " + panicLocation(stack)).
		WithStackTrace(stack.String())

	if _, ok := t.tryRecord(entry); !ok {
		return
	}

	s := t.Summary()
	t.logger.Log(context.Background(), lderr.SeverityCritical.Level(), "error summary",
		"total", s.Total,
		"errors", s.Errors,
		"warnings", s.Warnings,
		"critical", s.Critical,
	)
}

func panicMessage(recovered any) string {
	switch v := recovered.(type) {
	case string:
		return v
	case error:
		return v.Error()
	default:
		return fmt.Sprint(v)
	}
}

// panicLocation picks the first frame outside the runtime's unwind
// machinery and this package's capture helpers, i.e. the panic site as
// seen from the capture point.
func panicLocation(stack lderr.Stack) string {
	for _, f := range stack {
		if strings.HasPrefix(f.Function, "runtime.") {
			continue
		}
		if strings.HasSuffix(f.Function, "pkg/tracker.Recover") {
			continue
		}
		return fmt.Sprintf("%s:%d", f.File, f.Line)
	}
	return "unknown"
}

// resetCrashCapture clears the installed tracker. Test use only.
func resetCrashCapture() {
	crashTracker.Store(nil)
}
