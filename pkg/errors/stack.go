package errors

import (
	"fmt"
	"runtime"
	"strings"
)

// Frame is a single resolved call site in a captured stack.
type Frame struct {
	// Function is the fully-qualified function name.
	Function string

	// File is the source file path as reported by the runtime.
	File string

	// Line is the line number within File.
	Line int
}

// String formats the frame as "function (file:line)".
func (f Frame) String() string {
	return fmt.Sprintf("%s (%s:%d)", f.Function, f.File, f.Line)
}

// Stack is a captured call stack, most recent call first.
type Stack []Frame

// maxStackDepth bounds capture work on exceptional paths.
const maxStackDepth = 64

// String formats the stack one frame per line.
func (s Stack) String() string {
	var b strings.Builder
	for _, f := range s {
		b.WriteString("  ")
		b.WriteString(f.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// CaptureStack captures the calling goroutine's stack, skipping skip frames
// above the caller. CaptureStack(0) starts at the caller itself.
//
// Frames are resolved via runtime.CallersFrames, which expands inlined
// calls correctly. Depth is bounded at 64 frames.
func CaptureStack(skip int) Stack {
	pc := make([]uintptr, maxStackDepth)
	// +2 skips runtime.Callers and CaptureStack itself.
	n := runtime.Callers(skip+2, pc)
	if n == 0 {
		return nil
	}

	frames := runtime.CallersFrames(pc[:n])
	out := make(Stack, 0, n)
	for {
		fr, more := frames.Next()
		out = append(out, Frame{
			Function: fr.Function,
			File:     fr.File,
			Line:     fr.Line,
		})
		if !more {
			break
		}
	}
	return out
}
