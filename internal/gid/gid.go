// Package gid gives every goroutine a stable, comparable identity.
//
// The dispatch layer needs to know "which thread am I running on" to resolve
// Auto delivery, to reject a BlockingQueued call that targets its own
// executor, and to key the per-thread sender stack used by CurrentSender.
// Go does not expose goroutine IDs through any supported API, so this parses
// the header line of runtime.Stack the way several goroutine-local-storage
// shims in the wild do (e.g. jtolds/gls, petermattis/goid). No module in the
// retrieval pack ships a usable implementation to depend on instead (see
// DESIGN.md), so this is a deliberate, narrow use of the standard library.
package gid

import (
	"bytes"
	"runtime"
	"strconv"
	"sync"
)

var stackBufPool = sync.Pool{
	New: func() any {
		buf := make([]byte, 64)
		return &buf
	},
}

// Current returns an identifier for the calling goroutine. It is stable for
// the lifetime of the goroutine and never reused while any goroutine holding
// it is still alive, which is all the dispatch layer requires.
func Current() uint64 {
	buf := stackBufPool.Get().(*[]byte)
	defer stackBufPool.Put(buf)

	n := runtime.Stack(*buf, false)
	id, _ := parseGoroutineID((*buf)[:n])
	return id
}

// parseGoroutineID extracts the numeric id from a line shaped like
// "goroutine 18 [running]:".
func parseGoroutineID(stack []byte) (uint64, bool) {
	const prefix = "goroutine "
	if !bytes.HasPrefix(stack, []byte(prefix)) {
		return 0, false
	}
	stack = stack[len(prefix):]
	if idx := bytes.IndexByte(stack, ' '); idx >= 0 {
		stack = stack[:idx]
	}
	id, err := strconv.ParseUint(string(stack), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
