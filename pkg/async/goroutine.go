package async

import (
	"context"
	"log"
	"runtime/debug"
	"time"
)

// SafeGo executes a function in a goroutine with panic recovery, timeout
// enforcement, and error logging.
//
// Use this instead of bare `go func()` for fire-and-forget work dispatched
// from a request path: the spawned task gets its own error handling boundary
// and can never crash or fail the triggering request.
//
// The task context is detached from parentCtx's cancellation so the task is
// not killed when the triggering request completes; only the timeout bounds
// it.
func SafeGo(parentCtx context.Context, timeout time.Duration, taskName string, fn func(context.Context) error) {
	go func() {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(parentCtx), timeout)
		defer cancel()

		defer func() {
			if r := recover(); r != nil {
				log.Printf("[SafeGo] PANIC in %s: %v\nStack trace:\n%s",
					taskName, r, string(debug.Stack()))
			}
		}()

		if err := fn(ctx); err != nil {
			log.Printf("[SafeGo] Error in %s: %v", taskName, err)
		}
	}()
}
