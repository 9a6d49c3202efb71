// Package middleware wraps update handlers run on their own goroutines.
package middleware

import (
	"runtime/debug"
	"time"

	"github.com/pavelc4/aether-resolver/pkg/logger"
)

const slowHandler = 100 * time.Millisecond

type Middleware func(next func()) func()

func Recover(next func()) func() {
	return func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("Panic recovered", "error", r, "stack", string(debug.Stack()))
			}
		}()
		next()
	}
}

// Logger reports how long the handler took, at info level when it was slow.
func Logger(name string) Middleware {
	return func(next func()) func() {
		return func() {
			start := time.Now()

			defer func() {
				duration := time.Since(start)
				if duration > slowHandler {
					logger.Info("Handler completed (slow)", "name", name, "duration", duration)
				} else {
					logger.Debug("Handler completed", "name", name, "duration", duration)
				}
			}()

			next()
		}
	}
}

// Chain applies middlewares so that the first one is the outermost.
func Chain(f func(), middlewares ...Middleware) func() {
	for i := len(middlewares) - 1; i >= 0; i-- {
		f = middlewares[i](f)
	}
	return f
}
