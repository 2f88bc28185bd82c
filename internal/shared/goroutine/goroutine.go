// Package goroutine runs background work that must not take the process
// down when it panics.
package goroutine

import (
	"fmt"
	"runtime/debug"

	"github.com/keshevplus/leadhub/internal/shared/logger"
)

// Go runs fn on its own goroutine. The returned channel is closed after fn
// returns or panics; a panic is logged with its stack under task.
func Go(log logger.Interface, task string, fn func()) <-chan struct{} {
	finished := make(chan struct{})

	go func() {
		defer close(finished)
		defer recoverTask(log, task)
		fn()
	}()

	return finished
}

func recoverTask(log logger.Interface, task string) {
	r := recover()
	if r == nil {
		return
	}
	log.Errorw("background task panicked",
		"task", task,
		"panic", fmt.Sprint(r),
		"stack", string(debug.Stack()),
	)
}
