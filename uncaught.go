package promise

import (
	"log"
	"sync/atomic"
)

// the handler for panics escaping callbacks registered with OnResolve.
// nil means the default handler.
var uncaughtPanicHandler atomic.Pointer[func(p *PanicError)]

// SetUncaughtPanicHandler sets the handler that receives panics escaping
// callbacks registered with OnResolve. Such panics are contained at the
// point of invocation: they are handed to the handler and never rethrown,
// never fail any promise, and never stop the remaining callbacks from
// running.
//
// The handler may run on any goroutine that happens to be draining
// callbacks, so it must be safe to run anywhere. Passing nil restores the
// default handler, which logs the panic via the standard log package.
//
// Panics escaping Then handlers don't reach this handler; they become the
// failure of the downstream promise instead.
func SetUncaughtPanicHandler(h func(p *PanicError)) {
	if h == nil {
		uncaughtPanicHandler.Store(nil)
		return
	}
	uncaughtPanicHandler.Store(&h)
}

func reportUncaughtPanic(v any) {
	if h := uncaughtPanicHandler.Load(); h != nil {
		(*h)(newPanicError(v))
		return
	}
	log.Printf("promise: uncaught panic in callback: %v", v)
}
