package trace

import (
	"fmt"
	"runtime"
	"strconv"
	"sync"
	"time"
)

// Heartbeat periodically emits heartbeat events so that a stuck parse of a
// huge library shows up as heartbeats without a matching span end.
type Heartbeat struct {
	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// StartHeartbeat starts emitting to tracer every interval. It returns nil
// when tracing is off or interval is not positive; Stop is nil-safe.
func StartHeartbeat(tracer Tracer, interval time.Duration) *Heartbeat {
	if tracer == nil || !tracer.Enabled() || interval <= 0 {
		return nil
	}
	h := &Heartbeat{stop: make(chan struct{}), done: make(chan struct{})}
	go h.run(tracer, interval)
	return h
}

func (h *Heartbeat) run(tracer Tracer, interval time.Duration) {
	defer close(h.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for beat := 1; ; beat++ {
		select {
		case <-h.stop:
			return
		case now := <-ticker.C:
			tracer.Emit(&Event{
				Time:   now,
				Kind:   KindHeartbeat,
				Scope:  ScopeDriver,
				GID:    goroutineID(),
				Name:   "heartbeat",
				Detail: fmt.Sprintf("#%d", beat),
				// число горутин показывает, сколько воркеров ещё заняты
				Extra: map[string]string{"goroutines": strconv.Itoa(runtime.NumGoroutine())},
			})
		}
	}
}

// Stop stops the heartbeat and waits for its goroutine. Safe to call twice.
func (h *Heartbeat) Stop() {
	if h == nil {
		return
	}
	h.once.Do(func() { close(h.stop) })
	<-h.done
}
