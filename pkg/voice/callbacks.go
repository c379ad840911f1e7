package voice

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// CommandCallback observes terminal cycle events. identifier is the
// matched command, or empty when the transcript was heard but not
// understood.
type CommandCallback func(identifier, transcript string)

// Handle identifies one callback registration.
type Handle string

// callbackList delivers each notification to every registered callback
// exactly once, in registration order. Notification iterates a snapshot,
// so a callback adding or removing callbacks mid-notification cannot
// corrupt the walk; such changes take effect from the next notification.
type callbackList struct {
	mu    sync.Mutex
	order []Handle
	funcs map[Handle]CommandCallback
}

func (l *callbackList) add(fn CommandCallback) Handle {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.funcs == nil {
		l.funcs = make(map[Handle]CommandCallback)
	}
	h := Handle(uuid.NewString())
	l.funcs[h] = fn
	l.order = append(l.order, h)
	return h
}

func (l *callbackList) remove(h Handle) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.funcs[h]; !ok {
		return
	}
	delete(l.funcs, h)
	for i, existing := range l.order {
		if existing == h {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
}

func (l *callbackList) notify(identifier, transcript string) {
	l.mu.Lock()
	snapshot := make([]CommandCallback, 0, len(l.order))
	for _, h := range l.order {
		snapshot = append(snapshot, l.funcs[h])
	}
	l.mu.Unlock()

	for _, fn := range snapshot {
		invoke(fn, identifier, transcript)
	}
}

// invoke shields the pipeline (and the remaining callbacks) from a
// panicking observer.
func invoke(fn CommandCallback, identifier, transcript string) {
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("command callback panicked", "panic", r)
		}
	}()
	fn(identifier, transcript)
}
