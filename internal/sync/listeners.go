package sync

import "github.com/ctrlstudio/modelsync/internal/model"

// Listener receives a sync event after it has been fully applied. Listeners
// run synchronously on the syncing goroutine, still inside the pass, so
// any sync they attempt in response is dropped.
type Listener func(model.SyncEvent)

// Subscription is a handle for one registered listener.
type Subscription struct {
	e   *Engine
	typ model.SyncEventType
	any bool
	fn  Listener
}

// On registers a listener for one event type.
func (e *Engine) On(t model.SyncEventType, fn Listener) *Subscription {
	sub := &Subscription{e: e, typ: t, fn: fn}
	e.lmu.Lock()
	e.listeners[t] = append(e.listeners[t], sub)
	e.lmu.Unlock()
	return sub
}

// OnAny registers a listener for every event type.
func (e *Engine) OnAny(fn Listener) *Subscription {
	sub := &Subscription{e: e, any: true, fn: fn}
	e.lmu.Lock()
	e.anySubs = append(e.anySubs, sub)
	e.lmu.Unlock()
	return sub
}

// Cancel removes the listener. Safe to call more than once.
func (s *Subscription) Cancel() {
	s.e.lmu.Lock()
	defer s.e.lmu.Unlock()
	if s.any {
		s.e.anySubs = removeSub(s.e.anySubs, s)
		return
	}
	s.e.listeners[s.typ] = removeSub(s.e.listeners[s.typ], s)
}

func removeSub(subs []*Subscription, target *Subscription) []*Subscription {
	for i, sub := range subs {
		if sub == target {
			return append(subs[:i], subs[i+1:]...)
		}
	}
	return subs
}

func (e *Engine) notify(evt model.SyncEvent) {
	e.lmu.Lock()
	subs := make([]*Subscription, 0, len(e.listeners[evt.Type])+len(e.anySubs))
	subs = append(subs, e.listeners[evt.Type]...)
	subs = append(subs, e.anySubs...)
	e.lmu.Unlock()

	for _, sub := range subs {
		sub.fn(evt)
	}
}
