// Package events multiplexes terminal input and a periodic tick into one
// ordered stream consumed by the main loop.
package events

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"
)

// Kind distinguishes the two event sources.
type Kind int

const (
	// KindInput carries a decoded key press.
	KindInput Kind = iota
	// KindTick is emitted every tick interval.
	KindTick
)

func (k Kind) String() string {
	switch k {
	case KindInput:
		return "input"
	case KindTick:
		return "tick"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Event is one item on the stream. Key is only set for KindInput.
type Event struct {
	Kind Kind
	Key  Key
}

// Describe renders the event for logs.
func (e Event) Describe() string {
	if e.Kind == KindInput {
		return fmt.Sprintf("kind:%q key:%s", e.Kind, e.Key)
	}
	return fmt.Sprintf("kind:%q", e.Kind)
}

// KeySource yields key presses. ReadKey blocks until a key is available and
// returns io.EOF once input is exhausted.
type KeySource interface {
	ReadKey() (Key, error)
}

// DefaultTick is the tick interval used when none is configured.
const DefaultTick = 100 * time.Millisecond

// Events owns the shared channel and its two producers. Producers block on a
// full channel rather than drop, so every key and tick reaches Next in the
// order it was sent.
type Events struct {
	ch   chan Event
	done chan struct{}
	once sync.Once
	wg   sync.WaitGroup
	log  *slog.Logger
}

// New starts the key producer reading from src and a ticker firing every tick.
// A nil src starts only the ticker.
func New(src KeySource, tick time.Duration, log *slog.Logger) *Events {
	if tick <= 0 {
		tick = DefaultTick
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	e := &Events{
		ch:   make(chan Event, 64),
		done: make(chan struct{}),
		log:  log,
	}
	if src != nil {
		e.wg.Add(1)
		go e.keys(src)
	}
	e.wg.Add(1)
	go e.ticks(tick)
	return e
}

// Next blocks until the next event arrives. It returns false once Close has
// been called, even if events are still buffered.
func (e *Events) Next() (Event, bool) {
	select {
	case <-e.done:
		return Event{}, false
	default:
	}
	select {
	case ev := <-e.ch:
		return ev, true
	case <-e.done:
		return Event{}, false
	}
}

// Close stops both producers. The key producer exits once its pending
// ReadKey returns; cancel the source to unblock it.
func (e *Events) Close() {
	e.once.Do(func() { close(e.done) })
}

// Wait blocks until both producers have exited.
func (e *Events) Wait() {
	e.wg.Wait()
}

func (e *Events) send(ev Event) bool {
	select {
	case e.ch <- ev:
		return true
	case <-e.done:
		return false
	}
}

func (e *Events) keys(src KeySource) {
	defer e.wg.Done()
	for {
		k, err := src.ReadKey()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				e.log.Warn("key source stopped", "error", err)
			}
			return
		}
		if !e.send(Event{Kind: KindInput, Key: k}) {
			return
		}
	}
}

func (e *Events) ticks(interval time.Duration) {
	defer e.wg.Done()
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-e.done:
			return
		case <-t.C:
			if !e.send(Event{Kind: KindTick}) {
				return
			}
		}
	}
}
