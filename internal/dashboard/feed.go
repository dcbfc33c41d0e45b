package dashboard

import (
	"context"
	"log"
	"time"

	wire "partnerhub/pkg/models"
)

// MessageSource is the part of the actor the feed reads from.
type MessageSource interface {
	GetAllWhatsAppMessages(ctx context.Context) ([]wire.WhatsAppMessage, error)
	Subscribe(ctx context.Context) (<-chan wire.Event, error)
	Invalidate(keys ...string)
}

// Feed keeps the console's message list current. It refetches when the
// server reports the message log changed and, as a fallback, on every
// interval tick.
type Feed struct {
	src      MessageSource
	interval time.Duration
}

func NewFeed(src MessageSource, interval time.Duration) *Feed {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &Feed{src: src, interval: interval}
}

// Run calls update with every fetch result until ctx is done. update runs
// on Run's goroutine.
func (f *Feed) Run(ctx context.Context, update func([]wire.WhatsAppMessage, error)) {
	fetch := func() {
		msgs, err := f.src.GetAllWhatsAppMessages(ctx)
		if ctx.Err() != nil {
			return
		}
		update(msgs, err)
	}

	var warned bool
	subscribe := func() <-chan wire.Event {
		events, err := f.src.Subscribe(ctx)
		if err != nil {
			if !warned {
				log.Printf("Live updates unavailable, polling every %s: %v", f.interval, err)
				warned = true
			}
			return nil
		}
		warned = false
		return events
	}

	events := subscribe()
	fetch()

	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()
	// A nil events channel leaves the ticker in charge.
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if ev.Touches(wire.KeyWhatsAppMessages) {
				fetch()
			}
		case <-ticker.C:
			if events == nil {
				events = subscribe()
			}
			f.src.Invalidate(wire.KeyWhatsAppMessages)
			fetch()
		}
	}
}
