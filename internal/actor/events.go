package actor

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	wire "partnerhub/pkg/models"

	"github.com/gorilla/websocket"
)

// Subscribe connects to the server's event hub. Each event invalidates
// the cache before it is delivered. The channel closes when ctx is done or
// the connection drops.
func (c *Client) Subscribe(ctx context.Context) (<-chan wire.Event, error) {
	if c == nil {
		return nil, ErrUnavailable
	}

	header := http.Header{}
	if c.Token != "" {
		header.Set("Authorization", "Bearer "+c.Token)
	}
	if c.Principal != "" {
		header.Set(principalHeader, c.Principal)
	}

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, wsURL(c.BaseURL)+"/api/events", header)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("%w: event stream refused: %s", ErrUnavailable, resp.Status)
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	events := make(chan wire.Event)
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
		case <-done:
		}
		conn.Close()
	}()

	go func() {
		defer close(events)
		defer close(done)
		for {
			var ev wire.Event
			if err := conn.ReadJSON(&ev); err != nil {
				if ctx.Err() == nil && !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					log.Printf("Event stream closed: %v", err)
				}
				return
			}
			if ev.Type == wire.EventInvalidate {
				c.cache.Invalidate(ev.Keys...)
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()
	return events, nil
}

func wsURL(base string) string {
	switch {
	case strings.HasPrefix(base, "https://"):
		return "wss://" + strings.TrimPrefix(base, "https://")
	case strings.HasPrefix(base, "http://"):
		return "ws://" + strings.TrimPrefix(base, "http://")
	}
	return base
}
