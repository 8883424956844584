package feed

import (
	"context"
	"encoding/json"
	"log"

	"github.com/gorilla/websocket"
)

// WSFeed reads frames off an established websocket connection and
// hands them to a Dispatcher.
//
// The caller dials (or upgrades) the connection; this type only
// consumes it.  When Run returns, the connection is closed.
type WSFeed struct {
	Debug bool

	conn *websocket.Conn
	d    *Dispatcher
}

// NewWSFeed wraps a connection.
func NewWSFeed(conn *websocket.Conn, d *Dispatcher) *WSFeed {
	return &WSFeed{conn: conn, d: d}
}

func (f *WSFeed) logf(format string, args ...interface{}) {
	if f.Debug {
		log.Printf("feed.WSFeed."+format, args...)
	}
}

// Run reads frames until the connection dies or ctx is canceled.  A
// clean close from the far side returns nil.
func (f *WSFeed) Run(ctx context.Context) error {
	// ReadMessage has no ctx parameter, so watch for cancellation
	// on the side and close the connection out from under it.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			f.conn.Close()
		case <-done:
		}
	}()

	defer f.conn.Close()

	for {
		_, bs, err := f.conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				f.logf("Run closing (%v)", err)
				return nil
			}
			return err
		}
		f.logf("Run heard %s", bs)

		var frame Frame
		if err := json.Unmarshal(bs, &frame); err != nil {
			log.Printf("feed.WSFeed.Run bad frame %s (%v)", bs, err)
			continue
		}
		if err := f.d.Dispatch(ctx, frame); err != nil {
			return err
		}
	}
}
