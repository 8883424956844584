package feed

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"

	"github.com/tandemchat/tandem-go/data"
	"github.com/tandemchat/tandem-go/memstore"
	"github.com/tandemchat/tandem-go/store"
	"github.com/tandemchat/tandem-go/util/testutil"
)

func frame(t *testing.T, name string, shard int, payload string) Frame {
	t.Helper()
	return Frame{Type: name, Shard: shard, Data: json.RawMessage(payload)}
}

func testStore(t *testing.T) *store.Store {
	t.Helper()
	return store.FromLayout(memstore.New())
}

func TestDispatchMessageCreate(t *testing.T) {
	ctx := context.Background()
	s := testStore(t)
	d := NewDispatcher(s)

	payload := `{"id":"5","channel_id":"3","content":"hello","author":{"id":"7","username":"homer"}}`
	if err := d.Dispatch(ctx, frame(t, "MESSAGE_CREATE", 0, payload)); err != nil {
		t.Fatal(err)
	}

	got, err := s.Execute(ctx, store.GetMessageByID{ChannelID: 3, MessageID: 5})
	if err != nil {
		t.Fatal(err)
	}
	m, err := store.As[*data.Message](got, nil)
	if err != nil {
		t.Fatal(err)
	}
	if m == nil || m.Content != "hello" {
		t.Fatalf("got %s", testutil.JS(m))
	}
}

func TestDispatchUnknownEventSkipped(t *testing.T) {
	ctx := context.Background()
	s := testStore(t)
	d := NewDispatcher(s)

	if err := d.Dispatch(ctx, frame(t, "TYPING_START", 0, `{"whatever":true}`)); err != nil {
		t.Fatal(err)
	}
}

func TestDispatchBadPayload(t *testing.T) {
	ctx := context.Background()
	s := testStore(t)
	d := NewDispatcher(s)

	var heard error
	d.OnError = func(f Frame, err error) {
		heard = err
	}

	if err := d.Dispatch(ctx, frame(t, "MESSAGE_CREATE", 0, `"not an object"`)); err != nil {
		t.Fatal("hook should have eaten the error")
	}
	if heard == nil {
		t.Fatal("expected the hook to hear something")
	}
}

func TestDispatchFinalChunkCompletes(t *testing.T) {
	ctx := context.Background()
	s := testStore(t)
	d := NewDispatcher(s)

	chunk := func(index int) string {
		bs, _ := json.Marshal(map[string]interface{}{
			"guild_id":    "1",
			"members":     []map[string]interface{}{{"user": map[string]interface{}{"id": "7", "username": "homer"}}},
			"chunk_index": index,
			"chunk_count": 2,
		})
		return string(bs)
	}

	if err := d.Dispatch(ctx, frame(t, "GUILD_MEMBERS_CHUNK", 0, chunk(0))); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Execute(ctx, store.CountExactMembersInGuild{GuildID: 1}); err != store.ErrIncompleteMembers {
		t.Fatalf("wanted ErrIncompleteMembers, got %v", err)
	}

	if err := d.Dispatch(ctx, frame(t, "GUILD_MEMBERS_CHUNK", 0, chunk(1))); err != nil {
		t.Fatal(err)
	}
	got, err := s.Execute(ctx, store.CountExactMembersInGuild{GuildID: 1})
	if err != nil {
		t.Fatal(err)
	}
	if n, _ := store.As[int64](got, nil); n != 1 {
		t.Fatalf("counted %d members", n)
	}
}

func TestWSFeed(t *testing.T) {
	ctx := context.Background()
	s := testStore(t)
	d := NewDispatcher(s)

	frames := []string{
		`{"t":"CHANNEL_CREATE","shard":0,"d":{"id":"3","type":0,"name":"general"}}`,
		`{"t":"MESSAGE_CREATE","shard":0,"d":{"id":"5","channel_id":"3","content":"hi","author":{"id":"7","username":"homer"}}}`,
	}

	var upgrader websocket.Upgrader
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Error(err)
			return
		}
		for _, f := range frames {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(f)); err != nil {
				t.Error(err)
				return
			}
		}
		closing := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		conn.WriteMessage(websocket.CloseMessage, closing)
	}))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatal(err)
	}

	feed := NewWSFeed(conn, d)
	if err := feed.Run(ctx); err != nil {
		t.Fatal(err)
	}

	got, err := s.Execute(ctx, store.CountTotalMessages{})
	if err != nil {
		t.Fatal(err)
	}
	if n, _ := store.As[int64](got, nil); n != 1 {
		t.Fatalf("counted %d messages", n)
	}
}
