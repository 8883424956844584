package script

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/tandemchat/tandem-go/store"
	"github.com/tandemchat/tandem-go/util/testutil"
)

func TestRunSeesAction(t *testing.T) {
	ctx := context.Background()

	h, err := Compile("count", `return action.GuildID;`)
	if err != nil {
		t.Fatal(err)
	}

	got, err := h.Run(ctx, store.CountMembersInGuild{GuildID: 42})
	if err != nil {
		t.Fatal(err)
	}
	// IDs travel as quoted decimals.
	if got != "42" {
		t.Fatalf("got %#v", got)
	}
}

func TestRunReturnsObjects(t *testing.T) {
	ctx := context.Background()

	h := MustCompile("summary", `return {kind: "summary", guild: action.GuildID};`)
	got, err := h.Run(ctx, store.CountMembersInGuild{GuildID: testutil.ID("42")})
	if err != nil {
		t.Fatal(err)
	}
	want := testutil.Dwimjs(`{"kind":"summary","guild":"42"}`)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %s", testutil.JS(got))
	}
}

func TestCompileError(t *testing.T) {
	if _, err := Compile("broken", `return (;`); err == nil {
		t.Fatal("expected a compile error")
	}
}

func TestRunError(t *testing.T) {
	ctx := context.Background()

	h := MustCompile("thrower", `throw "tantrum";`)
	if _, err := h.Run(ctx, store.GetUsers{}); err == nil {
		t.Fatal("expected the throw to propagate")
	}
}

func TestRunTimeout(t *testing.T) {
	ctx := context.Background()

	h := MustCompile("spinner", `for (;;) {}`)
	h.Timeout = 50 * time.Millisecond

	if _, err := h.Run(ctx, store.GetUsers{}); err != Interrupted {
		t.Fatalf("wanted Interrupted, got %v", err)
	}
}

func TestMapperOverridesLayout(t *testing.T) {
	ctx := context.Background()

	custom := NewMapper(map[store.Action]*Handler{
		store.CountTotalGuilds{}: MustCompile("five", `return 5;`),
	})

	s := store.FromMapper(custom)
	got, err := s.Execute(ctx, store.CountTotalGuilds{})
	if err != nil {
		t.Fatal(err)
	}
	if got != int64(5) {
		t.Fatalf("got %#v", got)
	}

	// Types nobody scripted stay unhandled.
	if got, err := s.Execute(ctx, store.CountTotalUsers{}); got != nil || err != nil {
		t.Fatalf("got %#v, %v", got, err)
	}
}
