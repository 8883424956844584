package main

import (
	"context"
	"testing"

	"github.com/tandemchat/tandem-go/feed"
	"github.com/tandemchat/tandem-go/memstore"
	"github.com/tandemchat/tandem-go/store"
)

func TestParseFlags(t *testing.T) {
	flags, err := parseFlags("channel, guild,member")
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range []store.Flag{store.FlagChannel, store.FlagGuild, store.FlagMember} {
		if !flags.Has(f) {
			t.Fatalf("missing %s", f)
		}
	}
	if flags.Has(store.FlagUser) {
		t.Fatal("user snuck in")
	}

	if _, err := parseFlags("channel,bogus"); err == nil {
		t.Fatal("expected an error")
	}
}

func TestCountAction(t *testing.T) {
	a, err := countAction("guilds", "")
	if err != nil {
		t.Fatal(err)
	}
	if _, is := a.(store.CountTotalGuilds); !is {
		t.Fatalf("got %#v", a)
	}

	a, err = countAction("members", "10")
	if err != nil {
		t.Fatal(err)
	}
	if got := a.(store.CountMembersInGuild).GuildID; got != 10 {
		t.Fatalf("guild == %v", got)
	}

	if _, err := countAction("sandwiches", ""); err == nil {
		t.Fatal("expected an error")
	}
}

func TestGetAction(t *testing.T) {
	a, err := getAction("message", "3", "5")
	if err != nil {
		t.Fatal(err)
	}
	m := a.(store.GetMessageByID)
	if m.ChannelID != 3 || m.MessageID != 5 {
		t.Fatalf("got %#v", m)
	}

	if _, err := getAction("message", "3", ""); err == nil {
		t.Fatal("a message needs two ids")
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()

	s := store.FromLayout(memstore.New())
	d := feed.NewDispatcher(s)

	frame := feed.Frame{Type: "GUILD_CREATE", Data: []byte(`{"id":"1","name":"test"}`)}
	if err := d.Dispatch(ctx, frame); err != nil {
		t.Fatal(err)
	}

	snap, err := snapshot(ctx, s)
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.Guilds) != 1 || snap.Guilds[0].ID != 1 {
		t.Fatalf("snap == %#v", snap)
	}

	fresh := store.FromLayout(memstore.New())
	if err := replay(ctx, fresh, snap); err != nil {
		t.Fatal(err)
	}
	n, err := store.As[int64](fresh.Execute(ctx, store.CountTotalGuilds{}))
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("counted %d guilds", n)
	}
}
