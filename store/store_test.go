package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/tandemchat/tandem-go/data"
	"github.com/tandemchat/tandem-go/memstore"
	"github.com/tandemchat/tandem-go/store"
)

func guildID() *data.ID {
	id := data.ID(10)
	return &id
}

func channel(id data.ID, name string) data.Channel {
	return data.Channel{
		ID:      id,
		Type:    data.ChannelTypeText,
		GuildID: guildID(),
		Name:    &name,
	}
}

func TestNoOpIgnoresEverything(t *testing.T) {
	ctx := context.Background()
	s := store.NoOp()

	got, err := s.Execute(ctx, store.GetUsers{})
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Fatalf("got %v", got)
	}

	// Events are swallowed too.
	if _, err := s.Execute(ctx, store.MessageCreate{}); err != nil {
		t.Fatal(err)
	}
}

func TestStrictReportsUnsupported(t *testing.T) {
	ctx := context.Background()
	s := store.FromLayout(memstore.New(memstore.WithFlags(store.FlagChannel)), store.Strict())

	if _, err := s.Execute(ctx, store.GetUsers{}); !errors.Is(err, store.ErrUnsupportedAction) {
		t.Fatalf("err == %v", err)
	}

	// Channel actions are still in.
	if _, err := s.Execute(ctx, store.GetChannels{}); err != nil {
		t.Fatal(err)
	}
}

func TestEventThenRead(t *testing.T) {
	ctx := context.Background()
	s := store.FromLayout(memstore.New())

	if _, err := s.Execute(ctx, store.ChannelCreate{Channel: channel(1, "general")}); err != nil {
		t.Fatal(err)
	}

	ch, err := store.As[*data.Channel](s.Execute(ctx, store.GetChannelByID{ChannelID: 1}))
	if err != nil {
		t.Fatal(err)
	}
	if ch == nil || *ch.Name != "general" {
		t.Fatalf("ch == %v", ch)
	}

	// Nothing cached under another ID.
	ch, err = store.As[*data.Channel](s.Execute(ctx, store.GetChannelByID{ChannelID: 2}))
	if err != nil {
		t.Fatal(err)
	}
	if ch != nil {
		t.Fatalf("ch == %v", ch)
	}
}

func TestDisabledFamilyIsSilent(t *testing.T) {
	ctx := context.Background()
	s := store.FromLayout(memstore.New(memstore.WithFlags(store.FlagChannel)))

	// The user family is off, so the action isn't handled and isn't
	// an error either.
	got, err := s.Execute(ctx, store.GetUsers{})
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Fatalf("got %v", got)
	}

	// The generic counts need every family; with a partial flag set
	// they aren't registered at all.
	if got, err = s.Execute(ctx, store.CountTotal{Kind: store.KindChannels}); err != nil || got != nil {
		t.Fatalf("got %v, err %v", got, err)
	}

	// The per-family form still works.
	n, err := store.As[int64](s.Execute(ctx, store.CountTotalChannels{}))
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("n == %d", n)
	}
}

func TestGenericCountUnknownKind(t *testing.T) {
	ctx := context.Background()
	s := store.FromLayout(memstore.New())

	// Guilds aren't a per-guild kind.
	_, err := s.Execute(ctx, store.CountInGuild{Kind: store.KindGuilds, GuildID: 10})
	var unhandled *store.UnhandledKind
	if !errors.As(err, &unhandled) {
		t.Fatalf("err == %v", err)
	}
	if unhandled.Kind != store.KindGuilds {
		t.Fatalf("kind == %v", unhandled.Kind)
	}

	// The supported kinds answer.
	n, err := store.As[int64](s.Execute(ctx, store.CountInGuild{Kind: store.KindMembers, GuildID: 10}))
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("n == %d", n)
	}
}

func TestFromLayoutsFirstWins(t *testing.T) {
	ctx := context.Background()

	front := memstore.New()
	back := memstore.New()
	if err := front.OnChannelCreate(ctx, 0, channel(1, "front")); err != nil {
		t.Fatal(err)
	}
	if err := back.OnChannelCreate(ctx, 0, channel(1, "back")); err != nil {
		t.Fatal(err)
	}

	s := store.FromLayouts([]store.Layout{front, back})

	ch, err := store.As[*data.Channel](s.Execute(ctx, store.GetChannelByID{ChannelID: 1}))
	if err != nil {
		t.Fatal(err)
	}
	if ch == nil || *ch.Name != "front" {
		t.Fatalf("ch == %v", ch)
	}
}

func TestCustomCountFrontsDefault(t *testing.T) {
	ctx := context.Background()

	// The front layout overrides one count; everything else falls
	// through to the back layout.
	custom := store.NewMapperBuilder().
		Map(store.CountTotalGuilds{}, func(context.Context, store.Action) (interface{}, error) {
			return int64(5), nil
		}).
		Build()
	front := memstore.New(memstore.WithCustomMapper(custom))

	back := memstore.New()
	for i := 1; i <= 10; i++ {
		if err := back.OnGuildCreate(ctx, 0, data.Guild{ID: data.ID(i)}); err != nil {
			t.Fatal(err)
		}
	}

	s := store.FromLayouts([]store.Layout{front, back})

	n, err := store.As[int64](s.Execute(ctx, store.CountTotalGuilds{}))
	if err != nil {
		t.Fatal(err)
	}
	if n != 5 {
		t.Fatalf("counted %d guilds", n)
	}
}

func TestCustomMapper(t *testing.T) {
	ctx := context.Background()

	type scanAction struct{ Needle string }

	custom := store.NewMapperBuilder().
		Map(scanAction{}, func(_ context.Context, action store.Action) (interface{}, error) {
			return "found " + action.(scanAction).Needle, nil
		}).
		Build()

	s := store.FromLayout(memstore.New(memstore.WithCustomMapper(custom)))

	got, err := store.As[string](s.Execute(ctx, scanAction{Needle: "tacos"}))
	if err != nil {
		t.Fatal(err)
	}
	if got != "found tacos" {
		t.Fatalf("got %q", got)
	}
}
