package boltstore

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/tandemchat/tandem-go/data"
	"github.com/tandemchat/tandem-go/store"
)

var ctx = context.Background()

func open(t *testing.T, filename string) *Store {
	t.Helper()
	s, err := Open(filename, WithFlags(store.AllFlags))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestEventsSurviveReopen(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "store.db")

	s := open(t, filename)
	guildID := data.ID(10)
	if err := s.OnGuildCreate(ctx, 0, data.Guild{ID: guildID, Name: "persistent"}); err != nil {
		t.Fatal(err)
	}
	if err := s.OnChannelCreate(ctx, 0, data.Channel{ID: 1, GuildID: &guildID}); err != nil {
		t.Fatal(err)
	}
	if err := s.OnMessageCreate(ctx, 0, data.Message{
		ID:        5,
		ChannelID: 1,
		Content:   "hello",
		Timestamp: time.Unix(1700000000, 0).UTC(),
	}); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s = open(t, filename)
	defer s.Close()

	g, err := s.GetGuildByID(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if g == nil || g.Name != "persistent" {
		t.Fatalf("g == %v", g)
	}

	m, err := s.GetMessageByID(ctx, 1, 5)
	if err != nil {
		t.Fatal(err)
	}
	if m == nil || m.Content != "hello" {
		t.Fatalf("m == %v", m)
	}

	n, err := s.CountChannelsInGuild(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("n == %d", n)
	}
}

func TestGuildDeleteDropsScopedData(t *testing.T) {
	s := open(t, filepath.Join(t.TempDir(), "store.db"))
	defer s.Close()

	guildID := data.ID(10)
	if err := s.OnGuildCreate(ctx, 0, data.Guild{ID: guildID}); err != nil {
		t.Fatal(err)
	}
	if err := s.OnChannelCreate(ctx, 0, data.Channel{ID: 1, GuildID: &guildID}); err != nil {
		t.Fatal(err)
	}
	if err := s.OnMessageCreate(ctx, 0, data.Message{ID: 5, ChannelID: 1}); err != nil {
		t.Fatal(err)
	}
	if err := s.OnGuildMemberAdd(ctx, 0, data.Member{
		GuildID: guildID,
		User:    data.User{ID: 7, Username: "u"},
	}); err != nil {
		t.Fatal(err)
	}

	old, err := s.OnGuildDelete(ctx, 0, data.Guild{ID: guildID})
	if err != nil {
		t.Fatal(err)
	}
	if old == nil {
		t.Fatal("no old guild")
	}

	if ch, _ := s.GetChannelByID(ctx, 1); ch != nil {
		t.Fatalf("ch == %v", ch)
	}
	if n, _ := s.CountMessages(ctx); n != 0 {
		t.Fatalf("n == %d", n)
	}
	if n, _ := s.CountMembers(ctx); n != 0 {
		t.Fatalf("n == %d", n)
	}
	// The member's user had no other reference.
	if u, _ := s.GetUserByID(ctx, 7); u != nil {
		t.Fatalf("u == %v", u)
	}
}

func TestExactMembersCompletion(t *testing.T) {
	s := open(t, filepath.Join(t.TempDir(), "store.db"))
	defer s.Close()

	if err := s.OnGuildMembersChunk(ctx, 0, data.MembersChunk{
		GuildID: 10,
		Members: []data.Member{{User: data.User{ID: 1}}, {User: data.User{ID: 2}}},
	}); err != nil {
		t.Fatal(err)
	}

	if _, err := s.CountExactMembersInGuild(ctx, 10); !errors.Is(err, store.ErrIncompleteMembers) {
		t.Fatalf("err == %v", err)
	}

	if err := s.OnGuildMembersCompletion(ctx, 10); err != nil {
		t.Fatal(err)
	}

	ms, err := s.GetExactMembersInGuild(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(ms) != 2 {
		t.Fatalf("len == %d", len(ms))
	}
}

func TestScopedKeysDontBleed(t *testing.T) {
	s := open(t, filepath.Join(t.TempDir(), "store.db"))
	defer s.Close()

	// Guild 1 and guild 11 share a decimal prefix but not a key
	// prefix.
	if err := s.OnGuildRoleCreate(ctx, 0, data.GuildRole{GuildID: 1, Role: data.Role{ID: 100}}); err != nil {
		t.Fatal(err)
	}
	if err := s.OnGuildRoleCreate(ctx, 0, data.GuildRole{GuildID: 11, Role: data.Role{ID: 200}}); err != nil {
		t.Fatal(err)
	}

	n, err := s.CountRolesInGuild(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("n == %d", n)
	}

	roles, err := s.GetRolesInGuild(ctx, 11)
	if err != nil {
		t.Fatal(err)
	}
	if len(roles) != 1 || roles[0].ID != 200 {
		t.Fatalf("roles == %v", roles)
	}
}

func TestStoreOverBolt(t *testing.T) {
	layout := open(t, filepath.Join(t.TempDir(), "store.db"))
	defer layout.Close()

	s := store.FromLayout(layout)

	if _, err := s.Execute(ctx, store.ChannelCreate{Channel: data.Channel{ID: 1}}); err != nil {
		t.Fatal(err)
	}
	ch, err := store.As[*data.Channel](s.Execute(ctx, store.GetChannelByID{ChannelID: 1}))
	if err != nil {
		t.Fatal(err)
	}
	if ch == nil || ch.ID != 1 {
		t.Fatalf("ch == %v", ch)
	}
}
