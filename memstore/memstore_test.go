package memstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tandemchat/tandem-go/data"
	"github.com/tandemchat/tandem-go/store"
)

var ctx = context.Background()

func member(guildID, userID data.ID, roles ...data.ID) data.Member {
	return data.Member{
		GuildID:  guildID,
		User:     data.User{ID: userID, Username: "u"},
		Roles:    roles,
		JoinedAt: time.Unix(1500000000, 0),
	}
}

func TestMemberLifecycle(t *testing.T) {
	s := New()

	if err := s.OnGuildMemberAdd(ctx, 0, member(10, 1)); err != nil {
		t.Fatal(err)
	}
	if err := s.OnGuildMemberAdd(ctx, 0, member(10, 2)); err != nil {
		t.Fatal(err)
	}

	n, err := s.CountMembersInGuild(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Fatalf("n == %d", n)
	}

	// Member adds also populate the user cache.
	u, err := s.GetUserByID(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if u == nil {
		t.Fatal("user not cached")
	}

	old, err := s.OnGuildMemberRemove(ctx, 0, data.MemberRemove{GuildID: 10, User: data.User{ID: 2}})
	if err != nil {
		t.Fatal(err)
	}
	if old == nil || old.User.ID != 2 {
		t.Fatalf("old == %v", old)
	}

	// The removed user was referenced only by that member.
	if u, _ = s.GetUserByID(ctx, 2); u != nil {
		t.Fatalf("u == %v", u)
	}
}

func TestExactMembersNeedCompletion(t *testing.T) {
	s := New()

	if err := s.OnGuildMembersChunk(ctx, 0, data.MembersChunk{
		GuildID:    10,
		Members:    []data.Member{member(0, 1), member(0, 2)},
		ChunkIndex: 0,
		ChunkCount: 1,
	}); err != nil {
		t.Fatal(err)
	}

	if _, err := s.GetExactMembersInGuild(ctx, 10); !errors.Is(err, store.ErrIncompleteMembers) {
		t.Fatalf("err == %v", err)
	}
	if _, err := s.CountExactMembersInGuild(ctx, 10); !errors.Is(err, store.ErrIncompleteMembers) {
		t.Fatalf("err == %v", err)
	}

	// The inexact reads work either way.
	ms, err := s.GetMembersInGuild(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(ms) != 2 {
		t.Fatalf("len == %d", len(ms))
	}
	// Chunk members pick up the chunk's guild.
	if ms[0].GuildID != 10 {
		t.Fatalf("guild == %v", ms[0].GuildID)
	}

	if err := s.OnGuildMembersCompletion(ctx, 10); err != nil {
		t.Fatal(err)
	}
	n, err := s.CountExactMembersInGuild(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Fatalf("n == %d", n)
	}
}

func TestReactionCounting(t *testing.T) {
	s := New()

	if err := s.OnReady(ctx, data.Ready{User: data.User{ID: 99, Username: "self"}}); err != nil {
		t.Fatal(err)
	}
	if err := s.OnMessageCreate(ctx, 0, data.Message{ID: 5, ChannelID: 1}); err != nil {
		t.Fatal(err)
	}

	name := "taco"
	react := func(userID data.ID) data.MessageReaction {
		return data.MessageReaction{
			UserID:    userID,
			ChannelID: 1,
			MessageID: 5,
			Emoji:     data.Emoji{Name: &name},
		}
	}

	if err := s.OnMessageReactionAdd(ctx, 0, react(7)); err != nil {
		t.Fatal(err)
	}
	if err := s.OnMessageReactionAdd(ctx, 0, react(99)); err != nil {
		t.Fatal(err)
	}

	m, err := s.GetMessageByID(ctx, 1, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Reactions) != 1 {
		t.Fatalf("reactions == %v", m.Reactions)
	}
	if m.Reactions[0].Count != 2 || !m.Reactions[0].Me {
		t.Fatalf("reaction == %+v", m.Reactions[0])
	}

	if err := s.OnMessageReactionRemove(ctx, 0, react(99)); err != nil {
		t.Fatal(err)
	}
	m, _ = s.GetMessageByID(ctx, 1, 5)
	if m.Reactions[0].Count != 1 || m.Reactions[0].Me {
		t.Fatalf("reaction == %+v", m.Reactions[0])
	}

	if err := s.OnMessageReactionRemove(ctx, 0, react(7)); err != nil {
		t.Fatal(err)
	}
	m, _ = s.GetMessageByID(ctx, 1, 5)
	if len(m.Reactions) != 0 {
		t.Fatalf("reactions == %v", m.Reactions)
	}
}

func TestMessageUpdateKeepsReactions(t *testing.T) {
	s := New()

	name := "taco"
	if err := s.OnMessageCreate(ctx, 0, data.Message{ID: 5, ChannelID: 1, Content: "hi"}); err != nil {
		t.Fatal(err)
	}
	if err := s.OnMessageReactionAdd(ctx, 0, data.MessageReaction{
		UserID: 7, ChannelID: 1, MessageID: 5, Emoji: data.Emoji{Name: &name},
	}); err != nil {
		t.Fatal(err)
	}

	old, err := s.OnMessageUpdate(ctx, 0, data.Message{ID: 5, ChannelID: 1, Content: "hi, edited"})
	if err != nil {
		t.Fatal(err)
	}
	if old == nil || old.Content != "hi" {
		t.Fatalf("old == %v", old)
	}

	m, _ := s.GetMessageByID(ctx, 1, 5)
	if m.Content != "hi, edited" {
		t.Fatalf("content == %q", m.Content)
	}
	if len(m.Reactions) != 1 {
		t.Fatalf("reactions == %v", m.Reactions)
	}
}

func TestRoleDeleteStripsMembers(t *testing.T) {
	s := New()

	if err := s.OnGuildRoleCreate(ctx, 0, data.GuildRole{GuildID: 10, Role: data.Role{ID: 500, Name: "mods"}}); err != nil {
		t.Fatal(err)
	}
	if err := s.OnGuildMemberAdd(ctx, 0, member(10, 1, 500, 501)); err != nil {
		t.Fatal(err)
	}

	old, err := s.OnGuildRoleDelete(ctx, 0, data.GuildRoleDelete{GuildID: 10, RoleID: 500})
	if err != nil {
		t.Fatal(err)
	}
	if old == nil || old.Name != "mods" {
		t.Fatalf("old == %v", old)
	}

	m, _ := s.GetMemberByID(ctx, 10, 1)
	if len(m.Roles) != 1 || m.Roles[0] != 501 {
		t.Fatalf("roles == %v", m.Roles)
	}
}

func TestVoiceStateLeave(t *testing.T) {
	s := New()

	channelID := data.ID(3)
	_, err := s.OnVoiceStateUpdate(ctx, 0, data.VoiceState{GuildID: 10, ChannelID: &channelID, UserID: 1})
	if err != nil {
		t.Fatal(err)
	}

	n, _ := s.CountVoiceStatesInChannel(ctx, 10, 3)
	if n != 1 {
		t.Fatalf("n == %d", n)
	}

	old, err := s.OnVoiceStateUpdate(ctx, 0, data.VoiceState{GuildID: 10, ChannelID: nil, UserID: 1})
	if err != nil {
		t.Fatal(err)
	}
	if old == nil || old.ChannelID == nil || *old.ChannelID != 3 {
		t.Fatalf("old == %v", old)
	}

	n, _ = s.CountVoiceStatesInGuild(ctx, 10)
	if n != 0 {
		t.Fatalf("n == %d", n)
	}
}

func TestShardInvalidation(t *testing.T) {
	s := New()

	guildID := func(id data.ID) *data.ID { return &id }

	// Guild 10 arrives on shard 0, guild 20 on shard 1.
	if err := s.OnGuildCreate(ctx, 0, data.Guild{ID: 10, Name: "a"}); err != nil {
		t.Fatal(err)
	}
	if err := s.OnGuildCreate(ctx, 1, data.Guild{ID: 20, Name: "b"}); err != nil {
		t.Fatal(err)
	}
	if err := s.OnChannelCreate(ctx, 0, data.Channel{ID: 1, GuildID: guildID(10)}); err != nil {
		t.Fatal(err)
	}
	if err := s.OnChannelCreate(ctx, 1, data.Channel{ID: 2, GuildID: guildID(20)}); err != nil {
		t.Fatal(err)
	}
	if err := s.OnGuildMemberAdd(ctx, 0, member(10, 1)); err != nil {
		t.Fatal(err)
	}
	if err := s.OnMessageCreate(ctx, 0, data.Message{ID: 5, ChannelID: 1}); err != nil {
		t.Fatal(err)
	}

	if err := s.OnShardInvalidation(ctx, 0, store.InvalidationHardReconnect); err != nil {
		t.Fatal(err)
	}

	if g, _ := s.GetGuildByID(ctx, 10); g != nil {
		t.Fatalf("g == %v", g)
	}
	if ch, _ := s.GetChannelByID(ctx, 1); ch != nil {
		t.Fatalf("ch == %v", ch)
	}
	if n, _ := s.CountMessages(ctx); n != 0 {
		t.Fatalf("n == %d", n)
	}
	if u, _ := s.GetUserByID(ctx, 1); u != nil {
		t.Fatalf("u == %v", u)
	}

	// Shard 1's data is untouched.
	if g, _ := s.GetGuildByID(ctx, 20); g == nil {
		t.Fatal("guild 20 dropped")
	}
	if ch, _ := s.GetChannelByID(ctx, 2); ch == nil {
		t.Fatal("channel 2 dropped")
	}
}

func TestEmojisUpdateReplaces(t *testing.T) {
	s := New()

	id := func(v data.ID) *data.ID { return &v }
	name := func(v string) *string { return &v }

	if _, err := s.OnGuildEmojisUpdate(ctx, 0, data.GuildEmojisUpdate{
		GuildID: 10,
		Emojis:  []data.Emoji{{ID: id(1), Name: name("one")}, {ID: id(2), Name: name("two")}},
	}); err != nil {
		t.Fatal(err)
	}

	old, err := s.OnGuildEmojisUpdate(ctx, 0, data.GuildEmojisUpdate{
		GuildID: 10,
		Emojis:  []data.Emoji{{ID: id(2), Name: name("two")}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(old) != 2 {
		t.Fatalf("old == %v", old)
	}

	n, _ := s.CountEmojisInGuild(ctx, 10)
	if n != 1 {
		t.Fatalf("n == %d", n)
	}
	if e, _ := s.GetEmojiByID(ctx, 10, 1); e != nil {
		t.Fatalf("e == %v", e)
	}
}

func TestScheduledEventUsers(t *testing.T) {
	s := New()

	if err := s.OnScheduledEventCreate(ctx, 0, data.ScheduledEvent{ID: 7, GuildID: 10, Name: "movie night"}); err != nil {
		t.Fatal(err)
	}
	if err := s.OnScheduledEventUserAdd(ctx, 0, data.ScheduledEventUser{EventID: 7, GuildID: 10, UserID: 1}); err != nil {
		t.Fatal(err)
	}
	if err := s.OnScheduledEventUserAdd(ctx, 0, data.ScheduledEventUser{EventID: 7, GuildID: 10, UserID: 2}); err != nil {
		t.Fatal(err)
	}
	if err := s.OnScheduledEventUserRemove(ctx, 0, data.ScheduledEventUser{EventID: 7, GuildID: 10, UserID: 1}); err != nil {
		t.Fatal(err)
	}

	users, err := s.GetScheduledEventUsersInEvent(ctx, 10, 7)
	if err != nil {
		t.Fatal(err)
	}
	if len(users) != 1 || users[0] != 2 {
		t.Fatalf("users == %v", users)
	}

	if _, err := s.OnScheduledEventDelete(ctx, 0, data.ScheduledEvent{ID: 7, GuildID: 10}); err != nil {
		t.Fatal(err)
	}
	users, _ = s.GetScheduledEventUsersInEvent(ctx, 10, 7)
	if len(users) != 0 {
		t.Fatalf("users == %v", users)
	}
}
