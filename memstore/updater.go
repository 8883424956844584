package memstore

import (
	"context"

	"github.com/tandemchat/tandem-go/data"
	"github.com/tandemchat/tandem-go/store"
)

// The write side.  One method per gateway event; update and delete
// methods return the replaced state when there was one.

func (s *Store) OnReady(ctx context.Context, ready data.Ready) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selfID = ready.User.ID
	s.users[ready.User.ID] = ready.User
	shard := 0
	if len(ready.Shard) > 0 {
		shard = ready.Shard[0]
	}
	for _, g := range ready.Guilds {
		s.guilds[g.ID] = g
		s.guildShard[g.ID] = shard
	}
	return nil
}

func (s *Store) OnShardInvalidation(ctx context.Context, shardIndex int, cause store.InvalidationCause) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for guildID, shard := range s.guildShard {
		if shard == shardIndex {
			s.dropGuild(guildID)
		}
	}
	s.pruneUsers()
	if cause == store.InvalidationLogout {
		delete(s.users, s.selfID)
		s.selfID = 0
	}
	return nil
}

func (s *Store) OnChannelCreate(ctx context.Context, shardIndex int, ch data.Channel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.channels[ch.ID] = ch
	return nil
}

func (s *Store) OnChannelUpdate(ctx context.Context, shardIndex int, ch data.Channel) (*data.Channel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	old := lookup(s.channels, ch.ID)
	s.channels[ch.ID] = ch
	return old, nil
}

func (s *Store) OnChannelDelete(ctx context.Context, shardIndex int, ch data.Channel) (*data.Channel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	old := lookup(s.channels, ch.ID)
	delete(s.channels, ch.ID)
	delete(s.messages, ch.ID)
	return old, nil
}

func (s *Store) OnGuildCreate(ctx context.Context, shardIndex int, g data.Guild) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.guilds[g.ID] = g
	s.guildShard[g.ID] = shardIndex
	return nil
}

func (s *Store) OnGuildUpdate(ctx context.Context, shardIndex int, g data.Guild) (*data.Guild, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	old := lookup(s.guilds, g.ID)
	s.guilds[g.ID] = g
	s.guildShard[g.ID] = shardIndex
	return old, nil
}

func (s *Store) OnGuildDelete(ctx context.Context, shardIndex int, g data.Guild) (*data.Guild, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	old := lookup(s.guilds, g.ID)
	s.dropGuild(g.ID)
	s.pruneUsers()
	return old, nil
}

func (s *Store) OnGuildEmojisUpdate(ctx context.Context, shardIndex int, update data.GuildEmojisUpdate) ([]data.Emoji, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	old := collect(s.emojis[update.GuildID])
	next := map[data.ID]data.Emoji{}
	for _, e := range update.Emojis {
		if e.ID == nil {
			continue // unicode emoji are never guild entities
		}
		next[*e.ID] = e
	}
	s.emojis[update.GuildID] = next
	return old, nil
}

func (s *Store) OnGuildStickersUpdate(ctx context.Context, shardIndex int, update data.GuildStickersUpdate) ([]data.Sticker, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	old := collect(s.stickers[update.GuildID])
	next := map[data.ID]data.Sticker{}
	for _, st := range update.Stickers {
		st.GuildID = update.GuildID
		next[st.ID] = st
	}
	s.stickers[update.GuildID] = next
	return old, nil
}

func (s *Store) OnGuildMemberAdd(ctx context.Context, shardIndex int, m data.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub(s.members, m.GuildID)[m.User.ID] = m
	s.users[m.User.ID] = m.User
	return nil
}

func (s *Store) OnGuildMemberUpdate(ctx context.Context, shardIndex int, m data.Member) (*data.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	old := lookupNested(s.members, m.GuildID, m.User.ID)
	sub(s.members, m.GuildID)[m.User.ID] = m
	s.users[m.User.ID] = m.User
	return old, nil
}

func (s *Store) OnGuildMemberRemove(ctx context.Context, shardIndex int, remove data.MemberRemove) (*data.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	old := lookupNested(s.members, remove.GuildID, remove.User.ID)
	delete(s.members[remove.GuildID], remove.User.ID)
	delete(s.presences[remove.GuildID], remove.User.ID)
	delete(s.voice[remove.GuildID], remove.User.ID)
	// A member list we were told is complete stays complete: we saw
	// the member leave.
	s.pruneUsers()
	return old, nil
}

func (s *Store) OnGuildMembersChunk(ctx context.Context, shardIndex int, chunk data.MembersChunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	inner := sub(s.members, chunk.GuildID)
	for _, m := range chunk.Members {
		m.GuildID = chunk.GuildID
		inner[m.User.ID] = m
		s.users[m.User.ID] = m.User
	}
	return nil
}

func (s *Store) OnGuildMembersCompletion(ctx context.Context, guildID data.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.complete[guildID] = true
	return nil
}

func (s *Store) OnMessageCreate(ctx context.Context, shardIndex int, m data.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub(s.messages, m.ChannelID)[m.ID] = m
	return nil
}

func (s *Store) OnMessageUpdate(ctx context.Context, shardIndex int, m data.Message) (*data.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	old := lookupNested(s.messages, m.ChannelID, m.ID)
	if old != nil && m.Reactions == nil {
		// Edit dispatches omit reactions; keep what we had.
		m.Reactions = old.Reactions
	}
	sub(s.messages, m.ChannelID)[m.ID] = m
	return old, nil
}

func (s *Store) OnMessageDelete(ctx context.Context, shardIndex int, del data.MessageDelete) (*data.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	old := lookupNested(s.messages, del.ChannelID, del.ID)
	delete(s.messages[del.ChannelID], del.ID)
	return old, nil
}

func (s *Store) OnMessageDeleteBulk(ctx context.Context, shardIndex int, del data.MessageDeleteBulk) ([]data.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var old []data.Message
	for _, id := range del.IDs {
		if m := lookupNested(s.messages, del.ChannelID, id); m != nil {
			old = append(old, *m)
			delete(s.messages[del.ChannelID], id)
		}
	}
	return old, nil
}

func sameEmoji(a, b data.Emoji) bool {
	if a.ID != nil && b.ID != nil {
		return *a.ID == *b.ID
	}
	if a.ID == nil && b.ID == nil && a.Name != nil && b.Name != nil {
		return *a.Name == *b.Name
	}
	return false
}

func (s *Store) OnMessageReactionAdd(ctx context.Context, shardIndex int, r data.MessageReaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := lookupNested(s.messages, r.ChannelID, r.MessageID)
	if m == nil {
		return nil
	}
	found := false
	for i := range m.Reactions {
		if sameEmoji(m.Reactions[i].Emoji, r.Emoji) {
			m.Reactions[i].Count++
			if r.UserID == s.selfID {
				m.Reactions[i].Me = true
			}
			found = true
			break
		}
	}
	if !found {
		m.Reactions = append(m.Reactions, data.Reaction{
			Count: 1,
			Me:    r.UserID == s.selfID,
			Emoji: r.Emoji,
		})
	}
	s.messages[r.ChannelID][r.MessageID] = *m
	return nil
}

func (s *Store) OnMessageReactionRemove(ctx context.Context, shardIndex int, r data.MessageReaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := lookupNested(s.messages, r.ChannelID, r.MessageID)
	if m == nil {
		return nil
	}
	for i := range m.Reactions {
		if !sameEmoji(m.Reactions[i].Emoji, r.Emoji) {
			continue
		}
		m.Reactions[i].Count--
		if r.UserID == s.selfID {
			m.Reactions[i].Me = false
		}
		if m.Reactions[i].Count <= 0 {
			m.Reactions = append(m.Reactions[:i], m.Reactions[i+1:]...)
		}
		break
	}
	s.messages[r.ChannelID][r.MessageID] = *m
	return nil
}

func (s *Store) OnMessageReactionRemoveAll(ctx context.Context, shardIndex int, r data.MessageReactionRemoveAll) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := lookupNested(s.messages, r.ChannelID, r.MessageID)
	if m == nil {
		return nil
	}
	m.Reactions = nil
	s.messages[r.ChannelID][r.MessageID] = *m
	return nil
}

func (s *Store) OnMessageReactionRemoveEmoji(ctx context.Context, shardIndex int, r data.MessageReactionRemoveEmoji) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := lookupNested(s.messages, r.ChannelID, r.MessageID)
	if m == nil {
		return nil
	}
	for i := range m.Reactions {
		if sameEmoji(m.Reactions[i].Emoji, r.Emoji) {
			m.Reactions = append(m.Reactions[:i], m.Reactions[i+1:]...)
			break
		}
	}
	s.messages[r.ChannelID][r.MessageID] = *m
	return nil
}

func (s *Store) OnPresenceUpdate(ctx context.Context, shardIndex int, p data.Presence) (*data.Presence, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	old := lookupNested(s.presences, p.GuildID, p.User.ID)
	sub(s.presences, p.GuildID)[p.User.ID] = p
	// Presence dispatches can carry partial users; only refresh the
	// cached user when the payload looks whole.
	if p.User.Username != "" {
		s.users[p.User.ID] = p.User
	}
	return old, nil
}

func (s *Store) OnGuildRoleCreate(ctx context.Context, shardIndex int, r data.GuildRole) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	role := r.Role
	role.GuildID = r.GuildID
	sub(s.roles, r.GuildID)[role.ID] = role
	return nil
}

func (s *Store) OnGuildRoleUpdate(ctx context.Context, shardIndex int, r data.GuildRole) (*data.Role, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	old := lookupNested(s.roles, r.GuildID, r.Role.ID)
	role := r.Role
	role.GuildID = r.GuildID
	sub(s.roles, r.GuildID)[role.ID] = role
	return old, nil
}

func (s *Store) OnGuildRoleDelete(ctx context.Context, shardIndex int, del data.GuildRoleDelete) (*data.Role, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	old := lookupNested(s.roles, del.GuildID, del.RoleID)
	delete(s.roles[del.GuildID], del.RoleID)
	// Strip the role from every cached member of the guild.
	for userID, m := range s.members[del.GuildID] {
		for i, roleID := range m.Roles {
			if roleID == del.RoleID {
				m.Roles = append(m.Roles[:i], m.Roles[i+1:]...)
				s.members[del.GuildID][userID] = m
				break
			}
		}
	}
	return old, nil
}

func (s *Store) OnUserUpdate(ctx context.Context, shardIndex int, u data.User) (*data.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	old := lookup(s.users, u.ID)
	s.users[u.ID] = u
	return old, nil
}

func (s *Store) OnVoiceStateUpdate(ctx context.Context, shardIndex int, vs data.VoiceState) (*data.VoiceState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	old := lookupNested(s.voice, vs.GuildID, vs.UserID)
	if vs.ChannelID == nil {
		// A nil channel means the user left voice.
		delete(s.voice[vs.GuildID], vs.UserID)
	} else {
		sub(s.voice, vs.GuildID)[vs.UserID] = vs
	}
	return old, nil
}

func (s *Store) OnScheduledEventCreate(ctx context.Context, shardIndex int, ev data.ScheduledEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub(s.events, ev.GuildID)[ev.ID] = ev
	return nil
}

func (s *Store) OnScheduledEventUpdate(ctx context.Context, shardIndex int, ev data.ScheduledEvent) (*data.ScheduledEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	old := lookupNested(s.events, ev.GuildID, ev.ID)
	sub(s.events, ev.GuildID)[ev.ID] = ev
	return old, nil
}

func (s *Store) OnScheduledEventDelete(ctx context.Context, shardIndex int, ev data.ScheduledEvent) (*data.ScheduledEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	old := lookupNested(s.events, ev.GuildID, ev.ID)
	delete(s.events[ev.GuildID], ev.ID)
	delete(s.eventUsers[ev.GuildID], ev.ID)
	return old, nil
}

func (s *Store) OnScheduledEventUserAdd(ctx context.Context, shardIndex int, u data.ScheduledEventUser) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	byEvent := s.eventUsers[u.GuildID]
	if byEvent == nil {
		byEvent = map[data.ID]map[data.ID]bool{}
		s.eventUsers[u.GuildID] = byEvent
	}
	users := byEvent[u.EventID]
	if users == nil {
		users = map[data.ID]bool{}
		byEvent[u.EventID] = users
	}
	users[u.UserID] = true
	return nil
}

func (s *Store) OnScheduledEventUserRemove(ctx context.Context, shardIndex int, u data.ScheduledEventUser) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.eventUsers[u.GuildID][u.EventID], u.UserID)
	return nil
}
