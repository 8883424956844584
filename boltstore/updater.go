package boltstore

import (
	"context"
	"encoding/json"

	bolt "go.etcd.io/bbolt"

	"github.com/tandemchat/tandem-go/data"
	"github.com/tandemchat/tandem-go/store"
)

// The write side.  Each event is one Update transaction, so a crash
// never leaves an event half applied.

var selfKey = []byte("self")

func (s *Store) selfID(tx *bolt.Tx) data.ID {
	id, err := getJSON[data.ID](tx.Bucket([]byte("meta")), selfKey)
	if err != nil || id == nil {
		return 0
	}
	return *id
}

func (s *Store) OnReady(ctx context.Context, ready data.Ready) error {
	s.logf("OnReady user %d guilds %d", ready.User.ID, len(ready.Guilds))
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := put(tx.Bucket([]byte("meta")), selfKey, ready.User.ID); err != nil {
			return err
		}
		if err := put(tx.Bucket([]byte("users")), key(ready.User.ID), ready.User); err != nil {
			return err
		}
		shard := 0
		if len(ready.Shard) > 0 {
			shard = ready.Shard[0]
		}
		for _, g := range ready.Guilds {
			if err := put(tx.Bucket([]byte("guilds")), key(g.ID), g); err != nil {
				return err
			}
			if err := put(tx.Bucket([]byte("shards")), key(g.ID), shard); err != nil {
				return err
			}
		}
		return nil
	})
}

// dropGuild removes a guild and everything scoped to it.  Callers
// are in a write transaction.
func (s *Store) dropGuild(tx *bolt.Tx, guildID data.ID) error {
	if err := tx.Bucket([]byte("guilds")).Delete(key(guildID)); err != nil {
		return err
	}
	if err := tx.Bucket([]byte("shards")).Delete(key(guildID)); err != nil {
		return err
	}
	if err := tx.Bucket([]byte("complete")).Delete(key(guildID)); err != nil {
		return err
	}
	for _, name := range []string{"emojis", "members", "presences", "roles", "stickers", "voice", "events", "eventusers"} {
		if err := deletePrefix(tx.Bucket([]byte(name)), scopePrefix(guildID)); err != nil {
			return err
		}
	}
	chs, err := s.channelsInGuild(tx, guildID)
	if err != nil {
		return err
	}
	for _, ch := range chs {
		if err := tx.Bucket([]byte("channels")).Delete(key(ch.ID)); err != nil {
			return err
		}
		if err := deletePrefix(tx.Bucket([]byte("messages")), scopePrefix(ch.ID)); err != nil {
			return err
		}
	}
	return nil
}

// pruneUsers drops users no member references anymore, keeping the
// self user.  Callers are in a write transaction.
func (s *Store) pruneUsers(tx *bolt.Tx) error {
	referenced := map[data.ID]bool{s.selfID(tx): true}
	members, err := collectAll[data.Member](tx.Bucket([]byte("members")))
	if err != nil {
		return err
	}
	for _, m := range members {
		referenced[m.User.ID] = true
	}
	users, err := collectAll[data.User](tx.Bucket([]byte("users")))
	if err != nil {
		return err
	}
	for _, u := range users {
		if !referenced[u.ID] {
			if err := tx.Bucket([]byte("users")).Delete(key(u.ID)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Store) OnShardInvalidation(ctx context.Context, shardIndex int, cause store.InvalidationCause) error {
	s.logf("OnShardInvalidation shard %d cause %s", shardIndex, cause)
	return s.db.Update(func(tx *bolt.Tx) error {
		shards := tx.Bucket([]byte("shards"))
		var doomed []data.ID
		c := shards.Cursor()
		for k, bs := c.First(); k != nil; k, bs = c.Next() {
			var shard int
			if err := json.Unmarshal(bs, &shard); err != nil {
				return err
			}
			if shard != shardIndex {
				continue
			}
			var guildID data.ID
			if err := guildID.UnmarshalJSON(k); err != nil {
				return err
			}
			doomed = append(doomed, guildID)
		}
		for _, guildID := range doomed {
			if err := s.dropGuild(tx, guildID); err != nil {
				return err
			}
		}
		if err := s.pruneUsers(tx); err != nil {
			return err
		}
		if cause == store.InvalidationLogout {
			meta := tx.Bucket([]byte("meta"))
			if self := s.selfID(tx); self != 0 {
				if err := tx.Bucket([]byte("users")).Delete(key(self)); err != nil {
					return err
				}
			}
			return meta.Delete(selfKey)
		}
		return nil
	})
}

func (s *Store) OnChannelCreate(ctx context.Context, shardIndex int, ch data.Channel) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return put(tx.Bucket([]byte("channels")), key(ch.ID), ch)
	})
}

// replace stores v at k and returns what was there.
func replace[T any](tx *bolt.Tx, bucket string, k []byte, v T) (*T, error) {
	b := tx.Bucket([]byte(bucket))
	old, err := getJSON[T](b, k)
	if err != nil {
		return nil, err
	}
	return old, put(b, k, v)
}

// remove deletes the value at k and returns what was there.
func remove[T any](tx *bolt.Tx, bucket string, k []byte) (*T, error) {
	b := tx.Bucket([]byte(bucket))
	old, err := getJSON[T](b, k)
	if err != nil {
		return nil, err
	}
	return old, b.Delete(k)
}

func (s *Store) OnChannelUpdate(ctx context.Context, shardIndex int, ch data.Channel) (*data.Channel, error) {
	var old *data.Channel
	err := s.db.Update(func(tx *bolt.Tx) error {
		var err error
		old, err = replace(tx, "channels", key(ch.ID), ch)
		return err
	})
	return old, err
}

func (s *Store) OnChannelDelete(ctx context.Context, shardIndex int, ch data.Channel) (*data.Channel, error) {
	var old *data.Channel
	err := s.db.Update(func(tx *bolt.Tx) error {
		var err error
		if old, err = remove[data.Channel](tx, "channels", key(ch.ID)); err != nil {
			return err
		}
		return deletePrefix(tx.Bucket([]byte("messages")), scopePrefix(ch.ID))
	})
	return old, err
}

func (s *Store) OnGuildCreate(ctx context.Context, shardIndex int, g data.Guild) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := put(tx.Bucket([]byte("guilds")), key(g.ID), g); err != nil {
			return err
		}
		return put(tx.Bucket([]byte("shards")), key(g.ID), shardIndex)
	})
}

func (s *Store) OnGuildUpdate(ctx context.Context, shardIndex int, g data.Guild) (*data.Guild, error) {
	var old *data.Guild
	err := s.db.Update(func(tx *bolt.Tx) error {
		var err error
		if old, err = replace(tx, "guilds", key(g.ID), g); err != nil {
			return err
		}
		return put(tx.Bucket([]byte("shards")), key(g.ID), shardIndex)
	})
	return old, err
}

func (s *Store) OnGuildDelete(ctx context.Context, shardIndex int, g data.Guild) (*data.Guild, error) {
	var old *data.Guild
	err := s.db.Update(func(tx *bolt.Tx) error {
		var err error
		if old, err = getJSON[data.Guild](tx.Bucket([]byte("guilds")), key(g.ID)); err != nil {
			return err
		}
		if err := s.dropGuild(tx, g.ID); err != nil {
			return err
		}
		return s.pruneUsers(tx)
	})
	return old, err
}

func (s *Store) OnGuildEmojisUpdate(ctx context.Context, shardIndex int, update data.GuildEmojisUpdate) ([]data.Emoji, error) {
	var old []data.Emoji
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte("emojis"))
		var err error
		if old, err = collectPrefix[data.Emoji](b, scopePrefix(update.GuildID)); err != nil {
			return err
		}
		if err := deletePrefix(b, scopePrefix(update.GuildID)); err != nil {
			return err
		}
		for _, e := range update.Emojis {
			if e.ID == nil {
				continue
			}
			if err := put(b, scoped(update.GuildID, *e.ID), e); err != nil {
				return err
			}
		}
		return nil
	})
	return old, err
}

func (s *Store) OnGuildStickersUpdate(ctx context.Context, shardIndex int, update data.GuildStickersUpdate) ([]data.Sticker, error) {
	var old []data.Sticker
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte("stickers"))
		var err error
		if old, err = collectPrefix[data.Sticker](b, scopePrefix(update.GuildID)); err != nil {
			return err
		}
		if err := deletePrefix(b, scopePrefix(update.GuildID)); err != nil {
			return err
		}
		for _, st := range update.Stickers {
			st.GuildID = update.GuildID
			if err := put(b, scoped(update.GuildID, st.ID), st); err != nil {
				return err
			}
		}
		return nil
	})
	return old, err
}

func putMember(tx *bolt.Tx, m data.Member) error {
	if err := put(tx.Bucket([]byte("members")), scoped(m.GuildID, m.User.ID), m); err != nil {
		return err
	}
	return put(tx.Bucket([]byte("users")), key(m.User.ID), m.User)
}

func (s *Store) OnGuildMemberAdd(ctx context.Context, shardIndex int, m data.Member) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return putMember(tx, m)
	})
}

func (s *Store) OnGuildMemberUpdate(ctx context.Context, shardIndex int, m data.Member) (*data.Member, error) {
	var old *data.Member
	err := s.db.Update(func(tx *bolt.Tx) error {
		var err error
		if old, err = getJSON[data.Member](tx.Bucket([]byte("members")), scoped(m.GuildID, m.User.ID)); err != nil {
			return err
		}
		return putMember(tx, m)
	})
	return old, err
}

func (s *Store) OnGuildMemberRemove(ctx context.Context, shardIndex int, remove data.MemberRemove) (*data.Member, error) {
	var old *data.Member
	err := s.db.Update(func(tx *bolt.Tx) error {
		k := scoped(remove.GuildID, remove.User.ID)
		var err error
		if old, err = getJSON[data.Member](tx.Bucket([]byte("members")), k); err != nil {
			return err
		}
		if err := tx.Bucket([]byte("members")).Delete(k); err != nil {
			return err
		}
		if err := tx.Bucket([]byte("presences")).Delete(k); err != nil {
			return err
		}
		if err := tx.Bucket([]byte("voice")).Delete(k); err != nil {
			return err
		}
		return s.pruneUsers(tx)
	})
	return old, err
}

func (s *Store) OnGuildMembersChunk(ctx context.Context, shardIndex int, chunk data.MembersChunk) error {
	s.logf("OnGuildMembersChunk guild %d members %d", chunk.GuildID, len(chunk.Members))
	return s.db.Update(func(tx *bolt.Tx) error {
		for _, m := range chunk.Members {
			m.GuildID = chunk.GuildID
			if err := putMember(tx, m); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Store) OnGuildMembersCompletion(ctx context.Context, guildID data.ID) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte("complete")).Put(key(guildID), []byte{1})
	})
}

func (s *Store) OnMessageCreate(ctx context.Context, shardIndex int, m data.Message) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return put(tx.Bucket([]byte("messages")), scoped(m.ChannelID, m.ID), m)
	})
}

func (s *Store) OnMessageUpdate(ctx context.Context, shardIndex int, m data.Message) (*data.Message, error) {
	var old *data.Message
	err := s.db.Update(func(tx *bolt.Tx) error {
		k := scoped(m.ChannelID, m.ID)
		var err error
		if old, err = getJSON[data.Message](tx.Bucket([]byte("messages")), k); err != nil {
			return err
		}
		if old != nil && m.Reactions == nil {
			m.Reactions = old.Reactions
		}
		return put(tx.Bucket([]byte("messages")), k, m)
	})
	return old, err
}

func (s *Store) OnMessageDelete(ctx context.Context, shardIndex int, del data.MessageDelete) (*data.Message, error) {
	var old *data.Message
	err := s.db.Update(func(tx *bolt.Tx) error {
		var err error
		old, err = remove[data.Message](tx, "messages", scoped(del.ChannelID, del.ID))
		return err
	})
	return old, err
}

func (s *Store) OnMessageDeleteBulk(ctx context.Context, shardIndex int, del data.MessageDeleteBulk) ([]data.Message, error) {
	var old []data.Message
	err := s.db.Update(func(tx *bolt.Tx) error {
		for _, id := range del.IDs {
			m, err := remove[data.Message](tx, "messages", scoped(del.ChannelID, id))
			if err != nil {
				return err
			}
			if m != nil {
				old = append(old, *m)
			}
		}
		return nil
	})
	return old, err
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

// withMessage loads a message, lets f rewrite it, and stores the
// result.  Missing messages are skipped: nothing to update.
func (s *Store) withMessage(channelID, messageID data.ID, f func(m *data.Message)) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		k := scoped(channelID, messageID)
		m, err := getJSON[data.Message](tx.Bucket([]byte("messages")), k)
		if err != nil || m == nil {
			return err
		}
		f(m)
		return put(tx.Bucket([]byte("messages")), k, *m)
	})
}

func (s *Store) OnMessageReactionAdd(ctx context.Context, shardIndex int, r data.MessageReaction) error {
	var self data.ID
	if err := s.db.View(func(tx *bolt.Tx) error {
		self = s.selfID(tx)
		return nil
	}); err != nil {
		return err
	}
	return s.withMessage(r.ChannelID, r.MessageID, func(m *data.Message) {
		for i := range m.Reactions {
			if sameEmoji(m.Reactions[i].Emoji, r.Emoji) {
				m.Reactions[i].Count++
				if r.UserID == self {
					m.Reactions[i].Me = true
				}
				return
			}
		}
		m.Reactions = append(m.Reactions, data.Reaction{
			Count: 1,
			Me:    r.UserID == self,
			Emoji: r.Emoji,
		})
	})
}

func (s *Store) OnMessageReactionRemove(ctx context.Context, shardIndex int, r data.MessageReaction) error {
	var self data.ID
	if err := s.db.View(func(tx *bolt.Tx) error {
		self = s.selfID(tx)
		return nil
	}); err != nil {
		return err
	}
	return s.withMessage(r.ChannelID, r.MessageID, func(m *data.Message) {
		for i := range m.Reactions {
			if !sameEmoji(m.Reactions[i].Emoji, r.Emoji) {
				continue
			}
			m.Reactions[i].Count--
			if r.UserID == self {
				m.Reactions[i].Me = false
			}
			if m.Reactions[i].Count <= 0 {
				m.Reactions = append(m.Reactions[:i], m.Reactions[i+1:]...)
			}
			return
		}
	})
}

func (s *Store) OnMessageReactionRemoveAll(ctx context.Context, shardIndex int, r data.MessageReactionRemoveAll) error {
	return s.withMessage(r.ChannelID, r.MessageID, func(m *data.Message) {
		m.Reactions = nil
	})
}

func (s *Store) OnMessageReactionRemoveEmoji(ctx context.Context, shardIndex int, r data.MessageReactionRemoveEmoji) error {
	return s.withMessage(r.ChannelID, r.MessageID, func(m *data.Message) {
		for i := range m.Reactions {
			if sameEmoji(m.Reactions[i].Emoji, r.Emoji) {
				m.Reactions = append(m.Reactions[:i], m.Reactions[i+1:]...)
				return
			}
		}
	})
}

func (s *Store) OnPresenceUpdate(ctx context.Context, shardIndex int, p data.Presence) (*data.Presence, error) {
	var old *data.Presence
	err := s.db.Update(func(tx *bolt.Tx) error {
		var err error
		if old, err = replace(tx, "presences", scoped(p.GuildID, p.User.ID), p); err != nil {
			return err
		}
		if p.User.Username != "" {
			return put(tx.Bucket([]byte("users")), key(p.User.ID), p.User)
		}
		return nil
	})
	return old, err
}

func (s *Store) OnGuildRoleCreate(ctx context.Context, shardIndex int, r data.GuildRole) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		role := r.Role
		role.GuildID = r.GuildID
		return put(tx.Bucket([]byte("roles")), scoped(r.GuildID, role.ID), role)
	})
}

func (s *Store) OnGuildRoleUpdate(ctx context.Context, shardIndex int, r data.GuildRole) (*data.Role, error) {
	var old *data.Role
	err := s.db.Update(func(tx *bolt.Tx) error {
		role := r.Role
		role.GuildID = r.GuildID
		var err error
		old, err = replace(tx, "roles", scoped(r.GuildID, role.ID), role)
		return err
	})
	return old, err
}

func (s *Store) OnGuildRoleDelete(ctx context.Context, shardIndex int, del data.GuildRoleDelete) (*data.Role, error) {
	var old *data.Role
	err := s.db.Update(func(tx *bolt.Tx) error {
		var err error
		if old, err = remove[data.Role](tx, "roles", scoped(del.GuildID, del.RoleID)); err != nil {
			return err
		}
		members, err := collectPrefix[data.Member](tx.Bucket([]byte("members")), scopePrefix(del.GuildID))
		if err != nil {
			return err
		}
		for _, m := range members {
			for i, roleID := range m.Roles {
				if roleID != del.RoleID {
					continue
				}
				m.Roles = append(m.Roles[:i], m.Roles[i+1:]...)
				if err := put(tx.Bucket([]byte("members")), scoped(del.GuildID, m.User.ID), m); err != nil {
					return err
				}
				break
			}
		}
		return nil
	})
	return old, err
}

func (s *Store) OnUserUpdate(ctx context.Context, shardIndex int, u data.User) (*data.User, error) {
	var old *data.User
	err := s.db.Update(func(tx *bolt.Tx) error {
		var err error
		old, err = replace(tx, "users", key(u.ID), u)
		return err
	})
	return old, err
}

func (s *Store) OnVoiceStateUpdate(ctx context.Context, shardIndex int, vs data.VoiceState) (*data.VoiceState, error) {
	var old *data.VoiceState
	err := s.db.Update(func(tx *bolt.Tx) error {
		k := scoped(vs.GuildID, vs.UserID)
		var err error
		if vs.ChannelID == nil {
			old, err = remove[data.VoiceState](tx, "voice", k)
			return err
		}
		old, err = replace(tx, "voice", k, vs)
		return err
	})
	return old, err
}

func (s *Store) OnScheduledEventCreate(ctx context.Context, shardIndex int, ev data.ScheduledEvent) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return put(tx.Bucket([]byte("events")), scoped(ev.GuildID, ev.ID), ev)
	})
}

func (s *Store) OnScheduledEventUpdate(ctx context.Context, shardIndex int, ev data.ScheduledEvent) (*data.ScheduledEvent, error) {
	var old *data.ScheduledEvent
	err := s.db.Update(func(tx *bolt.Tx) error {
		var err error
		old, err = replace(tx, "events", scoped(ev.GuildID, ev.ID), ev)
		return err
	})
	return old, err
}

func (s *Store) OnScheduledEventDelete(ctx context.Context, shardIndex int, ev data.ScheduledEvent) (*data.ScheduledEvent, error) {
	var old *data.ScheduledEvent
	err := s.db.Update(func(tx *bolt.Tx) error {
		var err error
		if old, err = remove[data.ScheduledEvent](tx, "events", scoped(ev.GuildID, ev.ID)); err != nil {
			return err
		}
		prefix := append(scoped(ev.GuildID, ev.ID), '/')
		return deletePrefix(tx.Bucket([]byte("eventusers")), prefix)
	})
	return old, err
}

func eventUserKey(u data.ScheduledEventUser) []byte {
	k := append(scoped(u.GuildID, u.EventID), '/')
	return append(k, key(u.UserID)...)
}

func (s *Store) OnScheduledEventUserAdd(ctx context.Context, shardIndex int, u data.ScheduledEventUser) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return put(tx.Bucket([]byte("eventusers")), eventUserKey(u), u.UserID)
	})
}

func (s *Store) OnScheduledEventUserRemove(ctx context.Context, shardIndex int, u data.ScheduledEventUser) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte("eventusers")).Delete(eventUserKey(u))
	})
}
