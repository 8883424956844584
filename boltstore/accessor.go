package boltstore

import (
	"context"

	bolt "go.etcd.io/bbolt"

	"github.com/tandemchat/tandem-go/data"
	"github.com/tandemchat/tandem-go/store"
)

// The read side.  Each read runs in its own View transaction.

// Channels are keyed by their own ID (a channel can exist outside any
// guild), so the per-guild queries filter on the decoded value.

func (s *Store) channelsInGuild(tx *bolt.Tx, guildID data.ID) ([]data.Channel, error) {
	all, err := collectAll[data.Channel](tx.Bucket([]byte("channels")))
	if err != nil {
		return nil, err
	}
	var out []data.Channel
	for _, ch := range all {
		if ch.GuildID != nil && *ch.GuildID == guildID {
			out = append(out, ch)
		}
	}
	return out, nil
}

func (s *Store) CountChannels(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.View(func(tx *bolt.Tx) error {
		n = countAll(tx.Bucket([]byte("channels")))
		return nil
	})
	return n, err
}

func (s *Store) CountChannelsInGuild(ctx context.Context, guildID data.ID) (int64, error) {
	var n int64
	err := s.db.View(func(tx *bolt.Tx) error {
		chs, err := s.channelsInGuild(tx, guildID)
		if err != nil {
			return err
		}
		n = int64(len(chs))
		return nil
	})
	return n, err
}

func (s *Store) CountEmojis(ctx context.Context) (int64, error) {
	return s.countBucket("emojis")
}

func (s *Store) CountEmojisInGuild(ctx context.Context, guildID data.ID) (int64, error) {
	return s.countBucketPrefix("emojis", guildID)
}

func (s *Store) CountGuilds(ctx context.Context) (int64, error) {
	return s.countBucket("guilds")
}

func (s *Store) CountMembers(ctx context.Context) (int64, error) {
	return s.countBucket("members")
}

func (s *Store) CountMembersInGuild(ctx context.Context, guildID data.ID) (int64, error) {
	return s.countBucketPrefix("members", guildID)
}

func (s *Store) CountExactMembersInGuild(ctx context.Context, guildID data.ID) (int64, error) {
	var n int64
	err := s.db.View(func(tx *bolt.Tx) error {
		if tx.Bucket([]byte("complete")).Get(key(guildID)) == nil {
			return store.ErrIncompleteMembers
		}
		n = countPrefix(tx.Bucket([]byte("members")), scopePrefix(guildID))
		return nil
	})
	return n, err
}

func (s *Store) CountMessages(ctx context.Context) (int64, error) {
	return s.countBucket("messages")
}

func (s *Store) CountMessagesInChannel(ctx context.Context, channelID data.ID) (int64, error) {
	return s.countBucketPrefix("messages", channelID)
}

func (s *Store) CountPresences(ctx context.Context) (int64, error) {
	return s.countBucket("presences")
}

func (s *Store) CountPresencesInGuild(ctx context.Context, guildID data.ID) (int64, error) {
	return s.countBucketPrefix("presences", guildID)
}

func (s *Store) CountRoles(ctx context.Context) (int64, error) {
	return s.countBucket("roles")
}

func (s *Store) CountRolesInGuild(ctx context.Context, guildID data.ID) (int64, error) {
	return s.countBucketPrefix("roles", guildID)
}

func (s *Store) CountStickers(ctx context.Context) (int64, error) {
	return s.countBucket("stickers")
}

func (s *Store) CountStickersInGuild(ctx context.Context, guildID data.ID) (int64, error) {
	return s.countBucketPrefix("stickers", guildID)
}

func (s *Store) CountUsers(ctx context.Context) (int64, error) {
	return s.countBucket("users")
}

func (s *Store) CountVoiceStates(ctx context.Context) (int64, error) {
	return s.countBucket("voice")
}

func (s *Store) CountVoiceStatesInGuild(ctx context.Context, guildID data.ID) (int64, error) {
	return s.countBucketPrefix("voice", guildID)
}

func (s *Store) CountVoiceStatesInChannel(ctx context.Context, guildID, channelID data.ID) (int64, error) {
	var n int64
	err := s.db.View(func(tx *bolt.Tx) error {
		states, err := collectPrefix[data.VoiceState](tx.Bucket([]byte("voice")), scopePrefix(guildID))
		if err != nil {
			return err
		}
		for _, vs := range states {
			if vs.ChannelID != nil && *vs.ChannelID == channelID {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (s *Store) countBucket(name string) (int64, error) {
	var n int64
	err := s.db.View(func(tx *bolt.Tx) error {
		n = countAll(tx.Bucket([]byte(name)))
		return nil
	})
	return n, err
}

func (s *Store) countBucketPrefix(name string, outer data.ID) (int64, error) {
	var n int64
	err := s.db.View(func(tx *bolt.Tx) error {
		n = countPrefix(tx.Bucket([]byte(name)), scopePrefix(outer))
		return nil
	})
	return n, err
}

func viewAll[T any](s *Store, name string) ([]T, error) {
	var out []T
	err := s.db.View(func(tx *bolt.Tx) error {
		var err error
		out, err = collectAll[T](tx.Bucket([]byte(name)))
		return err
	})
	return out, err
}

func viewPrefix[T any](s *Store, name string, outer data.ID) ([]T, error) {
	var out []T
	err := s.db.View(func(tx *bolt.Tx) error {
		var err error
		out, err = collectPrefix[T](tx.Bucket([]byte(name)), scopePrefix(outer))
		return err
	})
	return out, err
}

func viewOne[T any](s *Store, name string, k []byte) (*T, error) {
	var out *T
	err := s.db.View(func(tx *bolt.Tx) error {
		var err error
		out, err = getJSON[T](tx.Bucket([]byte(name)), k)
		return err
	})
	return out, err
}

func (s *Store) GetChannels(ctx context.Context) ([]data.Channel, error) {
	return viewAll[data.Channel](s, "channels")
}

func (s *Store) GetChannelsInGuild(ctx context.Context, guildID data.ID) ([]data.Channel, error) {
	var out []data.Channel
	err := s.db.View(func(tx *bolt.Tx) error {
		var err error
		out, err = s.channelsInGuild(tx, guildID)
		return err
	})
	return out, err
}

func (s *Store) GetChannelByID(ctx context.Context, channelID data.ID) (*data.Channel, error) {
	return viewOne[data.Channel](s, "channels", key(channelID))
}

func (s *Store) GetEmojis(ctx context.Context) ([]data.Emoji, error) {
	return viewAll[data.Emoji](s, "emojis")
}

func (s *Store) GetEmojisInGuild(ctx context.Context, guildID data.ID) ([]data.Emoji, error) {
	return viewPrefix[data.Emoji](s, "emojis", guildID)
}

func (s *Store) GetEmojiByID(ctx context.Context, guildID, emojiID data.ID) (*data.Emoji, error) {
	return viewOne[data.Emoji](s, "emojis", scoped(guildID, emojiID))
}

func (s *Store) GetGuilds(ctx context.Context) ([]data.Guild, error) {
	return viewAll[data.Guild](s, "guilds")
}

func (s *Store) GetGuildByID(ctx context.Context, guildID data.ID) (*data.Guild, error) {
	return viewOne[data.Guild](s, "guilds", key(guildID))
}

func (s *Store) GetMembers(ctx context.Context) ([]data.Member, error) {
	return viewAll[data.Member](s, "members")
}

func (s *Store) GetMembersInGuild(ctx context.Context, guildID data.ID) ([]data.Member, error) {
	return viewPrefix[data.Member](s, "members", guildID)
}

func (s *Store) GetExactMembersInGuild(ctx context.Context, guildID data.ID) ([]data.Member, error) {
	var out []data.Member
	err := s.db.View(func(tx *bolt.Tx) error {
		if tx.Bucket([]byte("complete")).Get(key(guildID)) == nil {
			return store.ErrIncompleteMembers
		}
		var err error
		out, err = collectPrefix[data.Member](tx.Bucket([]byte("members")), scopePrefix(guildID))
		return err
	})
	return out, err
}

func (s *Store) GetMemberByID(ctx context.Context, guildID, userID data.ID) (*data.Member, error) {
	return viewOne[data.Member](s, "members", scoped(guildID, userID))
}

func (s *Store) GetMessages(ctx context.Context) ([]data.Message, error) {
	return viewAll[data.Message](s, "messages")
}

func (s *Store) GetMessagesInChannel(ctx context.Context, channelID data.ID) ([]data.Message, error) {
	return viewPrefix[data.Message](s, "messages", channelID)
}

func (s *Store) GetMessageByID(ctx context.Context, channelID, messageID data.ID) (*data.Message, error) {
	return viewOne[data.Message](s, "messages", scoped(channelID, messageID))
}

func (s *Store) GetPresences(ctx context.Context) ([]data.Presence, error) {
	return viewAll[data.Presence](s, "presences")
}

func (s *Store) GetPresencesInGuild(ctx context.Context, guildID data.ID) ([]data.Presence, error) {
	return viewPrefix[data.Presence](s, "presences", guildID)
}

func (s *Store) GetPresenceByID(ctx context.Context, guildID, userID data.ID) (*data.Presence, error) {
	return viewOne[data.Presence](s, "presences", scoped(guildID, userID))
}

func (s *Store) GetRoles(ctx context.Context) ([]data.Role, error) {
	return viewAll[data.Role](s, "roles")
}

func (s *Store) GetRolesInGuild(ctx context.Context, guildID data.ID) ([]data.Role, error) {
	return viewPrefix[data.Role](s, "roles", guildID)
}

func (s *Store) GetRoleByID(ctx context.Context, guildID, roleID data.ID) (*data.Role, error) {
	return viewOne[data.Role](s, "roles", scoped(guildID, roleID))
}

func (s *Store) GetStickers(ctx context.Context) ([]data.Sticker, error) {
	return viewAll[data.Sticker](s, "stickers")
}

func (s *Store) GetStickersInGuild(ctx context.Context, guildID data.ID) ([]data.Sticker, error) {
	return viewPrefix[data.Sticker](s, "stickers", guildID)
}

func (s *Store) GetStickerByID(ctx context.Context, guildID, stickerID data.ID) (*data.Sticker, error) {
	return viewOne[data.Sticker](s, "stickers", scoped(guildID, stickerID))
}

func (s *Store) GetUsers(ctx context.Context) ([]data.User, error) {
	return viewAll[data.User](s, "users")
}

func (s *Store) GetUserByID(ctx context.Context, userID data.ID) (*data.User, error) {
	return viewOne[data.User](s, "users", key(userID))
}

func (s *Store) GetVoiceStates(ctx context.Context) ([]data.VoiceState, error) {
	return viewAll[data.VoiceState](s, "voice")
}

func (s *Store) GetVoiceStatesInGuild(ctx context.Context, guildID data.ID) ([]data.VoiceState, error) {
	return viewPrefix[data.VoiceState](s, "voice", guildID)
}

func (s *Store) GetVoiceStatesInChannel(ctx context.Context, guildID, channelID data.ID) ([]data.VoiceState, error) {
	all, err := viewPrefix[data.VoiceState](s, "voice", guildID)
	if err != nil {
		return nil, err
	}
	var out []data.VoiceState
	for _, vs := range all {
		if vs.ChannelID != nil && *vs.ChannelID == channelID {
			out = append(out, vs)
		}
	}
	return out, nil
}

func (s *Store) GetVoiceStateByID(ctx context.Context, guildID, userID data.ID) (*data.VoiceState, error) {
	return viewOne[data.VoiceState](s, "voice", scoped(guildID, userID))
}

func (s *Store) GetScheduledEventsInGuild(ctx context.Context, guildID data.ID) ([]data.ScheduledEvent, error) {
	return viewPrefix[data.ScheduledEvent](s, "events", guildID)
}

func (s *Store) GetScheduledEventByID(ctx context.Context, guildID, eventID data.ID) (*data.ScheduledEvent, error) {
	return viewOne[data.ScheduledEvent](s, "events", scoped(guildID, eventID))
}

func (s *Store) GetScheduledEventUsersInEvent(ctx context.Context, guildID, eventID data.ID) ([]data.ID, error) {
	var out []data.ID
	err := s.db.View(func(tx *bolt.Tx) error {
		prefix := append(scoped(guildID, eventID), '/')
		users, err := collectPrefix[data.ID](tx.Bucket([]byte("eventusers")), prefix)
		if err != nil {
			return err
		}
		out = users
		return nil
	})
	return out, err
}
