package memstore

import (
	"context"

	"github.com/tandemchat/tandem-go/data"
	"github.com/tandemchat/tandem-go/store"
)

// The read side.  Lists come back in no particular order.

func (s *Store) CountChannels(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.channels)), nil
}

func (s *Store) CountChannelsInGuild(ctx context.Context, guildID data.ID) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, ch := range s.channels {
		if ch.GuildID != nil && *ch.GuildID == guildID {
			n++
		}
	}
	return n, nil
}

func (s *Store) CountEmojis(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return countNested(s.emojis), nil
}

func (s *Store) CountEmojisInGuild(ctx context.Context, guildID data.ID) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.emojis[guildID])), nil
}

func (s *Store) CountGuilds(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.guilds)), nil
}

func (s *Store) CountMembers(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return countNested(s.members), nil
}

func (s *Store) CountMembersInGuild(ctx context.Context, guildID data.ID) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.members[guildID])), nil
}

func (s *Store) CountExactMembersInGuild(ctx context.Context, guildID data.ID) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.complete[guildID] {
		return 0, store.ErrIncompleteMembers
	}
	return int64(len(s.members[guildID])), nil
}

func (s *Store) CountMessages(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return countNested(s.messages), nil
}

func (s *Store) CountMessagesInChannel(ctx context.Context, channelID data.ID) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.messages[channelID])), nil
}

func (s *Store) CountPresences(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return countNested(s.presences), nil
}

func (s *Store) CountPresencesInGuild(ctx context.Context, guildID data.ID) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.presences[guildID])), nil
}

func (s *Store) CountRoles(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return countNested(s.roles), nil
}

func (s *Store) CountRolesInGuild(ctx context.Context, guildID data.ID) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.roles[guildID])), nil
}

func (s *Store) CountStickers(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return countNested(s.stickers), nil
}

func (s *Store) CountStickersInGuild(ctx context.Context, guildID data.ID) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.stickers[guildID])), nil
}

func (s *Store) CountUsers(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.users)), nil
}

func (s *Store) CountVoiceStates(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return countNested(s.voice), nil
}

func (s *Store) CountVoiceStatesInGuild(ctx context.Context, guildID data.ID) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.voice[guildID])), nil
}

func (s *Store) CountVoiceStatesInChannel(ctx context.Context, guildID, channelID data.ID) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, vs := range s.voice[guildID] {
		if vs.ChannelID != nil && *vs.ChannelID == channelID {
			n++
		}
	}
	return n, nil
}

func (s *Store) GetChannels(ctx context.Context) ([]data.Channel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return collect(s.channels), nil
}

func (s *Store) GetChannelsInGuild(ctx context.Context, guildID data.ID) ([]data.Channel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []data.Channel
	for _, ch := range s.channels {
		if ch.GuildID != nil && *ch.GuildID == guildID {
			out = append(out, ch)
		}
	}
	return out, nil
}

func (s *Store) GetChannelByID(ctx context.Context, channelID data.ID) (*data.Channel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return lookup(s.channels, channelID), nil
}

func (s *Store) GetEmojis(ctx context.Context) ([]data.Emoji, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return collectNested(s.emojis), nil
}

func (s *Store) GetEmojisInGuild(ctx context.Context, guildID data.ID) ([]data.Emoji, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return collect(s.emojis[guildID]), nil
}

func (s *Store) GetEmojiByID(ctx context.Context, guildID, emojiID data.ID) (*data.Emoji, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return lookupNested(s.emojis, guildID, emojiID), nil
}

func (s *Store) GetGuilds(ctx context.Context) ([]data.Guild, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return collect(s.guilds), nil
}

func (s *Store) GetGuildByID(ctx context.Context, guildID data.ID) (*data.Guild, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return lookup(s.guilds, guildID), nil
}

func (s *Store) GetMembers(ctx context.Context) ([]data.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return collectNested(s.members), nil
}

func (s *Store) GetMembersInGuild(ctx context.Context, guildID data.ID) ([]data.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return collect(s.members[guildID]), nil
}

func (s *Store) GetExactMembersInGuild(ctx context.Context, guildID data.ID) ([]data.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.complete[guildID] {
		return nil, store.ErrIncompleteMembers
	}
	return collect(s.members[guildID]), nil
}

func (s *Store) GetMemberByID(ctx context.Context, guildID, userID data.ID) (*data.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return lookupNested(s.members, guildID, userID), nil
}

func (s *Store) GetMessages(ctx context.Context) ([]data.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return collectNested(s.messages), nil
}

func (s *Store) GetMessagesInChannel(ctx context.Context, channelID data.ID) ([]data.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return collect(s.messages[channelID]), nil
}

func (s *Store) GetMessageByID(ctx context.Context, channelID, messageID data.ID) (*data.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return lookupNested(s.messages, channelID, messageID), nil
}

func (s *Store) GetPresences(ctx context.Context) ([]data.Presence, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return collectNested(s.presences), nil
}

func (s *Store) GetPresencesInGuild(ctx context.Context, guildID data.ID) ([]data.Presence, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return collect(s.presences[guildID]), nil
}

func (s *Store) GetPresenceByID(ctx context.Context, guildID, userID data.ID) (*data.Presence, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return lookupNested(s.presences, guildID, userID), nil
}

func (s *Store) GetRoles(ctx context.Context) ([]data.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return collectNested(s.roles), nil
}

func (s *Store) GetRolesInGuild(ctx context.Context, guildID data.ID) ([]data.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return collect(s.roles[guildID]), nil
}

func (s *Store) GetRoleByID(ctx context.Context, guildID, roleID data.ID) (*data.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return lookupNested(s.roles, guildID, roleID), nil
}

func (s *Store) GetStickers(ctx context.Context) ([]data.Sticker, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return collectNested(s.stickers), nil
}

func (s *Store) GetStickersInGuild(ctx context.Context, guildID data.ID) ([]data.Sticker, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return collect(s.stickers[guildID]), nil
}

func (s *Store) GetStickerByID(ctx context.Context, guildID, stickerID data.ID) (*data.Sticker, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return lookupNested(s.stickers, guildID, stickerID), nil
}

func (s *Store) GetUsers(ctx context.Context) ([]data.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return collect(s.users), nil
}

func (s *Store) GetUserByID(ctx context.Context, userID data.ID) (*data.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return lookup(s.users, userID), nil
}

func (s *Store) GetVoiceStates(ctx context.Context) ([]data.VoiceState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return collectNested(s.voice), nil
}

func (s *Store) GetVoiceStatesInGuild(ctx context.Context, guildID data.ID) ([]data.VoiceState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return collect(s.voice[guildID]), nil
}

func (s *Store) GetVoiceStatesInChannel(ctx context.Context, guildID, channelID data.ID) ([]data.VoiceState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []data.VoiceState
	for _, vs := range s.voice[guildID] {
		if vs.ChannelID != nil && *vs.ChannelID == channelID {
			out = append(out, vs)
		}
	}
	return out, nil
}

func (s *Store) GetVoiceStateByID(ctx context.Context, guildID, userID data.ID) (*data.VoiceState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return lookupNested(s.voice, guildID, userID), nil
}

func (s *Store) GetScheduledEventsInGuild(ctx context.Context, guildID data.ID) ([]data.ScheduledEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return collect(s.events[guildID]), nil
}

func (s *Store) GetScheduledEventByID(ctx context.Context, guildID, eventID data.ID) (*data.ScheduledEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return lookupNested(s.events, guildID, eventID), nil
}

func (s *Store) GetScheduledEventUsersInEvent(ctx context.Context, guildID, eventID data.ID) ([]data.ID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := s.eventUsers[guildID][eventID]
	out := make([]data.ID, 0, len(users))
	for userID := range users {
		out = append(out, userID)
	}
	return out, nil
}
