package store

import "github.com/tandemchat/tandem-go/data"

// Read actions query a Layout's DataAccessor.  Each struct below is
// one action type; the struct carries the parameters and the comment
// names the result that the default handlers produce.

// EntityKind selects the entity family for the generic count actions.
type EntityKind int

const (
	KindChannels EntityKind = iota
	KindEmojis
	KindGuilds
	KindMembers
	KindMembersExact
	KindMessages
	KindPresences
	KindRoles
	KindUsers
	KindVoiceStates
	KindStickers
)

var kindNames = []string{
	"channels", "emojis", "guilds", "members", "membersExact",
	"messages", "presences", "roles", "users", "voiceStates", "stickers",
}

func (k EntityKind) String() string {
	if k < 0 || int(len(kindNames)) <= int(k) {
		return "unknown"
	}
	return kindNames[k]
}

// CountTotal counts all cached entities of one kind.  Result: int64.
//
// This generic form (and CountInGuild) is only registered when a
// layout enables every flag; with a partial flag set, use the
// per-family count actions so that gating stays per-family.
type CountTotal struct {
	Kind EntityKind
}

// CountInGuild counts one guild's cached entities of one kind.
// Result: int64.
type CountInGuild struct {
	Kind    EntityKind
	GuildID data.ID
}

// Per-family totals.  Result: int64.
type (
	CountTotalChannels    struct{}
	CountTotalEmojis      struct{}
	CountTotalGuilds      struct{}
	CountTotalMembers     struct{}
	CountTotalMessages    struct{}
	CountTotalPresences   struct{}
	CountTotalRoles       struct{}
	CountTotalStickers    struct{}
	CountTotalUsers       struct{}
	CountTotalVoiceStates struct{}
)

// Per-guild counts.  Result: int64.
type (
	CountChannelsInGuild     struct{ GuildID data.ID }
	CountEmojisInGuild       struct{ GuildID data.ID }
	CountMembersInGuild      struct{ GuildID data.ID }
	CountExactMembersInGuild struct{ GuildID data.ID }
	CountPresencesInGuild    struct{ GuildID data.ID }
	CountRolesInGuild        struct{ GuildID data.ID }
	CountStickersInGuild     struct{ GuildID data.ID }
	CountVoiceStatesInGuild  struct{ GuildID data.ID }
)

// Per-channel counts.  Result: int64.
type (
	CountMessagesInChannel struct{ ChannelID data.ID }

	CountVoiceStatesInChannel struct {
		GuildID   data.ID
		ChannelID data.ID
	}
)

// Channel reads.
type (
	// GetChannels lists every cached channel.  Result: []data.Channel.
	GetChannels struct{}
	// GetChannelsInGuild lists a guild's cached channels.  Result:
	// []data.Channel.
	GetChannelsInGuild struct{ GuildID data.ID }
	// GetChannelByID finds one cached channel.  Result:
	// *data.Channel (nil when absent).
	GetChannelByID struct{ ChannelID data.ID }
)

// Emoji reads.
type (
	GetEmojis        struct{}                  // Result: []data.Emoji
	GetEmojisInGuild struct{ GuildID data.ID } // Result: []data.Emoji

	// GetEmojiByID finds one cached guild emoji.  Result: *data.Emoji.
	GetEmojiByID struct {
		GuildID data.ID
		EmojiID data.ID
	}
)

// Guild reads.
type (
	GetGuilds    struct{}                  // Result: []data.Guild
	GetGuildByID struct{ GuildID data.ID } // Result: *data.Guild
)

// Member reads.
type (
	GetMembers         struct{}                  // Result: []data.Member
	GetMembersInGuild  struct{ GuildID data.ID } // Result: []data.Member

	// GetExactMembersInGuild is GetMembersInGuild that insists on a
	// complete member list.  Layouts that track completion return
	// ErrIncompleteMembers when chunking hasn't finished.  Result:
	// []data.Member.
	GetExactMembersInGuild struct{ GuildID data.ID }

	GetMemberByID struct { // Result: *data.Member
		GuildID data.ID
		UserID  data.ID
	}
)

// Message reads.
type (
	GetMessages          struct{}                    // Result: []data.Message
	GetMessagesInChannel struct{ ChannelID data.ID } // Result: []data.Message

	GetMessageByID struct { // Result: *data.Message
		ChannelID data.ID
		MessageID data.ID
	}
)

// Presence reads.
type (
	GetPresences        struct{}                  // Result: []data.Presence
	GetPresencesInGuild struct{ GuildID data.ID } // Result: []data.Presence

	GetPresenceByID struct { // Result: *data.Presence
		GuildID data.ID
		UserID  data.ID
	}
)

// Role reads.
type (
	GetRoles        struct{}                  // Result: []data.Role
	GetRolesInGuild struct{ GuildID data.ID } // Result: []data.Role

	GetRoleByID struct { // Result: *data.Role
		GuildID data.ID
		RoleID  data.ID
	}
)

// Sticker reads.
type (
	GetStickers        struct{}                  // Result: []data.Sticker
	GetStickersInGuild struct{ GuildID data.ID } // Result: []data.Sticker

	GetStickerByID struct { // Result: *data.Sticker
		GuildID   data.ID
		StickerID data.ID
	}
)

// User reads.
type (
	GetUsers    struct{}                 // Result: []data.User
	GetUserByID struct{ UserID data.ID } // Result: *data.User
)

// Voice state reads.
type (
	GetVoiceStates        struct{}                  // Result: []data.VoiceState
	GetVoiceStatesInGuild struct{ GuildID data.ID } // Result: []data.VoiceState

	GetVoiceStatesInChannel struct { // Result: []data.VoiceState
		GuildID   data.ID
		ChannelID data.ID
	}

	GetVoiceStateByID struct { // Result: *data.VoiceState
		GuildID data.ID
		UserID  data.ID
	}
)

// Scheduled event reads.
type (
	// Result: []data.ScheduledEvent
	GetScheduledEventsInGuild struct{ GuildID data.ID }

	GetScheduledEventByID struct { // Result: *data.ScheduledEvent
		GuildID data.ID
		EventID data.ID
	}

	// GetScheduledEventUsersInEvent lists the ids of users subscribed
	// to an event.  Result: []data.ID.
	GetScheduledEventUsersInEvent struct {
		GuildID data.ID
		EventID data.ID
	}
)
