package store

import (
	"context"

	"github.com/tandemchat/tandem-go/data"
)

// Layout bundles the capabilities a Store is built from: a read
// interface, a gateway-event write interface, the set of entity
// families the layout actually supports, and an optional mapper for
// user-defined actions.
//
// A Layout is supplied by whoever owns the cache.  The Store itself
// stores nothing.
type Layout interface {
	// Accessor returns the read interface.  Must not be nil.
	Accessor() DataAccessor

	// Updater returns the gateway-event write interface.  Must not
	// be nil.
	Updater() GatewayUpdater

	// EnabledFlags reports which entity families this layout
	// supports.  Families outside the set are not registered at all.
	EnabledFlags() Flag

	// CustomMapper supplies handlers for user-defined actions.
	// Return EmptyMapper() (or nil) when there are none.
	CustomMapper() *ActionMapper
}

// DataAccessor is the read-only query interface over a layout's
// cached data.  Every method is invoked synchronously, once per
// dispatched read action.
//
// "ByID" reads return nil (with a nil error) when the entity isn't
// cached.  List reads may return nil or empty slices
// interchangeably.
type DataAccessor interface {
	CountChannels(ctx context.Context) (int64, error)
	CountChannelsInGuild(ctx context.Context, guildID data.ID) (int64, error)
	CountEmojis(ctx context.Context) (int64, error)
	CountEmojisInGuild(ctx context.Context, guildID data.ID) (int64, error)
	CountGuilds(ctx context.Context) (int64, error)
	CountMembers(ctx context.Context) (int64, error)
	CountMembersInGuild(ctx context.Context, guildID data.ID) (int64, error)
	CountExactMembersInGuild(ctx context.Context, guildID data.ID) (int64, error)
	CountMessages(ctx context.Context) (int64, error)
	CountMessagesInChannel(ctx context.Context, channelID data.ID) (int64, error)
	CountPresences(ctx context.Context) (int64, error)
	CountPresencesInGuild(ctx context.Context, guildID data.ID) (int64, error)
	CountRoles(ctx context.Context) (int64, error)
	CountRolesInGuild(ctx context.Context, guildID data.ID) (int64, error)
	CountStickers(ctx context.Context) (int64, error)
	CountStickersInGuild(ctx context.Context, guildID data.ID) (int64, error)
	CountUsers(ctx context.Context) (int64, error)
	CountVoiceStates(ctx context.Context) (int64, error)
	CountVoiceStatesInGuild(ctx context.Context, guildID data.ID) (int64, error)
	CountVoiceStatesInChannel(ctx context.Context, guildID, channelID data.ID) (int64, error)

	GetChannels(ctx context.Context) ([]data.Channel, error)
	GetChannelsInGuild(ctx context.Context, guildID data.ID) ([]data.Channel, error)
	GetChannelByID(ctx context.Context, channelID data.ID) (*data.Channel, error)

	GetEmojis(ctx context.Context) ([]data.Emoji, error)
	GetEmojisInGuild(ctx context.Context, guildID data.ID) ([]data.Emoji, error)
	GetEmojiByID(ctx context.Context, guildID, emojiID data.ID) (*data.Emoji, error)

	GetGuilds(ctx context.Context) ([]data.Guild, error)
	GetGuildByID(ctx context.Context, guildID data.ID) (*data.Guild, error)

	GetMembers(ctx context.Context) ([]data.Member, error)
	GetMembersInGuild(ctx context.Context, guildID data.ID) ([]data.Member, error)
	GetExactMembersInGuild(ctx context.Context, guildID data.ID) ([]data.Member, error)
	GetMemberByID(ctx context.Context, guildID, userID data.ID) (*data.Member, error)

	GetMessages(ctx context.Context) ([]data.Message, error)
	GetMessagesInChannel(ctx context.Context, channelID data.ID) ([]data.Message, error)
	GetMessageByID(ctx context.Context, channelID, messageID data.ID) (*data.Message, error)

	GetPresences(ctx context.Context) ([]data.Presence, error)
	GetPresencesInGuild(ctx context.Context, guildID data.ID) ([]data.Presence, error)
	GetPresenceByID(ctx context.Context, guildID, userID data.ID) (*data.Presence, error)

	GetRoles(ctx context.Context) ([]data.Role, error)
	GetRolesInGuild(ctx context.Context, guildID data.ID) ([]data.Role, error)
	GetRoleByID(ctx context.Context, guildID, roleID data.ID) (*data.Role, error)

	GetStickers(ctx context.Context) ([]data.Sticker, error)
	GetStickersInGuild(ctx context.Context, guildID data.ID) ([]data.Sticker, error)
	GetStickerByID(ctx context.Context, guildID, stickerID data.ID) (*data.Sticker, error)

	GetUsers(ctx context.Context) ([]data.User, error)
	GetUserByID(ctx context.Context, userID data.ID) (*data.User, error)

	GetVoiceStates(ctx context.Context) ([]data.VoiceState, error)
	GetVoiceStatesInGuild(ctx context.Context, guildID data.ID) ([]data.VoiceState, error)
	GetVoiceStatesInChannel(ctx context.Context, guildID, channelID data.ID) ([]data.VoiceState, error)
	GetVoiceStateByID(ctx context.Context, guildID, userID data.ID) (*data.VoiceState, error)

	GetScheduledEventsInGuild(ctx context.Context, guildID data.ID) ([]data.ScheduledEvent, error)
	GetScheduledEventByID(ctx context.Context, guildID, eventID data.ID) (*data.ScheduledEvent, error)
	GetScheduledEventUsersInEvent(ctx context.Context, guildID, eventID data.ID) ([]data.ID, error)
}

// GatewayUpdater is the write interface invoked once per inbound
// realtime event.  Methods handling update and delete events return
// the prior cached state, or nil when there wasn't one.
type GatewayUpdater interface {
	OnReady(ctx context.Context, ready data.Ready) error
	OnShardInvalidation(ctx context.Context, shardIndex int, cause InvalidationCause) error

	OnChannelCreate(ctx context.Context, shardIndex int, ch data.Channel) error
	OnChannelUpdate(ctx context.Context, shardIndex int, ch data.Channel) (*data.Channel, error)
	OnChannelDelete(ctx context.Context, shardIndex int, ch data.Channel) (*data.Channel, error)

	OnGuildCreate(ctx context.Context, shardIndex int, g data.Guild) error
	OnGuildUpdate(ctx context.Context, shardIndex int, g data.Guild) (*data.Guild, error)
	OnGuildDelete(ctx context.Context, shardIndex int, g data.Guild) (*data.Guild, error)

	OnGuildEmojisUpdate(ctx context.Context, shardIndex int, update data.GuildEmojisUpdate) ([]data.Emoji, error)
	OnGuildStickersUpdate(ctx context.Context, shardIndex int, update data.GuildStickersUpdate) ([]data.Sticker, error)

	OnGuildMemberAdd(ctx context.Context, shardIndex int, m data.Member) error
	OnGuildMemberUpdate(ctx context.Context, shardIndex int, m data.Member) (*data.Member, error)
	OnGuildMemberRemove(ctx context.Context, shardIndex int, remove data.MemberRemove) (*data.Member, error)
	OnGuildMembersChunk(ctx context.Context, shardIndex int, chunk data.MembersChunk) error
	OnGuildMembersCompletion(ctx context.Context, guildID data.ID) error

	OnMessageCreate(ctx context.Context, shardIndex int, m data.Message) error
	OnMessageUpdate(ctx context.Context, shardIndex int, m data.Message) (*data.Message, error)
	OnMessageDelete(ctx context.Context, shardIndex int, del data.MessageDelete) (*data.Message, error)
	OnMessageDeleteBulk(ctx context.Context, shardIndex int, del data.MessageDeleteBulk) ([]data.Message, error)
	OnMessageReactionAdd(ctx context.Context, shardIndex int, r data.MessageReaction) error
	OnMessageReactionRemove(ctx context.Context, shardIndex int, r data.MessageReaction) error
	OnMessageReactionRemoveAll(ctx context.Context, shardIndex int, r data.MessageReactionRemoveAll) error
	OnMessageReactionRemoveEmoji(ctx context.Context, shardIndex int, r data.MessageReactionRemoveEmoji) error

	OnPresenceUpdate(ctx context.Context, shardIndex int, p data.Presence) (*data.Presence, error)

	OnGuildRoleCreate(ctx context.Context, shardIndex int, r data.GuildRole) error
	OnGuildRoleUpdate(ctx context.Context, shardIndex int, r data.GuildRole) (*data.Role, error)
	OnGuildRoleDelete(ctx context.Context, shardIndex int, del data.GuildRoleDelete) (*data.Role, error)

	OnUserUpdate(ctx context.Context, shardIndex int, u data.User) (*data.User, error)

	OnVoiceStateUpdate(ctx context.Context, shardIndex int, vs data.VoiceState) (*data.VoiceState, error)

	OnScheduledEventCreate(ctx context.Context, shardIndex int, ev data.ScheduledEvent) error
	OnScheduledEventUpdate(ctx context.Context, shardIndex int, ev data.ScheduledEvent) (*data.ScheduledEvent, error)
	OnScheduledEventDelete(ctx context.Context, shardIndex int, ev data.ScheduledEvent) (*data.ScheduledEvent, error)
	OnScheduledEventUserAdd(ctx context.Context, shardIndex int, u data.ScheduledEventUser) error
	OnScheduledEventUserRemove(ctx context.Context, shardIndex int, u data.ScheduledEventUser) error
}
