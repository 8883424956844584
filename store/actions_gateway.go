package store

import "github.com/tandemchat/tandem-go/data"

// Gateway actions apply one inbound realtime event to a Layout's
// GatewayUpdater.  Every gateway action carries the index of the
// shard that received the event.
//
// Handlers for update and delete events produce the prior cached
// state where one exists (see GatewayUpdater); create events produce
// nothing.

// InvalidationCause says why a shard's cached data is being dropped.
type InvalidationCause string

const (
	InvalidationLogout        InvalidationCause = "logout"
	InvalidationHardReconnect InvalidationCause = "hardReconnect"
)

// Lifecycle.
type (
	// Ready announces a successful gateway session.
	Ready struct {
		ShardIndex int
		Ready      data.Ready
	}

	// InvalidateShard drops everything cached on behalf of a shard.
	InvalidateShard struct {
		ShardIndex int
		Cause      InvalidationCause
	}
)

// Channel events.
type (
	ChannelCreate struct {
		ShardIndex int
		Channel    data.Channel
	}
	ChannelUpdate struct { // Result: *data.Channel (old)
		ShardIndex int
		Channel    data.Channel
	}
	ChannelDelete struct { // Result: *data.Channel (old)
		ShardIndex int
		Channel    data.Channel
	}
)

// Guild events.
type (
	GuildCreate struct {
		ShardIndex int
		Guild      data.Guild
	}
	GuildUpdate struct { // Result: *data.Guild (old)
		ShardIndex int
		Guild      data.Guild
	}
	GuildDelete struct { // Result: *data.Guild (old)
		ShardIndex int
		Guild      data.Guild
	}
	EmojisUpdate struct { // Result: []data.Emoji (old)
		ShardIndex int
		Update     data.GuildEmojisUpdate
	}
	StickersUpdate struct { // Result: []data.Sticker (old)
		ShardIndex int
		Update     data.GuildStickersUpdate
	}
)

// Member events.
type (
	MemberAdd struct {
		ShardIndex int
		Member     data.Member
	}
	MemberUpdate struct { // Result: *data.Member (old)
		ShardIndex int
		Member     data.Member
	}
	MemberRemove struct { // Result: *data.Member (old)
		ShardIndex int
		Remove     data.MemberRemove
	}
	MembersChunk struct {
		ShardIndex int
		Chunk      data.MembersChunk
	}

	// CompleteGuildMembers marks a guild's member list complete,
	// typically after the last chunk arrives.
	CompleteGuildMembers struct {
		GuildID data.ID
	}
)

// Message events.
type (
	MessageCreate struct {
		ShardIndex int
		Message    data.Message
	}
	MessageUpdate struct { // Result: *data.Message (old)
		ShardIndex int
		Message    data.Message
	}
	MessageDelete struct { // Result: *data.Message (old)
		ShardIndex int
		Delete     data.MessageDelete
	}
	MessageDeleteBulk struct { // Result: []data.Message (old)
		ShardIndex int
		Delete     data.MessageDeleteBulk
	}
	ReactionAdd struct {
		ShardIndex int
		Reaction   data.MessageReaction
	}
	ReactionRemove struct {
		ShardIndex int
		Reaction   data.MessageReaction
	}
	ReactionRemoveAll struct {
		ShardIndex int
		Remove     data.MessageReactionRemoveAll
	}
	ReactionRemoveEmoji struct {
		ShardIndex int
		Remove     data.MessageReactionRemoveEmoji
	}
)

// Presence, role, user, and voice events.
type (
	PresenceUpdate struct { // Result: *data.Presence (old)
		ShardIndex int
		Presence   data.Presence
	}

	RoleCreate struct {
		ShardIndex int
		Role       data.GuildRole
	}
	RoleUpdate struct { // Result: *data.Role (old)
		ShardIndex int
		Role       data.GuildRole
	}
	RoleDelete struct { // Result: *data.Role (old)
		ShardIndex int
		Delete     data.GuildRoleDelete
	}

	UserUpdate struct { // Result: *data.User (old)
		ShardIndex int
		User       data.User
	}

	VoiceStateUpdate struct { // Result: *data.VoiceState (old)
		ShardIndex int
		State      data.VoiceState
	}
)

// Scheduled event events.
type (
	ScheduledEventCreate struct {
		ShardIndex int
		Event      data.ScheduledEvent
	}
	ScheduledEventUpdate struct { // Result: *data.ScheduledEvent (old)
		ShardIndex int
		Event      data.ScheduledEvent
	}
	ScheduledEventDelete struct { // Result: *data.ScheduledEvent (old)
		ShardIndex int
		Event      data.ScheduledEvent
	}
	ScheduledEventUserAdd struct {
		ShardIndex int
		User       data.ScheduledEventUser
	}
	ScheduledEventUserRemove struct {
		ShardIndex int
		User       data.ScheduledEventUser
	}
)
