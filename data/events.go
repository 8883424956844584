package data

// Ready is the payload of the gateway's initial READY dispatch.
type Ready struct {
	Version   int     `json:"v"`
	User      User    `json:"user"`
	SessionID string  `json:"session_id"`
	Shard     []int   `json:"shard,omitempty"`
	Guilds    []Guild `json:"guilds"`
}

// MembersChunk is one chunk of a bulk member list response.
type MembersChunk struct {
	GuildID    ID       `json:"guild_id"`
	Members    []Member `json:"members"`
	ChunkIndex int      `json:"chunk_index"`
	ChunkCount int      `json:"chunk_count"`
	NotFound   []ID     `json:"not_found,omitempty"`
	Nonce      string   `json:"nonce,omitempty"`
}

// MemberRemove is the payload of a member-remove dispatch.
type MemberRemove struct {
	GuildID ID   `json:"guild_id"`
	User    User `json:"user"`
}

// GuildEmojisUpdate carries a guild's full emoji list after a change.
type GuildEmojisUpdate struct {
	GuildID ID      `json:"guild_id"`
	Emojis  []Emoji `json:"emojis"`
}

// GuildStickersUpdate carries a guild's full sticker list after a change.
type GuildStickersUpdate struct {
	GuildID  ID        `json:"guild_id"`
	Stickers []Sticker `json:"stickers"`
}

// MessageDelete identifies one deleted message.
type MessageDelete struct {
	ID        ID  `json:"id"`
	ChannelID ID  `json:"channel_id"`
	GuildID   *ID `json:"guild_id,omitempty"`
}

// MessageDeleteBulk identifies a batch of deleted messages.
type MessageDeleteBulk struct {
	IDs       []ID `json:"ids"`
	ChannelID ID   `json:"channel_id"`
	GuildID   *ID  `json:"guild_id,omitempty"`
}

// MessageReaction is the payload of reaction add/remove dispatches.
type MessageReaction struct {
	UserID    ID    `json:"user_id"`
	ChannelID ID    `json:"channel_id"`
	MessageID ID    `json:"message_id"`
	GuildID   *ID   `json:"guild_id,omitempty"`
	Emoji     Emoji `json:"emoji"`
}

// MessageReactionRemoveAll identifies a message whose reactions were
// all cleared.
type MessageReactionRemoveAll struct {
	ChannelID ID  `json:"channel_id"`
	MessageID ID  `json:"message_id"`
	GuildID   *ID `json:"guild_id,omitempty"`
}

// MessageReactionRemoveEmoji identifies a single emoji cleared from a
// message.
type MessageReactionRemoveEmoji struct {
	ChannelID ID    `json:"channel_id"`
	MessageID ID    `json:"message_id"`
	GuildID   *ID   `json:"guild_id,omitempty"`
	Emoji     Emoji `json:"emoji"`
}

// GuildRole carries a role event (create or update).
type GuildRole struct {
	GuildID ID   `json:"guild_id"`
	Role    Role `json:"role"`
}

// GuildRoleDelete identifies a deleted role.
type GuildRoleDelete struct {
	GuildID ID `json:"guild_id"`
	RoleID  ID `json:"role_id"`
}

// ScheduledEventUser links a user to a scheduled event for the
// user-add and user-remove dispatches.
type ScheduledEventUser struct {
	EventID ID `json:"guild_scheduled_event_id"`
	UserID  ID `json:"user_id"`
	GuildID ID `json:"guild_id"`
}
