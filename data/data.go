// Package data holds the raw JSON shapes that the platform's REST and
// gateway APIs speak.
//
// These types are snapshots, not live views.  Nothing in this package
// talks to the network, and nothing here is mutated by the SDK after
// decoding.  Optional scalars that the wire can omit are pointers.
package data

import "time"

// User is a platform account.
type User struct {
	ID            ID      `json:"id"`
	Username      string  `json:"username"`
	Discriminator string  `json:"discriminator,omitempty"`
	Avatar        *string `json:"avatar"`
	Bot           bool    `json:"bot,omitempty"`
	System        bool    `json:"system,omitempty"`
}

// ChannelType enumerates the kinds of channels.
type ChannelType int

const (
	ChannelTypeText ChannelType = iota
	ChannelTypeDM
	ChannelTypeVoice
	ChannelTypeGroupDM
	ChannelTypeCategory
	ChannelTypeNews
	ChannelTypeStage    ChannelType = 13
	ChannelTypeForum    ChannelType = 15
)

// ForumTag is a tag that can be applied to threads in a forum channel.
type ForumTag struct {
	ID        ID      `json:"id"`
	Name      string  `json:"name"`
	Moderated bool    `json:"moderated,omitempty"`
	EmojiID   *ID     `json:"emoji_id"`
	EmojiName *string `json:"emoji_name"`
}

// PermissionOverwrite is a channel-level permission override for a
// role or a member.
type PermissionOverwrite struct {
	ID    ID     `json:"id"`
	Type  int    `json:"type"`
	Allow string `json:"allow"`
	Deny  string `json:"deny"`
}

// Channel is any kind of channel.  Fields that only apply to some
// channel kinds are optional.
type Channel struct {
	ID                   ID                    `json:"id"`
	Type                 ChannelType           `json:"type"`
	GuildID              *ID                   `json:"guild_id,omitempty"`
	Name                 *string               `json:"name,omitempty"`
	Topic                *string               `json:"topic,omitempty"`
	Position             *int                  `json:"position,omitempty"`
	NSFW                 *bool                 `json:"nsfw,omitempty"`
	ParentID             *ID                   `json:"parent_id,omitempty"`
	RateLimitPerUser     *int                  `json:"rate_limit_per_user,omitempty"`
	Bitrate              *int                  `json:"bitrate,omitempty"`
	RTCRegion            *string               `json:"rtc_region,omitempty"`
	PermissionOverwrites []PermissionOverwrite `json:"permission_overwrites,omitempty"`

	// Forum-only fields.
	AvailableTags      []ForumTag `json:"available_tags,omitempty"`
	DefaultSortOrder   *int       `json:"default_sort_order,omitempty"`
	DefaultForumLayout *int       `json:"default_forum_layout,omitempty"`
}

// Guild is a guild (a server, roughly).
type Guild struct {
	ID          ID      `json:"id"`
	Name        string  `json:"name"`
	Icon        *string `json:"icon"`
	OwnerID     ID      `json:"owner_id"`
	MemberCount *int    `json:"member_count,omitempty"`
	Large       bool    `json:"large,omitempty"`
	Unavailable bool    `json:"unavailable,omitempty"`
}

// Member is a user's membership in a specific guild.
type Member struct {
	GuildID      ID         `json:"guild_id,omitempty"`
	User         User       `json:"user"`
	Nick         *string    `json:"nick"`
	Roles        []ID       `json:"roles"`
	JoinedAt     time.Time  `json:"joined_at"`
	PremiumSince *time.Time `json:"premium_since"`
	Pending      bool       `json:"pending,omitempty"`
	Mute         bool       `json:"mute,omitempty"`
	Deaf         bool       `json:"deaf,omitempty"`
}

// Role is a guild role.
type Role struct {
	ID          ID     `json:"id"`
	GuildID     ID     `json:"guild_id,omitempty"`
	Name        string `json:"name"`
	Color       int    `json:"color"`
	Hoist       bool   `json:"hoist"`
	Position    int    `json:"position"`
	Permissions string `json:"permissions"`
	Managed     bool   `json:"managed"`
	Mentionable bool   `json:"mentionable"`
}

// Attachment is a file attached to a message.
type Attachment struct {
	ID          ID      `json:"id"`
	Filename    string  `json:"filename"`
	Size        int     `json:"size"`
	URL         string  `json:"url"`
	ProxyURL    string  `json:"proxy_url"`
	ContentType *string `json:"content_type,omitempty"`
	Height      *int    `json:"height,omitempty"`
	Width       *int    `json:"width,omitempty"`
	Ephemeral   bool    `json:"ephemeral,omitempty"`
}

// Emoji is a custom emoji, owned either by a guild or by an
// application.
type Emoji struct {
	ID            *ID    `json:"id"`
	Name          *string `json:"name"`
	Roles         []ID   `json:"roles,omitempty"`
	User          *User  `json:"user,omitempty"`
	RequireColons bool   `json:"require_colons,omitempty"`
	Managed       bool   `json:"managed,omitempty"`
	Animated      bool   `json:"animated,omitempty"`
	Available     bool   `json:"available,omitempty"`
}

// Reaction summarizes reactions with one emoji on a message.
type Reaction struct {
	Count int   `json:"count"`
	Me    bool  `json:"me"`
	Emoji Emoji `json:"emoji"`
}

// Message is a message in a channel.
type Message struct {
	ID          ID           `json:"id"`
	ChannelID   ID           `json:"channel_id"`
	GuildID     *ID          `json:"guild_id,omitempty"`
	Author      User         `json:"author"`
	Content     string       `json:"content"`
	Timestamp   time.Time    `json:"timestamp"`
	EditedAt    *time.Time   `json:"edited_timestamp"`
	Attachments []Attachment `json:"attachments,omitempty"`
	Reactions   []Reaction   `json:"reactions,omitempty"`
	Pinned      bool         `json:"pinned,omitempty"`
	WebhookID   *ID          `json:"webhook_id,omitempty"`
}

// Sticker is a guild sticker.
type Sticker struct {
	ID          ID     `json:"id"`
	GuildID     ID     `json:"guild_id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Tags        string `json:"tags"`
	FormatType  int    `json:"format_type"`
	Available   bool   `json:"available,omitempty"`
}

// Activity is one activity inside a presence.
type Activity struct {
	Name string `json:"name"`
	Type int    `json:"type"`
	URL  *string `json:"url,omitempty"`
}

// Presence is a user's presence in a guild.
type Presence struct {
	User       User       `json:"user"`
	GuildID    ID         `json:"guild_id,omitempty"`
	Status     string     `json:"status"`
	Activities []Activity `json:"activities,omitempty"`
}

// VoiceState is a user's voice connection state in a guild.
type VoiceState struct {
	GuildID   ID   `json:"guild_id,omitempty"`
	ChannelID *ID  `json:"channel_id"`
	UserID    ID   `json:"user_id"`
	SessionID string `json:"session_id"`
	Deaf      bool `json:"deaf"`
	Mute      bool `json:"mute"`
	SelfDeaf  bool `json:"self_deaf"`
	SelfMute  bool `json:"self_mute"`
	Suppress  bool `json:"suppress"`
}

// Webhook is an inbound webhook attached to a channel.
type Webhook struct {
	ID        ID      `json:"id"`
	Type      int     `json:"type"`
	GuildID   *ID     `json:"guild_id,omitempty"`
	ChannelID ID      `json:"channel_id"`
	User      *User   `json:"user,omitempty"`
	Name      *string `json:"name"`
	Avatar    *string `json:"avatar"`
	Token     string  `json:"token,omitempty"`
}

// GuildTemplate is a reusable guild blueprint.
type GuildTemplate struct {
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	UsageCount  int       `json:"usage_count"`
	CreatorID   ID        `json:"creator_id"`
	Creator     User      `json:"creator"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	GuildID     ID        `json:"source_guild_id"`
	Dirty       *bool     `json:"is_dirty"`
}

// ScheduledEvent statuses.
const (
	EventScheduled = 1
	EventActive    = 2
	EventCompleted = 3
	EventCanceled  = 4
)

// ScheduledEvent is a guild scheduled event.
//
// Recurrence, when present, is a cron expression giving the
// recurrence schedule.  The hosted platform only sets it for
// recurring events.
type ScheduledEvent struct {
	ID          ID         `json:"id"`
	GuildID     ID         `json:"guild_id"`
	ChannelID   *ID        `json:"channel_id"`
	CreatorID   *ID        `json:"creator_id,omitempty"`
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	StartTime   time.Time  `json:"scheduled_start_time"`
	EndTime     *time.Time `json:"scheduled_end_time"`
	Status      int        `json:"status"`
	UserCount   *int       `json:"user_count,omitempty"`
	Recurrence  *string    `json:"recurrence,omitempty"`
}
