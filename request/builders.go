package request

import "github.com/tandemchat/tandem-go/data"

// WebhookEdit edits a webhook's name, avatar, or channel.
type WebhookEdit struct {
	f      fields
	reason string
}

func (b WebhookEdit) WithName(name string) WebhookEdit {
	b.f = b.f.with("name", name)
	return b
}

// WithAvatar sets the avatar image data.
func (b WebhookEdit) WithAvatar(image string) WebhookEdit {
	b.f = b.f.with("avatar", image)
	return b
}

// ClearAvatar removes the avatar.
func (b WebhookEdit) ClearAvatar() WebhookEdit {
	b.f = b.f.with("avatar", nil)
	return b
}

func (b WebhookEdit) WithChannel(channelID data.ID) WebhookEdit {
	b.f = b.f.with("channel_id", channelID)
	return b
}

func (b WebhookEdit) WithReason(reason string) WebhookEdit {
	b.reason = reason
	return b
}

func (b WebhookEdit) Reason() string { return b.reason }

func (b WebhookEdit) Request() map[string]interface{} { return b.f.request() }

// GuildMemberEdit edits a member: move, mute, deafen, nickname,
// roles.
type GuildMemberEdit struct {
	f      fields
	reason string
}

// WithVoiceChannel moves the member to another voice channel.
func (b GuildMemberEdit) WithVoiceChannel(channelID data.ID) GuildMemberEdit {
	b.f = b.f.with("channel_id", channelID)
	return b
}

// DisconnectVoice kicks the member out of voice entirely.
func (b GuildMemberEdit) DisconnectVoice() GuildMemberEdit {
	b.f = b.f.with("channel_id", nil)
	return b
}

func (b GuildMemberEdit) WithMute(mute bool) GuildMemberEdit {
	b.f = b.f.with("mute", mute)
	return b
}

func (b GuildMemberEdit) WithDeafen(deaf bool) GuildMemberEdit {
	b.f = b.f.with("deaf", deaf)
	return b
}

func (b GuildMemberEdit) WithNickname(nick string) GuildMemberEdit {
	b.f = b.f.with("nick", nick)
	return b
}

// ClearNickname resets the nickname to the username.
func (b GuildMemberEdit) ClearNickname() GuildMemberEdit {
	b.f = b.f.with("nick", nil)
	return b
}

func (b GuildMemberEdit) WithRoles(roles []data.ID) GuildMemberEdit {
	b.f = b.f.with("roles", roles)
	return b
}

func (b GuildMemberEdit) WithReason(reason string) GuildMemberEdit {
	b.reason = reason
	return b
}

func (b GuildMemberEdit) Reason() string { return b.reason }

func (b GuildMemberEdit) Request() map[string]interface{} { return b.f.request() }

// StageChannelEdit edits a stage channel.
type StageChannelEdit struct {
	f      fields
	reason string
}

func (b StageChannelEdit) WithName(name string) StageChannelEdit {
	b.f = b.f.with("name", name)
	return b
}

func (b StageChannelEdit) WithPosition(position int) StageChannelEdit {
	b.f = b.f.with("position", position)
	return b
}

func (b StageChannelEdit) WithBitrate(bitrate int) StageChannelEdit {
	b.f = b.f.with("bitrate", bitrate)
	return b
}

func (b StageChannelEdit) WithRTCRegion(region string) StageChannelEdit {
	b.f = b.f.with("rtc_region", region)
	return b
}

// ClearRTCRegion goes back to automatic voice region selection.
func (b StageChannelEdit) ClearRTCRegion() StageChannelEdit {
	b.f = b.f.with("rtc_region", nil)
	return b
}

func (b StageChannelEdit) WithParent(categoryID data.ID) StageChannelEdit {
	b.f = b.f.with("parent_id", categoryID)
	return b
}

// ClearParent moves the channel out of its category.
func (b StageChannelEdit) ClearParent() StageChannelEdit {
	b.f = b.f.with("parent_id", nil)
	return b
}

func (b StageChannelEdit) WithPermissionOverwrites(overwrites []data.PermissionOverwrite) StageChannelEdit {
	b.f = b.f.with("permission_overwrites", overwrites)
	return b
}

func (b StageChannelEdit) WithReason(reason string) StageChannelEdit {
	b.reason = reason
	return b
}

func (b StageChannelEdit) Reason() string { return b.reason }

func (b StageChannelEdit) Request() map[string]interface{} { return b.f.request() }

// ForumChannelEdit edits a forum channel.
type ForumChannelEdit struct {
	f      fields
	reason string
}

func (b ForumChannelEdit) WithName(name string) ForumChannelEdit {
	b.f = b.f.with("name", name)
	return b
}

// WithTopic sets the posting guidelines.
func (b ForumChannelEdit) WithTopic(topic string) ForumChannelEdit {
	b.f = b.f.with("topic", topic)
	return b
}

func (b ForumChannelEdit) WithNSFW(nsfw bool) ForumChannelEdit {
	b.f = b.f.with("nsfw", nsfw)
	return b
}

// WithRateLimitPerUser sets the per-user slowmode in seconds.
func (b ForumChannelEdit) WithRateLimitPerUser(seconds int) ForumChannelEdit {
	b.f = b.f.with("rate_limit_per_user", seconds)
	return b
}

func (b ForumChannelEdit) WithAvailableTags(tags []data.ForumTag) ForumChannelEdit {
	b.f = b.f.with("available_tags", tags)
	return b
}

func (b ForumChannelEdit) WithDefaultSortOrder(order int) ForumChannelEdit {
	b.f = b.f.with("default_sort_order", order)
	return b
}

func (b ForumChannelEdit) WithDefaultForumLayout(layout int) ForumChannelEdit {
	b.f = b.f.with("default_forum_layout", layout)
	return b
}

func (b ForumChannelEdit) WithReason(reason string) ForumChannelEdit {
	b.reason = reason
	return b
}

func (b ForumChannelEdit) Reason() string { return b.reason }

func (b ForumChannelEdit) Request() map[string]interface{} { return b.f.request() }

// GuildTemplateEdit edits a guild template.
type GuildTemplateEdit struct {
	f fields
}

func (b GuildTemplateEdit) WithName(name string) GuildTemplateEdit {
	b.f = b.f.with("name", name)
	return b
}

func (b GuildTemplateEdit) WithDescription(description string) GuildTemplateEdit {
	b.f = b.f.with("description", description)
	return b
}

// ClearDescription removes the description.
func (b GuildTemplateEdit) ClearDescription() GuildTemplateEdit {
	b.f = b.f.with("description", nil)
	return b
}

func (b GuildTemplateEdit) Request() map[string]interface{} { return b.f.request() }

// GuildStickerCreate uploads a new guild sticker.
type GuildStickerCreate struct {
	f      fields
	reason string
}

func (b GuildStickerCreate) WithName(name string) GuildStickerCreate {
	b.f = b.f.with("name", name)
	return b
}

func (b GuildStickerCreate) WithDescription(description string) GuildStickerCreate {
	b.f = b.f.with("description", description)
	return b
}

func (b GuildStickerCreate) WithTags(tags string) GuildStickerCreate {
	b.f = b.f.with("tags", tags)
	return b
}

// WithFile attaches the sticker image data.
func (b GuildStickerCreate) WithFile(contents string) GuildStickerCreate {
	b.f = b.f.with("file", contents)
	return b
}

func (b GuildStickerCreate) WithReason(reason string) GuildStickerCreate {
	b.reason = reason
	return b
}

func (b GuildStickerCreate) Reason() string { return b.reason }

func (b GuildStickerCreate) Request() map[string]interface{} { return b.f.request() }

// GuildStickerEdit edits an existing guild sticker.
type GuildStickerEdit struct {
	f      fields
	reason string
}

func (b GuildStickerEdit) WithName(name string) GuildStickerEdit {
	b.f = b.f.with("name", name)
	return b
}

func (b GuildStickerEdit) WithDescription(description string) GuildStickerEdit {
	b.f = b.f.with("description", description)
	return b
}

// ClearDescription removes the description.
func (b GuildStickerEdit) ClearDescription() GuildStickerEdit {
	b.f = b.f.with("description", nil)
	return b
}

func (b GuildStickerEdit) WithTags(tags string) GuildStickerEdit {
	b.f = b.f.with("tags", tags)
	return b
}

func (b GuildStickerEdit) WithReason(reason string) GuildStickerEdit {
	b.reason = reason
	return b
}

func (b GuildStickerEdit) Reason() string { return b.reason }

func (b GuildStickerEdit) Request() map[string]interface{} { return b.f.request() }

// ApplicationEmojiEdit renames an application-owned emoji, the only
// thing the API lets you change about one.
type ApplicationEmojiEdit struct {
	f fields
}

func (b ApplicationEmojiEdit) WithName(name string) ApplicationEmojiEdit {
	b.f = b.f.with("name", name)
	return b
}

func (b ApplicationEmojiEdit) Request() map[string]interface{} { return b.f.request() }

// GuildEmojiEdit edits a guild emoji.
type GuildEmojiEdit struct {
	f      fields
	reason string
}

func (b GuildEmojiEdit) WithName(name string) GuildEmojiEdit {
	b.f = b.f.with("name", name)
	return b
}

func (b GuildEmojiEdit) WithRoles(roles []data.ID) GuildEmojiEdit {
	b.f = b.f.with("roles", roles)
	return b
}

func (b GuildEmojiEdit) WithReason(reason string) GuildEmojiEdit {
	b.reason = reason
	return b
}

func (b GuildEmojiEdit) Reason() string { return b.reason }

func (b GuildEmojiEdit) Request() map[string]interface{} { return b.f.request() }
