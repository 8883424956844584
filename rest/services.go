package rest

import (
	"context"
	"fmt"

	"github.com/tandemchat/tandem-go/data"
)

// Payload is a request body.  Keys present in the map are sent;
// a key holding nil is sent as JSON null, which the API reads as
// "clear this field".
type Payload = map[string]interface{}

// ChannelService covers the channel and message endpoints.
type ChannelService struct {
	c *Client
}

func (s *ChannelService) GetChannel(ctx context.Context, channelID data.ID) (*data.Channel, error) {
	var ch data.Channel
	if err := s.c.get(ctx, fmt.Sprintf("/channels/%s", channelID), &ch); err != nil {
		return nil, err
	}
	return &ch, nil
}

func (s *ChannelService) ModifyChannel(ctx context.Context, channelID data.ID, body Payload, reason string) (*data.Channel, error) {
	var ch data.Channel
	if err := s.c.patch(ctx, fmt.Sprintf("/channels/%s", channelID), reason, body, &ch); err != nil {
		return nil, err
	}
	return &ch, nil
}

func (s *ChannelService) DeleteChannel(ctx context.Context, channelID data.ID, reason string) error {
	return s.c.delete(ctx, fmt.Sprintf("/channels/%s", channelID), reason)
}

func (s *ChannelService) GetMessage(ctx context.Context, channelID, messageID data.ID) (*data.Message, error) {
	var m data.Message
	if err := s.c.get(ctx, fmt.Sprintf("/channels/%s/messages/%s", channelID, messageID), &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *ChannelService) CreateMessage(ctx context.Context, channelID data.ID, body Payload) (*data.Message, error) {
	var m data.Message
	if err := s.c.post(ctx, fmt.Sprintf("/channels/%s/messages", channelID), "", body, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *ChannelService) EditMessage(ctx context.Context, channelID, messageID data.ID, body Payload) (*data.Message, error) {
	var m data.Message
	if err := s.c.patch(ctx, fmt.Sprintf("/channels/%s/messages/%s", channelID, messageID), "", body, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *ChannelService) DeleteMessage(ctx context.Context, channelID, messageID data.ID, reason string) error {
	return s.c.delete(ctx, fmt.Sprintf("/channels/%s/messages/%s", channelID, messageID), reason)
}

// GuildService covers guilds and their members, roles, templates,
// stickers, and scheduled events.
type GuildService struct {
	c *Client
}

func (s *GuildService) GetGuild(ctx context.Context, guildID data.ID) (*data.Guild, error) {
	var g data.Guild
	if err := s.c.get(ctx, fmt.Sprintf("/guilds/%s", guildID), &g); err != nil {
		return nil, err
	}
	return &g, nil
}

func (s *GuildService) GetGuildMember(ctx context.Context, guildID, userID data.ID) (*data.Member, error) {
	var m data.Member
	if err := s.c.get(ctx, fmt.Sprintf("/guilds/%s/members/%s", guildID, userID), &m); err != nil {
		return nil, err
	}
	m.GuildID = guildID
	return &m, nil
}

// ListGuildMembers pages through the member list.  Pass limit 0 for
// the server default and after 0 to start from the beginning.
func (s *GuildService) ListGuildMembers(ctx context.Context, guildID data.ID, limit int, after data.ID) ([]data.Member, error) {
	path := fmt.Sprintf("/guilds/%s/members", guildID)
	sep := "?"
	if limit > 0 {
		path += fmt.Sprintf("%slimit=%d", sep, limit)
		sep = "&"
	}
	if after != 0 {
		path += fmt.Sprintf("%safter=%s", sep, after)
	}
	var ms []data.Member
	if err := s.c.get(ctx, path, &ms); err != nil {
		return nil, err
	}
	for i := range ms {
		ms[i].GuildID = guildID
	}
	return ms, nil
}

func (s *GuildService) ModifyGuildMember(ctx context.Context, guildID, userID data.ID, body Payload, reason string) (*data.Member, error) {
	var m data.Member
	if err := s.c.patch(ctx, fmt.Sprintf("/guilds/%s/members/%s", guildID, userID), reason, body, &m); err != nil {
		return nil, err
	}
	m.GuildID = guildID
	return &m, nil
}

func (s *GuildService) KickGuildMember(ctx context.Context, guildID, userID data.ID, reason string) error {
	return s.c.delete(ctx, fmt.Sprintf("/guilds/%s/members/%s", guildID, userID), reason)
}

// BanGuildMember bans a user and deletes their recent messages going
// back deleteMessageSeconds.
func (s *GuildService) BanGuildMember(ctx context.Context, guildID, userID data.ID, deleteMessageSeconds int, reason string) error {
	body := Payload{}
	if deleteMessageSeconds > 0 {
		body["delete_message_seconds"] = deleteMessageSeconds
	}
	return s.c.do(ctx, "PUT", fmt.Sprintf("/guilds/%s/bans/%s", guildID, userID), reason, body, nil)
}

func (s *GuildService) UnbanGuildMember(ctx context.Context, guildID, userID data.ID, reason string) error {
	return s.c.delete(ctx, fmt.Sprintf("/guilds/%s/bans/%s", guildID, userID), reason)
}

func (s *GuildService) AddMemberRole(ctx context.Context, guildID, userID, roleID data.ID, reason string) error {
	return s.c.do(ctx, "PUT", fmt.Sprintf("/guilds/%s/members/%s/roles/%s", guildID, userID, roleID), reason, nil, nil)
}

func (s *GuildService) RemoveMemberRole(ctx context.Context, guildID, userID, roleID data.ID, reason string) error {
	return s.c.delete(ctx, fmt.Sprintf("/guilds/%s/members/%s/roles/%s", guildID, userID, roleID), reason)
}

func (s *GuildService) GetGuildTemplates(ctx context.Context, guildID data.ID) ([]data.GuildTemplate, error) {
	var ts []data.GuildTemplate
	if err := s.c.get(ctx, fmt.Sprintf("/guilds/%s/templates", guildID), &ts); err != nil {
		return nil, err
	}
	return ts, nil
}

func (s *GuildService) ModifyGuildTemplate(ctx context.Context, guildID data.ID, code string, body Payload) (*data.GuildTemplate, error) {
	var t data.GuildTemplate
	if err := s.c.patch(ctx, fmt.Sprintf("/guilds/%s/templates/%s", guildID, code), "", body, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *GuildService) DeleteGuildTemplate(ctx context.Context, guildID data.ID, code string) error {
	return s.c.delete(ctx, fmt.Sprintf("/guilds/%s/templates/%s", guildID, code), "")
}

func (s *GuildService) SyncGuildTemplate(ctx context.Context, guildID data.ID, code string) (*data.GuildTemplate, error) {
	var t data.GuildTemplate
	if err := s.c.do(ctx, "PUT", fmt.Sprintf("/guilds/%s/templates/%s", guildID, code), "", nil, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *GuildService) CreateGuildSticker(ctx context.Context, guildID data.ID, body Payload, reason string) (*data.Sticker, error) {
	var st data.Sticker
	if err := s.c.post(ctx, fmt.Sprintf("/guilds/%s/stickers", guildID), reason, body, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *GuildService) ModifyGuildSticker(ctx context.Context, guildID, stickerID data.ID, body Payload, reason string) (*data.Sticker, error) {
	var st data.Sticker
	if err := s.c.patch(ctx, fmt.Sprintf("/guilds/%s/stickers/%s", guildID, stickerID), reason, body, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *GuildService) DeleteGuildSticker(ctx context.Context, guildID, stickerID data.ID, reason string) error {
	return s.c.delete(ctx, fmt.Sprintf("/guilds/%s/stickers/%s", guildID, stickerID), reason)
}

func (s *GuildService) GetScheduledEvents(ctx context.Context, guildID data.ID) ([]data.ScheduledEvent, error) {
	var evs []data.ScheduledEvent
	if err := s.c.get(ctx, fmt.Sprintf("/guilds/%s/scheduled-events", guildID), &evs); err != nil {
		return nil, err
	}
	return evs, nil
}

func (s *GuildService) CreateScheduledEvent(ctx context.Context, guildID data.ID, body Payload, reason string) (*data.ScheduledEvent, error) {
	var ev data.ScheduledEvent
	if err := s.c.post(ctx, fmt.Sprintf("/guilds/%s/scheduled-events", guildID), reason, body, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}

func (s *GuildService) ModifyScheduledEvent(ctx context.Context, guildID, eventID data.ID, body Payload, reason string) (*data.ScheduledEvent, error) {
	var ev data.ScheduledEvent
	if err := s.c.patch(ctx, fmt.Sprintf("/guilds/%s/scheduled-events/%s", guildID, eventID), reason, body, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}

func (s *GuildService) DeleteScheduledEvent(ctx context.Context, guildID, eventID data.ID, reason string) error {
	return s.c.delete(ctx, fmt.Sprintf("/guilds/%s/scheduled-events/%s", guildID, eventID), reason)
}

func (s *GuildService) GetScheduledEventUsers(ctx context.Context, guildID, eventID data.ID) ([]data.ScheduledEventUser, error) {
	var us []data.ScheduledEventUser
	if err := s.c.get(ctx, fmt.Sprintf("/guilds/%s/scheduled-events/%s/users", guildID, eventID), &us); err != nil {
		return nil, err
	}
	return us, nil
}

// EmojiService covers guild emojis and application-owned emojis.
type EmojiService struct {
	c *Client
}

func (s *EmojiService) GetGuildEmojis(ctx context.Context, guildID data.ID) ([]data.Emoji, error) {
	var es []data.Emoji
	if err := s.c.get(ctx, fmt.Sprintf("/guilds/%s/emojis", guildID), &es); err != nil {
		return nil, err
	}
	return es, nil
}

func (s *EmojiService) ModifyGuildEmoji(ctx context.Context, guildID, emojiID data.ID, body Payload, reason string) (*data.Emoji, error) {
	var e data.Emoji
	if err := s.c.patch(ctx, fmt.Sprintf("/guilds/%s/emojis/%s", guildID, emojiID), reason, body, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *EmojiService) DeleteGuildEmoji(ctx context.Context, guildID, emojiID data.ID, reason string) error {
	return s.c.delete(ctx, fmt.Sprintf("/guilds/%s/emojis/%s", guildID, emojiID), reason)
}

func (s *EmojiService) GetApplicationEmojis(ctx context.Context, appID data.ID) ([]data.Emoji, error) {
	// The list endpoint wraps its items.
	var wrapper struct {
		Items []data.Emoji `json:"items"`
	}
	if err := s.c.get(ctx, fmt.Sprintf("/applications/%s/emojis", appID), &wrapper); err != nil {
		return nil, err
	}
	return wrapper.Items, nil
}

func (s *EmojiService) CreateApplicationEmoji(ctx context.Context, appID data.ID, body Payload) (*data.Emoji, error) {
	var e data.Emoji
	if err := s.c.post(ctx, fmt.Sprintf("/applications/%s/emojis", appID), "", body, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *EmojiService) ModifyApplicationEmoji(ctx context.Context, appID, emojiID data.ID, body Payload) (*data.Emoji, error) {
	var e data.Emoji
	if err := s.c.patch(ctx, fmt.Sprintf("/applications/%s/emojis/%s", appID, emojiID), "", body, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *EmojiService) DeleteApplicationEmoji(ctx context.Context, appID, emojiID data.ID) error {
	return s.c.delete(ctx, fmt.Sprintf("/applications/%s/emojis/%s", appID, emojiID), "")
}

// WebhookService covers webhook management.
type WebhookService struct {
	c *Client
}

func (s *WebhookService) CreateWebhook(ctx context.Context, channelID data.ID, body Payload, reason string) (*data.Webhook, error) {
	var w data.Webhook
	if err := s.c.post(ctx, fmt.Sprintf("/channels/%s/webhooks", channelID), reason, body, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

func (s *WebhookService) GetChannelWebhooks(ctx context.Context, channelID data.ID) ([]data.Webhook, error) {
	var ws []data.Webhook
	if err := s.c.get(ctx, fmt.Sprintf("/channels/%s/webhooks", channelID), &ws); err != nil {
		return nil, err
	}
	return ws, nil
}

func (s *WebhookService) GetGuildWebhooks(ctx context.Context, guildID data.ID) ([]data.Webhook, error) {
	var ws []data.Webhook
	if err := s.c.get(ctx, fmt.Sprintf("/guilds/%s/webhooks", guildID), &ws); err != nil {
		return nil, err
	}
	return ws, nil
}

func (s *WebhookService) GetWebhook(ctx context.Context, webhookID data.ID) (*data.Webhook, error) {
	var w data.Webhook
	if err := s.c.get(ctx, fmt.Sprintf("/webhooks/%s", webhookID), &w); err != nil {
		return nil, err
	}
	return &w, nil
}

func (s *WebhookService) ModifyWebhook(ctx context.Context, webhookID data.ID, body Payload, reason string) (*data.Webhook, error) {
	var w data.Webhook
	if err := s.c.patch(ctx, fmt.Sprintf("/webhooks/%s", webhookID), reason, body, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

func (s *WebhookService) DeleteWebhook(ctx context.Context, webhookID data.ID, reason string) error {
	return s.c.delete(ctx, fmt.Sprintf("/webhooks/%s", webhookID), reason)
}

// ExecuteWebhook posts a message through a webhook.  The token
// authenticates instead of the bot token, so anyone holding it can
// post.  The created message comes back.
func (s *WebhookService) ExecuteWebhook(ctx context.Context, webhookID data.ID, token string, body Payload) (*data.Message, error) {
	var m data.Message
	if err := s.c.post(ctx, fmt.Sprintf("/webhooks/%s/%s?wait=true", webhookID, token), "", body, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// UserService covers the user endpoints.
type UserService struct {
	c *Client
}

func (s *UserService) GetUser(ctx context.Context, userID data.ID) (*data.User, error) {
	var u data.User
	if err := s.c.get(ctx, fmt.Sprintf("/users/%s", userID), &u); err != nil {
		return nil, err
	}
	return &u, nil
}
