package entity

import (
	"context"

	"github.com/tandemchat/tandem-go/data"
	"github.com/tandemchat/tandem-go/request"
	"github.com/tandemchat/tandem-go/rest"
)

// Webhook posts messages into a channel without a bot user.
type Webhook struct {
	Data data.Webhook

	rest *rest.Client
}

// NewWebhook wraps a webhook snapshot.
func NewWebhook(client *rest.Client, d data.Webhook) Webhook {
	return Webhook{Data: d, rest: client}
}

func (w Webhook) Name() string {
	if w.Data.Name == nil {
		return ""
	}
	return *w.Data.Name
}

// ChannelID is the channel the webhook posts into.
func (w Webhook) ChannelID() data.ID { return w.Data.ChannelID }

// GuildID returns the owning guild, when the snapshot carries one.
func (w Webhook) GuildID() (data.ID, bool) {
	if w.Data.GuildID == nil {
		return 0, false
	}
	return *w.Data.GuildID, true
}

// Token is the webhook's secret token, "" unless the snapshot came
// from an endpoint that returns it.
func (w Webhook) Token() string { return w.Data.Token }

// AvatarURL is the CDN address of the webhook's avatar, "" when the
// webhook has none.
func (w Webhook) AvatarURL() string {
	if w.Data.Avatar == nil {
		return ""
	}
	return cdnURL("/avatars/%s/%s.png", w.Data.ID, *w.Data.Avatar)
}

func (w Webhook) Edit(ctx context.Context, spec request.WebhookEdit) (Webhook, error) {
	updated, err := w.rest.Webhooks.ModifyWebhook(ctx, w.Data.ID, spec.Request(), spec.Reason())
	if err != nil {
		return w, err
	}
	return NewWebhook(w.rest, *updated), nil
}

func (w Webhook) Delete(ctx context.Context, reason string) error {
	return w.rest.Webhooks.DeleteWebhook(ctx, w.Data.ID, reason)
}

// Execute posts a message through the webhook.  Only works when the
// snapshot carries the webhook's token.
func (w Webhook) Execute(ctx context.Context, content string) (Message, error) {
	m, err := w.rest.Webhooks.ExecuteWebhook(ctx, w.Data.ID, w.Data.Token, rest.Payload{"content": content})
	if err != nil {
		return Message{}, err
	}
	return NewMessage(w.rest, *m), nil
}

// GuildTemplate is a reusable guild blueprint.
type GuildTemplate struct {
	Data data.GuildTemplate

	rest *rest.Client
}

// NewGuildTemplate wraps a template snapshot.
func NewGuildTemplate(client *rest.Client, d data.GuildTemplate) GuildTemplate {
	return GuildTemplate{Data: d, rest: client}
}

func (t GuildTemplate) Code() string { return t.Data.Code }

func (t GuildTemplate) Name() string { return t.Data.Name }

func (t GuildTemplate) Description() string {
	if t.Data.Description == nil {
		return ""
	}
	return *t.Data.Description
}

// UsageCount is how many guilds were created from the template.
func (t GuildTemplate) UsageCount() int { return t.Data.UsageCount }

// Creator is the user that made the template.
func (t GuildTemplate) Creator() data.User { return t.Data.Creator }

func (t GuildTemplate) Edit(ctx context.Context, spec request.GuildTemplateEdit) (GuildTemplate, error) {
	updated, err := t.rest.Guilds.ModifyGuildTemplate(ctx, t.Data.GuildID, t.Data.Code, spec.Request())
	if err != nil {
		return t, err
	}
	return NewGuildTemplate(t.rest, *updated), nil
}

// Sync updates the template to the guild's current state.
func (t GuildTemplate) Sync(ctx context.Context) (GuildTemplate, error) {
	updated, err := t.rest.Guilds.SyncGuildTemplate(ctx, t.Data.GuildID, t.Data.Code)
	if err != nil {
		return t, err
	}
	return NewGuildTemplate(t.rest, *updated), nil
}

func (t GuildTemplate) Delete(ctx context.Context) error {
	return t.rest.Guilds.DeleteGuildTemplate(ctx, t.Data.GuildID, t.Data.Code)
}

// Sticker is a guild sticker.
type Sticker struct {
	Data data.Sticker

	rest *rest.Client
}

// NewSticker wraps a sticker snapshot.
func NewSticker(client *rest.Client, d data.Sticker) Sticker {
	return Sticker{Data: d, rest: client}
}

func (s Sticker) Name() string { return s.Data.Name }

func (s Sticker) Description() string { return s.Data.Description }

// Tags is the sticker's comma-separated autocomplete tags.
func (s Sticker) Tags() string { return s.Data.Tags }

func (s Sticker) FormatType() int { return s.Data.FormatType }

func (s Sticker) Edit(ctx context.Context, spec request.GuildStickerEdit) (Sticker, error) {
	updated, err := s.rest.Guilds.ModifyGuildSticker(ctx, s.Data.GuildID, s.Data.ID, spec.Request(), spec.Reason())
	if err != nil {
		return s, err
	}
	return NewSticker(s.rest, *updated), nil
}

func (s Sticker) Delete(ctx context.Context, reason string) error {
	return s.rest.Guilds.DeleteGuildSticker(ctx, s.Data.GuildID, s.Data.ID, reason)
}
