package entity

import (
	"context"
	"errors"

	"github.com/tandemchat/tandem-go/data"
	"github.com/tandemchat/tandem-go/request"
	"github.com/tandemchat/tandem-go/rest"
)

// ErrNoEmojiID marks an emoji with no platform ID, i.e. a plain
// unicode emoji.  Those have no image URL and can't be edited.
var ErrNoEmojiID = errors.New("emoji has no ID")

// ApplicationEmoji is a custom emoji owned by an application rather
// than a guild.
type ApplicationEmoji struct {
	Data  data.Emoji
	AppID data.ID

	rest *rest.Client
}

// NewApplicationEmoji wraps an emoji snapshot.
func NewApplicationEmoji(client *rest.Client, appID data.ID, d data.Emoji) ApplicationEmoji {
	return ApplicationEmoji{Data: d, AppID: appID, rest: client}
}

func (e ApplicationEmoji) Name() string {
	if e.Data.Name == nil {
		return ""
	}
	return *e.Data.Name
}

func (e ApplicationEmoji) RequiresColons() bool { return e.Data.RequireColons }

func (e ApplicationEmoji) Animated() bool { return e.Data.Animated }

func (e ApplicationEmoji) Managed() bool { return e.Data.Managed }

func (e ApplicationEmoji) Available() bool { return e.Data.Available }

// ImageURL is the CDN address of the emoji image, animated emojis
// being gifs and the rest png.
func (e ApplicationEmoji) ImageURL() (string, error) {
	if e.Data.ID == nil {
		return "", ErrNoEmojiID
	}
	ext := "png"
	if e.Data.Animated {
		ext = "gif"
	}
	return cdnURL("/emojis/%s.%s", *e.Data.ID, ext), nil
}

// GetUser fetches the user that uploaded the emoji.  Emoji payloads
// only sometimes carry the uploader, so this asks the API.
func (e ApplicationEmoji) GetUser(ctx context.Context) (*data.User, error) {
	if e.Data.User != nil {
		return e.Data.User, nil
	}
	if e.Data.ID == nil {
		return nil, ErrNoEmojiID
	}
	emojis, err := e.rest.Emojis.GetApplicationEmojis(ctx, e.AppID)
	if err != nil {
		return nil, err
	}
	for _, candidate := range emojis {
		if candidate.ID != nil && *candidate.ID == *e.Data.ID {
			return candidate.User, nil
		}
	}
	return nil, nil
}

// Edit renames the emoji and returns the updated entity.
func (e ApplicationEmoji) Edit(ctx context.Context, spec request.ApplicationEmojiEdit) (ApplicationEmoji, error) {
	if e.Data.ID == nil {
		return e, ErrNoEmojiID
	}
	updated, err := e.rest.Emojis.ModifyApplicationEmoji(ctx, e.AppID, *e.Data.ID, spec.Request())
	if err != nil {
		return e, err
	}
	return NewApplicationEmoji(e.rest, e.AppID, *updated), nil
}

// Delete removes the emoji.
func (e ApplicationEmoji) Delete(ctx context.Context) error {
	if e.Data.ID == nil {
		return ErrNoEmojiID
	}
	return e.rest.Emojis.DeleteApplicationEmoji(ctx, e.AppID, *e.Data.ID)
}

// GuildEmoji is a custom emoji belonging to a guild.
type GuildEmoji struct {
	Data    data.Emoji
	GuildID data.ID

	rest *rest.Client
}

// NewGuildEmoji wraps an emoji snapshot.
func NewGuildEmoji(client *rest.Client, guildID data.ID, d data.Emoji) GuildEmoji {
	return GuildEmoji{Data: d, GuildID: guildID, rest: client}
}

func (e GuildEmoji) Name() string {
	if e.Data.Name == nil {
		return ""
	}
	return *e.Data.Name
}

func (e GuildEmoji) RequiresColons() bool { return e.Data.RequireColons }

func (e GuildEmoji) Animated() bool { return e.Data.Animated }

func (e GuildEmoji) Managed() bool { return e.Data.Managed }

func (e GuildEmoji) Available() bool { return e.Data.Available }

// Roles is the set of roles allowed to use the emoji.  Empty means
// everyone.
func (e GuildEmoji) Roles() []data.ID { return e.Data.Roles }

// Format renders the emoji the way message content wants it.
func (e GuildEmoji) Format() string {
	if e.Data.ID == nil {
		return e.Name()
	}
	if e.Data.Animated {
		return "<a:" + e.Name() + ":" + (*e.Data.ID).String() + ">"
	}
	return "<:" + e.Name() + ":" + (*e.Data.ID).String() + ">"
}

func (e GuildEmoji) Edit(ctx context.Context, spec request.GuildEmojiEdit) (GuildEmoji, error) {
	if e.Data.ID == nil {
		return e, ErrNoEmojiID
	}
	updated, err := e.rest.Emojis.ModifyGuildEmoji(ctx, e.GuildID, *e.Data.ID, spec.Request(), spec.Reason())
	if err != nil {
		return e, err
	}
	return NewGuildEmoji(e.rest, e.GuildID, *updated), nil
}

func (e GuildEmoji) Delete(ctx context.Context, reason string) error {
	if e.Data.ID == nil {
		return ErrNoEmojiID
	}
	return e.rest.Emojis.DeleteGuildEmoji(ctx, e.GuildID, *e.Data.ID, reason)
}
