package entity

import (
	"context"
	"errors"

	"github.com/tandemchat/tandem-go/data"
	"github.com/tandemchat/tandem-go/request"
	"github.com/tandemchat/tandem-go/rest"
)

// ErrWrongChannelType marks an attempt to view a channel as a kind
// it isn't.
var ErrWrongChannelType = errors.New("wrong channel type")

// Channel wraps any channel snapshot.  Kind-specific behavior lives
// on ForumChannel and StageChannel; use AsForum/AsStage to get
// there.
type Channel struct {
	Data data.Channel

	rest *rest.Client
}

// NewChannel wraps a channel snapshot.
func NewChannel(client *rest.Client, d data.Channel) Channel {
	return Channel{Data: d, rest: client}
}

func (c Channel) Name() string {
	if c.Data.Name == nil {
		return ""
	}
	return *c.Data.Name
}

// Topic is the channel topic, or "" when none is set.
func (c Channel) Topic() string {
	if c.Data.Topic == nil {
		return ""
	}
	return *c.Data.Topic
}

// IsNSFW reports whether the channel is age-restricted.
func (c Channel) IsNSFW() bool {
	return c.Data.NSFW != nil && *c.Data.NSFW
}

// RateLimit is the per-user slowmode in seconds, 0 when off.
func (c Channel) RateLimit() int {
	if c.Data.RateLimitPerUser == nil {
		return 0
	}
	return *c.Data.RateLimitPerUser
}

// Mention renders the channel reference for message content.
func (c Channel) Mention() string {
	return "<#" + c.Data.ID.String() + ">"
}

// Refresh re-fetches the channel from the API.
func (c Channel) Refresh(ctx context.Context) (Channel, error) {
	d, err := c.rest.Channels.GetChannel(ctx, c.Data.ID)
	if err != nil {
		return c, err
	}
	return NewChannel(c.rest, *d), nil
}

// Delete removes the channel.
func (c Channel) Delete(ctx context.Context, reason string) error {
	return c.rest.Channels.DeleteChannel(ctx, c.Data.ID, reason)
}

// AsForum narrows to a forum channel.
func (c Channel) AsForum() (ForumChannel, error) {
	if c.Data.Type != data.ChannelTypeForum {
		return ForumChannel{}, ErrWrongChannelType
	}
	return ForumChannel{c}, nil
}

// AsStage narrows to a stage channel.
func (c Channel) AsStage() (StageChannel, error) {
	if c.Data.Type != data.ChannelTypeStage {
		return StageChannel{}, ErrWrongChannelType
	}
	return StageChannel{c}, nil
}

// ForumChannel is a channel holding tagged threads instead of
// messages.
type ForumChannel struct {
	Channel
}

func (c ForumChannel) AvailableTags() []data.ForumTag {
	return c.Data.AvailableTags
}

// FindTag looks a tag up by name.
func (c ForumChannel) FindTag(name string) (*data.ForumTag, bool) {
	for _, tag := range c.Data.AvailableTags {
		if tag.Name == name {
			return &tag, true
		}
	}
	return nil, false
}

// DefaultSortOrder is how threads are sorted, 0 when unset.
func (c ForumChannel) DefaultSortOrder() int {
	if c.Data.DefaultSortOrder == nil {
		return 0
	}
	return *c.Data.DefaultSortOrder
}

// DefaultForumLayout is how threads are presented, 0 when unset.
func (c ForumChannel) DefaultForumLayout() int {
	if c.Data.DefaultForumLayout == nil {
		return 0
	}
	return *c.Data.DefaultForumLayout
}

func (c ForumChannel) Edit(ctx context.Context, spec request.ForumChannelEdit) (ForumChannel, error) {
	updated, err := c.rest.Channels.ModifyChannel(ctx, c.Data.ID, spec.Request(), spec.Reason())
	if err != nil {
		return c, err
	}
	return ForumChannel{NewChannel(c.rest, *updated)}, nil
}

// StageChannel is a voice channel for broadcasts with speakers and
// an audience.
type StageChannel struct {
	Channel
}

func (c StageChannel) Bitrate() int {
	if c.Data.Bitrate == nil {
		return 0
	}
	return *c.Data.Bitrate
}

// RTCRegion is the voice region override, "" for automatic.
func (c StageChannel) RTCRegion() string {
	if c.Data.RTCRegion == nil {
		return ""
	}
	return *c.Data.RTCRegion
}

func (c StageChannel) Edit(ctx context.Context, spec request.StageChannelEdit) (StageChannel, error) {
	updated, err := c.rest.Channels.ModifyChannel(ctx, c.Data.ID, spec.Request(), spec.Reason())
	if err != nil {
		return c, err
	}
	return StageChannel{NewChannel(c.rest, *updated)}, nil
}
