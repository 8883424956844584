package entity

import (
	"context"
	"time"

	"github.com/tandemchat/tandem-go/data"
	"github.com/tandemchat/tandem-go/request"
	"github.com/tandemchat/tandem-go/rest"
)

// Member is a user's membership in one guild.
type Member struct {
	Data data.Member

	rest *rest.Client
}

// NewMember wraps a member snapshot.
func NewMember(client *rest.Client, d data.Member) Member {
	return Member{Data: d, rest: client}
}

// Nickname is the member's guild-specific name, or "" when none is
// set.
func (m Member) Nickname() string {
	if m.Data.Nick == nil {
		return ""
	}
	return *m.Data.Nick
}

// Roles is the member's role IDs.
func (m Member) Roles() []data.ID { return m.Data.Roles }

// JoinedAt is when the member joined the guild.
func (m Member) JoinedAt() time.Time { return m.Data.JoinedAt }

// PremiumSince returns when the member started boosting the guild
// and whether they are boosting at all.
func (m Member) PremiumSince() (time.Time, bool) {
	if m.Data.PremiumSince == nil {
		return time.Time{}, false
	}
	return *m.Data.PremiumSince, true
}

// IsPending reports whether the member still has to pass membership
// screening.
func (m Member) IsPending() bool { return m.Data.Pending }

// DisplayName is the nickname when one is set, the username
// otherwise.
func (m Member) DisplayName() string {
	if m.Data.Nick != nil && *m.Data.Nick != "" {
		return *m.Data.Nick
	}
	return m.Data.User.Username
}

// Mention renders the member reference for message content.
func (m Member) Mention() string {
	return "<@" + m.Data.User.ID.String() + ">"
}

// HasRole reports whether the member carries the role.
func (m Member) HasRole(roleID data.ID) bool {
	for _, id := range m.Data.Roles {
		if id == roleID {
			return true
		}
	}
	return false
}

// Edit applies the member edit and returns the updated entity.
func (m Member) Edit(ctx context.Context, spec request.GuildMemberEdit) (Member, error) {
	updated, err := m.rest.Guilds.ModifyGuildMember(ctx, m.Data.GuildID, m.Data.User.ID, spec.Request(), spec.Reason())
	if err != nil {
		return m, err
	}
	return NewMember(m.rest, *updated), nil
}

// Kick removes the member from the guild.
func (m Member) Kick(ctx context.Context, reason string) error {
	return m.rest.Guilds.KickGuildMember(ctx, m.Data.GuildID, m.Data.User.ID, reason)
}

// Ban bans the member, deleting their messages going back
// deleteMessageSeconds.
func (m Member) Ban(ctx context.Context, deleteMessageSeconds int, reason string) error {
	return m.rest.Guilds.BanGuildMember(ctx, m.Data.GuildID, m.Data.User.ID, deleteMessageSeconds, reason)
}

// AddRole grants the role to the member.
func (m Member) AddRole(ctx context.Context, roleID data.ID, reason string) error {
	return m.rest.Guilds.AddMemberRole(ctx, m.Data.GuildID, m.Data.User.ID, roleID, reason)
}

// RemoveRole takes the role away.
func (m Member) RemoveRole(ctx context.Context, roleID data.ID, reason string) error {
	return m.rest.Guilds.RemoveMemberRole(ctx, m.Data.GuildID, m.Data.User.ID, roleID, reason)
}

// Refresh re-fetches the member from the API.
func (m Member) Refresh(ctx context.Context) (Member, error) {
	updated, err := m.rest.Guilds.GetGuildMember(ctx, m.Data.GuildID, m.Data.User.ID)
	if err != nil {
		return m, err
	}
	return NewMember(m.rest, *updated), nil
}
