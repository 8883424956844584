// Package store routes typed actions to the handlers of a
// caller-supplied layout.
//
// A Store is a facade over a single ActionMapper.  Every operation on
// cached platform data -- reading it, or updating it when a gateway
// event arrives -- is described by an Action value passed to
// Store.Execute.  The action's concrete type picks the handler; the
// action's fields carry everything the handler needs.
//
// The registry is built once, from a Layout, and never changes.  The
// Store does no I/O, no buffering, and no synchronization of its own:
// handlers get the caller's context and do whatever they do.
//
// Dispatch is permissive by default.  Executing an action type nobody
// registered is not an error; it just produces nothing.  That is what
// makes capability flags workable: disabling the member family
// removes every member handler, and member actions quietly no-op
// instead of failing.  Callers who would rather hear about it can
// build the store with Strict().
package store

import "context"

// Store executes actions against the layout it was built from.
type Store struct {
	mapper *ActionMapper
	strict bool
}

var noOp = &Store{mapper: EmptyMapper()}

// NoOp returns the Store that ignores every action.
func NoOp() *Store {
	return noOp
}

// Option tweaks Store construction.
type Option func(*Store)

// Strict makes Execute return ErrUnsupportedAction for action types
// with no registered handler, instead of the default silent empty
// result.
func Strict() Option {
	return func(s *Store) {
		s.strict = true
	}
}

// FromMapper wraps a prebuilt mapper in a Store.  Useful for stores
// of purely custom actions.
func FromMapper(m *ActionMapper, opts ...Option) *Store {
	if m == nil {
		m = EmptyMapper()
	}
	s := &Store{mapper: m}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FromLayout builds a Store handling actions according to the given
// layout: reads go to the layout's DataAccessor, gateway events to
// its GatewayUpdater, and the layout's custom mapper covers anything
// user-defined.  Registration is gated by the layout's enabled flags.
func FromLayout(layout Layout, opts ...Option) *Store {
	return FromMapper(layoutMapper(layout), opts...)
}

// FromLayouts builds a Store merging several layouts.  When more than
// one layout registers the same action type, the earliest layout (in
// argument order) wins.  That lets a sparse custom layout sit in
// front of a complete default one.
func FromLayouts(layouts []Layout, opts ...Option) *Store {
	mappers := make([]*ActionMapper, len(layouts))
	for i, layout := range layouts {
		mappers[i] = layoutMapper(layout)
	}
	return FromMapper(MergeFirst(mappers...), opts...)
}

// Execute routes the action by its concrete type.
//
// If a handler is registered, Execute returns whatever the handler
// returns, errors included and untranslated.  If no handler is
// registered, Execute returns (nil, nil) -- or ErrUnsupportedAction
// under Strict().  Nothing happens before Execute is called: the
// action value itself is inert.
func (s *Store) Execute(ctx context.Context, action Action) (interface{}, error) {
	h, have := s.mapper.HandlerFor(action)
	if !have {
		if s.strict {
			return nil, ErrUnsupportedAction
		}
		return nil, nil
	}
	return h(ctx, action)
}

// Mapper exposes the composed registry, mostly for tests and tools.
func (s *Store) Mapper() *ActionMapper {
	return s.mapper
}

func layoutMapper(layout Layout) *ActionMapper {
	enabled := layout.EnabledFlags()
	return Aggregate(
		accessorMapper(layout.Accessor(), enabled),
		updaterMapper(layout.Updater(), enabled),
		layout.CustomMapper(),
	)
}

// accessorMapper registers the read actions that the enabled flags
// allow.  The generic CountTotal/CountInGuild forms are only hooked
// up when everything is enabled, so flag gating stays per-family.
func accessorMapper(acc DataAccessor, enabled Flag) *ActionMapper {
	if acc == nil {
		panic("store: layout has nil DataAccessor")
	}

	b := NewMapperBuilder()

	if enabled == AllFlags {
		b.Map(CountInGuild{}, func(ctx context.Context, action Action) (interface{}, error) {
			a := action.(CountInGuild)
			switch a.Kind {
			case KindChannels:
				return acc.CountChannelsInGuild(ctx, a.GuildID)
			case KindStickers:
				return acc.CountStickersInGuild(ctx, a.GuildID)
			case KindEmojis:
				return acc.CountEmojisInGuild(ctx, a.GuildID)
			case KindMembers:
				return acc.CountMembersInGuild(ctx, a.GuildID)
			case KindMembersExact:
				return acc.CountExactMembersInGuild(ctx, a.GuildID)
			case KindPresences:
				return acc.CountPresencesInGuild(ctx, a.GuildID)
			case KindRoles:
				return acc.CountRolesInGuild(ctx, a.GuildID)
			case KindVoiceStates:
				return acc.CountVoiceStatesInGuild(ctx, a.GuildID)
			default:
				return nil, &UnhandledKind{a.Kind}
			}
		})
		b.Map(CountTotal{}, func(ctx context.Context, action Action) (interface{}, error) {
			a := action.(CountTotal)
			switch a.Kind {
			case KindChannels:
				return acc.CountChannels(ctx)
			case KindStickers:
				return acc.CountStickers(ctx)
			case KindEmojis:
				return acc.CountEmojis(ctx)
			case KindGuilds:
				return acc.CountGuilds(ctx)
			case KindMembers:
				return acc.CountMembers(ctx)
			case KindMessages:
				return acc.CountMessages(ctx)
			case KindPresences:
				return acc.CountPresences(ctx)
			case KindRoles:
				return acc.CountRoles(ctx)
			case KindUsers:
				return acc.CountUsers(ctx)
			case KindVoiceStates:
				return acc.CountVoiceStates(ctx)
			default:
				return nil, &UnhandledKind{a.Kind}
			}
		})
	}

	if enabled.Has(FlagChannel) {
		b.Map(CountTotalChannels{}, func(ctx context.Context, action Action) (interface{}, error) {
			return acc.CountChannels(ctx)
		})
		b.Map(CountChannelsInGuild{}, func(ctx context.Context, action Action) (interface{}, error) {
			return acc.CountChannelsInGuild(ctx, action.(CountChannelsInGuild).GuildID)
		})
		b.Map(GetChannels{}, func(ctx context.Context, action Action) (interface{}, error) {
			return acc.GetChannels(ctx)
		})
		b.Map(GetChannelsInGuild{}, func(ctx context.Context, action Action) (interface{}, error) {
			return acc.GetChannelsInGuild(ctx, action.(GetChannelsInGuild).GuildID)
		})
		b.Map(GetChannelByID{}, func(ctx context.Context, action Action) (interface{}, error) {
			return acc.GetChannelByID(ctx, action.(GetChannelByID).ChannelID)
		})
	}

	if enabled.Has(FlagEmoji) {
		b.Map(CountTotalEmojis{}, func(ctx context.Context, action Action) (interface{}, error) {
			return acc.CountEmojis(ctx)
		})
		b.Map(CountEmojisInGuild{}, func(ctx context.Context, action Action) (interface{}, error) {
			return acc.CountEmojisInGuild(ctx, action.(CountEmojisInGuild).GuildID)
		})
		b.Map(GetEmojis{}, func(ctx context.Context, action Action) (interface{}, error) {
			return acc.GetEmojis(ctx)
		})
		b.Map(GetEmojisInGuild{}, func(ctx context.Context, action Action) (interface{}, error) {
			return acc.GetEmojisInGuild(ctx, action.(GetEmojisInGuild).GuildID)
		})
		b.Map(GetEmojiByID{}, func(ctx context.Context, action Action) (interface{}, error) {
			a := action.(GetEmojiByID)
			return acc.GetEmojiByID(ctx, a.GuildID, a.EmojiID)
		})
	}

	if enabled.Has(FlagGuild) {
		b.Map(CountTotalGuilds{}, func(ctx context.Context, action Action) (interface{}, error) {
			return acc.CountGuilds(ctx)
		})
		b.Map(GetGuilds{}, func(ctx context.Context, action Action) (interface{}, error) {
			return acc.GetGuilds(ctx)
		})
		b.Map(GetGuildByID{}, func(ctx context.Context, action Action) (interface{}, error) {
			return acc.GetGuildByID(ctx, action.(GetGuildByID).GuildID)
		})
	}

	if enabled.Has(FlagMember) {
		b.Map(CountTotalMembers{}, func(ctx context.Context, action Action) (interface{}, error) {
			return acc.CountMembers(ctx)
		})
		b.Map(CountMembersInGuild{}, func(ctx context.Context, action Action) (interface{}, error) {
			return acc.CountMembersInGuild(ctx, action.(CountMembersInGuild).GuildID)
		})
		b.Map(CountExactMembersInGuild{}, func(ctx context.Context, action Action) (interface{}, error) {
			return acc.CountExactMembersInGuild(ctx, action.(CountExactMembersInGuild).GuildID)
		})
		b.Map(GetMembers{}, func(ctx context.Context, action Action) (interface{}, error) {
			return acc.GetMembers(ctx)
		})
		b.Map(GetMembersInGuild{}, func(ctx context.Context, action Action) (interface{}, error) {
			return acc.GetMembersInGuild(ctx, action.(GetMembersInGuild).GuildID)
		})
		b.Map(GetExactMembersInGuild{}, func(ctx context.Context, action Action) (interface{}, error) {
			return acc.GetExactMembersInGuild(ctx, action.(GetExactMembersInGuild).GuildID)
		})
		b.Map(GetMemberByID{}, func(ctx context.Context, action Action) (interface{}, error) {
			a := action.(GetMemberByID)
			return acc.GetMemberByID(ctx, a.GuildID, a.UserID)
		})
	}

	if enabled.Has(FlagMessage) {
		b.Map(CountTotalMessages{}, func(ctx context.Context, action Action) (interface{}, error) {
			return acc.CountMessages(ctx)
		})
		b.Map(CountMessagesInChannel{}, func(ctx context.Context, action Action) (interface{}, error) {
			return acc.CountMessagesInChannel(ctx, action.(CountMessagesInChannel).ChannelID)
		})
		b.Map(GetMessages{}, func(ctx context.Context, action Action) (interface{}, error) {
			return acc.GetMessages(ctx)
		})
		b.Map(GetMessagesInChannel{}, func(ctx context.Context, action Action) (interface{}, error) {
			return acc.GetMessagesInChannel(ctx, action.(GetMessagesInChannel).ChannelID)
		})
		b.Map(GetMessageByID{}, func(ctx context.Context, action Action) (interface{}, error) {
			a := action.(GetMessageByID)
			return acc.GetMessageByID(ctx, a.ChannelID, a.MessageID)
		})
	}

	if enabled.Has(FlagPresence) {
		b.Map(CountTotalPresences{}, func(ctx context.Context, action Action) (interface{}, error) {
			return acc.CountPresences(ctx)
		})
		b.Map(CountPresencesInGuild{}, func(ctx context.Context, action Action) (interface{}, error) {
			return acc.CountPresencesInGuild(ctx, action.(CountPresencesInGuild).GuildID)
		})
		b.Map(GetPresences{}, func(ctx context.Context, action Action) (interface{}, error) {
			return acc.GetPresences(ctx)
		})
		b.Map(GetPresencesInGuild{}, func(ctx context.Context, action Action) (interface{}, error) {
			return acc.GetPresencesInGuild(ctx, action.(GetPresencesInGuild).GuildID)
		})
		b.Map(GetPresenceByID{}, func(ctx context.Context, action Action) (interface{}, error) {
			a := action.(GetPresenceByID)
			return acc.GetPresenceByID(ctx, a.GuildID, a.UserID)
		})
	}

	if enabled.Has(FlagRole) {
		b.Map(CountTotalRoles{}, func(ctx context.Context, action Action) (interface{}, error) {
			return acc.CountRoles(ctx)
		})
		b.Map(CountRolesInGuild{}, func(ctx context.Context, action Action) (interface{}, error) {
			return acc.CountRolesInGuild(ctx, action.(CountRolesInGuild).GuildID)
		})
		b.Map(GetRoles{}, func(ctx context.Context, action Action) (interface{}, error) {
			return acc.GetRoles(ctx)
		})
		b.Map(GetRolesInGuild{}, func(ctx context.Context, action Action) (interface{}, error) {
			return acc.GetRolesInGuild(ctx, action.(GetRolesInGuild).GuildID)
		})
		b.Map(GetRoleByID{}, func(ctx context.Context, action Action) (interface{}, error) {
			a := action.(GetRoleByID)
			return acc.GetRoleByID(ctx, a.GuildID, a.RoleID)
		})
	}

	if enabled.Has(FlagUser) {
		b.Map(CountTotalUsers{}, func(ctx context.Context, action Action) (interface{}, error) {
			return acc.CountUsers(ctx)
		})
		b.Map(GetUsers{}, func(ctx context.Context, action Action) (interface{}, error) {
			return acc.GetUsers(ctx)
		})
		b.Map(GetUserByID{}, func(ctx context.Context, action Action) (interface{}, error) {
			return acc.GetUserByID(ctx, action.(GetUserByID).UserID)
		})
	}

	if enabled.Has(FlagVoiceState) {
		b.Map(CountTotalVoiceStates{}, func(ctx context.Context, action Action) (interface{}, error) {
			return acc.CountVoiceStates(ctx)
		})
		b.Map(CountVoiceStatesInGuild{}, func(ctx context.Context, action Action) (interface{}, error) {
			return acc.CountVoiceStatesInGuild(ctx, action.(CountVoiceStatesInGuild).GuildID)
		})
		b.Map(CountVoiceStatesInChannel{}, func(ctx context.Context, action Action) (interface{}, error) {
			a := action.(CountVoiceStatesInChannel)
			return acc.CountVoiceStatesInChannel(ctx, a.GuildID, a.ChannelID)
		})
		b.Map(GetVoiceStates{}, func(ctx context.Context, action Action) (interface{}, error) {
			return acc.GetVoiceStates(ctx)
		})
		b.Map(GetVoiceStatesInGuild{}, func(ctx context.Context, action Action) (interface{}, error) {
			return acc.GetVoiceStatesInGuild(ctx, action.(GetVoiceStatesInGuild).GuildID)
		})
		b.Map(GetVoiceStatesInChannel{}, func(ctx context.Context, action Action) (interface{}, error) {
			a := action.(GetVoiceStatesInChannel)
			return acc.GetVoiceStatesInChannel(ctx, a.GuildID, a.ChannelID)
		})
		b.Map(GetVoiceStateByID{}, func(ctx context.Context, action Action) (interface{}, error) {
			a := action.(GetVoiceStateByID)
			return acc.GetVoiceStateByID(ctx, a.GuildID, a.UserID)
		})
	}

	if enabled.Has(FlagSticker) {
		b.Map(CountTotalStickers{}, func(ctx context.Context, action Action) (interface{}, error) {
			return acc.CountStickers(ctx)
		})
		b.Map(CountStickersInGuild{}, func(ctx context.Context, action Action) (interface{}, error) {
			return acc.CountStickersInGuild(ctx, action.(CountStickersInGuild).GuildID)
		})
		b.Map(GetStickers{}, func(ctx context.Context, action Action) (interface{}, error) {
			return acc.GetStickers(ctx)
		})
		b.Map(GetStickersInGuild{}, func(ctx context.Context, action Action) (interface{}, error) {
			return acc.GetStickersInGuild(ctx, action.(GetStickersInGuild).GuildID)
		})
		b.Map(GetStickerByID{}, func(ctx context.Context, action Action) (interface{}, error) {
			a := action.(GetStickerByID)
			return acc.GetStickerByID(ctx, a.GuildID, a.StickerID)
		})
	}

	if enabled.Has(FlagScheduledEvent) {
		b.Map(GetScheduledEventsInGuild{}, func(ctx context.Context, action Action) (interface{}, error) {
			return acc.GetScheduledEventsInGuild(ctx, action.(GetScheduledEventsInGuild).GuildID)
		})
		b.Map(GetScheduledEventByID{}, func(ctx context.Context, action Action) (interface{}, error) {
			a := action.(GetScheduledEventByID)
			return acc.GetScheduledEventByID(ctx, a.GuildID, a.EventID)
		})
		b.Map(GetScheduledEventUsersInEvent{}, func(ctx context.Context, action Action) (interface{}, error) {
			a := action.(GetScheduledEventUsersInEvent)
			return acc.GetScheduledEventUsersInEvent(ctx, a.GuildID, a.EventID)
		})
	}

	return b.Build()
}

// updaterMapper registers the gateway actions that the enabled flags
// allow.  The lifecycle actions (Ready, InvalidateShard) are always
// registered: no flag owns them.
func updaterMapper(up GatewayUpdater, enabled Flag) *ActionMapper {
	if up == nil {
		panic("store: layout has nil GatewayUpdater")
	}

	b := NewMapperBuilder()

	b.Map(Ready{}, func(ctx context.Context, action Action) (interface{}, error) {
		return nil, up.OnReady(ctx, action.(Ready).Ready)
	})
	b.Map(InvalidateShard{}, func(ctx context.Context, action Action) (interface{}, error) {
		a := action.(InvalidateShard)
		return nil, up.OnShardInvalidation(ctx, a.ShardIndex, a.Cause)
	})

	if enabled.Has(FlagChannel) {
		b.Map(ChannelCreate{}, func(ctx context.Context, action Action) (interface{}, error) {
			a := action.(ChannelCreate)
			return nil, up.OnChannelCreate(ctx, a.ShardIndex, a.Channel)
		})
		b.Map(ChannelUpdate{}, func(ctx context.Context, action Action) (interface{}, error) {
			a := action.(ChannelUpdate)
			return orNil(up.OnChannelUpdate(ctx, a.ShardIndex, a.Channel))
		})
		b.Map(ChannelDelete{}, func(ctx context.Context, action Action) (interface{}, error) {
			a := action.(ChannelDelete)
			return orNil(up.OnChannelDelete(ctx, a.ShardIndex, a.Channel))
		})
	}

	if enabled.Has(FlagEmoji) {
		b.Map(EmojisUpdate{}, func(ctx context.Context, action Action) (interface{}, error) {
			a := action.(EmojisUpdate)
			old, err := up.OnGuildEmojisUpdate(ctx, a.ShardIndex, a.Update)
			if err != nil || old == nil {
				return nil, err
			}
			return old, nil
		})
	}

	if enabled.Has(FlagGuild) {
		b.Map(GuildCreate{}, func(ctx context.Context, action Action) (interface{}, error) {
			a := action.(GuildCreate)
			return nil, up.OnGuildCreate(ctx, a.ShardIndex, a.Guild)
		})
		b.Map(GuildUpdate{}, func(ctx context.Context, action Action) (interface{}, error) {
			a := action.(GuildUpdate)
			return orNil(up.OnGuildUpdate(ctx, a.ShardIndex, a.Guild))
		})
		b.Map(GuildDelete{}, func(ctx context.Context, action Action) (interface{}, error) {
			a := action.(GuildDelete)
			return orNil(up.OnGuildDelete(ctx, a.ShardIndex, a.Guild))
		})
	}

	if enabled.Has(FlagMember) {
		b.Map(MemberAdd{}, func(ctx context.Context, action Action) (interface{}, error) {
			a := action.(MemberAdd)
			return nil, up.OnGuildMemberAdd(ctx, a.ShardIndex, a.Member)
		})
		b.Map(MemberUpdate{}, func(ctx context.Context, action Action) (interface{}, error) {
			a := action.(MemberUpdate)
			return orNil(up.OnGuildMemberUpdate(ctx, a.ShardIndex, a.Member))
		})
		b.Map(MemberRemove{}, func(ctx context.Context, action Action) (interface{}, error) {
			a := action.(MemberRemove)
			return orNil(up.OnGuildMemberRemove(ctx, a.ShardIndex, a.Remove))
		})
		b.Map(MembersChunk{}, func(ctx context.Context, action Action) (interface{}, error) {
			a := action.(MembersChunk)
			return nil, up.OnGuildMembersChunk(ctx, a.ShardIndex, a.Chunk)
		})
		b.Map(CompleteGuildMembers{}, func(ctx context.Context, action Action) (interface{}, error) {
			return nil, up.OnGuildMembersCompletion(ctx, action.(CompleteGuildMembers).GuildID)
		})
	}

	if enabled.Has(FlagMessage) {
		b.Map(MessageCreate{}, func(ctx context.Context, action Action) (interface{}, error) {
			a := action.(MessageCreate)
			return nil, up.OnMessageCreate(ctx, a.ShardIndex, a.Message)
		})
		b.Map(MessageUpdate{}, func(ctx context.Context, action Action) (interface{}, error) {
			a := action.(MessageUpdate)
			return orNil(up.OnMessageUpdate(ctx, a.ShardIndex, a.Message))
		})
		b.Map(MessageDelete{}, func(ctx context.Context, action Action) (interface{}, error) {
			a := action.(MessageDelete)
			return orNil(up.OnMessageDelete(ctx, a.ShardIndex, a.Delete))
		})
		b.Map(MessageDeleteBulk{}, func(ctx context.Context, action Action) (interface{}, error) {
			a := action.(MessageDeleteBulk)
			old, err := up.OnMessageDeleteBulk(ctx, a.ShardIndex, a.Delete)
			if err != nil || old == nil {
				return nil, err
			}
			return old, nil
		})
		b.Map(ReactionAdd{}, func(ctx context.Context, action Action) (interface{}, error) {
			a := action.(ReactionAdd)
			return nil, up.OnMessageReactionAdd(ctx, a.ShardIndex, a.Reaction)
		})
		b.Map(ReactionRemove{}, func(ctx context.Context, action Action) (interface{}, error) {
			a := action.(ReactionRemove)
			return nil, up.OnMessageReactionRemove(ctx, a.ShardIndex, a.Reaction)
		})
		b.Map(ReactionRemoveAll{}, func(ctx context.Context, action Action) (interface{}, error) {
			a := action.(ReactionRemoveAll)
			return nil, up.OnMessageReactionRemoveAll(ctx, a.ShardIndex, a.Remove)
		})
		b.Map(ReactionRemoveEmoji{}, func(ctx context.Context, action Action) (interface{}, error) {
			a := action.(ReactionRemoveEmoji)
			return nil, up.OnMessageReactionRemoveEmoji(ctx, a.ShardIndex, a.Remove)
		})
	}

	if enabled.Has(FlagPresence) {
		b.Map(PresenceUpdate{}, func(ctx context.Context, action Action) (interface{}, error) {
			a := action.(PresenceUpdate)
			return orNil(up.OnPresenceUpdate(ctx, a.ShardIndex, a.Presence))
		})
	}

	if enabled.Has(FlagRole) {
		b.Map(RoleCreate{}, func(ctx context.Context, action Action) (interface{}, error) {
			a := action.(RoleCreate)
			return nil, up.OnGuildRoleCreate(ctx, a.ShardIndex, a.Role)
		})
		b.Map(RoleUpdate{}, func(ctx context.Context, action Action) (interface{}, error) {
			a := action.(RoleUpdate)
			return orNil(up.OnGuildRoleUpdate(ctx, a.ShardIndex, a.Role))
		})
		b.Map(RoleDelete{}, func(ctx context.Context, action Action) (interface{}, error) {
			a := action.(RoleDelete)
			return orNil(up.OnGuildRoleDelete(ctx, a.ShardIndex, a.Delete))
		})
	}

	if enabled.Has(FlagUser) {
		b.Map(UserUpdate{}, func(ctx context.Context, action Action) (interface{}, error) {
			a := action.(UserUpdate)
			return orNil(up.OnUserUpdate(ctx, a.ShardIndex, a.User))
		})
	}

	if enabled.Has(FlagVoiceState) {
		b.Map(VoiceStateUpdate{}, func(ctx context.Context, action Action) (interface{}, error) {
			a := action.(VoiceStateUpdate)
			return orNil(up.OnVoiceStateUpdate(ctx, a.ShardIndex, a.State))
		})
	}

	if enabled.Has(FlagSticker) {
		b.Map(StickersUpdate{}, func(ctx context.Context, action Action) (interface{}, error) {
			a := action.(StickersUpdate)
			old, err := up.OnGuildStickersUpdate(ctx, a.ShardIndex, a.Update)
			if err != nil || old == nil {
				return nil, err
			}
			return old, nil
		})
	}

	if enabled.Has(FlagScheduledEvent) {
		b.Map(ScheduledEventCreate{}, func(ctx context.Context, action Action) (interface{}, error) {
			a := action.(ScheduledEventCreate)
			return nil, up.OnScheduledEventCreate(ctx, a.ShardIndex, a.Event)
		})
		b.Map(ScheduledEventUpdate{}, func(ctx context.Context, action Action) (interface{}, error) {
			a := action.(ScheduledEventUpdate)
			return orNil(up.OnScheduledEventUpdate(ctx, a.ShardIndex, a.Event))
		})
		b.Map(ScheduledEventDelete{}, func(ctx context.Context, action Action) (interface{}, error) {
			a := action.(ScheduledEventDelete)
			return orNil(up.OnScheduledEventDelete(ctx, a.ShardIndex, a.Event))
		})
		b.Map(ScheduledEventUserAdd{}, func(ctx context.Context, action Action) (interface{}, error) {
			a := action.(ScheduledEventUserAdd)
			return nil, up.OnScheduledEventUserAdd(ctx, a.ShardIndex, a.User)
		})
		b.Map(ScheduledEventUserRemove{}, func(ctx context.Context, action Action) (interface{}, error) {
			a := action.(ScheduledEventUserRemove)
			return nil, up.OnScheduledEventUserRemove(ctx, a.ShardIndex, a.User)
		})
	}

	return b.Build()
}

// orNil keeps a typed nil pointer from leaking into an interface{}
// result, so "nothing there" is always an untyped nil.
func orNil[T any](old *T, err error) (interface{}, error) {
	if err != nil || old == nil {
		return nil, err
	}
	return old, nil
}
